package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/schooladmin/school-api/internal/api/metrics"
	"github.com/schooladmin/school-api/internal/core/domain"
	"github.com/schooladmin/school-api/internal/core/ports"
)

// StudentHandler handles HTTP requests for student records.
type StudentHandler struct {
	service ports.StudentService
}

func NewStudentHandler(service ports.StudentService) *StudentHandler {
	return &StudentHandler{service: service}
}

type createStudentRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name"`
}

// List returns every user record projected to its public view.
//
// @Summary      List all students
// @Tags         students
// @Produce      json
// @Security     BasicAuth
// @Success      200  {array}   ports.StudentView
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /students [get]
func (h *StudentHandler) List(c echo.Context) error {
	views, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, views)
}

// Me returns the caller's own record.
//
// @Summary      Get own student profile
// @Tags         students
// @Produce      json
// @Security     BasicAuth
// @Success      200  {object}  ports.StudentView
// @Failure      401  {object}  map[string]string
// @Router       /students/me [get]
func (h *StudentHandler) Me(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	view, err := h.service.GetOwn(c.Request().Context(), principal)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// Create registers a new student account.
//
// @Summary      Create a student
// @Tags         students
// @Accept       json
// @Produce      json
// @Security     BasicAuth
// @Param        body  body      createStudentRequest  true  "New student details"
// @Success      201   {object}  ports.StudentView
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /students [post]
func (h *StudentHandler) Create(c echo.Context) error {
	var req createStudentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStudentInvalid, err)
	}

	view, err := h.service.Create(c.Request().Context(), ports.CreateStudentInput{
		Username: req.Username,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		return err
	}

	metrics.StudentsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, view)
}
