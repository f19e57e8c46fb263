package domain

// ActionKind names an operation subject to authorization.
type ActionKind string

const (
	ActionReadIdentity   ActionKind = "read_identity"
	ActionListStudents   ActionKind = "list_students"
	ActionReadOwnProfile ActionKind = "read_own_profile"
	ActionCreateStudent  ActionKind = "create_student"
)

// Action describes a requested operation. Target carries the username the
// action operates on for self-scoped actions, so the decision never needs
// to consult the directory.
type Action struct {
	Kind   ActionKind
	Target string
}

// Decision is the outcome of an authorization check.
type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision { return Decision{Allowed: true} }

func deny(reason string) Decision { return Decision{Allowed: false, Reason: reason} }

// capabilities maps each role to the action kinds it may perform.
// Self-scoped kinds still require the target check in Authorize.
var capabilities = map[Role]map[ActionKind]struct{}{
	RoleTeacher: {
		ActionReadIdentity:   {},
		ActionListStudents:   {},
		ActionReadOwnProfile: {},
		ActionCreateStudent:  {},
	},
	RoleStudent: {
		ActionReadIdentity:   {},
		ActionReadOwnProfile: {},
	},
}

// selfScoped marks action kinds whose target must be the caller itself.
var selfScoped = map[ActionKind]struct{}{
	ActionReadOwnProfile: {},
}

// Authorize decides whether the principal may perform the action. It is a
// pure function: no directory access, no side effects, independent of
// transport.
func Authorize(p Principal, a Action) Decision {
	caps, ok := capabilities[p.Role]
	if !ok {
		return deny("unknown role")
	}
	if _, ok := caps[a.Kind]; !ok {
		return deny("role " + string(p.Role) + " may not " + string(a.Kind))
	}
	if _, ok := selfScoped[a.Kind]; ok && a.Target != p.Username {
		return deny("action targets another identity")
	}
	return allow()
}
