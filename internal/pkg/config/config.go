package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port       string `env:"PORT,        default=8080"`
	Env        string `env:"ENV,         default=development"`
	LogLevel   string `env:"LOG_LEVEL,   default=info"`
	BcryptCost int    `env:"BCRYPT_COST, default=0"` // 0 means bcrypt.DefaultCost

	Mongo       MongoConfig
	Redis       RedisConfig
	LoginGuard  LoginGuardConfig
	SeedTeacher SeedTeacherConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=school_admin"`
}

// RedisConfig is optional: an empty Addr disables the login guard and the
// redis readiness check.
type RedisConfig struct {
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

type LoginGuardConfig struct {
	MaxFailures int64         `env:"LOGIN_MAX_FAILURES,   default=10"`
	Window      time.Duration `env:"LOGIN_FAILURE_WINDOW, default=15m"`
}

// SeedTeacherConfig provisions the bootstrap TEACHER account. Student
// accounts are created through the API; the first teacher has to come from
// somewhere outside it.
type SeedTeacherConfig struct {
	Username string `env:"SEED_TEACHER_USERNAME"`
	Password string `env:"SEED_TEACHER_PASSWORD"`
	Name     string `env:"SEED_TEACHER_NAME, default=Teacher"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
