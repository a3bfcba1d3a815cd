package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	AppPort string `yaml:"app_port"`
	AppEnv  string `yaml:"app_env"` // development | production

	DBDriver    string `yaml:"db_driver"` // mysql | sqlite
	SQLitePath  string `yaml:"sqlite_path"`
	MySQLHost   string `yaml:"mysql_host"`
	MySQLPort   string `yaml:"mysql_port"`
	MySQLDB     string `yaml:"mysql_db"`
	MySQLUser   string `yaml:"mysql_user"`
	MySQLPass   string `yaml:"mysql_pass"`
	AutoMigrate bool   `yaml:"auto_migrate"`

	RedisAddr string `yaml:"redis_addr"`
	RedisDB   int    `yaml:"redis_db"`

	IdempTTLSecs int `yaml:"idempotency_ttl_seconds"`

	JWTSecret     string `yaml:"jwt_secret"`
	JWTTTLMinutes int    `yaml:"jwt_ttl_minutes"`

	UploadDir   string `yaml:"upload_dir"`
	MaxUploadMB int64  `yaml:"max_upload_mb"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	ReconcileCron     string  `yaml:"reconcile_cron"`
	DefaultEffortRate float64 `yaml:"default_effort_rate"`

	AdminName     string `yaml:"admin_name"`
	AdminPhone    string `yaml:"admin_phone"`
	AdminEmail    string `yaml:"admin_email"`
	AdminPassword string `yaml:"admin_password"`
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getenvInt(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

func getenvBool(k string, d bool) bool {
	if v := os.Getenv(k); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return d
}

func defaults() *Config {
	return &Config{
		AppPort:           "8080",
		AppEnv:            "development",
		DBDriver:          "mysql",
		SQLitePath:        "agricredit.db",
		MySQLHost:         "mysql",
		MySQLPort:         "3306",
		MySQLDB:           "agricredit",
		MySQLUser:         "agricredit",
		MySQLPass:         "agricredit",
		AutoMigrate:       true,
		RedisAddr:         "redis:6379",
		IdempTTLSecs:      300,
		JWTTTLMinutes:     60 * 24,
		UploadDir:         "uploads",
		MaxUploadMB:       10,
		LogLevel:          "info",
		LogFormat:         "json",
		ReconcileCron:     "0 */5 * * * *",
		DefaultEffortRate: 40,
		AdminName:         "Platform Administrator",
		AdminPhone:        "+244900000000",
	}
}

// Load builds the config from defaults, then the YAML file named by
// CONFIG_FILE (if any), then environment variables.
func Load() (*Config, error) {
	c := defaults()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, c); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}
	c.overrideWithEnv()
	return c, nil
}

func (c *Config) overrideWithEnv() {
	c.AppPort = getenv("APP_PORT", c.AppPort)
	c.AppEnv = getenv("APP_ENV", c.AppEnv)

	c.DBDriver = strings.ToLower(getenv("DB_DRIVER", c.DBDriver))
	c.SQLitePath = getenv("SQLITE_PATH", c.SQLitePath)
	c.MySQLHost = getenv("MYSQL_HOST", c.MySQLHost)
	c.MySQLPort = getenv("MYSQL_PORT", c.MySQLPort)
	c.MySQLDB = getenv("MYSQL_DB", c.MySQLDB)
	c.MySQLUser = getenv("MYSQL_USER", c.MySQLUser)
	c.MySQLPass = getenv("MYSQL_PASS", c.MySQLPass)
	c.AutoMigrate = getenvBool("AUTO_MIGRATE", c.AutoMigrate)

	c.RedisAddr = getenv("REDIS_ADDR", c.RedisAddr)
	c.RedisDB = getenvInt("REDIS_DB", c.RedisDB)
	c.IdempTTLSecs = getenvInt("IDEMPOTENCY_TTL_SECONDS", c.IdempTTLSecs)

	c.JWTSecret = getenv("JWT_SECRET", c.JWTSecret)
	c.JWTTTLMinutes = getenvInt("JWT_TTL_MINUTES", c.JWTTTLMinutes)

	c.UploadDir = getenv("UPLOAD_DIR", c.UploadDir)
	c.MaxUploadMB = int64(getenvInt("MAX_UPLOAD_MB", int(c.MaxUploadMB)))

	c.LogLevel = getenv("LOG_LEVEL", c.LogLevel)
	c.LogFormat = getenv("LOG_FORMAT", c.LogFormat)

	c.ReconcileCron = getenv("RECONCILE_CRON", c.ReconcileCron)
	if v := os.Getenv("DEFAULT_EFFORT_RATE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.DefaultEffortRate = f
		}
	}

	c.AdminName = getenv("ADMIN_NAME", c.AdminName)
	c.AdminPhone = getenv("ADMIN_PHONE", c.AdminPhone)
	c.AdminEmail = getenv("ADMIN_EMAIL", c.AdminEmail)
	c.AdminPassword = getenv("ADMIN_PASSWORD", c.AdminPassword)
}

func (c *Config) Validate() error {
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	switch c.DBDriver {
	case "mysql":
		if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
			return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
		}
		// ensure port is valid
		if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
			return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
		}
	case "sqlite":
		if c.SQLitePath == "" {
			return errors.New("missing SQLITE_PATH")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if len(c.JWTSecret) < 16 {
		return errors.New("JWT_SECRET must be at least 16 characters")
	}
	if c.JWTTTLMinutes <= 0 {
		return errors.New("JWT_TTL_MINUTES must be positive")
	}
	if c.MaxUploadMB <= 0 {
		return errors.New("MAX_UPLOAD_MB must be positive")
	}
	if c.DefaultEffortRate <= 0 || c.DefaultEffortRate > 100 {
		return fmt.Errorf("DEFAULT_EFFORT_RATE %v out of (0, 100]", c.DefaultEffortRate)
	}
	return nil
}

func (c *Config) IsProduction() bool { return strings.EqualFold(c.AppEnv, "production") }

func (c *Config) JWTTTL() time.Duration { return time.Duration(c.JWTTTLMinutes) * time.Minute }

func (c *Config) IdempotencyTTL() time.Duration { return time.Duration(c.IdempTTLSecs) * time.Second }

func (c *Config) MaxUploadBytes() int64 { return c.MaxUploadMB << 20 }

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&loc=UTC&charset=utf8mb4",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}
