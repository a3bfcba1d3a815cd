package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	c := defaults()
	c.JWTSecret = strings.Repeat("k", 32)
	return c
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("APP_PORT", "")
	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.AppPort != "8080" || c.DBDriver != "mysql" || c.IdempTTLSecs != 300 {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if c.ReconcileCron != "0 */5 * * * *" {
		t.Fatalf("cron = %q", c.ReconcileCron)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("IDEMPOTENCY_TTL_SECONDS", "not-a-number")
	t.Setenv("AUTO_MIGRATE", "false")
	t.Setenv("DEFAULT_EFFORT_RATE", "35.5")

	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.AppPort != "9090" || c.DBDriver != "sqlite" || c.RedisDB != 3 {
		t.Fatalf("env not applied: %+v", c)
	}
	if c.IdempTTLSecs != 300 {
		t.Fatalf("bad int must keep default, got %d", c.IdempTTLSecs)
	}
	if c.AutoMigrate {
		t.Fatal("AUTO_MIGRATE=false ignored")
	}
	if c.DefaultEffortRate != 35.5 {
		t.Fatalf("effort rate = %v", c.DefaultEffortRate)
	}
}

func TestLoad_YAMLThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yml := "app_port: \"7000\"\nmysql_db: credit\njwt_secret: from-file-secret-123\nlog_level: debug\n"
	if err := os.WriteFile(path, []byte(yml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("LOG_LEVEL", "warn")

	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.AppPort != "7000" || c.MySQLDB != "credit" || c.JWTSecret != "from-file-secret-123" {
		t.Fatalf("yaml not applied: %+v", c)
	}
	if c.LogLevel != "warn" {
		t.Fatalf("env must win over file, got %q", c.LogLevel)
	}
	if c.MySQLHost != "mysql" {
		t.Fatalf("unset keys keep defaults, got %q", c.MySQLHost)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "nope.yaml"))
	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestValidate(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	cases := map[string]func(c *Config){
		"no port":         func(c *Config) { c.AppPort = "" },
		"bad driver":      func(c *Config) { c.DBDriver = "postgres" },
		"no mysql host":   func(c *Config) { c.MySQLHost = "" },
		"bad mysql port":  func(c *Config) { c.MySQLPort = "not-a-port" },
		"short secret":    func(c *Config) { c.JWTSecret = "short" },
		"zero ttl":        func(c *Config) { c.JWTTTLMinutes = 0 },
		"zero upload":     func(c *Config) { c.MaxUploadMB = 0 },
		"effort too high": func(c *Config) { c.DefaultEffortRate = 120 },
		"sqlite no path": func(c *Config) {
			c.DBDriver = "sqlite"
			c.SQLitePath = ""
		},
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := validConfig()
			mutate(c)
			if err := c.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestDerivedValues(t *testing.T) {
	c := validConfig()
	if c.JWTTTL() != 24*time.Hour {
		t.Fatalf("JWTTTL = %v", c.JWTTTL())
	}
	if c.IdempotencyTTL() != 5*time.Minute {
		t.Fatalf("IdempotencyTTL = %v", c.IdempotencyTTL())
	}
	if c.MaxUploadBytes() != 10<<20 {
		t.Fatalf("MaxUploadBytes = %d", c.MaxUploadBytes())
	}
	c.AppEnv = "Production"
	if !c.IsProduction() {
		t.Fatal("IsProduction should be case-insensitive")
	}
	dsn := c.MySQLDSN()
	if !strings.HasPrefix(dsn, "agricredit:agricredit@tcp(mysql:3306)/agricredit?") || !strings.Contains(dsn, "parseTime=true") {
		t.Fatalf("dsn = %q", dsn)
	}
}
