package core

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/unitrack/portal/core/marks"
)

// Conf holds the app configuration; loaded once at startup.
var Conf *Config

type (
	Config struct {
		Debug    bool
		TestMode bool
		Env      string // DEV (default), TEST, QA, PROD
		AppName  string
		Build    string
		// SecretKey signs the portal session cookie.
		SecretKey    string
		RollbarToken string

		Server   ServerConfig
		Upstream UpstreamConfig
		Database DatabaseConfig
		Grading  marks.GradingConfig
	}

	ServerConfig struct {
		Host       string
		Port       string
		SessionTTL time.Duration
	}

	// UpstreamConfig points at the ERP REST API the portal fronts.
	UpstreamConfig struct {
		BaseURL    string
		Timeout    time.Duration
		CSRFCookie string
		CSRFHeader string
	}

	DatabaseConfig struct {
		Engine     string
		Name       string
		User       string
		Password   string
		Host       string
		Port       string
		DisableTLS bool
	}
)

func (sc ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%s", sc.Host, sc.Port)
}

func (dc DatabaseConfig) Address() string {
	return fmt.Sprintf("%s:%s", dc.Host, dc.Port)
}

func init() {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	// defaults
	v.SetDefault("debug", true)
	v.SetDefault("testMode", false)
	v.SetDefault("appName", "Unitrack Portal")
	v.SetDefault("build", "dev")
	v.SetDefault("secretKey", "x2m)e0&ds+t7d$c9y#bs1ml*_hy-1+d%6-8ndtfz)o)r5n$wm6")
	v.SetDefault("rollbarToken", "")

	v.SetDefault("server.host", "")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.sessionTTL", 12*time.Hour)

	v.SetDefault("upstream.baseURL", "http://localhost:8000/api")
	v.SetDefault("upstream.timeout", 30*time.Second)
	v.SetDefault("upstream.csrfCookie", "csrftoken")
	v.SetDefault("upstream.csrfHeader", "X-CSRFToken")

	v.SetDefault("database.engine", "postgres")
	v.SetDefault("database.name", "unitrack_portal")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.disableTLS", true)

	v.SetDefault("grading", marks.DefaultGrading())

	env := os.Getenv("ENV")
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	}
	v.SetDefault("env", env)
	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	Conf = new(Config)
	if err := v.Unmarshal(Conf); err != nil {
		log.Fatalf("config.Unmarshal: %v", err)
	}
}
