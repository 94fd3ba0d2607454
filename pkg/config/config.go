package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env  string
	Port int

	Upstream   UpstreamConfig
	Session    SessionConfig
	Revocation RevocationConfig
	Audit      AuditConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	CORS       CORSConfig
	Log        LogConfig
	Metrics    MetricsConfig
	Stub       StubConfig
}

// UpstreamConfig points the web tier at the Classroom API.
type UpstreamConfig struct {
	BaseURL        string
	Timeout        time.Duration
	AuthCookieName string
}

// SessionConfig controls the browser session cookie holding the upstream credential.
type SessionConfig struct {
	Secret     string
	CookieName string
	MaxAge     time.Duration
	Secure     bool
	LoginPath  string
}

// RevocationConfig toggles the redis-backed list of evicted credentials.
type RevocationConfig struct {
	Enabled bool
}

// AuditConfig toggles persistence of form action outcomes.
type AuditConfig struct {
	Enabled bool
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool
}

// StubConfig configures the in-memory Classroom API used for local development.
type StubConfig struct {
	Port              int
	StorageDir        string
	JWTSecret         string
	TokenTTL          time.Duration
	AllowCancelGraded bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")

	cfg.Upstream = UpstreamConfig{
		BaseURL:        strings.TrimRight(v.GetString("CLASSROOM_API_URL"), "/"),
		Timeout:        parseDuration(v.GetString("UPSTREAM_TIMEOUT"), 15*time.Second),
		AuthCookieName: v.GetString("AUTH_COOKIE_NAME"),
	}

	cfg.Session = SessionConfig{
		Secret:     v.GetString("SESSION_SECRET"),
		CookieName: v.GetString("SESSION_COOKIE_NAME"),
		MaxAge:     parseDuration(v.GetString("SESSION_MAX_AGE"), 7*24*time.Hour),
		Secure:     v.GetBool("SESSION_SECURE"),
		LoginPath:  v.GetString("LOGIN_PATH"),
	}

	cfg.Revocation = RevocationConfig{Enabled: v.GetBool("ENABLE_REVOCATION")}
	cfg.Audit = AuditConfig{Enabled: v.GetBool("ENABLE_AUDIT")}

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Metrics = MetricsConfig{Enabled: v.GetBool("ENABLE_METRICS")}

	cfg.Stub = StubConfig{
		Port:              v.GetInt("STUB_PORT"),
		StorageDir:        v.GetString("STUB_STORAGE_DIR"),
		JWTSecret:         v.GetString("STUB_JWT_SECRET"),
		TokenTTL:          parseDuration(v.GetString("STUB_TOKEN_TTL"), 7*24*time.Hour),
		AllowCancelGraded: v.GetBool("STUB_ALLOW_CANCEL_GRADED"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)

	v.SetDefault("CLASSROOM_API_URL", "http://localhost:8081/api")
	v.SetDefault("UPSTREAM_TIMEOUT", "15s")
	v.SetDefault("AUTH_COOKIE_NAME", "auth_token")

	v.SetDefault("SESSION_SECRET", "dev_session_secret_change_me_32b")
	v.SetDefault("SESSION_COOKIE_NAME", "sunclass_session")
	v.SetDefault("SESSION_MAX_AGE", "168h")
	v.SetDefault("SESSION_SECURE", false)
	v.SetDefault("LOGIN_PATH", "/login")

	v.SetDefault("ENABLE_REVOCATION", false)
	v.SetDefault("ENABLE_AUDIT", false)

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "sun_class_web")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("ENABLE_METRICS", true)

	v.SetDefault("STUB_PORT", 8081)
	v.SetDefault("STUB_STORAGE_DIR", "./uploads")
	v.SetDefault("STUB_JWT_SECRET", "dev_stub_secret")
	v.SetDefault("STUB_TOKEN_TTL", "168h")
	v.SetDefault("STUB_ALLOW_CANCEL_GRADED", false)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
