package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Server   ServerConfig   `env:",prefix=SERVER_"`
	Postgres PostgresConfig `env:",prefix=POSTGRES_"`
	Redis    RedisConfig    `env:",prefix=REDIS_"`
	JWT      JWTConfig      `env:",prefix=JWT_"`
	Cache    CacheConfig    `env:",prefix=CACHE_"`
	Google   GoogleConfig   `env:",prefix=GOOGLE_"`
	Security SecurityConfig `env:",prefix="`
	CORS     CORSConfig     `env:",prefix=CORS_"`
	Env      string         `env:"ENV,default=development"`
}

type ServerConfig struct {
	Port         string   `env:"PORT,default=8080"`
	Host         string   `env:"HOST,default=0.0.0.0"`
	ReadTimeout  Duration `env:"READ_TIMEOUT,default=15s"`
	WriteTimeout Duration `env:"WRITE_TIMEOUT,default=15s"`
}

type PostgresConfig struct {
	Host        string `env:"HOST,default=localhost"`
	Port        string `env:"PORT,default=5432"`
	User        string `env:"USER,default=postgres"`
	Password    string `env:"PASSWORD,default=pomodoro"`
	DBName      string `env:"DB,default=pomodoro"`
	SSLMode     string `env:"SSLMODE,default=disable"`
	AutoMigrate bool   `env:"AUTO_MIGRATE,default=true"`
}

type RedisConfig struct {
	Host     string `env:"HOST,default=localhost"`
	Port     string `env:"PORT,default=6379"`
	Password string `env:"PASSWORD,default="`
	DB       int    `env:"DB,default=0"`
}

type JWTConfig struct {
	Secret            string   `env:"SECRET,required"`
	Algorithm         string   `env:"ALGORITHM,default=HS256"`
	AccessTokenExpiry Duration `env:"ACCESS_TOKEN_EXPIRY,default=7d"`
}

// CacheConfig controls the per-user task list cache.
type CacheConfig struct {
	TaskTTL Duration `env:"TASK_TTL,default=300s"`
	// AppendOnCreate appends new tasks to an existing cache entry instead of
	// invalidating it. The append never creates an entry.
	AppendOnCreate bool `env:"APPEND_ON_CREATE,default=false"`
}

type GoogleConfig struct {
	ClientID     string   `env:"CLIENT_ID,default="`
	ClientSecret string   `env:"CLIENT_SECRET,default="`
	RedirectURL  string   `env:"REDIRECT_URI,default="`
	AuthURL      string   `env:"AUTH_URL,default=https://accounts.google.com/o/oauth2/auth"`
	TokenURL     string   `env:"TOKEN_URL,default=https://accounts.google.com/o/oauth2/token"`
	UserInfoURL  string   `env:"USERINFO_URL,default=https://www.googleapis.com/oauth2/v1/userinfo"`
	StateTTL     Duration `env:"STATE_TTL,default=10m"`
}

type SecurityConfig struct {
	BCryptCost        int      `env:"BCRYPT_COST,default=12"`
	RateLimitRequests int      `env:"RATE_LIMIT_REQUESTS,default=10"`
	RateLimitWindow   Duration `env:"RATE_LIMIT_WINDOW,default=1m"`
}

type CORSConfig struct {
	AllowedOrigins []string `env:"ALLOWED_ORIGINS,default=http://localhost:3000"`
	AllowedMethods []string `env:"ALLOWED_METHODS,default=GET,POST,PATCH,DELETE,OPTIONS"`
	AllowedHeaders []string `env:"ALLOWED_HEADERS,default=Content-Type,Authorization"`
}

// DSN returns PostgreSQL connection string
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.DBName, p.SSLMode)
}

// Address returns Redis connection address
func (r RedisConfig) Address() string {
	return fmt.Sprintf("%s:%s", r.Host, r.Port)
}

// Enabled reports whether Google sign-in is configured.
func (g GoogleConfig) Enabled() bool {
	return g.ClientID != "" && g.ClientSecret != ""
}

// Load loads configuration from environment variables
func Load(ctx context.Context) (*Config, error) {
	var config Config

	if err := envconfig.Process(ctx, &config); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if len(config.JWT.Secret) < 32 {
		return nil, fmt.Errorf("JWT_SECRET must be at least 32 characters long")
	}

	switch config.JWT.Algorithm {
	case "HS256", "HS384", "HS512":
	default:
		return nil, fmt.Errorf("JWT_ALGORITHM %q is not supported", config.JWT.Algorithm)
	}

	if config.Cache.TaskTTL.Duration <= 0 {
		return nil, fmt.Errorf("CACHE_TASK_TTL must be positive")
	}

	return &config, nil
}
