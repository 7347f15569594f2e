package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvPrefix namespaces every environment variable consumed by the app.
	EnvPrefix = "LEADPIPE"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvAppEnv = "LEADPIPE_APP_ENV"
	EnvDBDSN  = "LEADPIPE_DB_DSN"
	EnvDBHost = "LEADPIPE_DB_HOST"
	EnvDBUser = "LEADPIPE_DB_USER"
	EnvDBName = "LEADPIPE_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	Cookie       CookieConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"LEADPIPE_APP_ENV" required:"true"`
	Port         string `envconfig:"LEADPIPE_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"LEADPIPE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"LEADPIPE_LOG_WARN_STACK" default:"false"`

	CORSOrigins []string `envconfig:"LEADPIPE_CORS_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"LEADPIPE_DB_DSN"`
	Driver string `envconfig:"LEADPIPE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"LEADPIPE_DB_HOST"`
	LegacyPort     int    `envconfig:"LEADPIPE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"LEADPIPE_DB_USER"`
	LegacyPassword string `envconfig:"LEADPIPE_DB_PASSWORD"`
	LegacyName     string `envconfig:"LEADPIPE_DB_NAME"`
	LegacySSLMode  string `envconfig:"LEADPIPE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"LEADPIPE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"LEADPIPE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"LEADPIPE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"LEADPIPE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"LEADPIPE_REDIS_URL" required:"true"`
	Address      string        `envconfig:"LEADPIPE_REDIS_ADDR"`
	Password     string        `envconfig:"LEADPIPE_REDIS_PASSWORD"`
	DB           int           `envconfig:"LEADPIPE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"LEADPIPE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"LEADPIPE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"LEADPIPE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"LEADPIPE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"LEADPIPE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"LEADPIPE_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"LEADPIPE_JWT_ISSUER" default:"leadpipe"`
	ExpirationMinutes int    `envconfig:"LEADPIPE_JWT_EXPIRATION_MINUTES" default:"10080"`
}

// TokenTTL returns the access token lifetime. The auth cookie MaxAge mirrors it.
func (j JWTConfig) TokenTTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"LEADPIPE_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"LEADPIPE_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"LEADPIPE_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"LEADPIPE_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"LEADPIPE_ARGON_KEY_LEN" default:"32"`
}

type CookieConfig struct {
	Name   string `envconfig:"LEADPIPE_COOKIE_NAME" default:"leadpipe_token"`
	Domain string `envconfig:"LEADPIPE_COOKIE_DOMAIN"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"LEADPIPE_AUTO_MIGRATE" default:"false"`
	UseSQLite   bool `envconfig:"LEADPIPE_USE_SQLITE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
