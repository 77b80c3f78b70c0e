package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	Service       ServiceConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	PasswordReset PasswordResetConfig
	AuthRateLimit AuthRateLimitConfig
	Pricing       PricingConfig
	Mail          MailConfig
	FeatureFlags  FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	if cfg.FeatureFlags.UseSQLite {
		cfg.DB.Driver = "sqlite"
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"LUX_APP_ENV" required:"true"`
	Port         string `envconfig:"LUX_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"LUX_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"LUX_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"LUX_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"LUX_DB_DSN"`
	Driver string `envconfig:"LUX_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"LUX_DB_HOST"`
	LegacyPort     int    `envconfig:"LUX_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"LUX_DB_USER"`
	LegacyPassword string `envconfig:"LUX_DB_PASSWORD"`
	LegacyName     string `envconfig:"LUX_DB_NAME"`
	LegacySSLMode  string `envconfig:"LUX_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"LUX_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"LUX_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"LUX_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"LUX_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"LUX_REDIS_URL" required:"true"`
	Address      string        `envconfig:"LUX_REDIS_ADDR"`
	Password     string        `envconfig:"LUX_REDIS_PASSWORD"`
	DB           int           `envconfig:"LUX_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"LUX_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"LUX_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"LUX_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"LUX_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"LUX_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"LUX_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"LUX_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"LUX_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"LUX_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"LUX_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"LUX_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"LUX_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"LUX_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"LUX_ARGON_KEY_LEN" default:"32"`
}

type PasswordResetConfig struct {
	CodeTTL        time.Duration `envconfig:"LUX_RESET_CODE_TTL" default:"10m"`
	ResendInterval time.Duration `envconfig:"LUX_RESET_RESEND_INTERVAL" default:"2m"`
	SessionTTL     time.Duration `envconfig:"LUX_RESET_SESSION_TTL" default:"10m"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"LUX_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"LUX_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"LUX_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"LUX_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"LUX_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"LUX_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type PricingConfig struct {
	FlatShipping string `envconfig:"LUX_PRICING_FLAT_SHIPPING" default:"5.00"`
	TaxRate      string `envconfig:"LUX_PRICING_TAX_RATE" default:"0.08"`
}

type MailConfig struct {
	SMTPHost    string `envconfig:"LUX_SMTP_HOST"`
	SMTPPort    string `envconfig:"LUX_SMTP_PORT" default:"587"`
	SMTPUser    string `envconfig:"LUX_SMTP_USER"`
	SMTPPass    string `envconfig:"LUX_SMTP_PASS"`
	DefaultFrom string `envconfig:"LUX_MAIL_FROM" default:"noreply@xypherlux.com"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"LUX_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"LUX_AUTO_MIGRATE" default:"false"`
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
