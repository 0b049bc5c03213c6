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
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	AuthRateLimit AuthRateLimitConfig
	Locks         LocksConfig
	Advisor       AdvisorConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	if err := cfg.Locks.validate(cfg.Redis); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"AGRIQUOTE_APP_ENV" required:"true"`
	Port         string `envconfig:"AGRIQUOTE_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"AGRIQUOTE_LOG_LEVEL" default:"info"`
	LogFormat    string `envconfig:"AGRIQUOTE_LOG_FORMAT" default:"json"`
	LogWarnStack bool   `envconfig:"AGRIQUOTE_LOG_WARN_STACK" default:"false"`
	SeedOnStart  bool   `envconfig:"AGRIQUOTE_SEED_ON_START" default:"false"`
	AutoMigrate  bool   `envconfig:"AGRIQUOTE_AUTO_MIGRATE" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	Driver     string `envconfig:"AGRIQUOTE_DB_DRIVER" default:"sqlite"`
	DSN        string `envconfig:"AGRIQUOTE_DB_DSN"`
	SQLitePath string `envconfig:"AGRIQUOTE_SQLITE_PATH" default:"agriquote.db"`

	LegacyHost     string `envconfig:"AGRIQUOTE_DB_HOST"`
	LegacyPort     int    `envconfig:"AGRIQUOTE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"AGRIQUOTE_DB_USER"`
	LegacyPassword string `envconfig:"AGRIQUOTE_DB_PASSWORD"`
	LegacyName     string `envconfig:"AGRIQUOTE_DB_NAME"`
	LegacySSLMode  string `envconfig:"AGRIQUOTE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"AGRIQUOTE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"AGRIQUOTE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"AGRIQUOTE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"AGRIQUOTE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// IsSQLite reports whether the local single-file store is selected.
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(strings.TrimSpace(db.Driver), DBDriverSQLite)
}

type RedisConfig struct {
	URL          string        `envconfig:"AGRIQUOTE_REDIS_URL"`
	Address      string        `envconfig:"AGRIQUOTE_REDIS_ADDR"`
	Password     string        `envconfig:"AGRIQUOTE_REDIS_PASSWORD"`
	DB           int           `envconfig:"AGRIQUOTE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"AGRIQUOTE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"AGRIQUOTE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"AGRIQUOTE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"AGRIQUOTE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"AGRIQUOTE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether any Redis endpoint was configured.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

type JWTConfig struct {
	Secret            string `envconfig:"AGRIQUOTE_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"AGRIQUOTE_JWT_ISSUER" default:"agriquote"`
	ExpirationMinutes int    `envconfig:"AGRIQUOTE_JWT_EXPIRATION_MINUTES" default:"1440"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"AGRIQUOTE_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginPhoneLimit    int           `envconfig:"AGRIQUOTE_AUTH_RATE_LIMIT_LOGIN_PHONE_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"AGRIQUOTE_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"AGRIQUOTE_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterPhoneLimit int           `envconfig:"AGRIQUOTE_AUTH_RATE_LIMIT_REGISTER_PHONE_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"AGRIQUOTE_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type LocksConfig struct {
	Backend       string        `envconfig:"AGRIQUOTE_LOCK_BACKEND" default:"local"`
	TTL           time.Duration `envconfig:"AGRIQUOTE_LOCK_TTL" default:"10s"`
	RetryInterval time.Duration `envconfig:"AGRIQUOTE_LOCK_RETRY_INTERVAL" default:"25ms"`
}

// UsesRedis reports whether collection locks are coordinated through Redis.
func (l LocksConfig) UsesRedis() bool {
	return strings.EqualFold(strings.TrimSpace(l.Backend), LockBackendRedis)
}

func (l LocksConfig) validate(redis RedisConfig) error {
	switch strings.ToLower(strings.TrimSpace(l.Backend)) {
	case LockBackendLocal:
		return nil
	case LockBackendRedis:
		if !redis.Enabled() {
			return fmt.Errorf("%s=redis requires %s or %s", EnvLockBackend, EnvRedisURL, EnvRedisAddr)
		}
		return nil
	default:
		return fmt.Errorf("unsupported %s %q", EnvLockBackend, l.Backend)
	}
}

type AdvisorConfig struct {
	GeminiAPIKey string        `envconfig:"AGRIQUOTE_GEMINI_API_KEY"`
	Model        string        `envconfig:"AGRIQUOTE_GEMINI_MODEL" default:"gemini-2.5-flash"`
	Timeout      time.Duration `envconfig:"AGRIQUOTE_ADVISOR_TIMEOUT" default:"15s"`
}

func (db *DBConfig) ensureDSN() error {
	if db.IsSQLite() {
		if strings.TrimSpace(db.SQLitePath) == "" {
			return fmt.Errorf("%s is required for the sqlite driver", EnvSQLitePath)
		}
		return nil
	}
	if !strings.EqualFold(strings.TrimSpace(db.Driver), DBDriverPostgres) {
		return fmt.Errorf("unsupported %s %q", EnvDBDriver, db.Driver)
	}
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
