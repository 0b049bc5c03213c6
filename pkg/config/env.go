package config

const (
	EnvPrefix = "AGRIQUOTE"

	AppEnvDev  = "dev"
	AppEnvTest = "test"
	AppEnvProd = "prod"

	EnvAppEnv       = "AGRIQUOTE_APP_ENV"
	EnvPort         = "AGRIQUOTE_APP_PORT"
	EnvLogLevel     = "AGRIQUOTE_LOG_LEVEL"
	EnvLogFormat    = "AGRIQUOTE_LOG_FORMAT"
	EnvSeedOnStart  = "AGRIQUOTE_SEED_ON_START"
	EnvAutoMigrate  = "AGRIQUOTE_AUTO_MIGRATE"
	EnvDBDriver     = "AGRIQUOTE_DB_DRIVER"
	EnvDBDSN        = "AGRIQUOTE_DB_DSN"
	EnvDBHost       = "AGRIQUOTE_DB_HOST"
	EnvDBUser       = "AGRIQUOTE_DB_USER"
	EnvDBName       = "AGRIQUOTE_DB_NAME"
	EnvSQLitePath   = "AGRIQUOTE_SQLITE_PATH"
	EnvRedisURL     = "AGRIQUOTE_REDIS_URL"
	EnvRedisAddr    = "AGRIQUOTE_REDIS_ADDR"
	EnvJWTSecret    = "AGRIQUOTE_JWT_SECRET"
	EnvJWTIssuer    = "AGRIQUOTE_JWT_ISSUER"
	EnvJWTExpMins   = "AGRIQUOTE_JWT_EXPIRATION_MINUTES"
	EnvLockBackend  = "AGRIQUOTE_LOCK_BACKEND"
	EnvGeminiAPIKey = "AGRIQUOTE_GEMINI_API_KEY"

	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"

	LockBackendLocal = "local"
	LockBackendRedis = "redis"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
