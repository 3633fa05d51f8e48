package config

// EnvPrefix is intentionally empty: every variable already carries the
// GLOW24_ prefix in its envconfig tag.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

const (
	EnvAppEnv   = "GLOW24_APP_ENV"
	EnvPort     = "GLOW24_APP_PORT"
	EnvDBDSN    = "GLOW24_DB_DSN"
	EnvDBHost   = "GLOW24_DB_HOST"
	EnvDBUser   = "GLOW24_DB_USER"
	EnvDBName   = "GLOW24_DB_NAME"
	EnvRedisURL = "GLOW24_REDIS_URL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
