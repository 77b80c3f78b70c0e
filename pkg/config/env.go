package config

// EnvPrefix scopes every environment variable the service reads.
const EnvPrefix = "LUX"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "LUX_DB_DSN"
	EnvDBHost = "LUX_DB_HOST"
	EnvDBUser = "LUX_DB_USER"
	EnvDBName = "LUX_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
