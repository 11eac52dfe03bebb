package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

// DefaultMySQLParams keeps RowsAffected counting matched rows so an update
// that writes identical values is not mistaken for a missing record.
const DefaultMySQLParams = "parseTime=true&multiStatements=true&clientFoundRows=true"

type Config struct {
	AppEnv            string        `env:"APP_ENV" env-default:"prod"`
	AppPort           string        `env:"APP_PORT" env-default:"8080"`
	TrustedProxiesRaw string        `env:"TRUSTED_PROXIES"`
	TrustedProxies    []string      `env:"-"`
	ShutdownTimeout   time.Duration `env:"SHUTDOWN_TIMEOUT" env-default:"10s"`

	DbDriver   string `env:"DB_DRIVER" env-default:"mysql"`
	DbHost     string `env:"MYSQL_HOST" env-default:"db"`
	DbPort     string `env:"MYSQL_PORT" env-default:"3306"`
	DbUser     string `env:"MYSQL_USER" env-default:"eisenq"`
	DbPassword string `env:"MYSQL_PASSWORD" env-default:"eisenq"`
	DbName     string `env:"MYSQL_DATABASE" env-default:"eisenq"`
	DbParams   string `env:"MYSQL_PARAMS" env-default:"parseTime=true&multiStatements=true&clientFoundRows=true"`
	SQLitePath string `env:"SQLITE_PATH" env-default:"eisenq.db"`

	Mongo MongoConfig
	Auth  AuthConfig

	DefaultTimezone       string `env:"DEFAULT_TIMEZONE" env-default:"UTC"`
	BulkDeleteConcurrency int    `env:"BULK_DELETE_CONCURRENCY" env-default:"8"`
	TranslationFolder     string `env:"TRANSLATION_FOLDER" env-default:"pkg/translator/translation"`
}

type MongoConfig struct {
	URI            string        `env:"MONGO_URI" env-default:"mongodb://localhost:27017"`
	Database       string        `env:"MONGO_DATABASE" env-default:"eisenq"`
	ConnectTimeout time.Duration `env:"MONGO_CONNECT_TIMEOUT" env-default:"10s"`
	Transactions   bool          `env:"MONGO_TRANSACTIONS" env-default:"false"`
}

type AuthConfig struct {
	JWTSecret   string `env:"AUTH_JWT_SECRET"`
	JWTIssuer   string `env:"AUTH_JWT_ISSUER"`
	JWTAudience string `env:"AUTH_JWT_AUDIENCE"`
}

// LoadConfig reads .env when present, then the process environment.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := new(Config)
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg.TrustedProxies = parseTrustedProxies(cfg.TrustedProxiesRaw)
	cfg.DbDriver = strings.ToLower(strings.TrimSpace(cfg.DbDriver))

	return cfg, nil
}

// Location resolves DefaultTimezone, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func parseTrustedProxies(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	proxies := make([]string, 0, len(parts))
	for _, part := range parts {
		proxy := strings.TrimSpace(part)
		if proxy == "" {
			continue
		}
		proxies = append(proxies, proxy)
	}

	if len(proxies) == 0 {
		return nil
	}

	return proxies
}
