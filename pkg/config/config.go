package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "JUVO"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "JUVO_DB_DSN"
	EnvDBHost = "JUVO_DB_HOST"
	EnvDBUser = "JUVO_DB_USER"
	EnvDBName = "JUVO_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	FeatureFlags FeatureFlagsConfig
	GCP          GCPConfig
	PubSub       PubSubConfig
	FCM          FCMConfig
	Dispatch     DispatchConfig
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
	Env          string `envconfig:"JUVO_APP_ENV" required:"true"`
	Port         string `envconfig:"JUVO_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"JUVO_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"JUVO_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"JUVO_DB_DSN"`
	Driver string `envconfig:"JUVO_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"JUVO_DB_HOST"`
	LegacyPort     int    `envconfig:"JUVO_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"JUVO_DB_USER"`
	LegacyPassword string `envconfig:"JUVO_DB_PASSWORD"`
	LegacyName     string `envconfig:"JUVO_DB_NAME"`
	LegacySSLMode  string `envconfig:"JUVO_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"JUVO_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"JUVO_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"JUVO_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"JUVO_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"JUVO_REDIS_URL" required:"true"`
	Address      string        `envconfig:"JUVO_REDIS_ADDR"`
	Password     string        `envconfig:"JUVO_REDIS_PASSWORD"`
	DB           int           `envconfig:"JUVO_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"JUVO_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"JUVO_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"JUVO_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"JUVO_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"JUVO_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"JUVO_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"JUVO_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"JUVO_JWT_EXPIRATION_MINUTES" default:"60"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"JUVO_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"JUVO_AUTO_MIGRATE" default:"false"`
}

type GCPConfig struct {
	ProjectID              string `envconfig:"JUVO_GCP_PROJECT_ID" required:"true"`
	CredentialsJSON        string `envconfig:"JUVO_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"JUVO_GOOGLE_APPLICATION_CREDENTIALS"`
}

type PubSubConfig struct {
	OrdersTopic        string `envconfig:"JUVO_PUBSUB_ORDERS_TOPIC" default:"juvo-order-events"`
	OrdersSubscription string `envconfig:"JUVO_PUBSUB_ORDERS_SUBSCRIPTION" required:"true"`
}

type FCMConfig struct {
	CredentialsFile   string `envconfig:"JUVO_FCM_CREDENTIALS_FILE"`
	CredentialsBase64 string `envconfig:"JUVO_FCM_CREDENTIALS_BASE64"`
}

// DispatchConfig carries the defaults for the driver assignment workflow.
// Enabled and AcceptanceDelaySeconds act as fallbacks when the settings
// store has no override.
type DispatchConfig struct {
	Enabled                bool          `envconfig:"JUVO_DISPATCH_ENABLED" default:"true"`
	ActivityWindowMinutes  int           `envconfig:"JUVO_DISPATCH_ACTIVITY_WINDOW_MINUTES" default:"10"`
	AcceptanceDelaySeconds int           `envconfig:"JUVO_DISPATCH_ACCEPTANCE_DELAY_SECONDS" default:"30"`
	IdempotencyTTL         time.Duration `envconfig:"JUVO_DISPATCH_IDEMPOTENCY_TTL" default:"720h"`
}

// ActivityWindow returns the trailing interval inside which a driver's
// online flag is still trusted.
func (d DispatchConfig) ActivityWindow() time.Duration {
	if d.ActivityWindowMinutes <= 0 {
		return 10 * time.Minute
	}
	return time.Duration(d.ActivityWindowMinutes) * time.Minute
}

// AcceptanceDelay returns the pause between successive driver notifications.
func (d DispatchConfig) AcceptanceDelay() time.Duration {
	if d.AcceptanceDelaySeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(d.AcceptanceDelaySeconds) * time.Second
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
