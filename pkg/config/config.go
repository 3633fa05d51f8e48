package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Merchant     MerchantConfig
	Payment      PaymentConfig
	Shipping     ShippingConfig
	OrderAPI     OrderAPIConfig
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
	Env          string `envconfig:"GLOW24_APP_ENV" required:"true"`
	Port         string `envconfig:"GLOW24_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"GLOW24_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"GLOW24_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"GLOW24_DB_DSN"`
	Driver string `envconfig:"GLOW24_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"GLOW24_DB_HOST"`
	LegacyPort     int    `envconfig:"GLOW24_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"GLOW24_DB_USER"`
	LegacyPassword string `envconfig:"GLOW24_DB_PASSWORD"`
	LegacyName     string `envconfig:"GLOW24_DB_NAME"`
	LegacySSLMode  string `envconfig:"GLOW24_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"GLOW24_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"GLOW24_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"GLOW24_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"GLOW24_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"GLOW24_REDIS_URL" required:"true"`
	Address      string        `envconfig:"GLOW24_REDIS_ADDR"`
	Password     string        `envconfig:"GLOW24_REDIS_PASSWORD"`
	DB           int           `envconfig:"GLOW24_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"GLOW24_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"GLOW24_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"GLOW24_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"GLOW24_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"GLOW24_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// MerchantConfig identifies the seller on the UPI rail and on WhatsApp.
type MerchantConfig struct {
	UPIPayeeID     string `envconfig:"GLOW24_MERCHANT_UPI_ID" default:"glow24organics@paytm"`
	UPIPayeeName   string `envconfig:"GLOW24_MERCHANT_UPI_NAME" default:"Glow24 Organics"`
	WhatsAppNumber string `envconfig:"GLOW24_MERCHANT_WHATSAPP" default:"+919363717744"`
}

type PaymentConfig struct {
	CountdownSeconds  int           `envconfig:"GLOW24_PAYMENT_COUNTDOWN_SECONDS" default:"300"`
	VerificationDelay time.Duration `envconfig:"GLOW24_PAYMENT_VERIFICATION_DELAY" default:"2s"`
	SessionTTL        time.Duration `envconfig:"GLOW24_PAYMENT_SESSION_TTL" default:"30m"`
}

type ShippingConfig struct {
	FreeShippingMinimum int `envconfig:"GLOW24_SHIPPING_FREE_MINIMUM" default:"999"`
	FlatRate            int `envconfig:"GLOW24_SHIPPING_FLAT_RATE" default:"100"`
}

// OrderAPIConfig points at the remote order collaborator. Leaving the base URL
// empty disables remote writes; local state remains the source of truth.
type OrderAPIConfig struct {
	BaseURL string        `envconfig:"GLOW24_ORDER_API_BASE_URL"`
	Timeout time.Duration `envconfig:"GLOW24_ORDER_API_TIMEOUT" default:"10s"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"GLOW24_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"GLOW24_AUTO_MIGRATE" default:"false"`
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
