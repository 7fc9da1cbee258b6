package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Drivers del registro de archivo.
const (
	ArchiveDriverPostgres = "postgres"
	ArchiveDriverMemory   = "memory"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
// Nada de esto llega al núcleo Factur-X: el núcleo solo recibe parámetros explícitos.
type Config struct {
	App     AppConfig
	DB      DBConfig
	JWT     JWTConfig
	HTTP    HTTPConfig
	Archive ArchiveConfig
	Batch   BatchConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	MaxConns    int
}

// ConnectionString devuelve DATABASE_URL si está definido; si no, el DSN construido.
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN connection string con la contraseña codificada en URL.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=" + c.SSLMode,
	}
	return u.String()
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ArchiveConfig registro de archivo y sello.
type ArchiveConfig struct {
	Driver           string // postgres | memory
	SealCertPath     string // .pem/.crt o .p12/.pfx; vacío = sin sello
	SealKeyPath      string // llave .pem si el certificado es PEM
	SealCertPassword string // contraseña del .p12
}

// SealEnabled indica si hay certificado configurado.
func (c ArchiveConfig) SealEnabled() bool {
	return c.SealCertPath != ""
}

// BatchConfig generación por lotes.
type BatchConfig struct {
	Concurrency int
	MaxItems    int
}

// Load lee la configuración desde variables de entorno (y opcionalmente .env / config.env).
// Las env vars tienen prioridad.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // opcional

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // opcional

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "taller-facturx"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "taller_facturx"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			MaxConns:    getInt(v, "DB_MAX_CONNS", 10),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			Issuer:     getString(v, "JWT_ISSUER", "taller-facturx"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Archive: ArchiveConfig{
			Driver:           strings.ToLower(getString(v, "ARCHIVE_DRIVER", ArchiveDriverPostgres)),
			SealCertPath:     getString(v, "ARCHIVE_SEAL_CERT_PATH", ""),
			SealKeyPath:      getString(v, "ARCHIVE_SEAL_KEY_PATH", ""),
			SealCertPassword: getString(v, "ARCHIVE_SEAL_PASSWORD", ""),
		},
		Batch: BatchConfig{
			Concurrency: getInt(v, "BATCH_CONCURRENCY", 4),
			MaxItems:    getInt(v, "BATCH_MAX_ITEMS", 200),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Archive.Driver {
	case ArchiveDriverPostgres, ArchiveDriverMemory:
	default:
		return fmt.Errorf("config: ARCHIVE_DRIVER %q no soportado (postgres|memory)", c.Archive.Driver)
	}
	if c.Batch.Concurrency < 1 {
		return fmt.Errorf("config: BATCH_CONCURRENCY debe ser >= 1")
	}
	if c.Batch.MaxItems < 1 {
		return fmt.Errorf("config: BATCH_MAX_ITEMS debe ser >= 1")
	}
	return nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if !v.IsSet(key) {
		return def
	}
	if s, ok := v.Get(key).(string); ok {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return def
		}
		return n
	}
	return v.GetInt(key)
}
