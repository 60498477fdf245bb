package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Backends de sesión soportados.
const (
	SessionBackendMemory = "memory"
	SessionBackendFile   = "file"
	SessionBackendRedis  = "redis"
)

// Modos del aviso de estoque bajo.
const (
	AdvisoryModeSnapshot = "snapshot" // calcula con la lista de productos cargada antes del envío
	AdvisoryModeServer   = "server"   // usa alerta_estoque devuelto por el backend
)

// Config agrupa la configuración del cliente y del servidor de desarrollo
// (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App      AppConfig
	API      APIConfig
	Session  SessionConfig
	Advisory AdvisoryConfig
	DB       DBConfig
	JWT      JWTConfig
	HTTP     HTTPConfig
	Seed     SeedConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// APIConfig configuración del backend REST consumido por el cliente.
type APIConfig struct {
	BaseURL   string
	Timeout   time.Duration
	RateLimit float64 // peticiones por segundo; 0 = sin límite
	RateBurst int
	UserAgent string
}

// SessionConfig dónde se guardan los tokens entre ejecuciones.
type SessionConfig struct {
	Backend       string // memory | file | redis
	FilePath      string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
}

// AdvisoryConfig aviso de estoque bajo y su publicación.
type AdvisoryConfig struct {
	Mode      string // snapshot | server
	AMQPURL   string // vacío = no publicar
	AMQPQueue string
}

// DBConfig configuración de PostgreSQL para el servidor de desarrollo.
// Si DatabaseURL y Host están vacíos el servidor usa almacenamiento en memoria.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// Enabled indica si hay una base configurada.
func (c DBConfig) Enabled() bool {
	return c.DatabaseURL != "" || c.Host != ""
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// JWTConfig firma de tokens del servidor de desarrollo.
type JWTConfig struct {
	Secret         string
	AccessMinutes  int
	RefreshMinutes int
	Issuer         string
}

// HTTPConfig configuración del servidor HTTP de desarrollo.
type HTTPConfig struct {
	Host           string
	Port           int
	LoginPerMinute int // intentos de login por IP y minuto; 0 = sin límite
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// SeedConfig usuario inicial del servidor de desarrollo.
type SeedConfig struct {
	Username string
	Password string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: API_BASE_URL, SESSION_BACKEND, ADVISORY_MODE, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "estoque"),
			LogLevel: getString(v, "LOG_LEVEL", "warn"),
		},
		API: APIConfig{
			BaseURL:   strings.TrimRight(getString(v, "API_BASE_URL", "http://localhost:8000"), "/"),
			Timeout:   time.Duration(getInt(v, "API_TIMEOUT_SECONDS", 15)) * time.Second,
			RateLimit: getFloat(v, "API_RATE_LIMIT", 0),
			RateBurst: getInt(v, "API_RATE_BURST", 5),
			UserAgent: getString(v, "API_USER_AGENT", "estoque-cliente"),
		},
		Session: SessionConfig{
			Backend:       getString(v, "SESSION_BACKEND", SessionBackendFile),
			FilePath:      getString(v, "SESSION_FILE", defaultSessionFile()),
			RedisAddr:     getString(v, "REDIS_ADDR", "localhost:6379"),
			RedisPassword: getString(v, "REDIS_PASSWORD", ""),
			RedisDB:       getInt(v, "REDIS_DB", 0),
			RedisPrefix:   getString(v, "REDIS_PREFIX", "estoque:sessao"),
		},
		Advisory: AdvisoryConfig{
			Mode:      getString(v, "ADVISORY_MODE", AdvisoryModeSnapshot),
			AMQPURL:   getString(v, "AMQP_URL", ""),
			AMQPQueue: getString(v, "AMQP_QUEUE", "estoque.alertas"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", ""),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "estoque"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			Secret:         getString(v, "JWT_SECRET", "dev-secret-cambiar"),
			AccessMinutes:  getInt(v, "JWT_ACCESS_MINUTES", 5),
			RefreshMinutes: getInt(v, "JWT_REFRESH_MINUTES", 24*60),
			Issuer:         getString(v, "JWT_ISSUER", "estoque-devserver"),
		},
		HTTP: HTTPConfig{
			Host:           getString(v, "HTTP_HOST", "127.0.0.1"),
			Port:           getInt(v, "HTTP_PORT", 8000),
			LoginPerMinute: getInt(v, "HTTP_LOGIN_PER_MINUTE", 20),
		},
		Seed: SeedConfig{
			Username: getString(v, "SEED_USER", "admin"),
			Password: getString(v, "SEED_PASSWORD", "admin123"),
		},
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate comprueba los valores enumerados y la URL base.
func (c *Config) Validate() error {
	switch c.Session.Backend {
	case SessionBackendMemory, SessionBackendFile, SessionBackendRedis:
	default:
		return fmt.Errorf("config: SESSION_BACKEND inválido %q (memory|file|redis)", c.Session.Backend)
	}
	switch c.Advisory.Mode {
	case AdvisoryModeSnapshot, AdvisoryModeServer:
	default:
		return fmt.Errorf("config: ADVISORY_MODE inválido %q (snapshot|server)", c.Advisory.Mode)
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("config: API_BASE_URL inválida %q", c.API.BaseURL)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("config: API_TIMEOUT_SECONDS debe ser positivo")
	}
	return nil
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".estoque-sessao.json"
	}
	return filepath.Join(home, ".estoque", "session.json")
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getFloat(v *viper.Viper, key string, def float64) float64 {
	if v.IsSet(key) {
		f, err := strconv.ParseFloat(strings.TrimSpace(v.GetString(key)), 64)
		if err != nil {
			return def
		}
		return f
	}
	return def
}
