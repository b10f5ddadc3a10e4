package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App      AppConfig
	HTTP     HTTPConfig
	Session  SessionConfig
	Document DocumentConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string // trace, debug, info, warn, error
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host        string
	Port        int
	SwaggerFile string // vacío o inexistente = sin /docs
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// SessionConfig sesiones de edición en memoria.
type SessionConfig struct {
	TTL     time.Duration // inactividad tras la cual la sesión se descarta
	DueDays int           // días entre emisión y vencimiento en facturas nuevas
}

// Motores de PDF disponibles.
const (
	EngineLayout = "layout" // coordenadas absolutas sobre gofpdf
	EngineMaroto = "maroto" // filas y columnas con Maroto v2
)

// DocumentConfig apariencia del PDF y formato de moneda.
type DocumentConfig struct {
	Engine         string
	Brand          string
	FooterText     string
	CurrencyLocale string // BCP 47, ej. en-IN
	CurrencyCode   string // ISO 4217, ej. INR
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, HTTP_PORT, PDF_ENGINE, etc.
func Load() (*Config, error) {
	// .env al entorno del proceso; si no existe no pasa nada
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "invoicepro"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host:        getString(v, "HTTP_HOST", "127.0.0.1"),
			Port:        getInt(v, "HTTP_PORT", 8080),
			SwaggerFile: getString(v, "SWAGGER_FILE", "./docs/swagger.json"),
		},
		Session: SessionConfig{
			TTL:     time.Duration(getInt(v, "SESSION_TTL_MINUTES", 120)) * time.Minute,
			DueDays: getInt(v, "DUE_DAYS", 15),
		},
		Document: DocumentConfig{
			Engine:         strings.ToLower(getString(v, "PDF_ENGINE", EngineLayout)),
			Brand:          getString(v, "BRAND_NAME", "InvoicePro"),
			FooterText:     getString(v, "FOOTER_TEXT", "Generated with InvoicePro - www.invoicepro.in"),
			CurrencyLocale: getString(v, "CURRENCY_LOCALE", "en-IN"),
			CurrencyCode:   getString(v, "CURRENCY_CODE", "INR"),
		},
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Document.Engine {
	case EngineLayout, EngineMaroto:
	default:
		return fmt.Errorf("config: PDF_ENGINE %q no soportado (layout|maroto)", c.Document.Engine)
	}
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("config: HTTP_PORT %d fuera de rango", c.HTTP.Port)
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("config: SESSION_TTL_MINUTES debe ser positivo")
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
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
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
