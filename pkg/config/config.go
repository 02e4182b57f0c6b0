package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App      AppConfig
	HTTP     HTTPConfig
	AppSheet AppSheetConfig
	Rates    RatesConfig
	Redis    RedisConfig
	DB       DBConfig
	Policy   PolicyConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	Version  string
	LogLevel string
	Timezone string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host        string
	Port        int
	CORSOrigins string // lista separada por comas; "*" permite cualquiera
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// AppSheetConfig credenciales y parámetros del almacén tabular (AppSheet).
type AppSheetConfig struct {
	APIBase        string
	AppID          string
	AccessKey      string
	Locale         string
	Timezone       string
	TimeoutSeconds int
}

// RatesConfig tipos de cambio por defecto al abrir un turno (MXN por unidad).
type RatesConfig struct {
	USD float64
	CAD float64
	EUR float64
}

// RedisConfig snapshot opcional del catálogo. Addr vacío = deshabilitado.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTLHours int
}

// Enabled indica si hay un Redis configurado.
func (c RedisConfig) Enabled() bool { return c.Addr != "" }

// DBConfig configuración de PostgreSQL para el archivo de cortes.
// Si DatabaseURL no está vacío, se usa como connection string completo.
// Sin DatabaseURL ni Host el archivo queda deshabilitado.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// Enabled indica si se configuró una base de datos.
func (c DBConfig) Enabled() bool { return c.DatabaseURL != "" || c.Host != "" }

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

// PolicyConfig reglas de negocio ajustables por despliegue.
type PolicyConfig struct {
	// RequireAuthOnVariance exige credencial de supervisor al cerrar un corte con diferencias.
	RequireAuthOnVariance bool
	// TrackSaleRegistration marca el encabezado de la venta Pendiente/Confirmada/Fallida.
	TrackSaleRegistration bool
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, APPSHEET_APP_ID, TASA_USD, etc.
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

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "UMO POS API"),
			Version:  getString(v, "APP_VERSION", "1.0.2"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
			Timezone: getString(v, "APP_TIMEZONE", "America/Mexico_City"),
		},
		HTTP: HTTPConfig{
			Host:        getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:        getInt(v, "PORT", getInt(v, "HTTP_PORT", 3000)),
			CORSOrigins: getString(v, "CORS_ORIGINS", "*"),
		},
		AppSheet: AppSheetConfig{
			APIBase:        getString(v, "APPSHEET_API_BASE", "https://www.appsheet.com/api/v2/apps"),
			AppID:          getString(v, "APPSHEET_APP_ID", ""),
			AccessKey:      getString(v, "APPSHEET_ACCESS_KEY", ""),
			Locale:         getString(v, "APPSHEET_LOCALE", "es-MX"),
			Timezone:       getString(v, "APPSHEET_TIMEZONE", "America/Mexico_City"),
			TimeoutSeconds: getInt(v, "APPSHEET_TIMEOUT_SECONDS", 30),
		},
		Rates: RatesConfig{
			USD: getFloat(v, "TASA_USD", 17.5),
			CAD: getFloat(v, "TASA_CAD", 13),
			EUR: getFloat(v, "TASA_EUR", 19),
		},
		Redis: RedisConfig{
			Addr:     getString(v, "REDIS_ADDR", ""),
			Password: getString(v, "REDIS_PASSWORD", ""),
			DB:       getInt(v, "REDIS_DB", 0),
			TTLHours: getInt(v, "REDIS_SNAPSHOT_TTL_HOURS", 72),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", ""),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "umo_pos"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		Policy: PolicyConfig{
			RequireAuthOnVariance: getBool(v, "CORTE_AUTORIZACION_OBLIGATORIA", false),
			TrackSaleRegistration: getBool(v, "VENTAS_SEGUIMIENTO_REGISTRO", false),
		},
	}

	if cfg.AppSheet.AppID == "" || cfg.AppSheet.AccessKey == "" {
		return nil, fmt.Errorf("config: APPSHEET_APP_ID y APPSHEET_ACCESS_KEY son requeridos")
	}
	return cfg, nil
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

func getFloat(v *viper.Viper, key string, def float64) float64 {
	if !v.IsSet(key) {
		return def
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v.GetString(key)), 64)
	if err != nil || f <= 0 {
		return def
	}
	return f
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if !v.IsSet(key) {
		return def
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v.GetString(key)))
	if err != nil {
		return def
	}
	return b
}
