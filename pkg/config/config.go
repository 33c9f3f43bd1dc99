package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App      AppConfig
	HTTP     HTTPConfig
	Mongo    MongoConfig
	Tracing  TracingConfig
	LoadTest LoadTestConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
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

// MongoConfig configuración del almacén de documentos.
// Los valores por defecto apuntan a la instancia local usada en desarrollo.
type MongoConfig struct {
	URI        string
	Database   string
	Collection string
	Timeout    time.Duration // solo conexión y ping
}

// TracingConfig activa la exportación de spans a stdout.
type TracingConfig struct {
	Enabled bool
}

// LoadTestConfig parámetros de la prueba de carga (cmd/loadtest).
type LoadTestConfig struct {
	URL      string
	VUs      int
	Duration time.Duration
	Pause    time.Duration
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, PORT, MONGO_URI, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	r := reader{v: v}
	cfg := &Config{
		App: AppConfig{
			Env:      r.getString("APP_ENV", "development"),
			Name:     r.getString("APP_NAME", "clientes-api"),
			LogLevel: r.getString("LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host: r.getString("HTTP_HOST", "0.0.0.0"),
			Port: r.getInt("PORT", 3000),
		},
		Mongo: MongoConfig{
			URI:        r.getString("MONGO_URI", "mongodb://localhost:27017"),
			Database:   r.getString("MONGO_DATABASE", "seuBancoDeDados"),
			Collection: r.getString("MONGO_COLLECTION", "clientes"),
			Timeout:    time.Duration(r.getInt("MONGO_TIMEOUT_SECONDS", 10)) * time.Second,
		},
		Tracing: TracingConfig{
			Enabled: r.getBool("TRACING_ENABLED", false),
		},
		LoadTest: LoadTestConfig{
			URL:      r.getString("LOADTEST_URL", "http://localhost:3000/clientes"),
			VUs:      r.getInt("LOADTEST_VUS", 10),
			Duration: r.getDuration("LOADTEST_DURATION", 30*time.Second),
			Pause:    r.getDuration("LOADTEST_PAUSE", time.Second),
		},
	}
	if r.err != nil {
		return nil, r.err
	}
	return cfg, nil
}

// reader lee claves con valor por defecto y conserva el primer error de conversión.
type reader struct {
	v   *viper.Viper
	err error
}

func (r *reader) getString(key, def string) string {
	if r.v.IsSet(key) {
		return r.v.GetString(key)
	}
	return def
}

func (r *reader) getInt(key string, def int) int {
	if !r.v.IsSet(key) {
		return def
	}
	switch val := r.v.Get(key).(type) {
	case int:
		return val
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			r.fail(key, err)
			return def
		}
		return n
	default:
		return r.v.GetInt(key)
	}
}

func (r *reader) getBool(key string, def bool) bool {
	if !r.v.IsSet(key) {
		return def
	}
	b, err := strconv.ParseBool(strings.TrimSpace(r.v.GetString(key)))
	if err != nil {
		r.fail(key, err)
		return def
	}
	return b
}

func (r *reader) getDuration(key string, def time.Duration) time.Duration {
	if !r.v.IsSet(key) {
		return def
	}
	d, err := time.ParseDuration(strings.TrimSpace(r.v.GetString(key)))
	if err != nil {
		r.fail(key, err)
		return def
	}
	return d
}

func (r *reader) fail(key string, err error) {
	if r.err == nil {
		r.err = fmt.Errorf("config %s: %w", key, err)
	}
}
