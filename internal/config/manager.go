package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"golang.org/x/text/language"

	"trends-desk/internal/dispatch"
)

const envPrefix = "TRENDS"

type manager struct {
	mu       sync.RWMutex
	config   *Config
	viper    *viper.Viper
	validate *validator.Validate
	path     string
}

// NewManager creates a new configuration manager
func NewManager() Manager {
	return &manager{
		viper:    viper.New(),
		validate: newValidator(),
	}
}

// Load reads configuration from defaults, an optional .env file, the
// environment, and configPath when it is not empty.
func (m *manager) Load(configPath string) (*Config, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_ = godotenv.Load()

	m.path = configPath
	m.setupViper(configPath)

	if configPath != "" {
		if err := m.viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	config, err := m.decode()
	if err != nil {
		return nil, err
	}
	m.config = config
	return config, nil
}

func (m *manager) Reload() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.config == nil {
		return fmt.Errorf("config not loaded")
	}

	if m.path != "" {
		if err := m.viper.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to reload config: %w", err)
		}
	}

	config, err := m.decode()
	if err != nil {
		return err
	}
	m.config = config
	return nil
}

func (m *manager) GetConfig() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

func (m *manager) setupViper(configPath string) {
	setDefaults(m.viper)

	if configPath != "" {
		m.viper.SetConfigFile(configPath)
	}

	m.viper.SetEnvPrefix(envPrefix)
	m.viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	m.viper.AutomaticEnv()
}

func (m *manager) decode() (*Config, error) {
	var config Config
	if err := m.viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := m.validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("trends.endpoint", "http://127.0.0.1:8000")
	v.SetDefault("trends.api_key", "")
	v.SetDefault("trends.language", "en-US")
	v.SetDefault("trends.tz_offset", 360)
	v.SetDefault("trends.trending_region", "united_kingdom")
	v.SetDefault("trends.realtime_region", "US")
	v.SetDefault("trends.timeout_seconds", 30)

	v.SetDefault("dispatch.cooldown_seconds", int(dispatch.DefaultCooldown/time.Second))

	v.SetDefault("display.column_width", 100)
	v.SetDefault("display.table_width", 600)
	v.SetDefault("display.table_height", 400)
	v.SetDefault("display.chart_width", 1200)
	v.SetDefault("display.chart_height", 800)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output", "stderr")
	v.SetDefault("logger.time_format", "")
}

func newValidator() *validator.Validate {
	v := validator.New()
	// report config keys rather than Go field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// BCP 47 tag, e.g. en-US
	_ = v.RegisterValidation("langtag", func(fl validator.FieldLevel) bool {
		_, err := language.Parse(fl.Field().String())
		return err == nil
	})
	return v
}

func (m *manager) validateConfig(config *Config) error {
	err := m.validate.Struct(config)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, formatFieldError(fe))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func formatFieldError(fe validator.FieldError) string {
	field := fieldPath(fe.Namespace())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "url":
		return fmt.Sprintf("%s must be a URL", field)
	case "langtag":
		return fmt.Sprintf("%s must be a language tag such as en-US, got %q", field, fe.Value())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "len":
		return fmt.Sprintf("%s must be %s characters", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// fieldPath turns "Config.trends.tz_offset" into "trends.tz_offset".
func fieldPath(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

