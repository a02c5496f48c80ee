package config

import (
	"time"

	"golang.org/x/text/language"

	"trends-desk/internal/command"
	"trends-desk/internal/present"
	"trends-desk/pkg/logger"
	"trends-desk/pkg/trends"
)

// Config is the full application configuration.
type Config struct {
	Trends   TrendsConfig   `mapstructure:"trends"`
	Dispatch DispatchConfig `mapstructure:"dispatch"`
	Display  DisplayConfig  `mapstructure:"display"`
	Logger   LoggerConfig   `mapstructure:"logger"`
}

// TrendsConfig configures the trends gateway and request defaults.
type TrendsConfig struct {
	Endpoint       string `mapstructure:"endpoint" validate:"required,url"`
	APIKey         string `mapstructure:"api_key"`
	Language       string `mapstructure:"language" validate:"required,langtag"`
	TZOffset       int    `mapstructure:"tz_offset" validate:"min=-840,max=840"`
	TrendingRegion string `mapstructure:"trending_region" validate:"required"`
	RealtimeRegion string `mapstructure:"realtime_region" validate:"required,len=2"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"min=1,max=600"`
}

// DispatchConfig configures the request dispatcher.
type DispatchConfig struct {
	CooldownSeconds int `mapstructure:"cooldown_seconds" validate:"min=1,max=3600"`
}

// DisplayConfig sizes the table and chart windows.
type DisplayConfig struct {
	ColumnWidth float32 `mapstructure:"column_width" validate:"gt=0"`
	TableWidth  float32 `mapstructure:"table_width" validate:"gt=0"`
	TableHeight float32 `mapstructure:"table_height" validate:"gt=0"`
	ChartWidth  int     `mapstructure:"chart_width" validate:"min=100"`
	ChartHeight int     `mapstructure:"chart_height" validate:"min=100"`
}

// LoggerConfig configures logging.
type LoggerConfig struct {
	Level      string `mapstructure:"level" validate:"omitempty,oneof=debug info warn error fatal"`
	Format     string `mapstructure:"format" validate:"omitempty,oneof=console json"`
	Output     string `mapstructure:"output"`
	TimeFormat string `mapstructure:"time_format"`
}

// Manager loads and validates configuration.
type Manager interface {
	Load(configPath string) (*Config, error)
	Reload() error
	GetConfig() *Config
}

// LoggerConfig converts the logger section to a logger.Config.
func (c *Config) LoggerConfig() logger.Config {
	return logger.Config{
		Level:      c.Logger.Level,
		Format:     c.Logger.Format,
		Output:     c.Logger.Output,
		TimeFormat: c.Logger.TimeFormat,
	}
}

// ClientConfig returns the trends HTTP client configuration.
func (c *Config) ClientConfig() trends.HTTPClientConfig {
	return trends.HTTPClientConfig{
		Endpoint:   c.Trends.Endpoint,
		APIKey:     c.Trends.APIKey,
		Language:   c.Trends.Language,
		Timeout:    time.Duration(c.Trends.TimeoutSeconds) * time.Second,
		Connection: trends.DefaultConnectionConfig(),
	}
}

// Cooldown returns the rate-limit cooldown.
func (c *Config) Cooldown() time.Duration {
	return time.Duration(c.Dispatch.CooldownSeconds) * time.Second
}

// Settings are the per-request parameters every action shares.
func (c *Config) Settings() command.Settings {
	return command.Settings{
		Payload: trends.PayloadOptions{
			Language: c.Trends.Language,
			TZOffset: c.Trends.TZOffset,
		},
		TrendingRegion: c.Trends.TrendingRegion,
		RealtimeRegion: c.Trends.RealtimeRegion,
	}
}

// DisplayOptions returns the presenter window sizes.
func (c *Config) DisplayOptions() present.Options {
	return present.Options{
		ColumnWidth: c.Display.ColumnWidth,
		TableWidth:  c.Display.TableWidth,
		TableHeight: c.Display.TableHeight,
		ChartWidth:  c.Display.ChartWidth,
		ChartHeight: c.Display.ChartHeight,
	}
}

// LanguageTag is the parsed trends.language. Load has already validated it.
func (c *Config) LanguageTag() language.Tag {
	tag, err := language.Parse(c.Trends.Language)
	if err != nil {
		return language.AmericanEnglish
	}
	return tag
}
