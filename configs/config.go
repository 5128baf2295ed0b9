package configs

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"line-callback/pkg/validator"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config struct
type Config struct {
	App       `mapstructure:"app"`
	Line      `mapstructure:"line"`
	Bot       `mapstructure:"bot"`
	Evaluator `mapstructure:"evaluator"`
}

// App struct
type App struct {
	Debug    bool   `mapstructure:"debug"`
	Env      string `mapstructure:"env"`
	Port     string `mapstructure:"port" validate:"required,numeric"`
	LogLevel string `mapstructure:"log_level" validate:"omitempty,oneof=trace debug info warn warning error fatal panic"`
}

// Line struct
type Line struct {
	ChannelSecret string `mapstructure:"channel_secret" validate:"required"`
	ChannelToken  string `mapstructure:"channel_access_token" validate:"required"`
	APIEndpoint   string `mapstructure:"api_endpoint" validate:"omitempty,url"`
	Timeout       int    `mapstructure:"timeout" validate:"gte=0"`
}

// Bot struct
type Bot struct {
	CallbackPath string `mapstructure:"callback_path" validate:"required,startswith=/"`
	EchoTemplate string `mapstructure:"echo_template" validate:"required"`
}

// Evaluator struct
type Evaluator struct {
	URL          string   `mapstructure:"url" validate:"omitempty,url"`
	Timeout      int      `mapstructure:"timeout" validate:"gte=0"`
	Triggers     []string `mapstructure:"triggers"`
	ErrorMessage string   `mapstructure:"error_message" validate:"required"`
}

const (
	// DefaultEchoTemplate is applied to every non-trigger text message
	DefaultEchoTemplate = "You said: %s"
	// DefaultEvaluatorErrorMessage is replied when the evaluator cannot be reached
	DefaultEvaluatorErrorMessage = "評価サーバーに接続できませんでした。/ Could not reach the evaluation server."
)

// DefaultTriggers are the phrases that route a text message to the evaluator
var DefaultTriggers = []string{"評価して", "evaluate"}

var config Config

// InitViper func
func InitViper(path, env string) error {
	return getConfig(path, env)
}

// GetViper func
func GetViper() *Config {
	return &config
}

// LoadDotEnv loads a local .env file unless running on Vercel, where the
// platform injects the environment itself. A missing file is not an error.
func LoadDotEnv(files ...string) {
	if os.Getenv("VERCEL_ENV") != "" {
		return
	}
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, os.ErrNotExist) {
		logrus.Warnf("Failed to load .env file: %v", err)
	}
}

func setDefaults() {
	viper.SetDefault("app.debug", false)
	viper.SetDefault("app.env", "")
	viper.SetDefault("app.port", "5000")
	viper.SetDefault("app.log_level", "info")
	viper.SetDefault("line.channel_secret", "")
	viper.SetDefault("line.channel_access_token", "")
	viper.SetDefault("line.api_endpoint", "")
	viper.SetDefault("line.timeout", 5)
	viper.SetDefault("bot.callback_path", "/callback")
	viper.SetDefault("bot.echo_template", DefaultEchoTemplate)
	viper.SetDefault("evaluator.url", "")
	viper.SetDefault("evaluator.timeout", 5)
	viper.SetDefault("evaluator.triggers", DefaultTriggers)
	viper.SetDefault("evaluator.error_message", DefaultEvaluatorErrorMessage)
}

func getConfig(path, env string) error {
	viper.Reset()
	setDefaults()

	name := "config"
	if env != "" {
		name = "config." + env
	}
	viper.SetConfigName(name)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(path)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	// hosting platforms hand out the listen port as PORT
	if err := viper.BindEnv("app.port", "APP_PORT", "PORT"); err != nil {
		return err
	}

	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
		logrus.Infof("No %s.yaml in %s, using defaults and environment", name, path)
	} else {
		viper.WatchConfig()
		viper.OnConfigChange(func(e fsnotify.Event) {
			logrus.Infof("Config file has changed: %s", e.Name)
		})
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Evaluator.Triggers = normalizeTriggers(cfg.Evaluator.Triggers)

	if err := validator.New().ValidateStruct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	config = cfg
	return nil
}

// normalizeTriggers drops empty entries, which show up when
// EVALUATOR_TRIGGERS is split on a trailing comma.
func normalizeTriggers(triggers []string) []string {
	out := make([]string, 0, len(triggers))
	for _, t := range triggers {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
