// Initializing common application configuration
package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	Generator GeneratorConfig `mapstructure:"generator"`
	Fonts     FontsConfig     `mapstructure:"fonts"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Kafka     KafkaConfig     `mapstructure:"kafka"`
}

type ServerConfig struct {
	AppVersion  string        `mapstructure:"app_version"`
	Host        string        `mapstructure:"host"`
	Port        string        `mapstructure:"port"`
	Timeout     time.Duration `mapstructure:"timeout"`
	IdleTimeout time.Duration `mapstructure:"idle_timeout"`
	Env         string        `mapstructure:"environment"`
	Mode        string        `mapstructure:"mode"`
	MaxUploadMB int64         `mapstructure:"max_upload_mb"`
	MaxPixels   int64         `mapstructure:"max_image_pixels"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type GeneratorConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type FontsConfig struct {
	Path         string  `mapstructure:"path"`
	HeadlineSize float64 `mapstructure:"headline_size"`
	LabelSize    float64 `mapstructure:"label_size"`
}

type StorageConfig struct {
	BasePath string `mapstructure:"base_path"`
	Archive  bool   `mapstructure:"archive"`
}

type KafkaConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Brokers string `mapstructure:"brokers"`
	Topic   string `mapstructure:"topic"`
}

// LoadConfig reads ./config/config.yaml when present. Defaults and environment variables
// (SERVER_PORT, GENERATOR_BASE_URL, ...) cover everything, so the file is optional.
// ENV_FILE points at a dotenv file other than ./.env.
func LoadConfig() (*viper.Viper, error) {
	_ = godotenv.Load(GetEnv("ENV_FILE", ".env"))

	viperInstance := viper.New()

	viperInstance.AddConfigPath("./config")
	viperInstance.SetConfigName("config")
	viperInstance.SetConfigType("yaml")

	setDefaults(viperInstance)
	viperInstance.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viperInstance.AutomaticEnv()

	if err := viperInstance.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}
	return viperInstance, nil
}

func ParseConfig(v *viper.Viper) (*Config, error) {
	var c Config

	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.app_version", "1.0.0")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8000")
	v.SetDefault("server.timeout", 180*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.max_upload_mb", 32)
	v.SetDefault("server.max_image_pixels", 89478485)

	v.SetDefault("log.level", "info")

	v.SetDefault("generator.base_url", "http://localhost:7860")
	v.SetDefault("generator.api_key", "")
	v.SetDefault("generator.timeout", 120*time.Second)

	v.SetDefault("fonts.path", "coolvetica.otf")
	v.SetDefault("fonts.headline_size", 40)
	v.SetDefault("fonts.label_size", 20)

	v.SetDefault("storage.base_path", "./storage")
	v.SetDefault("storage.archive", true)

	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.brokers", "localhost:9094")
	v.SetDefault("kafka.topic", "ad-renders")
}

func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
