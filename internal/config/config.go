package config

import (
	"gopkg.in/yaml.v3"
	"os"
	"time"
)

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret"`
	// В исходной системе оба TTL равны 3600с — оставлено как есть,
	// но настраивается.
	AccessTTLSeconds  int `yaml:"access_ttl_seconds"`
	RefreshTTLSeconds int `yaml:"refresh_ttl_seconds"`
}

type OtpConfig struct {
	TTLSeconds int `yaml:"ttl_seconds"`
	Digits     int `yaml:"digits"`
}

type TelegramConfig struct {
	BotToken string `yaml:"bot_token"`
	Enabled  bool   `yaml:"enabled"`
}

type RemindersConfig struct {
	Enabled         bool `yaml:"enabled"`
	IntervalSeconds int  `yaml:"interval_seconds"`
	BatchSize       int  `yaml:"batch_size"`
}

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`
	Redis RedisConfig `yaml:"redis"`
	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUser     string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
	} `yaml:"email"`
	Auth      AuthConfig      `yaml:"auth"`
	Otp       OtpConfig       `yaml:"otp"`
	Telegram  TelegramConfig  `yaml:"telegram"`
	Reminders RemindersConfig `yaml:"reminders"`
}

func LoadConfig() *Config {
	f, err := os.Open("config/config.yaml")
	if err != nil {
		panic("Failed to open config.yaml: " + err.Error())
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		panic("Failed to parse config.yaml: " + err.Error())
	}

	if cfg.Auth.AccessTTLSeconds == 0 {
		cfg.Auth.AccessTTLSeconds = 3600
	}
	if cfg.Auth.RefreshTTLSeconds == 0 {
		cfg.Auth.RefreshTTLSeconds = 3600
	}
	if cfg.Otp.TTLSeconds == 0 {
		cfg.Otp.TTLSeconds = 300
	}
	if cfg.Otp.Digits == 0 {
		cfg.Otp.Digits = 5
	}
	if cfg.Reminders.IntervalSeconds == 0 {
		cfg.Reminders.IntervalSeconds = 60
	}
	if cfg.Reminders.BatchSize == 0 {
		cfg.Reminders.BatchSize = 50
	}
	return &cfg
}

func (c *AuthConfig) AccessTTL() time.Duration {
	return time.Duration(c.AccessTTLSeconds) * time.Second
}

func (c *AuthConfig) RefreshTTL() time.Duration {
	return time.Duration(c.RefreshTTLSeconds) * time.Second
}

func (c *OtpConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}
