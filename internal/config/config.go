package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret"`
	// bcrypt hashes of the terminal passcodes
	AdminPasscodeHash   string `yaml:"admin_passcode_hash"`
	CashierPasscodeHash string `yaml:"cashier_passcode_hash"`
	TokenTTLHours       int    `yaml:"token_ttl_hours"`
}

type SMSConfig struct {
	APIKey   string `yaml:"api_key"`
	APIURL   string `yaml:"api_url"`
	SenderID string `yaml:"sender_id"`
	DryRun   bool   `yaml:"dry_run"`
}

type TelegramConfig struct {
	BotToken string `yaml:"bot_token"`
	ChatID   int64  `yaml:"chat_id"`
}

type ReminderConfig struct {
	// cron spec for the daily overdue-credit job, e.g. "0 9 * * *"
	Schedule   string `yaml:"schedule"`
	OwnerEmail string `yaml:"owner_email"`
	SendSMS    bool   `yaml:"send_sms"`
}

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`
	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUser     string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
	} `yaml:"email"`
	Auth     AuthConfig     `yaml:"auth"`
	SMS      SMSConfig      `yaml:"sms"`
	Telegram TelegramConfig `yaml:"telegram"`
	Reminder ReminderConfig `yaml:"reminder"`
	Files    struct {
		RootDir  string `yaml:"root_dir"`
		FontPath string `yaml:"font_path"`
	} `yaml:"files"`
}

func LoadConfig() *Config {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config/config.yaml"
	}
	f, err := os.Open(path)
	if err != nil {
		panic("Failed to open " + path + ": " + err.Error())
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		panic("Failed to parse " + path + ": " + err.Error())
	}

	if cfg.Files.RootDir == "" {
		cfg.Files.RootDir = "./files"
	}
	if cfg.Files.FontPath == "" {
		cfg.Files.FontPath = "assets/fonts/DejaVuSans.ttf"
	}
	if cfg.Auth.TokenTTLHours <= 0 {
		cfg.Auth.TokenTTLHours = 12
	}
	if cfg.Reminder.Schedule == "" {
		cfg.Reminder.Schedule = "0 9 * * *"
	}
	return &cfg
}
