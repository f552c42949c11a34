package config

import (
	"log"
	"strings"
	"time"

	"shiffy/services/weekwindow"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	Timezone          string `mapstructure:"TIMEZONE"`
	// Comma-separated proxy IPs/CIDRs whose X-Forwarded-For is believed.
	TrustedProxies string `mapstructure:"TRUSTED_PROXIES"`

	// MongoDB.
	DatabaseURL   string `mapstructure:"DATABASE_URL"`
	MongoDatabase string `mapstructure:"MONGO_DATABASE"`

	// Redis configuration.
	RedisAddr               string `mapstructure:"REDIS_ADDR"`
	RedisPassword           string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB            int    `mapstructure:"REDIS_CACHE_DB"`
	RedisQueueDB            int    `mapstructure:"REDIS_QUEUE_DB"`
	ScheduleCacheTTLMinutes int    `mapstructure:"SCHEDULE_CACHE_TTL_MINUTES"`

	// Week window defaults for schedule views.
	WeeksBack    int    `mapstructure:"WEEKS_BACK"`
	WeeksForward int    `mapstructure:"WEEKS_FORWARD"`
	WeekStartsOn string `mapstructure:"WEEK_STARTS_ON"`

	// Schedule generation.
	GeminiAPIKey   string `mapstructure:"GEMINI_API_KEY"`
	GeminiModel    string `mapstructure:"GEMINI_MODEL"`
	GenerationCron string `mapstructure:"GENERATION_CRON"`

	FirebaseCredentialsPath string `mapstructure:"FIREBASE_CREDENTIALS_PATH"`
}

var AppConfig Config

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	v.SetDefault("TIMEZONE", "UTC")
	v.SetDefault("TRUSTED_PROXIES", "")
	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DATABASE", "shiffy")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_CACHE_DB", 0)
	v.SetDefault("REDIS_QUEUE_DB", 1)
	v.SetDefault("SCHEDULE_CACHE_TTL_MINUTES", 15)
	v.SetDefault("WEEKS_BACK", 4)
	v.SetDefault("WEEKS_FORWARD", 3)
	v.SetDefault("WEEK_STARTS_ON", "monday")
	v.SetDefault("GEMINI_API_KEY", "")
	v.SetDefault("GEMINI_MODEL", "gemini-1.5-pro")
	v.SetDefault("GENERATION_CRON", "0 6 * * 4")
	v.SetDefault("FIREBASE_CREDENTIALS_PATH", "")
}

// Load reads config.yaml from the given paths, then environment variables.
func Load(paths ...string) (Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	// Automatically use environment variables where available.
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, err
		}
		log.Println("No config file found, using environment variables only")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig populates AppConfig from .env, config.yaml in "." or "./config", and the environment.
func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := Load(".", "./config")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if _, err := cfg.WindowConfig(); err != nil {
		log.Fatalf("Invalid week window config: %v", err)
	}
	AppConfig = cfg
}

// WindowConfig converts the WEEKS_* settings into a validated window config.
func (c Config) WindowConfig() (weekwindow.Config, error) {
	startsOn, err := weekwindow.ParseWeekStartsOn(c.WeekStartsOn)
	if err != nil {
		return weekwindow.Config{}, err
	}
	wc := weekwindow.Config{
		WeeksBack:    c.WeeksBack,
		WeeksForward: c.WeeksForward,
		WeekStartsOn: startsOn,
	}
	if err := wc.Validate(); err != nil {
		return weekwindow.Config{}, err
	}
	return wc, nil
}

// Location returns the configured timezone, falling back to UTC.
func (c Config) Location() *time.Location {
	if c.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		log.Printf("Unknown TIMEZONE %q, using UTC", c.Timezone)
		return time.UTC
	}
	return loc
}

// TrustedProxyList splits TRUSTED_PROXIES. Empty means no proxy is trusted.
func (c Config) TrustedProxyList() []string {
	var out []string
	for _, p := range strings.Split(c.TrustedProxies, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ScheduleCacheTTL is the lifetime of cached schedule entries.
func (c Config) ScheduleCacheTTL() time.Duration {
	if c.ScheduleCacheTTLMinutes <= 0 {
		return 15 * time.Minute
	}
	return time.Duration(c.ScheduleCacheTTLMinutes) * time.Minute
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
