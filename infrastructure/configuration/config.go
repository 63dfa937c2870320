package configuration

import (
	"fmt"
	"os"
	"strconv"

	"tube-chat/infrastructure/logger"

	"github.com/spf13/viper"
)

type Config struct {
	App       App       `json:"app"`
	YouTube   YouTube   `json:"youtube"`
	Gemini    Gemini    `json:"gemini"`
	Cache     Cache     `json:"cache"`
	RateLimit RateLimit `json:"rateLimit"`
	Logger    Logger    `json:"logger"`
}

type App struct {
	Port int `json:"port"`
}

type YouTube struct {
	APIKey       string `json:"apiKey"`
	ClientID     string `json:"clientId"`
	ClientSecret string `json:"clientSecret"`
	RedirectURI  string `json:"redirectURI"`
}

type Gemini struct {
	APIKey            string `json:"apiKey"`
	Model             string `json:"model"`
	RequestsPerMinute int    `json:"requestsPerMinute"`
}

type Cache struct {
	Capacity             int `json:"capacity"`
	TTLHours             int `json:"ttlHours"`
	SweepIntervalMinutes int `json:"sweepIntervalMinutes"`
}

// RateLimit holds the two independent sliding windows. Metadata fetches get a
// higher ceiling over a short window; transcript fetches a lower ceiling over
// a long window, since their upstream quotas are governed independently.
type RateLimit struct {
	Metadata   Window `json:"metadata"`
	Transcript Window `json:"transcript"`
}

type Window struct {
	MaxRequests   int `json:"maxRequests"`
	WindowSeconds int `json:"windowSeconds"`
}

type Logger struct {
	Format string `json:"format"`
}

var C Config

func init() {
	LoadConfig()
	applyDefaults(&C)
}

func LoadConfig() {
	name := getConfig()
	viper.SetConfigName(name)
	viper.SetConfigType("json")
	viper.AddConfigPath(".")
	viper.AddConfigPath("../")
	viper.AddConfigPath("../../")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			logger.GetLogger().Warn("Config file not found")
		} else {
			logger.GetLogger().WithField("error", err).Error("Error reading config file")
		}
	}

	logger.GetLogger().WithField("config", name).Info("Config set up successfully")
	if err := viper.Unmarshal(&C); err != nil {
		logger.GetLogger().WithField("error", err).Error("Viper unable to decode into struct")
	}
}

func getConfig() string {
	name := "config"
	env := os.Getenv("ENV")
	if env != "" {
		name = fmt.Sprintf("%s-%s", name, env)
	}
	return name
}

// applyDefaults fills env fallbacks and the documented default policies:
// cache of 100 entries with a 24 hour TTL, metadata limited to 30 requests
// per minute, transcripts to 10 per 10 minutes.
func applyDefaults(c *Config) {
	// Port resolution order (env overrides config): APP_PORT -> PORT -> config -> default 10001
	if v := os.Getenv("APP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.App.Port = p
		}
	} else if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.App.Port = p
		}
	}
	if c.App.Port == 0 {
		c.App.Port = 10001
	}

	if c.Cache.Capacity <= 0 {
		c.Cache.Capacity = 100
	}
	if c.Cache.TTLHours <= 0 {
		c.Cache.TTLHours = 24
	}
	if c.Cache.SweepIntervalMinutes <= 0 {
		c.Cache.SweepIntervalMinutes = 60
	}

	if c.RateLimit.Metadata.MaxRequests <= 0 {
		c.RateLimit.Metadata.MaxRequests = 30
	}
	if c.RateLimit.Metadata.WindowSeconds <= 0 {
		c.RateLimit.Metadata.WindowSeconds = 60
	}
	if c.RateLimit.Transcript.MaxRequests <= 0 {
		c.RateLimit.Transcript.MaxRequests = 10
	}
	if c.RateLimit.Transcript.WindowSeconds <= 0 {
		c.RateLimit.Transcript.WindowSeconds = 600
	}

	if c.Gemini.Model == "" {
		c.Gemini.Model = os.Getenv("GEMINI_MODEL")
	}
	if c.Gemini.RequestsPerMinute <= 0 {
		c.Gemini.RequestsPerMinute = 60
	}
}
