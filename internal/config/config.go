package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv     = "NFL_AGENT_CONFIG"
	openAIAPIKeyEnv   = "OPENAI_API_KEY"
	openAIModelEnv    = "OPENAI_MODEL"
	telegramTokenEnv  = "TELEGRAM_BOT_TOKEN"
	telegramChatIDEnv = "TELEGRAM_CHAT_ID"
)

// Config holds high-level settings required across the application.
type Config struct {
	ESPN          ESPNConfig         `yaml:"espn"`
	LLM           LLMConfig          `yaml:"llm"`
	Research      ResearchConfig     `yaml:"research"`
	Notifications NotificationConfig `yaml:"notifications"`
	Logging       LoggingConfig      `yaml:"logging"`
}

// ESPNConfig describes how to reach the public ESPN APIs.
type ESPNConfig struct {
	CoreAPIURL     string        `yaml:"coreApiUrl"`
	SiteAPIURL     string        `yaml:"siteApiUrl"`
	Season         string        `yaml:"season"`
	SeasonType     string        `yaml:"seasonType"`
	RequestTimeout time.Duration `yaml:"requestTimeout"`
	MaxRetries     int           `yaml:"maxRetries"`
}

// LLMConfig defines how to contact an OpenAI-compatible chat API.
type LLMConfig struct {
	Endpoint    string  `yaml:"endpoint"`
	Model       string  `yaml:"model"`
	APIKey      string  `yaml:"apiKey"`
	Temperature float64 `yaml:"temperature"`
	MaxRetries  int     `yaml:"maxRetries"`
}

// ResearchConfig bounds the article-research loop.
type ResearchConfig struct {
	// MinArticles keeps the loop reading before completeness checks apply.
	MinArticles int `yaml:"minArticles"`
	// MaxArticles is the hard guard against model-driven non-termination.
	MaxArticles int `yaml:"maxArticles"`
	// MaxContentLength truncates article bodies before summarization.
	MaxContentLength int `yaml:"maxContentLength"`
}

// NotificationConfig encapsulates outbound channels (Telegram, etc.).
type NotificationConfig struct {
	Telegram TelegramConfig `yaml:"telegram"`
}

// TelegramConfig wires all data required to send messages.
type TelegramConfig struct {
	BotToken string `yaml:"botToken"`
	ChatID   string `yaml:"chatId"`
}

// LoggingConfig controls log verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(openAIAPIKeyEnv); v != "" {
		c.LLM.APIKey = v
	}

	if v := os.Getenv(openAIModelEnv); v != "" {
		c.LLM.Model = v
	}

	if v := os.Getenv(telegramTokenEnv); v != "" {
		c.Notifications.Telegram.BotToken = v
	}

	if v := os.Getenv(telegramChatIDEnv); v != "" {
		c.Notifications.Telegram.ChatID = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.ESPN.CoreAPIURL != "" {
		base.ESPN.CoreAPIURL = override.ESPN.CoreAPIURL
	}
	if override.ESPN.SiteAPIURL != "" {
		base.ESPN.SiteAPIURL = override.ESPN.SiteAPIURL
	}
	if override.ESPN.Season != "" {
		base.ESPN.Season = override.ESPN.Season
	}
	if override.ESPN.SeasonType != "" {
		base.ESPN.SeasonType = override.ESPN.SeasonType
	}
	if override.ESPN.RequestTimeout > 0 {
		base.ESPN.RequestTimeout = override.ESPN.RequestTimeout
	}
	if override.ESPN.MaxRetries > 0 {
		base.ESPN.MaxRetries = override.ESPN.MaxRetries
	}

	if override.LLM.Endpoint != "" {
		base.LLM.Endpoint = override.LLM.Endpoint
	}
	if override.LLM.Model != "" {
		base.LLM.Model = override.LLM.Model
	}
	if override.LLM.APIKey != "" {
		base.LLM.APIKey = override.LLM.APIKey
	}
	if override.LLM.Temperature > 0 {
		base.LLM.Temperature = override.LLM.Temperature
	}
	if override.LLM.MaxRetries > 0 {
		base.LLM.MaxRetries = override.LLM.MaxRetries
	}

	if override.Research.MinArticles > 0 {
		base.Research.MinArticles = override.Research.MinArticles
	}
	if override.Research.MaxArticles > 0 {
		base.Research.MaxArticles = override.Research.MaxArticles
	}
	if override.Research.MaxContentLength > 0 {
		base.Research.MaxContentLength = override.Research.MaxContentLength
	}

	if override.Notifications.Telegram.BotToken != "" {
		base.Notifications.Telegram.BotToken = override.Notifications.Telegram.BotToken
	}
	if override.Notifications.Telegram.ChatID != "" {
		base.Notifications.Telegram.ChatID = override.Notifications.Telegram.ChatID
	}

	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	return base
}

func defaultConfig() Config {
	return Config{
		ESPN: ESPNConfig{
			CoreAPIURL:     "https://sports.core.api.espn.com/v2/sports/football/leagues/nfl",
			SiteAPIURL:     "https://site.api.espn.com/apis/site/v2/sports/football/nfl",
			Season:         "2025",
			SeasonType:     "2",
			RequestTimeout: 10 * time.Second,
			MaxRetries:     3,
		},
		LLM: LLMConfig{
			Endpoint:    "https://api.openai.com/v1/chat/completions",
			Model:       "gpt-4o-mini",
			Temperature: 0.1,
			MaxRetries:  5,
		},
		Research: ResearchConfig{
			MinArticles:      5,
			MaxArticles:      10,
			MaxContentLength: 5000,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}
