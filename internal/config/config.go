package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

var (
	ErrProviderNotFound = errors.New("provider is not configured")
	ErrModelNotFound    = errors.New("model not found in any configured provider")
)

type Config struct {
	LogLevel          string        `yaml:"log-level" env-default:"info"`
	RecordsDir        string        `yaml:"records-dir" env-default:"./records"`
	SQLiteStoragePath string        `yaml:"sqlite-storage-path"`
	RequestTimeout    time.Duration `yaml:"request-timeout" env-default:"90s"`
	Redis             Redis         `yaml:"redis"`
	Black             Player        `yaml:"black"`
	White             Player        `yaml:"white"`
	Providers         []Provider    `yaml:"providers"`
}

type Redis struct {
	Host string `yaml:"host" env-default:"localhost"`
	Port string `yaml:"port" env-default:"6379"`
}

// Player selects the move source for one color. Source is "llm", "random"
// or "human"; provider and model apply to the llm source only.
type Player struct {
	Source   string `yaml:"source" env-default:"llm"`
	Provider string `yaml:"provider"`
	Model    string `yaml:"model"`
}

// Provider is one OpenAI-compatible endpoint and the models it serves.
// When api-key is not set in yaml it is taken from <NAME>_API_KEY.
type Provider struct {
	Name    string   `yaml:"name"`
	APIKey  string   `yaml:"api-key"`
	BaseURL string   `yaml:"base-url"`
	Models  []string `yaml:"models"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	for i := range config.Providers {
		if config.Providers[i].APIKey == "" {
			envName := strings.ToUpper(config.Providers[i].Name) + "_API_KEY"
			config.Providers[i].APIKey = os.Getenv(envName)
		}
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}

// FindProvider returns the configured provider with the given name.
func (that *Config) FindProvider(name string) (*Provider, error) {
	for i := range that.Providers {
		if that.Providers[i].Name == name {
			return &that.Providers[i], nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrProviderNotFound, name)
}

// ProviderForModel finds the provider serving the given model name.
func (that *Config) ProviderForModel(model string) (*Provider, error) {
	for i := range that.Providers {
		for _, known := range that.Providers[i].Models {
			if known == model {
				return &that.Providers[i], nil
			}
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrModelNotFound, model)
}

// PlayerProvider resolves the provider for a player: by explicit provider
// name when set, otherwise by model lookup.
func (that *Config) PlayerProvider(player Player) (*Provider, error) {
	if player.Provider != "" {
		return that.FindProvider(player.Provider)
	}

	return that.ProviderForModel(player.Model)
}
