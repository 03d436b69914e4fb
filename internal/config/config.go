package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// DatabaseConfig holds the Postgres connection settings for the catalog store.
type DatabaseConfig struct {
	URL      string `yaml:"url"`
	Password string `yaml:"password"`
	Debug    bool   `yaml:"debug"`
}

// LLMConfig configures one OpenAI-compatible or Ollama endpoint.
type LLMConfig struct {
	Provider string `yaml:"provider"` // "openai" or "ollama"
	BaseURL  string `yaml:"base_url"`
	Key      string `yaml:"key"`
	Model    string `yaml:"model"`
}

// ShopConfig points at the Shopify storefront the catalog is ingested from.
type ShopConfig struct {
	BaseURL     string   `yaml:"base_url"`
	Collections []string `yaml:"collections"`
}

// VectorConfig configures the persistent chromem index.
type VectorConfig struct {
	DBPath     string `yaml:"db_path"`
	Collection string `yaml:"collection"`
	TopK       int    `yaml:"top_k"`
}

type Config struct {
	Database DatabaseConfig `yaml:"database"`
	EmbedLLM LLMConfig      `yaml:"embed_llm"`
	ChatLLM  LLMConfig      `yaml:"chat_llm"`
	Shop     ShopConfig     `yaml:"shop"`
	Vector   VectorConfig   `yaml:"vector"`
}

// Collection handles scraped by default, matching the storefront's
// shop-by-category navigation.
var defaultCollections = []string{
	"half-sleeve-tops",
	"tank-top",
	"sweatshirts",
	"leggings",
	"skorts-for-women-1",
	"shorts",
	"joggers",
	"flare-pants",
	"capris",
	"straight-pants",
	"co-ord-set",
	"sports-bra",
	"jackets-hoodies",
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Shop.BaseURL == "" {
		cfg.Shop.BaseURL = "https://hunnit.com"
	}
	if len(cfg.Shop.Collections) == 0 {
		cfg.Shop.Collections = defaultCollections
	}
	if cfg.Vector.DBPath == "" {
		cfg.Vector.DBPath = "./chromemdb"
	}
	if cfg.Vector.Collection == "" {
		cfg.Vector.Collection = "products"
	}
	if cfg.Vector.TopK == 0 {
		cfg.Vector.TopK = 8
	}
	if cfg.ChatLLM.Key == "" {
		cfg.ChatLLM.Key = os.Getenv("OPENAI_API_KEY")
	}
	if cfg.EmbedLLM.Key == "" {
		cfg.EmbedLLM.Key = os.Getenv("OPENAI_API_KEY")
	}
}
