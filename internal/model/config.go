package model

import "time"

// Config is the complete riddlequest configuration
type Config struct {
	HTTP         HTTPConfig        `yaml:"http"`
	Cache        CacheConfig       `yaml:"cache"`
	Concurrency  ConcurrencyConfig `yaml:"concurrency"`
	RateLimiting RateLimitConfig   `yaml:"rate_limiting"`
	LLM          LLMConfig         `yaml:"llm"`
	Generator    GeneratorConfig   `yaml:"generator"`
	Paths        PathsConfig       `yaml:"paths"`
	Output       OutputConfig      `yaml:"output"`
}

// HTTPConfig controls the article fetcher's HTTP behavior
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout"`
	UserAgent    string        `yaml:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
	BaseURL      string        `yaml:"base_url"` // encyclopedia article base, no trailing slash
	HTTPProxy    string        `yaml:"http_proxy"`
	HTTPSProxy   string        `yaml:"https_proxy"`
	NoProxy      string        `yaml:"no_proxy"`
}

// CacheConfig controls caching of fetched article pages
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Dir       string        `yaml:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl"`
}

// ConcurrencyConfig controls worker counts
type ConcurrencyConfig struct {
	Workers int `yaml:"workers"`
}

// RateLimitConfig controls per-host request rates for fetching
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size"`
}

// LLMConfig configures the optional LLM triple classifier.
// An empty Provider disables it; the heuristic classifier is used instead.
type LLMConfig struct {
	Provider  string `yaml:"provider"` // "openai", "ollama", or "" (disabled)
	Model     string `yaml:"model"`
	APIKey    string `yaml:"api_key,omitempty"`
	BaseURL   string `yaml:"base_url,omitempty"`
	Timeout   int    `yaml:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens"`
}

// GeneratorConfig controls riddle synthesis
type GeneratorConfig struct {
	Seed int64 `yaml:"seed"` // 0 means seed from wall clock
}

// PathsConfig names the pipeline artifacts
type PathsConfig struct {
	Triples   string `yaml:"triples"`
	Templates string `yaml:"templates"` // empty means built-in templates
	Lookup    string `yaml:"lookup"`
	Riddles   string `yaml:"riddles"`
	Validated string `yaml:"validated"`
}

// OutputConfig controls progress output
type OutputConfig struct {
	Verbose bool `yaml:"verbose"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:      30 * time.Second,
			UserAgent:    "RiddleQuest/0.2 (+https://github.com/karmayogi/riddlequest)",
			MaxBodyBytes: 2_000_000,
			BaseURL:      "https://en.wikipedia.org/wiki",
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       ".riddlequest-cache",
			MemoryTTL: 15 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		RateLimiting: RateLimitConfig{
			RequestsPerSecond: 2,
			BurstSize:         5,
		},
		LLM: LLMConfig{
			Provider:  "",
			Timeout:   30,
			MaxTokens: 1000,
		},
		Generator: GeneratorConfig{
			Seed: 0,
		},
		Paths: PathsConfig{
			Triples:   "triples_class.json",
			Templates: "",
			Lookup:    "lookup.json",
			Riddles:   "riddles.json",
			Validated: "riddles_validated.json",
		},
	}
}
