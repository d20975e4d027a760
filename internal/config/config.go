package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port        int      `yaml:"port"`
		CORSOrigins []string `yaml:"corsOrigins"`
	} `yaml:"server"`

	// Backend adalah analysis API remote. BaseURL dan timeout wajib dari
	// sini (atau env), tidak boleh literal di source.
	Backend struct {
		BaseURL        string `yaml:"baseURL"`
		StaticBaseURL  string `yaml:"staticBaseURL"`
		TimeoutSeconds int    `yaml:"timeoutSeconds"`
	} `yaml:"backend"`

	// State snapshot session: driver "file" (default), "mysql", atau
	// "postgres".
	State struct {
		Driver string `yaml:"driver"`
		Path   string `yaml:"path"`
		DSN    string `yaml:"dsn"`
	} `yaml:"state"`

	Archive struct {
		Enabled    bool   `yaml:"enabled"`
		Endpoint   string `yaml:"endpoint"`
		AccessKey  string `yaml:"accessKey"`
		SecretKey  string `yaml:"secretKey"`
		BucketName string `yaml:"bucketName"`
		Region     string `yaml:"region"`
		UseSSL     bool   `yaml:"useSSL"`
	} `yaml:"archive"`

	OpenAI struct {
		APIKey string `yaml:"apiKey"`
		Model  string `yaml:"model"`
	} `yaml:"openai"`

	Scheduler struct {
		Enabled         bool   `yaml:"enabled"`
		RefreshCronSpec string `yaml:"refreshCronSpec"`
	} `yaml:"scheduler"`
}

// Load baca file config.yaml. Beberapa secret bisa dioverride lewat env
// supaya tidak perlu ditulis di file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	if v := os.Getenv("BACKEND_BASE_URL"); v != "" {
		cfg.Backend.BaseURL = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.OpenAI.APIKey = v
	}

	if cfg.Backend.BaseURL == "" {
		return nil, fmt.Errorf("backend.baseURL is required (config or BACKEND_BASE_URL)")
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.State.Driver == "" {
		cfg.State.Driver = "file"
	}
	if cfg.State.Path == "" {
		cfg.State.Path = "data/console_state.json"
	}
	if cfg.Scheduler.RefreshCronSpec == "" {
		cfg.Scheduler.RefreshCronSpec = "@every 5m"
	}
	return &cfg, nil
}

// BackendTimeout helper konversi detik ke time.Duration
func (c *Config) BackendTimeout() time.Duration {
	if c.Backend.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.Backend.TimeoutSeconds) * time.Second
}
