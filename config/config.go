package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds everything needed to reach the corpus and serve queries
type Config struct {
	Bucket       string `yaml:"bucket"`
	Prefix       string `yaml:"prefix"`
	Region       string `yaml:"region"`
	Profile      string `yaml:"profile"`
	Endpoint     string `yaml:"endpoint"`
	UsePathStyle bool   `yaml:"use_path_style"`

	// Credentials selects how AWS credentials are acquired: default, profile, env or prompt
	Credentials CredentialSource `yaml:"credentials"`

	// LocalDir serves files from a directory mirror instead of S3 when set
	LocalDir string `yaml:"local_dir"`

	Concurrency int    `yaml:"concurrency"`
	LogLevel    string `yaml:"log_level"`
	Port        string `yaml:"port"`
}

// Default returns the configuration used when nothing is overridden
func Default() *Config {
	return &Config{
		Bucket:      DefaultBucket,
		Prefix:      DefaultPrefix,
		Region:      DefaultRegion,
		Credentials: CredentialsDefault,
		Concurrency: DefaultConcurrency,
		LogLevel:    "info",
		Port:        DefaultPort,
	}
}

// Load builds the configuration from defaults, an optional YAML file and the
// environment, in that order. An empty path falls back to CORPUS_CONFIG.
// A .env file in the working directory is loaded first if present.
func Load(path string) (*Config, error) {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	cfg := Default()

	if path == "" {
		path = os.Getenv("CORPUS_CONFIG")
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.Bucket = getEnv("CORPUS_BUCKET", c.Bucket)
	c.Prefix = getEnv("CORPUS_PREFIX", c.Prefix)
	c.Region = getEnv("AWS_REGION", getEnv("AWS_DEFAULT_REGION", c.Region))
	c.Profile = getEnv("AWS_PROFILE", c.Profile)
	c.Endpoint = getEnv("S3_ENDPOINT", c.Endpoint)
	c.LocalDir = getEnv("CORPUS_LOCAL_DIR", c.LocalDir)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.Port = getEnv("PORT", c.Port)
	c.Credentials = CredentialSource(getEnv("CORPUS_CREDENTIALS", string(c.Credentials)))

	if v := strings.TrimSpace(os.Getenv("S3_USE_PATH_STYLE")); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid S3_USE_PATH_STYLE %q: %w", v, err)
		}
		c.UsePathStyle = b
	}
	if v := strings.TrimSpace(os.Getenv("CORPUS_CONCURRENCY")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid CORPUS_CONCURRENCY %q: %w", v, err)
		}
		c.Concurrency = n
	}
	return nil
}

func (c *Config) normalize() {
	c.Bucket = strings.TrimSpace(c.Bucket)
	if p := strings.Trim(strings.TrimSpace(c.Prefix), "/"); p != "" {
		c.Prefix = p + "/"
	} else {
		c.Prefix = ""
	}
	if c.Credentials == "" {
		c.Credentials = CredentialsDefault
	}
	if c.Concurrency <= 0 {
		c.Concurrency = DefaultConcurrency
	}
}

// Validate reports configuration that cannot work
func (c *Config) Validate() error {
	if c.Bucket == "" && c.LocalDir == "" {
		return errors.New("config: bucket is required when local_dir is not set")
	}
	switch c.Credentials {
	case CredentialsDefault, CredentialsProfile, CredentialsEnv, CredentialsPrompt:
	default:
		return fmt.Errorf("config: unknown credentials source %q", c.Credentials)
	}
	if c.Credentials == CredentialsProfile && c.Profile == "" {
		return errors.New("config: credentials source 'profile' needs a profile name")
	}
	return nil
}

// Addr returns the listen address for the HTTP API
func (c *Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}
