package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"clusterfail/internal/signature"
)

// Config holds all configuration for the application
type Config struct {
	// Input settings
	ResultsDir string
	Pattern    string

	// Output settings
	MarkdownOut string
	JSONOut     string

	// Signature settings
	NormalizeNumbers bool
	MaxSignatureLen  int

	// Cluster manager settings
	ClusterScript  string
	Python         string
	ClusterTimeout time.Duration

	// Command flags
	Flags Flags
}

// Flags holds command-line flags. Zero values mean "not set".
type Flags struct {
	ConfigFile       string
	ResultsDir       string
	MarkdownOut      string
	JSONOut          string
	Pattern          string
	Suite            string
	NormalizeNumbers *bool
	MaxSignatureLen  int
	Quiet            bool
	Verbose          bool
	TLS              bool
	Ping             bool
	ClusterFolder    string
}

// fileConfig mirrors the YAML config file
type fileConfig struct {
	ResultsDir       string `yaml:"results_dir"`
	MarkdownOut      string `yaml:"markdown_out"`
	JSONOut          string `yaml:"json_out"`
	Pattern          string `yaml:"pattern"`
	NormalizeNumbers *bool  `yaml:"normalize_numbers"`
	MaxSignatureLen  *int   `yaml:"max_signature_len"`
	ClusterManager   struct {
		Script  string `yaml:"script"`
		Python  string `yaml:"python"`
		Timeout string `yaml:"timeout"`
	} `yaml:"cluster_manager"`
}

// New creates a new Config with defaults
func New() *Config {
	return &Config{
		ResultsDir:      DefaultResultsDir,
		Pattern:         DefaultPattern,
		MarkdownOut:     DefaultMarkdownOut,
		JSONOut:         DefaultJSONOut,
		MaxSignatureLen: DefaultMaxSignatureLen,
		ClusterScript:   DefaultClusterScript,
		Python:          DefaultPython,
		ClusterTimeout:  DefaultClusterTimeout,
	}
}

// Load creates a config from defaults, the YAML config file, the environment
// (after loading .env) and flags, in increasing order of precedence.
func Load(flags Flags) (*Config, error) {
	cfg := New()
	cfg.Flags = flags

	if err := cfg.loadFile(flags.ConfigFile); err != nil {
		return nil, err
	}

	// .env might not exist, that's okay - use environment variables
	_ = godotenv.Load(DefaultEnvFile)

	if err := cfg.loadEnv(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	setString(&c.ResultsDir, fc.ResultsDir)
	setString(&c.MarkdownOut, fc.MarkdownOut)
	setString(&c.JSONOut, fc.JSONOut)
	setString(&c.Pattern, fc.Pattern)
	setString(&c.ClusterScript, fc.ClusterManager.Script)
	setString(&c.Python, fc.ClusterManager.Python)
	if fc.NormalizeNumbers != nil {
		c.NormalizeNumbers = *fc.NormalizeNumbers
	}
	if fc.MaxSignatureLen != nil {
		c.MaxSignatureLen = *fc.MaxSignatureLen
	}
	if fc.ClusterManager.Timeout != "" {
		timeout, err := time.ParseDuration(fc.ClusterManager.Timeout)
		if err != nil {
			return fmt.Errorf("parse cluster_manager.timeout: %w", err)
		}
		c.ClusterTimeout = timeout
	}

	return nil
}

func (c *Config) loadEnv() error {
	setString(&c.ResultsDir, os.Getenv(EnvResultsDir))
	setString(&c.MarkdownOut, os.Getenv(EnvMarkdownOut))
	setString(&c.JSONOut, os.Getenv(EnvJSONOut))
	setString(&c.Pattern, os.Getenv(EnvPattern))
	setString(&c.ClusterScript, os.Getenv(EnvClusterScript))
	setString(&c.Python, os.Getenv(EnvPython))

	if v := os.Getenv(EnvNormalizeNumbers); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("parse %s: %w", EnvNormalizeNumbers, err)
		}
		c.NormalizeNumbers = b
	}
	if v := os.Getenv(EnvMaxSignatureLen); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse %s: %w", EnvMaxSignatureLen, err)
		}
		c.MaxSignatureLen = n
	}

	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// GetResultsDir returns the results directory, using flag if provided
func (c *Config) GetResultsDir() string {
	if c.Flags.ResultsDir != "" {
		return c.Flags.ResultsDir
	}
	return c.ResultsDir
}

// GetMarkdownPath returns the markdown report path, using flag if provided
func (c *Config) GetMarkdownPath() string {
	if c.Flags.MarkdownOut != "" {
		return c.Flags.MarkdownOut
	}
	return c.MarkdownOut
}

// GetJSONPath returns the JSON report path, using flag if provided
func (c *Config) GetJSONPath() string {
	if c.Flags.JSONOut != "" {
		return c.Flags.JSONOut
	}
	return c.JSONOut
}

// GetPattern returns the report file name pattern, using flag if provided
func (c *Config) GetPattern() string {
	if c.Flags.Pattern != "" {
		return c.Flags.Pattern
	}
	return c.Pattern
}

// SignatureOptions returns the normalizer options, using flags if provided
func (c *Config) SignatureOptions() signature.Options {
	opts := signature.Options{
		NormalizeNumbers: c.NormalizeNumbers,
		MaxLength:        c.MaxSignatureLen,
	}
	if c.Flags.NormalizeNumbers != nil {
		opts.NormalizeNumbers = *c.Flags.NormalizeNumbers
	}
	if c.Flags.MaxSignatureLen > 0 {
		opts.MaxLength = c.Flags.MaxSignatureLen
	}
	return opts
}
