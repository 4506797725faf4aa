package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sambabib/version-autopsy/pkg/analyzer"
	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the working directory and its
// parents.
const FileName = ".autopsy.yaml"

// Config represents the configuration shared by the CLI and the server
type Config struct {
	// Client settings for the analyze/check/feedback commands
	Client struct {
		ServerURL string        `yaml:"serverUrl"`
		Timeout   time.Duration `yaml:"timeout"`
	} `yaml:"client"`

	// Server settings for the serve command
	Server struct {
		Addr            string        `yaml:"addr"`
		RateLimit       float64       `yaml:"rateLimit"` // requests per second per client
		RateBurst       int           `yaml:"rateBurst"`
		ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
	} `yaml:"server"`

	// Registry used by the server to resolve latest versions
	Registry struct {
		PyPI        string        `yaml:"pypi"`
		Timeout     time.Duration `yaml:"timeout"`
		Concurrency int           `yaml:"concurrency"`
	} `yaml:"registry"`

	// SARIF levels per risk level
	Severity struct {
		High    string `yaml:"high"`    // Default: error
		Medium  string `yaml:"medium"`  // Default: warning
		Low     string `yaml:"low"`     // Default: note
		Unknown string `yaml:"unknown"` // Default: warning
	} `yaml:"severity"`

	// Output configuration
	Output struct {
		Format string `yaml:"format"` // text, json, sarif, markdown
		File   string `yaml:"file"`   // Output file path (stdout if empty)
	} `yaml:"output"`

	// Packages left out of manifest analysis
	IgnorePackages []string `yaml:"ignorePackages"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	config := &Config{}

	config.Client.ServerURL = "http://localhost:5000"
	config.Client.Timeout = 30 * time.Second

	config.Server.Addr = ":5000"
	config.Server.RateLimit = 5
	config.Server.RateBurst = 10
	config.Server.ShutdownTimeout = 10 * time.Second

	config.Registry.PyPI = "https://pypi.org/pypi"
	config.Registry.Timeout = 5 * time.Second
	config.Registry.Concurrency = 8

	config.Severity.High = "error"
	config.Severity.Medium = "warning"
	config.Severity.Low = "note"
	config.Severity.Unknown = "warning"

	config.Output.Format = "text"

	return config
}

// LoadConfig loads the configuration from the specified file path.
// If no path is provided, it searches for .autopsy.yaml from the current
// directory upwards. Environment overrides are applied last.
func LoadConfig(configPath string) (*Config, error) {
	var (
		config *Config
		err    error
	)
	if configPath == "" {
		wd, werr := os.Getwd()
		if werr != nil {
			return nil, fmt.Errorf("error resolving working directory: %w", werr)
		}
		config, err = FindAndLoadConfig(wd)
	} else {
		config, err = loadFile(configPath)
	}
	if err != nil {
		return nil, err
	}

	// .env is optional
	_ = godotenv.Load()
	config.applyEnv()
	return config, nil
}

func loadFile(configPath string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return config, nil
}

// FindAndLoadConfig searches for a config file in the project directory and its parents
func FindAndLoadConfig(projectPath string) (*Config, error) {
	currentDir := projectPath
	for {
		configPath := filepath.Join(currentDir, FileName)
		if _, err := os.Stat(configPath); err == nil {
			config, err := loadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", configPath, err)
			}
			return config, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return DefaultConfig(), nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("AUTOPSY_SERVER_URL"); v != "" {
		c.Client.ServerURL = v
	}
	if v := os.Getenv("AUTOPSY_PYPI_URL"); v != "" {
		c.Registry.PyPI = v
	}
	if v := os.Getenv("PORT"); v != "" {
		c.Server.Addr = ":" + v
	}
	if v := os.Getenv("AUTOPSY_LISTEN_ADDR"); v != "" {
		c.Server.Addr = v
	}
}

// IsPackageIgnored checks if a package should be ignored based on the configuration
func (c *Config) IsPackageIgnored(packageName string) bool {
	for _, ignoredPackage := range c.IgnorePackages {
		if strings.EqualFold(ignoredPackage, packageName) {
			return true
		}
	}
	return false
}

// SarifLevel returns the configured SARIF level for a risk level
func (c *Config) SarifLevel(level analyzer.RiskLevel) string {
	switch level.Normalize() {
	case analyzer.RiskHigh:
		return c.Severity.High
	case analyzer.RiskMedium:
		return c.Severity.Medium
	case analyzer.RiskLow:
		return c.Severity.Low
	case analyzer.RiskUpToDate:
		return "none"
	default:
		return c.Severity.Unknown
	}
}
