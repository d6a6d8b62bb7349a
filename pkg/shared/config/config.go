package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	yaml "gopkg.in/yaml.v2"

	"github.com/riskreg/riskreg/pkg/shared/files"
)

// DefaultConfigPath is used when neither a flag nor RISKREG_CONFIG names a config file.
const DefaultConfigPath = "config.yml"

// Config is the global riskreg configuration loaded from YAML.
type Config struct {
	Logger     Logger     `yaml:"logger"`
	HTTPClient HTTPClient `yaml:"http_client"`
	API        API        `yaml:"api"`
	Server     Server     `yaml:"server"`
	Store      Store      `yaml:"store"`
	Export     Export     `yaml:"export"`
}

// Logger configures the hclog output.
type Logger struct {
	Level           string `yaml:"level"`
	DisableTime     *bool  `yaml:"disable_time"`
	JSONFormat      *bool  `yaml:"json_format"`
	IncludeLocation *bool  `yaml:"include_location"`
}

// HTTPClient configures the resty client used to reach the risk API.
type HTTPClient struct {
	Debug            *bool           `yaml:"debug"`
	RetryCount       int             `yaml:"retry_count"`
	RetryWaitTime    time.Duration   `yaml:"retry_wait_time"`
	RetryMaxWaitTime time.Duration   `yaml:"retry_max_wait_time"`
	Timeout          time.Duration   `yaml:"timeout"`
	TLSClientConfig  TLSClientConfig `yaml:"tls_client_config"`
	Proxy            Proxy           `yaml:"proxy"`
}

type TLSClientConfig struct {
	Verify *bool `yaml:"verify"`
}

type Proxy struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// API locates the risk API for client commands.
type API struct {
	BaseURL string `yaml:"base_url"`
}

// Server configures the HTTP API started by "riskreg serve".
type Server struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	AllowOrigins    []string      `yaml:"allow_origins"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	EnableMetrics   *bool         `yaml:"enable_metrics"`
}

// Store selects the record store backing the server.
type Store struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

// Export holds defaults for the export command.
type Export struct {
	Format     string `yaml:"format"`
	OutputPath string `yaml:"output_path"`
	S3         S3     `yaml:"s3"`
}

// S3 is the optional upload destination for exports.
type S3 struct {
	Bucket   string `yaml:"bucket"`
	Prefix   string `yaml:"prefix"`
	Region   string `yaml:"region"`
	Endpoint string `yaml:"endpoint"`
}

// LoadYAML decodes the YAML file at configPath into data.
func LoadYAML(configPath string, data interface{}) error {
	if err := files.ValidatePath(configPath); err != nil {
		return err
	}

	file, err := os.Open(configPath)
	if err != nil {
		return err
	}
	defer file.Close()

	d := yaml.NewDecoder(file)
	if err := d.Decode(data); err != nil {
		return err
	}

	return nil
}

// LoadConfig reads the configuration file. When configPath is empty, RISKREG_CONFIG and then
// DefaultConfigPath are tried, and a missing default file yields an empty configuration.
func LoadConfig(configPath string) (*Config, error) {
	explicit := configPath != ""
	if !explicit {
		configPath = os.Getenv("RISKREG_CONFIG")
		explicit = configPath != ""
	}
	if !explicit {
		configPath = DefaultConfigPath
	}

	configPath, err := files.ExpandPath(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to expand config path: %w", err)
	}

	cfg := &Config{}
	if err := LoadYAML(configPath, cfg); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to load config %q: %w", configPath, err)
	}
	return cfg, nil
}
