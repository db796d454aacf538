package vault

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/99designs/otp-vault/otp"
	ini "gopkg.in/ini.v1"
)

const defaultSectionName = "defaults"

// Config is an abstraction over what is in ~/.config/otp-vault/config
type Config struct {
	Path string `ini:"-"`

	Digits  int           `ini:"digits"`
	Period  int           `ini:"period"`
	Backend string        `ini:"backend"`
	Prompt  string        `ini:"prompt"`
	Timeout time.Duration `ini:"timeout"`
}

// DefaultConfig returns the settings used when there is no config file.
func DefaultConfig() *Config {
	return &Config{
		Digits:  otp.DefaultDigits,
		Period:  otp.DefaultPeriod,
		Timeout: DefaultBackendTimeout,
	}
}

// ConfigPath returns either $OTP_VAULT_CONFIG_FILE or ~/.config/otp-vault/config
func ConfigPath() (string, error) {
	file := os.Getenv("OTP_VAULT_CONFIG_FILE")
	if file == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return "", err
		}
		file = filepath.Join(dir, "otp-vault", "config")
	}
	return file, nil
}

// LoadConfig loads and parses a config. No error is returned if the file doesn't exist
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()
	config.Path = path

	if _, err := os.Stat(path); os.IsNotExist(err) {
		log.Printf("Config file %s doesn't exist", path)
		return config, nil
	} else if err != nil {
		return nil, fmt.Errorf("Error reading config file %q: %w", path, err)
	}

	log.Printf("Parsing config file %s", path)
	f, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("Error parsing config file %q: %w", path, err)
	}
	if err = f.Section(defaultSectionName).MapTo(config); err != nil {
		return nil, fmt.Errorf("Error reading [%s] in config file %q: %w", defaultSectionName, path, err)
	}

	if err = config.Validate(); err != nil {
		return nil, fmt.Errorf("Invalid config file %q: %w", path, err)
	}
	return config, nil
}

// LoadConfigFromEnv finds the config file from the environment
func LoadConfigFromEnv() (*Config, error) {
	file, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadConfig(file)
}

func (c *Config) Params() otp.Params {
	return otp.Params{
		Algorithm: otp.AlgorithmSHA1,
		Digits:    c.Digits,
		Period:    c.Period,
	}
}

func (c *Config) Validate() error {
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	return c.Params().Validate()
}
