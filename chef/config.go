package chef

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Default connection settings.
const (
	// DefaultPort is the Chef server API port used when Config.Port is 0.
	DefaultPort = 4000

	// DefaultVersion is the X-Chef-Version advertised when Config.Version
	// is empty.
	DefaultVersion = "0.10.8"
)

// Config holds the connection settings and identity for a Client. It is
// copied by NewClient and never mutated afterwards.
type Config struct {
	// Host is the Chef server hostname or address. Required.
	Host string

	// Port is the API port. Defaults to DefaultPort.
	Port int

	// UserID is the identity requests are signed as. Required.
	UserID string

	// Key is the PEM-encoded RSA private key registered with the server
	// for UserID. Required. Parsed and validated by NewClient.
	Key []byte

	// Version is the value of the X-Chef-Version header. Defaults to
	// DefaultVersion.
	Version string

	// HTTPClient overrides the HTTP client used for requests. Defaults
	// to http.DefaultClient. Its transport is wrapped with the signing
	// transport; timeouts and retry policy belong here.
	HTTPClient *http.Client

	// RequestID is an optional callback that returns a unique ID for the
	// X-Remote-Request-Id header. Defaults to a UUIDv4 generator.
	RequestID func() string
}

// configFile is the YAML shape read by LoadConfig.
type configFile struct {
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
	UserID  string `yaml:"user_id"`
	Key     string `yaml:"key"`
	KeyFile string `yaml:"key_file"`
	Version string `yaml:"version"`
}

// LoadConfig reads a YAML credentials file. The private key is supplied
// either inline through the "key" field or as a path through "key_file";
// a relative key_file is resolved against the directory containing the
// credentials file. LoadConfig does not validate the result — that
// happens in NewClient.
func LoadConfig(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("chef: read credentials file: %w", err)
	}

	var file configFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return Config{}, fmt.Errorf("chef: parse credentials file: %w", err)
	}

	cfg := Config{
		Host:    file.Host,
		Port:    file.Port,
		UserID:  file.UserID,
		Version: file.Version,
	}

	switch {
	case file.Key != "":
		cfg.Key = []byte(file.Key)

	case file.KeyFile != "":
		keyPath := file.KeyFile
		if !filepath.IsAbs(keyPath) {
			keyPath = filepath.Join(filepath.Dir(path), keyPath)
		}

		key, err := os.ReadFile(keyPath)
		if err != nil {
			return Config{}, fmt.Errorf("chef: read key file: %w", err)
		}

		cfg.Key = key
	}

	return cfg, nil
}
