package store

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	// ConfigPathEnv names an extra directory searched for .palette.yaml.
	ConfigPathEnv = "PALETTE_CONFIG_PATH"

	defaultPath          = "~/.palette.db"
	defaultRemoteTimeout = 10 * time.Second
)

type Config interface {
	BasePath() string
}

// FileConfig is the resolved configuration for a palette process.
type FileConfig struct {
	Path   string       `json:"path" yaml:"path"`
	Remote RemoteConfig `json:"remote" yaml:"remote"`
	Log    LogConfig    `json:"log" yaml:"log"`
	// File is the config file that was read, if any.
	File string `json:"file,omitempty" yaml:"file,omitempty"`
}

// RemoteConfig enables the best-effort remote mirror when URL is set.
type RemoteConfig struct {
	URL     string        `json:"url" yaml:"url"`
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

type LogConfig struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"`
}

func (f *FileConfig) BasePath() string {
	return f.Path
}

// LoadConfig reads .palette.yaml from $PALETTE_CONFIG_PATH, the working
// directory or $HOME, then layers PALETTE_* environment variables on top.
func LoadConfig() (*FileConfig, error) {
	v := viper.New()
	v.SetDefault("path", defaultPath)
	v.SetDefault("remote.url", "")
	v.SetDefault("remote.timeout", defaultRemoteTimeout)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "console")
	v.SetConfigName(".palette") // .yaml is implicit
	v.SetEnvPrefix("PALETTE")
	// remote.url is read from PALETTE_REMOTE_URL and so on.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if override := os.Getenv(ConfigPathEnv); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}

	timeout := v.GetDuration("remote.timeout")
	if timeout <= 0 {
		timeout = defaultRemoteTimeout
	}

	return &FileConfig{
		Path: path,
		Remote: RemoteConfig{
			URL:     v.GetString("remote.url"),
			Timeout: timeout,
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		File: v.ConfigFileUsed(),
	}, nil
}
