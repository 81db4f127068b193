package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	Addr        string `toml:"addr"`
	Text        *bool  `toml:"text"`
	Follow      *bool  `toml:"follow"`
	ChunkSize   int    `toml:"chunk_size"`
	Pacing      string `toml:"pacing"`
	DialTimeout string `toml:"dial_timeout"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.byteship/config.toml if the user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".byteship", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("addr", fc.Addr, &cfg.Addr)
	s.setBool("text", fc.Text, &cfg.Text)
	s.setBool("follow", fc.Follow, &cfg.Follow)
	s.setInt("chunk-size", fc.ChunkSize, &cfg.ChunkSize)

	if err := s.setDuration("pacing", fc.Pacing, &cfg.Pacing); err != nil {
		return err
	}
	return s.setDuration("dial-timeout", fc.DialTimeout, &cfg.DialTimeout)
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
