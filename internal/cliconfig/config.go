// Package cliconfig holds CLI configuration for byteship with the usual
// precedence: flags override environment variables, which override the
// config file.
package cliconfig

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/diwesta/byteship/pkg/writer"
)

// Config holds CLI configuration for byteship.
type Config struct {
	// Addr is the destination: host:port for TCP, or a ws:// / wss:// URL.
	Addr string

	// Text sends each input line as a terminator-framed text message.
	Text bool

	// Follow tails the input file and streams appended bytes.
	Follow bool

	// ChunkSize overrides the platform write policy when positive.
	ChunkSize int

	// Pacing is the pause between chunked segment writes.
	Pacing time.Duration

	// DialTimeout bounds connection establishment.
	DialTimeout time.Duration
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Addr:        os.Getenv("BYTESHIP_ADDR"),
		ChunkSize:   0, // 0 keeps the platform policy
		Pacing:      writer.DefaultPacingDelay,
		DialTimeout: 10 * time.Second,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr is required")
	}
	if c.ChunkSize < 0 {
		return fmt.Errorf("chunk-size must not be negative")
	}
	if c.Pacing < 0 {
		return fmt.Errorf("pacing must not be negative")
	}
	if c.DialTimeout <= 0 {
		return fmt.Errorf("dial timeout must be positive")
	}
	if c.Text && c.Follow {
		return fmt.Errorf("text and follow are mutually exclusive")
	}
	return nil
}

// Policy returns the write policy the configuration asks for: the platform
// policy by default, or an explicit chunked policy when chunk-size is set.
func (c *Config) Policy() writer.Policy {
	if c.ChunkSize > 0 {
		return writer.Policy{ChunkSize: c.ChunkSize, PacingDelay: c.Pacing}
	}
	p := writer.PlatformPolicy()
	if p.ChunkSize > 0 {
		p.PacingDelay = c.Pacing
	}
	return p
}

// configSetter helps apply configuration values while respecting flag
// precedence. It only applies values if the corresponding flag hasn't been
// explicitly set.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setIntFromString parses a string to int and sets the destination if valid.
// Used for environment variables that come as strings.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = i
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setBoolFromString parses a string to bool and sets the destination if valid.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	if b, err := strconv.ParseBool(value); err == nil {
		*dst = b
	}
}
