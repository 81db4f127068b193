package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (BYTESHIP_*).
// It respects flags that have been explicitly set (changed map).
// Returns an error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("addr", os.Getenv("BYTESHIP_ADDR"), &cfg.Addr)
	s.setBoolFromString("text", os.Getenv("BYTESHIP_TEXT"), &cfg.Text)
	s.setBoolFromString("follow", os.Getenv("BYTESHIP_FOLLOW"), &cfg.Follow)

	if err := s.setIntFromString("chunk-size", os.Getenv("BYTESHIP_CHUNK_SIZE"), &cfg.ChunkSize); err != nil {
		return err
	}
	if err := s.setDuration("pacing", os.Getenv("BYTESHIP_PACING"), &cfg.Pacing); err != nil {
		return err
	}
	return s.setDuration("dial-timeout", os.Getenv("BYTESHIP_DIAL_TIMEOUT"), &cfg.DialTimeout)
}
