package cliconfig

import (
	"testing"
	"time"

	"github.com/diwesta/byteship/pkg/writer"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid defaults with addr", func(c *Config) { c.Addr = "localhost:9000" }, false},
		{"missing addr", func(c *Config) {}, true},
		{"negative chunk size", func(c *Config) { c.Addr = "a:1"; c.ChunkSize = -1 }, true},
		{"negative pacing", func(c *Config) { c.Addr = "a:1"; c.Pacing = -time.Millisecond }, true},
		{"zero dial timeout", func(c *Config) { c.Addr = "a:1"; c.DialTimeout = 0 }, true},
		{"text and follow together", func(c *Config) { c.Addr = "a:1"; c.Text = true; c.Follow = true }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Addr = ""
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPolicy(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ChunkSize = 5000
	cfg.Pacing = 2 * time.Millisecond

	p := cfg.Policy()
	if p.ChunkSize != 5000 {
		t.Errorf("ChunkSize = %d, want 5000", p.ChunkSize)
	}
	if p.PacingDelay != 2*time.Millisecond {
		t.Errorf("PacingDelay = %v, want 2ms", p.PacingDelay)
	}

	cfg.ChunkSize = 0
	if got := cfg.Policy().ChunkSize; got != writer.PlatformPolicy().ChunkSize {
		t.Errorf("default policy ChunkSize = %d, want platform value %d",
			got, writer.PlatformPolicy().ChunkSize)
	}
}

func TestConfigSetterRespectsChangedFlags(t *testing.T) {
	cfg := Config{Addr: "flag-value:1"}
	s := newConfigSetter(map[string]bool{"addr": true})

	s.setString("addr", "file-value:1", &cfg.Addr)
	if cfg.Addr != "flag-value:1" {
		t.Errorf("Addr = %q, changed flag must win", cfg.Addr)
	}

	s.setInt("chunk-size", 42, &cfg.ChunkSize)
	if cfg.ChunkSize != 42 {
		t.Errorf("ChunkSize = %d, want 42", cfg.ChunkSize)
	}
}
