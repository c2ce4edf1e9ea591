package cli

import (
	"bytes"
	"testing"

	"github.com/andywolf/skilltrack/internal/config"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

func TestBuildFileConfig(t *testing.T) {
	tests := []struct {
		name         string
		backend      string
		wantPath     bool
		wantRedis    bool
		wantPostgres bool
		wantErr      bool
	}{
		{name: "file", backend: "file", wantPath: true},
		{name: "memory", backend: "memory"},
		{name: "redis", backend: "redis", wantRedis: true},
		{name: "postgres", backend: "postgres", wantPostgres: true},
		{name: "unknown", backend: "sqlite", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fc, err := buildFileConfig(tt.backend, "cache:6379", "postgres://db/skills", true)
			if tt.wantErr {
				if err == nil {
					t.Error("buildFileConfig() expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("buildFileConfig() error: %v", err)
			}
			if (fc.Store.Path != "") != tt.wantPath {
				t.Errorf("Path = %q", fc.Store.Path)
			}
			if (fc.Store.Redis != nil) != tt.wantRedis {
				t.Errorf("Redis = %+v", fc.Store.Redis)
			}
			if (fc.Store.Postgres != nil) != tt.wantPostgres {
				t.Errorf("Postgres = %+v", fc.Store.Postgres)
			}
		})
	}
}

// The written file must load back through viper into a valid Config.
func TestBuildFileConfig_LoadsAsConfig(t *testing.T) {
	for _, backend := range []string{"file", "memory", "redis", "postgres"} {
		t.Run(backend, func(t *testing.T) {
			fc, err := buildFileConfig(backend, "cache:6379", "postgres://db/skills", false)
			if err != nil {
				t.Fatalf("buildFileConfig() error: %v", err)
			}
			data, err := yaml.Marshal(fc)
			if err != nil {
				t.Fatalf("yaml.Marshal() error: %v", err)
			}

			viper.Reset()
			t.Cleanup(viper.Reset)
			viper.SetConfigType("yaml")
			if err := viper.ReadConfig(bytes.NewReader(data)); err != nil {
				t.Fatalf("ReadConfig() error: %v", err)
			}

			cfg, err := config.Load()
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("Validate() error: %v", err)
			}
			if cfg.Store.Backend != backend {
				t.Errorf("Backend = %q, want %q", cfg.Store.Backend, backend)
			}
			if cfg.Seed {
				t.Error("Seed = true, want false")
			}
		})
	}
}
