package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/andywolf/skilltrack/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter configuration file",
	Long: `Write a .skilltrack.yaml in the current directory with the default
settings for the chosen backend.

Example:
  skilltrack init
  skilltrack init --backend redis --redis-addr cache.internal:6379`,
	Args: cobra.NoArgs,
	RunE: initProject,
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().String("path", ".skilltrack.yaml", "Config file to write")
	initCmd.Flags().String("redis-addr", "localhost:6379", "Redis address (redis backend)")
	initCmd.Flags().String("postgres-dsn", "postgres://skilltrack@localhost:5432/skilltrack", "PostgreSQL DSN (postgres backend)")
	initCmd.Flags().Bool("no-seed", false, "Start with an empty skill list instead of sample skills")
	initCmd.Flags().Bool("force", false, "Overwrite existing config")
}

type fileConfig struct {
	Store struct {
		Backend  string              `yaml:"backend"`
		Path     string              `yaml:"path,omitempty"`
		Timeout  string              `yaml:"timeout"`
		Redis    *redisFileConfig    `yaml:"redis,omitempty"`
		Postgres *postgresFileConfig `yaml:"postgres,omitempty"`
	} `yaml:"store"`
	Seed bool `yaml:"seed"`
	Log  struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
	Metrics struct {
		Textfile string `yaml:"textfile"`
	} `yaml:"metrics"`
}

type redisFileConfig struct {
	Addr           string `yaml:"addr"`
	PasswordSecret string `yaml:"password_secret"`
	DB             int    `yaml:"db"`
	Prefix         string `yaml:"prefix"`
}

type postgresFileConfig struct {
	DSN            string `yaml:"dsn"`
	PasswordSecret string `yaml:"password_secret"`
	Table          string `yaml:"table"`
}

// buildFileConfig returns the starter config for backend.
func buildFileConfig(backend, redisAddr, postgresDSN string, seed bool) (fileConfig, error) {
	var fc fileConfig
	fc.Store.Backend = backend
	fc.Store.Timeout = "5s"
	fc.Seed = seed
	fc.Log.Level = "info"
	fc.Log.Format = "console"

	switch backend {
	case config.BackendFile:
		fc.Store.Path = "~/.skilltrack/store.json"
	case config.BackendMemory:
	case config.BackendRedis:
		fc.Store.Redis = &redisFileConfig{Addr: redisAddr, Prefix: "skilltrack:"}
	case config.BackendPostgres:
		fc.Store.Postgres = &postgresFileConfig{DSN: postgresDSN, Table: "skilltrack_kv"}
	default:
		return fileConfig{}, fmt.Errorf("invalid backend: %s (must be file, memory, redis, or postgres)", backend)
	}
	return fc, nil
}

func initProject(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("path")
	configPath = filepath.Clean(configPath)

	force, _ := cmd.Flags().GetBool("force")
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("config file already exists at %s (use --force to overwrite)", configPath)
	}

	backend, _ := cmd.Flags().GetString("backend")
	if backend == "" {
		backend = config.BackendFile
	}
	redisAddr, _ := cmd.Flags().GetString("redis-addr")
	postgresDSN, _ := cmd.Flags().GetString("postgres-dsn")
	noSeed, _ := cmd.Flags().GetBool("no-seed")

	cfg, err := buildFileConfig(backend, redisAddr, postgresDSN, !noSeed)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := `# Skilltrack configuration
# Every key can be overridden with SKILLTRACK_<SECTION>_<KEY>, e.g. SKILLTRACK_STORE_BACKEND.

`

	if err := os.WriteFile(configPath, append([]byte(header), data...), 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created %s\n\n", configPath)
	fmt.Fprintln(out, "Next steps:")
	switch backend {
	case config.BackendRedis, config.BackendPostgres:
		fmt.Fprintln(out, "  1. Set password_secret to a Secret Manager path, or leave it empty")
		fmt.Fprintln(out, "  2. Run 'skilltrack list' to check the connection")
	default:
		fmt.Fprintln(out, "  1. Run 'skilltrack list' to see your skills")
		fmt.Fprintln(out, "  2. Run 'skilltrack add -i' to add one")
	}

	return nil
}
