package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/andywolf/skilltrack/internal/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "skilltrack",
	Short: "Skilltrack - Track learning goals as milestones",
	Long: `Skilltrack keeps a list of skills you are learning, each broken into
milestones. A skill's status follows its milestones: not started, in progress,
or completed once every milestone is done.

Skills are stored in a local JSON file by default, or in Redis or PostgreSQL
when configured.

Example:
  skilltrack add --name "Go" --description "Learn Go" --category "Backend Development" \
    --milestone "Tour of Go" --milestone "Concurrency"
  skilltrack list --status in-progress --sort progress`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Cancelling ctx aborts in-flight store calls.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(initConfig)

	// Set version for --version flag
	rootCmd.Version = version.Short()
	rootCmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .skilltrack.yaml)")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable verbose output")
	rootCmd.PersistentFlags().String("backend", "", "store backend (file, memory, redis, postgres)")
	rootCmd.PersistentFlags().String("store", "", "store file path for the file backend")
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("store.backend", rootCmd.PersistentFlags().Lookup("backend"))
	_ = viper.BindPFlag("store.path", rootCmd.PersistentFlags().Lookup("store"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		cwd, err := os.Getwd()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error getting working directory:", err)
			os.Exit(1)
		}

		viper.AddConfigPath(cwd)
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
		viper.SetConfigType("yaml")
		viper.SetConfigName(".skilltrack")
	}

	// SKILLTRACK_STORE_BACKEND overrides store.backend
	viper.SetEnvPrefix("SKILLTRACK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}
