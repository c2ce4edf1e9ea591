package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/andywolf/skilltrack/internal/skill"
	"github.com/andywolf/skilltrack/internal/tracker"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export skills and categories",
	Long: `Write every skill and category as JSON or YAML.

Example:
  skilltrack export --format yaml > skills.yaml
  skilltrack export --output backup.json`,
	Args: cobra.NoArgs,
	RunE: exportSkills,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().String("format", "json", "Output format (json, yaml)")
	exportCmd.Flags().StringP("output", "o", "", "Write to a file instead of stdout")
}

type exportDoc struct {
	Version    int              `json:"version" yaml:"version"`
	Skills     []skill.Skill    `json:"skills" yaml:"skills"`
	Categories []skill.Category `json:"categories" yaml:"categories"`
	Stats      skill.Stats      `json:"stats" yaml:"stats"`
}

// encodeExport writes doc to w in format.
func encodeExport(w io.Writer, doc exportDoc, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("invalid format: %s (must be json or yaml)", format)
}

func exportSkills(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")

	return withApp(cmd, func(ctx context.Context, a *app) error {
		skills, err := a.manager.List(ctx)
		if err != nil {
			return err
		}
		cats, err := a.manager.Categories(ctx)
		if err != nil {
			return err
		}
		doc := exportDoc{
			Version:    tracker.SchemaVersion,
			Skills:     skills,
			Categories: cats,
			Stats:      a.manager.Stats(skills),
		}

		if output == "" {
			return encodeExport(cmd.OutOrStdout(), doc, format)
		}

		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", output, err)
		}
		if err := encodeExport(f, doc, format); err != nil {
			_ = f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d skills to %s\n", len(skills), output)
		return nil
	})
}
