package cli

import (
	"fmt"
	"path/filepath"

	"github.com/daydemir/herbie/internal/config"
	"github.com/spf13/cobra"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter Herbie config",
	Long: `Create the Herbie config directory (~/.config/herbie by default) with:
  - config.yaml             LLM, GitHub, execution and log settings
  - prompts/                Editable prompt templates`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := ""
		if cfgFile != "" {
			dir = filepath.Dir(cfgFile)
		}
		path, err := config.Init(dir, initForce)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Wrote", path)
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Next steps:")
		fmt.Fprintln(out, "  1. Set llm.api_key (or OPENAI_API_KEY)")
		fmt.Fprintln(out, "  2. Set github.token (or GITHUB_TOKEN) to publish projects")
		fmt.Fprintln(out, "  3. Run 'herbie' and describe a project")
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite existing config")
	rootCmd.AddCommand(initCmd)
}
