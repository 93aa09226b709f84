package cli

import (
	"fmt"

	"github.com/daydemir/herbie/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "View or modify configuration",
	Long: `View or modify Herbie configuration.

Examples:
  herbie config                       Show all config
  herbie config llm.model             Get a specific value
  herbie config llm.model gpt-4o      Set a value

Secrets (llm.api_key, github.token) are masked when shown.`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := cfgFile
		if configPath == "" {
			configPath = config.DefaultPath()
		}
		out := cmd.OutOrStdout()

		switch len(args) {
		case 0:
			content, err := config.Describe(configPath)
			if err != nil {
				return fmt.Errorf("%w (run 'herbie init' to create one)", err)
			}
			fmt.Fprint(out, content)
		case 1:
			value, err := config.GetValue(configPath, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(out, value)
		case 2:
			if err := config.SetValue(configPath, args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(out, "Set %s\n", args[0])
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
