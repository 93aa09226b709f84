package cli

import (
	"github.com/spf13/cobra"
)

var frameworksCmd = &cobra.Command{
	Use:   "frameworks",
	Short: "List supported frameworks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		return a.display.Frameworks(a.registry.All())
	},
}

func init() {
	rootCmd.AddCommand(frameworksCmd)
}
