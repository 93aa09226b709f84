package cli

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"github.com/daydemir/herbie/internal/deps"
	"github.com/daydemir/herbie/internal/types"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check <framework>",
	Short: "Check that a framework's toolchain is installed",
	Long: `Run each dependency check for a framework and report installed and
required versions, with install commands for anything missing.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, ok := types.ParseFrameworkID(args[0])
		if !ok {
			return fmt.Errorf("unknown framework %q (run 'herbie frameworks' for the list)", args[0])
		}

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		desc, err := a.registry.Get(id)
		if err != nil {
			return err
		}

		checker := deps.NewChecker(a.live,
			deps.WithOS(runtime.GOOS),
			deps.WithTimeout(policyFromConfig(a.cfg.Execution).Timeouts.DependencyCheck),
			deps.WithLogger(a.logger),
		)
		infos := checker.CheckAll(context.Background(), desc.Dependencies)

		a.display.Heading(desc.Name + " dependencies")
		if err := a.display.Dependencies(infos); err != nil {
			return err
		}

		for _, info := range deps.Unverified(infos) {
			a.display.Warning(fmt.Sprintf("Could not verify %s with %q", info.Name, info.CheckCommand))
			if hint := deps.OffPathHint(info); hint != "" {
				a.display.Info("Hint", hint)
			}
		}

		blocking := deps.Blocking(infos)
		if len(blocking) == 0 {
			a.display.Success(fmt.Sprintf("Ready to create %s projects", desc.Name))
			return nil
		}

		a.display.Box("TROUBLESHOOTING", deps.TroubleshootingGuide(blocking))
		names := make([]string, len(blocking))
		for i, b := range blocking {
			names[i] = b.Name
		}
		return fmt.Errorf("missing or outdated: %s", strings.Join(names, ", "))
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
