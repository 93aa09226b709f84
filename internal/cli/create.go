package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/daydemir/herbie/internal/orchestrator"
	"github.com/daydemir/herbie/internal/types"
	"github.com/spf13/cobra"
)

var (
	createFramework   string
	createPrivate     bool
	createDescription string
	createNoPublish   bool
	createShowLog     bool
)

var createCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Set up a project without the conversation",
	Long: `Check dependencies, scaffold a project, and publish it to GitHub.

Publishing needs a GitHub token (GITHUB_TOKEN or github.token). Without one,
or with --no-publish, the project is only created locally.

Examples:
  herbie create shop --framework react
  herbie create ledger --framework rails --private --description "Accounting API"
  herbie create blog --framework nextjs --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, ok := types.ParseFrameworkID(createFramework)
		if !ok {
			return fmt.Errorf("unknown framework %q (run 'herbie frameworks' for the list)", createFramework)
		}

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		orch, err := a.orchestrator(ctx, !createNoPublish)
		if err != nil {
			return err
		}

		if a.cfg.Execution.Simulate {
			a.display.Warning("Dry run: commands are printed, not executed")
		}

		outcome := orch.Run(ctx, orchestrator.Request{
			ProjectName: args[0],
			Framework:   id,
			Private:     createPrivate,
			Description: createDescription,
		})

		a.display.Outcome(outcome)
		if createShowLog {
			a.display.Blank()
			if err := a.display.CommandLog(outcome.CommandLog); err != nil {
				return err
			}
		}

		if !outcome.Succeeded {
			if outcome.Context != nil && outcome.Context.FailedPhase != "" {
				return fmt.Errorf("setup failed during %s", strings.ToLower(outcome.Context.FailedPhase.Label()))
			}
			return errors.New("setup failed")
		}
		return nil
	},
}

func init() {
	createCmd.Flags().StringVarP(&createFramework, "framework", "f", "", "framework id (react, vue, angular, nextjs, django, fastapi, rails, flutter)")
	createCmd.Flags().BoolVar(&createPrivate, "private", false, "create a private repository")
	createCmd.Flags().StringVarP(&createDescription, "description", "d", "", "repository description")
	createCmd.Flags().BoolVar(&createNoPublish, "no-publish", false, "keep the project local")
	createCmd.Flags().BoolVar(&createShowLog, "log", false, "print the full command log")
	_ = createCmd.MarkFlagRequired("framework")
	rootCmd.AddCommand(createCmd)
}
