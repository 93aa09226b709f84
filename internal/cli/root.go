package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/daydemir/herbie/internal/llm"
	"github.com/daydemir/herbie/internal/shell"
	"github.com/spf13/cobra"
)

var (
	version  = "0.1.0"
	cfgFile  string
	noColor  bool
	simulate bool
)

var rootCmd = &cobra.Command{
	Use:   "herbie",
	Short: "Conversational project scaffolding and publishing",
	Long: `Herbie turns a plain-language request into a ready project: it checks
the toolchain, scaffolds the framework, and publishes the code to GitHub.

Run without arguments for the interactive shell, or use a subcommand:
  herbie create shop --framework react   Set up a project directly
  herbie check django                    Check a framework's toolchain
  herbie frameworks                      List supported frameworks
  herbie init                            Write a starter config
  herbie config                          View or modify configuration`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		backend, err := llm.NewBackend(a.cfg.LLM)
		if err != nil {
			if errors.Is(err, llm.ErrMissingAPIKey) {
				return fmt.Errorf("%w\nRun 'herbie init' to create a config, or use 'herbie create' which needs no LLM", err)
			}
			return err
		}

		ctx := context.Background()
		orch, err := a.orchestrator(ctx, true)
		if err != nil {
			return err
		}

		sh := shell.New(shell.Options{
			Parser:       llm.NewParser(backend, a.configDir),
			Conversation: llm.NewConversation(backend, a.configDir),
			Orchestrator: orch,
			Registry:     a.registry,
			Stats:        a.exec,
			Display:      a.display,
			Logger:       a.logger,
		})
		return sh.Run(ctx)
	},
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.config/herbie/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&simulate, "dry-run", false, "print commands instead of running them")
	rootCmd.SetVersionTemplate(fmt.Sprintf("herbie version %s\n", version))
}
