// Package shell is Herbie's interactive conversation loop.
package shell

import (
	"context"
	"fmt"
	"strings"

	prompt "github.com/c-bata/go-prompt"
	"github.com/daydemir/herbie/internal/display"
	"github.com/daydemir/herbie/internal/executor"
	"github.com/daydemir/herbie/internal/llm"
	"github.com/daydemir/herbie/internal/orchestrator"
	"github.com/daydemir/herbie/internal/registry"
	"github.com/daydemir/herbie/internal/types"
	"go.uber.org/zap"
)

// Orchestrator runs project setups. *orchestrator.Orchestrator satisfies it.
type Orchestrator interface {
	Run(ctx context.Context, req orchestrator.Request) *orchestrator.Outcome
}

// StatsProvider reports the executor's history. *executor.Executor satisfies it.
type StatsProvider interface {
	Summary() executor.Summary
}

// Shell routes each input line to a slash command, a project setup, or chat
type Shell struct {
	parser       *llm.Parser
	conversation *llm.Conversation
	orchestrator Orchestrator
	registry     *registry.Registry
	stats        StatsProvider
	display      *display.Display
	logger       *zap.Logger

	tally     Tally
	setups    int
	setupsOK  int
	lastRunID string
	// pending holds a create request still waiting for a framework
	pending *llm.Intent
	quit    bool
}

// Options wires a Shell's collaborators
type Options struct {
	Parser       *llm.Parser
	Conversation *llm.Conversation
	Orchestrator Orchestrator
	Registry     *registry.Registry
	Stats        StatsProvider
	Display      *display.Display
	Logger       *zap.Logger
}

// New creates a shell
func New(opts Options) *Shell {
	s := &Shell{
		parser:       opts.Parser,
		conversation: opts.Conversation,
		orchestrator: opts.Orchestrator,
		registry:     opts.Registry,
		stats:        opts.Stats,
		display:      opts.Display,
		logger:       opts.Logger,
	}
	if s.registry == nil {
		s.registry = registry.Default()
	}
	if s.display == nil {
		s.display = display.New()
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	return s
}

// Run starts the prompt loop and blocks until /quit or Ctrl-D
func (s *Shell) Run(ctx context.Context) error {
	s.printWelcome()

	p := prompt.New(
		func(in string) { s.Handle(ctx, in) },
		s.completer,
		prompt.OptionPrefix("herbie> "),
		prompt.OptionTitle("herbie"),
		prompt.OptionSuggestionBGColor(prompt.DarkGray),
		prompt.OptionSuggestionTextColor(prompt.White),
		prompt.OptionSelectedSuggestionBGColor(prompt.Purple),
		prompt.OptionSelectedSuggestionTextColor(prompt.White),
		prompt.OptionSetExitCheckerOnInput(func(_ string, breakline bool) bool {
			return breakline && s.quit
		}),
	)
	p.Run()

	if !s.quit {
		s.display.Blank()
		s.display.Info("Herbie", "Goodbye.")
	}
	return nil
}

// Handle processes one input line. It returns true once the user asked to quit.
func (s *Shell) Handle(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return s.quit
	}

	cmd, err := ParseSlash(line)
	if err != nil {
		s.display.Error(err.Error() + " (type /help for commands)")
		return s.quit
	}
	if cmd.Kind != CommandNone {
		s.runCommand(cmd)
		return s.quit
	}

	if s.pending != nil {
		if id, ok := types.ParseFrameworkID(line); ok {
			intent := *s.pending
			intent.Framework = id
			s.pending = nil
			s.create(ctx, intent)
			return s.quit
		}
		s.pending = nil
	}

	s.handleMessage(ctx, line)
	return s.quit
}

// Quit reports whether the user asked to leave
func (s *Shell) Quit() bool {
	return s.quit
}

// Feedback returns the session's feedback tally
func (s *Shell) Feedback() *Tally {
	return &s.tally
}

func (s *Shell) runCommand(cmd Command) {
	switch cmd.Kind {
	case CommandHelp:
		s.printHelp()
	case CommandFrameworks:
		if err := s.display.Frameworks(s.registry.All()); err != nil {
			s.display.Error(err.Error())
		}
	case CommandStats:
		stats := display.SessionStats{
			Setups:          s.setups,
			SetupsSucceeded: s.setupsOK,
			FeedbackCount:   s.tally.Count(),
			AverageRating:   s.tally.Average(),
		}
		if s.stats != nil {
			stats.Commands = s.stats.Summary()
		}
		if err := s.display.Stats(stats); err != nil {
			s.display.Error(err.Error())
		}
	case CommandFeedback:
		if err := s.tally.Add(s.lastRunID, cmd.Rating, cmd.Comment); err != nil {
			s.display.Error(err.Error())
			return
		}
		s.logger.Info("feedback recorded",
			zap.String("run_id", s.lastRunID),
			zap.Int("rating", cmd.Rating),
			zap.String("comment", cmd.Comment))
		s.display.Success(fmt.Sprintf("Thanks! Recorded a %d/5 rating.", cmd.Rating))
	case CommandQuit:
		s.quit = true
		s.display.Info("Herbie", "Goodbye.")
	}
}

func (s *Shell) handleMessage(ctx context.Context, line string) {
	if s.parser == nil {
		s.display.Error("No LLM backend configured.")
		return
	}

	intent, err := s.parser.Parse(ctx, line)
	if err != nil {
		s.display.Error(err.Error())
		return
	}
	if intent.FallbackReason != "" {
		s.logger.Warn("request parsed with keyword fallback", zap.String("reason", intent.FallbackReason))
	}

	if !intent.IsCreate() {
		s.chat(ctx, line, intent)
		return
	}

	if intent.Framework == "" {
		s.pending = &intent
		s.display.Reply(fmt.Sprintf("Which framework should I use for %s? Options: %s",
			intent.ProjectName, strings.Join(s.frameworkIDs(), ", ")))
		return
	}
	s.create(ctx, intent)
}

func (s *Shell) chat(ctx context.Context, line string, intent llm.Intent) {
	if s.conversation == nil || intent.Manual {
		s.display.Reply("I set up projects. Try: create a private react app called shop. Type /help for commands.")
		return
	}
	reply, err := s.conversation.Reply(ctx, line)
	if err != nil {
		s.logger.Warn("chat reply failed", zap.Error(err))
		s.display.Error("The assistant is unavailable right now: " + err.Error())
		return
	}
	s.display.Reply(reply)
}

func (s *Shell) create(ctx context.Context, intent llm.Intent) {
	if s.orchestrator == nil {
		s.display.Error("Project setup is not available.")
		return
	}

	visibility := "public"
	if intent.Private {
		visibility = "private"
	}
	s.display.Herbie(fmt.Sprintf("Creating %s (%s, %s)", intent.ProjectName, intent.Framework, visibility))

	outcome := s.orchestrator.Run(ctx, orchestrator.Request{
		ProjectName: intent.ProjectName,
		Framework:   intent.Framework,
		Private:     intent.Private,
		Description: intent.Description,
	})

	s.setups++
	if outcome.Succeeded {
		s.setupsOK++
	}
	if outcome.Context != nil {
		s.lastRunID = outcome.Context.RunID
	}
	if s.conversation != nil {
		s.conversation.Record("user", intent.Description)
		s.conversation.Record("assistant", outcome.Message)
	}

	s.display.Outcome(outcome)
	if outcome.Succeeded {
		s.display.Info("Tip", "rate this setup with /feedback <1-5> [comment]")
	}
}

func (s *Shell) frameworkIDs() []string {
	ids := s.registry.IDs()
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

func (s *Shell) completer(d prompt.Document) []prompt.Suggest {
	text := d.TextBeforeCursor()
	if !strings.HasPrefix(text, "/") || strings.Contains(text, " ") {
		return []prompt.Suggest{}
	}
	suggestions := make([]prompt.Suggest, 0, len(commandHelp)+1)
	for _, h := range commandHelp {
		suggestions = append(suggestions, prompt.Suggest{Text: strings.Fields(h.Usage)[0], Description: h.Description})
	}
	suggestions = append(suggestions, prompt.Suggest{Text: "/exit", Description: "leave Herbie"})
	return prompt.FilterHasPrefix(suggestions, text, true)
}

func (s *Shell) printWelcome() {
	s.display.Herbie(
		"Hi, I'm Herbie. Describe the project you want and I'll set it up.",
		"Example: create a private react app called shop",
		"Type /help for commands, /quit to leave.",
	)
}

func (s *Shell) printHelp() {
	lines := make([]string, 0, len(commandHelp)+2)
	for _, h := range commandHelp {
		lines = append(lines, fmt.Sprintf("%-27s %s", h.Usage, h.Description))
	}
	lines = append(lines, "", "Anything else is read as a request, e.g. \"new django api named ledger\".")
	s.display.Box("HELP", lines...)
}
