package display

import (
	"fmt"

	"github.com/daydemir/herbie/internal/executor"
	"github.com/daydemir/herbie/internal/orchestrator"
	"github.com/daydemir/herbie/internal/types"
)

// PhaseStarted prints a phase banner. Display satisfies orchestrator.Reporter.
func (d *Display) PhaseStarted(phase types.Phase) {
	d.printf("%s %s %s\n",
		d.theme.Border(d.timestamp()),
		d.theme.Label(SymbolPhase),
		d.theme.Label(phase.Label()))
}

// CommandFinished prints one line per finished command
func (d *Display) CommandFinished(rec executor.Record) {
	symbol := d.theme.Success(SymbolSuccess)
	if !rec.Success {
		symbol = d.theme.Error(SymbolError)
	}
	d.printf("%s%s %s %s\n",
		IndentCommand,
		symbol,
		d.theme.Command(Truncate(rec.Command, d.termWidth-20)),
		d.theme.Dim(fmt.Sprintf("(%.2fs)", rec.ElapsedSeconds())))

	if !rec.Success {
		detail := rec.Stderr
		if detail == "" {
			detail = rec.Stdout
		}
		for _, line := range d.wrapText(detail, d.termWidth-8, 3) {
			d.printf("%s    %s\n", IndentCommand, d.theme.Dim(line))
		}
	}
}

var _ orchestrator.Reporter = (*Display)(nil)

// Outcome prints the final report of a setup run
func (d *Display) Outcome(o *orchestrator.Outcome) {
	d.Blank()
	switch {
	case o.Partial():
		d.Warning(o.Message)
	case o.Succeeded:
		d.Success(o.Message)
	default:
		d.Error(o.Message)
	}

	if o.Context != nil {
		for _, n := range o.Context.Notes {
			d.printf("%s%s %s\n", IndentCommand, d.theme.Warning(SymbolPartial), n)
		}
	}

	if o.Troubleshooting != "" {
		d.Box("TROUBLESHOOTING", o.Troubleshooting)
	}

	if len(o.NextSteps) > 0 {
		lines := make([]string, len(o.NextSteps))
		for i, step := range o.NextSteps {
			lines[i] = fmt.Sprintf("%d. %s", i+1, step)
		}
		d.Box("NEXT STEPS", lines...)
	}

	if o.Context != nil {
		d.Duration(o.Context.TotalElapsed)
	}
}
