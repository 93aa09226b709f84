package display

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/daydemir/herbie/internal/deps"
	"github.com/daydemir/herbie/internal/executor"
	"github.com/daydemir/herbie/internal/registry"
	"github.com/olekukonko/tablewriter"
)

// Table renders rows under header
func (d *Display) Table(header []string, rows [][]string) error {
	table := tablewriter.NewWriter(d.out)
	if len(header) > 0 {
		table.Header(header)
	}
	if err := table.Bulk(rows); err != nil {
		return fmt.Errorf("bulk adding data to table: %w", err)
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("rendering table: %w", err)
	}
	return nil
}

// Dependencies prints dependency check results
func (d *Display) Dependencies(infos []deps.DependencyInfo) error {
	rows := make([][]string, 0, len(infos))
	for _, info := range infos {
		current := info.CurrentVersion
		if current == "" {
			current = "-"
		}
		required := info.RequiredVersion
		if required == "" {
			required = "any"
		}
		install := ""
		if info.Status.Blocks() {
			install = info.InstallCommand
		}
		rows = append(rows, []string{info.Name, info.Status.String(), current, required, install})
	}
	return d.Table([]string{"Dependency", "Status", "Installed", "Required", "Install"}, rows)
}

// Frameworks prints the framework registry
func (d *Display) Frameworks(descs []registry.FrameworkDescriptor) error {
	rows := make([][]string, 0, len(descs))
	for _, desc := range descs {
		names := make([]string, len(desc.Dependencies))
		for i, dep := range desc.Dependencies {
			names[i] = dep.Name
		}
		port := "-"
		if desc.DevServerPort > 0 {
			port = strconv.Itoa(desc.DevServerPort)
		}
		rows = append(rows, []string{desc.ID.String(), desc.Name, string(desc.Kind), strings.Join(names, ", "), port})
	}
	return d.Table([]string{"ID", "Framework", "Kind", "Requires", "Port"}, rows)
}

// CommandLog prints every recorded command of a run
func (d *Display) CommandLog(records []executor.Record) error {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.Phase.String(),
			Truncate(r.Command, 60),
			strconv.Itoa(r.ExitCode),
			fmt.Sprintf("%.2fs", r.ElapsedSeconds()),
		})
	}
	return d.Table([]string{"Phase", "Command", "Exit", "Elapsed"}, rows)
}

// SessionStats is what /stats reports
type SessionStats struct {
	Commands        executor.Summary
	Setups          int
	SetupsSucceeded int
	FeedbackCount   int
	AverageRating   float64
}

// Stats prints session statistics
func (d *Display) Stats(s SessionStats) error {
	rating := "-"
	if s.FeedbackCount > 0 {
		rating = fmt.Sprintf("%.1f / 5 (%d ratings)", s.AverageRating, s.FeedbackCount)
	}
	rows := [][]string{
		{"Setups", fmt.Sprintf("%d (%d succeeded)", s.Setups, s.SetupsSucceeded)},
		{"Commands", strconv.Itoa(s.Commands.Count)},
		{"Succeeded", strconv.Itoa(s.Commands.SuccessCount)},
		{"Failed", strconv.Itoa(s.Commands.FailedCount)},
		{"Success rate", fmt.Sprintf("%.0f%%", s.Commands.SuccessRate*100)},
		{"Total time", s.Commands.TotalElapsed.Round(10 * time.Millisecond).String()},
		{"Average time", s.Commands.AverageElapsed.Round(10 * time.Millisecond).String()},
		{"Feedback", rating},
	}
	return d.Table([]string{"Metric", "Value"}, rows)
}
