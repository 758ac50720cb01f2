package output

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/atikulmunna/logdecode/internal/aggregator"
)

var (
	styleKey    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	styleValue  = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	styleCount  = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true)
	styleMuted  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Faint(true)
	styleHeader = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)
)

// Console prints run information for the operator. It never touches the
// destination file.
type Console struct {
	out io.Writer
	err io.Writer
}

// NewConsole returns a Console writing the banner to out and the summary to errw.
func NewConsole(out, errw io.Writer) *Console {
	return &Console{out: out, err: errw}
}

// Banner announces the source and project being decoded.
func (c *Console) Banner(log, project string) {
	fmt.Fprintf(c.out, "%s %s%s %s\n",
		styleKey.Render("Log:"), styleValue.Render(log),
		styleKey.Render("; Project:"), styleValue.Render(project))
}

// Summary prints the counters of a finished run.
func (c *Console) Summary(dest string, s aggregator.Stats) {
	fmt.Fprintf(c.err, "%s %s\n", styleHeader.Render("decoded →"), styleValue.Render(dest))
	fmt.Fprintf(c.err, "  %s %s  %s %s  %s %s  %s\n",
		styleKey.Render("lines"), styleCount.Render(fmt.Sprint(s.Lines)),
		styleKey.Render("written"), styleCount.Render(fmt.Sprint(s.Written)),
		styleKey.Render("repeats"), styleCount.Render(fmt.Sprint(s.Suppressed)),
		styleMuted.Render(s.Elapsed.Truncate(time.Millisecond).String()))

	types := make([]string, 0, len(s.TypeCounts))
	for t := range s.TypeCounts {
		types = append(types, t)
	}
	sort.Strings(types)
	for _, t := range types {
		fmt.Fprintf(c.err, "  %s %s\n", styleKey.Render(t), styleCount.Render(fmt.Sprint(s.TypeCounts[t])))
	}
}
