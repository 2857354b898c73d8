// Package report renders resolution results for people and machines.
//
// A [Report] wraps a [resolve.Result] with run metadata (run ID, timestamp,
// tool version) so CI systems can archive and correlate resolutions. The
// same report renders as indented JSON for pipelines or as styled text for
// terminals.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/matzehuels/deptower/pkg/resolve"
)

// Report is a resolution result with run metadata.
type Report struct {
	RunID       string          `json:"runId"`
	GeneratedAt time.Time       `json:"generatedAt"`
	Tool        string          `json:"tool"`
	Project     string          `json:"project,omitempty"`
	Result      *resolve.Result `json:"result"`
}

// New wraps a result with a fresh run ID and timestamp. toolVersion is the
// CLI's version string; project names the manifest and may be empty.
func New(res *resolve.Result, project, toolVersion string) *Report {
	return &Report{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Tool:        "deptower " + toolVersion,
		Project:     project,
		Result:      res,
	}
}

// JSON writes the report as indented JSON.
func (r *Report) JSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("36"))
	stylePackage = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	styleVersion = lipgloss.NewStyle().Foreground(lipgloss.Color("36"))
	styleDim     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	styleDirect  = lipgloss.NewStyle().Foreground(lipgloss.Color("35"))
)

// Text writes the report as a styled package listing in resolution order.
// Each package lists its resolved dependencies with version, a "direct"
// marker where the manifest pinned the dependency itself, and the set of
// contributors when more than one package pulled the dependency in.
func (r *Report) Text(w io.Writer) error {
	if r.Project != "" {
		fmt.Fprintln(w, styleTitle.Render(r.Project))
	}

	for _, name := range r.Result.Order {
		deps := r.Result.Resolved[name]
		fmt.Fprintf(w, "%s %s\n", stylePackage.Render(name), styleDim.Render(countLabel(len(deps))))

		details := r.Result.Details[name]
		for _, d := range deps {
			line := "  " + stylePackage.Render(d.Package) + " " + styleVersion.Render(d.Version)
			if det, ok := details[d.Package]; ok {
				if det.IsDirect {
					line += " " + styleDirect.Render("direct")
				}
				if len(det.Contributors) > 1 {
					line += " " + styleDim.Render("via "+joinNames(det.Contributors))
				}
			}
			fmt.Fprintln(w, line)
		}
	}
	return nil
}

// Summary writes one line per package counting its resolved dependencies,
// sorted by count descending then name. Used by the explain command header.
func (r *Report) Summary(w io.Writer) {
	type row struct {
		name  string
		count int
	}
	rows := make([]row, 0, len(r.Result.Order))
	for _, name := range r.Result.Order {
		rows = append(rows, row{name, len(r.Result.Resolved[name])})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].count != rows[j].count {
			return rows[i].count > rows[j].count
		}
		return rows[i].name < rows[j].name
	})

	for _, row := range rows {
		fmt.Fprintf(w, "%s %s\n", stylePackage.Render(row.name), styleDim.Render(countLabel(row.count)))
	}
}

func countLabel(n int) string {
	if n == 1 {
		return "(1 dependency)"
	}
	return fmt.Sprintf("(%d dependencies)", n)
}

func joinNames(names []string) string {
	out := ""
	for i, n := range names {
		if i > 0 {
			out += ", "
		}
		out += n
	}
	return out
}
