// Package output renders completed scan reports: a human-readable text
// view, a JSON envelope, and a de-duplicated service URL list for
// feeding downstream tooling.
package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/portsight/portsight/internal/scanning"
)

const bannerDisplayLimit = 48

// WriteText renders a human-readable view of the reports: per target
// the resolved address and elapsed time, a table of the open ports, and
// a count of the non-open observations grouped by status.
func WriteText(w io.Writer, reports []scanning.TargetReport) {
	for i := range reports {
		report := &reports[i]
		fmt.Fprintf(w, "Target %s (%s) scanned in %.1f ms\n",
			report.Target, report.Resolved, report.ElapsedMs)

		open := report.OpenObservations()
		if len(open) == 0 {
			fmt.Fprintln(w, "  no open ports")
		} else {
			writeOpenTable(w, open)
		}

		if summary := nonOpenSummary(report); summary != "" {
			fmt.Fprintf(w, "  not open: %s\n", summary)
		}
		fmt.Fprintln(w)
	}
}

func writeOpenTable(w io.Writer, open []scanning.PortObservation) {
	table := tablewriter.NewWriter(w)
	table.Header("Port", "Status", "Latency", "Banner")

	for _, obs := range open {
		banner := ""
		if obs.Banner != nil {
			banner = truncate(*obs.Banner, bannerDisplayLimit)
		}
		_ = table.Append([]string{
			strconv.Itoa(obs.Port),
			string(obs.Status),
			fmt.Sprintf("%.1f ms", obs.ResponseTimeMs),
			banner,
		})
	}

	_ = table.Render()
}

// nonOpenSummary formats the non-open status counts in a fixed order so
// output is deterministic.
func nonOpenSummary(report *scanning.TargetReport) string {
	counts := report.StatusCounts()
	parts := make([]string, 0, 3)
	for _, status := range []scanning.PortStatus{
		scanning.StatusClosed,
		scanning.StatusFiltered,
		scanning.StatusError,
	} {
		if n := counts[status]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, status))
		}
	}
	return strings.Join(parts, ", ")
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
