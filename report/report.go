// Package report renders simulation results as text: a title banner, a Gantt
// chart and timing tables.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/kr/pretty"
	"github.com/olekukonko/tablewriter"

	"github.com/cookiefied/processscheduler/scheduler"
)

const cellWidth = 8

// Result writes the title, Gantt chart and schedule table of one result.
func Result(w io.Writer, res *scheduler.Result) {
	title := res.Policy.Title()
	if res.Quantum > 0 {
		title = fmt.Sprintf("%s (quantum %d)", title, res.Quantum)
	}
	Title(w, title)
	Gantt(w, res.Intervals)
	Schedule(w, res)
}

func Title(w io.Writer, title string) {
	_, _ = fmt.Fprintln(w, strings.Repeat("-", len(title)*2))
	_, _ = fmt.Fprintln(w, strings.Repeat(" ", len(title)/2), title)
	_, _ = fmt.Fprintln(w, strings.Repeat("-", len(title)*2))
}

// Gantt draws one cell per interval followed by the interval start times and
// the final end time.
func Gantt(w io.Writer, intervals []scheduler.Interval) {
	_, _ = fmt.Fprintln(w, "Gantt schedule")
	_, _ = fmt.Fprint(w, "|")
	for i := range intervals {
		label := intervals[i].Label()
		padding := strings.Repeat(" ", max(cellWidth-len(label), 0)/2)
		_, _ = fmt.Fprint(w, padding, label, padding, "|")
	}
	_, _ = fmt.Fprintln(w)
	for i := range intervals {
		_, _ = fmt.Fprint(w, fmt.Sprint(intervals[i].Start), "\t")
		if len(intervals)-1 == i {
			_, _ = fmt.Fprint(w, fmt.Sprint(intervals[i].End))
		}
	}
	_, _ = fmt.Fprintf(w, "\n\n")
}

// Schedule writes the per-job table in submission order with averages in the
// footer.
func Schedule(w io.Writer, res *scheduler.Result) {
	rows := make([][]string, len(res.Metrics))
	for i, m := range res.Metrics {
		priority := ""
		if m.Priority != nil {
			priority = fmt.Sprint(*m.Priority)
		}
		rows[i] = []string{
			m.JobID,
			priority,
			fmt.Sprint(m.Service),
			fmt.Sprint(m.Arrival),
			fmt.Sprint(m.StartTime),
			fmt.Sprint(m.WaitingTime),
			fmt.Sprint(m.ResponseTime),
			fmt.Sprint(m.TurnaroundTime),
			fmt.Sprint(m.CompletionTime),
		}
	}

	sum := res.Summary
	_, _ = fmt.Fprintln(w, "Schedule table")
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Priority", "Burst", "Arrival", "Start", "Wait", "Response", "Turnaround", "Exit"})
	table.AppendBulk(rows)
	table.SetFooter([]string{"", "", "", "", "",
		fmt.Sprintf("Average\n%.2f", sum.AvgWaiting),
		fmt.Sprintf("Average\n%.2f", sum.AvgResponse),
		fmt.Sprintf("Average\n%.2f", sum.AvgTurnaround),
		fmt.Sprintf("Throughput\n%.2f/t", sum.Throughput)})
	table.Render()
}

// Comparison writes one summary row per result.
func Comparison(w io.Writer, results []*scheduler.Result) {
	rows := make([][]string, 0, len(results))
	for _, res := range results {
		sum := res.Summary
		rows = append(rows, []string{
			res.Policy.String(),
			fmt.Sprint(sum.Makespan),
			fmt.Sprintf("%.2f", sum.AvgWaiting),
			fmt.Sprintf("%.2f", sum.AvgTurnaround),
			fmt.Sprintf("%.2f", sum.AvgResponse),
			fmt.Sprintf("%.0f%%", sum.Utilization*100),
			fmt.Sprintf("%.2f/t", sum.Throughput),
			fmt.Sprint(sum.ContextSwitches),
		})
	}

	_, _ = fmt.Fprintln(w, "Comparison")
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Policy", "Makespan", "Wait", "Turnaround", "Response", "Utilization", "Throughput", "Switches"})
	table.AppendBulk(rows)
	table.Render()
}

// Pretty formats v as indented Go syntax, for debugging output.
func Pretty(v any) string {
	return pretty.Sprintf("%# v", v)
}
