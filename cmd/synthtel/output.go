package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/rewired-gh/synthtel/internal/models"
	"github.com/rewired-gh/synthtel/internal/synth"
)

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type statsRow struct {
	name   string
	points int
	stats  synth.Summary
}

// reportRows expands a report into one row per series; latency yields three.
func reportRows(r models.MetricReport) []statsRow {
	if l, ok := r.(*models.LatencyReport); ok {
		return []statsRow{
			{"latency_p50", len(l.P50), l.Statistics.P50},
			{"latency_p95", len(l.P95), l.Statistics.P95},
			{"latency_p99", len(l.P99), l.Statistics.P99},
		}
	}
	return []statsRow{{r.MetricName(), len(r.Primary()), r.PrimaryStatistics()}}
}

func writeStatsTable(w io.Writer, rows []statsRow) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Metric", "Points", "Min", "Max", "Mean", "Median", "P95", "P99", "StdDev", "Delta %"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	f := func(v float64) string { return fmt.Sprintf("%.2f", v) }
	var data [][]string
	for _, r := range rows {
		s := r.stats
		data = append(data, []string{
			r.name, fmt.Sprint(r.points),
			f(s.Min), f(s.Max), f(s.Mean), f(s.Median), f(s.P95), f(s.P99), f(s.StdDev), f(s.DeltaVsPreviousPeriod),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

func writeReportTable(w io.Writer, r models.MetricReport) error {
	if err := writeStatsTable(w, reportRows(r)); err != nil {
		return err
	}
	if cpu, ok := r.(*models.CPUReport); ok {
		_, err := fmt.Fprintf(w, "%d pods\n", len(cpu.Pods))
		return err
	}
	return nil
}

func writeScenario(w io.Writer, sc *models.Scenario) error {
	fmt.Fprintf(w, "Scenario %s (%s)\n", sc.Kind, sc.ID)
	fmt.Fprintf(w, "%s/%s: %s\n\n", sc.Service, sc.Environment, sc.Description)

	var rows []statsRow
	for _, r := range sc.Reports() {
		rows = append(rows, reportRows(r)...)
	}
	if err := writeStatsTable(w, rows); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nLogs: %d  Traces: %d  Alerts: %d\n", len(sc.Logs), len(sc.Traces), len(sc.Alerts))
	fmt.Fprintf(w, "Root cause: %s\n", sc.RootCause)
	for i, a := range sc.RecommendedActions {
		fmt.Fprintf(w, "  %d. %s\n", i+1, a)
	}
	return nil
}
