package report

import (
	"fmt"
	"os"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/dynamic-pathfinding/bench.report/internal/analysis"
)

// WriteHTMLReport renders the interactive report page: a success
// breakdown bar chart, one binned-series chart per metric, and a
// scatter of execution time against pathfinding calls.
func WriteHTMLReport(rep *analysis.Report, path string) error {
	page := components.NewPage()
	page.AddCharts(successBar(rep))

	metrics := make([]string, 0, len(rep.Bins))
	for metric := range rep.Bins {
		metrics = append(metrics, metric)
	}
	sort.Strings(metrics)
	for _, metric := range metrics {
		page.AddCharts(binScatter(rep, metric))
	}

	page.AddCharts(callsScatter(rep))

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	defer f.Close()

	if err := page.Render(f); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}

func successBar(rep *analysis.Report) *charts.Bar {
	x := make([]string, 0, len(rep.Summaries))
	successes := make([]opts.BarData, 0, len(rep.Summaries))
	failures := make([]opts.BarData, 0, len(rep.Summaries))
	for _, s := range rep.Summaries {
		x = append(x, s.Algorithm)
		successes = append(successes, opts.BarData{Value: s.Successes})
		failures = append(failures, opts.BarData{Value: s.Runs - s.Successes})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "480px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Run Outcomes",
			Subtitle: fmt.Sprintf("run=%s records=%d", rep.RunID, len(rep.Records)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(x).
		AddSeries("successful", successes,
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
		).
		AddSeries("failed", failures)
	return bar
}

// binScatter plots each algorithm's binned means as its own series.
// Scatter is used rather than a line because the two algorithms bin
// independently and rarely share x positions.
func binScatter(rep *analysis.Report, metric string) *charts.Scatter {
	byAlgo := rep.Bins[metric]

	algos := make([]string, 0, len(byAlgo))
	for algo := range byAlgo {
		algos = append(algos, algo)
	}
	sort.Strings(algos)

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "480px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    metric,
			Subtitle: fmt.Sprintf("binned means over %s, successful runs only", rep.BinSource),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: rep.BinSource, NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: metric, NameLocation: "middle", NameGap: 40}),
	)

	for _, algo := range algos {
		bins := byAlgo[algo]
		data := make([]opts.ScatterData, 0, len(bins))
		for _, b := range bins {
			data = append(data, opts.ScatterData{Value: []interface{}{b.Center, b.Mean, b.Count}})
		}
		scatter.AddSeries(algo, data, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 8}))
	}
	return scatter
}

func callsScatter(rep *analysis.Report) *charts.Scatter {
	byAlgo := map[string][]opts.ScatterData{}
	for i := range rep.Successful {
		rec := &rep.Successful[i]
		byAlgo[rec.Algorithm] = append(byAlgo[rec.Algorithm], opts.ScatterData{
			Value: []interface{}{rec.TotalPathfindingCalls, rec.ExecutionTimeMs},
		})
	}

	algos := make([]string, 0, len(byAlgo))
	for algo := range byAlgo {
		algos = append(algos, algo)
	}
	sort.Strings(algos)

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "480px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Execution time vs pathfinding calls",
			Subtitle: "successful runs only",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: "total_pathfinding_calls", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: "execution_time_ms", NameLocation: "middle", NameGap: 40}),
	)

	for _, algo := range algos {
		scatter.AddSeries(algo, byAlgo[algo], charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 5}))
	}
	return scatter
}
