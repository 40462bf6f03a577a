package report

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/dynamic-pathfinding/bench.report/internal/analysis"
)

// WriteBinCharts renders one PNG per metric: each algorithm's binned
// means plotted as a line over the bin centers. Returns the files
// written.
func WriteBinCharts(rep *analysis.Report, outputDir string) ([]string, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output dir: %w", err)
	}

	metrics := make([]string, 0, len(rep.Bins))
	for metric := range rep.Bins {
		metrics = append(metrics, metric)
	}
	sort.Strings(metrics)

	var files []string
	for _, metric := range metrics {
		file := filepath.Join(outputDir, fmt.Sprintf("bins_%s.png", metric))
		if err := writeBinChart(rep, metric, file); err != nil {
			return files, fmt.Errorf("metric %s: %w", metric, err)
		}
		files = append(files, file)
	}
	return files, nil
}

func writeBinChart(rep *analysis.Report, metric, file string) error {
	byAlgo := rep.Bins[metric]

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s vs %s", metric, rep.BinSource)
	p.X.Label.Text = rep.BinSource
	p.Y.Label.Text = metric

	algos := make([]string, 0, len(byAlgo))
	for algo := range byAlgo {
		algos = append(algos, algo)
	}
	sort.Strings(algos)

	colors := generateColors(len(algos))

	for i, algo := range algos {
		bins := byAlgo[algo]
		if len(bins) == 0 {
			continue
		}
		pts := make(plotter.XYs, 0, len(bins))
		for _, b := range bins {
			pts = append(pts, plotter.XY{X: b.Center, Y: b.Mean})
		}

		line, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		line.Color = colors[i]
		line.Width = vg.Points(1)
		p.Add(line)
		p.Legend.Add(algo, line)
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10

	if err := p.Save(10*vg.Inch, 5*vg.Inch, file); err != nil {
		return fmt.Errorf("save bin plot: %w", err)
	}
	return nil
}

// generateColors creates a palette of distinct colors for series lines.
func generateColors(n int) []color.Color {
	if n <= 0 {
		return nil
	}

	colors := make([]color.Color, n)
	for i := 0; i < n; i++ {
		hue := float64(i) / float64(n)
		r, g, b := hslToRGB(hue, 0.7, 0.5)
		colors[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	return colors
}

// hslToRGB converts HSL to RGB (0-255 range)
func hslToRGB(h, s, l float64) (r, g, b uint8) {
	var rf, gf, bf float64

	if s == 0 {
		rf, gf, bf = l, l, l
	} else {
		var q float64
		if l < 0.5 {
			q = l * (1 + s)
		} else {
			q = l + s - l*s
		}
		p := 2*l - q
		rf = hueToRGB(p, q, h+1.0/3.0)
		gf = hueToRGB(p, q, h)
		bf = hueToRGB(p, q, h-1.0/3.0)
	}

	return uint8(rf * 255), uint8(gf * 255), uint8(bf * 255)
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t += 1
	}
	if t > 1 {
		t -= 1
	}
	if t < 1.0/6.0 {
		return p + (q-p)*6*t
	}
	if t < 1.0/2.0 {
		return q
	}
	if t < 2.0/3.0 {
		return p + (q-p)*(2.0/3.0-t)*6
	}
	return p
}
