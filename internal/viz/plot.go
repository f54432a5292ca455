// Package viz renders trajectories in the terminal: static asciigraph
// plots for stored runs and a live stepping view for ongoing ones.
package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/emerge/internal/entropy"
)

const (
	plotWidth  = 80
	plotHeight = 10
)

// PlotSeries renders one captioned channel.
func PlotSeries(caption string, data []float64) string {
	if len(data) == 0 {
		return ""
	}
	return asciigraph.Plot(data,
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption(caption),
	)
}

// RenderTrajectory plots every channel of a trajectory in reading order.
func RenderTrajectory(tr *entropy.Trajectory) string {
	info := make([]float64, len(tr.States))
	meaning := make([]float64, len(tr.States))
	for i, s := range tr.States {
		info[i] = s.Info
		meaning[i] = s.Meaning
	}

	var b strings.Builder
	fmt.Fprintln(&b, PlotSeries("informational entropy", info))
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, PlotSeries("meaning entropy", meaning))
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, PlotSeries("meaning construction signal", tr.Construction))
	if tr.Drug != nil {
		fmt.Fprintln(&b)
		fmt.Fprintln(&b, PlotSeries("drug profile", tr.Drug))
	}
	return b.String()
}
