package renderer

import (
	"bytes"
	"fmt"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/df07/go-sppm/pkg/film"
)

// IterationStats describes one photon iteration
type IterationStats struct {
	Iteration    int           // 1-based iteration number
	Photons      int           // Photons emitted by this iteration
	TotalPhotons int64         // Photons emitted so far, used to normalize the estimate
	Deposits     int64         // Photon deposits on hit points
	MaxRadius    float64       // Largest gather radius after the iteration
	Duration     time.Duration // Wall time of the photon pass
}

// FormatStats renders per-iteration statistics as a table
func FormatStats(stats []IterationStats) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Iteration", "Photons", "Deposits", "Max radius", "Time"})

	var total time.Duration
	var photons int64
	var deposits int64
	for _, stat := range stats {
		table.Append([]string{
			fmt.Sprintf("%d", stat.Iteration),
			fmt.Sprintf("%d", stat.Photons),
			fmt.Sprintf("%d", stat.Deposits),
			fmt.Sprintf("%.5f", stat.MaxRadius),
			stat.Duration.String(),
		})
		total += stat.Duration
		photons = stat.TotalPhotons
		deposits += stat.Deposits
	}
	table.SetFooter([]string{"TOTAL", fmt.Sprintf("%d", photons), fmt.Sprintf("%d", deposits), "", total.String()})

	table.Render()
	return buf.String()
}

// AverageLuminance returns the mean linear luminance of img
func AverageLuminance(img *film.Image) float64 {
	if len(img.Pix) == 0 {
		return 0
	}
	var sum float64
	for _, c := range img.Pix {
		sum += c.Luminance()
	}
	return sum / float64(len(img.Pix))
}
