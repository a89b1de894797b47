// Package report renders aggregate summaries as terminal charts.
package report

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/krkonrad/Calculation-data/internal/cli"
	"github.com/krkonrad/Calculation-data/internal/model"
)

// Options controls how summaries are rendered.
type Options struct {
	WholeLabel string
	BarWidth   int
}

// DefaultOptions returns the options used by the CLI.
func DefaultOptions() Options {
	return Options{
		WholeLabel: model.DefaultWholePopulationLabel,
		BarWidth:   30,
	}
}

// NoDataMessage is shown when a location has no records.
func NoDataMessage(key model.LocationKey, wholeLabel string) string {
	return fmt.Sprintf("no data for location %s", key.Label(wholeLabel))
}

// RenderEmpty renders the empty-result message for key.
func RenderEmpty(key model.LocationKey, opts Options) string {
	return cli.FormatWarning(NoDataMessage(key, opts.WholeLabel))
}

// Render draws the three charts of a summary: mean consumption per m² by age band
// and sex, the most common first names, and mean consumption by sex.
func Render(s model.Summary, opts Options) string {
	title := cli.FormatTitle(fmt.Sprintf("%s %s", cli.PinIcon, s.Location.Label(opts.WholeLabel)))
	subtitle := cli.SubtitleStyle.Render(fmt.Sprintf("%d households", s.Records))

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		subtitle,
		RenderBandTable(s),
		"",
		RenderTopNames(s, opts.BarWidth),
		"",
		RenderMeanBySex(s, opts.BarWidth),
	)
}

// RenderAll renders every summary, separated by blank lines.
func RenderAll(summaries []model.Summary, opts Options) string {
	parts := make([]string, 0, len(summaries))
	for _, s := range summaries {
		parts = append(parts, Render(s, opts))
	}
	return strings.Join(parts, "\n\n")
}

// RenderBandTable renders mean kWh/m² per age band, one column per sex.
// Cells without records are shown as a dash.
func RenderBandTable(s model.Summary) string {
	var b strings.Builder
	b.WriteString(cli.BoldStyle.Render(cli.ChartIcon+" Mean consumption per m² (kWh/m²)") + "\n")

	header := fmt.Sprintf("%-8s %6s", "Age", "Mid")
	for _, sex := range model.Sexes {
		header += fmt.Sprintf(" %10s", sex)
	}
	b.WriteString(cli.TableHeaderStyle.Render(header) + "\n")

	for _, band := range model.AgeBands {
		row := fmt.Sprintf("%-8s %6.1f", band, band.Midpoint())
		for _, sex := range model.Sexes {
			if v, ok := s.Cell(band, sex); ok {
				row += fmt.Sprintf(" %10.2f", v)
			} else {
				row += fmt.Sprintf(" %10s", "—")
			}
		}
		b.WriteString(row + "\n")
	}

	return strings.TrimSuffix(b.String(), "\n")
}

// RenderTopNames renders the most common first names with their share of the top list.
func RenderTopNames(s model.Summary, barWidth int) string {
	var b strings.Builder
	b.WriteString(cli.BoldStyle.Render("Most common first names") + "\n")

	total := s.TotalNameCount()
	maxCount := 0
	nameWidth := 4
	for _, n := range s.TopNames {
		maxCount = max(maxCount, n.Count)
		nameWidth = max(nameWidth, lipgloss.Width(n.Name))
	}

	for _, n := range s.TopNames {
		b.WriteString(fmt.Sprintf("%s %4d %7s %s\n",
			pad(n.Name, nameWidth),
			n.Count,
			Share(n.Count, total),
			cli.InfoStyle.Render(Bar(float64(n.Count), float64(maxCount), barWidth))))
	}

	return strings.TrimSuffix(b.String(), "\n")
}

// RenderMeanBySex renders the mean household consumption of each sex as bars.
func RenderMeanBySex(s model.Summary, barWidth int) string {
	var b strings.Builder
	b.WriteString(cli.BoldStyle.Render("Mean consumption per household (kWh)") + "\n")

	peak := 0.0
	for _, v := range s.MeanBySex {
		peak = math.Max(peak, v)
	}

	for _, sex := range model.Sexes {
		v, ok := s.MeanBySex[sex]
		if !ok {
			continue
		}
		b.WriteString(fmt.Sprintf("%-6s %s %.2f\n",
			sex,
			cli.SexStyle(sex).Render(Bar(v, peak, barWidth)),
			v))
	}

	return strings.TrimSuffix(b.String(), "\n")
}

// RenderLocations renders the location catalog as a numbered list.
func RenderLocations(keys []model.LocationKey, wholeLabel string) string {
	var b strings.Builder
	for i, k := range keys {
		label := k.Label(wholeLabel)
		if k.IsWholePopulation() {
			label = cli.BoldStyle.Render(label)
		}
		b.WriteString(fmt.Sprintf("%3d. %s\n", i+1, label))
	}
	return b.String()
}

// Share formats count as a percentage of total with one decimal place.
func Share(count, total int) string {
	if total <= 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(count)*100/float64(total))
}

// Bar returns a text bar of width cells, filled in proportion to value/peak.
func Bar(value, peak float64, width int) string {
	if width <= 0 {
		return ""
	}
	filled := 0
	if peak > 0 && value > 0 {
		filled = int(math.Round(value / peak * float64(width)))
	}
	filled = min(max(filled, 0), width)

	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// pad right-pads s to width display cells.
func pad(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
