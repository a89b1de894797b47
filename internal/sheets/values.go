package sheets

import (
	"time"

	"github.com/krkonrad/Calculation-data/internal/model"
	"github.com/shopspring/decimal"
)

// ExportMeta describes the run an export belongs to.
type ExportMeta struct {
	ReferenceDate time.Time
	SourceName    string
	WholeLabel    string
}

// BuildValues lays out the summaries as sheet rows: a title block, then one block
// per summary with the band-by-sex table, the top names and the per-sex means.
// Numbers are rounded to precision decimal places; empty cells mean "no data".
func BuildValues(summaries []model.Summary, meta ExportMeta, precision int32) [][]any {
	values := make([][]any, 0, 4+len(summaries)*(len(model.AgeBands)+16))
	values = append(values,
		[]any{DefaultSpreadsheetName, meta.SourceName},
		[]any{"Reference date", meta.ReferenceDate.Format("2006-01-02")},
		[]any{},
	)

	round := func(v float64) string {
		return decimal.NewFromFloat(v).Round(precision).String()
	}

	for _, s := range summaries {
		values = append(values,
			[]any{"Location", s.Location.Label(meta.WholeLabel)},
			[]any{"Records", s.Records},
			[]any{"Mean consumption per m² (kWh/m²)"},
			[]any{"Age band", "Female", "Male"},
		)
		for _, band := range model.AgeBands {
			row := []any{band.String()}
			for _, sex := range model.Sexes {
				if v, ok := s.Cell(band, sex); ok {
					row = append(row, round(v))
				} else {
					row = append(row, "")
				}
			}
			values = append(values, row)
		}

		values = append(values,
			[]any{"Top first names"},
			[]any{"Name", "Count", "Share %"},
		)
		total := s.TotalNameCount()
		for _, n := range s.TopNames {
			share := decimal.NewFromInt(int64(n.Count)).
				Mul(decimal.NewFromInt(100)).
				Div(decimal.NewFromInt(int64(total)))
			values = append(values, []any{n.Name, n.Count, share.StringFixed(1)})
		}

		values = append(values,
			[]any{"Mean consumption per household (kWh)"},
			[]any{"Sex", "Mean"},
		)
		for _, sex := range model.Sexes {
			if v, ok := s.MeanBySex[sex]; ok {
				values = append(values, []any{sex.String(), round(v)})
			}
		}
		values = append(values, []any{})
	}

	return values
}
