package server

import "github.com/krkonrad/Calculation-data/internal/model"

type locationResponse struct {
	Name            string `json:"name"`
	Label           string `json:"label"`
	WholePopulation bool   `json:"whole_population"`
}

type cellResponse struct {
	Band         string  `json:"age_band"`
	Sex          string  `json:"sex"`
	MeanKWhPerM2 float64 `json:"mean_kwh_per_m2"`
	BandMidpoint float64 `json:"age_band_midpoint"`
}

type nameResponse struct {
	Name  string  `json:"name"`
	Count int     `json:"count"`
	Share float64 `json:"share_percent"`
}

type summaryResponse struct {
	Location        string             `json:"location"`
	WholePopulation bool               `json:"whole_population"`
	Records         int                `json:"records"`
	ByBandAndSex    []cellResponse     `json:"by_band_and_sex"`
	TopNames        []nameResponse     `json:"top_names"`
	MeanKWhBySex    map[string]float64 `json:"mean_kwh_by_sex"`
}

// newSummaryResponse flattens a summary into band order, female before male.
// Absent cells are left out.
func newSummaryResponse(s model.Summary, wholeLabel string) summaryResponse {
	resp := summaryResponse{
		Location:        s.Location.Label(wholeLabel),
		WholePopulation: s.Location.IsWholePopulation(),
		Records:         s.Records,
		ByBandAndSex:    make([]cellResponse, 0, len(s.ByBandAndSex)),
		TopNames:        make([]nameResponse, 0, len(s.TopNames)),
		MeanKWhBySex:    make(map[string]float64, len(s.MeanBySex)),
	}

	for _, band := range model.AgeBands {
		for _, sex := range model.Sexes {
			if v, ok := s.Cell(band, sex); ok {
				resp.ByBandAndSex = append(resp.ByBandAndSex, cellResponse{
					Band:         band.String(),
					Sex:          sex.String(),
					MeanKWhPerM2: v,
					BandMidpoint: band.Midpoint(),
				})
			}
		}
	}

	total := s.TotalNameCount()
	for _, n := range s.TopNames {
		share := 0.0
		if total > 0 {
			share = float64(n.Count) * 100 / float64(total)
		}
		resp.TopNames = append(resp.TopNames, nameResponse{Name: n.Name, Count: n.Count, Share: share})
	}

	for sex, v := range s.MeanBySex {
		resp.MeanKWhBySex[sex.String()] = v
	}

	return resp
}
