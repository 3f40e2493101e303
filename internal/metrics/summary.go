package metrics

import "time"

// Summary bundles every dashboard aggregation for one period.
type Summary struct {
	Period       Period        `json:"period"`
	Total        int           `json:"total"`
	Active       int           `json:"active"`
	Inspectors   int           `json:"inspectors"`
	Areas        int           `json:"areas"`
	Defects      int           `json:"defects"`
	ByInspector  []Count       `json:"byInspector"`
	ByArea       []Count       `json:"byArea"`
	ByDefect     []Count       `json:"byDefect"`
	BySupervisor []Count       `json:"bySupervisor"`
	Pareto       []ParetoEntry `json:"pareto"`
	Matrix       Matrix        `json:"matrix"`
	Trend        []Count       `json:"trend"`
	Quantities   []Quantity    `json:"quantities"`
}

// Summarize filters records to p and computes all aggregations over the result.
func Summarize(records []Record, p Period, now time.Time) Summary {
	filtered := Filter(records, p, now)

	active := 0
	for _, r := range filtered {
		if r.Status == "Activo" {
			active++
		}
	}

	return Summary{
		Period:       p,
		Total:        len(filtered),
		Active:       active,
		Inspectors:   Distinct(filtered, FieldInspector),
		Areas:        Distinct(filtered, FieldArea),
		Defects:      Distinct(filtered, FieldDefecto),
		ByInspector:  nonNil(GroupBy(filtered, FieldInspector)),
		ByArea:       nonNil(GroupBy(filtered, FieldArea)),
		ByDefect:     nonNil(GroupBy(filtered, FieldDefecto)),
		BySupervisor: nonNil(GroupBy(filtered, FieldSupervisor)),
		Pareto:       append([]ParetoEntry{}, Pareto(filtered)...),
		Matrix:       DefectAreaMatrix(filtered),
		Trend:        MonthlyTrend(filtered),
		Quantities:   append([]Quantity{}, QuantityByUnit(filtered)...),
	}
}

func nonNil(c []Count) []Count {
	if c == nil {
		return []Count{}
	}
	return c
}
