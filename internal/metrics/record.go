// Package metrics aggregates Non-Conforming Product records into the counts,
// Pareto series, matrices and trends shown on the quality dashboard.
//
// All functions are pure: they never mutate their input and the same input
// always yields the same output, including the order of equal-valued groups.
package metrics

import (
	"strings"
	"time"
)

// Field names a responsibility dimension of a record.
type Field string

const (
	FieldInspector  Field = "inspector"
	FieldArea       Field = "area"
	FieldDefecto    Field = "defecto"
	FieldSupervisor Field = "supervisor"
	FieldOperador   Field = "operador"
	FieldAuditor    Field = "auditor"
)

// Labels used in place of a missing dimension value.
const (
	Unassigned  = "Sin asignar"
	Unspecified = "Sin especificar"
)

// Sentinel returns the label used when a record has no value for f.
func (f Field) Sentinel() string {
	if f == FieldDefecto {
		return Unspecified
	}
	return Unassigned
}

// Record is the flattened view of a report that the aggregations consume.
type Record struct {
	ID         string
	Fecha      string
	Status     string
	Inspector  string
	Area       string
	Defecto    string
	Supervisor string
	Operador   string
	Auditor    string
	Cantidad   string
	Unidad     string
}

// Value returns the trimmed value of f, or the field's sentinel when it is
// empty or blank.
func (r Record) Value(f Field) string {
	var v string
	switch f {
	case FieldInspector:
		v = r.Inspector
	case FieldArea:
		v = r.Area
	case FieldDefecto:
		v = r.Defecto
	case FieldSupervisor:
		v = r.Supervisor
	case FieldOperador:
		v = r.Operador
	case FieldAuditor:
		v = r.Auditor
	}
	if v = strings.TrimSpace(v); v == "" {
		return f.Sentinel()
	}
	return v
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseDate parses a report date. Date-only values are taken as UTC midnight.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
