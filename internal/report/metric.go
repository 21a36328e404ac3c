// Package report implements the compliance reporting pipeline: filtering
// assignment records, aggregating them into the dashboard views and holding
// the single report session that re-runs both on every filter change.
package report

import (
	"strconv"
)

// Placeholder is shown in place of an undefined metric.
const Placeholder = "—"

// Metric is a derived number that may be undefined, such as a rate over an
// empty group. An undefined metric is never represented as NaN or zero.
type Metric struct {
	Value float64
	Valid bool
}

// Undefined returns the undefined metric.
func Undefined() Metric {
	return Metric{}
}

// Defined wraps a known value.
func Defined(v float64) Metric {
	return Metric{Value: v, Valid: true}
}

// Percent returns part/whole*100, undefined when whole is zero.
func Percent(part, whole int) Metric {
	if whole == 0 {
		return Undefined()
	}
	return Defined(float64(part) / float64(whole) * 100)
}

// Mean returns the arithmetic mean, undefined for no values.
func Mean(values []float64) Metric {
	if len(values) == 0 {
		return Undefined()
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return Defined(sum / float64(len(values)))
}

// Format renders the value with prec decimals (-1 for the shortest exact
// form) or the placeholder when undefined.
func (m Metric) Format(prec int, placeholder string) string {
	if !m.Valid {
		return placeholder
	}
	return strconv.FormatFloat(m.Value, 'f', prec, 64)
}

// Round returns the metric rounded to prec decimals, the value Format shows.
func (m Metric) Round(prec int) Metric {
	if !m.Valid {
		return m
	}
	v, err := strconv.ParseFloat(strconv.FormatFloat(m.Value, 'f', prec, 64), 64)
	if err != nil {
		return m
	}
	return Defined(v)
}

// String renders one decimal, the dashboard's display precision.
func (m Metric) String() string {
	return m.Format(1, Placeholder)
}

// MarshalJSON encodes an undefined metric as null.
func (m Metric) MarshalJSON() ([]byte, error) {
	if !m.Valid {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, m.Value, 'f', -1, 64), nil
}
