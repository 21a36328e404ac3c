package report

// Tier is a coarse compliance classification. Higher tiers rank higher.
type Tier int

const (
	// TierNone is assigned to an undefined compliance rate.
	TierNone Tier = iota
	TierLow
	TierMid
	TierTop
)

// String returns the tier name.
func (t Tier) String() string {
	switch t {
	case TierLow:
		return "low"
	case TierMid:
		return "mid"
	case TierTop:
		return "top"
	default:
		return "none"
	}
}

// MarshalText encodes the tier by name.
func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Thresholds are the lower bounds, in percent, of the mid and top tiers.
type Thresholds struct {
	Top float64
	Mid float64
}

// DefaultThresholds returns the dashboard thresholds: 80 and 50 percent.
func DefaultThresholds() Thresholds {
	return Thresholds{Top: 80, Mid: 50}
}

// Labels name the tiers for one view.
type Labels struct {
	Top string
	Mid string
	Low string
}

// Label sets of the course and department views. They share thresholds.
var (
	CourseLabels     = Labels{Top: "Good", Mid: "Adequate", Low: "Needs Attention"}
	DepartmentLabels = Labels{Top: "Excellent", Mid: "Good", Low: "Needs Attention"}
)

// For returns the label of a tier, "" for TierNone.
func (l Labels) For(t Tier) string {
	switch t {
	case TierTop:
		return l.Top
	case TierMid:
		return l.Mid
	case TierLow:
		return l.Low
	default:
		return ""
	}
}

// Classification is a tier together with its view-specific label.
type Classification struct {
	Tier  Tier   `json:"tier"`
	Label string `json:"label"`
}

// Classify maps a compliance rate to a tier and label.
func Classify(rate float64, t Thresholds, l Labels) Classification {
	tier := TierLow
	switch {
	case rate >= t.Top:
		tier = TierTop
	case rate >= t.Mid:
		tier = TierMid
	}
	return Classification{Tier: tier, Label: l.For(tier)}
}

// ClassifyMetric classifies a possibly undefined rate at display precision,
// so a rate shown as "80.0" is never labelled below the 80 threshold.
func ClassifyMetric(rate Metric, t Thresholds, l Labels) Classification {
	if !rate.Valid {
		return Classification{Tier: TierNone}
	}
	return Classify(rate.Round(1).Value, t, l)
}
