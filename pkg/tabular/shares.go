package tabular

import "fmt"

// Share is one slice of a pie/percentage breakdown.
type Share struct {
	Key               string  `json:"key"`
	Value             float64 `json:"value"`
	PercentageOfTotal float64 `json:"percentage"`
}

// DerivePieShares sums valueKey across records and returns each record's share in
// input order. labelKey names the slice; when empty or missing the 1-based position is
// used. A zero total yields 0% for every share.
func DerivePieShares(records []Record, valueKey, labelKey string) []Share {
	shares := make([]Share, len(records))
	var total float64
	for i, rec := range records {
		value, _ := numeric(rec[valueKey])
		total += value
		shares[i] = Share{Key: shareLabel(rec, labelKey, i), Value: value}
	}
	if total == 0 {
		return shares
	}
	for i := range shares {
		shares[i].PercentageOfTotal = shares[i].Value / total * 100
	}
	return shares
}

func shareLabel(rec Record, labelKey string, idx int) string {
	if labelKey != "" {
		switch v := rec[labelKey].(type) {
		case string:
			if v != "" {
				return v
			}
		case nil:
		default:
			return fmt.Sprint(v)
		}
	}
	return fmt.Sprintf("%d", idx+1)
}
