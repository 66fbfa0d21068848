package tabular

import "fmt"

// SortPolicy selects how repeated clicks on a column header cycle the sort state.
type SortPolicy int

const (
	// TwoState toggles asc <-> desc; a column, once chosen, is always sorted.
	TwoState SortPolicy = iota
	// ThreeState cycles asc -> desc -> unsorted -> asc.
	ThreeState
)

func (p SortPolicy) String() string {
	switch p {
	case TwoState:
		return "two_state"
	case ThreeState:
		return "three_state"
	default:
		return fmt.Sprintf("SortPolicy(%d)", int(p))
	}
}

// ParseSortPolicy maps "two_state"/"three_state" to a policy.
func ParseSortPolicy(value string) (SortPolicy, error) {
	switch value {
	case "", "two_state", "two-state", "toggle":
		return TwoState, nil
	case "three_state", "three-state", "cycle":
		return ThreeState, nil
	default:
		return TwoState, fmt.Errorf("tabular: unknown sort policy %q", value)
	}
}

// AdvanceSortState returns the state that follows a click on clickedKey. Clicking a
// different column always starts at Asc under both policies.
func AdvanceSortState(current SortState, clickedKey string, policy SortPolicy) SortState {
	if clickedKey == "" {
		return current
	}
	if current.Key != clickedKey || current.Direction == None {
		return SortState{Key: clickedKey, Direction: Asc}
	}
	switch policy {
	case ThreeState:
		if current.Direction == Asc {
			return SortState{Key: clickedKey, Direction: Desc}
		}
		return SortState{}
	default:
		if current.Direction == Asc {
			return SortState{Key: clickedKey, Direction: Desc}
		}
		return SortState{Key: clickedKey, Direction: Asc}
	}
}
