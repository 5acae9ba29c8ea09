package analysis

// Score maps the set of metric statuses to an aggregate confidence
// percentage. The breakpoints are a fixed lookup, not a formula: three safe
// metrics score 95, two 75, one 50, none 30.
func Score(set StatusSet) int {
	switch set.SafeCount() {
	case 3:
		return 95
	case 2:
		return 75
	case 1:
		return 50
	default:
		return 30
	}
}
