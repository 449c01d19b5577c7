package trackprep

import "github.com/tracklab/trackprep/date"

// Intersect restricts both panels to their common date set, preserving
// ascending order. The result depends only on the two input axes, never on
// cell values.
//
// It is applied twice per run: on price panels after gap-filling and
// resampling, and again on return panels, because each panel independently
// drops its own first row during return computation.
func Intersect(a, b *Panel) (*Panel, *Panel) {
	var common []date.Date
	i, j := 0, 0
	for i < len(a.dates) && j < len(b.dates) {
		switch {
		case a.dates[i].Before(b.dates[j]):
			i++
		case b.dates[j].Before(a.dates[i]):
			j++
		default:
			common = append(common, a.dates[i])
			i++
			j++
		}
	}
	return a.selectDates(common), b.selectDates(common)
}
