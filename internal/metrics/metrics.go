// Package metrics derives per-match rates from a card's raw counters.
package metrics

// Derived holds the rates computed from (apps, goal, assists).
type Derived struct {
	GPlusA int     `json:"gPlusA"`
	GPm    float64 `json:"gPm"`
	APm    float64 `json:"aPm"`
	GAPm   float64 `json:"gAPm"`
}

// Compute is total: zero appearances yields zero rates rather than NaN or Inf.
func Compute(apps, goal, assists int) Derived {
	d := Derived{GPlusA: goal + assists}
	if apps <= 0 {
		return d
	}
	a := float64(apps)
	d.GPm = float64(goal) / a
	d.APm = float64(assists) / a
	d.GAPm = float64(goal+assists) / a
	return d
}
