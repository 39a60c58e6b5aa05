package metrics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name                string
		apps, goal, assists int
		want                Derived
	}{
		{"zero apps", 0, 12, 4, Derived{GPlusA: 16}},
		{"all zero", 0, 0, 0, Derived{}},
		{"regular", 200, 150, 50, Derived{GPlusA: 200, GPm: 0.75, APm: 0.25, GAPm: 1}},
		{"negative apps guarded", -3, 1, 1, Derived{GPlusA: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(tt.apps, tt.goal, tt.assists)
			assert.Equal(t, tt.want.GPlusA, got.GPlusA)
			assert.InDelta(t, tt.want.GPm, got.GPm, 1e-9)
			assert.InDelta(t, tt.want.APm, got.APm, 1e-9)
			assert.InDelta(t, tt.want.GAPm, got.GAPm, 1e-9)
		})
	}
}

func TestComputeNeverProducesNaN(t *testing.T) {
	for apps := 0; apps < 5; apps++ {
		for goal := 0; goal < 5; goal++ {
			d := Compute(apps, goal, 5-goal)
			for _, v := range []float64{d.GPm, d.APm, d.GAPm} {
				assert.False(t, math.IsNaN(v) || math.IsInf(v, 0))
			}
		}
	}
}
