package ensemble

import (
	"fmt"
	"math"
	"sort"
)

// Driver selection.
const (
	DriverThreshold = 0.10
	maxDrivers      = 3
)

// Deviation is one pillar's signed distance from neutral with a short
// description of what moved it.
type Deviation struct {
	Pillar string
	Value  float64
	Detail string
}

// Drivers keeps deviations with |value| >= 0.10 and returns the strongest
// three positive followed by the strongest three negative, as strings.
func Drivers(devs []Deviation) []string {
	var pos, neg []Deviation
	for _, d := range devs {
		switch {
		case d.Value >= DriverThreshold:
			pos = append(pos, d)
		case d.Value <= -DriverThreshold:
			neg = append(neg, d)
		}
	}
	byMagnitude := func(ds []Deviation) {
		sort.SliceStable(ds, func(i, j int) bool {
			ai, aj := math.Abs(ds[i].Value), math.Abs(ds[j].Value)
			if ai != aj {
				return ai > aj
			}
			return ds[i].Pillar < ds[j].Pillar
		})
	}
	byMagnitude(pos)
	byMagnitude(neg)

	out := make([]string, 0, 2*maxDrivers)
	for i := 0; i < len(pos) && i < maxDrivers; i++ {
		out = append(out, pos[i].String())
	}
	for i := 0; i < len(neg) && i < maxDrivers; i++ {
		out = append(out, neg[i].String())
	}
	return out
}

func (d Deviation) String() string {
	if d.Detail == "" {
		return fmt.Sprintf("%s %+.0f%%", d.Pillar, d.Value*100)
	}
	return fmt.Sprintf("%s %+.0f%%: %s", d.Pillar, d.Value*100, d.Detail)
}
