package capacity

import (
	"math"

	"vehicle-transport-planner/internal/domain"
)

// Policy selects which of the two derating rules of spec §4.6 to apply.
type Policy int

const (
	// StddevSubtraction: new_capacity = max(0, planned - ceil(k*sigma)).
	StddevSubtraction Policy = iota
	// QuantileReplacement: new_capacity = C_q (bucket-keyed).
	QuantileReplacement
)

// Derater mutates planned-truck capacity fields only, once, before graph
// construction (spec §4.6).
type Derater struct {
	Policy Policy
	K      float64 // stddev multiplier, used by StddevSubtraction
	Q      float64 // quantile parameter in [0,1], used by QuantileReplacement
	Stats  map[BucketKey]Stats
}

// NewDerater builds a Derater from pre-grouped historical statistics (see
// GroupHistory).
func NewDerater(policy Policy, k, q float64, stats map[BucketKey]Stats) *Derater {
	return &Derater{Policy: policy, K: k, Q: q, Stats: stats}
}

// DerateAll returns a copy of trucks with capacities adjusted per d.Policy.
// Under QuantileReplacement, q==0 ("trust the planned value") is a no-op,
// per spec §4.6 and the monotonicity property of spec §8. StddevSubtraction
// does not read q: it derates whenever K is non-zero.
func (d *Derater) DerateAll(trucks []domain.Truck) []domain.Truck {
	out := make([]domain.Truck, len(trucks))
	for i, t := range trucks {
		out[i] = d.Derate(t)
	}
	return out
}

// Derate returns t with its capacity adjusted per the configured policy.
func (d *Derater) Derate(t domain.Truck) domain.Truck {
	if d.Q == 0 && d.Policy == QuantileReplacement {
		return t
	}

	key := BucketKey{Weekday: weekday(t.DepartureDay), Segment: t.Segment, Ordinal: t.Ordinal}
	stats, ok := d.Stats[key]
	if !ok {
		return t
	}

	switch d.Policy {
	case StddevSubtraction:
		if d.K == 0 {
			return t
		}
		reduction := int(math.Ceil(d.K * stats.Stddev))
		newCap := t.Capacity - reduction
		if newCap < 0 {
			newCap = 0
		}
		t.Capacity = newCap
	case QuantileReplacement:
		t.Capacity = stats.Quantile(d.Q)
	}
	return t
}
