package metrics

import "math"

// Travel is the total distance covered by the position. It equals the
// net displacement only when the motion never reverses.
type Travel struct {
	name    string
	sum     float64
	last    float64
	samples int
}

func NewTravel() *Travel {
	return &Travel{
		name: "travel",
	}
}

func (tr *Travel) Name() string {
	return tr.name
}

func (tr *Travel) Observe(s Sample) {
	if tr.samples > 0 {
		tr.sum += math.Abs(s.Position - tr.last)
	}
	tr.last = s.Position
	tr.samples++
}

func (tr *Travel) Value() float64 {
	return tr.sum
}

func (tr *Travel) Reset() {
	tr.sum = 0
	tr.last = 0
	tr.samples = 0
}
