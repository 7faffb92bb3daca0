package metrics

import "time"

// Frames accumulates render wall-clock durations for one bar.
type Frames struct {
	name     string
	rendered int
	total    time.Duration
	max      time.Duration
	last     time.Duration
}

func NewFrames() *Frames {
	return &Frames{name: "frames"}
}

func (f *Frames) Name() string { return f.name }

// Record adds one rendered frame that took d.
func (f *Frames) Record(d time.Duration) {
	f.rendered++
	f.total += d
	f.last = d
	if d > f.max {
		f.max = d
	}
}

func (f *Frames) FramesRendered() int  { return f.rendered }
func (f *Frames) Total() time.Duration { return f.total }
func (f *Frames) Max() time.Duration   { return f.max }
func (f *Frames) Last() time.Duration  { return f.last }

func (f *Frames) Average() time.Duration {
	if f.rendered == 0 {
		return 0
	}
	return f.total / time.Duration(f.rendered)
}

// Value is the average render time in milliseconds.
func (f *Frames) Value() float64 {
	return float64(f.Average()) / float64(time.Millisecond)
}

func (f *Frames) Reset() {
	*f = Frames{name: f.name}
}

// FrameStats is a point-in-time copy of a Frames accumulator.
type FrameStats struct {
	FramesRendered int           `json:"frames_rendered" yaml:"frames_rendered"`
	Average        time.Duration `json:"average" yaml:"average"`
	Max            time.Duration `json:"max" yaml:"max"`
	Last           time.Duration `json:"last" yaml:"last"`
}

func (f *Frames) Stats() FrameStats {
	return FrameStats{
		FramesRendered: f.rendered,
		Average:        f.Average(),
		Max:            f.max,
		Last:           f.last,
	}
}
