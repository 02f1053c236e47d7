package tap

const nanosecond = 1e9

// Live is instantaneous rate right after a press was appended.
// Hz is zero until there are two presses.
type Live struct {
	Code      uint16
	Direction Direction
	Count     int
	Hz        float64
}

func LiveRate(key LogKey, presses []uint64) Live {
	l := Live{Code: key.Code, Direction: key.Direction, Count: len(presses)}
	if n := len(presses); n >= 2 {
		l.Hz = intervalRate(presses[n-2], presses[n-1])
	}
	return l
}

// Summary is aggregate over full press sequence.
// AvgRate is Count/seconds, not (Count-1)/seconds, so for two presses it is
// double the single interval rate.
type Summary struct {
	Count    int
	Duration uint64 // nanoseconds between first and last press
	AvgRate  float64
	presses  []uint64
}

// Summarize returns false for empty sequence.
func Summarize(presses []uint64) (Summary, bool) {
	n := len(presses)
	if n == 0 {
		return Summary{}, false
	}
	s := Summary{Count: n, presses: presses}
	s.Duration = presses[n-1] - presses[0]
	if s.Duration != 0 {
		s.AvgRate = float64(n) / s.Seconds()
	}
	return s, true
}

// Single is true when rate is undefined: one press or zero duration.
func (s Summary) Single() bool { return s.Count < 2 || s.Duration == 0 }

func (s Summary) Seconds() float64 { return float64(s.Duration) / nanosecond }

// Rates iterates implied rate of each adjacent interval, Count-1 values.
func (s Summary) Rates() *RateIter { return &RateIter{presses: s.presses, i: 1} }

type RateIter struct {
	presses []uint64
	i       int
}

func (r *RateIter) Next() (float64, bool) {
	if r.i >= len(r.presses) {
		return 0, false
	}
	rate := intervalRate(r.presses[r.i-1], r.presses[r.i])
	r.i++
	return rate, true
}

// zero interval means rate undefined, reported as 0
func intervalRate(prev, next uint64) float64 {
	delta := next - prev
	if delta == 0 {
		return 0
	}
	return nanosecond / float64(delta)
}
