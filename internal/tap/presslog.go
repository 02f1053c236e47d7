package tap

import "sort"

type LogKey struct {
	Code      uint16
	Direction Direction
}

// PressLog keeps press completion timestamps per code and direction.
// Sequences only grow for the lifetime of a session.
type PressLog struct {
	seqs map[LogKey][]uint64
}

func NewPressLog() *PressLog {
	return &PressLog{seqs: make(map[LogKey][]uint64, 8)}
}

func (self *PressLog) Append(edge PressEdge) {
	key := LogKey{Code: edge.Code, Direction: edge.Direction}
	self.seqs[key] = append(self.seqs[key], edge.Time)
}

// Get returns ordered timestamps, nil if code/direction never completed a press.
// Caller must not modify result.
func (self *PressLog) Get(code uint16, dir Direction) []uint64 {
	return self.seqs[LogKey{Code: code, Direction: dir}]
}

// Keys returns non-empty sequences in report order:
// keys by code, then axes by code with negative before positive.
func (self *PressLog) Keys() []LogKey {
	keys := make([]LogKey, 0, len(self.seqs))
	for k, seq := range self.seqs {
		if len(seq) != 0 {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if ga, gb := a.Direction == DirKey, b.Direction == DirKey; ga != gb {
			return ga
		}
		if a.Code != b.Code {
			return a.Code < b.Code
		}
		return dirOrder(a.Direction) < dirOrder(b.Direction)
	})
	return keys
}

func dirOrder(d Direction) int {
	switch d {
	case DirAxisNeg:
		return 0
	case DirAxisPos:
		return 1
	}
	return 2
}
