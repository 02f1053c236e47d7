package tap

import "fmt"

type Kind uint8

const (
	KindOther Kind = iota
	KindKey
	KindAxis
)

func (k Kind) String() string {
	switch k {
	case KindKey:
		return "Key"
	case KindAxis:
		return "Axis"
	default:
		return "Other"
	}
}

// Direction selects press sequence of a code.
// Key codes only use DirKey, axis codes use DirAxisPos and DirAxisNeg.
type Direction uint8

const (
	DirKey Direction = iota
	DirAxisPos
	DirAxisNeg
)

func (d Direction) String() string {
	switch d {
	case DirKey:
		return "key"
	case DirAxisPos:
		return "pos"
	case DirAxisNeg:
		return "neg"
	}
	return fmt.Sprintf("Direction(%d)", uint8(d))
}

// RawEvent is one kernel input event. Time is monotonic nanoseconds.
type RawEvent struct {
	Time  uint64
	Kind  Kind
	Code  uint16
	Value int32
}

func (e RawEvent) String() string {
	return fmt.Sprintf("RawEvent(time=%d kind=%s code=%d value=%d)", e.Time, e.Kind, e.Code, e.Value)
}

// PressEdge marks completed press: key release or axis return to zero.
type PressEdge struct {
	Kind      Kind
	Code      uint16
	Direction Direction
	Time      uint64
}
