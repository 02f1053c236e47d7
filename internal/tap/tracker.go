package tap

type codeKey struct {
	kind Kind
	code uint16
}

type codeState struct {
	last  uint64 // 0 = no event seen yet
	value int32
}

// Tracker converts raw events into press edges.
// State is kept per (kind, code) only for codes actually seen.
type Tracker struct {
	states map[codeKey]*codeState
}

func NewTracker() *Tracker {
	return &Tracker{states: make(map[codeKey]*codeState, 16)}
}

// Handle updates state of event code and returns completed press, if any.
// First event of a code only initializes state.
// Axis sign flip that skips zero (+5 -> -3) produces no edge.
func (self *Tracker) Handle(e RawEvent) (PressEdge, bool) {
	if e.Kind != KindKey && e.Kind != KindAxis {
		return PressEdge{}, false
	}

	key := codeKey{kind: e.Kind, code: e.Code}
	s, ok := self.states[key]
	if !ok {
		s = &codeState{}
		self.states[key] = s
	}

	edge := PressEdge{Kind: e.Kind, Code: e.Code, Time: e.Time}
	found := false
	if s.last != 0 && e.Value == 0 {
		switch {
		case e.Kind == KindKey && s.value != 0:
			edge.Direction = DirKey
			found = true
		case e.Kind == KindAxis && s.value > 0:
			edge.Direction = DirAxisPos
			found = true
		case e.Kind == KindAxis && s.value < 0:
			edge.Direction = DirAxisNeg
			found = true
		}
	}

	s.last = e.Time
	s.value = e.Value
	if !found {
		return PressEdge{}, false
	}
	return edge, true
}

// Len returns number of tracked codes.
func (self *Tracker) Len() int { return len(self.states) }
