// Package tap measures press cadence from raw input events.
package tap

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/juju/errors"
	"github.com/temoto/hypertap/log2"
)

type Source interface {
	Read() (RawEvent, error)
	Close() error
	String() string
}

// Session owns all per-code state of one capture run.
// Not safe for concurrent use, Run is the only intended caller of Feed.
type Session struct {
	ID     string
	Log    *log2.Log
	Report *Reporter

	tracker *Tracker
	presses *PressLog
	events  uint64
}

func NewSession(id string, log *log2.Log, w io.Writer) *Session {
	return &Session{
		ID:      id,
		Log:     log,
		Report:  NewReporter(w),
		tracker: NewTracker(),
		presses: NewPressLog(),
	}
}

func (self *Session) Presses() *PressLog { return self.presses }

// Feed processes one event, appends completed press and writes live line.
func (self *Session) Feed(e RawEvent) (PressEdge, bool) {
	if self.events == 0 {
		fmt.Fprintln(self.Report.w, "MASH!!!!")
	}
	self.events++
	self.Log.Debugf("session=%s %s", self.ID, e.String())

	edge, ok := self.tracker.Handle(e)
	if !ok {
		return edge, false
	}
	self.presses.Append(edge)
	key := LogKey{Code: edge.Code, Direction: edge.Direction}
	self.Report.Live(LiveRate(key, self.presses.Get(key.Code, key.Direction)))
	return edge, true
}

// Run reads source until error or ctx is done, then writes final report.
// Cancel closes source to unblock pending read, stop and EOF are not errors.
func (self *Session) Run(ctx context.Context, src Source) error {
	tag := src.String()
	self.Log.Debugf("session=%s source=%s start", self.ID, tag)
	fmt.Fprintln(self.Report.w, "Testing ... (interrupt to exit)")

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		select {
		case <-ctx.Done():
			if err := src.Close(); err != nil {
				self.Log.Errorf("session=%s source=%s close err=%v", self.ID, tag, err)
			}
		case <-done:
		}
	}()

	err := self.loop(ctx, src)
	close(done)
	wg.Wait()

	self.Report.Final(self.presses)
	self.Log.Debugf("session=%s source=%s end events=%d codes=%d", self.ID, tag, self.events, self.tracker.Len())
	if err != nil {
		return errors.Annotatef(err, "input source=%s", tag)
	}
	return nil
}

func (self *Session) loop(ctx context.Context, src Source) error {
	for {
		e, err := src.Read()
		if err != nil {
			if ctx.Err() != nil || errors.Cause(err) == io.EOF {
				return nil
			}
			return err
		}
		self.Feed(e)
	}
}
