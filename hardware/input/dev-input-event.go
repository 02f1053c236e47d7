package input

import (
	"expvar"
	"io"
	"os"

	"github.com/temoto/hypertap/helpers"
	"github.com/temoto/hypertap/internal/tap"
	"github.com/temoto/inputevent-go"
)

const DevInputEventTag = "dev-input-event"

// linux/input-event-codes.h
const (
	evSyn = 0x00
	evKey = 0x01
	evAbs = 0x03
	evMax = 0x1f

	keyMax = 0x2ff
)

// DevInputEventSource decodes kernel struct input_event records.
// Any reader works, so recorded event dumps can be replayed.
type DevInputEventSource struct {
	c    io.Closer
	r    io.Reader
	name string

	// BytesRead counts raw record bytes consumed
	BytesRead expvar.Int
}

// compile-time interface compliance test
var _ tap.Source = new(DevInputEventSource)

func NewDevInputEventSource(f *os.File) *DevInputEventSource {
	return NewReaderSource(f, f.Name())
}

func NewReaderSource(rc io.ReadCloser, name string) *DevInputEventSource {
	self := &DevInputEventSource{c: rc, name: name}
	self.r = helpers.NewStatReader(rc, &self.BytesRead, 0)
	return self
}

func (self *DevInputEventSource) String() string { return DevInputEventTag + ":" + self.name }

func (self *DevInputEventSource) Close() error { return self.c.Close() }

// Read blocks until one full record is available.
// Short read is an error, io.EOF is returned as is.
func (self *DevInputEventSource) Read() (tap.RawEvent, error) {
	ie, err := inputevent.ReadOne(self.r)
	if err != nil {
		return tap.RawEvent{}, err
	}
	return Convert(ie), nil
}

func Convert(ie inputevent.InputEvent) tap.RawEvent {
	e := tap.RawEvent{
		Time:  uint64(ie.Time.Sec)*1000000000 + uint64(ie.Time.Usec)*1000,
		Kind:  tap.KindOther,
		Code:  ie.Code,
		Value: ie.Value,
	}
	switch ie.Type {
	case evKey:
		e.Kind = tap.KindKey
	case evAbs:
		e.Kind = tap.KindAxis
	}
	return e
}
