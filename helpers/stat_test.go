package helpers

import (
	"bytes"
	"expvar"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatReader(t *testing.T) {
	t.Parallel()

	var counter expvar.Int
	s := NewStatReader(bytes.NewReader(make([]byte, 30)), &counter, 0)
	buf := make([]byte, 24)
	n, err := s.Read(buf[:0])
	assert.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, int64(0), counter.Value())
	_, _ = s.Read(buf)
	assert.Equal(t, int64(24), counter.Value())
	n, _ = s.Read(buf)
	assert.Equal(t, 6, n)
	assert.Equal(t, int64(30), counter.Value())
	_, err = s.Read(buf)
	assert.Equal(t, io.EOF, err)
	assert.Equal(t, int64(30), counter.Value())
}

func TestStatReaderFix(t *testing.T) {
	t.Parallel()

	var counter expvar.Int
	s := NewStatReader(bytes.NewReader(make([]byte, 8)), &counter, 1)
	_, _ = s.Read(make([]byte, 4))
	_, _ = s.Read(make([]byte, 4))
	assert.Equal(t, int64(10), counter.Value())
}
