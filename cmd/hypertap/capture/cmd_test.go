package capture

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/temoto/hypertap/log2"
	"github.com/temoto/hypertap/state"
	"github.com/temoto/inputevent-go"
)

func writeDump(t testing.TB, path string, events []inputevent.InputEvent) {
	b := make([]byte, 0, len(events)*inputevent.EventSizeof)
	for i := range events {
		raw := (*[inputevent.EventSizeof]byte)(unsafe.Pointer(&events[i]))
		b = append(b, raw[:]...)
	}
	require.NoError(t, ioutil.WriteFile(path, b, 0600))
}

func TestMainReplay(t *testing.T) {
	t.Parallel()

	dir, err := ioutil.TempDir("", "hypertap-capture-")
	require.NoError(t, err)
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "dump")
	at := func(ms int64) syscall.Timeval { return syscall.NsecToTimeval(ms * 1000000) }
	writeDump(t, path, []inputevent.InputEvent{
		{Time: at(1000), Type: 0x01, Code: 304, Value: 1},
		{Time: at(1100), Type: 0x01, Code: 304, Value: 0},
		{Time: at(1200), Type: 0x01, Code: 304, Value: 1},
		{Time: at(1350), Type: 0x01, Code: 304, Value: 0},
	})

	ctx, g := state.NewContext(log2.NewTest(t, log2.LDebug))
	config := &state.Config{}
	config.Input.Device = path
	config.Report.QuietLive = true
	require.NoError(t, Main(ctx, config))
	assert.NotEmpty(t, g.SessionID)
}

func TestMainMissingDevice(t *testing.T) {
	t.Parallel()

	ctx, _ := state.NewContext(log2.NewTest(t, log2.LDebug))
	config := &state.Config{}
	config.Input.Device = "/non-exist/event0"
	assert.Error(t, Main(ctx, config))
	assert.Error(t, Info(ctx, config))
}

func TestList(t *testing.T) {
	t.Parallel()

	dir, err := ioutil.TempDir("", "hypertap-list-")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	ctx, _ := state.NewContext(log2.NewTest(t, log2.LDebug))
	config := &state.Config{}
	config.Input.Dir = dir
	assert.Error(t, List(ctx, config))

	require.NoError(t, ioutil.WriteFile(filepath.Join(dir, "event0"), nil, 0600))
	assert.NoError(t, List(ctx, config))
}
