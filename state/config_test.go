package state

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/temoto/hypertap/hardware/input"
	"github.com/temoto/hypertap/log2"
)

func TestReadConfig(t *testing.T) {
	t.Parallel()

	type Case struct {
		name      string
		input     string
		check     func(testing.TB, *Config)
		expectErr string
	}
	cases := []Case{
		{"empty", "", func(t testing.TB, c *Config) {
			assert.Equal(t, input.DefaultDir, c.Input.Dir)
			assert.Equal(t, "", c.Input.Device)
			assert.False(t, c.LogDebug)
		}, ""},

		{"input",
			`log_debug = true
input { device = "/dev/input/event7" skip_grab_check = true }
report { quiet_live = true }`,
			func(t testing.TB, c *Config) {
				assert.True(t, c.LogDebug)
				assert.Equal(t, "/dev/input/event7", c.Input.Device)
				assert.True(t, c.Input.SkipGrabCheck)
				assert.False(t, c.Input.SkipInfo)
				assert.True(t, c.Report.QuietLive)
			},
			""},

		{"include-optional", `
include "dir-tmp" {}
include "non-exist" { optional = true }`,
			func(t testing.TB, c *Config) {
				assert.Equal(t, "/tmp/input", c.Input.Dir)
			}, ""},

		{"include-overwrites", `
input { dir = "/dev/other" }
include "dir-tmp" {}`,
			func(t testing.TB, c *Config) {
				assert.Equal(t, "/tmp/input", c.Input.Dir)
			}, ""},

		{"include-required", `include "non-exist" {}`, nil, "config required name=non-exist"},

		{"include-loop", `include "loop" {}`, nil, "config include loop"},

		{"syntax", `input {`, nil, "config unmarshal source=test-inline"},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			log := log2.NewTest(t, log2.LDebug)
			fs := NewMockFullReader(map[string]string{
				"test-inline": c.input,
				"dir-tmp":     `input { dir = "/tmp/input" }`,
				"loop":        `include "test-inline" {}`,
			})
			config, err := ReadConfig(log, fs, "test-inline")
			if c.expectErr == "" {
				require.NoError(t, err, errors.ErrorStack(err))
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), c.expectErr)
				return
			}
			if c.check != nil {
				c.check(t, config)
			}
		})
	}
}

func TestReadConfigDefaultOptional(t *testing.T) {
	t.Parallel()

	log := log2.NewTest(t, log2.LDebug)
	config, err := ReadConfig(log, NewMockFullReader(nil), "")
	require.NoError(t, err)
	assert.Equal(t, input.DefaultDir, config.Input.Dir)

	_, err = ReadConfig(log, NewMockFullReader(nil), "explicit.hcl")
	assert.True(t, errors.IsNotFound(errors.Cause(err)), errors.ErrorStack(err))
}

func TestReadConfigOs(t *testing.T) {
	t.Parallel()

	dir, err := ioutil.TempDir("", "hypertap-config-")
	require.NoError(t, err)
	defer os.RemoveAll(dir)
	require.NoError(t, ioutil.WriteFile(filepath.Join(dir, "main.hcl"), []byte(`include "local.hcl" {}`), 0600))
	require.NoError(t, ioutil.WriteFile(filepath.Join(dir, "local.hcl"), []byte(`input { device = "dump.bin" }`), 0600))

	log := log2.NewTest(t, log2.LDebug)
	config, err := ReadConfig(log, NewOsFullReader(), filepath.Join(dir, "main.hcl"))
	require.NoError(t, err, errors.ErrorStack(err))
	assert.Equal(t, "dump.bin", config.Input.Device)
}

func TestDevicePath(t *testing.T) {
	t.Parallel()

	dir, err := ioutil.TempDir("", "hypertap-devices-")
	require.NoError(t, err)
	defer os.RemoveAll(dir)
	for _, name := range []string{"event0", "event1"} {
		require.NoError(t, ioutil.WriteFile(filepath.Join(dir, name), nil, 0600))
	}

	ctx, g := NewContext(log2.NewTest(t, log2.LDebug))
	config := &Config{}
	config.Input.Dir = dir
	g.MustInit(ctx, config)
	assert.Equal(t, g, GetGlobal(ctx))
	assert.NotEmpty(t, g.SessionID)

	out := bytes.NewBuffer(nil)
	path, err := g.DevicePath(func(devices []input.Device) (string, error) {
		out.WriteString(ShowDevices(out, devices))
		return "1", nil
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "event1"), path)
	assert.True(t, strings.HasSuffix(out.String(), "Select the device event number [0-1]: "))

	_, err = g.DevicePath(func([]input.Device) (string, error) { return "5", nil })
	assert.True(t, errors.IsNotValid(errors.Cause(err)), errors.ErrorStack(err))

	config.Input.Device = "/dev/input/event9"
	path, err = g.DevicePath(nil)
	require.NoError(t, err)
	assert.Equal(t, "/dev/input/event9", path)

	config.Input.Device = ""
	config.Input.Dir = filepath.Join(dir, "empty")
	require.NoError(t, os.Mkdir(config.Input.Dir, 0700))
	_, err = g.DevicePath(nil)
	assert.True(t, errors.IsNotFound(errors.Cause(err)), errors.ErrorStack(err))
}

func TestOpenInputReplay(t *testing.T) {
	t.Parallel()

	f, err := ioutil.TempFile("", "hypertap-dump-")
	require.NoError(t, err)
	defer os.Remove(f.Name())
	f.Close()

	ctx, g := NewContext(log2.NewTest(t, log2.LDebug))
	g.MustInit(ctx, &Config{})
	out := bytes.NewBuffer(nil)
	src, err := g.OpenInput(ctx, f.Name(), out)
	require.NoError(t, err)
	defer src.Close()
	// no device info for plain files
	assert.Equal(t, "", out.String())

	_, err = g.OpenInput(ctx, f.Name()+".non-exist", out)
	assert.Error(t, err)
}
