package state

import (
	"context"
	"fmt"
	"io"

	"github.com/juju/errors"
	"github.com/temoto/hypertap/hardware/input"
)

// AskFunc shows devices and returns user answer.
type AskFunc func(devices []input.Device) (string, error)

// DevicePath returns configured device or asks user to choose one.
func (g *Global) DevicePath(ask AskFunc) (string, error) {
	if g.Config.Input.Device != "" {
		return g.Config.Input.Device, nil
	}
	devices, err := input.Scan(g.Config.Input.Dir)
	if err != nil {
		return "", errors.Annotate(err, "Device not found")
	}
	answer, err := ask(devices)
	if err != nil {
		return "", errors.Annotate(err, "Device not found")
	}
	d, err := input.Choose(devices, answer)
	if err != nil {
		return "", errors.Annotate(err, "Device not found")
	}
	return d.Path, nil
}

// OpenInput opens path as event source.
// Character device info is written to w and exclusive access is probed,
// unless disabled in config. Other files are replayed as recorded events.
func (g *Global) OpenInput(ctx context.Context, path string, w io.Writer) (*input.DevInputEventSource, error) {
	isDev, err := input.IsDevice(path)
	if err != nil {
		return nil, errors.Annotatef(err, "input path=%s", path)
	}
	f, err := input.Open(path)
	if err != nil {
		return nil, err
	}
	if !isDev {
		g.Log.Infof("input path=%s is not a device, replay recorded events", path)
		return input.NewDevInputEventSource(f), nil
	}

	if !g.Config.Input.SkipInfo {
		info, err := input.ReadInfo(f)
		if err != nil {
			f.Close()
			return nil, errors.Annotatef(err, "input path=%s", path)
		}
		info.Format(w)
	}
	if !g.Config.Input.SkipGrabCheck {
		if err := input.ProbeGrab(f); err != nil {
			f.Close()
			return nil, err
		}
	}
	g.Log.Debugf("input path=%s opened", path)
	return input.NewDevInputEventSource(f), nil
}

// ShowDevices is AskFunc helper: prints list and prompt text.
func ShowDevices(w io.Writer, devices []input.Device) string {
	input.FormatDevices(w, devices)
	return fmt.Sprintf("Select the device event number [0-%d]: ", len(devices)-1)
}
