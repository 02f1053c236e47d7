// Capture press cadence from selected input device.
package capture

import (
	"context"
	"os"
	"strconv"

	prompt "github.com/c-bata/go-prompt"
	"github.com/juju/errors"
	"github.com/temoto/hypertap/cmd/hypertap/subcmd"
	"github.com/temoto/hypertap/hardware/input"
	"github.com/temoto/hypertap/helpers/cli"
	"github.com/temoto/hypertap/internal/tap"
	"github.com/temoto/hypertap/state"
)

var Mod = subcmd.Mod{Name: "run", Usage: "select device, print live and final tap rates", Main: Main}
var ListMod = subcmd.Mod{Name: "list", Usage: "list input devices", Main: List}
var InfoMod = subcmd.Mod{Name: "info", Usage: "print capabilities of selected device", Main: Info}

func Main(ctx context.Context, config *state.Config) error {
	g := state.GetGlobal(ctx)
	g.MustInit(ctx, config)

	src, err := open(ctx, g)
	if err != nil {
		return err
	}

	if !g.Alive.Add(1) {
		src.Close()
		return nil
	}
	defer g.Alive.Done()
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-g.Alive.StopChan():
			cancel()
		case <-runCtx.Done():
		}
	}()

	s := tap.NewSession(g.SessionID, g.Log, os.Stdout)
	s.Report.Quiet = g.Config.Report.QuietLive
	err = s.Run(runCtx, src)
	g.Log.Debugf("input bytes=%d", src.BytesRead.Value())
	src.Close()
	return err
}

func List(ctx context.Context, config *state.Config) error {
	g := state.GetGlobal(ctx)
	g.MustInit(ctx, config)

	devices, err := input.Scan(g.Config.Input.Dir)
	if err != nil {
		return errors.Annotate(err, "Device not found")
	}
	input.FormatDevices(os.Stdout, devices)
	return nil
}

func Info(ctx context.Context, config *state.Config) error {
	g := state.GetGlobal(ctx)
	config.Input.SkipInfo = false
	config.Input.SkipGrabCheck = true
	g.MustInit(ctx, config)

	src, err := open(ctx, g)
	if err != nil {
		return err
	}
	return src.Close()
}

func open(ctx context.Context, g *state.Global) (*input.DevInputEventSource, error) {
	path, err := g.DevicePath(ask)
	if err != nil {
		return nil, err
	}
	return g.OpenInput(ctx, path, os.Stdout)
}

func ask(devices []input.Device) (string, error) {
	message := state.ShowDevices(os.Stdout, devices)
	suggests := make([]prompt.Suggest, len(devices))
	for i, d := range devices {
		suggests[i] = prompt.Suggest{Text: strconv.Itoa(i), Description: d.Name}
	}
	return cli.Ask(message, suggests)
}
