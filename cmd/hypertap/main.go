package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/coreos/go-systemd/daemon"
	"github.com/juju/errors"
	"github.com/temoto/hypertap/cmd/hypertap/capture"
	"github.com/temoto/hypertap/cmd/hypertap/subcmd"
	"github.com/temoto/hypertap/hardware/input"
	"github.com/temoto/hypertap/helpers/cli"
	"github.com/temoto/hypertap/log2"
	"github.com/temoto/hypertap/state"
)

var BuildVersion string = "unknown" // set by ldflags -X
var log = log2.NewStderr(log2.LInfo)
var modules = []subcmd.Mod{
	capture.Mod,
	capture.ListMod,
	capture.InfoMod,
}

func main() {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	flagConfig := flags.String("config", "", "config file, default "+state.DefaultConfigName+" if exists")
	flagDevice := flags.String("device", "", "input device or recorded events file, skips selection prompt")
	flagDebug := flags.Bool("debug", false, "debug logging")
	flags.Usage = func() {
		fmt.Fprintf(flags.Output(), "usage: %s [flags] [command]\ncommands:\n", os.Args[0])
		for _, m := range modules {
			fmt.Fprintf(flags.Output(), "  %-6s %s\n", m.Name, m.Usage)
		}
		flags.PrintDefaults()
	}
	_ = flags.Parse(os.Args[1:])

	log.SetFlags(log2.LInteractiveFlags)
	if underSystemd, err := subcmd.SdNotify(daemon.SdNotifyReady); err != nil {
		log.Error(errors.ErrorStack(err))
	} else if underSystemd {
		// systemd journal adds timestamps
		log.SetFlags(log2.LServiceFlags)
	}

	mod, err := subcmd.Parse(flags.Arg(0), modules)
	if err != nil {
		flags.Usage()
		log.Fatal(err)
	}

	if !input.IsRoot() {
		log.Warningf("Not running as root, no devices may be available.")
	}

	config, err := state.ReadConfig(log, state.NewOsFullReader(), *flagConfig)
	if err != nil {
		log.Fatal(errors.ErrorStack(err))
	}
	if *flagDevice != "" {
		config.Input.Device = *flagDevice
	}
	if *flagDebug {
		config.LogDebug = true
	}

	ctx, g := state.NewContext(log)
	g.BuildVersion = BuildVersion
	cli.StopOnSignal(g.Alive, log)

	if err := mod.Main(ctx, config); err != nil {
		log.Debugf("%s", errors.ErrorStack(err))
		log.Fatal(err)
	}
	g.Alive.Stop()
	g.Alive.Wait()
}
