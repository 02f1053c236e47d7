// Support sub-commands in hypertap application.
package subcmd

import (
	"context"
	"fmt"

	"github.com/coreos/go-systemd/daemon"
	"github.com/juju/errors"
	"github.com/temoto/hypertap/state"
)

type Mod struct {
	Name  string
	Usage string
	Main  func(context.Context, *state.Config) error
}

// Parse finds module by name, empty command selects first module.
func Parse(command string, modules []Mod) (*Mod, error) {
	if len(modules) == 0 {
		panic("code error subcmd.Parse without modules")
	}
	if command == "" {
		return &modules[0], nil
	}

	for i := range modules {
		m := &modules[i]
		if m.Name == "" {
			panic(fmt.Sprintf("code error Name='' module=%#v", m))
		}
		if command == m.Name {
			return m, nil
		}
	}
	return nil, errors.NotFoundf("command='%s'", command)
}

// SdNotify returns true when running under systemd.
func SdNotify(s string) (bool, error) {
	ok, err := daemon.SdNotify(false, s)
	return ok, errors.Annotate(err, "sdnotify")
}
