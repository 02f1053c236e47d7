package subcmd

import (
	"context"
	"testing"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/temoto/hypertap/state"
)

func TestParse(t *testing.T) {
	t.Parallel()

	noop := func(context.Context, *state.Config) error { return nil }
	mods := []Mod{{Name: "run", Main: noop}, {Name: "list", Main: noop}}

	m, err := Parse("", mods)
	require.NoError(t, err)
	assert.Equal(t, "run", m.Name)

	m, err = Parse("list", mods)
	require.NoError(t, err)
	assert.Equal(t, "list", m.Name)

	_, err = Parse("grab", mods)
	assert.True(t, errors.IsNotFound(err))

	assert.Panics(t, func() { _, _ = Parse("x", []Mod{{Main: noop}}) })
}
