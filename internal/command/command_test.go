package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestParseLowercasesAndResolvesAliases(t *testing.T) {
	cmd, err := Parse("  KILL the Goblin!  ")
	require.NoError(t, err)
	assert.Equal(t, VerbAttack, cmd.Verb)
	assert.Equal(t, []string{"the", "goblin"}, cmd.Args)
	assert.Equal(t, "the goblin", cmd.Rest())
	assert.Equal(t, "KILL the Goblin!", cmd.Raw)
}

func TestParseKeepsNumbers(t *testing.T) {
	cmd, err := Parse("drop 2 apples")
	require.NoError(t, err)
	assert.Equal(t, VerbDrop, cmd.Verb)
	assert.Equal(t, []string{"2", "apples"}, cmd.Args)
}

func TestParseRejectsBlankAndLeadingNumber(t *testing.T) {
	_, err := Parse("   ")
	assert.Error(t, err)
	_, err = Parse("42 goblins")
	assert.Error(t, err)
}

func TestDispatchStateGating(t *testing.T) {
	reg := NewRegistry(zap.NewNop())
	var got []string
	reg.Register([]string{VerbLook}, []SessionState{StateInWorld}, func(_ any, c *Command) {
		got = append(got, "look:"+c.Rest())
	})

	look, err := Parse("look around")
	require.NoError(t, err)

	require.NoError(t, reg.Dispatch(nil, StateInWorld, look))
	assert.Error(t, reg.Dispatch(nil, StateNaming, look))
	assert.Equal(t, []string{"look:around"}, got)

	unknown, err := Parse("dance")
	require.NoError(t, err)
	assert.ErrorIs(t, reg.Dispatch(nil, StateInWorld, unknown), ErrUnknownVerb)
}

func TestDispatchFallbackTakesUnmatchedLines(t *testing.T) {
	reg := NewRegistry(zap.NewNop())
	reg.Register([]string{VerbLook}, []SessionState{StateInWorld}, func(any, *Command) {})
	var name string
	reg.Fallback(StateNaming, func(_ any, c *Command) { name = c.Raw })

	cmd, err := Parse("Aldric")
	require.NoError(t, err)
	require.NoError(t, reg.Dispatch(nil, StateNaming, cmd))
	assert.Equal(t, "Aldric", name)

	// a registered verb outside its state also falls through
	look, _ := Parse("look")
	require.NoError(t, reg.Dispatch(nil, StateNaming, look))
	assert.Equal(t, "look", name)
}

func TestDispatchRoutesBareDirections(t *testing.T) {
	reg := NewRegistry(zap.NewNop())
	var args []string
	reg.Register([]string{VerbGo}, []SessionState{StateInWorld}, func(_ any, c *Command) { args = c.Args })

	cmd, err := Parse("north")
	require.NoError(t, err)
	require.NoError(t, reg.Dispatch(nil, StateInWorld, cmd))
	assert.Equal(t, []string{"north"}, args)
}

func TestDispatchRecoversHandlerPanic(t *testing.T) {
	reg := NewRegistry(zap.NewNop())
	reg.Register([]string{VerbStats}, []SessionState{StateInWorld}, func(any, *Command) { panic("boom") })
	cmd, _ := Parse("stats")
	err := reg.Dispatch(nil, StateInWorld, cmd)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}
