// Package command parses player input lines and routes them to handlers by
// verb, gated on the session's protocol state.
package command

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/samber/oops"

	"github.com/l1jgo/townsfolk/internal/world"
)

// Line is one parsed input line: a verb followed by free words.
type Line struct {
	Verb string   `parser:"@Word"`
	Args []string `parser:"@(Word | Number)*"`
}

var lineLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `[\s]+`},
	{Name: "Punct", Pattern: `[.,!?;:"]+`},
	{Name: "Number", Pattern: `[0-9]+`},
	{Name: "Word", Pattern: `[\p{L}'][\p{L}0-9'_-]*`},
})

var lineParser = participle.MustBuild[Line](
	participle.Lexer(lineLexer),
	participle.Elide("Whitespace", "Punct"),
	participle.Map(func(t lexer.Token) (lexer.Token, error) {
		t.Value = strings.ToLower(t.Value)
		return t, nil
	}, "Word"),
)

// Command is a parsed line with its verb resolved through the alias table.
type Command struct {
	Raw  string
	Verb string
	Args []string
}

// Rest is the arguments joined back into one keyword, "" when there are none.
func (c *Command) Rest() string { return strings.Join(c.Args, " ") }

// Input is the normalized form used to match room connections.
func (c *Command) Input() world.Input {
	return world.ParseInput(c.Raw)
}

// Parse turns a raw line into a Command. Blank input is an error.
func Parse(raw string) (*Command, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, oops.In("command").Errorf("empty input")
	}
	l, err := lineParser.ParseString("", raw)
	if err != nil {
		return nil, oops.In("command").With("input", raw).Wrapf(err, "parse")
	}
	verb := l.Verb
	if canonical, ok := aliases[verb]; ok {
		verb = canonical
	}
	return &Command{Raw: raw, Verb: verb, Args: l.Args}, nil
}

// Canonical verbs.
const (
	VerbLook      = "look"
	VerbGo        = "go"
	VerbAttack    = "attack"
	VerbSearch    = "search"
	VerbGet       = "get"
	VerbDrop      = "drop"
	VerbEat       = "eat"
	VerbSit       = "sit"
	VerbStand     = "stand"
	VerbKneel     = "kneel"
	VerbLie       = "lie"
	VerbHealth    = "health"
	VerbInventory = "inventory"
	VerbStats     = "stats"
	VerbSay       = "say"
	VerbQuit      = "quit"
)

var aliases = map[string]string{
	"l":     VerbLook,
	"move":  VerbGo,
	"walk":  VerbGo,
	"kill":  VerbAttack,
	"k":     VerbAttack,
	"loot":  VerbSearch,
	"take":  VerbGet,
	"pick":  VerbGet,
	"drink": VerbEat,
	"rest":  VerbSit,
	"hp":    VerbHealth,
	"i":     VerbInventory,
	"inv":   VerbInventory,
	"exit":  VerbQuit,
	"bye":   VerbQuit,
}

// IsMovement reports a bare direction word ("n", "north", "up") that should
// be routed as "go <direction>".
func IsMovement(verb string) bool {
	return world.IsDirectionalWord(verb)
}
