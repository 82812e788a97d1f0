package data

import (
	"fmt"
	"os"

	"github.com/samber/oops"

	"github.com/l1jgo/townsfolk/internal/world"
)

type messageFile struct {
	Messages map[string]string `yaml:"messages"`
}

// LoadMessages loads template overrides on top of the built-in table.
func LoadMessages(path string) (*world.Messages, []byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, oops.In("catalog").With("path", path).Wrapf(err, "read messages")
	}
	m, err := ParseMessages(raw)
	if err != nil {
		return nil, nil, oops.In("catalog").With("path", path).Wrap(err)
	}
	return m, raw, nil
}

// ParseMessages decodes a messages document. Unknown kinds are rejected so
// that a typo does not silently leave the default in place.
func ParseMessages(raw []byte) (*world.Messages, error) {
	var f messageFile
	if err := decodeDoc(raw, "messages", &f); err != nil {
		return nil, err
	}
	over := make(map[world.MessageKind]string, len(f.Messages))
	for k, v := range f.Messages {
		kind := world.MessageKind(k)
		if _, ok := world.DefaultMessages[kind]; !ok {
			return nil, fmt.Errorf("unknown message kind %q", k)
		}
		over[kind] = v
	}
	return world.NewMessages(over), nil
}
