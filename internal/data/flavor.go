package data

import (
	"os"
	"slices"

	"github.com/samber/oops"
)

// QuipPools are the remark pools, keyed by speaker state, listener state and
// attitude. Dead friendly pools are extended with DeadCommon at load time.
type QuipPools struct {
	Friendly               []string `yaml:"friendly"`
	DeadCommon             []string `yaml:"dead_common"`
	DeadToLivingFriendly   []string `yaml:"dead_to_living_friendly"`
	DeadToDeadFriendly     []string `yaml:"dead_to_dead_friendly"`
	LivingToLivingFriendly []string `yaml:"living_to_living_friendly"`
	LivingToDeadFriendly   []string `yaml:"living_to_dead_friendly"`
	LivingToDeadHostile    []string `yaml:"living_to_dead_hostile"`
	LivingToLivingHostile  []string `yaml:"living_to_living_hostile"`
	DeadToLivingHostile    []string `yaml:"dead_to_living_hostile"`
	DeadToDeadHostile      []string `yaml:"dead_to_dead_hostile"`
}

// Pool picks the pool for a speaker/listener pair.
func (q *QuipPools) Pool(speakerAlive, listenerAlive, hostile bool) []string {
	switch {
	case speakerAlive && listenerAlive && hostile:
		return q.LivingToLivingHostile
	case speakerAlive && listenerAlive:
		return q.LivingToLivingFriendly
	case speakerAlive && hostile:
		return q.LivingToDeadHostile
	case speakerAlive:
		return q.LivingToDeadFriendly
	case listenerAlive && hostile:
		return q.DeadToLivingHostile
	case listenerAlive:
		return q.DeadToLivingFriendly
	case hostile:
		return q.DeadToDeadHostile
	default:
		return q.DeadToDeadFriendly
	}
}

// Flavor is the canned text actors use. Idle lines are templates: %1 is the
// actor's capitalized conversational name, %2 a friendly quip.
type Flavor struct {
	GetItem      []string  `yaml:"get_item"`
	ValuableItem []string  `yaml:"valuable_item"`
	Idle         []string  `yaml:"idle"`
	Quips        QuipPools `yaml:"quips"`
}

// LoadFlavor loads flavor text.
func LoadFlavor(path string) (*Flavor, []byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, oops.In("catalog").With("path", path).Wrapf(err, "read flavor")
	}
	f, err := ParseFlavor(raw)
	if err != nil {
		return nil, nil, oops.In("catalog").With("path", path).Wrap(err)
	}
	return f, raw, nil
}

// ParseFlavor decodes and validates a flavor document and fills pools left
// out of it from the friendly and common pools.
func ParseFlavor(raw []byte) (*Flavor, error) {
	var f Flavor
	if err := decodeDoc(raw, "flavor", &f); err != nil {
		return nil, err
	}
	q := &f.Quips
	if len(q.LivingToLivingFriendly) == 0 {
		q.LivingToLivingFriendly = q.Friendly
	}
	q.DeadToLivingFriendly = append(slices.Clone(q.DeadToLivingFriendly), q.DeadCommon...)
	q.DeadToDeadFriendly = append(slices.Clone(q.DeadToDeadFriendly), q.DeadCommon...)
	for _, p := range []*[]string{
		&q.LivingToDeadFriendly, &q.LivingToDeadHostile, &q.LivingToLivingHostile,
		&q.DeadToLivingHostile, &q.DeadToDeadHostile,
	} {
		if len(*p) == 0 {
			*p = q.DeadCommon
		}
	}
	return &f, nil
}
