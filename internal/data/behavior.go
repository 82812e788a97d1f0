package data

import (
	"fmt"
	"os"

	"github.com/samber/oops"

	"github.com/l1jgo/townsfolk/internal/ai"
)

type ruleEntry struct {
	When []string `yaml:"when"`
	Do   string   `yaml:"do"`
}

type behaviorEntry struct {
	Name  string      `yaml:"name"`
	Rules []ruleEntry `yaml:"rules"`
}

type behaviorListFile struct {
	Behaviors []behaviorEntry `yaml:"behaviors"`
}

// LoadBehaviors loads rule tables that replace or extend the built-in
// archetypes.
func LoadBehaviors(path string) (ai.PolicySet, []byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, oops.In("catalog").With("path", path).Wrapf(err, "read behaviors")
	}
	ps, err := ParseBehaviors(raw)
	if err != nil {
		return nil, nil, oops.In("catalog").With("path", path).Wrap(err)
	}
	return ps, raw, nil
}

// ParseBehaviors decodes a behaviors document, checking every situation and
// action name.
func ParseBehaviors(raw []byte) (ai.PolicySet, error) {
	var f behaviorListFile
	if err := decodeDoc(raw, "behaviors", &f); err != nil {
		return nil, err
	}
	ps := make(ai.PolicySet, len(f.Behaviors))
	for _, b := range f.Behaviors {
		p := &ai.Policy{Name: b.Name}
		for i, r := range b.Rules {
			act, err := ai.ParseAction(r.Do)
			if err != nil {
				return nil, fmt.Errorf("behavior %s rule %d: %w", b.Name, i, err)
			}
			rule := ai.Rule{Action: act}
			for _, w := range r.When {
				s, err := ai.ParseSituation(w)
				if err != nil {
					return nil, fmt.Errorf("behavior %s rule %d: %w", b.Name, i, err)
				}
				rule.When = append(rule.When, s)
			}
			p.Rules = append(p.Rules, rule)
		}
		ps[b.Name] = p
	}
	return ps, nil
}
