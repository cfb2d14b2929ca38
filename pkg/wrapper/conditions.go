package wrapper

import (
	"fmt"
	"sort"
	"strings"
)

// Conditions scope a declaration to a subset of actions. A zero Conditions
// value applies to every action. When both lists are present only wins,
// matching the precedence of the declaration sites that feed it.
type Conditions struct {
	only   map[string]struct{}
	except map[string]struct{}
}

// Condition configures a Conditions value.
type Condition func(*Conditions)

// Only restricts the declaration to the listed actions. Calling Only with no
// actions pins an empty list, which deactivates the declaration everywhere.
func Only(actions ...string) Condition {
	return func(c *Conditions) {
		c.only = actionSet(actions)
	}
}

// Except applies the declaration to every action not listed.
func Except(actions ...string) Condition {
	return func(c *Conditions) {
		c.except = actionSet(actions)
	}
}

// WithConditions replaces the whole conditions value. It carries an already
// parsed value, such as a ConditionsFrom result, into declaration options.
func WithConditions(conds Conditions) Condition {
	return func(c *Conditions) {
		*c = conds
	}
}

// NewConditions builds a Conditions value from options.
func NewConditions(opts ...Condition) Conditions {
	var c Conditions
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// ConditionsFrom converts a loosely typed conditions map, as read from a
// declaration file, into a Conditions value. Recognized keys are "only" and
// "except"; values may be a single action or a list. Unknown keys fail.
func ConditionsFrom(value map[string]any) (Conditions, error) {
	var c Conditions
	for key, raw := range value {
		actions, err := actionList(raw)
		if err != nil {
			return Conditions{}, fmt.Errorf("wrapper: condition %q: %w", key, err)
		}
		switch key {
		case "only":
			c.only = actionSet(actions)
		case "except":
			c.except = actionSet(actions)
		default:
			return Conditions{}, fmt.Errorf("wrapper: unknown condition %q", key)
		}
	}
	return c, nil
}

// Active reports whether the declaration applies to action.
func (c Conditions) Active(action string) bool {
	if c.only != nil {
		_, ok := c.only[action]
		return ok
	}
	if c.except != nil {
		_, ok := c.except[action]
		return !ok
	}
	return true
}

// IsZero reports whether no condition was declared.
func (c Conditions) IsZero() bool {
	return c.only == nil && c.except == nil
}

func (c Conditions) String() string {
	if c.IsZero() {
		return "always"
	}
	var parts []string
	if c.only != nil {
		parts = append(parts, "only="+joinSet(c.only))
	}
	if c.except != nil {
		parts = append(parts, "except="+joinSet(c.except))
	}
	return strings.Join(parts, " ")
}

func actionSet(actions []string) map[string]struct{} {
	set := make(map[string]struct{}, len(actions))
	for _, action := range actions {
		set[strings.TrimSpace(action)] = struct{}{}
	}
	return set
}

func actionList(raw any) ([]string, error) {
	switch v := raw.(type) {
	case string:
		return []string{v}, nil
	case []string:
		return v, nil
	case []any:
		actions := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("action %v is not a string", item)
			}
			actions = append(actions, s)
		}
		return actions, nil
	case nil:
		return nil, nil
	default:
		return nil, fmt.Errorf("expected an action or list of actions, got %T", raw)
	}
}

func joinSet(set map[string]struct{}) string {
	actions := make([]string, 0, len(set))
	for action := range set {
		actions = append(actions, action)
	}
	sort.Strings(actions)
	return strings.Join(actions, ",")
}
