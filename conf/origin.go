package conf

import (
	"errors"

	"gopkg.in/yaml.v3"
)

// Origin is a CORS allow-list: either Any ("*") or a fixed list of exact
// origin strings.
type Origin struct {
	Any   bool
	Items []string
}

// Allows reports whether origin (the literal value of a request's Origin
// header) is permitted.
func (o Origin) Allows(origin string) bool {
	if o.Any {
		return true
	}
	for _, item := range o.Items {
		if item == origin {
			return true
		}
	}
	return false
}

// UnmarshalYAML accepts the scalar "*" or a sequence of origin strings.
func (o *Origin) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var s string
		if err := node.Decode(&s); err != nil {
			return err
		}
		if s != "*" {
			return errors.New(`conf: origin scalar must be "*"`)
		}
		*o = Origin{Any: true}
		return nil
	case yaml.SequenceNode:
		var items []string
		if err := node.Decode(&items); err != nil {
			return err
		}
		*o = Origin{Items: items}
		return nil
	default:
		return errors.New(`conf: origin must be "*" or a list of strings`)
	}
}
