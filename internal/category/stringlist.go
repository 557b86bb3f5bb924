package category

import (
	"fmt"

	"github.com/pelletier/go-toml/v2/unstable"
	"gopkg.in/yaml.v3"
)

// StringList is a list of extensions that config files may also write as a
// single string, in YAML and in TOML.
type StringList []string

func (s *StringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*s = StringList{value.Value}
		return nil
	case yaml.SequenceNode:
		list := make([]string, 0, len(value.Content))
		if err := value.Decode(&list); err != nil {
			return err
		}
		*s = list
		return nil
	default:
		return fmt.Errorf("line %d: extensions must be a string or a list of strings", value.Line)
	}
}

// UnmarshalTOML is only consulted when the decoder has
// EnableUnmarshalerInterface set.
func (s *StringList) UnmarshalTOML(value *unstable.Node) error {
	switch value.Kind {
	case unstable.String:
		*s = StringList{string(value.Data)}
		return nil
	case unstable.Array:
		list := StringList{}
		it := value.Children()
		for it.Next() {
			n := it.Node()
			if n.Kind != unstable.String {
				return fmt.Errorf("extensions must contain only strings, got %s", n.Kind)
			}
			list = append(list, string(n.Data))
		}
		*s = list
		return nil
	default:
		return fmt.Errorf("extensions must be a string or a list of strings, got %s", value.Kind)
	}
}
