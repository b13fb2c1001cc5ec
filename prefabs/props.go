package prefabs

import "gopkg.in/yaml.v3"

// DecodeProps converts a loosely typed property map, as found on level
// entities, into T by round-tripping it through yaml.
func DecodeProps[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}
