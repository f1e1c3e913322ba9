package prefabs

import "gopkg.in/yaml.v3"

// EntityBuildSpec is a prefab file: a name and a map of component name to
// that component's yaml body.
type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
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

type PersonComponentSpec struct {
	Name string `yaml:"name"`
}

type TransformComponentSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type MoveableComponentSpec struct {
	Speed float64 `yaml:"speed"`
}

type PhysicsBodyComponentSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type RoutineComponentSpec struct {
	Script string  `yaml:"script"`
	Rest   float64 `yaml:"rest"`
}

type CameraComponentSpec struct {
	Zoom float64 `yaml:"zoom"`
}

type ClockComponentSpec struct {
	Days  int     `yaml:"days"`
	Time  float64 `yaml:"time"`
	Ratio float64 `yaml:"ratio"`
}
