package scene

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownScene is returned when a scene name matches neither a built-in
// scene nor a scene file
var ErrUnknownScene = errors.New("unknown scene")

// builtins maps scene names to constructors
var builtins = map[string]func() *Scene{
	"default":    NewDefaultScene,
	"plane":      NewPlaneScene,
	"cornell":    NewCornellScene,
	"caustic":    NewCausticGlassScene,
	"prism":      NewPrismScene,
	"meshes":     NewTriangleMeshScene,
	"cylinders":  NewCylinderScene,
	"spheregrid": NewSphereGridScene,
	"textures":   NewTextureScene,
}

// Lookup builds the built-in scene with the given name
func Lookup(name string) (*Scene, error) {
	build, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownScene, name)
	}
	return build(), nil
}

// List returns the built-in scene names in alphabetical order
func List() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Load resolves a scene argument: a built-in name or a path to a JSON scene file
func Load(nameOrPath string) (*Scene, error) {
	if s, err := Lookup(nameOrPath); err == nil {
		return s, nil
	}
	if isSceneFile(nameOrPath) {
		return LoadJSON(nameOrPath)
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownScene, nameOrPath)
}
