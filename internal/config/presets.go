package config

import (
	"sort"

	"github.com/san-kum/metaballs/internal/dynamo"
)

// ClassicScene is the four-blob scene the visualization ships with.
func ClassicScene() dynamo.Scene {
	return dynamo.Scene{
		{X: 0.5, Y: 0.2, R: 0.29, DX: 0.00002, DY: 0.00006},
		{X: -0.2, Y: 0.1, R: 0.35, DX: -0.00005, DY: 0.00008},
		{X: -0.2, Y: -0.4, R: 0.25, DX: -0.00002, DY: -0.0001},
		{X: 0.0, Y: 0.0, R: 0.22, DX: -0.0002, DY: 0.0001},
	}
}

var Presets = map[string]func() dynamo.Scene{
	"classic": ClassicScene,
	"single": func() dynamo.Scene {
		return dynamo.Scene{{X: 0, Y: 0, R: 0.3, DX: 0.0002, DY: 0.0001}}
	},
	"pair": func() dynamo.Scene {
		return dynamo.Scene{
			{X: -0.25, Y: 0.1, R: 0.3},
			{X: 0.25, Y: -0.1, R: 0.3},
		}
	},
	"seam": func() dynamo.Scene {
		return dynamo.Scene{
			{X: 0.9, Y: 0.0, R: 0.25, DX: 0.0004},
			{X: -0.9, Y: 0.05, R: 0.25, DX: -0.0004},
		}
	},
	"swarm": func() dynamo.Scene {
		return RandomScene(12, 7)
	},
}

// GetPreset returns a fresh copy of the named scene, or nil.
func GetPreset(name string) dynamo.Scene {
	build, ok := Presets[name]
	if !ok {
		return nil
	}
	return build()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
