package config

var Presets = map[string]*Config{
	"default": {
		Kind: "d6", Count: 2, Color: "ivory",
		Physics: PhysicsConfig{Gravity: 20, Friction: 0.3, Restitution: 0.3, TrayHalfExtent: 6, WallHeight: 3},
	},
	"casino": {
		Kind: "d6", Count: 2, Color: "red",
		Physics: PhysicsConfig{Gravity: 20, Friction: 0.45, Restitution: 0.2, TrayHalfExtent: 5, WallHeight: 2.5},
	},
	"bouncy": {
		Kind: "d20", Count: 1, Color: "emerald",
		Physics: PhysicsConfig{Gravity: 20, Friction: 0.15, Restitution: 0.7, TrayHalfExtent: 6, WallHeight: 4},
	},
	"lowgrav": {
		Kind: "d12", Count: 3, Color: "silver",
		Physics: PhysicsConfig{Gravity: 5, Friction: 0.3, Restitution: 0.3, TrayHalfExtent: 6, WallHeight: 3},
	},
	"pit": {
		Kind: "d6", Count: 5, Color: "obsidian",
		Physics: PhysicsConfig{Gravity: 25, Friction: 0.5, Restitution: 0.1, TrayHalfExtent: 4, WallHeight: 3},
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
