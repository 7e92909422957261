package config

// Category names used by the renderer.
const (
	CategoryGeneral         = "General"
	CategoryVideo           = "Video"
	CategoryGUI             = "GUI"
	CategoryViewingDistance = "Viewing distance"
	CategoryWater           = "Water"
	CategoryObjects         = "Objects"
	CategoryTerrain         = "Terrain"
	CategoryShadows         = "Shadows"
	CategoryInput           = "Input"
)

// defaults seeds every setting the renderer reads. Values follow the stock
// settings file shipped with the engine.
var defaults = map[string]map[string]any{
	CategoryGeneral: {
		"shader mode":       "",
		"field of view":     55.0,
		"num mipmaps":       8,
		"texture filtering": "anisotropic",
		"anisotropy":        4,
	},
	CategoryVideo: {
		"resolution x":    800,
		"resolution y":    600,
		"fullscreen":      false,
		"gamma":           2.2,
		"framerate limit": 0,
	},
	CategoryGUI: {
		"menu transparency": 0.84,
	},
	CategoryViewingDistance: {
		"max viewing distance": 5600.0,
		"fog start factor":     0.5,
		"fog end factor":       1.0,
	},
	CategoryWater: {
		"shader":            false,
		"refraction":        false,
		"rtt size":          512,
		"reflect terrain":   true,
		"reflect statics":   false,
		"reflect actors":    true,
		"reflect sky":       true,
		"underwater effect": false,
	},
	CategoryObjects: {
		"shaders":    true,
		"num lights": 8,
	},
	CategoryTerrain: {
		"num lights": 8,
	},
	CategoryInput: {
		"camera sensitivity": 1.0,
		"invert y axis":      false,
	},
	CategoryShadows: {
		"enabled":               false,
		"split":                 false,
		"texture size":          1024,
		"shadow distance":       1300.0,
		"split shadow distance": 14000.0,
		"fade start":            0.8,
		"actor shadows":         true,
		"statics shadows":       true,
		"terrain shadows":       true,
		"misc shadows":          true,
	},
}

// limits clamps numeric settings on write.
var limits = map[string][2]float64{
	key("field of view", CategoryGeneral):    {1, 179},
	key("gamma", CategoryVideo):              {0.1, 3},
	key("menu transparency", CategoryGUI):    {0, 1},
	key("camera sensitivity", CategoryInput): {0.1, 5},
}
