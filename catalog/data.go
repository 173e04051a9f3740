package catalog

var categories = []Category{
	{
		ID:    "nature",
		Title: "Nature",
		Icon:  "cat-nature",
		Sounds: []Sound{
			{ID: "river", Label: "River", Source: "nature/river.mp3", Category: "nature", Icon: "river"},
			{ID: "waves", Label: "Waves", Source: "nature/waves.mp3", Category: "nature", Icon: "waves"},
			{ID: "campfire", Label: "Campfire", Source: "nature/campfire.mp3", Category: "nature", Icon: "campfire"},
			{ID: "wind-in-trees", Label: "Wind in Trees", Source: "nature/wind-in-trees.mp3", Category: "nature", Icon: "wind-in-trees"},
			{ID: "waterfall", Label: "Waterfall", Source: "nature/waterfall.mp3", Category: "nature", Icon: "waterfall"},
		},
	},
	{
		ID:    "rain",
		Title: "Rain",
		Icon:  "cat-rain",
		Sounds: []Sound{
			{ID: "light-rain", Label: "Light Rain", Source: "rain/light-rain.mp3", Category: "rain", Icon: "light-rain"},
			{ID: "heavy-rain", Label: "Heavy Rain", Source: "rain/heavy-rain.mp3", Category: "rain", Icon: "heavy-rain"},
			{ID: "rain-on-window", Label: "Rain on Window", Source: "rain/rain-on-window.mp3", Category: "rain", Icon: "rain-on-window"},
			{ID: "rain-on-car-roof", Label: "Rain on Car", Source: "rain/rain-on-car-roof.mp3", Category: "rain", Icon: "rain-on-car-roof"},
		},
	},
	{
		ID:    "animals",
		Title: "Animals",
		Icon:  "cat-animals",
		Sounds: []Sound{
			{ID: "birds", Label: "Birds", Source: "animals/birds.mp3", Category: "animals", Icon: "birds"},
			{ID: "crickets", Label: "Crickets", Source: "animals/crickets.mp3", Category: "animals", Icon: "crickets"},
		},
	},
	{
		ID:    "places",
		Title: "Places",
		Icon:  "cat-places",
		Sounds: []Sound{
			{ID: "cafe", Label: "Cafe", Source: "places/cafe.mp3", Category: "places", Icon: "cafe"},
			{ID: "library", Label: "Library", Source: "places/library.mp3", Category: "places", Icon: "library"},
			{ID: "night-village", Label: "Night Village", Source: "places/night-village.mp3", Category: "places", Icon: "night-village"},
		},
	},
	{
		ID:    "things",
		Title: "Things",
		Icon:  "cat-things",
		Sounds: []Sound{
			{ID: "keyboard", Label: "Keyboard", Source: "things/keyboard.mp3", Category: "things", Icon: "keyboard"},
			{ID: "clock", Label: "Clock", Source: "things/clock.mp3", Category: "things", Icon: "clock"},
			{ID: "wind-chimes", Label: "Wind Chimes", Source: "things/wind-chimes.mp3", Category: "things", Icon: "wind-chimes"},
			{ID: "vinyl-effect", Label: "Vinyl Effect", Source: "things/vinyl-effect.mp3", Category: "things", Icon: "vinyl-effect"},
			{ID: "typewriter", Label: "Typewriter", Source: "things/typewriter.mp3", Category: "things", Icon: "typewriter"},
		},
	},
	{
		ID:    "noise",
		Title: "Noise",
		Icon:  "cat-noise",
		Sounds: []Sound{
			{ID: "white-noise", Label: "White Noise", Source: "noise/white-noise.wav", Category: "noise", Icon: "white-noise"},
			{ID: "pink-noise", Label: "Pink Noise", Source: "noise/pink-noise.wav", Category: "noise", Icon: "pink-noise"},
			{ID: "brown-noise", Label: "Brown Noise", Source: "noise/brown-noise.wav", Category: "noise", Icon: "brown-noise"},
		},
	},
}

var builtinPresets = []Preset{
	{
		ID:          "rainy-cafe",
		Name:        "Rainy Cafe",
		Description: "Cozy cafe ambience with gentle rain",
		Sounds: []PresetSound{
			{ID: "cafe", Volume: 0.7},
			{ID: "light-rain", Volume: 0.5},
			{ID: "keyboard", Volume: 0.3},
		},
	},
	{
		ID:          "forest-walk",
		Name:        "Forest Walk",
		Description: "Peaceful forest sounds",
		Sounds: []PresetSound{
			{ID: "birds", Volume: 0.6},
			{ID: "wind-in-trees", Volume: 0.5},
		},
	},
	{
		ID:          "cozy-study",
		Name:        "Cozy Study",
		Description: "Focus-friendly library ambience",
		Sounds: []PresetSound{
			{ID: "library", Volume: 0.6},
			{ID: "clock", Volume: 0.4},
			{ID: "typewriter", Volume: 0.3},
		},
	},
	{
		ID:          "night-rain",
		Name:        "Night Rain",
		Description: "Rainy night soundscape",
		Sounds: []PresetSound{
			{ID: "heavy-rain", Volume: 0.7},
			{ID: "crickets", Volume: 0.4},
			{ID: "night-village", Volume: 0.3},
		},
	},
	{
		ID:          "ocean-breeze",
		Name:        "Ocean Breeze",
		Description: "Relaxing beach and coastal vibes",
		Sounds: []PresetSound{
			{ID: "waves", Volume: 0.8},
			{ID: "birds", Volume: 0.4},
			{ID: "wind-in-trees", Volume: 0.3},
		},
	},
	{
		ID:          "campfire-night",
		Name:        "Campfire Night",
		Description: "Warm camping under the stars",
		Sounds: []PresetSound{
			{ID: "campfire", Volume: 0.7},
			{ID: "crickets", Volume: 0.5},
			{ID: "wind-in-trees", Volume: 0.3},
		},
	},
	{
		ID:          "deep-focus",
		Name:        "Deep Focus",
		Description: "Optimal concentration and productivity",
		Sounds: []PresetSound{
			{ID: "brown-noise", Volume: 0.6},
			{ID: "keyboard", Volume: 0.4},
			{ID: "library", Volume: 0.3},
		},
	},
	{
		ID:          "thunderstorm",
		Name:        "Thunderstorm",
		Description: "Dramatic storm for deep relaxation",
		Sounds: []PresetSound{
			{ID: "heavy-rain", Volume: 0.8},
			{ID: "wind-in-trees", Volume: 0.5},
			{ID: "rain-on-window", Volume: 0.4},
		},
	},
}
