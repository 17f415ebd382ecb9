package catalog

// Default returns the catalog seeded on first run.
func Default() Catalog {
	return Catalog{Pillars: []Pillar{
		{
			ID:   "1",
			Name: "Social",
			Activities: []Activity{
				{ID: "1", Name: "Friends meeting with me", Color: "#ff6b6b", PillarID: "1"},
				{ID: "2", Name: "Me meeting with friends", Color: "#4ecdc4", PillarID: "1"},
			},
		},
		{
			ID:   "2",
			Name: "Meals",
			Activities: []Activity{
				{ID: "3", Name: "Breakfast", Color: "#ffd93d", PillarID: "2"},
				{ID: "4", Name: "Lunch", Color: "#ff9f1c", PillarID: "2"},
				{ID: "5", Name: "Dinner", Color: "#ff6b6b", PillarID: "2"},
			},
		},
		{
			ID:   "3",
			Name: "Work",
			Activities: []Activity{
				{ID: "6", Name: "Admin work", Color: "#6c5ce7", PillarID: "3"},
				{ID: "7", Name: "Deep work", Color: "#a8e6cf", PillarID: "3"},
				{ID: "8", Name: "Shallow work", Color: "#ffd3b6", PillarID: "3"},
			},
		},
		{
			ID:   "4",
			Name: "Distractions",
			Activities: []Activity{
				{ID: "9", Name: "Procrastination", Color: "#ff8b94", PillarID: "4"},
				{ID: "10", Name: "Limbo", Color: "#b8b8b8", PillarID: "4"},
			},
		},
	}}
}
