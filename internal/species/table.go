package species

import "fishing-clash/internal/tackle"

// Default returns the built-in species table.
func Default() *Catalog {
	return NewCatalog([]*Species{
		{
			Name: "Bream", Variant: "Big", MinWeight: 1.5, MaxWeight: 6.0,
			Prefs: Prefs{
				tackle.Rod:             {"Feeder 3.6m", "Feeder 3.9m", "Heavy Feeder 4.2m"},
				tackle.Reel:            {"4000 Front Drag", "4000 Baitrunner"},
				tackle.Line:            {"Mono 0.18", "Braid 0.10"},
				tackle.Hook:            {"Size 14", "Size 12"},
				tackle.Feeder:          {"Cage 40g", "Window 60g"},
				tackle.Bait:            {"Worm", "Maggot", "Corn"},
				tackle.Groundbait:      {"Bream Mix", "Sweet Fishmeal"},
				tackle.Additive:        {"Molasses", "Krill"},
				tackle.FeederTip:       {"2oz", "3oz"},
				tackle.CastingDistance: {"40m", "50m", "60m"},
				tackle.CastingInterval: {"5min", "8min"},
			},
		},
		{
			Name: "Bream", Variant: "Skimmer", MinWeight: 0.3, MaxWeight: 1.5,
			Prefs: Prefs{
				tackle.Rod:             {"Feeder 3.3m", "Feeder 3.6m"},
				tackle.Reel:            {"3000 Front Drag", "4000 Front Drag"},
				tackle.Line:            {"Mono 0.16", "Mono 0.18"},
				tackle.Hook:            {"Size 16", "Size 14"},
				tackle.Feeder:          {"Cage 30g", "Open End 20g"},
				tackle.Bait:            {"Maggot", "Caster"},
				tackle.Groundbait:      {"Bream Mix", "Brown Crumb"},
				tackle.Additive:        {"Molasses", "Vanilla"},
				tackle.FeederTip:       {"1oz", "2oz"},
				tackle.CastingDistance: {"30m", "40m"},
				tackle.CastingInterval: {"3min", "5min"},
			},
		},
		{
			Name: "Carp", Variant: "Common", MinWeight: 2.0, MaxWeight: 12.0,
			Prefs: Prefs{
				tackle.Rod:             {"Method 3.0m", "Heavy Feeder 4.2m"},
				tackle.Reel:            {"4000 Baitrunner", "5000 Big Pit"},
				tackle.Line:            {"Mono 0.22", "Braid 0.10"},
				tackle.Hook:            {"Size 10", "Size 8"},
				tackle.Feeder:          {"Method 30g", "Pellet 25g"},
				tackle.Bait:            {"Boilie", "Pellet", "Corn"},
				tackle.Groundbait:      {"Carp Method Mix", "Sweet Fishmeal"},
				tackle.Additive:        {"Krill", "Garlic"},
				tackle.FeederTip:       {"3oz", "4oz"},
				tackle.CastingDistance: {"30m", "40m", "50m"},
				tackle.CastingInterval: {"8min", "10min"},
			},
		},
		{
			Name: "Carp", Variant: "Mirror", MinWeight: 2.5, MaxWeight: 15.0,
			Prefs: Prefs{
				tackle.Rod:             {"Method 3.0m"},
				tackle.Reel:            {"5000 Big Pit"},
				tackle.Line:            {"Mono 0.22", "Fluorocarbon 0.20"},
				tackle.Hook:            {"Size 10", "Size 8"},
				tackle.Feeder:          {"Method 30g"},
				tackle.Bait:            {"Boilie", "Pellet"},
				tackle.Groundbait:      {"Carp Method Mix"},
				tackle.Additive:        {"Krill", "Vanilla"},
				tackle.FeederTip:       {"4oz"},
				tackle.CastingDistance: {"50m", "60m"},
				tackle.CastingInterval: {"10min"},
			},
		},
		{
			Name: "Roach", Variant: "Silver", MinWeight: 0.05, MaxWeight: 0.8,
			Prefs: Prefs{
				tackle.Rod:             {"Picker 2.7m", "Feeder 3.3m"},
				tackle.Reel:            {"2500 Front Drag", "3000 Front Drag"},
				tackle.Line:            {"Mono 0.16"},
				tackle.Hook:            {"Size 18", "Size 16"},
				tackle.Feeder:          {"Open End 20g", "Cage 30g"},
				tackle.Bait:            {"Maggot", "Caster", "Bread"},
				tackle.Groundbait:      {"Roach Mix", "Brown Crumb"},
				tackle.Additive:        {"Hemp Oil", "None"},
				tackle.FeederTip:       {"0.5oz", "1oz"},
				tackle.CastingDistance: {"20m", "30m"},
				tackle.CastingInterval: {"2min", "3min"},
			},
		},
		{
			Name: "Tench", Variant: "Green", MinWeight: 1.0, MaxWeight: 4.5,
			Prefs: Prefs{
				tackle.Rod:             {"Feeder 3.3m", "Method 3.0m"},
				tackle.Reel:            {"4000 Front Drag"},
				tackle.Line:            {"Mono 0.18", "Fluorocarbon 0.20"},
				tackle.Hook:            {"Size 14", "Size 12"},
				tackle.Feeder:          {"Method 30g", "Cage 30g"},
				tackle.Bait:            {"Worm", "Corn", "Caster"},
				tackle.Groundbait:      {"Sweet Fishmeal", "Brown Crumb"},
				tackle.Additive:        {"Vanilla", "Molasses"},
				tackle.FeederTip:       {"1oz", "2oz"},
				tackle.CastingDistance: {"20m", "30m"},
				tackle.CastingInterval: {"5min", "8min"},
			},
		},
		{
			Name: "Barbel", Variant: "River", MinWeight: 1.5, MaxWeight: 8.0,
			Prefs: Prefs{
				tackle.Rod:             {"Heavy Feeder 4.2m", "Feeder 3.9m"},
				tackle.Reel:            {"4000 Baitrunner", "5000 Big Pit"},
				tackle.Line:            {"Braid 0.10", "Mono 0.22"},
				tackle.Hook:            {"Size 12", "Size 10"},
				tackle.Feeder:          {"Window 60g", "Cage 40g"},
				tackle.Bait:            {"Pellet", "Worm", "Boilie"},
				tackle.Groundbait:      {"River Mix"},
				tackle.Additive:        {"Hemp Oil", "Garlic"},
				tackle.FeederTip:       {"3oz", "4oz"},
				tackle.CastingDistance: {"20m", "30m", "40m"},
				tackle.CastingInterval: {"2min", "3min"},
			},
		},
		{
			Name: "Chub", Variant: "River", MinWeight: 0.5, MaxWeight: 3.5,
			Prefs: Prefs{
				tackle.Rod:             {"Feeder 3.6m", "Picker 2.7m"},
				tackle.Reel:            {"3000 Front Drag", "4000 Front Drag"},
				tackle.Line:            {"Mono 0.18", "Mono 0.22"},
				tackle.Hook:            {"Size 14", "Size 12", "Size 10"},
				tackle.Feeder:          {"Cage 40g", "Open End 20g"},
				tackle.Bait:            {"Bread", "Worm", "Maggot"},
				tackle.Groundbait:      {"River Mix", "Brown Crumb"},
				tackle.Additive:        {"Garlic", "None"},
				tackle.FeederTip:       {"2oz", "3oz"},
				tackle.CastingDistance: {"20m", "30m"},
				tackle.CastingInterval: {"2min", "3min", "5min"},
			},
		},
	})
}
