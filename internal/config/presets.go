package config

import "sort"

const day = 86400.0

var Presets = map[string]map[string]*Config{
	"sun-earth": {
		"year": {
			Scenario: "sun-earth", Scheme: "verlet", Speed: 30 * day, SubSteps: 12,
			FrameDt: DefaultFrameDt, Duration: 365.25 * day, MetersPerUnit: 1e9,
			Selected: "sun", RecordEvery: 10,
		},
		"euler-drift": {
			Scenario: "sun-earth", Scheme: "euler", Speed: 60 * day, SubSteps: 1,
			FrameDt: DefaultFrameDt, Duration: 10 * 365.25 * day, MetersPerUnit: 1e9,
			Selected: "sun", RecordEvery: 10,
		},
		"precise": {
			Scenario: "sun-earth", Scheme: "verlet", Speed: 1, SubSteps: 8766,
			FrameDt: 365.25 * day, Duration: 365.25 * day, MetersPerUnit: 1e9,
			Selected: "sun", RecordEvery: 1,
		},
	},
	"earth-moon": {
		"month": {
			Scenario: "earth-moon", Scheme: "verlet", Speed: 2 * day, SubSteps: 20,
			FrameDt: DefaultFrameDt, Duration: 27.3 * day, MetersPerUnit: 1e6,
			Selected: "earth", RecordEvery: 5,
		},
		"follow-moon": {
			Scenario: "earth-moon", Scheme: "verlet", Speed: 2 * day, SubSteps: 20,
			FrameDt: DefaultFrameDt, Duration: 3 * 27.3 * day, MetersPerUnit: 1e6,
			Selected: "moon", RecordEvery: 5,
		},
	},
	"inner-system": {
		"mars-year": {
			Scenario: "inner-system", Scheme: "verlet", Speed: 30 * day, SubSteps: 720,
			FrameDt: DefaultFrameDt, Duration: 687 * day, MetersPerUnit: 1e9,
			Selected: "sun", RecordEvery: 10,
		},
		"lunar": {
			Scenario: "inner-system", Scheme: "verlet", Speed: day, SubSteps: 48,
			FrameDt: DefaultFrameDt, Duration: 60 * day, MetersPerUnit: 1e6,
			Selected: "earth", RecordEvery: 5,
		},
	},
	"binary": {
		"circumbinary": {
			Scenario: "binary", Scheme: "verlet", Speed: 60 * day, SubSteps: 48,
			FrameDt: DefaultFrameDt, Duration: 8 * 365.25 * day, MetersPerUnit: 1e9,
			RecordEvery: 10,
		},
	},
}

func GetPreset(scenario, preset string) *Config {
	scenarioPresets, ok := Presets[scenario]
	if !ok {
		return nil
	}
	cfg, ok := scenarioPresets[preset]
	if !ok {
		return nil
	}
	// copy so callers can apply flag overrides
	c := *cfg
	return &c
}

func ListPresets(scenario string) []string {
	scenarioPresets, ok := Presets[scenario]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(scenarioPresets))
	for name := range scenarioPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
