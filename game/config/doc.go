// Package config loads the scenarios a game can start from.
//
// Scenarios are JSON or YAML files in a single directory. Each file names
// the two sides, their rosters (archetype, start cell, optional facing and
// stats override) and an optional terrain seed. Files are read with viper
// and checked with engine.ValidateScenario before they are cached.
//
// Example scenario:
//
//	{
//	  "name": "skirmish",
//	  "seed": 7,
//	  "sides": [
//	    {"name": "red",  "units": [{"archetype": "lancehorn", "x": 0, "y": 7, "facing": "N"}]},
//	    {"name": "blue", "units": [{"archetype": "lancehorn", "x": 7, "y": 0, "facing": "S"}]}
//	  ]
//	}
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	scenario, err := manager.LoadScenario("skirmish")
//	scenarios, err := manager.ListScenarios()
//	fallback := manager.GetDefault()
//
// When the directory has no skirmish scenario the first valid file becomes
// the default, and an empty directory falls back to engine.DefaultScenario.
package config
