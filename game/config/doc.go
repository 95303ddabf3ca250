// Package config provides race definition management for Grid Race.
//
// The config package handles:
//   - Loading race definitions from JSON and HCL files
//   - Validation through engine.ValidateRaceConfig
//   - Default race selection and caching
//   - Discovery and listing of available races
//
// Definition Formats:
//
// A race lives in the configs directory as <name>.json or <name>.hcl. When
// both exist the JSON file wins. The HCL form declares one block per racer:
//
//	name        = "Oval"
//	description = "A small oval"
//	max_players = 3
//	track = [
//	  "########",
//	  "#......#",
//	  "#__....#",
//	  "########",
//	]
//	player "Human"   { name = "you" }
//	player "HardBot" { name = "hal" }
//
// Messages left empty fall back to engine.DefaultMessages. Saved races are
// always written as JSON.
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	raceConfig, err := manager.LoadConfig("oval")
//	defaultConfig := manager.GetDefault()
//	races, err := manager.ListConfigs()
package config
