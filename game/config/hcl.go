package config

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/wricardo/gridrace/game/engine"
)

// hclRaceFile is the top-level structure of a .hcl race definition
type hclRaceFile struct {
	Name              string       `hcl:"name"`
	Description       string       `hcl:"description"`
	MaxPlayers        int          `hcl:"max_players"`
	Track             cty.Value    `hcl:"track"`
	CollisionEndsGame *bool        `hcl:"collision_ends_game,optional"`
	MaxRounds         *int         `hcl:"max_rounds,optional"`
	Players           []*hclPlayer `hcl:"player,block"`
	Messages          *hclMessages `hcl:"messages,block"`
}

type hclPlayer struct {
	Type string `hcl:"type,label"`
	Name string `hcl:"name"`
}

type hclMessages struct {
	Welcome     string `hcl:"welcome,optional"`
	Winner      string `hcl:"winner,optional"`
	InvalidMove string `hcl:"invalid_move,optional"`
	Collision   string `hcl:"collision,optional"`
	RoundLimit  string `hcl:"round_limit,optional"`
}

// decodeHCL parses an HCL race definition. filename is only used in diagnostics.
func decodeHCL(data []byte, filename string) (*engine.RaceConfig, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}

	var parsed hclRaceFile
	diags = gohcl.DecodeBody(file.Body, nil, &parsed)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}

	track, err := trackLines(parsed.Track)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	config := &engine.RaceConfig{
		Name:        parsed.Name,
		Description: parsed.Description,
		MaxPlayers:  parsed.MaxPlayers,
		Track:       track,
	}
	if parsed.CollisionEndsGame != nil {
		config.CollisionEndsGame = *parsed.CollisionEndsGame
	}
	if parsed.MaxRounds != nil {
		config.MaxRounds = *parsed.MaxRounds
	}
	for _, p := range parsed.Players {
		config.Players = append(config.Players, engine.PlayerSpec{Type: p.Type, Name: p.Name})
	}
	if m := parsed.Messages; m != nil {
		config.Messages = engine.Messages{
			Welcome:     m.Welcome,
			Winner:      m.Winner,
			InvalidMove: m.InvalidMove,
			Collision:   m.Collision,
			RoundLimit:  m.RoundLimit,
		}
	}
	return config, nil
}

// trackLines converts the track attribute, a list or tuple of strings, into rows
func trackLines(val cty.Value) ([]string, error) {
	if !val.IsKnown() || val.IsNull() {
		return nil, fmt.Errorf("%w: track is required", ErrInvalidConfig)
	}
	ty := val.Type()
	if !ty.IsListType() && !ty.IsTupleType() {
		return nil, fmt.Errorf("%w: track must be a list of strings, got %s", ErrInvalidConfig, ty.FriendlyName())
	}

	var lines []string
	for it := val.ElementIterator(); it.Next(); {
		idx, row := it.Element()
		if !row.IsKnown() || row.IsNull() || row.Type() != cty.String {
			i, _ := idx.AsBigFloat().Int64()
			return nil, fmt.Errorf("%w: track row %d must be a string", ErrInvalidConfig, i+1)
		}
		lines = append(lines, row.AsString())
	}
	return lines, nil
}
