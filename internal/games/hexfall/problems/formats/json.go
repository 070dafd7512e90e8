package formats

import (
	"encoding/json"
	"fmt"

	"github.com/nya3jp/icfpc2015/internal/games/hexfall/core"
)

// JSONProblem is the wire structure of a problem file.
type JSONProblem struct {
	ID           int         `json:"id"`
	Width        int         `json:"width"`
	Height       int         `json:"height"`
	Filled       []core.Cell `json:"filled"`
	Units        []core.Unit `json:"units"`
	SourceSeeds  []int64     `json:"sourceSeeds"`
	SourceLength int         `json:"sourceLength"`
}

// ParseJSON parses a JSON problem file.
func ParseJSON(data []byte) (Problem, error) {
	var jp JSONProblem
	if err := json.Unmarshal(data, &jp); err != nil {
		return Problem{}, fmt.Errorf("json unmarshal: %w", err)
	}

	seeds, err := convertSeeds(jp.SourceSeeds)
	if err != nil {
		return Problem{}, err
	}

	return Problem{
		ID:           jp.ID,
		Width:        jp.Width,
		Height:       jp.Height,
		Filled:       jp.Filled,
		Units:        jp.Units,
		SourceSeeds:  seeds,
		SourceLength: jp.SourceLength,
	}, nil
}

// MarshalJSON encodes p in the wire format.
func MarshalJSON(p Problem) ([]byte, error) {
	seeds := make([]int64, len(p.SourceSeeds))
	for i, s := range p.SourceSeeds {
		seeds[i] = int64(s)
	}
	filled := p.Filled
	if filled == nil {
		filled = []core.Cell{}
	}
	return json.Marshal(JSONProblem{
		ID:           p.ID,
		Width:        p.Width,
		Height:       p.Height,
		Filled:       filled,
		Units:        p.Units,
		SourceSeeds:  seeds,
		SourceLength: p.SourceLength,
	})
}
