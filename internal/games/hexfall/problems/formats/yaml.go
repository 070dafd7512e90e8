package formats

import (
	"fmt"

	"github.com/nya3jp/icfpc2015/internal/games/hexfall/core"
	"gopkg.in/yaml.v3"
)

// YAMLProblem represents the YAML structure for a problem file. Field
// names follow the JSON format so files convert one-to-one.
type YAMLProblem struct {
	ID           int         `yaml:"id"`
	Width        int         `yaml:"width"`
	Height       int         `yaml:"height"`
	Filled       []core.Cell `yaml:"filled,omitempty"`
	Units        []core.Unit `yaml:"units"`
	SourceSeeds  []int64     `yaml:"sourceSeeds"`
	SourceLength int         `yaml:"sourceLength"`
}

// ParseYAML parses a YAML problem file.
func ParseYAML(data []byte) (Problem, error) {
	var yp YAMLProblem
	if err := yaml.Unmarshal(data, &yp); err != nil {
		return Problem{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	seeds, err := convertSeeds(yp.SourceSeeds)
	if err != nil {
		return Problem{}, err
	}

	return Problem{
		ID:           yp.ID,
		Width:        yp.Width,
		Height:       yp.Height,
		Filled:       yp.Filled,
		Units:        yp.Units,
		SourceSeeds:  seeds,
		SourceLength: yp.SourceLength,
	}, nil
}
