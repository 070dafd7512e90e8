// Package formats provides the problem file parsers. JSON is the canonical
// exchange format; YAML is accepted for hand-written problems.
package formats

import (
	"fmt"
	"math"

	"github.com/nya3jp/icfpc2015/internal/games/hexfall/core"
)

// Problem is a parsed problem definition.
type Problem struct {
	ID           int
	Width        int
	Height       int
	Filled       []core.Cell
	Units        []core.Unit
	SourceSeeds  []uint32
	SourceLength int
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".json", ".yaml", ".yml"}
}

// convertSeeds narrows raw seeds to the 32-bit range the generator uses.
func convertSeeds(raw []int64) ([]uint32, error) {
	seeds := make([]uint32, len(raw))
	for i, s := range raw {
		if s < 0 || s > math.MaxUint32 {
			return nil, fmt.Errorf("seed %d out of range: %d", i, s)
		}
		seeds[i] = uint32(s)
	}
	return seeds, nil
}
