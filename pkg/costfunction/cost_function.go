package costfunction

import (
	"fmt"
	"math"

	"github.com/lintang-b-s/Accessx/pkg"
	da "github.com/lintang-b-s/Accessx/pkg/datastructure"
)

type CostFunction interface {
	GetCost(u, v da.Index, e *da.EdgeAttributes) EdgeCost
	GetWeight(u, v da.Index, e *da.EdgeAttributes) float64
}

/*
EdgeCost. either a finite non-negative traversal cost (seconds) or excluded, meaning the edge must not be traversed.
the zero value is excluded.
*/
type EdgeCost struct {
	seconds     float64
	traversable bool
}

// Finite. negative, NaN or infinite costs collapse to Excluded.
func Finite(seconds float64) EdgeCost {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		return Excluded()
	}
	return EdgeCost{seconds: seconds, traversable: true}
}

func Excluded() EdgeCost {
	return EdgeCost{}
}

func (c EdgeCost) IsExcluded() bool {
	return !c.traversable
}

func (c EdgeCost) Value() (float64, bool) {
	return c.seconds, c.traversable
}

// Weight. numeric weight for search engines that only understand float weights, excluded -> INF_WEIGHT.
func (c EdgeCost) Weight() float64 {
	if !c.traversable {
		return pkg.INF_WEIGHT
	}
	return c.seconds
}

func (c EdgeCost) String() string {
	if !c.traversable {
		return "excluded"
	}
	return fmt.Sprintf("%.3fs", c.seconds)
}
