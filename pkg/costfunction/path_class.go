package costfunction

import (
	"github.com/lintang-b-s/Accessx/pkg"
	da "github.com/lintang-b-s/Accessx/pkg/datastructure"
)

// PathClass. category of a pedestrian network edge, decides which cost rule applies.
type PathClass uint8

const (
	PATH_UNKNOWN PathClass = iota
	PATH_FOOTWAY_CROSSING
	PATH_FOOTWAY_ELEVATOR
	PATH_FOOTWAY
	PATH_STREET_PEDESTRIAN
	PATH_STREET_SERVICE
	PATH_STREET_RESIDENTIAL
	PATH_STREET_OTHER
)

func ClassifyEdge(e *da.EdgeAttributes) PathClass {
	switch e.GetHighwayType() {
	case pkg.FOOTWAY:
		if e.IsCrossing() {
			return PATH_FOOTWAY_CROSSING
		}
		if e.Elevator {
			return PATH_FOOTWAY_ELEVATOR
		}
		return PATH_FOOTWAY
	case pkg.PEDESTRIAN:
		return PATH_STREET_PEDESTRIAN
	case pkg.SERVICE:
		return PATH_STREET_SERVICE
	case pkg.RESIDENTIAL:
		return PATH_STREET_RESIDENTIAL
	case pkg.SECONDARY, pkg.TERTIARY:
		return PATH_STREET_OTHER
	default:
		return PATH_UNKNOWN
	}
}

func (p PathClass) IsFootway() bool {
	return p == PATH_FOOTWAY || p == PATH_FOOTWAY_CROSSING || p == PATH_FOOTWAY_ELEVATOR
}

func (p PathClass) IsStreet() bool {
	switch p {
	case PATH_STREET_PEDESTRIAN, PATH_STREET_SERVICE, PATH_STREET_RESIDENTIAL, PATH_STREET_OTHER:
		return true
	default:
		return false
	}
}

func (p PathClass) String() string {
	switch p {
	case PATH_FOOTWAY_CROSSING:
		return "footway_crossing"
	case PATH_FOOTWAY_ELEVATOR:
		return "footway_elevator"
	case PATH_FOOTWAY:
		return "footway"
	case PATH_STREET_PEDESTRIAN:
		return "street_pedestrian"
	case PATH_STREET_SERVICE:
		return "street_service"
	case PATH_STREET_RESIDENTIAL:
		return "street_residential"
	case PATH_STREET_OTHER:
		return "street_other"
	default:
		return "unknown"
	}
}
