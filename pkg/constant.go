package pkg

// mobility profile
type Profile uint8

const (
	WALK Profile = iota
	WHEELCHAIR
	POWERED
)

// base moving speeds per mobility profile, in meter/second.
const (
	WALK_BASE_SPEED       = 1.3 // slightly lower than average walking speed
	WHEELCHAIR_BASE_SPEED = 0.6
	POWERED_BASE_SPEED    = 2.0 // roughly 5 mph
)

const (
	INF_WEIGHT float64 = 1e15

	// 1/DECAY_DIVISOR of base speed is where the incline cutoff starts to apply.
	DECAY_DIVISOR = 5.0

	// fastest incline, from Tobler's hiking function
	IDEAL_INCLINE = -0.0087

	DEFAULT_MAX_DOWNHILL_GRADE      = 0.1
	DEFAULT_MAX_UPHILL_GRADE        = 0.085
	DEFAULT_STREET_AVOIDANCE_WEIGHT = 1.0

	CROSSING_DELAY_SECOND = 30.0
	ELEVATOR_DELAY_SECOND = 45.0

	// incline of path segments shorter than this (meter) is unreliable
	SHORT_SEGMENT_LENGTH = 3.0

	REFERENCE_TIMEZONE = "America/Los_Angeles" // US/Pacific

	// number of distinct opening_hours values kept compiled
	DEFAULT_OPENING_HOURS_CACHE_SIZE = 4096
)

func (p Profile) BaseSpeed() float64 {
	switch p {
	case WHEELCHAIR:
		return WHEELCHAIR_BASE_SPEED
	case POWERED:
		return POWERED_BASE_SPEED
	default:
		return WALK_BASE_SPEED
	}
}

func (p Profile) String() string {
	switch p {
	case WHEELCHAIR:
		return "wheelchair"
	case POWERED:
		return "powered"
	default:
		return "walk"
	}
}

func GetProfile(profile string) Profile {
	switch profile {
	case "wheelchair":
		return WHEELCHAIR
	case "powered":
		return POWERED
	default:
		return WALK
	}
}

type OsmHighwayType uint8

// osm highway values the pedestrian cost model knows about: https://wiki.openstreetmap.org/wiki/Key:highway
const (
	FOOTWAY     OsmHighwayType = 0
	PEDESTRIAN  OsmHighwayType = 1
	SERVICE     OsmHighwayType = 2
	RESIDENTIAL OsmHighwayType = 3
	SECONDARY   OsmHighwayType = 4
	TERTIARY    OsmHighwayType = 5
	UNKNOWN     OsmHighwayType = 6
)

func GetHighwayType(roadType string) OsmHighwayType {
	switch roadType {
	case "footway":
		return FOOTWAY
	case "pedestrian":
		return PEDESTRIAN
	case "service":
		return SERVICE
	case "residential":
		return RESIDENTIAL
	case "secondary":
		return SECONDARY
	case "tertiary":
		return TERTIARY
	default:
		return UNKNOWN
	}
}

func (h OsmHighwayType) IsStreet() bool {
	switch h {
	case PEDESTRIAN, SERVICE, RESIDENTIAL, SECONDARY, TERTIARY:
		return true
	default:
		return false
	}
}

const (
	FOOTWAY_CROSSING = "crossing"
)
