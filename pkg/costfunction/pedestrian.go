package costfunction

import (
	"math"
	"time"

	da "github.com/lintang-b-s/Accessx/pkg/datastructure"
	"github.com/lintang-b-s/Accessx/pkg/openinghours"
	"go.uber.org/zap"
)

/*
PedestrianCostFunction. cost of traversing a pedestrian network edge for one routing request, balancing distance
vs. steepness vs. crossing streets.

built once per request, then immutable: safe to call from many search workers at once.
*/
type PedestrianCostFunction struct {
	prefs         Preferences
	opts          CostOptions
	kUp, kDown    float64
	referenceTime time.Time
	hours         *openinghours.Snapshot
	log           *zap.Logger
}

var _ CostFunction = (*PedestrianCostFunction)(nil)

func NewPedestrianCostFunction(prefs Preferences, opts CostOptions, oracle openinghours.Oracle,
	log *zap.Logger) (*PedestrianCostFunction, error) {
	if err := prefs.Validate(); err != nil {
		return nil, err
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if log == nil {
		log = zap.NewNop()
	}

	var referenceTime time.Time
	if prefs.ReferenceTimeMillis != nil {
		millis := *prefs.ReferenceTimeMillis
		prefs.ReferenceTimeMillis = &millis
		referenceTime = time.UnixMilli(millis).In(opts.Location)
	} else {
		referenceTime = opts.Now().In(opts.Location)
	}

	return &PedestrianCostFunction{
		prefs:         prefs,
		opts:          opts,
		kUp:           FindDecayRate(prefs.MaxUphillGrade, opts.IdealIncline, opts.DecayDivisor),
		kDown:         FindDecayRate(-prefs.MaxDownhillGrade, opts.IdealIncline, opts.DecayDivisor),
		referenceTime: referenceTime,
		hours:         openinghours.NewSnapshot(oracle, referenceTime),
		log:           log,
	}, nil
}

// GetCost. cost in seconds of traversing edge e from u to v, or Excluded.
func (pc *PedestrianCostFunction) GetCost(u, v da.Index, e *da.EdgeAttributes) (cost EdgeCost) {
	defer func() {
		if r := recover(); r != nil {
			pc.log.Error("edge cost evaluation panicked, excluding edge", zap.Any("panic", r),
				zap.Uint32("from", uint32(u)), zap.Uint32("to", uint32(v)))
			cost = Excluded()
		}
	}()

	if e == nil {
		return Excluded()
	}
	length := e.GetLength()
	if !(length > 0) || math.IsInf(length, 1) {
		return Excluded()
	}

	var (
		delay            float64
		speed            = pc.prefs.BaseSpeed
		streetCostFactor = 1.0
		w                = pc.prefs.StreetAvoidanceWeight
	)

	switch ClassifyEdge(e) {
	case PATH_FOOTWAY_CROSSING:
		if pc.prefs.AvoidCurbsWithoutRamps && !e.HasCurbRamps() {
			// no curb ramp info is assumed to mean no curb ramps
			return Excluded()
		}
		delay += pc.opts.CrossingDelay

	case PATH_FOOTWAY_ELEVATOR:
		delay += pc.opts.ElevatorDelay
		if spec, ok := e.GetOpeningHours(); ok {
			availability, err := pc.hours.Resolve(spec)
			if err != nil {
				pc.log.Debug("opening_hours evaluation failed, excluding elevator edge", zap.String("opening_hours", spec),
					zap.Uint32("from", uint32(u)), zap.Uint32("to", uint32(v)), zap.Error(err))
			}
			if availability == openinghours.Closed {
				return Excluded()
			}
		}

	case PATH_FOOTWAY:
		// incline of very short segments is likely misestimated and is ignored
		if incline, ok := e.GetIncline(); ok && length > pc.opts.ShortSegmentLength {
			if !pc.withinTolerance(incline) {
				return Excluded()
			}
			speed = pc.Speed(incline)
		}

	case PATH_STREET_PEDESTRIAN:
		streetCostFactor = math.Abs(w + 1)
	case PATH_STREET_SERVICE:
		// service roads include alleys, driveways and parking lots
		streetCostFactor = 1.1 * (w + 1)
	case PATH_STREET_RESIDENTIAL:
		streetCostFactor = 1.2 * (w + 1)
	case PATH_STREET_OTHER:
		// higher car traffic volume
		streetCostFactor = 1.5 * (w + 1)

	case PATH_UNKNOWN:
		return Excluded()
	default:
		return Excluded()
	}

	return Finite(streetCostFactor * (delay + length/speed))
}

func (pc *PedestrianCostFunction) GetWeight(u, v da.Index, e *da.EdgeAttributes) float64 {
	return pc.GetCost(u, v, e).Weight()
}

// Speed. walking speed (meter/second) on a path with the given incline.
func (pc *PedestrianCostFunction) Speed(incline float64) float64 {
	k := pc.kDown
	if incline > pc.opts.IdealIncline {
		k = pc.kUp
	}
	return ToblerSpeed(incline, k, pc.opts.IdealIncline, pc.prefs.BaseSpeed)
}

func (pc *PedestrianCostFunction) withinTolerance(incline float64) bool {
	return incline <= pc.prefs.MaxUphillGrade && incline >= -pc.prefs.MaxDownhillGrade
}

func (pc *PedestrianCostFunction) DecayRates() (kUp, kDown float64) {
	return pc.kUp, pc.kDown
}

func (pc *PedestrianCostFunction) ReferenceTime() time.Time {
	return pc.referenceTime
}

func (pc *PedestrianCostFunction) Preferences() Preferences {
	return pc.prefs
}
