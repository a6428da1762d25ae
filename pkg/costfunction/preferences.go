package costfunction

import (
	"math"
	"time"
	_ "time/tzdata"

	"github.com/lintang-b-s/Accessx/pkg"
	"github.com/lintang-b-s/Accessx/pkg/util"
)

// Preferences. mobility constraints of one routing request.
type Preferences struct {
	BaseSpeed              float64 // meter/second
	MaxDownhillGrade       float64 // e.g. 0.1 for 10% downhill
	MaxUphillGrade         float64
	AvoidCurbsWithoutRamps bool
	StreetAvoidanceWeight  float64
	ReferenceTimeMillis    *int64 // unix epoch millis, nil -> now
}

func DefaultPreferences(profile pkg.Profile) Preferences {
	return Preferences{
		BaseSpeed:             profile.BaseSpeed(),
		MaxDownhillGrade:      pkg.DEFAULT_MAX_DOWNHILL_GRADE,
		MaxUphillGrade:        pkg.DEFAULT_MAX_UPHILL_GRADE,
		StreetAvoidanceWeight: pkg.DEFAULT_STREET_AVOIDANCE_WEIGHT,
	}
}

func (p Preferences) WithReferenceTime(millis int64) Preferences {
	p.ReferenceTimeMillis = &millis
	return p
}

func (p Preferences) Validate() error {
	if !(p.BaseSpeed > 0) || math.IsInf(p.BaseSpeed, 0) {
		return util.WrapErrorf(nil, util.ErrBadParamInput, "base speed must be positive, got %v", p.BaseSpeed)
	}
	if !(p.MaxDownhillGrade >= 0) || math.IsInf(p.MaxDownhillGrade, 0) {
		return util.WrapErrorf(nil, util.ErrBadParamInput, "max downhill grade must be non-negative, got %v", p.MaxDownhillGrade)
	}
	if !(p.MaxUphillGrade >= 0) || math.IsInf(p.MaxUphillGrade, 0) {
		return util.WrapErrorf(nil, util.ErrBadParamInput, "max uphill grade must be non-negative, got %v", p.MaxUphillGrade)
	}
	if !(p.StreetAvoidanceWeight >= 0) || math.IsInf(p.StreetAvoidanceWeight, 0) {
		return util.WrapErrorf(nil, util.ErrBadParamInput, "street avoidance weight must be non-negative, got %v", p.StreetAvoidanceWeight)
	}
	return nil
}

// CostOptions. model constants shared by every request of a deployment.
type CostOptions struct {
	IdealIncline       float64
	DecayDivisor       float64 // 1/DecayDivisor of base speed is the infeasibility cutoff
	CrossingDelay      float64 // second
	ElevatorDelay      float64 // second
	ShortSegmentLength float64 // meter, incline of shorter segments is ignored
	Location           *time.Location
	Now                func() time.Time
}

func DefaultCostOptions() CostOptions {
	loc, err := time.LoadLocation(pkg.REFERENCE_TIMEZONE)
	if err != nil {
		loc = time.UTC
	}
	return CostOptions{
		IdealIncline:       pkg.IDEAL_INCLINE,
		DecayDivisor:       pkg.DECAY_DIVISOR,
		CrossingDelay:      pkg.CROSSING_DELAY_SECOND,
		ElevatorDelay:      pkg.ELEVATOR_DELAY_SECOND,
		ShortSegmentLength: pkg.SHORT_SEGMENT_LENGTH,
		Location:           loc,
		Now:                time.Now,
	}
}

func (o CostOptions) WithTimezone(name string) (CostOptions, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return o, util.WrapErrorf(err, util.ErrBadParamInput, "unknown timezone %q", name)
	}
	o.Location = loc
	return o, nil
}

func (o CostOptions) validate() error {
	if !(o.DecayDivisor > 1) || math.IsInf(o.DecayDivisor, 0) {
		return util.WrapErrorf(nil, util.ErrBadParamInput, "decay divisor must be greater than 1, got %v", o.DecayDivisor)
	}
	if !(o.CrossingDelay >= 0) || !(o.ElevatorDelay >= 0) {
		return util.WrapErrorf(nil, util.ErrBadParamInput, "crossing and elevator delays must be non-negative")
	}
	if !util.IsFinite(o.IdealIncline) || !util.IsFinite(o.ShortSegmentLength) {
		return util.WrapErrorf(nil, util.ErrBadParamInput, "ideal incline and short segment length must be finite")
	}
	return nil
}
