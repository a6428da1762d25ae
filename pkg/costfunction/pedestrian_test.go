package costfunction

import (
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/lintang-b-s/Accessx/pkg"
	da "github.com/lintang-b-s/Accessx/pkg/datastructure"
	"github.com/lintang-b-s/Accessx/pkg/openinghours"
	"github.com/lintang-b-s/Accessx/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2024-03-04T20:00:00Z, monday 12:00 in US/Pacific.
const mondayNoonPacific int64 = 1709582400000

type stubOracle struct {
	open  bool
	err   error
	calls int
	mu    sync.Mutex
}

func (s *stubOracle) IsOpen(spec string, at time.Time) (bool, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	return s.open, s.err
}

type panicOracle struct{}

func (panicOracle) IsOpen(spec string, at time.Time) (bool, error) {
	panic("nil grammar")
}

func newCostFunction(t *testing.T, prefs Preferences, oracle openinghours.Oracle) *PedestrianCostFunction {
	t.Helper()
	pc, err := NewPedestrianCostFunction(prefs.WithReferenceTime(mondayNoonPacific), DefaultCostOptions(), oracle, nil)
	require.NoError(t, err)
	return pc
}

func mustCost(t *testing.T, c EdgeCost) float64 {
	t.Helper()
	v, ok := c.Value()
	require.True(t, ok, "edge should not be excluded")
	return v
}

func TestPedestrianCrossing(t *testing.T) {
	crossing := func() *da.EdgeAttributes {
		return da.NewEdgeAttributes(10, "footway").SetFootway(pkg.FOOTWAY_CROSSING)
	}

	avoid := DefaultPreferences(pkg.WHEELCHAIR)
	avoid.AvoidCurbsWithoutRamps = true
	pc := newCostFunction(t, avoid, nil)

	assert.True(t, pc.GetCost(0, 1, crossing()).IsExcluded(), "no curb ramp info")
	assert.True(t, pc.GetCost(0, 1, crossing().SetCurbRamps(false)).IsExcluded())
	assert.InDelta(t, pkg.CROSSING_DELAY_SECOND+10/pkg.WHEELCHAIR_BASE_SPEED,
		mustCost(t, pc.GetCost(0, 1, crossing().SetCurbRamps(true))), 1e-9)

	walk := newCostFunction(t, DefaultPreferences(pkg.WALK), nil)
	assert.InDelta(t, pkg.CROSSING_DELAY_SECOND+10/pkg.WALK_BASE_SPEED,
		mustCost(t, walk.GetCost(0, 1, crossing())), 1e-9)
	assert.InDelta(t, pkg.CROSSING_DELAY_SECOND+10/pkg.WALK_BASE_SPEED,
		mustCost(t, walk.GetCost(0, 1, crossing().SetCurbRamps(false))), 1e-9)
}

func TestPedestrianFootwayIncline(t *testing.T) {
	prefs := DefaultPreferences(pkg.WALK)
	pc := newCostFunction(t, prefs, nil)
	kUp, kDown := pc.DecayRates()

	testCases := []struct {
		name     string
		edge     *da.EdgeAttributes
		excluded bool
		expected float64
	}{
		{
			name:     "no incline uses base speed",
			edge:     da.NewEdgeAttributes(50, "footway"),
			expected: 50 / pkg.WALK_BASE_SPEED,
		},
		{
			name:     "short segment ignores steep incline",
			edge:     da.NewEdgeAttributes(3, "footway").SetIncline(0.5),
			expected: 3 / pkg.WALK_BASE_SPEED,
		},
		{
			name:     "steep uphill excluded",
			edge:     da.NewEdgeAttributes(10, "footway").SetIncline(0.2),
			excluded: true,
		},
		{
			name:     "steep downhill excluded",
			edge:     da.NewEdgeAttributes(10, "footway").SetIncline(-0.15),
			excluded: true,
		},
		{
			name: "moderate uphill",
			edge: da.NewEdgeAttributes(10, "footway").SetIncline(0.05),
			expected: 10 / (pkg.WALK_BASE_SPEED *
				math.Exp(-kUp*math.Abs(0.05-pkg.IDEAL_INCLINE))),
		},
		{
			name: "moderate downhill",
			edge: da.NewEdgeAttributes(10, "footway").SetIncline(-0.05),
			expected: 10 / (pkg.WALK_BASE_SPEED *
				math.Exp(-kDown*math.Abs(-0.05-pkg.IDEAL_INCLINE))),
		},
		{
			name:     "ideal incline",
			edge:     da.NewEdgeAttributes(10, "footway").SetIncline(pkg.IDEAL_INCLINE),
			expected: 10 / pkg.WALK_BASE_SPEED,
		},
		{
			name:     "at uphill tolerance",
			edge:     da.NewEdgeAttributes(10, "footway").SetIncline(pkg.DEFAULT_MAX_UPHILL_GRADE),
			expected: 10 / (pkg.WALK_BASE_SPEED / pkg.DECAY_DIVISOR),
		},
		{
			name:     "sidewalk footway tag still plain footway",
			edge:     da.NewEdgeAttributes(10, "footway").SetFootway("sidewalk"),
			expected: 10 / pkg.WALK_BASE_SPEED,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			c := pc.GetCost(0, 1, tt.edge)
			if tt.excluded {
				assert.True(t, c.IsExcluded())
				return
			}
			assert.InDelta(t, tt.expected, mustCost(t, c), 1e-6)
		})
	}
}

func TestPedestrianStreets(t *testing.T) {
	prefs := DefaultPreferences(pkg.WALK)
	pc := newCostFunction(t, prefs, nil)

	testCases := []struct {
		highway string
		factor  float64
	}{
		{highway: "pedestrian", factor: 2},
		{highway: "service", factor: 1.1 * 2},
		{highway: "residential", factor: 1.2 * 2},
		{highway: "secondary", factor: 1.5 * 2},
		{highway: "tertiary", factor: 1.5 * 2},
	}

	for _, tt := range testCases {
		t.Run(tt.highway, func(t *testing.T) {
			// incline is not modeled on streets
			e := da.NewEdgeAttributes(100, tt.highway).SetIncline(0.3)
			assert.InDelta(t, tt.factor*(100/pkg.WALK_BASE_SPEED), mustCost(t, pc.GetCost(0, 1, e)), 1e-9)
		})
	}

	t.Run("residential without street avoidance", func(t *testing.T) {
		prefs := DefaultPreferences(pkg.WALK)
		prefs.StreetAvoidanceWeight = 0
		pc := newCostFunction(t, prefs, nil)
		assert.InDelta(t, 1.2*(100/pkg.WALK_BASE_SPEED),
			mustCost(t, pc.GetCost(0, 1, da.NewEdgeAttributes(100, "residential"))), 1e-9)
	})
}

func TestPedestrianElevator(t *testing.T) {
	elevator := func() *da.EdgeAttributes {
		return da.NewEdgeAttributes(5, "footway").SetElevator(true)
	}
	expected := pkg.ELEVATOR_DELAY_SECOND + 5/pkg.WALK_BASE_SPEED

	t.Run("closed", func(t *testing.T) {
		pc := newCostFunction(t, DefaultPreferences(pkg.WALK), &stubOracle{open: false})
		assert.True(t, pc.GetCost(0, 1, elevator().SetOpeningHours("Mo-Fr 06:00-07:00")).IsExcluded())
	})

	t.Run("open", func(t *testing.T) {
		pc := newCostFunction(t, DefaultPreferences(pkg.WALK), &stubOracle{open: true})
		assert.InDelta(t, expected, mustCost(t, pc.GetCost(0, 1, elevator().SetOpeningHours("24/7"))), 1e-9)
	})

	t.Run("no opening hours", func(t *testing.T) {
		oracle := &stubOracle{open: false}
		pc := newCostFunction(t, DefaultPreferences(pkg.WALK), oracle)
		assert.InDelta(t, expected, mustCost(t, pc.GetCost(0, 1, elevator())), 1e-9)
		assert.Equal(t, 0, oracle.calls)
	})

	t.Run("invalid opening hours fails open", func(t *testing.T) {
		pc := newCostFunction(t, DefaultPreferences(pkg.WALK), &stubOracle{err: openinghours.ErrInvalidSpec})
		assert.InDelta(t, expected, mustCost(t, pc.GetCost(0, 1, elevator().SetOpeningHours("?"))), 1e-9)
	})

	t.Run("unexpected oracle error fails closed", func(t *testing.T) {
		pc := newCostFunction(t, DefaultPreferences(pkg.WALK), &stubOracle{err: errors.New("grammar table corrupt")})
		assert.True(t, pc.GetCost(0, 1, elevator().SetOpeningHours("24/7")).IsExcluded())
	})

	t.Run("panicking oracle fails closed", func(t *testing.T) {
		pc := newCostFunction(t, DefaultPreferences(pkg.WALK), panicOracle{})
		assert.True(t, pc.GetCost(0, 1, elevator().SetOpeningHours("24/7")).IsExcluded())
	})

	t.Run("oracle queried once per spec per evaluator", func(t *testing.T) {
		oracle := &stubOracle{open: true}
		pc := newCostFunction(t, DefaultPreferences(pkg.WALK), oracle)
		for i := 0; i < 20; i++ {
			assert.False(t, pc.GetCost(0, 1, elevator().SetOpeningHours("Mo-Fr 08:00-18:00")).IsExcluded())
		}
		assert.Equal(t, 1, oracle.calls)

		next := newCostFunction(t, DefaultPreferences(pkg.WALK), oracle)
		assert.False(t, next.GetCost(0, 1, elevator().SetOpeningHours("Mo-Fr 08:00-18:00")).IsExcluded())
		assert.Equal(t, 2, oracle.calls)
	})

	t.Run("evaluated at reference time in pacific time", func(t *testing.T) {
		pc := newCostFunction(t, DefaultPreferences(pkg.WALK), openinghours.NewCachedOracle(0))
		assert.Equal(t, time.Monday, pc.ReferenceTime().Weekday())
		assert.Equal(t, 12, pc.ReferenceTime().Hour())

		assert.False(t, pc.GetCost(0, 1, elevator().SetOpeningHours("Mo-Fr 08:00-18:00")).IsExcluded())
		assert.True(t, pc.GetCost(0, 1, elevator().SetOpeningHours("Sa,Su 08:00-18:00")).IsExcluded())
		// 20:00 UTC, but noon in the reference timezone
		assert.True(t, pc.GetCost(0, 1, elevator().SetOpeningHours("Mo 19:00-21:00")).IsExcluded())
	})
}

func TestPedestrianUnknownAndMalformed(t *testing.T) {
	pc := newCostFunction(t, DefaultPreferences(pkg.WALK), nil)

	testCases := []struct {
		name string
		edge *da.EdgeAttributes
	}{
		{name: "unknown highway", edge: da.NewEdgeAttributes(10, "unknown_type")},
		{name: "unknown highway with curb ramps", edge: da.NewEdgeAttributes(10, "unknown_type").SetCurbRamps(true).SetFootway(pkg.FOOTWAY_CROSSING)},
		{name: "motorway", edge: da.NewEdgeAttributes(10, "motorway")},
		{name: "empty highway", edge: da.NewEdgeAttributes(10, "")},
		{name: "zero length", edge: da.NewEdgeAttributes(0, "footway")},
		{name: "negative length", edge: da.NewEdgeAttributes(-4, "residential")},
		{name: "nan length", edge: da.NewEdgeAttributes(math.NaN(), "footway")},
		{name: "nil edge", edge: nil},
		{name: "from empty map", edge: da.EdgeAttributesFromMap(map[string]any{})},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			c := pc.GetCost(0, 1, tt.edge)
			assert.True(t, c.IsExcluded())
			assert.Equal(t, pkg.INF_WEIGHT, pc.GetWeight(0, 1, tt.edge))
		})
	}
}

func TestPedestrianIdempotentAndConcurrent(t *testing.T) {
	pc := newCostFunction(t, DefaultPreferences(pkg.WALK), openinghours.NewCachedOracle(0))
	edges := []*da.EdgeAttributes{
		da.NewEdgeAttributes(10, "footway").SetIncline(0.03),
		da.NewEdgeAttributes(10, "footway").SetFootway(pkg.FOOTWAY_CROSSING),
		da.NewEdgeAttributes(10, "footway").SetElevator(true).SetOpeningHours("Mo-Fr 08:00-18:00"),
		da.NewEdgeAttributes(10, "service"),
		da.NewEdgeAttributes(10, "unknown_type"),
	}

	expected := make([]EdgeCost, len(edges))
	for i, e := range edges {
		expected[i] = pc.GetCost(da.Index(i), da.Index(i+1), e)
		assert.Equal(t, expected[i], pc.GetCost(da.Index(i), da.Index(i+1), e))
	}

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for r := 0; r < 100; r++ {
				for i, e := range edges {
					assert.Equal(t, expected[i], pc.GetCost(da.Index(i), da.Index(i+1), e))
				}
			}
		}()
	}
	wg.Wait()
}

func TestNewPedestrianCostFunction(t *testing.T) {
	t.Run("invalid preferences", func(t *testing.T) {
		testCases := []struct {
			name   string
			modify func(p *Preferences)
		}{
			{name: "zero base speed", modify: func(p *Preferences) { p.BaseSpeed = 0 }},
			{name: "nan base speed", modify: func(p *Preferences) { p.BaseSpeed = math.NaN() }},
			{name: "negative downhill", modify: func(p *Preferences) { p.MaxDownhillGrade = -0.1 }},
			{name: "negative uphill", modify: func(p *Preferences) { p.MaxUphillGrade = -0.1 }},
			{name: "negative street avoidance", modify: func(p *Preferences) { p.StreetAvoidanceWeight = -2 }},
		}
		for _, tt := range testCases {
			t.Run(tt.name, func(t *testing.T) {
				prefs := DefaultPreferences(pkg.WALK)
				tt.modify(&prefs)
				_, err := NewPedestrianCostFunction(prefs, DefaultCostOptions(), nil, nil)
				require.Error(t, err)
				assert.Equal(t, util.ErrBadParamInput, util.ErrorCode(err))
			})
		}
	})

	t.Run("invalid decay divisor", func(t *testing.T) {
		opts := DefaultCostOptions()
		opts.DecayDivisor = 1
		_, err := NewPedestrianCostFunction(DefaultPreferences(pkg.WALK), opts, nil, nil)
		assert.Error(t, err)
	})

	t.Run("reference time defaults to now", func(t *testing.T) {
		fixed := time.Date(2025, time.July, 1, 15, 0, 0, 0, time.UTC)
		opts := DefaultCostOptions()
		opts.Now = func() time.Time { return fixed }
		pc, err := NewPedestrianCostFunction(DefaultPreferences(pkg.WALK), opts, nil, nil)
		require.NoError(t, err)
		assert.True(t, fixed.Equal(pc.ReferenceTime()))
		assert.Equal(t, pkg.REFERENCE_TIMEZONE, pc.ReferenceTime().Location().String())
		// 15:00 UTC is 08:00 PDT
		assert.Equal(t, 8, pc.ReferenceTime().Hour())
	})

	t.Run("preferences are copied", func(t *testing.T) {
		millis := mondayNoonPacific
		prefs := DefaultPreferences(pkg.WALK)
		prefs.ReferenceTimeMillis = &millis
		pc, err := NewPedestrianCostFunction(prefs, DefaultCostOptions(), nil, nil)
		require.NoError(t, err)
		millis = 0
		assert.Equal(t, mondayNoonPacific, *pc.Preferences().ReferenceTimeMillis)
	})

	t.Run("profiles", func(t *testing.T) {
		assert.Equal(t, 1.3, DefaultPreferences(pkg.WALK).BaseSpeed)
		assert.Equal(t, 0.6, DefaultPreferences(pkg.WHEELCHAIR).BaseSpeed)
		assert.Equal(t, 2.0, DefaultPreferences(pkg.POWERED).BaseSpeed)
	})
}
