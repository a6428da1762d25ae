package openinghours

import (
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/lintang-b-s/Accessx/pkg"
)

type CompileFunc func(spec string) (*Schedule, error)

type compiled struct {
	schedule *Schedule
	err      error
}

/*
CachedOracle. Oracle that memoizes compiled schedules by specification string. the same opening_hours value recurs
across many elevator edges, so each distinct value is compiled once while it stays among the size most recently
used ones. safe for concurrent use.
*/
type CachedOracle struct {
	compile CompileFunc
	cache   *lru.Cache[string, compiled]
}

// NewCachedOracle. size <= 0 means pkg.DEFAULT_OPENING_HOURS_CACHE_SIZE.
func NewCachedOracle(size int) *CachedOracle {
	return NewCachedOracleWithCompiler(size, Parse)
}

func NewCachedOracleWithCompiler(size int, compile CompileFunc) *CachedOracle {
	if size <= 0 {
		size = pkg.DEFAULT_OPENING_HOURS_CACHE_SIZE
	}
	cache, _ := lru.New[string, compiled](size)
	return &CachedOracle{
		compile: compile,
		cache:   cache,
	}
}

func (co *CachedOracle) IsOpen(spec string, at time.Time) (bool, error) {
	c, ok := co.cache.Get(spec)
	if !ok {
		c = co.safeCompile(spec)
		co.cache.Add(spec, c)
	}
	if c.err != nil {
		return false, c.err
	}
	if c.schedule == nil {
		return false, ErrNoData
	}
	return c.schedule.IsOpen(at), nil
}

// Size. number of compiled specifications currently cached.
func (co *CachedOracle) Size() int {
	return co.cache.Len()
}

// safeCompile. a panicking compiler surfaces as a plain error, not ErrInvalidSpec.
func (co *CachedOracle) safeCompile(spec string) (c compiled) {
	defer func() {
		if r := recover(); r != nil {
			c = compiled{err: fmt.Errorf("opening_hours compiler failure: %v", r)}
		}
	}()
	s, err := co.compile(spec)
	return compiled{schedule: s, err: err}
}
