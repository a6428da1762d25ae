package openinghours

import (
	"fmt"
	"time"

	"github.com/puzpuzpuz/xsync/v3"
)

type resolved struct {
	availability Availability
	err          error
}

/*
Snapshot. answers of one Oracle frozen at one instant, memoized per specification. lives as long as the request that
created it, so its memo is bounded by the number of edges of that request. safe for concurrent use.
*/
type Snapshot struct {
	oracle Oracle
	at     time.Time
	memo   *xsync.MapOf[string, resolved]
}

func NewSnapshot(oracle Oracle, at time.Time) *Snapshot {
	return &Snapshot{
		oracle: oracle,
		at:     at,
		memo:   xsync.NewMapOf[string, resolved](),
	}
}

// Resolve. same as the package level Resolve at the snapshot instant. a panicking oracle resolves to Closed.
func (s *Snapshot) Resolve(spec string) (Availability, error) {
	if s.oracle == nil || spec == "" {
		return Unknown, nil
	}
	r, _ := s.memo.LoadOrCompute(spec, func() resolved {
		return s.safeResolve(spec)
	})
	return r.availability, r.err
}

func (s *Snapshot) At() time.Time {
	return s.at
}

func (s *Snapshot) Size() int {
	return s.memo.Size()
}

func (s *Snapshot) safeResolve(spec string) (r resolved) {
	defer func() {
		if p := recover(); p != nil {
			r = resolved{availability: Closed, err: fmt.Errorf("opening_hours oracle failure: %v", p)}
		}
	}()
	availability, err := Resolve(s.oracle, spec, s.at)
	return resolved{availability: availability, err: err}
}
