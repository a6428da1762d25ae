package openinghours

import (
	"errors"
	"time"
)

var (
	// ErrInvalidSpec. opening_hours value that cannot be understood.
	ErrInvalidSpec = errors.New("invalid opening_hours specification")
	// ErrNoData. no opening_hours value to evaluate.
	ErrNoData = errors.New("no opening_hours data")
)

// Oracle answers whether something tagged with an opening_hours specification is open at a point in time.
type Oracle interface {
	IsOpen(spec string, at time.Time) (bool, error)
}

type Availability uint8

const (
	Unknown Availability = iota // treated as open
	Open
	Closed
)

func (a Availability) String() string {
	switch a {
	case Open:
		return "open"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}

/*
Resolve. collapse the oracle answer into an Availability.

missing or unparseable data fails open (Unknown). any other oracle failure fails closed, and the error is returned
alongside Closed so the caller can report it.
*/
func Resolve(oracle Oracle, spec string, at time.Time) (Availability, error) {
	if oracle == nil || spec == "" {
		return Unknown, nil
	}
	open, err := oracle.IsOpen(spec, at)
	if err != nil {
		if errors.Is(err, ErrInvalidSpec) || errors.Is(err, ErrNoData) {
			return Unknown, nil
		}
		return Closed, err
	}
	if open {
		return Open, nil
	}
	return Closed, nil
}
