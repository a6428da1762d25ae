package usecases

import (
	"github.com/lintang-b-s/Accessx/pkg/openinghours"
)

type OpeningHoursOracle interface {
	openinghours.Oracle
}
