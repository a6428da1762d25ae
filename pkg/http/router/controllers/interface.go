package controllers

import (
	"context"
	"time"

	"github.com/lintang-b-s/Accessx/pkg/costfunction"
	"github.com/lintang-b-s/Accessx/pkg/http/usecases"
)

type EdgeCostService interface {
	ComputeEdgeCosts(ctx context.Context, prefs costfunction.Preferences,
		edges []usecases.EdgeJob) (time.Time, []usecases.EdgeCostResult, error)
}
