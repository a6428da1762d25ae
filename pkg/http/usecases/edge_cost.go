package usecases

import (
	"context"
	"time"

	"github.com/lintang-b-s/Accessx/pkg/concurrent"
	"github.com/lintang-b-s/Accessx/pkg/costfunction"
	da "github.com/lintang-b-s/Accessx/pkg/datastructure"
	"github.com/lintang-b-s/Accessx/pkg/util"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

type EdgeJob = da.Edge

type EdgeCostResult struct {
	From, To da.Index
	Class    costfunction.PathClass
	Cost     costfunction.EdgeCost
}

type EdgeCostService struct {
	log        *zap.Logger
	oracle     OpeningHoursOracle
	opts       costfunction.CostOptions
	numWorkers int
	maxEdges   int
}

func NewEdgeCostService(log *zap.Logger, oracle OpeningHoursOracle, opts costfunction.CostOptions,
	numWorkers, maxEdges int) *EdgeCostService {
	return &EdgeCostService{
		log:        log,
		oracle:     oracle,
		opts:       opts,
		numWorkers: numWorkers,
		maxEdges:   maxEdges,
	}
}

/*
ComputeEdgeCosts. build one pedestrian cost function from prefs and evaluate every edge with it. results keep the
order of edges.
*/
func (es *EdgeCostService) ComputeEdgeCosts(ctx context.Context, prefs costfunction.Preferences,
	edges []EdgeJob) (time.Time, []EdgeCostResult, error) {
	if es.maxEdges > 0 && len(edges) > es.maxEdges {
		return time.Time{}, nil, util.WrapErrorf(nil, util.ErrBadParamInput, "too many edges: %d, maximum is %d",
			len(edges), es.maxEdges)
	}

	cf, err := costfunction.NewPedestrianCostFunction(prefs, es.opts, es.oracle, es.log)
	if err != nil {
		return time.Time{}, nil, err
	}

	results, err := concurrent.MapOrdered(ctx, es.numWorkers, edges, func(ctx context.Context, job EdgeJob) EdgeCostResult {
		res := EdgeCostResult{From: job.From, To: job.To, Cost: cf.GetCost(job.From, job.To, job.Attributes)}
		if job.Attributes != nil {
			res.Class = costfunction.ClassifyEdge(job.Attributes)
		}
		return res
	})
	if err != nil {
		return time.Time{}, nil, util.WrapErrorf(err, util.ErrInternalServerError, "edge cost evaluation aborted")
	}

	excluded := lo.CountBy(results, func(r EdgeCostResult) bool {
		return r.Cost.IsExcluded()
	})
	es.log.Debug("edge costs computed", zap.Int("edges", len(edges)), zap.Int("excluded", excluded),
		zap.Time("reference_time", cf.ReferenceTime()))

	return cf.ReferenceTime(), results, nil
}
