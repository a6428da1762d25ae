package controllers

import (
	"time"

	"github.com/lintang-b-s/Accessx/pkg"
	"github.com/lintang-b-s/Accessx/pkg/costfunction"
	da "github.com/lintang-b-s/Accessx/pkg/datastructure"
	"github.com/lintang-b-s/Accessx/pkg/http/usecases"
	"github.com/lintang-b-s/Accessx/pkg/util"
	"github.com/samber/lo"
)

type preferencesRequest struct {
	Profile                  string   `json:"profile" validate:"omitempty,oneof=walk wheelchair powered"`
	BaseSpeed                *float64 `json:"baseSpeed" validate:"omitempty,gt=0"`
	MaxDownhillGrade         *float64 `json:"maxDownhillGrade" validate:"omitempty,gte=0"`
	MaxUphillGrade           *float64 `json:"maxUphillGrade" validate:"omitempty,gte=0"`
	AvoidCurbsWithoutRamps   *bool    `json:"avoidCurbsWithoutRamps"`
	StreetAvoidanceWeight    *float64 `json:"streetAvoidanceWeight" validate:"omitempty,gte=0"`
	ReferenceTimeMillisEpoch *int64   `json:"referenceTimeMillisEpoch"`
}

func (p preferencesRequest) toPreferences() costfunction.Preferences {
	prefs := costfunction.DefaultPreferences(pkg.GetProfile(p.Profile))
	if p.BaseSpeed != nil {
		prefs.BaseSpeed = *p.BaseSpeed
	}
	if p.MaxDownhillGrade != nil {
		prefs.MaxDownhillGrade = *p.MaxDownhillGrade
	}
	if p.MaxUphillGrade != nil {
		prefs.MaxUphillGrade = *p.MaxUphillGrade
	}
	if p.AvoidCurbsWithoutRamps != nil {
		prefs.AvoidCurbsWithoutRamps = *p.AvoidCurbsWithoutRamps
	}
	if p.StreetAvoidanceWeight != nil {
		prefs.StreetAvoidanceWeight = *p.StreetAvoidanceWeight
	}
	if p.ReferenceTimeMillisEpoch != nil {
		prefs = prefs.WithReferenceTime(*p.ReferenceTimeMillisEpoch)
	}
	return prefs
}

type edgeRequest struct {
	From       uint32         `json:"from"`
	To         uint32         `json:"to"`
	Attributes map[string]any `json:"attributes" validate:"required"`
}

type edgeCostRequest struct {
	Preferences preferencesRequest `json:"preferences"`
	Edges       []edgeRequest      `json:"edges" validate:"required,min=1,dive"`
}

func (r edgeCostRequest) toEdgeJobs() []usecases.EdgeJob {
	return lo.Map(r.Edges, func(e edgeRequest, _ int) usecases.EdgeJob {
		return usecases.EdgeJob{
			From:       da.Index(e.From),
			To:         da.Index(e.To),
			Attributes: da.EdgeAttributesFromMap(e.Attributes),
		}
	})
}

type edgeCostItem struct {
	From     uint32   `json:"from"`
	To       uint32   `json:"to"`
	Class    string   `json:"class"`
	Excluded bool     `json:"excluded"`
	Cost     *float64 `json:"cost,omitempty"`
}

type edgeCostResponse struct {
	ReferenceTime string         `json:"reference_time"`
	Costs         []edgeCostItem `json:"costs"`
}

func NewEdgeCostResponse(referenceTime time.Time, results []usecases.EdgeCostResult) edgeCostResponse {
	return edgeCostResponse{
		ReferenceTime: referenceTime.Format(time.RFC3339),
		Costs: lo.Map(results, func(r usecases.EdgeCostResult, _ int) edgeCostItem {
			item := edgeCostItem{
				From:     uint32(r.From),
				To:       uint32(r.To),
				Class:    r.Class.String(),
				Excluded: r.Cost.IsExcluded(),
			}
			if v, ok := r.Cost.Value(); ok {
				v = util.RoundFloat(v, 6)
				item.Cost = &v
			}
			return item
		}),
	}
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
