package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/julienschmidt/httprouter"
	helper "github.com/lintang-b-s/Accessx/pkg/http/router/routerhelper"
	"go.uber.org/zap"
)

type edgeCostAPI struct {
	edgeCostService EdgeCostService
	log             *zap.Logger
	validate        *validator.Validate
	trans           ut.Translator
	maxBodyBytes    int64
}

// New. maxBodyBytes <= 0 means no request body limit.
func New(edgeCostService EdgeCostService, log *zap.Logger, maxBodyBytes int64) *edgeCostAPI {
	validate := validator.New()
	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	_ = enTranslations.RegisterDefaultTranslations(validate, trans)

	return &edgeCostAPI{
		edgeCostService: edgeCostService,
		log:             log,
		validate:        validate,
		trans:           trans,
		maxBodyBytes:    maxBodyBytes,
	}
}

func (api *edgeCostAPI) Routes(group *helper.RouteGroup) {
	group.POST("/edgeCosts", api.edgeCosts)
}

// edgeCosts. cost of every edge in the request body under one set of mobility preferences.
func (api *edgeCostAPI) edgeCosts(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var (
		request edgeCostRequest
		err     error
	)
	if api.maxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, api.maxBodyBytes)
	}
	err = json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			api.RequestTooLargeResponse(w, r, maxBytesErr.Limit)
			return
		}
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := r.Body.Close(); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}

	if err := api.validate.Struct(request); err != nil {
		vv := translateError(err, api.trans)
		vvString := []string{}
		for _, v := range vv {
			vvString = append(vvString, v.Error())
		}
		api.BadRequestResponse(w, r, fmt.Errorf("validation error: %v", vvString))
		return
	}

	referenceTime, results, err := api.edgeCostService.ComputeEdgeCosts(r.Context(), request.Preferences.toPreferences(),
		request.toEdgeJobs())
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewEdgeCostResponse(referenceTime, results)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}
