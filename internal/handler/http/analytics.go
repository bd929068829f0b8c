package http

import (
	"net/http"

	"github.com/cmlabs-hris/presence-engine/internal/domain/analytics"
	"github.com/cmlabs-hris/presence-engine/internal/handler/http/response"
)

type AnalyticsHandler interface {
	// GetAnalytics handles GET /analytics (admin)
	GetAnalytics(w http.ResponseWriter, r *http.Request)
}

type analyticsHandlerImpl struct {
	analyticsService analytics.AnalyticsService
}

func NewAnalyticsHandler(analyticsService analytics.AnalyticsService) AnalyticsHandler {
	return &analyticsHandlerImpl{analyticsService: analyticsService}
}

func (h *analyticsHandlerImpl) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}

	result, err := h.analyticsService.Analytics(r.Context(), caller)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
