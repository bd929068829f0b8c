package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/presence-engine/internal/domain/report"
	"github.com/cmlabs-hris/presence-engine/internal/handler/http/response"
)

type ReportHandler interface {
	// EmployeeReport handles GET /reports/employee
	EmployeeReport(w http.ResponseWriter, r *http.Request)
	// Aggregate handles POST /reports/aggregate (admin)
	Aggregate(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

func (h *reportHandlerImpl) EmployeeReport(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}

	req := report.EmployeeReportRequest{
		EmployeeID: optionalQuery(r, "employee_id"),
		Month:      r.URL.Query().Get("month"),
	}

	result, err := h.reportService.EmployeeReport(r.Context(), caller, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *reportHandlerImpl) Aggregate(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}

	var req report.AggregateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Aggregate decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.reportService.Aggregate(r.Context(), caller, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
