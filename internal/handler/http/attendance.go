package http

import (
	"net/http"

	"github.com/cmlabs-hris/presence-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/presence-engine/internal/handler/http/response"
)

type AttendanceHandler interface {
	// ListRange handles GET /attendance (admin)
	ListRange(w http.ResponseWriter, r *http.Request)
	// ListMine handles GET /attendance/me
	ListMine(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{attendanceService: attendanceService}
}

func rangeFilterFromQuery(r *http.Request) attendance.RangeFilter {
	q := r.URL.Query()
	return attendance.RangeFilter{
		EmployeeID: optionalQuery(r, "employee_id"),
		StartDate:  q.Get("start_date"),
		EndDate:    q.Get("end_date"),
		Status:     optionalQuery(r, "status"),
	}
}

func (h *attendanceHandlerImpl) ListRange(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}

	result, err := h.attendanceService.ListRange(r.Context(), caller, rangeFilterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result, &response.Meta{TotalItems: result.TotalCount})
}

func (h *attendanceHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}

	filter := rangeFilterFromQuery(r)
	filter.EmployeeID = nil
	result, err := h.attendanceService.ListMine(r.Context(), caller, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result, &response.Meta{TotalItems: result.TotalCount})
}
