package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cmlabs-hris/presence-engine/internal/domain/analytics"
	"github.com/cmlabs-hris/presence-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/presence-engine/internal/domain/auth"
	"github.com/cmlabs-hris/presence-engine/internal/domain/dashboard"
	"github.com/cmlabs-hris/presence-engine/internal/domain/leave"
	"github.com/cmlabs-hris/presence-engine/internal/domain/report"
	"github.com/cmlabs-hris/presence-engine/internal/handler/http/response"
	"github.com/cmlabs-hris/presence-engine/internal/pkg/jwt"
	"github.com/cmlabs-hris/presence-engine/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAttendanceService struct {
	gotCaller auth.Caller
	gotFilter attendance.RangeFilter
}

func (f *fakeAttendanceService) ListRange(_ context.Context, caller auth.Caller, filter attendance.RangeFilter) (attendance.ListAttendanceResponse, error) {
	f.gotCaller, f.gotFilter = caller, filter
	if filter.StartDate > filter.EndDate {
		return attendance.ListAttendanceResponse{}, report.ErrInvalidDateRange
	}
	return attendance.ListAttendanceResponse{StartDate: filter.StartDate, EndDate: filter.EndDate, TotalCount: 0, Attendances: []attendance.AttendanceResponse{}}, nil
}

func (f *fakeAttendanceService) ListMine(ctx context.Context, caller auth.Caller, filter attendance.RangeFilter) (attendance.ListAttendanceResponse, error) {
	return f.ListRange(ctx, caller, filter)
}

type fakeLeaveService struct {
	submitted leave.SubmitLeaveRequest
	decided   string
}

func (f *fakeLeaveService) Submit(_ context.Context, caller auth.Caller, req leave.SubmitLeaveRequest) (leave.LeaveRequestResponse, error) {
	f.submitted = req
	if req.LeaveType == "" {
		return leave.LeaveRequestResponse{}, validator.ValidationErrors{{Field: "leaveType", Rule: "required", Message: "leaveType is required"}}
	}
	return leave.LeaveRequestResponse{ID: "l1", EmployeeID: caller.EmployeeID, Status: leave.LeaveRequestStatusPending}, nil
}

func (f *fakeLeaveService) ListMine(context.Context, auth.Caller) (leave.ListLeaveRequestResponse, error) {
	return leave.ListLeaveRequestResponse{LeaveRequests: []leave.LeaveRequestResponse{}}, nil
}

func (f *fakeLeaveService) ListPending(context.Context, auth.Caller) (leave.ListLeaveRequestResponse, error) {
	return leave.ListLeaveRequestResponse{LeaveRequests: []leave.LeaveRequestResponse{}}, nil
}

func (f *fakeLeaveService) Approve(_ context.Context, _ auth.Caller, id string) (leave.LeaveRequestResponse, error) {
	f.decided = id
	if id == "done" {
		return leave.LeaveRequestResponse{}, leave.ErrLeaveRequestAlreadyProcessed
	}
	return leave.LeaveRequestResponse{ID: id, Status: leave.LeaveRequestStatusApproved}, nil
}

func (f *fakeLeaveService) Deny(_ context.Context, _ auth.Caller, id string) (leave.LeaveRequestResponse, error) {
	f.decided = id
	return leave.LeaveRequestResponse{}, leave.ErrLeaveRequestNotFound
}

type fakeReportService struct{}

func (fakeReportService) EmployeeReport(_ context.Context, _ auth.Caller, req report.EmployeeReportRequest) (report.EmployeeReportResponse, error) {
	if req.Month == "bad" {
		return report.EmployeeReportResponse{}, report.ErrInvalidMonth
	}
	return report.EmployeeReportResponse{MonthSummary: report.MonthSummary{Month: req.Month}}, nil
}

func (fakeReportService) Aggregate(context.Context, auth.Caller, report.AggregateRequest) (report.AggregateResponse, error) {
	return report.AggregateResponse{StartDate: "2025-03-01"}, nil
}

type fakeAnalyticsService struct{}

func (fakeAnalyticsService) Analytics(context.Context, auth.Caller) (analytics.AnalyticsResponse, error) {
	return analytics.AnalyticsResponse{Score: 74.5}, nil
}

type fakeDashboardService struct{}

func (fakeDashboardService) Summary(context.Context, auth.Caller) (dashboard.DashboardResponse, error) {
	return dashboard.DashboardResponse{Date: "2025-03-12"}, nil
}

type testServer struct {
	handler    http.Handler
	jwt        jwt.Service
	attendance *fakeAttendanceService
	leave      *fakeLeaveService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	jwtService, err := jwt.NewJWTService("test-secret", "15m")
	require.NoError(t, err)

	ts := &testServer{jwt: jwtService, attendance: &fakeAttendanceService{}, leave: &fakeLeaveService{}}
	ts.handler = NewRouter(jwtService, Handlers{
		Auth:       NewAuthHandler(jwtService),
		Attendance: NewAttendanceHandler(ts.attendance),
		Leave:      NewLeaveHandler(ts.leave),
		Report:     NewReportHandler(fakeReportService{}),
		Analytics:  NewAnalyticsHandler(fakeAnalyticsService{}),
		Dashboard:  NewDashboardHandler(fakeDashboardService{}),
	}, RouterOptions{
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		AllowedOrigins: []string{"http://localhost:3000"},
	})
	return ts
}

func (ts *testServer) token(t *testing.T, role auth.Role) string {
	t.Helper()
	token, _, err := ts.jwt.GenerateAccessToken(auth.Caller{EmployeeID: "e1", Name: "Ana", Role: role})
	require.NoError(t, err)
	return token
}

func (ts *testServer) do(t *testing.T, method, path, token, body string) (*httptest.ResponseRecorder, response.Response) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)

	var resp response.Response
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}
	return rec, resp
}

func TestRouter_RequiresToken(t *testing.T) {
	ts := newTestServer(t)

	rec, _ := ts.do(t, http.MethodGet, "/api/v1/attendance/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = ts.do(t, http.MethodGet, "/api/v1/attendance/me", "not-a-token", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = ts.do(t, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_AdminOnly(t *testing.T) {
	ts := newTestServer(t)
	employeeToken := ts.token(t, auth.RoleEmployee)
	adminToken := ts.token(t, auth.RoleAdmin)

	for _, path := range []string{"/api/v1/analytics", "/api/v1/dashboard", "/api/v1/leave-requests/pending", "/api/v1/attendance?start_date=2025-03-01&end_date=2025-03-31"} {
		rec, resp := ts.do(t, http.MethodGet, path, employeeToken, "")
		assert.Equal(t, http.StatusForbidden, rec.Code, path)
		require.NotNil(t, resp.Error, path)
		assert.Equal(t, "FORBIDDEN", resp.Error.Code)

		rec, resp = ts.do(t, http.MethodGet, path, adminToken, "")
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.True(t, resp.Success, path)
	}
}

func TestAttendanceHandler_QueryParams(t *testing.T) {
	ts := newTestServer(t)
	adminToken := ts.token(t, auth.RoleAdmin)

	rec, _ := ts.do(t, http.MethodGet, "/api/v1/attendance?start_date=2025-03-01&end_date=2025-03-31&employee_id=e7&status=late", adminToken, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, ts.attendance.gotFilter.EmployeeID)
	assert.Equal(t, "e7", *ts.attendance.gotFilter.EmployeeID)
	require.NotNil(t, ts.attendance.gotFilter.Status)
	assert.Equal(t, "late", *ts.attendance.gotFilter.Status)
	assert.Equal(t, "e1", ts.attendance.gotCaller.EmployeeID)

	rec, _ = ts.do(t, http.MethodGet, "/api/v1/attendance/me?start_date=2025-03-31&end_date=2025-03-01&employee_id=e7", adminToken, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, ts.attendance.gotFilter.EmployeeID)
}

func TestLeaveHandler_Flow(t *testing.T) {
	ts := newTestServer(t)
	employeeToken := ts.token(t, auth.RoleEmployee)
	adminToken := ts.token(t, auth.RoleAdmin)

	rec, resp := ts.do(t, http.MethodPost, "/api/v1/leave-requests", employeeToken, `{"leave_type":"sick","start_date":"2025-03-13","end_date":"2025-03-14"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, resp.Success)
	assert.Equal(t, "sick", ts.leave.submitted.LeaveType)
	assert.Equal(t, "2025-03-13", ts.leave.submitted.StartDate)

	rec, resp = ts.do(t, http.MethodPost, "/api/v1/leave-requests", employeeToken, `{"startDate":"2025-03-13"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "leaveType is required", resp.Error.Details["leaveType"])

	rec, _ = ts.do(t, http.MethodPost, "/api/v1/leave-requests", employeeToken, `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = ts.do(t, http.MethodPost, "/api/v1/leave-requests/l9/approve", employeeToken, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = ts.do(t, http.MethodPost, "/api/v1/leave-requests/l9/approve", adminToken, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "l9", ts.leave.decided)

	rec, _ = ts.do(t, http.MethodPost, "/api/v1/leave-requests/done/approve", adminToken, "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, _ = ts.do(t, http.MethodPost, "/api/v1/leave-requests/missing/deny", adminToken, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReportHandler(t *testing.T) {
	ts := newTestServer(t)
	employeeToken := ts.token(t, auth.RoleEmployee)

	rec, resp := ts.do(t, http.MethodGet, "/api/v1/reports/employee?month=2025-03", employeeToken, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Contains(t, data, "kpis")

	rec, _ = ts.do(t, http.MethodGet, "/api/v1/reports/employee?month=bad", employeeToken, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = ts.do(t, http.MethodPost, "/api/v1/reports/aggregate", employeeToken, `{"records":[]}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = ts.do(t, http.MethodPost, "/api/v1/reports/aggregate", ts.token(t, auth.RoleAdmin), `{"startDate":"2025-03-01","endDate":"2025-03-02","records":[]}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthHandler_MeAndLogout(t *testing.T) {
	ts := newTestServer(t)
	token := ts.token(t, auth.RoleEmployee)

	rec, resp := ts.do(t, http.MethodGet, "/api/v1/auth/me", token, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "e1", resp.Data.(map[string]any)["employeeId"])

	rec, _ = ts.do(t, http.MethodPost, "/api/v1/auth/logout", token, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = ts.do(t, http.MethodGet, "/api/v1/auth/me", token, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
