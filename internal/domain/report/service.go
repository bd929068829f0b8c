package report

import (
	"context"

	"github.com/cmlabs-hris/presence-engine/internal/domain/auth"
)

// ReportService defines the interface for report generation
type ReportService interface {
	// EmployeeReport builds the monthly report for the caller, or for any employee when the caller is an admin
	EmployeeReport(ctx context.Context, caller auth.Caller, req EmployeeReportRequest) (EmployeeReportResponse, error)

	// Aggregate normalizes inbound records and returns trend, summary, per-employee heatmap and comparison with the preceding window (admin)
	Aggregate(ctx context.Context, caller auth.Caller, req AggregateRequest) (AggregateResponse, error)
}
