package report

import (
	"context"
	"log/slog"

	"github.com/cmlabs-hris/presence-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/presence-engine/internal/domain/auth"
	"github.com/cmlabs-hris/presence-engine/internal/domain/report"
	"github.com/cmlabs-hris/presence-engine/internal/pkg/dateutil"
	"github.com/cmlabs-hris/presence-engine/internal/pkg/normalizer"
)

// Aggregate implements report.ReportService. Records outside the window and
// its preceding equal-length window are ignored.
func (s *ReportServiceImpl) Aggregate(ctx context.Context, caller auth.Caller, req report.AggregateRequest) (report.AggregateResponse, error) {
	if err := caller.RequireAdmin(); err != nil {
		return report.AggregateResponse{}, err
	}
	window, err := report.ParseWindow(req.StartDate, req.EndDate)
	if err != nil {
		return report.AggregateResponse{}, err
	}
	if err := window.Limit(s.opts.MaxWindowDays); err != nil {
		return report.AggregateResponse{}, err
	}

	raws := make([]normalizer.Raw, len(req.Records))
	for i, r := range req.Records {
		raws[i] = normalizer.Raw(r)
	}
	records := attendance.NormalizeAll(raws, s.opts.Lateness)

	trend, err := DailyTrend(records, window)
	if err != nil {
		return report.AggregateResponse{}, err
	}
	summary, err := Summarize(records, window, s.opts.Lateness.Location)
	if err != nil {
		return report.AggregateResponse{}, err
	}
	heatmap, err := BuildHeatmap(records, window)
	if err != nil {
		return report.AggregateResponse{}, err
	}
	anonymous := func(c report.HeatmapCell) bool { return c.EmployeeID == "" }
	heatmap = PromoteUnknown(heatmap, s.today(), s.opts.Heatmap, anonymous)

	comparisons, err := CompareRecords(records, records, window, window.Previous())
	if err != nil {
		return report.AggregateResponse{}, err
	}

	s.opts.Logger.DebugContext(ctx, "records aggregated",
		slog.String("window", window.String()),
		slog.Int("records", len(records)),
	)

	return report.AggregateResponse{
		StartDate:   dateutil.Format(window.Start),
		EndDate:     dateutil.Format(window.End),
		Trend:       trend,
		Summary:     summary,
		Heatmap:     heatmap,
		Comparisons: comparisons,
	}, nil
}
