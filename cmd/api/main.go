package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/cmlabs-hris/presence-engine/internal/config"
	appHTTP "github.com/cmlabs-hris/presence-engine/internal/handler/http"
	"github.com/cmlabs-hris/presence-engine/internal/pkg/cron"
	"github.com/cmlabs-hris/presence-engine/internal/pkg/database"
	"github.com/cmlabs-hris/presence-engine/internal/pkg/jwt"
	"github.com/cmlabs-hris/presence-engine/internal/repository/postgresql"
	analyticsService "github.com/cmlabs-hris/presence-engine/internal/service/analytics"
	attendanceService "github.com/cmlabs-hris/presence-engine/internal/service/attendance"
	dashboardService "github.com/cmlabs-hris/presence-engine/internal/service/dashboard"
	leaveService "github.com/cmlabs-hris/presence-engine/internal/service/leave"
	reportService "github.com/cmlabs-hris/presence-engine/internal/service/report"
	"github.com/go-chi/httplog/v3"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		fmt.Println("Server error:", err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.App.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "production")
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "presence-engine"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	logger := newLogger(cfg)
	slog.SetDefault(logger)

	policy, err := config.LoadPolicy(cfg.App.PolicyFile)
	if err != nil {
		return fmt.Errorf("error loading policy: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: int32(cfg.Database.MaxConns),
		MinConns: int32(cfg.Database.MinConns),
	})
	if err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}
	defer db.Close()

	if err := postgresql.Migrate(ctx, db); err != nil {
		return fmt.Errorf("error migrating database: %w", err)
	}

	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)

	JWTService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	if err != nil {
		return err
	}

	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, attendanceService.Options{
		Lateness:      policy.Lateness(),
		MaxWindowDays: policy.MaxWindowDays,
		Logger:        logger,
	})
	leaveSvc := leaveService.NewLeaveService(leaveRequestRepo, leaveService.Options{
		Policy:   policy.Leave(),
		Location: policy.Location(),
		Logger:   logger,
	})
	reportSvc := reportService.NewReportService(attendanceRepo, leaveRequestRepo, reportService.Options{
		Lateness:      policy.Lateness(),
		Heatmap:       policy.Heatmap(),
		RecentLimit:   policy.RecentLimit,
		MaxWindowDays: policy.MaxWindowDays,
		Logger:        logger,
	})
	analyticsSvc := analyticsService.NewAnalyticsService(employeeRepo, attendanceRepo, leaveRequestRepo, analyticsService.Options{
		Lateness: policy.Lateness(),
		Fleet: analyticsService.FleetPolicy{
			Scoring:     policy.Scoring(),
			WorkWeek:    policy.WorkWeek(),
			TrendMonths: policy.TrendMonths,
			RankingDays: policy.RankingWindowDays,
		},
		Logger: logger,
	})
	dashboardSvc := dashboardService.NewDashboardService(employeeRepo, attendanceRepo, leaveRequestRepo, dashboardService.Options{
		Lateness: policy.Lateness(),
		WorkWeek: policy.WorkWeek(),
		Logger:   logger,
	})

	router := appHTTP.NewRouter(JWTService, appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(JWTService),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Leave:      appHTTP.NewLeaveHandler(leaveSvc),
		Report:     appHTTP.NewReportHandler(reportSvc),
		Analytics:  appHTTP.NewAnalyticsHandler(analyticsSvc),
		Dashboard:  appHTTP.NewDashboardHandler(dashboardSvc),
	}, appHTTP.RouterOptions{
		Logger:         logger,
		AllowedOrigins: cfg.App.AllowedOrigins,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	scheduler := cron.NewScheduler(logger)
	cron.RegisterTokenJobs(scheduler, JWTService, 15*time.Minute)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("server running", slog.String("addr", server.Addr),
			slog.String("working_weekdays", strings.Join(policy.WorkingWeekdays, ",")))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info("shutting down server")
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
