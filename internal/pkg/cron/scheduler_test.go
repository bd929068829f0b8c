package cron

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cmlabs-hris/presence-engine/internal/domain/auth"
	"github.com/cmlabs-hris/presence-engine/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestScheduler_RunOnce(t *testing.T) {
	s := NewScheduler(quietLogger())
	var calls atomic.Int32
	s.AddJob("ok", time.Hour, func(context.Context) error { calls.Add(1); return nil })
	s.AddJob("failing", time.Hour, func(context.Context) error { calls.Add(1); return errors.New("boom") })

	s.RunOnce(context.Background())

	assert.Equal(t, int32(2), calls.Load())
}

func TestScheduler_StartStop(t *testing.T) {
	s := NewScheduler(quietLogger())
	ran := make(chan struct{}, 1)
	s.AddJob("tick", 5*time.Millisecond, func(context.Context) error {
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil
	})

	s.Start(context.Background())
	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not run")
	}
	s.Stop()
}

func TestRegisterTokenJobs(t *testing.T) {
	svc, err := jwt.NewJWTService("secret", "15m")
	require.NoError(t, err)
	token, _, err := svc.GenerateAccessToken(auth.Caller{EmployeeID: "e1"})
	require.NoError(t, err)
	svc.RevokeToken(token, time.Now().Add(-time.Minute).Unix())

	s := NewScheduler(quietLogger())
	RegisterTokenJobs(s, svc, time.Hour)
	s.RunOnce(context.Background())

	assert.False(t, svc.IsTokenRevoked(token))
}
