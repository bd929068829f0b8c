package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/cmlabs-hris/presence-engine/internal/domain/analytics"
	"github.com/cmlabs-hris/presence-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/presence-engine/internal/domain/leave"
	"github.com/cmlabs-hris/presence-engine/internal/domain/report"
	"github.com/cmlabs-hris/presence-engine/internal/pkg/dateutil"
	"github.com/cmlabs-hris/presence-engine/internal/pkg/validator"
	"github.com/spf13/viper"
)

// Policy is the tunable behaviour of the engine. Components receive the
// converted values and never read configuration themselves.
type Policy struct {
	LateCutoff             string   `mapstructure:"late_cutoff"`
	Timezone               string   `mapstructure:"timezone" validate:"required"`
	MinAdvanceDays         int      `mapstructure:"min_advance_days" validate:"gte=0,lte=365"`
	LeaveCategories        []string `mapstructure:"leave_categories" validate:"min=1,dive,required"`
	WorkingWeekdays        []string `mapstructure:"working_weekdays" validate:"min=1,dive,oneof=mon tue wed thu fri sat sun"`
	PromoteUnknownToAbsent bool     `mapstructure:"promote_unknown_to_absent"`
	LatePenalty            float64  `mapstructure:"late_penalty" validate:"gte=0"`
	AbsencePenalty         float64  `mapstructure:"absence_penalty" validate:"gte=0"`
	LeavePenalty           float64  `mapstructure:"leave_penalty" validate:"gte=0"`
	RankingWindowDays      int      `mapstructure:"ranking_window_days" validate:"gte=1,lte=366"`
	TrendMonths            int      `mapstructure:"trend_months" validate:"gte=1,lte=36"`
	RecentLimit            int      `mapstructure:"recent_limit" validate:"gte=1,lte=100"`
	MaxReasonLength        int      `mapstructure:"max_reason_length" validate:"gte=1"`
	MaxWindowDays          int      `mapstructure:"max_window_days" validate:"gte=1,lte=3660"`

	cutoff   *time.Duration
	location *time.Location
	workWeek dateutil.WorkWeek
}

func setPolicyDefaults(v *viper.Viper) {
	v.SetDefault("late_cutoff", "")
	v.SetDefault("timezone", "UTC")
	v.SetDefault("min_advance_days", 3)
	v.SetDefault("leave_categories", []string{"sick", "vacation", "maternity", "emergency"})
	v.SetDefault("working_weekdays", []string{"mon", "tue", "wed", "thu", "fri"})
	v.SetDefault("promote_unknown_to_absent", true)
	v.SetDefault("late_penalty", 2)
	v.SetDefault("absence_penalty", 5)
	v.SetDefault("leave_penalty", 0)
	v.SetDefault("ranking_window_days", 90)
	v.SetDefault("trend_months", 12)
	v.SetDefault("recent_limit", 14)
	v.SetDefault("max_reason_length", 500)
	v.SetDefault("max_window_days", 366)
}

// DefaultPolicy returns the built-in policy, ignoring files and environment.
func DefaultPolicy() *Policy {
	v := viper.New()
	setPolicyDefaults(v)
	p, err := decodePolicy(v)
	if err != nil {
		panic(fmt.Sprintf("default policy is invalid: %v", err))
	}
	return p
}

// LoadPolicy reads the policy from an optional YAML file, then POLICY_*
// environment variables. An empty path skips the file.
func LoadPolicy(path string) (*Policy, error) {
	v := viper.New()
	setPolicyDefaults(v)

	v.SetEnvPrefix("POLICY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read policy file: %w", err)
		}
	}
	return decodePolicy(v)
}

func decodePolicy(v *viper.Viper) (*Policy, error) {
	var p Policy
	if err := v.Unmarshal(&p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal policy: %w", err)
	}
	// Lists arrive as one comma-separated string from the environment.
	p.LeaveCategories = splitList(p.LeaveCategories)
	p.WorkingWeekdays = splitList(p.WorkingWeekdays)

	if err := p.resolve(); err != nil {
		return nil, err
	}
	return &p, nil
}

func (p *Policy) resolve() error {
	for i, d := range p.WorkingWeekdays {
		p.WorkingWeekdays[i] = strings.ToLower(d)
	}
	if err := validator.Struct(p); err != nil {
		return fmt.Errorf("invalid policy: %w", err)
	}

	loc, err := time.LoadLocation(p.Timezone)
	if err != nil {
		return fmt.Errorf("invalid policy: timezone %q: %w", p.Timezone, err)
	}
	p.location = loc

	if p.LateCutoff != "" {
		d, err := dateutil.ParseClock(p.LateCutoff)
		if err != nil {
			return fmt.Errorf("invalid policy: late_cutoff: %w", err)
		}
		if d >= 24*time.Hour {
			return errors.New("invalid policy: late_cutoff must be before 24:00")
		}
		p.cutoff = &d
	}

	ww, err := dateutil.ParseWorkWeek(p.WorkingWeekdays)
	if err != nil {
		return fmt.Errorf("invalid policy: working_weekdays: %w", err)
	}
	p.workWeek = ww
	return nil
}

func (p *Policy) Location() *time.Location {
	return p.location
}

func (p *Policy) WorkWeek() dateutil.WorkWeek {
	return p.workWeek
}

func (p *Policy) Lateness() attendance.LatenessPolicy {
	return attendance.LatenessPolicy{Cutoff: p.cutoff, Location: p.location}
}

func (p *Policy) Leave() leave.Policy {
	categories := make([]leave.Category, len(p.LeaveCategories))
	for i, c := range p.LeaveCategories {
		categories[i] = leave.Category(strings.ToLower(c))
	}
	return leave.Policy{
		MinAdvanceDays:  p.MinAdvanceDays,
		Categories:      categories,
		MaxReasonLength: p.MaxReasonLength,
	}
}

func (p *Policy) Heatmap() report.HeatmapPolicy {
	return report.HeatmapPolicy{PromoteUnknown: p.PromoteUnknownToAbsent, WorkWeek: p.workWeek}
}

func (p *Policy) Scoring() analytics.ScoringPolicy {
	return analytics.ScoringPolicy{
		LatePenalty:    p.LatePenalty,
		AbsencePenalty: p.AbsencePenalty,
		LeavePenalty:   p.LeavePenalty,
	}
}

func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
