package attendance

import (
	"time"

	"github.com/cmlabs-hris/presence-engine/internal/pkg/dateutil"
)

// LatenessPolicy decides when a time-in counts as late. A nil Cutoff disables
// lateness derivation; explicit Late statuses from the source still stand.
type LatenessPolicy struct {
	// Cutoff is the latest on-time clock offset from local midnight.
	Cutoff   *time.Duration
	Location *time.Location
}

func (p LatenessPolicy) location() *time.Location {
	if p.Location == nil {
		return time.UTC
	}
	return p.Location
}

// IsLate reports whether timeIn falls after the cutoff in the policy's zone.
func (p LatenessPolicy) IsLate(timeIn time.Time) bool {
	if p.Cutoff == nil {
		return false
	}
	return dateutil.SinceMidnight(timeIn, p.location()) > *p.Cutoff
}

// Observation is what the source told us about one record before classification.
type Observation struct {
	ExplicitStatus string
	TimeIn         *time.Time
	TimeOut        *time.Time
	Worked         *time.Duration
}

// DeriveStatus classifies a record. An explicit Present or Late from the source
// wins; otherwise a time-in yields Present, or Late past the cutoff, and no
// time-in yields Absent. The worked duration is the supplied one, else the
// span from time-in to time-out, else zero.
func DeriveStatus(obs Observation, policy LatenessPolicy) (Status, time.Duration) {
	timeOut := obs.TimeOut
	if timeOut != nil && obs.TimeIn != nil && timeOut.Before(*obs.TimeIn) {
		timeOut = nil
	}

	var worked time.Duration
	switch {
	case obs.Worked != nil && *obs.Worked > 0:
		worked = *obs.Worked
	case obs.TimeIn != nil && timeOut != nil:
		worked = timeOut.Sub(*obs.TimeIn)
	}

	if s, ok := ParseStatus(obs.ExplicitStatus); ok && s != StatusAbsent {
		return s, worked
	}
	if obs.TimeIn == nil {
		return StatusAbsent, worked
	}
	if policy.IsLate(*obs.TimeIn) {
		return StatusLate, worked
	}
	return StatusPresent, worked
}
