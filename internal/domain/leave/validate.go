package leave

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/cmlabs-hris/presence-engine/internal/pkg/dateutil"
	"github.com/cmlabs-hris/presence-engine/internal/pkg/validator"
)

// Policy holds the submission rules.
type Policy struct {
	MinAdvanceDays  int
	Categories      []Category
	MaxReasonLength int
}

func DefaultPolicy() Policy {
	return Policy{
		MinAdvanceDays:  3,
		Categories:      []Category{CategorySick, CategoryVacation, CategoryMaternity, CategoryEmergency},
		MaxReasonLength: 500,
	}
}

func (p Policy) allows(c Category) bool {
	for _, allowed := range p.Categories {
		if allowed == c {
			return true
		}
	}
	return false
}

func (p Policy) categoryNames() string {
	names := make([]string, len(p.Categories))
	for i, c := range p.Categories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

// Submission is a request that passed every rule.
type Submission struct {
	Category  Category
	StartDate time.Time
	EndDate   time.Time
	Reason    *string
}

func (s Submission) Days() int {
	return InclusiveDays(s.StartDate, s.EndDate)
}

// ValidateSubmission checks a draft against the policy, relative to today.
// Every failing rule is reported, not only the first.
func ValidateSubmission(req SubmitLeaveRequest, today time.Time, p Policy) (Submission, error) {
	var errs validator.ValidationErrors
	var sub Submission

	category := Category(strings.ToLower(strings.TrimSpace(req.LeaveType)))
	switch {
	case validator.IsEmpty(req.LeaveType):
		errs = append(errs, validator.ValidationError{
			Field:   "leaveType",
			Rule:    "required",
			Message: "leaveType is required",
		})
	case !p.allows(category):
		errs = append(errs, validator.ValidationError{
			Field:   "leaveType",
			Rule:    "category",
			Value:   req.LeaveType,
			Message: "leaveType must be one of: " + p.categoryNames(),
		})
	default:
		sub.Category = category
	}

	start, startOK := parseDateField("startDate", req.StartDate, &errs)
	end, endOK := parseDateField("endDate", req.EndDate, &errs)

	if startOK {
		earliest := dateutil.AddDays(today, p.MinAdvanceDays)
		if start.Before(earliest) {
			errs = append(errs, validator.ValidationError{
				Field: "startDate",
				Rule:  "advance_notice",
				Value: req.StartDate,
				Message: fmt.Sprintf("startDate must be on or after %s (%d days notice)",
					dateutil.Format(earliest), p.MinAdvanceDays),
			})
		}
	}
	if startOK && endOK && !end.After(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "endDate",
			Rule:    "end_after_start",
			Value:   req.EndDate,
			Message: "endDate must be after startDate",
		})
	}

	if req.Reason != nil {
		reason := strings.TrimSpace(*req.Reason)
		if n := utf8.RuneCountInString(reason); n > p.MaxReasonLength {
			errs = append(errs, validator.ValidationError{
				Field:   "reason",
				Rule:    "reason_length",
				Value:   fmt.Sprintf("%d characters", n),
				Message: fmt.Sprintf("reason must be at most %d characters", p.MaxReasonLength),
			})
		} else if reason != "" {
			sub.Reason = &reason
		}
	}

	if len(errs) > 0 {
		return Submission{}, errs
	}
	sub.StartDate, sub.EndDate = start, end
	return sub, nil
}

func parseDateField(field, value string, errs *validator.ValidationErrors) (time.Time, bool) {
	if validator.IsEmpty(value) {
		*errs = append(*errs, validator.ValidationError{
			Field:   field,
			Rule:    "required",
			Message: field + " is required",
		})
		return time.Time{}, false
	}
	d, err := dateutil.ParseDate(value)
	if err != nil {
		*errs = append(*errs, validator.ValidationError{
			Field:   field,
			Rule:    "date_format",
			Value:   value,
			Message: field + " must be in YYYY-MM-DD format",
		})
		return time.Time{}, false
	}
	return d, true
}
