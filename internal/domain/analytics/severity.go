package analytics

import (
	"encoding/json"
	"strings"
)

// Severity is the single four-level scale both upstream vocabularies map onto.
type Severity int

const (
	SeverityGood Severity = iota + 1
	SeverityCaution
	SeverityAttention
	SeverityCritical
)

var severityWords = map[string]Severity{
	"green":     SeverityGood,
	"good":      SeverityGood,
	"low":       SeverityGood,
	"yellow":    SeverityCaution,
	"caution":   SeverityCaution,
	"medium":    SeverityCaution,
	"orange":    SeverityAttention,
	"attention": SeverityAttention,
	"high":      SeverityAttention,
	"red":       SeverityCritical,
	"critical":  SeverityCritical,
}

// ParseSeverity reads either vocabulary, case-insensitively.
func ParseSeverity(s string) (Severity, bool) {
	sev, ok := severityWords[strings.ToLower(strings.TrimSpace(s))]
	return sev, ok
}

func (s Severity) String() string {
	switch s {
	case SeverityGood:
		return "Good"
	case SeverityCaution:
		return "Caution"
	case SeverityAttention:
		return "Attention"
	case SeverityCritical:
		return "Critical"
	}
	return "Unknown"
}

// Color is the traffic-light word used on the wire.
func (s Severity) Color() string {
	switch s {
	case SeverityCaution:
		return "yellow"
	case SeverityAttention:
		return "orange"
	case SeverityCritical:
		return "red"
	}
	return "green"
}

func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Color())
}

func (s *Severity) UnmarshalJSON(data []byte) error {
	var word string
	if err := json.Unmarshal(data, &word); err != nil {
		return err
	}
	sev, ok := ParseSeverity(word)
	if !ok {
		sev = SeverityGood
	}
	*s = sev
	return nil
}
