package types

import "go/token"

// Severity is the reporting level of an issue.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
	SeverityOff
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	case SeverityOff:
		return "off"
	default:
		return "unknown"
	}
}

// UnmarshalYAML parses a severity name from a config file.
func (s *Severity) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var name string
	if err := unmarshal(&name); err != nil {
		return err
	}
	switch name {
	case "error":
		*s = SeverityError
	case "warning":
		*s = SeverityWarning
	case "info":
		*s = SeverityInfo
	case "off":
		*s = SeverityOff
	default:
		*s = SeverityWarning
	}
	return nil
}

// ConfigRule is the per-rule configuration block.
type ConfigRule struct {
	Severity Severity `yaml:"severity"`
}

// Issue represents a single finding produced by a rule against one program
// snapshot. Issues are immutable and become stale as soon as a transaction
// produces a new snapshot.
type Issue struct {
	Rule       string
	Category   string
	Filename   string
	Message    string
	Suggestion string
	Note       string
	Start      token.Position
	End        token.Position
	Severity   Severity

	// Confidence is the certainty that the associated fix preserves
	// behavior, in [0, 1].
	Confidence float64

	// RequiredImports lists import paths a fix for this issue needs.
	RequiredImports []string
}
