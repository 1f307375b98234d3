package domain

import "strings"

// Stage is the closed set of pipeline stages a record can occupy.
type Stage int

const (
	StageUnknown Stage = iota
	StageInterested
	StageApplied
	StagePhoneScreen
	StageInterview
	StageOffer
	StageRejected
)

// Stages returns the canonical funnel order (Rejected last, Unknown first is
// excluded; it is the bucket for everything unmapped).
func Stages() []Stage {
	return []Stage{
		StageInterested,
		StageApplied,
		StagePhoneScreen,
		StageInterview,
		StageOffer,
		StageRejected,
		StageUnknown,
	}
}

func (s Stage) String() string {
	switch s {
	case StageInterested:
		return "Interested"
	case StageApplied:
		return "Applied"
	case StagePhoneScreen:
		return "PhoneScreen"
	case StageInterview:
		return "Interview"
	case StageOffer:
		return "Offer"
	case StageRejected:
		return "Rejected"
	default:
		return "Unknown"
	}
}

var stageLabels = map[string]Stage{
	"interested":   StageInterested,
	"saved":        StageInterested,
	"applied":      StageApplied,
	"phone screen": StagePhoneScreen,
	"phone-screen": StagePhoneScreen,
	"phone_screen": StagePhoneScreen,
	"phonescreen":  StagePhoneScreen,
	"interview":    StageInterview,
	"interviewing": StageInterview,
	"offer":        StageOffer,
	"rejected":     StageRejected,
}

// ParseStage classifies a free-form status label. Unmapped input (including
// empty) buckets into StageUnknown; that is defined behavior, not an error.
func ParseStage(raw string) Stage {
	if s, ok := stageLabels[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return s
	}
	return StageUnknown
}
