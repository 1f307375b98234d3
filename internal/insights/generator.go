package insights

import (
	"fmt"
	"strings"

	"apptrack-engine/internal/analytics"
)

// Inputs carries the caller-supplied goal context that is not part of the
// computed Summary.
type Inputs struct {
	WeeklyGoal    int
	ThisWeekCount int
}

// Generate evaluates the policy's rules in declared order against the
// summary and returns the complete sentences for the ones that fired,
// truncated at MaxInsights. Rules are independent; one firing never
// suppresses another except through the cap. Never errors: empty or
// degenerate input at worst yields the no-data guidance.
func Generate(s analytics.Summary, in Inputs, p Policy) []string {
	max := p.MaxInsights
	if max <= 0 {
		max = 5
	}

	var out []string
	for _, r := range p.Rules {
		if len(out) >= max {
			break
		}
		if msg, fired := evaluate(r, s, in); fired {
			out = append(out, msg)
		}
	}
	return out
}

func evaluate(r Rule, s analytics.Summary, in Inputs) (string, bool) {
	switch r.Name {
	case RuleNoData:
		if s.Total == 0 {
			return r.Message, true
		}

	case RuleLowInterviewRate:
		if s.Conversion.Applied > 0 && s.Conversion.AppliedToInterview < r.Threshold {
			return fill(r, map[string]string{"rate": pct(s.Conversion.AppliedToInterview)}), true
		}

	case RuleLowResponseRate:
		if s.Total > 0 && s.ResponseRate < r.Threshold {
			return fill(r, map[string]string{"rate": pct(s.ResponseRate)}), true
		}

	case RuleBehindWeeklyGoal:
		if in.WeeklyGoal > 0 && in.ThisWeekCount < in.WeeklyGoal {
			return fill(r, map[string]string{
				"count": fmt.Sprintf("%d", in.ThisWeekCount),
				"goal":  fmt.Sprintf("%d", in.WeeklyGoal),
			}), true
		}

	case RuleLowDeadlineAdherence:
		if s.Deadline.Met+s.Deadline.Missed > 0 && s.Deadline.Adherence < r.Threshold {
			return fill(r, map[string]string{"rate": pct(s.Deadline.Adherence)}), true
		}

	case RuleSlowTimeToOffer:
		if s.Conversion.Offers > 0 && s.AvgTimeToOfferDays > r.Threshold {
			return fill(r, map[string]string{"days": fmt.Sprintf("%.0f", s.AvgTimeToOfferDays)}), true
		}

	case RuleLowOfferConversion:
		if s.Conversion.Interviews > 0 && s.Conversion.InterviewToOffer < r.Threshold {
			return fill(r, map[string]string{"rate": pct(s.Conversion.InterviewToOffer)}), true
		}
	}
	return "", false
}

func fill(r Rule, vars map[string]string) string {
	msg := r.Message
	for k, v := range vars {
		msg = strings.ReplaceAll(msg, "{"+k+"}", v)
	}
	return msg
}

func pct(v float64) string {
	return fmt.Sprintf("%.1f%%", v*100)
}
