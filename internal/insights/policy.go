// Package insights turns computed funnel metrics into a short, prioritized
// list of human-readable recommendations. Rules are data: a named policy
// table carries the thresholds and wording, so tuning them never touches the
// evaluation logic.
package insights

// Rule names recognized by Generate. A policy rule with any other name is
// skipped, which lets newer config files run against older binaries.
const (
	RuleNoData               = "no_data"
	RuleLowInterviewRate     = "low_interview_conversion"
	RuleLowResponseRate      = "low_response_rate"
	RuleBehindWeeklyGoal     = "behind_weekly_goal"
	RuleLowDeadlineAdherence = "low_deadline_adherence"
	RuleSlowTimeToOffer      = "slow_time_to_offer"
	RuleLowOfferConversion   = "low_offer_conversion"
)

// Rule is one threshold check plus the sentence emitted when it fires.
// Message templates may use {rate}, {goal}, {count} and {days}; every
// placeholder is filled before the string leaves the generator.
type Rule struct {
	Name      string  `yaml:"name"`
	Threshold float64 `yaml:"threshold"`
	Message   string  `yaml:"message"`
}

// Policy is the versioned, overridable rule table. Rule order is priority
// order: when more rules fire than MaxInsights allows, the later ones are
// dropped, never re-sorted.
type Policy struct {
	Version     int    `yaml:"version"`
	MaxInsights int    `yaml:"max_insights"`
	Rules       []Rule `yaml:"rules"`
}

// DefaultPolicy returns the built-in rule table.
func DefaultPolicy() Policy {
	return Policy{
		Version:     1,
		MaxInsights: 5,
		Rules: []Rule{
			{
				Name:    RuleNoData,
				Message: "No applications tracked yet. Add or import your first application to see funnel analytics.",
			},
			{
				Name:      RuleLowInterviewRate,
				Threshold: 0.15,
				Message:   "Only {rate} of your applications reach an interview. Consider reviewing your resume and targeting roles that match your experience more closely.",
			},
			{
				Name:      RuleLowResponseRate,
				Threshold: 0.20,
				Message:   "Your response rate is {rate}. Broadening your search criteria or channels may surface more responsive openings.",
			},
			{
				Name:    RuleBehindWeeklyGoal,
				Message: "You have submitted {count} applications this week against a goal of {goal}. Increasing your application volume keeps the funnel moving.",
			},
			{
				Name:      RuleLowDeadlineAdherence,
				Threshold: 0.80,
				Message:   "You met only {rate} of your application deadlines. Calendar reminders for upcoming deadlines could help.",
			},
			{
				Name:      RuleSlowTimeToOffer,
				Threshold: 45,
				Message:   "Your average time to offer is {days} days. Following up proactively after interviews can shorten the cycle.",
			},
			{
				Name:      RuleLowOfferConversion,
				Threshold: 0.10,
				Message:   "Only {rate} of your interviews convert to offers. Interview practice or debriefs after each round may pay off.",
			},
		},
	}
}
