package config

import (
	"fmt"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a normalized copy of cfg plus everything a
// careful operator should know before running with it.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	var res Validation

	if out.App.Port <= 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 1..65535")
	}

	if out.Analytics.Months <= 0 {
		res.addErr("analytics.months must be > 0")
	} else if out.Analytics.Months > 120 {
		res.addWarn("analytics.months is very high (%d); charts may become unreadable.", out.Analytics.Months)
	}
	if out.Analytics.Weeks <= 0 {
		res.addErr("analytics.weeks must be > 0")
	}
	if out.Analytics.GroupLimit <= 0 {
		res.addErr("analytics.group_limit must be > 0")
	}
	if out.Analytics.WeeklyGoal < 0 {
		res.addErr("analytics.weekly_goal must be >= 0")
	}
	if out.Analytics.RefreshSeconds <= 0 {
		res.addErr("analytics.refresh_seconds must be > 0")
	} else if out.Analytics.RefreshSeconds < 5 {
		res.addWarn("analytics.refresh_seconds is very low (%d); the engine will recompute constantly.", out.Analytics.RefreshSeconds)
	}

	switch strings.ToLower(strings.TrimSpace(out.Analytics.Dimension)) {
	case "", "company":
		out.Analytics.Dimension = "company"
	case "industry":
		out.Analytics.Dimension = "industry"
	case "job_type", "jobtype":
		out.Analytics.Dimension = "job_type"
	default:
		res.addErr("analytics.dimension must be company, industry, or job_type (got %q)", out.Analytics.Dimension)
	}

	if out.Insights.MaxInsights < 0 {
		res.addErr("insights.max_insights must be >= 0")
	}
	seen := map[string]bool{}
	for i, r := range out.Insights.Rules {
		if strings.TrimSpace(r.Name) == "" {
			res.addErr("insights.rules[%d].name is required", i)
			continue
		}
		if seen[r.Name] {
			res.addWarn("insights.rules contains %q more than once; both will be evaluated.", r.Name)
		}
		seen[r.Name] = true
		if strings.TrimSpace(r.Message) == "" {
			res.addErr("insights.rules[%d] (%s) has no message", i, r.Name)
		}
		if r.Threshold < 0 {
			res.addErr("insights.rules[%d] (%s) threshold must be >= 0", i, r.Name)
		}
	}

	return out, res
}
