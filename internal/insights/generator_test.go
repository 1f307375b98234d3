package insights_test

import (
	"strings"
	"testing"

	"apptrack-engine/internal/analytics"
	"apptrack-engine/internal/insights"
	. "github.com/smartystreets/goconvey/convey"
)

func healthySummary() analytics.Summary {
	return analytics.Summary{
		Total: 40,
		Conversion: analytics.Conversion{
			Applied: 40, PhoneScreens: 20, Interviews: 12, Offers: 3,
			AppliedToPhone: 0.5, PhoneToInterview: 0.6,
			InterviewToOffer: 0.25, AppliedToInterview: 0.3,
		},
		ResponseRate:       0.55,
		AvgTimeToOfferDays: 28,
		Deadline:           analytics.DeadlineStats{Met: 9, Missed: 1, Adherence: 0.9},
	}
}

func TestGenerate(t *testing.T) {
	Convey("Given the default policy", t, func() {
		policy := insights.DefaultPolicy()

		Convey("When the funnel looks healthy and the weekly goal is met", func() {
			got := insights.Generate(healthySummary(), insights.Inputs{WeeklyGoal: 5, ThisWeekCount: 6}, policy)

			Convey("Then no insight fires", func() {
				So(got, ShouldBeEmpty)
			})
		})

		Convey("When there is no data at all", func() {
			got := insights.Generate(analytics.Summary{}, insights.Inputs{}, policy)

			Convey("Then only the no-data guidance fires, and it never errors", func() {
				So(len(got), ShouldEqual, 1)
				So(got[0], ShouldContainSubstring, "No applications tracked yet")
			})
		})

		Convey("When the interview conversion is below threshold", func() {
			s := healthySummary()
			s.Conversion.AppliedToInterview = 0.08
			got := insights.Generate(s, insights.Inputs{WeeklyGoal: 5, ThisWeekCount: 6}, policy)

			Convey("Then the resume/targeting recommendation fires with the rate filled in", func() {
				So(len(got), ShouldEqual, 1)
				So(got[0], ShouldContainSubstring, "8.0%")
				So(got[0], ShouldContainSubstring, "resume")
				So(got[0], ShouldNotContainSubstring, "{")
			})
		})

		Convey("When the weekly goal is behind", func() {
			got := insights.Generate(healthySummary(), insights.Inputs{WeeklyGoal: 10, ThisWeekCount: 3}, policy)

			Convey("Then the volume recommendation fires with both numbers filled", func() {
				So(len(got), ShouldEqual, 1)
				So(got[0], ShouldContainSubstring, "3 applications")
				So(got[0], ShouldContainSubstring, "goal of 10")
			})
		})

		Convey("When deadline adherence is low but no record carries a deadline", func() {
			s := healthySummary()
			s.Deadline = analytics.DeadlineStats{}
			got := insights.Generate(s, insights.Inputs{WeeklyGoal: 5, ThisWeekCount: 6}, policy)

			Convey("Then the deadline rule stays quiet", func() {
				So(got, ShouldBeEmpty)
			})
		})

		Convey("When everything is bad at once", func() {
			s := analytics.Summary{
				Total: 30,
				Conversion: analytics.Conversion{
					Applied: 30, PhoneScreens: 2, Interviews: 1, Offers: 1,
					AppliedToInterview: 0.03, InterviewToOffer: 0.05,
				},
				ResponseRate:       0.05,
				AvgTimeToOfferDays: 90,
				Deadline:           analytics.DeadlineStats{Met: 1, Missed: 4, Adherence: 0.2},
			}
			got := insights.Generate(s, insights.Inputs{WeeklyGoal: 10, ThisWeekCount: 0}, policy)

			Convey("Then the list caps at MaxInsights by truncation, keeping declaration order", func() {
				So(len(got), ShouldEqual, policy.MaxInsights)
				So(got[0], ShouldContainSubstring, "interview")
				// The last declared rule (low offer conversion) is the one dropped.
				for _, msg := range got {
					So(msg, ShouldNotContainSubstring, "convert to offers")
				}
			})

			Convey("Then every emitted sentence is fully rendered", func() {
				for _, msg := range got {
					So(msg, ShouldNotContainSubstring, "{")
					So(msg, ShouldNotContainSubstring, "}")
					So(strings.TrimSpace(msg), ShouldNotBeEmpty)
				}
			})
		})

		Convey("When the policy contains an unknown rule name", func() {
			policy.Rules = append([]insights.Rule{{Name: "from_the_future", Threshold: 1}}, policy.Rules...)
			got := insights.Generate(analytics.Summary{}, insights.Inputs{}, policy)

			Convey("Then the unknown rule is skipped, not an error", func() {
				So(len(got), ShouldEqual, 1)
				So(got[0], ShouldContainSubstring, "No applications")
			})
		})

		Convey("When MaxInsights is overridden to 1", func() {
			policy.MaxInsights = 1
			s := healthySummary()
			s.Conversion.AppliedToInterview = 0.01
			s.ResponseRate = 0.01
			got := insights.Generate(s, insights.Inputs{WeeklyGoal: 10, ThisWeekCount: 0}, policy)

			Convey("Then only the earliest-declared firing rule survives", func() {
				So(len(got), ShouldEqual, 1)
				So(got[0], ShouldContainSubstring, "interview")
			})
		})
	})
}
