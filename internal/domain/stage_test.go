package domain

import "testing"

func TestParseStage(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Stage
	}{
		{"Exact", "Applied", StageApplied},
		{"Lowercase", "applied", StageApplied},
		{"Whitespace", "  Interview  ", StageInterview},
		{"MixedCase", "PHONE SCREEN", StagePhoneScreen},
		{"Underscore", "phone_screen", StagePhoneScreen},
		{"Joined", "PhoneScreen", StagePhoneScreen},
		{"Alias", "interviewing", StageInterview},
		{"Empty", "", StageUnknown},
		{"Garbage", "ghosted by recruiter", StageUnknown},
		{"Offer", "offer", StageOffer},
		{"Rejected", "Rejected", StageRejected},
		{"Saved", "saved", StageInterested},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseStage(tt.raw); got != tt.want {
				t.Errorf("ParseStage(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestStagesCoversEveryVariant(t *testing.T) {
	seen := map[Stage]bool{}
	for _, s := range Stages() {
		if seen[s] {
			t.Fatalf("duplicate stage %v in Stages()", s)
		}
		seen[s] = true
	}
	for _, s := range []Stage{StageUnknown, StageInterested, StageApplied, StagePhoneScreen, StageInterview, StageOffer, StageRejected} {
		if !seen[s] {
			t.Errorf("Stages() missing %v", s)
		}
	}
}

func TestStageString(t *testing.T) {
	if got := Stage(99).String(); got != "Unknown" {
		t.Errorf("out-of-range stage String() = %q, want Unknown", got)
	}
}
