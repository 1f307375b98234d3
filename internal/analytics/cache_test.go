package analytics

import (
	"reflect"
	"testing"
	"time"

	"apptrack-engine/internal/domain"
)

func TestCacheHitOnUnchangedInput(t *testing.T) {
	var c Cache
	records := scenarioRecords()
	opts := Options{Now: testNow}

	first, cached := c.Summary(records, opts)
	if cached {
		t.Fatal("first call reported a cache hit")
	}
	second, cached := c.Summary(records, opts)
	if !cached {
		t.Error("second call with unchanged input missed the cache")
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("cached summary differs from computed one")
	}
}

func TestCacheMissOnChangedInput(t *testing.T) {
	var c Cache
	records := scenarioRecords()
	opts := Options{Now: testNow}

	c.Summary(records, opts)
	records = append(records, rec("Applied", testNow))
	s, cached := c.Summary(records, opts)
	if cached {
		t.Error("changed input reported a cache hit")
	}
	if s.Total != len(records) {
		t.Errorf("Total = %d, want %d", s.Total, len(records))
	}
}

func TestCacheMissOnStatusEdit(t *testing.T) {
	var c Cache
	records := []domain.Record{rec("Applied", testNow)}
	opts := Options{Now: testNow}

	c.Summary(records, opts)
	records[0].Status = "Interview"
	if _, cached := c.Summary(records, opts); cached {
		t.Error("status edit reported a cache hit")
	}
}

func TestCacheInvalidate(t *testing.T) {
	var c Cache
	records := scenarioRecords()
	opts := Options{Now: testNow}

	c.Summary(records, opts)
	c.Invalidate()
	if _, cached := c.Summary(records, opts); cached {
		t.Error("read after Invalidate reported a cache hit")
	}
}

func TestSignatureStability(t *testing.T) {
	records := scenarioRecords()
	opts := Options{Now: testNow}
	if Signature(records, opts) != Signature(records, opts) {
		t.Error("signature not stable across calls")
	}

	other := scenarioRecords()
	other[0].Company = "Somewhere Else"
	if Signature(records, opts) == Signature(other, opts) {
		t.Error("signature ignored a field change")
	}

	// Different option shapes produce different signatures.
	if Signature(records, opts) == Signature(records, Options{Now: testNow, Months: 3}) {
		t.Error("signature ignored option change")
	}
}

// Length-prefixed hashing: shifting a character between adjacent string
// fields must change the signature, or the cache serves one collection's
// summary for another.
func TestSignatureFieldBoundaries(t *testing.T) {
	opts := Options{Now: testNow}
	a := []domain.Record{{Company: "ab", Status: "Applied", CreatedAt: testNow}}
	b := []domain.Record{{Company: "a", Industry: "b", Status: "Applied", CreatedAt: testNow}}

	if Signature(a, opts) == Signature(b, opts) {
		t.Fatal("signatures collide across shifted field boundaries")
	}

	var c Cache
	c.Summary(a, opts)
	s, cached := c.Summary(b, opts)
	if cached {
		t.Error("shifted field boundaries reported a cache hit")
	}
	if len(s.GroupedAverages) == 0 || s.GroupedAverages[0].Key != "a" {
		t.Errorf("grouped key = %+v, want company \"a\"", s.GroupedAverages)
	}
}

func TestSignatureChangesWithDimension(t *testing.T) {
	records := scenarioRecords()
	if Signature(records, Options{Now: testNow}) == Signature(records, Options{Now: testNow, Dimension: ByIndustry}) {
		t.Error("signature ignored the grouping dimension")
	}
}

func TestSignatureIgnoresTimeOfDay(t *testing.T) {
	records := scenarioRecords()
	morning := Options{Now: testNow}
	evening := Options{Now: testNow.Add(7 * time.Hour)}
	if Signature(records, morning) != Signature(records, evening) {
		t.Error("signature shifted within the same day")
	}
}
