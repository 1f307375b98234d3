package analytics

import (
	"encoding/binary"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"apptrack-engine/internal/domain"
)

// Cache memoizes Compute behind a content signature of the record collection,
// so repeated reads with unchanged data do not repeat the O(n) scans.
// Concurrent callers that miss on the same signature share one computation
// via singleflight. Invalidation is implicit: any change to the records (or
// to Options.Now at day granularity, see Signature) produces a new signature.
type Cache struct {
	group singleflight.Group

	// last computed entry; one slot is enough because the engine serves a
	// single record collection.
	mu      sync.RWMutex
	lastSig uint64
	last    Summary
	ok      bool
}

// Summary returns the memoized Summary for records, computing it on a
// signature miss. The boolean reports whether the result came from cache.
func (c *Cache) Summary(records []domain.Record, opts Options) (Summary, bool) {
	opts = opts.withDefaults()
	sig := Signature(records, opts)

	c.mu.RLock()
	if c.ok && c.lastSig == sig {
		s := c.last
		c.mu.RUnlock()
		return s, true
	}
	c.mu.RUnlock()

	v, _, _ := c.group.Do(strconv.FormatUint(sig, 16), func() (any, error) {
		s := Compute(records, opts)
		c.mu.Lock()
		c.last = s
		c.lastSig = sig
		c.ok = true
		c.mu.Unlock()
		return s, nil
	})
	return v.(Summary), false
}

// Invalidate drops the memoized entry, forcing the next read to recompute.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.ok = false
	c.mu.Unlock()
}

// Signature hashes the fields the engine reads from each record, plus the
// options that shape the output. Options.Now is folded in at day granularity:
// the time buckets and "this week" count only shift when the date does.
func Signature(records []domain.Record, opts Options) uint64 {
	h := fnv.New64a()
	var buf [8]byte

	writeInt := func(v int64) {
		binary.LittleEndian.PutUint64(buf[:], uint64(v))
		_, _ = h.Write(buf[:])
	}
	writeTime := func(t *time.Time) {
		if t == nil {
			writeInt(-1)
			return
		}
		writeInt(t.Unix())
	}
	// Strings are length-prefixed so adjacent fields cannot run together:
	// {"ab",""} and {"a","b"} must hash differently.
	writeStr := func(s string) {
		writeInt(int64(len(s)))
		_, _ = h.Write([]byte(s))
	}

	opts = opts.withDefaults()
	writeInt(int64(len(records)))
	writeInt(int64(opts.Months))
	writeInt(int64(opts.Weeks))
	writeInt(int64(opts.GroupLimit))
	writeStr(string(opts.Dimension))
	writeStr(opts.Now.Format("2006-01-02"))

	for i := range records {
		r := &records[i]
		writeInt(r.ID)
		writeStr(r.Company)
		writeStr(r.Industry)
		writeStr(r.JobType)
		writeStr(r.Status)
		writeInt(r.CreatedAt.Unix())
		writeTime(r.StatusChangedAt)
		writeTime(r.ApplicationDeadline)
	}
	return h.Sum64()
}
