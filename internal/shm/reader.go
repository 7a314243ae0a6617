package shm

import (
	"time"
)

// DefaultStaleTimeout is how long the sequence counter may sit unchanged
// on an active record before the reader declares the writer dead.
const DefaultStaleTimeout = 2 * time.Second

// Reader is the consumer side of the channel. It polls on its own
// cadence, never blocks the writer, and self-heals the region if the
// writer dies mid-session.
type Reader struct {
	region *region
	lock   seqlock

	staleAfter time.Duration
	lastSeq    uint32
	lastChange time.Time
}

// Attach maps an existing channel file. If a previous writer crashed
// while the counter was odd, every later read would be rejected forever,
// so the counter is forced even and the active flag cleared on attach.
func Attach(path string, staleAfter time.Duration) (*Reader, error) {
	reg, err := mapFile(path, false)
	if err != nil {
		return nil, err
	}
	if staleAfter <= 0 {
		staleAfter = DefaultStaleTimeout
	}
	r := &Reader{
		region:     reg,
		lock:       seqlock{word: reg.seqWord()},
		staleAfter: staleAfter,
	}
	if r.lock.Load()&1 != 0 {
		r.lock.Reset()
		reg.record().Active = 0
	}
	return r, nil
}

// TryRead copies a snapshot if the writer is not mid-update. The copy is
// valid only when the sequence counter reads the same before and after;
// a torn copy is discarded and the caller retries on its next poll.
//
// TryRead also runs staleness detection: an active record whose counter
// has not advanced within the timeout means the writer died mid-session.
// The reader then reports inactive and resets the shared counter and
// active flag so a future writer starts clean.
func (r *Reader) TryRead(now time.Time) (Record, bool) {
	seq1 := r.lock.Load()
	if seq1&1 != 0 {
		return Record{}, false
	}
	rec := *r.region.record()
	seq2 := r.lock.Load()
	if seq1 != seq2 {
		return Record{}, false
	}

	if seq1 != r.lastSeq || r.lastChange.IsZero() {
		r.lastSeq = seq1
		r.lastChange = now
	}
	if rec.Active != 0 && now.Sub(r.lastChange) > r.staleAfter {
		rec.Active = 0
		r.region.record().Active = 0
		r.lock.Reset()
		r.lastSeq = 0
		r.lastChange = time.Time{}
	}
	return rec, true
}

// Sequence returns the current counter value, for diagnostics.
func (r *Reader) Sequence() uint32 { return r.lock.Load() }

// Close unmaps the region.
func (r *Reader) Close() error {
	if r.region == nil {
		return nil
	}
	err := r.region.close()
	r.region = nil
	return err
}
