package shm

// Writer is the producer side of the channel. It lives in the process
// that owns the edit session and publishes one snapshot per tick. Not
// safe for concurrent use; the protocol assumes a single writer.
type Writer struct {
	region *region
	lock   seqlock
}

// Create opens the channel file, sizes it to the full region, zeroes the
// record, and returns the writer.
func Create(path string) (*Writer, error) {
	reg, err := mapFile(path, true)
	if err != nil {
		return nil, err
	}
	w := &Writer{region: reg, lock: seqlock{word: reg.seqWord()}}
	*reg.record() = Record{}
	w.lock.Reset()
	return w, nil
}

// Publish copies rec into the shared region under the write bracket.
func (w *Writer) Publish(rec *Record) {
	w.lock.BeginWrite()
	*w.region.record() = *rec
	w.lock.EndWrite()
}

// PublishInactive clears only the active flag, leaving the rest of the
// last snapshot in place. Used when a session ends or goes dormant.
func (w *Writer) PublishInactive() {
	w.lock.BeginWrite()
	w.region.record().Active = 0
	w.lock.EndWrite()
}

// Sequence returns the current counter value, for diagnostics.
func (w *Writer) Sequence() uint32 { return w.lock.Load() }

// BeginWrite and EndWrite expose the bare bracket so a caller can hold
// the record in the in-progress state. Publish is the normal entry point.
func (w *Writer) BeginWrite() { w.lock.BeginWrite() }
func (w *Writer) EndWrite()   { w.lock.EndWrite() }

// Close marks the record inactive and unmaps the region.
func (w *Writer) Close() error {
	if w.region == nil {
		return nil
	}
	if w.region.data != nil {
		w.PublishInactive()
	}
	err := w.region.close()
	w.region = nil
	return err
}
