package shm

import (
	"fmt"
	"os"
	"sync/atomic"
	"syscall"
	"unsafe"
)

// region is a mapped channel file shared by Writer and Reader.
type region struct {
	f    *os.File
	data []byte
}

// mapFile opens (or creates) the channel file and maps it shared. The
// reader also maps read-write: staleness self-heal writes the sequence
// and active words back into the region.
func mapFile(path string, create bool) (*region, error) {
	flags := os.O_RDWR
	if create {
		flags |= os.O_CREATE | os.O_TRUNC
	}
	f, err := os.OpenFile(path, flags, 0o666)
	if err != nil {
		return nil, fmt.Errorf("open channel file: %w", err)
	}
	if create {
		if err := f.Truncate(RegionSize); err != nil {
			f.Close()
			return nil, fmt.Errorf("size channel file: %w", err)
		}
	} else {
		st, err := f.Stat()
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("stat channel file: %w", err)
		}
		if st.Size() < RegionSize {
			f.Close()
			return nil, fmt.Errorf("channel file too small: %d bytes", st.Size())
		}
	}

	data, err := syscall.Mmap(int(f.Fd()), 0, RegionSize,
		syscall.PROT_READ|syscall.PROT_WRITE, syscall.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("mmap channel file: %w", err)
	}
	return &region{f: f, data: data}, nil
}

func (r *region) close() error {
	var err error
	if r.data != nil {
		err = syscall.Munmap(r.data)
		r.data = nil
	}
	if r.f != nil {
		if cerr := r.f.Close(); err == nil {
			err = cerr
		}
		r.f = nil
	}
	return err
}

// seqWord returns the sequence counter word at the start of the region.
func (r *region) seqWord() *uint32 {
	return (*uint32)(unsafe.Pointer(&r.data[0]))
}

// record overlays the Record layout onto the mapped region.
func (r *region) record() *Record {
	return (*Record)(unsafe.Pointer(&r.data[headerSize]))
}

// seqlock wraps the shared sequence counter. Writes are bracketed by two
// increments; the atomic operations order the field writes between them.
type seqlock struct {
	word *uint32
}

// BeginWrite marks a write in progress (counter goes odd).
func (l seqlock) BeginWrite() { atomic.AddUint32(l.word, 1) }

// EndWrite marks the record consistent again (counter goes even).
func (l seqlock) EndWrite() { atomic.AddUint32(l.word, 1) }

// Load reads the counter.
func (l seqlock) Load() uint32 { return atomic.LoadUint32(l.word) }

// Reset forces the counter to an even value, recovering from a writer
// that died mid-update.
func (l seqlock) Reset() { atomic.StoreUint32(l.word, 0) }
