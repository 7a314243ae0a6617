// Package shm publishes edit-session state across a process boundary
// through a fixed-size file-backed shared memory region. One writer and
// one reader, no locks: a sequence counter brackets every write (odd =
// in progress, even = consistent) and readers validate a copied snapshot
// by re-checking the counter, retrying on mismatch.
package shm

import "unsafe"

// RegionSize is the mapped file size. A full page is allocated even
// though the live record is smaller, so the layout can grow without
// relocation.
const RegionSize = 4096

// headerSize is the space reserved ahead of the record for the sequence
// counter (one word, plus one reserved word to keep the record aligned).
const headerSize = 8

// Record capacities. These fix the wire layout and must not change for
// the life of a session.
const (
	MaxText     = 256
	TitleMax    = 48
	PageNameMax = 8
	NumCells    = 9
	NumButtons  = 4
)

// Record is the render-ready snapshot published each tick. Every field is
// inlined (no pointers) so the whole record copies by value across the
// process boundary. Field order keeps every field naturally aligned; the
// struct has no implicit padding. Byte order is the host's, as both
// processes map the same memory.
type Record struct {
	Active       uint32
	SelectedCell int32
	Page         int32
	AccentMode   uint32
	ShiftActive  uint32
	TextLen      uint32
	Cursor       uint32
	SelectedAll  uint32
	SelStart     uint32
	SelEnd       uint32
	OffsetX      int32
	OffsetY      int32
	PageName     [PageNameMax]byte
	Cells        [NumCells][NumButtons]byte
	Text         [MaxText]uint16
	Title        [TitleMax]uint16
}

// Compile-time guard that the header plus record fits the region.
var _ [RegionSize - headerSize - int(unsafe.Sizeof(Record{}))]byte

// SetText copies up to MaxText code units into the record.
func (r *Record) SetText(text []uint16) {
	n := copy(r.Text[:], text)
	r.TextLen = uint32(n)
}

// SetTitle copies up to TitleMax code units into the record.
func (r *Record) SetTitle(title []uint16) {
	copy(r.Title[:], title)
}

// SetPageName copies the page label, truncated to PageNameMax-1 bytes.
func (r *Record) SetPageName(name string) {
	r.PageName = [PageNameMax]byte{}
	copy(r.PageName[:PageNameMax-1], name)
}

// PageNameString returns the page label as a Go string.
func (r *Record) PageNameString() string {
	for i, b := range r.PageName {
		if b == 0 {
			return string(r.PageName[:i])
		}
	}
	return string(r.PageName[:PageNameMax-1])
}

// TitleString renders the null-terminated title as a Go string.
func (r *Record) TitleString() string {
	var rs []rune
	for _, c := range r.Title {
		if c == 0 {
			break
		}
		rs = append(rs, rune(c))
	}
	return string(rs)
}

// TextString renders the text buffer as a Go string.
func (r *Record) TextString() string {
	n := int(r.TextLen)
	if n > MaxText {
		n = MaxText
	}
	rs := make([]rune, n)
	for i := 0; i < n; i++ {
		rs[i] = rune(r.Text[i])
	}
	return string(rs)
}
