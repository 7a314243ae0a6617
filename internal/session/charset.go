package session

// Category selects which charset a cycling session steps through. It is
// fixed at session creation.
type Category int

const (
	CategoryDefault Category = iota
	CategoryNumber
	CategoryURL
	CategoryMail
)

const (
	defaultCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ" +
		"abcdefghijklmnopqrstuvwxyz" +
		"0123456789" +
		" .,!?'-:;@#$%&*()"
	numericCharset = "0123456789.-+"
	urlCharset     = "abcdefghijklmnopqrstuvwxyz" +
		"0123456789" +
		".-_~:/?#[]@!$&'()*+,;=%"
)

// CharsetFor returns the ordered candidate characters for a category.
func CharsetFor(cat Category) string {
	switch cat {
	case CategoryNumber:
		return numericCharset
	case CategoryURL, CategoryMail:
		return urlCharset
	default:
		return defaultCharset
	}
}

// wrapIndex wraps idx into [0, length), with negative values wrapping to
// the high end.
func wrapIndex(idx, length int) int {
	if length == 0 {
		return 0
	}
	w := idx % length
	if w < 0 {
		w += length
	}
	return w
}
