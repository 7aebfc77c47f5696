// Package fits reads the primary header of FITS files, the
// self-describing binary container used for astronomical exposures.
// Only the header cards are parsed; data units are never touched.
package fits

// Header holds the key/value cards of a primary header in file order.
type Header struct {
	keys  []string
	cards map[string]Card
}

// Card is a single 80-byte header record with its parsed value.
type Card struct {
	Keyword string
	Value   any
	Comment string
}

// Get looks up a keyword and reports whether it was present. A missing
// keyword is distinct from a keyword carrying an empty value.
func (h Header) Get(key string) (any, bool) {
	c, ok := h.cards[key]
	if !ok {
		return nil, false
	}
	return c.Value, true
}

// Card returns the full card for a keyword, comment included.
func (h Header) Card(key string) (Card, bool) {
	c, ok := h.cards[key]
	return c, ok
}

// Keys returns the keywords in file order.
func (h Header) Keys() []string {
	keys := make([]string, len(h.keys))
	copy(keys, h.keys)
	return keys
}

// Len returns the number of value-carrying cards.
func (h Header) Len() int {
	return len(h.keys)
}

func (h *Header) set(c Card) {
	if h.cards == nil {
		h.cards = make(map[string]Card)
	}
	if _, ok := h.cards[c.Keyword]; !ok {
		h.keys = append(h.keys, c.Keyword)
	}
	h.cards[c.Keyword] = c
}
