package navigator

// History is the stack of visited URLs, root first. It is never empty: the
// root pushed by NewHistory cannot be popped.
type History struct {
	urls []string
}

// NewHistory starts a history at root.
func NewHistory(root string) *History {
	return &History{urls: []string{root}}
}

// Current returns the URL on top of the stack.
func (h *History) Current() string {
	return h.urls[len(h.urls)-1]
}

// Depth is the number of entries, 1 at the root.
func (h *History) Depth() int {
	return len(h.urls)
}

// Push makes url the current entry.
func (h *History) Push(url string) {
	h.urls = append(h.urls, url)
}

// Pop drops the current entry. At the root it leaves the stack alone and
// returns false.
func (h *History) Pop() bool {
	if len(h.urls) <= 1 {
		return false
	}
	h.urls = h.urls[:len(h.urls)-1]
	return true
}

// Entries returns a copy of the stack, root first.
func (h *History) Entries() []string {
	out := make([]string, len(h.urls))
	copy(out, h.urls)
	return out
}
