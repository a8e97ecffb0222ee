// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

// RailSize is how many testimonials the rotating rail shows at once.
const RailSize = 3

// Carousel cycles a current position over a fixed, ordered list of items
// (gallery image URLs, or review IDs for the testimonial rail). It is a
// plain index-plus-length state machine: Next and Previous wrap at both
// ends, Select jumps to a known item. One Carousel belongs to one view and
// is discarded with it; it is not safe for concurrent use.
type Carousel struct {
	items []string
	index int
}

// NewCarousel creates a carousel positioned on the first item. The list
// may be empty, in which case Next/Previous/Select are no-ops and Current
// returns the empty string.
func NewCarousel(items []string) *Carousel {
	return &Carousel{items: items}
}

// Len returns the number of items.
func (c *Carousel) Len() int { return len(c.items) }

// Index returns the current position, always in [0, Len()-1] for a
// non-empty list.
func (c *Carousel) Index() int { return c.index }

// Items returns the underlying item list.
func (c *Carousel) Items() []string { return c.items }

// Current returns the item at the current position.
func (c *Carousel) Current() string {
	if len(c.items) == 0 {
		return ""
	}
	return c.items[c.index]
}

// Next advances to the following item, wrapping to the start after the end.
func (c *Carousel) Next() {
	if len(c.items) == 0 {
		return
	}
	c.index = (c.index + 1) % len(c.items)
}

// Previous moves to the preceding item, wrapping to the end before the start.
func (c *Carousel) Previous() {
	if len(c.items) == 0 {
		return
	}
	c.index = (c.index - 1 + len(c.items)) % len(c.items)
}

// Select jumps to the given item if it is in the list. An unknown item
// leaves the position unchanged: this is a UI-state setter, not a
// validated command.
func (c *Carousel) Select(item string) {
	for i, it := range c.items {
		if it == item {
			c.index = i
			return
		}
	}
}

// SetIndex jumps directly to a position. Out-of-range values leave the
// position unchanged.
func (c *Carousel) SetIndex(i int) {
	if i >= 0 && i < len(c.items) {
		c.index = i
	}
}

// Window returns the visible slice of up to size consecutive items
// starting at the current position, wrapping around the end. A list
// shorter than the window is returned whole, in its natural order.
func (c *Carousel) Window(size int) []string {
	n := len(c.items)
	if n == 0 {
		return []string{}
	}
	if n < size {
		out := make([]string, n)
		copy(out, c.items)
		return out
	}
	out := make([]string, 0, size)
	for i := 0; i < size; i++ {
		out = append(out, c.items[(c.index+i)%n])
	}
	return out
}

// Gallery assembles the displayed image list for a single listing: the
// primary image prepended to the secondary images, with exact-string
// duplicates removed keeping the first occurrence. Empty URLs are dropped.
func Gallery(primary string, secondary []string) []string {
	seen := make(map[string]bool, len(secondary)+1)
	var out []string
	for _, url := range append([]string{primary}, secondary...) {
		if url == "" || seen[url] {
			continue
		}
		seen[url] = true
		out = append(out, url)
	}
	return out
}
