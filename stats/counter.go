/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 *
 * Shared argmax counter for §4.3's three statistics passes, generalizing the
 * insertion-order tie-break pattern already used by model.TextBlock's
 * FontName/FontSize helpers to both float64- and string-keyed counts.
 */

package stats

// FloatCounter counts occurrences of rounded float64 values and returns the
// argmax, breaking ties by first-seen order (so results are deterministic
// across runs of the same document).
type FloatCounter struct {
	counts map[float64]int
	order  []float64
}

// Add records one occurrence of `v`.
func (c *FloatCounter) Add(v float64) {
	if c.counts == nil {
		c.counts = map[float64]int{}
	}
	if _, ok := c.counts[v]; !ok {
		c.order = append(c.order, v)
	}
	c.counts[v]++
}

// Argmax returns the most-frequent value and whether any value was recorded.
func (c *FloatCounter) Argmax() (float64, bool) {
	var best float64
	bestCount := 0
	found := false
	for _, v := range c.order {
		if c.counts[v] > bestCount {
			best, bestCount, found = v, c.counts[v], true
		}
	}
	return best, found
}

// StringCounter is FloatCounter's twin for string-keyed counts (font names).
type StringCounter struct {
	counts map[string]int
	order  []string
}

// Add records one occurrence of `v`. Empty strings are ignored since an
// absent font name must never win an argmax.
func (c *StringCounter) Add(v string) {
	if v == "" {
		return
	}
	if c.counts == nil {
		c.counts = map[string]int{}
	}
	if _, ok := c.counts[v]; !ok {
		c.order = append(c.order, v)
	}
	c.counts[v]++
}

// Argmax returns the most-frequent value and whether any value was recorded.
func (c *StringCounter) Argmax() (string, bool) {
	best := ""
	bestCount := 0
	found := false
	for _, v := range c.order {
		if c.counts[v] > bestCount {
			best, bestCount, found = v, c.counts[v], true
		}
	}
	return best, found
}
