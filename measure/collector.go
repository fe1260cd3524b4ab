package measure

import (
	"cmp"
	"slices"
)

// Collector gathers the measurements of one measure over many files.
type Collector struct {
	measure string
	top     int
	items   []Measurement
	total   int
}

// NewCollector keeps the top largest measurements, all of them if top is
// not positive.
func NewCollector(measure string, top int) *Collector {
	return &Collector{measure: measure, top: top}
}

func (c *Collector) Measure() string { return c.measure }

func (c *Collector) Add(ms ...Measurement) {
	for _, m := range ms {
		c.total += m.Count
		c.items = append(c.items, m)
	}
}

// Len is the number of measurements added.
func (c *Collector) Len() int { return len(c.items) }

func (c *Collector) Total() int { return c.total }

// Average is the mean count, zero if nothing was added.
func (c *Collector) Average() float64 {
	if len(c.items) == 0 {
		return 0
	}
	return float64(c.total) / float64(len(c.items))
}

// Top returns the largest measurements, ties sorted by unit name.
func (c *Collector) Top() []Measurement {
	ret := slices.Clone(c.items)
	slices.SortStableFunc(ret, func(a, b Measurement) int {
		if n := cmp.Compare(b.Count, a.Count); n != 0 {
			return n
		}
		return cmp.Compare(a.Unit, b.Unit)
	})
	if c.top > 0 && len(ret) > c.top {
		ret = ret[:c.top]
	}
	return ret
}
