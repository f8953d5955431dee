package counter

import "time"

// Group holds the counters of one mounted slide.
type Group struct {
	counters map[string]*Counter
	order    []string
}

// NewGroup returns an empty group.
func NewGroup() *Group {
	return &Group{counters: map[string]*Counter{}}
}

// Add registers a counter under name. Re-adding an existing name retargets
// the existing counter instead of restarting it.
func (g *Group) Add(name string, target float64, opts Options) *Counter {
	if c, ok := g.counters[name]; ok {
		c.Retarget(target)
		return c
	}
	c := New(target, opts)
	g.counters[name] = c
	g.order = append(g.order, name)
	return c
}

// Display returns the formatted value of the named counter, or the formatted
// fallback when no such counter exists.
func (g *Group) Display(name string, fallback float64) string {
	if c, ok := g.counters[name]; ok {
		return c.Display()
	}
	return FormatNumber(fallback)
}

// Step advances every counter by dt.
func (g *Group) Step(dt time.Duration) {
	for _, name := range g.order {
		g.counters[name].Step(dt)
	}
}

// Done reports whether every counter has committed its final value.
func (g *Group) Done() bool {
	for _, c := range g.counters {
		if !c.Done() {
			return false
		}
	}
	return true
}

// Finish commits every counter.
func (g *Group) Finish() {
	for _, c := range g.counters {
		c.Finish()
	}
}

// Len returns the number of counters.
func (g *Group) Len() int {
	return len(g.order)
}
