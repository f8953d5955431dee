package counter

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
)

const (
	// DefaultDuration is how long a count-up runs once started.
	DefaultDuration = 2 * time.Second
	// DefaultFPS is the spring integration rate.
	DefaultFPS = 60

	// settleFactor scales the spring so it is within a fraction of a percent
	// of the target when the duration ends.
	settleFactor = 8.0
)

// Options configure a Counter.
type Options struct {
	Duration time.Duration
	Delay    time.Duration
	FPS      int
}

func (o Options) withDefaults() Options {
	if o.Duration <= 0 {
		o.Duration = DefaultDuration
	}
	if o.Delay < 0 {
		o.Delay = 0
	}
	if o.FPS <= 0 {
		o.FPS = DefaultFPS
	}
	return o
}

// Counter counts from zero toward a target with a critically damped spring.
// It is advanced explicitly with Step so it can be driven by any clock.
type Counter struct {
	opts   Options
	spring harmonica.Spring
	frame  time.Duration

	target float64
	pos    float64
	vel    float64

	elapsed time.Duration
	origin  time.Duration
	frames  int

	shown int64
	done  bool
}

// New creates a counter that starts after opts.Delay.
func New(target float64, opts Options) *Counter {
	opts = opts.withDefaults()
	omega := settleFactor / opts.Duration.Seconds()
	return &Counter{
		opts:   opts,
		spring: harmonica.NewSpring(harmonica.FPS(opts.FPS), omega, 1.0),
		frame:  time.Second / time.Duration(opts.FPS),
		target: target,
		origin: opts.Delay,
	}
}

// Target returns the value being counted to.
func (c *Counter) Target() float64 {
	return c.target
}

// Started reports whether the start delay has passed.
func (c *Counter) Started() bool {
	return c.elapsed >= c.opts.Delay
}

// Done reports whether the final value has been committed.
func (c *Counter) Done() bool {
	return c.done
}

// Display returns the formatted current value.
func (c *Counter) Display() string {
	if c.done {
		return FormatNumber(c.target)
	}
	return FormatNumber(float64(c.shown))
}

// Step advances the counter by dt and returns the new display.
func (c *Counter) Step(dt time.Duration) string {
	if c.done || dt <= 0 {
		return c.Display()
	}
	c.elapsed += dt
	if c.elapsed < c.origin {
		return c.Display()
	}
	run := c.elapsed - c.origin
	if run >= c.opts.Duration {
		c.commit()
		return c.Display()
	}
	want := int(run / c.frame)
	for c.frames < want {
		c.pos, c.vel = c.spring.Update(c.pos, c.vel, c.target)
		c.frames++
	}
	c.shown = c.clamp(int64(math.Round(c.pos)))
	return c.Display()
}

// Retarget moves the goal to target, continuing from the value on screen.
// Setting the same target again has no effect.
func (c *Counter) Retarget(target float64) {
	if target == c.target {
		return
	}
	c.target = target
	c.pos = float64(c.shown)
	c.done = false
	c.frames = 0
	if c.elapsed > c.origin {
		c.origin = c.elapsed
	}
}

// Finish commits the final value immediately.
func (c *Counter) Finish() {
	c.commit()
}

func (c *Counter) commit() {
	c.pos = c.target
	c.vel = 0
	c.shown = int64(math.Round(c.target))
	c.done = true
}

// clamp keeps the displayed integer moving monotonically toward the target,
// hiding any spring overshoot.
func (c *Counter) clamp(v int64) int64 {
	goal := int64(math.Round(c.target))
	if goal >= c.shown {
		if v < c.shown {
			v = c.shown
		}
		if v > goal {
			v = goal
		}
		return v
	}
	if v > c.shown {
		v = c.shown
	}
	if v < goal {
		v = goal
	}
	return v
}
