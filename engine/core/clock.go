package core

import "time"

// Clock is the time source of the frame loop. It wraps the functions used
// to read the current time and to block, so tests can drive it manually.
type Clock struct {
	now       func() time.Time
	sleep     func(time.Duration)
	startTime time.Time
	elapsed   time.Duration
}

func NewClock() *Clock {
	return NewClockWith(time.Now, time.Sleep)
}

// NewClockWith builds a clock on top of custom time functions.
func NewClockWith(now func() time.Time, sleep func(time.Duration)) *Clock {
	return &Clock{
		now:   now,
		sleep: sleep,
	}
}

// Updates the provided clock. Should be called just before checking elapsed time.
// Has no effect on non-started clocks.
func (c *Clock) Update() {
	if !c.startTime.IsZero() {
		c.elapsed = c.now().Sub(c.startTime)
	}
}

// Starts the provided clock. Resets elapsed time.
func (c *Clock) Start() {
	c.startTime = c.now()
	c.elapsed = 0
}

// Stops the provided clock. Does not reset elapsed time.
func (c *Clock) Stop() {
	c.startTime = time.Time{}
}

func (c *Clock) Elapsed() time.Duration {
	return c.elapsed
}

func (c *Clock) Now() time.Time {
	return c.now()
}

func (c *Clock) Since(t time.Time) time.Duration {
	return c.now().Sub(t)
}

// Sleep blocks for d. Non-positive durations return immediately.
func (c *Clock) Sleep(d time.Duration) {
	if d <= 0 {
		return
	}
	c.sleep(d)
}
