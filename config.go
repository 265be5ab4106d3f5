package ecsim

// Config holds process-wide tuning knobs for the storage core, in the
// same global-singleton idiom the teacher library uses for table event
// hooks: a zero-value-usable struct with setters, not a constructor
// argument threaded through every call site.
var Config = config{
	initialTableCapacity: defaultTableCapacity,
}

type config struct {
	initialTableCapacity int
}

// SetInitialTableCapacity overrides the row capacity a freshly created
// table preallocates before its first grow. Panics if n is not positive;
// this is a startup-time configuration mistake, not a runtime condition.
func (c *config) SetInitialTableCapacity(n int) {
	if n <= 0 {
		panic("ecsim: initial table capacity must be positive")
	}
	c.initialTableCapacity = n
}
