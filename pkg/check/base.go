package check

// BaseCheck provides the descriptive half of the Check interface.
// Embed it in check implementations and add a Run method.
//
// Fields are unexported to avoid name collisions with the interface
// methods. Use NewBaseCheck to construct one.
type BaseCheck struct {
	id          string // Unique identifier (e.g., "duplicate-table")
	description string // One-line description
	disableable bool   // Whether the check may be turned off
}

// NewBaseCheck creates a BaseCheck with the given properties.
func NewBaseCheck(id, description string, disableable bool) BaseCheck {
	return BaseCheck{
		id:          id,
		description: description,
		disableable: disableable,
	}
}

// ID returns the unique identifier for this check.
func (c *BaseCheck) ID() string {
	return c.id
}

// Description returns a one-line description of what the check looks for.
func (c *BaseCheck) Description() string {
	return c.description
}

// Disableable reports whether the check may be turned off.
func (c *BaseCheck) Disableable() bool {
	return c.disableable
}

// Run must be overridden by concrete check implementations.
// The default implementation returns no findings.
func (c *BaseCheck) Run(_ *Context) ([]Finding, error) {
	return nil, nil
}
