package speed

// State is the speed controller's full persisted state.
type State struct {
	DoubleSpeed bool
	Prepared    bool
}

// SaveState snapshots the controller.
func (c *Controller) SaveState() State {
	return State{DoubleSpeed: c.doubleSpeed, Prepared: c.prepared}
}

// LoadState restores a snapshot returned by SaveState.
func (c *Controller) LoadState(s State) {
	c.doubleSpeed = s.DoubleSpeed
	c.prepared = s.Prepared
}
