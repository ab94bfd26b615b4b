package interrupt

// State is the interrupt controller's full persisted state.
type State struct {
	IE  uint8
	IF  uint8
	IME bool
}

// SaveState snapshots the controller.
func (c *Controller) SaveState() State {
	return State{IE: c.ie, IF: c.ifl, IME: c.ime}
}

// LoadState restores a snapshot returned by SaveState.
func (c *Controller) LoadState(s State) {
	c.ie = s.IE
	c.ifl = s.IF
	c.ime = s.IME
}
