package cpu

// State is the CPU's persisted state: the register file and its three
// suspend flags. The pending micro-op queue is not persisted — it holds
// unexported closures that cannot be serialized — so a save taken
// mid-instruction drops that instruction's remaining steps: after LoadState
// the CPU fetches its next opcode from the saved PC.
type State struct {
	Regs    [12]uint8
	Enabled bool
	Stopped bool
	Halted  bool
}

// SaveState snapshots the CPU's persisted state.
func (c *CPU) SaveState() State {
	return State{Regs: c.Regs.Bytes(), Enabled: c.enabled, Stopped: c.stopped, Halted: c.halted}
}

// LoadState restores a snapshot returned by SaveState, discarding any
// in-flight micro-op queue.
func (c *CPU) LoadState(s State) {
	c.Regs.SetBytes(s.Regs)
	c.enabled = s.Enabled
	c.stopped = s.Stopped
	c.halted = s.Halted
	c.queue = nil
}
