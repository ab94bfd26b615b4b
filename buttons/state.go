package buttons

// State is the button controller's full persisted state.
type State struct {
	ActionSelected    bool
	DirectionSelected bool
	ActionState       uint8
	DirectionState    uint8
	DeferredAction    bool
	DeferredDirection bool
	ActionEdge        bool
	DirectionEdge     bool
}

// SaveState snapshots the controller.
func (c *Controller) SaveState() State {
	return State{
		ActionSelected:    c.actionSelected,
		DirectionSelected: c.directionSelected,
		ActionState:       c.actionState,
		DirectionState:    c.directionState,
		DeferredAction:    c.deferredAction,
		DeferredDirection: c.deferredDirection,
		ActionEdge:        c.actionEdge.Value(),
		DirectionEdge:     c.directionEdge.Value(),
	}
}

// LoadState restores a snapshot returned by SaveState.
func (c *Controller) LoadState(s State) {
	c.actionSelected = s.ActionSelected
	c.directionSelected = s.DirectionSelected
	c.actionState = s.ActionState
	c.directionState = s.DirectionState
	c.deferredAction = s.DeferredAction
	c.deferredDirection = s.DeferredDirection
	c.actionEdge.SetValue(s.ActionEdge)
	c.directionEdge.SetValue(s.DirectionEdge)
}
