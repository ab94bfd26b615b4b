package dma

// State is the DMA controller's full persisted state.
type State struct {
	St              uint8
	LegacySrc       uint16
	LegacyOffset    int
	HDMA1, HDMA2    uint8
	HDMA3, HDMA4    uint8
	Src, Dst        uint16
	Remaining       int
	CancelRequested bool
	Canceled        bool
	CPUWasEnabled   bool
	HalfTickParity  bool
}

// SaveState snapshots the controller.
func (d *Controller) SaveState() State {
	return State{
		St:              uint8(d.st),
		LegacySrc:       d.legacySrc,
		LegacyOffset:    d.legacyOffset,
		HDMA1:           d.hdma1,
		HDMA2:           d.hdma2,
		HDMA3:           d.hdma3,
		HDMA4:           d.hdma4,
		Src:             d.src,
		Dst:             d.dst,
		Remaining:       d.remaining,
		CancelRequested: d.cancelRequested,
		Canceled:        d.canceled,
		CPUWasEnabled:   d.cpuWasEnabled,
		HalfTickParity:  d.halfTickParity,
	}
}

// LoadState restores a snapshot returned by SaveState.
func (d *Controller) LoadState(s State) {
	d.st = state(s.St)
	d.legacySrc = s.LegacySrc
	d.legacyOffset = s.LegacyOffset
	d.hdma1, d.hdma2, d.hdma3, d.hdma4 = s.HDMA1, s.HDMA2, s.HDMA3, s.HDMA4
	d.src, d.dst = s.Src, s.Dst
	d.remaining = s.Remaining
	d.cancelRequested = s.CancelRequested
	d.canceled = s.Canceled
	d.cpuWasEnabled = s.CPUWasEnabled
	d.halfTickParity = s.HalfTickParity
}
