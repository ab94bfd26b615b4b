package memory

// WRAMState is all eight 4KB work-RAM banks plus the SVBK bank select.
type WRAMState struct {
	Banks [8][wramBankSize]uint8
	SVBK  uint8
}

// StackState is the FF80-FFFE high-RAM "stack".
type StackState struct {
	B [0x7F]uint8
}

// ReservedAreaState is the E000-FDFF echo area, implemented as a linear
// buffer rather than a true WRAM mirror (see DESIGN.md).
type ReservedAreaState struct {
	B [0xFE00 - 0xE000]uint8
}

// ControlRegistersState is the small grab-bag of plain bytes the bus owns
// directly: FF4C and the FF50 boot-ROM-disable latch.
type ControlRegistersState struct {
	FF4C     uint8
	BankFF50 uint8
}

// UnmappedState is the bus's shadow of the write-only FF46 trigger byte,
// the one "unmapped" (not owned by any component) value the bus itself
// must remember to answer a readback of.
type UnmappedState struct {
	DMALastWritten uint8
}

// SaveWRAM snapshots the work-RAM banks.
func (b *Bus) SaveWRAM() WRAMState {
	return WRAMState{Banks: b.wram.banks, SVBK: b.wram.svbk}
}

// LoadWRAM restores a snapshot returned by SaveWRAM.
func (b *Bus) LoadWRAM(s WRAMState) {
	b.wram.banks = s.Banks
	b.wram.svbk = s.SVBK
}

// SaveStack snapshots the high-RAM stack.
func (b *Bus) SaveStack() StackState { return StackState{B: b.stack.b} }

// LoadStack restores a snapshot returned by SaveStack.
func (b *Bus) LoadStack(s StackState) { b.stack.b = s.B }

// SaveReservedArea snapshots the echo-area buffer.
func (b *Bus) SaveReservedArea() ReservedAreaState { return ReservedAreaState{B: b.echo.b} }

// LoadReservedArea restores a snapshot returned by SaveReservedArea.
func (b *Bus) LoadReservedArea(s ReservedAreaState) { b.echo.b = s.B }

// SaveControlRegisters snapshots FF4C and FF50.
func (b *Bus) SaveControlRegisters() ControlRegistersState {
	return ControlRegistersState{FF4C: b.ctrl.ff4c, BankFF50: b.ctrl.bankFF50}
}

// LoadControlRegisters restores a snapshot returned by SaveControlRegisters.
func (b *Bus) LoadControlRegisters(s ControlRegistersState) {
	b.ctrl.ff4c = s.FF4C
	b.ctrl.bankFF50 = s.BankFF50
}

// SaveUnmapped snapshots the FF46 readback shadow.
func (b *Bus) SaveUnmapped() UnmappedState { return UnmappedState{DMALastWritten: b.dmaLastWritten} }

// LoadUnmapped restores a snapshot returned by SaveUnmapped.
func (b *Bus) LoadUnmapped(s UnmappedState) { b.dmaLastWritten = s.DMALastWritten }
