package memory

// stack is the 127-byte "high RAM" region at FF80-FFFE, the fastest RAM on
// the system and the conventional home of the stack.
type stack struct {
	b [0x7F]uint8
}

func (s *stack) read(addr uint16) uint8    { return s.b[addr-0xFF80] }
func (s *stack) write(addr uint16, v uint8) { s.b[addr-0xFF80] = v }

// echoArea is the E000-FDFF "reserved" region. Real hardware mirrors WRAM
// here; per the decision recorded in DESIGN.md this core implements it as a
// plain linear buffer rather than a true WRAM mirror, an acceptable degraded
// form since no licensed software relies on the mirroring.
type echoArea struct {
	b [0xFE00 - 0xE000]uint8
}

func (e *echoArea) read(addr uint16) uint8    { return e.b[addr-0xE000] }
func (e *echoArea) write(addr uint16, v uint8) { e.b[addr-0xE000] = v }

// controlRegisters is the small grab-bag of single plain bytes that don't
// belong to any component: FF4C (unused in this core's CGB-only model) and
// FF50 (boot ROM disable latch).
type controlRegisters struct {
	ff4c     uint8
	bankFF50 uint8
}
