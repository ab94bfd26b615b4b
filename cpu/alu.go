package cpu

import "github.com/jrfarr/dmgcore/register"

// addFlags computes the Z/N/H/C flags for an 8-bit a+b+carryIn, per
// spec.md §4.2: H from carry out of bit 3, C from carry out of bit 7.
func addFlags(a, b uint8, carryIn bool) (result uint8, z, n, h, cy bool) {
	var c uint16
	if carryIn {
		c = 1
	}
	sum := uint16(a) + uint16(b) + c
	result = uint8(sum)
	z = result == 0
	n = false
	h = (a&0xF)+(b&0xF)+uint8(c) > 0xF
	cy = sum > 0xFF
	return
}

// subFlags computes the Z/N/H/C flags for an 8-bit a-b-carryIn, per
// spec.md §4.2: H from borrow into bit 4, C from borrow out of bit 8.
func subFlags(a, b uint8, carryIn bool) (result uint8, z, n, h, cy bool) {
	var c int
	if carryIn {
		c = 1
	}
	diff := int(a) - int(b) - c
	result = uint8(diff)
	z = result == 0
	n = true
	h = int(a&0xF)-int(b&0xF)-c < 0
	cy = diff < 0
	return
}

// aluOp applies one of the eight ALU operations (table index from the main
// opcode's y field) to A and operand, storing the result in A (CP only
// updates flags) and updating Z/N/H/C.
func (c *CPU) aluOp(op uint8, operand uint8) {
	a := c.Regs.ReadByte(register.A)
	carry := c.Regs.Flag(register.FlagC)

	var result uint8
	var z, n, h, cy bool
	switch op {
	case 0: // ADD
		result, z, n, h, cy = addFlags(a, operand, false)
	case 1: // ADC
		result, z, n, h, cy = addFlags(a, operand, carry)
	case 2: // SUB
		result, z, n, h, cy = subFlags(a, operand, false)
	case 3: // SBC
		result, z, n, h, cy = subFlags(a, operand, carry)
	case 4: // AND
		result = a & operand
		z, n, h, cy = result == 0, false, true, false
	case 5: // XOR
		result = a ^ operand
		z, n, h, cy = result == 0, false, false, false
	case 6: // OR
		result = a | operand
		z, n, h, cy = result == 0, false, false, false
	case 7: // CP
		result, z, n, h, cy = subFlags(a, operand, false)
		result = a // CP leaves A unchanged
	}

	if op != 7 {
		c.Regs.WriteByte(register.A, result)
	}
	c.setZNHC(z, n, h, cy)
}

func (c *CPU) setZNHC(z, n, h, cy bool) {
	c.Regs.SetFlag(register.FlagZ, z)
	c.Regs.SetFlag(register.FlagN, n)
	c.Regs.SetFlag(register.FlagH, h)
	c.Regs.SetFlag(register.FlagC, cy)
}

// incByte increments v, setting Z/H (N=0) and leaving C untouched, per
// spec.md's Inc/Dec byte rule.
func (c *CPU) incByte(v uint8) uint8 {
	r := v + 1
	c.Regs.SetFlag(register.FlagZ, r == 0)
	c.Regs.SetFlag(register.FlagN, false)
	c.Regs.SetFlag(register.FlagH, v&0x0F == 0x0F)
	return r
}

// decByte decrements v, setting Z/H (N=1) and leaving C untouched.
func (c *CPU) decByte(v uint8) uint8 {
	r := v - 1
	c.Regs.SetFlag(register.FlagZ, r == 0)
	c.Regs.SetFlag(register.FlagN, true)
	c.Regs.SetFlag(register.FlagH, v&0x0F == 0)
	return r
}

// addWordFlags computes H/C for a 16-bit add from the high-byte addition,
// per spec.md: bits 4 and 8 of (hi_a xor hi_b xor hi_r). Z is left
// untouched by the caller (ADD HL,rr never affects Z).
func addWordFlags(a, b uint16) (result uint16, h, cy bool) {
	sum := uint32(a) + uint32(b)
	result = uint16(sum)
	h = (a^b^result)&0x1000 != 0
	cy = sum > 0xFFFF
	return
}

// addSPOffsetFlags implements the shared ADD SP,e / LD HL,SP+e flag rule:
// the addition is performed as an 8-bit add of SP's low byte and e (sign
// extended), with 8-bit carry/half-carry, and Z/N always cleared.
func addSPOffsetFlags(sp uint16, e int8) (result uint16, h, cy bool) {
	lo := uint8(sp)
	_, _, _, h, cy = addFlags(lo, uint8(e), false)
	result = uint16(int32(sp) + int32(e))
	return
}

// daa implements the BCD correction after ADD/SUB, per spec.md §4.2.
func (c *CPU) daa() {
	a := c.Regs.ReadByte(register.A)
	n := c.Regs.Flag(register.FlagN)
	h := c.Regs.Flag(register.FlagH)
	cy := c.Regs.Flag(register.FlagC)

	var adjust uint8
	newCarry := cy
	if !n {
		if h || a&0x0F > 0x09 {
			adjust |= 0x06
		}
		if cy || a > 0x99 {
			adjust |= 0x60
			newCarry = true
		}
		a += adjust
	} else {
		if h {
			adjust |= 0x06
		}
		if cy {
			adjust |= 0x60
		}
		a -= adjust
	}

	c.Regs.WriteByte(register.A, a)
	c.Regs.SetFlag(register.FlagZ, a == 0)
	c.Regs.SetFlag(register.FlagH, false)
	c.Regs.SetFlag(register.FlagC, newCarry)
}

// rotateLeft rotates v left by one bit, optionally through the carry flag
// (RL vs RLC); forceZClear is set for the accumulator-only forms (RLCA,
// RLA), which always clear Z regardless of the result.
func (c *CPU) rotateLeft(v uint8, throughCarry bool, forceZClear bool) uint8 {
	var carryIn uint8
	if throughCarry && c.Regs.Flag(register.FlagC) {
		carryIn = 1
	} else if !throughCarry {
		carryIn = v >> 7
	}
	out := v>>7 != 0
	result := (v << 1) | carryIn
	c.finishShift(result, out, forceZClear)
	return result
}

// rotateRight rotates v right by one bit, optionally through the carry
// flag (RR vs RRC).
func (c *CPU) rotateRight(v uint8, throughCarry bool, forceZClear bool) uint8 {
	var carryIn uint8
	if throughCarry && c.Regs.Flag(register.FlagC) {
		carryIn = 1 << 7
	} else if !throughCarry {
		carryIn = (v & 1) << 7
	}
	out := v&1 != 0
	result := (v >> 1) | carryIn
	c.finishShift(result, out, forceZClear)
	return result
}

// shiftLeftArithmetic implements SLA: shift left, bit 0 becomes 0.
func (c *CPU) shiftLeftArithmetic(v uint8) uint8 {
	out := v>>7 != 0
	result := v << 1
	c.finishShift(result, out, false)
	return result
}

// shiftRightArithmetic implements SRA: shift right, bit 7 preserved.
func (c *CPU) shiftRightArithmetic(v uint8) uint8 {
	out := v&1 != 0
	result := (v >> 1) | (v & 0x80)
	c.finishShift(result, out, false)
	return result
}

// shiftRightLogical implements SRL: shift right, bit 7 becomes 0.
func (c *CPU) shiftRightLogical(v uint8) uint8 {
	out := v&1 != 0
	result := v >> 1
	c.finishShift(result, out, false)
	return result
}

// swapNibbles implements SWAP: exchange the high and low nibbles; C is
// always cleared.
func (c *CPU) swapNibbles(v uint8) uint8 {
	result := (v << 4) | (v >> 4)
	c.Regs.SetFlag(register.FlagZ, result == 0)
	c.Regs.SetFlag(register.FlagN, false)
	c.Regs.SetFlag(register.FlagH, false)
	c.Regs.SetFlag(register.FlagC, false)
	return result
}

func (c *CPU) finishShift(result uint8, carryOut bool, forceZClear bool) {
	z := result == 0 && !forceZClear
	c.setZNHC(z, false, false, carryOut)
}

// testBit implements BIT b,r: sets Z from the tested bit, clears N, sets H,
// leaves C untouched.
func (c *CPU) testBit(v uint8, bit uint8) {
	c.Regs.SetFlag(register.FlagZ, v&(1<<bit) == 0)
	c.Regs.SetFlag(register.FlagN, false)
	c.Regs.SetFlag(register.FlagH, true)
}
