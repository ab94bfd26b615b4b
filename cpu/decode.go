package cpu

import "github.com/jrfarr/dmgcore/register"

// dispatch decodes one main-table opcode and executes/schedules its work.
// Opcodes are decomposed into the standard x/y/z/p/q bitfields (x = bits
// 7-6, y = bits 5-3, z = bits 2-0, p = y>>1, q = y&1); the resulting table
// shape is exactly what the CB table (decode_cb.go) also exploits, per the
// regularity noted in SPEC_FULL.md/DESIGN.md.
func (c *CPU) dispatch(op uint8) {
	x := op >> 6
	y := (op >> 3) & 7
	z := op & 7
	p := y >> 1
	q := y & 1

	switch x {
	case 0:
		c.dispatchX0(op, y, z, p, q)
	case 1:
		c.dispatchX1(y, z)
	case 2:
		if z == 6 {
			c.schedule(func(c *CPU) { c.aluOp(y, c.readR(z)) })
		} else {
			c.aluOp(y, c.readR(z))
		}
	case 3:
		c.dispatchX3(op, y, z, p, q)
	}
}

// readR reads one of the eight r-field-addressed byte locations: registers
// B,C,D,E,H,L,A directly, or memory at (HL) for field value 6.
func (c *CPU) readR(field uint8) uint8 {
	if field == 6 {
		return c.bus.ReadByte(c.Regs.ReadWord(register.HL))
	}
	return c.Regs.ReadByte(register.RegFromR(field))
}

func (c *CPU) writeR(field uint8, v uint8) {
	if field == 6 {
		c.bus.WriteByte(c.Regs.ReadWord(register.HL), v)
		return
	}
	c.Regs.WriteByte(register.RegFromR(field), v)
}

func (c *CPU) dispatchX0(op, y, z, p, q uint8) {
	switch z {
	case 0:
		switch {
		case y == 0: // NOP
		case y == 1: // LD (nn),SP
			c.schedule(
				func(c *CPU) { c.scratchByte = c.fetchByte() },
				func(c *CPU) {
					hi := c.fetchByte()
					c.scratchAddr = uint16(hi)<<8 | uint16(c.scratchByte)
				},
				func(c *CPU) {
					sp := c.Regs.ReadWord(register.SP)
					c.bus.WriteByte(c.scratchAddr, uint8(sp))
				},
				func(c *CPU) {
					sp := c.Regs.ReadWord(register.SP)
					c.bus.WriteByte(c.scratchAddr+1, uint8(sp>>8))
				},
			)
		case y == 2: // STOP
			c.schedule(func(c *CPU) {
				c.fetchByte() // the mandatory (and ignored) 0x00 that follows STOP
				c.stopped = true
			})
		case y == 3: // JR e
			c.schedule(
				func(c *CPU) { c.scratchByte = c.fetchByte() },
				func(c *CPU) { c.jumpRelative(int8(c.scratchByte)) },
			)
		default: // y = 4..7: JR cc,e
			cond := register.CondFromCC(y - 4)
			c.schedule(func(c *CPU) {
				e := c.fetchByte()
				if c.Regs.Test(cond) {
					c.schedule(func(c *CPU) { c.jumpRelative(int8(e)) })
				}
			})
		}

	case 1:
		rp := register.PairFromDD(p)
		if q == 0 { // LD rp,nn
			c.schedule(
				func(c *CPU) { c.scratchByte = c.fetchByte() },
				func(c *CPU) {
					hi := c.fetchByte()
					c.Regs.WriteWord(rp, uint16(hi)<<8|uint16(c.scratchByte))
				},
			)
		} else { // ADD HL,rp
			c.schedule(func(c *CPU) {
				hl := c.Regs.ReadWord(register.HL)
				operand := c.Regs.ReadWord(rp)
				result, h, cy := addWordFlags(hl, operand)
				c.Regs.WriteWord(register.HL, result)
				c.Regs.SetFlag(register.FlagN, false)
				c.Regs.SetFlag(register.FlagH, h)
				c.Regs.SetFlag(register.FlagC, cy)
			})
		}

	case 2:
		c.schedule(func(c *CPU) { c.indirectLoadStore(p, q) })

	case 3:
		rp := register.PairFromDD(p)
		c.schedule(func(c *CPU) {
			v := c.Regs.ReadWord(rp)
			if q == 0 {
				v++
			} else {
				v--
			}
			c.Regs.WriteWord(rp, v)
		})

	case 4: // INC r[y]
		if y == 6 {
			c.schedule(
				func(c *CPU) { c.scratchByte = c.bus.ReadByte(c.Regs.ReadWord(register.HL)) },
				func(c *CPU) { c.bus.WriteByte(c.Regs.ReadWord(register.HL), c.incByte(c.scratchByte)) },
			)
		} else {
			r := register.RegFromR(y)
			c.Regs.WriteByte(r, c.incByte(c.Regs.ReadByte(r)))
		}

	case 5: // DEC r[y]
		if y == 6 {
			c.schedule(
				func(c *CPU) { c.scratchByte = c.bus.ReadByte(c.Regs.ReadWord(register.HL)) },
				func(c *CPU) { c.bus.WriteByte(c.Regs.ReadWord(register.HL), c.decByte(c.scratchByte)) },
			)
		} else {
			r := register.RegFromR(y)
			c.Regs.WriteByte(r, c.decByte(c.Regs.ReadByte(r)))
		}

	case 6: // LD r[y],n
		if y == 6 {
			c.schedule(
				func(c *CPU) { c.scratchByte = c.fetchByte() },
				func(c *CPU) { c.bus.WriteByte(c.Regs.ReadWord(register.HL), c.scratchByte) },
			)
		} else {
			r := register.RegFromR(y)
			c.schedule(func(c *CPU) { c.Regs.WriteByte(r, c.fetchByte()) })
		}

	case 7: // accumulator rotate/misc ops
		c.accumulatorOrMisc(y)
	}
}

// indirectLoadStore handles the four LD (BC/DE/HL+/HL-),A and LD
// A,(BC/DE/HL+/HL-) opcodes, sharing the p/q decomposition with the
// INC/DEC-rp and ADD-HL-rp rows.
func (c *CPU) indirectLoadStore(p, q uint8) {
	var addr uint16
	switch p {
	case 0:
		addr = c.Regs.ReadWord(register.BC)
	case 1:
		addr = c.Regs.ReadWord(register.DE)
	case 2, 3:
		addr = c.Regs.ReadWord(register.HL)
	}

	if q == 0 {
		c.bus.WriteByte(addr, c.Regs.ReadByte(register.A))
	} else {
		c.Regs.WriteByte(register.A, c.bus.ReadByte(addr))
	}

	switch p {
	case 2:
		c.Regs.WriteWord(register.HL, addr+1)
	case 3:
		c.Regs.WriteWord(register.HL, addr-1)
	}
}

func (c *CPU) jumpRelative(e int8) {
	pc := c.Regs.ReadWord(register.PC)
	c.Regs.WriteWord(register.PC, uint16(int32(pc)+int32(e)))
}

func (c *CPU) accumulatorOrMisc(y uint8) {
	a := c.Regs.ReadByte(register.A)
	switch y {
	case 0: // RLCA
		c.Regs.WriteByte(register.A, c.rotateLeft(a, false, true))
	case 1: // RRCA
		c.Regs.WriteByte(register.A, c.rotateRight(a, false, true))
	case 2: // RLA
		c.Regs.WriteByte(register.A, c.rotateLeft(a, true, true))
	case 3: // RRA
		c.Regs.WriteByte(register.A, c.rotateRight(a, true, true))
	case 4: // DAA
		c.daa()
	case 5: // CPL
		c.Regs.WriteByte(register.A, ^a)
		c.Regs.SetFlag(register.FlagN, true)
		c.Regs.SetFlag(register.FlagH, true)
	case 6: // SCF
		c.Regs.SetFlag(register.FlagN, false)
		c.Regs.SetFlag(register.FlagH, false)
		c.Regs.SetFlag(register.FlagC, true)
	case 7: // CCF
		c.Regs.SetFlag(register.FlagN, false)
		c.Regs.SetFlag(register.FlagH, false)
		c.Regs.SetFlag(register.FlagC, !c.Regs.Flag(register.FlagC))
	}
}

func (c *CPU) dispatchX1(y, z uint8) {
	if y == 6 && z == 6 { // HALT
		c.halted = true
		return
	}
	if z == 6 { // LD r,(HL)
		r := register.RegFromR(y)
		c.schedule(func(c *CPU) {
			c.Regs.WriteByte(r, c.bus.ReadByte(c.Regs.ReadWord(register.HL)))
		})
		return
	}
	if y == 6 { // LD (HL),r
		src := register.RegFromR(z)
		c.schedule(func(c *CPU) {
			c.bus.WriteByte(c.Regs.ReadWord(register.HL), c.Regs.ReadByte(src))
		})
		return
	}
	c.Regs.WriteByte(register.RegFromR(y), c.Regs.ReadByte(register.RegFromR(z)))
}

func (c *CPU) dispatchX3(op, y, z, p, q uint8) {
	switch z {
	case 0:
		switch {
		case y <= 3: // RET cc
			cond := register.CondFromCC(y)
			c.schedule(func(c *CPU) {
				if !c.Regs.Test(cond) {
					return
				}
				c.schedule(
					func(c *CPU) { c.scratchByte = c.popByte() },
					func(c *CPU) {
						hi := c.popByte()
						c.Regs.WriteWord(register.PC, uint16(hi)<<8|uint16(c.scratchByte))
					},
					func(c *CPU) {},
				)
			})
		case y == 4: // LDH (n),A
			c.schedule(
				func(c *CPU) { c.scratchByte = c.fetchByte() },
				func(c *CPU) {
					c.bus.WriteByte(0xFF00+uint16(c.scratchByte), c.Regs.ReadByte(register.A))
				},
			)
		case y == 5: // ADD SP,e
			c.schedule(
				func(c *CPU) { c.scratchByte = c.fetchByte() },
				func(c *CPU) {},
				func(c *CPU) {
					sp := c.Regs.ReadWord(register.SP)
					result, h, cy := addSPOffsetFlags(sp, int8(c.scratchByte))
					c.Regs.WriteWord(register.SP, result)
					c.setZNHC(false, false, h, cy)
				},
			)
		case y == 6: // LDH A,(n)
			c.schedule(
				func(c *CPU) { c.scratchByte = c.fetchByte() },
				func(c *CPU) {
					c.Regs.WriteByte(register.A, c.bus.ReadByte(0xFF00+uint16(c.scratchByte)))
				},
			)
		case y == 7: // LD HL,SP+e
			c.schedule(
				func(c *CPU) { c.scratchByte = c.fetchByte() },
				func(c *CPU) {
					sp := c.Regs.ReadWord(register.SP)
					result, h, cy := addSPOffsetFlags(sp, int8(c.scratchByte))
					c.Regs.WriteWord(register.HL, result)
					c.setZNHC(false, false, h, cy)
				},
			)
		}

	case 1:
		if q == 0 { // POP rp2
			rp2 := register.PairFromQQ(p)
			c.schedule(
				func(c *CPU) { c.scratchByte = c.popByte() },
				func(c *CPU) {
					hi := c.popByte()
					c.Regs.WriteWord(rp2, uint16(hi)<<8|uint16(c.scratchByte))
				},
			)
			return
		}
		switch p {
		case 0: // RET
			c.schedule(
				func(c *CPU) { c.scratchByte = c.popByte() },
				func(c *CPU) {
					hi := c.popByte()
					c.Regs.WriteWord(register.PC, uint16(hi)<<8|uint16(c.scratchByte))
				},
				func(c *CPU) {},
			)
		case 1: // RETI
			c.schedule(
				func(c *CPU) { c.scratchByte = c.popByte() },
				func(c *CPU) {
					hi := c.popByte()
					c.Regs.WriteWord(register.PC, uint16(hi)<<8|uint16(c.scratchByte))
				},
				func(c *CPU) { c.ic.SetIME(true) },
			)
		case 2: // JP HL
			c.Regs.WriteWord(register.PC, c.Regs.ReadWord(register.HL))
		case 3: // LD SP,HL
			c.schedule(func(c *CPU) {
				c.Regs.WriteWord(register.SP, c.Regs.ReadWord(register.HL))
			})
		}

	case 2:
		switch {
		case y <= 3: // JP cc,nn
			cond := register.CondFromCC(y)
			c.schedule(
				func(c *CPU) { c.scratchByte = c.fetchByte() },
				func(c *CPU) {
					hi := c.fetchByte()
					c.scratchWord = uint16(hi)<<8 | uint16(c.scratchByte)
					if c.Regs.Test(cond) {
						c.schedule(func(c *CPU) { c.Regs.WriteWord(register.PC, c.scratchWord) })
					}
				},
			)
		case y == 4: // LD (C),A
			c.schedule(func(c *CPU) {
				c.bus.WriteByte(0xFF00+uint16(c.Regs.ReadByte(register.C)), c.Regs.ReadByte(register.A))
			})
		case y == 5: // LD (nn),A
			c.schedule(
				func(c *CPU) { c.scratchByte = c.fetchByte() },
				func(c *CPU) { c.scratchWord = uint16(c.fetchByte())<<8 | uint16(c.scratchByte) },
				func(c *CPU) { c.bus.WriteByte(c.scratchWord, c.Regs.ReadByte(register.A)) },
			)
		case y == 6: // LD A,(C)
			c.schedule(func(c *CPU) {
				c.Regs.WriteByte(register.A, c.bus.ReadByte(0xFF00+uint16(c.Regs.ReadByte(register.C))))
			})
		case y == 7: // LD A,(nn)
			c.schedule(
				func(c *CPU) { c.scratchByte = c.fetchByte() },
				func(c *CPU) { c.scratchWord = uint16(c.fetchByte())<<8 | uint16(c.scratchByte) },
				func(c *CPU) { c.Regs.WriteByte(register.A, c.bus.ReadByte(c.scratchWord)) },
			)
		}

	case 3:
		switch y {
		case 0: // JP nn
			c.schedule(
				func(c *CPU) { c.scratchByte = c.fetchByte() },
				func(c *CPU) {
					hi := c.fetchByte()
					c.scratchWord = uint16(hi)<<8 | uint16(c.scratchByte)
				},
				func(c *CPU) { c.Regs.WriteWord(register.PC, c.scratchWord) },
			)
		case 1: // CB prefix
			c.schedule(func(c *CPU) { c.dispatchCB(c.fetchByte()) })
		case 6: // DI
			c.ic.SetIME(false)
		case 7: // EI
			c.ic.SetIME(true)
		}

	case 4: // CALL cc,nn
		if y > 3 {
			return
		}
		cond := register.CondFromCC(y)
		c.schedule(
			func(c *CPU) { c.scratchByte = c.fetchByte() },
			func(c *CPU) {
				hi := c.fetchByte()
				c.scratchWord = uint16(hi)<<8 | uint16(c.scratchByte)
				if c.Regs.Test(cond) {
					c.schedule(c.callSteps()...)
				}
			},
		)

	case 5:
		if q == 0 { // PUSH rp2
			rp2 := register.PairFromQQ(p)
			c.schedule(
				func(c *CPU) {},
				func(c *CPU) { c.pushByte(uint8(c.Regs.ReadWord(rp2) >> 8)) },
				func(c *CPU) { c.pushByte(uint8(c.Regs.ReadWord(rp2))) },
			)
			return
		}
		if p == 0 { // CALL nn
			c.schedule(
				func(c *CPU) { c.scratchByte = c.fetchByte() },
				func(c *CPU) {
					hi := c.fetchByte()
					c.scratchWord = uint16(hi)<<8 | uint16(c.scratchByte)
				},
			)
			c.schedule(c.callSteps()...)
		}

	case 6: // ALU A,n
		c.schedule(func(c *CPU) { c.aluOp(y, c.fetchByte()) })

	case 7: // RST y*8
		c.scratchWord = uint16(y) * 8
		c.schedule(c.callSteps()...)
	}
}

// callSteps returns the 3 remaining M-cycle steps shared by CALL/CALL cc
// (once taken) and RST: an internal delay, then the two SP-push cycles,
// ending with the jump to the target address left in scratchWord.
func (c *CPU) callSteps() []step {
	return []step{
		func(c *CPU) {},
		func(c *CPU) { c.pushByte(uint8(c.Regs.ReadWord(register.PC) >> 8)) },
		func(c *CPU) {
			c.pushByte(uint8(c.Regs.ReadWord(register.PC)))
			c.Regs.WriteWord(register.PC, c.scratchWord)
		},
	}
}

func (c *CPU) pushByte(v uint8) {
	sp := c.Regs.ReadWord(register.SP) - 1
	c.Regs.WriteWord(register.SP, sp)
	c.bus.WriteByte(sp, v)
}

func (c *CPU) popByte() uint8 {
	sp := c.Regs.ReadWord(register.SP)
	v := c.bus.ReadByte(sp)
	c.Regs.WriteWord(register.SP, sp+1)
	return v
}
