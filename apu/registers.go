package apu

// Register addresses, grounded on the original implementation's
// MemoryAddress constants.
const (
	nr10 = 0xFF10
	nr11 = 0xFF11
	nr12 = 0xFF12
	nr13 = 0xFF13
	nr14 = 0xFF14
	nr21 = 0xFF16
	nr22 = 0xFF17
	nr23 = 0xFF18
	nr24 = 0xFF19
	nr30 = 0xFF1A
	nr31 = 0xFF1B
	nr32 = 0xFF1C
	nr33 = 0xFF1D
	nr34 = 0xFF1E
	nr41 = 0xFF20
	nr42 = 0xFF21
	nr43 = 0xFF22
	nr44 = 0xFF23
	nr50 = 0xFF24
	nr51 = 0xFF25
	nr52 = 0xFF26
)

// ReadRegister implements memory.Audio: reads of FF10-FF26 and the FF30-FF3F
// wave RAM window.
func (c *Controller) ReadRegister(addr uint16) uint8 {
	switch addr {
	case nr10:
		return c.ch1Pulse.newSettings.shift |
			boolToBit(c.ch1Pulse.newSettings.decrease, 3) |
			c.ch1Pulse.newSettings.pace<<4
	case nr11:
		return dutyCycleBits(c.ch1Pulse.newSettings.dutyCycle)<<6 | uint8(c.ch1Length.newInitialValue)
	case nr12:
		return c.ch1Gain.newPace |
			boolToBit(c.ch1Gain.newAscending, 3) |
			c.ch1Gain.newInitialValue<<4
	case nr13:
		return c.ch1Pulse.newSettings.lowerWavelengthBits()
	case nr14:
		return c.ch1Pulse.newSettings.upperWavelengthBits() | boolToBit(c.ch1Length.enabled, 6)
	case 0xFF15:
		return 0
	case nr21:
		return dutyCycleBits(c.ch2Pulse.newSettings.dutyCycle)<<6 | uint8(c.ch2Length.newInitialValue)
	case nr22:
		return c.ch2Gain.newPace |
			boolToBit(c.ch2Gain.newAscending, 3) |
			c.ch2Gain.newInitialValue<<4
	case nr23:
		return c.ch2Pulse.newSettings.lowerWavelengthBits()
	case nr24:
		return c.ch2Pulse.newSettings.upperWavelengthBits() | boolToBit(c.ch2Length.enabled, 6)
	case nr30:
		if c.ch3Wave.dacEnabled {
			return 0x80
		}
		return 0
	case nr31:
		return uint8(c.ch3Length.newInitialValue)
	case nr32:
		return c.ch3Wave.gain << 5
	case nr33:
		return c.ch3Wave.lowerWavelengthBits()
	case nr34:
		return c.ch3Wave.upperWavelengthBits() | boolToBit(c.ch3Length.enabled, 6)
	case 0xFF1F:
		return 0
	case nr41:
		return uint8(c.ch4Length.newInitialValue)
	case nr42:
		return c.ch4Gain.newPace |
			boolToBit(c.ch4Gain.newAscending, 3) |
			c.ch4Gain.newInitialValue<<4
	case nr43:
		return c.ch4Noise.clockShift<<4 | boolToBit(c.ch4Noise.short, 3) | c.ch4Noise.clockDivider
	case nr44:
		return boolToBit(c.ch4Length.enabled, 6)
	case nr50:
		return c.masterVolume
	case nr51:
		return c.mixingControl
	case nr52:
		return boolToBit(c.ch1Pulse.playing, 0) |
			boolToBit(c.ch2Pulse.playing, 1) |
			boolToBit(c.ch3Wave.playing, 2) |
			boolToBit(c.ch4Noise.playing, 3) |
			boolToBit(c.enabled, 7)
	}
	if addr >= 0xFF27 && addr <= 0xFF2F {
		return 0
	}
	if addr >= 0xFF30 && addr <= 0xFF3F {
		return c.ch3Wave.waveform[addr-0xFF30]
	}
	return 0xFF
}

// WriteRegister implements memory.Audio.
func (c *Controller) WriteRegister(addr uint16, val uint8) {
	switch addr {
	case nr10:
		c.ch1Pulse.newSettings.shift = val & 0x07
		c.ch1Pulse.newSettings.decrease = val&(1<<3) != 0
		c.ch1Pulse.setPace((val >> 4) & 0x07)
	case nr11:
		c.ch1Pulse.newSettings.dutyCycle = dutyCycleFromBits(val >> 6)
		c.ch1Length.newInitialValue = uint16(val & 0x3F)
	case nr12:
		c.ch1Gain.newPace = val & 0x07
		c.ch1Gain.newAscending = val&(1<<3) != 0
		c.ch1Gain.newInitialValue = val >> 4
	case nr13:
		c.ch1Pulse.newSettings.setLowerWavelengthBits(val)
	case nr14:
		c.ch1Pulse.newSettings.setUpperWavelengthBits(val)
		c.ch1Length.enabled = val&(1<<6) != 0
		if val&(1<<7) != 0 {
			c.trigger(ch1)
		}
	case 0xFF15:
	case nr21:
		c.ch2Pulse.newSettings.dutyCycle = dutyCycleFromBits(val >> 6)
		c.ch2Length.newInitialValue = uint16(val & 0x3F)
	case nr22:
		c.ch2Gain.newPace = val & 0x07
		c.ch2Gain.newAscending = val&(1<<3) != 0
		c.ch2Gain.newInitialValue = val >> 4
	case nr23:
		c.ch2Pulse.newSettings.setLowerWavelengthBits(val)
	case nr24:
		c.ch2Pulse.newSettings.setUpperWavelengthBits(val)
		c.ch2Length.enabled = val&(1<<6) != 0
		if val&(1<<7) != 0 {
			c.trigger(ch2)
		}
	case nr30:
		c.ch3Wave.setDACEnabled(val&(1<<7) != 0)
	case nr31:
		c.ch3Length.newInitialValue = uint16(val)
	case nr32:
		c.ch3Wave.setGain((val >> 5) & 0x03)
	case nr33:
		c.ch3Wave.setLowerWavelengthBits(val)
	case nr34:
		c.ch3Wave.setUpperWavelengthBits(val)
		c.ch3Length.enabled = val&(1<<6) != 0
		if val&(1<<7) != 0 {
			c.trigger(ch3)
		}
	case 0xFF1F:
	case nr41:
		c.ch4Length.newInitialValue = uint16(val & 0x3F)
	case nr42:
		c.ch4Gain.newPace = val & 0x07
		c.ch4Gain.newAscending = val&(1<<3) != 0
		c.ch4Gain.newInitialValue = val >> 4
	case nr43:
		c.ch4Noise.clockDivider = val & 0x07
		c.ch4Noise.short = val&(1<<3) != 0
		c.ch4Noise.clockShift = val >> 4
	case nr44:
		c.ch4Length.enabled = val&(1<<6) != 0
		if val&(1<<7) != 0 {
			c.trigger(ch4)
		}
	case nr50:
		c.masterVolume = val
		c.audio.SetMasterVolume(val)
	case nr51:
		c.mixingControl = val
		c.mixingControlChanged.set()
	case nr52:
		if val&(1<<7) == 0 {
			c.disabledRequest.set()
		} else {
			c.enabled = true
		}
	default:
		if addr >= 0xFF30 && addr <= 0xFF3F {
			c.ch3Wave.waveform[addr-0xFF30] = val
		}
		// FF1F, FF27-FF2F: unused, writes swallowed
	}
}
