package mbc

import "github.com/jrfarr/dmgcore/cartridge"

const (
	nsPerSecond = 1_000_000_000
	nsPerMinute = 60 * nsPerSecond
	nsPerHour   = 3600 * nsPerSecond
	nsPerDay    = 24 * nsPerHour
	rtcMaxNS    = 512 * nsPerDay
)

// rtc models the MBC3 real-time clock as a running nanosecond counter, with
// a lazily-recomputed "formatted" seconds/minutes/hours/days view — spec.md
// §3 calls out this cache-invalidate-on-tick behavior explicitly.
type rtc struct {
	nanoseconds uint64
	daysCarry   bool
	halted      bool

	formattedValid bool
	sec, min, hour uint8
	dayLow         uint8
	dayHigh        uint8
}

func (r *rtc) formatted() (sec, min, hour, dayLow, dayHigh uint8) {
	if !r.formattedValid {
		rem := r.nanoseconds
		days := rem / nsPerDay
		rem %= nsPerDay
		r.hour = uint8(rem / nsPerHour)
		rem %= nsPerHour
		r.min = uint8(rem / nsPerMinute)
		rem %= nsPerMinute
		r.sec = uint8(rem / nsPerSecond)
		r.dayLow = uint8(days)
		dh := uint8((days>>8)&0x01)
		if r.halted {
			dh |= 0x40
		}
		if r.daysCarry {
			dh |= 0x80
		}
		r.dayHigh = dh
		r.formattedValid = true
	}
	return r.sec, r.min, r.hour, r.dayLow, r.dayHigh
}

func (r *rtc) invalidate() { r.formattedValid = false }

func (r *rtc) updateFromFormatted(sec, min, hour, dayLow, dayHigh uint8) {
	days := uint64(dayLow)
	if dayHigh&0x01 != 0 {
		days += 0x100
	}
	r.nanoseconds = uint64(sec)*nsPerSecond + uint64(min)*nsPerMinute + uint64(hour)*nsPerHour + days*nsPerDay
	r.halted = dayHigh&0x40 != 0
	r.daysCarry = dayHigh&0x80 != 0
	r.sec, r.min, r.hour, r.dayLow, r.dayHigh = sec, min, hour, dayLow, dayHigh
	r.formattedValid = true
}

func (r *rtc) setSeconds(v uint8) {
	sec, min, hour, dl, dh := r.formatted()
	_ = sec
	r.updateFromFormatted(v, min, hour, dl, dh)
}
func (r *rtc) setMinutes(v uint8) {
	sec, _, hour, dl, dh := r.formatted()
	r.updateFromFormatted(sec, v, hour, dl, dh)
}
func (r *rtc) setHours(v uint8) {
	sec, min, _, dl, dh := r.formatted()
	r.updateFromFormatted(sec, min, v, dl, dh)
}
func (r *rtc) setDaysLow(v uint8) {
	sec, min, hour, _, dh := r.formatted()
	r.updateFromFormatted(sec, min, hour, v, dh)
}
func (r *rtc) setDaysHigh(v uint8) {
	sec, min, hour, dl, _ := r.formatted()
	r.updateFromFormatted(sec, min, hour, dl, v)
}

func (r *rtc) tick(ns uint64) {
	if r.halted {
		return
	}
	next := r.nanoseconds + ns
	if next >= rtcMaxNS {
		next %= rtcMaxNS
		r.daysCarry = true
	}
	r.nanoseconds = next
	r.invalidate()
}

// mbc3 implements MBC3 banking plus the real-time clock.
//
// https://gbdev.io/pandocs/MBC3.html
type mbc3 struct {
	rom      *cartridge.ROM
	ram      []byte
	romMask  uint16
	ramOn    bool
	romBank  uint16
	ramBank  uint8 // 0-7 RAM bank, 0x8-0xC RTC register select
	latchBit bool  // last-seen value of bit 0 written to 0x6000-0x7FFF

	live    rtc
	latched rtc
}

func newMBC3(rom *cartridge.ROM, ram []byte) *mbc3 {
	return &mbc3{rom: rom, ram: ram, romMask: romBankMask(rom), romBank: 1}
}

func (m *mbc3) ReadROM(addr uint16) uint8 {
	if addr < 0x4000 {
		return m.rom.ReadByte(int(addr))
	}
	bank := m.romBank & m.romMask
	return m.rom.ReadByte(int(bank)*0x4000 + int(addr-0x4000))
}

func (m *mbc3) WriteROM(addr uint16, val uint8) {
	switch {
	case addr < 0x2000:
		m.ramOn = val&0x0F == 0x0A
	case addr < 0x4000:
		bank := val & 0x7F
		if bank == 0 {
			bank = 1
		}
		m.romBank = uint16(bank)
	case addr < 0x6000:
		m.ramBank = val & 0x0F
	default:
		newBit := val&0x01 == 1
		if newBit && !m.latchBit {
			m.latched = m.live
		}
		m.latchBit = newBit
	}
}

func (m *mbc3) ReadRAM(addr uint16) uint8 {
	if !m.ramOn {
		return 0xFF
	}
	switch {
	case m.ramBank <= 0x07:
		i := int(m.ramBank)*0x2000 + int(addr-0xA000)
		if i >= len(m.ram) {
			return 0xFF
		}
		return m.ram[i]
	case m.ramBank == 0x08:
		sec, _, _, _, _ := m.latched.formatted()
		return sec
	case m.ramBank == 0x09:
		_, min, _, _, _ := m.latched.formatted()
		return min
	case m.ramBank == 0x0A:
		_, _, hour, _, _ := m.latched.formatted()
		return hour
	case m.ramBank == 0x0B:
		_, _, _, dl, _ := m.latched.formatted()
		return dl
	case m.ramBank == 0x0C:
		_, _, _, _, dh := m.latched.formatted()
		return dh
	}
	return 0xFF
}

func (m *mbc3) WriteRAM(addr uint16, val uint8) {
	if !m.ramOn {
		return
	}
	switch {
	case m.ramBank <= 0x07:
		i := int(m.ramBank)*0x2000 + int(addr-0xA000)
		if i < len(m.ram) {
			m.ram[i] = val
		}
	case m.ramBank == 0x08:
		m.latched.setSeconds(val)
		m.live.setSeconds(val)
	case m.ramBank == 0x09:
		m.latched.setMinutes(val)
		m.live.setMinutes(val)
	case m.ramBank == 0x0A:
		m.latched.setHours(val)
		m.live.setHours(val)
	case m.ramBank == 0x0B:
		m.latched.setDaysLow(val)
		m.live.setDaysLow(val)
	case m.ramBank == 0x0C:
		m.latched.setDaysHigh(val)
		m.live.setDaysHigh(val)
	}
}

func (m *mbc3) Tick(ns int64) {
	m.live.tick(uint64(ns))
}

func (m *mbc3) RAM() []byte { return m.ram }

func (m *mbc3) BankState() BankState {
	return BankState{
		RAMOn:   m.ramOn,
		ROMBank: m.romBank,
		RAMBank: m.ramBank,
		RTC: RTCState{
			LiveNanoseconds:    m.live.nanoseconds,
			LiveDaysCarry:      m.live.daysCarry,
			LiveHalted:         m.live.halted,
			LatchedNanoseconds: m.latched.nanoseconds,
			LatchedDaysCarry:   m.latched.daysCarry,
			LatchedHalted:      m.latched.halted,
			LatchBit:           m.latchBit,
		},
	}
}

func (m *mbc3) RestoreBankState(s BankState) {
	m.ramOn = s.RAMOn
	m.romBank = s.ROMBank
	m.ramBank = s.RAMBank
	m.latchBit = s.RTC.LatchBit
	m.live = rtc{nanoseconds: s.RTC.LiveNanoseconds, daysCarry: s.RTC.LiveDaysCarry, halted: s.RTC.LiveHalted}
	m.latched = rtc{nanoseconds: s.RTC.LatchedNanoseconds, daysCarry: s.RTC.LatchedDaysCarry, halted: s.RTC.LatchedHalted}
}
