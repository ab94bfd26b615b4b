package apu

import "github.com/jrfarr/dmgcore/sink"

// customWavePlayer implements NR3x: the 32-sample custom waveform channel.
type customWavePlayer struct {
	channel int
	audio   sink.Audio

	waveform [16]byte

	triggered         requestFlag
	frequencyChanged  requestFlag
	gainChanged       requestFlag
	dacEnabledChanged requestFlag

	wavelength uint16
	gain       uint8
	playing    bool
	dacEnabled bool
}

func newCustomWavePlayer(channel int, audio sink.Audio) *customWavePlayer {
	return &customWavePlayer{channel: channel, audio: audio}
}

func (c *customWavePlayer) trigger() { c.triggered.set() }

func (c *customWavePlayer) stop() {
	c.playing = false
	c.audio.Stop(c.channel)
}

func (c *customWavePlayer) lowerWavelengthBits() uint8 { return uint8(c.wavelength) }
func (c *customWavePlayer) upperWavelengthBits() uint8 { return uint8(c.wavelength >> 8) }

func (c *customWavePlayer) setLowerWavelengthBits(v uint8) {
	c.wavelength = c.wavelength&0xFF00 | uint16(v)
	c.frequencyChanged.set()
}

func (c *customWavePlayer) setUpperWavelengthBits(v uint8) {
	c.wavelength = c.wavelength&0x00FF | uint16(v&0x07)<<8
	c.frequencyChanged.set()
}

func (c *customWavePlayer) setGain(v uint8) {
	c.gain = v
	c.gainChanged.set()
}

func (c *customWavePlayer) setDACEnabled(enabled bool) {
	if enabled != c.dacEnabled {
		c.dacEnabledChanged.set()
	}
	c.dacEnabled = enabled
}

// tick reports whether the DAC has just shut off (silencing the channel);
// otherwise it forwards any pending frequency/gain/trigger change to the
// sink.
func (c *customWavePlayer) tick() (dacShutOff bool) {
	if c.dacEnabledChanged.getAndClear() && !c.dacEnabled {
		return true
	}
	if c.frequencyChanged.getAndClear() {
		freq := 65536.0 / (2048.0 - float64(c.wavelength))
		c.audio.SetFrequency(c.channel, freq)
	}
	if c.gainChanged.getAndClear() {
		var gain float64
		switch c.gain {
		case 1:
			gain = 1.0
		case 2:
			gain = 0.5
		case 3:
			gain = 0.25
		}
		c.audio.SetGain(c.channel, gain)
	}
	if c.triggered.getAndClear() {
		c.playing = true
		c.audio.PlayCustomWave(c.channel, c.waveform)
	}
	return false
}
