// Package apu implements the audio processing unit: the four channel
// players (two pulse, one custom wave, one noise), their shared length
// timer and gain-envelope building blocks, the frame sequencer that drives
// them off the timer's divider, and the NR10-NR52/wave-RAM register file.
//
// This core does not synthesize PCM samples itself (spec.md §1 Non-goals);
// every player forwards abstract channel-control events to a sink.Audio
// collaborator, grounded directly on the original implementation's
// AudioDriver trait and its four per-channel player types.
package apu

import "github.com/jrfarr/dmgcore/sink"

// Channel indices, matching sink.Audio's channel parameter.
const (
	ch1 = iota
	ch2
	ch3
	ch4
)

// Controller is the FF10-FF26/FF30-FF3F audio register file and its four
// channel players.
type Controller struct {
	audio sink.Audio

	enabled         bool
	disabledRequest requestFlag

	previousTimerDiv uint8
	divAPU           uint16

	ch1Length lengthTimer
	ch2Length lengthTimer
	ch3Length lengthTimer
	ch4Length lengthTimer

	ch1Gain  *gainController
	ch1Pulse *pulsePlayer
	ch2Gain  *gainController
	ch2Pulse *pulsePlayer
	ch3Wave  *customWavePlayer
	ch4Gain  *gainController
	ch4Noise *noisePlayer

	masterVolume         uint8
	mixingControl        uint8
	mixingControlChanged requestFlag
}

// New returns a Controller wired to the given audio sink.
func New(audio sink.Audio) *Controller {
	c := &Controller{
		audio:     audio,
		ch1Length: newLengthTimer(64),
		ch2Length: newLengthTimer(64),
		ch3Length: newLengthTimer(256),
		ch4Length: newLengthTimer(64),
		ch1Gain:   newGainController(ch1, audio),
		ch1Pulse:  newPulsePlayer(ch1, audio),
		ch2Gain:   newGainController(ch2, audio),
		ch2Pulse:  newPulsePlayer(ch2, audio),
		ch3Wave:   newCustomWavePlayer(ch3, audio),
		ch4Gain:   newGainController(ch4, audio),
		ch4Noise:  newNoisePlayer(ch4, audio),
	}
	c.mixingControlChanged.set()
	return c
}

func (c *Controller) lengthTimerTick() {
	if c.ch1Length.tick() {
		c.stop(ch1)
	}
	if c.ch2Length.tick() {
		c.stop(ch2)
	}
	if c.ch3Length.tick() {
		c.stop(ch3)
	}
	if c.ch4Length.tick() {
		c.stop(ch4)
	}
}

func (c *Controller) gainControllerTick() {
	if c.ch1Gain.tick() {
		c.stop(ch1)
	}
	if c.ch2Gain.tick() {
		c.stop(ch2)
	}
	if c.ch4Gain.tick() {
		c.stop(ch4)
	}
}

func (c *Controller) setStereoGains() {
	channels := [4]int{ch1, ch2, ch3, ch4}
	for i, ch := range channels {
		right := c.mixingControl&(1<<uint(i)) != 0
		left := c.mixingControl&(1<<uint(i+4)) != 0
		c.audio.SetStereoGain(ch, sink.Right, boolGain(right))
		c.audio.SetStereoGain(ch, sink.Left, boolGain(left))
	}
}

func boolGain(on bool) float64 {
	if on {
		return 1.0
	}
	return 0.0
}

// Tick advances the APU by one M-cycle. divUpper is the timer's current
// divider upper byte (timer.ReadDIV()); the frame sequencer fires on the
// falling edge of its bit 4 (bit 5 in double-speed mode), per spec.md's
// div-APU derivation.
func (c *Controller) Tick(divUpper uint8, doubleSpeed bool) {
	if c.disabledRequest.getAndClear() {
		c.disable()
	}
	if c.mixingControlChanged.getAndClear() {
		c.setStereoGains()
	}
	if !c.enabled {
		return
	}

	bit := uint8(4)
	if doubleSpeed {
		bit = 5
	}
	wasHigh := c.previousTimerDiv&(1<<bit) != 0
	isHigh := divUpper&(1<<bit) != 0
	if wasHigh && !isHigh {
		c.divAPU++
		if c.divAPU%2 == 0 {
			c.lengthTimerTick()
		}
		if c.divAPU%4 == 0 {
			if c.ch1Pulse.tick() {
				c.stop(ch1)
			}
		}
		if c.divAPU%8 == 0 {
			c.gainControllerTick()
		}
	}

	if c.ch2Pulse.tick() {
		c.stop(ch2)
	}
	if c.ch3Wave.tick() {
		c.stop(ch3)
	}
	c.ch4Noise.tick()

	c.previousTimerDiv = divUpper
}

func (c *Controller) trigger(channel int) {
	switch channel {
	case ch1:
		c.ch1Length.trigger()
		c.ch1Gain.trigger()
		c.ch1Pulse.trigger()
	case ch2:
		c.ch2Length.trigger()
		c.ch2Gain.trigger()
		c.ch2Pulse.trigger()
	case ch3:
		c.ch3Length.trigger()
		c.ch3Wave.trigger()
	case ch4:
		c.ch4Length.trigger()
		c.ch4Gain.trigger()
		c.ch4Noise.trigger()
	}
}

func (c *Controller) stop(channel int) {
	switch channel {
	case ch1:
		c.ch1Pulse.stop()
		c.ch1Length.stop()
		c.ch1Gain.stop()
	case ch2:
		c.ch2Pulse.stop()
		c.ch2Length.stop()
		c.ch2Gain.stop()
	case ch3:
		c.ch3Length.stop()
		c.ch3Wave.stop()
	case ch4:
		c.ch4Length.stop()
		c.ch4Gain.stop()
		c.ch4Noise.stop()
	}
}

func (c *Controller) disable() {
	c.enabled = false
	c.stop(ch1)
	c.stop(ch2)
	c.stop(ch3)
	c.stop(ch4)
}

func dutyCycleBits(d DutyCycle) uint8 {
	switch d {
	case Duty125:
		return 0
	case Duty250:
		return 1
	case Duty500:
		return 2
	default:
		return 3
	}
}

func dutyCycleFromBits(v uint8) DutyCycle {
	switch v {
	case 0:
		return Duty125
	case 1:
		return Duty250
	case 2:
		return Duty500
	default:
		return Duty750
	}
}

func boolToBit(v bool, bit uint8) uint8 {
	if v {
		return 1 << bit
	}
	return 0
}
