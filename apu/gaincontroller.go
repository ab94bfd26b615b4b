package apu

import "github.com/jrfarr/dmgcore/sink"

// gainController implements the volume envelope shared by the pulse and
// noise channels (NRx2): a 4-bit volume that steps up or down every pace
// div-APU ticks, and the "DAC off" rule (initial volume 0, not ascending)
// that silences the channel entirely.
type gainController struct {
	channel int
	audio   sink.Audio

	currentTick  uint8
	currentValue uint8

	currentPace       uint8
	currentAscending  bool
	currentInitial    uint8
	newPace           uint8
	newAscending      bool
	newInitialValue   uint8

	active bool
}

func newGainController(channel int, audio sink.Audio) *gainController {
	return &gainController{channel: channel, audio: audio}
}

func (g *gainController) stop() { g.active = false }

func (g *gainController) trigger() {
	g.currentPace = g.newPace
	g.currentAscending = g.newAscending
	g.currentInitial = g.newInitialValue
	g.currentTick = 0
	g.currentValue = g.currentInitial
	g.active = true
}

func (g *gainController) dacShutOff() bool {
	return g.currentInitial == 0 && !g.currentAscending
}

// tick advances the envelope by one div-APU-8 step (the caller only calls
// this on that cadence), reporting whether the DAC just turned off.
func (g *gainController) tick() (dacShutOff bool) {
	if g.dacShutOff() {
		return true
	}
	if g.active && g.currentPace != 0 {
		g.currentTick = (g.currentTick + 1) % g.currentPace
		if g.currentTick == 0 {
			if g.currentAscending && g.currentValue < 0xF {
				g.currentValue++
			} else if !g.currentAscending && g.currentValue > 0 {
				g.currentValue--
			}
		}
	}
	g.audio.SetGain(g.channel, float64(g.currentValue)/15.0)
	return false
}
