package apu

import "github.com/jrfarr/dmgcore/sink"

// noisePlayer implements NR4x: the LFSR noise channel. The LFSR itself is
// left to the audio sink (an out-of-scope synthesis detail per spec.md §1);
// this controller only tracks the register-derived frequency and the
// short/long LFSR-width flag.
type noisePlayer struct {
	channel int
	audio   sink.Audio

	clockShift   uint8
	short        bool
	clockDivider uint8

	triggered requestFlag
	playing   bool
}

func newNoisePlayer(channel int, audio sink.Audio) *noisePlayer {
	return &noisePlayer{channel: channel, audio: audio}
}

func (n *noisePlayer) trigger() { n.triggered.set() }

func (n *noisePlayer) stop() {
	n.playing = false
	n.audio.Stop(n.channel)
}

func (n *noisePlayer) tick() {
	if !n.triggered.getAndClear() {
		return
	}
	n.playing = true
	divisor := 0.5
	if n.clockDivider != 0 {
		divisor = float64(n.clockDivider)
	}
	freq := 262144.0 / (divisor * float64(uint32(1)<<n.clockShift))
	n.audio.PlayNoise(n.channel, freq, n.short)
}
