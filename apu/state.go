package apu

// LengthTimerState is one channel's persisted length-counter state.
type LengthTimerState struct {
	CurrentValue    uint16
	InitialValue    uint16
	NewInitialValue uint16
	Enabled         bool
	Counting        bool
}

func (l *lengthTimer) save() LengthTimerState {
	return LengthTimerState{
		CurrentValue:    l.currentValue,
		InitialValue:    l.initialValue,
		NewInitialValue: l.newInitialValue,
		Enabled:         l.enabled,
		Counting:        l.counting,
	}
}

func (l *lengthTimer) restore(s LengthTimerState) {
	l.currentValue = s.CurrentValue
	l.initialValue = s.InitialValue
	l.newInitialValue = s.NewInitialValue
	l.enabled = s.Enabled
	l.counting = s.Counting
}

// GainControllerState is one channel's persisted volume-envelope state.
type GainControllerState struct {
	CurrentTick     uint8
	CurrentValue    uint8
	CurrentPace     uint8
	CurrentAscending bool
	CurrentInitial  uint8
	NewPace         uint8
	NewAscending    bool
	NewInitialValue uint8
	Active          bool
}

func (g *gainController) save() GainControllerState {
	return GainControllerState{
		CurrentTick:      g.currentTick,
		CurrentValue:     g.currentValue,
		CurrentPace:      g.currentPace,
		CurrentAscending: g.currentAscending,
		CurrentInitial:   g.currentInitial,
		NewPace:          g.newPace,
		NewAscending:     g.newAscending,
		NewInitialValue:  g.newInitialValue,
		Active:           g.active,
	}
}

func (g *gainController) restore(s GainControllerState) {
	g.currentTick = s.CurrentTick
	g.currentValue = s.CurrentValue
	g.currentPace = s.CurrentPace
	g.currentAscending = s.CurrentAscending
	g.currentInitial = s.CurrentInitial
	g.newPace = s.NewPace
	g.newAscending = s.NewAscending
	g.newInitialValue = s.NewInitialValue
	g.active = s.Active
}

// PulseSettingsState is a pulse channel's latched sweep/duty/wavelength
// configuration, either currently-playing or newly-written.
type PulseSettingsState struct {
	InitialWavelength uint16
	Shift             uint8
	Pace              uint8
	Decrease          bool
	DutyCycle         DutyCycle
}

func savePulseSettings(s pulseSettings) PulseSettingsState {
	return PulseSettingsState{
		InitialWavelength: s.initialWavelength,
		Shift:             s.shift,
		Pace:              s.pace,
		Decrease:          s.decrease,
		DutyCycle:         s.dutyCycle,
	}
}

func restorePulseSettings(s PulseSettingsState) pulseSettings {
	return pulseSettings{
		initialWavelength: s.InitialWavelength,
		shift:             s.Shift,
		pace:              s.Pace,
		decrease:          s.Decrease,
		dutyCycle:         s.DutyCycle,
	}
}

// PulsePlayerState is one pulse channel's persisted state.
type PulsePlayerState struct {
	Triggered       bool
	CurrentTick     uint8
	Wavelength      uint16
	CurrentSettings PulseSettingsState
	NewSettings     PulseSettingsState
	Playing         bool
}

func (p *pulsePlayer) save() PulsePlayerState {
	return PulsePlayerState{
		Triggered:       bool(p.triggered),
		CurrentTick:     p.currentTick,
		Wavelength:      p.wavelength,
		CurrentSettings: savePulseSettings(p.currentSettings),
		NewSettings:     savePulseSettings(p.newSettings),
		Playing:         p.playing,
	}
}

func (p *pulsePlayer) restore(s PulsePlayerState) {
	p.triggered = requestFlag(s.Triggered)
	p.currentTick = s.CurrentTick
	p.wavelength = s.Wavelength
	p.currentSettings = restorePulseSettings(s.CurrentSettings)
	p.newSettings = restorePulseSettings(s.NewSettings)
	p.playing = s.Playing
}

// CustomWavePlayerState is the wave channel's persisted state, excluding
// the 16-byte waveform RAM itself (saved separately as wave RAM).
type CustomWavePlayerState struct {
	Triggered         bool
	FrequencyChanged  bool
	GainChanged       bool
	DACEnabledChanged bool
	Wavelength        uint16
	Gain              uint8
	Playing           bool
	DACEnabled        bool
}

func (c *customWavePlayer) save() CustomWavePlayerState {
	return CustomWavePlayerState{
		Triggered:         bool(c.triggered),
		FrequencyChanged:  bool(c.frequencyChanged),
		GainChanged:       bool(c.gainChanged),
		DACEnabledChanged: bool(c.dacEnabledChanged),
		Wavelength:        c.wavelength,
		Gain:              c.gain,
		Playing:           c.playing,
		DACEnabled:        c.dacEnabled,
	}
}

func (c *customWavePlayer) restore(s CustomWavePlayerState) {
	c.triggered = requestFlag(s.Triggered)
	c.frequencyChanged = requestFlag(s.FrequencyChanged)
	c.gainChanged = requestFlag(s.GainChanged)
	c.dacEnabledChanged = requestFlag(s.DACEnabledChanged)
	c.wavelength = s.Wavelength
	c.gain = s.Gain
	c.playing = s.Playing
	c.dacEnabled = s.DACEnabled
}

// NoisePlayerState is the noise channel's persisted state.
type NoisePlayerState struct {
	ClockShift   uint8
	Short        bool
	ClockDivider uint8
	Triggered    bool
	Playing      bool
}

func (n *noisePlayer) save() NoisePlayerState {
	return NoisePlayerState{
		ClockShift:   n.clockShift,
		Short:        n.short,
		ClockDivider: n.clockDivider,
		Triggered:    bool(n.triggered),
		Playing:      n.playing,
	}
}

func (n *noisePlayer) restore(s NoisePlayerState) {
	n.clockShift = s.ClockShift
	n.short = s.Short
	n.clockDivider = s.ClockDivider
	n.triggered = requestFlag(s.Triggered)
	n.playing = s.Playing
}

// State is the APU's full persisted state, including the wave RAM that
// backs FF30-FF3F.
type State struct {
	Enabled              bool
	DisabledRequest      bool
	PreviousTimerDiv     uint8
	DivAPU               uint16
	Ch1Length, Ch2Length LengthTimerState
	Ch3Length, Ch4Length LengthTimerState
	Ch1Gain, Ch2Gain     GainControllerState
	Ch4Gain              GainControllerState
	Ch1Pulse, Ch2Pulse   PulsePlayerState
	Ch3Wave              CustomWavePlayerState
	Waveform             [16]byte
	Ch4Noise             NoisePlayerState
	MasterVolume         uint8
	MixingControl        uint8
	MixingControlChanged bool
}

// SaveState snapshots the entire APU, including every channel player and
// the wave RAM.
func (c *Controller) SaveState() State {
	return State{
		Enabled:              c.enabled,
		DisabledRequest:      bool(c.disabledRequest),
		PreviousTimerDiv:     c.previousTimerDiv,
		DivAPU:               c.divAPU,
		Ch1Length:            c.ch1Length.save(),
		Ch2Length:            c.ch2Length.save(),
		Ch3Length:            c.ch3Length.save(),
		Ch4Length:            c.ch4Length.save(),
		Ch1Gain:              c.ch1Gain.save(),
		Ch2Gain:              c.ch2Gain.save(),
		Ch4Gain:              c.ch4Gain.save(),
		Ch1Pulse:             c.ch1Pulse.save(),
		Ch2Pulse:             c.ch2Pulse.save(),
		Ch3Wave:              c.ch3Wave.save(),
		Waveform:             c.ch3Wave.waveform,
		Ch4Noise:             c.ch4Noise.save(),
		MasterVolume:         c.masterVolume,
		MixingControl:        c.mixingControl,
		MixingControlChanged: bool(c.mixingControlChanged),
	}
}

// LoadState restores a snapshot returned by SaveState.
func (c *Controller) LoadState(s State) {
	c.enabled = s.Enabled
	c.disabledRequest = requestFlag(s.DisabledRequest)
	c.previousTimerDiv = s.PreviousTimerDiv
	c.divAPU = s.DivAPU
	c.ch1Length.restore(s.Ch1Length)
	c.ch2Length.restore(s.Ch2Length)
	c.ch3Length.restore(s.Ch3Length)
	c.ch4Length.restore(s.Ch4Length)
	c.ch1Gain.restore(s.Ch1Gain)
	c.ch2Gain.restore(s.Ch2Gain)
	c.ch4Gain.restore(s.Ch4Gain)
	c.ch1Pulse.restore(s.Ch1Pulse)
	c.ch2Pulse.restore(s.Ch2Pulse)
	c.ch3Wave.restore(s.Ch3Wave)
	c.ch3Wave.waveform = s.Waveform
	c.ch4Noise.restore(s.Ch4Noise)
	c.masterVolume = s.MasterVolume
	c.mixingControl = s.MixingControl
	c.mixingControlChanged = requestFlag(s.MixingControlChanged)
}
