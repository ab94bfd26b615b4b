// Command goboy runs this module's cycle-synchronized core against a
// cartridge image headlessly: no window, no audio output (both the pixel
// and audio sinks are out-of-scope external collaborators per spec.md §1).
// It exists to exercise the engine end to end and to load/save battery RAM
// and save states from the command line; a real front end supplies its own
// sink.Pixel/sink.Audio and drives Emulator.Tick/RunFrame itself.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/jrfarr/dmgcore/emulator"
	"github.com/jrfarr/dmgcore/sink"
)

var (
	romPath   = flag.String("rom", "", "path to a Game Boy Color ROM image")
	ramPath   = flag.String("ram", "", "path to a battery RAM save file (optional)")
	statePath = flag.String("state", "", "path to a save state to load before running, and write after (optional)")
	frames    = flag.Int("frames", 60, "number of frames to run before exiting")
)

func main() {
	flag.Parse()
	if *romPath == "" {
		fmt.Fprintln(os.Stderr, "usage: goboy -rom game.gbc [-ram save.sav] [-state save.state] [-frames 60]")
		os.Exit(1)
	}

	romData, err := os.ReadFile(*romPath)
	if err != nil {
		log.Fatalf("reading ROM: %v", err)
	}

	var ramData []byte
	if *ramPath != "" {
		ramData, _ = os.ReadFile(*ramPath) // absence is a fresh cartridge, not an error
	}

	emu, err := emulator.New(romData, nullPixelSink{}, nullAudioSink{}, ramData)
	if err != nil {
		log.Fatalf("unsupported cartridge: %v", err)
	}

	if *statePath != "" {
		if err := emu.LoadStateFromFile(*statePath); err != nil {
			log.Printf("not loading save state: %v", err)
		}
	}

	for i := 0; i < *frames; i++ {
		emu.RunFrame()
	}

	if *ramPath != "" {
		if ram := emu.BatteryRAM(); len(ram) > 0 {
			if err := os.WriteFile(*ramPath, ram, 0o644); err != nil {
				log.Fatalf("writing battery RAM: %v", err)
			}
		}
	}
	if *statePath != "" {
		if err := emu.SaveStateToFile(*statePath); err != nil {
			log.Fatalf("writing save state: %v", err)
		}
	}
}

// nullPixelSink discards every draw call; a real front end (terminal,
// framebuffer, GUI) implements sink.Pixel instead.
type nullPixelSink struct{}

func (nullPixelSink) DrawPixel(x, y int, z uint8, color uint16, target sink.Target) {}
func (nullPixelSink) Flush()                                                       {}
func (nullPixelSink) SetRenderTargetEnabled(target sink.Target, enabled bool)       {}
func (nullPixelSink) RenderTargetIsEnabled(target sink.Target) bool                 { return false }

// nullAudioSink discards every channel-control event; a real front end
// wires a PCM synthesizer/resampler behind sink.Audio instead.
type nullAudioSink struct{}

func (nullAudioSink) PlayPulse(channel int, frequencyHz, duty float64)     {}
func (nullAudioSink) PlayCustomWave(channel int, samples [16]byte)         {}
func (nullAudioSink) PlayNoise(channel int, frequencyHz float64, short bool) {}
func (nullAudioSink) Stop(channel int)                                    {}
func (nullAudioSink) SetGain(channel int, gain float64)                   {}
func (nullAudioSink) SetStereoGain(channel int, side sink.Side, gain float64) {}
func (nullAudioSink) SetFrequency(channel int, frequencyHz float64)       {}
func (nullAudioSink) MuteAll()                                           {}
func (nullAudioSink) UnmuteAll()                                         {}
func (nullAudioSink) SetMasterVolume(v uint8)                            {}
