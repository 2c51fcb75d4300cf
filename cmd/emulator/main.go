package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"math"
	"os"
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"

	"nescore/internal/controller"
	"nescore/internal/debug"
	"nescore/internal/machine"
	"nescore/internal/ppu"
)

// keymap translates SDL scancodes to pad 1 buttons. A second
// controller has no host input here.
var keymap = map[sdl.Scancode]int{
	sdl.SCANCODE_UP:     controller.ButtonUp,
	sdl.SCANCODE_DOWN:   controller.ButtonDown,
	sdl.SCANCODE_LEFT:   controller.ButtonLeft,
	sdl.SCANCODE_RIGHT:  controller.ButtonRight,
	sdl.SCANCODE_Z:      controller.ButtonA,
	sdl.SCANCODE_X:      controller.ButtonB,
	sdl.SCANCODE_RSHIFT: controller.ButtonSelect,
	sdl.SCANCODE_RETURN: controller.ButtonStart,
}

func main() {
	scale := flag.Int("scale", 3, "display scale (1-6)")
	verbose := flag.Bool("log", false, "enable trace-level logging")
	strict := flag.Bool("strict-illegal", false, "treat illegal opcodes as a fatal condition instead of a counter")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: emulator [flags] <path-to-rom>")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}
	if *scale < 1 || *scale > 6 {
		fmt.Fprintln(os.Stderr, "scale must be between 1 and 6")
		os.Exit(1)
	}

	romData, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "reading ROM: %v\n", err)
		os.Exit(1)
	}

	cfg := machine.DefaultConfig()
	cfg.StrictIllegalOpcode = *strict
	if *verbose {
		cfg.LogLevel = debug.LogLevelTrace
	}

	m := machine.New(cfg)
	if err := m.LoadROM(romData); err != nil {
		fmt.Fprintf(os.Stderr, "loading ROM: %v\n", err)
		os.Exit(1)
	}

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_AUDIO | sdl.INIT_EVENTS); err != nil {
		fmt.Fprintf(os.Stderr, "sdl init: %v\n", err)
		os.Exit(1)
	}
	defer sdl.Quit()

	window, err := sdl.CreateWindow("nescore",
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(ppu.ScreenWidth*(*scale)), int32(ppu.ScreenHeight*(*scale)), sdl.WINDOW_SHOWN)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create window: %v\n", err)
		os.Exit(1)
	}
	defer window.Destroy()

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create renderer: %v\n", err)
		os.Exit(1)
	}
	defer renderer.Destroy()

	// The PPU's OutputBuffer packs each pixel as 0xRRGGBBAA, matching
	// SDL's RGBA8888 word convention, so the texture format is a
	// direct memcpy target with no palette lookup needed.
	texture, err := renderer.CreateTexture(sdl.PIXELFORMAT_RGBA8888, sdl.TEXTUREACCESS_STREAMING,
		ppu.ScreenWidth, ppu.ScreenHeight)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create texture: %v\n", err)
		os.Exit(1)
	}
	defer texture.Destroy()

	audioSpec := sdl.AudioSpec{
		Freq:     int32(m.Config.SampleRate),
		Format:   sdl.AUDIO_F32,
		Channels: 1,
		Samples:  735,
	}
	audioDev, err := sdl.OpenAudioDevice("", false, &audioSpec, nil, 0)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open audio device: %v, continuing without sound\n", err)
		audioDev = 0
	} else {
		defer sdl.CloseAudioDevice(audioDev)
		sdl.PauseAudioDevice(audioDev, false)
	}

	paused := false
	running := true
	for running {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch e := event.(type) {
			case *sdl.QuitEvent:
				running = false
			case *sdl.KeyboardEvent:
				switch e.Keysym.Scancode {
				case sdl.SCANCODE_ESCAPE:
					if e.State == sdl.PRESSED {
						running = false
					}
					continue
				case sdl.SCANCODE_P:
					if e.State == sdl.PRESSED {
						paused = !paused
					}
					continue
				case sdl.SCANCODE_R:
					if e.State == sdl.PRESSED {
						m.Reset()
					}
					continue
				}
				if button, ok := keymap[e.Keysym.Scancode]; ok {
					m.SetButton(1, button, e.State == sdl.PRESSED)
				}
			}
		}

		if !paused {
			m.RunFrame()
			queueAudio(audioDev, m.DrainSamples())
			if m.Config.StrictIllegalOpcode && m.CPU.IllegalOpcodeCount > 0 {
				fmt.Fprintln(os.Stderr, "illegal opcode executed")
				os.Exit(1)
			}
		}

		pixels := m.OutputBuffer()
		texture.Update(nil, unsafe.Pointer(&pixels[0]), ppu.ScreenWidth*4)
		renderer.Clear()
		renderer.Copy(texture, nil, nil)
		renderer.Present()
		sdl.Delay(16)
	}
}

// queueAudio pushes a frame's worth of samples to the SDL audio
// device, dropping them if the device never opened or the queue is
// already several frames deep (prevents runaway latency if rendering
// stalls).
func queueAudio(dev sdl.AudioDeviceID, samples []float32) {
	if dev == 0 || len(samples) == 0 {
		return
	}
	if sdl.GetQueuedAudioSize(dev) > uint32(len(samples))*4*4 {
		return
	}
	buf := make([]byte, len(samples)*4)
	for i, s := range samples {
		binary.LittleEndian.PutUint32(buf[i*4:i*4+4], math.Float32bits(s))
	}
	sdl.QueueAudio(dev, buf)
}
