package apu

import (
	"bytes"
	"encoding/gob"
)

type pulseSnapshot struct {
	DutyCycle       uint8
	LengthHalt      bool
	EnvelopeLoop    bool
	EnvelopeDisable bool
	Volume          uint8

	SweepEnable  bool
	SweepPeriod  uint8
	SweepNegate  bool
	SweepShift   uint8
	SweepReload  bool
	SweepCounter uint8

	Timer        uint16
	TimerCounter uint16

	LengthCounter uint8

	EnvelopeStart   bool
	EnvelopeCounter uint8
	EnvelopeDivider uint8

	SequencerPos uint8
}

func snapshotPulse(p *pulseChannel) pulseSnapshot {
	return pulseSnapshot{
		DutyCycle: p.dutyCycle, LengthHalt: p.lengthHalt,
		EnvelopeLoop: p.envelopeLoop, EnvelopeDisable: p.envelopeDisable, Volume: p.volume,
		SweepEnable: p.sweepEnable, SweepPeriod: p.sweepPeriod, SweepNegate: p.sweepNegate,
		SweepShift: p.sweepShift, SweepReload: p.sweepReload, SweepCounter: p.sweepCounter,
		Timer: p.timer, TimerCounter: p.timerCounter, LengthCounter: p.lengthCounter,
		EnvelopeStart: p.envelopeStart, EnvelopeCounter: p.envelopeCounter, EnvelopeDivider: p.envelopeDivider,
		SequencerPos: p.sequencerPos,
	}
}

func restorePulse(p *pulseChannel, s pulseSnapshot) {
	p.dutyCycle, p.lengthHalt = s.DutyCycle, s.LengthHalt
	p.envelopeLoop, p.envelopeDisable, p.volume = s.EnvelopeLoop, s.EnvelopeDisable, s.Volume
	p.sweepEnable, p.sweepPeriod, p.sweepNegate = s.SweepEnable, s.SweepPeriod, s.SweepNegate
	p.sweepShift, p.sweepReload, p.sweepCounter = s.SweepShift, s.SweepReload, s.SweepCounter
	p.timer, p.timerCounter, p.lengthCounter = s.Timer, s.TimerCounter, s.LengthCounter
	p.envelopeStart, p.envelopeCounter, p.envelopeDivider = s.EnvelopeStart, s.EnvelopeCounter, s.EnvelopeDivider
	p.sequencerPos = s.SequencerPos
}

type triangleSnapshot struct {
	LengthCounterHalt   bool
	LinearCounterLoad   uint8
	Timer               uint16
	TimerCounter        uint16
	LengthCounter       uint8
	LinearCounter       uint8
	LinearCounterReload bool
	SequencerPos        uint8
}

type noiseSnapshot struct {
	EnvelopeLoop    bool
	EnvelopeDisable bool
	Volume          uint8

	Mode         bool
	PeriodIndex  uint8
	TimerCounter uint16

	LengthCounter uint8

	EnvelopeStart   bool
	EnvelopeCounter uint8
	EnvelopeDivider uint8

	ShiftRegister uint16
}

type dmcSnapshot struct {
	IRQEnable bool
	Loop      bool
	RateIndex uint8

	OutputLevel uint8

	SampleAddress uint16
	SampleLength  uint16

	TimerCounter      uint16
	SampleBuffer      uint8
	SampleBufferBits  uint8
	SampleBufferEmpty bool
	BytesRemaining    uint16
	CurrentAddress    uint16

	IRQFlag bool
}

// snapshot is the complete plain-record APU state: frame sequencer
// phase and all five channel units. The sample buffer queued for the
// host is excluded, matching the pixel-sink/sample-sink split where
// queued output is not component state.
type snapshot struct {
	Pulse1, Pulse2 pulseSnapshot
	Triangle       triangleSnapshot
	Noise          noiseSnapshot
	DMC            dmcSnapshot

	FrameMode      bool
	FrameIRQEnable bool
	FrameIRQFlag   bool
	FrameCycle     uint16

	ChannelEnable [5]bool
	Cycle         uint64
}

func (a *APU) Snapshot() []byte {
	s := snapshot{
		Pulse1: snapshotPulse(&a.pulse1),
		Pulse2: snapshotPulse(&a.pulse2),
		Triangle: triangleSnapshot{
			LengthCounterHalt: a.triangle.lengthCounterHalt, LinearCounterLoad: a.triangle.linearCounterLoad,
			Timer: a.triangle.timer, TimerCounter: a.triangle.timerCounter,
			LengthCounter: a.triangle.lengthCounter, LinearCounter: a.triangle.linearCounter,
			LinearCounterReload: a.triangle.linearCounterReload, SequencerPos: a.triangle.sequencerPos,
		},
		Noise: noiseSnapshot{
			EnvelopeLoop: a.noise.envelopeLoop, EnvelopeDisable: a.noise.envelopeDisable, Volume: a.noise.volume,
			Mode: a.noise.mode, PeriodIndex: a.noise.periodIndex, TimerCounter: a.noise.timerCounter,
			LengthCounter: a.noise.lengthCounter,
			EnvelopeStart: a.noise.envelopeStart, EnvelopeCounter: a.noise.envelopeCounter, EnvelopeDivider: a.noise.envelopeDivider,
			ShiftRegister: a.noise.shiftRegister,
		},
		DMC: dmcSnapshot{
			IRQEnable: a.dmc.irqEnable, Loop: a.dmc.loop, RateIndex: a.dmc.rateIndex,
			OutputLevel: a.dmc.outputLevel, SampleAddress: a.dmc.sampleAddress, SampleLength: a.dmc.sampleLength,
			TimerCounter: a.dmc.timerCounter, SampleBuffer: a.dmc.sampleBuffer, SampleBufferBits: a.dmc.sampleBufferBits,
			SampleBufferEmpty: a.dmc.sampleBufferEmpty, BytesRemaining: a.dmc.bytesRemaining,
			CurrentAddress: a.dmc.currentAddress, IRQFlag: a.dmc.irqFlag,
		},
		FrameMode: a.frameMode, FrameIRQEnable: a.frameIRQEnable, FrameIRQFlag: a.frameIRQFlag, FrameCycle: a.frameCycle,
		ChannelEnable: a.channelEnable, Cycle: a.cycle,
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(s); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

func (a *APU) Restore(blob []byte) error {
	var s snapshot
	if err := gob.NewDecoder(bytes.NewReader(blob)).Decode(&s); err != nil {
		return err
	}
	restorePulse(&a.pulse1, s.Pulse1)
	restorePulse(&a.pulse2, s.Pulse2)
	a.triangle.lengthCounterHalt, a.triangle.linearCounterLoad = s.Triangle.LengthCounterHalt, s.Triangle.LinearCounterLoad
	a.triangle.timer, a.triangle.timerCounter = s.Triangle.Timer, s.Triangle.TimerCounter
	a.triangle.lengthCounter, a.triangle.linearCounter = s.Triangle.LengthCounter, s.Triangle.LinearCounter
	a.triangle.linearCounterReload, a.triangle.sequencerPos = s.Triangle.LinearCounterReload, s.Triangle.SequencerPos

	a.noise.envelopeLoop, a.noise.envelopeDisable, a.noise.volume = s.Noise.EnvelopeLoop, s.Noise.EnvelopeDisable, s.Noise.Volume
	a.noise.mode, a.noise.periodIndex, a.noise.timerCounter = s.Noise.Mode, s.Noise.PeriodIndex, s.Noise.TimerCounter
	a.noise.lengthCounter = s.Noise.LengthCounter
	a.noise.envelopeStart, a.noise.envelopeCounter, a.noise.envelopeDivider = s.Noise.EnvelopeStart, s.Noise.EnvelopeCounter, s.Noise.EnvelopeDivider
	a.noise.shiftRegister = s.Noise.ShiftRegister

	a.dmc.irqEnable, a.dmc.loop, a.dmc.rateIndex = s.DMC.IRQEnable, s.DMC.Loop, s.DMC.RateIndex
	a.dmc.outputLevel = s.DMC.OutputLevel
	a.dmc.sampleAddress, a.dmc.sampleLength = s.DMC.SampleAddress, s.DMC.SampleLength
	a.dmc.timerCounter, a.dmc.sampleBuffer, a.dmc.sampleBufferBits = s.DMC.TimerCounter, s.DMC.SampleBuffer, s.DMC.SampleBufferBits
	a.dmc.sampleBufferEmpty, a.dmc.bytesRemaining = s.DMC.SampleBufferEmpty, s.DMC.BytesRemaining
	a.dmc.currentAddress, a.dmc.irqFlag = s.DMC.CurrentAddress, s.DMC.IRQFlag

	a.frameMode, a.frameIRQEnable, a.frameIRQFlag, a.frameCycle = s.FrameMode, s.FrameIRQEnable, s.FrameIRQFlag, s.FrameCycle
	a.channelEnable, a.cycle = s.ChannelEnable, s.Cycle
	return nil
}
