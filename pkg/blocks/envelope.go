package blocks

import (
	"github.com/blackboxaudio/bbx-audio-sub000/pkg/block"
	"github.com/blackboxaudio/bbx-audio-sub000/pkg/param"
	"github.com/blackboxaudio/bbx-audio-sub000/pkg/sample"
)

// EnvelopeStage names the ADSR state machine's current stage, adapted from
// the teacher's Channel envelopePhase (ENV_ATTACK/ENV_DECAY/ENV_SUSTAIN/
// ENV_RELEASE) with an explicit Idle stage the teacher leaves implicit.
type EnvelopeStage int

const (
	StageIdle EnvelopeStage = iota
	StageAttack
	StageDecay
	StageSustain
	StageRelease
)

const (
	minEnvTimeSeconds = 0.001
	maxEnvTimeSeconds = 10.0
)

// EnvelopeBlock is a classic ADSR control-rate modulator with no audio
// inputs and one modulation output in [0,1]. Times are in seconds, clamped
// to [0.001, 10]; sustain is clamped to [0,1].
type EnvelopeBlock[S sample.Type] struct {
	attack  param.Parameter[S]
	decay   param.Parameter[S]
	sustain param.Parameter[S]
	release param.Parameter[S]

	stage      EnvelopeStage
	stageTime  float64
	level      S
	releaseLvl S
	gate       bool
}

// NewEnvelopeBlock creates an ADSR starting Idle.
func NewEnvelopeBlock[S sample.Type](attack, decay, sustain, release float64) *EnvelopeBlock[S] {
	return &EnvelopeBlock[S]{
		attack:  param.Constant(sample.FromF64[S](attack)),
		decay:   param.Constant(sample.FromF64[S](decay)),
		sustain: param.Constant(sample.FromF64[S](sustain)),
		release: param.Constant(sample.FromF64[S](release)),
		stage:   StageIdle,
	}
}

func (e *EnvelopeBlock[S]) InputCount() int  { return 0 }
func (e *EnvelopeBlock[S]) OutputCount() int { return 1 }

func (e *EnvelopeBlock[S]) ModulationOutputs() []block.ModulationOutput {
	return []block.ModulationOutput{{Name: "envelope", Min: 0, Max: 1}}
}
func (e *EnvelopeBlock[S]) ChannelConfig() block.ChannelConfig { return block.Parallel }

func (e *EnvelopeBlock[S]) BindParameter(name string, p param.Parameter[S]) error {
	switch name {
	case "attack":
		e.attack = p
	case "decay":
		e.decay = p
	case "sustain":
		e.sustain = p
	case "release":
		e.release = p
	default:
		return errUnknownParam
	}
	return nil
}

// NoteOn jumps to Attack with stage_time = 0, matching spec.md §4.6.
func (e *EnvelopeBlock[S]) NoteOn() {
	e.stage = StageAttack
	e.stageTime = 0
	e.gate = true
}

// NoteOff captures the current level and jumps to Release, unless already
// Idle.
func (e *EnvelopeBlock[S]) NoteOff() {
	if e.stage == StageIdle {
		return
	}
	e.releaseLvl = e.level
	e.stage = StageRelease
	e.stageTime = 0
	e.gate = false
}

// Stage reports the current ADSR stage, for tests and diagnostics.
func (e *EnvelopeBlock[S]) Stage() EnvelopeStage { return e.stage }

func (e *EnvelopeBlock[S]) Reset() {
	e.stage = StageIdle
	e.stageTime = 0
	e.level = sample.ZeroOf[S]()
	e.releaseLvl = sample.ZeroOf[S]()
	e.gate = false
}

func clampTime(t float64) float64 {
	if t < minEnvTimeSeconds {
		return minEnvTimeSeconds
	}
	if t > maxEnvTimeSeconds {
		return maxEnvTimeSeconds
	}
	return t
}

func (e *EnvelopeBlock[S]) Process(inputs [][]S, outputs [][]S, modulationValues []S, ctx *block.DspContext) {
	out := outputs[0]
	dt := 1.0 / ctx.SampleRate

	attack := clampTime(sample.ToF64(e.attack.GetValue(modulationValues)))
	decay := clampTime(sample.ToF64(e.decay.GetValue(modulationValues)))
	sustain := sample.Clamp(e.sustain.GetValue(modulationValues), sample.ZeroOf[S](), sample.OneOf[S]())
	release := clampTime(sample.ToF64(e.release.GetValue(modulationValues)))

	one := sample.OneOf[S]()
	zero := sample.ZeroOf[S]()

	for i := range out {
		switch e.stage {
		case StageIdle:
			e.level = zero
		case StageAttack:
			e.level = sample.FromF64[S](e.stageTime / attack)
			if e.stageTime >= attack {
				e.level = one
				e.stage = StageDecay
				e.stageTime = 0
			} else {
				e.stageTime += dt
			}
		case StageDecay:
			frac := e.stageTime / decay
			e.level = one - (one-sustain)*sample.FromF64[S](frac)
			if e.stageTime >= decay {
				e.level = sustain
				e.stage = StageSustain
				e.stageTime = 0
			} else {
				e.stageTime += dt
			}
		case StageSustain:
			e.level = sustain
			if !e.gate {
				e.stage = StageRelease
				e.stageTime = 0
			}
		case StageRelease:
			frac := e.stageTime / release
			e.level = e.releaseLvl * (one - sample.FromF64[S](frac))
			if e.stageTime >= release {
				e.level = zero
				e.stage = StageIdle
				e.stageTime = 0
			} else {
				e.stageTime += dt
			}
		}
		out[i] = e.level
	}
}
