package blocks

import (
	"github.com/blackboxaudio/bbx-audio-sub000/pkg/block"
	"github.com/blackboxaudio/bbx-audio-sub000/pkg/param"
	"github.com/blackboxaudio/bbx-audio-sub000/pkg/sample"
)

// BinauralDecoderBlock decodes one or more discrete source channels to a
// stereo pair using an interaural-level-difference (ILD) approximation: a
// per-source azimuth maps to a MatrixMixerBlock gain row via the same
// equal-power law as PannerBlock, grounded on the teacher's stereo panning
// math generalised from one source to N. True HRTF convolution is out of
// scope (spec.md Non-goals: no convolution engine); this is the ILD-only
// strategy spec.md §4.6 names as acceptable.
type BinauralDecoderBlock[S sample.Type] struct {
	matrix *MatrixMixerBlock[S]
}

// NewBinauralDecoderBlock creates a decoder for sourceAzimuths (radians,
// 0 = center, -pi/2 = full left, +pi/2 = full right).
func NewBinauralDecoderBlock[S sample.Type](sourceAzimuths []float64) (*BinauralDecoderBlock[S], error) {
	rows := make([][]float64, 2)
	rows[0] = make([]float64, len(sourceAzimuths))
	rows[1] = make([]float64, len(sourceAzimuths))
	for i, az := range sourceAzimuths {
		pan := az / (3.141592653589793 / 2) // normalise to [-1, 1]
		if pan < -1 {
			pan = -1
		}
		if pan > 1 {
			pan = 1
		}
		theta := (pan + 1) * quarterPi
		rows[0][i] = cosF64(theta)
		rows[1][i] = sinF64(theta)
	}
	matrix, err := NewMatrixMixerBlock[S](len(sourceAzimuths), 2, rows)
	if err != nil {
		return nil, err
	}
	return &BinauralDecoderBlock[S]{matrix: matrix}, nil
}

func (b *BinauralDecoderBlock[S]) InputCount() int  { return b.matrix.InputCount() }
func (b *BinauralDecoderBlock[S]) OutputCount() int { return 2 }

func (b *BinauralDecoderBlock[S]) ModulationOutputs() []block.ModulationOutput { return nil }
func (b *BinauralDecoderBlock[S]) ChannelConfig() block.ChannelConfig          { return block.Explicit }

func (b *BinauralDecoderBlock[S]) BindParameter(name string, p param.Parameter[S]) error {
	return errUnknownParam
}

func (b *BinauralDecoderBlock[S]) Reset() {}

func (b *BinauralDecoderBlock[S]) Process(inputs [][]S, outputs [][]S, modulationValues []S, ctx *block.DspContext) {
	b.matrix.Process(inputs, outputs, modulationValues, ctx)
}

// AmbisonicDecoderBlock decodes first-order B-format (W, X, Y) to an
// arbitrary loudspeaker/headphone layout described by speakerAzimuths,
// using the standard first-order decode gain[spk] = W + X*cos(az) +
// Y*sin(az), expressed as a 3-input MatrixMixerBlock.
type AmbisonicDecoderBlock[S sample.Type] struct {
	matrix *MatrixMixerBlock[S]
}

// NewAmbisonicDecoderBlock creates a first-order ambisonic decoder for the
// given speaker azimuths (radians, 0 = front center, increasing
// counter-clockwise).
func NewAmbisonicDecoderBlock[S sample.Type](speakerAzimuths []float64) (*AmbisonicDecoderBlock[S], error) {
	rows := make([][]float64, len(speakerAzimuths))
	for s, az := range speakerAzimuths {
		rows[s] = []float64{1, cosF64(az), sinF64(az)}
	}
	matrix, err := NewMatrixMixerBlock[S](3, len(speakerAzimuths), rows)
	if err != nil {
		return nil, err
	}
	return &AmbisonicDecoderBlock[S]{matrix: matrix}, nil
}

func (a *AmbisonicDecoderBlock[S]) InputCount() int  { return 3 }
func (a *AmbisonicDecoderBlock[S]) OutputCount() int { return a.matrix.OutputCount() }

func (a *AmbisonicDecoderBlock[S]) ModulationOutputs() []block.ModulationOutput { return nil }
func (a *AmbisonicDecoderBlock[S]) ChannelConfig() block.ChannelConfig          { return block.Explicit }

func (a *AmbisonicDecoderBlock[S]) BindParameter(name string, p param.Parameter[S]) error {
	return errUnknownParam
}

func (a *AmbisonicDecoderBlock[S]) Reset() {}

func (a *AmbisonicDecoderBlock[S]) Process(inputs [][]S, outputs [][]S, modulationValues []S, ctx *block.DspContext) {
	a.matrix.Process(inputs, outputs, modulationValues, ctx)
}

func cosF64(x float64) float64 { return sample.ToF64(sample.Cos(sample.FromF64[float64](x))) }
func sinF64(x float64) float64 { return sample.ToF64(sample.Sin(sample.FromF64[float64](x))) }
