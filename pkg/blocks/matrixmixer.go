package blocks

import (
	"github.com/blackboxaudio/bbx-audio-sub000/pkg/bbxerr"
	"github.com/blackboxaudio/bbx-audio-sub000/pkg/block"
	"github.com/blackboxaudio/bbx-audio-sub000/pkg/param"
	"github.com/blackboxaudio/bbx-audio-sub000/pkg/sample"
)

// MatrixMixerBlock applies a fixed inputCount x outputCount gain matrix:
// output[o] = sum_i input[i] * matrix[o][i]. It generalises MixerBlock and
// ChannelRouterBlock to arbitrary routing/panning topologies (binaural and
// ambisonic decoders in this package are both built on it).
type MatrixMixerBlock[S sample.Type] struct {
	inputCount  int
	outputCount int
	matrix      [][]S // matrix[o][i]
}

// NewMatrixMixerBlock creates a matrix mixer. matrix must be outputCount
// rows of inputCount columns each.
func NewMatrixMixerBlock[S sample.Type](inputCount, outputCount int, matrix [][]float64) (*MatrixMixerBlock[S], error) {
	if inputCount < 1 || outputCount < 1 {
		return nil, bbxerr.NewConfigurationError("matrix mixer: input/output counts must be >= 1")
	}
	if len(matrix) != outputCount {
		return nil, bbxerr.NewConfigurationError("matrix mixer: expected %d rows, got %d", outputCount, len(matrix))
	}
	m := &MatrixMixerBlock[S]{inputCount: inputCount, outputCount: outputCount}
	m.matrix = make([][]S, outputCount)
	for o, row := range matrix {
		if len(row) != inputCount {
			return nil, bbxerr.NewConfigurationError("matrix mixer: row %d expected %d columns, got %d", o, inputCount, len(row))
		}
		m.matrix[o] = make([]S, inputCount)
		for i, v := range row {
			m.matrix[o][i] = sample.FromF64[S](v)
		}
	}
	return m, nil
}

func (m *MatrixMixerBlock[S]) InputCount() int  { return m.inputCount }
func (m *MatrixMixerBlock[S]) OutputCount() int { return m.outputCount }

func (m *MatrixMixerBlock[S]) ModulationOutputs() []block.ModulationOutput { return nil }
func (m *MatrixMixerBlock[S]) ChannelConfig() block.ChannelConfig          { return block.Explicit }

func (m *MatrixMixerBlock[S]) BindParameter(name string, p param.Parameter[S]) error {
	return errUnknownParam
}

func (m *MatrixMixerBlock[S]) Reset() {}

func (m *MatrixMixerBlock[S]) Process(inputs [][]S, outputs [][]S, modulationValues []S, ctx *block.DspContext) {
	for o := range outputs {
		out := outputs[o]
		clear(out)
		row := m.matrix[o]
		for i, in := range inputs {
			g := row[i]
			if g == 0 {
				continue
			}
			for s, v := range in {
				out[s] += v * g
			}
		}
	}
}
