// Package wav implements render.Writer against a 16-bit PCM WAV file, using
// go-audio/wav and go-audio/audio the way the pack's rayboyd-audio-engine
// reference wires a wav.Encoder around a reusable audio.IntBuffer.
package wav

import (
	"io"
	"math"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/blackboxaudio/bbx-audio-sub000/pkg/sample"
)

const bitDepth = 16

// Writer writes interleaved 16-bit PCM samples to an underlying
// io.WriteSeeker (typically an *os.File). It implements render.Writer[S]
// for any sample.Type; samples outside [-1, 1] are clamped, not wrapped.
type Writer[S sample.Type] struct {
	enc          *wav.Encoder
	sampleRate   int
	channelCount int
	buf          *audio.IntBuffer
}

// New creates a Writer over w at the given sample rate and channel count.
// The caller owns w and must not close it directly; call Writer.Close
// instead, which finalises the WAV header before closing the encoder.
func New[S sample.Type](w io.WriteSeeker, sampleRate, channelCount int) *Writer[S] {
	enc := wav.NewEncoder(w, sampleRate, bitDepth, channelCount, 1)
	return &Writer[S]{
		enc:          enc,
		sampleRate:   sampleRate,
		channelCount: channelCount,
		buf: &audio.IntBuffer{
			Format:         &audio.Format{NumChannels: channelCount, SampleRate: sampleRate},
			SourceBitDepth: bitDepth,
		},
	}
}

func (w *Writer[S]) SampleRate() float64 { return float64(w.sampleRate) }
func (w *Writer[S]) ChannelCount() int   { return w.channelCount }

// WriteSamples interleaves channels (one slice per channel, all the same
// length) into w's reusable IntBuffer and writes it through the encoder.
func (w *Writer[S]) WriteSamples(channels [][]S) error {
	if len(channels) != w.channelCount {
		return newChannelMismatchError(len(channels), w.channelCount)
	}
	n := 0
	if len(channels) > 0 {
		n = len(channels[0])
	}

	if cap(w.buf.Data) < n*w.channelCount {
		w.buf.Data = make([]int, n*w.channelCount)
	}
	w.buf.Data = w.buf.Data[:n*w.channelCount]

	for i := 0; i < n; i++ {
		for ch := 0; ch < w.channelCount; ch++ {
			w.buf.Data[i*w.channelCount+ch] = floatToPCM16(sample.ToF64(channels[ch][i]))
		}
	}

	return w.enc.Write(w.buf)
}

// Close finalises the WAV header (sample count, data chunk size) and
// closes the underlying encoder.
func (w *Writer[S]) Close() error { return w.enc.Close() }

func floatToPCM16(v float64) int {
	if v > 1 {
		v = 1
	}
	if v < -1 {
		v = -1
	}
	return int(math.Round(v * 32767))
}

type channelMismatchError struct {
	got, want int
}

func newChannelMismatchError(got, want int) error {
	return &channelMismatchError{got: got, want: want}
}

func (e *channelMismatchError) Error() string {
	return "bbx: wav writer channel mismatch"
}
