// Command bbxrender offline-renders a JSON graph configuration to a WAV
// file as fast as the host CPU allows, printing the resulting render
// statistics (spec.md §4.8).
package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/blackboxaudio/bbx-audio-sub000/pkg/block"
	"github.com/blackboxaudio/bbx-audio-sub000/pkg/config"
	"github.com/blackboxaudio/bbx-audio-sub000/pkg/render"
	wavwriter "github.com/blackboxaudio/bbx-audio-sub000/writer/wav"
)

func main() {
	configPath := pflag.StringP("config", "c", "", "path to a JSON graph configuration file")
	outPath := pflag.StringP("out", "o", "out.wav", "output WAV file path")
	sampleRate := pflag.IntP("sample-rate", "r", 48000, "render sample rate in Hz")
	bufferSize := pflag.IntP("buffer-size", "b", 512, "samples per buffer")
	channels := pflag.IntP("channels", "n", 2, "channel count")
	seconds := pflag.Float64P("seconds", "s", 10.0, "duration to render, in seconds")
	help := pflag.Bool("help", false, "display help text")
	pflag.Parse()

	if *help || *configPath == "" {
		pflag.Usage()
		os.Exit(2)
	}

	if err := run(*configPath, *outPath, *sampleRate, *bufferSize, *channels, *seconds); err != nil {
		log.Fatal("bbxrender exited with error", "err", err)
	}
}

func run(configPath, outPath string, sampleRate, bufferSize, channels int, seconds float64) error {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return err
	}

	ctx := block.DspContext{
		SampleRate:   float64(sampleRate),
		BufferSize:   bufferSize,
		ChannelCount: channels,
	}

	result, err := config.Load[float64](data, ctx)
	if err != nil {
		return err
	}
	log.Info("graph loaded", "blocks", result.Graph.BlockCount())

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}

	w := wavwriter.New[float64](f, sampleRate, channels)
	renderer, err := render.New[float64](result.Graph, w)
	if err != nil {
		f.Close()
		return err
	}

	stats, err := renderer.Render(render.Seconds(seconds))
	closeErr := f.Close()
	if err != nil {
		return err
	}
	if closeErr != nil {
		return closeErr
	}

	log.Info("render complete",
		"samples_rendered", stats.SamplesRendered,
		"wall_time", stats.WallTime,
		"speedup_factor", stats.SpeedupFactor,
		"out", outPath,
	)
	return nil
}
