// Command bbxplay is a standalone graph player: it loads a JSON graph
// config, drives it live through an audio backend, and wires a stub MIDI
// producer goroutine so the voice/midi packages have something to feed.
package main

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/log"
	"github.com/ebitengine/oto/v3"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/blackboxaudio/bbx-audio-sub000/pkg/block"
	"github.com/blackboxaudio/bbx-audio-sub000/pkg/config"
	"github.com/blackboxaudio/bbx-audio-sub000/pkg/midi"
)

func main() {
	configPath := pflag.StringP("config", "c", "", "path to a JSON graph configuration file")
	sampleRate := pflag.IntP("sample-rate", "r", 48000, "playback sample rate in Hz")
	bufferSize := pflag.IntP("buffer-size", "b", 512, "samples per buffer")
	channels := pflag.IntP("channels", "n", 2, "channel count")
	verbose := pflag.BoolP("verbose", "v", false, "enable debug logging")
	help := pflag.Bool("help", false, "display help text")
	pflag.Parse()

	if *help || *configPath == "" {
		pflag.Usage()
		os.Exit(2)
	}

	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	if err := run(*configPath, *sampleRate, *bufferSize, *channels); err != nil {
		log.Fatal("bbxplay exited with error", "err", err)
	}
}

func run(configPath string, sampleRate, bufferSize, channels int) error {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return err
	}

	ctx := block.DspContext{
		SampleRate:   float64(sampleRate),
		BufferSize:   bufferSize,
		ChannelCount: channels,
	}

	result, err := config.Load[float32](data, ctx)
	if err != nil {
		return err
	}
	log.Info("graph loaded", "blocks", result.Graph.BlockCount(), "sample_rate", sampleRate, "buffer_size", bufferSize)

	otoCtx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       oto.FormatFloat32LE,
		BufferSize:   time.Duration(bufferSize) * time.Second / time.Duration(sampleRate),
	})
	if err != nil {
		return err
	}
	<-ready

	reader := newGraphReader(result.Graph, ctx)
	player := otoCtx.NewPlayer(reader)
	player.Play()
	defer player.Close()

	rootCtx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	group, groupCtx := errgroup.WithContext(rootCtx)
	dispatcher := midi.NewDispatcher(nil, nil, nil)
	group.Go(func() error { return runStubMidiProducer(groupCtx, dispatcher) })

	log.Info("playing, press ctrl-c to stop")
	<-rootCtx.Done()
	return group.Wait()
}

// runStubMidiProducer stands in for a real MIDI transport (ALSA/CoreMIDI
// port, virtual keyboard): it periodically toggles a note on the
// dispatcher's voice state, honouring ctx for shutdown like any other
// producer goroutine. The dispatcher publishes to no atomics here, so the
// notes do not change what the graph plays.
func runStubMidiProducer(ctx context.Context, d *midi.Dispatcher) error {
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	note := uint8(60)
	on := true
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if on {
				d.Dispatch(midi.Event{Status: 0x90, Data1: note, Data2: 100})
			} else {
				d.Dispatch(midi.Event{Status: 0x80, Data1: note, Data2: 0})
			}
			on = !on
		}
	}
}
