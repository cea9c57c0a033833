// Package osc implements the OSC address grammar of spec.md §6: pure
// address parsing plus a Dispatcher that resolves addresses against a
// config.Result's uuid registry and writes directly into a graph.Graph.
// This package does not open a UDP socket — per spec.md §2 the network
// thread is a collaborator; this is what that collaborator calls once it
// has an OSC address and value in hand.
package osc

import (
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/blackboxaudio/bbx-audio-sub000/pkg/bbxerr"
	"github.com/blackboxaudio/bbx-audio-sub000/pkg/graph"
	"github.com/blackboxaudio/bbx-audio-sub000/pkg/sample"
)

// AddressKind discriminates the two address shapes spec.md §6 defines.
type AddressKind int

const (
	AddressTargeted  AddressKind = iota // /block/<uuid>/param/<name>
	AddressBroadcast                    // /blocks/param/<name>
)

// Address is a parsed OSC address.
type Address struct {
	Kind      AddressKind
	BlockUUID uuid.UUID // zero value when Kind == AddressBroadcast
	Param     string
}

// ParseAddress parses "/block/<uuid>/param/<name>" or
// "/blocks/param/<name>". Any other shape is a *bbxerr.ConfigurationError.
func ParseAddress(addr string) (Address, error) {
	parts := strings.Split(strings.Trim(addr, "/"), "/")

	switch {
	case len(parts) == 4 && parts[0] == "block" && parts[2] == "param":
		u, err := uuid.Parse(parts[1])
		if err != nil {
			return Address{}, bbxerr.NewConfigurationError("osc: invalid block uuid in address %q: %v", addr, err)
		}
		return Address{Kind: AddressTargeted, BlockUUID: u, Param: parts[3]}, nil
	case len(parts) == 3 && parts[0] == "blocks" && parts[1] == "param":
		return Address{Kind: AddressBroadcast, Param: parts[2]}, nil
	default:
		return Address{}, bbxerr.NewConfigurationError("osc: malformed address %q", addr)
	}
}

// CoerceFloat32 converts an OSC argument of type float32, int32, float64 or
// bool (true -> 1, false -> 0) to f32, per spec.md §6.
func CoerceFloat32(v any) (float32, error) {
	switch x := v.(type) {
	case float32:
		return x, nil
	case float64:
		return float32(x), nil
	case int32:
		return float32(x), nil
	case int:
		return float32(x), nil
	case bool:
		if x {
			return 1, nil
		}
		return 0, nil
	case string:
		f, err := strconv.ParseFloat(x, 32)
		if err != nil {
			return 0, bbxerr.NewConfigurationError("osc: cannot coerce %q to f32", x)
		}
		return float32(f), nil
	default:
		return 0, bbxerr.NewConfigurationError("osc: unsupported OSC argument type %T", v)
	}
}

// Dispatcher resolves parsed addresses against a uuid -> BlockID registry
// and applies the coerced value directly to the graph, via
// graph.Graph.SetConstant — a direct-set path reserved for the owning
// builder/control thread, never the audio thread.
type Dispatcher[S sample.Type] struct {
	g         *graph.Graph[S]
	uuidIndex map[uuid.UUID]graph.BlockID
	allNames  []graph.BlockID // every block id, for broadcast addresses
}

// NewDispatcher creates a Dispatcher over g using the uuid registry
// produced by config.Load.
func NewDispatcher[S sample.Type](g *graph.Graph[S], uuidIndex map[uuid.UUID]graph.BlockID) *Dispatcher[S] {
	all := make([]graph.BlockID, 0, len(uuidIndex))
	for _, id := range uuidIndex {
		all = append(all, id)
	}
	return &Dispatcher[S]{g: g, uuidIndex: uuidIndex, allNames: all}
}

// Dispatch parses addr, coerces value, and applies it. Targeted addresses
// that name an unknown uuid, and broadcast addresses applied to blocks
// that don't expose the named parameter, are tolerated silently on the
// broadcast path (spec.md: "broadcast to all blocks exposing <name>") but
// returned as errors on the targeted path.
func (d *Dispatcher[S]) Dispatch(addr string, value any) error {
	parsed, err := ParseAddress(addr)
	if err != nil {
		return err
	}

	f32, err := CoerceFloat32(value)
	if err != nil {
		return err
	}
	v := sample.FromF64[S](float64(f32))

	switch parsed.Kind {
	case AddressTargeted:
		id, ok := d.uuidIndex[parsed.BlockUUID]
		if !ok {
			return bbxerr.NewConfigurationError("osc: unknown block uuid %s", parsed.BlockUUID)
		}
		return d.g.SetConstant(id, parsed.Param, v)
	case AddressBroadcast:
		for _, id := range d.allNames {
			_ = d.g.SetConstant(id, parsed.Param, v) // unsupported params are silently skipped
		}
		return nil
	default:
		return bbxerr.NewConfigurationError("osc: unknown address kind")
	}
}
