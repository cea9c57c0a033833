// Package config implements the JSON graph configuration loader of
// spec.md §6/SPEC_FULL.md §4.10: a non-C-host, test-friendly way to build a
// graph.Graph from blocks, connections, modulations and parameter
// bindings, dispatching on a lowercase block-type string.
package config

import (
	"encoding/json"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/blackboxaudio/bbx-audio-sub000/pkg/bbxerr"
	"github.com/blackboxaudio/bbx-audio-sub000/pkg/block"
	"github.com/blackboxaudio/bbx-audio-sub000/pkg/blocks"
	"github.com/blackboxaudio/bbx-audio-sub000/pkg/graph"
	"github.com/blackboxaudio/bbx-audio-sub000/pkg/sample"
)

// BlockSpec is one entry of the "blocks" array.
type BlockSpec struct {
	ID     int            `json:"id"`
	Type   string         `json:"type"`
	Name   string         `json:"name,omitempty"`
	UUID   string         `json:"uuid,omitempty"`
	Params map[string]any `json:"params,omitempty"`
}

// portRef is a [block_id, port] pair, decoded from a 2-element JSON array.
type portRef [2]int

// ConnectionSpec is one entry of the "connections" array.
type ConnectionSpec struct {
	From portRef `json:"from"`
	To   portRef `json:"to"`
}

// ModulationSpec is one entry of the "modulations" array. Depth is a
// pointer so "absent" (full-depth passthrough) is distinguishable from an
// explicit 0.
type ModulationSpec struct {
	Source int      `json:"source"`
	Target int      `json:"target"`
	Param  string   `json:"param"`
	Depth  *float64 `json:"depth,omitempty"`
}

// BindingSpec is one value of the "parameter_bindings" map.
type BindingSpec struct {
	Block int    `json:"block"`
	Param string `json:"param"`
}

// GraphSpec is the top-level JSON grammar of spec.md §6.
type GraphSpec struct {
	Blocks            []BlockSpec             `json:"blocks"`
	Connections       []ConnectionSpec        `json:"connections"`
	Modulations       []ModulationSpec        `json:"modulations"`
	ParameterBindings map[string]BindingSpec  `json:"parameter_bindings"`
}

// Result is everything Load produces beyond the prepared graph: the
// external-name -> atomic registry a host publishes Parameter::External
// values through, and the uuid -> BlockID registry the osc package
// resolves addresses against.
type Result[S sample.Type] struct {
	Graph      *graph.Graph[S]
	Externals  map[string]*atomic.Uint32
	BlockUUIDs map[uuid.UUID]graph.BlockID
}

// Load parses data as a GraphSpec and builds, connects, modulates, binds
// and prepares a graph.Graph[S] under ctx. Unknown block types and
// out-of-range references are reported as *bbxerr.ConfigurationError;
// unknown parameter names during connect/modulate/bind surface as
// *bbxerr.BindingError, matching graph's own error taxonomy.
func Load[S sample.Type](data []byte, ctx block.DspContext) (*Result[S], error) {
	var spec GraphSpec
	if err := json.Unmarshal(data, &spec); err != nil {
		return nil, bbxerr.NewConfigurationError("config: invalid json: %v", err)
	}

	g := graph.New[S](ctx)
	idMap := make(map[int]graph.BlockID, len(spec.Blocks))
	uuidMap := make(map[uuid.UUID]graph.BlockID, len(spec.Blocks))
	outputIDs := make([]graph.BlockID, 0, 1)

	for _, bs := range spec.Blocks {
		b, err := buildBlock[S](bs, ctx)
		if err != nil {
			return nil, err
		}
		name := bs.Name
		if name == "" {
			name = bs.Type
		}
		id := g.AddBlock(name, b)
		idMap[bs.ID] = id

		u := uuid.New()
		if bs.UUID != "" {
			parsed, err := uuid.Parse(bs.UUID)
			if err != nil {
				return nil, bbxerr.NewConfigurationError("config: block %d has invalid uuid %q: %v", bs.ID, bs.UUID, err)
			}
			u = parsed
		}
		uuidMap[u] = id

		if bs.Type == "output" {
			outputIDs = append(outputIDs, id)
		}
	}

	for _, cs := range spec.Connections {
		from, ok := idMap[cs.From[0]]
		if !ok {
			return nil, bbxerr.NewConfigurationError("config: connection references unknown block id %d", cs.From[0])
		}
		to, ok := idMap[cs.To[0]]
		if !ok {
			return nil, bbxerr.NewConfigurationError("config: connection references unknown block id %d", cs.To[0])
		}
		if err := g.Connect(from, cs.From[1], to, cs.To[1]); err != nil {
			return nil, err
		}
	}

	for _, ms := range spec.Modulations {
		source, ok := idMap[ms.Source]
		if !ok {
			return nil, bbxerr.NewConfigurationError("config: modulation references unknown block id %d", ms.Source)
		}
		target, ok := idMap[ms.Target]
		if !ok {
			return nil, bbxerr.NewConfigurationError("config: modulation references unknown block id %d", ms.Target)
		}

		if ms.Depth != nil && *ms.Depth != 1.0 {
			scaler := blocks.NewGainBlock[S](*ms.Depth)
			scalerID := g.AddBlock("_mod_depth_scaler", scaler)
			if err := g.Connect(source, 0, scalerID, 0); err != nil {
				return nil, err
			}
			source = scalerID
		}

		if err := g.Modulate(source, target, ms.Param); err != nil {
			return nil, err
		}
	}

	externals := make(map[string]*atomic.Uint32, len(spec.ParameterBindings))
	for extName, bind := range spec.ParameterBindings {
		target, ok := idMap[bind.Block]
		if !ok {
			return nil, bbxerr.NewConfigurationError("config: parameter binding %q references unknown block id %d", extName, bind.Block)
		}
		ptr := new(atomic.Uint32)
		if err := g.BindParameter(target, bind.Param, ptr); err != nil {
			return nil, err
		}
		externals[extName] = ptr
	}

	for _, id := range outputIDs {
		if err := g.RegisterOutput(id); err != nil {
			return nil, err
		}
	}

	if err := g.PrepareForPlayback(); err != nil {
		return nil, err
	}

	return &Result[S]{Graph: g, Externals: externals, BlockUUIDs: uuidMap}, nil
}
