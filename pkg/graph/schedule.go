package graph

import (
	"github.com/blackboxaudio/bbx-audio-sub000/pkg/bbxerr"
	"github.com/blackboxaudio/bbx-audio-sub000/pkg/sample"
)

// PrepareForPlayback performs the topological sort (Kahn's algorithm) and
// sizes the modulation value vector to len(blocks), filled with zero. On
// cycle detection the graph is left unprepared (IsPrepared stays false)
// and ProcessBuffers refuses to run.
func (g *Graph[S]) PrepareForPlayback() error {
	order, err := kahnSort(len(g.blocks), g.connections)
	if err != nil {
		return err
	}
	g.execOrder = order
	g.modulationValues = make([]S, len(g.blocks))
	g.silence = make([]S, g.ctx.BufferSize*g.ctx.ChannelCount)
	g.inputMap = buildInputMap(g.blocks, g.connections)
	g.prepared = true
	return nil
}

// buildInputMap resolves, for every block's every input port, which pool
// index feeds it (-1 meaning "no connection, read silence"). Connections
// are walked in insertion order so that a later duplicate on the same
// (to, toPort) overwrites an earlier one, matching the "last one wins"
// rule of spec.md §4.7.
func buildInputMap[S sample.Type](blocks []blockEntry[S], connections []Connection) [][]int {
	m := make([][]int, len(blocks))
	for i, be := range blocks {
		ports := make([]int, be.b.InputCount())
		for p := range ports {
			ports[p] = -1
		}
		m[i] = ports
	}
	for _, c := range connections {
		if int(c.To) >= len(m) || c.ToPort >= len(m[c.To]) {
			continue
		}
		m[c.To][c.ToPort] = blocks[c.From].bufferStart + c.FromPort
	}
	return m
}

// kahnSort computes in-degree from connections, seeds a queue with every
// zero-in-degree block, and repeatedly emits+decrements. A failure to
// drain all n blocks means a cycle.
func kahnSort(n int, connections []Connection) ([]BlockID, error) {
	inDegree := make([]int, n)
	adjacency := make([][]BlockID, n)
	for _, c := range connections {
		adjacency[c.From] = append(adjacency[c.From], c.To)
		inDegree[c.To]++
	}

	queue := make([]BlockID, 0, n)
	for i := 0; i < n; i++ {
		if inDegree[i] == 0 {
			queue = append(queue, BlockID(i))
		}
	}

	order := make([]BlockID, 0, n)
	for len(queue) > 0 {
		b := queue[0]
		queue = queue[1:]
		order = append(order, b)
		for _, succ := range adjacency[b] {
			inDegree[succ]--
			if inDegree[succ] == 0 {
				queue = append(queue, succ)
			}
		}
	}

	if len(order) != n {
		return nil, &bbxerr.CycleDetectedError{Remaining: n - len(order)}
	}
	return order, nil
}
