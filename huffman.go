// Copyright 2025 Jonathan Amsterdam. All rights reserved.
// Use of this source code is governed by a
// license that can be found in the LICENSE file.

package huffman

import (
	"container/heap"
	"slices"
	"strings"
)

// A Symbol is a symbol in an alphabet: a single character, or a token when
// the input is split into words. One Symbol, the sentinel, is reserved to
// mark the end of the stream and must not occur in the input.
type Symbol = string

// DefaultSentinel is the sentinel used when none is configured.
const DefaultSentinel Symbol = "□"

// maxCodeLen is the longest code an Encoder can write in one call.
// Reaching it requires a Fibonacci-like frequency distribution whose total
// count does not fit in memory, so in practice it is never hit.
const maxCodeLen = 64

// A FrequencyTable maps each distinct symbol to the number of times it occurs.
// Symbols are remembered in the order they were first counted; that order
// breaks ties between equal frequencies when a [Tree] is built.
type FrequencyTable struct {
	symbols []Symbol
	counts  map[Symbol]int
}

func newFrequencyTable() *FrequencyTable {
	return &FrequencyTable{counts: map[Symbol]int{}}
}

func (ft *FrequencyTable) add(s Symbol, n int) {
	if _, ok := ft.counts[s]; !ok {
		ft.symbols = append(ft.symbols, s)
	}
	ft.counts[s] += n
}

// CountFrequencies counts the symbols of seq. The sequence must end with
// sentinel and must not contain it anywhere else; a sequence holding only
// the sentinel is the smallest legal input.
func CountFrequencies(seq []Symbol, sentinel Symbol) (*FrequencyTable, error) {
	if len(seq) == 0 {
		return nil, stageErrorf(StageCount, ErrInvalidInput, "empty symbol sequence")
	}
	last := len(seq) - 1
	if seq[last] != sentinel {
		return nil, stageErrorf(StageCount, ErrInvalidInput, "sequence does not end with sentinel %q", sentinel)
	}
	ft := newFrequencyTable()
	for i, s := range seq {
		if s == sentinel && i != last {
			return nil, stageErrorf(StageCount, ErrInvalidInput, "sentinel %q at position %d", sentinel, i)
		}
		ft.add(s, 1)
	}
	return ft, nil
}

// Len returns the number of distinct symbols, sentinel included.
func (ft *FrequencyTable) Len() int { return len(ft.symbols) }

// Symbols returns the distinct symbols in first-occurrence order.
func (ft *FrequencyTable) Symbols() []Symbol { return slices.Clone(ft.symbols) }

// Count returns the number of occurrences of s.
func (ft *FrequencyTable) Count(s Symbol) int { return ft.counts[s] }

// A Tree is a binary prefix-code tree. Its nodes live in a single slice and
// refer to their children by index.
type Tree struct {
	nodes    []node
	root     int32
	sentinel Symbol
}

type node struct {
	sym         Symbol
	freq        int
	left, right int32 // -1 for leaves
}

func (n *node) isLeaf() bool { return n.left < 0 }

func (t *Tree) addLeaf(s Symbol, freq int) int32 {
	t.nodes = append(t.nodes, node{sym: s, freq: freq, left: -1, right: -1})
	return int32(len(t.nodes) - 1)
}

func (t *Tree) addInternal(left, right int32) int32 {
	freq := t.nodes[left].freq + t.nodes[right].freq
	t.nodes = append(t.nodes, node{freq: freq, left: left, right: right})
	return int32(len(t.nodes) - 1)
}

// NewTree builds a Huffman tree from ft, which must contain sentinel.
//
// The two least frequent nodes are merged repeatedly, the first becoming the
// left (bit 0) child. Among leaves of equal frequency the one counted first is
// taken first. A merged node is ordered ahead of every existing node of equal
// frequency, so the most recent merge is taken first. This order is part of
// the format: it decides which symbols get the shorter codes.
func NewTree(ft *FrequencyTable, sentinel Symbol) (*Tree, error) {
	if ft == nil || ft.Len() == 0 {
		return nil, stageErrorf(StageBuild, ErrInvalidInput, "empty frequency table")
	}
	if ft.Count(sentinel) == 0 {
		return nil, stageErrorf(StageBuild, ErrInvalidInput, "frequency table lacks sentinel %q", sentinel)
	}
	t := &Tree{
		nodes:    make([]node, 0, 2*ft.Len()-1),
		sentinel: sentinel,
	}
	h := make(nodeHeap, 0, ft.Len())
	for i, s := range ft.symbols {
		h = append(h, heapEntry{freq: ft.counts[s], seq: i, index: t.addLeaf(s, ft.counts[s])})
	}
	heap.Init(&h)
	merges := 0
	for h.Len() > 1 {
		left := heap.Pop(&h).(heapEntry)
		right := heap.Pop(&h).(heapEntry)
		merges++
		m := t.addInternal(left.index, right.index)
		heap.Push(&h, heapEntry{freq: t.nodes[m].freq, seq: -merges, index: m})
	}
	t.root = h[0].index
	return t, nil
}

// heapEntry orders tree nodes by (freq, seq). Leaves have seq equal to their
// first-occurrence position; the k'th merged node has seq -k.
type heapEntry struct {
	freq  int
	seq   int
	index int32
}

type nodeHeap []heapEntry

func (h nodeHeap) Len() int { return len(h) }

func (h nodeHeap) Less(i, j int) bool {
	if h[i].freq != h[j].freq {
		return h[i].freq < h[j].freq
	}
	return h[i].seq < h[j].seq
}

func (h nodeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *nodeHeap) Push(x any) { *h = append(*h, x.(heapEntry)) }

func (h *nodeHeap) Pop() any {
	old := *h
	e := old[len(old)-1]
	*h = old[:len(old)-1]
	return e
}

// Sentinel returns the symbol that marks the end of a stream coded with t.
func (t *Tree) Sentinel() Symbol { return t.sentinel }

// Leaves returns the number of leaves in t.
func (t *Tree) Leaves() int {
	return (len(t.nodes) + 1) / 2
}

// Depth returns the length of the longest root-to-leaf path.
// A tree that is a single leaf has depth 0.
func (t *Tree) Depth() int {
	depth := 0
	t.walk(func(_ *node, d int, _ uint64) bool {
		depth = max(depth, d)
		return true
	})
	return depth
}

// walk visits the nodes of t depth first, left before right, passing each
// node, its depth and its path bits. It stops early if f returns false.
func (t *Tree) walk(f func(n *node, depth int, path uint64) bool) {
	type frame struct {
		index int32
		depth int
		path  uint64
	}
	stack := []frame{{index: t.root}}
	for len(stack) > 0 {
		fr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := &t.nodes[fr.index]
		if !f(n, fr.depth, fr.path) {
			return
		}
		if !n.isLeaf() {
			// Push right first so left is visited first.
			stack = append(stack,
				frame{n.right, fr.depth + 1, fr.path<<1 | 1},
				frame{n.left, fr.depth + 1, fr.path << 1})
		}
	}
}

// A Code is a mapping from Symbols to bit sequences.
type Code struct {
	codes    map[Symbol]bitcode
	symbols  []Symbol // leaf order, left to right
	sentinel Symbol
}

type bitcode struct {
	val uint64
	len uint8
}

// Code derives the code table of t: each leaf's code is its path from the
// root, 0 for a left branch and 1 for a right one.
//
// If t is a single leaf, its symbol gets the one-bit code 0, as if it had
// an empty sibling on the 1 side.
func (t *Tree) Code() (*Code, error) {
	c := &Code{
		codes:    make(map[Symbol]bitcode, t.Leaves()),
		sentinel: t.sentinel,
	}
	if t.nodes[t.root].isLeaf() {
		s := t.nodes[t.root].sym
		c.codes[s] = bitcode{val: 0, len: 1}
		c.symbols = append(c.symbols, s)
		return c, nil
	}
	var err error
	t.walk(func(n *node, depth int, path uint64) bool {
		if depth > maxCodeLen {
			err = stageErrorf(StageBuild, ErrInvalidInput, "code length %d exceeds %d bits", depth, maxCodeLen)
			return false
		}
		if n.isLeaf() {
			c.codes[n.sym] = bitcode{val: path, len: uint8(depth)}
			c.symbols = append(c.symbols, n.sym)
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Len returns the number of symbols in the code.
func (c *Code) Len() int { return len(c.symbols) }

// Symbols returns the coded symbols in tree order, left to right.
func (c *Code) Symbols() []Symbol { return slices.Clone(c.symbols) }

// Sentinel returns the code's end-of-stream symbol.
func (c *Code) Sentinel() Symbol { return c.sentinel }

// Bits returns the code for s as a string of '0' and '1' characters.
func (c *Code) Bits(s Symbol) (string, bool) {
	b, ok := c.codes[s]
	if !ok {
		return "", false
	}
	var sb strings.Builder
	for i := int(b.len) - 1; i >= 0; i-- {
		if b.val>>i&1 == 1 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String(), true
}

func (c *Code) bits(s Symbol) (bitcode, bool) {
	b, ok := c.codes[s]
	return b, ok
}
