package pdftree

import (
	"bytes"
	"fmt"
	"strconv"
)

// A Node is one visited position in a structure walk: a label (dictionary
// key, array index, root name), the value found there, and the children
// the walk produced for it, in source order.
//
// Three flag combinations make a node terminal regardless of its value:
// Cycle marks a reference to an object that was already expanded earlier
// in the same walk, Missing marks a dangling reference, and a non-empty
// Note with a null Value marks an informational leaf (elided content,
// stream payload summaries, content-stream operations).
type Node struct {
	Label string
	Value Value

	// Ref records the ObjectID written at this position in the source,
	// for display as "12 0 R". HasRef distinguishes the zero id. When a
	// reference chain ends in a cycle or a dangling reference, Value
	// holds the last unresolvable reference of the chain.
	Ref    ObjectID
	HasRef bool

	Cycle   bool
	Missing bool
	Note    string

	// Data carries stream payload bytes when StreamDisplay is
	// StreamHex, so the renderer can show a bounded hex preview.
	Data []byte

	Children []*Node
}

// A Root is one labeled entry point for a walk.
type Root struct {
	Label string
	Value Value
}

// StreamDisplay selects how stream payloads appear in the tree.
type StreamDisplay int

const (
	// StreamNone shows a one-line payload summary (length and filters).
	StreamNone StreamDisplay = iota
	// StreamHex adds a bounded hexadecimal preview of the payload.
	StreamHex
	// StreamOps decodes content streams into their operations.
	StreamOps
)

// TreeOptions controls how much of the graph a walk expands. The zero
// value of each limit disables it; DefaultTreeOptions returns the
// defaults used by the command-line tool.
type TreeOptions struct {
	// MaxDepth stops descending into containers nested deeper than this
	// many levels; the cut point renders as an elision leaf.
	MaxDepth int

	// MaxNodes bounds the total number of nodes produced by one walk.
	// Cycle detection already guarantees termination; this guards
	// against extremely wide graphs.
	MaxNodes int

	// Expand restricts the walk to one spine of dictionary keys,
	// e.g. ["Root", "Pages", "Kids"]. Siblings off the spine are
	// skipped entirely.
	Expand []string

	// ArrayLimit elides the middle of arrays longer than this
	// (minimum effective value 2).
	ArrayLimit int

	// ExpandFonts descends into dictionary entries labeled "Font",
	// which are hidden by default to reduce clutter.
	ExpandFonts bool

	// Streams selects stream payload display. Operations are decoded
	// only for streams under a content label (Contents, AP, N, R, D)
	// unless ForceStreams is set.
	Streams      StreamDisplay
	ForceStreams bool
}

// DefaultTreeOptions returns the default walk limits.
func DefaultTreeOptions() *TreeOptions {
	return &TreeOptions{
		MaxDepth:   20,
		MaxNodes:   1 << 20,
		ArrayLimit: 5,
	}
}

// BuildTree walks the object graph from the given roots and returns one
// tree per root, children in source order.
//
// Each ObjectID is expanded at most once per call: the first reference to
// an object is resolved transparently (the subtree replaces the reference,
// with the id recorded on the node), a later reference becomes a terminal
// cycle node, and a reference absent from the table becomes a terminal
// missing node. PDF graphs are routinely cyclic — pages reference their
// parent, which references the pages back — so the visited set, not
// recursion depth, is what guarantees termination.
//
// The table and options are not mutated; a fresh visited set is used per
// call, so repeated calls over the same table yield identical trees.
func BuildTree(table ObjectTable, roots []Root, opts *TreeOptions) []*Node {
	if opts == nil {
		opts = DefaultTreeOptions()
	}
	w := &walker{
		table:   table,
		opts:    *opts,
		visited: make(map[ObjectID]bool),
	}

	out := make([]*Node, 0, len(roots))
	for _, root := range roots {
		// Root labels are the first level of an Expand spine.
		if len(w.opts.Expand) > 0 && root.Label != w.opts.Expand[0] {
			continue
		}
		out = append(out, w.node(root.Label, root.Value, 0, []string{root.Label}))
	}
	return out
}

type walker struct {
	table   ObjectTable
	opts    TreeOptions
	visited map[ObjectID]bool
	nodes   int
	starved bool // MaxNodes exhausted
}

// node creates the node for one labeled value, resolving a reference
// first if necessary, then expands its children.
func (w *walker) node(label string, v Value, depth int, path []string) *Node {
	w.nodes++
	n := &Node{Label: label, Value: v}

	// An indirect object may itself be defined as a reference, so resolve
	// until a direct value appears. The visited set bounds the chain.
	for {
		id, ok := v.Ref()
		if !ok {
			break
		}
		if !n.HasRef {
			n.Ref, n.HasRef = id, true
		}
		if w.visited[id] {
			n.Cycle = true
			n.Value = v
			return n
		}
		target, ok := w.table.Resolve(id)
		if !ok {
			n.Missing = true
			n.Value = v
			return n
		}
		w.visited[id] = true
		n.Value = target
		v = target
	}

	w.expand(n, v, depth, path)
	return n
}

func (w *walker) expand(n *Node, v Value, depth int, path []string) {
	if w.opts.MaxNodes > 0 && w.nodes >= w.opts.MaxNodes {
		if !w.starved {
			w.starved = true
			n.Children = append(n.Children, &Node{Note: "... (too many nodes, output truncated)"})
		}
		return
	}

	switch v.Kind() {
	case DictKind:
		w.expandDict(n, v.Dict(), depth, path)
	case ArrayKind:
		w.expandArray(n, v, depth, path)
	case StreamKind:
		strm := v.Stream()
		w.expandDict(n, strm.Dict, depth, path)
		w.expandPayload(n, strm)
	}
	// Primitives and references are handled before expand is called;
	// anything else is a terminal leaf.
}

func (w *walker) expandDict(n *Node, dict Dict, depth int, path []string) {
	if w.opts.MaxDepth > 0 && depth >= w.opts.MaxDepth {
		if len(dict) > 0 {
			n.Children = append(n.Children, &Node{Note: "... (reached max depth)"})
		}
		return
	}

	only, restricted := w.nextExpandLabel(path)
	for _, e := range dict {
		label := string(e.Key)
		if restricted && label != only {
			continue
		}

		sub := make([]string, len(path)+1)
		copy(sub, path)
		sub[len(path)] = label
		child := w.node(label, e.Value, depth+1, sub)
		n.Children = append(n.Children, child)

		if label == "Font" && !w.opts.ExpandFonts && len(child.Children) > 0 {
			child.Children = []*Node{{Note: "... (font contents hidden; show with -fonts)"}}
		}
	}
}

func (w *walker) expandArray(n *Node, v Value, depth int, path []string) {
	if w.opts.MaxDepth > 0 && depth >= w.opts.MaxDepth {
		if v.Len() > 0 {
			n.Children = append(n.Children, &Node{Note: "... (reached max depth)"})
		}
		return
	}

	count := v.Len()
	limit := w.opts.ArrayLimit
	if limit > 0 && limit < 2 {
		limit = 2
	}
	for i := 0; i < count; i++ {
		if limit > 0 && count > limit {
			switch {
			case i < limit-1 || i == count-1:
				// shown
			case i == count-2:
				skipped := count - limit
				n.Children = append(n.Children, &Node{
					Note: fmt.Sprintf("...skipped %d items...", skipped),
				})
				continue
			default:
				continue
			}
		}
		n.Children = append(n.Children, w.node(strconv.Itoa(i), v.Index(i), depth+1, path))
	}
}

// expandPayload appends the single leaf describing a stream's byte
// payload. The payload is never expanded byte by byte; at most a bounded
// hex preview or, for content streams, the decoded operations follow.
func (w *walker) expandPayload(n *Node, strm *Stream) {
	leaf := &Node{Note: payloadSummary(strm)}
	if w.opts.Streams == StreamHex {
		leaf.Data = strm.Data
	}
	n.Children = append(n.Children, leaf)

	if w.opts.Streams != StreamOps {
		return
	}
	if !w.opts.ForceStreams && !isContentLabel(n.Label) {
		n.Children = append(n.Children, &Node{Note: "... (not a content stream; decode with -force-streams)"})
		return
	}
	if strm.Data == nil {
		n.Children = append(n.Children, &Node{Note: "... (stream payload not decodable)"})
		return
	}

	ops, err := Operations(bytes.NewReader(strm.Data))
	for _, op := range ops {
		n.Children = append(n.Children, &Node{Note: formatOperation(op)})
	}
	if err != nil {
		n.Children = append(n.Children, &Node{Note: fmt.Sprintf("... (content stream cut short: %v)", err)})
	}
}

func payloadSummary(strm *Stream) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "(stream data: %d bytes", strm.Length)
	for _, f := range strm.Filters {
		fmt.Fprintf(&buf, ", %s", f)
	}
	buf.WriteString(")")
	return buf.String()
}

// isContentLabel reports whether a stream under this dictionary key holds
// page description operations: page contents and appearance streams.
func isContentLabel(label string) bool {
	switch label {
	case "Contents", "AP", "N", "R", "D":
		return true
	}
	return false
}

// nextExpandLabel returns the only dictionary key to descend into at the
// given path, per the Expand option. Once the path has consumed the whole
// Expand spine the walk is unrestricted again.
func (w *walker) nextExpandLabel(path []string) (string, bool) {
	if len(w.opts.Expand) == 0 || len(path) >= len(w.opts.Expand) {
		return "", false
	}
	return w.opts.Expand[len(path)], true
}
