package pdftree

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/njupg/pdftree/internal/term"
)

// Renderer styles.
var (
	treeStyle       = term.New(term.Cyan).Dim()
	helperStyle     = term.New(term.Cyan)
	typeStyle       = term.New(term.Default).Dim().Italic()
	valueStyle      = term.New(term.Default).Bold()
	expandInfoStyle = term.New(term.Default).Dim().Italic()
	extraInfoStyle  = term.New(term.Default).Italic()
	skippedStyle    = term.New(term.Blue).Italic()
	errorStyle      = term.New(term.Red).Bold()
)

// RenderOptions controls the text form of a rendered tree. The zero value
// renders plain lines without line numbers, type names, or color;
// DefaultRenderOptions returns the defaults used by the command-line tool.
type RenderOptions struct {
	// TypeNames appends each value's type name after its label.
	TypeNames bool

	// HexLimit elides the middle of hexadecimal strings longer than
	// this many bytes (minimum effective value 2, 0 disables).
	HexLimit int

	// LineNumbers prefixes each line with a right-aligned number and a
	// ┃ separator. LineNumberWidth is the minimum number width.
	LineNumbers     bool
	LineNumberWidth int

	// Color emits ANSI escape sequences.
	Color bool
}

// DefaultRenderOptions returns the default rendering settings.
func DefaultRenderOptions() *RenderOptions {
	return &RenderOptions{
		HexLimit:        16,
		LineNumbers:     true,
		LineNumberWidth: 4,
	}
}

// Render flattens trees produced by BuildTree into display lines, one
// line per node, with box-drawing connectors showing the structure.
// Rendering never mutates nodes or consults the object table, so the
// same trees render to the same lines every time.
func Render(nodes []*Node, opts *RenderOptions) []string {
	if opts == nil {
		opts = DefaultRenderOptions()
	}
	r := &renderer{opts: *opts}
	for i, n := range nodes {
		r.node(n, i == len(nodes)-1)
	}
	return r.lines
}

type renderer struct {
	opts   RenderOptions
	lines  []string
	indent []bool // which ancestor levels draw a rail
}

func (r *renderer) paint(s term.Style, text string) string {
	if !r.opts.Color {
		return text
	}
	return s.Render(text)
}

// emit appends one line: optional line number, one rail or blank per
// ancestor level, the branch connector, then the text.
func (r *renderer) emit(text string, last bool) {
	var sb strings.Builder
	if r.opts.LineNumbers {
		num := strconv.Itoa(len(r.lines) + 1)
		if pad := r.opts.LineNumberWidth - len(num); pad > 0 {
			sb.WriteString(strings.Repeat(" ", pad))
		}
		sb.WriteString(num)
		sb.WriteString("┃")
	}
	for _, rail := range r.indent {
		if rail {
			sb.WriteString(r.paint(treeStyle, "│"))
		} else {
			sb.WriteString(" ")
		}
		sb.WriteString(" ")
	}
	arrow := "├"
	if last {
		arrow = "└"
	}
	sb.WriteString(r.paint(treeStyle, arrow))
	sb.WriteString(" ")
	sb.WriteString(text)
	r.lines = append(r.lines, sb.String())
}

func (r *renderer) push(rail bool) { r.indent = append(r.indent, rail) }
func (r *renderer) pop()           { r.indent = r.indent[:len(r.indent)-1] }

func (r *renderer) node(n *Node, last bool) {
	if n.Note != "" {
		r.emit(r.noteText(n), last)
		return
	}

	if n.HasRef {
		// A resolved reference takes two lines, as in the file itself:
		// the label with the "12 0 R" pointer, then the target.
		r.emit(r.line(n.Label, refInfo(n.Ref)), last)
		r.push(!last)
		switch {
		case n.Cycle:
			// For a reference chain, name the object that was actually
			// expanded before, not the reference written at this position.
			back := n.Ref
			if id, ok := n.Value.Ref(); ok {
				back = id
			}
			r.emit(r.paint(expandInfoStyle, fmt.Sprintf("... (already expanded: %v)", back)), true)
		case n.Missing:
			r.emit(r.paint(errorStyle, "Error in PDF: Indirect Reference not found."), true)
		default:
			r.emit(r.line("", r.valueInfo(n.Value)), true)
			r.push(false)
			r.children(n.Children)
			r.pop()
		}
		r.pop()
		return
	}

	r.emit(r.line(n.Label, r.valueInfo(n.Value)), last)
	r.push(!last)
	r.children(n.Children)
	r.pop()
}

func (r *renderer) children(kids []*Node) {
	for i, k := range kids {
		r.node(k, i == len(kids)-1)
	}
}

func (r *renderer) noteText(n *Node) string {
	switch {
	case strings.HasPrefix(n.Note, "...skipped"):
		return r.paint(skippedStyle, n.Note)
	case strings.HasPrefix(n.Note, "... ("):
		return r.paint(expandInfoStyle, n.Note)
	case strings.HasPrefix(n.Note, "(stream data:"):
		text := r.paint(extraInfoStyle, n.Note)
		if n.Data != nil {
			text += " " + r.hexPreview(n.Data)
		}
		return text
	}
	return n.Note
}

// printInfo is the per-kind display recipe: a two-character symbol with
// its style, the long type name, the formatted value, and optional
// trailing info such as lengths.
type printInfo struct {
	style    term.Style
	symbol   string
	typeName string
	value    string
	extra    string
}

func refInfo(id ObjectID) printInfo {
	return printInfo{
		style:    term.New(term.White).Dim().Bold(),
		symbol:   "IR",
		typeName: "Indirect_Reference",
		value:    fmt.Sprintf("(%d,%d)", id.Number, id.Generation),
	}
}

func (r *renderer) valueInfo(v Value) printInfo {
	switch x := v.data.(type) {
	case nil:
		return printInfo{
			style:    term.New(term.Magenta).Bold(),
			symbol:   "Nu",
			typeName: "Null",
			value:    "<null>",
		}
	case bool:
		return printInfo{
			style:    term.New(term.Black).Bold(),
			symbol:   "b",
			typeName: "Bool",
			value:    strconv.FormatBool(x),
		}
	case int64:
		return printInfo{
			style:    term.New(term.Red).Bold(),
			symbol:   "Z",
			typeName: "Integer_Number",
			value:    strconv.FormatInt(x, 10),
		}
	case float64:
		return printInfo{
			style:    term.New(term.Magenta).Bold(),
			symbol:   "R",
			typeName: "Real_Number",
			value:    strconv.FormatFloat(x, 'g', -1, 64),
		}
	case Name:
		return printInfo{
			style:    term.New(term.Green).Bold(),
			symbol:   "Nm",
			typeName: "Name",
			value:    "'" + quoteText(string(x)) + "'",
		}
	case String:
		if x.Hex {
			return printInfo{
				style:    term.New(term.Orange).Bold(),
				symbol:   "0x",
				typeName: "Hexadecimal_String",
				value:    r.hexPreview([]byte(x.Raw)),
			}
		}
		return printInfo{
			style:    term.New(term.Yellow).Bold(),
			symbol:   "az",
			typeName: "Literal_String",
			value:    "'" + quoteText(v.Text()) + "'",
		}
	case Array:
		return printInfo{
			style:    term.New(term.Blue).Bold(),
			symbol:   "[]",
			typeName: "Array",
			extra:    fmt.Sprintf("(length: %d values)", len(x)),
		}
	case Dict:
		return printInfo{
			style:    term.New(term.Cyan).Bold(),
			symbol:   "{}",
			typeName: "Dictionary",
		}
	case *Stream:
		return printInfo{
			style:    term.New(term.Green).Bold(),
			symbol:   "S",
			typeName: "Stream",
			extra:    fmt.Sprintf("(length: %d bytes)", x.Length),
		}
	case ObjectID:
		return refInfo(x)
	}
	return printInfo{
		style:    term.New(term.Red).Bold(),
		symbol:   "??",
		typeName: "Unknown",
		value:    v.String(),
	}
}

// quoteText escapes control and non-printable bytes the way strconv.Quote
// does, minus the surrounding double quotes. Decoded strings and names can
// carry arbitrary bytes, and a raw ESC would let a document inject
// terminal control sequences through the viewer.
func quoteText(s string) string {
	q := strconv.Quote(s)
	return q[1 : len(q)-1]
}

// line assembles one node's text: symbol, label, optional type name, then
// "= value" when the kind has an inline value, then trailing extra info.
func (r *renderer) line(label string, info printInfo) string {
	var sb strings.Builder
	sb.WriteString(r.paint(info.style, fmt.Sprintf("%-2s", info.symbol)))
	sb.WriteString(" ")

	if label != "" {
		// Labels are mostly dictionary keys, which are names and can
		// carry arbitrary bytes through #xx escapes.
		sb.WriteString(quoteText(label))
	}
	if r.opts.TypeNames {
		if label != "" {
			sb.WriteString(r.paint(helperStyle, ":"))
		}
		sb.WriteString(r.paint(typeStyle, info.typeName))
	}
	if info.value != "" {
		if label != "" || r.opts.TypeNames {
			sb.WriteString(" ")
			sb.WriteString(r.paint(helperStyle, "="))
		}
		sb.WriteString(" ")
		sb.WriteString(r.paint(valueStyle, info.value))
	}
	if info.extra != "" {
		sb.WriteString(" ")
		sb.WriteString(r.paint(extraInfoStyle, info.extra))
	}
	return strings.TrimRight(sb.String(), " ")
}

// hexPreview formats bytes as "[61, 62, 63]", eliding the middle of
// payloads longer than HexLimit and noting how many bytes were skipped.
func (r *renderer) hexPreview(data []byte) string {
	limit := r.opts.HexLimit
	if limit > 0 && limit < 2 {
		limit = 2
	}

	var sb strings.Builder
	sb.WriteString("[")
	count := len(data)
	for i, c := range data {
		if limit > 0 && count > limit {
			switch {
			case i < limit-1 || i == count-1:
				// shown
			case i == count-2:
				skipped := count - limit
				sb.WriteString(r.paint(skippedStyle, fmt.Sprintf("...skipped %d bytes...", skipped)))
				sb.WriteString(", ")
				continue
			default:
				continue
			}
		}
		fmt.Fprintf(&sb, "%02x", c)
		if i != count-1 {
			sb.WriteString(", ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}

// Legend returns the boxed key mapping each symbol to its type name,
// printed above a tree unless suppressed.
func Legend(color bool) []string {
	const width = 30
	r := &renderer{opts: RenderOptions{Color: color}}

	kinds := []printInfo{
		r.valueInfo(Value{}),
		r.valueInfo(Value{true}),
		r.valueInfo(Value{int64(0)}),
		r.valueInfo(Value{0.0}),
		r.valueInfo(Value{Name("")}),
		r.valueInfo(Value{String{}}),
		r.valueInfo(Value{String{Hex: true}}),
		r.valueInfo(Value{Array{}}),
		r.valueInfo(Value{Dict{}}),
		r.valueInfo(Value{&Stream{}}),
		refInfo(ObjectID{}),
	}

	side := strings.Repeat("━", (width-8)/2)
	lines := []string{"┏" + side + " Legend " + side + "┓"}
	for _, info := range kinds {
		plain := fmt.Sprintf("%-2s %s", info.symbol, info.typeName)
		styled := r.paint(info.style, fmt.Sprintf("%-2s", info.symbol)) + " " + info.typeName
		lines = append(lines, "┃ "+styled+strings.Repeat(" ", width-len([]rune(plain))-1)+"┃")
	}
	lines = append(lines, "┗"+strings.Repeat("━", width)+"┛")
	return lines
}
