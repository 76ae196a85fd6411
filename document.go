package pdftree

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// An ObjectTable maps every indirect object the document declares to its
// value. It is built once per inspection run and read-only afterwards.
type ObjectTable map[ObjectID]Value

// Resolve looks up the object id in the table. It resolves one level only:
// the returned value may itself contain further references. A dangling
// reference is not an error; Resolve reports it with ok == false so the
// caller can render it as a missing-object leaf.
func (t ObjectTable) Resolve(id ObjectID) (Value, bool) {
	v, ok := t[id]
	return v, ok
}

// A Document is one decoded PDF file: its object table plus the designated
// root entry points. Documents do not share state; inspecting several
// files in one process uses one Document per file.
type Document struct {
	Table ObjectTable

	trailer Dict
	version string
	maxObj  int
	size    int
}

// Open decodes the PDF file at path and adapts the result into a Document.
// Decoding is performed entirely by pdfcpu; an unparsable file is the one
// failure this package does not recover from.
func Open(path string) (*Document, error) {
	ctx, err := api.ReadContextFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return NewDocument(ctx)
}

// NewDocument adapts an already-decoded pdfcpu context into a Document.
func NewDocument(ctx *model.Context) (*Document, error) {
	if ctx == nil || ctx.XRefTable == nil {
		return nil, fmt.Errorf("malformed PDF: no cross-reference table")
	}

	doc := &Document{
		Table: make(ObjectTable, len(ctx.Table)),
	}
	if ctx.HeaderVersion != nil {
		doc.version = ctx.HeaderVersion.String()
	}
	if ctx.Size != nil {
		doc.size = *ctx.Size
	}

	for nr, entry := range ctx.Table {
		if nr > doc.maxObj {
			doc.maxObj = nr
		}
		if entry == nil || entry.Free || entry.Object == nil {
			continue
		}
		gen := 0
		if entry.Generation != nil {
			gen = *entry.Generation
		}
		id := ObjectID{Number: uint32(nr), Generation: uint16(gen)}
		doc.Table[id] = importValue(entry.Object)
	}

	doc.trailer = importTrailer(ctx.XRefTable)
	return doc, nil
}

// Trailer returns the document's trailer dictionary, the natural root for
// a structure walk: it references the catalog and, through it, every
// reachable object.
func (d *Document) Trailer() Value {
	return Value{data: d.trailer}
}

// TrailerRoots returns one walk root per trailer entry, in trailer order.
// Walking all of them from one BuildTree call shares a single visited set,
// so an object referenced from both Root and Info expands only once.
func (d *Document) TrailerRoots() []Root {
	roots := make([]Root, len(d.trailer))
	for i, e := range d.trailer {
		roots[i] = Root{Label: string(e.Key), Value: e.Value}
	}
	return roots
}

// Version returns the PDF version from the file header, e.g. "1.7".
func (d *Document) Version() string {
	return d.version
}

// importTrailer rebuilds the trailer dictionary from the decoder's
// cross-reference state. The entry order below is fixed so that repeated
// runs render identically.
func importTrailer(x *model.XRefTable) Dict {
	var trailer Dict
	if x.Size != nil {
		trailer = append(trailer, DictEntry{Key: "Size", Value: Value{data: int64(*x.Size)}})
	}
	if x.Root != nil {
		trailer = append(trailer, DictEntry{Key: "Root", Value: importValue(*x.Root)})
	}
	if x.Info != nil {
		trailer = append(trailer, DictEntry{Key: "Info", Value: importValue(*x.Info)})
	}
	if x.Encrypt != nil {
		trailer = append(trailer, DictEntry{Key: "Encrypt", Value: importValue(*x.Encrypt)})
	}
	if x.ID != nil {
		trailer = append(trailer, DictEntry{Key: "ID", Value: importValue(x.ID)})
	}
	return trailer
}

// importValue normalizes one decoded pdfcpu object into a Value.
func importValue(obj types.Object) Value {
	switch x := obj.(type) {
	case nil:
		return Value{}
	case types.Boolean:
		return Value{data: x.Value()}
	case types.Integer:
		return Value{data: int64(x.Value())}
	case types.Float:
		return Value{data: x.Value()}
	case types.StringLiteral:
		s, err := types.StringLiteralToString(x)
		if err != nil {
			s = x.Value()
		}
		return Value{data: String{Raw: s}}
	case types.HexLiteral:
		s, err := types.HexLiteralToString(x)
		if err != nil {
			s = x.Value()
		}
		return Value{data: String{Raw: s, Hex: true}}
	case types.Name:
		return Value{data: Name(x.Value())}
	case types.Dict:
		return Value{data: importDict(x)}
	case types.Array:
		arr := make(Array, len(x))
		for i, elem := range x {
			arr[i] = importValue(elem)
		}
		return Value{data: arr}
	case types.StreamDict:
		return Value{data: importStream(x)}
	case types.IndirectRef:
		return Value{data: ObjectID{
			Number:     uint32(x.ObjectNumber.Value()),
			Generation: uint16(x.GenerationNumber.Value()),
		}}
	default:
		slog.Debug("unsupported object type in object table", "type", fmt.Sprintf("%T", obj))
		return Value{}
	}
}

func importDict(d types.Dict) Dict {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	// pdfcpu dictionaries are plain maps, so the adapter fixes the display
	// order here, once: Type and Subtype first, the rest lexicographic.
	// Downstream code never re-sorts.
	sort.Slice(keys, func(i, j int) bool {
		oi, oj := keyOrder(keys[i]), keyOrder(keys[j])
		if oi != oj {
			return oi < oj
		}
		return keys[i] < keys[j]
	})

	out := make(Dict, 0, len(keys))
	for _, k := range keys {
		out = append(out, DictEntry{Key: Name(k), Value: importValue(d[k])})
	}
	return out
}

func keyOrder(key string) int {
	switch key {
	case "Type":
		return 0
	case "Subtype":
		return 1
	default:
		return 2
	}
}

func importStream(sd types.StreamDict) *Stream {
	s := &Stream{Dict: importDict(sd.Dict)}

	if sd.StreamLength != nil {
		s.Length = *sd.StreamLength
	} else if n, ok := sd.Dict["Length"].(types.Integer); ok {
		s.Length = int64(n.Value())
	} else {
		s.Length = int64(len(sd.Raw))
	}

	for _, f := range sd.FilterPipeline {
		s.Filters = append(s.Filters, Name(f.Name))
	}

	if sd.Content != nil {
		s.Data = sd.Content
	} else if sd.Raw != nil {
		// Best effort: an unsupported filter leaves Data nil and the
		// stream renders as a summary leaf only.
		if err := sd.Decode(); err == nil {
			s.Data = sd.Content
		} else {
			slog.Debug("cannot decode stream payload", "err", err)
		}
	}
	return s
}
