// Package pdftree renders the internal object structure of PDF files as a
// human-readable tree.
//
// # Overview
//
// A PDF document is a graph of objects connected by indirect references.
// This package exposes that graph and turns it into indented text suitable
// for a terminal, to help with inspecting malformed, unusual, or
// hand-crafted files. The output is a diagnostic view only: it is not
// machine-consumable and its exact formatting may change between versions.
//
// The byte-level work — tokenizing, cross-reference tables and streams,
// object streams, filters, encryption — is delegated to the pdfcpu library.
// Open returns a Document whose object table has already been fully
// decoded; everything in this package operates on that table.
//
// Specifically, each object is a Value with one of the following Kinds:
//
//	Null, for the null object.
//	Bool, for a boolean value.
//	Integer, for an integer.
//	Real, for a floating-point number.
//	String, for a string constant (literal or hexadecimal).
//	Name, for a name constant (as in /Helvetica).
//	Dict, for a dictionary of name-value pairs.
//	Array, for an array of values.
//	Stream, for an opaque data stream and associated header dictionary.
//	Reference, for an indirect reference to another object.
//
// The accessors on Value — Int64, Float64, Bool, Name, and so on — return
// a view of the data as the given type. When there is no appropriate view,
// the accessor returns a zero result. Returning zero values this way makes
// it possible to walk damaged documents without error checking at every
// step, which is the whole point of a diagnostic tool.
//
// BuildTree walks the graph from one or more roots, expanding each
// indirect object at most once, and Render converts the resulting node
// tree into text lines.
package pdftree

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/njupg/pdftree/internal/encoding"
)

// An ObjectID identifies an indirect object within one document:
// an object number and a generation number.
type ObjectID struct {
	Number     uint32
	Generation uint16
}

// String renders the id the way a PDF file references it, e.g. "12 0 R".
func (id ObjectID) String() string {
	return fmt.Sprintf("%d %d R", id.Number, id.Generation)
}

// A Value is a single PDF value, such as an integer, dictionary, or array.
// The zero Value is a PDF null (Kind() == NullKind, IsNull() == true).
type Value struct {
	data any
}

// IsNull reports whether the value is a null. It is equivalent to
// Kind() == NullKind.
func (v Value) IsNull() bool {
	return v.data == nil
}

// A ValueKind specifies the kind of data underlying a Value.
type ValueKind int

// The PDF value kinds.
const (
	NullKind ValueKind = iota
	BoolKind
	IntegerKind
	RealKind
	StringKind
	NameKind
	DictKind
	ArrayKind
	StreamKind
	RefKind
)

// A Name is a PDF name, without the leading slash.
type Name string

// A String is a PDF string constant. Raw holds the string bytes after the
// external decoder has undone escaping and hex decoding; Hex records
// whether the file wrote it in hexadecimal form, which only affects
// display.
type String struct {
	Raw string
	Hex bool
}

// A DictEntry is one key-value pair of a dictionary.
type DictEntry struct {
	Key   Name
	Value Value
}

// A Dict is a PDF dictionary. Entries keep the order fixed by the object
// model adapter; that order is stable across runs and is never re-sorted
// downstream, so sibling order in the rendered tree is deterministic.
type Dict []DictEntry

// An Array is a PDF array of values.
type Array []Value

// A Stream is a PDF stream: a header dictionary plus an opaque byte
// payload. Data holds the decoded payload when the external decoder could
// produce it, and is nil otherwise.
type Stream struct {
	Dict    Dict
	Length  int64
	Filters []Name
	Data    []byte
}

// Kind reports the kind of value underlying v.
func (v Value) Kind() ValueKind {
	switch v.data.(type) {
	default:
		return NullKind
	case bool:
		return BoolKind
	case int64:
		return IntegerKind
	case float64:
		return RealKind
	case String:
		return StringKind
	case Name:
		return NameKind
	case Dict:
		return DictKind
	case Array:
		return ArrayKind
	case *Stream:
		return StreamKind
	case ObjectID:
		return RefKind
	}
}

// String returns a textual representation of the value v in PDF-like
// syntax. Note that String is not the accessor for values with
// Kind() == StringKind; see RawString and Text.
func (v Value) String() string {
	return objfmt(v.data)
}

func objfmt(x any) string {
	switch x := x.(type) {
	default:
		return fmt.Sprint(x)
	case nil:
		return "null"
	case String:
		if x.Hex {
			var buf bytes.Buffer
			buf.WriteString("<")
			for i := 0; i < len(x.Raw); i++ {
				fmt.Fprintf(&buf, "%02x", x.Raw[i])
			}
			buf.WriteString(">")
			return buf.String()
		}
		if encoding.IsPDFDocEncoded(x.Raw) {
			return strconv.Quote(encoding.PDFDocDecode(x.Raw))
		}
		if encoding.IsUTF16(x.Raw) {
			return strconv.Quote(encoding.UTF16Decode(x.Raw[2:]))
		}
		return strconv.Quote(x.Raw)
	case Name:
		return "/" + string(x)
	case Dict:
		var buf bytes.Buffer
		buf.WriteString("<<")
		for i, e := range x {
			if i > 0 {
				buf.WriteString(" ")
			}
			buf.WriteString("/")
			buf.WriteString(string(e.Key))
			buf.WriteString(" ")
			buf.WriteString(objfmt(e.Value.data))
		}
		buf.WriteString(">>")
		return buf.String()
	case Array:
		var buf bytes.Buffer
		buf.WriteString("[")
		for i, elem := range x {
			if i > 0 {
				buf.WriteString(" ")
			}
			buf.WriteString(objfmt(elem.data))
		}
		buf.WriteString("]")
		return buf.String()
	case *Stream:
		return fmt.Sprintf("%s stream(%d bytes)", objfmt(x.Dict), x.Length)
	case ObjectID:
		return x.String()
	}
}

// Bool returns v's boolean value.
// If v.Kind() != BoolKind, Bool returns false.
func (v Value) Bool() bool {
	x, ok := v.data.(bool)
	if !ok {
		return false
	}
	return x
}

// Int64 returns v's int64 value.
// If v.Kind() != IntegerKind, Int64 returns 0.
func (v Value) Int64() int64 {
	x, ok := v.data.(int64)
	if !ok {
		return 0
	}
	return x
}

// Float64 returns v's float64 value, converting from integer if necessary.
// If v.Kind() != RealKind and v.Kind() != IntegerKind, Float64 returns 0.
func (v Value) Float64() float64 {
	x, ok := v.data.(float64)
	if !ok {
		x, ok := v.data.(int64)
		if ok {
			return float64(x)
		}
		return 0
	}
	return x
}

// RawString returns v's string bytes, unmodified.
// If v.Kind() != StringKind, RawString returns the empty string.
func (v Value) RawString() string {
	x, ok := v.data.(String)
	if !ok {
		return ""
	}
	return x.Raw
}

// HexString reports whether v is a string the file wrote in hexadecimal
// form. If v.Kind() != StringKind, HexString returns false.
func (v Value) HexString() bool {
	x, ok := v.data.(String)
	if !ok {
		return false
	}
	return x.Hex
}

// Text returns v's string value interpreted as a “text string” (defined in
// the PDF spec) and converted to UTF-8.
// If v.Kind() != StringKind, Text returns the empty string.
func (v Value) Text() string {
	x, ok := v.data.(String)
	if !ok {
		return ""
	}
	if encoding.IsPDFDocEncoded(x.Raw) {
		return encoding.PDFDocDecode(x.Raw)
	}
	if encoding.IsUTF16(x.Raw) {
		return encoding.UTF16Decode(x.Raw[2:])
	}
	return x.Raw
}

// Name returns v's name value without the leading slash:
// if v corresponds to the name written using the syntax /Helvetica,
// Name() == "Helvetica".
// If v.Kind() != NameKind, Name returns the empty string.
func (v Value) Name() string {
	x, ok := v.data.(Name)
	if !ok {
		return ""
	}
	return string(x)
}

// Ref returns the ObjectID of the indirect reference v.
// If v.Kind() != RefKind, Ref returns the zero ObjectID and false.
func (v Value) Ref() (ObjectID, bool) {
	x, ok := v.data.(ObjectID)
	return x, ok
}

// Dict returns v's dictionary entries in display order.
// If v is a stream, Dict applies to the stream's header dictionary.
// If v.Kind() != DictKind and v.Kind() != StreamKind, Dict returns nil.
func (v Value) Dict() Dict {
	x, ok := v.data.(Dict)
	if !ok {
		strm, ok := v.data.(*Stream)
		if !ok {
			return nil
		}
		x = strm.Dict
	}
	return x
}

// Key returns the value associated with the given name key in the
// dictionary v. The key should not include a leading slash. The result may
// itself be an indirect reference; Key performs no resolution.
// If v is a stream, Key applies to the stream's header dictionary.
// If v.Kind() != DictKind and v.Kind() != StreamKind, Key returns a null
// Value.
func (v Value) Key(key string) Value {
	for _, e := range v.Dict() {
		if e.Key == Name(key) {
			return e.Value
		}
	}
	return Value{}
}

// Keys returns the keys of the dictionary v in display order.
// If v is a stream, Keys applies to the stream's header dictionary.
// If v.Kind() != DictKind and v.Kind() != StreamKind, Keys returns nil.
func (v Value) Keys() []string {
	dict := v.Dict()
	if dict == nil {
		return nil
	}
	keys := make([]string, len(dict))
	for i, e := range dict {
		keys[i] = string(e.Key)
	}
	return keys
}

// Index returns the i'th element in the array v.
// If v.Kind() != ArrayKind or if i is outside the array bounds,
// Index returns a null Value.
func (v Value) Index(i int) Value {
	x, ok := v.data.(Array)
	if !ok || i < 0 || i >= len(x) {
		return Value{}
	}
	return x[i]
}

// Len returns the length of the array v.
// If v.Kind() != ArrayKind, Len returns 0.
func (v Value) Len() int {
	x, ok := v.data.(Array)
	if !ok {
		return 0
	}
	return len(x)
}

// Stream returns the stream underlying v.
// If v.Kind() != StreamKind, Stream returns nil.
func (v Value) Stream() *Stream {
	x, ok := v.data.(*Stream)
	if !ok {
		return nil
	}
	return x
}
