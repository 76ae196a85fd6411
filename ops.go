package pdftree

import "strings"

// operatorInfo describes one content-stream operator per the page
// description catalog in ISO 32000-1, Annex A: the names of its operands,
// in order, and a one-line description. A nil operands slice means the
// operator takes a variable number of operands.
type operatorInfo struct {
	operands []string
	desc     string
}

var operators = map[string]operatorInfo{
	"b":   {[]string{}, "Close, fill, and stroke path using nonzero winding number rule."},
	"B":   {[]string{}, "Fill and stroke path using nonzero winding number rule."},
	"b*":  {[]string{}, "Close, fill, and stroke path using even-odd rule."},
	"B*":  {[]string{}, "Fill and stroke path using even-odd rule."},
	"BDC": {[]string{"tag", "properties"}, "Begin marked-content sequence with property list."},
	"BI":  {[]string{}, "Begin inline image object."},
	"BMC": {[]string{"tag"}, "Begin marked-content sequence."},
	"BT":  {[]string{}, "Begin text object."},
	"BX":  {[]string{}, "Begin compatibility section."},
	"c":   {[]string{"x1", "y1", "x2", "y2", "x3", "y3"}, "Append curved segment to path (three control points)."},
	"cm":  {[]string{"a", "b", "c", "d", "e", "f"}, "Concatenate matrix to current transformation matrix."},
	"CS":  {[]string{"name"}, "Set color space for stroking operations."},
	"cs":  {[]string{"name"}, "Set color space for nonstroking operations."},
	"d":   {[]string{"dashArray", "dashPhase"}, "Set line dash pattern."},
	"d0":  {[]string{"wx", "wy"}, "Set glyph width in Type 3 font."},
	"d1":  {[]string{"wx", "wy", "llx", "lly", "urx", "ury"}, "Set glyph width and bounding box in Type 3 font."},
	"Do":  {[]string{"name"}, "Invoke named XObject."},
	"DP":  {[]string{"tag", "properties"}, "Define marked-content point with property list."},
	"EI":  {[]string{}, "End inline image object."},
	"EMC": {[]string{}, "End marked-content sequence."},
	"ET":  {[]string{}, "End text object."},
	"EX":  {[]string{}, "End compatibility section."},
	"f":   {[]string{}, "Fill path using nonzero winding number rule."},
	"F":   {[]string{}, "Fill path using nonzero winding number rule (obsolete)."},
	"f*":  {[]string{}, "Fill path using even-odd rule."},
	"G":   {[]string{"gray"}, "Set gray level for stroking operations."},
	"g":   {[]string{"gray"}, "Set gray level for nonstroking operations."},
	"gs":  {[]string{"dictName"}, "Set parameters from graphics state parameter dictionary."},
	"h":   {[]string{}, "Close subpath."},
	"i":   {[]string{"flatness"}, "Set flatness tolerance."},
	"ID":  {[]string{}, "Begin inline image data."},
	"j":   {[]string{"lineJoin"}, "Set line join style."},
	"J":   {[]string{"lineCap"}, "Set line cap style."},
	"K":   {[]string{"cyan", "magenta", "yellow", "black"}, "Set CMYK color for stroking operations."},
	"k":   {[]string{"cyan", "magenta", "yellow", "black"}, "Set CMYK color for nonstroking operations."},
	"l":   {[]string{"x", "y"}, "Append straight line segment to path."},
	"m":   {[]string{"x", "y"}, "Begin new subpath."},
	"M":   {[]string{"miterLimit"}, "Set miter limit."},
	"MP":  {[]string{"tag"}, "Define marked-content point."},
	"n":   {[]string{}, "End path without filling or stroking."},
	"q":   {[]string{}, "Save graphics state."},
	"Q":   {[]string{}, "Restore graphics state."},
	"re":  {[]string{"x", "y", "width", "height"}, "Append rectangle to path."},
	"RG":  {[]string{"red", "green", "blue"}, "Set RGB color for stroking operations."},
	"rg":  {[]string{"red", "green", "blue"}, "Set RGB color for nonstroking operations."},
	"ri":  {[]string{"intent"}, "Set color rendering intent."},
	"s":   {[]string{}, "Close and stroke path."},
	"S":   {[]string{}, "Stroke path."},
	"SC":  {nil, "Set color for stroking operations."},
	"sc":  {nil, "Set color for nonstroking operations."},
	"SCN": {nil, "Set color for stroking operations (ICCBased and special colour spaces)."},
	"scn": {nil, "Set color for nonstroking operations (ICCBased and special colour spaces)."},
	"sh":  {[]string{"name"}, "Paint area defined by shading pattern."},
	"T*":  {[]string{}, "Move to start of next text line."},
	"Tc":  {[]string{"charSpace"}, "Set character spacing."},
	"Td":  {[]string{"tx", "ty"}, "Move text position."},
	"TD":  {[]string{"tx", "ty"}, "Move text position and set leading."},
	"Tf":  {[]string{"font", "size"}, "Set text font and size."},
	"Tj":  {[]string{"string"}, "Show text."},
	"TJ":  {[]string{"array"}, "Show text, allowing individual glyph positioning."},
	"TL":  {[]string{"leading"}, "Set text leading."},
	"Tm":  {[]string{"a", "b", "c", "d", "e", "f"}, "Set text matrix and text line matrix."},
	"Tr":  {[]string{"render"}, "Set text rendering mode."},
	"Ts":  {[]string{"rise"}, "Set text rise."},
	"Tw":  {[]string{"wordSpace"}, "Set word spacing."},
	"Tz":  {[]string{"scale"}, "Set horizontal text scaling."},
	"v":   {[]string{"x2", "y2", "x3", "y3"}, "Append curved segment to path (initial point replicated)."},
	"w":   {[]string{"lineWidth"}, "Set line width."},
	"W":   {[]string{}, "Set clipping path using nonzero winding number rule."},
	"W*":  {[]string{}, "Set clipping path using even-odd rule."},
	"y":   {[]string{"x1", "y1", "x3", "y3"}, "Append curved segment to path (final point replicated)."},
	"'":   {[]string{"string"}, "Move to next line and show text."},
	"\"":  {[]string{"wordSpace", "charSpace", "string"}, "Set word and character spacing, move to next line, and show text."},
}

// OperatorInfo returns the operand names and description for a content
// stream operator. Unknown operators report ok false; a nil names slice
// with ok true means the operator is variadic.
func OperatorInfo(op string) (names []string, desc string, ok bool) {
	info, ok := operators[op]
	return info.operands, info.desc, ok
}

// formatOperation renders one operation for the tree: the operator, its
// operands labeled with their catalog names when known, and the catalog
// description.
func formatOperation(op Operation) string {
	var sb strings.Builder
	sb.WriteString(op.Operator)

	names, desc, known := OperatorInfo(op.Operator)
	if len(op.Operands) > 0 {
		sb.WriteString("(")
		for i, arg := range op.Operands {
			if i > 0 {
				sb.WriteString(" ")
			}
			if known && i < len(names) {
				sb.WriteString(names[i])
				sb.WriteString("=")
			}
			sb.WriteString(arg.String())
		}
		sb.WriteString(")")
	}
	if known && desc != "" {
		sb.WriteString("  ")
		sb.WriteString(desc)
	}
	return sb.String()
}
