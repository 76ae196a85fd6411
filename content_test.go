package pdftree

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestOperations(t *testing.T) {
	testCases := map[string]struct {
		input string
		want  []Operation
	}{
		"empty": {},
		"text block": {
			input: "BT /F1 12 Tf (Hello) Tj ET",
			want: []Operation{
				{Operator: "BT"},
				{Operator: "Tf", Operands: []Value{{Name("F1")}, {int64(12)}}},
				{Operator: "Tj", Operands: []Value{{String{Raw: "Hello"}}}},
				{Operator: "ET"},
			},
		},
		"reals and negatives": {
			input: "0.5 0.5 0.5 rg -10 +20 l",
			want: []Operation{
				{Operator: "rg", Operands: []Value{{0.5}, {0.5}, {0.5}}},
				{Operator: "l", Operands: []Value{{int64(-10)}, {int64(20)}}},
			},
		},
		"array operand": {
			input: "[(a) -20 (b)] TJ",
			want: []Operation{
				{Operator: "TJ", Operands: []Value{
					{Array{{String{Raw: "a"}}, {int64(-20)}, {String{Raw: "b"}}}},
				}},
			},
		},
		"dict operand": {
			input: "/Span <</ActualText (x)>> BDC EMC",
			want: []Operation{
				{Operator: "BDC", Operands: []Value{
					{Name("Span")},
					{Dict{{Key: "ActualText", Value: Value{String{Raw: "x"}}}}},
				}},
				{Operator: "EMC"},
			},
		},
		"hex string operand": {
			input: "<4869> Tj",
			want: []Operation{
				{Operator: "Tj", Operands: []Value{{String{Raw: "Hi", Hex: true}}}},
			},
		},
		"comment skipped": {
			input: "q % save state\nQ",
			want: []Operation{
				{Operator: "q"},
				{Operator: "Q"},
			},
		},
		"inline image skipped": {
			input: "BI /W 1 /H 1 ID \x00\x01\xff EI Q",
			want: []Operation{
				{Operator: "BI"},
				{Operator: "ID", Operands: []Value{
					{Name("W")}, {int64(1)}, {Name("H")}, {int64(1)},
				}},
				{Operator: "Q"},
			},
		},
	}

	opt := cmp.AllowUnexported(Value{})
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			got, err := Operations(strings.NewReader(tc.input))
			if err != nil {
				t.Fatal("Operations() failed:", err)
			}
			if diff := cmp.Diff(got, tc.want, opt); diff != "" {
				t.Error("operations did not match expectation:", diff)
			}
		})
	}
}

func TestOperations_TrailingOperands(t *testing.T) {
	ops, err := Operations(strings.NewReader("q 1 0 0 1 5 5 cm 42"))
	if err == nil {
		t.Fatal("Operations() succeeded, want trailing-operand error")
	}
	// The usable prefix is still returned.
	if len(ops) != 2 || ops[1].Operator != "cm" {
		t.Errorf("ops = %+v, want q and cm", ops)
	}
}

func TestOperatorInfo(t *testing.T) {
	names, desc, ok := OperatorInfo("Tf")
	if !ok || desc != "Set text font and size." {
		t.Errorf("OperatorInfo(Tf) = %q, %t", desc, ok)
	}
	if diff := cmp.Diff(names, []string{"font", "size"}); diff != "" {
		t.Error("operand names did not match expectation:", diff)
	}

	if _, _, ok := OperatorInfo("nonsense"); ok {
		t.Error("OperatorInfo reported an unknown operator as known")
	}
}

func TestFormatOperation(t *testing.T) {
	testCases := map[string]struct {
		op   Operation
		want string
	}{
		"no operands": {
			Operation{Operator: "q"},
			"q  Save graphics state.",
		},
		"named operands": {
			Operation{Operator: "Tf", Operands: []Value{{Name("F1")}, {int64(12)}}},
			"Tf(font=/F1 size=12)  Set text font and size.",
		},
		"variadic": {
			Operation{Operator: "scn", Operands: []Value{{0.1}, {0.2}}},
			"scn(0.1 0.2)  Set color for nonstroking operations (ICCBased and special colour spaces).",
		},
		"unknown": {
			Operation{Operator: "XYZ", Operands: []Value{{int64(1)}}},
			"XYZ(1)",
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			if got := formatOperation(tc.op); got != tc.want {
				t.Errorf("formatOperation() = %q, want %q", got, tc.want)
			}
		})
	}
}
