package pdftree

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRender_Tree(t *testing.T) {
	table := ObjectTable{
		{Number: 1}: {Dict{
			{Key: "Type", Value: Value{Name("Catalog")}},
			{Key: "Pages", Value: ref(2, 0)},
		}},
		{Number: 2}: {Dict{
			{Key: "Parent", Value: ref(1, 0)},
			{Key: "Count", Value: Value{int64(1)}},
		}},
	}
	nodes := BuildTree(table, []Root{{Label: "Root", Value: ref(1, 0)}}, &TreeOptions{})

	got := Render(nodes, &RenderOptions{})
	want := []string{
		"└ IR Root = (1,0)",
		"  └ {}",
		"    ├ Nm Type = 'Catalog'",
		"    └ IR Pages = (2,0)",
		"      └ {}",
		"        ├ IR Parent = (1,0)",
		"        │ └ ... (already expanded: 1 0 R)",
		"        └ Z  Count = 1",
	}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Error("rendered tree did not match expectation:", diff)
	}
}

func TestRender_LineNumbers(t *testing.T) {
	v := Value{Dict{
		{Key: "A", Value: Value{int64(1)}},
		{Key: "B", Value: Value{int64(2)}},
	}}
	nodes := BuildTree(ObjectTable{}, []Root{{Label: "T", Value: v}}, &TreeOptions{})

	got := Render(nodes, &RenderOptions{LineNumbers: true, LineNumberWidth: 4})
	want := []string{
		"   1┃└ {} T",
		"   2┃  ├ Z  A = 1",
		"   3┃  └ Z  B = 2",
	}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Error("numbered lines did not match expectation:", diff)
	}
}

func TestRender_TypeNames(t *testing.T) {
	v := Value{Dict{{Key: "Count", Value: Value{int64(3)}}}}
	nodes := BuildTree(ObjectTable{}, []Root{{Label: "T", Value: v}}, &TreeOptions{})

	got := Render(nodes, &RenderOptions{TypeNames: true})
	want := []string{
		"└ {} T:Dictionary",
		"  └ Z  Count:Integer_Number = 3",
	}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Error("typed lines did not match expectation:", diff)
	}
}

func TestRender_MissingReference(t *testing.T) {
	v := Value{Dict{{Key: "Dest", Value: ref(99, 0)}}}
	nodes := BuildTree(ObjectTable{}, []Root{{Label: "T", Value: v}}, &TreeOptions{})

	got := Render(nodes, &RenderOptions{})
	want := []string{
		"└ {} T",
		"  └ IR Dest = (99,0)",
		"    └ Error in PDF: Indirect Reference not found.",
	}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Error("missing reference did not match expectation:", diff)
	}
}

func TestRender_EscapesControlBytes(t *testing.T) {
	// Strings and names can carry arbitrary bytes; raw ESC or NUL must
	// never reach an output line.
	v := Value{Dict{
		{Key: "S", Value: Value{String{Raw: "a\x1b[31mred\x00b"}}},
		{Key: "M", Value: Value{String{Raw: "a\nb"}}},
		{Key: "N", Value: Value{Name("A\x1bB")}},
		{Key: "K\x07", Value: Value{int64(1)}},
	}}
	nodes := BuildTree(ObjectTable{}, []Root{{Label: "T", Value: v}}, &TreeOptions{})

	got := Render(nodes, &RenderOptions{})
	want := []string{
		"└ {} T",
		`  ├ az S = 'a\x1b[31mred\x00b'`,
		`  ├ az M = 'a\nb'`,
		`  ├ Nm N = 'A\x1bB'`,
		`  └ Z  K\a = 1`,
	}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Error("escaped lines did not match expectation:", diff)
	}
}

func TestRender_ArrayExtraInfo(t *testing.T) {
	v := Value{Dict{{Key: "Kids", Value: Value{Array{{int64(1)}}}}}}
	nodes := BuildTree(ObjectTable{}, []Root{{Label: "T", Value: v}}, &TreeOptions{})

	got := Render(nodes, &RenderOptions{})
	want := []string{
		"└ {} T",
		"  └ [] Kids (length: 1 values)",
		"    └ Z  0 = 1",
	}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Error("array lines did not match expectation:", diff)
	}
}

func TestRender_HexLimit(t *testing.T) {
	testCases := map[string]struct {
		limit int
		want  string
	}{
		"unlimited": {0, "[61, 62, 63, 64, 65, 66, 67, 68]"},
		"limited":   {5, "[61, 62, 63, 64, ...skipped 3 bytes..., 68]"},
		"clamped":   {1, "[61, ...skipped 6 bytes..., 68]"},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			r := &renderer{opts: RenderOptions{HexLimit: tc.limit}}
			if got := r.hexPreview([]byte("abcdefgh")); got != tc.want {
				t.Errorf("hexPreview() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestRender_Color(t *testing.T) {
	v := Value{Dict{{Key: "Count", Value: Value{int64(3)}}}}
	nodes := BuildTree(ObjectTable{}, []Root{{Label: "T", Value: v}}, &TreeOptions{})

	for _, line := range Render(nodes, &RenderOptions{}) {
		if strings.Contains(line, "\x1b[") {
			t.Errorf("plain output contains escape sequence: %q", line)
		}
	}
	var painted bool
	for _, line := range Render(nodes, &RenderOptions{Color: true}) {
		if strings.Contains(line, "\x1b[") {
			painted = true
		}
	}
	if !painted {
		t.Error("colored output contains no escape sequences")
	}
}

func TestLegend(t *testing.T) {
	lines := Legend(false)

	want := []string{
		"┏━━━━━━━━━━━ Legend ━━━━━━━━━━━┓",
		"┃ Nu Null                      ┃",
		"┃ b  Bool                      ┃",
		"┃ Z  Integer_Number            ┃",
		"┃ R  Real_Number               ┃",
		"┃ Nm Name                      ┃",
		"┃ az Literal_String            ┃",
		"┃ 0x Hexadecimal_String        ┃",
		"┃ [] Array                     ┃",
		"┃ {} Dictionary                ┃",
		"┃ S  Stream                    ┃",
		"┃ IR Indirect_Reference        ┃",
		"┗━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━┛",
	}
	if diff := cmp.Diff(lines, want); diff != "" {
		t.Error("legend did not match expectation:", diff)
	}
}
