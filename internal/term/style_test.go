package term

import "testing"

func TestStyle_Render(t *testing.T) {
	testCases := map[string]struct {
		style Style
		want  string
	}{
		"zero style":  {Style{}, "x"},
		"color":       {New(Red), "\x1b[31mx\x1b[0m"},
		"bold":        {New(Green).Bold(), "\x1b[32;1mx\x1b[0m"},
		"dim italic":  {New(Default).Dim().Italic(), "\x1b[39;2;3mx\x1b[0m"},
		"orange bold": {New(Orange).Bold(), "\x1b[38;5;208;1mx\x1b[0m"},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			if got := tc.style.Render("x"); got != tc.want {
				t.Errorf("Render(x) = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestStyle_CopyOnWrite(t *testing.T) {
	base := New(Blue)
	bold := base.Bold()

	if got := base.Render("x"); got != "\x1b[34mx\x1b[0m" {
		t.Errorf("base changed after deriving: %q", got)
	}
	if got := bold.Render("x"); got != "\x1b[34;1mx\x1b[0m" {
		t.Errorf("derived style = %q", got)
	}
}
