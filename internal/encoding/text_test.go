package encoding

import "testing"

func TestPDFDocDecode(t *testing.T) {
	testCases := map[string]struct {
		input string
		want  string
	}{
		"ascii":    {"Hello", "Hello"},
		"bullet":   {"\x80", "•"},
		"ellipsis": {"\x83", "…"},
		"euro":     {"\xa0", "€"},
		"mixed":    {"a\x80b", "a•b"},
		"unmapped": {"\x7f", "�"},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			if got := PDFDocDecode(tc.input); got != tc.want {
				t.Errorf("PDFDocDecode(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestIsPDFDocEncoded(t *testing.T) {
	if !IsPDFDocEncoded("plain text") {
		t.Error("IsPDFDocEncoded(plain text) = false")
	}
	if IsPDFDocEncoded("\x7f") {
		t.Error("IsPDFDocEncoded(unmapped byte) = true")
	}
}

func TestUTF16(t *testing.T) {
	input := "\xfe\xff\x00H\x00i"
	if !IsUTF16(input) {
		t.Fatal("IsUTF16 = false for BOM-prefixed text")
	}
	if got := UTF16Decode(input[2:]); got != "Hi" {
		t.Errorf("UTF16Decode = %q, want %q", got, "Hi")
	}
	if IsUTF16("Hi") {
		t.Error("IsUTF16(plain ascii) = true")
	}
}
