package normalize

import "testing"

func TestReasonCollapsesWhitespace(t *testing.T) {
	got := Reason("  helped   with\tthe \n release  ")
	want := "helped with the release"
	if got != want {
		t.Fatalf("Reason = %q, want %q", got, want)
	}
}

func TestReasonStripsFormatChars(t *testing.T) {
	// zero-width joiner between words must not survive
	got := Reason("pair‍programming")
	if got != "pairprogramming" {
		t.Fatalf("Reason = %q", got)
	}
}

func TestReasonFoldsFullwidth(t *testing.T) {
	got := Reason("ｔｈａｎｋｓ")
	if got != "thanks" {
		t.Fatalf("Reason = %q", got)
	}
}

func TestReasonEmpty(t *testing.T) {
	if Reason("") != "" {
		t.Fatalf("Reason(\"\") should be empty")
	}
}
