package model

import "testing"

func TestParseOptInt_PlainInteger(t *testing.T) {
	got := ParseOptInt("2020")
	if !got.Valid || got.Value != 2020 {
		t.Errorf("Expected 2020, got %+v", got)
	}
}

func TestParseOptInt_FractionalRoundsToNearest(t *testing.T) {
	got := ParseOptInt("83.6")
	if !got.Valid || got.Value != 84 {
		t.Errorf("Expected 84, got %+v", got)
	}
	got = ParseOptInt("83.4")
	if !got.Valid || got.Value != 83 {
		t.Errorf("Expected 83, got %+v", got)
	}
}

func TestParseOptInt_MalformedBecomesAbsent(t *testing.T) {
	for _, in := range []string{"", "  ", "tbd", "8O", "NaN", "Inf"} {
		if got := ParseOptInt(in); got.Valid {
			t.Errorf("Expected %q to coerce to absent, got %+v", in, got)
		}
	}
}

func TestParseOptInt_TrimsWhitespace(t *testing.T) {
	got := ParseOptInt(" 75 ")
	if !got.Valid || got.Value != 75 {
		t.Errorf("Expected 75, got %+v", got)
	}
}

func TestOptInt_String(t *testing.T) {
	if got := Int(84).String(); got != "84" {
		t.Errorf("Expected %q, got %q", "84", got)
	}
	if got := (OptInt{}).String(); got != "" {
		t.Errorf("Expected empty string for absent value, got %q", got)
	}
	// Zero is a value, not absence.
	if got := Int(0).String(); got != "0" {
		t.Errorf("Expected %q, got %q", "0", got)
	}
}

func TestRecord_Placeholder(t *testing.T) {
	empty := Record{Title: "Foo", ReleaseYear: Int(2020), Metascore: Int(75)}
	if !empty.Placeholder() {
		t.Error("Expected row with no publication, author, or score to be a placeholder")
	}

	withAuthor := empty
	withAuthor.Author = "J. Doe"
	if withAuthor.Placeholder() {
		t.Error("Expected row with an author not to be a placeholder")
	}

	withScore := empty
	withScore.CriticScore = Int(0)
	if withScore.Placeholder() {
		t.Error("Expected row with a literal 0 score not to be a placeholder")
	}
}
