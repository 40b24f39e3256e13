package keys

import (
	"testing"

	"metafix/internal/model"
	"metafix/internal/normalize"
)

func record(title string, year model.OptInt, pub, author string, score model.OptInt) model.Record {
	return model.Record{
		Title:       title,
		ReleaseYear: year,
		Publication: pub,
		Author:      author,
		CriticScore: score,
	}
}

func TestMovie_NormalizesFormattingDifferences(t *testing.T) {
	n := normalize.New()
	a := record("Bar & Baz", model.Int(2019), "", "", model.OptInt{})
	b := record("Bar &amp;  BAZ", model.Int(2019), "", "", model.OptInt{})

	if Movie(n, a) != Movie(n, b) {
		t.Errorf("Expected entity/whitespace/case variants to share a movie key: %q vs %q", Movie(n, a), Movie(n, b))
	}
}

func TestMovie_DistinguishesYears(t *testing.T) {
	n := normalize.New()
	a := record("Foo", model.Int(2019), "", "", model.OptInt{})
	b := record("Foo", model.Int(2020), "", "", model.OptInt{})

	if Movie(n, a) == Movie(n, b) {
		t.Error("Expected different years to produce different movie keys")
	}
}

func TestMovie_AbsentYearMarker(t *testing.T) {
	n := normalize.New()
	absent := record("Foo", model.OptInt{}, "", "", model.OptInt{})
	real := record("Foo", model.Int(0), "", "", model.OptInt{})

	if got, want := Movie(n, absent), "foo"+Sep+"<na>"; got != want {
		t.Errorf("Expected %q for absent year, got %q", want, got)
	}
	if Movie(n, absent) == Movie(n, real) {
		t.Error("Expected absent year to differ from any literal year")
	}
}

func TestReview_AbsentScoreNeverMatchesLiteralScore(t *testing.T) {
	n := normalize.New()
	absent := record("Foo", model.Int(2020), "Variety", "J. Doe", model.OptInt{})
	zero := record("Foo", model.Int(2020), "Variety", "J. Doe", model.Int(0))

	if Review(n, absent) == Review(n, zero) {
		t.Error("Expected absent critic score to differ from a literal 0")
	}
}

func TestReview_FullKeyShape(t *testing.T) {
	n := normalize.New()
	r := record("Bar &amp; Baz", model.Int(2019), "Variety", "J. Doe", model.Int(80))

	want := "bar & baz|2019|variety|j. doe|80"
	if got := Review(n, r); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestReview_DiffersByCriticFields(t *testing.T) {
	n := normalize.New()
	base := record("Foo", model.Int(2020), "Variety", "J. Doe", model.Int(80))
	otherAuthor := record("Foo", model.Int(2020), "Variety", "A. Roe", model.Int(80))
	otherScore := record("Foo", model.Int(2020), "Variety", "J. Doe", model.Int(81))

	if Review(n, base) == Review(n, otherAuthor) {
		t.Error("Expected different authors to produce different review keys")
	}
	if Review(n, base) == Review(n, otherScore) {
		t.Error("Expected different scores to produce different review keys")
	}
}
