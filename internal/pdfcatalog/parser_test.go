package pdfcatalog

import "testing"

const sampleText = `
Question Catalog 2025

1. Which keyword declares a constant in Go?
a) var
X b) const
c) let
d) def

2. What does a channel
carry between goroutines?
a) files
b) locks
X c) typed values

Seite 1
3. Incomplete question with one option only?
a) lonely
`

func TestParseText(t *testing.T) {
	questions := ParseText(sampleText)

	if len(questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(questions))
	}

	q1 := questions[0]
	if q1.Number != 1 {
		t.Errorf("expected number 1, got %d", q1.Number)
	}
	if q1.Text != "Which keyword declares a constant in Go?" {
		t.Errorf("unexpected question text: %q", q1.Text)
	}
	if len(q1.Options) != 4 {
		t.Fatalf("expected 4 options, got %d", len(q1.Options))
	}
	if q1.CorrectIndex() != 1 {
		t.Errorf("expected correct index 1, got %d", q1.CorrectIndex())
	}
	if q1.Options[1].Text != "const" || !q1.Options[1].Correct {
		t.Errorf("expected option b to be const/correct, got %+v", q1.Options[1])
	}
}

func TestParseText_MultiLineQuestion(t *testing.T) {
	questions := ParseText(sampleText)

	q2 := questions[1]
	if q2.Text != "What does a channel carry between goroutines?" {
		t.Errorf("expected joined multi-line text, got %q", q2.Text)
	}
	if q2.CorrectIndex() != 2 {
		t.Errorf("expected correct index 2, got %d", q2.CorrectIndex())
	}
}

func TestParseText_DropsQuestionsWithTooFewOptions(t *testing.T) {
	questions := ParseText(sampleText)

	for _, q := range questions {
		if q.Number == 3 {
			t.Error("expected question 3 (single option) to be dropped")
		}
	}
}

func TestParseText_Empty(t *testing.T) {
	if got := ParseText(""); len(got) != 0 {
		t.Errorf("expected no questions from empty text, got %d", len(got))
	}
}

func TestCorrectIndex_MissingMarker(t *testing.T) {
	q := ParsedQuestion{Options: []Option{{Letter: "a"}, {Letter: "b"}}}
	if q.CorrectIndex() != -1 {
		t.Errorf("expected -1 when no option is marked correct, got %d", q.CorrectIndex())
	}
}
