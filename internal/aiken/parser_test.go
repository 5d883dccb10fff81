package aiken

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestParse_SingleRecord(t *testing.T) {
	bank, err := Parse("2+2=?\nA. 3\nB. 4\nANSWER: B\n\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bank) != 1 {
		t.Fatalf("expected 1 question, got %d", len(bank))
	}
	q := bank[0]
	if q.Stem != "2+2=?" {
		t.Fatalf("stem = %q", q.Stem)
	}
	want := []Option{{Key: "A", Text: "3"}, {Key: "B", Text: "4"}}
	if !reflect.DeepEqual(q.Options, want) {
		t.Fatalf("options = %+v", q.Options)
	}
	if q.AnswerKey != "B" {
		t.Fatalf("answerKey = %q", q.AnswerKey)
	}
	if !strings.HasPrefix(q.ID, "q_") {
		t.Fatalf("id = %q, want q_ prefix", q.ID)
	}
}

func TestParse_TrailingRecordWithoutBlankLine(t *testing.T) {
	bank, err := Parse("Capital of France?\nA) Lyon\nB) Paris\nANSWER: B")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bank) != 1 || bank[0].AnswerKey != "B" {
		t.Fatalf("bank = %+v", bank)
	}
}

func TestParse_Idempotence(t *testing.T) {
	const text = "First?\nA. one\nB. two\nANSWER: A\n\nSecond?\nA. yes\nB. no\nC. maybe\nANSWER: c\n"
	first, err := Parse(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Parse(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("two parses of the same input differ:\n%+v\n%+v", first, second)
	}
	if first[0].ID == first[1].ID {
		t.Fatalf("distinct questions share id %q", first[0].ID)
	}
}

func TestParse_AnswerKeyAlwaysAmongOptions(t *testing.T) {
	const text = "One?\nA. a\nB. b\nANSWER: b\n\nTwo?\na) x\nb) y\nc) z\nANSWER: C\n"
	bank, err := Parse(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, q := range bank {
		found := false
		for _, o := range q.Options {
			if o.Key == q.AnswerKey {
				found = true
			}
		}
		if !found {
			t.Fatalf("answer key %q not among options of %q", q.AnswerKey, q.Stem)
		}
	}
}

func TestParse_MultilineStemAndCRLF(t *testing.T) {
	text := "Line one\r\nline two\r\nA. first\r\nB. second\r\nANSWER : a\r\n\r\n"
	bank, err := Parse(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bank) != 1 {
		t.Fatalf("expected 1 question, got %d", len(bank))
	}
	if bank[0].Stem != "Line one\nline two" {
		t.Fatalf("stem = %q", bank[0].Stem)
	}
	if bank[0].AnswerKey != "A" {
		t.Fatalf("answerKey = %q", bank[0].AnswerKey)
	}
}

func TestParse_AnswerBeforeOptions(t *testing.T) {
	bank, err := Parse("Order?\nANSWER: B\nA. one\nB. two\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bank[0].AnswerKey != "B" {
		t.Fatalf("answerKey = %q", bank[0].AnswerKey)
	}
}

func TestParse_DuplicateOptionKeysKept(t *testing.T) {
	bank, err := Parse("Dup?\nA. one\nA. other\nB. two\nANSWER: A\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bank[0].Options) != 3 {
		t.Fatalf("duplicate option dropped: %+v", bank[0].Options)
	}
}

func TestParse_EmptyInput(t *testing.T) {
	for _, text := range []string{"", "\n", "\n\n\n", "  \n\t\n"} {
		bank, err := Parse(text)
		if err != nil {
			t.Fatalf("Parse(%q): unexpected error: %v", text, err)
		}
		if len(bank) != 0 {
			t.Fatalf("Parse(%q): expected empty bank, got %d", text, len(bank))
		}
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		kind     string
		stemLine string
	}{
		{
			name: "missing answer",
			text: "What?\nA. one\nB. two\n\n",
			kind: ErrMissingAnswer, stemLine: "What?",
		},
		{
			name: "too few options",
			text: "Lonely?\nA. only\nANSWER: A\n",
			kind: ErrTooFewOptions, stemLine: "Lonely?",
		},
		{
			name: "missing stem",
			text: "A. one\nB. two\nANSWER: A\n",
			kind: ErrMissingStem,
		},
		{
			name: "answer not among options",
			text: "Which?\nA. one\nB. two\nANSWER: C\n",
			kind: ErrAnswerNotOption, stemLine: "Which?",
		},
		{
			name: "second record malformed",
			text: "Fine?\nA. a\nB. b\nANSWER: A\n\nBroken?\nA. a\nB. b\n\n",
			kind: ErrMissingAnswer, stemLine: "Broken?",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			bank, err := Parse(tc.text)
			if err == nil {
				t.Fatalf("expected error, got bank of %d", len(bank))
			}
			if bank != nil {
				t.Fatalf("expected no partial bank, got %d questions", len(bank))
			}
			var fe *FormatError
			if !errors.As(err, &fe) {
				t.Fatalf("expected *FormatError, got %T", err)
			}
			if fe.Kind != tc.kind {
				t.Fatalf("kind = %q, want %q", fe.Kind, tc.kind)
			}
			if tc.stemLine != "" && !strings.Contains(fe.Error(), tc.stemLine) {
				t.Fatalf("message %q does not reference stem line %q", fe.Error(), tc.stemLine)
			}
		})
	}
}

func TestStableID(t *testing.T) {
	opts := []Option{{Key: "A", Text: "one"}, {Key: "B", Text: "two"}}
	a := StableID("Stem", opts, "A")
	b := StableID("Stem", opts, "A")
	if a != b {
		t.Fatalf("same content produced different ids: %q vs %q", a, b)
	}
	if c := StableID("Stem", opts, "B"); c == a {
		t.Fatalf("different answer key produced same id %q", c)
	}
	// Order-sensitive: swapping options must change the id.
	swapped := []Option{opts[1], opts[0]}
	if d := StableID("Stem", swapped, "A"); d == a {
		t.Fatalf("reordered options produced same id %q", d)
	}
}
