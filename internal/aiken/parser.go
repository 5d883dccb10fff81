package aiken

import (
	"fmt"
	"regexp"
	"strings"
)

// FormatError kinds, one per flush-time validation.
const (
	ErrMissingStem     = "missing_stem"
	ErrTooFewOptions   = "too_few_options"
	ErrMissingAnswer   = "missing_answer"
	ErrAnswerNotOption = "answer_not_among_options"
)

// FormatError reports the first malformed record found during a parse.
// StemLine is the record's first stem line when one exists.
type FormatError struct {
	Kind     string `json:"kind"`
	StemLine string `json:"stem_line,omitempty"`
	Answer   string `json:"answer,omitempty"`
}

func (e *FormatError) Error() string {
	switch e.Kind {
	case ErrMissingStem:
		return "question without a stem"
	case ErrTooFewOptions:
		return fmt.Sprintf("%q has fewer than 2 options", e.StemLine)
	case ErrMissingAnswer:
		return fmt.Sprintf("%q has no ANSWER: line", e.StemLine)
	case ErrAnswerNotOption:
		return fmt.Sprintf("ANSWER: %s does not match any option in %q", e.Answer, e.StemLine)
	}
	return "malformed aiken input"
}

var (
	optionRe = regexp.MustCompile(`^([A-Za-z])[.)]\s*(.+?)\s*$`)
	answerRe = regexp.MustCompile(`(?i)^ANSWER\s*:\s*([A-Za-z])\s*$`)
)

// Parse turns raw Aiken text into a question bank. It returns the full bank
// or a *FormatError for the first malformed record; no partial bank is ever
// handed back. Empty input parses to an empty bank.
//
// Option and ANSWER lines may appear in any order within a record; a blank
// line terminates a record once it has collected options or an answer.
// Duplicate option keys within a record are kept as written.
func Parse(text string) ([]Question, error) {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	var (
		bank      []Question
		stemLines []string
		options   []Option
		answerKey string
	)

	flush := func() error {
		if len(stemLines) == 0 && len(options) == 0 && answerKey == "" {
			return nil
		}
		first := ""
		if len(stemLines) > 0 {
			first = strings.TrimSpace(stemLines[0])
		}
		stem := strings.TrimSpace(strings.Join(stemLines, "\n"))
		if stem == "" {
			return &FormatError{Kind: ErrMissingStem}
		}
		if len(options) < 2 {
			return &FormatError{Kind: ErrTooFewOptions, StemLine: first}
		}
		if answerKey == "" {
			return &FormatError{Kind: ErrMissingAnswer, StemLine: first}
		}
		matched := false
		for _, o := range options {
			if strings.EqualFold(o.Key, answerKey) {
				matched = true
				break
			}
		}
		if !matched {
			return &FormatError{Kind: ErrAnswerNotOption, StemLine: first, Answer: answerKey}
		}

		normalized := make([]Option, len(options))
		for i, o := range options {
			normalized[i] = Option{Key: strings.ToUpper(o.Key), Text: strings.TrimSpace(o.Text)}
		}
		key := strings.ToUpper(answerKey)
		bank = append(bank, Question{
			ID:        StableID(stem, normalized, key),
			Stem:      stem,
			Options:   normalized,
			AnswerKey: key,
		})
		stemLines, options, answerKey = nil, nil, ""
		return nil
	}

	for _, raw := range lines {
		raw = strings.TrimRight(raw, " \t")
		line := strings.TrimSpace(raw)

		if line == "" {
			// Blank lines only terminate records that already look like one;
			// a pending multi-line stem keeps accumulating.
			if answerKey != "" || len(options) > 0 {
				if err := flush(); err != nil {
					return nil, err
				}
			}
			continue
		}
		if m := answerRe.FindStringSubmatch(line); m != nil {
			answerKey = strings.ToUpper(m[1])
			continue
		}
		if m := optionRe.FindStringSubmatch(line); m != nil {
			options = append(options, Option{Key: strings.ToUpper(m[1]), Text: m[2]})
			continue
		}
		// Stem lines keep their leading whitespace; the joined stem is
		// trimmed as a whole at flush time.
		stemLines = append(stemLines, raw)
	}

	if err := flush(); err != nil {
		return nil, err
	}
	return bank, nil
}
