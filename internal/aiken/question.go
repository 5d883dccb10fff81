// Package aiken parses the line-oriented Aiken exam format into validated
// question records with stable content-derived ids.
package aiken

// Option is one answer choice. Key is a single uppercase letter after
// normalization.
type Option struct {
	Key  string `json:"key"`
	Text string `json:"text"`
}

// Question is one parsed record. Treat values as immutable once built: the
// session engine works on copies, never on bank entries.
type Question struct {
	ID        string   `json:"id"`
	Stem      string   `json:"stem"`
	Options   []Option `json:"options"`
	AnswerKey string   `json:"answer_key,omitempty"`
}

// Clone returns a copy whose option slice is independent of the receiver's.
func (q Question) Clone() Question {
	opts := make([]Option, len(q.Options))
	copy(opts, q.Options)
	q.Options = opts
	return q
}
