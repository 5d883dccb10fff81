package aiken

import (
	"hash/fnv"
	"strconv"
	"strings"
)

// StableID derives a content-based identifier for a question. Identical
// normalized stem+options+answer always map to the same id, so re-parsing
// the same file keeps ids stable across uploads and retries. FNV-1a is good
// enough for UI keys; this is not a cryptographic hash.
func StableID(stem string, options []Option, answerKey string) string {
	parts := make([]string, 0, len(options)+2)
	parts = append(parts,
		strings.TrimSpace(stem),
		strings.ToUpper(strings.TrimSpace(answerKey)),
	)
	for _, o := range options {
		parts = append(parts, strings.ToUpper(strings.TrimSpace(o.Key))+"="+strings.TrimSpace(o.Text))
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(strings.Join(parts, "|")))
	return "q_" + strconv.FormatUint(uint64(h.Sum32()), 36)
}
