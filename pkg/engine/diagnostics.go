package engine

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/jexpr/jexpr/pkg/schema"
)

// suggestionMaxDistance is the largest edit distance still worth offering as
// a "did you mean" candidate.
const suggestionMaxDistance = 3

// listedNamesLimit caps the fallback listing of available operations.
const listedNamesLimit = 8

// unrecognized builds the diagnostic for a shaped-but-unregistered key. The
// message carries either the nearest registered name or a truncated listing,
// plus the $literal escape hint, since a single-key sigil map is ambiguous
// between a mistyped operation and intentional data.
func (e *Engine) unrecognized(invalidOp string) *schema.Error {
	var guidance string
	details := map[string]any{"operation": invalidOp}

	if suggestion, ok := nearestName(invalidOp, e.names); ok {
		guidance = fmt.Sprintf("did you mean %q?", suggestion)
		details["suggestion"] = suggestion
	} else {
		listed := e.names
		more := 0
		if len(listed) > listedNamesLimit {
			more = len(listed) - listedNamesLimit
			listed = listed[:listedNamesLimit]
		}
		guidance = "available operations: " + strings.Join(listed, ", ")
		if more > 0 {
			guidance += fmt.Sprintf(" (+%d more)", more)
		}
		details["available"] = listed
	}

	return schema.NewErrorf(schema.ErrCodeUnrecognizedOperation,
		"unrecognized operation %q; %s; wrap the value in {%q: ...} to treat it as plain data",
		invalidOp, guidance, schema.LiteralName).
		WithDetails(details)
}

// nearestName returns the registered name with the smallest Levenshtein
// distance to invalid, when that distance is small enough to be a plausible
// typo. Ties resolve to the lexicographically first name since names is sorted.
func nearestName(invalid string, names []string) (string, bool) {
	dmp := diffmatchpatch.New()

	best := ""
	bestDist := suggestionMaxDistance + 1
	for _, name := range names {
		diffs := dmp.DiffMain(invalid, name, false)
		if dist := dmp.DiffLevenshtein(diffs); dist < bestDist {
			best = name
			bestDist = dist
		}
	}
	return best, best != ""
}
