package base

import (
	"context"
	"regexp"
	"strings"
	"sync"

	"github.com/jexpr/jexpr/pkg/schema"
)

func patternOperations() []schema.Operation {
	return []schema.Operation{
		newMatcher(schema.Sigil+"matchesLike", likeToRegexp).operation(),
		newMatcher(schema.Sigil+"matchesGlob", globToRegexp).operation(),
		newMatcher(schema.Sigil+"matchesRegex", regexPattern).operation(),
	}
}

// matcher translates a restricted wildcard syntax into Go's regexp engine and
// caches compiled patterns. Thread-safe: compiled *regexp.Regexp objects are
// reused across goroutines.
type matcher struct {
	name      string
	translate func(string) (string, error)

	mu    sync.RWMutex
	cache map[string]*regexp.Regexp
}

func newMatcher(name string, translate func(string) (string, error)) *matcher {
	return &matcher{
		name:      name,
		translate: translate,
		cache:     make(map[string]*regexp.Regexp),
	}
}

// operation binds the matcher to the operation contract. Apply mode matches
// the string input against the resolved pattern operand; evaluate mode takes
// a [subject, pattern] operand pair.
func (m *matcher) operation() schema.Operation {
	return schema.Operation{
		Name: m.name,
		Apply: func(ctx context.Context, operand, input any, ec schema.EvalContext) (any, error) {
			resolved, err := ec.Apply(ctx, operand, input)
			if err != nil {
				return nil, err
			}
			pattern, err := requireString(m.name, resolved)
			if err != nil {
				return nil, err
			}
			subject, err := requireString(m.name, input)
			if err != nil {
				return nil, err
			}
			return m.match(subject, pattern)
		},
		Evaluate: func(ctx context.Context, operand any, ec schema.EvalContext) (any, error) {
			resolved, err := ec.Evaluate(ctx, operand)
			if err != nil {
				return nil, err
			}
			a, b, err := requirePair(m.name, resolved)
			if err != nil {
				return nil, err
			}
			subject, err := requireString(m.name, a)
			if err != nil {
				return nil, err
			}
			pattern, err := requireString(m.name, b)
			if err != nil {
				return nil, err
			}
			return m.match(subject, pattern)
		},
	}
}

func (m *matcher) match(subject, pattern string) (bool, error) {
	re, err := m.getOrCompile(pattern)
	if err != nil {
		return false, err
	}
	return re.MatchString(subject), nil
}

// getOrCompile returns a cached compiled pattern or translates, compiles and
// caches a new one.
func (m *matcher) getOrCompile(pattern string) (*regexp.Regexp, error) {
	m.mu.RLock()
	if re, ok := m.cache[pattern]; ok {
		m.mu.RUnlock()
		return re, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock.
	if re, ok := m.cache[pattern]; ok {
		return re, nil
	}

	translated, err := m.translate(pattern)
	if err != nil {
		return nil, withOp(err, m.name)
	}
	re, err := regexp.Compile(translated)
	if err != nil {
		return nil, schema.NewErrorf(schema.ErrCodeValidation,
			"invalid pattern %q: %s", pattern, err.Error()).WithOp(m.name).WithCause(err)
	}

	m.cache[pattern] = re
	return re, nil
}

// likeToRegexp translates SQL LIKE syntax: % matches any run of characters,
// _ matches exactly one. Everything else is escaped; the match is anchored to
// the full string.
func likeToRegexp(pattern string) (string, error) {
	var sb strings.Builder
	sb.WriteString(`(?s)^`)
	for _, r := range pattern {
		switch r {
		case '%':
			sb.WriteString(`.*`)
		case '_':
			sb.WriteString(`.`)
		default:
			sb.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	sb.WriteString(`$`)
	return sb.String(), nil
}

// globToRegexp translates shell glob syntax: * matches any run, ? matches one
// character, [...] passes through as a character class ([!...] negates).
// Everything else is escaped; the match is anchored to the full string.
func globToRegexp(pattern string) (string, error) {
	var sb strings.Builder
	sb.WriteString(`^`)
	runes := []rune(pattern)
	for i := 0; i < len(runes); i++ {
		switch r := runes[i]; r {
		case '*':
			sb.WriteString(`.*`)
		case '?':
			sb.WriteString(`.`)
		case '[':
			end := i + 1
			for end < len(runes) && runes[end] != ']' {
				end++
			}
			if end == len(runes) {
				return "", schema.NewErrorf(schema.ErrCodeInvalidOperand,
					"unterminated character class in pattern %q", pattern)
			}
			class := string(runes[i+1 : end])
			if strings.HasPrefix(class, "!") {
				class = "^" + class[1:]
			}
			sb.WriteString("[" + class + "]")
			i = end
		default:
			sb.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	sb.WriteString(`$`)
	return sb.String(), nil
}

// regexPattern validates an optional leading (?flags) marker against the
// supported flag set and passes the pattern through to the engine otherwise.
// Absent the marker, matching is case-sensitive with no multiline and no
// dotall — the engine's own defaults.
func regexPattern(pattern string) (string, error) {
	rest, ok := strings.CutPrefix(pattern, "(?")
	if !ok {
		return pattern, nil
	}
	end := strings.IndexByte(rest, ')')
	if end == -1 {
		return pattern, nil
	}
	flags := rest[:end]
	if flags == "" || strings.ContainsAny(flags, ":=!<") {
		// A group construct, not a flag marker.
		return pattern, nil
	}
	for _, f := range flags {
		if f != 'i' && f != 'm' && f != 's' {
			return "", schema.NewErrorf(schema.ErrCodeInvalidOperand,
				"unsupported regex flag %q in pattern %q", string(f), pattern)
		}
	}
	return pattern, nil
}
