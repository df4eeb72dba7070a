package sparql

import (
	"fmt"
	"regexp"
	"strings"
)

// Default and ceiling row caps applied when the caller requests nothing or
// too much.
const (
	DefaultLimit = 50
	MaxLimit     = 1000
)

var (
	// prefixLinePattern matches caller-supplied PREFIX or BASE declaration
	// lines, any case, leading whitespace tolerated.
	prefixLinePattern = regexp.MustCompile(`(?im)^[ \t]*(?:prefix|base)\b[^\n]*\n?`)

	// limitKeywordPattern detects an existing LIMIT clause as a whole word.
	limitKeywordPattern = regexp.MustCompile(`(?i)\blimit\b`)
)

// Normalizer rewrites caller-supplied query text into a safe, bounded,
// executable form. It is a pure text transform with no network access.
type Normalizer struct {
	prefixes     []Prefix
	defaultLimit int
	maxLimit     int
}

// NormalizerOption represents an option for configuring the normalizer
type NormalizerOption func(*Normalizer)

// WithPrefixes overrides the trusted prefix set
func WithPrefixes(prefixes []Prefix) NormalizerOption {
	return func(n *Normalizer) {
		n.prefixes = prefixes
	}
}

// WithDefaultLimit sets the limit applied when the caller requests none
func WithDefaultLimit(limit int) NormalizerOption {
	return func(n *Normalizer) {
		if limit > 0 {
			n.defaultLimit = limit
		}
	}
}

// WithMaxLimit sets the ceiling applied to caller-requested limits
func WithMaxLimit(limit int) NormalizerOption {
	return func(n *Normalizer) {
		if limit > 0 {
			n.maxLimit = limit
		}
	}
}

// NewNormalizer creates a normalizer with the trusted prefix set and the
// default limit bounds
func NewNormalizer(options ...NormalizerOption) *Normalizer {
	n := &Normalizer{
		prefixes:     DefaultPrefixes(),
		defaultLimit: DefaultLimit,
		maxLimit:     MaxLimit,
	}

	for _, option := range options {
		option(n)
	}

	return n
}

// EffectiveLimit reconciles the caller-requested limit with the default and
// the ceiling. The result always satisfies 0 < limit <= max.
func (n *Normalizer) EffectiveLimit(requested int) int {
	if requested <= 0 {
		requested = n.defaultLimit
	}
	if requested > n.maxLimit {
		requested = n.maxLimit
	}
	return requested
}

// Normalize strips caller-supplied namespace declarations, prepends the
// trusted prefix block and appends a LIMIT clause when the body has none.
// Empty or whitespace-only input is rejected with ErrEmptyQuery.
func (n *Normalizer) Normalize(raw string, limit int) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", ErrEmptyQuery
	}

	body := StripDeclarations(strings.TrimSpace(raw))
	executable := PrefixBlock(n.prefixes) + "\n" + strings.TrimLeft(body, " \t\n\r")
	executable = ApplyLimit(executable, n.EffectiveLimit(limit))

	return executable, nil
}

// StripDeclarations removes every PREFIX and BASE declaration line from the
// query text.
func StripDeclarations(query string) string {
	return prefixLinePattern.ReplaceAllString(query, "")
}

// ApplyLimit appends a LIMIT clause when the query contains no limit keyword
// and the given limit is positive. A single trailing statement terminator is
// trimmed first so the appended clause stays syntactically valid.
func ApplyLimit(query string, limit int) string {
	if limit <= 0 || limitKeywordPattern.MatchString(query) {
		return query
	}
	trimmed := strings.TrimSuffix(strings.TrimRight(query, " \t\n\r"), ";")
	return fmt.Sprintf("%s\nLIMIT %d", trimmed, limit)
}
