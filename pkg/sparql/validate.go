package sparql

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// OperationKind classifies a query by its primary operation keyword.
type OperationKind string

const (
	OpSelect    OperationKind = "select"
	OpConstruct OperationKind = "construct"
	OpDescribe  OperationKind = "describe"
	OpAsk       OperationKind = "ask"

	// OpUpdate covers every mutating operation. Never executable.
	OpUpdate OperationKind = "update"
)

// mutatingKeywords are SPARQL Update operation keywords. A query whose
// primary keyword is one of these is update-like; a standalone occurrence of
// any of them elsewhere in the body also fails validation.
var mutatingKeywords = []string{
	"insert", "delete", "drop", "load", "clear", "create", "add", "move", "copy",
}

// mutatingKeywordPattern matches any mutating keyword as a whole word. Only
// used as a fallback when the text cannot be tokenized; rejecting is the safe
// direction there.
var mutatingKeywordPattern = regexp.MustCompile(`(?i)\b(` + strings.Join(mutatingKeywords, "|") + `)\b`)

// Validator checks that normalized query text is a well-formed, read-only,
// single-operation query before it may reach the store.
type Validator struct {
	allowed map[OperationKind]bool
}

// ValidatorOption represents an option for configuring the validator
type ValidatorOption func(*Validator)

// WithAllowedKinds restricts the accepted operation kinds. The gateway's
// caller-facing path uses WithAllowedKinds(OpSelect).
func WithAllowedKinds(kinds ...OperationKind) ValidatorOption {
	return func(v *Validator) {
		v.allowed = make(map[OperationKind]bool, len(kinds))
		for _, kind := range kinds {
			v.allowed[kind] = true
		}
	}
}

// NewValidator creates a validator accepting every read-only operation kind
func NewValidator(options ...ValidatorOption) *Validator {
	v := &Validator{
		allowed: map[OperationKind]bool{
			OpSelect:    true,
			OpConstruct: true,
			OpDescribe:  true,
			OpAsk:       true,
		},
	}

	for _, option := range options {
		option(v)
	}

	return v
}

// Validate parses the query, determines its operation kind and rejects
// anything that is not an allowed read-only single operation. It never
// executes the query.
func (v *Validator) Validate(query string) (OperationKind, error) {
	tokens, err := lex(query)
	if err != nil {
		return "", &InvalidQueryError{Reason: "parse failure", Err: err}
	}

	kind, err := parseOperation(tokens)
	if err != nil {
		return "", err
	}

	if kind == OpUpdate {
		return "", &InvalidQueryError{Reason: "mutating operations are not executable"}
	}
	if !v.allowed[kind] {
		return "", &InvalidQueryError{Reason: fmt.Sprintf("operation kind %q is not permitted", kind)}
	}

	// Independent safety net: the parser's notion of the query's type and a
	// raw keyword scan can disagree on malformed or nested input, so both
	// must pass.
	if kw, found := MutatingKeyword(query); found {
		return "", &InvalidQueryError{Reason: fmt.Sprintf("query contains mutating keyword %q", kw)}
	}

	return kind, nil
}

// MutatingKeyword reports the first mutating keyword appearing as a
// standalone token in the text. A keyword buried in a longer identifier, a
// variable name, an IRI or a string literal does not count. Text that cannot
// be tokenized falls back to a whole-word text scan.
func MutatingKeyword(query string) (string, bool) {
	tokens, err := lex(query)
	if err != nil {
		match := mutatingKeywordPattern.FindString(query)
		return strings.ToLower(match), match != ""
	}

	for _, tok := range tokens {
		if tok.kind != tokKeyword {
			continue
		}
		word := strings.ToLower(tok.text)
		for _, kw := range mutatingKeywords {
			if word == kw {
				return word, true
			}
		}
	}
	return "", false
}

// token kinds produced by the lexer.
type tokenKind int

const (
	tokKeyword tokenKind = iota // bare word (keyword or local name)
	tokVariable                 // ?name or $name
	tokIRI                      // <...>
	tokPrefixedName             // name:local or name:
	tokLiteral                  // quoted string, with datatype/lang tag consumed
	tokNumber
	tokPunct // braces, parens, brackets, dot, semicolon, comma, operators
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

// lex tokenizes SPARQL text. Comments are skipped; strings and IRIs are
// consumed atomically so their contents never leak into the token stream.
func lex(input string) ([]token, error) {
	var tokens []token
	runes := []rune(input)
	i := 0

	for i < len(runes) {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++

		case r == '#':
			for i < len(runes) && runes[i] != '\n' {
				i++
			}

		case r == '<':
			// An angle bracket opens an IRI reference only when followed by
			// something that can start one; otherwise it is the comparison
			// operator, as in FILTER(?age < 30).
			if i+1 < len(runes) && startsIRIRef(runes[i+1]) {
				end, err := scanIRI(runes, i)
				if err != nil {
					return nil, err
				}
				tokens = append(tokens, token{kind: tokIRI, text: string(runes[i : end+1]), pos: i})
				i = end + 1
			} else {
				tokens = append(tokens, token{kind: tokPunct, text: "<", pos: i})
				i++
			}

		case r == '"' || r == '\'':
			end, err := scanString(runes, i)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, token{kind: tokLiteral, text: string(runes[i : end+1]), pos: i})
			i = end + 1

		case r == '?' || r == '$':
			start := i
			i++
			for i < len(runes) && isNameRune(runes[i]) {
				i++
			}
			if i == start+1 {
				return nil, fmt.Errorf("bare %q at offset %d", r, start)
			}
			tokens = append(tokens, token{kind: tokVariable, text: string(runes[start:i]), pos: start})

		case unicode.IsDigit(r) || (r == '.' && i+1 < len(runes) && unicode.IsDigit(runes[i+1])):
			start := i
			for i < len(runes) && (unicode.IsDigit(runes[i]) || runes[i] == '.' || runes[i] == 'e' || runes[i] == 'E' || runes[i] == '+' || runes[i] == '-') {
				i++
			}
			tokens = append(tokens, token{kind: tokNumber, text: string(runes[start:i]), pos: start})

		case unicode.IsLetter(r) || r == '_':
			start := i
			for i < len(runes) && isNameRune(runes[i]) {
				i++
			}
			// A colon turns the word into a prefixed name.
			if i < len(runes) && runes[i] == ':' {
				i++
				for i < len(runes) && isNameRune(runes[i]) {
					i++
				}
				tokens = append(tokens, token{kind: tokPrefixedName, text: string(runes[start:i]), pos: start})
			} else {
				tokens = append(tokens, token{kind: tokKeyword, text: string(runes[start:i]), pos: start})
			}

		case r == ':':
			// Prefixed name in the default namespace.
			start := i
			i++
			for i < len(runes) && isNameRune(runes[i]) {
				i++
			}
			tokens = append(tokens, token{kind: tokPrefixedName, text: string(runes[start:i]), pos: start})

		case strings.ContainsRune("{}()[].,;*/|^=!<>&+-", r):
			tokens = append(tokens, token{kind: tokPunct, text: string(r), pos: i})
			i++

		case r == '@':
			// Language tag outside a literal position; consume the word.
			start := i
			i++
			for i < len(runes) && (isNameRune(runes[i]) || runes[i] == '-') {
				i++
			}
			tokens = append(tokens, token{kind: tokPunct, text: string(runes[start:i]), pos: start})

		default:
			return nil, fmt.Errorf("unexpected character %q at offset %d", r, i)
		}
	}

	return tokens, nil
}

func isNameRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-'
}

// startsIRIRef reports whether a rune can begin an IRI reference after '<'.
// Absolute IRIs start with a scheme letter; relative references with '/',
// '#', ':' or '_'. Whitespace, digits, variables and operator runes cannot.
func startsIRIRef(r rune) bool {
	return unicode.IsLetter(r) || r == '/' || r == '#' || r == ':' || r == '_'
}

func scanIRI(runes []rune, start int) (int, error) {
	for i := start + 1; i < len(runes); i++ {
		switch runes[i] {
		case '>':
			return i, nil
		case '\n', '"', '{', '}':
			return 0, fmt.Errorf("malformed IRI at offset %d", start)
		}
	}
	return 0, fmt.Errorf("unterminated IRI at offset %d", start)
}

func scanString(runes []rune, start int) (int, error) {
	quote := runes[start]
	// Long form: triple quotes.
	if start+2 < len(runes) && runes[start+1] == quote && runes[start+2] == quote {
		for i := start + 3; i+2 < len(runes); i++ {
			if runes[i] == quote && runes[i+1] == quote && runes[i+2] == quote {
				return i + 2, nil
			}
		}
		return 0, fmt.Errorf("unterminated long string at offset %d", start)
	}

	for i := start + 1; i < len(runes); i++ {
		switch runes[i] {
		case '\\':
			i++ // skip escaped rune
		case quote:
			return i, nil
		case '\n':
			return 0, fmt.Errorf("newline in string at offset %d", start)
		}
	}
	return 0, fmt.Errorf("unterminated string at offset %d", start)
}

// operationKeywords maps primary keywords to operation kinds.
var operationKeywords = map[string]OperationKind{
	"select":    OpSelect,
	"construct": OpConstruct,
	"describe":  OpDescribe,
	"ask":       OpAsk,
}

func isMutatingWord(word string) bool {
	for _, kw := range mutatingKeywords {
		if word == kw {
			return true
		}
	}
	// Update forms that do not open with a bare mutating verb.
	return word == "with" || word == "modify"
}

// parseOperation walks the token stream: skips the prologue, classifies the
// operation and enforces the structural rules (balanced delimiters, a group
// pattern where one is mandatory, a non-empty SELECT projection and a single
// top-level operation).
func parseOperation(tokens []token) (OperationKind, error) {
	i := skipPrologue(tokens)
	if i >= len(tokens) {
		return "", &InvalidQueryError{Reason: "query has no operation keyword"}
	}

	first := tokens[i]
	if first.kind != tokKeyword {
		return "", &InvalidQueryError{Reason: fmt.Sprintf("expected an operation keyword, found %q", first.text)}
	}

	word := strings.ToLower(first.text)
	if isMutatingWord(word) {
		return OpUpdate, nil
	}

	kind, ok := operationKeywords[word]
	if !ok {
		return "", &InvalidQueryError{Reason: fmt.Sprintf("unknown operation keyword %q", first.text)}
	}

	if err := checkStructure(tokens[i:], kind); err != nil {
		return "", err
	}

	return kind, nil
}

// skipPrologue advances past PREFIX and BASE declarations.
func skipPrologue(tokens []token) int {
	i := 0
	for i < len(tokens) && tokens[i].kind == tokKeyword {
		switch strings.ToLower(tokens[i].text) {
		case "prefix":
			// PREFIX name: <iri>
			i++
			if i < len(tokens) && tokens[i].kind == tokPrefixedName {
				i++
			}
			if i < len(tokens) && tokens[i].kind == tokIRI {
				i++
			}
		case "base":
			i++
			if i < len(tokens) && tokens[i].kind == tokIRI {
				i++
			}
		default:
			return i
		}
	}
	return i
}

// checkStructure enforces delimiter balance and the per-kind shape rules.
func checkStructure(tokens []token, kind OperationKind) error {
	var stack []rune
	sawGroup := false
	projection := 0
	inProjection := kind == OpSelect

	for idx, tok := range tokens {
		if idx == 0 {
			continue // the operation keyword itself
		}

		if tok.kind == tokPunct {
			switch tok.text {
			case "{", "(", "[":
				if tok.text == "{" {
					sawGroup = true
				}
				if inProjection && tok.text == "(" {
					projection++ // (expr AS ?var)
				}
				stack = append(stack, rune(tok.text[0]))
			case "}", ")", "]":
				if len(stack) == 0 {
					return &InvalidQueryError{Reason: fmt.Sprintf("unbalanced %q at offset %d", tok.text, tok.pos)}
				}
				open := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if !delimitersMatch(open, rune(tok.text[0])) {
					return &InvalidQueryError{Reason: fmt.Sprintf("mismatched %q at offset %d", tok.text, tok.pos)}
				}
			case "*":
				if inProjection && len(stack) == 0 {
					projection++
				}
			}
		}

		if inProjection {
			switch {
			case tok.kind == tokVariable && len(stack) == 0:
				projection++
			case tok.kind == tokKeyword && len(stack) == 0:
				lower := strings.ToLower(tok.text)
				if lower != "distinct" && lower != "reduced" && lower != "as" {
					inProjection = false
				}
			case tok.kind == tokPunct && tok.text == "{" && len(stack) == 1:
				inProjection = false
			}
		}

		// A second operation keyword at top level means compound input.
		if tok.kind == tokKeyword && len(stack) == 0 {
			lower := strings.ToLower(tok.text)
			if _, isOp := operationKeywords[lower]; isOp {
				return &InvalidQueryError{Reason: fmt.Sprintf("unexpected second operation keyword %q", tok.text)}
			}
			if isMutatingWord(lower) {
				return &InvalidQueryError{Reason: fmt.Sprintf("unexpected mutating keyword %q", tok.text)}
			}
		}
	}

	if len(stack) > 0 {
		return &InvalidQueryError{Reason: "unbalanced group: missing closing delimiter"}
	}

	if kind == OpSelect && projection == 0 {
		return &InvalidQueryError{Reason: "SELECT query projects no variables"}
	}

	// DESCRIBE <iri> is complete without a group pattern.
	if kind != OpDescribe && !sawGroup {
		return &InvalidQueryError{Reason: fmt.Sprintf("%s query has no group pattern", strings.ToUpper(string(kind)))}
	}

	return nil
}

func delimitersMatch(open, close rune) bool {
	switch open {
	case '{':
		return close == '}'
	case '(':
		return close == ')'
	case '[':
		return close == ']'
	}
	return false
}
