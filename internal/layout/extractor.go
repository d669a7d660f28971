package layout

import (
	"fmt"
	"strings"

	"github.com/bnema/layoutguard/internal/domain"
)

// DefaultMarker introduces an ink! contract storage struct.
const DefaultMarker = "#[ink(storage)]"

type ExtractOptions struct {
	// Marker is the attribute that precedes the storage struct. Empty means
	// DefaultMarker.
	Marker string
}

type aggregate struct {
	name string
	open int
}

// Extract locates the marked storage struct in text and returns its fields in
// declaration order. When several marked structs exist, the one named like
// entity wins, otherwise the first.
func Extract(text string, entity domain.EntityID, opts ExtractOptions) (domain.LayoutSnapshot, error) {
	marker := opts.Marker
	if strings.TrimSpace(marker) == "" {
		marker = DefaultMarker
	}

	markerTokens, err := newScanner(marker).tokenize()
	if err != nil || len(markerTokens) == 0 {
		return domain.LayoutSnapshot{}, fmt.Errorf("invalid marker %q", marker)
	}

	sc := newScanner(text)
	tokens, err := sc.tokenize()
	if err != nil {
		return domain.LayoutSnapshot{}, fmt.Errorf("%w: %s: %v", domain.ErrMalformedBlock, entity, err)
	}

	candidates := findAggregates(tokens, markerTokens)
	if len(candidates) == 0 {
		return domain.LayoutSnapshot{}, fmt.Errorf("%w: no struct marked %s in declaration of %s", domain.ErrNotFound, marker, entity)
	}
	chosen := pickAggregate(candidates, entity)

	closeIdx, err := matching(tokens, chosen.open)
	if err != nil {
		return domain.LayoutSnapshot{}, malformed(sc, entity, tokens[chosen.open], err.Error())
	}

	fields, err := parseFields(sc, entity, tokens[chosen.open+1:closeIdx], tokens[chosen.open])
	if err != nil {
		return domain.LayoutSnapshot{}, err
	}

	return domain.LayoutSnapshot{
		Entity:    entity,
		Aggregate: chosen.name,
		Fields:    fields,
	}, nil
}

func malformed(sc *scanner, entity domain.EntityID, at token, reason string) error {
	return fmt.Errorf("%w: %s (line %d): %s", domain.ErrMalformedBlock, entity, sc.line(at.start), reason)
}

func findAggregates(tokens, marker []token) []aggregate {
	var found []aggregate
	for i := 0; i+len(marker) <= len(tokens); i++ {
		if !matchesAt(tokens, i, marker) {
			continue
		}
		if agg, ok := structHeader(tokens, i+len(marker)); ok {
			found = append(found, agg)
		}
	}
	return found
}

func matchesAt(tokens []token, at int, pattern []token) bool {
	for j, want := range pattern {
		if tokens[at+j].text != want.text {
			return false
		}
	}
	return true
}

// structHeader parses `attrs* vis? struct Name generics? where? {` starting at
// i. Tuple and unit structs are not candidates.
func structHeader(tokens []token, i int) (aggregate, bool) {
	i, ok := skipAttributes(tokens, i)
	if !ok {
		return aggregate{}, false
	}
	i = skipVisibility(tokens, i)

	if i+1 >= len(tokens) || !tokens[i].isKeyword("struct") || tokens[i+1].kind != tokenIdent {
		return aggregate{}, false
	}
	name := tokens[i+1].text

	var n nesting
	for k := i + 2; k < len(tokens); k++ {
		tok := tokens[k]
		if n.depth() == 0 {
			switch {
			case tok.is("{"):
				return aggregate{name: name, open: k}, true
			case tok.is(";"), tok.is("("):
				return aggregate{}, false
			}
		}
		if err := n.step(tok); err != nil {
			return aggregate{}, false
		}
	}
	return aggregate{}, false
}

// skipAttributes advances past `#[...]` and `#![...]` groups.
func skipAttributes(tokens []token, i int) (int, bool) {
	for i < len(tokens) && tokens[i].is("#") {
		j := i + 1
		if j < len(tokens) && tokens[j].is("!") {
			j++
		}
		if j >= len(tokens) || !tokens[j].is("[") {
			return i, false
		}
		end, err := matching(tokens, j)
		if err != nil {
			return i, false
		}
		i = end + 1
	}
	return i, true
}

func skipVisibility(tokens []token, i int) int {
	if i < len(tokens) && tokens[i].isKeyword("pub") {
		i++
		if i < len(tokens) && tokens[i].is("(") {
			if end, err := matching(tokens, i); err == nil {
				i = end + 1
			}
		}
		return i
	}
	if i+1 < len(tokens) && tokens[i].isKeyword("crate") && tokens[i+1].kind == tokenIdent {
		return i + 1
	}
	return i
}

func pickAggregate(candidates []aggregate, entity domain.EntityID) aggregate {
	want := normalizeName(string(entity))
	for _, c := range candidates {
		if c.name == string(entity) || normalizeName(c.name) == want {
			return c
		}
	}
	return candidates[0]
}

// normalizeName folds `mining-pool`, `mining_pool` and `MiningPool` together.
func normalizeName(name string) string {
	name = strings.ToLower(name)
	return strings.NewReplacer("-", "", "_", "").Replace(name)
}

type entry struct {
	tokens []token
	// at is the token the entry starts at, or its separator when empty.
	at token
}

// splitEntries splits a struct body at commas outside any nesting.
func splitEntries(sc *scanner, entity domain.EntityID, body []token, open token) ([]entry, error) {
	var (
		n       nesting
		entries []entry
		current = entry{at: open}
	)

	for _, tok := range body {
		if n.depth() == 0 && tok.is(",") {
			entries = append(entries, current)
			current = entry{at: tok}
			continue
		}
		if err := n.step(tok); err != nil {
			return nil, malformed(sc, entity, tok, err.Error())
		}
		if len(current.tokens) == 0 {
			current.at = tok
		}
		current.tokens = append(current.tokens, tok)
	}
	if n.depth() != 0 {
		unclosed := n.stack[len(n.stack)-1]
		return nil, malformed(sc, entity, unclosed, fmt.Sprintf("unclosed %q", unclosed.text))
	}

	if len(current.tokens) > 0 {
		entries = append(entries, current)
	}
	return entries, nil
}

func parseFields(sc *scanner, entity domain.EntityID, body []token, open token) ([]domain.Field, error) {
	entries, err := splitEntries(sc, entity, body, open)
	if err != nil {
		return nil, err
	}

	fields := make([]domain.Field, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if len(e.tokens) == 0 {
			return nil, malformed(sc, entity, e.at, "empty field entry")
		}

		field, ok, reason := parseEntry(e.tokens)
		if reason != "" {
			return nil, malformed(sc, entity, e.at, reason)
		}
		if !ok {
			continue
		}
		if _, dup := seen[field.Name]; dup {
			return nil, malformed(sc, entity, e.at, fmt.Sprintf("duplicate field %q", field.Name))
		}
		seen[field.Name] = struct{}{}

		field.Position = len(fields)
		fields = append(fields, field)
	}

	return fields, nil
}

// parseEntry decomposes `attrs* vis? name : type`. ok is false for entries
// that only carry attributes.
func parseEntry(tokens []token) (domain.Field, bool, string) {
	i, ok := skipAttributes(tokens, 0)
	if !ok {
		return domain.Field{}, false, "malformed attribute"
	}
	if i == len(tokens) {
		return domain.Field{}, false, ""
	}
	i = skipVisibility(tokens, i)

	if i >= len(tokens) || tokens[i].kind != tokenIdent {
		return domain.Field{}, false, "expected field name"
	}
	name := tokens[i].text

	if i+1 >= len(tokens) || !tokens[i+1].is(":") {
		return domain.Field{}, false, fmt.Sprintf("expected ':' after field %q", name)
	}

	typeTokens := tokens[i+2:]
	if len(typeTokens) == 0 {
		return domain.Field{}, false, fmt.Sprintf("field %q has no type", name)
	}

	return domain.Field{Name: name, Type: joinTokens(typeTokens)}, true, ""
}
