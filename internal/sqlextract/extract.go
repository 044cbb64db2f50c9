package sqlextract

import (
	"sort"
	"strings"

	"github.com/leapstack-labs/leaplineage/internal/model"
)

// Table is one extracted CREATE TABLE or CREATE VIEW target. DataLevel is
// intentionally absent: extraction cannot know it, and the YAML writer emits
// a null placeholder for manual completion.
type Table struct {
	ID         string
	Type       model.DataType
	SelectFrom []string
}

// ExtractStatements scans SQL text and returns one Table per
// schema-qualified CREATE TABLE / CREATE VIEW statement, in statement
// order. Unqualified targets are skipped: without a schema the id would
// collide across databases. References are schema-qualified tables read
// from FROM and JOIN clauses anywhere in the statement, deduplicated and
// sorted, excluding the target itself and any CTE names.
func ExtractStatements(sql string) []Table {
	var tables []Table
	for _, stmt := range splitStatements(tokenize(sql)) {
		if t, ok := extractStatement(stmt); ok {
			tables = append(tables, t)
		}
	}
	return tables
}

// tokenize drains the scanner into a token slice.
func tokenize(sql string) []token {
	s := newScanner(sql)
	var tokens []token
	for {
		tok := s.next()
		if tok.kind == tokenEOF {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

// splitStatements cuts the token stream on top-level semicolons.
func splitStatements(tokens []token) [][]token {
	var stmts [][]token
	start := 0
	for i, tok := range tokens {
		if tok.kind == tokenSymbol && tok.value == ";" {
			if i > start {
				stmts = append(stmts, tokens[start:i])
			}
			start = i + 1
		}
	}
	if start < len(tokens) {
		stmts = append(stmts, tokens[start:])
	}
	return stmts
}

// extractStatement pulls the create target and its table references out of
// one statement's tokens.
func extractStatement(tokens []token) (Table, bool) {
	target, dataType, ok := createTarget(tokens)
	if !ok {
		return Table{}, false
	}

	ctes := cteNames(tokens)
	refs := make(map[string]struct{})
	for i := 0; i < len(tokens); i++ {
		if !isKeyword(tokens[i], "from") && !isKeyword(tokens[i], "join") {
			continue
		}
		fromClause := isKeyword(tokens[i], "from")
		j := i + 1
		for {
			name, next := qualifiedName(tokens, j)
			if len(name) >= 2 {
				id := strings.Join(name, ".")
				if id != target && !ctes[name[len(name)-1]] {
					refs[id] = struct{}{}
				}
			}
			j = next
			// FROM takes a comma-separated list; JOIN takes one table.
			if !fromClause {
				break
			}
			j = skipAlias(tokens, j)
			if j >= len(tokens) || !(tokens[j].kind == tokenSymbol && tokens[j].value == ",") {
				break
			}
			j++
		}
		i = j - 1
	}

	selectFrom := make([]string, 0, len(refs))
	for id := range refs {
		selectFrom = append(selectFrom, id)
	}
	sort.Strings(selectFrom)

	return Table{ID: target, Type: dataType, SelectFrom: selectFrom}, true
}

// createTarget finds CREATE [OR REPLACE] [TEMPORARY] TABLE|VIEW and returns
// the schema-qualified target id. Only the first CREATE in a statement
// counts.
func createTarget(tokens []token) (string, model.DataType, bool) {
	for i := 0; i < len(tokens); i++ {
		if !isKeyword(tokens[i], "create") {
			continue
		}
		j := i + 1
		for j < len(tokens) && (isKeyword(tokens[j], "or") || isKeyword(tokens[j], "replace") ||
			isKeyword(tokens[j], "temp") || isKeyword(tokens[j], "temporary") ||
			isKeyword(tokens[j], "materialized")) {
			j++
		}
		if j >= len(tokens) {
			return "", "", false
		}

		var dataType model.DataType
		switch {
		case isKeyword(tokens[j], "table"):
			dataType = model.TypeTable
		case isKeyword(tokens[j], "view"):
			dataType = model.TypeView
		default:
			return "", "", false
		}
		j++

		// IF NOT EXISTS
		if j+2 < len(tokens) && isKeyword(tokens[j], "if") &&
			isKeyword(tokens[j+1], "not") && isKeyword(tokens[j+2], "exists") {
			j += 3
		}

		name, _ := qualifiedName(tokens, j)
		if len(name) < 2 {
			return "", "", false
		}
		return strings.Join(name, "."), dataType, true
	}
	return "", "", false
}

// cteNames collects WITH clause names: any identifier directly followed by
// AS and an opening parenthesis.
func cteNames(tokens []token) map[string]bool {
	names := make(map[string]bool)
	for i := 0; i+2 < len(tokens); i++ {
		if tokens[i].kind == tokenIdent && isKeyword(tokens[i+1], "as") &&
			tokens[i+2].kind == tokenSymbol && tokens[i+2].value == "(" {
			names[tokens[i].value] = true
		}
	}
	return names
}

// qualifiedName reads ident(.ident)* starting at i and returns the parts
// plus the index after the name. Returns no parts when i is not an
// identifier (a subquery, for instance).
func qualifiedName(tokens []token, i int) ([]string, int) {
	if i >= len(tokens) || tokens[i].kind != tokenIdent {
		return nil, i
	}
	parts := []string{tokens[i].value}
	i++
	for i+1 < len(tokens) && tokens[i].kind == tokenSymbol && tokens[i].value == "." &&
		tokens[i+1].kind == tokenIdent {
		parts = append(parts, tokens[i+1].value)
		i += 2
	}
	return parts, i
}

// skipAlias steps over an optional [AS] alias after a table reference.
func skipAlias(tokens []token, i int) int {
	if i < len(tokens) && isKeyword(tokens[i], "as") {
		i++
	}
	if i < len(tokens) && tokens[i].kind == tokenIdent && !reservedAfterRef[tokens[i].value] {
		i++
	}
	return i
}

// reservedAfterRef are keywords that end a FROM item; they must not be
// mistaken for aliases.
var reservedAfterRef = map[string]bool{
	"where": true, "group": true, "order": true, "having": true,
	"limit": true, "offset": true, "union": true, "intersect": true,
	"except": true, "on": true, "using": true, "join": true,
	"inner": true, "left": true, "right": true, "full": true,
	"cross": true, "natural": true, "outer": true, "qualify": true,
	"window": true, "from": true, "as": true, "select": true,
}

func isKeyword(tok token, kw string) bool {
	return tok.kind == tokenIdent && tok.value == kw
}
