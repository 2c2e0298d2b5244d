package query

import (
	"strings"
)

// Wildcard in FROM selects every discovered resource type
const Wildcard = "*"

// Query holds the raw tokens of each clause, in query order
type Query struct {
	Select  []string `json:"select"`
	From    []string `json:"from"`
	Where   []string `json:"where"`
	GroupBy []string `json:"group_by"`
	Having  []string `json:"having"`
	OrderBy []string `json:"order_by"`
	Limit   []string `json:"limit"`
	Offset  []string `json:"offset"`
}

type clause int

const (
	clauseNone clause = iota
	clauseSelect
	clauseFrom
	clauseWhere
	clauseGroupBy
	clauseHaving
	clauseOrderBy
)

// Parse splits text into clause buckets. It is a tokenizer, not a grammar:
// there is no quoting and no nesting, and it never fails.
//
// Tokens are separated by spaces and commas. Keywords are case-insensitive.
// Everything before the first SELECT is dropped. Only the first GROUP starts
// a clause, later ones are data. BY is data too. LIMIT and OFFSET take the
// final token of the query. LIMIT also closes the active clause, OFFSET
// leaves it open.
func Parse(text string) Query {
	tokens := tokenize(text)

	var q Query
	active := clauseNone
	started := false
	groupSeen := false

	for _, tok := range tokens {

		if isKeyword(tok, "SELECT") {
			started = true
			active = clauseSelect
			continue
		}
		if !started {
			continue
		}

		switch {
		case isKeyword(tok, "FROM"):
			active = clauseFrom
		case isKeyword(tok, "WHERE"):
			active = clauseWhere
		case isKeyword(tok, "GROUP") && !groupSeen:
			groupSeen = true
			active = clauseGroupBy
		case isKeyword(tok, "HAVING"):
			active = clauseHaving
		case isKeyword(tok, "ORDER"):
			active = clauseOrderBy
		case isKeyword(tok, "LIMIT"):
			q.Limit = append(q.Limit, tokens[len(tokens)-1])
			active = clauseNone
		case isKeyword(tok, "OFFSET"):
			q.Offset = append(q.Offset, tokens[len(tokens)-1])
		default:
			q.appendTo(active, tok)
		}
	}

	return q
}

func (q *Query) appendTo(c clause, tok string) {
	switch c {
	case clauseSelect:
		q.Select = append(q.Select, tok)
	case clauseFrom:
		q.From = append(q.From, tok)
	case clauseWhere:
		q.Where = append(q.Where, tok)
	case clauseGroupBy:
		q.GroupBy = append(q.GroupBy, tok)
	case clauseHaving:
		q.Having = append(q.Having, tok)
	case clauseOrderBy:
		q.OrderBy = append(q.OrderBy, tok)
	}
}

// SelectsAll reports whether the query selects whole objects
func (q Query) SelectsAll() bool {
	if len(q.Select) == 0 {
		return true
	}
	for _, s := range q.Select {
		if s == Wildcard {
			return true
		}
	}
	return false
}

func (q Query) String() string {
	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(strings.Join(q.Select, ", "))

	write := func(keyword string, tokens []string, sep string) {
		if len(tokens) == 0 {
			return
		}
		b.WriteString(" " + keyword + " ")
		b.WriteString(strings.Join(tokens, sep))
	}
	write("FROM", q.From, ", ")
	write("WHERE", q.Where, " ")
	write("GROUP", q.GroupBy, " ")
	write("HAVING", q.Having, " ")
	write("ORDER", q.OrderBy, " ")
	write("LIMIT", q.Limit, " ")
	write("OFFSET", q.Offset, " ")

	return b.String()
}

func tokenize(text string) []string {
	var tokens []string
	for _, field := range strings.Split(text, " ") {
		for _, tok := range strings.Split(field, ",") {
			if tok == "" {
				continue
			}
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

func isKeyword(tok, keyword string) bool {
	return strings.EqualFold(tok, keyword)
}
