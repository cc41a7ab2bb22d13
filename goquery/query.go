package goquery

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/commpost"
)

// maxSample caps the number of match texts quoted in contract errors.
const maxSample = 3

// query is a structural query compiled once and reused for every document.
// Each contract method matches descendants of the given selection and
// reports a violation as an ECONTRACT error naming the field and selector.
type query struct {
	field string
	expr  string
	sel   cascadia.Selector
}

func compile(field, expr string) query {
	return query{field: field, expr: expr, sel: cascadia.MustCompile(expr)}
}

// all returns every match in document order.
func (q query) all(s *goquery.Selection) *goquery.Selection {
	return s.FindMatcher(q.sel)
}

// exactlyOne returns the single match.
func (q query) exactlyOne(s *goquery.Selection) (*goquery.Selection, error) {
	m := q.all(s)
	if n := m.Length(); n != 1 {
		return nil, q.violation("exactly one match", m)
	}
	return m, nil
}

// atMostOne returns the single match, or nil when there is none.
func (q query) atMostOne(s *goquery.Selection) (*goquery.Selection, error) {
	m := q.all(s)
	switch m.Length() {
	case 0:
		return nil, nil
	case 1:
		return m, nil
	default:
		return nil, q.violation("at most one match", m)
	}
}

// first returns the first of one or more matches.
func (q query) first(s *goquery.Selection) (*goquery.Selection, error) {
	m := q.all(s)
	if m.Length() == 0 {
		return nil, q.violation("at least one match", m)
	}
	return m.First(), nil
}

// firstOptional returns the first match, or nil when there is none.
func (q query) firstOptional(s *goquery.Selection) *goquery.Selection {
	m := q.all(s)
	if m.Length() == 0 {
		return nil
	}
	return m.First()
}

func (q query) violation(want string, m *goquery.Selection) error {
	var sample string
	if m.Length() > 0 {
		texts := make([]string, 0, maxSample)
		m.EachWithBreak(func(i int, s *goquery.Selection) bool {
			texts = append(texts, fmt.Sprintf("%q", trimmedText(s)))
			return i+1 < maxSample
		})
		sample = " [" + strings.Join(texts, " ") + "]"
	}
	return commpost.Errorf(commpost.ECONTRACT, "%s (%s): want %s, got %d%s",
		q.field, q.expr, want, m.Length(), sample)
}

// requireAttr returns the value of a required attribute.
func requireAttr(s *goquery.Selection, field, name string) (string, error) {
	v, ok := s.Attr(name)
	if !ok {
		return "", commpost.Errorf(commpost.ECONTRACT, "%s: missing %s attribute", field, name)
	}
	return v, nil
}
