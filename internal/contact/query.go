package contact

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/lib/pq"
)

const (
	defaultPerPage = 10
	maxPerPage     = 100
)

// sortColumns whitelists what the admin table may order by.
var sortColumns = map[string]struct{}{
	"id":         {},
	"created_at": {},
	"first_name": {},
	"last_name":  {},
	"email":      {},
	"status":     {},
}

// listParams are the parsed query parameters of the admin list endpoint.
type listParams struct {
	Search  string
	Sort    string
	Dir     string
	Page    int
	PerPage int
}

func parseListParams(r *http.Request) listParams {
	q := r.URL.Query()

	p := listParams{
		Search:  strings.TrimSpace(q.Get("search")),
		Sort:    q.Get("sort"),
		Dir:     strings.ToLower(q.Get("dir")),
		Page:    1,
		PerPage: defaultPerPage,
	}

	if _, ok := sortColumns[p.Sort]; !ok {
		p.Sort = "created_at"
	}
	if p.Dir != "asc" {
		p.Dir = "desc"
	}
	if n, err := strconv.Atoi(q.Get("page")); err == nil && n > 0 {
		p.Page = n
	}
	if n, err := strconv.Atoi(q.Get("per_page")); err == nil && n > 0 {
		p.PerPage = n
		if p.PerPage > maxPerPage {
			p.PerPage = maxPerPage
		}
	}

	return p
}

// OrderClause builds the ORDER BY expression from the whitelisted column.
func (p listParams) OrderClause() string {
	return pq.QuoteIdentifier(p.Sort) + " " + p.Dir
}

func (p listParams) Offset() int {
	return (p.Page - 1) * p.PerPage
}
