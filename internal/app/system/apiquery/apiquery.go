// Package apiquery turns list-endpoint query strings into MongoDB filters,
// projections, sort orders, and pagination, and builds the uniform success
// envelope.
//
// Grammar:
//
//	?careers[in]=Business&average_cost[lte]=10000   filter with operators
//	?select=name,careers                            field projection
//	?sort=-name,created_at                          order (- prefix = desc)
//	?page=2&limit=25                                pagination
//
// The reserved keys {select, sort, page, limit} never become filter fields.
// Comparison suffixes gt, gte, lt, lte, in map to the corresponding $-operators;
// "in" values are comma-separated lists. Scalar values are coerced to number
// or bool when they parse as one, so average_cost[lte]=10000 compares
// numerically against numeric documents.
package apiquery

import (
	"net/url"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Pagination defaults.
const (
	DefaultPage  = 1
	DefaultLimit = 25
)

var reserved = map[string]struct{}{
	"select": {},
	"sort":   {},
	"page":   {},
	"limit":  {},
}

var operators = map[string]string{
	"gt":  "$gt",
	"gte": "$gte",
	"lt":  "$lt",
	"lte": "$lte",
	"in":  "$in",
}

// Params is the parsed form of a list request's query string.
type Params struct {
	Filter     bson.M
	Projection bson.M // nil when no select was given
	Sort       bson.D
	Page       int64
	Limit      int64
}

// Parse builds Params from raw query values. It never fails: unparseable
// page/limit values fall back to defaults, and unknown keys simply become
// equality filters.
func Parse(values url.Values) Params {
	p := Params{
		Filter: bson.M{},
		Page:   DefaultPage,
		Limit:  DefaultLimit,
	}

	for key, vals := range values {
		if len(vals) == 0 {
			continue
		}
		raw := vals[0]

		field, op := splitOperator(key)
		if _, isReserved := reserved[field]; isReserved && op == "" {
			continue
		}

		if op == "" {
			p.Filter[field] = coerce(raw)
			continue
		}
		mongoOp, known := operators[op]
		if !known {
			// Unknown suffix: treat the whole key as a literal field name.
			p.Filter[key] = coerce(raw)
			continue
		}

		cond, ok := p.Filter[field].(bson.M)
		if !ok {
			cond = bson.M{}
			p.Filter[field] = cond
		}
		if mongoOp == "$in" {
			cond[mongoOp] = coerceList(raw)
		} else {
			cond[mongoOp] = coerce(raw)
		}
	}

	if sel := values.Get("select"); sel != "" {
		p.Projection = bson.M{}
		for _, f := range strings.Split(sel, ",") {
			if f = strings.TrimSpace(f); f != "" {
				p.Projection[f] = 1
			}
		}
	}

	p.Sort = parseSort(values.Get("sort"))

	if page, err := strconv.ParseInt(values.Get("page"), 10, 64); err == nil && page > 0 {
		p.Page = page
	}
	if limit, err := strconv.ParseInt(values.Get("limit"), 10, 64); err == nil && limit > 0 {
		p.Limit = limit
	}

	return p
}

// splitOperator separates "field[op]" into its parts. The express-style
// bracket form is what clients send; a missing or empty bracket yields op "".
func splitOperator(key string) (field, op string) {
	open := strings.IndexByte(key, '[')
	if open <= 0 || !strings.HasSuffix(key, "]") {
		return key, ""
	}
	return key[:open], key[open+1 : len(key)-1]
}

func parseSort(raw string) bson.D {
	if raw == "" {
		// Default ordering: newest first.
		return bson.D{{Key: "created_at", Value: -1}}
	}
	var sort bson.D
	for _, f := range strings.Split(raw, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		dir := 1
		if strings.HasPrefix(f, "-") {
			dir = -1
			f = f[1:]
		}
		sort = append(sort, bson.E{Key: f, Value: dir})
	}
	if len(sort) == 0 {
		return bson.D{{Key: "created_at", Value: -1}}
	}
	return sort
}

// coerce converts a raw query value to the type it parses as: int, float,
// bool, or string.
func coerce(raw string) any {
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(raw); err == nil {
		return b
	}
	return raw
}

func coerceList(raw string) []any {
	parts := strings.Split(raw, ",")
	out := make([]any, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, coerce(p))
		}
	}
	return out
}

// Skip returns the number of documents to skip for the current page.
func (p Params) Skip() int64 {
	return (p.Page - 1) * p.Limit
}

// FindOptions assembles the driver options for the parsed projection, sort,
// and page window.
func (p Params) FindOptions() *options.FindOptions {
	opts := options.Find().
		SetSort(p.Sort).
		SetSkip(p.Skip()).
		SetLimit(p.Limit)
	if p.Projection != nil {
		opts.SetProjection(p.Projection)
	}
	return opts
}

// Page descriptors for the pagination metadata block.
type PageRef struct {
	Page  int64 `json:"page"`
	Limit int64 `json:"limit"`
}

type Pagination struct {
	Prev *PageRef `json:"prev,omitempty"`
	Next *PageRef `json:"next,omitempty"`
}

// Paginate returns prev/next descriptors for the window, or nil when the
// result fits on a single page. total is the full matching count.
func (p Params) Paginate(total int64) *Pagination {
	var pg Pagination
	if p.Page > 1 {
		pg.Prev = &PageRef{Page: p.Page - 1, Limit: p.Limit}
	}
	if p.Skip()+p.Limit < total {
		pg.Next = &PageRef{Page: p.Page + 1, Limit: p.Limit}
	}
	if pg.Prev == nil && pg.Next == nil {
		return nil
	}
	return &pg
}

// Envelope is the uniform success wrapper for API responses.
type Envelope struct {
	Success    bool        `json:"success"`
	Count      *int        `json:"count,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
	Data       any         `json:"data"`
}

// List builds the envelope for a list result.
func List(data any, count int, pagination *Pagination) Envelope {
	return Envelope{Success: true, Count: &count, Pagination: pagination, Data: data}
}

// One builds the envelope for a single document (or scalar) result.
func One(data any) Envelope {
	return Envelope{Success: true, Data: data}
}
