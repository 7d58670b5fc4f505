package itglue

import (
	"net/url"
	"strconv"
)

// Page holds JSON:API pagination parameters. A zero size or number is
// treated as absent and not emitted; this mirrors the upstream behavior of
// treating 0 as "use server default".
type Page struct {
	Size   int
	Number int
}

// Params describes the query parameters of one API request.
type Params struct {
	// Filter entries are emitted as filter[kebab-key]=value. Keys are given
	// in camelCase and hyphenated during encoding; nil values are dropped.
	Filter map[string]any
	Page   Page
	Sort   string
	// Extra entries are emitted verbatim as key=value. Only scalar values
	// (string, bool, numbers) are encoded; anything else is silently skipped.
	Extra map[string]any
}

// Encode renders the parameters as a URL query string including the leading
// "?", or an empty string when nothing is set. Key order follows
// url.Values.Encode; the API does not care about parameter order.
func (p Params) Encode() string {
	q := url.Values{}
	for k, v := range p.Filter {
		if s, ok := stringify(v); ok {
			q.Set("filter["+ToKebab(k)+"]", s)
		}
	}
	if p.Page.Size != 0 {
		q.Set("page[size]", strconv.Itoa(p.Page.Size))
	}
	if p.Page.Number != 0 {
		q.Set("page[number]", strconv.Itoa(p.Page.Number))
	}
	if p.Sort != "" {
		q.Set("sort", p.Sort)
	}
	for k, v := range p.Extra {
		if s, ok := stringify(v); ok {
			q.Set(k, s)
		}
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

// stringify converts a scalar parameter value to its query representation.
// Nil and non-scalar shapes report ok=false and are skipped by the caller.
func stringify(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case bool:
		return strconv.FormatBool(t), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case float64:
		// JSON numbers arrive as float64; render integral values without
		// a fractional part.
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10), true
		}
		return strconv.FormatFloat(t, 'f', -1, 64), true
	default:
		return "", false
	}
}
