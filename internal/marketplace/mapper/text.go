package mapper

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/sme-marketplace/server/internal/marketplace/model"
)

var (
	schemeRe  = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.\-]*:`)
	listSepRe = regexp.MustCompile(`[,;]`)
)

// bullets stripped from the start of list lines.
var bullets = []string{"•", "-", "*", "–", "·"}

// NormalizeEligibility reduces eligibility data to a single display line: the
// first semicolon-delimited segment of the first non-blank string. v may be a
// string, a []string or a decoded JSON array. Later clauses are dropped.
func NormalizeEligibility(v any) string {
	first := ""
	switch t := v.(type) {
	case string:
		first = strings.TrimSpace(t)
	case []string:
		for _, s := range t {
			if s = strings.TrimSpace(s); s != "" {
				first = s
				break
			}
		}
	case []any:
		for _, el := range t {
			if s, ok := el.(string); ok {
				if s = strings.TrimSpace(s); s != "" {
					first = s
					break
				}
			}
		}
	}
	segment, _, _ := strings.Cut(first, ";")
	return strings.TrimSpace(segment)
}

// NormalizeDocumentName turns a document reference (URL, path or file name)
// into a display name: query and fragment are removed, the last path segment
// is kept and one trailing extension is stripped when its dot is not leading.
func NormalizeDocumentName(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	s := ref
	if i := strings.IndexAny(s, "?#"); i >= 0 {
		s = s[:i]
	}
	s = strings.TrimRight(s, "/")
	if i := strings.LastIndex(s, "/"); i >= 0 {
		s = s[i+1:]
	}
	if decoded, err := url.PathUnescape(s); err == nil {
		s = decoded
	}
	if dot := strings.LastIndex(s, "."); dot > 0 {
		s = s[:dot]
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return ref
	}
	return s
}

// AbsoluteURL resolves a relative asset path against base. Values that already
// carry a URL scheme are returned unchanged.
func AbsoluteURL(base, path string) string {
	path = strings.TrimSpace(path)
	if path == "" || schemeRe.MatchString(path) || base == "" {
		return path
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}

// SplitList converts free text or an array into trimmed, non-empty strings.
// Multi-line text splits on newlines; single-line text splits on commas and
// semicolons. Leading bullet markers are removed.
func SplitList(v any) []string {
	return splitList(v, true)
}

// LineList is SplitList without the comma and semicolon split: a single-line
// string stays one element. Product fields carry amounts like "1,000,000" and
// URLs with commas in the query.
func LineList(v any) []string {
	return splitList(v, false)
}

func splitList(v any, separators bool) []string {
	var parts []string
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		t = strings.ReplaceAll(t, "\r\n", "\n")
		switch {
		case strings.Contains(t, "\n"):
			parts = strings.Split(t, "\n")
		case separators:
			parts = listSepRe.Split(t, -1)
		default:
			parts = []string{t}
		}
	case []string:
		parts = t
	case []any:
		parts = model.FieldBag{"v": t}.Strings("v")
	default:
		return nil
	}

	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		for _, b := range bullets {
			if strings.HasPrefix(p, b) {
				p = strings.TrimSpace(strings.TrimPrefix(p, b))
				break
			}
		}
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// Slug lower-cases a label into an option id ("Start-up Stage" -> "start-up-stage").
func Slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}
