package engine

import (
	"strings"

	"github.com/cassiomorais/paybridge/internal/domain/connector"
)

// Link is one provider link relation, as found in _links-style response
// sections.
type Link struct {
	Rel  string
	Href string
}

// linkPriority is the fixed tie-break order when several link relations could
// carry the identifier. self wins: it locates the resource the response is
// about, while payment/refund/order may point at a related resource.
var linkPriority = []string{"self", "payment", "refund", "order"}

// ExtractID recovers a stable identifier from the shapes providers use: a
// direct field first, then known link relations in fixed priority order,
// taking the last non-empty path segment of the first match. Absence is a
// value (NoResponseID), not an error — the caller decides whether that is
// fatal for its flow. Extraction is a pure function of its inputs.
func ExtractID(direct string, links []Link) connector.ResponseID {
	if direct != "" {
		return connector.ConnectorTransactionID(direct)
	}

	for _, rel := range linkPriority {
		for _, l := range links {
			if l.Rel != rel || l.Href == "" {
				continue
			}
			if seg := lastPathSegment(l.Href); seg != "" {
				return connector.ConnectorTransactionID(seg)
			}
		}
	}

	return connector.NoResponseID()
}

// lastPathSegment returns the trailing path segment of a URL-like string,
// ignoring query and fragment parts and trailing slashes.
func lastPathSegment(href string) string {
	if i := strings.IndexAny(href, "?#"); i >= 0 {
		href = href[:i]
	}
	href = strings.TrimRight(href, "/")
	if i := strings.LastIndex(href, "/"); i >= 0 {
		return href[i+1:]
	}
	return ""
}
