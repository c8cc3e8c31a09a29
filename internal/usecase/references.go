package usecase

import (
	"fmt"
	"strings"

	"rag-pipeline/internal/domain"
)

// BuildReferences assembles the reference block handed to the answer model.
// Which sources go in depends on the domain: finance and sports answers come
// from structured data alone, movie and music mix the fact sheet with web
// passages, and everything else uses passages only.
func BuildReferences(d domain.QueryDomain, factSheet string, passages []string) string {
	switch d {
	case domain.DomainFinance, domain.DomainSports:
		return wrapReferences([]string{factSheet})
	case domain.DomainMovie, domain.DomainMusic:
		return wrapReferences(append([]string{factSheet}, passages...))
	default:
		return wrapReferences(passages)
	}
}

func wrapReferences(refs []string) string {
	if len(refs) > 1 {
		var b strings.Builder
		for _, ref := range refs {
			fmt.Fprintf(&b, "<DOC>\n%s\n</DOC>\n\n", strings.TrimSpace(ref))
		}
		return b.String()
	}
	if len(refs) == 1 && len(refs[0]) > 0 {
		return refs[0]
	}
	return "No References"
}
