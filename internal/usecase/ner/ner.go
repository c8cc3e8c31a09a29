// Package ner tags entity spans in a query with a chat model and parses the
// line-structured output into typed mention lists.
package ner

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"rag-pipeline/internal/domain"
)

var leadingNonLetters = regexp.MustCompile(`^[^a-zA-Z]+`)

// Extractor runs the tagging prompt for a query's domain.
type Extractor struct {
	chat   domain.ChatClient
	logger *slog.Logger
}

// NewExtractor creates a named-entity extractor on top of a chat client.
func NewExtractor(chat domain.ChatClient, logger *slog.Logger) *Extractor {
	return &Extractor{chat: chat, logger: logger}
}

// Extract tags the query and returns the parsed mentions. Extraction is best
// effort: a failed model call yields an empty mention set, never an error.
func (e *Extractor) Extract(ctx context.Context, query string, d domain.QueryDomain) *domain.Mentions {
	system, user := promptsFor(d, query)

	output, err := e.chat.Chat(ctx, system, user)
	if err != nil {
		e.logger.Warn("entity_tagging_failed",
			slog.String("domain", string(d)),
			slog.String("error", err.Error()))
		return domain.NewMentions(domain.MentionCategories(d))
	}

	return ParseMentions(output, d)
}

func promptsFor(d domain.QueryDomain, query string) (system, user string) {
	switch d {
	case domain.DomainFinance:
		return financeSystemPrompt, fmt.Sprintf(financeUserPrompt, query)
	case domain.DomainMusic:
		return musicSystemPrompt, fmt.Sprintf(musicUserPrompt, query)
	case domain.DomainMovie:
		return movieSystemPrompt, fmt.Sprintf(movieUserPrompt, query)
	case domain.DomainSports:
		return sportsSystemPrompt, fmt.Sprintf(sportsUserPrompt, query)
	default:
		return openSystemPrompt, fmt.Sprintf(openUserPrompt, query)
	}
}

// ParseMentions extracts "entity_name (entity_category)" lines from the model
// output. Only the domain's category labels are accepted; lines whose surface
// contains "none" are dropped, as are leading non-letter characters such as
// list numbering.
func ParseMentions(output string, d domain.QueryDomain) *domain.Mentions {
	categories := domain.MentionCategories(d)
	mentions := domain.NewMentions(categories)

	quoted := make([]string, len(categories))
	for i, c := range categories {
		quoted[i] = regexp.QuoteMeta(c)
	}
	pattern := regexp.MustCompile(`(?m)^(.*?)\((` + strings.Join(quoted, "|") + `)\)`)

	for _, match := range pattern.FindAllStringSubmatch(output, -1) {
		surface := strings.TrimSpace(match[1])
		surface = leadingNonLetters.ReplaceAllString(surface, "")
		if surface == "" || strings.Contains(strings.ToLower(surface), "none") {
			continue
		}
		mentions.Add(match[2], surface)
	}
	return mentions
}
