package ner_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rag-pipeline/internal/domain"
	"rag-pipeline/internal/usecase/ner"
)

func TestParseMentions_Finance(t *testing.T) {
	output := "Apple Inc. (company)\nMSFT (symbol)\nsome prose that is not an entity\n"

	mentions := ner.ParseMentions(output, domain.DomainFinance)

	assert.Equal(t, []string{"Apple Inc."}, mentions.Get(domain.CategoryCompany))
	assert.Equal(t, []string{"MSFT"}, mentions.Get(domain.CategorySymbol))
}

func TestParseMentions_StripsListNumbering(t *testing.T) {
	output := "1. Apple Inc. (company)\n- Tesla (company)\n"

	mentions := ner.ParseMentions(output, domain.DomainFinance)

	assert.Equal(t, []string{"Apple Inc.", "Tesla"}, mentions.Get(domain.CategoryCompany))
}

func TestParseMentions_DropsNone(t *testing.T) {
	output := "None (company)\nnone found (symbol)\nApple (company)\n"

	mentions := ner.ParseMentions(output, domain.DomainFinance)

	assert.Equal(t, []string{"Apple"}, mentions.Get(domain.CategoryCompany))
	assert.Empty(t, mentions.Get(domain.CategorySymbol))
}

func TestParseMentions_RejectsForeignCategories(t *testing.T) {
	output := "Taylor Swift (person)\nApple (company)\n"

	mentions := ner.ParseMentions(output, domain.DomainMusic)

	assert.Equal(t, []string{"Taylor Swift"}, mentions.Get(domain.CategoryPerson))
	assert.True(t, len(mentions.Get(domain.CategoryCompany)) == 0)
}

func TestParseMentions_SportsMultiWordLabels(t *testing.T) {
	output := "Los Angeles Lakers (nba team)\nArsenal (soccer team)\nLeBron James (nba player)\n"

	mentions := ner.ParseMentions(output, domain.DomainSports)

	assert.Equal(t, []string{"Los Angeles Lakers"}, mentions.Get(domain.CategoryNBATeam))
	assert.Equal(t, []string{"Arsenal"}, mentions.Get(domain.CategorySoccerTeam))
	assert.Equal(t, []string{"LeBron James"}, mentions.Get(domain.CategoryNBAPlayer))
}

func TestParseMentions_DeduplicatesSurfaces(t *testing.T) {
	output := "Apple (company)\nApple (company)\n"

	mentions := ner.ParseMentions(output, domain.DomainFinance)

	assert.Equal(t, []string{"Apple"}, mentions.Get(domain.CategoryCompany))
}

type cannedChat struct {
	output string
	err    error
}

func (c cannedChat) Chat(context.Context, string, string) (string, error) {
	return c.output, c.err
}

func (c cannedChat) Version() string { return "canned" }

func TestExtractor_Extract(t *testing.T) {
	extractor := ner.NewExtractor(cannedChat{output: "Inception (movie)\nChristopher Nolan (person)\n"},
		slog.New(slog.NewJSONHandler(io.Discard, nil)))

	mentions := extractor.Extract(context.Background(), "who directed inception", domain.DomainMovie)

	require.NotNil(t, mentions)
	assert.Equal(t, []string{"Inception"}, mentions.Get(domain.CategoryMovie))
	assert.Equal(t, []string{"Christopher Nolan"}, mentions.Get(domain.CategoryPerson))
}

func TestExtractor_ModelFailureYieldsEmptyMentions(t *testing.T) {
	extractor := ner.NewExtractor(cannedChat{err: fmt.Errorf("model unavailable")},
		slog.New(slog.NewJSONHandler(io.Discard, nil)))

	mentions := extractor.Extract(context.Background(), "any query", domain.DomainFinance)

	require.NotNil(t, mentions)
	assert.True(t, mentions.Empty())
}
