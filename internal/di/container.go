// Package di wires the application components from config.
package di

import (
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"rag-pipeline/internal/adapter/kgapi"
	"rag-pipeline/internal/adapter/llm"
	"rag-pipeline/internal/adapter/repository"
	"rag-pipeline/internal/domain"
	"rag-pipeline/internal/infra/config"
	"rag-pipeline/internal/infra/httpclient"
	"rag-pipeline/internal/usecase"
	"rag-pipeline/internal/usecase/entitymatch"
	"rag-pipeline/internal/usecase/facts"
	"rag-pipeline/internal/usecase/ner"
	"rag-pipeline/internal/usecase/retrieval"
)

// ApplicationComponents holds all wired dependencies for the application.
type ApplicationComponents struct {
	Knowledge *kgapi.Client
	Chat      domain.ChatClient
	Encoder   domain.VectorEncoder
	Reranker  domain.Reranker

	Companies *entitymatch.CompanyTable
	Matcher   *entitymatch.Matcher
	Formatter *facts.Formatter
	Extractor *ner.Extractor

	RetrievalConfig retrieval.Config
	Retriever       domain.PassageRetriever

	// ChunkRepo, TxManager and IndexUsecase are nil when no database pool is
	// supplied.
	ChunkRepo    domain.ChunkRepository
	TxManager    domain.TransactionManager
	IndexUsecase *usecase.IndexUsecase

	AnswerUsecase *usecase.AnswerUsecase
}

// NewApplicationComponents wires all dependencies. pool may be nil when the
// pgvector index backend is not in use; the staged retriever is wired either
// way.
func NewApplicationComponents(cfg *config.Config, pool *pgxpool.Pool, log *slog.Logger) (*ApplicationComponents, error) {
	knowledge, err := kgapi.NewClient(kgapi.Config{
		BaseURL:           cfg.Knowledge.URL,
		Timeout:           cfg.Ollama.Timeout,
		RequestsPerSecond: cfg.Knowledge.RequestsPerSecond,
		Burst:             cfg.Knowledge.Burst,
		CacheSize:         cfg.Knowledge.CacheSize,
		HTTPClient:        httpclient.NewPooledClient(cfg.Ollama.Timeout),
	}, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create knowledge client: %w", err)
	}

	chat := llm.NewOllamaChat(cfg.Ollama.URL, cfg.Ollama.ChatModel, cfg.Ollama.MaxTokens, cfg.Ollama.Timeout)
	chat.Client = httpclient.NewPooledClient(cfg.Ollama.Timeout)
	encoder := llm.NewOllamaEmbedder(cfg.Ollama.URL, cfg.Ollama.EmbeddingModel, cfg.Ollama.Timeout, log)
	encoder.Client = httpclient.NewPooledClient(cfg.Ollama.Timeout)

	var reranker domain.Reranker
	if cfg.Reranker.Enabled {
		rerankerClient := llm.NewRerankerClient(cfg.Reranker.URL, cfg.Reranker.Model, cfg.Reranker.Timeout, log)
		rerankerClient.Client = httpclient.NewPooledClient(cfg.Reranker.Timeout)
		reranker = rerankerClient
		log.Info("reranker_enabled",
			slog.String("url", cfg.Reranker.URL),
			slog.String("model", cfg.Reranker.Model))
	}

	companies, err := entitymatch.LoadCompanyTable(cfg.Answer.CompanyTablePath)
	if err != nil {
		return nil, err
	}
	matcher := entitymatch.NewMatcher(companies, knowledge, knowledge, knowledge, log)
	formatter := facts.NewFormatter(matcher, knowledge, knowledge, knowledge, knowledge, log)
	extractor := ner.NewExtractor(chat, log)

	retrievalConfig := retrieval.DefaultConfig()
	retrievalConfig.ExtractWorkers = cfg.Retrieval.ExtractWorkers
	retrievalConfig.ExtractTimeout = cfg.Retrieval.ExtractTimeout
	retrievalConfig.TopK = cfg.Retrieval.TopK
	retrievalConfig.TopN = cfg.Retrieval.TopN
	retrievalConfig.RerankEnabled = cfg.Reranker.Enabled
	retrievalConfig.RerankTimeout = cfg.Reranker.Timeout

	retriever := retrieval.NewStagedRetriever(encoder, reranker, retrievalConfig, log)

	components := &ApplicationComponents{
		Knowledge:       knowledge,
		Chat:            chat,
		Encoder:         encoder,
		Reranker:        reranker,
		Companies:       companies,
		Matcher:         matcher,
		Formatter:       formatter,
		Extractor:       extractor,
		RetrievalConfig: retrievalConfig,
		Retriever:       retriever,
	}

	if pool != nil {
		components.ChunkRepo = repository.NewPassageChunkRepository(pool)
		components.TxManager = repository.NewPostgresTransactionManager(pool)
		components.IndexUsecase = usecase.NewIndexUsecase(
			components.ChunkRepo, components.TxManager, encoder, retrievalConfig, log,
		)
	}

	components.AnswerUsecase = usecase.NewAnswerUsecase(
		chat, retriever, extractor, matcher, formatter,
		nil, nil, cfg.Answer.QueryTimeout, log,
	)
	return components, nil
}

// UseIndexRetriever switches the answer usecase to the pgvector index
// backend. It requires a database pool to have been wired.
func (c *ApplicationComponents) UseIndexRetriever(cfg *config.Config, log *slog.Logger) error {
	if c.ChunkRepo == nil {
		return fmt.Errorf("index retriever requires a database pool")
	}
	c.Retriever = retrieval.NewIndexRetriever(c.ChunkRepo, c.Encoder, c.Reranker, c.RetrievalConfig, log)
	c.AnswerUsecase = usecase.NewAnswerUsecase(
		c.Chat, c.Retriever, c.Extractor, c.Matcher, c.Formatter,
		nil, nil, cfg.Answer.QueryTimeout, log,
	)
	return nil
}
