package rag

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"product-rag/internal/catalog"
	"product-rag/internal/chromemdb"
	"product-rag/internal/db"
	"product-rag/internal/embedding"
	"product-rag/internal/helper"
	"product-rag/internal/models"
)

// CatalogStore is the relational system of record for products.
type CatalogStore interface {
	UpsertBySlug(ctx context.Context, p *db.Product) error
	ProductsByIDs(ctx context.Context, ids []int64) ([]db.Product, error)
	ListAll(ctx context.Context) ([]db.Product, error)
}

// VectorIndex is the persistent nearest-neighbor store over product
// documents.
type VectorIndex interface {
	Upsert(ctx context.Context, ids []int64, documents []string, vectors [][]float32) error
	Query(ctx context.Context, vector []float32, topK int) ([]chromemdb.Hit, error)
}

// SourceFetcher pulls raw catalog listings, one call per collection handle.
type SourceFetcher interface {
	FetchAll(ctx context.Context, handles []string) ([]models.SourceRecord, error)
}

// Completer is the generative model: one system+user turn, text back.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userContext string) (string, error)
}

// RAG runs the ingestion, indexing and query pipelines. All collaborators
// are constructed once by the process entry point and shared by reference;
// completer is nil when no chat credential is configured, which selects the
// templated fallback path.
type RAG struct {
	store     CatalogStore
	index     VectorIndex
	embedder  embedding.Embedder
	fetcher   SourceFetcher
	completer Completer
	topK      int
}

func New(store CatalogStore, index VectorIndex, embedder embedding.Embedder, fetcher SourceFetcher, completer Completer, topK int) *RAG {
	if topK <= 0 {
		topK = 8
	}
	return &RAG{
		store:     store,
		index:     index,
		embedder:  embedder,
		fetcher:   fetcher,
		completer: completer,
		topK:      topK,
	}
}

// Ingest fetches every configured collection, normalizes the listings and
// upserts them by slug. Returns the number of products upserted.
func (r *RAG) Ingest(ctx context.Context, handles []string) (int, error) {
	records, err := r.fetcher.FetchAll(ctx, handles)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch collections: %v", err)
	}

	count := 0
	for _, rec := range records {
		if err := r.store.UpsertBySlug(ctx, db.FromSourceRecord(rec)); err != nil {
			return count, fmt.Errorf("failed to upsert product %s: %v", rec.Slug, err)
		}
		count++
	}
	log.Info().Int("count", count).Msg("Ingested products")
	return count, nil
}

// Index regenerates one document per stored product, embeds them and
// upserts the vectors. Returns the number of documents indexed.
func (r *RAG) Index(ctx context.Context) (int, error) {
	products, err := r.store.ListAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list products: %v", err)
	}
	if len(products) == 0 {
		return 0, nil
	}

	ids := make([]int64, len(products))
	documents := make([]string, len(products))
	for i, p := range products {
		ids[i] = p.ID
		documents[i] = catalog.BuildDocument(p.Title, p.Description, p.Features, p.Category, p.ActivityList())
	}

	vectors, err := r.embedder.EmbedTexts(ctx, documents)
	if err != nil {
		return 0, err
	}

	if err := r.index.Upsert(ctx, ids, documents, vectors); err != nil {
		return 0, err
	}
	log.Info().Int("count", len(ids)).Msg("Indexed products")
	return len(ids), nil
}

// Query answers one free-text shopping question. Retrieval and generation
// failures propagate; a missing chat credential selects the templated
// fallback instead.
func (r *RAG) Query(ctx context.Context, message string) (*models.ChatResponse, error) {
	query := strings.TrimSpace(message)
	if query == "" {
		return r.respond(
			[]models.ChatMessage{{Role: models.RoleAssistant, Content: models.ClarifyMessage}},
			nil,
		), nil
	}

	vector, err := r.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, err
	}

	hits, err := r.index.Query(ctx, vector, r.topK)
	if err != nil {
		return nil, err
	}
	if len(hits) == 0 {
		return r.fallbackResponse(nil), nil
	}

	snippets, err := r.hydrate(ctx, hits)
	if err != nil {
		return nil, err
	}

	// Heuristic, query-aware reranking on top of raw vector similarity.
	snippets = Rerank(query, snippets)

	if r.completer == nil {
		return r.fallbackResponse(snippets), nil
	}

	answer, err := r.completer.Complete(ctx, models.SystemPrompt, buildUserContext(query, snippets))
	if err != nil {
		return nil, fmt.Errorf("failed to generate answer: %w", err)
	}

	return r.respond(
		[]models.ChatMessage{
			{Role: models.RoleUser, Content: query},
			{Role: models.RoleAssistant, Content: answer},
		},
		snippets,
	), nil
}

// hydrate resolves vector hits against the catalog store, attaching each
// hit's distance as the snippet relevance score. Ids that no longer resolve
// are dropped silently.
func (r *RAG) hydrate(ctx context.Context, hits []chromemdb.Hit) ([]models.ProductSnippet, error) {
	ids := make([]int64, len(hits))
	for i, h := range hits {
		ids[i] = h.ID
	}

	products, err := r.store.ProductsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to hydrate products: %v", err)
	}

	byID := make(map[int64]db.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	var snippets []models.ProductSnippet
	for _, h := range hits {
		p, ok := byID[h.ID]
		if !ok {
			log.Debug().Int64("id", h.ID).Msg("Dropping stale index hit")
			continue
		}
		snippets = append(snippets, models.ProductSnippet{
			ID:             p.ID,
			Title:          p.Title,
			Price:          p.Price,
			ImageURL:       p.ImageURL,
			ProductURL:     p.ProductURL,
			Category:       p.Category,
			Activities:     p.ActivityList(),
			RelevanceScore: h.Distance,
		})
	}
	return snippets, nil
}

func (r *RAG) respond(messages []models.ChatMessage, snippets []models.ProductSnippet) *models.ChatResponse {
	id, err := helper.GenerateUUID()
	if err != nil {
		id = ""
	}
	if snippets == nil {
		snippets = []models.ProductSnippet{}
	}
	return &models.ChatResponse{
		ExchangeID: id,
		Messages:   messages,
		Products:   snippets,
	}
}

// fallbackResponse is the non-generative answer: a "nothing found" note, or
// a templated list of the top reranked candidates.
func (r *RAG) fallbackResponse(snippets []models.ProductSnippet) *models.ChatResponse {
	if len(snippets) == 0 {
		return r.respond(
			[]models.ChatMessage{{Role: models.RoleAssistant, Content: models.NoResultsMessage}},
			nil,
		)
	}

	var b strings.Builder
	b.WriteString("Here are some products that could work for you:")
	for i, s := range snippets {
		if i == 4 {
			break
		}
		b.WriteString(fmt.Sprintf("\n- %s (approx. ₹%s) – category: %s; activities: %s.",
			s.Title, formatPrice(s.Price), orNA(s.Category), orNA(strings.Join(s.Activities, ", "))))
	}

	return r.respond(
		[]models.ChatMessage{{Role: models.RoleAssistant, Content: b.String()}},
		snippets,
	)
}

// buildUserContext lists every reranked candidate for the model, best first.
func buildUserContext(query string, snippets []models.ProductSnippet) string {
	var b strings.Builder
	fmt.Fprintf(&b, "User query: %s\n\nCandidate products:\n", query)
	for _, s := range snippets {
		fmt.Fprintf(&b, "- %s (₹%s), category=%s, activities=%s, url=%s\n",
			s.Title, formatPrice(s.Price), orNA(s.Category), orNA(strings.Join(s.Activities, ", ")), s.ProductURL)
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatPrice(price *float64) string {
	if price == nil {
		return "—"
	}
	return strconv.FormatFloat(*price, 'f', -1, 64)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
