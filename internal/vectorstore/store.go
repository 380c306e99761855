package vectorstore

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
	"github.com/tmc/langchaingo/vectorstores"
	"github.com/tmc/langchaingo/vectorstores/chroma"

	"github.com/jonathan/expert-finder/internal/types"
)

// DefaultCollection is the collection profiles are stored under.
const DefaultCollection = "linkedin"

// addBatchSize bounds how many profiles are embedded per request.
const addBatchSize = 100

// Config holds the connection settings for the vector store.
type Config struct {
	// ChromaURL is the base URL of the Chroma server.
	ChromaURL string
	// EmbeddingHost is an OpenAI-compatible embeddings endpoint.
	EmbeddingHost string
	// EmbeddingModel names the embedding model served by EmbeddingHost.
	EmbeddingModel string
	// Collection defaults to DefaultCollection when empty.
	Collection string
	// PoolSize bounds concurrent embedding batches; 0 means sequential.
	PoolSize int
}

// Store wraps the Chroma collection holding embedded profiles.
type Store struct {
	store      chroma.Store
	collection string
	poolSize   int
}

// New connects to Chroma and prepares the embedding pipeline. The embedding
// endpoint is OpenAI-compatible and typically serves a local sentence
// transformer, so no real API token is required.
func New(cfg Config) (*Store, error) {
	if cfg.ChromaURL == "" {
		return nil, fmt.Errorf("chroma URL is required")
	}
	if cfg.EmbeddingHost == "" {
		return nil, fmt.Errorf("embedding host is required")
	}

	collection := cfg.Collection
	if collection == "" {
		collection = DefaultCollection
	}

	client, err := openai.New(
		openai.WithBaseURL(cfg.EmbeddingHost),
		openai.WithToken("none"),
		openai.WithEmbeddingModel(cfg.EmbeddingModel),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedding client: %w", err)
	}

	embedder, err := embeddings.NewEmbedder(client, embeddings.WithStripNewLines(true))
	if err != nil {
		return nil, fmt.Errorf("failed to create embedder: %w", err)
	}

	store, err := chroma.New(
		chroma.WithChromaURL(cfg.ChromaURL),
		chroma.WithEmbedder(embedder),
		chroma.WithNameSpace(collection),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to chroma at %s: %w", cfg.ChromaURL, err)
	}

	return &Store{store: store, collection: collection, poolSize: cfg.PoolSize}, nil
}

// Collection returns the collection name in use.
func (s *Store) Collection() string { return s.collection }

// AddProfiles embeds and stores the given profiles, batching requests and
// running batches through a worker pool when PoolSize allows. Returns the
// number of profiles submitted successfully; batches that fail are logged
// and skipped rather than aborting the run.
func (s *Store) AddProfiles(ctx context.Context, profiles []*types.Profile) (int, error) {
	docs := make([]schema.Document, 0, len(profiles))
	for _, p := range profiles {
		if p.URNID == "" {
			continue
		}
		docs = append(docs, schema.Document{
			PageContent: BuildProfileText(p),
			Metadata:    MetadataForProfile(p),
		})
	}
	if len(docs) == 0 {
		return 0, nil
	}

	batches := make([][]schema.Document, 0, len(docs)/addBatchSize+1)
	for start := 0; start < len(docs); start += addBatchSize {
		end := min(start+addBatchSize, len(docs))
		batches = append(batches, docs[start:end])
	}

	if s.poolSize <= 1 {
		added := 0
		for i, batch := range batches {
			if _, err := s.store.AddDocuments(ctx, batch); err != nil {
				log.Printf("vectorstore: batch %d/%d failed: %v", i+1, len(batches), err)
				continue
			}
			added += len(batch)
		}
		return added, nil
	}

	pool, err := ants.NewPool(s.poolSize)
	if err != nil {
		return 0, fmt.Errorf("failed to create worker pool: %w", err)
	}
	defer pool.Release()

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		added int
	)
	for i, batch := range batches {
		i, batch := i, batch
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			if _, err := s.store.AddDocuments(ctx, batch); err != nil {
				log.Printf("vectorstore: batch %d/%d failed: %v", i+1, len(batches), err)
				return
			}
			mu.Lock()
			added += len(batch)
			mu.Unlock()
		}); err != nil {
			wg.Done()
			log.Printf("vectorstore: failed to submit batch %d: %v", i+1, err)
		}
	}
	wg.Wait()

	return added, nil
}

// Search runs a semantic query with optional metadata filters and returns
// ranked results.
func (s *Store) Search(ctx context.Context, query string, filters *types.SearchFilters, topK int) ([]types.SearchResult, error) {
	opts := []vectorstores.Option{}
	if where := WhereFromFilters(filters); where != nil {
		opts = append(opts, vectorstores.WithFilters(where))
	}

	docs, err := s.store.SimilaritySearch(ctx, query, topK, opts...)
	if err != nil {
		return nil, fmt.Errorf("similarity search failed: %w", err)
	}

	results := make([]types.SearchResult, 0, len(docs))
	for i, doc := range docs {
		results = append(results, resultFromDocument(i+1, doc))
	}
	return results, nil
}

func resultFromDocument(rank int, doc schema.Document) types.SearchResult {
	meta := doc.Metadata
	str := func(key string) string {
		s, _ := meta[key].(string)
		return s
	}

	summary := doc.PageContent
	if len(summary) > 300 {
		summary = summary[:300] + "..."
	}

	return types.SearchResult{
		Rank:            rank,
		URNID:           str("urn_id"),
		Name:            str("name"),
		CurrentTitle:    str("current_title"),
		CurrentCompany:  str("current_company"),
		Location:        str("location"),
		Industry:        str("industry"),
		EducationLevel:  str("education_level"),
		CareerLevel:     str("career_level"),
		YearsExperience: str("years_experience"),
		Similarity:      float64(doc.Score),
		ProfileSummary:  summary,
		Metadata:        meta,
	}
}
