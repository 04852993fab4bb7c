// Package vectorstore wraps the embedded chromem database behind the
// retrieval.Searcher contract.
package vectorstore

import (
	"context"
	"fmt"
	"os"
	"sync"

	chromem "github.com/philippgille/chromem-go"
	"go.uber.org/zap"

	"github.com/WillyEverGreen/TSEC-LEGAL-AI/internal/config"
	"github.com/WillyEverGreen/TSEC-LEGAL-AI/internal/entity"
)

// Store is a persistent chromem-backed vector store. The zero number of
// documents is fine: Search just returns no hits.
type Store struct {
	mu         sync.RWMutex
	db         *chromem.DB
	collection string
	embedFn    chromem.EmbeddingFunc
	logger     *zap.Logger
}

// New opens (or creates) the persistent store at cfg.DataDir. Construction
// failure is surfaced to the caller, which treats retrieval as unavailable
// rather than aborting startup.
func New(cfg config.VectorStoreConfig, logger *zap.Logger) (*Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o750); err != nil {
		return nil, fmt.Errorf("create vector store dir: %w", err)
	}

	db, err := chromem.NewPersistentDB(cfg.DataDir, false)
	if err != nil {
		return nil, fmt.Errorf("open vector store: %w", err)
	}

	embedFn := chromem.NewEmbeddingFuncOpenAICompat(cfg.EmbeddingBaseURL, cfg.EmbeddingAPIKey, cfg.EmbeddingModel, nil)

	store := &Store{
		db:         db,
		collection: cfg.Collection,
		embedFn:    embedFn,
		logger:     logger,
	}

	if col := db.GetCollection(cfg.Collection, embedFn); col != nil {
		logger.Info("vector store opened",
			zap.String("collection", cfg.Collection),
			zap.Int("documents", col.Count()),
		)
	} else {
		logger.Warn("vector store collection missing, run the ingest command",
			zap.String("collection", cfg.Collection),
		)
	}

	return store, nil
}

func (s *Store) getOrCreateCollection() (*chromem.Collection, error) {
	col := s.db.GetCollection(s.collection, s.embedFn)
	if col != nil {
		return col, nil
	}
	col, err := s.db.CreateCollection(s.collection, nil, s.embedFn)
	if err != nil {
		return nil, fmt.Errorf("create collection %s: %w", s.collection, err)
	}
	return col, nil
}

// Upsert indexes (or re-indexes) one document.
func (s *Store) Upsert(ctx context.Context, id, document string, metadata map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	col, err := s.getOrCreateCollection()
	if err != nil {
		return err
	}

	return col.AddDocument(ctx, chromem.Document{
		ID:       id,
		Content:  document,
		Metadata: metadata,
	})
}

// Search returns the top-k hits ordered by ascending distance. chromem
// reports cosine similarity; hits carry distance = 1 - similarity so the
// retriever's cutoff applies directly.
func (s *Store) Search(ctx context.Context, query string, k int) ([]entity.RetrievalHit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	col := s.db.GetCollection(s.collection, s.embedFn)
	if col == nil {
		return nil, entity.ErrVectorStoreUnavailable
	}

	count := col.Count()
	if count == 0 {
		return nil, nil
	}
	if k > count {
		k = count
	}

	results, err := col.Query(ctx, query, k, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("vector query: %w", err)
	}

	hits := make([]entity.RetrievalHit, 0, len(results))
	for _, r := range results {
		hits = append(hits, entity.RetrievalHit{
			Document: r.Content,
			Metadata: r.Metadata,
			Distance: 1 - float64(r.Similarity),
		})
	}

	return hits, nil
}
