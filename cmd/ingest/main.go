// Command ingest loads a JSON corpus of statutes and judgments into the
// vector store.
//
// Corpus format: a JSON array of documents, each with an id, the text to
// embed, and string metadata (source, type, section numbers, case details).
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	retrygo "github.com/avast/retry-go/v4"
	"go.uber.org/zap"

	"github.com/WillyEverGreen/TSEC-LEGAL-AI/internal/config"
	"github.com/WillyEverGreen/TSEC-LEGAL-AI/internal/integration/vectorstore"
	pkgretry "github.com/WillyEverGreen/TSEC-LEGAL-AI/internal/pkg/retry"
)

type corpusDocument struct {
	ID       string            `json:"id"`
	Text     string            `json:"text"`
	Metadata map[string]string `json:"metadata"`
}

func main() {
	corpusPath := flag.String("corpus", "data/corpus.json", "Path to the JSON corpus file")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatal("Failed to build logger:", err)
	}
	defer logger.Sync()

	if err := run(cfg, *corpusPath, logger); err != nil {
		logger.Fatal("ingest failed", zap.Error(err))
	}
}

func run(cfg *config.Config, corpusPath string, logger *zap.Logger) error {
	data, err := os.ReadFile(corpusPath)
	if err != nil {
		return fmt.Errorf("read corpus: %w", err)
	}

	var docs []corpusDocument
	if err := json.Unmarshal(data, &docs); err != nil {
		return fmt.Errorf("parse corpus: %w", err)
	}
	if len(docs) == 0 {
		return fmt.Errorf("corpus is empty")
	}

	store, err := vectorstore.New(cfg.VectorStoreCfg, logger)
	if err != nil {
		return fmt.Errorf("open vector store: %w", err)
	}

	ctx := context.Background()
	retryOpts := pkgretry.DefaultRetryConfig().ToRetryOptions()

	ingested := 0
	for _, doc := range docs {
		if doc.ID == "" || doc.Text == "" {
			logger.Warn("skipping document without id or text", zap.String("id", doc.ID))
			continue
		}

		// Embedding calls go over the network; transient failures retry.
		err := retrygo.Do(func() error {
			return store.Upsert(ctx, doc.ID, doc.Text, doc.Metadata)
		}, retryOpts...)
		if err != nil {
			return fmt.Errorf("ingest document %s: %w", doc.ID, err)
		}

		ingested++
		if ingested%100 == 0 {
			logger.Info("ingest progress", zap.Int("documents", ingested))
		}
	}

	logger.Info("ingest complete",
		zap.Int("documents", ingested),
		zap.Int("skipped", len(docs)-ingested),
		zap.String("collection", cfg.VectorStoreCfg.Collection),
	)
	return nil
}
