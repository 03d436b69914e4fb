package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"product-rag/internal/chromemdb"
	"product-rag/internal/config"
	"product-rag/internal/db"
	"product-rag/internal/embedding"
	"product-rag/internal/helper"
	"product-rag/internal/llmservice"
	"product-rag/internal/rag"
	"product-rag/internal/shopify"
)

const configFilePath = "./configs/config.yaml"

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).With().Caller().Logger()

	// keys may come from a local .env instead of the config file
	_ = godotenv.Load()

	ingest := flag.Bool("ingest", false, "Fetch all shop collections and upsert products")
	index := flag.Bool("index", false, "Rebuild the vector index from stored products")
	query := flag.String("query", "", "Ask the product assistant a question")
	products := flag.Bool("products", false, "List stored products")
	offset := flag.Int("offset", 0, "Product listing offset")
	limit := flag.Int("limit", 50, "Product listing page size")
	flag.Parse()

	if !*ingest && !*index && *query == "" && !*products {
		log.Fatal().Msg("Please provide one of -ingest, -index, -products or -query")
	}

	cfg, err := config.LoadConfig(configFilePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading config")
	}

	ctx := context.Background()

	dbClient, err := db.ConnectDB(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Error connecting to database")
	}
	dbInstance := db.NewDB(dbClient, cfg.Database.Debug)
	defer dbInstance.Close()

	if err := db.InitDB(ctx, dbInstance); err != nil {
		log.Fatal().Err(err).Msg("Error initializing database")
	}
	store := db.NewStore(dbInstance)

	if *products {
		listProducts(ctx, store, *offset, *limit)
		return
	}

	pipeline := buildPipeline(cfg, store)

	switch {
	case *ingest:
		count, err := pipeline.Ingest(ctx, cfg.Shop.Collections)
		if err != nil {
			log.Fatal().Err(err).Msg("Error ingesting catalog")
		}
		log.Info().Msgf("Upserted %d products", count)
	case *index:
		count, err := pipeline.Index(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("Error indexing catalog")
		}
		log.Info().Msgf("Indexed %d documents", count)
	case *query != "":
		runQuery(ctx, pipeline, *query)
	}
}

// buildPipeline constructs every collaborator exactly once and injects them;
// the embedder instance is shared between indexing and querying so distances
// stay comparable.
func buildPipeline(cfg *config.Config, store *db.Store) *rag.RAG {
	embedder, err := embedding.NewEmbedder(&cfg.EmbedLLM)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing embedder")
	}

	vectorIndex, err := chromemdb.NewIndex(cfg.Vector.DBPath, cfg.Vector.Collection, false)
	if err != nil {
		log.Fatal().Err(err).Msg("Error opening vector index")
	}

	fetcher := shopify.NewClient(cfg.Shop.BaseURL)

	// a missing chat credential is not an error: the pipeline falls back to
	// templated answers
	var completer rag.Completer
	if cfg.ChatLLM.Key != "" {
		client, err := llmservice.NewClient(&cfg.ChatLLM)
		if err != nil {
			log.Fatal().Err(err).Msg("Error initializing chat LLM")
		}
		completer = client
	} else {
		log.Info().Msg("No chat credential configured, using fallback responses")
	}

	return rag.New(store, vectorIndex, embedding.NewProvider(embedder), fetcher, completer, cfg.Vector.TopK)
}

func runQuery(ctx context.Context, pipeline *rag.RAG, query string) {
	response, err := pipeline.Query(ctx, query)
	if err != nil {
		log.Fatal().Err(err).Msg("Error querying")
	}

	log.Info().Msg("Query: ~~~~~~~~~~~~~~~~~~~~~~~~~>>>>>")
	fmt.Printf("%s\n\n", query)

	log.Info().Msg("Assistant: ~~~~~~~~~~~~~~~~~~~~~~~~~>>>>>")
	for _, msg := range response.Messages {
		if msg.Role == "assistant" {
			fmt.Printf("%s\n\n", msg.Content)
		}
	}

	log.Info().Msg("Products: ~~~~~~~~~~~~~~~~~~~~~~~~~>>>>>")
	helper.PrettyPrint(response.Products)
}

func listProducts(ctx context.Context, store *db.Store, offset, limit int) {
	items, total, err := store.ListPage(ctx, offset, limit)
	if err != nil {
		log.Fatal().Err(err).Msg("Error listing products")
	}
	log.Info().Msgf("Showing %d of %d products", len(items), total)
	helper.PrettyPrint(items)
}
