package db

import (
	"context"
	"database/sql"
	"strings"

	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"

	"product-rag/internal/config"
	"product-rag/internal/models"
)

// Product is the persisted catalog entity. Slug is the dedup key across
// ingestion runs; activities are stored comma-joined.
type Product struct {
	bun.BaseModel `bun:"table:products,alias:p"`

	ID          int64    `bun:"id,pk,autoincrement"`
	Title       string   `bun:"title,notnull"`
	Slug        string   `bun:"slug,notnull,unique"`
	ProductURL  string   `bun:"product_url,notnull"`
	Price       *float64 `bun:"price"`
	Currency    string   `bun:"currency"`
	Description string   `bun:"description,type:text"`
	Features    string   `bun:"features,type:text"`
	ImageURL    string   `bun:"image_url"`
	Category    string   `bun:"category"`
	Subcategory string   `bun:"subcategory"`
	Activities  string   `bun:"activities"`
}

// ActivityList splits the stored comma-joined activities.
func (p *Product) ActivityList() []string {
	var acts []string
	for _, a := range strings.Split(p.Activities, ",") {
		if a = strings.TrimSpace(a); a != "" {
			acts = append(acts, a)
		}
	}
	return acts
}

// FromSourceRecord maps a normalized source record onto a product row.
func FromSourceRecord(rec models.SourceRecord) *Product {
	return &Product{
		Title:       rec.Title,
		Slug:        rec.Slug,
		ProductURL:  rec.ProductURL,
		Price:       rec.Price,
		Currency:    rec.Currency,
		Description: rec.Description,
		Features:    rec.Features,
		ImageURL:    rec.ImageURL,
		Category:    rec.Category,
		Subcategory: rec.Subcategory,
		Activities:  strings.Join(rec.Activities, ","),
	}
}

func NewDB(sqldb *sql.DB, debug bool) *bun.DB {
	db := bun.NewDB(sqldb, pgdialect.New())
	if debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}
	return db
}

func ConnectDB(cfg *config.DatabaseConfig) (*sql.DB, error) {
	dsn := cfg.URL + "?sslmode=disable"
	return sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn), pgdriver.WithPassword(cfg.Password))), nil
}

func InitDB(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*Product)(nil)).IfNotExists().Exec(ctx)
	return err
}

// Store is the catalog store handed to the pipeline.
type Store struct {
	db *bun.DB
}

func NewStore(db *bun.DB) *Store {
	return &Store{db: db}
}

// UpsertBySlug inserts the product or, if the slug already exists, updates
// every mutable field so scraper improvements propagate. The row id is
// populated on return.
func (s *Store) UpsertBySlug(ctx context.Context, p *Product) error {
	_, err := s.db.NewInsert().
		Model(p).
		On("CONFLICT (slug) DO UPDATE").
		Set("title = EXCLUDED.title").
		Set("product_url = EXCLUDED.product_url").
		Set("price = EXCLUDED.price").
		Set("currency = EXCLUDED.currency").
		Set("description = EXCLUDED.description").
		Set("features = EXCLUDED.features").
		Set("image_url = EXCLUDED.image_url").
		Set("category = EXCLUDED.category").
		Set("subcategory = EXCLUDED.subcategory").
		Set("activities = EXCLUDED.activities").
		Returning("id").
		Exec(ctx)
	return err
}

// ProductsByIDs fetches the products for the given ids; missing ids are
// simply absent from the result.
func (s *Store) ProductsByIDs(ctx context.Context, ids []int64) ([]Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var products []Product
	err := s.db.NewSelect().
		Model(&products).
		Where("p.id IN (?)", bun.In(ids)).
		Scan(ctx)
	return products, err
}

// ListAll returns every product in the catalog, for reindexing.
func (s *Store) ListAll(ctx context.Context) ([]Product, error) {
	var products []Product
	err := s.db.NewSelect().Model(&products).Order("id ASC").Scan(ctx)
	return products, err
}

// ListPage returns one page of products plus the total count.
func (s *Store) ListPage(ctx context.Context, offset, limit int) ([]Product, int, error) {
	var products []Product
	total, err := s.db.NewSelect().
		Model(&products).
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		ScanAndCount(ctx)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}
