package shopify

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"product-rag/internal/catalog"
	"product-rag/internal/models"
)

const (
	collectionLimit = 250
	defaultCurrency = "INR"
)

// Client fetches product listings from a Shopify storefront using the JSON
// products endpoint instead of brittle HTML scraping.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 20 * time.Second},
	}
}

// shopifyProduct mirrors the subset of the products.json payload we consume.
type shopifyProduct struct {
	Handle      string `json:"handle"`
	Title       string `json:"title"`
	BodyHTML    string `json:"body_html"`
	ProductType string `json:"product_type"`
	Tags        any    `json:"tags"` // string or list depending on store
	Variants    []struct {
		Price string `json:"price"`
	} `json:"variants"`
	Images []struct {
		Src string `json:"src"`
	} `json:"images"`
}

type collectionPayload struct {
	Products []shopifyProduct `json:"products"`
}

// FetchCollection fetches one collection and normalizes its products into
// source records. The collection handle doubles as the category handle.
func (c *Client) FetchCollection(ctx context.Context, handle string) ([]models.SourceRecord, error) {
	url := fmt.Sprintf("%s/collections/%s/products.json?limit=%d", c.baseURL, handle, collectionLimit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch collection %s: %v", handle, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("collection %s request failed: %d, %s", handle, resp.StatusCode, string(body))
	}

	var payload collectionPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode collection %s: %v", handle, err)
	}

	var records []models.SourceRecord
	for _, p := range payload.Products {
		if p.Handle == "" {
			continue
		}
		records = append(records, c.normalize(handle, p))
	}
	return records, nil
}

func (c *Client) normalize(handle string, p shopifyProduct) models.SourceRecord {
	title := p.Title
	if title == "" {
		title = titleFromSlug(p.Handle)
	}

	var price *float64
	if len(p.Variants) > 0 {
		price = parsePrice(p.Variants[0].Price)
	}

	imageURL := ""
	if len(p.Images) > 0 {
		imageURL = p.Images[0].Src
	}

	tags := splitTags(p.Tags)

	return models.SourceRecord{
		Title:       title,
		Slug:        p.Handle,
		ProductURL:  fmt.Sprintf("%s/products/%s", c.baseURL, p.Handle),
		Price:       price,
		Currency:    defaultCurrency,
		Description: stripHTML(p.BodyHTML),
		Features:    "",
		ImageURL:    imageURL,
		Category:    handle,
		Subcategory: p.ProductType,
		RawTags:     tags,
		Activities:  catalog.Tags(title, tags, handle),
	}
}

// FetchAll fetches every configured collection and merges the results by
// slug, last seen wins. A failing collection is logged and skipped so one
// broken section does not abort the whole ingestion run.
func (c *Client) FetchAll(ctx context.Context, handles []string) ([]models.SourceRecord, error) {
	merged := map[string]models.SourceRecord{}
	var order []string
	failures := 0

	for _, handle := range handles {
		records, err := c.FetchCollection(ctx, handle)
		if err != nil {
			log.Error().Err(err).Str("collection", handle).Msg("Skipping collection")
			failures++
			continue
		}
		for _, rec := range records {
			if _, seen := merged[rec.Slug]; !seen {
				order = append(order, rec.Slug)
			}
			merged[rec.Slug] = rec
		}
	}

	if failures == len(handles) && len(handles) > 0 {
		return nil, fmt.Errorf("all %d collections failed to fetch", failures)
	}

	out := make([]models.SourceRecord, 0, len(merged))
	for _, slug := range order {
		out = append(out, merged[slug])
	}
	return out, nil
}

// parsePrice degrades unparseable values to an absent price rather than
// failing the record.
func parsePrice(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 {
		return nil
	}
	return &v
}

func splitTags(raw any) []string {
	var parts []string
	switch v := raw.(type) {
	case string:
		parts = strings.Split(v, ",")
	case []any:
		for _, t := range v {
			parts = append(parts, fmt.Sprint(t))
		}
	}
	var tags []string
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func titleFromSlug(slug string) string {
	words := strings.Split(strings.ReplaceAll(slug, "-", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// stripHTML reduces Shopify body_html to plain text for document synthesis.
func stripHTML(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
			b.WriteRune(' ')
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(html.UnescapeString(b.String())), " ")
}
