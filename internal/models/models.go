package models

// SourceRecord is a product as fetched from a shop collection, before
// normalization. It is never persisted.
type SourceRecord struct {
	Title       string
	Slug        string
	ProductURL  string
	Price       *float64
	Currency    string
	Description string
	Features    string
	ImageURL    string
	Category    string
	Subcategory string
	RawTags     []string
	Activities  []string
}

// ProductSnippet is the query-time projection of a product shown alongside
// a chat answer. RelevanceScore is a distance: lower means more relevant.
type ProductSnippet struct {
	ID             int64    `json:"id"`
	Title          string   `json:"title"`
	Price          *float64 `json:"price,omitempty"`
	ImageURL       string   `json:"image_url,omitempty"`
	ProductURL     string   `json:"product_url"`
	Category       string   `json:"category,omitempty"`
	Activities     []string `json:"activities"`
	RelevanceScore float64  `json:"relevance_score"`
	Reason         string   `json:"reason,omitempty"`
}

// ChatMessage is a single role-tagged message in an exchange.
type ChatMessage struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// ChatResponse is one completed exchange: the ordered messages plus the
// candidate products backing the answer.
type ChatResponse struct {
	ExchangeID string           `json:"exchange_id"`
	Messages   []ChatMessage    `json:"messages"`
	Products   []ProductSnippet `json:"products"`
}
