package db

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"product-rag/internal/models"
)

func TestActivityList(t *testing.T) {
	tests := []struct {
		name   string
		stored string
		want   []string
	}{
		{"empty", "", nil},
		{"single", "yoga", []string{"yoga"}},
		{"multiple with spaces", "gym, running ,yoga", []string{"gym", "running", "yoga"}},
		{"stray commas", ",gym,,", []string{"gym"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Product{Activities: tt.stored}
			assert.Equal(t, tt.want, p.ActivityList())
		})
	}
}

func TestFromSourceRecord(t *testing.T) {
	price := 1499.0
	rec := models.SourceRecord{
		Title:      "Studio Yoga Leggings",
		Slug:       "studio-yoga-leggings",
		ProductURL: "https://hunnit.com/products/studio-yoga-leggings",
		Price:      &price,
		Currency:   "INR",
		Category:   "leggings",
		Activities: []string{"gym", "yoga"},
	}

	p := FromSourceRecord(rec)
	assert.Equal(t, int64(0), p.ID, "id is assigned by the database")
	assert.Equal(t, rec.Slug, p.Slug)
	assert.Equal(t, "gym,yoga", p.Activities)
	assert.Equal(t, []string{"gym", "yoga"}, p.ActivityList())
}
