package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDocument_FullProduct(t *testing.T) {
	doc := BuildDocument(
		"Cloud Soft Sweatshirt",
		"A relaxed fit sweatshirt.",
		"Brushed fleece\nKangaroo pocket",
		"sweatshirts",
		[]string{"all-day", "casual", "meeting-friendly"},
	)

	want := "Title: Cloud Soft Sweatshirt\n" +
		"Category: sweatshirts\n" +
		"Activities: all-day, casual, meeting-friendly\n" +
		"Usage: works for both meetings and casual settings; great for everyday casual wear\n" +
		"Description: A relaxed fit sweatshirt.\n" +
		"Features: Brushed fleece\nKangaroo pocket"
	assert.Equal(t, want, doc)
}

func TestBuildDocument_MinimalProduct(t *testing.T) {
	doc := BuildDocument("Basic Tee", "", "", "", nil)

	want := "Title: Basic Tee\n" +
		"Category: N/A\n" +
		"Activities: N/A"
	assert.Equal(t, want, doc)
}

func TestBuildDocument_OmittedFieldsLeaveNoBlankLines(t *testing.T) {
	doc := BuildDocument("Basic Tee", "", "", "shorts", []string{"running"})

	for _, line := range strings.Split(doc, "\n") {
		assert.NotEmpty(t, line)
	}
	assert.NotContains(t, doc, "Description:")
	assert.NotContains(t, doc, "Features:")
	assert.NotContains(t, doc, "Usage:")
}

func TestBuildDocument_UsagePriorityOrder(t *testing.T) {
	doc := BuildDocument("Trail Jogger", "", "", "joggers",
		[]string{"travel", "gym", "casual", "meeting-friendly"})

	require.Contains(t, doc, "Usage: ")
	assert.Contains(t, doc, "Usage: works for both meetings and casual settings; "+
		"great for everyday casual wear; suitable for gym and training; "+
		"comfortable for travel and long days")
}

func TestBuildDocument_Deterministic(t *testing.T) {
	acts := []string{"casual", "gym"}
	first := BuildDocument("Flex Short", "desc", "feat", "shorts", acts)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, BuildDocument("Flex Short", "desc", "feat", "shorts", acts))
	}
}
