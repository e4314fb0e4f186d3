package console

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contextwatch/internal/domain"
)

func fullItem() domain.ContentItem {
	return domain.ContentItem{
		ContentID:   "c1",
		Headline:    "Fed raises rates",
		ContentType: "NEWS",
		Source:      "reuters",
		Timestamp:   1462462929,
		Score:       0.97,
		Summary:     "The Fed raised rates.",
		Author:      "jdoe",
		LinkURL:     "https://example.com/a",
		Related: []domain.RelatedContent{
			{Relationship: "STORY_OF", ContentType: "NEWS", LinkURL: "https://example.com/b"},
		},
	}
}

func TestTranscriptItemBlock(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	tr := New(&buf, false)

	require.NoError(t, tr.Item(fullItem(), nil))

	want := "\n" +
		"* Fed raises rates\n" +
		"\n" +
		"  contentID: c1\n" +
		"  contentType: NEWS\n" +
		"  source: reuters\n" +
		"  timestamp: 1462462929\n" +
		"  score: 0.97\n" +
		"  summary: The Fed raised rates.\n" +
		"  socialInfo->author: jdoe\n" +
		"  linkURL: https://example.com/a\n" +
		"  related content: STORY_OF NEWS https://example.com/b\n"
	assert.Equal(t, want, buf.String())
}

func TestTranscriptItemBlockEmptyFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	tr := New(&buf, false)

	item := fullItem()
	item.Author = ""
	item.Related = nil

	require.NoError(t, tr.Item(item, nil))

	assert.Contains(t, buf.String(), "  socialInfo->author: \n")
	assert.NotContains(t, buf.String(), "related content:")
}

func TestTranscriptItemBlockWithPreview(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	tr := New(&buf, false)

	preview := &domain.Preview{Title: "Fed article", Description: "Rates are up."}
	require.NoError(t, tr.Item(fullItem(), preview))

	out := buf.String()
	assert.Contains(t, out, "  preview title: Fed article\n")
	assert.Contains(t, out, "  preview summary: Rates are up.\n")

	// Preview lines come after the fixed block.
	assert.Greater(t, len(out), 0)
	assert.True(t, bytes.HasSuffix(buf.Bytes(), []byte("  preview summary: Rates are up.\n")))
}

func TestTranscriptBatchAndPauseLines(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	tr := New(&buf, false)

	tr.BatchReceived(10)
	tr.PauseNotice(30 * time.Second)

	want := "Received 10 recommendations. (Printing only new ones.)\n" +
		"Sleeping for 30 seconds before asking for updated content items\n"
	assert.Equal(t, want, buf.String())
}

func TestTranscriptEntitySummary(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	tr := New(&buf, false)

	tr.EntitySummary("apple", []domain.EntityMatch{
		{ID: "e1", Name: "Apple Inc.", Type: "COMPANY", Description: "Cupertino fruit vendor"},
		{ID: "e2", Name: "apple", Type: "TOPIC", Description: "the fruit"},
	})

	want := "Query for 'apple' will look for those entities:\n" +
		"* e1 -> Apple Inc. (COMPANY, Cupertino fruit vendor)\n" +
		"* e2 -> apple (TOPIC, the fruit)\n"
	assert.Equal(t, want, buf.String())
}

func TestTranscriptServerNotice(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	tr := New(&buf, false)

	tr.ServerNotice("https://context-api-test.seleritycorp.com")

	assert.Equal(t,
		"Using Selerity Context API server at https://context-api-test.seleritycorp.com\n",
		buf.String())
}

func TestTranscriptSourcesSummary(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	tr := New(&buf, false)

	tr.SourcesSummary(nil)
	assert.Equal(t, "API key is not entitled for any source.\n", buf.String())

	buf.Reset()
	tr.SourcesSummary([]string{"reuters", "twitter"})
	want := "API key is entitled for the following sources:\n" +
		"* reuters\n" +
		"* twitter\n"
	assert.Equal(t, want, buf.String())
}

func TestRenderEntityTable(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := RenderEntityTable(&buf, []domain.EntityMatch{
		{ID: "e1", Name: "Apple Inc.", Type: "COMPANY", Description: "Cupertino fruit vendor"},
	})

	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "e1")
	assert.Contains(t, out, "Apple Inc.")
	assert.Contains(t, out, "COMPANY")
}
