// Package console renders the human-readable stdout transcript.
package console

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"

	"contextwatch/internal/domain"
	"contextwatch/internal/ports"
)

// Transcript writes the demo transcript to a single stream. Field order and
// wording of the content blocks are fixed; colors only decorate, never
// change content.
type Transcript struct {
	out       io.Writer
	useColors bool
	headline  *color.Color
	dim       *color.Color
}

var _ ports.Transcript = (*Transcript)(nil)

// New creates a Transcript writing to out.
func New(out io.Writer, useColors bool) *Transcript {
	return &Transcript{
		out:       out,
		useColors: useColors,
		headline:  color.New(color.Bold),
		dim:       color.New(color.Faint),
	}
}

// ResolveColors decides whether the transcript should use ANSI colors for
// the given mode (auto, always, never). Unknown modes behave like auto.
func ResolveColors(mode string) bool {
	switch mode {
	case "always":
		color.NoColor = false
		return true
	case "never":
		return false
	default:
		if _, ok := os.LookupEnv("NO_COLOR"); ok {
			return false
		}
		if os.Getenv("TERM") == "dumb" {
			return false
		}
		// fatih/color already detected whether stdout is a terminal.
		return !color.NoColor
	}
}

// ServerNotice announces which server the run talks to.
func (t *Transcript) ServerNotice(serverURL string) {
	fmt.Fprintf(t.out, "Using Selerity Context API server at %s\n", serverURL)
}

// EntitySummary lists the entities a query resolved to, one bullet per match.
func (t *Transcript) EntitySummary(query string, matches []domain.EntityMatch) {
	fmt.Fprintf(t.out, "Query for '%s' will look for those entities:\n", query)
	for _, m := range matches {
		fmt.Fprintf(t.out, "* %s -> %s (%s, %s)\n", m.ID, m.Name, m.Type, m.Description)
	}
}

// BatchReceived reports how many recommendations the last poll returned.
func (t *Transcript) BatchReceived(count int) {
	fmt.Fprintf(t.out, "Received %d recommendations. (Printing only new ones.)\n", count)
}

// Item prints one content item block. The block is assembled first and
// written in one call so concurrent stderr logging cannot split it.
func (t *Transcript) Item(item domain.ContentItem, preview *domain.Preview) error {
	var b strings.Builder

	headline := item.Headline
	if t.useColors {
		headline = t.headline.Sprint(headline)
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "* %s\n", headline)
	b.WriteString("\n")
	fmt.Fprintf(&b, "  contentID: %s\n", item.ContentID)
	fmt.Fprintf(&b, "  contentType: %s\n", item.ContentType)
	fmt.Fprintf(&b, "  source: %s\n", item.Source)
	fmt.Fprintf(&b, "  timestamp: %d\n", item.Timestamp)
	fmt.Fprintf(&b, "  score: %s\n", strconv.FormatFloat(item.Score, 'g', -1, 64))
	fmt.Fprintf(&b, "  summary: %s\n", item.Summary)
	fmt.Fprintf(&b, "  socialInfo->author: %s\n", item.Author)
	fmt.Fprintf(&b, "  linkURL: %s\n", item.LinkURL)

	for _, rc := range item.Related {
		fmt.Fprintf(&b, "  related content: %s %s %s\n", rc.Relationship, rc.ContentType, rc.LinkURL)
	}

	if preview != nil {
		if preview.Title != "" {
			fmt.Fprintf(&b, "  preview title: %s\n", preview.Title)
		}
		if preview.Description != "" {
			fmt.Fprintf(&b, "  preview summary: %s\n", preview.Description)
		}
	}

	if _, err := io.WriteString(t.out, b.String()); err != nil {
		return fmt.Errorf("write item block: %w", err)
	}

	return nil
}

// PauseNotice announces the back-off before the next poll.
func (t *Transcript) PauseNotice(pause time.Duration) {
	line := fmt.Sprintf("Sleeping for %d seconds before asking for updated content items", int(pause/time.Second))
	if t.useColors {
		line = t.dim.Sprint(line)
	}
	fmt.Fprintln(t.out, line)
}

// SourcesSummary lists the sources the API key is entitled for.
func (t *Transcript) SourcesSummary(sources []string) {
	if len(sources) == 0 {
		fmt.Fprintln(t.out, "API key is not entitled for any source.")
		return
	}
	fmt.Fprintln(t.out, "API key is entitled for the following sources:")
	for _, source := range sources {
		fmt.Fprintf(t.out, "* %s\n", source)
	}
}
