// Package report renders a human-readable markdown summary of a loaded
// survey dataset. The exact wording is a presentation concern, not a
// compatibility surface.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"gosurvey/domain/analysis"
	"gosurvey/domain/survey"
)

// Options controls report content
type Options struct {
	Title      string
	Threshold  float64  // adoption percentage worth a recommendation
	TopicKeys  []string // question keys to feature; empty = all multiple-choice questions
	MaxOptions int      // options listed per topic; 0 = 10
}

// Generate renders the markdown analysis report for a dataset
func Generate(ds *survey.Dataset, opts Options) (string, error) {
	if opts.Title == "" {
		opts.Title = "Survey Analysis Report"
	}
	if opts.MaxOptions <= 0 {
		opts.MaxOptions = 10
	}
	if opts.Threshold <= 0 {
		opts.Threshold = 30.0
	}

	topics, err := resolveTopics(ds, opts.TopicKeys)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", opts.Title)
	fmt.Fprintf(&b, "Generated on: %s\n\n", time.Now().UTC().Format("2006-01-02 15:04:05 UTC"))
	if ds.SnapshotID != "" {
		fmt.Fprintf(&b, "Snapshot: %s (%s)\n\n", ds.SnapshotID, ds.Source)
	}

	b.WriteString("## Executive Summary\n\n")
	fmt.Fprintf(&b, "- **Total Survey Questions**: %d\n", ds.Registry.Len())
	fmt.Fprintf(&b, "- **Total Responses Analyzed**: %d\n\n", ds.Responses.Len())

	b.WriteString("## Key Findings\n\n")
	type highlight struct {
		topic  string
		option string
		pct    float64
	}
	var highlights []highlight

	for _, q := range topics {
		dist, err := analysis.Distribution(ds, q.ID)
		if err != nil {
			return "", err
		}

		fmt.Fprintf(&b, "### %s\n\n", q.Label)
		if dist.TotalResponses == 0 {
			b.WriteString("No valid responses.\n\n")
			continue
		}

		entries := dist.SortedEntries()
		if len(entries) > opts.MaxOptions {
			entries = entries[:opts.MaxOptions]
		}
		for _, e := range entries {
			fmt.Fprintf(&b, "- **%s**: %.1f%% (%d developers)\n", e.Option, e.Percentage, e.Count)
		}
		b.WriteString("\n")

		for _, e := range dist.AboveThreshold(opts.Threshold) {
			highlights = append(highlights, highlight{topic: q.Label, option: e.Option, pct: e.Percentage})
		}
	}

	b.WriteString("## Recommendations\n\n")
	if len(highlights) == 0 {
		fmt.Fprintf(&b, "- No option reached the %.1f%% adoption threshold; broaden the survey sample before drawing conclusions.\n", opts.Threshold)
	} else {
		for _, h := range highlights {
			fmt.Fprintf(&b, "- **%s** leads in \"%s\" at %.1f%% adoption; prioritize support and tooling for it.\n",
				h.option, h.topic, h.pct)
		}
	}

	return b.String(), nil
}

// RenderHTML converts a markdown report to HTML for web display
func RenderHTML(md string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	doc := p.Parse([]byte(md))
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.Render(doc, renderer)
}

// resolveTopics picks the featured questions: explicit keys when given,
// otherwise every multiple-choice question in the dataset.
func resolveTopics(ds *survey.Dataset, keys []string) ([]survey.Question, error) {
	if len(keys) == 0 {
		var topics []survey.Question
		for _, q := range ds.Registry.All() {
			if q.Kind.IsMultiValue() {
				topics = append(topics, q)
			}
		}
		return topics, nil
	}

	topics := make([]survey.Question, 0, len(keys))
	for _, key := range keys {
		q, err := ds.Registry.LookupKey(key)
		if err != nil {
			return nil, err
		}
		topics = append(topics, q)
	}
	return topics, nil
}
