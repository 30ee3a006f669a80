package summarizer

import (
	"encoding/json"
	"fmt"
	"strings"

	"plannerx/internal/domain/entity"
)

// buildRankPrompt asks the model to order today's headlines by importance
// for a Slovak reader and answer with a bare JSON array of 0-based indices.
func buildRankPrompt(titles []string) string {
	var b strings.Builder
	b.WriteString("Here are news headlines from today. Rank them by importance/relevance for a Slovak user.\n")
	b.WriteString("Consider:\n")
	b.WriteString("- Slovakia/EU related news\n")
	b.WriteString("- Major world events\n")
	b.WriteString("- Economic/political impact\n")
	b.WriteString("- Breaking news vs routine updates\n\n")
	b.WriteString("Headlines:\n")
	for i, title := range titles {
		fmt.Fprintf(&b, "%d. %s\n", i+1, title)
	}
	b.WriteString("\nReturn only a JSON array of indices (0-based) in order of importance, max 10 items:")
	return b.String()
}

// buildNarrativePrompt asks for a structured Slovak narrative over the
// selected stories.
func buildNarrativePrompt(items []entity.NewsItem) string {
	var news strings.Builder
	for i, it := range items {
		content := it.Content
		if runes := []rune(content); len(runes) > itemContentLimit {
			content = string(runes[:itemContentLimit])
		}
		fmt.Fprintf(&news, "%d. %s\nSource: %s\nSummary: %s\nContent: %s\n\n",
			i+1, it.Title, it.Source, it.Summary, content)
	}

	var b strings.Builder
	b.WriteString("Create a comprehensive and informative summary of today's top news stories for a Slovak user.\n")
	b.WriteString("Focus on the most important developments, their implications, and provide rich context.\n\n")
	b.WriteString("News stories:\n")
	b.WriteString(news.String())
	b.WriteString("Provide a detailed summary in Slovak language, structured as:\n")
	b.WriteString("1. **Najdôležitejšie udalosti** - prehľad kľúčových správ s dôrazom na dopady\n")
	b.WriteString("2. **Detailnejšie informácie** - rozvinutie najdôležitejších tém s kontextom a súvislosťami\n")
	b.WriteString("3. **Trendy a súvislosti** - aké väčšie trendy alebo súvislosti tieto správy naznačujú\n\n")
	b.WriteString("Be objective, factual, and provide meaningful insights. Include specific details, numbers, and implications where relevant.\n")
	b.WriteString("Keep it under 800 words but be comprehensive rather than brief.")
	return b.String()
}

// parseIndices decodes the model's ranking answer. Code fences and leading
// prose are tolerated by extracting the first bracketed run; anything that
// does not decode to a JSON array of numbers is an error, which the caller
// treats as a rank fallback.
func parseIndices(answer string) ([]int, error) {
	raw := strings.TrimSpace(answer)

	start := strings.IndexByte(raw, '[')
	end := strings.LastIndexByte(raw, ']')
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("parseIndices: no JSON array in %q", raw)
	}

	var indices []int
	if err := json.Unmarshal([]byte(raw[start:end+1]), &indices); err != nil {
		return nil, fmt.Errorf("parseIndices: %w", err)
	}
	return indices, nil
}
