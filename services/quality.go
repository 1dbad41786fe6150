package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/inkwell-labs/inkwell-backend/config"
)

const (
	minQualityScore  = 1
	maxQualityScore  = 10
	publishThreshold = 5
	maxTags          = 6
)

// Categories is the fixed allow-list a post may be filed under. Provider
// output outside this list is coerced to DefaultCategory.
var Categories = []string{
	"technology",
	"engineering",
	"design",
	"productivity",
	"career",
	"tutorial",
	"opinion",
	"general",
}

const DefaultCategory = "general"

// Assessment is the quality verdict for a draft. IsPublishable is always
// recomputed locally from the score, never trusted from the provider.
type Assessment struct {
	Score         int      `json:"score"`
	Feedback      string   `json:"feedback"`
	IsPublishable bool     `json:"isPublishable"`
	Improvements  []string `json:"improvements"`
}

// Suggestions is the structured metadata proposal for a draft.
type Suggestions struct {
	Title           string   `json:"title"`
	Excerpt         string   `json:"excerpt"`
	Tags            []string `json:"tags"`
	Category        string   `json:"category"`
	Slug            string   `json:"slug"`
	QualityScore    int      `json:"qualityScore"`
	QualityFeedback string   `json:"qualityFeedback"`
	IsPublishable   bool     `json:"isPublishable"`
}

// completer is the minimal surface the gate needs from a generative text
// provider.
type completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type llmCompleter struct {
	model llms.Model
}

func (c llmCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, c.model, prompt, llms.WithTemperature(0.2))
}

// QualityGate scores draft content and proposes publish metadata. Provider
// failures never surface to the caller: every path degrades to a
// deterministic heuristic assessment.
type QualityGate struct {
	completer completer
	timeout   time.Duration
	logger    zerolog.Logger
}

func NewQualityGate(cfg map[string]string) *QualityGate {
	logger := log.With().Str("serviceName", "qualityGate").Logger()

	gate := &QualityGate{
		timeout: config.GetDuration(cfg, "AI_TIMEOUT_SECONDS", 20*time.Second),
		logger:  logger,
	}

	apiKey := config.GetString(cfg, "OPENAI_API_KEY", "")
	if apiKey == "" {
		logger.Warn().Msg("OPENAI_API_KEY not set, quality gate will use heuristic assessments only")
		return gate
	}

	model := config.GetString(cfg, "OPENAI_MODEL", "gpt-4o-mini")
	llm, err := openai.New(openai.WithToken(apiKey), openai.WithModel(model))
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize LLM client, falling back to heuristic assessments")
		return gate
	}

	gate.completer = llmCompleter{model: llm}
	return gate
}

// AssessQuality scores the draft on a 1-10 scale. It never returns an
// error: provider problems fall back to the heuristic assessment.
func (g *QualityGate) AssessQuality(ctx context.Context, content string) Assessment {
	if g.completer == nil {
		return heuristicAssessment(content)
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	raw, err := g.completer.Complete(ctx, assessPrompt(content))
	if err != nil {
		g.logger.Warn().Err(err).Msg("Quality assessment provider call failed, using heuristic fallback")
		return heuristicAssessment(content)
	}

	var parsed struct {
		Score        float64  `json:"score"`
		Feedback     string   `json:"feedback"`
		Improvements []string `json:"improvements"`
	}
	if err := json.Unmarshal([]byte(StripCodeFence(raw)), &parsed); err != nil {
		g.logger.Warn().Err(err).Str("response", raw).Msg("Unparseable quality assessment, using heuristic fallback")
		return heuristicAssessment(content)
	}

	score := clampScore(int(parsed.Score))
	feedback := strings.TrimSpace(parsed.Feedback)
	if feedback == "" {
		feedback = "No feedback provided."
	}

	return Assessment{
		Score:         score,
		Feedback:      feedback,
		IsPublishable: score >= publishThreshold,
		Improvements:  parsed.Improvements,
	}
}

// GenerateSuggestions proposes title, excerpt, tags, category and slug for
// the draft, plus the quality verdict. Never returns an error.
func (g *QualityGate) GenerateSuggestions(ctx context.Context, content string) Suggestions {
	if g.completer == nil {
		return heuristicSuggestions(content)
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	raw, err := g.completer.Complete(ctx, suggestPrompt(content))
	if err != nil {
		g.logger.Warn().Err(err).Msg("Suggestion provider call failed, using heuristic fallback")
		return heuristicSuggestions(content)
	}

	var parsed struct {
		Title    string   `json:"title"`
		Excerpt  string   `json:"excerpt"`
		Tags     []string `json:"tags"`
		Category string   `json:"category"`
		Slug     string   `json:"slug"`
		Score    float64  `json:"score"`
		Feedback string   `json:"feedback"`
	}
	if err := json.Unmarshal([]byte(StripCodeFence(raw)), &parsed); err != nil {
		g.logger.Warn().Err(err).Str("response", raw).Msg("Unparseable suggestions, using heuristic fallback")
		return heuristicSuggestions(content)
	}

	score := clampScore(int(parsed.Score))
	slug := NormalizeSlug(parsed.Slug)
	if slug == "" {
		slug = NormalizeSlug(parsed.Title)
	}

	return Suggestions{
		Title:           strings.TrimSpace(parsed.Title),
		Excerpt:         strings.TrimSpace(parsed.Excerpt),
		Tags:            NormalizeTags(parsed.Tags),
		Category:        coerceCategory(parsed.Category),
		Slug:            slug,
		QualityScore:    score,
		QualityFeedback: strings.TrimSpace(parsed.Feedback),
		IsPublishable:   score >= publishThreshold,
	}
}

func assessPrompt(content string) string {
	return fmt.Sprintf(`You are a blog editor. Rate the draft below for publication quality.
Respond with a single JSON object, no prose, no markdown fences:
{"score": <integer 1-10>, "feedback": "<one paragraph>", "improvements": ["<suggestion>", ...]}

Draft:
%s`, content)
}

func suggestPrompt(content string) string {
	return fmt.Sprintf(`You are a blog editor. Propose publication metadata for the draft below.
The category must be one of: %s.
Respond with a single JSON object, no prose, no markdown fences:
{"title": "...", "excerpt": "<max 160 chars>", "tags": ["..."], "category": "...", "slug": "<lowercase-hyphenated>", "score": <integer 1-10>, "feedback": "<one paragraph>"}

Draft:
%s`, strings.Join(Categories, ", "), content)
}

// StripCodeFence removes a wrapping markdown code fence from provider
// output, if present.
func StripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```")
	// Drop a language hint such as "json" on the opening fence
	if idx := strings.Index(s, "\n"); idx >= 0 {
		firstLine := strings.TrimSpace(s[:idx])
		if len(firstLine) <= 10 && !strings.ContainsAny(firstLine, "{[") {
			s = s[idx+1:]
		}
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func clampScore(score int) int {
	if score < minQualityScore {
		return minQualityScore
	}
	if score > maxQualityScore {
		return maxQualityScore
	}
	return score
}

func coerceCategory(category string) string {
	category = strings.ToLower(strings.TrimSpace(category))
	for _, allowed := range Categories {
		if category == allowed {
			return category
		}
	}
	return DefaultCategory
}

// NormalizeSlug lowers the input and reduces it to [a-z0-9-] with single
// hyphen separators and no leading or trailing hyphen. Normalizing an
// already-normalized slug is a no-op.
func NormalizeSlug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen
	for _, r := range s {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// NormalizeTags lowercases, trims, dedupes (preserving order) and caps the
// tag list at maxTags.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	normalized := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		normalized = append(normalized, tag)
		if len(normalized) == maxTags {
			break
		}
	}
	return normalized
}

// heuristicAssessment is the deterministic fallback when the provider is
// unreachable, unconfigured, or returns garbage. Longer, structured drafts
// score higher; very short plain text stays below the publish threshold.
func heuristicAssessment(content string) Assessment {
	words := len(strings.Fields(content))
	hasCode := strings.Contains(content, "```")
	hasHeadings := false
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			hasHeadings = true
			break
		}
	}

	score := 1
	if words >= 50 {
		score += 2
	}
	if words >= 300 {
		score += 2
	}
	if hasCode {
		score++
	}
	if hasHeadings {
		score++
	}
	score = clampScore(score)

	var improvements []string
	if words < 300 {
		improvements = append(improvements, "Expand the draft; aim for at least 300 words.")
	}
	if !hasCode {
		improvements = append(improvements, "Consider adding a code example if the topic is technical.")
	}
	if !hasHeadings {
		improvements = append(improvements, "Break the draft into sections with headings.")
	}

	return Assessment{
		Score:         score,
		Feedback:      fmt.Sprintf("Automated assessment: %d words, code blocks: %t, headings: %t.", words, hasCode, hasHeadings),
		IsPublishable: score >= publishThreshold,
		Improvements:  improvements,
	}
}

func heuristicSuggestions(content string) Suggestions {
	assessment := heuristicAssessment(content)

	title := ""
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "#"))
		if line != "" {
			title = line
			break
		}
	}
	if title == "" {
		title = "Untitled draft"
	}

	plain := strings.Join(strings.Fields(content), " ")
	excerpt := plain
	if len(excerpt) > 160 {
		excerpt = strings.TrimSpace(excerpt[:160])
	}

	return Suggestions{
		Title:           title,
		Excerpt:         excerpt,
		Tags:            nil,
		Category:        DefaultCategory,
		Slug:            NormalizeSlug(title),
		QualityScore:    assessment.Score,
		QualityFeedback: assessment.Feedback,
		IsPublishable:   assessment.IsPublishable,
	}
}
