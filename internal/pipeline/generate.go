package pipeline

import (
	"context"
	"strings"
	"time"

	"resumelens/internal/ai"
	"resumelens/internal/analysis"
	"resumelens/internal/types"
)

// SuggestContent generates starter resume content for a role and parses
// the bulleted response into structured fields. Lines the model returns
// outside the requested format are dropped.
func (p *Pipeline) SuggestContent(ctx context.Context, jobTitle string, yearsExperience int) types.SuggestedContent {
	started := time.Now()

	response := p.suggest(ctx, "suggest_content", ai.SuggestContentPrompt(jobTitle, yearsExperience))
	lines := strings.Split(response, "\n")

	var content types.SuggestedContent
	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "- Education:"):
			content.Education = analysis.Sanitize(strings.TrimSpace(strings.TrimPrefix(line, "- Education:")))
		case strings.HasPrefix(line, "- Experience:"):
			content.Experience = analysis.Sanitize(collectBullets(lines, "Experience", 3))
		case strings.HasPrefix(line, "- Skills:"):
			content.Skills = analysis.Sanitize(collectBullets(lines, "Skills", 5))
		}
	}

	p.record(ctx, "suggest_content", true, started)
	return content
}

// collectBullets gathers bullet lines that do not belong to the named
// header, capped at limit.
func collectBullets(lines []string, exclude string, limit int) string {
	var bullets []string
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "- ") && !strings.Contains(trimmed, exclude) {
			bullets = append(bullets, trimmed)
			if len(bullets) == limit {
				break
			}
		}
	}
	return strings.Join(bullets, "\n")
}

// EnhanceSection rewrites a single resume section to be concise and
// ATS-friendly.
func (p *Pipeline) EnhanceSection(ctx context.Context, section, content, jobTitle string) string {
	started := time.Now()
	enhanced := p.suggest(ctx, "enhance_section", ai.EnhanceSectionPrompt(section, content, jobTitle))
	p.record(ctx, "enhance_section", true, started)
	return analysis.Sanitize(enhanced)
}

// Roast produces a comedic critique of the resume at the given severity.
// Failures never surface as errors; the caller always gets a roast.
func (p *Pipeline) Roast(ctx context.Context, doc types.Document, level string) string {
	started := time.Now()

	text, err := p.extractor.Extract(ctx, doc)
	if err != nil {
		p.logger.Warn("Roast extraction failed", "error", err.Error())
		p.record(ctx, "resume_roast", false, started)
		return brokenResumeRoast
	}
	if strings.TrimSpace(text) == "" {
		p.record(ctx, "resume_roast", true, started)
		return blankResumeRoast
	}

	missingSections := analysis.MissingSections(text)
	avgSentenceLength := analysis.AvgSentenceLength(text)

	roast := p.suggest(ctx, "resume_roast",
		ai.RoastPrompt(text, missingSections, avgSentenceLength, level))

	p.record(ctx, "resume_roast", true, started)
	return analysis.Sanitize(roast)
}
