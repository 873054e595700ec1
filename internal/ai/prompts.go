package ai

import (
	"fmt"
	"strings"
)

// SystemPrompt is the shared instruction for all review operations
const SystemPrompt = "You are an expert resume advisor. Provide concise, actionable feedback."

// StructureReviewPrompt asks the model to comment on resume structure.
// The suggestion count differs between the match and standalone review paths.
func StructureReviewPrompt(resumeText string, withJob bool) string {
	if withJob {
		return fmt.Sprintf("Analyze the structure of this resume:\n%s\n"+
			"Comment on missing sections like Experience, Education, or Skills in 1-2 concise sentences. "+
			"Then, provide 5-7 actionable suggestions as bullet points starting with '- '.", resumeText)
	}
	return fmt.Sprintf("Analyze the structure of this resume:\n%s\n"+
		"Comment on missing sections like Experience, Education, or Skills in 2-3 concise sentences. "+
		"Then, provide 3-5 actionable suggestions as bullet points starting with '- '.", resumeText)
}

// ReadabilityReviewPrompt asks the model to comment on clarity and sentence structure
func ReadabilityReviewPrompt(resumeText string, avgSentenceLength float64, withJob bool) string {
	if withJob {
		return fmt.Sprintf("Analyze the readability of this resume:\n%s\n"+
			"Average sentence length is %.1f words. "+
			"Provide feedback on clarity and sentence structure in 1-2 concise sentences. "+
			"Then, provide 5-7 actionable suggestions as bullet points starting with '- '.",
			resumeText, avgSentenceLength)
	}
	return fmt.Sprintf("Analyze the readability of this resume:\n%s\n"+
		"Average sentence length is %.1f words. "+
		"Provide feedback on clarity and sentence structure in 2-3 concise sentences. "+
		"Then, provide 3-5 actionable suggestions as bullet points starting with '- '.",
		resumeText, avgSentenceLength)
}

// ATSReviewPrompt asks for ATS compatibility feedback in a marker-delimited format
func ATSReviewPrompt(resumeText string) string {
	return fmt.Sprintf("You are an expert resume reviewer. Analyze this resume:\n%s\n"+
		"for ATS compatibility and overall quality. Provide feedback in the following format:\n"+
		"**ATS Readiness:**\n[Explain the ATS compatibility in 2-3 concise sentences.]\n"+
		"**Suggestions:**\n[Provide 3-5 actionable suggestions to improve structure, keyword usage, and readability as bullet points starting with '- '.]",
		resumeText)
}

// MatchReviewPrompt asks for resume/job comparison feedback in a marker-delimited format
func MatchReviewPrompt(resumeText, jobDescription string) string {
	return fmt.Sprintf("You are an expert resume reviewer. Compare this resume:\n%s\n"+
		"with this job description:\n%s. "+
		"Provide feedback in the following format:\n"+
		"**Match Quality and Suggestions for Improvement:**\n[Explain the match quality in 1-2 concise sentences. Then, provide 5-7 actionable suggestions as bullet points starting with '- '.]\n"+
		"**Overall Quality, Clarity, and Structure:**\n[Analyze the resume's overall quality, clarity, and structure in 1-2 concise sentences.]",
		resumeText, jobDescription)
}

// SuggestContentPrompt asks for starter resume content for a role
func SuggestContentPrompt(jobTitle string, yearsExperience int) string {
	return fmt.Sprintf("Generate a resume for a %s with %d years of experience. "+
		"Return in this format:\n"+
		"- Education: [One concise entry]\n"+
		"- Experience: [3 bullet points]\n"+
		"- Skills: [5 concise skills]",
		jobTitle, yearsExperience)
}

// EnhanceSectionPrompt asks for a rewritten version of a single resume section
func EnhanceSectionPrompt(section, content, jobTitle string) string {
	context := ""
	if jobTitle != "" {
		context = fmt.Sprintf(" for a %s", jobTitle)
	}
	return fmt.Sprintf("Rewrite this %s section%s to be concise, professional, and ATS-friendly:\n%s\n"+
		"Return the enhanced version only, no extra text.",
		section, context, content)
}

// Roast severity levels
const (
	RoastLevelMild  = "mild"
	RoastLevelSpicy = "spicy"
	RoastLevelBurnt = "burnt"
)

var roastToneInstructions = map[string]string{
	RoastLevelMild:  "Provide a gentle, lighthearted roast that's encouraging but still funny.",
	RoastLevelSpicy: "Provide a moderately sarcastic roast that's humorous but not too harsh.",
	RoastLevelBurnt: "Provide a savage, no-holds-barred roast that's still funny but very critical.",
}

// RoastPrompt asks for a comedic critique of the resume at the given severity.
// Unknown levels fall back to the spicy tone.
func RoastPrompt(resumeText string, missingSections []string, avgSentenceLength float64, level string) string {
	tone, ok := roastToneInstructions[strings.ToLower(level)]
	if !ok {
		tone = roastToneInstructions[RoastLevelSpicy]
	}

	missing := "None"
	if len(missingSections) > 0 {
		missing = strings.Join(missingSections, ", ")
	}

	return fmt.Sprintf("You're a stand-up comedian roasting this resume:\n%s\n"+
		"Missing sections: %s.\n"+
		"Average sentence length is %.1f words.\n"+
		"%s\n"+
		"Provide a concise roast in EXACTLY the following format (use the exact section headers and prefixes):\n"+
		"- **Structure**: Roast the layout, formatting, and missing sections in 2-3 sentences.\n"+
		"- **Readability**: Roast the clarity, jargon, and verbosity in 2-3 sentences.\n"+
		"- **Projects**: Roast the projects section in 2-3 sentences.\n"+
		"- **Skills**: Roast the technical skills in 2-3 sentences.\n"+
		"- **Overall Vibe**: Summarize the overall impression sarcastically in 2-3 sentences.\n"+
		"Ensure each section is short and punchy. Do not deviate from the specified format, even if a section is missing in the resume.",
		resumeText, missing, avgSentenceLength, tone)
}
