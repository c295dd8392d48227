package screening

import (
	"fmt"
	"strings"

	"hiretrack-backend/internal/jobs"
)

// Prompt context caps keep token spend bounded; the record fields are
// already clamped at ingestion, these are tighter per-prompt limits.
const (
	baselineContextLen    = 500
	coverLetterContextLen = 1000
	answerContextLen      = 500
)

func baselinePrompt(job jobs.Candidate, corpus string, prefs Preferences) string {
	var b strings.Builder
	b.WriteString("Analyze this job for filtering and baseline scoring.\n\n")
	fmt.Fprintf(&b, "CANDIDATE'S RESUME:\n%s\n\n", corpus)
	b.WriteString("JOB:\n")
	fmt.Fprintf(&b, "Title: %s\n", job.Title)
	fmt.Fprintf(&b, "Company: %s\n", job.Company)
	fmt.Fprintf(&b, "Location: %s\n", job.Location)
	fmt.Fprintf(&b, "Brief Description: %s\n\n", jobs.Truncate(job.RawText, baselineContextLen))
	b.WriteString("INSTRUCTIONS:\n")
	b.WriteString("1. LOCATION FILTER: Keep ONLY if location is:\n")
	b.WriteString("   - Remote (anywhere)\n")
	if prefs.Region != "" {
		fmt.Fprintf(&b, "   - %s Remote\n", prefs.Region)
	}
	if prefs.City != "" {
		fmt.Fprintf(&b, "   - %s (any arrangement: onsite, hybrid, remote)\n", prefs.City)
		fmt.Fprintf(&b, "   - Hybrid with %s option\n", prefs.City)
	}
	b.WriteString("\n2. SKILL LEVEL FILTER: Keep ONLY if skill level matches resume:\n")
	b.WriteString("   - Not too junior for the candidate's experience\n")
	b.WriteString("   - Not too senior (e.g., \"20+ years\", \"VP\", \"Director\")\n")
	b.WriteString("   - Tech stack has reasonable overlap with resume\n\n")
	b.WriteString("3. BASELINE SCORE (1-100) based on:\n")
	b.WriteString("   - Title match to candidate's background\n")
	b.WriteString("   - Company reputation/fit\n")
	b.WriteString("   - Location convenience (fully remote scores highest)\n")
	b.WriteString("   - Seniority alignment\n\n")
	b.WriteString("Return JSON only:\n")
	b.WriteString(`{"keep": <bool>, "baseline_score": <1-100>, "filter_reason": "kept: good location and skill match" OR "filtered: requires 15+ years"}`)
	return b.String()
}

func analysisPrompt(job jobs.JobRecord, corpus string) string {
	var b strings.Builder
	b.WriteString("Analyze job fit. Respond ONLY with valid JSON.\n\n")
	fmt.Fprintf(&b, "RESUME:\n%s\n\n", corpus)
	b.WriteString("JOB:\n")
	fmt.Fprintf(&b, "Title: %s\n", job.Title)
	fmt.Fprintf(&b, "Company: %s\n", job.Company)
	fmt.Fprintf(&b, "Location: %s\n", job.Location)
	fmt.Fprintf(&b, "Details: %s\n\n", job.RawText)
	b.WriteString("Return JSON:\n")
	b.WriteString(`{"qualification_score": <1-100>, "should_apply": <bool>, "strengths": ["..."], "gaps": ["..."], "recommendation": "...", "resume_to_use": "backend|cloud|fullstack"}`)
	return b.String()
}

func coverLetterPrompt(job jobs.JobRecord, analysis Analysis, corpus string) string {
	details := job.Description
	if details == "" {
		details = job.RawText
	}
	var b strings.Builder
	b.WriteString("Write a tailored cover letter (3-4 paragraphs, under 350 words).\n\n")
	b.WriteString("JOB:\n")
	fmt.Fprintf(&b, "Title: %s\n", job.Title)
	fmt.Fprintf(&b, "Company: %s\n", job.Company)
	fmt.Fprintf(&b, "Description: %s\n\n", jobs.Truncate(details, coverLetterContextLen))
	fmt.Fprintf(&b, "CANDIDATE RESUME:\n%s\n\n", corpus)
	fmt.Fprintf(&b, "KEY STRENGTHS TO HIGHLIGHT:\n%s\n\n", strings.Join(analysis.Strengths, ", "))
	b.WriteString("Write a professional, enthusiastic cover letter. Include:\n")
	b.WriteString("1. Strong opening expressing interest\n")
	b.WriteString("2. 2 paragraphs highlighting relevant experience and achievements\n")
	b.WriteString("3. Closing with call to action\n\n")
	b.WriteString("Write only the cover letter text (no subject line, no extra formatting):")
	return b.String()
}

func answerPrompt(job jobs.JobRecord, question string, analysis Analysis, corpus string) string {
	details := job.Description
	if details == "" {
		details = job.RawText
	}
	var b strings.Builder
	b.WriteString("Generate a strong interview answer for this question.\n\n")
	fmt.Fprintf(&b, "QUESTION: %s\n\n", question)
	b.WriteString("JOB CONTEXT:\n")
	fmt.Fprintf(&b, "Title: %s\n", job.Title)
	fmt.Fprintf(&b, "Company: %s\n", job.Company)
	fmt.Fprintf(&b, "Description: %s\n\n", jobs.Truncate(details, answerContextLen))
	fmt.Fprintf(&b, "CANDIDATE RESUME:\n%s\n\n", corpus)
	b.WriteString("ANALYSIS INSIGHTS:\n")
	fmt.Fprintf(&b, "Strengths: %s\n", strings.Join(analysis.Strengths, ", "))
	fmt.Fprintf(&b, "Gaps: %s\n\n", strings.Join(analysis.Gaps, ", "))
	b.WriteString("Generate a compelling 2-3 paragraph answer that:\n")
	b.WriteString("1. Directly answers the question\n")
	b.WriteString("2. Uses specific examples from the resume\n")
	b.WriteString("3. Connects to the job requirements\n")
	b.WriteString("4. Sounds natural and conversational (not rehearsed)\n")
	b.WriteString("5. Is honest but strategic about any weaknesses\n\n")
	b.WriteString("Write only the answer (2-3 paragraphs, 150-200 words):")
	return b.String()
}
