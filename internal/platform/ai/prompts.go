package ai

import (
	"fmt"
	"strings"
)

// maxPromptText bounds the resume text sent to the model.
const maxPromptText = 20000

func jobDescriptionPrompt(job JobBrief) string {
	var b strings.Builder
	b.WriteString("You are an experienced recruiter writing a job posting.\n")
	b.WriteString("Write a compelling, inclusive job description in plain text with sections for About the Role, Responsibilities, Requirements and What We Offer.\n")
	b.WriteString("Do not invent salary figures or company names that are not given.\n\n")
	writeJobFacts(&b, job)
	return b.String()
}

func jobScorePrompt(job JobBrief) string {
	var b strings.Builder
	b.WriteString("You review job postings for clarity, completeness and inclusiveness.\n")
	b.WriteString("Rate the posting below from 0 to 100.\n")
	b.WriteString("Respond with JSON only, in the form {\"score\": <integer>}.\n\n")
	writeJobFacts(&b, job)
	return b.String()
}

func matchPrompt(job JobBrief, candidate CandidateBrief) string {
	var b strings.Builder
	b.WriteString("You assess how well a candidate fits a job.\n")
	b.WriteString("Respond with JSON only, in the form {\"score\": <integer 0-100>}.\n\n")
	b.WriteString("JOB\n")
	writeJobFacts(&b, job)
	b.WriteString("\nCANDIDATE\n")
	writeField(&b, "Name", candidate.Name)
	writeField(&b, "Current position", candidate.CurrentPosition)
	writeField(&b, "Experience", candidate.Experience)
	writeField(&b, "Skills", strings.Join(candidate.Skills, ", "))
	for _, e := range candidate.Education {
		line := strings.TrimSpace(strings.Join(nonEmpty(e.Degree, e.Field, e.Institution), ", "))
		if e.Year != nil {
			line = fmt.Sprintf("%s (%d)", line, *e.Year)
		}
		writeField(&b, "Education", line)
	}
	return b.String()
}

const resumeInstructions = `Extract the candidate's details from the resume.
Respond with a single JSON object and nothing else, using exactly these keys:
{"firstName": "", "lastName": "", "email": "", "phone": "", "currentPosition": "", "location": "", "experience": "", "skills": [], "education": [{"degree": "", "field": "", "institution": "", "year": null}]}
Use an empty string or empty array when a value is not present. Do not guess.
`

func resumePrompt(text string) string {
	if len(text) > maxPromptText {
		text = text[:maxPromptText]
	}
	return resumeInstructions + "\nRESUME\n" + text + "\n"
}

func writeJobFacts(b *strings.Builder, job JobBrief) {
	writeField(b, "Title", job.Title)
	writeField(b, "Department", job.Department)
	writeField(b, "Location", job.Location)
	writeField(b, "Employment type", humanize(job.EmploymentType))
	writeField(b, "Work location", humanize(job.WorkLocation))
	writeField(b, "Experience level", humanize(job.ExperienceLevel))
	if job.SalaryMin != nil && job.SalaryMax != nil {
		writeField(b, "Salary range", fmt.Sprintf("%d - %d", *job.SalaryMin, *job.SalaryMax))
	}
	writeField(b, "Skills", strings.Join(job.Skills, ", "))
	writeField(b, "Description", job.Description)
	writeField(b, "Requirements", job.Requirements)
	writeField(b, "Responsibilities", job.Responsibilities)
}

func writeField(b *strings.Builder, label, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	b.WriteString(label)
	b.WriteString(": ")
	b.WriteString(value)
	b.WriteString("\n")
}

func humanize(value string) string {
	return strings.ReplaceAll(value, "_", " ")
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, strings.TrimSpace(v))
		}
	}
	return out
}
