package generation

import (
	"fmt"
	"strings"

	"resume-builder/internal/profiles"
)

// Section is one independently generated unit of the resume. Kind is the
// wire name ("summary", "experience", "project"); Index and the display
// names only carry meaning for the repeated kinds.
type Section struct {
	Kind        string
	Title       string
	Prompt      string
	Index       int
	CompanyName string
	ProjectName string
}

// Decompose splits the profile document into the fixed section order:
// one summary, one section per work experience, one per project. Prompts
// constrain the model to reword stored content toward the job description
// without inventing facts; instruction, when present, is appended as an
// additional requirement.
func Decompose(details profiles.Details, jobDescription, instruction string) []Section {
	sections := make([]Section, 0, 1+len(details.Experiences)+len(details.Projects))

	sections = append(sections, Section{
		Kind:   "summary",
		Title:  "Professional Summary",
		Prompt: summaryPrompt(details.UserProfile, jobDescription, instruction),
	})

	for i, exp := range details.Experiences {
		sections = append(sections, Section{
			Kind:        "experience",
			Title:       fmt.Sprintf("Work Experience %d", i+1),
			Prompt:      experiencePrompt(exp, jobDescription, instruction),
			Index:       i,
			CompanyName: exp.CompanyName,
		})
	}

	for i, proj := range details.Projects {
		sections = append(sections, Section{
			Kind:        "project",
			Title:       fmt.Sprintf("Project %d", i+1),
			Prompt:      projectPrompt(proj, jobDescription, instruction),
			Index:       i,
			ProjectName: proj.Name,
		})
	}

	return sections
}

func summaryPrompt(up profiles.UserProfile, jobDescription, instruction string) string {
	var b strings.Builder
	fmt.Fprintf(&b, `IMPORTANT: Use ONLY the user's bio and introduction provided below. Do NOT create or invent any information.

Job Description:
%s

User's Bio:
%s

User's Introduction:
%s

Task: Create a professional summary by combining the user's bio and introduction.

REQUIREMENTS:
- Combine the user's bio and introduction into a short professional summary
- Maximum 3 lines only
- Reword the combined bio/introduction to align with the job description's requirements and terminology
- Use keywords and language from the job description while maintaining the user's actual background
- Keep it concise and impactful (max 3 lines)
- Do NOT add any information that is not in the provided bio or introduction
- Output ONLY the summary text, no headings or extra formatting`,
		jobDescription, deref(up.Bio), deref(up.Introduction))
	appendInstruction(&b, instruction)
	return b.String()
}

func experiencePrompt(exp profiles.Experience, jobDescription, instruction string) string {
	var b strings.Builder
	fmt.Fprintf(&b, `IMPORTANT: Generate ONLY the description for this work experience. Do NOT include company name, job title, location, dates, or technologies.

Job Description:
%s

Work Experience Details:
Company: %s
Role: %s
Original Description: %s

Task: Generate a professional description for this work experience that aligns with the job description.

REQUIREMENTS:
- Maintain similar level of detail as the original description
- Use keywords and terminology from the job description
- Generate response in new lines with one point per line
- Each point should be NOT more than 2 lines (not in one paragraph)
- Do NOT include company name, job title, location, dates, or technologies
- Do NOT create or invent any experiences
- Do NOT create or invent any information not in the original description
- Output ONLY the description points, one per line, nothing else`,
		jobDescription, exp.CompanyName, deref(exp.Role), deref(exp.Description))
	appendInstruction(&b, instruction)
	return b.String()
}

func projectPrompt(proj profiles.Project, jobDescription, instruction string) string {
	var b strings.Builder
	fmt.Fprintf(&b, `CRITICAL: Generate ONLY the description for this project. Do NOT include project name, technologies, links, or dates.

Job Description:
%s

Project Details:
Name: %s
Original Description: %s

Task: Generate a professional description for this project that aligns with the job description.

REQUIREMENTS:
- Maintain similar level of detail as the original description
- Use keywords and wordings from the job description while maintaining actual project details
- Do NOT add or remove projects
- Do NOT create, invent, or generate any projects that are not in the user's actual project list
- Generate response in new lines with one point per line
- Each point should be NOT more than 2 lines (not in one paragraph)
- Do NOT include project name, technologies, links, or dates
- Output ONLY the description points, one per line, nothing else`,
		jobDescription, proj.Name, deref(proj.Description))
	appendInstruction(&b, instruction)
	return b.String()
}

func appendInstruction(b *strings.Builder, instruction string) {
	if strings.TrimSpace(instruction) == "" {
		return
	}
	fmt.Fprintf(b, "\n\nAdditional instruction from the user:\n%s", strings.TrimSpace(instruction))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
