package services

import (
	"fmt"
	"strings"
	"text/template"
)

const screeningTemplate = `You are an expert resume screener. Extract key details from the following resume text:

Resume:
{{.resume_text}}

Compare it with the given job description:
{{.job_description}}

Provide a structured JSON response with skills, experience, education, score, and missing skills.
Use exactly this shape and return only the JSON object:
{
  "skills": [string],
  "experience": string,
  "education": string,
  "score": number between 0 and 100,
  "missing_skills": [string]
}`

const feedbackTemplate = `Suggest skills to improve for this candidate based on missing skills: {{.missing_skills}}`

type PromptBuilder struct {
	screening *template.Template
	feedback  *template.Template
}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{
		screening: template.Must(template.New("screening").Option("missingkey=error").Parse(screeningTemplate)),
		feedback:  template.Must(template.New("feedback").Option("missingkey=error").Parse(feedbackTemplate)),
	}
}

// BuildScreeningPrompt renders the screening prompt. Both variables must be
// supplied, though either may be empty.
func (pb *PromptBuilder) BuildScreeningPrompt(vars map[string]string) (string, error) {
	return render(pb.screening, vars)
}

// BuildFeedbackPrompt creates the improvement-suggestion prompt for a rejected candidate
func (pb *PromptBuilder) BuildFeedbackPrompt(missingSkills []string) (string, error) {
	return render(pb.feedback, map[string]string{"missing_skills": formatSkillList(missingSkills)})
}

// formatSkillList renders skills as a bracketed list of quoted items, e.g.
// ['Docker', 'LangChain']; an empty list renders as [].
func formatSkillList(skills []string) string {
	quoted := make([]string, 0, len(skills))
	for _, skill := range skills {
		if strings.Contains(skill, "'") && !strings.Contains(skill, `"`) {
			quoted = append(quoted, `"`+skill+`"`)
			continue
		}
		quoted = append(quoted, "'"+strings.ReplaceAll(skill, "'", `\'`)+"'")
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

func render(tmpl *template.Template, vars map[string]string) (string, error) {
	var sb strings.Builder
	if err := tmpl.Execute(&sb, vars); err != nil {
		return "", fmt.Errorf("failed to render %s prompt: %w", tmpl.Name(), err)
	}
	return sb.String(), nil
}
