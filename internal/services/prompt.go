package services

import "fmt"

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildResumeAnalysisPrompt embeds the resume text in the fixed instruction
// template. The JSON shape requested here is the structured contract the
// analysis client parses responses against.
func (pb *PromptBuilder) BuildResumeAnalysisPrompt(resumeText string) string {
	return fmt.Sprintf(`You are an expert resume analyzer. Analyze the following resume text and extract the requested information.
Also, provide a rating and actionable feedback.

Resume Text:
"""
%s
"""

Please return a JSON object with the following structure:
{
  "personalDetails": {
    "name": "string",
    "email": "string",
    "phone": "string",
    "linkedinUrl": "string or null",
    "portfolioUrl": "string or null"
  },
  "resumeContent": {
    "summaryObjective": "string",
    "workExperience": [
      {
        "title": "string",
        "company": "string",
        "dates": "string",
        "description": "string"
      }
    ],
    "education": [
      {
        "degree": "string",
        "institution": "string",
        "dates": "string"
      }
    ],
    "projects": [
      {
        "name": "string",
        "description": "string",
        "technologies": "string"
      }
    ],
    "certifications": ["string"]
  },
  "skills": {
    "technicalSkills": ["string"],
    "softSkills": ["string"]
  },
  "aiFeedback": {
    "rating": "number (1-10)",
    "improvementAreas": ["string"],
    "suggestedSkillsToLearn": ["string"]
  }
}
Ensure all array fields are arrays, even if empty. If a field cannot be found, use an appropriate empty value (e.g., "", [], or null).`,
		resumeText)
}
