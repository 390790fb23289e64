package models

import "fmt"

// AnalysisResult is the structured output contract with the Gemini analysis service.
// Field names match the JSON shape requested by the prompt exactly.
type AnalysisResult struct {
	PersonalDetails PersonalDetails `json:"personalDetails"`
	ResumeContent   ResumeContent   `json:"resumeContent"`
	Skills          Skills          `json:"skills"`
	AIFeedback      AIFeedback      `json:"aiFeedback"`
}

type PersonalDetails struct {
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Phone        string  `json:"phone"`
	LinkedinURL  *string `json:"linkedinUrl"`
	PortfolioURL *string `json:"portfolioUrl"`
}

type ResumeContent struct {
	SummaryObjective string           `json:"summaryObjective"`
	WorkExperience   []WorkExperience `json:"workExperience"`
	Education        []Education      `json:"education"`
	Projects         []Project        `json:"projects"`
	Certifications   []string         `json:"certifications"`
}

type WorkExperience struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Dates       string `json:"dates"`
	Description string `json:"description"`
}

type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Dates       string `json:"dates"`
}

type Project struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Technologies string `json:"technologies"`
}

type Skills struct {
	TechnicalSkills []string `json:"technicalSkills"`
	SoftSkills      []string `json:"softSkills"`
}

type AIFeedback struct {
	Rating                 *float64 `json:"rating"`
	ImprovementAreas       []string `json:"improvementAreas"`
	SuggestedSkillsToLearn []string `json:"suggestedSkillsToLearn"`
}

// Normalize forces every declared array field to a non-nil slice so that an
// accepted result always serializes arrays as arrays, never as null.
func (a *AnalysisResult) Normalize() {
	if a.ResumeContent.WorkExperience == nil {
		a.ResumeContent.WorkExperience = []WorkExperience{}
	}
	if a.ResumeContent.Education == nil {
		a.ResumeContent.Education = []Education{}
	}
	if a.ResumeContent.Projects == nil {
		a.ResumeContent.Projects = []Project{}
	}
	if a.ResumeContent.Certifications == nil {
		a.ResumeContent.Certifications = []string{}
	}
	if a.Skills.TechnicalSkills == nil {
		a.Skills.TechnicalSkills = []string{}
	}
	if a.Skills.SoftSkills == nil {
		a.Skills.SoftSkills = []string{}
	}
	if a.AIFeedback.ImprovementAreas == nil {
		a.AIFeedback.ImprovementAreas = []string{}
	}
	if a.AIFeedback.SuggestedSkillsToLearn == nil {
		a.AIFeedback.SuggestedSkillsToLearn = []string{}
	}
}

// Validate rejects a rating outside the 1-10 contract. A missing rating is valid.
func (a *AnalysisResult) Validate() error {
	if r := a.AIFeedback.Rating; r != nil && (*r < 1 || *r > 10) {
		return fmt.Errorf("rating %v outside range [1,10]", *r)
	}
	return nil
}

// Rating returns the denormalized rating copied onto the stored record, nil when
// the analysis carries none.
func (a *AnalysisResult) Rating() *float64 {
	if a == nil {
		return nil
	}
	return a.AIFeedback.Rating
}
