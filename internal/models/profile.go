package models

// SkillCategory groups related skill labels under a heading.
type SkillCategory struct {
	Title  string   `json:"title"`
	Skills []string `json:"skills"`
}

// ExperienceEntry is one position on the experience timeline.
type ExperienceEntry struct {
	Period      string   `json:"period"`
	Title       string   `json:"title"`
	Company     string   `json:"company"`
	Location    string   `json:"location"`
	Description []string `json:"description"`
	Tags        []string `json:"tags"`
}

// EducationEntry is one item on the education timeline.
type EducationEntry struct {
	Period      string `json:"period"`
	Title       string `json:"title"`
	Institution string `json:"institution"`
	Location    string `json:"location"`
	Grade       string `json:"grade"`
}

// Certification is a credential card.
type Certification struct {
	Title       string `json:"title"`
	Issuer      string `json:"issuer"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Stats holds the headline counters shown in the about section.
type Stats struct {
	GithubProjects  int `json:"github_projects"`
	LiveProjects    int `json:"live_projects"`
	YearsExperience int `json:"years_experience"`
}
