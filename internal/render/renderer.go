// Package render fills the page's sections with data from the backend.
package render

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"folio.dev/internal/animate"
	"folio.dev/internal/api"
	"folio.dev/internal/dom"
	"folio.dev/internal/models"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

// Status says what a renderer did to its section.
type Status int

const (
	// StatusSkipped means the section's container is not on the page.
	StatusSkipped Status = iota
	// StatusRendered means the container now holds the fetched items.
	StatusRendered
	// StatusFallback means the container now holds the "unable to load" notice.
	StatusFallback
	// StatusUnchanged means nothing was written (stats without data).
	StatusUnchanged
)

func (s Status) String() string {
	switch s {
	case StatusSkipped:
		return "skipped"
	case StatusRendered:
		return "rendered"
	case StatusFallback:
		return "fallback"
	case StatusUnchanged:
		return "unchanged"
	}
	return "unknown"
}

// Container classes of the list sections.
const (
	ProjectsContainer       = "projects-grid"
	SkillsContainer         = "skills-grid"
	ExperienceContainer     = "experience-timeline"
	EducationContainer      = "education-timeline"
	CertificationsContainer = "certifications-grid"
)

type section struct {
	name      string // template name and fallback wording
	container string
	endpoint  string
}

var (
	projectsSection       = section{"projects", ProjectsContainer, api.EndpointProjects}
	skillsSection         = section{"skills", SkillsContainer, api.EndpointSkills}
	experienceSection     = section{"experience", ExperienceContainer, api.EndpointExperience}
	educationSection      = section{"education", EducationContainer, api.EndpointEducation}
	certificationsSection = section{"certifications", CertificationsContainer, api.EndpointCertifications}
)

// Renderer writes fetched entities into a document.
type Renderer struct {
	doc      *dom.Document
	client   *api.Client
	observer *animate.Observer
	logger   *zap.Logger
}

func New(doc *dom.Document, client *api.Client, observer *animate.Observer, logger *zap.Logger) *Renderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Renderer{doc: doc, client: client, observer: observer, logger: logger}
}

func (r *Renderer) Projects(ctx context.Context) Status {
	return renderList[models.Project](ctx, r, projectsSection)
}

func (r *Renderer) Skills(ctx context.Context) Status {
	return renderList[models.SkillCategory](ctx, r, skillsSection)
}

func (r *Renderer) Experience(ctx context.Context) Status {
	return renderList[models.ExperienceEntry](ctx, r, experienceSection)
}

func (r *Renderer) Education(ctx context.Context) Status {
	return renderList[models.EducationEntry](ctx, r, educationSection)
}

func (r *Renderer) Certifications(ctx context.Context) Status {
	return renderList[models.Certification](ctx, r, certificationsSection)
}

// Stats writes the three headline counters into the first, second and
// third .stat-item of their parent. Without data the counters keep the
// values baked into the page.
func (r *Renderer) Stats(ctx context.Context) Status {
	stats, ok := api.Fetch[*models.Stats](ctx, r.client, api.EndpointStats)
	if !ok || stats == nil {
		return StatusUnchanged
	}
	values := []int{stats.GithubProjects, stats.LiveProjects, stats.YearsExperience}
	for i, v := range values {
		number, err := r.doc.QueryFirst(fmt.Sprintf(".stat-item:nth-child(%d) .stat-number", i+1))
		if err != nil {
			r.logger.Error("locating stat counter", zap.Int("index", i+1), zap.Error(err))
			continue
		}
		number.SetText(strconv.Itoa(v))
	}
	return StatusRendered
}

// renderList replaces a container's content with one templated fragment per
// item and registers the new elements for reveal animations. A failed or
// empty fetch puts the fallback notice in the container instead.
func renderList[T any](ctx context.Context, r *Renderer, s section) Status {
	container := r.doc.First(s.container)
	if container == nil {
		r.logger.Debug("section container missing", zap.String("section", s.name))
		return StatusSkipped
	}

	items, ok := api.Fetch[[]T](ctx, r.client, s.endpoint)
	if !ok || len(items) == 0 {
		return r.fallback(container, s)
	}

	var b strings.Builder
	if err := templates.ExecuteTemplate(&b, s.name, items); err != nil {
		r.logger.Error("rendering section", zap.String("section", s.name), zap.Error(err))
		return r.fallback(container, s)
	}
	added, err := container.SetInnerHTML(b.String())
	if err != nil {
		r.logger.Error("replacing section content", zap.String("section", s.name), zap.Error(err))
		return r.fallback(container, s)
	}
	if r.observer != nil {
		r.observer.ObserveMatching(added)
	}
	r.logger.Debug("rendered section", zap.String("section", s.name), zap.Int("items", len(items)))
	return StatusRendered
}

func (r *Renderer) fallback(container *dom.Element, s section) Status {
	var b strings.Builder
	if err := templates.ExecuteTemplate(&b, "fallback", s.name); err != nil {
		r.logger.Error("rendering fallback", zap.String("section", s.name), zap.Error(err))
		return StatusFallback
	}
	if _, err := container.SetInnerHTML(b.String()); err != nil {
		r.logger.Error("replacing section content", zap.String("section", s.name), zap.Error(err))
	}
	return StatusFallback
}
