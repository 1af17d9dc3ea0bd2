package page

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"folio.dev/internal/animate"
	"folio.dev/internal/api"
	"folio.dev/internal/layout"
	"folio.dev/internal/render"
	"folio.dev/web"
)

var bodies = map[string]string{
	"/api/projects":       `{"success":true,"data":[{"title":"AccessVault","description":"d","icon":"fas fa-shield-alt","tags":["Go"],"links":[]}]}`,
	"/api/skills":         `{"success":true,"data":[{"title":"Languages","skills":["Go"]},{"title":"Data","skills":["SQL"]}]}`,
	"/api/experience":     `{"success":false,"message":"no rows"}`,
	"/api/education":      `{"success":true,"data":[{"period":"2019","title":"B.Tech","institution":"U","location":"L","grade":"A"}]}`,
	"/api/certifications": `{"success":true,"data":[]}`,
	"/api/stats":          `{"success":true,"data":{"github_projects":12,"live_projects":5,"years_experience":3}}`,
}

// home [0,700) about [700,1200) projects [1200,2000) skills [2000,2600)
// experience [2600,3200) education [3200,3800) certifications [3800,4400)
// contact [4400,5000)
func testLayout() *layout.Static {
	return &layout.Static{
		Viewport: 800,
		Sections: map[string]layout.Rect{
			"home":           {Top: 0, Height: 700},
			"about":          {Top: 700, Height: 500},
			"projects":       {Top: 1200, Height: 800},
			"skills":         {Top: 2000, Height: 600},
			"experience":     {Top: 2600, Height: 600},
			"education":      {Top: 3200, Height: 600},
			"certifications": {Top: 3800, Height: 600},
			"contact":        {Top: 4400, Height: 600},
		},
	}
}

type backend struct {
	inflight atomic.Int32
	peak     atomic.Int32
	contact  atomic.Int32
}

func (b *backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/contact" {
		b.contact.Add(1)
		w.Write([]byte(`{"success":true}`))
		return
	}
	n := b.inflight.Add(1)
	defer b.inflight.Add(-1)
	for {
		p := b.peak.Load()
		if n <= p || b.peak.CompareAndSwap(p, n) {
			break
		}
	}
	time.Sleep(20 * time.Millisecond)
	w.Write([]byte(bodies[r.URL.Path]))
}

func load(t *testing.T) (*Page, *backend) {
	t.Helper()
	return loadWith(t, testLayout())
}

func loadWith(t *testing.T, l layout.Layout) (*Page, *backend) {
	t.Helper()
	b := &backend{}
	srv := httptest.NewServer(b)
	t.Cleanup(srv.Close)

	p, err := Load(context.Background(), bytes.NewReader(web.Index()), Deps{
		Client: api.NewClient(srv.URL, time.Second, zap.NewNop()),
		Layout: l,
		Logger: zap.NewNop(),
	})
	require.NoError(t, err)
	return p, b
}

func TestLoadRendersAllSections(t *testing.T) {
	p, b := load(t)

	assert.Equal(t, Report{
		"projects":       render.StatusRendered,
		"skills":         render.StatusRendered,
		"experience":     render.StatusFallback,
		"education":      render.StatusRendered,
		"certifications": render.StatusFallback,
		"stats":          render.StatusRendered,
	}, p.Report)
	assert.Greater(t, b.peak.Load(), int32(1), "section fetches should overlap")

	assert.Len(t, p.Doc.All("project-card"), 1)
	assert.Len(t, p.Doc.All("skill-category"), 2)
	assert.Len(t, p.Doc.All("education-item"), 1)
	assert.Equal(t, 4, p.Observer.Len())

	var numbers []string
	for _, el := range p.Doc.All("stat-number") {
		numbers = append(numbers, el.Text())
	}
	assert.Equal(t, []string{"12", "5", "3"}, numbers)
	assert.Contains(t, p.Doc.First(render.ExperienceContainer).Text(), "Unable to load experience.")
}

func TestInitialHighlight(t *testing.T) {
	p, _ := load(t)

	id, ok := p.ActiveSection()
	require.True(t, ok)
	assert.Equal(t, "home", id)
	assert.Equal(t, "#home", p.Doc.First("active").Attr("href"))
}

func TestScrollAndClick(t *testing.T) {
	p, _ := load(t)

	p.Scroll(1300)
	id, _ := p.ActiveSection()
	assert.Equal(t, "projects", id)
	assert.True(t, p.Doc.ByID("navbar").HasClass("scrolled"))
	assert.True(t, p.Doc.First("project-card").HasClass(animate.Class))
	assert.False(t, p.Doc.First("education-item").HasClass(animate.Class))

	p.ToggleMenu()
	assert.True(t, p.Menu.IsOpen())
	require.True(t, p.Click("#education"))
	assert.Equal(t, 3200-70, p.Window.ScrollY())
	assert.False(t, p.Menu.IsOpen())
	assert.True(t, p.Doc.First("education-item").HasClass(animate.Class))

	active := p.Doc.All("active")
	require.Len(t, active, 1)
	assert.Equal(t, "#education", active[0].Attr("href"))

	p.ToggleMenu()
	p.KeyDown("Escape")
	assert.False(t, p.Menu.IsOpen())
}

func TestSubmit(t *testing.T) {
	p, b := load(t)
	require.NotNil(t, p.Contact)

	res, ok := p.Submit(context.Background(), url.Values{"name": {"Ada"}, "email": {"a@b.c"}, "subject": {"s"}, "message": {"hi"}})
	require.True(t, ok)
	assert.True(t, res.OK)
	assert.Equal(t, int32(1), b.contact.Load())
	assert.True(t, p.Doc.ByID("form-status").HasClass("is-success"))

	var out strings.Builder
	require.NoError(t, p.Render(&out))
	assert.Contains(t, out.String(), "Message sent successfully!")
}

func TestLoadWithoutClient(t *testing.T) {
	_, err := Load(context.Background(), bytes.NewReader(web.Index()), Deps{})
	assert.Error(t, err)
}

func TestBindWithoutForm(t *testing.T) {
	p, err := Load(context.Background(), strings.NewReader(`<html><body><p>bare</p></body></html>`), Deps{
		Client: api.NewClient("http://127.0.0.1:1", 50*time.Millisecond, nil),
	})
	require.NoError(t, err)
	assert.Nil(t, p.Contact)

	_, ok := p.Submit(context.Background(), url.Values{"name": {"x"}})
	assert.False(t, ok)
	assert.Equal(t, render.StatusUnchanged, p.Report["stats"])
	assert.Equal(t, render.StatusSkipped, p.Report["projects"])
}

func TestLoadRevealsFirstViewport(t *testing.T) {
	l := testLayout()
	l.Sections["projects"] = layout.Rect{Top: 0, Height: 600}
	p, _ := loadWith(t, l)

	assert.Equal(t, 0, p.Window.ScrollY())
	assert.True(t, p.Doc.First("project-card").HasClass(animate.Class))
	assert.False(t, p.Doc.First("education-item").HasClass(animate.Class))

	assert.Equal(t, 3, p.RevealAll())
	for _, class := range animate.AnimatableSelectors {
		for _, el := range p.Doc.All(class) {
			assert.True(t, el.HasClass(animate.Class), class)
		}
	}
}
