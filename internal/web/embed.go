package web

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gofiber/template/html/v2"
	"github.com/rs/zerolog/log"
)

var (
	//go:embed static/*
	embeddedStaticFiles embed.FS

	//go:embed templates/*
	embeddedTemplates embed.FS
)

// TemplateDir is where dev mode reads the templates from.
const TemplateDir = "./internal/web/templates"

// NewEngine returns the template engine of the portal. Dev mode reads and
// reloads the templates from TemplateDir instead of the embedded copy.
func NewEngine(devMode bool) *html.Engine {
	if devMode {
		engine := html.New(TemplateDir, ".gohtml")
		engine.ShouldReload = true

		log.Warn().Msg("dev mode enabled: using local filesystem for templates")

		return engine
	}

	templates, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		panic(err)
	}

	return html.NewFileSystem(http.FS(templates), ".gohtml")
}
