// Package web contiene las plantillas HTML y los archivos estáticos del catálogo,
// embebidos en el binario.
package web

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gofiber/template/html/v2"

	"github.com/jhoicas/farm-stand/internal/domain/entity"
	"github.com/jhoicas/farm-stand/pkg/config"
)

//go:embed views
var viewsFS embed.FS

//go:embed public
var publicFS embed.FS

// Views sistema de archivos con las plantillas (raíz = views/).
func Views() fs.FS {
	sub, err := fs.Sub(viewsFS, "views")
	if err != nil {
		panic(err)
	}
	return sub
}

// Public sistema de archivos con los assets (raíz = public/).
func Public() fs.FS {
	sub, err := fs.Sub(publicFS, "public")
	if err != nil {
		panic(err)
	}
	return sub
}

// NewEngine motor html/template para Fiber. Con cfg.Dir lee las plantillas del disco
// (y permite recarga); si no, usa las embebidas.
func NewEngine(cfg config.ViewsConfig) *html.Engine {
	var engine *html.Engine
	if cfg.Dir != "" {
		engine = html.New(cfg.Dir, ".html")
		engine.Reload(cfg.Reload)
	} else {
		engine = html.NewFileSystem(http.FS(Views()), ".html")
	}
	engine.AddFunc("categoryLabel", func(c string) string {
		return entity.Category(c).Label()
	})
	return engine
}
