package api

import (
	"strings"

	xhttp "CryptoIntel/pkg/http"

	"github.com/labstack/echo/v4"
)

// Mounter is a handler that registers its routes on a group.
type Mounter interface {
	Mount(g *echo.Group)
}

// Router mounts every handler under one base path, e.g. /functions/v1.
type Router struct {
	basePath string
	handlers []Mounter
}

func NewRouter(basePath string, handlers ...Mounter) *Router {
	return &Router{basePath: strings.TrimRight(basePath, "/"), handlers: handlers}
}

func (r *Router) RegisterRoutes(e *echo.Echo) {
	g := e.Group(r.basePath)
	for _, h := range r.handlers {
		h.Mount(g)
	}
}

var _ xhttp.Handler = (*Router)(nil)
