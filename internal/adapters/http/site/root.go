// Package site serves the landing page of the service.
package site

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"html/template"
	"net/http"
)

// Error constants.
var (
	ErrRender = errors.New("landing page render failed")
)

//go:embed static/index.html
var indexHTML string

var indexTmpl = template.Must(template.New("index").Parse(indexHTML))

// InfoProvider supplies the live values shown on the landing page.
type InfoProvider interface {
	Archetypes() []string
}

// RootHandler serves GET / and nothing below it.
type RootHandler struct {
	info InfoProvider
}

// NewRootHandler creates a new root handler.
func NewRootHandler(info InfoProvider) *RootHandler {
	return &RootHandler{info: info}
}

// Register attaches the landing page to mux.
func Register(_ context.Context, mux *http.ServeMux, info InfoProvider) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.HandleFunc("/", NewRootHandler(info).HandleRoot)
}

// HandleRoot renders the landing page.
func (h *RootHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" || r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	var data struct{ Archetypes []string }
	if h.info != nil {
		data.Archetypes = h.info.Archetypes()
	}
	var buf bytes.Buffer
	if err := indexTmpl.Execute(&buf, data); err != nil {
		http.Error(w, ErrRender.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}
