// Package ui is the web shell of the analyzer: it serves an editor page,
// runs one synchronous analysis per request, and renders the resulting
// parse tree or error. The core never depends on it.
package ui

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"os"

	"github.com/SinhoGl/Estudo-Compiladores/examples"
	"github.com/SinhoGl/Estudo-Compiladores/sigma/parser"
)

//go:embed static templates
var embeddedFS embed.FS

type Server struct {
	staticFS   fs.FS
	templateFS fs.FS
	mux        *http.ServeMux
}

func NewServer() (*Server, error) {
	staticFS := overlayFS("ui/static", mustSub(embeddedFS, "static"))
	templateFS := overlayFS("ui/templates", mustSub(embeddedFS, "templates"))

	if _, err := template.ParseFS(templateFS, "*.html"); err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &Server{
		staticFS:   staticFS,
		templateFS: templateFS,
		mux:        http.NewServeMux(),
	}

	s.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	s.mux.HandleFunc("POST /analyze", s.handleAnalyze)
	s.mux.HandleFunc("GET /examples/{name}", s.handleExample)
	s.mux.HandleFunc("GET /", s.handleIndex)

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	tmpl, err := template.ParseFS(s.templateFS, "*.html")
	if err != nil {
		http.Error(w, "template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	tmpl.ExecuteTemplate(w, name, data)
}

// pageData is everything index.html needs: the editor content, the outcome
// of the last analysis, and the sidebar of bundled examples.
type pageData struct {
	Source   string
	Tree     string
	Error    string
	Status   string
	Examples []string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := pageData{
		Examples: examples.Names(),
	}

	if name := r.URL.Query().Get("example"); name != "" {
		if source, err := examples.Load(name); err == nil {
			data.Source = string(source)
		}
	}

	s.render(w, "index.html", data)
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data: "+err.Error(), http.StatusBadRequest)
		return
	}
	source := r.FormValue("source")

	root, err := parser.ParseProgram([]byte(source))

	if r.Header.Get("Accept") == "application/json" {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(analyzeResult(root, err))
		return
	}

	data := pageData{
		Source:   source,
		Examples: examples.Names(),
	}
	if err != nil {
		data.Error = err.Error()
		data.Status = "error"
	} else {
		data.Tree = root.String()
		data.Status = "ok"
	}
	s.render(w, "index.html", data)
}

type jsonResult struct {
	Status string           `json:"status"`
	Tree   *parser.Node     `json:"tree,omitempty"`
	Error  *jsonResultError `json:"error,omitempty"`
}

type jsonResultError struct {
	Kind    string `json:"kind"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Message string `json:"message"`
}

func analyzeResult(root *parser.Node, err error) jsonResult {
	if err == nil {
		return jsonResult{Status: "ok", Tree: root}
	}

	result := jsonResult{Status: "error", Error: &jsonResultError{Message: err.Error()}}
	var lexErr *parser.LexicalError
	var synErr *parser.SyntaxError
	switch {
	case errors.As(err, &lexErr):
		result.Error.Kind = "lexical"
		result.Error.Line = lexErr.Line
		result.Error.Column = lexErr.Column
	case errors.As(err, &synErr):
		result.Error.Kind = "syntax"
		result.Error.Line = synErr.Line
		result.Error.Column = synErr.Column
	}
	return result
}

func (s *Server) handleExample(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	source, err := examples.Load(name)
	if err != nil {
		http.Error(w, "example not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write(source)
}

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

type overlayFSType struct {
	primary   fs.FS
	secondary fs.FS
}

// overlayFS prefers files on disk over the embedded copies, so templates
// and styles can be edited without rebuilding.
func overlayFS(primaryPath string, secondary fs.FS) fs.FS {
	return &overlayFSType{
		primary:   os.DirFS(primaryPath),
		secondary: secondary,
	}
}

func (o *overlayFSType) Open(name string) (fs.File, error) {
	f, err := o.primary.Open(name)
	if err == nil {
		return f, nil
	}
	return o.secondary.Open(name)
}

func (o *overlayFSType) ReadDir(name string) ([]fs.DirEntry, error) {
	entries := make(map[string]fs.DirEntry)

	if rd, ok := o.secondary.(fs.ReadDirFS); ok {
		if list, err := rd.ReadDir(name); err == nil {
			for _, e := range list {
				entries[e.Name()] = e
			}
		}
	}

	if rd, ok := o.primary.(fs.ReadDirFS); ok {
		if list, err := rd.ReadDir(name); err == nil {
			for _, e := range list {
				entries[e.Name()] = e
			}
		}
	}

	result := make([]fs.DirEntry, 0, len(entries))
	for _, e := range entries {
		result = append(result, e)
	}
	return result, nil
}
