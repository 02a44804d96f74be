package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"strings"

	"github.com/myrjola/spermcourt/internal/contexthelpers"
	"github.com/myrjola/spermcourt/internal/errors"
	"github.com/myrjola/spermcourt/internal/ssr"
	"github.com/myrjola/spermcourt/ui"
)

func (app *application) serverError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		method = r.Method
		uri    = r.URL.RequestURI()
	)

	app.logger.LogAttrs(r.Context(), slog.LevelError, "server error",
		slog.String("method", method), slog.String("uri", uri), errors.SlogError(err))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func (app *application) clientError(w http.ResponseWriter, r *http.Request, status int) {
	var (
		method = r.Method
		uri    = r.URL.RequestURI()
	)

	app.logger.LogAttrs(r.Context(), slog.LevelDebug, http.StatusText(status),
		slog.String("method", method), slog.String("uri", uri), slog.Any("formdata", r.PostForm))
	http.Error(w, http.StatusText(status), status)
}

func (app *application) notFound(w http.ResponseWriter, r *http.Request) {
	app.clientError(w, r, http.StatusNotFound)
}

// pageTemplates holds one template set per page. Every set has the base layout, the shared fragments and the page's
// own "page" template.
type pageTemplates struct {
	sets map[string]*template.Template
}

// parsePageTemplates parses every page under ui/templates/pages.
//
// The "nonce" and "csrf" functions are placeholders here. They are replaced per request on a clone in [pageTemplates.execute].
func parsePageTemplates() (*pageTemplates, error) {
	pageFiles, err := fs.Glob(ui.Files, "templates/pages/*.gohtml")
	if err != nil {
		return nil, errors.Wrap(err, "glob page templates")
	}
	pages := &pageTemplates{sets: map[string]*template.Template{}}
	for _, pageFile := range pageFiles {
		name := strings.TrimSuffix(path.Base(pageFile), ".gohtml")
		var t *template.Template
		t, err = template.New(name).Funcs(template.FuncMap{
			"nonce": func() template.HTMLAttr {
				panic("not implemented")
			},
			"csrf": func() template.HTML {
				panic("not implemented")
			},
		}).ParseFS(ui.Files, "templates/base.gohtml", "templates/fragments/*.gohtml", pageFile)
		if err != nil {
			return nil, errors.Wrap(err, "parse page template", slog.String("page", name))
		}
		pages.sets[name] = t
	}
	return pages, nil
}

// execute renders the template called name from the set of page. fragment controls whether the output is a whole
// document or only the rendered elements.
func (p *pageTemplates) execute(r *http.Request, page, name string, fragment bool, data any) (*bytes.Buffer, error) {
	set, ok := p.sets[page]
	if !ok {
		return nil, errors.New("page not found", slog.String("page", page))
	}
	t, err := set.Clone()
	if err != nil {
		return nil, errors.Wrap(err, "clone template", slog.String("page", page))
	}

	ctx := r.Context()
	nonce := fmt.Sprintf("nonce=\"%s\"", contexthelpers.CSPNonce(ctx))
	csrf := fmt.Sprintf("<input type=\"hidden\" name=\"csrf_token\" value=\"%s\"/>", contexthelpers.CSRFToken(ctx))
	t.Funcs(template.FuncMap{
		"nonce": func() template.HTMLAttr {
			return template.HTMLAttr(nonce) //nolint:gosec // we trust the nonce since it's not provided by user.
		},
		"csrf": func() template.HTML {
			return template.HTML(csrf) //nolint:gosec // we trust the csrf since it's not provided by user.
		},
	})

	raw := new(bytes.Buffer)
	if err = t.ExecuteTemplate(raw, name, data); err != nil {
		return nil, errors.Wrap(err, "execute template", slog.String("page", page), slog.String("template", name))
	}
	out := new(bytes.Buffer)
	if err = ssr.ExpandComponents(out, raw, fragment); err != nil {
		return nil, errors.Wrap(err, "expand components", slog.String("page", page))
	}
	return out, nil
}

// render writes the whole document of page.
func (app *application) render(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	buf, err := app.pages.execute(r, page, "base", false, data)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// renderFragment writes only the template called name from the set of page, for htmx swaps.
func (app *application) renderFragment(w http.ResponseWriter, r *http.Request, status int, page, name string, data any) {
	buf, err := app.pages.execute(r, page, name, true, data)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (app *application) writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		app.serverError(w, r, errors.Wrap(err, "marshal json"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(body)
}
