// Package ssr expands the custom elements used in the page templates into plain HTML.
package ssr

import (
	"io"
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/myrjola/spermcourt/internal/errors"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

type component struct {
	tag   atom.Atom
	class string
}

var components = map[string]component{
	"court-button": {tag: atom.Button, class: "btn"},
	"court-panel":  {tag: atom.Section, class: "panel"},
	"court-stat":   {tag: atom.Span, class: "stat"},
}

// ExpandComponents reads HTML from reader and writes it to writer with custom elements replaced.
//
// A custom element such as <court-button variant="guilty"> becomes <button class="btn btn-guilty" type="submit">.
// Existing elements opt in with as="court-button". When fragment is true, only the body's children are written so that
// partial templates round-trip without an html, head and body wrapper.
func ExpandComponents(writer io.Writer, reader io.Reader, fragment bool) error {
	doc, err := goquery.NewDocumentFromReader(reader)
	if err != nil {
		return errors.Wrap(err, "parse document")
	}

	for name, c := range components {
		doc.Find(name).Each(func(_ int, s *goquery.Selection) {
			expand(s, c)
		})
		doc.Find(`[as="` + name + `"]`).Each(func(_ int, s *goquery.Selection) {
			s.RemoveAttr("as")
			addClasses(s, classes(s, c))
			s.RemoveAttr("variant")
		})
	}

	if !fragment {
		if err = html.Render(writer, doc.Nodes[0]); err != nil {
			return errors.Wrap(err, "render document")
		}
		return nil
	}
	body := doc.Find("body")
	if len(body.Nodes) > 0 {
		for n := body.Nodes[0].FirstChild; n != nil; n = n.NextSibling {
			if err = html.Render(writer, n); err != nil {
				return errors.Wrap(err, "render fragment")
			}
		}
	}
	return nil
}

func expand(s *goquery.Selection, c component) {
	node := s.Nodes[0]
	node.DataAtom = c.tag
	node.Data = c.tag.String()
	addClasses(s, classes(s, c))
	s.RemoveAttr("variant")
	if c.tag == atom.Button {
		if _, ok := s.Attr("type"); !ok {
			s.SetAttr("type", "submit")
		}
	}
}

// addClasses appends class names missing from the class attribute, rewriting it with single spaces.
func addClasses(s *goquery.Selection, add []string) {
	existing, _ := s.Attr("class")
	class := strings.Fields(existing)
	for _, name := range add {
		if !slices.Contains(class, name) {
			class = append(class, name)
		}
	}
	s.SetAttr("class", strings.Join(class, " "))
}

func classes(s *goquery.Selection, c component) []string {
	class := []string{c.class}
	if variant, ok := s.Attr("variant"); ok && strings.TrimSpace(variant) != "" {
		class = append(class, c.class+"-"+strings.TrimSpace(variant))
	}
	return class
}
