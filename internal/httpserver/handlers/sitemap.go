package handlers

import (
	"encoding/xml"
	"net/http"
	"time"

	"github.com/zainmh-10/CreateAILab/internal/httpserver/deps"
)

var sitemapStaticPaths = []string{"", "/tools", "/workflows", "/prompts", "/quiz"}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

func lastMod(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// Sitemap lists the static pages plus every tool and workflow page.
func Sitemap(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		now := lastMod(d.Now())
		set := urlSet{Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9"}

		for _, p := range sitemapStaticPaths {
			set.URLs = append(set.URLs, sitemapURL{Loc: d.SiteURL + p, LastMod: now})
		}
		for _, t := range d.Content.Tools(r.Context()) {
			set.URLs = append(set.URLs, sitemapURL{Loc: d.SiteURL + "/tools/" + t.Slug, LastMod: lastMod(t.UpdatedAt)})
		}
		for _, wf := range d.Content.Workflows(r.Context()) {
			set.URLs = append(set.URLs, sitemapURL{Loc: d.SiteURL + "/workflows/" + wf.Slug, LastMod: lastMod(wf.UpdatedAt)})
		}

		w.Header().Set("Content-Type", "application/xml; charset=utf-8")
		_, _ = w.Write([]byte(xml.Header))
		enc := xml.NewEncoder(w)
		enc.Indent("", "  ")
		if err := enc.Encode(set); err != nil {
			d.Logger.Debugf("sitemap encode failed: %v", err)
		}
	}
}
