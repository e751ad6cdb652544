package controllers

import (
	"encoding/xml"
	"net/http"
	"strconv"
	"strings"

	"pressroom/app/logger"
	"pressroom/app/services"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

// SitemapController serves sitemap.xml
type SitemapController struct {
	postService *services.PostService
	baseURL     string
}

// NewSitemapController creates a new SitemapController
func NewSitemapController(postService *services.PostService, baseURL string) *SitemapController {
	return &SitemapController{postService: postService, baseURL: strings.TrimRight(baseURL, "/")}
}

// Sitemap lists every published post.
func (sc *SitemapController) Sitemap(w http.ResponseWriter, r *http.Request) {
	entries, err := sc.postService.SitemapEntries()
	if err != nil {
		handleError(w, r, err)
		return
	}

	set := urlSet{XMLNS: sitemapNS, URLs: make([]sitemapURL, 0, len(entries))}
	for _, entry := range entries {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        sc.baseURL + entry.Location,
			LastMod:    entry.LastMod.UTC().Format("2006-01-02"),
			ChangeFreq: entry.ChangeFreq,
			Priority:   strconv.FormatFloat(entry.Priority, 'f', 1, 64),
		})
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write([]byte(xml.Header))
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		logger.FromContext(r.Context()).ErrorContext(r.Context(), "sitemap encode failed", "error", err)
	}
}
