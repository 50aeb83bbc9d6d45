package handlers

import (
	"encoding/xml"
	"net/http"
	"strings"

	"btb_landing_go/config"
	"btb_landing_go/services/i18n"

	"github.com/labstack/echo/v4"
)

const (
	sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"
	xhtmlNS   = "http://www.w3.org/1999/xhtml"
)

// SitemapAlternate is an hreflang link to a translated version of a page
type SitemapAlternate struct {
	Rel      string `xml:"rel,attr"`
	Hreflang string `xml:"hreflang,attr"`
	Href     string `xml:"href,attr"`
}

type SitemapURL struct {
	Loc        string             `xml:"loc"`
	ChangeFreq string             `xml:"changefreq,omitempty"`
	Priority   float32            `xml:"priority,omitempty"`
	Alternates []SitemapAlternate `xml:"xhtml:link"`
}

type SitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	XHTML   string       `xml:"xmlns:xhtml,attr"`
	URLs    []SitemapURL `xml:"url"`
}

// buildSitemap lists every indexable page with one alternate per site language
func buildSitemap(baseURL string) SitemapURLSet {
	set := SitemapURLSet{Xmlns: sitemapNS, XHTML: xhtmlNS}
	for _, page := range sitemapPages {
		meta := pageSEO[page]
		loc := baseURL + meta.Path

		entry := SitemapURL{Loc: loc, ChangeFreq: meta.ChangeFreq, Priority: meta.Priority}
		for _, lang := range i18n.SupportedLanguages {
			entry.Alternates = append(entry.Alternates, SitemapAlternate{
				Rel:      "alternate",
				Hreflang: lang,
				Href:     loc + "?lang=" + lang,
			})
		}
		set.URLs = append(set.URLs, entry)
	}
	return set
}

// GetSitemapHandler serves sitemap.xml
func GetSitemapHandler(c echo.Context) error {
	cfg := c.Get("config").(*config.Config)

	c.Response().Header().Set(echo.HeaderContentType, echo.MIMEApplicationXMLCharsetUTF8)
	c.Response().WriteHeader(http.StatusOK)
	if _, err := c.Response().Write([]byte(xml.Header)); err != nil {
		return err
	}

	encoder := xml.NewEncoder(c.Response())
	encoder.Indent("", "  ")
	return encoder.Encode(buildSitemap(cfg.AppURL))
}

// GetRobotsHandler allows crawling of the public pages and points at the sitemap
func GetRobotsHandler(c echo.Context) error {
	cfg := c.Get("config").(*config.Config)

	var b strings.Builder
	b.WriteString("User-agent: *\nAllow: /\n")
	for _, path := range []string{"/api/", "/lead", "/health", "/metrics"} {
		b.WriteString("Disallow: " + path + "\n")
	}
	b.WriteString("\nSitemap: " + cfg.AppURL + "/sitemap.xml\n")
	return c.String(http.StatusOK, b.String())
}
