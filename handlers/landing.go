package handlers

import (
	"net/http"

	"btb_landing_go/config"
	"btb_landing_go/models"
	"btb_landing_go/services"
	"btb_landing_go/templates/pages"

	"github.com/labstack/echo/v4"
)

// LandingHandler renders the landing page with an empty lead form
func LandingHandler(c echo.Context) error {
	cfg := c.Get("config").(*config.Config)

	state := services.NewLeadFormState(models.LeadForm{}, Metrics)

	component := pages.Landing(pages.LandingData{
		SEO:      seoFor(c, "landing"),
		LeadForm: leadFormData(c, cfg, state),
	})
	return render(c, http.StatusOK, component)
}

// PrivacyHandler renders the privacy policy page
func PrivacyHandler(c echo.Context) error {
	return render(c, http.StatusOK, pages.Privacy(seoFor(c, "privacy")))
}
