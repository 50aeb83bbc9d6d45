package handlers

import (
	"context"
	"errors"
	"net/http"

	"btb_landing_go/config"
	"btb_landing_go/db"
	"btb_landing_go/models"
	"btb_landing_go/services"
	"btb_landing_go/services/i18n"
	"btb_landing_go/templates/components"
	"btb_landing_go/templates/pages"
	"btb_landing_go/templates/partials"

	"github.com/labstack/echo/v4"
	g "maragu.dev/gomponents"
)

// LeadFormPostHandler validates the posted lead form and forwards it to the lead endpoint.
// HTMX requests get the form partial plus an out-of-band toast, plain requests the whole page.
func LeadFormPostHandler(c echo.Context) error {
	cfg := c.Get("config").(*config.Config)
	ctx := c.Request().Context()

	form := models.LeadForm{
		Name:  c.FormValue(models.FieldName),
		Email: c.FormValue(models.FieldEmail),
		Phone: c.FormValue(models.FieldPhone),
		Agree: isChecked(c.FormValue(models.FieldAgree)),
	}
	state := services.NewLeadFormState(form, Metrics)

	// Validate Turnstile CAPTCHA (if configured)
	if cfg.TurnstileSecretKey != "" {
		token := c.FormValue("cf-turnstile-response")
		if token == "" {
			services.Monitor.TrackFailedCaptcha(ctx, c.RealIP())
			return renderLeadForm(c, cfg, state, http.StatusBadRequest,
				models.ErrorNotification(i18n.T(ctx, "lead.notify.captcha_required")))
		}

		valid, err := services.VerifyTurnstileToken(ctx, token, cfg.TurnstileSecretKey, c.RealIP())
		if err != nil || !valid {
			c.Logger().Warnf("Turnstile verification failed: %v", err)
			services.Monitor.TrackFailedCaptcha(ctx, c.RealIP())
			return renderLeadForm(c, cfg, state, http.StatusBadRequest,
				models.ErrorNotification(i18n.T(ctx, "lead.notify.captcha_failed")))
		}
	}

	if services.LeadEndpoint == nil {
		c.Logger().Error("Lead endpoint is not configured")
		return echo.NewHTTPError(http.StatusServiceUnavailable, i18n.T(ctx, "lead.notify.failed"))
	}

	payload := form.Payload()
	ctx = services.WithRequestMeta(ctx, services.RequestMeta{
		IPAddress: c.RealIP(),
		UserAgent: c.Request().UserAgent(),
	})
	result, err := state.Submit(ctx, services.LeadEndpoint)
	if err != nil {
		if errors.Is(err, services.ErrSubmissionInProgress) {
			return renderLeadForm(c, cfg, state, http.StatusConflict,
				models.ErrorNotification(i18n.T(ctx, "lead.notify.in_progress")))
		}
		return err
	}

	status := http.StatusOK
	switch result.Outcome {
	case services.OutcomeSucceeded:
		recordConsent(c, payload)
	case services.OutcomeInvalid:
		status = http.StatusUnprocessableEntity
	case services.OutcomeRejected, services.OutcomeTransport:
		status = http.StatusBadGateway
	}

	return renderLeadForm(c, cfg, state, status, result.Notification)
}

// renderLeadForm answers with the current form state. HTMX only swaps 2xx
// responses, so partial updates always use 200 and carry the outcome in the toast.
func renderLeadForm(c echo.Context, cfg *config.Config, state *services.LeadFormState, status int, n models.Notification) error {
	data := leadFormData(c, cfg, state)

	if isHTMX(c) {
		component := components.Build(func(ctx context.Context) g.Node {
			return g.Group([]g.Node{
				partials.LeadForm(ctx, data),
				components.ToastOOB(n),
			})
		})
		return render(c, http.StatusOK, component)
	}

	component := pages.Landing(pages.LandingData{
		SEO:          seoFor(c, "landing"),
		LeadForm:     data,
		Notification: n,
	})
	return render(c, status, component)
}

// leadFormData renders state the way the lead form partial expects it
func leadFormData(c echo.Context, cfg *config.Config, state *services.LeadFormState) partials.LeadFormData {
	return partials.LeadFormData{
		Form:             state.Form,
		Errors:           state.Errors,
		SubmitLabel:      state.SubmitLabel(c.Request().Context()),
		TurnstileSiteKey: cfg.TurnstileSiteKey,
	}
}

// recordConsent stores the policy acceptance of a lead that reached the endpoint.
// A lead who already accepted the current policy version is not logged again.
func recordConsent(c echo.Context, payload models.LeadPayload) {
	if db.DB == nil {
		return
	}
	accepted, err := services.HasCurrentConsent(db.DB, payload.Email, models.ConsentTypeDataProcessing)
	if err != nil {
		c.Logger().Errorf("Failed to check consent for %s: %v", payload.Email, err)
	}
	if accepted {
		return
	}
	err = services.LogConsent(c.Request().Context(), db.DB, payload, models.ConsentTypeDataProcessing, true,
		c.RealIP(), c.Request().UserAgent())
	if err != nil {
		c.Logger().Errorf("Failed to log consent for %s: %v", payload.Email, err)
	}
}

// isChecked interprets an HTML checkbox value
func isChecked(value string) bool {
	switch value {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}
