package partials

import (
	"context"

	"btb_landing_go/middleware"
	"btb_landing_go/models"
	"btb_landing_go/services/i18n"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// LeadFormID is the element htmx swaps with the server response
const LeadFormID = "lead-form"

const turnstileScript = "https://challenges.cloudflare.com/turnstile/v0/api.js"

// LeadFormData is everything the lead form needs to render
type LeadFormData struct {
	Form   models.LeadForm
	Errors models.ValidationErrors
	// SubmitLabel is the button caption, "lead.form.submit" when empty
	SubmitLabel string
	// TurnstileSiteKey enables the CAPTCHA widget when set
	TurnstileSiteKey string
}

// LeadForm renders the contact form with the entered values and per-field errors
func LeadForm(ctx context.Context, data LeadFormData) g.Node {
	nonce := middleware.GetNonce(ctx)
	label := data.SubmitLabel
	if label == "" {
		label = i18n.T(ctx, "lead.form.submit")
	}

	return g.El("form",
		h.ID(LeadFormID),
		h.Class("space-y-6"),
		h.Method("post"),
		h.Action("/lead"),
		g.Attr("novalidate"),
		g.Attr("hx-post", "/lead"),
		g.Attr("hx-target", "this"),
		g.Attr("hx-swap", "outerHTML"),
		g.Attr("hx-disabled-elt", "find button[type='submit']"),
		csrfField(ctx),
		textField(ctx, models.FieldName, "text", "lead.form.name", "lead.form.name_placeholder", data.Form.Name, data.Errors, "name"),
		textField(ctx, models.FieldEmail, "email", "lead.form.email", "lead.form.email_placeholder", data.Form.Email, data.Errors, "email"),
		textField(ctx, models.FieldPhone, "tel", "lead.form.phone", "lead.form.phone_placeholder", data.Form.Phone, data.Errors, "tel"),
		h.Div(
			h.Class("flex items-start gap-3"),
			h.Input(
				h.Type("checkbox"),
				h.ID(models.FieldAgree),
				h.Name(models.FieldAgree),
				h.Value("on"),
				h.Class("mt-1 bg-white"),
				g.If(data.Form.Agree, h.Checked()),
				g.If(data.Errors.Get(models.FieldAgree) != "", g.Attr("aria-invalid", "true")),
			),
			g.El("label",
				h.For(models.FieldAgree),
				h.Class("text-white text-sm cursor-pointer"),
				g.Text(i18n.T(ctx, "lead.form.agree")),
			),
		),
		fieldError(data.Errors.Get(models.FieldAgree), models.FieldAgree),
		g.If(data.TurnstileSiteKey != "",
			g.Group([]g.Node{
				h.Div(h.Class("cf-turnstile"), g.Attr("data-sitekey", data.TurnstileSiteKey)),
				h.Script(h.Src(turnstileScript), g.Attr("nonce", nonce), g.Attr("async"), g.Attr("defer")),
			}),
		),
		h.Button(
			h.Type("submit"),
			h.Class("btn w-full bg-accent hover:bg-accent/90 text-white text-xl py-7 pulse-animation"),
			g.Attr("data-loading-label", i18n.T(ctx, "lead.form.submitting")),
			g.Text(label),
		),
	)
}

func csrfField(ctx context.Context) g.Node {
	token := middleware.CSRFTokenFromContext(ctx)
	if token == "" {
		return nil
	}
	return h.Input(h.Type("hidden"), h.Name(middleware.CSRFFormField), h.Value(token))
}

func textField(ctx context.Context, field, inputType, labelKey, placeholderKey, value string, errs models.ValidationErrors, autocomplete string) g.Node {
	msg := errs.Get(field)
	return h.Div(
		g.El("label",
			h.For(field),
			h.Class("text-white text-lg mb-2 block"),
			g.Text(i18n.T(ctx, labelKey)),
		),
		h.Input(
			h.ID(field),
			h.Name(field),
			h.Type(inputType),
			h.Value(value),
			h.Placeholder(i18n.T(ctx, placeholderKey)),
			g.Attr("autocomplete", autocomplete),
			h.Class("input bg-white/90 text-gray-900 text-lg py-6"),
			g.If(msg != "", g.Attr("aria-invalid", "true")),
			g.If(msg != "", g.Attr("aria-describedby", field+"-error")),
		),
		fieldError(msg, field),
	)
}

func fieldError(msg, field string) g.Node {
	if msg == "" {
		return nil
	}
	return h.P(h.ID(field+"-error"), h.Class("field-error text-red-300 text-sm mt-1"), g.Text(msg))
}
