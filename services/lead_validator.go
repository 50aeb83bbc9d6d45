package services

import (
	"context"
	"regexp"
	"strings"

	"btb_landing_go/models"
	"btb_landing_go/services/i18n"
)

// jsSpace is the class JavaScript's \s matches; RE2's \s is ASCII only.
const jsSpace = `\s\v\p{Z}\x{FEFF}`

var (
	leadEmailPattern = regexp.MustCompile(`^[^` + jsSpace + `@]+@[^` + jsSpace + `@]+\.[^` + jsSpace + `@]+$`)
	leadPhonePattern = regexp.MustCompile(`^[\d` + jsSpace + `+\-()]+$`)
)

// ValidateLeadForm checks every field of the lead form independently and returns
// the failing fields. An empty result means the form may be submitted.
func ValidateLeadForm(ctx context.Context, form models.LeadForm) models.ValidationErrors {
	errs := make(models.ValidationErrors)

	if strings.TrimSpace(form.Name) == "" {
		errs[models.FieldName] = i18n.T(ctx, "lead.errors.name_required")
	}

	if strings.TrimSpace(form.Email) == "" {
		errs[models.FieldEmail] = i18n.T(ctx, "lead.errors.email_required")
	} else if !IsValidLeadEmail(form.Email) {
		errs[models.FieldEmail] = i18n.T(ctx, "lead.errors.email_invalid")
	}

	if strings.TrimSpace(form.Phone) == "" {
		errs[models.FieldPhone] = i18n.T(ctx, "lead.errors.phone_required")
	} else if !IsValidLeadPhone(form.Phone) {
		errs[models.FieldPhone] = i18n.T(ctx, "lead.errors.phone_invalid")
	}

	if !form.Agree {
		errs[models.FieldAgree] = i18n.T(ctx, "lead.errors.agree_required")
	}

	return errs
}

// IsValidLeadEmail accepts local@domain.tld shapes: no whitespace, an @ and a dot after it.
// The value is matched untrimmed.
func IsValidLeadEmail(email string) bool {
	return leadEmailPattern.MatchString(email)
}

// IsValidLeadPhone accepts digits, whitespace, +, -, ( and ) only
func IsValidLeadPhone(phone string) bool {
	return leadPhonePattern.MatchString(phone)
}
