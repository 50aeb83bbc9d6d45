package commands

import (
	"fmt"

	"btb_landing_go/models"
	"btb_landing_go/services"

	"github.com/spf13/cobra"
)

var fieldOrder = []string{models.FieldName, models.FieldEmail, models.FieldPhone, models.FieldAgree}

// leadFormFlags binds the lead form fields to a command's flags
func leadFormFlags(cmd *cobra.Command, form *models.LeadForm) {
	cmd.Flags().StringVar(&form.Name, "name", "", "contact name")
	cmd.Flags().StringVar(&form.Email, "email", "", "contact email")
	cmd.Flags().StringVar(&form.Phone, "phone", "", "contact phone")
	cmd.Flags().BoolVar(&form.Agree, "agree", false, "accept the privacy policy")
}

// validate: run the lead form rules without sending anything.
func validateCmd() *cobra.Command {
	var form models.LeadForm

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check lead form values against the form rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			errs := services.ValidateLeadForm(localeContext(cmd.Context()), form)
			if errs.Valid() {
				fmt.Fprintln(cmd.OutOrStdout(), "OK")
				return nil
			}
			printValidationErrors(cmd, errs)
			return errFailed
		},
	}
	leadFormFlags(cmd, &form)
	return cmd
}

func printValidationErrors(cmd *cobra.Command, errs models.ValidationErrors) {
	for _, field := range fieldOrder {
		if msg := errs.Get(field); msg != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", field, msg)
		}
	}
}
