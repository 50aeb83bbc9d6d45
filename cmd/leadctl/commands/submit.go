package commands

import (
	"fmt"
	"os"
	"time"

	"btb_landing_go/models"
	"btb_landing_go/services"

	"github.com/spf13/cobra"
)

// submit: validate the form and post it once to the lead endpoint.
func submitCmd() *cobra.Command {
	var (
		form     models.LeadForm
		endpoint string
		timeout  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Send a lead to the lead endpoint and print the notification",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if endpoint == "" {
				endpoint = os.Getenv("LEAD_ENDPOINT_URL")
			}
			if endpoint == "" {
				return fmt.Errorf("no lead endpoint configured. use --endpoint or LEAD_ENDPOINT_URL")
			}

			ctx := localeContext(cmd.Context())
			state := services.NewLeadFormState(form, nil)
			result, err := state.Submit(ctx, services.NewLeadSubmitter(endpoint, timeout, nil))
			if err != nil {
				return err
			}

			if result.Outcome == services.OutcomeInvalid {
				printValidationErrors(cmd, state.Errors)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", result.Notification.Kind, result.Notification.Message)

			if result.Outcome != services.OutcomeSucceeded {
				return errFailed
			}
			return nil
		},
	}
	leadFormFlags(cmd, &form)
	cmd.Flags().StringVar(&endpoint, "endpoint", "", "lead endpoint URL (default $LEAD_ENDPOINT_URL)")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "request timeout, 0 waits indefinitely")
	return cmd
}
