package commands

import (
	"fmt"

	"btb_landing_go/db"
	"btb_landing_go/services"

	"github.com/spf13/cobra"
)

// forget: anonymize every archived lead sent from an email address.
func forgetCmd() *cobra.Command {
	var (
		dbPath string
		email  string
	)

	cmd := &cobra.Command{
		Use:   "forget",
		Short: "Anonymize archived leads of one email address",
		Long: `Anonymize archived leads of one email address.

Name, email, phone, IP address and user agent are replaced in the lead archive.
Consent records are kept unchanged, including the name, email, IP address and
user agent stored with them: they are the evidence that the person agreed to the
privacy policy and cannot be edited or deleted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := openArchive(dbPath); err != nil {
				return err
			}
			defer db.Close()

			count, err := services.AnonymizeLeads(db.DB, email)
			if err != nil {
				return err
			}

			consents, err := services.ConsentsByEmail(db.DB, email)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Anonymized %d leads, kept %d consent records\n", count, len(consents))
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", defaultDBPath(), "path to the lead archive database")
	cmd.Flags().StringVar(&email, "email", "", "email address of the person to forget")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}
