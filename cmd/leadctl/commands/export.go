package commands

import (
	"fmt"
	"os"

	"btb_landing_go/db"
	"btb_landing_go/services"

	"github.com/spf13/cobra"
)

// export: dump archived send-form leads to an Excel workbook.
func exportCmd() *cobra.Command {
	var (
		dbPath string
		out    string
		status string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export archived leads to an .xlsx file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := openArchive(dbPath); err != nil {
				return err
			}
			defer db.Close()

			buf, count, err := services.ExportLeadSubmissions(localeContext(cmd.Context()), db.DB, status)
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d leads to %s\n", count, out)
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", defaultDBPath(), "path to the lead archive database")
	cmd.Flags().StringVarP(&out, "out", "o", "leads.xlsx", "output file")
	cmd.Flags().StringVar(&status, "status", "", "only export leads with this status (delivered, demo, failed)")
	return cmd
}

func defaultDBPath() string {
	if path := os.Getenv("DB_PATH"); path != "" {
		return path
	}
	return "db/app.db"
}

func openArchive(path string) error {
	if err := db.Initialize(path, "production"); err != nil {
		return err
	}
	return db.Migrate()
}
