package commands

import (
	"context"
	"errors"

	"btb_landing_go/services/i18n"

	"github.com/spf13/cobra"
)

// errFailed makes the process exit non-zero after the command printed its own report
var errFailed = errors.New("failed")

var lang string

// NewRootCmd builds the leadctl command tree
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "leadctl",
		Short:         "Validate, submit and export landing page leads",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			lang = i18n.Match(lang)
			return i18n.Load()
		},
	}

	root.PersistentFlags().StringVar(&lang, "lang", "ru", "message language (ru or en)")

	root.AddCommand(validateCmd(), submitCmd(), exportCmd(), forgetCmd())
	return root
}

func Execute() error {
	root := NewRootCmd()
	err := root.Execute()
	if err != nil && !errors.Is(err, errFailed) {
		root.PrintErrln("Error:", err)
	}
	return err
}

func localeContext(ctx context.Context) context.Context {
	return i18n.WithLocale(ctx, lang)
}
