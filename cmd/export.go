package cmd

import (
	"context"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	exportOut  string
	exportTerm string
)

var exportCmd = &cobra.Command{
	Use:       "export members|deliveries|payments",
	Short:     "Write a CSV export of the current records",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"members", "deliveries", "payments"},
	RunE:      runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (defaults to stdout)")
	exportCmd.Flags().StringVarP(&exportTerm, "query", "q", "", "member filter term")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	return withApp("campaign-cli", func(ctx context.Context, a *app) error {
		var w io.Writer = cmd.OutOrStdout()
		if exportOut != "" {
			f, err := os.Create(exportOut)
			if err != nil {
				return errors.Wrap(err, "failed to create export file")
			}
			defer f.Close()
			w = f
		}

		var err error
		switch args[0] {
		case "members":
			err = a.services.Exports.Members(ctx, w, exportTerm)
		case "deliveries":
			err = a.services.Exports.Deliveries(ctx, w)
		case "payments":
			err = a.services.Exports.Payments(ctx, w)
		}
		if err != nil {
			return err
		}

		if exportOut != "" {
			log.Info().Str("file", exportOut).Str("kind", args[0]).Msg("Export written")
		}
		return nil
	})
}
