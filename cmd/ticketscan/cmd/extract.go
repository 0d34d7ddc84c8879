package cmd

import (
	"errors"
	"fmt"

	"github.com/seatswap/ticketscan/internal/input"
	"github.com/seatswap/ticketscan/internal/pipeline"
	"github.com/spf13/cobra"
)

const (
	outputFormatJSON = "json"
	outputFormatText = "text"
)

// extractCmd represents the extract command.
var extractCmd = &cobra.Command{
	Use:   "extract <file>",
	Short: "Extract structured ticket fields from an image or PDF",
	Long: `Extract structured ticket fields from a ticket image.

Supported formats: JPEG, PNG, BMP, PDF (first embedded image)

Examples:
  ticketscan extract ticket.jpg
  ticketscan extract ticket.pdf --format text`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		if format != outputFormatJSON && format != outputFormatText {
			return fmt.Errorf("unsupported output format: %s", format)
		}

		img, meta, err := input.LoadImage(args[0])
		if err != nil {
			return fmt.Errorf("load %s: %w", args[0], err)
		}

		cfg := GetConfig()
		p, err := pipeline.NewBuilder().
			WithEngineConfig(cfg.ToPipelineConfig().Engine).
			WithThresholds(cfg.Pipeline.FastPassThreshold, cfg.Pipeline.AdvancedThreshold).
			WithMaxVariants(cfg.Pipeline.MaxVariants).
			WithQRMinFields(cfg.Pipeline.QRMinFields).
			Build()
		if err != nil {
			return fmt.Errorf("build pipeline: %w", err)
		}

		result := p.Extract(cmd.Context(), img)
		if result == nil {
			return errors.New("extraction produced no result")
		}

		var out string
		if format == outputFormatText {
			out, err = pipeline.ToText(result)
		} else {
			out, err = pipeline.ToJSON(result)
		}
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), out)
		if result.Confidence < 50 {
			fmt.Fprintf(cmd.ErrOrStderr(),
				"low confidence (%d) for %s; verify fields manually\n",
				result.Confidence, meta.Path)
		}
		return nil
	},
}

func init() {
	extractCmd.Flags().StringP("format", "f", outputFormatJSON, "output format (json, text)")
	rootCmd.AddCommand(extractCmd)
}
