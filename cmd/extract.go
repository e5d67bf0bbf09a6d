package cmd

import (
	"fmt"
	"log/slog"

	"github.com/lehigh-university-libraries/acextract/internal/catalog"
	"github.com/lehigh-university-libraries/acextract/internal/console"
	"github.com/lehigh-university-libraries/acextract/internal/operation"
	"github.com/lehigh-university-libraries/acextract/internal/report"
	"github.com/spf13/cobra"
)

func newExtractCmd() *cobra.Command {
	var input string
	var output string
	var mode string
	var vectorPolicy string
	var reportPath string
	var list bool

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract every image of a catalog to a directory",
		Long: `Extracts every named image of the catalog and writes it as a PNG file.

In "normal" mode each image is written directly under the output directory.
In "dir" mode images are grouped into <name>.imageset directories and a
Contents.json descriptor is created, or merged with an existing one, so that
repeated runs accumulate the 1x, 2x and 3x renditions of an image.

A failing image is reported and the run continues with the next one.
Mode names are matched case-insensitively and unknown modes fall back
to "normal". Do not run two extractions against the
same output directory at the same time.`,
		Example: `  # Extract a catalog directory into flat PNG files
  acextract extract --input ./Assets --output ~/Desktop/assets

  # Rebuild .imageset directories and keep a YAML report
  acextract extract -i catalog.parquet -o ./Images.xcassets --mode dir --report run.yaml

  # Fail on vector renditions instead of skipping them
  acextract extract -i catalog.yaml -o ./out --vector fail`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output = flagOrEnv(cmd, "output", "ACEXTRACT_OUTPUT", output)
			mode = flagOrEnv(cmd, "mode", "ACEXTRACT_MODE", mode)
			vectorPolicy = flagOrEnv(cmd, "vector", "ACEXTRACT_VECTOR_POLICY", vectorPolicy)

			c, err := catalog.Open(input)
			if err != nil {
				return err
			}

			printer := console.NewPrinter(cmd.OutOrStdout())
			collector := report.NewCollector()
			policy := operation.ParseVectorPolicy(vectorPolicy)

			extract := operation.NewExtract(output, mode,
				operation.WithVectorPolicy(policy),
				operation.WithReporter(printer),
				operation.WithReporter(collector),
			)

			var op operation.Operation = extract
			if list {
				op = operation.Compound{operation.NewList(cmd.OutOrStdout()), extract}
			}

			if err := op.Read(cmd.Context(), c); err != nil {
				return err
			}
			printer.Summary()

			if reportPath != "" {
				config := report.RunConfig{
					Input:        input,
					Output:       extract.Output(),
					Mode:         string(extract.Mode()),
					VectorPolicy: string(policy),
				}
				if err := collector.SaveToYAML(reportPath, config); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "  Report: %s\n", reportPath)
			}

			if printer.Failed() > 0 {
				slog.Warn("Some images could not be extracted", "failed", printer.Failed())
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Catalog to read: directory, .yaml manifest or .parquet file (required)")
	cmd.Flags().StringVarP(&output, "output", "o", "./extracted", "Output directory (env ACEXTRACT_OUTPUT)")
	cmd.Flags().StringVarP(&mode, "mode", "m", string(operation.ModeNormal), "Output layout: normal or dir, case-insensitive, unknown values use normal (env ACEXTRACT_MODE)")
	cmd.Flags().StringVar(&vectorPolicy, "vector", string(operation.VectorSkip), "Vector rendition handling: skip or fail (env ACEXTRACT_VECTOR_POLICY)")
	cmd.Flags().StringVar(&reportPath, "report", "", "Write a YAML report of every image to this path")
	cmd.Flags().BoolVarP(&list, "list", "l", false, "List the catalog contents before extracting")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}
