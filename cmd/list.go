package cmd

import (
	"github.com/lehigh-university-libraries/acextract/internal/catalog"
	"github.com/lehigh-university-libraries/acextract/internal/operation"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the image sets and named images of a catalog",
		Example: `  # Print every image set and its renditions
  acextract list --input ./Assets.parquet`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := catalog.Open(input)
			if err != nil {
				return err
			}
			return operation.NewList(cmd.OutOrStdout()).Read(cmd.Context(), c)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Catalog to read: directory, .yaml manifest or .parquet file (required)")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}
