package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/varlift/varlift/internal/convert"
)

func newHGVSCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hgvs <spdi> | <accession> <pos> <ref> <alt>",
		Short: "Synthesize a genomic HGVS string",
		Long: `Synthesize a genomic HGVS string from a SPDI string (one argument) or
from VCF coordinates (accession, 1-based position, ref allele, alt allele).
Both directions are pure string synthesis; no reference lookups are made.`,
		Example: `  varlift hgvs NC_000011.10:108222767:C:T
  varlift hgvs NC_000001.11 23603624 TAG T`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 && len(args) != 4 {
				return fmt.Errorf("expected a single SPDI string or accession/pos/ref/alt")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				g   string
				err error
			)
			if len(args) == 1 {
				g, err = convert.SPDIToGenomicHGVS(args[0])
			} else {
				var pos int64
				pos, err = strconv.ParseInt(args[1], 10, 64)
				if err != nil {
					return fmt.Errorf("position %q is not an integer", args[1])
				}
				g, err = convert.VCFToGenomicHGVS(args[0], pos, args[2], args[3])
			}
			if err != nil {
				return err
			}
			fmt.Println(g)
			return nil
		},
	}
}
