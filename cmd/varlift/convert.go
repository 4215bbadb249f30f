package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/varlift/varlift/internal/convert"
	"github.com/varlift/varlift/internal/refseq"
	"github.com/varlift/varlift/internal/store"
)

type convertOptions struct {
	inputPath  string
	outputPath string
	format     string
	workers    int
	cachePath  string
	twobitPath string
	ncbiURL    string
	apiKey     string
}

func newConvertCmd(verbose *bool) *cobra.Command {
	opts := &convertOptions{}

	cmd := &cobra.Command{
		Use:   "convert [notation...]",
		Short: "Convert HGVS or SPDI notations to VCF coordinates",
		Long: `Convert genomic HGVS strings or SPDI strings to VCF coordinate tuples.

Notations are read from the arguments, or one per line from --input (use
'-' for stdin). Output is tab-separated: notation, chrom, pos, ref, alt.
A notation that fails to convert is counted and reported on stderr; it
never aborts the run.`,
		Example: `  varlift convert "NC_000001.11:g.216217352C>T"
  varlift convert --input variants.txt -o out.tsv
  cat variants.txt | varlift convert -i - --workers 8
  varlift convert --twobit hg38.2bit -i variants.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(opts, args, *verbose)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.inputPath, "input", "i", "", "File with one notation per line ('-' for stdin)")
	flags.StringVarP(&opts.outputPath, "output", "o", "", "Output TSV file (default: stdout)")
	flags.StringVarP(&opts.format, "format", "f", "auto", "Input format: auto, hgvs, spdi")
	flags.IntVarP(&opts.workers, "workers", "w", 0, "Worker count (default: number of CPUs)")
	flags.StringVar(&opts.cachePath, "cache", "", "DuckDB file caching conversion results")
	flags.StringVar(&opts.twobitPath, "twobit", "", "Local .2bit reference genome (skips NCBI)")
	flags.StringVar(&opts.ncbiURL, "ncbi-url", "", "Override the NCBI E-utilities endpoint")
	flags.StringVar(&opts.apiKey, "api-key", "", "NCBI API key (raises the rate limit)")

	viper.SetDefault("ncbi.api_key", "")
	viper.SetDefault("ncbi.base_url", "")
	viper.SetDefault("reference.twobit", "")
	viper.SetDefault("cache.path", "")

	return cmd
}

// entry tracks one input notation through lookup, conversion and output.
type entry struct {
	input  string
	rec    *convert.VCFRecord
	cached bool
}

func runConvert(opts *convertOptions, args []string, verbose bool) error {
	switch opts.format {
	case "auto", "hgvs", "spdi":
	default:
		return fmt.Errorf("unknown format %q (want auto, hgvs or spdi)", opts.format)
	}

	inputs, err := readInputs(opts.inputPath, args)
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		return fmt.Errorf("no input notations (pass them as arguments or via --input)")
	}

	logger := newLogger(verbose)
	defer logger.Sync()

	gw, err := buildGateway(opts, logger)
	if err != nil {
		return err
	}

	c := convert.New(gw)
	c.SetLogger(logger)

	cachePath := opts.cachePath
	if cachePath == "" {
		cachePath = viper.GetString("cache.path")
	}
	var db *store.Store
	if cachePath != "" {
		db, err = store.Open(cachePath)
		if err != nil {
			return fmt.Errorf("open result cache: %w", err)
		}
		defer db.Close()
	}

	entries := make([]entry, len(inputs))
	summary := &convert.Summary{Total: len(inputs), Failed: make(map[string]int)}

	// Inputs whose shape contradicts a forced format are parse failures
	// before any conversion runs.
	var misses []string
	var missIdx []int
	for i, in := range inputs {
		entries[i] = entry{input: in}

		if err := checkFormat(opts.format, in); err != nil {
			summary.Failed[convert.FailureReason(err)]++
			if len(summary.Samples) < convert.MaxSampleFailures {
				summary.Samples = append(summary.Samples, convert.FailedItem{Input: in, Err: err})
			}
			logger.Warn("variant conversion failed",
				zap.String("input", in),
				zap.String("reason", convert.FailureReason(err)),
				zap.Error(err))
			continue
		}

		if db != nil {
			rec, found, err := db.Get(in)
			if err != nil {
				return fmt.Errorf("result cache lookup: %w", err)
			}
			if found {
				entries[i].rec = rec
				entries[i].cached = true
				summary.Converted++
				continue
			}
		}

		misses = append(misses, in)
		missIdx = append(missIdx, i)
	}

	// Convert the remaining inputs on the worker pool. Successes arrive in
	// input order, so a single cursor over missIdx maps each emitted input
	// back to its entry (failed inputs are simply skipped over).
	cursor := 0
	batch, err := c.ConvertAll(misses, opts.workers, func(input string, rec *convert.VCFRecord) error {
		for entries[missIdx[cursor]].input != input {
			cursor++
		}
		entries[missIdx[cursor]].rec = rec
		cursor++
		return nil
	})
	if err != nil {
		return err
	}

	summary.Converted += batch.Converted
	for reason, n := range batch.Failed {
		summary.Failed[reason] += n
	}
	for _, s := range batch.Samples {
		if len(summary.Samples) < convert.MaxSampleFailures {
			summary.Samples = append(summary.Samples, s)
		}
	}

	if db != nil {
		for _, e := range entries {
			if e.rec != nil && !e.cached {
				if err := db.Put(e.input, e.rec); err != nil {
					logger.Warn("result cache write failed",
						zap.String("input", e.input), zap.Error(err))
				}
			}
		}
	}

	if err := writeTSV(opts.outputPath, entries); err != nil {
		return err
	}

	printSummary(os.Stderr, summary, entries)
	if summary.Converted == 0 {
		return fmt.Errorf("no input could be converted")
	}
	return nil
}

// checkFormat rejects inputs whose shape contradicts a forced --format.
func checkFormat(format, input string) error {
	switch {
	case format == "hgvs" && convert.LooksLikeSPDI(input):
		return fmt.Errorf("%w: SPDI-shaped input with --format hgvs: %s", convert.ErrParse, input)
	case format == "spdi" && !convert.LooksLikeSPDI(input):
		return fmt.Errorf("%w: non-SPDI input with --format spdi: %s", convert.ErrParse, input)
	}
	return nil
}

// buildGateway picks the reference backend: a local .2bit file when
// configured, the NCBI efetch endpoint otherwise. Either way lookups are
// memoized so a batch fetches each anchor once.
func buildGateway(opts *convertOptions, logger *zap.Logger) (refseq.Gateway, error) {
	twobitPath := opts.twobitPath
	if twobitPath == "" {
		twobitPath = viper.GetString("reference.twobit")
	}
	if twobitPath != "" {
		gw, err := refseq.NewTwoBitGateway(twobitPath)
		if err != nil {
			return nil, err
		}
		logger.Debug("using local 2bit reference", zap.String("path", twobitPath))
		return refseq.NewMemo(gw), nil
	}

	gw := refseq.NewNCBIGateway()
	if opts.ncbiURL != "" {
		gw.SetBaseURL(opts.ncbiURL)
	} else if u := viper.GetString("ncbi.base_url"); u != "" {
		gw.SetBaseURL(u)
	}
	if opts.apiKey != "" {
		gw.SetAPIKey(opts.apiKey)
	} else if key := viper.GetString("ncbi.api_key"); key != "" {
		gw.SetAPIKey(key)
	}
	return refseq.NewMemo(gw), nil
}

// readInputs collects notations from args, or one per line from a file.
func readInputs(path string, args []string) ([]string, error) {
	if path == "" {
		return args, nil
	}
	if len(args) > 0 {
		return nil, fmt.Errorf("pass notations as arguments or via --input, not both")
	}

	var r io.Reader
	if path == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		r = f
	}

	var inputs []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		inputs = append(inputs, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return inputs, nil
}

// writeTSV writes successful conversions in input order.
func writeTSV(path string, entries []entry) error {
	out := os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		out = f
	}

	w := bufio.NewWriter(out)
	fmt.Fprintln(w, "notation\tchrom\tpos\tref\talt")
	for _, e := range entries {
		if e.rec == nil {
			continue
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s\n", e.input, e.rec.Chrom, e.rec.Pos, e.rec.Ref, e.rec.Alt)
	}
	return w.Flush()
}

func printSummary(w io.Writer, summary *convert.Summary, entries []entry) {
	cached := 0
	for _, e := range entries {
		if e.cached {
			cached++
		}
	}

	fmt.Fprintf(w, "Converted %d/%d notations", summary.Converted, summary.Total)
	if cached > 0 {
		fmt.Fprintf(w, " (%d from cache)", cached)
	}
	fmt.Fprintln(w)

	if summary.FailedTotal() > 0 {
		fmt.Fprintf(w, "Failed: %d\n", summary.FailedTotal())
		for reason, n := range summary.Failed {
			fmt.Fprintf(w, "  %-18s %d\n", reason, n)
		}
		for _, s := range summary.Samples {
			fmt.Fprintf(w, "  e.g. %s: %v\n", s.Input, s.Err)
		}
	}
}
