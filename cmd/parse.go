package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"goplss/internal/export"
	"goplss/internal/plss"
	"goplss/pkg/logger"
)

var (
	parseInputPath  string
	parseOutputPath string
	parseLayout     string
	parseDefaultNS  string
	parseDefaultEW  string
	parseCleanQQ    bool
	parseParseQQ    bool
	parseSegment    bool
	parseOCRScrub   bool
	parseQQDepth    int
	parseAppend     bool
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse a PLSS land description into tabular output",
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().StringVarP(&parseInputPath, "input", "i", "", "input file (default: stdin)")
	parseCmd.Flags().StringVarP(&parseOutputPath, "output", "o", "", "output file (default: stdout)")
	parseCmd.Flags().StringVar(&parseLayout, "layout", "", "force a layout instead of auto-detecting")
	parseCmd.Flags().StringVar(&parseDefaultNS, "default-ns", "n", "default N/S direction when omitted")
	parseCmd.Flags().StringVar(&parseDefaultEW, "default-ew", "w", "default E/W direction when omitted")
	parseCmd.Flags().BoolVar(&parseCleanQQ, "clean-qq", false, "accept bare two-letter quarter tokens")
	parseCmd.Flags().BoolVar(&parseParseQQ, "parse-qq", true, "tokenize and expand aliquot/lot descriptions")
	parseCmd.Flags().BoolVar(&parseSegment, "segment", false, "segment multi-tract descriptions before extraction")
	parseCmd.Flags().BoolVar(&parseOCRScrub, "ocr-scrub", false, "apply OCR keyword/glyph recovery before parsing")
	parseCmd.Flags().IntVar(&parseQQDepth, "qq-depth", 0, "force both qq_depth_min and qq_depth_max (0: use defaults)")
	parseCmd.Flags().BoolVar(&parseAppend, "append", false, "append data rows without a header, for appending to an existing file")
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	raw, err := readInput()
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	cfg := plss.NewConfig()
	cfg.DefaultNS = parseDefaultNS
	cfg.DefaultEW = parseDefaultEW
	cfg.CleanQQ = parseCleanQQ
	cfg.ParseQQ = parseParseQQ
	cfg.Segment = parseSegment
	cfg.OCRScrub = parseOCRScrub
	if parseLayout != "" {
		cfg.Layout = plss.Layout(parseLayout)
	}
	if parseQQDepth > 0 {
		cfg = cfg.WithQQDepth(parseQQDepth)
	}

	desc := plss.Parse(raw, parseInputPath, cfg)
	for _, f := range desc.Flags.All() {
		logger.Debug("flag", "kind", f.Kind, "context", f.Context)
	}

	sink := export.NewSink()
	if parseAppend {
		sink.Mode = export.ModeAppend
	}

	out, err := openOutput()
	if err != nil {
		return err
	}
	if out != os.Stdout {
		defer out.Close()
	}

	return sink.Write(out, desc.Tracts)
}

func readInput() (string, error) {
	if parseInputPath == "" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(parseInputPath)
	return string(data), err
}

func openOutput() (*os.File, error) {
	if parseOutputPath == "" {
		return os.Stdout, nil
	}
	flags := os.O_CREATE | os.O_WRONLY
	if parseAppend {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	return os.OpenFile(parseOutputPath, flags, 0o644)
}
