package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/caliper-org/caliper"
	"github.com/caliper-org/caliper/helpers"
	"github.com/caliper-org/caliper/schema"
	"github.com/caliper-org/caliper/units"
)

// ============================================================================
// CALIPER CLI — unit conversion and quantity normalization
// ============================================================================

const version = "0.1.0"

func main() {
	// ── Flags ─────────────────────────────────────────────────────────────
	value := flag.Float64("value", math.NaN(), "Magnitude for a one-off conversion")
	from := flag.String("from", "", "Source unit alias for -value")
	to := flag.String("to", "", "Target unit alias for -value")
	ctxSpec := flag.String("ctx", "", "Context entries as key=value[,key=value] (e.g. temp_c=35)")
	prec := flag.Int("prec", -1, "Decimal places for formatted conversion output")

	filePath := flag.String("file", "", "CSV file to normalize or discover against")
	schemaPath := flag.String("schema", "", "YAML schema declaration for -file")
	outFile := flag.String("out", "", "Write output to file instead of stdout")
	discover := flag.Bool("discover", false, "Propose a schema from the CSV and exit")

	catalogPath := flag.String("catalog", "", "Extra YAML unit catalog to load before anything else")
	dims := flag.Bool("dims", false, "List registered dimensions and exit")
	unitsDim := flag.String("units", "", "List the units of one dimension and exit")

	format := flag.String("format", "text", "Output format: text, json, pretty, csv")
	verbose := flag.Bool("verbose", false, "Log registrations and per-field progress")
	showVersion := flag.Bool("version", false, "Print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Caliper — unit conversion and quantity normalization

Usage:
  caliper -value 680.39 -from kg -to lbs
  caliper -value 2 -from Ma -to km/h -ctx temp_c=35
  caliper -file shipments.csv -schema shipments.yaml -format csv -out clean.csv
  caliper -file shipments.csv -discover -out shipments.yaml
  caliper -dims
  caliper -units temperature

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Formats:
  text      Human-readable output (default)
  json      JSON output
  pretty    Pretty-printed JSON
  csv       CSV output (normalized frame, listing, or conversion row)

Examples:
  # Clean a shipment export and keep the run report
  caliper -file shipments.csv -schema shipments.yaml -format csv -out clean.csv

  # Propose a schema, tweak it, then normalize with it
  caliper -file shipments.csv -discover -out shipments.yaml

  # Ship a custom domain catalog alongside the built-ins
  caliper -catalog carbon.yaml -units carbon
`)
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("caliper %s\n", version)
		os.Exit(0)
	}

	logger := zap.NewNop()
	if *verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			fatalf("Failed to build logger: %v", err)
		}
		logger = l
	}
	defer logger.Sync()

	// ── Catalog ───────────────────────────────────────────────────────────
	if *catalogPath != "" {
		f, err := os.Open(*catalogPath)
		if err != nil {
			fatalf("Failed to open catalog: %v", err)
		}
		err = units.LoadCatalog(f, units.WithLogger(logger))
		f.Close()
		if err != nil {
			fatalf("Failed to load catalog: %v", err)
		}
		log.Printf("📚 Loaded catalog %s", *catalogPath)
	}

	// ── Output writer ─────────────────────────────────────────────────────
	writer := os.Stdout
	if *outFile != "" {
		f, err := os.Create(*outFile)
		if err != nil {
			fatalf("Failed to create output file: %v", err)
		}
		defer f.Close()
		writer = f
	}

	// ── Introspection ─────────────────────────────────────────────────────
	if *dims {
		renderListing(writer, dimsTable(units.Default()), *format)
		return
	}
	if *unitsDim != "" {
		t, err := unitsTable(units.Default(), *unitsDim)
		if err != nil {
			fatalf("%v", err)
		}
		renderListing(writer, t, *format)
		return
	}

	// ── CSV pipeline ──────────────────────────────────────────────────────
	if *filePath != "" {
		runPipeline(writer, *filePath, *schemaPath, *discover, *format, *outFile, logger)
		return
	}

	// ── One-off conversion ────────────────────────────────────────────────
	if *from != "" || *to != "" || !math.IsNaN(*value) {
		if math.IsNaN(*value) || *from == "" || *to == "" {
			fmt.Fprintln(os.Stderr, "Error: a conversion needs -value, -from, and -to")
			flag.Usage()
			os.Exit(1)
		}
		runConvert(writer, *value, *from, *to, *ctxSpec, *prec, *format)
		return
	}

	flag.Usage()
	os.Exit(1)
}

// ============================================================================
// CSV PIPELINE — discover or normalize a file
// ============================================================================

func runPipeline(writer *os.File, filePath, schemaPath string, discover bool, format, outFile string, logger *zap.Logger) {
	f, err := os.Open(filePath)
	if err != nil {
		fatalf("Failed to open file: %v", err)
	}
	frame, err := helpers.ReadFrame(f)
	f.Close()
	if err != nil {
		fatalf("Failed to parse CSV: %v", err)
	}
	log.Printf("📄 Loaded %s: %d rows, %d columns", filePath, frame.Rows(), len(frame.Columns()))

	if discover {
		opts := schema.DefaultDiscoverOptions()
		opts.Logger = logger
		sch, err := schema.Discover(frame, opts)
		if err != nil {
			fatalf("Discovery failed: %v", err)
		}
		log.Printf("🔍 Proposed %d field(s), kept %d column(s)", len(sch.Fields), len(sch.Keep))

		switch format {
		case "json", "pretty":
			writeJSON(writer, sch, format)
		default:
			out, err := yaml.Marshal(sch)
			if err != nil {
				fatalf("Failed to render schema YAML: %v", err)
			}
			fmt.Fprint(writer, string(out))
		}
		if outFile != "" {
			log.Printf("📋 Schema written to %s", outFile)
		}
		return
	}

	if schemaPath == "" {
		fmt.Fprintln(os.Stderr, "Error: -file needs either -schema or -discover")
		flag.Usage()
		os.Exit(1)
	}
	sf, err := os.Open(schemaPath)
	if err != nil {
		fatalf("Failed to open schema: %v", err)
	}
	sch, err := schema.LoadSchema(sf)
	sf.Close()
	if err != nil {
		fatalf("Failed to load schema: %v", err)
	}
	log.Printf("📋 Loaded schema %q: %d field(s)", sch.Name, len(sch.Fields))

	out, rep, err := sch.Normalize(frame, schema.WithLogger(logger))
	if err != nil {
		fatalf("Normalization failed: %v", err)
	}
	log.Printf("✅ Normalized %d rows, %d field(s) in %s", rep.Rows, len(rep.Fields), rep.Duration)

	switch format {
	case "csv":
		if err := helpers.WriteFrame(writer, out); err != nil {
			fatalf("Failed to write CSV: %v", err)
		}
		if outFile != "" {
			log.Printf("📄 CSV written to %s", outFile)
		}
	case "json", "pretty":
		writeJSON(writer, rep, format)
	default:
		writeReportText(writer, rep)
	}
}

// ============================================================================
// ONE-OFF CONVERSION
// ============================================================================

type conversionOutput struct {
	Value     float64 `json:"value"`
	From      string  `json:"from"`
	To        string  `json:"to"`
	Result    float64 `json:"result"`
	Formatted string  `json:"formatted"`
}

func runConvert(writer *os.File, value float64, from, to, ctxSpec string, prec int, format string) {
	ctx, err := parseContext(ctxSpec)
	if err != nil {
		fatalf("%v", err)
	}

	chain := caliper.Convert(value, from).To(to).WithContext(ctx)
	if prec >= 0 {
		chain = chain.Precision(prec)
	}

	result, err := chain.Float()
	if err != nil {
		fatalf("Conversion failed: %v", err)
	}

	switch format {
	case "csv":
		cw := csv.NewWriter(writer)
		cw.Write([]string{"value", "from", "result", "to"})
		cw.Write([]string{
			strconv.FormatFloat(value, 'g', -1, 64),
			from,
			strconv.FormatFloat(result, 'g', -1, 64),
			to,
		})
		cw.Flush()
	case "json", "pretty":
		formatted, err := chain.Tag().Resolve()
		if err != nil {
			fatalf("Conversion failed: %v", err)
		}
		writeJSON(writer, conversionOutput{
			Value:     value,
			From:      from,
			To:        to,
			Result:    result,
			Formatted: formatted,
		}, format)
	default:
		s, err := chain.Verbose().Resolve()
		if err != nil {
			fatalf("Conversion failed: %v", err)
		}
		fmt.Fprintln(writer, s)
	}
}

// parseContext parses "temp_c=35,altitude=300" into a context. Values that
// parse as numbers become float64, everything else stays a string.
func parseContext(spec string) (units.Context, error) {
	if strings.TrimSpace(spec) == "" {
		return nil, nil
	}
	ctx := units.Context{}
	for _, pair := range strings.Split(spec, ",") {
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("bad context entry %q, want key=value", pair)
		}
		k = strings.TrimSpace(k)
		v = strings.TrimSpace(v)
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			ctx[k] = n
		} else {
			ctx[k] = v
		}
	}
	return ctx, nil
}

// ============================================================================
// OUTPUT HELPERS
// ============================================================================

func renderListing(w *os.File, t *table, format string) {
	switch format {
	case "csv":
		t.writeCSV(w)
	case "json", "pretty":
		writeJSON(w, t, format)
	default:
		t.writeText(w)
	}
}

func writeJSON(w *os.File, v any, format string) {
	var out []byte
	var err error

	if format == "pretty" {
		out, err = json.MarshalIndent(v, "", "  ")
	} else {
		out, err = json.Marshal(v)
	}

	if err != nil {
		fatalf("Failed to marshal output: %v", err)
	}
	fmt.Fprintln(w, string(out))
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
