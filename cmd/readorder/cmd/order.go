package cmd

import (
	"encoding/json"
	"fmt"
	"image"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	// Register BMP decoding for underlay images.
	_ "golang.org/x/image/bmp"

	"github.com/MeKo-Tech/readorder/internal/layout"
	"github.com/MeKo-Tech/readorder/internal/page"
	"github.com/MeKo-Tech/readorder/internal/render"
)

// orderCmd represents the order command.
var orderCmd = &cobra.Command{
	Use:   "order [elements.json]",
	Short: "Compute the reading order for a detected page",
	Long: `Compute the natural reading order for the layout elements of one page.

The input is a JSON page document with the page size and the detected
elements (id, box, semantic label, mask flag). The output is the ordered
id sequence.

Examples:
  readorder order page.json
  readorder order page.json --format text
  readorder order page.json --overlay order.png --underlay scan.png`,
	Args: cobra.ExactArgs(1),
	RunE: runOrder,
}

func init() {
	rootCmd.AddCommand(orderCmd)

	orderCmd.Flags().StringP("format", "f", "json", "output format (json, yaml, text)")
	orderCmd.Flags().StringP("output", "o", "", "write output to file instead of stdout")
	orderCmd.Flags().String("overlay", "", "write a reading-order overlay image to this path")
	orderCmd.Flags().String("underlay", "", "page image to draw the overlay onto")
	orderCmd.Flags().Float64("min-cut-threshold", 0, "minimum empty-projection run treated as a cut (px)")
	orderCmd.Flags().Float64("resolution-scale", 0, "histogram bins per pixel")
	orderCmd.Flags().Float64("row-tolerance", 0, "same-row vertical tolerance (px)")
	orderCmd.Flags().Bool("trace", false, "log cut and insertion decisions at debug level")
}

func runOrder(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	layoutCfg := cfg.Layout
	if cmd.Flags().Changed("min-cut-threshold") {
		layoutCfg.MinCutThreshold, _ = cmd.Flags().GetFloat64("min-cut-threshold")
	}
	if cmd.Flags().Changed("resolution-scale") {
		layoutCfg.HistogramResolutionScale, _ = cmd.Flags().GetFloat64("resolution-scale")
	}
	if cmd.Flags().Changed("row-tolerance") {
		layoutCfg.SameRowTolerance, _ = cmd.Flags().GetFloat64("row-tolerance")
	}
	if err := layoutCfg.Validate(); err != nil {
		return fmt.Errorf("invalid layout configuration: %w", err)
	}

	format := cfg.Output.Format
	if cmd.Flags().Changed("format") {
		format, _ = cmd.Flags().GetString("format")
	}
	outputFile := cfg.Output.File
	if cmd.Flags().Changed("output") {
		outputFile, _ = cmd.Flags().GetString("output")
	}
	overlayFile := cfg.Output.OverlayFile
	if cmd.Flags().Changed("overlay") {
		overlayFile, _ = cmd.Flags().GetString("overlay")
	}
	underlayFile := cfg.Output.UnderlayFile
	if cmd.Flags().Changed("underlay") {
		underlayFile, _ = cmd.Flags().GetString("underlay")
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading page document: %w", err)
	}
	doc, err := page.FromJSON(data)
	if err != nil {
		return err
	}
	if err := doc.Validate(); err != nil {
		return fmt.Errorf("invalid page document: %w", err)
	}
	blocks, err := doc.Blocks()
	if err != nil {
		return err
	}

	var opts []layout.Option
	if trace, _ := cmd.Flags().GetBool("trace"); trace {
		opts = append(opts, layout.WithTracer(layout.SlogTracer{}))
	}
	orderer := layout.NewOrderer(layoutCfg, opts...)
	order := orderer.ComputeOrder(page.AsElements(blocks), doc.Rect())

	slog.Debug("computed reading order", "elements", len(blocks), "order", order)

	result := page.OrderResult{Order: order, Count: len(order)}
	out, err := formatResult(result, format)
	if err != nil {
		return err
	}

	if outputFile != "" {
		if err := os.WriteFile(outputFile, out, 0o600); err != nil {
			return fmt.Errorf("writing output file: %w", err)
		}
	} else {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(string(out), "\n"))
	}

	if overlayFile != "" {
		if err := writeOverlay(doc, blocks, order, overlayFile, underlayFile); err != nil {
			return err
		}
	}

	return nil
}

func formatResult(result page.OrderResult, format string) ([]byte, error) {
	switch format {
	case "", "json":
		return json.MarshalIndent(result, "", "  ")
	case "yaml":
		return yaml.Marshal(result)
	case "text":
		parts := make([]string, len(result.Order))
		for i, id := range result.Order {
			parts[i] = fmt.Sprintf("%d", id)
		}
		return []byte(strings.Join(parts, " ")), nil
	default:
		return nil, fmt.Errorf("invalid output format %q (valid: json, yaml, text)", format)
	}
}

func writeOverlay(doc page.Document, blocks []layout.Block, order []int, overlayFile, underlayFile string) error {
	var underlay image.Image
	if underlayFile != "" {
		img, err := render.LoadUnderlay(underlayFile)
		if err != nil {
			return err
		}
		underlay = img
	}

	img, err := render.Overlay(doc.Width, doc.Height, blocks, order, underlay, render.DefaultOptions())
	if err != nil {
		return err
	}
	return render.Save(img, overlayFile)
}
