// Package main provides the one-shot CLI for datavista: load a spreadsheet
// or CSV, resolve a chart request from flags, and write the rendered chart,
// or print AI visualization suggestions for the file.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"datavista/internal/chart"
	"datavista/internal/config"
	"datavista/internal/dataset"
	"datavista/internal/llm"
	"datavista/internal/render"
	"datavista/internal/suggest"
	"datavista/pkg/logger"
)

var (
	configPath string
	sheet      string

	kind       string
	taskCol    string
	startCol   string
	endCol     string
	xCol       string
	yCol       string
	valueCol   string
	colorCol   string
	colorScale string
	outDir     string
	outName    string
	savePNG    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "datavista",
		Short: "Turn spreadsheets into charts with AI-assisted suggestions",
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "Path to the YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&sheet, "sheet", "", "Sheet name for xlsx input (default: first sheet)")

	renderCmd := &cobra.Command{
		Use:   "render [input.xlsx|input.csv]",
		Short: "Resolve and render a chart from a tabular file",
		Args:  cobra.ExactArgs(1),
		RunE:  runRender,
	}
	renderCmd.Flags().StringVar(&kind, "kind", "", "Chart kind: gantt, bar, scatter, line, heatmap")
	renderCmd.Flags().StringVar(&taskCol, "task", "", "Task column (gantt)")
	renderCmd.Flags().StringVar(&startCol, "start", "", "Start date column (gantt)")
	renderCmd.Flags().StringVar(&endCol, "end", "", "End date column (gantt)")
	renderCmd.Flags().StringVar(&xCol, "x", "", "X-axis column")
	renderCmd.Flags().StringVar(&yCol, "y", "", "Y-axis column")
	renderCmd.Flags().StringVar(&valueCol, "value", "", "Value column (heatmap)")
	renderCmd.Flags().StringVar(&colorCol, "color", "", "Optional color column (bar, scatter, line)")
	renderCmd.Flags().StringVar(&colorScale, "scale", "", "Color scale name (e.g. Viridis)")
	renderCmd.Flags().StringVar(&outDir, "out", "", "Output directory (default: from config)")
	renderCmd.Flags().StringVar(&outName, "name", "", "Output file base name (default: derived from input)")
	renderCmd.Flags().BoolVar(&savePNG, "png", false, "Also rasterize to PNG when supported")
	renderCmd.MarkFlagRequired("kind")

	suggestCmd := &cobra.Command{
		Use:   "suggest [input.xlsx|input.csv]",
		Short: "Print AI visualization suggestions for a tabular file",
		Args:  cobra.ExactArgs(1),
		RunE:  runSuggest,
	}

	sheetsCmd := &cobra.Command{
		Use:   "sheets [input.xlsx]",
		Short: "List the sheet names of a workbook",
		Args:  cobra.ExactArgs(1),
		RunE:  runSheets,
	}

	rootCmd.AddCommand(renderCmd, suggestCmd, sheetsCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadDataset(path string) (*dataset.Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	src, err := dataset.Open(path, data)
	if err != nil {
		return nil, err
	}
	defer src.Close()
	return src.Dataset(sheet)
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}
	ds, err := loadDataset(args[0])
	if err != nil {
		return err
	}

	req := &chart.Request{
		Kind:       chart.Kind(kind),
		Task:       taskCol,
		Start:      startCol,
		End:        endCol,
		X:          xCol,
		Y:          yCol,
		Value:      valueCol,
		ColorScale: colorScale,
	}
	if colorCol != "" {
		req.Color = chart.Column(colorCol)
	}

	spec, err := chart.Resolve(ds, req)
	if err != nil {
		return err
	}

	dir := outDir
	if dir == "" {
		dir = cfg.Output.Dir
	}
	htmlName := ""
	if outName != "" {
		htmlName = outName + ".html"
	}
	htmlPath, err := render.WriteHTML(spec, dir, htmlName)
	if err != nil {
		return err
	}
	fmt.Printf("Saved %s\n", htmlPath)

	if savePNG || cfg.Output.SavePNG {
		pngName := ""
		if outName != "" {
			pngName = outName + ".png"
		}
		pngPath, err := render.WritePNG(spec, dir, pngName)
		if err != nil {
			fmt.Fprintf(os.Stderr, "PNG export skipped: %v\n", err)
		} else {
			fmt.Printf("Saved %s\n", pngPath)
		}
	}
	return nil
}

func runSuggest(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}
	logLevel, err := logrus.ParseLevel(cfg.Logger.Level)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.Init(logLevel)

	ds, err := loadDataset(args[0])
	if err != nil {
		return err
	}

	client, err := llm.NewClient(cfg.LLM)
	if err != nil {
		return fmt.Errorf("language model unavailable: %w", err)
	}

	suggester := suggest.New(client, cfg.Suggestion, logger.New("datavista"))
	fmt.Println(suggester.Suggest(context.Background(), ds))
	return nil
}

func runSheets(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	src, err := dataset.Open(args[0], data)
	if err != nil {
		return err
	}
	defer src.Close()

	sheets := src.SheetNames()
	if len(sheets) == 0 {
		return fmt.Errorf("%s is not a workbook", args[0])
	}
	for _, name := range sheets {
		fmt.Println(name)
	}
	return nil
}
