package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/xpec-project/xpec/internal/collector"
	"github.com/xpec-project/xpec/internal/config"
	"github.com/xpec-project/xpec/internal/diag"
	"github.com/xpec-project/xpec/internal/probe"
	"github.com/xpec-project/xpec/internal/report"
)

var (
	version    = "dev"
	commitHash = "unknown"
	buildDate  = "unknown"
)

var (
	cfgFile   string
	outputDir string
	noOpen    bool
	withPDF   bool
	debugMobo bool
	debugGPU  bool
)

var rootCmd = &cobra.Command{
	Use:   "xpec",
	Short: "xpec - hardware specification snapshot tool",
	Long: `xpec inventories the machine it runs on (CPU, memory modules, GPUs,
storage, motherboard), merges the answers from every available platform
source, and renders the result as an HTML report plus a shareable PNG card.

Run without a subcommand to collect and render (equivalent to 'render').`,
	RunE: runRender,
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Collect hardware facts and render the HTML report and PNG card",
	RunE:  runRender,
}

var jsonCmd = &cobra.Command{
	Use:   "json",
	Short: "Collect hardware facts and print the snapshot as JSON",
	RunE:  runJSON,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("xpec %s (commit: %s, built: %s)\n", version, commitHash, buildDate)
	},
}

var jsonOut string

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./xpec.yaml)")
	rootCmd.PersistentFlags().StringVar(&outputDir, "output-dir", ".", "directory for rendered files")
	rootCmd.PersistentFlags().BoolVar(&noOpen, "no-open", false, "do not open the report in a browser")
	rootCmd.PersistentFlags().BoolVar(&withPDF, "pdf", false, "also print the report to PDF")
	rootCmd.PersistentFlags().BoolVar(&debugMobo, "debug-mobo", false, "include verbose motherboard detection notes")
	rootCmd.PersistentFlags().BoolVar(&debugGPU, "debug-gpu", false, "include verbose GPU detection notes")

	jsonCmd.Flags().StringVarP(&jsonOut, "output", "o", "", "write JSON to file instead of stdout")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(jsonCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func switches() diag.Switches {
	sw := diag.SwitchesFromEnv()
	sw.Board = sw.Board || debugMobo
	sw.GPU = sw.GPU || debugGPU
	return sw
}

func newAssembler() *collector.Assembler {
	return collector.NewAssembler(probe.DefaultAdapters(), switches())
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	snap := newAssembler().Snapshot(ctx)

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	html, err := report.GenerateHTML(snap, cfg)
	if err != nil {
		return err
	}
	htmlPath := filepath.Join(outputDir, "xpec.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	log.Printf("report written to %s", htmlPath)

	cardPath := filepath.Join(outputDir, "xpec.png")
	if err := report.GenerateCard(ctx, snap, cfg, cardPath); err != nil {
		// The HTML report stands on its own when no browser is
		// available for rasterizing.
		log.Printf("card skipped: %v", err)
	} else {
		log.Printf("card written to %s", cardPath)
	}

	if withPDF {
		pdfPath := filepath.Join(outputDir, "xpec.pdf")
		if err := report.GeneratePDF(ctx, html, pdfPath); err != nil {
			log.Printf("pdf skipped: %v", err)
		} else {
			log.Printf("pdf written to %s", pdfPath)
		}
	}

	if !noOpen {
		if err := report.Open(htmlPath); err != nil {
			log.Printf("open report: %v", err)
		}
	}
	return nil
}

func runJSON(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	snap := newAssembler().Snapshot(ctx)

	w := os.Stdout
	if jsonOut != "" {
		f, err := os.Create(jsonOut)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if jsonOut != "" {
		log.Printf("snapshot written to %s", jsonOut)
	}
	return nil
}
