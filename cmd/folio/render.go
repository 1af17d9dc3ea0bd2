package main

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"folio.dev/internal/services"
	"folio.dev/web"
)

var renderCmd = &cobra.Command{
	Use:   "render <output-dir>",
	Short: "Render the page once and write it, with its assets, to a directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		defer logger.Sync() //nolint:errcheck

		outputDir := args[0]
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}

		pages, err := services.NewPageService(cfg, logger)
		if err != nil {
			return fmt.Errorf("creating page service: %w", err)
		}

		fmt.Printf("Rendering page from %s...\n", cfg.API.BaseURL)
		p, err := pages.Load(cmd.Context())
		if err != nil {
			return err
		}

		names := make([]string, 0, len(p.Report))
		for name := range p.Report {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("  %-15s %s\n", name, p.Report[name])
		}

		p.RevealAll()
		f, err := os.Create(filepath.Join(outputDir, "index.html"))
		if err != nil {
			return fmt.Errorf("creating index.html: %w", err)
		}
		if err := p.Render(f); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("writing index.html: %w", err)
		}

		report := make(map[string]string, len(p.Report))
		for name, status := range p.Report {
			report[name] = status.String()
		}
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling report: %w", err)
		}
		if err := os.WriteFile(filepath.Join(outputDir, "report.json"), data, 0644); err != nil {
			return fmt.Errorf("writing report.json: %w", err)
		}

		n, err := copyStatic(filepath.Join(outputDir, "static"))
		if err != nil {
			return err
		}
		fmt.Printf("  Wrote index.html, report.json and %d static files\n", n)
		fmt.Println("Done!")
		return nil
	},
}

func copyStatic(dst string) (int, error) {
	n := 0
	err := fs.WalkDir(web.Static(), ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		target := filepath.Join(dst, filepath.FromSlash(path))
		if d.IsDir() {
			return os.MkdirAll(target, 0755)
		}
		data, err := fs.ReadFile(web.Static(), path)
		if err != nil {
			return err
		}
		n++
		return os.WriteFile(target, data, 0644)
	})
	if err != nil {
		return n, fmt.Errorf("copying static assets: %w", err)
	}
	return n, nil
}

func init() {
	rootCmd.AddCommand(renderCmd)
}
