package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"folio.dev/internal/animate"
	"folio.dev/internal/layout"
	"folio.dev/internal/services"
)

var (
	inspectScroll int
	inspectClick  string
	inspectMenu   bool
	inspectKeys   []string
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Load the page, replay navigation events and print the resulting state",
	Long: `inspect loads the page with the configured layout, applies the given
events in order (scroll, menu toggle, key presses, link click) and prints
which section is highlighted, the menu state, and which animatable
elements have been revealed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		defer logger.Sync() //nolint:errcheck

		pages, err := services.NewPageService(cfg, logger)
		if err != nil {
			return fmt.Errorf("creating page service: %w", err)
		}
		p, err := pages.Load(cmd.Context())
		if err != nil {
			return err
		}

		p.Scroll(inspectScroll)
		if inspectMenu {
			p.ToggleMenu()
		}
		for _, key := range inspectKeys {
			p.KeyDown(key)
		}
		if inspectClick != "" && !p.Click(inspectClick) {
			fmt.Fprintf(os.Stderr, "link %s has no target on this page\n", inspectClick)
		}

		active, _ := p.ActiveSection()
		if err := writeSections(os.Stdout, p.Navbar.Sections(), active); err != nil {
			return err
		}

		fmt.Printf("scrollY: %d  navbar scrolled: %t  menu open: %t\n",
			p.Window.ScrollY(), p.Doc.ByID("navbar").HasClass("scrolled"), p.Menu.IsOpen())
		for _, class := range animate.AnimatableSelectors {
			els := p.Doc.All(class)
			revealed := 0
			for _, el := range els {
				if el.HasClass(animate.Class) {
					revealed++
				}
			}
			fmt.Printf("  %-20s %d/%d revealed\n", class, revealed, len(els))
		}
		return nil
	},
}

// writeSections prints one row per measured section and marks the one the
// navbar highlights.
func writeSections(w io.Writer, sections []layout.Section, active string) error {
	highlight := color.New(color.FgHiGreen, color.Bold).SprintFunc()

	table := tablewriter.NewWriter(w)
	table.Header("SECTION", "TOP", "HEIGHT", "ACTIVE")
	for _, s := range sections {
		id, mark := s.ID, ""
		if s.ID == active {
			id, mark = highlight(s.ID), "*"
		}
		if err := table.Append([]string{id, strconv.Itoa(s.Top), strconv.Itoa(s.Height), mark}); err != nil {
			return fmt.Errorf("adding row for %s: %w", s.ID, err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("rendering section table: %w", err)
	}
	return nil
}

func init() {
	inspectCmd.Flags().IntVar(&inspectScroll, "scroll", 0, "vertical scroll offset in pixels")
	inspectCmd.Flags().StringVar(&inspectClick, "click", "", "nav link href to click, e.g. #projects")
	inspectCmd.Flags().BoolVar(&inspectMenu, "menu", false, "toggle the mobile menu")
	inspectCmd.Flags().StringSliceVar(&inspectKeys, "key", nil, "key presses to send, e.g. Escape")
	rootCmd.AddCommand(inspectCmd)
}
