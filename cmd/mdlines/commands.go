package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/npillmayer/mdlines/backend/htmldoc"
	"github.com/npillmayer/mdlines/core"
	"github.com/npillmayer/mdlines/core/dimen"
	"github.com/npillmayer/mdlines/engine/blocks"
	"github.com/npillmayer/mdlines/engine/probe"
	"github.com/npillmayer/mdlines/engine/textarea"
	"github.com/npillmayer/mdlines/input/markdown/highlight"
	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render FILE",
	Short: "render each editor line of a markdown file to preview HTML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		text, err := readInput(args[0])
		if err != nil {
			return err
		}
		var prober blocks.Prober
		if asBool(cmd, "probe") {
			p, err := newProber(cfg)
			if err != nil {
				return err
			}
			prober = p
		}
		doc := blocks.FromText(text, newRenderer(cfg), prober)
		logger.Debugw("document rendered", "file", args[0], "lines", doc.Len())
		out := cmd.OutOrStdout()
		if asBool(cmd, "json") {
			js, err := blocks.ExportJSON(doc)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(out, js)
			return err
		}
		for _, l := range doc.Lines() {
			if l.ComputedStyles != nil {
				fmt.Fprintf(out, "%d\t%s\t%s\n", l.ID, l.RenderedHTML, l.ComputedStyles)
			} else {
				fmt.Fprintf(out, "%d\t%s\n", l.ID, l.RenderedHTML)
			}
		}
		return nil
	},
}

var probeCmd = &cobra.Command{
	Use:   "probe HTML",
	Short: "compute font size and weight of preview HTML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		p, err := newProber(cfg)
		if err != nil {
			return err
		}
		var fm probe.FontMetrics
		if expr, _ := cmd.Flags().GetString("xpath"); expr != "" {
			fm, err = p.Query(args[0], expr)
			if err != nil && !errors.Is(err, core.ErrMissing) {
				return err
			}
		} else {
			fm = p.ComputedStylesFromHTML(args[0])
		}
		fmt.Fprintf(cmd.OutOrStdout(), "font-size: %s\nfont-weight: %s\n",
			fm.FontSize.OrElse("null"), fm.FontWeight.OrElse("null"))
		return nil
	},
}

var growCmd = &cobra.Command{
	Use:   "grow TEXT",
	Short: "compute the auto-grow height of a textarea holding TEXT",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		tc := cfg.Textarea
		ta := &textarea.Textarea{
			Value:      strings.ReplaceAll(args[0], `\n`, "\n"),
			Width:      tc.WidthDimen(),
			LineHeight: tc.LineHeightDimen(),
			FontFamily: tc.FontFamily,
			FontSize:   tc.FontSizeDimen(),
		}
		if w, _ := cmd.Flags().GetString("width"); w != "" {
			d, _, err := dimen.ParseDimen(w)
			if err != nil {
				return fmt.Errorf("illegal width %q: %w", w, err)
			}
			ta.Width = d
		}
		p := tc.PaddingDimens()
		ta.Padding = textarea.Insets{Top: p[0], Right: p[1], Bottom: p[2], Left: p[3]}
		textarea.NewGrower(textarea.WithEmptyHeight(cfg.EmptyHeightDimen())).AutoGrow(ta)
		fmt.Fprintln(cmd.OutOrStdout(), ta.Style["height"])
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export FILE",
	Short: "export a markdown file as HTML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("output")
		return exportFile(cmd, args[0], out)
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch FILE",
	Short: "export a markdown file as HTML whenever it changes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("output")
		if out == "" || out == "-" {
			return fmt.Errorf("watch needs an output file")
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		return watch(ctx, cmd, args[0], out)
	},
}

var languagesCmd = &cobra.Command{
	Use:   "languages [PREFIX]",
	Short: "list language tags for code fences",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prefix := ""
		if len(args) > 0 {
			prefix = args[0]
		}
		for _, lang := range highlight.Languages(prefix) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", lang, highlight.Normalize(lang))
		}
		return nil
	},
}

func init() {
	renderCmd.Flags().Bool("json", false, "print a JSON document snapshot")
	renderCmd.Flags().Bool("probe", false, "compute font metrics for each line")
	probeCmd.Flags().String("xpath", "", "probe the element selected by an XPath expression")
	growCmd.Flags().String("width", "", "textarea width, overrides the configuration")
	exportCmd.Flags().StringP("output", "o", "-", "output file")
	exportCmd.Flags().Bool("standalone", true, "produce a complete HTML page")
	watchCmd.Flags().StringP("output", "o", "", "output file")
	watchCmd.Flags().Bool("standalone", true, "produce a complete HTML page")
}

func asBool(cmd *cobra.Command, flag string) bool {
	b, _ := cmd.Flags().GetBool(flag)
	return b
}

func exportFile(cmd *cobra.Command, in, out string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	text, err := readInput(in)
	if err != nil {
		return err
	}
	var opts []htmldoc.Option
	if asBool(cmd, "standalone") {
		sheets, err := cfg.ReadStyleSheets()
		if err != nil {
			return err
		}
		title := strings.TrimSuffix(filepath.Base(in), filepath.Ext(in))
		opts = append(opts, htmldoc.Standalone(title), htmldoc.WithStyleSheets(sheets...))
	}
	doc := blocks.FromText(text, newRenderer(cfg), nil)
	html, err := htmldoc.Export(doc, cfg, opts...)
	if err != nil {
		return err
	}
	if out == "-" {
		_, err = cmd.OutOrStdout().Write(html)
		return err
	}
	if err = os.WriteFile(out, html, 0o644); err != nil {
		return err
	}
	logger.Infow("exported", "input", in, "output", out, "bytes", len(html))
	return nil
}

const debounce = 200 * time.Millisecond

func watch(ctx context.Context, cmd *cobra.Command, in, out string) error {
	if err := exportFile(cmd, in, out); err != nil {
		return err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	// watch the directory, editors often replace files on save
	if err := watcher.Add(filepath.Dir(in)); err != nil {
		return err
	}
	target := filepath.Clean(in)
	logger.Infow("watching", "file", in)
	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			logger.Infow("stop watching", "file", in)
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				pending = time.After(debounce)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Errorw("watcher error", "error", err)
		case <-pending:
			pending = nil
			if err := exportFile(cmd, in, out); err != nil {
				logger.Errorw("export failed", "file", in, "error", err)
			}
		}
	}
}
