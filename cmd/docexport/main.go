// Конвертация документов из командной строки: снимок любого редактора, HTML или Markdown на входе,
// HTML, Markdown, PDF, канонический JSON или снимок другого редактора на выходе.
//
// Пример: docexport -in note.json -from slate -to markdown -out note.md
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aisa-it/editorlab/internal/editorlab/editor"
	"github.com/aisa-it/editorlab/internal/editorlab/editor/edtypes"
	"github.com/aisa-it/editorlab/internal/editorlab/editor/exporter"
	"github.com/aisa-it/editorlab/internal/editorlab/editor/host"
	"github.com/aisa-it/editorlab/internal/editorlab/editor/markdown"
	"github.com/aisa-it/editorlab/internal/editorlab/export"
)

type options struct {
	in, from, to, out, title string
	escape, headingLevels    bool
	display                  bool
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		slog.Error("Export fail", "err", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	var opts options
	fs := flag.NewFlagSet("docexport", flag.ContinueOnError)
	fs.StringVar(&opts.in, "in", "-", "Input file, - for stdin")
	fs.StringVar(&opts.from, "from", "document", "Input format: slate, lexical, quill, document, html, markdown")
	fs.StringVar(&opts.to, "to", "html", "Output format: html, markdown, pdf, json, slate, lexical, quill")
	fs.StringVar(&opts.out, "out", "-", "Output file, - for stdout")
	fs.StringVar(&opts.title, "title", "", "PDF document title")
	fs.BoolVar(&opts.escape, "escape", false, "Escape text in HTML output")
	fs.BoolVar(&opts.headingLevels, "heading-levels", false, "Keep heading levels in HTML output")
	fs.BoolVar(&opts.display, "display", false, "Print <empty> for an empty HTML result")
	if err := fs.Parse(args); err != nil {
		return err
	}

	registry := host.NewDefaultRegistry()

	src, err := readInput(opts.in, stdin)
	if err != nil {
		return err
	}
	doc, err := decode(registry, opts.from, src)
	if err != nil {
		return fmt.Errorf("decode %s: %w", opts.from, err)
	}

	result, err := encode(registry, opts, doc)
	if err != nil {
		return fmt.Errorf("encode %s: %w", opts.to, err)
	}

	if opts.out == "-" {
		_, err = stdout.Write(result)
		return err
	}
	return os.WriteFile(opts.out, result, 0o644)
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

func decode(registry *host.Registry, from string, src []byte) (*edtypes.Document, error) {
	switch from {
	case "html":
		return editor.ParseDocument(bytes.NewReader(src))
	case "markdown":
		return markdown.ParseBytes(src), nil
	}
	return registry.Decode(host.Kind(from), bytes.NewReader(src))
}

func encode(registry *host.Registry, opts options, doc *edtypes.Document) ([]byte, error) {
	switch opts.to {
	case "html":
		var exporterOpts []exporter.Option
		if opts.escape {
			exporterOpts = append(exporterOpts, exporter.WithEscaping())
		}
		if opts.headingLevels {
			exporterOpts = append(exporterOpts, exporter.WithHeadingLevels())
		}
		html := exporter.New(exporterOpts...).HTML(doc)
		if opts.display {
			html = exporter.DisplayText(html)
		}
		return []byte(html), nil
	case "markdown":
		md, err := exporter.MarkdownString(doc)
		return []byte(md), err
	case "pdf":
		var buf bytes.Buffer
		err := export.DocumentToFPDF(doc, &buf, export.WithTitle(opts.title))
		return buf.Bytes(), err
	case "json":
		return doc.MarshalJSON()
	}

	b, err := registry.Get(host.Kind(opts.to))
	if err != nil || b.Route == "" {
		return nil, fmt.Errorf("unsupported output format %q", opts.to)
	}
	return b.Encode(doc)
}
