// Генерация документации в формате Markdown: таблица сравнения редакторов и перечень кодов ошибок
// API.
//
// Основные возможности:
//   - Таблица оценок редакторов со звездами, рекомендации по выбору и схемы архитектуры.
//   - Таблица ошибок с кодами, HTTP кодами и сообщениями на английском и русском.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/aisa-it/editorlab/internal/editorlab/apierrors"
	"github.com/aisa-it/editorlab/internal/editorlab/comparison"
	md "github.com/nao1215/markdown"
)

func main() {
	outDir := flag.String("out", "docs", "Output directory")
	flag.Parse()

	slog.Info("Generate docs", "out", *outDir)

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		slog.Error("Create output dir", "err", err)
		os.Exit(1)
	}

	table, err := comparison.Load()
	if err != nil {
		slog.Error("Load comparison table", "err", err)
		os.Exit(1)
	}

	for name, gen := range map[string]func(io.Writer) error{
		"comparison.md": func(w io.Writer) error { return writeComparison(w, table) },
		"errors.md":     func(w io.Writer) error { return writeErrors(w, apierrors.All) },
	} {
		if err := writeFile(filepath.Join(*outDir, name), gen); err != nil {
			slog.Error("Generate docs fail", "file", name, "err", err)
			os.Exit(1)
		}
	}
	slog.Info("Docs generated")
}

func writeFile(path string, gen func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := gen(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// writeComparison пишет таблицу сравнения: строка на аспект, колонка на редактор.
func writeComparison(w io.Writer, table *comparison.Table) error {
	header := []string{"Aspect"}
	for _, e := range table.Editors {
		header = append(header, md.Link(e.Title, e.NPM))
	}

	var rows [][]string
	for _, a := range table.Aspects {
		row := []string{md.Bold(a.Name)}
		for _, e := range table.Editors {
			r := a.Ratings[e.Key]
			row = append(row, fmt.Sprintf("%s %s", comparison.Stars(r.Rating), r.Text))
		}
		rows = append(rows, row)
	}

	m := md.NewMarkdown(w).
		H1(table.Title).
		CustomTable(md.TableSet{Header: header, Rows: rows}, md.TableOptions{AutoWrapText: false}).
		H2("Decision Guide")
	for _, e := range table.Editors {
		m.H3(fmt.Sprintf("Choose %s if:", e.Title)).
			BulletList(e.Guide...)
	}

	m.H2("Architecture")
	for _, e := range table.Editors {
		m.H3(e.Title).
			CodeBlocks(md.SyntaxHighlightText, e.Architecture.Tree())
	}
	return m.Build()
}

func writeErrors(w io.Writer, errs []apierrors.DefinedError) error {
	rows := make([][]string, 0, len(errs))
	for _, e := range errs {
		rows = append(rows, []string{
			strconv.Itoa(e.Code),
			strconv.Itoa(e.StatusCode),
			e.Err,
			e.RuErr,
		})
	}

	return md.NewMarkdown(w).
		H1("Перечень кодов ошибок").
		PlainText("Данный раздел посвящен описанию возможных ошибок от сервера.").
		CustomTable(md.TableSet{
			Header: []string{"Код", "HTTP код", "Сообщение", "Сообщение на русском"},
			Rows:   rows,
		}, md.TableOptions{
			AutoWrapText: false,
		}).Build()
}
