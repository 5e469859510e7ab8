package main

import (
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/term"

	"gallery-builder/internal/gallery"
	"gallery-builder/internal/importer"
)

type runSummary struct {
	imported *importer.Result
	report   *gallery.Report
	elapsed  time.Duration
}

func renderSummary(s *runSummary) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Stage", "Files", "Size", "Notes"})

	if s.imported != nil {
		tw.AppendRow(table.Row{
			"Import",
			strconv.Itoa(s.imported.Files),
			humanize.Bytes(uint64(s.imported.Bytes)),
			"",
		})
	}

	if s.report != nil {
		var thumbBytes int64
		reoriented := 0
		for _, t := range s.report.Thumbnails {
			thumbBytes += t.Bytes
			if t.Orientation > 1 {
				reoriented++
			}
		}
		notes := ""
		if reoriented > 0 {
			notes = strconv.Itoa(reoriented) + " reoriented"
		}
		if s.report.Collisions > 0 {
			if notes != "" {
				notes += ", "
			}
			notes += strconv.Itoa(s.report.Collisions) + " name collisions"
		}
		tw.AppendRow(table.Row{
			"Thumbnails",
			strconv.Itoa(len(s.report.Thumbnails)),
			humanize.Bytes(uint64(thumbBytes)),
			notes,
		})
		tw.AppendRow(table.Row{"Manifest", strconv.Itoa(s.report.Photos()), "", ""})
	}

	tw.AppendFooter(table.Row{"Elapsed", "", "", s.elapsed.Round(time.Millisecond).String()})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})
	return tw.Render()
}

// isTerminal reports whether w is a terminal file.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func displayName(path string) string {
	return filepath.Base(path)
}
