// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdfio turns a source document into the ordered per-page text
// the roster walk consumes. Only the embedded text layer of a PDF is
// read; scanned (image-only) documents are out of scope.
package pdfio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Reader extracts the plain text of each page of a source document, in
// document order. Implementations exist for PDF files and for plain
// text with form-feed page breaks.
type Reader interface {
	ReadPages(path string) ([]string, error)
}

// ForPath selects a Reader by file extension: .pdf gets the PDF text
// layer, anything else is treated as plain text.
func ForPath(path string) Reader {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return PDFReader{}
	}
	return TextReader{}
}

// PDFReader extracts the text layer of a PDF page by page.
type PDFReader struct{}

// ReadPages returns one text string per PDF page. Pages without a text
// layer come back empty so page numbering stays aligned with the
// document.
func (PDFReader) ReadPages(path string) ([]string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening pdf %s: %w", path, err)
	}
	defer f.Close()

	fonts := make(map[string]*pdf.Font)
	pages := make([]string, 0, r.NumPage())

	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			pages = append(pages, "")
			continue
		}

		for _, name := range p.Fonts() {
			if _, ok := fonts[name]; !ok {
				font := p.Font(name)
				fonts[name] = &font
			}
		}

		text, err := p.GetPlainText(fonts)
		if err != nil {
			return nil, fmt.Errorf("reading pdf page %d of %s: %w", i, path, err)
		}
		pages = append(pages, text)
	}

	return pages, nil
}

// TextReader reads a plain-text document, splitting pages on form-feed
// characters. Used for testing the pipeline and for pre-extracted text.
type TextReader struct{}

// ReadPages returns the file's text split into pages on "\f". A file
// without form feeds is a single page.
func (TextReader) ReadPages(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return strings.Split(string(data), "\f"), nil
}
