package document

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// FileKind is the closed set of extraction strategies. Classification
// is by file extension only; content sniffing is deliberately avoided.
type FileKind string

const (
	KindPDF         FileKind = "pdf"
	KindDOCX        FileKind = "docx"
	KindUnsupported FileKind = "unsupported"
)

// ClassifyFile maps a storage path to its extraction strategy and
// returns the lower-cased extension alongside.
func ClassifyFile(path string) (FileKind, string) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch ext {
	case "pdf":
		return KindPDF, ext
	case "docx":
		return KindDOCX, ext
	default:
		return KindUnsupported, ext
	}
}

// TextExtractor converts raw uploaded bytes into plain text. Extractors
// are pure: they report failures as errors and leave diagnostic
// rendering to the caller.
type TextExtractor struct{}

func NewTextExtractor() *TextExtractor {
	return &TextExtractor{}
}

// ExtractFromPDF extracts each page's plain text and joins pages with
// newlines. Pages are walked sequentially; the parser shares state
// across pages. A page that fails to decode is skipped.
func (te *TextExtractor) ExtractFromPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to create PDF reader: %w", err)
	}

	numPages := reader.NumPage()
	pages := make([]string, 0, numPages)

	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		pages = append(pages, text)
	}

	return strings.Join(pages, "\n"), nil
}

// ExtractFromDOCX pulls text out of the zip-packaged word/document.xml,
// one line per paragraph. Paragraphs are collected wherever they appear
// in the body, so table cell text is included in document order.
func (te *TextExtractor) ExtractFromDOCX(data []byte) (string, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open DOCX archive: %w", err)
	}

	for _, file := range reader.File {
		if file.Name != "word/document.xml" {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return "", fmt.Errorf("failed to open document.xml: %w", err)
		}
		defer rc.Close()

		return extractDocumentText(rc)
	}

	return "", fmt.Errorf("no word/document.xml in archive")
}

// extractDocumentText walks the document.xml token stream, gathering
// the character data of w:t elements and closing a line on each w:p end
// tag.
func extractDocumentText(r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)

	var result strings.Builder
	var paragraph strings.Builder
	inText := false
	wroteParagraph := false

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to parse document.xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				if wroteParagraph {
					result.WriteString("\n")
				}
				result.WriteString(paragraph.String())
				paragraph.Reset()
				wroteParagraph = true
			}
		case xml.CharData:
			if inText {
				paragraph.Write(t)
			}
		}
	}

	return result.String(), nil
}
