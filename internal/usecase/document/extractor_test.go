package document

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyFile(t *testing.T) {
	cases := []struct {
		path string
		kind FileKind
		ext  string
	}{
		{"user1/notes.pdf", KindPDF, "pdf"},
		{"user1/NOTES.PDF", KindPDF, "pdf"},
		{"user1/syllabus.docx", KindDOCX, "docx"},
		{"user1/report.txt", KindUnsupported, "txt"},
		{"user1/archive.tar.gz", KindUnsupported, "gz"},
		{"user1/noextension", KindUnsupported, ""},
	}

	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			kind, ext := ClassifyFile(tc.path)
			assert.Equal(t, tc.kind, kind)
			assert.Equal(t, tc.ext, ext)
		})
	}
}

// buildDOCX assembles a minimal in-memory DOCX archive.
func buildDOCX(t *testing.T, documentXML string) []byte {
	t.Helper()

	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)

	contentTypes, err := w.Create("[Content_Types].xml")
	require.NoError(t, err)
	_, err = contentTypes.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="xml" ContentType="application/xml"/>
</Types>`))
	require.NoError(t, err)

	if documentXML != "" {
		doc, err := w.Create("word/document.xml")
		require.NoError(t, err)
		_, err = doc.Write([]byte(documentXML))
		require.NoError(t, err)
	}

	require.NoError(t, w.Close())
	return buf.Bytes()
}

func docxBody(paragraphs ...string) string {
	body := `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`
	for _, p := range paragraphs {
		body += `<w:p><w:r><w:t>` + p + `</w:t></w:r></w:p>`
	}
	return body + `</w:body></w:document>`
}

func TestExtractFromDOCX(t *testing.T) {
	te := NewTextExtractor()

	data := buildDOCX(t, docxBody("Bubble sort compares adjacent pairs.", "QuickSort averages O(n log n)."))

	text, err := te.ExtractFromDOCX(data)
	require.NoError(t, err)
	assert.Equal(t, "Bubble sort compares adjacent pairs.\nQuickSort averages O(n log n).", text)
}

func TestExtractFromDOCXMultipleRuns(t *testing.T) {
	te := NewTextExtractor()

	documentXML := `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>
<w:p><w:r><w:t>Hello </w:t></w:r><w:r><w:t>world</w:t></w:r></w:p>
</w:body></w:document>`

	text, err := te.ExtractFromDOCX(buildDOCX(t, documentXML))
	require.NoError(t, err)
	assert.Equal(t, "Hello world", text)
}

func TestExtractFromDOCXTableCells(t *testing.T) {
	te := NewTextExtractor()

	documentXML := `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>
<w:p><w:r><w:t>Complexity cheat sheet:</w:t></w:r></w:p>
<w:tbl><w:tr>
<w:tc><w:p><w:r><w:t>Binary search</w:t></w:r></w:p></w:tc>
<w:tc><w:p><w:r><w:t>O(log n)</w:t></w:r></w:p></w:tc>
</w:tr></w:tbl>
<w:p><w:r><w:t>End of sheet.</w:t></w:r></w:p>
</w:body></w:document>`

	text, err := te.ExtractFromDOCX(buildDOCX(t, documentXML))
	require.NoError(t, err)
	assert.Equal(t, "Complexity cheat sheet:\nBinary search\nO(log n)\nEnd of sheet.", text)
}

func TestExtractFromDOCXEmptyBody(t *testing.T) {
	te := NewTextExtractor()

	text, err := te.ExtractFromDOCX(buildDOCX(t, docxBody()))
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestExtractFromDOCXMissingDocumentXML(t *testing.T) {
	te := NewTextExtractor()

	_, err := te.ExtractFromDOCX(buildDOCX(t, ""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "word/document.xml")
}

func TestExtractFromDOCXCorruptArchive(t *testing.T) {
	te := NewTextExtractor()

	_, err := te.ExtractFromDOCX([]byte("this is not a zip archive"))
	require.Error(t, err)
}

// buildPDF assembles a minimal in-memory PDF. Each page holds one
// uncompressed content stream with one text-showing operator per run.
// Run text must not contain parentheses or backslashes.
func buildPDF(t *testing.T, pages ...[]string) []byte {
	t.Helper()

	type object struct {
		num  int
		body string
	}

	var objects []object
	add := func(body string) int {
		objects = append(objects, object{num: len(objects) + 1, body: body})
		return len(objects)
	}

	add("<< /Type /Catalog /Pages 2 0 R >>")
	pagesObj := add("") // kids filled in below
	fontObj := add("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>")

	kids := make([]string, 0, len(pages))
	for _, runs := range pages {
		var stream strings.Builder
		stream.WriteString("BT /F1 12 Tf 72 720 Td")
		for _, run := range runs {
			fmt.Fprintf(&stream, " (%s) Tj", run)
		}
		stream.WriteString(" ET")

		contentObj := add(fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", stream.Len(), stream.String()))
		pageObj := add(fmt.Sprintf(
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 %d 0 R >> >> /Contents %d 0 R >>",
			fontObj, contentObj,
		))
		kids = append(kids, fmt.Sprintf("%d 0 R", pageObj))
	}
	objects[pagesObj-1].body = fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages))

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(objects)+1)
	for _, obj := range objects {
		offsets[obj.num] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", obj.num, obj.body)
	}

	xrefOffset := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for num := 1; num <= len(objects); num++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[num])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xrefOffset)

	return buf.Bytes()
}

func TestExtractFromPDFMultiPage(t *testing.T) {
	te := NewTextExtractor()

	data := buildPDF(t,
		[]string{"Dijkstra maintains a priority queue."},
		[]string{"Bellman-Ford tolerates negative edges."},
		[]string{"Floyd-Warshall covers all pairs."},
	)

	text, err := te.ExtractFromPDF(data)
	require.NoError(t, err)
	assert.Equal(t,
		"Dijkstra maintains a priority queue.\nBellman-Ford tolerates negative edges.\nFloyd-Warshall covers all pairs.",
		text)
}

func TestExtractFromPDFRunsStayInOrder(t *testing.T) {
	te := NewTextExtractor()

	data := buildPDF(t, []string{"Merge sort ", "splits, then ", "merges."})

	text, err := te.ExtractFromPDF(data)
	require.NoError(t, err)
	assert.Equal(t, "Merge sort splits, then merges.", text)
}

func TestExtractFromPDFCorruptData(t *testing.T) {
	te := NewTextExtractor()

	_, err := te.ExtractFromPDF([]byte("%PDF-garbage that is not a real document"))
	require.Error(t, err)
}
