package resume

import (
	"archive/zip"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	ct, err := zw.Create("[Content_Types].xml")
	require.NoError(t, err)
	_, err = ct.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/></Types>`))
	require.NoError(t, err)
	doc, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = doc.Write([]byte(documentXML))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

const sampleDocument = `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>
    <w:p><w:r><w:t>Go</w:t></w:r><w:r><w:tab/><w:t>SQL</w:t></w:r></w:p>
  </w:body>
</w:document>`

func TestNormalizeContentType(t *testing.T) {
	tests := []struct {
		declared string
		want     string
		wantErr  bool
	}{
		{declared: "application/pdf", want: MIMEPDF},
		{declared: "application/msword", want: MIMEDOC},
		{declared: MIMEDOCX + "; charset=binary", want: MIMEDOCX},
		{declared: "image/png", wantErr: true},
		{declared: "text/plain", wantErr: true},
		{declared: "", wantErr: true},
	}
	for _, tc := range tests {
		got, err := NormalizeContentType(tc.declared)
		if tc.wantErr {
			require.ErrorIs(t, err, ErrUnsupportedType, tc.declared)
			continue
		}
		require.NoError(t, err, tc.declared)
		require.Equal(t, tc.want, got)
	}
}

func TestVerifyRejectsMismatchedContent(t *testing.T) {
	err := Verify([]byte("just some text, not a pdf"), MIMEPDF)
	require.True(t, errors.Is(err, ErrContentMismatch))

	require.NoError(t, Verify([]byte("%PDF-1.4\n%âãÏÓ\n"), MIMEPDF))
}

func TestExtractDocxText(t *testing.T) {
	data := buildDocx(t, sampleDocument)
	require.NoError(t, Verify(data, MIMEDOCX))

	text, err := ExtractText(data, MIMEDOCX)
	require.NoError(t, err)
	require.Equal(t, "Jane Doe\nGo\tSQL", text)
}

func TestExtractDocxWithoutDocument(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	_, err := zw.Create("other.txt")
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, err = ExtractText(buf.Bytes(), MIMEDOCX)
	require.Error(t, err)
}

func TestExtractTextFromBrokenPDF(t *testing.T) {
	_, err := ExtractText([]byte("%PDF-1.4 truncated"), MIMEPDF)
	require.Error(t, err)
}

func TestExtractTextLegacyDoc(t *testing.T) {
	text, err := ExtractText([]byte{0xD0, 0xCF, 0x11, 0xE0}, MIMEDOC)
	require.NoError(t, err)
	require.Empty(t, text)
}

func TestExtractDocxRejectsOversizedDocument(t *testing.T) {
	body := strings.Repeat("a", MaxSize+1)
	data := buildDocx(t, `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body><w:p><w:r><w:t>`+body+`</w:t></w:r></w:p></w:body></w:document>`)
	require.Less(t, len(data), MaxSize/100)

	text, err := ExtractText(data, MIMEDOCX)
	require.ErrorIs(t, err, ErrTooLarge)
	require.Empty(t, text)
}

func TestWordprocessingTextStopsAtCap(t *testing.T) {
	doc := `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body><w:p><w:r><w:t>` +
		strings.Repeat("b", 4096) + `</w:t></w:r></w:p></w:body></w:document>`

	_, err := wordprocessingText(&cappedReader{r: strings.NewReader(doc), left: 1024})
	require.ErrorIs(t, err, ErrTooLarge)

	text, err := wordprocessingText(&cappedReader{r: strings.NewReader(sampleDocument), left: int64(len(sampleDocument))})
	require.NoError(t, err)
	require.Equal(t, "Jane Doe\nGo\tSQL", text)
}
