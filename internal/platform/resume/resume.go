package resume

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"mime"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ledongthuc/pdf"
)

const (
	MIMEPDF  = "application/pdf"
	MIMEDOC  = "application/msword"
	MIMEDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// MaxSize is the largest accepted upload.
const MaxSize = 10 << 20

var (
	ErrUnsupportedType = errors.New("resume must be a PDF, DOC or DOCX file")
	ErrContentMismatch = errors.New("resume content does not match its declared type")
	ErrTooLarge        = errors.New("resume exceeds the 10MB limit")
)

// NormalizeContentType returns the bare media type when it is one of the
// accepted resume formats.
func NormalizeContentType(declared string) (string, error) {
	mediaType, _, err := mime.ParseMediaType(strings.TrimSpace(declared))
	if err != nil {
		return "", ErrUnsupportedType
	}
	switch mediaType {
	case MIMEPDF, MIMEDOC, MIMEDOCX:
		return mediaType, nil
	}
	return "", ErrUnsupportedType
}

// Verify sniffs data and rejects uploads whose bytes are not of the
// declared family.
func Verify(data []byte, declared string) error {
	detected := mimetype.Detect(data)
	switch declared {
	case MIMEPDF:
		if detected.Is(MIMEPDF) {
			return nil
		}
	case MIMEDOCX:
		if detected.Is(MIMEDOCX) || detected.Is("application/zip") {
			return nil
		}
	case MIMEDOC:
		if detected.Is(MIMEDOC) || detected.Is("application/x-ole-storage") {
			return nil
		}
	}
	return fmt.Errorf("%w: got %s", ErrContentMismatch, detected.String())
}

// ExtractText returns the plain text of a PDF or DOCX. Legacy DOC files
// yield no text; callers send those to the model as binary.
func ExtractText(data []byte, mediaType string) (string, error) {
	switch mediaType {
	case MIMEPDF:
		return pdfText(data)
	case MIMEDOCX:
		return docxText(data)
	}
	return "", nil
}

func pdfText(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf reader panic: %v", r)
		}
	}()
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	raw, err := io.ReadAll(&cappedReader{r: plain, left: MaxSize})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(raw)), nil
}

func docxText(data []byte) (string, error) {
	archive, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}
	for _, file := range archive.File {
		if file.Name != "word/document.xml" {
			continue
		}
		if file.UncompressedSize64 > MaxSize {
			return "", ErrTooLarge
		}
		rc, err := file.Open()
		if err != nil {
			return "", err
		}
		defer rc.Close()
		return wordprocessingText(&cappedReader{r: rc, left: MaxSize})
	}
	return "", errors.New("docx has no word/document.xml")
}

// cappedReader fails with ErrTooLarge once more than left bytes have been
// read. Archive headers can understate the real size.
type cappedReader struct {
	r    io.Reader
	left int64
}

func (c *cappedReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.left -= int64(n)
	if c.left < 0 {
		return n, ErrTooLarge
	}
	return n, err
}

// wordprocessingText collects w:t runs, breaking lines at paragraph ends.
func wordprocessingText(r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)
	var b strings.Builder
	inText := false
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parse document.xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				b.WriteByte('\t')
			case "br":
				b.WriteByte('\n')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				b.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				b.Write(t)
			}
		}
	}
	return strings.TrimSpace(b.String()), nil
}
