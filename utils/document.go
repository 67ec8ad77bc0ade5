package utils

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"
)

// DocumentError reports a document that could not be decoded
type DocumentError struct {
	Format string
	Err    error
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("could not read %s document: %v", e.Format, e.Err)
}

func (e *DocumentError) Unwrap() error {
	return e.Err
}

// DocumentExtractor extracts text from uploaded résumés
type DocumentExtractor struct{}

// NewDocumentExtractor creates a new document extractor
func NewDocumentExtractor() *DocumentExtractor {
	return &DocumentExtractor{}
}

// ExtractText decodes content according to the filename extension. PDF and
// DOCX failures return a *DocumentError; anything else is read as UTF-8 with
// invalid sequences dropped.
func (e *DocumentExtractor) ExtractText(content []byte, filename string) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		text, err := e.extractPDF(content)
		if err != nil {
			return "", &DocumentError{Format: "PDF", Err: err}
		}
		return text, nil

	case ".docx":
		text, err := e.extractDocx(content)
		if err != nil {
			return "", &DocumentError{Format: "DOCX", Err: err}
		}
		return text, nil

	default:
		return strings.ToValidUTF8(string(content), ""), nil
	}
}

func (e *DocumentExtractor) extractPDF(content []byte) (text string, err error) {
	// the pdf reader panics on some malformed inputs
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed PDF: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", err
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", err
	}

	buf := new(bytes.Buffer)
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

const docxBody = "word/document.xml"

func (e *DocumentExtractor) extractDocx(content []byte) (string, error) {
	archive, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", err
	}

	for _, f := range archive.File {
		if f.Name != docxBody {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", err
		}
		defer rc.Close()
		return docxParagraphs(rc)
	}

	return "", errors.New("missing " + docxBody)
}

// docxParagraphs joins the text runs of every w:p element, one line each
func docxParagraphs(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)

	var (
		paragraphs []string
		current    strings.Builder
		inText     bool
	)

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				current.Reset()
			case "t":
				inText = true
			case "tab":
				current.WriteByte('\t')
			case "br", "cr":
				current.WriteByte('\n')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "p":
				paragraphs = append(paragraphs, current.String())
				current.Reset()
			case "t":
				inText = false
			}
		case xml.CharData:
			if inText {
				current.Write(t)
			}
		}
	}

	return strings.Join(paragraphs, "\n"), nil
}

// CountNonSpace counts the runes of s that are not whitespace
func CountNonSpace(s string) int {
	n := 0
	for _, r := range s {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}
