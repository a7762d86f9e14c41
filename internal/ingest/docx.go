package ingest

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/elephantfactory/promogen/internal/common"
)

// readDocx concatenates the paragraph text of word/document.xml. The OOXML
// container is a zip; paragraphs are w:p elements, runs of text live in w:t.
func readDocx(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: open docx container: %v", common.ErrUnreadableUpload, err)
	}

	var doc *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			doc = f
			break
		}
	}
	if doc == nil {
		return "", fmt.Errorf("%w: word/document.xml not found", common.ErrUnreadableUpload)
	}

	rc, err := doc.Open()
	if err != nil {
		return "", fmt.Errorf("%w: open document part: %v", common.ErrUnreadableUpload, err)
	}
	defer rc.Close()

	paragraphs, err := scanParagraphs(rc)
	if err != nil {
		return "", fmt.Errorf("%w: parse document part: %v", common.ErrUnreadableUpload, err)
	}
	return strings.Join(paragraphs, "\n"), nil
}

// scanParagraphs walks the XML token stream collecting the character data of
// every w:t inside each w:p. Empty paragraphs are kept as empty lines, the way
// word processors separate blocks.
func scanParagraphs(r io.Reader) ([]string, error) {
	dec := xml.NewDecoder(r)
	var (
		paragraphs []string
		current    strings.Builder
		inPara     bool
		inText     bool
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				inPara = true
				current.Reset()
			case "t":
				inText = inPara
			case "tab":
				if inPara {
					current.WriteByte('\t')
				}
			case "br":
				if inPara {
					current.WriteByte('\n')
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "p":
				if inPara {
					paragraphs = append(paragraphs, current.String())
				}
				inPara = false
			case "t":
				inText = false
			}
		case xml.CharData:
			if inText {
				current.Write(t)
			}
		}
	}
	return paragraphs, nil
}
