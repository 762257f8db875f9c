package parser

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"

	"clusterfail/internal/domain"
	"clusterfail/internal/signature"
)

// UnknownTest names a testcase that carries no name attribute
const UnknownTest = "<unknown>"

var (
	errNoRoot       = errors.New("no root element")
	errTrailingData = errors.New("content after root element")
)

type testCase struct {
	Name     *string       `xml:"name,attr"`
	Failures []failureNode `xml:"failure"`
	Errors   []failureNode `xml:"error"`
}

// failureNode is a failure or error element. Text holds only the character
// data that precedes the element's first child.
type failureNode struct {
	Message *string
	Text    string
}

// UnmarshalXML implements xml.Unmarshaler
func (n *failureNode) UnmarshalXML(dec *xml.Decoder, start xml.StartElement) error {
	if message, ok := attr(start, "message"); ok {
		n.Message = &message
	}

	var text strings.Builder
	inText := true
	for depth := 1; depth > 0; {
		tok, err := dec.Token()
		if err != nil {
			return err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			inText = false
		case xml.EndElement:
			depth--
		case xml.CharData:
			if inText {
				text.Write(t)
			}
		}
	}

	n.Text = text.String()
	return nil
}

// JUnitParser parses JUnit-style XML reports
type JUnitParser struct {
	normalizer *signature.Normalizer
}

// NewJUnitParser creates a new JUnitParser
func NewJUnitParser(normalizer *signature.Normalizer) *JUnitParser {
	return &JUnitParser{normalizer: normalizer}
}

// Parse reads one report and returns a record for every direct-child testcase
// that has a failure or error child. The suite name comes from the root's name
// attribute, or fallbackSuite when the attribute is absent.
func (p *JUnitParser) Parse(r io.Reader, fallbackSuite string) (*Document, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel

	root, err := rootElement(dec)
	if err != nil {
		return nil, err
	}

	doc := &Document{Suite: fallbackSuite}
	if name, ok := attr(root, "name"); ok {
		doc.Suite = name
	}

	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("read <%s>: %w", root.Name.Local, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local != "testcase" {
				n, err := countMarkers(dec, t)
				if err != nil {
					return nil, fmt.Errorf("read <%s>: %w", t.Name.Local, err)
				}
				doc.StrayMarkers += n
				continue
			}

			var tc testCase
			if err := dec.DecodeElement(&tc, &t); err != nil {
				return nil, fmt.Errorf("decode testcase: %w", err)
			}
			if record, ok := p.record(doc.Suite, tc); ok {
				doc.Records = append(doc.Records, record)
			}
		case xml.EndElement:
			if err := expectEOF(dec); err != nil {
				return nil, err
			}
			return doc, nil
		}
	}
}

func (p *JUnitParser) record(suite string, tc testCase) (domain.FailureRecord, bool) {
	var node *failureNode
	switch {
	case len(tc.Failures) > 0:
		node = &tc.Failures[0]
	case len(tc.Errors) > 0:
		node = &tc.Errors[0]
	default:
		return domain.FailureRecord{}, false
	}

	var raw string
	if node.Message != nil && *node.Message != "" {
		raw = *node.Message
	} else {
		raw = strings.TrimSpace(node.Text)
	}

	test := UnknownTest
	if tc.Name != nil {
		test = *tc.Name
	}

	return domain.FailureRecord{
		Suite:      suite,
		Test:       test,
		Signature:  p.normalizer.Normalize(raw),
		RawMessage: raw,
	}, true
}

// rootElement skips the prolog and returns the document's root start element
func rootElement(dec *xml.Decoder) (xml.StartElement, error) {
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return xml.StartElement{}, errNoRoot
		}
		if err != nil {
			return xml.StartElement{}, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			return t, nil
		case xml.CharData:
			if len(strings.TrimSpace(string(t))) > 0 {
				return xml.StartElement{}, errNoRoot
			}
		}
	}
}

// expectEOF accepts only whitespace, comments and processing instructions
// after the root element has been closed
func expectEOF(dec *xml.Decoder) error {
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			return errTrailingData
		case xml.CharData:
			if len(strings.TrimSpace(string(t))) > 0 {
				return errTrailingData
			}
		}
	}
}

// countMarkers consumes the subtree opened by start and counts the failure and
// error elements inside it
func countMarkers(dec *xml.Decoder, start xml.StartElement) (int, error) {
	n := 0
	if isMarker(start) {
		n++
	}

	for depth := 1; depth > 0; {
		tok, err := dec.Token()
		if err != nil {
			return 0, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			if isMarker(t) {
				n++
			}
		case xml.EndElement:
			depth--
		}
	}

	return n, nil
}

func isMarker(el xml.StartElement) bool {
	return el.Name.Local == "failure" || el.Name.Local == "error"
}

func attr(el xml.StartElement, name string) (string, bool) {
	for _, a := range el.Attr {
		if a.Name.Space == "" && a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}
