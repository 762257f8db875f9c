package parser

import (
	"io"

	"clusterfail/internal/domain"
)

// Parser extracts failing test cases from one result document
type Parser interface {
	Parse(r io.Reader, fallbackSuite string) (*Document, error)
}

// Document is the parsed content of one result report
type Document struct {
	Suite   string
	Records []domain.FailureRecord
	// StrayMarkers counts failure or error elements that are not attached to a
	// direct-child testcase and so produced no record.
	StrayMarkers int
}
