package domain

// FailureRecord represents one failing test case found in a result report
type FailureRecord struct {
	Suite      string `json:"suite"`
	Test       string `json:"test"`
	Signature  string `json:"signature"`
	RawMessage string `json:"raw_message"`
}
