package signature

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// EmptySignature is the signature of an empty or whitespace-only message
	EmptySignature = "<empty>"
	// DefaultMaxLength bounds the length of a signature in characters
	DefaultMaxLength = 180
)

// space matches what strings.TrimSpace treats as white space. RE2's \s is
// ASCII only and misses \v, NEL and the Unicode separators.
const space = `\s\v\x{85}\p{Z}`

var (
	hexObjectID   = regexp.MustCompile(`@[0-9a-fA-F]{6,16}`)
	byteArrayAddr = regexp.MustCompile(`byte\[\] \d+`)
	absolutePath  = regexp.MustCompile(`/[^` + space + `]+`)
	bracketIndex  = regexp.MustCompile(`\[[0-9]+\] `)
	digitRun      = regexp.MustCompile(`\d+`)
	whitespaceRun = regexp.MustCompile(`[` + space + `]+`)
)

// Options configures a Normalizer
type Options struct {
	// NormalizeNumbers replaces every run of digits with '#'
	NormalizeNumbers bool
	// MaxLength truncates signatures to this many characters; non-positive means DefaultMaxLength
	MaxLength int
}

// DefaultOptions returns the options used when nothing is configured
func DefaultOptions() Options {
	return Options{MaxLength: DefaultMaxLength}
}

type step func(string) string

// Normalizer maps raw failure messages to stable clustering signatures
type Normalizer struct {
	steps []step
}

// NewNormalizer creates a new Normalizer
func NewNormalizer(opts Options) *Normalizer {
	maxLength := opts.MaxLength
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}

	steps := []step{
		firstLine,
		replaceObjectIDs,
		replaceByteArrays,
		replacePaths,
		stripBracketIndexes,
	}
	if opts.NormalizeNumbers {
		steps = append(steps, replaceNumbers)
	}
	steps = append(steps,
		strings.ToLower,
		collapseWhitespace,
		truncate(maxLength),
	)

	return &Normalizer{steps: steps}
}

// Normalize returns the signature for a raw failure message
func (n *Normalizer) Normalize(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return EmptySignature
	}

	msg := raw
	for _, s := range n.steps {
		msg = s(msg)
	}
	return msg
}

// firstLine drops everything after the first line break, stack traces included
func firstLine(msg string) string {
	msg = strings.TrimSpace(msg)
	if i := strings.IndexAny(msg, "\r\n"); i >= 0 {
		msg = msg[:i]
	}
	return msg
}

func replaceObjectIDs(msg string) string {
	return hexObjectID.ReplaceAllLiteralString(msg, "@<id>")
}

func replaceByteArrays(msg string) string {
	return byteArrayAddr.ReplaceAllLiteralString(msg, "byte[] <n>")
}

func replacePaths(msg string) string {
	return absolutePath.ReplaceAllLiteralString(msg, "/<path>")
}

func stripBracketIndexes(msg string) string {
	return bracketIndex.ReplaceAllLiteralString(msg, "")
}

func replaceNumbers(msg string) string {
	return digitRun.ReplaceAllLiteralString(msg, "#")
}

func collapseWhitespace(msg string) string {
	return whitespaceRun.ReplaceAllLiteralString(msg, " ")
}

func truncate(maxLength int) step {
	return func(msg string) string {
		if utf8.RuneCountInString(msg) <= maxLength {
			return msg
		}
		return string([]rune(msg)[:maxLength])
	}
}
