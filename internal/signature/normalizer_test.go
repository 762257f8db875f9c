package signature

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestNormalizer_Normalize(t *testing.T) {
	n := NewNormalizer(DefaultOptions())

	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{
			name:     "empty message",
			raw:      "",
			expected: EmptySignature,
		},
		{
			name:     "whitespace only",
			raw:      "  \n\t ",
			expected: EmptySignature,
		},
		{
			name:     "keeps first line only",
			raw:      "Expected true\n\tat com.example.FooTest.bar(FooTest.java:12)",
			expected: "expected true",
		},
		{
			name:     "carriage return ends the first line",
			raw:      "boom\r\nsecond",
			expected: "boom",
		},
		{
			name:     "hex object id",
			raw:      "Value was java.lang.Object@1a2b3c4d",
			expected: "value was java.lang.object@<id>",
		},
		{
			name:     "short hex run is kept",
			raw:      "tag @abc",
			expected: "tag @abc",
		},
		{
			name:     "byte array address",
			raw:      "got byte[] 12345 instead",
			expected: "got byte[] <n> instead",
		},
		{
			name:     "absolute path",
			raw:      "cannot open /tmp/run-42/data.bin for reading",
			expected: "cannot open /<path> for reading",
		},
		{
			name:     "bracket index prefix",
			raw:      "[3] Timeout waiting for node",
			expected: "timeout waiting for node",
		},
		{
			name:     "numbers kept by default",
			raw:      "Expected 1 but got 2",
			expected: "expected 1 but got 2",
		},
		{
			name:     "whitespace collapsed",
			raw:      "too    many\t\tspaces",
			expected: "too many spaces",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := n.Normalize(tt.raw)
			if result != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestNormalizer_VolatileTokensCollapse(t *testing.T) {
	n := NewNormalizer(DefaultOptions())

	pairs := [][2]string{
		{"Expected 1 but got 2 @1a2b3c4d", "Expected 1 but got 2 @deadbeef00"},
		{"missing /home/ci/work/a.txt", "missing /Users/dev/b/c.txt"},
		{"[0] request failed", "[17] request failed"},
		{"payload byte[] 1 differs", "payload byte[] 998877 differs"},
		{"first\nstack one", "first\nstack two\nmore"},
	}

	for _, p := range pairs {
		if a, b := n.Normalize(p[0]), n.Normalize(p[1]); a != b {
			t.Errorf("expected %q and %q to share a signature, got %q and %q", p[0], p[1], a, b)
		}
	}
}

func TestNormalizer_NormalizeNumbers(t *testing.T) {
	n := NewNormalizer(Options{NormalizeNumbers: true})

	result := n.Normalize("Expected 10 but got 200 after 3 retries")
	expected := "expected # but got # after # retries"
	if result != expected {
		t.Errorf("expected %q, got %q", expected, result)
	}

	if a, b := n.Normalize("port 6379 refused"), n.Normalize("port 7000 refused"); a != b {
		t.Errorf("expected equal signatures, got %q and %q", a, b)
	}
}

func TestNormalizer_Truncate(t *testing.T) {
	t.Run("default bound", func(t *testing.T) {
		n := NewNormalizer(Options{})
		result := n.Normalize(strings.Repeat("a", 500))
		if len(result) != DefaultMaxLength {
			t.Errorf("expected length %d, got %d", DefaultMaxLength, len(result))
		}
	})

	t.Run("custom bound", func(t *testing.T) {
		n := NewNormalizer(Options{MaxLength: 10})
		result := n.Normalize("abcdefghijklmnop")
		if result != "abcdefghij" {
			t.Errorf("expected %q, got %q", "abcdefghij", result)
		}
	})

	t.Run("counts characters not bytes", func(t *testing.T) {
		n := NewNormalizer(Options{MaxLength: 3})
		result := n.Normalize("ééééé")
		if utf8.RuneCountInString(result) != 3 {
			t.Errorf("expected 3 characters, got %q", result)
		}
	})

	t.Run("bound holds for mixed input", func(t *testing.T) {
		n := NewNormalizer(DefaultOptions())
		inputs := []string{
			strings.Repeat("word ", 100),
			strings.Repeat("/very/long/path ", 40),
			strings.Repeat("@abcdef12 ", 60),
			"short",
		}
		for _, in := range inputs {
			if got := utf8.RuneCountInString(n.Normalize(in)); got > DefaultMaxLength {
				t.Errorf("signature has %d characters, bound is %d", got, DefaultMaxLength)
			}
		}
	})
}

func TestNormalize_UnicodeWhitespace(t *testing.T) {
	n := NewNormalizer(DefaultOptions())

	tests := []struct {
		in       string
		expected string
	}{
		{"a\v\vb", "a b"},
		{"see /tmp/x\u00a0now", "see /<path> now"},
		{"\v", EmptySignature},
		{"\u00a0\u2003", EmptySignature},
	}

	for _, tt := range tests {
		if result := n.Normalize(tt.in); result != tt.expected {
			t.Errorf("Normalize(%q): expected %q, got %q", tt.in, tt.expected, result)
		}
	}
}

func TestSteps(t *testing.T) {
	tests := []struct {
		name     string
		fn       step
		in       string
		expected string
	}{
		{"firstLine trims", firstLine, "  hello \n world", "hello"},
		{"object ids", replaceObjectIDs, "a@ABCDEF b@123", "a@<id> b@123"},
		{"byte arrays", replaceByteArrays, "byte[] 7", "byte[] <n>"},
		{"paths", replacePaths, "at /a/b:3 and /c", "at /<path> and /<path>"},
		{"bracket indexes", stripBracketIndexes, "[12] x [a] y", "x [a] y"},
		{"numbers", replaceNumbers, "a1b22", "a#b#"},
		{"whitespace", collapseWhitespace, "a \t\n b", "a b"},
		{"vertical tab", collapseWhitespace, "a\v\vb", "a b"},
		{"no-break space", collapseWhitespace, "a\u00a0\u00a0b", "a b"},
		{"unicode separators", collapseWhitespace, "a\u2028\u3000b\u0085c", "a b c"},
		{"path ends at no-break space", replacePaths, "see /tmp/x\u00a0now", "see /<path>\u00a0now"},
		{"path ends at vertical tab", replacePaths, "/tmp/x\vnow", "/<path>\vnow"},
		{"truncate", truncate(2), "abc", "ab"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := tt.fn(tt.in); result != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, result)
			}
		})
	}
}
