package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextFromStream(t *testing.T) {
	t.Run("reads Tj and TJ show-text operators", func(t *testing.T) {
		stream := []byte("BT\n/F1 12 Tf\n(Model: FX-2000) Tj\n[(Part ) -100 (No: CBL-12)] TJ\nET\n")

		text := textFromStream(stream)
		assert.Contains(t, text, "Model: FX-2000")
		assert.Contains(t, text, "Part No: CBL-12")
	})

	t.Run("single-line text objects ending in ET still decode", func(t *testing.T) {
		stream := []byte("BT 31.19 794.57 Td (Spec: 12 V) Tj ET\n")

		assert.Contains(t, textFromStream(stream), "Spec: 12 V")
	})

	t.Run("quote operator starts a new line", func(t *testing.T) {
		stream := []byte("(first line) Tj\n(second line) '\n")

		assert.Equal(t, "first line\nsecond line", textFromStream(stream))
	})

	t.Run("T* starts a new line", func(t *testing.T) {
		stream := []byte("(one) Tj\nT*\n(two) Tj\n")

		assert.Equal(t, "one\ntwo", textFromStream(stream))
	})

	t.Run("escaped parentheses stay inside the literal", func(t *testing.T) {
		stream := []byte(`(Va \(rated\): 12 V) Tj` + "\n")

		assert.Equal(t, "Va (rated): 12 V", textFromStream(stream))
	})

	t.Run("nested parentheses stay inside the literal", func(t *testing.T) {
		stream := []byte("(outer (inner) text) Tj\n")

		assert.Equal(t, "outer (inner) text", textFromStream(stream))
	})

	t.Run("non-text operators contribute nothing", func(t *testing.T) {
		stream := []byte("q 1 0 0 1 0 0 cm\n0 0 100 100 re f\nQ\n")

		assert.Empty(t, textFromStream(stream))
	})
}

func TestDecodePDFString(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text", "hello", "hello"},
		{"escaped parens", `a\(b\)c`, "a(b)c"},
		{"escaped backslash", `a\\b`, `a\b`},
		{"tab and newline escapes", `a\tb\nc`, "a\tb\nc"},
		{"octal escape", `a\040b`, "a b"},
		{"short octal escape", `a\40b`, "a b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, decodePDFString([]byte(tt.in)))
		})
	}
}
