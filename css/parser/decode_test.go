package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSheet(t *testing.T) {
	for _, test := range []struct {
		input                 []byte
		protocol, environment string
		expected              string
	}{
		{[]byte("p { color: red }"), "", "", "p { color: red }"},
		{append([]byte{0xEF, 0xBB, 0xBF}, "p{}"...), "latin1", "", "p{}"},
		{[]byte{0xFF, 0xFE, 'p', 0, '{', 0, '}', 0}, "", "", "p{}"},
		{[]byte{0xFE, 0xFF, 0, 'p', 0, '{', 0, '}'}, "", "", "p{}"},
		// é in latin1
		{[]byte("p::before { content: \"\xe9\" }"), "iso-8859-1", "", "p::before { content: \"é\" }"},
		{[]byte("@charset \"latin1\"; p::before { content: \"\xe9\" }"), "", "", "@charset \"latin1\"; p::before { content: \"é\" }"},
		// the protocol encoding wins over @charset
		{[]byte("@charset \"latin1\"; a{content:\"é\"}"), "utf-8", "", "@charset \"latin1\"; a{content:\"é\"}"},
		{[]byte("a{content:\"\xe9\"}"), "", "windows-1252", "a{content:\"é\"}"},
		{[]byte("a{content:\"\xe9\"}"), "", "", "a{content:\"\uFFFD\"}"},
	} {
		got, err := DecodeSheet(test.input, test.protocol, test.environment)
		require.NoError(t, err)
		assert.Equal(t, test.expected, got)
	}
}
