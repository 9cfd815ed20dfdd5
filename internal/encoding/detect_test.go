package encoding_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/landed/internal/encoding"
)

func TestDetect(t *testing.T) {
	type testCase struct {
		name        string
		input       []byte
		want        string
		wantCharset string
	}

	tests := []testCase{
		{
			name:        "UTF8Passthrough",
			input:       []byte("Description;Quantity\nCafé crème;12,50\n"),
			want:        "Description;Quantity\nCafé crème;12,50\n",
			wantCharset: encoding.CharsetUTF8,
		},
		{
			name:        "UTF8BOM",
			input:       append([]byte{0xEF, 0xBB, 0xBF}, "Item;Qty\n"...),
			want:        "Item;Qty\n",
			wantCharset: encoding.CharsetUTF8,
		},
		{
			name: "UTF16LEBOM",
			// "Qty\n" in UTF-16LE with BOM.
			input:       []byte{0xFF, 0xFE, 'Q', 0x00, 't', 0x00, 'y', 0x00, '\n', 0x00},
			want:        "Qty\n",
			wantCharset: encoding.CharsetUTF16LE,
		},
		{
			name:        "Empty",
			input:       nil,
			want:        "",
			wantCharset: encoding.CharsetUTF8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := encoding.Detect(bytes.NewReader(tt.input))
			require.NoError(t, err)

			got, err := io.ReadAll(d)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
			assert.Equal(t, tt.wantCharset, d.Charset)
		})
	}
}

func TestDetect_Latin1(t *testing.T) {
	// "Désignation;Qté\n" in windows-1252: é = 0xE9.
	input := []byte{
		'D', 0xE9, 's', 'i', 'g', 'n', 'a', 't', 'i', 'o', 'n', ';',
		'Q', 't', 0xE9, '\n',
	}

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "Désignation;Qté\n", string(got))
}

func TestDetect_MultiByteAcrossSniffWindow(t *testing.T) {
	// Push a two-byte rune across the 4096 byte boundary.
	input := strings.Repeat("a", 4095) + "é" + "\n"

	d, err := encoding.Detect(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, encoding.CharsetUTF8, d.Charset)

	got, err := io.ReadAll(d)
	require.NoError(t, err)
	assert.Equal(t, input, string(got))
}
