package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	textenc "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Charset names reported by Detect.
const (
	CharsetUTF8        = "UTF-8"
	CharsetUTF16LE     = "UTF-16LE"
	CharsetUTF16BE     = "UTF-16BE"
	CharsetWindows1252 = "windows-1252"
	CharsetISO88599    = "ISO-8859-9"
	CharsetISO885915   = "ISO-8859-15"
)

const sniffLen = 4096

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// Decoded is a UTF-8 view of an input along with the charset it was read as.
type Decoded struct {
	io.Reader
	Charset string
}

// Detect sniffs the charset of r and returns a reader that yields UTF-8.
// A BOM wins, then valid UTF-8, then chardet's best guess; anything else is
// read as windows-1252, which is what spreadsheet exports fall back to.
func Detect(r io.Reader) (Decoded, error) {
	br := bufio.NewReaderSize(r, sniffLen)

	buf, err := br.Peek(sniffLen)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return Decoded{}, fmt.Errorf("peek: %w", err)
	}

	switch {
	case bytes.HasPrefix(buf, bomUTF8):
		_, _ = br.Discard(len(bomUTF8))
		return Decoded{Reader: br, Charset: CharsetUTF8}, nil
	case bytes.HasPrefix(buf, bomUTF16LE):
		return decode(br, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM), CharsetUTF16LE), nil
	case bytes.HasPrefix(buf, bomUTF16BE):
		return decode(br, unicode.UTF16(unicode.BigEndian, unicode.UseBOM), CharsetUTF16BE), nil
	case validUTF8Prefix(buf):
		return Decoded{Reader: br, Charset: CharsetUTF8}, nil
	}

	if result, err := chardet.NewTextDetector().DetectBest(buf); err == nil {
		switch result.Charset {
		case "UTF-8":
			return Decoded{Reader: br, Charset: CharsetUTF8}, nil
		case "ISO-8859-9":
			return decode(br, charmap.ISO8859_9, CharsetISO88599), nil
		case "ISO-8859-15":
			return decode(br, charmap.ISO8859_15, CharsetISO885915), nil
		}
	}

	return decode(br, charmap.Windows1252, CharsetWindows1252), nil
}

// NewUTF8Reader is Detect without the charset name.
func NewUTF8Reader(r io.Reader) (io.Reader, error) {
	d, err := Detect(r)
	if err != nil {
		return nil, err
	}

	return d.Reader, nil
}

func decode(r io.Reader, e textenc.Encoding, charset string) Decoded {
	return Decoded{Reader: transform.NewReader(r, e.NewDecoder()), Charset: charset}
}

// validUTF8Prefix reports whether buf is UTF-8, tolerating a multi-byte rune
// cut off at the end of the sniffed window.
func validUTF8Prefix(buf []byte) bool {
	if utf8.Valid(buf) {
		return true
	}

	for i := 1; i < utf8.UTFMax && i < len(buf); i++ {
		if utf8.Valid(buf[:len(buf)-i]) && !utf8.FullRune(buf[len(buf)-i:]) {
			return true
		}
	}

	return false
}
