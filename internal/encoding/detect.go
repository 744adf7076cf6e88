package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const peekSize = 4096

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// NewUTF8Reader detects the encoding of a bank export and returns a reader
// that decodes the content to UTF-8.
//
// Detection order:
//  1. BOM (UTF-8 BOM is stripped; UTF-16 LE/BE is decoded)
//  2. Valid UTF-8 is returned as-is
//  3. Content that decodes cleanly as EUC-KR (CP949) is decoded as such
//  4. Heuristic detection via chardet
//  5. Fallback to EUC-KR
func NewUTF8Reader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)

	buf, err := br.Peek(peekSize)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("peek: %w", err)
	}

	if bytes.HasPrefix(buf, bomUTF8) {
		_, _ = br.Discard(len(bomUTF8))
		return br, nil
	}

	if bytes.HasPrefix(buf, bomUTF16LE) {
		decoder := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
		return transform.NewReader(br, decoder), nil
	}

	if bytes.HasPrefix(buf, bomUTF16BE) {
		decoder := unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder()
		return transform.NewReader(br, decoder), nil
	}

	sample := buf
	if len(buf) == peekSize {
		sample = trimPartial(buf)
	}

	if utf8.Valid(sample) {
		return br, nil
	}

	if isEUCKR(sample) {
		return transform.NewReader(br, korean.EUCKR.NewDecoder()), nil
	}

	detector := chardet.NewTextDetector()

	result, detectErr := detector.DetectBest(buf)
	if detectErr == nil {
		switch result.Charset {
		case "UTF-8":
			return br, nil
		case "EUC-KR":
			return transform.NewReader(br, korean.EUCKR.NewDecoder()), nil
		case "ISO-8859-1", "windows-1252":
			return transform.NewReader(br, charmap.Windows1252.NewDecoder()), nil
		}
	}

	return transform.NewReader(br, korean.EUCKR.NewDecoder()), nil
}

// trimPartial drops trailing non-ASCII bytes from a truncated sample so a
// multi-byte character cut at the peek boundary does not fail validation.
func trimPartial(buf []byte) []byte {
	end := len(buf)
	for end > 0 && buf[end-1] >= utf8.RuneSelf {
		end--
	}

	if end == 0 {
		return buf
	}

	return buf[:end]
}

func isEUCKR(sample []byte) bool {
	decoded, err := korean.EUCKR.NewDecoder().Bytes(sample)
	if err != nil {
		return false
	}

	return !bytes.ContainsRune(decoded, utf8.RuneError)
}
