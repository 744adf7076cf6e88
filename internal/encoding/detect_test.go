package encoding_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/unicode"

	"github.com/MrJamesThe3rd/wealthfolio/internal/encoding"
)

func readAll(t *testing.T, input []byte) string {
	t.Helper()

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)

	return string(got)
}

func TestNewUTF8Reader_UTF8Passthrough(t *testing.T) {
	input := "거래일자,내용,출금(원),입금(원)\n2026.03.02,스타벅스,5000,\n"
	assert.Equal(t, input, readAll(t, []byte(input)))
}

func TestNewUTF8Reader_EUCKR(t *testing.T) {
	want := "거래일시,적요,출금액,입금액\n2026.03.02 12:30:00,편의점,3500,0\n"

	encoded, err := korean.EUCKR.NewEncoder().Bytes([]byte(want))
	require.NoError(t, err)

	assert.Equal(t, want, readAll(t, encoded))
}

func TestNewUTF8Reader_EUCKRLongerThanPeek(t *testing.T) {
	want := strings.Repeat("2026.03.02,점심식사,12000,\n", 300)

	encoded, err := korean.EUCKR.NewEncoder().Bytes([]byte(want))
	require.NoError(t, err)
	require.Greater(t, len(encoded), 4096)

	assert.Equal(t, want, readAll(t, encoded))
}

func TestNewUTF8Reader_UTF8BOM(t *testing.T) {
	input := append([]byte{0xEF, 0xBB, 0xBF}, []byte("이용일,가맹점명,이용금액\n")...)
	assert.Equal(t, "이용일,가맹점명,이용금액\n", readAll(t, input))
}

func TestNewUTF8Reader_UTF16LE(t *testing.T) {
	want := "Date,Description,Amount\n"

	encoded, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().Bytes([]byte(want))
	require.NoError(t, err)

	assert.Equal(t, want, readAll(t, encoded))
}

func TestNewUTF8Reader_Empty(t *testing.T) {
	assert.Empty(t, readAll(t, nil))
}
