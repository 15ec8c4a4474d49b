package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rostermem/internal/memproc"
)

func TestStringRoundtripUTF16(t *testing.T) {
	const (
		base     = 0x5000
		capacity = 20
	)

	p := memproc.NewBufferProcess(0)

	require.NoError(t, WriteString(p, base, "LeBron", capacity, EncodingUTF16))

	got, err := ReadString(p, base, capacity, EncodingUTF16)
	require.NoError(t, err)
	assert.Equal(t, "LeBron", got)
}

func TestStringRoundtripASCII(t *testing.T) {
	const base = 0x5100

	p := memproc.NewBufferProcess(0)

	require.NoError(t, WriteString(p, base, "LAL", 8, EncodingASCII))

	got, err := ReadString(p, base, 8, EncodingASCII)
	require.NoError(t, err)
	assert.Equal(t, "LAL", got)
}

func TestWriteStringTruncatesAtCapacity(t *testing.T) {
	const base = 0x5200

	p := memproc.NewBufferProcess(0)

	require.NoError(t, WriteString(p, base, "Antetokounmpo", 6, EncodingUTF16))

	got, err := ReadString(p, base, 6, EncodingUTF16)
	require.NoError(t, err)
	assert.Equal(t, "Anteto", got)
}

func TestWriteStringClearsPreviousTail(t *testing.T) {
	const (
		base     = 0x5300
		capacity = 16
	)

	p := memproc.NewBufferProcess(0)

	require.NoError(t, WriteString(p, base, "Antetokounmpo", capacity, EncodingUTF16))
	require.NoError(t, WriteString(p, base, "Ming", capacity, EncodingUTF16))

	got, err := ReadString(p, base, capacity, EncodingUTF16)
	require.NoError(t, err)
	assert.Equal(t, "Ming", got)
}

func TestStringCapacityValidation(t *testing.T) {
	p := memproc.NewBufferProcess(0)

	_, err := ReadString(p, 0x100, 0, EncodingUTF16)
	assert.ErrorIs(t, err, ErrBadCapacity)

	err = WriteString(p, 0x100, "x", -1, EncodingASCII)
	assert.ErrorIs(t, err, ErrBadCapacity)
}

func TestParseEncoding(t *testing.T) {
	assert.Equal(t, EncodingASCII, ParseEncoding("string"))
	assert.Equal(t, EncodingASCII, ParseEncoding("text"))
	assert.Equal(t, EncodingASCII, ParseEncoding("ASCII"))
	assert.Equal(t, EncodingUTF16, ParseEncoding("wstring"))
	assert.Equal(t, EncodingUTF16, ParseEncoding(""))
}
