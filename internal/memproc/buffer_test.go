package memproc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferProcessReadWrite(t *testing.T) {
	p := NewBufferProcess(0x140000000)
	assert.Equal(t, uint64(0x140000000), p.ImageBase())

	require.NoError(t, p.WriteBytes(0x5000, []byte{1, 2, 3}))

	got, err := p.ReadBytes(0x5000, 3)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, got)

	// The rest of the touched page reads back zeroed.
	got, err = p.ReadBytes(0x5003, 4)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0, 0}, got)
}

func TestBufferProcessUnmappedRead(t *testing.T) {
	p := NewBufferProcess(0)

	_, err := p.ReadBytes(0x9000, 1)
	assert.ErrorIs(t, err, ErrUnmapped)

	_, err = p.ReadBytes(0x9000, -1)
	assert.ErrorIs(t, err, ErrUnmapped)
}

func TestBufferProcessCrossesPageBoundary(t *testing.T) {
	p := NewBufferProcess(0)

	data := make([]byte, 0x2000)
	for i := range data {
		data[i] = byte(i)
	}

	require.NoError(t, p.WriteBytes(0xFF0, data))

	got, err := p.ReadBytes(0xFF0, len(data))
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestReadWriteUint64(t *testing.T) {
	p := NewBufferProcess(0)

	require.NoError(t, WriteUint64(p, 0x100, 0xDEADBEEFCAFE))

	v, err := ReadUint64(p, 0x100)
	require.NoError(t, err)
	assert.Equal(t, uint64(0xDEADBEEFCAFE), v)
}

func TestSeedHelpers(t *testing.T) {
	p := NewBufferProcess(0)

	p.PutUTF16(0x200, "Doncic")
	raw, err := p.ReadBytes(0x200, 4)
	require.NoError(t, err)
	assert.Equal(t, []byte{'D', 0, 'o', 0}, raw)

	p.PutASCII(0x300, "LAL")
	raw, err = p.ReadBytes(0x300, 4)
	require.NoError(t, err)
	assert.Equal(t, []byte{'L', 'A', 'L', 0}, raw)
}
