package renderbench_test

import (
	"bytes"
	"encoding/binary"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rb "github.com/rmcsoft/renderbench"
)

func TestPackPixmap_Runs(t *testing.T) {
	pixmap := solidPixmap(300, 2, 1, 2, 3, 4)

	packed, err := rb.PackPixmap(pixmap)
	require.NoError(t, err)

	// 300 equal pixels split into runs of 255 and 45 per row.
	row := []byte{255, 1, 2, 3, 4, 45, 1, 2, 3, 4, 0}
	assert.Equal(t, append(append([]byte{}, row...), row...), packed.Data)

	unpacked, err := packed.Unpack()
	require.NoError(t, err)
	assert.Equal(t, pixmap.Data, unpacked.Data)
	assert.Equal(t, 1200, unpacked.BytePerLine)
}

func TestPackPixmap_DropsRowPadding(t *testing.T) {
	pixmap := gradientPixmap(17, 9, 4, 90)

	packed, err := rb.PackPixmap(pixmap)
	require.NoError(t, err)
	unpacked, err := packed.Unpack()
	require.NoError(t, err)

	require.Equal(t, 17*4, unpacked.BytePerLine)
	for y := 0; y < 9; y++ {
		want := pixmap.Data[y*pixmap.BytePerLine : y*pixmap.BytePerLine+17*4]
		got := unpacked.Data[y*unpacked.BytePerLine : (y+1)*unpacked.BytePerLine]
		assert.Equal(t, want, got, "row %d", y)
	}
}

func TestPackPixmap_RejectsFewChannels(t *testing.T) {
	_, err := rb.PackPixmap(&rb.Pixmap{Data: make([]byte, 12), Width: 2, Height: 2, BytePerLine: 6, Channels: 3})
	assert.ErrorIs(t, err, rb.ErrChannelCount)
}

func TestPackedPixmap_ReadBack(t *testing.T) {
	packed, err := rb.PackPixmap(gradientPixmap(5, 3, 4, 255))
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := packed.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)

	read, err := rb.ReadPackedPixmap(&buf)
	require.NoError(t, err)
	assert.Equal(t, packed, read)
}

func TestReadPackedPixmap_Invalid(t *testing.T) {
	header := func(magic, channels, width, height uint32) *bytes.Buffer {
		var buf bytes.Buffer
		for _, v := range []uint32{magic, channels, width, height} {
			require.NoError(t, binary.Write(&buf, binary.LittleEndian, v))
		}
		return &buf
	}
	packed, err := rb.PackPixmap(solidPixmap(2, 2, 9, 9, 9, 9))
	require.NoError(t, err)
	var valid bytes.Buffer
	_, err = packed.WriteTo(&valid)
	require.NoError(t, err)
	magic := binary.LittleEndian.Uint32(valid.Bytes())

	_, err = rb.ReadPackedPixmap(header(0xdeadbeef, 4, 2, 2))
	assert.Error(t, err)

	_, err = rb.ReadPackedPixmap(header(magic, 3, 2, 2))
	assert.ErrorIs(t, err, rb.ErrChannelCount)

	_, err = rb.ReadPackedPixmap(header(magic, 4, 0, 2))
	assert.Error(t, err)

	short := header(magic, 4, 2, 2)
	short.Write([]byte{2, 9, 9, 9, 9, 0})
	_, err = rb.ReadPackedPixmap(short)
	assert.ErrorIs(t, err, rb.ErrInvalidPackedData)

	wide := header(magic, 4, 2, 2)
	wide.Write([]byte{3, 9, 9, 9, 9, 0, 2, 9, 9, 9, 9, 0})
	_, err = rb.ReadPackedPixmap(wide)
	assert.ErrorIs(t, err, rb.ErrInvalidPackedData)
}

func TestLoadPixmap_PackedFile(t *testing.T) {
	pixmap := gradientPixmap(6, 4, 4, 33)
	packed, err := rb.PackPixmap(pixmap)
	require.NoError(t, err)

	fileName := filepath.Join(t.TempDir(), "src"+rb.PackedPixmapExt)
	require.NoError(t, packed.Save(fileName))

	loaded, err := rb.LoadPixmap(fileName)
	require.NoError(t, err)
	assert.Equal(t, 6, loaded.Width)
	assert.Equal(t, 4, loaded.Height)
	assert.Equal(t, rb.RGBAChannels, loaded.Channels)
	assert.Equal(t, pixmap.Data[pixmap.BytePerLine:pixmap.BytePerLine+24], loaded.Data[24:48])
}
