package renderbench

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"os"
)

// PackedPixmapExt is the file extension of packed pixmaps.
const PackedPixmapExt = ".ppixmap"

const packedPixmapMagic = 0x50504d52 // "RMPP"

// ErrInvalidPackedData is returned for malformed run-length data.
var ErrInvalidPackedData = errors.New("invalid packed pixmap data")

// PackedPixmap is a run-length encoded RGBA pixmap. Every row is a list of
// (count, pixel) runs terminated by a zero count.
type PackedPixmap struct {
	Data     []byte
	Width    int
	Height   int
	Channels int
}

// Save saves PackedPixmap
func (packedPixmap *PackedPixmap) Save(fileName string) error {
	file, err := os.Create(fileName)
	if err != nil {
		return err
	}
	defer file.Close()

	if _, err = packedPixmap.WriteTo(file); err != nil {
		return err
	}

	return file.Sync()
}

// WriteTo writes the header and the packed data.
func (packedPixmap *PackedPixmap) WriteTo(w io.Writer) (int64, error) {
	header := []uint32{
		packedPixmapMagic,
		uint32(packedPixmap.Channels),
		uint32(packedPixmap.Width),
		uint32(packedPixmap.Height),
	}
	for _, v := range header {
		if err := binary.Write(w, binary.LittleEndian, v); err != nil {
			return 0, err
		}
	}

	n, err := w.Write(packedPixmap.Data)
	return int64(len(header)*4 + n), err
}

// Unpack unpacks PackedPixmap
func (packedPixmap *PackedPixmap) Unpack() (*Pixmap, error) {
	pixSize := packedPixmap.Channels

	unpackedData := make([]byte, 0, packedPixmap.Width*packedPixmap.Height*pixSize)

	rowCount := 0
	rowSize := 0
	for pos := 0; pos < len(packedPixmap.Data); {
		pixCount := int(packedPixmap.Data[pos])
		pos++
		if pixCount == 0 {
			// New row
			if rowSize != packedPixmap.Width {
				return nil, ErrInvalidPackedData
			}
			rowCount++
			rowSize = 0
			continue
		}

		if pos+pixSize > len(packedPixmap.Data) {
			return nil, ErrInvalidPackedData
		}
		pix := packedPixmap.Data[pos : pos+pixSize]
		for i := 0; i < pixCount; i++ {
			unpackedData = append(unpackedData, pix...)
		}

		rowSize += pixCount
		pos += pixSize
	}

	if rowCount != packedPixmap.Height {
		return nil, ErrInvalidPackedData
	}

	return &Pixmap{
		Data:        unpackedData,
		Width:       packedPixmap.Width,
		Height:      packedPixmap.Height,
		BytePerLine: packedPixmap.Width * pixSize,
		Channels:    pixSize,
	}, nil
}

// LoadPackedPixmap loads PackedPixmap from file
func LoadPackedPixmap(fileName string) (*PackedPixmap, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return ReadPackedPixmap(file)
}

// ReadPackedPixmap reads and validates a packed pixmap.
func ReadPackedPixmap(r io.Reader) (*PackedPixmap, error) {
	header := [4]uint32{}
	for i := 0; i < len(header); i++ {
		if err := binary.Read(r, binary.LittleEndian, &header[i]); err != nil {
			return nil, err
		}
	}
	if header[0] != packedPixmapMagic {
		return nil, errors.New("not a packed pixmap")
	}
	channels := int(header[1])
	if channels < RGBAChannels || channels > 8 {
		return nil, ErrChannelCount
	}
	width := int(header[2])
	if width <= 0 || width > 32000 {
		return nil, errors.New("invalid width")
	}
	height := int(header[3])
	if height <= 0 || height > 32000 {
		return nil, errors.New("invalid height")
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	rowCount := 0
	rowSize := 0
	for pos := 0; pos < len(data); {
		pixCount := data[pos]
		if pixCount == 0 {
			// New row
			if rowSize != width {
				return nil, ErrInvalidPackedData
			}
			rowCount++
			rowSize = 0
			pos++
			continue
		}

		rowSize += int(pixCount)
		pos += 1 + channels
	}

	if rowCount != height {
		return nil, ErrInvalidPackedData
	}

	return &PackedPixmap{
		Data:     data,
		Width:    width,
		Height:   height,
		Channels: channels,
	}, nil
}

// PackPixmap packs Pixmap
func PackPixmap(pixmap *Pixmap) (*PackedPixmap, error) {
	if pixmap.Channels < RGBAChannels {
		return nil, ErrChannelCount
	}

	packedPixmap := &PackedPixmap{
		Width:    pixmap.Width,
		Height:   pixmap.Height,
		Channels: pixmap.Channels,
	}

	pixSize := pixmap.Channels
	for y := 0; y < pixmap.Height; y++ {
		rowOffset := pixmap.BytePerLine * y
		row := pixmap.Data[rowOffset : rowOffset+pixmap.Width*pixSize]

		for pixOffset := 0; pixOffset <= len(row)-pixSize; {
			packedPixel := row[pixOffset : pixOffset+pixSize]

			var eqPixCount byte = 1
			pixOffset += pixSize
			for pixOffset <= len(row)-pixSize && eqPixCount < 0xFF {
				if !bytes.Equal(packedPixel, row[pixOffset:pixOffset+pixSize]) {
					break
				}
				eqPixCount++
				pixOffset += pixSize
			}

			packedPixmap.Data = append(packedPixmap.Data, eqPixCount)
			packedPixmap.Data = append(packedPixmap.Data, packedPixel...)
		}
		packedPixmap.Data = append(packedPixmap.Data, 0x00) // New row
	}

	return packedPixmap, nil
}
