package media

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"image"
	"io"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"

	"gallery-builder/internal/logging"
)

// EXIF orientation values (TIFF tag 0x0112).
const (
	OrientationNormal     = 1
	OrientationFlipH      = 2
	OrientationRotate180  = 3
	OrientationFlipV      = 4
	OrientationTranspose  = 5
	OrientationRotate270  = 6
	OrientationTransverse = 7
	OrientationRotate90   = 8
)

// maxExifChunk bounds the EXIF payload read from PNG and WebP containers.
const maxExifChunk = 16 << 20

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

// ReadOrientation returns the EXIF orientation stored in r, or
// OrientationNormal when there is no usable tag. JPEG APP1, PNG eXIf and WebP
// EXIF chunks are understood.
func ReadOrientation(r io.Reader) int {
	br := bufio.NewReader(r)
	head, _ := br.Peek(12)

	var src io.Reader = br
	switch {
	case bytes.HasPrefix(head, pngSignature):
		payload, ok := pngExif(br)
		if !ok {
			return OrientationNormal
		}
		src = bytes.NewReader(payload)
	case len(head) == 12 && string(head[:4]) == "RIFF" && string(head[8:]) == "WEBP":
		payload, ok := webpExif(br)
		if !ok {
			return OrientationNormal
		}
		src = bytes.NewReader(payload)
	}

	x, err := exif.Decode(src)
	if err != nil {
		return OrientationNormal
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return OrientationNormal
	}
	o, err := tag.Int(0)
	if err != nil || o < OrientationNormal || o > OrientationRotate90 {
		logging.Debug("Ignoring EXIF orientation %v: %v", tag, err)
		return OrientationNormal
	}
	return o
}

// pngExif returns the body of the first eXIf chunk.
func pngExif(r io.Reader) ([]byte, bool) {
	if _, err := io.CopyN(io.Discard, r, int64(len(pngSignature))); err != nil {
		return nil, false
	}
	var hdr [8]byte
	for {
		if _, err := io.ReadFull(r, hdr[:]); err != nil {
			return nil, false
		}
		size := int64(binary.BigEndian.Uint32(hdr[:4]))
		switch string(hdr[4:]) {
		case "eXIf":
			return readChunk(r, size)
		case "IEND":
			return nil, false
		}
		// body + CRC
		if _, err := io.CopyN(io.Discard, r, size+4); err != nil {
			return nil, false
		}
	}
}

// webpExif returns the body of the RIFF EXIF chunk.
func webpExif(r io.Reader) ([]byte, bool) {
	if _, err := io.CopyN(io.Discard, r, 12); err != nil {
		return nil, false
	}
	var hdr [8]byte
	for {
		if _, err := io.ReadFull(r, hdr[:]); err != nil {
			return nil, false
		}
		size := int64(binary.LittleEndian.Uint32(hdr[4:]))
		if string(hdr[:4]) == "EXIF" {
			return readChunk(r, size)
		}
		// chunks are padded to an even size
		if _, err := io.CopyN(io.Discard, r, size+size&1); err != nil {
			return nil, false
		}
	}
}

func readChunk(r io.Reader, size int64) ([]byte, bool) {
	if size <= 0 || size > maxExifChunk {
		return nil, false
	}
	buf := make([]byte, size)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, false
	}
	return buf, true
}

// Orient returns img transformed so that an image tagged with orientation o
// displays upright.
func Orient(img image.Image, o int) image.Image {
	switch o {
	case OrientationFlipH:
		return imaging.FlipH(img)
	case OrientationRotate180:
		return imaging.Rotate180(img)
	case OrientationFlipV:
		return imaging.FlipV(img)
	case OrientationTranspose:
		return imaging.Transpose(img)
	case OrientationRotate270:
		return imaging.Rotate270(img)
	case OrientationTransverse:
		return imaging.Transverse(img)
	case OrientationRotate90:
		return imaging.Rotate90(img)
	default:
		return img
	}
}
