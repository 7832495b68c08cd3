package texture

import (
	"errors"
	"fmt"
	"image"
)

// TGA image type constants.
const (
	TGATypeUncompressed = 2  // Uncompressed true-color
	TGATypeRLE          = 10 // RLE compressed true-color
)

const tgaHeaderSize = 18

var errTGATruncated = errors.New("TGA data truncated")

// DecodeTGA decodes an uncompressed or RLE true-color TGA (24 or 32 bpp).
func DecodeTGA(data []byte) (*image.RGBA, error) {
	if len(data) < tgaHeaderSize {
		return nil, fmt.Errorf("TGA data too short")
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := data[2]
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	descriptor := data[17]

	if colorMapType != 0 {
		return nil, fmt.Errorf("color-mapped TGA not supported")
	}
	if imageType != TGATypeUncompressed && imageType != TGATypeRLE {
		return nil, fmt.Errorf("unsupported TGA type %d", imageType)
	}
	if bpp != 24 && bpp != 32 {
		return nil, fmt.Errorf("unsupported TGA bit depth %d", bpp)
	}
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("empty TGA image %dx%d", width, height)
	}
	if err := checkDimensions(width, height); err != nil {
		return nil, err
	}

	offset := tgaHeaderSize + idLength
	if offset > len(data) {
		return nil, errTGATruncated
	}

	d := tgaDecoder{
		img:         image.NewRGBA(image.Rect(0, 0, width, height)),
		src:         data[offset:],
		width:       width,
		height:      height,
		bpp:         bpp / 8,
		topToBottom: descriptor&0x20 != 0,
	}

	var err error
	if imageType == TGATypeUncompressed {
		err = d.decodeRaw()
	} else {
		err = d.decodeRLE()
	}
	if err != nil {
		return nil, err
	}
	return d.img, nil
}

type tgaDecoder struct {
	img           *image.RGBA
	src           []byte
	pos           int
	width, height int
	bpp           int
	topToBottom   bool
}

// pixel reads one BGR(A) pixel from the stream.
func (d *tgaDecoder) pixel() ([4]byte, bool) {
	if d.pos+d.bpp > len(d.src) {
		return [4]byte{}, false
	}
	p := d.src[d.pos:]
	px := [4]byte{p[2], p[1], p[0], 255}
	if d.bpp == 4 {
		px[3] = p[3]
	}
	d.pos += d.bpp
	return px, true
}

// put stores a pixel by its index in file order.
func (d *tgaDecoder) put(index int, px [4]byte) {
	x := index % d.width
	y := index / d.width
	if !d.topToBottom {
		y = d.height - 1 - y
	}
	i := d.img.PixOffset(x, y)
	copy(d.img.Pix[i:i+4], px[:])
}

func (d *tgaDecoder) decodeRaw() error {
	total := d.width * d.height
	if len(d.src) < total*d.bpp {
		return errTGATruncated
	}
	for i := 0; i < total; i++ {
		px, _ := d.pixel()
		d.put(i, px)
	}
	return nil
}

// decodeRLE tolerates a short stream: missing pixels stay transparent.
func (d *tgaDecoder) decodeRLE() error {
	total := d.width * d.height
	idx := 0
	for idx < total && d.pos < len(d.src) {
		packet := d.src[d.pos]
		d.pos++
		count := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			px, ok := d.pixel()
			if !ok {
				break
			}
			for i := 0; i < count && idx < total; i++ {
				d.put(idx, px)
				idx++
			}
			continue
		}

		for i := 0; i < count && idx < total; i++ {
			px, ok := d.pixel()
			if !ok {
				break
			}
			d.put(idx, px)
			idx++
		}
	}
	return nil
}

// looksLikeTGA checks the header fields DecodeTGA would accept.
func looksLikeTGA(data []byte) bool {
	if len(data) < tgaHeaderSize {
		return false
	}
	t := data[2]
	bpp := data[16]
	return data[1] == 0 && (t == TGATypeUncompressed || t == TGATypeRLE) && (bpp == 24 || bpp == 32)
}
