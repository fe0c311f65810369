//go:build linux || freebsd || openbsd || netbsd || dragonfly

package capture

import (
	"fmt"
	"image"

	"github.com/jezek/xgb/xproto"
)

// xImageToRGBA converts a ZPixmap reply into RGBA. Only 24 and 32 bit
// TrueColor layouts are understood. The padding byte of depth 24 images is
// not alpha, so those come out opaque.
func xImageToRGBA(setup *xproto.SetupInfo, reply *xproto.GetImageReply, width, height int, kind string) (*image.RGBA, error) {
	if setup == nil {
		return nil, fmt.Errorf("xproto setup unavailable")
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%s has empty geometry", kind)
	}
	if reply == nil || len(reply.Data) == 0 {
		return nil, fmt.Errorf("%s pixels: empty image data", kind)
	}

	bitsPerPixel := 0
	for _, format := range setup.PixmapFormats {
		if format.Depth == reply.Depth {
			bitsPerPixel = int(format.BitsPerPixel)
			break
		}
	}
	bpp := bitsPerPixel / 8
	if bpp < 3 {
		return nil, fmt.Errorf("unsupported %s pixel format: depth %d, %d bpp", kind, reply.Depth, bitsPerPixel)
	}
	stride := len(reply.Data) / height
	if stride*height != len(reply.Data) || stride < width*bpp {
		return nil, fmt.Errorf("%s pixels: unexpected stride", kind)
	}
	msbFirst := setup.ImageByteOrder == xproto.ImageOrderMSBFirst
	hasAlpha := reply.Depth == 32 && bpp == 4

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		row := reply.Data[y*stride:]
		for x := 0; x < width; x++ {
			px := row[x*bpp : x*bpp+bpp]
			var r, g, b, a byte
			if msbFirst {
				// A R G B for 32 bpp, R G B for 24.
				o := bpp - 3
				r, g, b = px[o], px[o+1], px[o+2]
				if hasAlpha {
					a = px[0]
				}
			} else {
				b, g, r = px[0], px[1], px[2]
				if hasAlpha {
					a = px[3]
				}
			}
			if !hasAlpha {
				a = 0xFF
			}
			i := img.PixOffset(x, y)
			img.Pix[i+0] = r
			img.Pix[i+1] = g
			img.Pix[i+2] = b
			img.Pix[i+3] = a
		}
	}
	return img, nil
}
