// Package source holds the image being edited: the original encoded file,
// the URL the host displays, and the decoded original pixels.
package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"

	// Decoders used by image.Decode.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrUnsupportedFormat is returned when no decoder recognises the data.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// File is an encoded image with its name and MIME type.
type File struct {
	Name string
	MIME string
	Data []byte
}

// Image is an editable image reference. The original is decoded in the
// background as soon as the Image is opened.
type Image struct {
	File File
	// URL is what the host displays, usually a data URL.
	URL string

	done   chan struct{}
	img    image.Image
	format string
	err    error
}

// Open starts decoding f and returns immediately. An empty url is replaced by
// a data URL of f.
func Open(f File, url string) *Image {
	if f.MIME == "" {
		f.MIME = DetectMIME(f.Data)
	}
	if url == "" {
		url = DataURL(f.MIME, f.Data)
	}
	im := &Image{File: f, URL: url, done: make(chan struct{})}
	go im.decode()
	return im
}

// FromImage wraps an already decoded image, encoding it as mime.
func FromImage(name, mime string, img image.Image) (*Image, error) {
	var buf bytes.Buffer
	used, err := Encode(&buf, img, mime)
	if err != nil {
		return nil, err
	}
	f := File{Name: RenameForMIME(name, used), MIME: used, Data: buf.Bytes()}
	im := &Image{File: f, URL: DataURL(used, f.Data), done: make(chan struct{}), img: img, format: formatOf(used)}
	close(im.done)
	return im, nil
}

// Load reads path and opens it.
func Load(path string) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Open(File{Name: filepath.Base(path), MIME: MIMEFromName(path, data), Data: data}, ""), nil
}

func (im *Image) decode() {
	defer close(im.done)
	img, format, err := image.Decode(bytes.NewReader(im.File.Data))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			err = ErrUnsupportedFormat
		}
		im.err = fmt.Errorf("decode %s: %w", im.File.Name, err)
		return
	}
	im.img = img
	im.format = format
}

// Original waits for the decode to finish and returns the full resolution
// image.
func (im *Image) Original(ctx context.Context) (image.Image, error) {
	select {
	case <-im.done:
		return im.img, im.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Ready reports whether decoding has finished.
func (im *Image) Ready() bool {
	select {
	case <-im.done:
		return true
	default:
		return false
	}
}

// Size returns the original pixel size, waiting for the decode.
func (im *Image) Size(ctx context.Context) (image.Point, error) {
	img, err := im.Original(ctx)
	if err != nil {
		return image.Point{}, err
	}
	return img.Bounds().Size(), nil
}

// Format returns the decoder name, such as "png", once decoded.
func (im *Image) Format() string {
	if !im.Ready() {
		return ""
	}
	return im.format
}
