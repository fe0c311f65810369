// Package clipboard moves edited images in and out of the desktop clipboard.
// Images always travel as PNG.
package clipboard

import (
	"bytes"
	"errors"
	"fmt"
	"image"

	"github.com/example/markup/internal/source"
)

// ErrEmpty is returned when the clipboard holds no image.
var ErrEmpty = errors.New("clipboard does not contain image data")

// ReadImage returns the clipboard image as a PNG source file.
func ReadImage() (source.File, error) {
	data, err := readPNG()
	if err != nil {
		return source.File{}, err
	}
	if len(data) == 0 {
		return source.File{}, ErrEmpty
	}
	return source.File{Name: "clipboard.png", MIME: "image/png", Data: data}, nil
}

// WriteImage publishes f to the clipboard, converting it to PNG first when
// it is stored in another format.
func WriteImage(f source.File) error {
	data, err := toPNG(f)
	if err != nil {
		return err
	}
	return writePNG(data)
}

func toPNG(f source.File) ([]byte, error) {
	if f.MIME == "image/png" {
		return f.Data, nil
	}
	img, _, err := image.Decode(bytes.NewReader(f.Data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", f.Name, err)
	}
	var buf bytes.Buffer
	if _, err := source.Encode(&buf, img, "image/png"); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
