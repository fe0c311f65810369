package source

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

const jpegQuality = 92

var mimeByFormat = map[string]string{
	"png":  "image/png",
	"jpeg": "image/jpeg",
	"gif":  "image/gif",
	"bmp":  "image/bmp",
	"tiff": "image/tiff",
	"webp": "image/webp",
}

var encoderByMIME = map[string]imaging.Format{
	"image/png":  imaging.PNG,
	"image/jpeg": imaging.JPEG,
	"image/gif":  imaging.GIF,
	"image/bmp":  imaging.BMP,
	"image/tiff": imaging.TIFF,
}

var extByMIME = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/bmp":  ".bmp",
	"image/tiff": ".tiff",
	"image/webp": ".webp",
}

func formatOf(mimeType string) string {
	for f, m := range mimeByFormat {
		if m == mimeType {
			return f
		}
	}
	return ""
}

// DetectMIME sniffs the image type from its header bytes. TIFF is not known
// to http.DetectContentType so it is checked by magic number.
func DetectMIME(data []byte) string {
	if len(data) >= 4 {
		head := string(data[:4])
		if head == "II*\x00" || head == "MM\x00*" {
			return "image/tiff"
		}
	}
	ct := http.DetectContentType(data)
	if strings.HasPrefix(ct, "image/") {
		return ct
	}
	if _, format, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
		if m, ok := mimeByFormat[format]; ok {
			return m
		}
	}
	return "application/octet-stream"
}

// MIMEFromName prefers sniffing the data and falls back to the extension.
func MIMEFromName(name string, data []byte) string {
	if m := DetectMIME(data); strings.HasPrefix(m, "image/") {
		return m
	}
	if m := mime.TypeByExtension(strings.ToLower(filepath.Ext(name))); m != "" {
		return m
	}
	return "application/octet-stream"
}

// Encode writes img in the format named by mimeType. Types without an encoder
// are written as PNG. The MIME type actually used is returned.
func Encode(w io.Writer, img image.Image, mimeType string) (string, error) {
	format, ok := encoderByMIME[mimeType]
	if !ok {
		mimeType, format = "image/png", imaging.PNG
	}
	if err := imaging.Encode(w, img, format, imaging.JPEGQuality(jpegQuality), imaging.GIFNumColors(256)); err != nil {
		return "", fmt.Errorf("encode %s: %w", mimeType, err)
	}
	return mimeType, nil
}

// RenameForMIME swaps the extension of name when it does not match mimeType.
func RenameForMIME(name, mimeType string) string {
	want, ok := extByMIME[mimeType]
	if !ok || name == "" {
		return name
	}
	ext := strings.ToLower(filepath.Ext(name))
	if ext == want || (want == ".jpg" && ext == ".jpeg") || (want == ".tiff" && ext == ".tif") {
		return name
	}
	return strings.TrimSuffix(name, filepath.Ext(name)) + want
}

// DataURL encodes data as a base64 data URL.
func DataURL(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// ParseDataURL decodes a base64 data URL.
func ParseDataURL(url string) (mimeType string, data []byte, err error) {
	rest, ok := strings.CutPrefix(url, "data:")
	if !ok {
		return "", nil, fmt.Errorf("not a data url")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, fmt.Errorf("malformed data url")
	}
	mimeType, ok = strings.CutSuffix(meta, ";base64")
	if !ok {
		return "", nil, fmt.Errorf("data url is not base64")
	}
	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("decode data url: %w", err)
	}
	return mimeType, data, nil
}
