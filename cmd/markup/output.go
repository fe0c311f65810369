package main

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/markup/internal/source"
)

// writeImage stores img at path. The encoded data is written as is when the
// extension of path matches its format; otherwise the image is re-encoded.
// Formats without an encoder fall back to PNG and the path is renamed to
// match. The path actually written is returned.
func writeImage(ctx context.Context, path string, img *source.Image) (string, error) {
	data := img.File.Data
	want := source.MIMEFromName(path, nil)
	if strings.HasPrefix(want, "image/") && want != img.File.MIME {
		orig, err := img.Original(ctx)
		if err != nil {
			return "", fmt.Errorf("decode %s: %w", img.File.Name, err)
		}
		var buf bytes.Buffer
		used, err := source.Encode(&buf, orig, want)
		if err != nil {
			return "", err
		}
		if used != want {
			renamed := source.RenameForMIME(path, used)
			log.Printf("no encoder for %s, writing %s", want, renamed)
			path = renamed
		}
		data = buf.Bytes()
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
