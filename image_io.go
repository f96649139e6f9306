package imgfilter

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp" // Register WebP decoder.
)

var (
	// ErrEmptySource is returned by LoadImage for an empty source.
	ErrEmptySource = errors.New("imgfilter: empty image source")

	// ErrUnsupportedFormat is returned when an output format cannot be encoded.
	ErrUnsupportedFormat = errors.New("imgfilter: unsupported format")
)

// Format is an output image encoding.
type Format string

// Supported output formats.
const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatGIF  Format = "gif"
	FormatBMP  Format = "bmp"
	FormatTIFF Format = "tiff"
)

// FormatFromPath infers the output format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return FormatPNG, nil
	case ".jpg", ".jpeg":
		return FormatJPEG, nil
	case ".gif":
		return FormatGIF, nil
	case ".bmp":
		return FormatBMP, nil
	case ".tif", ".tiff":
		return FormatTIFF, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Encode writes img to w in the given format. JPEG uses quality 90.
func Encode(w io.Writer, img image.Image, format Format) error {
	switch format {
	case FormatPNG:
		return png.Encode(w, img)
	case FormatJPEG:
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 90})
	case FormatGIF:
		return gif.Encode(w, img, nil)
	case FormatBMP:
		return bmp.Encode(w, img)
	case FormatTIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// LoadImage decodes an image from a file path or a data URL.
// Recognized encodings are PNG, JPEG, GIF, BMP, TIFF and WebP.
func LoadImage(source string) (image.Image, error) {
	if source == "" {
		return nil, ErrEmptySource
	}

	var (
		data []byte
		err  error
	)
	if strings.HasPrefix(source, "data:") {
		data, err = decodeDataURL(source)
	} else {
		data, err = os.ReadFile(filepath.Clean(source))
	}
	if err != nil {
		return nil, fmt.Errorf("load image: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrEmptySource
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	Logger().Debug("image loaded", "format", format,
		"width", img.Bounds().Dx(), "height", img.Bounds().Dy())

	return img, nil
}

// DataURL encodes img as a data URL in the given format.
func DataURL(img image.Image, format Format) (string, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, img, format); err != nil {
		return "", err
	}
	return "data:image/" + string(format) + ";base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func decodeDataURL(s string) ([]byte, error) {
	header, payload, ok := strings.Cut(strings.TrimPrefix(s, "data:"), ",")
	if !ok {
		return nil, errors.New("malformed data URL")
	}
	if strings.HasSuffix(header, ";base64") {
		return base64.StdEncoding.DecodeString(payload)
	}
	unescaped, err := url.PathUnescape(payload)
	if err != nil {
		return nil, err
	}
	return []byte(unescaped), nil
}
