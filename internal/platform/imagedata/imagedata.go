// Package imagedata convierte imágenes data-URL en base64 (o uploads multipart)
// en archivos en memoria listos para el blob store.
package imagedata

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"path"
	"strings"

	// Formatos aceptados por Check.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/rs/zerolog"
)

const dataURLPrefix = "data:image"

var (
	ErrInvalidBase64 = errors.New("invalid base64 image data")
	ErrInvalidImage  = errors.New("upload a valid image: the file was either not an image or a corrupted image")
	ErrNotAFile      = errors.New("the submitted data was not a file")
)

// File es un archivo en memoria (equivalente a un upload).
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

func (f File) Ext() string {
	return strings.TrimPrefix(path.Ext(f.Name), ".")
}

// IsDataURL reporta si s tiene la forma data:image/<ext>;base64,...
func IsDataURL(s string) bool {
	return strings.HasPrefix(s, dataURLPrefix)
}

// Decode materializa temp.<ext> desde un data-URL.
// El error devuelto envuelve ErrInvalidBase64 con el detalle del fallo.
func Decode(s string) (File, error) {
	header, payload, ok := strings.Cut(s, ";base64,")
	if !ok || strings.Contains(payload, ";base64,") {
		return File{}, fmt.Errorf("%w: missing ;base64, separator", ErrInvalidBase64)
	}

	ext := header[strings.LastIndex(header, "/")+1:]
	if ext == "" || !strings.Contains(header, "/") {
		return File{}, fmt.Errorf("%w: malformed header %q", ErrInvalidBase64, header)
	}

	// tolera saltos de línea (payloads pegados desde otras herramientas)
	payload = strings.Map(func(r rune) rune {
		switch r {
		case '\n', '\r', ' ', '\t':
			return -1
		}
		return r
	}, payload)

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return File{}, fmt.Errorf("%w: %v", ErrInvalidBase64, err)
	}

	return File{
		Name:        "temp." + ext,
		ContentType: "image/" + ext,
		Data:        data,
	}, nil
}

// FromUpload arma un File desde un multipart.FileHeader ya leído.
func FromUpload(filename, contentType string, data []byte) File {
	name := path.Base(strings.TrimSpace(filename))
	if name == "." || name == "/" {
		name = "upload"
	}
	return File{Name: name, ContentType: contentType, Data: data}
}

// Check valida que los bytes sean una imagen decodificable.
func Check(f File) error {
	if len(f.Data) == 0 {
		return ErrInvalidImage
	}
	if _, _, err := image.DecodeConfig(bytes.NewReader(f.Data)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	return nil
}

type Kind int

const (
	// Omitted: el campo no vino en el payload.
	Omitted Kind = iota
	// Null: "image": null, limpiar.
	Null
	// Upload: hay archivo nuevo.
	Upload
	// Keep: vino la referencia actual (ej. URL devuelta en lecturas); no tocar.
	Keep
)

// Value es el resultado de parsear el campo image de un request.
type Value struct {
	Kind Kind
	File File
}

// Parse interpreta el valor JSON del campo image.
// Los fallos de decode se loguean con el detalle antes de devolver el error de validación.
func Parse(ctx context.Context, raw json.RawMessage) (Value, error) {
	if len(raw) == 0 {
		return Value{Kind: Omitted}, nil
	}
	if string(bytes.TrimSpace(raw)) == "null" {
		return Value{Kind: Null}, nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return Value{}, ErrNotAFile
	}

	if strings.TrimSpace(s) == "" {
		return Value{Kind: Null}, nil
	}
	if !IsDataURL(s) {
		return Value{Kind: Keep}, nil
	}

	f, err := Decode(s)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("error decoding base64 image")
		return Value{}, ErrInvalidBase64
	}
	if err := Check(f); err != nil {
		return Value{}, err
	}
	return Value{Kind: Upload, File: f}, nil
}
