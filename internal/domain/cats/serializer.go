package cats

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"kittygram/internal/domain/achievements"
	"kittygram/internal/errs"
	"kittygram/internal/platform/hexcolor"
	"kittygram/internal/platform/imagedata"
	"kittygram/internal/validation"
)

// maxUploadBytes limita el body multipart (imagen incluida).
const maxUploadBytes = 10 << 20

// CatResponse es el payload de lectura de un gato.
type CatResponse struct {
	ID           string                             `json:"id"`
	Name         string                             `json:"name"`
	Color        string                             `json:"color"`
	BirthYear    int                                `json:"birth_year"`
	Achievements []achievements.AchievementResponse `json:"achievements"`
	Owner        string                             `json:"owner"`
	Age          int                                `json:"age"`
	Image        *string                            `json:"image"`
}

// catRequest documenta el body de escritura (POST/PUT/PATCH).
type catRequest struct {
	Name         *string                 `json:"name" validate:"omitnil,min=1,max=16"`
	Color        *string                 `json:"color" validate:"omitnil,min=1,max=16"`
	BirthYear    *int                    `json:"birth_year" validate:"omitnil,gt=1900,lt=2100"`
	Achievements []achievementDescriptor `json:"achievements" validate:"omitempty,dive"`

	// Image: data:image/<ext>;base64,... | null | URL actual (se ignora).
	Image *string `json:"image,omitempty"`
}

// achievementDescriptor acepta achievement_name (igual que en lectura) o name.
type achievementDescriptor struct {
	AchievementName string `json:"achievement_name" validate:"required_without=Name,max=64"`
	Name            string `json:"name" validate:"max=64"`
}

func (d achievementDescriptor) name() string {
	if strings.TrimSpace(d.AchievementName) != "" {
		return d.AchievementName
	}
	return d.Name
}

// catPayload es el request ya parseado y validado.
type catPayload struct {
	Name      *string
	Color     *string
	BirthYear *int

	Image        imagedata.Value
	Achievements AchievementsPatch
}

var (
	writableFields = map[string]bool{"name": true, "color": true, "birth_year": true, "achievements": true, "image": true}
	readOnlyFields = map[string]bool{"id": true, "owner": true, "age": true}
	requiredFields = []string{"name", "color", "birth_year"}
)

const nullMessage = "may not be null"

// parser convierte requests JSON o multipart en catPayload.
type parser struct {
	colors *hexcolor.Table
}

// parseRequest: full=true para POST/PUT (name, color y birth_year obligatorios).
func (p parser) parseRequest(r *http.Request, full bool) (catPayload, error) {
	var (
		raw    map[string]json.RawMessage
		upload *imagedata.File
		err    error
	)

	if isMultipart(r) {
		raw, upload, err = readMultipart(r)
	} else {
		raw, err = readJSON(r.Body)
	}
	if err != nil {
		return catPayload{}, err
	}
	return p.parse(r.Context(), raw, upload, full)
}

func (p parser) parse(ctx context.Context, raw map[string]json.RawMessage, upload *imagedata.File, full bool) (catPayload, error) {
	var (
		out catPayload
		req catRequest
		fe  validation.FieldErrors
	)

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v := raw[k]
		switch {
		case readOnlyFields[k]:
			continue
		case !writableFields[k]:
			fe = append(fe, validation.Field(k, "unknown field")...)
			continue
		case k == "image":
			// null es válido: limpia la imagen
			continue
		case isNull(v):
			fe = append(fe, validation.Field(k, nullMessage)...)
			continue
		}

		switch k {
		case "name":
			if err := json.Unmarshal(v, &req.Name); err != nil {
				fe = append(fe, validation.Field(k, "must be a string")...)
			}
		case "color":
			if err := json.Unmarshal(v, &req.Color); err != nil {
				fe = append(fe, validation.Field(k, "must be a string")...)
			}
		case "birth_year":
			if err := json.Unmarshal(v, &req.BirthYear); err != nil {
				fe = append(fe, validation.Field(k, "must be an integer")...)
			}
		case "achievements":
			if err := json.Unmarshal(v, &req.Achievements); err != nil {
				fe = append(fe, validation.Field(k, "must be a list of {achievement_name} objects")...)
				continue
			}
			out.Achievements.Present = true
			if req.Achievements == nil {
				req.Achievements = []achievementDescriptor{}
			}
		}
	}

	if full {
		for _, k := range requiredFields {
			if _, ok := raw[k]; !ok {
				fe = append(fe, validation.Field(k, "is required")...)
			}
		}
	}

	if err := validation.Struct(req); err != nil {
		var vfe validation.FieldErrors
		if !errors.As(err, &vfe) {
			return catPayload{}, err
		}
		fe = append(fe, vfe...)
	}

	if req.Color != nil && !hasField(fe, "color") {
		name, err := p.colors.Normalize(*req.Color)
		if err != nil {
			fe = append(fe, validation.Field("color", err.Error())...)
		} else {
			req.Color = &name
		}
	}

	switch {
	case upload != nil:
		if err := imagedata.Check(*upload); err != nil {
			fe = append(fe, validation.Field("image", imagedata.ErrInvalidImage.Error())...)
		} else {
			out.Image = imagedata.Value{Kind: imagedata.Upload, File: *upload}
		}
	default:
		v, err := imagedata.Parse(ctx, raw["image"])
		if err != nil {
			fe = append(fe, validation.Field("image", imageMessage(err))...)
		}
		out.Image = v
	}

	if len(fe) > 0 {
		return catPayload{}, fe
	}

	out.Name = req.Name
	out.Color = req.Color
	out.BirthYear = req.BirthYear
	if out.Achievements.Present {
		out.Achievements.Names = make([]string, 0, len(req.Achievements))
		for _, d := range req.Achievements {
			out.Achievements.Names = append(out.Achievements.Names, d.name())
		}
	}
	return out, nil
}

func (c catPayload) createInput() CreateInput {
	in := CreateInput{
		Achievements: c.Achievements.Names,
	}
	if c.Name != nil {
		in.Name = *c.Name
	}
	if c.Color != nil {
		in.Color = *c.Color
	}
	if c.BirthYear != nil {
		in.BirthYear = *c.BirthYear
	}
	if c.Image.Kind == imagedata.Upload {
		f := c.Image.File
		in.Image = &f
	}
	return in
}

func (c catPayload) updateInput() UpdateInput {
	return UpdateInput{
		Name:         c.Name,
		Color:        c.Color,
		BirthYear:    c.BirthYear,
		Image:        c.Image,
		Achievements: c.Achievements,
	}
}

// ToResponse arma el payload de lectura; age se calcula con now.
func ToResponse(c Cat, now time.Time, imageURL func(key string) string) CatResponse {
	out := CatResponse{
		ID:           c.ID,
		Name:         c.Name,
		Color:        c.Color,
		BirthYear:    c.BirthYear,
		Achievements: make([]achievements.AchievementResponse, 0, len(c.Achievements)),
		Owner:        c.OwnerUserID,
		Age:          c.Age(now),
	}
	for _, a := range c.Achievements {
		out.Achievements = append(out.Achievements, achievements.ToResponse(a))
	}
	if c.Image != "" && imageURL != nil {
		if u := imageURL(c.Image); u != "" {
			out.Image = &u
		}
	}
	return out
}

func readJSON(body io.Reader) (map[string]json.RawMessage, error) {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(body).Decode(&raw); err != nil {
		return nil, errs.NewBadRequestError("invalid json", nil)
	}
	if raw == nil {
		return nil, errs.NewBadRequestError("expected a JSON object", nil)
	}
	return raw, nil
}

// readMultipart pasa los campos de texto a JSON crudo para reutilizar parse.
// achievements viaja como texto JSON; image puede ser archivo o data-URL.
func readMultipart(r *http.Request) (map[string]json.RawMessage, *imagedata.File, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, nil, errs.NewBadRequestError("invalid multipart form", nil)
	}

	raw := make(map[string]json.RawMessage, len(r.MultipartForm.Value))
	for k, vals := range r.MultipartForm.Value {
		if len(vals) == 0 {
			continue
		}
		v := vals[0]
		switch k {
		case "birth_year":
			if _, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				raw[k] = json.RawMessage(strings.TrimSpace(v))
				continue
			}
		case "achievements":
			if json.Valid([]byte(v)) {
				raw[k] = json.RawMessage(v)
				continue
			}
		}
		b, _ := json.Marshal(v)
		raw[k] = b
	}

	fhs := r.MultipartForm.File["image"]
	if len(fhs) == 0 {
		return raw, nil, nil
	}
	f, err := readFileHeader(fhs[0])
	if err != nil {
		return nil, nil, errs.NewBadRequestError("Validation failed", []errs.FieldError{
			{Field: "image", Error: imagedata.ErrNotAFile.Error()},
		})
	}
	delete(raw, "image")
	return raw, &f, nil
}

func readFileHeader(fh *multipart.FileHeader) (imagedata.File, error) {
	src, err := fh.Open()
	if err != nil {
		return imagedata.File{}, err
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return imagedata.File{}, fmt.Errorf("read upload: %w", err)
	}
	return imagedata.FromUpload(fh.Filename, fh.Header.Get("Content-Type"), data), nil
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

func isNull(v json.RawMessage) bool {
	return string(bytes.TrimSpace(v)) == "null"
}

func hasField(fe validation.FieldErrors, field string) bool {
	for _, e := range fe {
		if e.Field == field {
			return true
		}
	}
	return false
}

func imageMessage(err error) string {
	switch {
	case errors.Is(err, imagedata.ErrInvalidBase64):
		return imagedata.ErrInvalidBase64.Error()
	case errors.Is(err, imagedata.ErrNotAFile):
		return imagedata.ErrNotAFile.Error()
	default:
		return imagedata.ErrInvalidImage.Error()
	}
}
