package helpers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"

	"devevent/internal/domain"
)

// MaxUploadMemory is the multipart memory limit; larger parts spill to temp files.
const MaxUploadMemory = 32 << 20

// DecodeEventInput dispatches on Content-Type and extracts the recognised event
// fields. JSON bodies and form bodies produce the same EventInput; any other
// content type fails with domain.ErrUnsupportedMediaType before the body is read.
func DecodeEventInput(r *http.Request) (*domain.EventInput, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/json":
		return decodeJSONEvent(r.Body)
	case "multipart/form-data":
		if err := r.ParseMultipartForm(MaxUploadMemory); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		return decodeFormEvent(r)
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		return decodeFormEvent(r)
	}
	return nil, domain.ErrUnsupportedMediaType
}

func decodeJSONEvent(body io.Reader) (*domain.EventInput, error) {
	dec := json.NewDecoder(body)
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	in := &domain.EventInput{
		Title:       jsonString(raw["title"]),
		Slug:        jsonString(raw["slug"]),
		Description: jsonString(raw["description"]),
		Overview:    jsonString(raw["overview"]),
		Venue:       jsonString(raw["venue"]),
		Location:    jsonString(raw["location"]),
		Date:        jsonString(raw["date"]),
		Time:        jsonString(raw["time"]),
		Mode:        jsonString(raw["mode"]),
		Audience:    jsonString(raw["audience"]),
		Organizer:   jsonString(raw["organizer"]),
		Agenda:      raw["agenda"],
		Tags:        raw["tags"],
		Image:       domain.ImageInput{Ref: jsonString(raw["image"])},
	}
	return in, nil
}

// jsonString renders a decoded JSON scalar as text; absent and null become "".
func jsonString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

func decodeFormEvent(r *http.Request) (*domain.EventInput, error) {
	form := r.PostForm
	in := &domain.EventInput{
		Title:       form.Get("title"),
		Slug:        form.Get("slug"),
		Description: form.Get("description"),
		Overview:    form.Get("overview"),
		Venue:       form.Get("venue"),
		Location:    form.Get("location"),
		Date:        form.Get("date"),
		Time:        form.Get("time"),
		Mode:        form.Get("mode"),
		Audience:    form.Get("audience"),
		Organizer:   form.Get("organizer"),
		Agenda:      formList(form["agenda"]),
		Tags:        formList(form["tags"]),
		Image:       domain.ImageInput{Ref: form.Get("image")},
	}
	if r.MultipartForm != nil {
		if files := r.MultipartForm.File["image"]; len(files) > 0 {
			f, err := readUpload(files[0])
			if err != nil {
				return nil, err
			}
			in.Image = domain.ImageInput{File: f}
		}
	}
	return in, nil
}

// formList keeps a repeated field as a sequence and a single value as a string.
func formList(values []string) any {
	switch len(values) {
	case 0:
		return nil
	case 1:
		return values[0]
	}
	return values
}

func readUpload(fh *multipart.FileHeader) (*domain.UploadedFile, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open uploaded image: %w", err)
	}
	defer f.Close()
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, f); err != nil {
		return nil, fmt.Errorf("read uploaded image: %w", err)
	}
	return &domain.UploadedFile{Name: fh.Filename, Data: buf.Bytes()}, nil
}

// DecodeJSON decodes the request body into dest, rejecting unknown fields.
func DecodeJSON(r *http.Request, dest any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty body", domain.ErrInvalidInput)
		}
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return nil
}
