package httpx

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/maf-y/ArardaHospital-Frontend/internal/service"
)

// maxFormMemory bounds multipart bodies held in memory; larger parts spill to disk.
const maxFormMemory = 8 << 20

// parseForm parses url-encoded and multipart bodies alike.
func parseForm(r *http.Request) error {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return r.ParseMultipartForm(maxFormMemory)
	}
	return r.ParseForm()
}

// decodeForm decodes the posted form into dst by its mapstructure tags. Dotted names
// ("vitals.heartRate") fill nested structs and numeric segments ("medicines.0.name")
// fill slices.
func decodeForm(r *http.Request, dst any) error {
	if err := parseForm(r); err != nil {
		return fmt.Errorf("parse form: %w", err)
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           dst,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return dec.Decode(formMap(r.PostForm))
}

// formMap nests flat form values by their dotted names.
func formMap(values url.Values) map[string]any {
	root := map[string]any{}
	for key, vals := range values {
		if key == DefaultCSRFCookieName || len(vals) == 0 {
			continue
		}
		parts := strings.Split(key, ".")
		node := root
		for _, p := range parts[:len(parts)-1] {
			child, ok := node[p].(map[string]any)
			if !ok {
				child = map[string]any{}
				node[p] = child
			}
			node = child
		}
		leaf := parts[len(parts)-1]
		if len(vals) == 1 {
			node[leaf] = vals[0]
		} else {
			node[leaf] = append([]string(nil), vals...)
		}
	}
	out, _ := indexedToSlices(root).(map[string]any)
	return out
}

// indexedToSlices turns maps keyed only by non-negative integers into slices ordered by key.
func indexedToSlices(v any) any {
	m, ok := v.(map[string]any)
	if !ok {
		return v
	}
	for k, child := range m {
		m[k] = indexedToSlices(child)
	}
	if len(m) == 0 {
		return m
	}
	idx := make([]int, 0, len(m))
	for k := range m {
		n, err := strconv.Atoi(k)
		if err != nil || n < 0 {
			return m
		}
		idx = append(idx, n)
	}
	sort.Ints(idx)
	out := make([]any, 0, len(idx))
	for _, n := range idx {
		out = append(out, m[strconv.Itoa(n)])
	}
	return out
}

// formValues flattens a decoded request back into dotted names so a rejected form can be
// re-rendered with the user's input.
func formValues(r *http.Request) map[string]string {
	out := make(map[string]string, len(r.PostForm))
	for k, v := range r.PostForm {
		if k == DefaultCSRFCookieName || len(v) == 0 || isSecretField(k) {
			continue
		}
		out[k] = v[0]
	}
	return out
}

func isSecretField(name string) bool {
	return name == "password" || strings.HasSuffix(name, ".password")
}

// formFile returns the uploaded file for field, or nil when none was sent.
func formFile(r *http.Request, field string) (*uploadedFile, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	f, hdr, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if hdr.Size == 0 {
		_ = f.Close()
		return nil, nil
	}
	return &uploadedFile{name: hdr.Filename, file: f}, nil
}

// uploadedFile is a non-empty file part of a multipart form.
type uploadedFile struct {
	name string
	file multipart.File
}

func (u *uploadedFile) Upload() *service.Upload {
	if u == nil {
		return nil
	}
	return &service.Upload{Filename: u.name, Body: u.file}
}

func (u *uploadedFile) Close() {
	if u != nil {
		_ = u.file.Close()
	}
}
