package api

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/codebykenth/product-catalog/pkg/catalog"
)

const (
	// maxMultipartMemory bounds the in-memory portion of parsed forms.
	maxMultipartMemory = 32 << 20

	// MaxImageSize is the per-file upload limit.
	MaxImageSize = 2 << 20
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

// parseCreateRequest builds a creation payload from a multipart form. The
// returned closer releases any opened file handles.
func parseCreateRequest(r *http.Request, validate *validator.Validate) (catalog.CreateProductRequest, func(), error) {
	req := catalog.CreateProductRequest{}
	noop := func() {}

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		return req, noop, &catalog.ValidationError{Fields: map[string]string{"body": "Malformed multipart form"}}
	}

	fields := map[string]string{}

	req.Name = r.FormValue("name")
	if _, ok := formValue(r, "description"); ok {
		desc := r.FormValue("description")
		req.Description = &desc
	}
	if raw, ok := formValue(r, "price"); !ok {
		fields["price"] = "This field is required"
	} else if price, err := strconv.ParseFloat(raw, 64); err != nil {
		fields["price"] = "Must be a number"
	} else {
		req.Price = price
	}

	images, closeImages, imageFields := parseImages(r)
	req.Images = images
	for k, v := range imageFields {
		fields[k] = v
	}

	mergeStructErrors(validate, req, fields)

	if len(fields) > 0 {
		closeImages()
		return req, noop, &catalog.ValidationError{Fields: fields}
	}
	return req, closeImages, nil
}

// parseUpdateRequest builds a partial-update payload from a multipart form.
// Absent scalar fields stay nil so the stored values survive the merge.
func parseUpdateRequest(r *http.Request, validate *validator.Validate) (catalog.UpdateProductRequest, func(), error) {
	req := catalog.UpdateProductRequest{}
	noop := func() {}

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		return req, noop, &catalog.ValidationError{Fields: map[string]string{"body": "Malformed multipart form"}}
	}

	fields := map[string]string{}

	if _, ok := formValue(r, "name"); ok {
		name := r.FormValue("name")
		req.Name = &name
	}
	if _, ok := formValue(r, "description"); ok {
		desc := r.FormValue("description")
		req.Description = &desc
	}
	if raw, ok := formValue(r, "price"); ok {
		if price, err := strconv.ParseFloat(raw, 64); err != nil {
			fields["price"] = "Must be a number"
		} else {
			req.Price = &price
		}
	}
	if raw, ok := formValue(r, "replace_images"); ok {
		replace, err := catalog.ParseBoolToken(raw)
		if err != nil {
			fields["replace_images"] = "Must be a boolean value"
		} else {
			req.ReplaceImages = replace
		}
	}

	images, closeImages, imageFields := parseImages(r)
	req.Images = images
	for k, v := range imageFields {
		fields[k] = v
	}

	mergeStructErrors(validate, req, fields)

	if len(fields) > 0 {
		closeImages()
		return req, noop, &catalog.ValidationError{Fields: fields}
	}
	return req, closeImages, nil
}

// parseImages validates and opens the uploaded image files. Both "images[]"
// and "images" form keys are accepted.
func parseImages(r *http.Request) ([]catalog.Upload, func(), map[string]string) {
	fields := map[string]string{}

	var headers []*multipart.FileHeader
	if r.MultipartForm != nil {
		headers = r.MultipartForm.File["images[]"]
		if len(headers) == 0 {
			headers = r.MultipartForm.File["images"]
		}
	}

	var uploads []catalog.Upload
	var opened []multipart.File
	closeAll := func() {
		for _, f := range opened {
			f.Close()
		}
	}

	for i, hdr := range headers {
		key := fmt.Sprintf("images.%d", i)

		if err := validateImageHeader(hdr); err != nil {
			fields[key] = err.Error()
			continue
		}

		f, err := hdr.Open()
		if err != nil {
			fields[key] = "Could not read uploaded file"
			continue
		}
		opened = append(opened, f)
		uploads = append(uploads, catalog.Upload{
			Filename:    hdr.Filename,
			ContentType: hdr.Header.Get("Content-Type"),
			Size:        hdr.Size,
			Content:     f,
		})
	}

	return uploads, closeAll, fields
}

// validateImageHeader enforces the image allow-list and size limit.
func validateImageHeader(hdr *multipart.FileHeader) error {
	ext := strings.ToLower(filepath.Ext(hdr.Filename))
	if !allowedImageExts[ext] {
		return catalog.ErrImageType
	}
	if contentType := hdr.Header.Get("Content-Type"); contentType != "" && !allowedImageTypes[contentType] {
		return catalog.ErrImageType
	}
	if hdr.Size > MaxImageSize {
		return catalog.ErrImageTooLarge
	}
	return nil
}

// mergeStructErrors runs struct validation and folds field errors into the
// accumulated message map without overwriting parse errors.
func mergeStructErrors(validate *validator.Validate, req any, fields map[string]string) {
	err := validate.Struct(req)
	if err == nil {
		return
	}
	vErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		fields["body"] = err.Error()
		return
	}
	for _, fe := range vErrs {
		name := formFieldName(fe.Field())
		if _, exists := fields[name]; !exists {
			fields[name] = formatValidationError(fe)
		}
	}
}

// formFieldName maps struct field names to their multipart form keys.
func formFieldName(structField string) string {
	return strings.ToLower(structField)
}

// formatValidationError formats validation errors into user-friendly messages
func formatValidationError(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "This field is required"
	case "min":
		return fmt.Sprintf("Minimum length is %s", err.Param())
	case "max":
		return fmt.Sprintf("Maximum length is %s", err.Param())
	case "gte":
		return fmt.Sprintf("Must be at least %s", err.Param())
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", err.Param())
	default:
		return fmt.Sprintf("Validation failed on %s", err.Tag())
	}
}

// formValue reports whether a form key was supplied at all, distinguishing
// absent fields from empty ones.
func formValue(r *http.Request, key string) (string, bool) {
	if r.MultipartForm != nil {
		if vals, ok := r.MultipartForm.Value[key]; ok && len(vals) > 0 {
			return vals[0], true
		}
	}
	if vals, ok := r.Form[key]; ok && len(vals) > 0 {
		return vals[0], true
	}
	return "", false
}
