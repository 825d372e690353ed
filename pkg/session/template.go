package session

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/pluqqy/certadmin/pkg/files"
	"github.com/pluqqy/certadmin/pkg/render"
	"github.com/pluqqy/certadmin/pkg/request"
)

// TemplateKind is what the loaded template turned out to be.
type TemplateKind string

const (
	KindUnset TemplateKind = ""
	KindImage TemplateKind = "image"
	KindPDF   TemplateKind = "pdf"
)

// sniffMediaType looks at the content first and the extension second.
func sniffMediaType(name string, data []byte) string {
	mt := http.DetectContentType(data)
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = mt[:i]
	}
	if mt != "application/octet-stream" && mt != "text/plain" {
		return mt
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return request.PDFMediaType
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".webp":
		return "image/webp"
	case ".bmp":
		return "image/bmp"
	case ".tif", ".tiff":
		return "image/tiff"
	}
	return mt
}

func kindOf(mediaType string) TemplateKind {
	switch {
	case mediaType == request.PDFMediaType:
		return KindPDF
	case strings.HasPrefix(mediaType, "image/"):
		return KindImage
	}
	return KindUnset
}

// SetTemplate loads the template at path. Any preview of the previous
// template is released and the marker goes back to the centre. Images and
// PDFs fix the mode; other files leave it on auto.
func (s *Session) SetTemplate(path string) (TemplateKind, error) {
	data, err := files.ReadTemplate(path)
	if err != nil {
		return KindUnset, err
	}

	s.releasePreviews()
	s.revision++
	mt := sniffMediaType(path, data)
	s.template = &request.Template{
		Name:      filepath.Base(path),
		MediaType: mt,
		Data:      data,
		Revision:  s.revision,
	}
	s.templatePath = path
	s.kind = kindOf(mt)
	s.nativeW, s.nativeH = 0, 0

	s.Placement.Reset()
	switch s.kind {
	case KindImage:
		s.Mode = request.ModeImage
		if w, h, err := render.NativeSize(path); err == nil {
			s.nativeW, s.nativeH = w, h
		} else {
			s.log.Warn("Could not read template size: %v", err)
		}
	case KindPDF:
		s.Mode = request.ModePDF
	default:
		s.Mode = request.ModeAuto
	}
	s.log.Info("Loaded template %s (%s)", s.template.Name, mt)
	return s.kind, nil
}

// ClearTemplate forgets the template and its previews.
func (s *Session) ClearTemplate() {
	s.releasePreviews()
	s.template = nil
	s.templatePath = ""
	s.kind = KindUnset
	s.nativeW, s.nativeH = 0, 0
	s.Mode = request.ModeAuto
}

// Template returns the loaded template, or nil.
func (s *Session) Template() *request.Template {
	return s.template
}

// TemplatePath returns where the template was loaded from.
func (s *Session) TemplatePath() string {
	return s.templatePath
}

// TemplateKind reports the loaded template's kind.
func (s *Session) TemplateKind() TemplateKind {
	return s.kind
}

// NativeSize is the template's pixel size, zero when unknown.
func (s *Session) NativeSize() (int, int) {
	return s.nativeW, s.nativeH
}

func (s *Session) releasePreviews() {
	if s.previews != nil {
		s.previews.Invalidate()
	}
	if s.quickPreview != "" {
		os.Remove(s.quickPreview)
		s.quickPreview = ""
	}
}
