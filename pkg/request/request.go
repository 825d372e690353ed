// Package request assembles the multipart payload shared by batch
// generation, single-row generation and preview rendering, so a preview
// and the final output are always built from the same parameters.
package request

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strconv"
	"strings"

	"github.com/pluqqy/certadmin/pkg/fonts"
	"github.com/pluqqy/certadmin/pkg/placement"
)

// Template modes.
const (
	ModeAuto  = "auto"
	ModeImage = "image"
	ModePDF   = "pdf"
)

// PDFMediaType is the media type that makes "auto" resolve to pdf.
const PDFMediaType = "application/pdf"

var (
	// ErrMissingSheet is returned when no spreadsheet id has been resolved.
	ErrMissingSheet = errors.New("spreadsheet link or id is missing or invalid")
	// ErrMissingTemplate is returned when no template file is loaded.
	ErrMissingTemplate = errors.New("template file (image or PDF) is missing")
)

// Template is the certificate background sent with every request.
// Revision changes every time the operator swaps the file.
type Template struct {
	Name      string
	MediaType string
	Data      []byte
	Revision  int
}

// Params is the full rendering state at one instant.
type Params struct {
	Template       *Template
	SheetID        string
	Range          string
	NameColumn     string
	OutputFormat   string
	Mode           string
	Placement      placement.Point
	PageIndex      int
	FontFamily     string
	FontWeight     int
	LetterSpacing  float64
	FontFile       *fonts.Asset
	FontSize       float64
	Color          string
	FilenamePrefix string
}

// Validate reports input problems that must block a request.
func (p Params) Validate() error {
	if p.SheetID == "" {
		return ErrMissingSheet
	}
	if p.Template == nil || len(p.Template.Data) == 0 {
		return ErrMissingTemplate
	}
	return nil
}

// EffectiveMode resolves "auto" from the template's media type.
func EffectiveMode(mode, mediaType string) string {
	if mode != "" && mode != ModeAuto {
		return mode
	}
	if mediaType == PDFMediaType {
		return ModePDF
	}
	return ModeImage
}

// Part is one multipart field. File parts carry a filename and body.
type Part struct {
	Name        string
	Value       string
	Filename    string
	ContentType string
	Data        []byte
}

// IsFile reports whether the part is a file upload.
func (p Part) IsFile() bool {
	return p.Filename != ""
}

// Payload is an ordered multipart form.
type Payload struct {
	Parts []Part
}

func (pl *Payload) add(name, value string) {
	pl.Parts = append(pl.Parts, Part{Name: name, Value: value})
}

func (pl *Payload) addFile(name, filename, contentType string, data []byte) {
	pl.Parts = append(pl.Parts, Part{Name: name, Filename: filename, ContentType: contentType, Data: data})
}

// Get returns the value of the first non-file field called name.
func (pl Payload) Get(name string) (string, bool) {
	for _, p := range pl.Parts {
		if p.Name == name && !p.IsFile() {
			return p.Value, true
		}
	}
	return "", false
}

// File returns the first file part called name.
func (pl Payload) File(name string) (Part, bool) {
	for _, p := range pl.Parts {
		if p.Name == name && p.IsFile() {
			return p, true
		}
	}
	return Part{}, false
}

// Names lists the part names in order.
func (pl Payload) Names() []string {
	names := make([]string, len(pl.Parts))
	for i, p := range pl.Parts {
		names[i] = p.Name
	}
	return names
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Build emits the canonical payload. The field order is fixed.
func Build(p Params) Payload {
	var pl Payload

	var tmpl Template
	if p.Template != nil {
		tmpl = *p.Template
	}
	contentType := tmpl.MediaType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	pl.addFile("template", tmpl.Name, contentType, tmpl.Data)

	pl.add("sheetId", p.SheetID)
	pl.add("range", p.Range)
	pl.add("nameColumn", p.NameColumn)
	pl.add("outputFormat", p.OutputFormat)
	pl.add("mode", EffectiveMode(p.Mode, tmpl.MediaType))

	pl.add("xRel", formatFloat(p.Placement.X))
	pl.add("yRel", formatFloat(p.Placement.Y))
	pl.add("useRelative", "true")
	pl.add("fromTop", "true")
	pl.add("pageIndex", strconv.Itoa(p.PageIndex))

	pl.add("fontFamily", p.FontFamily)
	pl.add("fontWeight", strconv.Itoa(p.FontWeight))
	pl.add("letterSpacing", formatFloat(p.LetterSpacing))
	if p.FontFile != nil {
		pl.addFile("fontFile", p.FontFile.Filename, "application/octet-stream", p.FontFile.Data)
	}
	pl.add("fontSize", formatFloat(p.FontSize))
	pl.add("color", p.Color)
	pl.add("filenamePrefix", p.FilenamePrefix)
	return pl
}

// ForBatch is the payload for rendering every row into an archive.
func ForBatch(p Params) Payload {
	return Build(p)
}

// ForSingle is the payload for rendering one row to a file.
func ForSingle(p Params, rowIndex int) Payload {
	pl := Build(p)
	pl.add("rowIndex", strconv.Itoa(rowIndex))
	return pl
}

// ForPreview is the payload for rendering one row as a PNG preview.
func ForPreview(p Params, rowIndex int) Payload {
	pl := ForSingle(p, rowIndex)
	pl.add("preview", "png")
	return pl
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// Encode writes the payload as multipart/form-data.
func (pl Payload) Encode() (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, part := range pl.Parts {
		if !part.IsFile() {
			if err := w.WriteField(part.Name, part.Value); err != nil {
				return nil, "", fmt.Errorf("writing field %s: %w", part.Name, err)
			}
			continue
		}
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			quoteEscaper.Replace(part.Name), quoteEscaper.Replace(part.Filename)))
		h.Set("Content-Type", part.ContentType)
		fw, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("creating part %s: %w", part.Name, err)
		}
		if _, err := fw.Write(part.Data); err != nil {
			return nil, "", fmt.Errorf("writing part %s: %w", part.Name, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("closing multipart body: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}
