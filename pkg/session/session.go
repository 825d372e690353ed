// Package session owns the console's state: the sheet selection, range,
// loaded rows, template, marker and text settings. It turns that state
// into backend requests and keeps the current row in bounds.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/pluqqy/certadmin/pkg/fonts"
	"github.com/pluqqy/certadmin/pkg/logger"
	"github.com/pluqqy/certadmin/pkg/placement"
	"github.com/pluqqy/certadmin/pkg/preview"
	"github.com/pluqqy/certadmin/pkg/request"
	"github.com/pluqqy/certadmin/pkg/sheets"
)

// PageSize is the number of rows listed per page.
const PageSize = 24

// SampleNameFallback is shown when the current row has no usable name.
const SampleNameFallback = "Firstname Lastname"

var (
	// ErrInvalidSheetLink is returned when no spreadsheet id can be
	// extracted from the link text.
	ErrInvalidSheetLink = errors.New("paste a valid Google Sheet link or id")
	// ErrMissingTemplate is returned by generation actions without a template.
	ErrMissingTemplate = request.ErrMissingTemplate
)

// Backend is the certificate backend the session talks to.
type Backend interface {
	Tabs(ctx context.Context, sheetID string) ([]string, error)
	Preview(ctx context.Context, sheetID, rangeString string) (*sheets.Dataset, error)
	Generate(ctx context.Context, payload request.Payload) ([]byte, error)
	GenerateOne(ctx context.Context, payload request.Payload) ([]byte, error)
}

// Invalidator drops rendered previews when the template changes.
type Invalidator interface {
	Invalidate()
}

// Defaults seeds the text and output settings.
type Defaults struct {
	FontPreset     string
	FontSize       float64
	FontWeight     int
	LetterSpacing  float64
	Color          string
	NameColumn     string
	OutputFormat   string
	FilenamePrefix string
}

// DefaultDefaults mirrors the console's initial form values.
func DefaultDefaults() Defaults {
	return Defaults{
		FontPreset:     "Sarabun",
		FontSize:       48,
		FontWeight:     700,
		Color:          "#000000",
		NameColumn:     "full_name",
		OutputFormat:   "pdf",
		FilenamePrefix: "CERT_",
	}
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Session) { s.log = l.WithComponent("session") }
}

// WithFonts shares a font registry.
func WithFonts(r *fonts.Registry) Option {
	return func(s *Session) { s.fonts = r }
}

// WithPreviews registers the server preview to invalidate on template swaps.
func WithPreviews(p Invalidator) Option {
	return func(s *Session) { s.previews = p }
}

// WithClock overrides the clock used for archive names.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// Session is the single owner of console state. It is not safe for
// concurrent use; the TUI drives it from its update loop.
type Session struct {
	Selection Selection
	Range     sheets.RangeSpec
	Placement *placement.Model

	// RangeOverride, when set, is sent instead of the built range.
	RangeOverride string

	NameColumn     string
	OutputFormat   string
	FilenamePrefix string
	Mode           string
	PageIndex      int

	FontPreset    string
	FontSize      float64
	FontWeight    int
	LetterSpacing float64
	Color         string

	ServerView bool

	backend  Backend
	fonts    *fonts.Registry
	previews Invalidator
	log      logger.Logger
	now      func() time.Time

	dataset *sheets.Dataset
	index   int
	page    int

	template     *request.Template
	templatePath string
	kind         TemplateKind
	revision     int
	nativeW      int
	nativeH      int
	quickPreview string
}

// New creates a session.
func New(backend Backend, d Defaults, opts ...Option) *Session {
	s := &Session{
		Range:          sheets.DefaultRangeSpec(),
		Placement:      placement.New(),
		NameColumn:     d.NameColumn,
		OutputFormat:   d.OutputFormat,
		FilenamePrefix: d.FilenamePrefix,
		Mode:           request.ModeAuto,
		FontPreset:     d.FontPreset,
		FontSize:       d.FontSize,
		FontWeight:     d.FontWeight,
		LetterSpacing:  d.LetterSpacing,
		Color:          d.Color,
		ServerView:     true,
		backend:        backend,
		fonts:          fonts.NewRegistry(),
		log:            logger.NewNoop(),
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fonts returns the session's font registry.
func (s *Session) Fonts() *fonts.Registry {
	return s.fonts
}

// SetLink records new link text and re-resolves the spreadsheet id. When
// the id changes, tabs found for the previous spreadsheet are dropped and
// the range falls back to the default sheet name.
func (s *Session) SetLink(text string) {
	id := sheets.ExtractIdentifier(text)
	if id != s.SheetID() {
		s.Selection.Tabs = nil
		s.Selection.ActiveTab = ""
		s.Range.SheetName = sheets.DefaultSheetName
	}
	s.Selection.LinkText = text
	s.Selection.ResolvedID = id
}

// SheetID returns the resolved spreadsheet id, or "".
func (s *Session) SheetID() string {
	if s.Selection.ResolvedID != "" {
		return s.Selection.ResolvedID
	}
	return sheets.ExtractIdentifier(s.Selection.LinkText)
}

// CurrentRange is the A1 range for the current range spec.
func (s *Session) CurrentRange() string {
	if s.RangeOverride != "" {
		return s.RangeOverride
	}
	spec := s.Range
	if s.Selection.ActiveTab != "" {
		spec.SheetName = s.Selection.ActiveTab
	}
	return sheets.BuildRange(spec)
}

// SelectTab switches the active tab.
func (s *Session) SelectTab(name string) bool {
	if !s.Selection.SelectTab(name) {
		return false
	}
	s.Range.SheetName = name
	return true
}

// Dataset returns the loaded rows, or nil.
func (s *Session) Dataset() *sheets.Dataset {
	return s.dataset
}

// SetDataset replaces the loaded rows and rewinds to the first row.
func (s *Session) SetDataset(ds *sheets.Dataset) {
	s.dataset = ds
	s.index = 0
	s.page = 0
	if ds != nil && len(ds.Headers) > 0 {
		s.NameColumn = ds.DefaultNameColumn(s.NameColumn)
	}
}

// Params is the request state right now.
func (s *Session) Params() request.Params {
	family, asset := s.fonts.Resolve(s.FontPreset)
	return request.Params{
		Template:       s.template,
		SheetID:        s.SheetID(),
		Range:          s.CurrentRange(),
		NameColumn:     s.NameColumn,
		OutputFormat:   s.OutputFormat,
		Mode:           s.Mode,
		Placement:      s.Placement.Point(),
		PageIndex:      s.PageIndex,
		FontFamily:     family,
		FontWeight:     s.FontWeight,
		LetterSpacing:  s.LetterSpacing,
		FontFile:       asset,
		FontSize:       s.FontSize,
		Color:          s.Color,
		FilenamePrefix: s.FilenamePrefix,
	}
}

// Snapshot captures everything the server preview depends on.
func (s *Session) Snapshot() preview.Snapshot {
	return preview.Snapshot{
		Params:     s.Params(),
		RowIndex:   s.index,
		RowCount:   s.Total(),
		ServerView: s.ServerView,
	}
}

// SampleName is the current row's name, or SampleNameFallback.
func (s *Session) SampleName() string {
	records := s.dataset.Records()
	if s.index >= 0 && s.index < len(records) {
		if nm := sheets.ResolveName(records[s.index], s.dataset, s.NameColumn); nm != "" {
			return nm
		}
	}
	return SampleNameFallback
}

// ExampleFilename shows what a generated file will be called.
func (s *Session) ExampleFilename() string {
	return sheets.Filename(s.FilenamePrefix, s.SampleName(), s.OutputFormat)
}

// Close releases local preview files.
func (s *Session) Close() {
	s.releasePreviews()
}
