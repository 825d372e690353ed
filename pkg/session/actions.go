package session

import (
	"context"
	"fmt"
	"os"

	"github.com/pluqqy/certadmin/pkg/files"
	"github.com/pluqqy/certadmin/pkg/render"
	"github.com/pluqqy/certadmin/pkg/request"
	"github.com/pluqqy/certadmin/pkg/sheets"
)

// SyncTabs resolves the link and fetches the spreadsheet's tab names.
// On failure the previous tabs are kept.
func (s *Session) SyncTabs(ctx context.Context) ([]string, error) {
	id := sheets.ExtractIdentifier(s.Selection.LinkText)
	if id == "" {
		return nil, ErrInvalidSheetLink
	}
	s.Selection.ResolvedID = id

	tabs, err := s.backend.Tabs(ctx, id)
	if err != nil {
		s.log.Error("Tab sync failed: %v", err)
		return nil, fmt.Errorf("sync sheet tabs: %w", err)
	}
	return s.ApplyTabs(id, tabs), nil
}

// ApplyTabs stores tabs fetched for id. Results for a spreadsheet other
// than the one currently linked are ignored.
func (s *Session) ApplyTabs(id string, tabs []string) []string {
	if id != s.SheetID() {
		s.log.Debug("Ignoring tabs for %s", id)
		return s.Selection.Tabs
	}
	s.Selection.ApplyTabs(tabs)
	if s.Selection.ActiveTab != "" {
		s.Range.SheetName = s.Selection.ActiveTab
	}
	s.log.Info("Synced %d tabs for %s", len(tabs), id)
	return s.Selection.Tabs
}

// LoadPreview fetches the rows in the current range. On failure the
// previously loaded rows are kept.
func (s *Session) LoadPreview(ctx context.Context) (*sheets.Dataset, error) {
	id := s.SheetID()
	if id == "" {
		return nil, ErrInvalidSheetLink
	}
	s.Selection.ResolvedID = id

	rng := s.CurrentRange()
	ds, err := s.backend.Preview(ctx, id, rng)
	if err != nil {
		s.log.Error("Preview fetch failed: %v", err)
		return nil, fmt.Errorf("load sheet preview: %w", err)
	}
	s.SetDataset(ds)
	s.log.Info("Loaded %d rows from %s", s.Total(), rng)
	return ds, nil
}

func (s *Session) readyParams() (request.Params, error) {
	p := s.Params()
	if p.SheetID == "" {
		return p, ErrInvalidSheetLink
	}
	if err := p.Validate(); err != nil {
		return p, err
	}
	return p, nil
}

// ArchiveName is the file name used for a batch archive.
func (s *Session) ArchiveName() string {
	return fmt.Sprintf("certificates_%d.zip", s.now().UnixMilli())
}

// Job is a generation request captured from the session. Running it only
// touches the backend, so it can run off the update loop.
type Job struct {
	Payload  request.Payload
	Filename string
	Single   bool
}

// ZipJob prepares a batch generation of every row.
func (s *Session) ZipJob() (Job, error) {
	p, err := s.readyParams()
	if err != nil {
		return Job{}, err
	}
	return Job{Payload: request.ForBatch(p), Filename: s.ArchiveName()}, nil
}

// CurrentJob prepares a single generation of the current row.
func (s *Session) CurrentJob() (Job, error) {
	p, err := s.readyParams()
	if err != nil {
		return Job{}, err
	}
	return Job{
		Payload:  request.ForSingle(p, s.index),
		Filename: s.CurrentFilename(),
		Single:   true,
	}, nil
}

// Run sends job to the backend and saves the result into dir.
func (s *Session) Run(ctx context.Context, job Job, dir string) (string, error) {
	var (
		data []byte
		err  error
	)
	if job.Single {
		data, err = s.backend.GenerateOne(ctx, job.Payload)
		if err != nil {
			s.log.Error("Single generation failed: %v", err)
			return "", fmt.Errorf("generate current row: %w", err)
		}
	} else {
		data, err = s.backend.Generate(ctx, job.Payload)
		if err != nil {
			s.log.Error("Batch generation failed: %v", err)
			return "", fmt.Errorf("generate archive: %w", err)
		}
	}
	path, err := files.WriteDownload(dir, job.Filename, data)
	if err != nil {
		return "", err
	}
	s.log.Info("Saved %s (%d bytes)", path, len(data))
	return path, nil
}

// GenerateZip renders every row and saves the archive into dir.
func (s *Session) GenerateZip(ctx context.Context, dir string) (string, error) {
	job, err := s.ZipJob()
	if err != nil {
		return "", err
	}
	return s.Run(ctx, job, dir)
}

// CurrentFilename is the download name for the current row.
func (s *Session) CurrentFilename() string {
	name := sheets.DisplayName(s.dataset, s.index, s.NameColumn)
	return sheets.Filename(s.FilenamePrefix, name, s.OutputFormat)
}

// DownloadCurrent renders the current row and saves it into dir.
func (s *Session) DownloadCurrent(ctx context.Context, dir string) (string, error) {
	job, err := s.CurrentJob()
	if err != nil {
		return "", err
	}
	return s.Run(ctx, job, dir)
}

// QuickPreview draws the sample name on the template locally and writes
// it to a temporary PNG in dir. Only one quick preview is kept.
func (s *Session) QuickPreview(dir string) (string, error) {
	if s.template == nil {
		return "", ErrMissingTemplate
	}
	if s.kind == KindPDF {
		return "", render.ErrPDFTemplate
	}
	img, err := render.ComposeImageFrom(s.template.Data, s.SampleName(), render.Options{
		Point:         s.Placement.Point(),
		FontSize:      s.FontSize,
		LetterSpacing: s.LetterSpacing,
		Color:         s.Color,
		FacePath:      s.fonts.FacePath(s.FontPreset),
	})
	if err != nil {
		return "", err
	}
	f, err := os.CreateTemp(dir, "certadmin-quick-*.png")
	if err != nil {
		return "", fmt.Errorf("failed to create quick preview: %w", err)
	}
	path := f.Name()
	f.Close()
	if err := render.WritePNG(path, img); err != nil {
		os.Remove(path)
		return "", err
	}
	if s.quickPreview != "" {
		os.Remove(s.quickPreview)
	}
	s.quickPreview = path
	return path, nil
}
