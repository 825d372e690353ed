package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pluqqy/certadmin/pkg/preview"
	"github.com/pluqqy/certadmin/pkg/session"
	"github.com/pluqqy/certadmin/pkg/sheets"
)

// tabsSyncedMsg carries the tab list fetched for a spreadsheet id.
type tabsSyncedMsg struct {
	id   string
	tabs []string
	err  error
}

// rowsLoadedMsg carries the rows fetched for a range.
type rowsLoadedMsg struct {
	rng string
	ds  *sheets.Dataset
	err error
}

// downloadDoneMsg reports a finished generation job.
type downloadDoneMsg struct {
	job  session.Job
	path string
	err  error
}

// previewStateMsg is published by the preview controller.
type previewStateMsg preview.State

func syncTabsCmd(ctx context.Context, b session.Backend, id string) tea.Cmd {
	return func() tea.Msg {
		tabs, err := b.Tabs(ctx, id)
		return tabsSyncedMsg{id: id, tabs: tabs, err: err}
	}
}

func loadRowsCmd(ctx context.Context, b session.Backend, id, rng string) tea.Cmd {
	return func() tea.Msg {
		ds, err := b.Preview(ctx, id, rng)
		return rowsLoadedMsg{rng: rng, ds: ds, err: err}
	}
}

func runJobCmd(ctx context.Context, s *session.Session, job session.Job, dir string) tea.Cmd {
	return func() tea.Msg {
		path, err := s.Run(ctx, job, dir)
		return downloadDoneMsg{job: job, path: path, err: err}
	}
}
