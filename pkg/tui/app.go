package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/pluqqy/certadmin/pkg/notices"
	"github.com/pluqqy/certadmin/pkg/preview"
	"github.com/pluqqy/certadmin/pkg/render"
	"github.com/pluqqy/certadmin/pkg/session"
)

type pane int

const (
	sheetPane pane = iota
	stylePane
	canvasPane
	rowsPane
	paneCount
)

// Previewer renders the server preview for the current state.
type Previewer interface {
	Notify(s preview.Snapshot) bool
	Refresh()
}

// Config holds the console's UI settings.
type Config struct {
	DownloadDir string
	TempDir     string
	ShowGuides  bool
	MouseDrag   bool
}

// App is the root model of the console.
type App struct {
	ctx      context.Context
	sess     *session.Session
	backend  session.Backend
	previews Previewer
	cfg      Config

	sheetForm *form
	styleForm *form
	rows      viewport.Model
	canvas    canvas
	status    *StatusManager

	focus   pane
	width   int
	height  int
	preview preview.State
	quick   string

	syncing    bool
	loading    bool
	generating bool

	copy func(string) error
}

// NewApp creates the console model. previews may be nil.
func NewApp(ctx context.Context, sess *session.Session, backend session.Backend, previews Previewer, cfg Config) *App {
	return &App{
		ctx:       ctx,
		sess:      sess,
		backend:   backend,
		previews:  previews,
		cfg:       cfg,
		sheetForm: newForm("Sheet", sheetFields()),
		styleForm: newForm("Template & text", styleFields()),
		rows:      viewport.New(40, 10),
		canvas:    canvas{showGuides: cfg.ShowGuides},
		status:    NewStatusManager(),
		copy:      clipboard.WriteAll,
	}
}

func (a *App) Init() tea.Cmd {
	if a.sess.SheetID() == "" {
		a.status.SetPersistentMessage(notices.T(notices.MissingSheetOrTmpl), StatusTypeInfo)
	}
	return nil
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.layout()
		a.canvas.SetNative(a.sess.NativeSize())
		return a, nil

	case ClearStatusMsg:
		a.status.HandleClear(msg)
		return a, nil

	case previewStateMsg:
		a.preview = preview.State(msg)
		if msg.Err != "" {
			return a, a.status.ShowError(fmt.Sprintf("%s: %s", notices.T(notices.RenderFailed), msg.Err))
		}
		return a, nil

	case tabsSyncedMsg:
		a.syncing = false
		if msg.err != nil {
			cmd = a.status.ShowError(fmt.Sprintf("%s: %v", notices.T(notices.TabsSyncFailed), msg.err))
			break
		}
		tabs := a.sess.ApplyTabs(msg.id, msg.tabs)
		cmd = a.status.ShowSuccess(notices.F(notices.TabsSynced, len(tabs)))

	case rowsLoadedMsg:
		a.loading = false
		if msg.err != nil {
			cmd = a.status.ShowError(fmt.Sprintf("%s: %v", notices.T(notices.PreviewFailed), msg.err))
			break
		}
		a.sess.SetDataset(msg.ds)
		a.rows.GotoTop()
		a.status.ClearPersistentMessage()
		cmd = a.status.ShowSuccess(notices.F(notices.PreviewLoaded, a.sess.Total(), msg.rng))

	case downloadDoneMsg:
		a.generating = false
		switch {
		case msg.err != nil && msg.job.Single:
			cmd = a.status.ShowError(fmt.Sprintf("%s: %v", notices.T(notices.FileFailed), msg.err))
		case msg.err != nil:
			cmd = a.status.ShowError(fmt.Sprintf("%s: %v", notices.T(notices.ZipFailed), msg.err))
		case msg.job.Single:
			cmd = a.status.ShowSuccess(notices.F(notices.FileSaved, msg.path))
		default:
			cmd = a.status.ShowSuccess(notices.F(notices.ZipSaved, msg.path))
		}

	case tea.MouseMsg:
		if !a.cfg.MouseDrag {
			return a, nil
		}
		if a.canvas.HandleMouse(msg, a.sess.Placement) {
			a.focus = canvasPane
		}

	case tea.KeyMsg:
		var quit bool
		cmd, quit = a.handleKey(msg)
		if quit {
			return a, tea.Quit
		}
	}

	a.notify()
	return a, cmd
}

// notify sizes the canvas for the loaded template and hands the current
// state to the server preview, which debounces and skips unchanged
// snapshots itself.
func (a *App) notify() {
	a.canvas.SetNative(a.sess.NativeSize())
	if a.previews != nil {
		a.previews.Notify(a.sess.Snapshot())
	}
}

func (a *App) activeForm() *form {
	switch a.focus {
	case sheetPane:
		return a.sheetForm
	case stylePane:
		return a.styleForm
	}
	return nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if msg.Type == tea.KeyCtrlC {
		return nil, true
	}

	f := a.activeForm()
	if f != nil && f.Editing() {
		return a.applyForm(f.handleKey(msg, a.sess)), false
	}

	switch msg.String() {
	case "q":
		return nil, true
	case "tab":
		a.focus = (a.focus + 1) % paneCount
		return nil, false
	case "shift+tab":
		a.focus = (a.focus + paneCount - 1) % paneCount
		return nil, false
	}

	switch a.focus {
	case sheetPane, stylePane:
		if res := f.handleKey(msg, a.sess); res.handled {
			return a.applyForm(res), false
		}
	case canvasPane:
		if a.canvas.HandleKey(msg.String(), a.sess.Placement) {
			return nil, false
		}
		if msg.String() == "c" {
			a.sess.Placement.Reset()
			return a.status.ShowInfo(notices.T(notices.PlacementReset)), false
		}
	case rowsPane:
		switch msg.String() {
		case "up", "k":
			a.sess.Prev()
			return nil, false
		case "down", "j":
			a.sess.Next()
			return nil, false
		case "pgup":
			a.sess.PrevPage()
			return nil, false
		case "pgdown":
			a.sess.NextPage()
			return nil, false
		}
	}

	return a.handleAction(msg.String()), false
}

func (a *App) applyForm(res formResult) tea.Cmd {
	switch {
	case res.err != nil:
		return tea.Batch(res.cmd, a.status.ShowError(res.err.Error()))
	case res.notice != "":
		return tea.Batch(res.cmd, a.status.ShowSuccess(res.notice))
	}
	return res.cmd
}

// handleAction runs the console-wide commands.
func (a *App) handleAction(key string) tea.Cmd {
	switch key {
	case "s":
		return a.syncTabs()
	case "l":
		return a.loadRows()
	case "g":
		return a.generate(false)
	case "d":
		return a.generate(true)
	case "r":
		if a.previews == nil || !a.sess.ServerView {
			return nil
		}
		previews := a.previews
		return func() tea.Msg {
			previews.Refresh()
			return nil
		}
	case "v":
		a.sess.ServerView = !a.sess.ServerView
		return nil
	case "p":
		return a.quickPreview()
	case "y":
		if err := a.copy(a.sess.CurrentRange()); err != nil {
			return a.status.ShowError(fmt.Sprintf("%s: %v", notices.T(notices.ClipboardFailed), err))
		}
		return a.status.ShowSuccess(notices.T(notices.RangeCopied))
	case "[":
		a.sess.Prev()
	case "]":
		a.sess.Next()
	case "{":
		a.sess.PrevPage()
	case "}":
		a.sess.NextPage()
	}
	return nil
}

func (a *App) syncTabs() tea.Cmd {
	if a.syncing {
		return nil
	}
	id := a.sess.SheetID()
	if id == "" {
		return a.status.ShowError(notices.T(notices.InvalidSheetLink))
	}
	a.syncing = true
	return syncTabsCmd(a.ctx, a.backend, id)
}

func (a *App) loadRows() tea.Cmd {
	if a.loading {
		return nil
	}
	id := a.sess.SheetID()
	if id == "" {
		return a.status.ShowError(notices.T(notices.InvalidSheetLink))
	}
	a.loading = true
	return loadRowsCmd(a.ctx, a.backend, id, a.sess.CurrentRange())
}

func (a *App) generate(single bool) tea.Cmd {
	if a.generating {
		return nil
	}
	var (
		job session.Job
		err error
	)
	if single {
		job, err = a.sess.CurrentJob()
	} else {
		job, err = a.sess.ZipJob()
	}
	if err != nil {
		if errors.Is(err, session.ErrInvalidSheetLink) || errors.Is(err, session.ErrMissingTemplate) {
			return a.status.ShowError(notices.T(notices.MissingSheetOrTmpl))
		}
		return a.status.ShowError(err.Error())
	}
	a.generating = true
	return runJobCmd(a.ctx, a.sess, job, a.cfg.DownloadDir)
}

func (a *App) quickPreview() tea.Cmd {
	path, err := a.sess.QuickPreview(a.cfg.TempDir)
	switch {
	case errors.Is(err, render.ErrPDFTemplate):
		return a.status.ShowWarning(notices.T(notices.QuickPreviewPDF))
	case errors.Is(err, session.ErrMissingTemplate):
		return a.status.ShowError(notices.T(notices.MissingTemplate))
	case err != nil:
		return a.status.ShowError(err.Error())
	}
	a.quick = path
	return a.status.ShowSuccess(notices.F(notices.QuickPreviewSaved, path))
}

// Layout

const (
	sheetPaneHeight = 9
	minLeftWidth    = 44
	chromeLines     = 2 // help and status bars
)

func (a *App) headerView() string {
	label := "CLIENT"
	if a.sess.ServerView {
		label = "SERVER"
	}
	badge := GetViewBadgeStyle(a.sess.ServerView).Render(label)
	if id := a.sess.SheetID(); id != "" {
		badge += " " + DescriptionStyle.Render(truncate.StringWithTail(id, 24, "…"))
	}
	return renderHeader(a.width, "Certificate console", badge)
}

func (a *App) columns() (int, int) {
	left := a.width * 2 / 5
	if left < minLeftWidth {
		left = minLeftWidth
	}
	if left > a.width {
		left = a.width
	}
	return left, a.width - left
}

func (a *App) bodyHeight() int {
	h := a.height - lipgloss.Height(a.headerView()) - chromeLines
	if h < 0 {
		return 0
	}
	return h
}

func (a *App) canvasHeight() int {
	return a.bodyHeight() * 3 / 5
}

// layout sizes the panes and tells the canvas where it sits on screen.
func (a *App) layout() {
	leftW, rightW := a.columns()
	headerH := lipgloss.Height(a.headerView())
	canvasH := a.canvasHeight()

	// border + padding horizontally, border + title vertically, two footer lines
	a.canvas.SetArea(leftW+2, headerH+2, rightW-4, canvasH-5)

	rowsH := a.bodyHeight() - canvasH
	a.rows.Width = rightW - 4
	a.rows.Height = rowsH - 3
	if a.rows.Height < 1 {
		a.rows.Height = 1
	}
}

func (a *App) pane(content string, width, height int, active bool) string {
	if width < 4 || height < 3 {
		return ""
	}
	return GetPaneBorderStyle(active).
		Width(width - 2).
		Height(height - 2).
		Render(ContentPaddingStyle.Render(content))
}

func (a *App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Loading..."
	}

	leftW, rightW := a.columns()
	bodyH := a.bodyHeight()
	canvasH := a.canvasHeight()

	left := lipgloss.JoinVertical(lipgloss.Left,
		a.pane(a.sheetForm.view(a.sess, leftW-4, a.focus == sheetPane), leftW, sheetPaneHeight, a.focus == sheetPane),
		a.pane(a.styleForm.view(a.sess, leftW-4, a.focus == stylePane), leftW, bodyH-sheetPaneHeight, a.focus == stylePane),
	)
	right := lipgloss.JoinVertical(lipgloss.Left,
		a.pane(a.canvasView(), rightW, canvasH, a.focus == canvasPane),
		a.pane(a.rowsView(), rightW, bodyH-canvasH, a.focus == rowsPane),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		a.headerView(),
		lipgloss.JoinHorizontal(lipgloss.Top, left, right),
		a.helpView(),
		a.statusView(),
	)
}

func (a *App) canvasView() string {
	var b strings.Builder
	b.WriteString(GetActiveHeaderStyle(a.focus == canvasPane).Render("PLACEMENT"))
	b.WriteString("\n")

	if a.sess.Template() == nil {
		b.WriteString(EmptyInactiveStyle.Render(notices.T(notices.MissingTemplate)))
		return b.String()
	}
	p := a.sess.Placement.Point()
	b.WriteString(a.canvas.View(p, a.sess.SampleName(), a.sess.Color))
	b.WriteString("\n")
	b.WriteString(DescriptionStyle.Render(a.canvas.Footer(p, a.sess.FontSize, a.sess.LetterSpacing)))
	b.WriteString("\n")
	b.WriteString(a.previewLine())
	return b.String()
}

func (a *App) previewLine() string {
	width := a.canvas.width
	if width < 10 {
		width = 10
	}
	var line string
	switch {
	case !a.sess.ServerView && a.quick != "":
		line = notices.F(notices.QuickPreviewSaved, a.quick)
	case !a.sess.ServerView:
		line = notices.T(notices.PlacementHelp)
	case a.preview.Loading:
		line = notices.T(notices.RenderLoading)
	case a.preview.Err != "":
		line = fmt.Sprintf("%s: %s", notices.T(notices.RenderFailed), a.preview.Err)
		return ErrorStyle.Render(truncate.StringWithTail(line, uint(width), "…"))
	case a.preview.Path != "":
		line = "Preview: " + a.preview.Path
	default:
		line = notices.T(notices.RenderEmpty)
	}
	return DescriptionStyle.Render(truncate.StringWithTail(line, uint(width), "…"))
}

func (a *App) rowsView() string {
	var b strings.Builder
	title := "ROWS"
	if n := a.sess.Total(); n > 0 {
		title = fmt.Sprintf("ROWS  %d/%d  ·  page %d/%d", a.sess.Index()+1, n, a.sess.Page()+1, a.sess.Pages())
	}
	b.WriteString(GetActiveHeaderStyle(a.focus == rowsPane).Render(title))
	b.WriteString("\n")

	entries := a.sess.PageRows()
	if len(entries) == 0 {
		b.WriteString(EmptyInactiveStyle.Render("No rows loaded. Press l to load the range."))
		return b.String()
	}

	lines := make([]string, len(entries))
	cursor := 0
	for i, e := range entries {
		text := truncate.StringWithTail(fmt.Sprintf("%4d  %s", e.Index+1, e.Name), uint(a.rows.Width), "…")
		if e.Current {
			cursor = i
			lines[i] = SelectedStyle.Render(text)
		} else {
			lines[i] = NormalStyle.Render(text)
		}
	}
	a.rows.SetContent(strings.Join(lines, "\n"))
	if cursor < a.rows.YOffset {
		a.rows.SetYOffset(cursor)
	} else if cursor >= a.rows.YOffset+a.rows.Height {
		a.rows.SetYOffset(cursor - a.rows.Height + 1)
	}
	b.WriteString(a.rows.View())
	return b.String()
}

func (a *App) helpView() string {
	help := "tab pane • enter edit • ←/→ cycle • s sync tabs • l load rows • [/] row • r refresh • v view • p quick preview • d download • g zip • y copy range • c centre • q quit"
	return DescriptionStyle.Render(truncate.StringWithTail(help, uint(a.width), "…"))
}

func (a *App) statusView() string {
	if msg, t, ok := a.status.GetStatus(); ok {
		return GetStatusStyle(t).Width(a.width).Render(msg)
	}
	var busy []string
	if a.syncing {
		busy = append(busy, "syncing tabs")
	}
	if a.loading {
		busy = append(busy, "loading rows")
	}
	if a.generating {
		busy = append(busy, "generating")
	}
	if len(busy) > 0 {
		return DescriptionStyle.Render(strings.Join(busy, ", ") + "…")
	}
	return ""
}
