package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pluqqy/certadmin/internal/cli"
	"github.com/pluqqy/certadmin/pkg/preview"
	"github.com/pluqqy/certadmin/pkg/session"
)

// Run starts the interactive console.
func Run(cc *cli.CommandContext) error {
	client, err := cc.Client()
	if err != nil {
		return err
	}

	// The controller publishes from its own goroutines; program.Send is
	// safe to call from any of them.
	var program *tea.Program
	ctrl := preview.NewController(client,
		preview.WithDelay(time.Duration(cc.Settings.Preview.DebounceMs)*time.Millisecond),
		preview.WithLogger(cc.Logger),
		preview.WithOnUpdate(func(st preview.State) {
			if program != nil {
				program.Send(previewStateMsg(st))
			}
		}),
	)
	defer ctrl.Close()

	sess, err := cc.NewSession(session.WithPreviews(ctrl))
	if err != nil {
		return err
	}
	defer sess.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app := NewApp(ctx, sess, client, ctrl, Config{
		DownloadDir: cc.Settings.Output.DownloadDir,
		ShowGuides:  cc.Settings.UI.ShowGuides,
		MouseDrag:   cc.Settings.UI.MouseDrag,
	})

	program = tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
	cc.Logger.Info("Starting console against %s", cc.Settings.API.URL)
	_, err = program.Run()
	return err
}
