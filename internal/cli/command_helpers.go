package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/pluqqy/certadmin/pkg/api"
	"github.com/pluqqy/certadmin/pkg/files"
	"github.com/pluqqy/certadmin/pkg/logger"
	"github.com/pluqqy/certadmin/pkg/models"
	"github.com/pluqqy/certadmin/pkg/session"
)

// CommandContext loads configuration once and builds the collaborators
// commands need.
type CommandContext struct {
	ConfigPath string
	Settings   *models.Settings
	Logger     logger.Logger

	logFile *os.File
}

// NewCommandContext reads settings from configPath (or the default
// search path) and validates them.
func NewCommandContext(configPath string) (*CommandContext, error) {
	settings, err := files.ReadSettings(configPath)
	if err != nil {
		return nil, err
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &CommandContext{
		ConfigPath: configPath,
		Settings:   settings,
		Logger:     logger.NewNoop(),
	}, nil
}

// UseConsoleLogger logs to stderr at the configured level.
func (c *CommandContext) UseConsoleLogger() {
	level := logger.ParseLevel(c.Settings.Log.Level)
	if quiet {
		level = logger.LevelError
	}
	c.Logger = logger.NewConsole(level)
}

// UseFileLogger logs to the configured log file. The TUI owns the
// terminal, so it cannot share stderr.
func (c *CommandContext) UseFileLogger() error {
	if c.Settings.Log.File == "" {
		return nil
	}
	l, f, err := logger.OpenFile(logger.ParseLevel(c.Settings.Log.Level), c.Settings.Log.File)
	if err != nil {
		return err
	}
	c.Logger = l
	c.logFile = f
	return nil
}

// Client builds the backend client from settings.
func (c *CommandContext) Client() (*api.Client, error) {
	timeout := time.Duration(c.Settings.API.TimeoutSeconds) * time.Second
	return api.New(c.Settings.API.URL, api.WithTimeout(timeout))
}

// Defaults maps settings onto the session's initial values.
func (c *CommandContext) Defaults() session.Defaults {
	s := c.Settings
	return session.Defaults{
		FontPreset:     s.Text.FontPreset,
		FontSize:       s.Text.FontSize,
		FontWeight:     s.Text.FontWeight,
		LetterSpacing:  s.Text.LetterSpacing,
		Color:          s.Text.Color,
		NameColumn:     s.Output.NameColumn,
		OutputFormat:   s.Output.Format,
		FilenamePrefix: s.Output.FilenamePrefix,
	}
}

// NewSession builds a session talking to the configured backend.
func (c *CommandContext) NewSession(opts ...session.Option) (*session.Session, error) {
	client, err := c.Client()
	if err != nil {
		return nil, err
	}
	opts = append([]session.Option{session.WithLogger(c.Logger)}, opts...)
	s := session.New(client, c.Defaults(), opts...)
	s.Fonts().LoadFaces(c.Settings.Text.FontFaces)
	s.ServerView = c.Settings.Preview.DefaultView != "client"
	return s, nil
}

// Close releases the log file.
func (c *CommandContext) Close() {
	if c.logFile != nil {
		c.logFile.Close()
		c.logFile = nil
	}
}
