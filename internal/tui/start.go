// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/xafmodel/xafmodel/internal/launch"
	"github.com/xafmodel/xafmodel/internal/logsink"
	"github.com/xafmodel/xafmodel/internal/state"
)

const (
	// ChoiceOK starts the Model Editor.
	ChoiceOK Choice = iota
	// ChoiceDontShowAgain starts the Model Editor and suppresses future
	// dialogs.
	ChoiceDontShowAgain
)

// ErrCancelled is returned when the user aborts the dialog. It wraps
// context.Canceled so callers need not import this package to detect it.
var ErrCancelled = fmt.Errorf("cancelled by user: %w", context.Canceled)

type (
	// Choice is the answer given in the start dialog.
	Choice int

	// FlagStore persists the "don't show again" answer.
	FlagStore interface {
		Bool(key string) (bool, error)
		SetBool(key string, value bool) error
	}

	// PromptFunc shows the dialog and returns the user's choice.
	PromptFunc func(ctx context.Context, title, description string) (Choice, error)

	// StartConfirmer shows the dialog displayed before the Model Editor
	// starts. The dialog is informational: both answers proceed, and only
	// aborting it (ctrl+c, esc) cancels the launch.
	StartConfirmer struct {
		// Store holds the suppression flag under state.SuppressStartDialogKey.
		Store FlagStore
		// Enabled false skips the dialog entirely.
		Enabled bool
		// AssumeYes skips the dialog for this run without persisting anything.
		AssumeYes bool
		// Interactive false skips the dialog (no terminal to ask on).
		Interactive bool
		// Prompt defaults to a huh select form built from Config.
		Prompt PromptFunc
		Config Config
		Log    logsink.Sink
	}
)

// String returns the label shown for the choice.
func (c Choice) String() string {
	switch c {
	case ChoiceOK:
		return "OK"
	case ChoiceDontShowAgain:
		return "Don't show again"
	default:
		return "unknown"
	}
}

// NewStartConfirmer creates a confirmer using the process terminal.
func NewStartConfirmer(store FlagStore, enabled, assumeYes bool, sink logsink.Sink) *StartConfirmer {
	return &StartConfirmer{
		Store:       store,
		Enabled:     enabled,
		AssumeYes:   assumeYes,
		Interactive: IsInputTerminal(),
		Config:      DefaultConfig(),
		Log:         sink,
	}
}

// Confirm shows the dialog for exe and args unless it is suppressed. It
// returns ErrCancelled when the user aborts.
func (c *StartConfirmer) Confirm(ctx context.Context, exe string, args []string) error {
	if skip, why := c.skipReason(); skip {
		logsink.Printf(c.Log, "Start dialog skipped: %s", why)
		return nil
	}

	prompt := c.Prompt
	if prompt == nil {
		prompt = c.huhPrompt
	}
	choice, err := prompt(ctx, "Starting Model Editor", describeStart(exe, args))
	if err != nil {
		return err
	}

	if choice == ChoiceDontShowAgain && c.Store != nil {
		if err := c.Store.SetBool(state.SuppressStartDialogKey, true); err != nil {
			// The launch still proceeds; the dialog will just show again.
			logsink.Printf(c.Log, "Could not save start dialog preference: %v", err)
		}
	}
	return nil
}

func (c *StartConfirmer) skipReason() (bool, string) {
	switch {
	case !c.Enabled:
		return true, "disabled in configuration"
	case c.AssumeYes:
		return true, "--yes given"
	case !c.Interactive:
		return true, "stdin is not a terminal"
	}
	if c.Store != nil {
		suppressed, err := c.Store.Bool(state.SuppressStartDialogKey)
		if err != nil {
			logsink.Printf(c.Log, "Could not read start dialog preference: %v", err)
		}
		if suppressed {
			return true, "suppressed by earlier choice"
		}
	}
	return false, ""
}

func (c *StartConfirmer) huhPrompt(ctx context.Context, title, description string) (Choice, error) {
	choice := ChoiceOK
	sel := huh.NewSelect[Choice]().
		Title(title).
		Description(description).
		Options(
			huh.NewOption(ChoiceOK.String(), ChoiceOK),
			huh.NewOption(ChoiceDontShowAgain.String(), ChoiceDontShowAgain),
		).
		Value(&choice)

	form := huh.NewForm(huh.NewGroup(sel)).
		WithTheme(huhTheme(c.Config.Theme)).
		WithAccessible(c.Config.Accessible)
	if c.Config.Input != nil {
		form = form.WithInput(c.Config.Input)
	}
	if c.Config.Output != nil {
		form = form.WithOutput(c.Config.Output)
	}

	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return choice, ErrCancelled
		}
		return choice, fmt.Errorf("start dialog: %w", err)
	}
	return choice, nil
}

// describeStart lists the executable and its arguments, one per line.
func describeStart(exe string, args []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Executable: %s", launch.Quote(exe))
	if len(args) > 0 {
		b.WriteString("\nArguments:")
		for _, a := range args {
			fmt.Fprintf(&b, "\n  %s", launch.Quote(a))
		}
	}
	return b.String()
}
