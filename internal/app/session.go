package app

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"trends-desk/internal/command"
	"trends-desk/pkg/logger"
	"trends-desk/pkg/trends"
)

const (
	// MainWindowTitle is the title of the main window.
	MainWindowTitle = "Google Trends Data Extraction"

	keywordsLabel  = "Enter Keywords (comma-separated):"
	timeframeLabel = "Enter Timeframe (default is 'all'):"

	rateLimitTitle = "Rate Limit Exceeded"
	stopTimeout    = 5 * time.Second
)

// Runner performs one user action. Errors have already been shown to the user
// by the time Run returns.
type Runner interface {
	Run(ctx context.Context, action command.Action, q trends.Query) error
}

// Session owns the main window: two input fields and one button per action.
// At most one action runs at a time; the buttons stay disabled until it ends.
type Session struct {
	app    fyne.App
	window fyne.Window
	runner Runner

	keywords  *widget.Entry
	timeframe *widget.Entry
	buttons   map[command.Action]*widget.Button

	busy     atomic.Bool
	inflight sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc

	log *logger.Logger
}

// NewSession builds the main window content for w
func NewSession(a fyne.App, w fyne.Window, runner Runner) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		app:     a,
		window:  w,
		runner:  runner,
		buttons: make(map[command.Action]*widget.Button),
		ctx:     ctx,
		cancel:  cancel,
		log:     logger.GetLogger().WithField("component", "session"),
	}
	w.SetTitle(MainWindowTitle)
	w.SetContent(s.content())
	return s
}

func (s *Session) content() fyne.CanvasObject {
	heading := canvas.NewText(MainWindowTitle, theme.Color(theme.ColorNameForeground))
	heading.Alignment = fyne.TextAlignCenter
	heading.TextSize = 16
	heading.TextStyle = fyne.TextStyle{Bold: true}

	s.keywords = widget.NewEntry()
	s.keywords.SetPlaceHolder("cats, dogs")
	s.timeframe = widget.NewEntry()
	s.timeframe.SetPlaceHolder("all")

	form := container.New(layout.NewFormLayout(),
		widget.NewLabel(keywordsLabel), s.keywords,
		widget.NewLabel(timeframeLabel), s.timeframe,
	)

	rows := []fyne.CanvasObject{heading, form}
	for _, action := range command.Actions() {
		btn := widget.NewButton(action.Label(), func() { s.trigger(action) })
		s.buttons[action] = btn
		rows = append(rows, btn)
	}
	return container.NewPadded(container.NewVBox(rows...))
}

// trigger runs on the UI goroutine.
func (s *Session) trigger(action command.Action) {
	if !s.busy.CompareAndSwap(false, true) {
		return
	}
	q := command.ParseQuery(s.keywords.Text, s.timeframe.Text)
	s.setEnabled(false)

	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		defer func() {
			fyne.Do(func() { s.setEnabled(true) })
			s.busy.Store(false)
		}()
		defer func() {
			if r := recover(); r != nil {
				s.log.WithFields(map[string]interface{}{
					"action": action.String(),
					"panic":  r,
				}).Error("Action panicked")
				err := fmt.Errorf("unexpected failure in %s: %v", action.Label(), r)
				fyne.Do(func() { dialog.ShowError(err, s.window) })
			}
		}()
		_ = s.runner.Run(s.ctx, action, q)
	}()
}

func (s *Session) setEnabled(enabled bool) {
	for _, btn := range s.buttons {
		if enabled {
			btn.Enable()
		} else {
			btn.Disable()
		}
	}
}

// Busy reports whether an action is in flight.
func (s *Session) Busy() bool {
	return s.busy.Load()
}

// Start shows the main window and blocks until it is closed or ctx is done.
func (s *Session) Start(ctx context.Context) error {
	stopped := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			s.log.Info("Shutdown signal received")
			fyne.Do(s.app.Quit)
		case <-stopped:
		}
	}()

	s.log.Info("Session started")
	s.window.ShowAndRun()
	close(stopped)
	return s.Stop()
}

// Stop cancels in-flight requests and waits briefly for the action goroutine.
// A cooldown in progress is not interrupted, so Stop gives up after a timeout.
func (s *Session) Stop() error {
	s.cancel()

	done := make(chan struct{})
	go func() {
		s.inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.log.Info("Session stopped")
		return nil
	case <-time.After(stopTimeout):
		s.log.Warn("Session stopped with an action still running")
		return fmt.Errorf("action still running after %s", stopTimeout)
	}
}

// DialogNotifier shows dispatcher events as dialogs on the main window.
type DialogNotifier struct {
	window fyne.Window
}

// NewNotifier creates a notifier bound to w
func NewNotifier(w fyne.Window) *DialogNotifier {
	return &DialogNotifier{window: w}
}

// RateLimited tells the user how long the cooldown lasts.
func (n *DialogNotifier) RateLimited(cooldown time.Duration) {
	msg := RateLimitMessage(cooldown)
	fyne.Do(func() { dialog.ShowInformation(rateLimitTitle, msg, n.window) })
}

// Failed shows err in an error dialog.
func (n *DialogNotifier) Failed(err error) {
	fyne.Do(func() { dialog.ShowError(err, n.window) })
}

// RateLimitMessage is the text shown when a call is rate limited.
func RateLimitMessage(cooldown time.Duration) string {
	return fmt.Sprintf("Rate limit exceeded. Waiting for %d seconds.", int(cooldown/time.Second))
}
