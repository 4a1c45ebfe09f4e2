// Package audio plays the looping background track. Playback may be refused
// until the user interacts with the window, so Autoplay falls back to a
// click-to-start prompt and retries once.
package audio

import (
	"errors"
	"log/slog"
	"sync"
)

// ErrPlaybackRejected is returned by a Player that cannot start yet.
var ErrPlaybackRejected = errors.New("audio: playback rejected")

// Player starts playback.
type Player interface {
	Play() error
}

// Prompt is a visible notice that can be dismissed.
type Prompt interface {
	Remove()
}

// Host is the window the prompt is shown in.
type Host interface {
	ShowPrompt(text string) Prompt

	// OnFirstClick registers fn for the next click anywhere in the window.
	OnFirstClick(fn func())
}

// Recorder counts playback attempts.
type Recorder interface {
	AudioAttempt(ok bool)
}

// Autoplay starts the background track as soon as it is allowed to.
type Autoplay struct {
	player Player
	host   Host
	text   string

	Log      *slog.Logger
	Recorder Recorder

	startOnce sync.Once
	clickOnce sync.Once
	prompt    Prompt
}

// NewAutoplay returns an Autoplay that shows text when playback is rejected.
func NewAutoplay(player Player, host Host, text string) *Autoplay {
	return &Autoplay{
		player: player,
		host:   host,
		text:   text,
		Log:    slog.Default(),
	}
}

// Start tries to play. On failure it shows one prompt and retries on the
// first click; the prompt is removed after the retry whatever its outcome.
// Start reports whether playback began immediately. Only the first call has
// any effect.
func (a *Autoplay) Start() bool {
	started := false
	a.startOnce.Do(func() {
		err := a.play()
		if err == nil {
			started = true
			return
		}
		a.Log.Info("background audio blocked, waiting for a click", "err", err)
		a.prompt = a.host.ShowPrompt(a.text)
		a.host.OnFirstClick(a.retry)
	})
	return started
}

func (a *Autoplay) retry() {
	a.clickOnce.Do(func() {
		if err := a.play(); err != nil {
			a.Log.Debug("background audio retry failed", "err", err)
		}
		a.prompt.Remove()
	})
}

func (a *Autoplay) play() error {
	err := a.player.Play()
	if a.Recorder != nil {
		a.Recorder.AudioAttempt(err == nil)
	}
	return err
}
