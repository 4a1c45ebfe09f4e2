// Package gui shows the scene in a cogentcore window.
package gui

import (
	"context"
	"image/color"
	"log/slog"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/colors"
	"cogentcore.org/core/core"
	"cogentcore.org/core/events"
	"cogentcore.org/core/styles"
	"cogentcore.org/core/styles/units"
	"cogentcore.org/core/text/text"
	"cogentcore.org/core/xyz/xyzcore"

	"solar-system-scene/audio"
	"solar-system-scene/config"
	"solar-system-scene/engine/xyzengine"
	"solar-system-scene/frame"
	"solar-system-scene/metrics"
	"solar-system-scene/scene"
	"solar-system-scene/viewport"
)

// Run opens the main window and blocks until it is closed.
func Run(ctx context.Context, cfg *config.Config, m *metrics.Collector, log *slog.Logger) error {
	b := core.NewBody("Solar System")
	sw := xyzcore.NewScene(b)

	var st *scene.State
	eng := xyzengine.New(sw.XYZ, renderFunc(sw, &st, m))
	st, err := scene.NewComposer(eng, cfg).Compose(0, 0)
	if err != nil {
		return err
	}

	driver := frame.NewDriver(st, frame.NewTickerScheduler(cfg.Frame.FPS, nil),
		frame.WithLocker(asyncLocker{sw}),
		frame.WithRecorder(m),
		frame.WithLogger(log),
	)

	if cfg.Audio.Enabled {
		if track := startAudio(b, sw, cfg, m, log); track != nil {
			defer func() { errors.Log(track.Close()) }()
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	b.OnShow(func(e events.Event) {
		go func() {
			if err := driver.Run(ctx); err != nil {
				errors.Log(err)
			}
		}()
	})

	b.RunMainWindow()
	driver.Stop()
	log.Debug("window closed", "frames", driver.Frames())
	return nil
}

// renderFunc matches the viewport to the widget's content size and marks the
// widget for redraw. st is read on every call since the scene is composed
// after the engine exists.
func renderFunc(sw *xyzcore.Scene, st **scene.State, m *metrics.Collector) func() {
	return func() {
		sz := sw.Geom.Size.Actual.Content.ToPointFloor()
		if viewport.Resize(*st, sz.X, sz.Y) {
			m.ViewportResized()
		}
		sw.NeedsRender()
	}
}

// asyncLocker holds the widget's render lock while a frame mutates the
// scene from the driver goroutine.
type asyncLocker struct {
	w *xyzcore.Scene
}

func (l asyncLocker) Lock()   { l.w.AsyncLock() }
func (l asyncLocker) Unlock() { l.w.AsyncUnlock() }

// startAudio opens the background track and starts it, or prompts for a
// click. A missing or unreadable track is logged and leaves the scene silent.
func startAudio(b *core.Body, sw *xyzcore.Scene, cfg *config.Config, m *metrics.Collector, log *slog.Logger) *audio.Track {
	track, err := audio.OpenTrack(cfg.AssetPath(cfg.Audio.Track))
	if errors.Log(err) != nil {
		return nil
	}
	a := audio.NewAutoplay(track, &host{body: b, scene: sw}, cfg.Audio.Prompt)
	a.Log = log
	a.Recorder = m
	a.Start()
	return track
}

// host shows the click-to-start prompt above the scene.
type host struct {
	body  *core.Body
	scene *xyzcore.Scene
}

type prompt struct {
	body *core.Body
	text *core.Text
}

func (p *prompt) Remove() {
	p.text.Delete()
	p.body.Update()
}

func (h *host) ShowPrompt(msg string) audio.Prompt {
	t := core.NewText().SetText(msg)
	t.Styler(stylePrompt)
	h.body.InsertChild(t, 0)
	return &prompt{body: h.body, text: t}
}

func (h *host) OnFirstClick(fn func()) {
	h.body.OnClick(func(e events.Event) { fn() })
	h.scene.OnClick(func(e events.Event) { fn() })
}

// stylePrompt draws the prompt as a centred translucent white card.
func stylePrompt(s *styles.Style) {
	s.Background = colors.Uniform(color.RGBA{255, 255, 255, 204})
	s.Color = colors.Uniform(color.Black)
	s.Padding.Set(units.Dp(20))
	s.Border.Radius = styles.BorderRadiusMedium
	s.Align.Self = styles.Center
	s.Text.Align = text.Center
}
