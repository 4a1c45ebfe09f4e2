package audio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/vorbis"
	"github.com/gopxl/beep/wav"
)

// Track is a decoded audio file that loops forever once played.
type Track struct {
	path string

	mu       sync.Mutex
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	speaker  bool
}

// OpenTrack decodes the file at path. The format is chosen by extension:
// .mp3, .wav or .ogg.
func OpenTrack(path string) (*Track, error) {
	var decode func(f *os.File) (beep.StreamSeekCloser, beep.Format, error)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".mp3":
		decode = func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return mp3.Decode(f) }
	case ".wav":
		decode = func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return wav.Decode(f) }
	case ".ogg":
		decode = func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return vorbis.Decode(f) }
	default:
		return nil, fmt.Errorf("audio: unsupported format %q", ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("audio: %w", err)
	}
	streamer, format, err := decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("audio: decode %s: %w", path, err)
	}
	return &Track{path: path, streamer: streamer, format: format}, nil
}

// Format returns the decoded sample format.
func (t *Track) Format() beep.Format {
	return t.format
}

// Play starts looping the track. Calling Play on a playing track does
// nothing. If the audio device cannot be opened the error wraps
// ErrPlaybackRejected and Play may be retried.
func (t *Track) Play() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.ctrl != nil {
		return nil
	}
	if t.streamer == nil {
		return fmt.Errorf("%w: track %s is closed", ErrPlaybackRejected, t.path)
	}
	if !t.speaker {
		sr := t.format.SampleRate
		if err := speaker.Init(sr, sr.N(time.Millisecond*100)); err != nil {
			return fmt.Errorf("%w: %v", ErrPlaybackRejected, err)
		}
		t.speaker = true
	}

	if err := t.streamer.Seek(0); err != nil {
		return fmt.Errorf("audio: rewind %s: %w", t.path, err)
	}
	t.ctrl = &beep.Ctrl{Streamer: beep.Loop(-1, t.streamer), Paused: false}
	speaker.Play(t.ctrl)
	return nil
}

// Close stops playback and releases the decoder.
func (t *Track) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.ctrl != nil {
		speaker.Lock()
		t.ctrl.Paused = true
		speaker.Unlock()
		speaker.Clear()
		t.ctrl = nil
	}
	if t.streamer == nil {
		return nil
	}
	err := t.streamer.Close()
	t.streamer = nil
	return err
}
