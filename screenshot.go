package plexus

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// snapshotter is implemented by surfaces that can be captured.
type snapshotter interface {
	Snapshot() image.Image
}

// Screenshot queues a labeled capture of the layer surface, taken after the
// next painted frame. The PNG is written to ScreenshotDir as
// <label>_t<tick>.png, so captures of the same seeded run are reproducible.
func (l *Layer) Screenshot(label string) {
	if !l.mounted {
		return
	}
	l.screenshotQueue = append(l.screenshotQueue, label)
}

// flushScreenshots writes one PNG per queued label. Called at the end of Frame.
func (l *Layer) flushScreenshots() {
	if len(l.screenshotQueue) == 0 {
		return
	}
	defer func() { l.screenshotQueue = l.screenshotQueue[:0] }()

	snap, ok := l.surface.(snapshotter)
	if !ok {
		l.logf("screenshot: %T cannot be captured", l.surface)
		return
	}
	if err := os.MkdirAll(l.ScreenshotDir, 0o755); err != nil {
		l.logf("screenshot: %v", err)
		return
	}
	img := snap.Snapshot()
	for _, label := range l.screenshotQueue {
		name := fmt.Sprintf("%s_t%06d.png", fileLabel(label), l.ticks)
		if err := savePNG(filepath.Join(l.ScreenshotDir, name), img); err != nil {
			l.logf("screenshot %q: %v", label, err)
		}
	}
}

func savePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, f.Close()) }()
	return png.Encode(f, img)
}

// fileLabel turns a script label into a file name stem: runs of whitespace
// become one dash and anything but letters, digits, '-', '_' and '.' is
// dropped. An empty result becomes "frame".
func fileLabel(label string) string {
	stem := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || strings.ContainsRune("-_.", r) {
			return r
		}
		return -1
	}, strings.Join(strings.Fields(label), "-"))
	stem = strings.Trim(stem, ".")
	if stem == "" {
		return "frame"
	}
	return stem
}
