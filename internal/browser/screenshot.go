package browser

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"
)

// ScreenShotDebugger saves full-page captures when a step fails.
type ScreenShotDebugger struct {
	outputDir string
	now       func() time.Time
}

func NewScreenShotDebugger(dir string) *ScreenShotDebugger {
	if dir == "" {
		dir = filepath.Join(".", "logs", "screenshots")
	}
	return &ScreenShotDebugger{
		outputDir: dir,
		now:       time.Now,
	}
}

// CaptureAndLog captures the page if the driver supports it. Drivers without
// screenshot support are skipped silently.
func (s *ScreenShotDebugger) CaptureAndLog(d Driver, name, message string) (string, error) {
	shooter, ok := d.(Screenshotter)
	if !ok {
		return "", nil
	}
	log.Printf("📸 %s", message)

	if err := os.MkdirAll(s.outputDir, 0755); err != nil {
		log.Printf("⚠️ Failed to create screenshot directory: %v", err)
		return "", err
	}

	timestamp := s.now().Format("2006-01-02_15-04-05")
	path := filepath.Join(s.outputDir, fmt.Sprintf("%s_%s.png", name, timestamp))

	if err := shooter.Screenshot(path); err != nil {
		log.Printf("⚠️ Failed to capture screenshot: %v", err)
		return "", err
	}

	log.Printf("   Screenshot saved: %s", path)
	return path, nil
}
