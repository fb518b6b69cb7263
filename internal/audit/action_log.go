// Package audit keeps the append-only, human-readable record of operator
// actions.
package audit

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"
)

const (
	// SystemActor is recorded when an action has no operator behind it.
	SystemActor = "System"

	TimestampLayout = "2006-01-02 15:04:05"
)

// ActionLog appends one line per action to a text file:
//
//	2024-03-14 16:05:09 | Usuario | Product registered: BOX-100-0001
type ActionLog struct {
	path   string
	now    func() time.Time
	logger *slog.Logger
}

// NewActionLog returns an ActionLog writing to path. A nil now defaults to
// time.Now.
func NewActionLog(path string, now func() time.Time, logger *slog.Logger) *ActionLog {
	if now == nil {
		now = time.Now
	}
	return &ActionLog{
		path:   path,
		now:    now,
		logger: logger.With(slog.String("component", "audit")),
	}
}

func (l *ActionLog) Path() string {
	return l.path
}

// FormatLine renders a single log line without the trailing newline.
func FormatLine(at time.Time, actor, action string) string {
	if actor == "" {
		actor = SystemActor
	}
	return fmt.Sprintf("%s | %s | %s", at.Format(TimestampLayout), actor, action)
}

// Record appends an entry. It never fails the caller: write errors are only
// logged.
func (l *ActionLog) Record(ctx context.Context, actor, action string) {
	line := FormatLine(l.now(), actor, action)
	if err := l.append(line); err != nil {
		l.logger.DebugContext(ctx, "action not recorded",
			slog.String("action", action), slog.Any("error", err))
	}
}

func (l *ActionLog) append(line string) (err error) {
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open action log: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close action log: %w", cerr)
		}
	}()

	if _, err := f.WriteString(line + "\n"); err != nil {
		return fmt.Errorf("write action log: %w", err)
	}
	return nil
}

// Tail returns the last n lines of the log, oldest first, together with
// the total number of lines. A log that was never written is empty.
func (l *ActionLog) Tail(n int) ([]string, int, error) {
	f, err := os.Open(l.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, fmt.Errorf("open action log: %w", err)
	}
	defer f.Close()

	var (
		ring  = make([]string, 0, max(n, 0))
		total int
	)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		total++
		if n <= 0 {
			continue
		}
		if len(ring) == n {
			ring = append(ring[1:], scanner.Text())
		} else {
			ring = append(ring, scanner.Text())
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, fmt.Errorf("read action log: %w", err)
	}

	return ring, total, nil
}
