package uptime

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"uptimebar/internal/logger"
)

func writeProcFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "uptime")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write proc file: %v", err)
	}
	return path
}

func testSource(t *testing.T) *Source {
	t.Helper()

	s := NewSource(time.Now(), logger.NewNop())
	s.bootTime = func(context.Context) (uint64, error) {
		return 0, errors.New("not wired in this test")
	}
	return s
}

func TestSystemReadsProcFile(t *testing.T) {
	s := testSource(t)
	s.procPath = writeProcFile(t, "3661.52 14203.10\n")

	reading := s.System(context.Background())

	if !reading.Available {
		t.Fatalf("reading unavailable, note %q", reading.Note)
	}
	if reading.Seconds != 3661 {
		t.Fatalf("Seconds = %d, want 3661", reading.Seconds)
	}
	if reading.Note != "" {
		t.Fatalf("Note = %q, want empty", reading.Note)
	}
}

func TestSystemFallsBackToBootTime(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	s := testSource(t)
	s.procPath = filepath.Join(t.TempDir(), "missing")
	s.now = func() time.Time { return now }
	s.bootTime = func(context.Context) (uint64, error) {
		return uint64(now.Add(-90 * time.Second).Unix()), nil
	}

	reading := s.System(context.Background())

	if !reading.Available {
		t.Fatalf("reading unavailable, note %q", reading.Note)
	}
	if reading.Seconds != 90 {
		t.Fatalf("Seconds = %d, want 90", reading.Seconds)
	}
}

func TestSystemRejectsImplausibleBootTime(t *testing.T) {
	s := testSource(t)
	s.procPath = filepath.Join(t.TempDir(), "missing")
	s.bootTime = func(context.Context) (uint64, error) {
		return 1, nil // decades ago
	}

	reading := s.System(context.Background())

	if reading.Available {
		t.Fatal("implausible boot time accepted")
	}
}

func TestSystemExhaustedReportsNote(t *testing.T) {
	s := testSource(t)
	s.procPath = filepath.Join(t.TempDir(), "missing")

	reading := s.System(context.Background())

	if reading.Available {
		t.Fatal("reading available with every strategy failing")
	}
	if reading.Note == "" {
		t.Fatal("exhausted reading carries no note")
	}
	if reading.Seconds != 0 {
		t.Fatalf("Seconds = %d, want 0", reading.Seconds)
	}
}

func TestSystemGarbageProcFallsThrough(t *testing.T) {
	s := testSource(t)
	s.procPath = writeProcFile(t, "not-a-number\n")

	if reading := s.System(context.Background()); reading.Available {
		t.Fatal("garbage proc content accepted")
	}
}

func TestSystemEmptyProcFallsThrough(t *testing.T) {
	s := testSource(t)
	s.procPath = writeProcFile(t, "")

	if reading := s.System(context.Background()); reading.Available {
		t.Fatal("empty proc file accepted")
	}
}

func TestSystemNegativeProcClampsToZero(t *testing.T) {
	s := testSource(t)
	s.procPath = writeProcFile(t, "-42.0 0.0\n")

	reading := s.System(context.Background())

	if !reading.Available {
		t.Fatalf("reading unavailable, note %q", reading.Note)
	}
	if reading.Seconds != 0 {
		t.Fatalf("Seconds = %d, want 0", reading.Seconds)
	}
}

func TestProcessUptime(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	s := NewSource(start, logger.NewNop())
	s.now = func() time.Time { return start.Add(42 * time.Second) }

	reading := s.Process(context.Background())

	if !reading.Available {
		t.Fatalf("reading unavailable, note %q", reading.Note)
	}
	if reading.Seconds != 42 {
		t.Fatalf("Seconds = %d, want 42", reading.Seconds)
	}
}

func TestProcessMissingStartDegrades(t *testing.T) {
	s := NewSource(time.Time{}, logger.NewNop())

	reading := s.Process(context.Background())

	if reading.Available {
		t.Fatal("reading available without a recorded start")
	}
	if reading.Note == "" {
		t.Fatal("degraded reading carries no note")
	}
}

func TestProcessClockSkewClampsToZero(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	s := NewSource(start, logger.NewNop())
	s.now = func() time.Time { return start.Add(-5 * time.Second) }

	reading := s.Process(context.Background())

	if !reading.Available {
		t.Fatal("skewed clock made the reading unavailable")
	}
	if reading.Seconds != 0 {
		t.Fatalf("Seconds = %d, want 0", reading.Seconds)
	}
}

func TestProbeBoundsHungStrategy(t *testing.T) {
	s := testSource(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.probe(ctx, func(context.Context) (int64, error) {
		select {} // never returns
	})
	if err == nil {
		t.Fatal("probe returned nil error for a hung read")
	}
}
