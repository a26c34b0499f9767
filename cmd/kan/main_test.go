package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/donghojung/kan/internal/app"
	"github.com/donghojung/kan/internal/kanban"
	"github.com/donghojung/kan/internal/logging"
)

func TestRunDemoCountsLostRecords(t *testing.T) {
	res, err := runDemo(context.Background(), demoOptions{
		Producers: 2,
		Count:     10,
		HotDepth:  4,
		ColdDepth: 100,
		Interval:  time.Hour,
		Level:     logging.LevelTrace,
	})
	if err != nil {
		t.Fatalf("runDemo() error = %v", err)
	}
	if res.Seen != 20 || res.Lost != 16 || res.Drains != 1 {
		t.Errorf("result = seen %d lost %d drains %d, want 20/16/1", res.Seen, res.Lost, res.Drains)
	}
	// four survivors and the loss record
	if len(res.Cold) != 5 {
		t.Fatalf("cold = %d records, want 5", len(res.Cold))
	}
	if last := res.Cold[4]; last.Level != logging.LevelWarn || !strings.Contains(last.Message, "16 events lost") {
		t.Errorf("loss record = %+v", last)
	}

	var buf bytes.Buffer
	res.print(&buf)
	if !strings.Contains(buf.String(), "seen 20, kept 4, lost 16 in 1 drains") {
		t.Errorf("summary missing:\n%s", buf.String())
	}
}

func TestRunDemoLevelFilter(t *testing.T) {
	res, err := runDemo(context.Background(), demoOptions{
		Producers: 3,
		Count:     5,
		HotDepth:  100,
		ColdDepth: 100,
		Interval:  time.Hour,
		Level:     logging.LevelWarn,
	})
	if err != nil {
		t.Fatalf("runDemo() error = %v", err)
	}
	if res.Seen != 0 || len(res.Cold) != 0 {
		t.Errorf("info records should be filtered, seen %d", res.Seen)
	}
}

func TestRunDemoCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := runDemo(ctx, demoOptions{Producers: 1, Count: 10, Interval: time.Hour})
	if err == nil {
		t.Error("runDemo() should fail on a cancelled context")
	}
}

func TestPrintTags(t *testing.T) {
	var buf bytes.Buffer
	if err := printTags(&buf, []kanban.TagCount{{Tag: "code", Count: 3}, {Tag: "ops", Count: 1}}); err != nil {
		t.Fatalf("printTags() error = %v", err)
	}
	want := "TAG   CARDS\ncode  3\nops   1\n"
	if buf.String() != want {
		t.Errorf("printTags() = %q, want %q", buf.String(), want)
	}

	buf.Reset()
	_ = printTags(&buf, nil)
	if buf.String() != "no tags\n" {
		t.Errorf("printTags(nil) = %q", buf.String())
	}
}

func TestMetricsServer(t *testing.T) {
	a, err := app.New(app.Options{
		ConfigPath: filepath.Join(t.TempDir(), "missing.yaml"),
		LookupEnv:  func(string) (string, bool) { return "", false },
	})
	if err != nil {
		t.Fatalf("app.New() error = %v", err)
	}
	t.Cleanup(func() { a.Close() })

	a.Logger.Logf("kanban", logging.LevelInfo, "hello")
	a.Logger.DrainToCold()

	srv := httptest.NewServer(newMetricsServer(":0", a).Handler)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics error = %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "kan_log_events_seen_total 1") {
		t.Errorf("metrics body missing events seen:\n%s", body)
	}
}
