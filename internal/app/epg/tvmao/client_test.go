package tvmao

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/oaixnah/tv/internal/app/epg"
)

// fakeRenderer 返回预设的页面HTML
type fakeRenderer struct {
	html    string
	lastURL string
	err     error
}

func (r *fakeRenderer) Render(_ context.Context, pageURL string) (string, error) {
	r.lastURL = pageURL
	return r.html, r.err
}

func TestClientFetch(t *testing.T) {
	renderer := &fakeRenderer{html: `<html><body>
		<ul>
			<li>6:00 朝闻天下</li>
			<li>19:00 新闻联播</li>
		</ul>
	</body></html>`}

	client, err := NewClient(renderer, "")
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	// 2026-02-13是周五
	date := time.Date(2026, 2, 13, 0, 0, 0, 0, epg.LocCST)
	channel := epg.ChannelConfig{
		Name:     "CCTV1",
		Source:   epg.SourceTVMao,
		PageType: "program",
		SourceID: "CCTV-CCTV1",
	}

	result := client.Fetch(context.Background(), channel, date)
	if result.Status != epg.StatusOK {
		t.Fatalf("Expected StatusOK, got %v, err: %v", result.Status, result.Err)
	}

	if expected := "https://www.tvmao.com/program/CCTV-CCTV1-w5.html"; renderer.lastURL != expected {
		t.Errorf("Expected URL %s, got %s", expected, renderer.lastURL)
	}

	if len(result.Programmes) != 2 {
		t.Fatalf("Expected 2 programmes, got %d", len(result.Programmes))
	}
	if got := result.Programmes[0].Start.Format(epg.TimeLayout); got != "20260213060000 +0800" {
		t.Errorf("Expected start 20260213060000 +0800, got %s", got)
	}
	if got := result.Programmes[0].Stop.Format(epg.TimeLayout); got != "20260213190000 +0800" {
		t.Errorf("Expected stop 20260213190000 +0800, got %s", got)
	}
	if got := result.Programmes[1].Stop.Format(epg.TimeLayout); got != "20260213235959 +0800" {
		t.Errorf("Expected stop 20260213235959 +0800, got %s", got)
	}
}

func TestClientFetchSundayURL(t *testing.T) {
	renderer := &fakeRenderer{html: `<html><body><li>6:00 节目</li></body></html>`}

	client, err := NewClient(renderer, "https://example.com")
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	// 2026-02-15是周日，TVMao用w7表示
	date := time.Date(2026, 2, 15, 0, 0, 0, 0, epg.LocCST)
	channel := epg.ChannelConfig{
		Name:     "湖南卫视",
		Source:   epg.SourceTVMao,
		PageType: "program_satellite",
		SourceID: "HUNANTV1",
	}

	client.Fetch(context.Background(), channel, date)
	if expected := "https://example.com/program_satellite/HUNANTV1-w7.html"; renderer.lastURL != expected {
		t.Errorf("Expected URL %s, got %s", expected, renderer.lastURL)
	}
}

func TestClientFetchRenderError(t *testing.T) {
	renderer := &fakeRenderer{err: errors.New("navigation timeout")}

	client, err := NewClient(renderer, "")
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	result := client.Fetch(context.Background(), epg.ChannelConfig{Name: "CCTV1"}, time.Now())
	if result.Status != epg.StatusFailed {
		t.Fatalf("Expected StatusFailed, got %v", result.Status)
	}
	if result.Err == nil {
		t.Fatal("Expected an error cause")
	}
}

func TestClientFetchNoRows(t *testing.T) {
	renderer := &fakeRenderer{html: `<html><body><p>页面不存在</p></body></html>`}

	client, err := NewClient(renderer, "")
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	result := client.Fetch(context.Background(), epg.ChannelConfig{Name: "CCTV1"}, time.Now())
	if result.Status != epg.StatusEmpty {
		t.Fatalf("Expected StatusEmpty, got %v", result.Status)
	}
}

func TestNewClientNilRenderer(t *testing.T) {
	if _, err := NewClient(nil, ""); err == nil {
		t.Fatal("Expected error for nil renderer")
	}
}
