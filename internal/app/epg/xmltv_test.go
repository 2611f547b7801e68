package epg

import (
	"bytes"
	"encoding/xml"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func buildTestGuide(t *testing.T) *Guide {
	t.Helper()

	guide := NewGuide("by oaixnah", "https://tv.oaix.tech/e.xml", "https://api.erw.cc/")

	err := guide.AddBatch(Channel{ID: "CCTV1", DisplayName: "CCTV1"}, []Programme{
		{
			Channel: "CCTV1",
			Start:   time.Date(2026, 2, 13, 5, 53, 0, 0, LocCST),
			Stop:    time.Date(2026, 2, 13, 6, 27, 0, 0, LocCST),
			Title:   "新闻联播",
		},
		{
			Channel: "CCTV1",
			Start:   time.Date(2026, 2, 13, 6, 27, 0, 0, LocCST),
			Stop:    time.Date(2026, 2, 13, 23, 59, 59, 0, LocCST),
			Title:   "朝闻天下",
		},
	})
	if err != nil {
		t.Fatalf("AddBatch failed: %v", err)
	}

	if err = guide.AddBatch(Channel{ID: "湖南卫视", DisplayName: "湖南卫视"}, []Programme{
		{
			Channel: "湖南卫视",
			Start:   time.Date(2026, 2, 13, 8, 0, 0, 0, LocCST),
			Stop:    time.Date(2026, 2, 13, 23, 59, 59, 0, LocCST),
			Title:   "快乐大本营",
		},
	}); err != nil {
		t.Fatalf("AddBatch failed: %v", err)
	}
	return guide
}

func TestMarshalXmlEPGRoundTrip(t *testing.T) {
	guide := buildTestGuide(t)

	content, err := MarshalXmlEPG(guide)
	if err != nil {
		t.Fatalf("MarshalXmlEPG failed: %v", err)
	}

	if !strings.HasPrefix(string(content), "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n") {
		t.Error("Expected the document to start with an XML declaration")
	}

	// 反序列化后应还原所有频道和节目信息
	var parsed XmlEPG
	if err = xml.Unmarshal(content, &parsed); err != nil {
		t.Fatalf("Failed to unmarshal the document: %v", err)
	}

	if parsed.InfoName != "by oaixnah" {
		t.Errorf("Expected info-name \"by oaixnah\", got %q", parsed.InfoName)
	}
	if parsed.InfoURL != "https://tv.oaix.tech/e.xml" {
		t.Errorf("Expected info-url \"https://tv.oaix.tech/e.xml\", got %q", parsed.InfoURL)
	}
	if parsed.DataFrom != "https://api.erw.cc/" {
		t.Errorf("Expected data-from \"https://api.erw.cc/\", got %q", parsed.DataFrom)
	}

	if len(parsed.Channels) != 2 {
		t.Fatalf("Expected 2 channels, got %d", len(parsed.Channels))
	}
	if parsed.Channels[0].Id != "CCTV1" || parsed.Channels[0].DisplayName.Value != "CCTV1" {
		t.Errorf("Unexpected first channel: %+v", parsed.Channels[0])
	}
	if parsed.Channels[1].Id != "湖南卫视" {
		t.Errorf("Unexpected second channel: %+v", parsed.Channels[1])
	}

	if len(parsed.Programmes) != 3 {
		t.Fatalf("Expected 3 programmes, got %d", len(parsed.Programmes))
	}
	first := parsed.Programmes[0]
	if first.Channel != "CCTV1" {
		t.Errorf("Expected channel CCTV1, got %s", first.Channel)
	}
	if first.Start != "20260213055300 +0800" {
		t.Errorf("Expected start 20260213055300 +0800, got %s", first.Start)
	}
	if first.Stop != "20260213062700 +0800" {
		t.Errorf("Expected stop 20260213062700 +0800, got %s", first.Stop)
	}
	if first.Title.Value != "新闻联播" || first.Title.Lang != "zh" {
		t.Errorf("Unexpected title: %+v", first.Title)
	}
}

func TestMarshalXmlEPGIdempotent(t *testing.T) {
	guide := buildTestGuide(t)

	first, err := MarshalXmlEPG(guide)
	if err != nil {
		t.Fatalf("MarshalXmlEPG failed: %v", err)
	}
	second, err := MarshalXmlEPG(guide)
	if err != nil {
		t.Fatalf("MarshalXmlEPG failed: %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Error("Expected byte-identical output for the same guide")
	}
}

func TestWriteXmlEPGFile(t *testing.T) {
	guide := buildTestGuide(t)

	fPath := filepath.Join(t.TempDir(), "e.xml")
	if err := WriteXmlEPGFile(guide, fPath); err != nil {
		t.Fatalf("WriteXmlEPGFile failed: %v", err)
	}

	content, err := os.ReadFile(fPath)
	if err != nil {
		t.Fatalf("Failed to read the output file: %v", err)
	}

	expected, err := MarshalXmlEPG(guide)
	if err != nil {
		t.Fatalf("MarshalXmlEPG failed: %v", err)
	}
	if !bytes.Equal(content, expected) {
		t.Error("The file content does not match the marshaled document")
	}

	// 重复写入应覆盖且内容一致，目录中不应残留临时文件
	if err = WriteXmlEPGFile(guide, fPath); err != nil {
		t.Fatalf("WriteXmlEPGFile failed on rewrite: %v", err)
	}
	rewritten, err := os.ReadFile(fPath)
	if err != nil {
		t.Fatalf("Failed to read the output file: %v", err)
	}
	if !bytes.Equal(content, rewritten) {
		t.Error("Expected byte-identical output after rewriting")
	}

	files, err := os.ReadDir(filepath.Dir(fPath))
	if err != nil {
		t.Fatalf("Failed to read the output dir: %v", err)
	}
	if len(files) != 1 {
		t.Errorf("Expected only the output file in the dir, got %d files", len(files))
	}
}
