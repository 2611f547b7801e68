package epg

import (
	"errors"
	"testing"
	"time"
)

func TestGuideAddBatch(t *testing.T) {
	guide := NewGuide("test", "https://example.com/e.xml", "test")

	start := time.Date(2026, 2, 13, 5, 53, 0, 0, LocCST)
	stop := time.Date(2026, 2, 13, 6, 27, 0, 0, LocCST)

	err := guide.AddBatch(Channel{ID: "CCTV1"}, []Programme{
		{Channel: "CCTV1", Start: start, Stop: stop, Title: "新闻联播"},
	})
	if err != nil {
		t.Fatalf("AddBatch failed: %v", err)
	}

	channels := guide.Channels()
	if len(channels) != 1 {
		t.Fatalf("Expected 1 channel, got %d", len(channels))
	}
	if channels[0].DisplayName != "CCTV1" {
		t.Errorf("Expected the display name to default to the channel id, got %s", channels[0].DisplayName)
	}

	programmes := guide.Programmes()
	if len(programmes) != 1 {
		t.Fatalf("Expected 1 programme, got %d", len(programmes))
	}
	if programmes[0].Title != "新闻联播" {
		t.Errorf("Expected title 新闻联播, got %s", programmes[0].Title)
	}
}

func TestGuideAddBatchEmptyChannelID(t *testing.T) {
	guide := NewGuide("test", "https://example.com/e.xml", "test")

	if err := guide.AddBatch(Channel{}, nil); !errors.Is(err, ErrChannelIDIsEmpty) {
		t.Fatalf("Expected ErrChannelIDIsEmpty, got %v", err)
	}
}

func TestGuideAddBatchDuplicateChannel(t *testing.T) {
	guide := NewGuide("test", "https://example.com/e.xml", "test")

	if err := guide.AddBatch(Channel{ID: "CCTV1"}, nil); err != nil {
		t.Fatalf("AddBatch failed: %v", err)
	}
	if err := guide.AddBatch(Channel{ID: "CCTV1"}, nil); !errors.Is(err, ErrChannelExists) {
		t.Fatalf("Expected ErrChannelExists, got %v", err)
	}

	if len(guide.Channels()) != 1 {
		t.Errorf("Expected 1 channel, got %d", len(guide.Channels()))
	}
}

func TestGuideAddBatchDropsInvalidProgrammes(t *testing.T) {
	guide := NewGuide("test", "https://example.com/e.xml", "test")

	start := time.Date(2026, 2, 13, 6, 0, 0, 0, LocCST)
	stop := time.Date(2026, 2, 13, 7, 0, 0, 0, LocCST)

	err := guide.AddBatch(Channel{ID: "CCTV1"}, []Programme{
		{Channel: "CCTV1", Start: start, Stop: stop, Title: "早间新闻"},
		{Channel: "CCTV1", Start: stop, Stop: start, Title: "区间颠倒"},
		{Channel: "CCTV1", Start: start, Stop: start, Title: "区间为空"},
		{Channel: "CCTV2", Start: start, Stop: stop, Title: "频道不符"},
		{Channel: "CCTV1", Start: start, Stop: stop, Title: ""},
	})
	if err != nil {
		t.Fatalf("AddBatch failed: %v", err)
	}

	programmes := guide.Programmes()
	if len(programmes) != 1 {
		t.Fatalf("Expected only the valid programme to remain, got %d", len(programmes))
	}
	if programmes[0].Title != "早间新闻" {
		t.Errorf("Expected title 早间新闻, got %s", programmes[0].Title)
	}
}

func TestGuideAccessorsReturnCopies(t *testing.T) {
	guide := NewGuide("test", "https://example.com/e.xml", "test")

	start := time.Date(2026, 2, 13, 6, 0, 0, 0, LocCST)
	stop := time.Date(2026, 2, 13, 7, 0, 0, 0, LocCST)

	if err := guide.AddBatch(Channel{ID: "CCTV1"}, []Programme{
		{Channel: "CCTV1", Start: start, Stop: stop, Title: "早间新闻"},
	}); err != nil {
		t.Fatalf("AddBatch failed: %v", err)
	}

	channels := guide.Channels()
	channels[0].ID = "modified"
	if guide.Channels()[0].ID != "CCTV1" {
		t.Error("Channels() must return a copy")
	}

	programmes := guide.Programmes()
	programmes[0].Title = "modified"
	if guide.Programmes()[0].Title != "早间新闻" {
		t.Error("Programmes() must return a copy")
	}
}
