package epg

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// RawEntry 从页面中提取出的单条原始节目信息，只有开始时间没有结束时间
type RawEntry struct {
	Time  string // 当天的开始时间，格式为H:MM或HH:MM
	Title string // 节目标题
}

// Stitch 将只含开始时间的原始节目列表拼接为带起止时间的节目列表。
// 每个节目的结束时间取下一个节目的开始时间，最后一个节目的结束时间取当天的
// 23:59:59。列表顺序以上游页面为准，不做排序，也不做跨天修正。
func Stitch(channelID string, date time.Time, loc *time.Location, entries []RawEntry) ([]Programme, error) {
	if len(entries) == 0 {
		return nil, nil
	}

	year, month, day := date.Date()

	// 最后一个节目的结束时间固定为当天的23:59:59
	endOfDay := time.Date(year, month, day, 23, 59, 59, 0, loc)

	programmes := make([]Programme, 0, len(entries))
	for i, entry := range entries {
		hour, minute, err := parseClock(entry.Time)
		if err != nil {
			return nil, err
		}

		start := time.Date(year, month, day, hour, minute, 0, 0, loc)

		stop := endOfDay
		if i+1 < len(entries) {
			nextHour, nextMinute, err := parseClock(entries[i+1].Time)
			if err != nil {
				return nil, err
			}
			stop = time.Date(year, month, day, nextHour, nextMinute, 0, 0, loc)
		}

		programmes = append(programmes, Programme{
			Channel: channelID,
			Start:   start,
			Stop:    stop,
			Title:   entry.Title,
		})
	}
	return programmes, nil
}

// parseClock 解析H:MM或HH:MM格式的时间
func parseClock(s string) (int, int, error) {
	hourStr, minuteStr, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, fmt.Errorf("invalid clock time: %q", s)
	}

	hour, err := strconv.Atoi(hourStr)
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid clock time: %q", s)
	}

	minute, err := strconv.Atoi(minuteStr)
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid clock time: %q", s)
	}
	return hour, minute, nil
}
