package tvmao

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/oaixnah/tv/internal/app/epg"
)

// onAirMarker 页面为当前播出节目附加的标记词，不属于节目标题
const onAirMarker = "正在播出"

var (
	spaceRegex     = regexp.MustCompile(`\s+`)
	progRowRegex   = regexp.MustCompile(`^(\d{1,2}:\d{2})\s*(.*)$`)
	timeTokenRegex = regexp.MustCompile(`^\d{1,2}:\d{2}$`)
)

// parseProgramRows 从渲染后的页面HTML中提取节目列表。
// 节目行是以时间开头的li元素，其余li元素全部忽略。
func parseProgramRows(html string) ([]epg.RawEntry, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page html: %w", err)
	}

	var entries []epg.RawEntry
	doc.Find("li").Each(func(_ int, li *goquery.Selection) {
		text := normalizeSpace(li.Text())

		matches := progRowRegex.FindStringSubmatch(text)
		if matches == nil {
			return
		}

		timeStr := matches[1]
		rest := strings.TrimSpace(matches[2])

		// li文本不含标题时，从子元素中收集文本拼接，时间字样除外
		if rest == "" {
			var texts []string
			li.Find("a, span, em").Each(func(_ int, sub *goquery.Selection) {
				t := strings.TrimSpace(sub.Text())
				if t != "" && !timeTokenRegex.MatchString(t) {
					texts = append(texts, t)
				}
			})
			rest = normalizeSpace(strings.Join(texts, " "))
		}

		// 去除"正在播出"标记词，保留纯节目标题
		title := strings.TrimSpace(strings.ReplaceAll(rest, onAirMarker, ""))
		if title == "" {
			return
		}

		entries = append(entries, epg.RawEntry{Time: timeStr, Title: title})
	})
	return entries, nil
}

// normalizeSpace 将连续空白折叠为单个空格并去除首尾空白
func normalizeSpace(s string) string {
	return strings.TrimSpace(spaceRegex.ReplaceAllString(s, " "))
}
