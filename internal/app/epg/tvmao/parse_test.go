package tvmao

import (
	"testing"
)

func TestParseProgramRows(t *testing.T) {
	html := `<html><body>
		<ul>
			<li>首页</li>
			<li>节目表</li>
			<li>6:00 朝闻天下</li>
			<li>  08:00   正在播出   早间新闻  </li>
			<li>12:00
				午间剧场</li>
		</ul>
	</body></html>`

	entries, err := parseProgramRows(html)
	if err != nil {
		t.Fatalf("parseProgramRows failed: %v", err)
	}

	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(entries))
	}

	if entries[0].Time != "6:00" || entries[0].Title != "朝闻天下" {
		t.Errorf("Unexpected first entry: %+v", entries[0])
	}
	// "正在播出"标记词应被去除
	if entries[1].Time != "08:00" || entries[1].Title != "早间新闻" {
		t.Errorf("Unexpected second entry: %+v", entries[1])
	}
	if entries[2].Time != "12:00" || entries[2].Title != "午间剧场" {
		t.Errorf("Unexpected third entry: %+v", entries[2])
	}
}

func TestParseProgramRowsSubElements(t *testing.T) {
	// 时间和标题分布在子元素中的节目行
	html := `<html><body>
		<ul>
			<li><span>19:00</span> <a href="/p/1">新闻联播</a></li>
		</ul>
	</body></html>`

	entries, err := parseProgramRows(html)
	if err != nil {
		t.Fatalf("parseProgramRows failed: %v", err)
	}

	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	if entries[0].Time != "19:00" {
		t.Errorf("Expected time 19:00, got %s", entries[0].Time)
	}
	if entries[0].Title != "新闻联播" {
		t.Errorf("Expected title 新闻联播, got %q", entries[0].Title)
	}
}

func TestParseProgramRowsDiscardsEmptyTitles(t *testing.T) {
	html := `<html><body>
		<ul>
			<li>20:00</li>
			<li><span>21:00</span><span>正在播出</span></li>
		</ul>
	</body></html>`

	entries, err := parseProgramRows(html)
	if err != nil {
		t.Fatalf("parseProgramRows failed: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("Expected no entries, got %d", len(entries))
	}
}

func TestParseProgramRowsNoRows(t *testing.T) {
	entries, err := parseProgramRows(`<html><body><p>页面不存在</p></body></html>`)
	if err != nil {
		t.Fatalf("parseProgramRows failed: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("Expected no entries, got %d", len(entries))
	}
}
