package tvmao

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/oaixnah/tv/internal/app/epg"
)

const DefaultBaseURL = "https://www.tvmao.com"

type Client struct {
	renderer Renderer // 页面渲染器
	baseURL  string   // TVMao站点地址

	logger *zap.Logger // 日志
}

var _ epg.Source = (*Client)(nil)

func NewClient(renderer Renderer, baseURL string) (*Client, error) {
	if renderer == nil {
		return nil, fmt.Errorf("renderer is nil")
	}

	c := Client{
		renderer: renderer,
		baseURL:  baseURL,
		logger:   zap.L(),
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	return &c, nil
}

// Fetch 渲染频道的节目页面，提取只含开始时间的节目行，再拼接为带起止时间的
// 节目列表。渲染失败或页面中没有节目行时按无数据处理。
func (c *Client) Fetch(ctx context.Context, channel epg.ChannelConfig, date time.Time) epg.FetchResult {
	pageURL := c.channelURL(channel, date)
	c.logger.Info("Start scraping the channel EPG.",
		zap.String("channel", channel.Name), zap.String("url", pageURL))

	html, err := c.renderer.Render(ctx, pageURL)
	if err != nil {
		return epg.FetchResult{Status: epg.StatusFailed, Err: fmt.Errorf("failed to render page: %w", err)}
	}

	entries, err := parseProgramRows(html)
	if err != nil {
		return epg.FetchResult{Status: epg.StatusFailed, Err: err}
	}
	if len(entries) == 0 {
		return epg.FetchResult{Status: epg.StatusEmpty}
	}

	programmes, err := epg.Stitch(channel.Name, date, epg.LocCST, entries)
	if err != nil {
		return epg.FetchResult{Status: epg.StatusFailed, Err: err}
	}

	return epg.FetchResult{
		Status: epg.StatusOK,
		Channel: epg.Channel{
			ID:          channel.Name,
			DisplayName: channel.Name,
		},
		Programmes: programmes,
	}
}

// channelURL 组装频道节目页面的URL，例如：https://www.tvmao.com/program/CCTV-CCTV1-w4.html
func (c *Client) channelURL(channel epg.ChannelConfig, date time.Time) string {
	// TVMao使用1-7表示周一到周日
	weekday := int(date.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return fmt.Sprintf("%s/%s/%s-w%d.html", c.baseURL, channel.PageType, channel.SourceID, weekday)
}
