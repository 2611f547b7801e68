package erw

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/oaixnah/tv/internal/app/epg"

	"go.uber.org/zap"
)

const DefaultBaseURL = "https://api.erw.cc/"

// DefaultTimeout 接口请求的超时时间
const DefaultTimeout = 3 * time.Second

type Client struct {
	httpClient *http.Client // HTTP客户端
	baseURL    string       // 接口地址

	logger *zap.Logger // 日志
}

var _ epg.Source = (*Client)(nil)

func NewClient(httpClient *http.Client, baseURL string) *Client {
	c := Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		logger:     zap.L(),
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{
			Timeout: DefaultTimeout,
		}
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	return &c
}

// epgResponse 接口返回的节目单数据，每条节目已包含起止时间
type epgResponse struct {
	EPGData []epgItem `json:"epg_data"`
}

type epgItem struct {
	Start string `json:"start"` // 开始时间，例如：05:53
	End   string `json:"end"`   // 结束时间，例如：06:27
	Title string `json:"title"` // 节目标题
}

// Fetch 获取指定频道和日期的节目单。接口已给出每条节目的起止时间，
// 直接映射为节目数据，无需拼接。请求失败或响应不合法时按无数据处理。
func (c *Client) Fetch(ctx context.Context, channel epg.ChannelConfig, date time.Time) epg.FetchResult {
	resp, err := c.getEPG(ctx, channel.Name, date)
	if err != nil {
		return epg.FetchResult{Status: epg.StatusFailed, Err: err}
	}

	if len(resp.EPGData) == 0 {
		return epg.FetchResult{Status: epg.StatusEmpty}
	}

	year, month, day := date.Date()
	programmes := make([]epg.Programme, 0, len(resp.EPGData))
	for _, item := range resp.EPGData {
		start, err := combineClock(year, month, day, item.Start)
		if err != nil {
			c.logger.Warn("The programme start time is invalid. Drop it.",
				zap.String("channel", channel.Name), zap.String("start", item.Start))
			continue
		}
		stop, err := combineClock(year, month, day, item.End)
		if err != nil {
			c.logger.Warn("The programme end time is invalid. Drop it.",
				zap.String("channel", channel.Name), zap.String("end", item.End))
			continue
		}

		programmes = append(programmes, epg.Programme{
			Channel: channel.Name,
			Start:   start,
			Stop:    stop,
			Title:   item.Title,
		})
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

// getEPG 请求接口并解析JSON响应
func (c *Client) getEPG(ctx context.Context, channelName string, date time.Time) (*epgResponse, error) {
	// 创建请求
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, err
	}

	// 增加请求参数
	params := req.URL.Query()
	params.Add("ch", channelName)
	params.Add("date", date.Format("20060102"))
	req.URL.RawQuery = params.Encode()

	// 模拟浏览器请求头，避免被接口拦截
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/114.0.0.0 Safari/537.36")

	// 执行请求
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("http status code: %d", resp.StatusCode)
	}

	// 解析响应内容
	var result epgResponse
	if err = json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode EPG response: %w", err)
	}
	return &result, nil
}

// combineClock 将日期与HH:MM格式的时间组合为东八区的完整时间
func combineClock(year int, month time.Month, day int, clock string) (time.Time, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(year, month, day, t.Hour(), t.Minute(), 0, 0, epg.LocCST), nil
}
