package epg

import (
	"context"
	"time"
)

// SourceKind 数据源类型
type SourceKind string

const (
	SourceERW   SourceKind = "erw"   // erw.cc的JSON接口
	SourceTVMao SourceKind = "tvmao" // TVMao的动态网页
)

// ChannelConfig 单个频道的抓取配置
type ChannelConfig struct {
	Name     string     // 频道名称，同时作为输出的频道ID
	Source   SourceKind // 数据源类型
	PageType string     // TVMao页面类型，例如：program、program_satellite
	SourceID string     // TVMao频道ID，例如：CCTV-CCTV1
}

// FetchStatus 单频道抓取结果的状态
type FetchStatus int

const (
	StatusOK     FetchStatus = iota // 抓取成功且有节目数据
	StatusEmpty                     // 抓取成功但没有节目数据
	StatusFailed                    // 抓取失败
)

// FetchResult 单频道的抓取结果。聚合器根据Status决定该频道是否进入节目单，
// 失败原因记录在Err中。
type FetchResult struct {
	Status     FetchStatus
	Channel    Channel
	Programmes []Programme
	Err        error
}

// Source 单个数据源，按频道和日期抓取节目数据
type Source interface {
	Fetch(ctx context.Context, channel ChannelConfig, date time.Time) FetchResult
}
