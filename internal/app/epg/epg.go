package epg

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

var ErrChannelIDIsEmpty = errors.New("the channel id is empty")
var ErrChannelExists = errors.New("the channel already exists")

// TimeLayout 节目时间的格式，例如：20260213055300 +0800
const TimeLayout = "20060102150405 -0700"

// LocCST 东八区（北京时间），上游数据源的固定时区
var LocCST = time.FixedZone("CST", 8*60*60)

// Channel 频道
type Channel struct {
	ID          string `json:"id"`          // 频道ID，例如：CCTV1
	DisplayName string `json:"displayName"` // 频道显示名称，与ID相同
}

// Programme 单个节目
type Programme struct {
	Channel string    `json:"channel"` // 所属频道ID
	Start   time.Time `json:"start"`   // 开始时间
	Stop    time.Time `json:"stop"`    // 结束时间
	Title   string    `json:"title"`   // 节目标题
}

// Validate 校验节目数据的合法性
func (p *Programme) Validate() error {
	if p.Channel == "" {
		return ErrChannelIDIsEmpty
	}
	if p.Title == "" {
		return fmt.Errorf("channel %s: the programme title is empty", p.Channel)
	}
	if !p.Start.Before(p.Stop) {
		return fmt.Errorf("channel %s: invalid programme interval, start %s is not before stop %s",
			p.Channel, p.Start.Format(TimeLayout), p.Stop.Format(TimeLayout))
	}
	return nil
}

// Guide 一次聚合运行生成的完整节目单
type Guide struct {
	InfoName string // 节目单制作方名称
	InfoURL  string // 节目单发布地址
	DataFrom string // 数据来源标识

	mu         sync.Mutex
	channels   []Channel
	channelIDs map[string]struct{}
	programmes []Programme

	logger *zap.Logger
}

func NewGuide(infoName, infoURL, dataFrom string) *Guide {
	return &Guide{
		InfoName:   infoName,
		InfoURL:    infoURL,
		DataFrom:   dataFrom,
		channelIDs: make(map[string]struct{}),
		logger:     zap.L(),
	}
}

// AddBatch 将一个频道及其所有节目作为一个整体加入节目单。
// 频道不合法时整批拒绝；节目不合法时仅丢弃该条并记录日志，保证已加入的节目
// 始终引用已存在的频道。
func (g *Guide) AddBatch(channel Channel, programmes []Programme) error {
	if channel.ID == "" {
		return ErrChannelIDIsEmpty
	}
	if channel.DisplayName == "" {
		channel.DisplayName = channel.ID
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.channelIDs[channel.ID]; ok {
		return fmt.Errorf("channel %s: %w", channel.ID, ErrChannelExists)
	}

	g.channels = append(g.channels, channel)
	g.channelIDs[channel.ID] = struct{}{}

	for _, programme := range programmes {
		// 校验节目数据，不合法的节目直接丢弃
		if programme.Channel != channel.ID {
			g.logger.Warn("The programme references another channel. Drop it.",
				zap.String("channel", channel.ID), zap.String("programme", programme.Title))
			continue
		}
		if err := programme.Validate(); err != nil {
			g.logger.Warn("The programme is invalid. Drop it.",
				zap.String("title", programme.Title), zap.Error(err))
			continue
		}
		g.programmes = append(g.programmes, programme)
	}
	return nil
}

// Channels 返回频道列表的副本
func (g *Guide) Channels() []Channel {
	g.mu.Lock()
	defer g.mu.Unlock()

	channels := make([]Channel, len(g.channels))
	copy(channels, g.channels)
	return channels
}

// Programmes 返回节目列表的副本
func (g *Guide) Programmes() []Programme {
	g.mu.Lock()
	defer g.mu.Unlock()

	programmes := make([]Programme, len(g.programmes))
	copy(programmes, g.programmes)
	return programmes
}
