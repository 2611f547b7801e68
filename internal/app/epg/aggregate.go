package epg

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Aggregate 遍历所有配置的频道，调用对应的数据源抓取节目数据并汇总到guide中。
// 单个频道抓取失败或无数据时跳过该频道，不影响其他频道。workers大于1时并发
// 抓取，每个频道的数据整批提交，workers为1时输出顺序与配置顺序一致。
func Aggregate(ctx context.Context, guide *Guide, sources map[SourceKind]Source, channels []ChannelConfig, date time.Time, workers int) {
	logger := zap.L()

	if workers < 1 {
		workers = 1
	}

	jobChan := make(chan ChannelConfig, len(channels))
	for _, channel := range channels {
		jobChan <- channel
	}
	close(jobChan)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for channel := range jobChan {
				// 整体运行被取消时放弃尚未提交的频道
				select {
				case <-ctx.Done():
					return
				default:
				}

				source, ok := sources[channel.Source]
				if !ok {
					logger.Warn("No source is configured for the channel. Skip it.",
						zap.String("channel", channel.Name), zap.String("source", string(channel.Source)))
					continue
				}

				result := source.Fetch(ctx, channel, date)
				switch result.Status {
				case StatusFailed:
					logger.Warn("Failed to fetch the channel EPG. Skip it.",
						zap.String("channel", channel.Name), zap.Error(result.Err))
				case StatusEmpty:
					logger.Info("The channel has no EPG data. Skip it.",
						zap.String("channel", channel.Name))
				case StatusOK:
					if err := guide.AddBatch(result.Channel, result.Programmes); err != nil {
						logger.Warn("Failed to add the channel EPG. Skip it.",
							zap.String("channel", channel.Name), zap.Error(err))
						continue
					}
					logger.Sugar().Infof("Channel %s fetched, programmes: %d.",
						result.Channel.ID, len(result.Programmes))
				}
			}
		}()
	}
	wg.Wait()
}
