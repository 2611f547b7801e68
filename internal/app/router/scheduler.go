package router

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Schedule 定时调度更新缓存的节目单数据
func Schedule(ctx context.Context, updater *guideUpdater, duration time.Duration) {
	// 创建定时任务
	ticker := time.NewTicker(duration)
	go func() {
		for {
			select {
			case <-ctx.Done():
				logger.Info("The scheduling task has been stopped.")
				return
			case <-ticker.C:
				logger.Info("Start executing the scheduling task.")

				// 更新节目单数据
				if err := updater.update(ctx); err != nil {
					logger.Error("Failed to update EPG.", zap.Error(err))
				}

				logger.Info("The scheduling task has been completed.")
			}
		}
	}()
}
