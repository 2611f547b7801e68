package router

import (
	"context"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/oaixnah/tv/internal/app/config"
	"github.com/oaixnah/tv/internal/app/epg"
)

var logger *zap.Logger

func NewEngine(ctx context.Context, conf *config.Config, sources map[epg.SourceKind]epg.Source, channels []epg.ChannelConfig, dataFrom string, interval time.Duration) (*gin.Engine, error) {
	// L()：获取全局logger
	logger = zap.L()

	gin.SetMode(gin.ReleaseMode)

	updater := &guideUpdater{
		conf:     conf,
		sources:  sources,
		channels: channels,
		dataFrom: dataFrom,
	}

	// 执行初始化操作
	if err := updater.update(ctx); err != nil {
		return nil, err
	}

	// 执行定时任务
	Schedule(ctx, updater, interval)

	// 创建 Gin 路由引擎
	r := gin.New()

	// 日志记录
	r.Use(ginzap.Ginzap(logger, "", false))
	r.Use(ginzap.RecoveryWithZap(logger, true))

	// 查询EPG-json格式
	r.GET("/epg/json", GetJsonEPG)
	// 查询EPG-xml格式
	r.GET("/epg/xml", GetXmlEPG)
	r.GET("/epg/xml.gz", GetXmlEPGWithGzip)

	return r, nil
}

// guideUpdater 聚合最新节目单并更新缓存
type guideUpdater struct {
	conf     *config.Config
	sources  map[epg.SourceKind]epg.Source
	channels []epg.ChannelConfig
	dataFrom string
}

// update 聚合当天的节目单并更新缓存
func (u *guideUpdater) update(ctx context.Context) error {
	date := time.Now().In(epg.LocCST)

	guide := epg.NewGuide(u.conf.InfoName, u.conf.InfoURL, u.dataFrom)
	epg.Aggregate(ctx, guide, u.sources, u.channels, date, u.conf.Workers)

	logger.Sugar().Infof("EPG data updated, channels: %d, programmes: %d.",
		len(guide.Channels()), len(guide.Programmes()))

	// 更新缓存的节目单
	guidePtr.Store(guide)
	return nil
}
