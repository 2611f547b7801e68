package cmds

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/oaixnah/tv/internal/app/router"
)

var httpConfig HttpConfig

type HttpConfig struct {
	Port     int           `json:"port"`
	Source   string        `json:"source"`
	Interval time.Duration `json:"interval"`
}

func NewServeCLI() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "启动HTTP服务，提供节目单查询接口并定时刷新。",
		RunE: func(cmd *cobra.Command, args []string) error {
			// 校验配置文件
			if err := conf.Validate(); err != nil {
				return err
			}

			// 检查自动更新间隔不能太短
			if httpConfig.Interval < 15*time.Minute {
				return errors.New("interval cannot be less than 15 minutes")
			}

			kind, dataFrom, err := resolveSource(conf, httpConfig.Source)
			if err != nil {
				return err
			}
			channels := conf.SourceChannels(kind)
			if len(channels) == 0 {
				return errors.New("no channels for the selected source")
			}

			// 创建并启动HTTP服务
			r, err := router.NewEngine(cmd.Context(), conf, newSources(conf), channels, dataFrom, httpConfig.Interval)
			if err != nil {
				return err
			}
			if err = r.Run(fmt.Sprintf(":%d", httpConfig.Port)); err != nil {
				return err
			}

			return nil
		},
	}

	serveCmd.Flags().IntVarP(&httpConfig.Port, "port", "p", 8080, "HTTP服务的监听端口。")
	serveCmd.Flags().StringVarP(&httpConfig.Source, "source", "s", "erw", "使用的数据源，e.g `erw、tvmao或all`。")
	serveCmd.Flags().DurationVarP(&httpConfig.Interval, "interval", "i", 24*time.Hour, "自动刷新节目单的间隔时间，e.g `24h或15m`。")

	return serveCmd
}
