package cmds

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/oaixnah/tv/internal/app/config"
	"github.com/oaixnah/tv/internal/app/epg"
	"github.com/oaixnah/tv/internal/app/epg/erw"
	"github.com/oaixnah/tv/internal/app/epg/tvmao"
)

var (
	dateStr    string
	sourceStr  string
	outputFile string
)

func NewGenerateCLI() *cobra.Command {
	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "抓取所有频道的节目单，并生成XMLTV文件。",
		RunE: func(cmd *cobra.Command, args []string) error {
			// L()：获取全局logger
			logger := zap.L()

			// 校验配置文件
			if err := conf.Validate(); err != nil {
				return err
			}

			// 解析目标日期，缺省为当天
			date := time.Now().In(epg.LocCST)
			if dateStr != "" {
				var err error
				date, err = time.ParseInLocation("20060102", dateStr, epg.LocCST)
				if err != nil {
					return fmt.Errorf("invalid date %q: %w", dateStr, err)
				}
			}

			// 按数据源筛选待抓取的频道
			kind, dataFrom, err := resolveSource(conf, sourceStr)
			if err != nil {
				return err
			}
			channels := conf.SourceChannels(kind)
			if len(channels) == 0 {
				return errors.New("no channels for the selected source")
			}

			guide := epg.NewGuide(conf.InfoName, conf.InfoURL, dataFrom)
			epg.Aggregate(cmd.Context(), guide, newSources(conf), channels, date, conf.Workers)

			if len(guide.Channels()) == 0 {
				logger.Warn("No channel EPG data was fetched. The output will be empty.")
			}

			// 生成XMLTV文件
			fPath := conf.OutputFile
			if outputFile != "" {
				fPath = outputFile
			}
			if err = epg.WriteXmlEPGFile(guide, fPath); err != nil {
				logger.Error("Failed to write the EPG file.", zap.Error(err))
				return err
			}

			logger.Sugar().Infof("EPG file generated, channels: %d, programmes: %d, file: %s.",
				len(guide.Channels()), len(guide.Programmes()), fPath)

			return nil
		},
	}

	generateCmd.Flags().StringVarP(&dateStr, "date", "d", "", "抓取节目单的日期，格式为YYYYMMDD，缺省为当天。")
	generateCmd.Flags().StringVarP(&sourceStr, "source", "s", "erw", "使用的数据源，e.g `erw、tvmao或all`。")
	generateCmd.Flags().StringVarP(&outputFile, "output", "o", "", "生成的XMLTV文件路径，缺省使用配置文件中的路径。")

	return generateCmd
}

// resolveSource 解析数据源参数，返回频道筛选条件和数据来源标识
func resolveSource(conf *config.Config, source string) (epg.SourceKind, string, error) {
	switch source {
	case string(epg.SourceERW):
		dataFrom := conf.ERW.BaseURL
		if dataFrom == "" {
			dataFrom = erw.DefaultBaseURL
		}
		return epg.SourceERW, dataFrom, nil
	case string(epg.SourceTVMao):
		dataFrom := conf.TVMao.BaseURL
		if dataFrom == "" {
			dataFrom = tvmao.DefaultBaseURL
		}
		return epg.SourceTVMao, dataFrom, nil
	case "all":
		return "", conf.InfoURL, nil
	default:
		return "", "", fmt.Errorf("unknown source: %q", source)
	}
}

// newSources 根据配置创建所有数据源
func newSources(conf *config.Config) map[epg.SourceKind]epg.Source {
	timeout := conf.ERW.Timeout
	if timeout <= 0 {
		timeout = erw.DefaultTimeout
	}
	erwClient := erw.NewClient(&http.Client{Timeout: timeout}, conf.ERW.BaseURL)

	renderer := tvmao.NewChromeRenderer(conf.TVMao.MaxExpandClicks, conf.TVMao.SettleDelay, conf.TVMao.Timeout)
	tvmaoClient, err := tvmao.NewClient(renderer, conf.TVMao.BaseURL)
	if err != nil {
		// renderer不为空时不会出错
		cobra.CheckErr(err)
	}

	return map[epg.SourceKind]epg.Source{
		epg.SourceERW:   erwClient,
		epg.SourceTVMao: tvmaoClient,
	}
}
