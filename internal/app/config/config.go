package config

import (
	"errors"
	"os"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/oaixnah/tv/internal/app/epg"
	"github.com/oaixnah/tv/internal/pkg/logging"
)

// OptionChannel 单个频道的原始配置
type OptionChannel struct {
	Name     string `yaml:"name"`               // 频道名称，同时作为输出的频道ID
	Source   string `yaml:"source"`             // 数据源类型，erw或tvmao
	PageType string `yaml:"pageType,omitempty"` // TVMao页面类型，仅tvmao数据源需要
	SourceID string `yaml:"sourceId,omitempty"` // TVMao频道ID，仅tvmao数据源需要
}

// ERWConfig erw.cc接口相关设置
type ERWConfig struct {
	BaseURL string `yaml:"baseURL,omitempty"` // 接口地址

	OptionTimeout string        `yaml:"timeout,omitempty"` // 请求超时时间，e.g `3s`
	Timeout       time.Duration `yaml:"-"`                 // Validate()时进行填充
}

// TVMaoConfig TVMao抓取相关设置
type TVMaoConfig struct {
	BaseURL         string `yaml:"baseURL,omitempty"`         // 站点地址
	MaxExpandClicks int    `yaml:"maxExpandClicks,omitempty"` // "查看更多"按钮的最大点击次数

	OptionTimeout string        `yaml:"timeout,omitempty"` // 单个页面渲染的超时时间，e.g `60s`
	Timeout       time.Duration `yaml:"-"`                 // Validate()时进行填充

	OptionSettleDelay string        `yaml:"settleDelay,omitempty"` // 每次点击后的等待时间，e.g `3s`
	SettleDelay       time.Duration `yaml:"-"`                     // Validate()时进行填充
}

type Config struct {
	OutputFile string `yaml:"outputFile"` // 生成的XMLTV文件路径
	InfoName   string `yaml:"infoName"`   // 节目单制作方名称
	InfoURL    string `yaml:"infoURL"`    // 节目单发布地址
	Workers    int    `yaml:"workers"`    // 并发抓取的工作协程数量

	Log   *logging.LogConfig `yaml:"log,omitempty"`   // 日志相关设置
	ERW   ERWConfig          `yaml:"erw,omitempty"`   // erw.cc接口相关设置
	TVMao TVMaoConfig        `yaml:"tvmao,omitempty"` // TVMao抓取相关设置

	OptionChannels []OptionChannel     `yaml:"channels"` // 频道列表
	Channels       []epg.ChannelConfig `yaml:"-"`        // Validate()时进行填充
}

func (c *Config) Validate() error {
	if len(c.OptionChannels) == 0 {
		return errors.New("no channels configured")
	}

	// L()：获取全局logger
	logger := zap.L()

	if c.OutputFile == "" {
		c.OutputFile = "e.xml"
	}
	if c.InfoName == "" {
		c.InfoName = "by oaixnah"
	}
	if c.InfoURL == "" {
		c.InfoURL = "https://tv.oaix.tech/e.xml"
	}
	if c.Workers <= 0 {
		c.Workers = 1
	}

	// 填充各数据源的超时和等待时间
	c.ERW.Timeout = parseDuration(logger, "erw.timeout", c.ERW.OptionTimeout)
	c.TVMao.Timeout = parseDuration(logger, "tvmao.timeout", c.TVMao.OptionTimeout)
	c.TVMao.SettleDelay = parseDuration(logger, "tvmao.settleDelay", c.TVMao.OptionSettleDelay)

	// 填充频道的抓取配置
	c.Channels = make([]epg.ChannelConfig, 0, len(c.OptionChannels))
	for _, opChannel := range c.OptionChannels {
		if opChannel.Name == "" {
			logger.Warn("The channel name is empty. Skip it.")
			continue
		}

		switch epg.SourceKind(opChannel.Source) {
		case epg.SourceERW:
			c.Channels = append(c.Channels, epg.ChannelConfig{
				Name:   opChannel.Name,
				Source: epg.SourceERW,
			})
		case epg.SourceTVMao:
			if opChannel.PageType == "" || opChannel.SourceID == "" {
				logger.Warn("The tvmao channel is missing pageType or sourceId. Skip it.",
					zap.String("name", opChannel.Name))
				continue
			}
			c.Channels = append(c.Channels, epg.ChannelConfig{
				Name:     opChannel.Name,
				Source:   epg.SourceTVMao,
				PageType: opChannel.PageType,
				SourceID: opChannel.SourceID,
			})
		default:
			logger.Warn("The channel source is unknown. Skip it.",
				zap.String("name", opChannel.Name), zap.String("source", opChannel.Source))
		}
	}

	if len(c.Channels) == 0 {
		return errors.New("no valid channels configured")
	}
	return nil
}

// parseDuration 解析时长配置，解析失败时返回零值并记录日志，由调用方使用缺省值
func parseDuration(logger *zap.Logger, name, value string) time.Duration {
	if value == "" {
		return 0
	}
	d, err := time.ParseDuration(value)
	if err != nil || d < 0 {
		logger.Warn("The duration option is incorrect. Skip it.",
			zap.String("name", name), zap.String("value", value))
		return 0
	}
	return d
}

// SourceChannels 返回指定数据源的频道列表，kind为空时返回全部频道
func (c *Config) SourceChannels(kind epg.SourceKind) []epg.ChannelConfig {
	if kind == "" {
		return c.Channels
	}

	channels := make([]epg.ChannelConfig, 0, len(c.Channels))
	for _, channel := range c.Channels {
		if channel.Source == kind {
			channels = append(channels, channel)
		}
	}
	return channels
}

func Load(fPath string) (*Config, error) {
	// 读取配置文件
	data, err := os.ReadFile(fPath)
	if err != nil {
		return nil, err
	}
	var config Config
	if err = yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	return &config, nil
}

func CreateDefaultCfg(fPath string) error {
	// 写入默认配置
	f, err := os.Create(fPath)
	if err != nil {
		return err
	}
	defer f.Close()

	// 创建编码器
	encoder := yaml.NewEncoder(f)

	// 缺省配置
	defaultCfg := Config{
		OutputFile: "e.xml",
		InfoName:   "by oaixnah",
		InfoURL:    "https://tv.oaix.tech/e.xml",
		Workers:    1,
		Log: &logging.LogConfig{
			Level:    "info",
			FileName: "tv.log",
			IsStdout: true,
		},
		OptionChannels: defaultChannels(),
	}

	return encoder.Encode(&defaultCfg)
}

// defaultChannels 生成缺省的频道列表。erw.cc接口覆盖全部频道，TVMao抓取
// 作为备选数据源，两边的频道名称保持一致。
func defaultChannels() []OptionChannel {
	channels := make([]OptionChannel, 0, len(erwChannelNames)+len(tvmaoPrograms)+len(tvmaoSatellitePrograms))
	for _, name := range erwChannelNames {
		channels = append(channels, OptionChannel{
			Name:   name,
			Source: string(epg.SourceERW),
		})
	}
	for _, mapping := range tvmaoPrograms {
		channels = append(channels, OptionChannel{
			Name:     mapping[0],
			Source:   string(epg.SourceTVMao),
			PageType: "program",
			SourceID: mapping[1],
		})
	}
	for _, mapping := range tvmaoSatellitePrograms {
		channels = append(channels, OptionChannel{
			Name:     mapping[0],
			Source:   string(epg.SourceTVMao),
			PageType: "program_satellite",
			SourceID: mapping[1],
		})
	}
	return channels
}

// erwChannelNames erw.cc接口支持的电视频道名称列表
var erwChannelNames = []string{
	"CCTV1",
	"CCTV2",
	"CCTV3",
	"CCTV4",
	"CCTV5",
	"CCTV5+",
	"CCTV6",
	"CCTV7",
	"CCTV8",
	"CCTV9",
	"CCTV10",
	"CCTV11",
	"CCTV12",
	"CCTV13",
	"CCTV14",
	"CCTV15",
	"CCTV16",
	"CCTV17",
	"风云音乐",
	"第一剧场",
	"风云剧场",
	"风云足球",
	"世界地理",
	"电视指南",
	"怀旧剧场",
	"兵器科技",
	"CCTV4K超高清",
	"CHC动作电影",
	"CHC家庭影院",
	"CHC影迷电影",
	"辽宁公共",
	"辽宁北方",
	"辽宁生活",
	"辽宁经济",
	"辽宁都市",
	"辽宁影视剧",
	"辽宁体育休闲",
	"深圳卫视",
	"重庆卫视",
	"广东卫视",
	"北京卫视",
	"湖南卫视",
	"东方卫视",
	"四川卫视",
	"天津卫视",
	"安徽卫视",
	"山东卫视",
	"广西卫视",
	"江苏卫视",
	"江西卫视",
	"河北卫视",
	"河南卫视",
	"浙江卫视",
	"海南卫视",
	"湖北卫视",
	"东南卫视",
	"贵州卫视",
	"云南卫视",
	"辽宁卫视",
	"黑龙江卫视",
	"吉林卫视",
	"宁夏卫视",
	"新疆卫视",
	"兵团卫视",
	"甘肃卫视",
	"内蒙古卫视",
	"青海卫视",
	"三沙卫视",
	"厦门卫视",
	"陕西卫视",
}

// tvmaoPrograms 普通节目页面类型的频道与TVMao频道ID的映射
var tvmaoPrograms = [][2]string{
	// 中央电视台
	{"CCTV1", "CCTV-CCTV1"},
	{"CCTV2", "CCTV-CCTV2"},
	{"CCTV3", "CCTV-CCTV3"},
	{"CCTV4", "CCTV-CCTV4"},
	{"CCTV5", "CCTV-CCTV5"},
	{"CCTV5+", "CCTV-CCTV5-PLUS"},
	{"CCTV6", "CCTV-CCTV6"},
	{"CCTV7", "CCTV-CCTV7"},
	{"CCTV8", "CCTV-CCTV8"},
	{"CCTV9", "CCTV-CCTV9"},
	{"CCTV10", "CCTV-CCTV10"},
	{"CCTV11", "CCTV-CCTV11"},
	{"CCTV12", "CCTV-CCTV12"},
	{"CCTV13", "CCTV-CCTV13"},
	{"CCTV14", "CCTV-CCTV15"},
	{"CCTV15", "CCTV-CCTV16"},
	{"CCTV16", "CCTV-CCTVOLY"},
	{"CCTV17", "CCTV-CCTV17NY"},
	// 中数传媒付费频道
	{"风云音乐", "CCTVPAYFEE-CCTVPAYFEE2"},
	{"第一剧场", "CCTVPAYFEE-CCTVPAYFEE3"},
	{"风云剧场", "CCTVPAYFEE-CCTVPAYFEE4"},
	{"风云足球", "CCTVPAYFEE-CCTVPAYFEE1"},
	{"世界地理", "CCTVPAYFEE-CCTVPAYFEE5"},
	{"电视指南", "CCTVPAYFEE-CCTVPAYFEE6"},
	{"怀旧剧场", "CCTVPAYFEE-CCTVPAYFEE7"},
	{"兵器科技", "CCTVPAYFEE-CCTVPAYFEE8"},
	{"CCTV4K超高清", "CCTVPAYFEE-CCTV4K"},
	// CHC华诚付费频道
	{"CHC动作电影", "CHC-CHC1"},
	{"CHC家庭影院", "CHC-CHC2"},
	{"CHC影迷电影", "CHC-CHC3"},
	// 辽宁电视台
	{"辽宁公共", "LNTV-LNTV7"},
	{"辽宁北方", "LNTV-LNTV8"},
	{"辽宁生活", "LNTV-LNTV6"},
	{"辽宁经济", "LNTV-LNTV-FINANCE"},
	{"辽宁都市", "LNTV-LNTV2"},
	{"辽宁影视剧", "LNTV-LNTV3"},
	{"辽宁体育休闲", "LNTV-LNTV-SPORT"},
}

// tvmaoSatellitePrograms 卫星节目页面类型的频道与TVMao频道ID的映射
var tvmaoSatellitePrograms = [][2]string{
	{"深圳卫视", "SZTV1"},
	{"重庆卫视", "CCQTV1"},
	{"广东卫视", "GDTV1"},
	{"北京卫视", "BTV1"},
	{"湖南卫视", "HUNANTV1"},
	{"东方卫视", "DONGFANG1"},
	{"四川卫视", "SCTV1"},
	{"天津卫视", "TJTV1"},
	{"安徽卫视", "AHTV1"},
	{"山东卫视", "SDTV1"},
	{"广西卫视", "GUANXI1"},
	{"江苏卫视", "JSTV1"},
	{"江西卫视", "JXTV1"},
	{"河北卫视", "HEBEI1"},
	{"河南卫视", "HNTV1"},
	{"浙江卫视", "ZJTV1"},
	{"海南卫视", "TCTC1"},
	{"湖北卫视", "HUBEI1"},
	{"东南卫视", "FJTV2"},
	{"贵州卫视", "GUIZOUTV1"},
	{"云南卫视", "YNTV1"},
	{"辽宁卫视", "LNTV1"},
	{"黑龙江卫视", "HLJTV1"},
	{"吉林卫视", "JILIN1"},
	{"宁夏卫视", "NXTV2"},
	{"新疆卫视", "XJTV1"},
	{"兵团卫视", "BINGTUAN"},
	{"甘肃卫视", "GSTV1"},
	{"内蒙古卫视", "NMGTV1"},
	{"青海卫视", "QHTV1"},
	{"三沙卫视", "SANSHATV"},
	{"厦门卫视", "XMTV5"},
	{"陕西卫视", "SHXITV1"},
}
