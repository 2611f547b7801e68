package router

import (
	"compress/gzip"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/oaixnah/tv/internal/app/epg"
)

const xmltvGzipFilename = "e.xml.gz"

var (
	// 缓存最新的节目单数据
	guidePtr atomic.Pointer[epg.Guide]
)

// ChannelDateJsonEPG 频道的JSON格式EPG
type ChannelDateJsonEPG struct {
	ChannelName string    `json:"channel_name"`
	Date        string    `json:"date"`
	EPGData     []JsonEPG `json:"epg_data"`
}

// JsonEPG JSON格式EPG
type JsonEPG struct {
	Title string `json:"title"` // 标题
	Start string `json:"start"` // 开始时间
	End   string `json:"end"`   // 结束时间
}

// GetJsonEPG 获取指定频道和日期的JSON格式EPG
func GetJsonEPG(c *gin.Context) {
	// 获取频道名称
	chName := c.Query("ch")
	// 获取日期
	dateStr := c.DefaultQuery("date", time.Now().In(epg.LocCST).Format("2006-01-02"))

	// 校验频道名称是否为空
	if chName == "" {
		logger.Warn("The name of the channel is null.")
		// 返回响应
		c.Status(http.StatusBadRequest)
		return
	}

	// 解析日期
	date, err := time.ParseInLocation("2006-01-02", dateStr, epg.LocCST)
	if err != nil {
		logger.Error("Date format error", zap.Error(err))
		c.Status(http.StatusBadRequest)
		return
	}

	// 查询该频道指定日期的节目单列表
	dateEPGData := make([]JsonEPG, 0)
	guide := guidePtr.Load()
	for _, programme := range guide.Programmes() {
		if programme.Channel != chName {
			continue
		}
		start := programme.Start.In(epg.LocCST)
		if start.Year() != date.Year() || start.YearDay() != date.YearDay() {
			continue
		}
		dateEPGData = append(dateEPGData, JsonEPG{
			Title: programme.Title,
			Start: start.Format("15:04"),
			End:   programme.Stop.In(epg.LocCST).Format("15:04"),
		})
	}

	// 返回最终响应
	c.PureJSON(http.StatusOK, &ChannelDateJsonEPG{
		ChannelName: chName,
		Date:        dateStr,
		EPGData:     dateEPGData,
	})
}

// GetXmlEPG 返回XMLTV格式的EPG
func GetXmlEPG(c *gin.Context) {
	content, err := epg.MarshalXmlEPG(guidePtr.Load())
	if err != nil {
		logger.Error("Failed to marshal xml.", zap.Error(err))
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Data(http.StatusOK, "application/xml; charset=utf-8", content)
}

// GetXmlEPGWithGzip 返回gzip压缩的XMLTV格式EPG
func GetXmlEPGWithGzip(c *gin.Context) {
	content, err := epg.MarshalXmlEPG(guidePtr.Load())
	if err != nil {
		logger.Error("Failed to marshal xml.", zap.Error(err))
		c.Status(http.StatusInternalServerError)
		return
	}

	// 设置HTTP头，通知浏览器这是一个二进制流文件
	c.Header("Transfer-Encoding", "gzip")                                                      // 说明文件是gzip压缩格式
	c.Header("Content-Type", "application/octet-stream")                                       // 说明是二进制文件
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", xmltvGzipFilename)) // 指定下载文件名

	// 创建一个gzip压缩的Writer，并将XML数据写入其中
	gzipWriter := gzip.NewWriter(c.Writer)
	defer gzipWriter.Close()

	if _, err = gzipWriter.Write(content); err != nil {
		logger.Error("Failed to write xml data.", zap.Error(err))
		c.Status(http.StatusInternalServerError)
	}
}
