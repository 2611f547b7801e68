package epg

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
)

const xmlHeader = "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n"

// XmlEPG XMLTV格式的节目单
type XmlEPG struct {
	XMLName    xml.Name          `xml:"tv"`
	InfoName   string            `xml:"info-name,attr"`
	InfoURL    string            `xml:"info-url,attr"`
	DataFrom   string            `xml:"data-from,attr"`
	Channels   []XmlEPGChannel   `xml:"channel,omitempty"`
	Programmes []XmlEPGProgramme `xml:"programme,omitempty"`
}

type XmlEPGChannel struct {
	Id          string         `xml:"id,attr"`
	DisplayName *XmlEPGDisplay `xml:"display-name"`
}

type XmlEPGProgramme struct {
	Channel string         `xml:"channel,attr"`
	Start   string         `xml:"start,attr"`
	Stop    string         `xml:"stop,attr"`
	Title   *XmlEPGDisplay `xml:"title"`
}

type XmlEPGDisplay struct {
	Lang  string `xml:"lang,attr"`
	Value string `xml:",chardata"`
}

// ToXmlEPG 将节目单转为XMLTV结构
func ToXmlEPG(guide *Guide) *XmlEPG {
	channels := guide.Channels()
	programmes := guide.Programmes()

	xmlChannels := make([]XmlEPGChannel, 0, len(channels))
	for _, channel := range channels {
		xmlChannels = append(xmlChannels, XmlEPGChannel{
			Id: channel.ID,
			DisplayName: &XmlEPGDisplay{
				Lang:  "zh",
				Value: channel.DisplayName,
			},
		})
	}

	xmlProgrammes := make([]XmlEPGProgramme, 0, len(programmes))
	for _, programme := range programmes {
		xmlProgrammes = append(xmlProgrammes, XmlEPGProgramme{
			Channel: programme.Channel,
			Start:   programme.Start.Format(TimeLayout),
			Stop:    programme.Stop.Format(TimeLayout),
			Title: &XmlEPGDisplay{
				Lang:  "zh",
				Value: programme.Title,
			},
		})
	}

	return &XmlEPG{
		InfoName:   guide.InfoName,
		InfoURL:    guide.InfoURL,
		DataFrom:   guide.DataFrom,
		Channels:   xmlChannels,
		Programmes: xmlProgrammes,
	}
}

// MarshalXmlEPG 将节目单序列化为带声明头、Tab缩进的XMLTV文档。
// 相同的节目单序列化结果字节级一致。
func MarshalXmlEPG(guide *Guide) ([]byte, error) {
	xmlData, err := xml.MarshalIndent(ToXmlEPG(guide), "", "\t")
	if err != nil {
		return nil, err
	}
	return append([]byte(xmlHeader), append(xmlData, '\n')...), nil
}

// WriteXmlEPGFile 将节目单写入指定的XMLTV文件。
// 先完整写入同目录下的临时文件再重命名，避免写入失败时留下残缺文件。
func WriteXmlEPGFile(guide *Guide, fPath string) error {
	content, err := MarshalXmlEPG(guide)
	if err != nil {
		return fmt.Errorf("failed to marshal EPG xml: %w", err)
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(fPath), ".epg-*.xml")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	if _, err = tmpFile.Write(content); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err = tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err = os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err = os.Rename(tmpPath, fPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace %s: %w", fPath, err)
	}
	return nil
}
