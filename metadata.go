package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"polyatlas/atlas"
	"polyatlas/geom"
	"polyatlas/raster"
)

// MetadataFile 是输出目录中的元数据文件名
const MetadataFile = "atlases.json"

type Size struct {
	W int `json:"w"`
	H int `json:"h"`
}

type Region struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// SpriteInfo 存储一张精灵图在图集中的位置
type SpriteInfo struct {
	Filename   string `json:"filename"`
	Atlas      int    `json:"atlas"`
	SourceSize Size   `json:"sourceSize"`
	// Trim 是裁掉透明边后保留的区域, 以原图为坐标系
	Trim        Region         `json:"trim"`
	Rotation    float64        `json:"rotation"` // 角度
	Translation geom.Vec       `json:"translation"`
	Polygon     []atlas.Vertex `json:"polygon"`
}

type AtlasInfo struct {
	AtlasName string `json:"atlasName"`
	TotalSize Size   `json:"totalSize"`
}

// MultiAtlasData 存储多个图集的信息
type MultiAtlasData struct {
	Meta struct {
		Version     string `json:"version"`
		Timestamp   string `json:"timestamp"`
		PixelFormat string `json:"pixelFormat"`
		Extrude     int    `json:"extrude"`
		Scale       int    `json:"scale"`
	} `json:"meta"`
	Atlases []AtlasInfo  `json:"atlases"`
	Sprites []SpriteInfo `json:"sprites"`
}

func buildMetadata(sprites []spriteFile, items []*atlas.Item, atlases []*raster.Mat, pages []string, cfg *atlas.Config) *MultiAtlasData {
	data := &MultiAtlasData{}
	data.Meta.Version = VERSION
	data.Meta.Timestamp = time.Now().Format("2006-01-02 15:04:05")
	data.Meta.PixelFormat = cfg.Format.String()
	data.Meta.Extrude = cfg.Extrude
	data.Meta.Scale = cfg.ScaleFactor

	for i, a := range atlases {
		data.Atlases = append(data.Atlases, AtlasInfo{AtlasName: pages[i], TotalSize: Size{a.Width, a.Height}})
	}
	for i, it := range items {
		src := sprites[i].mat
		data.Sprites = append(data.Sprites, SpriteInfo{
			Filename:    sprites[i].name,
			Atlas:       int(it.Bin),
			SourceSize:  Size{src.Width, src.Height},
			Trim:        Region{it.Trim.Min.X, it.Trim.Min.Y, it.Trim.Dx(), it.Trim.Dy()},
			Rotation:    it.Transform.Rotation.Degrees(),
			Translation: it.Transform.Translation,
			Polygon:     it.Polygon,
		})
	}
	return data
}

func writeMetadata(path string, data *MultiAtlasData) error {
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

func readMetadata(path string) (*MultiAtlasData, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取图集JSON文件失败: %w", err)
	}
	data := &MultiAtlasData{}
	if err := json.Unmarshal(b, data); err != nil {
		return nil, fmt.Errorf("解析JSON失败: %w", err)
	}
	return data, nil
}
