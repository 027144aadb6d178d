package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"polyatlas/atlas"
	"polyatlas/internal/config"
	"polyatlas/internal/logger"
	"polyatlas/raster"
)

const (
	VERSION = "0.2.0"
)

// timings 记录各阶段耗时
type timings struct {
	Load     time.Duration
	Generate time.Duration
	Write    time.Duration
	Metadata time.Duration
}

// track 把从 start 到现在的耗时累加到 d
func track(d *time.Duration, start time.Time) {
	*d += time.Since(start)
}

func main() {
	config.ParseFlags()
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}
	logger.Init(cfg.Logging.Level, cfg.Logging.LogFile)
	defer logger.Sync()

	if cfg.SavePath != "" {
		if err := cfg.SaveTo(cfg.SavePath); err != nil {
			logger.Fatal("保存配置失败", zap.String("path", cfg.SavePath), zap.Error(err))
		}
		logger.Info("配置已保存", zap.String("path", cfg.SavePath))
	}

	// 解包
	if cfg.Unpack != "" {
		n, err := unpack(cfg.Unpack, cfg.Output.Dir)
		if err != nil {
			logger.Fatal("解包失败", zap.String("metadata", cfg.Unpack), zap.Error(err))
		}
		logger.Info("图集解包完成", zap.Int("sprites", n), zap.String("output", cfg.Output.Dir))
		return
	}

	start := time.Now()
	var t timings
	if err := run(cfg, &t); err != nil {
		logger.Fatal("生成图集失败", zap.Error(err), zap.Stringer("result", atlas.ResultOf(err)))
	}
	logger.Info("完成",
		zap.Duration("load", t.Load),
		zap.Duration("generate", t.Generate),
		zap.Duration("write", t.Write),
		zap.Duration("metadata", t.Metadata),
		zap.Duration("total", time.Since(start)))
}

// run 读取输入目录中的精灵图, 生成图集并写出图集图像与 JSON 元数据
func run(cfg *config.Config, t *timings) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	acfg, err := cfg.AtlasConfig()
	if err != nil {
		return err
	}

	loadStart := time.Now()
	sprites, err := readImageFiles(cfg.Input.Dir, cfg.Input.Sort)
	if err != nil {
		return err
	}
	track(&t.Load, loadStart)
	logger.Info("找到图片文件", zap.Int("count", len(sprites)), zap.String("dir", cfg.Input.Dir))

	items := make([]*atlas.Item, len(sprites))
	for i, s := range sprites {
		items[i] = atlas.NewItem(s.mat)
	}

	opts := []atlas.Option{
		atlas.WithLogger(logger.Named("atlas")),
		atlas.WithProgress(func(placed, total int) {
			if placed == total || placed%100 == 0 {
				logger.Debug("排样进度", zap.Int("placed", placed), zap.Int("total", total))
			}
		}),
	}
	var overlay *debugOverlay
	if cfg.Debug.Overlays {
		overlay = newDebugOverlay(filepath.Join(cfg.Output.Dir, cfg.Debug.Dir), names(sprites))
		opts = append(opts, atlas.WithObserver(overlay.observe))
	}

	genStart := time.Now()
	atlases, err := atlas.Generate(items, &acfg, opts...)
	if err != nil {
		var e *atlas.Error
		if errors.As(err, &e) && e.Item >= 0 {
			return fmt.Errorf("%s: %w", sprites[e.Item].name, err)
		}
		return err
	}
	track(&t.Generate, genStart)

	if err := os.MkdirAll(cfg.Output.Dir, 0755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}

	writeStart := time.Now()
	ext := strings.ToLower(cfg.Output.Format)
	pages := make([]string, len(atlases))
	for i, a := range atlases {
		pages[i] = atlasName(i, len(atlases), ext)
		if err := writeImage(filepath.Join(cfg.Output.Dir, pages[i]), a); err != nil {
			return err
		}
		logger.Info("图集", zap.String("file", pages[i]), zap.Int("width", a.Width), zap.Int("height", a.Height))
	}
	track(&t.Write, writeStart)

	metaStart := time.Now()
	meta := buildMetadata(sprites, items, atlases, pages, &acfg)
	metaPath := filepath.Join(cfg.Output.Dir, MetadataFile)
	if err := writeMetadata(metaPath, meta); err != nil {
		return fmt.Errorf("生成JSON元数据失败: %w", err)
	}
	track(&t.Metadata, metaStart)
	logger.Info("图集元数据", zap.String("file", metaPath))

	if overlay != nil {
		if err := overlay.flush(atlases); err != nil {
			logger.Warn("调试图写入失败", zap.Error(err))
		}
	}
	return nil
}

func atlasName(i, n int, ext string) string {
	if n == 1 {
		return "atlas." + ext
	}
	return fmt.Sprintf("atlas_%d.%s", i, ext)
}

// writeImage 按扩展名把图集编码为 png 或 webp
func writeImage(path string, m *raster.Mat) error {
	if err := saveImage(path, toImage(m)); err != nil {
		return fmt.Errorf("编码 %s 失败: %w", filepath.Base(path), err)
	}
	return nil
}
