package config

import "flag"

var (
	flagConfig    = flag.String("config", "", "配置文件路径")
	flagInput     = flag.String("input", "", "输入目录")
	flagOutput    = flag.String("output", "", "输出目录")
	flagWidth     = flag.Int("width", 0, "图集最大宽度 (512-4096)")
	flagHeight    = flag.Int("height", 0, "图集最大高度 (512-4096)")
	flagExtrude   = flag.Int("extrude", 0, "精灵边缘扩展像素 (1-5)")
	flagScale     = flag.Int("scale", 0, "缩小倍数 (1-4)")
	flagPixel     = flag.String("pixel", "", "像素格式 (rgba, rgb, la, l)")
	flagFormat    = flag.String("format", "", "图集文件格式 (png, webp)")
	flagPlacer    = flag.String("placer", "", "排样方式 (convex, rect)")
	flagRotations = flag.Int("rotations", 0, "convex 排样尝试的旋转角度数")
	flagAlgorithm = flag.String("algorithm", "", "rect 排样的矩形算法 (MaxRects, Skyline, Guillotine)")
	flagVariant   = flag.String("variant", "", "矩形算法变体 (BestShortSideFit, BottomLeft, ...)")
	flagOrder     = flag.String("order", "", "rect 排样的排序方式 (area, perimeter, diff, minside, maxside, ratio)")
	flagNoSort    = flag.Bool("nosort", false, "不按文件名排序")
	flagDebug     = flag.Bool("debug", false, "输出调试叠加图并开启 debug 日志")
	flagUnpack    = flag.String("unpack", "", "解包: atlases.json 路径")
	flagSave      = flag.String("save-config", "", "把合并后的配置写入此 YAML 文件")
	flagLogLevel  = flag.String("log-level", "", "日志级别 (debug, info, warn, error)")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path given with --config.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags overrides cfg with every flag that was set.
func applyFlags(cfg *Config) {
	setString(&cfg.Input.Dir, *flagInput)
	setString(&cfg.Output.Dir, *flagOutput)
	setString(&cfg.Output.Format, *flagFormat)
	setInt(&cfg.Atlas.Width, *flagWidth)
	setInt(&cfg.Atlas.Height, *flagHeight)
	setInt(&cfg.Atlas.Extrude, *flagExtrude)
	setInt(&cfg.Atlas.Scale, *flagScale)
	setString(&cfg.Atlas.PixelFormat, *flagPixel)
	setString(&cfg.Atlas.Placer, *flagPlacer)
	setInt(&cfg.Atlas.Rotations, *flagRotations)
	setString(&cfg.Atlas.Algorithm, *flagAlgorithm)
	setString(&cfg.Atlas.Variant, *flagVariant)
	setString(&cfg.Atlas.Sort, *flagOrder)
	setString(&cfg.Logging.Level, *flagLogLevel)
	if *flagNoSort {
		cfg.Input.Sort = false
	}
	if *flagDebug {
		cfg.Debug.Overlays = true
		cfg.Logging.Level = "debug"
	}
	cfg.Unpack = *flagUnpack
	cfg.SavePath = *flagSave
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setInt(dst *int, v int) {
	if v > 0 {
		*dst = v
	}
}
