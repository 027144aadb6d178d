package main

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/HugoSmits86/nativewebp"
	"github.com/disintegration/imaging"
	"github.com/ftrvxmtrx/tga"
	"github.com/maruel/natural"
	"golang.org/x/image/webp"

	"polyatlas/raster"
)

// decoders 按扩展名选择解码器.
// tga 包注册的格式没有魔数, 会截获 image.Decode 的所有输入, 所以不能依赖自动识别
var decoders = map[string]func(io.Reader) (image.Image, error){
	".png":  png.Decode,
	".jpg":  jpeg.Decode,
	".jpeg": jpeg.Decode,
	".tga":  tga.Decode,
	".webp": webp.Decode,
}

func imageExt(path string) string {
	return strings.ToLower(filepath.Ext(path))
}

// openImage 按扩展名解码图片文件
func openImage(path string) (image.Image, error) {
	decode, ok := decoders[imageExt(path)]
	if !ok {
		return nil, fmt.Errorf("不支持的图片格式: %s", filepath.Base(path))
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return decode(f)
}

// saveImage 按扩展名编码图片, 与 openImage 支持的格式相同
func saveImage(path string, img image.Image) error {
	switch imageExt(path) {
	case ".tga", ".webp":
	default:
		return imaging.Save(img, path)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if imageExt(path) == ".tga" {
		err = tga.Encode(f, img)
	} else {
		err = nativewebp.Encode(f, img, nil)
	}
	if err != nil {
		return err
	}
	return f.Close()
}

// spriteFile 是一张已解码的精灵图
type spriteFile struct {
	path string
	name string // 相对输入目录的文件名, 用作元数据里的键
	mat  *raster.Mat
}

func names(sprites []spriteFile) []string {
	out := make([]string, len(sprites))
	for i, s := range sprites {
		out[i] = s.name
	}
	return out
}

// Parallel 用 NumCPU 个 goroutine 执行 fn(0..n-1)
func Parallel(n int, fn func(i int)) {
	workers := min(runtime.NumCPU(), n)
	if workers <= 1 {
		// 任务太少, 直接顺序执行
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}
	next := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range next {
				fn(i)
			}
		}()
	}
	for i := 0; i < n; i++ {
		next <- i
	}
	close(next)
	wg.Wait()
}

// findImages 列出目录中的图片文件, sorted 为真时按自然顺序排序
func findImages(dir string, sorted bool) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("输入目录 %s 无法读取: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if _, ok := decoders[imageExt(e.Name())]; e.IsDir() || !ok {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("输入目录 %s 中没有找到任何图片文件", dir)
	}
	if sorted {
		sort.Sort(natural.StringSlice(paths))
	}
	return paths, nil
}

// readImageFiles 并行解码目录中的所有图片
func readImageFiles(dir string, sorted bool) ([]spriteFile, error) {
	paths, err := findImages(dir, sorted)
	if err != nil {
		return nil, err
	}
	sprites := make([]spriteFile, len(paths))
	errs := make([]error, len(paths))
	Parallel(len(paths), func(i int) {
		img, err := openImage(paths[i])
		if err != nil {
			errs[i] = fmt.Errorf("无法解码图片 %s: %w", paths[i], err)
			return
		}
		sprites[i] = spriteFile{
			path: paths[i],
			name: filepath.Base(paths[i]),
			mat:  toRaster(img),
		}
	})
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return sprites, nil
}

// toRaster 选择通道数: 灰度图 1 或 2 通道, 不透明彩色图 3 通道, 其余 4 通道
func toRaster(img image.Image) *raster.Mat {
	opaque := false
	if o, ok := img.(interface{ Opaque() bool }); ok {
		opaque = o.Opaque()
	}
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		return raster.FromImage(img, 1)
	}
	if opaque {
		return raster.FromImage(img, 3)
	}
	return raster.FromImage(img, 4)
}

// toImage 把图集转换为编码器支持的图像类型
func toImage(m *raster.Mat) image.Image {
	if m.Channels == 1 {
		return m.Gray()
	}
	return m.ToNRGBA()
}
