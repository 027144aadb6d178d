package main

import (
	"fmt"
	"image"
	"math"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"polyatlas/geom"
)

// unpack 根据元数据把每张精灵图从图集中还原为原始尺寸, 返回还原的数量
func unpack(metaPath, outputDir string) (int, error) {
	data, err := readMetadata(metaPath)
	if err != nil {
		return 0, err
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return 0, fmt.Errorf("创建输出目录失败: %w", err)
	}

	pages := make([]image.Image, len(data.Atlases))
	for i, a := range data.Atlases {
		img, err := openImage(filepath.Join(filepath.Dir(metaPath), a.AtlasName))
		if err != nil {
			return 0, fmt.Errorf("打开图集图片失败: %w", err)
		}
		pages[i] = img
	}

	scale := max(data.Meta.Scale, 1)
	for _, s := range data.Sprites {
		if s.Atlas < 0 || s.Atlas >= len(pages) {
			return 0, fmt.Errorf("%s: 图集编号 %d 不存在", s.Filename, s.Atlas)
		}
		img := restoreSprite(pages[s.Atlas], s, scale)
		if err := saveImage(filepath.Join(outputDir, s.Filename), img); err != nil {
			return 0, fmt.Errorf("保存 %s 失败: %w", s.Filename, err)
		}
	}
	return len(data.Sprites), nil
}

// restoreSprite 反向变换图集中的像素, 只保留精灵多边形以内的部分
func restoreSprite(page image.Image, s SpriteInfo, scale int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, s.SourceSize.W, s.SourceSize.H))
	if len(s.Polygon) == 0 {
		return dst
	}
	rot := geom.NewRotation(s.Rotation * math.Pi / 180)
	t := s.Translation
	k := float64(scale)
	ox, oy := float64(s.Trim.X), float64(s.Trim.Y)

	// 原图坐标 p -> 图集坐标 a = R·((p - trim) / k) + T, 这里是它的逆变换
	s2d := f64.Aff3{
		k * rot.Cos, k * rot.Sin, ox - k*(rot.Cos*t.X+rot.Sin*t.Y),
		-k * rot.Sin, k * rot.Cos, oy - k*(-rot.Sin*t.X+rot.Cos*t.Y),
	}

	xy := make([]geom.Vec, len(s.Polygon))
	uv := make([]geom.Vec, len(s.Polygon))
	for i, v := range s.Polygon {
		xy[i] = v.XY.Vec()
		uv[i] = v.UV.Vec()
	}
	bb := geom.Bounds(xy)
	sr := image.Rect(int(math.Floor(bb.Min.X)), int(math.Floor(bb.Min.Y)), int(math.Ceil(bb.Max.X)), int(math.Ceil(bb.Max.Y)))
	draw.NearestNeighbor.Transform(dst, s2d, page, sr.Intersect(page.Bounds()), draw.Src, nil)

	// 多边形以外的像素可能属于相邻的精灵
	hull := geom.ConvexHullVec(uv)
	for y := 0; y < dst.Rect.Dy(); y++ {
		for x := 0; x < dst.Rect.Dx(); x++ {
			p := geom.Vec{X: float64(x) - ox, Y: float64(y) - oy}
			if p.X < 0 || p.Y < 0 || p.X >= float64(s.Trim.W) || p.Y >= float64(s.Trim.H) || !geom.Contains(hull, p) {
				o := dst.PixOffset(x, y)
				clear(dst.Pix[o : o+4])
			}
		}
	}
	return dst
}
