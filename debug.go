package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gogpu/gg"

	"polyatlas/atlas"
	"polyatlas/geom"
	"polyatlas/raster"
)

// palette 调试叠加图的描边颜色, 按精灵序号循环使用
var palette = [][3]float64{
	{0.90, 0.10, 0.10},
	{0.10, 0.70, 0.20},
	{0.15, 0.35, 0.95},
	{0.95, 0.60, 0.05},
	{0.60, 0.15, 0.80},
	{0.05, 0.75, 0.75},
}

type outline struct {
	item   int
	points []geom.Point
}

// debugOverlay 收集观察点的快照: 轮廓和凸包立即写出, 摆放结果在生成结束后按图集汇总绘制
type debugOverlay struct {
	dir    string
	names  []string
	mu     sync.Mutex
	placed map[int][]outline
	errs   []error
}

func newDebugOverlay(dir string, names []string) *debugOverlay {
	return &debugOverlay{dir: dir, names: names, placed: make(map[int][]outline)}
}

func (d *debugOverlay) observe(label string, snap atlas.Snapshot) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if label == "placement" {
		d.placed[snap.Bin] = append(d.placed[snap.Bin], outline{snap.Item, snap.Points})
		return
	}
	name := fmt.Sprintf("%s_%s.png", label, stem(d.names[snap.Item]))
	if err := d.draw(filepath.Join(d.dir, name), snap.Image, []outline{{snap.Item, snap.Points}}); err != nil {
		d.errs = append(d.errs, err)
	}
}

// flush 为每个图集写出一张带有全部多边形的叠加图
func (d *debugOverlay) flush(atlases []*raster.Mat) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for bin, a := range atlases {
		path := filepath.Join(d.dir, fmt.Sprintf("atlas_%d.png", bin))
		if err := d.draw(path, a, d.placed[bin]); err != nil {
			d.errs = append(d.errs, err)
		}
	}
	return errors.Join(d.errs...)
}

func (d *debugOverlay) draw(path string, bg *raster.Mat, outlines []outline) error {
	if bg.Empty() {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	dc := gg.NewContextForImage(bg.ToNRGBA())
	defer dc.Close()
	dc.SetLineWidth(1)
	for _, o := range outlines {
		if len(o.points) == 0 {
			continue
		}
		c := palette[o.item%len(palette)]
		dc.SetRGBA(c[0], c[1], c[2], 1)
		dc.MoveTo(float64(o.points[0].X), float64(o.points[0].Y))
		for _, p := range o.points[1:] {
			dc.LineTo(float64(p.X), float64(p.Y))
		}
		dc.ClosePath()
		if err := dc.Stroke(); err != nil {
			return err
		}
		for _, p := range o.points {
			dc.DrawCircle(float64(p.X), float64(p.Y), 1.5)
		}
		if err := dc.Fill(); err != nil {
			return err
		}
	}
	return dc.SavePNG(path)
}

func stem(name string) string {
	return name[:len(name)-len(filepath.Ext(name))]
}
