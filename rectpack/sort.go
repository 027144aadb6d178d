package rectpack

import (
	"cmp"
	"fmt"
)

// SortFunc 比较两个尺寸, 与 slices.SortFunc 的约定相同
type SortFunc func(a, b Size) int

// 排序顺序, 全部按降序(从大到小)
const (
	SortByArea      = "area"
	SortByPerimeter = "perimeter"
	SortByDiff      = "diff"
	SortByMinSide   = "minside"
	SortByMaxSide   = "maxside"
	SortByRatio     = "ratio"
)

var sortFuncs = map[string]SortFunc{
	SortByArea:      SortArea,
	SortByPerimeter: SortPerimeter,
	SortByDiff:      SortDiff,
	SortByMinSide:   SortMinSide,
	SortByMaxSide:   SortMaxSide,
	SortByRatio:     SortRatio,
}

// ResolveSort 按名称返回排序函数, 空名称为面积排序
func ResolveSort(name string) (SortFunc, error) {
	if name == "" {
		return SortArea, nil
	}
	fn, ok := sortFuncs[name]
	if !ok {
		return nil, fmt.Errorf("rectpack: unknown sort order %q", name)
	}
	return fn, nil
}

// byID 在主要比较相等时按 ID 排, 保证结果稳定
func byID(primary int, a, b Size) int {
	if primary != 0 {
		return primary
	}
	return cmp.Compare(a.ID, b.ID)
}

func SortArea(a, b Size) int {
	return byID(cmp.Compare(b.Area(), a.Area()), a, b)
}

func SortPerimeter(a, b Size) int {
	return byID(cmp.Compare(b.Perimeter(), a.Perimeter()), a, b)
}

// SortDiff 宽高差越大越靠前
func SortDiff(a, b Size) int {
	return byID(cmp.Compare(abs(b.Width-b.Height), abs(a.Width-a.Height)), a, b)
}

func SortMinSide(a, b Size) int {
	return byID(cmp.Compare(b.MinSide(), a.MinSide()), a, b)
}

func SortMaxSide(a, b Size) int {
	return byID(cmp.Compare(b.MaxSide(), a.MaxSide()), a, b)
}

func SortRatio(a, b Size) int {
	return byID(cmp.Compare(b.Ratio(), a.Ratio()), a, b)
}
