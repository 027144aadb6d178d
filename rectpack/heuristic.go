package rectpack

import (
	"errors"
	"fmt"
)

// Heuristic 是算法类型、空闲区域选择方法和切分方法组成的位掩码
type Heuristic uint16

const (
	MaxRects   Heuristic = 0x0
	Skyline    Heuristic = 0x1
	Guillotine Heuristic = 0x2

	BestShortSideFit  Heuristic = 0x00
	BestLongSideFit   Heuristic = 0x10
	BestAreaFit       Heuristic = 0x20
	BottomLeft        Heuristic = 0x30
	ContactPoint      Heuristic = 0x40
	WorstAreaFit      Heuristic = 0x50
	WorstShortSideFit Heuristic = 0x60
	WorstLongSideFit  Heuristic = 0x70
	MinWaste          Heuristic = 0x80

	SplitShorterLeftoverAxis Heuristic = 0x0000
	SplitLongerLeftoverAxis  Heuristic = 0x0100
	SplitMinimizeArea        Heuristic = 0x0200
	SplitMaximizeArea        Heuristic = 0x0300
	SplitShorterAxis         Heuristic = 0x0400
	SplitLongerAxis          Heuristic = 0x0500

	typeMask  Heuristic = 0x000F
	fitMask   Heuristic = 0x00F0
	splitMask Heuristic = 0x0F00

	// 预设的有效组合
	MaxRectsBSSF   = MaxRects | BestShortSideFit
	MaxRectsBL     = MaxRects | BottomLeft
	MaxRectsCP     = MaxRects | ContactPoint
	MaxRectsBLSF   = MaxRects | BestLongSideFit
	MaxRectsBAF    = MaxRects | BestAreaFit
	SkylineBLF     = Skyline | BottomLeft
	SkylineMW      = Skyline | MinWaste
	GuillotineBAF  = Guillotine | BestAreaFit
	GuillotineBSSF = Guillotine | BestShortSideFit
	GuillotineBLSF = Guillotine | BestLongSideFit
	GuillotineWAF  = Guillotine | WorstAreaFit
	GuillotineWSSF = Guillotine | WorstShortSideFit
	GuillotineWLSF = Guillotine | WorstLongSideFit
)

// Algorithm 返回位掩码中的算法部分
func (e Heuristic) Algorithm() Heuristic {
	return e & typeMask
}

// Bin 返回空闲区域选择方法部分
func (e Heuristic) Bin() Heuristic {
	return e & fitMask
}

// Split 返回切分方法部分
func (e Heuristic) Split() Heuristic {
	return e & splitMask
}

var (
	ErrAlgorithm = errors.New("invalid algorithm type specified")
	ErrBin       = errors.New("bin method heuristic is invalid for algorithm type")
)

var variants = map[string]map[string]Heuristic{
	"MaxRects": {
		"BestShortSideFit": MaxRectsBSSF,
		"BottomLeft":       MaxRectsBL,
		"ContactPoint":     MaxRectsCP,
		"BestLongSideFit":  MaxRectsBLSF,
		"BestAreaFit":      MaxRectsBAF,
	},
	"Skyline": {
		"BottomLeft": SkylineBLF,
		"MinWaste":   SkylineMW,
	},
	"Guillotine": {
		"BestAreaFit":       GuillotineBAF,
		"BestShortSideFit":  GuillotineBSSF,
		"BestLongSideFit":   GuillotineBLSF,
		"WorstAreaFit":      GuillotineWAF,
		"WorstShortSideFit": GuillotineWSSF,
		"WorstLongSideFit":  GuillotineWLSF,
	},
}

// ResolveAlgorithm 根据算法名和变体名返回对应的启发式组合，例如
// ("MaxRects", "BestAreaFit")。
func ResolveAlgorithm(algo, variant string) (Heuristic, error) {
	byVariant, ok := variants[algo]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrAlgorithm, algo)
	}
	h, ok := byVariant[variant]
	if !ok {
		return 0, fmt.Errorf("%w: %s/%s", ErrBin, algo, variant)
	}
	return h, nil
}
