package mapdata

import (
	"VoxelScape/shared/util"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Ids de material reconhecidos pelo mundo.
const (
	MaterialGrass int32 = iota + 1
	MaterialStone
	MaterialDirt
	MaterialWood
	MaterialSand
)

// PaletteSize é o número de variações pré-construídas por material.
// A variação visual vem de um hash espacial da coordenada do voxel, sem
// materiais únicos por sub-voxel.
const PaletteSize = 8

// MaterialStore guarda a paleta fixa de cores pré-construídas por material.
// Imutável depois de criado, então pode ser lido de qualquer worker sem lock.
type MaterialStore struct {
	palettes map[int32][PaletteSize]rl.Color
	fallback [PaletteSize]rl.Color
}

// baseColors define a cor base de cada material.
var baseColors = map[int32]rl.Color{
	MaterialGrass: {R: 96, G: 160, B: 64, A: 255},
	MaterialStone: {R: 130, G: 130, B: 135, A: 255},
	MaterialDirt:  {R: 134, G: 96, B: 67, A: 255},
	MaterialWood:  {R: 140, G: 104, B: 58, A: 255},
	MaterialSand:  {R: 210, G: 196, B: 140, A: 255},
}

// NewMaterialStore pré-constrói as variações de sombra de cada material.
func NewMaterialStore() *MaterialStore {
	s := &MaterialStore{
		palettes: make(map[int32][PaletteSize]rl.Color),
	}
	for id, base := range baseColors {
		s.palettes[id] = buildPalette(base)
	}
	s.fallback = buildPalette(baseColors[MaterialStone])
	return s
}

// buildPalette gera variações sutis de brilho em torno da cor base.
func buildPalette(base rl.Color) [PaletteSize]rl.Color {
	var p [PaletteSize]rl.Color
	for i := 0; i < PaletteSize; i++ {
		// Fator entre 0.85 e 1.06, espalhado pela paleta
		f := 0.85 + 0.03*float32(i)
		p[i] = rl.Color{
			R: shade(base.R, f),
			G: shade(base.G, f),
			B: shade(base.B, f),
			A: base.A,
		}
	}
	return p
}

func shade(c uint8, f float32) uint8 {
	v := float32(c) * f
	if v > 255 {
		v = 255
	}
	return uint8(v)
}

// PaletteIndex calcula o índice determinístico da paleta para a coordenada de
// um voxel. O hash usa a coordenada do VOXEL (não do sub-voxel), mantendo a
// paleta estável quando o padrão do voxel é editado.
func PaletteIndex(pos util.GridCoord) int {
	h := uint32(pos.X)*73856093 ^ uint32(pos.Y)*19349663 ^ uint32(pos.Z)*83492791
	return int(h % PaletteSize)
}

// ColorFor retorna a cor pré-construída para o material na coordenada dada.
// Materiais desconhecidos caem na paleta de pedra.
func (s *MaterialStore) ColorFor(material int32, voxel util.GridCoord) rl.Color {
	idx := PaletteIndex(voxel)
	if p, ok := s.palettes[material]; ok {
		return p[idx]
	}
	return s.fallback[idx]
}
