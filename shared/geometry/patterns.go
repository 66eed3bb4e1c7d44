// Package geometry deriva a ocupação dos sub-voxels de um voxel a partir do seu
// padrão e rotação. Todas as funções são puras: a mesma entrada produz sempre a
// mesma saída, sem estado compartilhado.
package geometry

import "iter"

// SubDiv é a subdivisão interna de cada voxel (8x8x8 sub-voxels).
const SubDiv = 8

// Pattern identifica o modelo de ocupação aplicado à grade interna do voxel.
type Pattern int32

const (
	PatternFull Pattern = iota
	PatternPlatform
	PatternStaircase
	PatternPillar
	PatternSlab
	PatternWall

	patternCount
)

// String retorna o nome legível do padrão.
func (p Pattern) String() string {
	switch p {
	case PatternFull:
		return "Full"
	case PatternPlatform:
		return "Platform"
	case PatternStaircase:
		return "Staircase"
	case PatternPillar:
		return "Pillar"
	case PatternSlab:
		return "Slab"
	case PatternWall:
		return "Wall"
	}
	return "Unknown"
}

// Valid verifica se o padrão é reconhecido.
func (p Pattern) Valid() bool {
	return p >= 0 && p < patternCount
}

// Rotation é uma rotação em graus sobre o eixo vertical. Apenas múltiplos de 90
// são válidos; valores corrompidos degradam para 0 (junto com o padrão Full).
type Rotation int32

// Valid verifica se a rotação é um múltiplo de 90.
func (r Rotation) Valid() bool {
	return r%90 == 0
}

// Normalize reduz a rotação ao intervalo [0, 360).
func (r Rotation) Normalize() Rotation {
	n := ((r % 360) + 360) % 360
	return n
}

// SubCoord é a posição de um sub-voxel dentro da grade 8x8x8 do voxel.
type SubCoord struct {
	X, Y, Z int
}

// patternFuncs define a ocupação canônica (rotação 0) de cada padrão.
// O dispatch por tabela substitui qualquer necessidade de herança.
var patternFuncs = [patternCount]func(x, y, z int) bool{
	PatternFull:      func(x, y, z int) bool { return true },
	PatternPlatform:  func(x, y, z int) bool { return y == 0 },
	PatternStaircase: func(x, y, z int) bool { return y <= x },
	PatternPillar:    func(x, y, z int) bool { return x >= 2 && x < 6 && z >= 2 && z < 6 },
	PatternSlab:      func(x, y, z int) bool { return y < SubDiv/2 },
	PatternWall:      func(x, y, z int) bool { return z >= 3 && z < 5 },
}

// sanitize degrada padrões e rotações corrompidos para (Full, 0).
// A falha nunca é propagada: um voxel corrompido vira um cubo sólido.
func sanitize(p Pattern, r Rotation) (Pattern, Rotation) {
	if !p.Valid() || !r.Valid() {
		return PatternFull, 0
	}
	return p, r.Normalize()
}

// unrotate leva uma posição do espaço rotacionado de volta ao espaço canônico
// do padrão, invertendo a rotação sobre o eixo Y.
func unrotate(r Rotation, x, z int) (int, int) {
	switch r {
	case 90:
		// Inversa de 90 graus: (x, z) -> (z, SubDiv-1-x)
		return z, SubDiv - 1 - x
	case 180:
		return SubDiv - 1 - x, SubDiv - 1 - z
	case 270:
		return SubDiv - 1 - z, x
	}
	return x, z
}

// Occupied informa se o sub-voxel (sx, sy, sz) existe para o padrão e rotação
// dados. Coordenadas fora de [0, 8) retornam false.
func Occupied(p Pattern, r Rotation, sx, sy, sz int) bool {
	if sx < 0 || sx >= SubDiv || sy < 0 || sy >= SubDiv || sz < 0 || sz >= SubDiv {
		return false
	}
	p, r = sanitize(p, r)
	cx, cz := unrotate(r, sx, sz)
	return patternFuncs[p](cx, sy, cz)
}

// OccupiedPositions retorna uma sequência finita (máximo 512 itens) e
// reiniciável com as posições ocupadas da grade interna do voxel.
func OccupiedPositions(p Pattern, r Rotation) iter.Seq[SubCoord] {
	p, r = sanitize(p, r)
	fn := patternFuncs[p]
	return func(yield func(SubCoord) bool) {
		for sy := 0; sy < SubDiv; sy++ {
			for sz := 0; sz < SubDiv; sz++ {
				for sx := 0; sx < SubDiv; sx++ {
					cx, cz := unrotate(r, sx, sz)
					if !fn(cx, sy, cz) {
						continue
					}
					if !yield(SubCoord{X: sx, Y: sy, Z: sz}) {
						return
					}
				}
			}
		}
	}
}

// Count retorna quantos sub-voxels o padrão ocupa (independe da rotação).
func Count(p Pattern, r Rotation) int {
	n := 0
	for range OccupiedPositions(p, r) {
		n++
	}
	return n
}
