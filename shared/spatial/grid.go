// Package spatial implementa um índice de grade uniforme que mapeia células
// inteiras do mundo para os colisores que as sobrepõem. É a única fonte de
// verdade compartilhada entre a física e o pipeline de meshing.
package spatial

import (
	"math"

	"VoxelScape/shared/util"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Handle identifica um colisor registrado no índice.
type Handle int64

// entry guarda os limites exatos do colisor e as células que ele toca,
// para que Remove não precise varrer a grade inteira.
type entry struct {
	box   util.AABB
	cells []util.GridCoord
}

// UniformGrid é o índice espacial de grade uniforme.
//
// Toda mutação acontece na thread principal (ver modelo de concorrência do
// engine); por isso a estrutura não carrega locks. Consultas são seguras
// depois que as edições do frame foram aplicadas.
type UniformGrid struct {
	CellSize float32
	cells    map[util.GridCoord][]Handle
	entries  map[Handle]entry
}

// NewUniformGrid cria um índice com o tamanho de célula dado (tipicamente 1.0).
func NewUniformGrid(cellSize float32) *UniformGrid {
	if cellSize <= 0 {
		cellSize = 1.0
	}
	return &UniformGrid{
		CellSize: cellSize,
		cells:    make(map[util.GridCoord][]Handle),
		entries:  make(map[Handle]entry),
	}
}

// cellIndex converte uma posição do mundo para o índice inteiro da célula
// usando divisão com arredondamento para baixo.
func (g *UniformGrid) cellIndex(x, y, z float32) util.GridCoord {
	return util.GridCoord{
		X: int32(math.Floor(float64(x / g.CellSize))),
		Y: int32(math.Floor(float64(y / g.CellSize))),
		Z: int32(math.Floor(float64(z / g.CellSize))),
	}
}

// cellRange retorna as células cobertas por uma caixa (min e max inclusivos).
func (g *UniformGrid) cellRange(box util.AABB) (util.GridCoord, util.GridCoord) {
	return g.cellIndex(box.Min.X, box.Min.Y, box.Min.Z),
		g.cellIndex(box.Max.X, box.Max.Y, box.Max.Z)
}

// Insert registra um colisor com seus limites no mundo.
// Custo amortizado proporcional ao número de células tocadas.
func (g *UniformGrid) Insert(h Handle, box util.AABB) {
	if _, exists := g.entries[h]; exists {
		g.Remove(h)
	}

	lo, hi := g.cellRange(box)
	cells := make([]util.GridCoord, 0, 1)
	for z := lo.Z; z <= hi.Z; z++ {
		for y := lo.Y; y <= hi.Y; y++ {
			for x := lo.X; x <= hi.X; x++ {
				c := util.GridCoord{X: x, Y: y, Z: z}
				g.cells[c] = append(g.cells[c], h)
				cells = append(cells, c)
			}
		}
	}
	g.entries[h] = entry{box: box, cells: cells}
}

// Remove descarta um colisor do índice. Handle desconhecido é um no-op.
func (g *UniformGrid) Remove(h Handle) {
	e, ok := g.entries[h]
	if !ok {
		return
	}
	for _, c := range e.cells {
		list := g.cells[c]
		for i, other := range list {
			if other == h {
				list[i] = list[len(list)-1]
				g.cells[c] = list[:len(list)-1]
				break
			}
		}
		if len(g.cells[c]) == 0 {
			delete(g.cells, c)
		}
	}
	delete(g.entries, h)
}

// QueryAABB retorna os handles cujas células sobrepõem a caixa de consulta.
// O resultado é um superconjunto dos colisores que realmente intersectam a
// caixa (falsos positivos nas bordas de célula são permitidos; falsos
// negativos, nunca). Células vazias não alocam nada e consultas fora de
// qualquer região ocupada retornam nil.
func (g *UniformGrid) QueryAABB(min, max rl.Vector3) []Handle {
	lo := g.cellIndex(min.X, min.Y, min.Z)
	hi := g.cellIndex(max.X, max.Y, max.Z)

	var result []Handle
	var seen map[Handle]bool
	for z := lo.Z; z <= hi.Z; z++ {
		for y := lo.Y; y <= hi.Y; y++ {
			for x := lo.X; x <= hi.X; x++ {
				list, ok := g.cells[util.GridCoord{X: x, Y: y, Z: z}]
				if !ok {
					continue
				}
				if seen == nil {
					seen = make(map[Handle]bool, len(list))
				}
				for _, h := range list {
					if seen[h] {
						continue
					}
					seen[h] = true
					result = append(result, h)
				}
			}
		}
	}
	return result
}

// Bounds retorna os limites exatos registrados para um handle.
func (g *UniformGrid) Bounds(h Handle) (util.AABB, bool) {
	e, ok := g.entries[h]
	return e.box, ok
}

// Len retorna o número de colisores registrados.
func (g *UniformGrid) Len() int {
	return len(g.entries)
}

// Clear descarta todos os colisores (usado no unload do mapa).
func (g *UniformGrid) Clear() {
	g.cells = make(map[util.GridCoord][]Handle)
	g.entries = make(map[Handle]entry)
}
