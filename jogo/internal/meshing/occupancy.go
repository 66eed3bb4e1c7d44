package meshing

import (
	"VoxelScape/shared/geometry"
	"VoxelScape/shared/mapdata"
	"VoxelScape/shared/util"
)

// occGrid é a grade de ocupação de um chunk em um LOD específico, já achatada
// em células de (stride)³ sub-voxels. Inclui um halo de uma célula por lado,
// derivado do halo de um voxel do snapshot, para o culling nas bordas.
type occGrid struct {
	n      int     // células por eixo do chunk (128 no LOD 0, 16 no LOD 3)
	stride int     // sub-voxels por célula (1 << lod)
	side   int     // n + 2 (halo incluído)
	cells  []uint8 // material por célula, 0 = vazia
}

func (g *occGrid) index(x, y, z int) int {
	return (x + 1) + (y+1)*g.side + (z+1)*g.side*g.side
}

// at retorna o material da célula, ou 0 fora do intervalo [-1, n].
// Células além do halo contam como vazias, então faces na fronteira do mundo
// carregado são sempre emitidas.
func (g *occGrid) at(x, y, z int) uint8 {
	if x < -1 || x > g.n || y < -1 || y > g.n || z < -1 || z > g.n {
		return 0
	}
	return g.cells[g.index(x, y, z)]
}

func (g *occGrid) set(x, y, z int, mat uint8) {
	if x < -1 || x > g.n || y < -1 || y > g.n || z < -1 || z > g.n {
		return
	}
	g.cells[g.index(x, y, z)] = mat
}

// buildOccupancy converte o snapshot de um chunk na grade de ocupação do LOD
// pedido. Regra de downsample: a célula é sólida se QUALQUER sub-voxel filho
// for sólido, para os LODs nunca abrirem buracos em superfícies finas.
func buildOccupancy(snap *mapdata.ChunkSnapshot, lod int) *occGrid {
	stride := 1 << lod
	n := util.ChunkSize * geometry.SubDiv / stride
	g := &occGrid{
		n:      n,
		stride: stride,
		side:   n + 2,
		cells:  make([]uint8, (n+2)*(n+2)*(n+2)),
	}

	per := geometry.SubDiv / stride // células por voxel neste LOD

	for lx := -1; lx <= util.ChunkSize; lx++ {
		for ly := -1; ly <= util.ChunkSize; ly++ {
			for lz := -1; lz <= util.ChunkSize; lz++ {
				sv := snap.At(lx, ly, lz)
				if !sv.Present {
					continue
				}

				mat := uint8(mapdata.MaterialStone)
				if sv.Material >= 1 && sv.Material <= 255 {
					mat = uint8(sv.Material)
				}

				bx, by, bz := lx*per, ly*per, lz*per

				// Caminho rápido: um voxel cheio preenche o bloco inteiro
				// de células sem varrer os 512 sub-voxels.
				if sv.Pattern == geometry.PatternFull {
					for cy := 0; cy < per; cy++ {
						for cz := 0; cz < per; cz++ {
							for cx := 0; cx < per; cx++ {
								g.set(bx+cx, by+cy, bz+cz, mat)
							}
						}
					}
					continue
				}

				for sc := range geometry.OccupiedPositions(sv.Pattern, sv.Rotation) {
					g.set(bx+sc.X/stride, by+sc.Y/stride, bz+sc.Z/stride, mat)
				}
			}
		}
	}
	return g
}
