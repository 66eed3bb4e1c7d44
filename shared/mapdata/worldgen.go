package mapdata

import (
	"log"

	"VoxelScape/shared/geometry"
	"VoxelScape/shared/util"

	"github.com/aquilax/go-perlin"
)

// GenerateTerrain produz a lista ordenada de registros de voxel de um terreno
// procedural determinístico. Faz o papel do colaborador de definição de mapa:
// o core só recebe registros prontos, nunca lê arquivos.
func GenerateTerrain(seed int64, sizeX, sizeZ int32) []Voxel {
	noise := perlin.NewPerlin(2, 2, 3, seed)

	var records []Voxel
	heightAt := func(x, z int32) int32 {
		n := noise.Noise2D(float64(x)*0.06, float64(z)*0.06)
		return 3 + int32((n+1.0)*2.5) // alturas entre 3 e 8
	}

	for z := int32(0); z < sizeZ; z++ {
		for x := int32(0); x < sizeX; x++ {
			h := heightAt(x, z)

			for y := int32(0); y < h; y++ {
				mat := MaterialStone
				if y == h-1 {
					mat = MaterialGrass
				} else if y >= h-3 {
					mat = MaterialDirt
				}
				records = append(records, Voxel{
					Pos:      util.NewGridCoord(x, y, z),
					Pattern:  geometry.PatternFull,
					Material: mat,
				})
			}

			// Escadas automáticas onde o terreno sobe exatamente um nível,
			// viradas na direção da subida.
			if x+1 < sizeX && heightAt(x+1, z) == h+1 {
				records = append(records, Voxel{
					Pos:      util.NewGridCoord(x, h, z),
					Pattern:  geometry.PatternStaircase,
					Material: MaterialStone,
				})
				continue
			}
			if x > 0 && heightAt(x-1, z) == h+1 {
				records = append(records, Voxel{
					Pos:      util.NewGridCoord(x, h, z),
					Pattern:  geometry.PatternStaircase,
					Rotation: 180,
					Material: MaterialStone,
				})
				continue
			}

			// Decoração esparsa e determinística por hash espacial
			hash := uint32(x)*2654435761 ^ uint32(z)*40503
			switch hash % 97 {
			case 0:
				records = append(records, Voxel{
					Pos:      util.NewGridCoord(x, h, z),
					Pattern:  geometry.PatternPillar,
					Material: MaterialWood,
				})
			case 1:
				records = append(records, Voxel{
					Pos:      util.NewGridCoord(x, h, z),
					Pattern:  geometry.PatternPlatform,
					Material: MaterialWood,
				})
			case 2:
				records = append(records, Voxel{
					Pos:      util.NewGridCoord(x, h, z),
					Pattern:  geometry.PatternWall,
					Rotation: geometry.Rotation(90 * int32(hash%4)),
					Material: MaterialStone,
				})
			}
		}
	}

	log.Printf("[WorldGen] Terreno %dx%d gerado: %d registros (seed=%d)", sizeX, sizeZ, len(records), seed)
	return records
}
