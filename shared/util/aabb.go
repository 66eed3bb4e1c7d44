package util

import rl "github.com/gen2brain/raylib-go/raylib"

// AABB é uma caixa alinhada aos eixos no espaço do mundo.
type AABB struct {
	Min rl.Vector3
	Max rl.Vector3
}

// NewAABB cria uma AABB a partir de dois cantos (min e max).
func NewAABB(min, max rl.Vector3) AABB {
	return AABB{Min: min, Max: max}
}

// Overlaps verifica se duas caixas se intersectam (bordas tocando não contam).
func (a AABB) Overlaps(b AABB) bool {
	return a.Min.X < b.Max.X && a.Max.X > b.Min.X &&
		a.Min.Y < b.Max.Y && a.Max.Y > b.Min.Y &&
		a.Min.Z < b.Max.Z && a.Max.Z > b.Min.Z
}

// Contains verifica se um ponto está dentro da caixa.
func (a AABB) Contains(p rl.Vector3) bool {
	return p.X >= a.Min.X && p.X <= a.Max.X &&
		p.Y >= a.Min.Y && p.Y <= a.Max.Y &&
		p.Z >= a.Min.Z && p.Z <= a.Max.Z
}

// Center retorna o centro da caixa.
func (a AABB) Center() rl.Vector3 {
	return rl.Vector3{
		X: (a.Min.X + a.Max.X) * 0.5,
		Y: (a.Min.Y + a.Max.Y) * 0.5,
		Z: (a.Min.Z + a.Max.Z) * 0.5,
	}
}

// Expand retorna uma caixa expandida pela margem em todos os eixos.
func (a AABB) Expand(margin float32) AABB {
	return AABB{
		Min: rl.Vector3{X: a.Min.X - margin, Y: a.Min.Y - margin, Z: a.Min.Z - margin},
		Max: rl.Vector3{X: a.Max.X + margin, Y: a.Max.Y + margin, Z: a.Max.Z + margin},
	}
}

// SubVoxelAABB calcula os limites no mundo de um sub-voxel dentro de um voxel.
// O resultado é calculado uma única vez no spawn/rebuild e guardado no índice espacial.
func SubVoxelAABB(voxel GridCoord, sx, sy, sz int) AABB {
	base := GridToWorld(voxel)
	min := rl.Vector3{
		X: base.X + float32(sx)*SubVoxelScale,
		Y: base.Y + float32(sy)*SubVoxelScale,
		Z: base.Z + float32(sz)*SubVoxelScale,
	}
	return AABB{
		Min: min,
		Max: rl.Vector3{
			X: min.X + SubVoxelScale,
			Y: min.Y + SubVoxelScale,
			Z: min.Z + SubVoxelScale,
		},
	}
}
