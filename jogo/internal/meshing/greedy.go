package meshing

import (
	"VoxelScape/shared/geometry"
	"VoxelScape/shared/mapdata"
	"VoxelScape/shared/util"
)

// dirSpec descreve uma das seis direções de face: a normal, os dois eixos do
// plano de varredura (u, v) e os deltas de vértice correspondentes.
type dirSpec struct {
	normal [3]float32
	u, v   int
	du, dv [3]int
}

var faceDirections = []dirSpec{
	{[3]float32{1, 0, 0}, 1, 2, [3]int{0, 1, 0}, [3]int{0, 0, 1}},  // +X (leste)
	{[3]float32{-1, 0, 0}, 1, 2, [3]int{0, 1, 0}, [3]int{0, 0, 1}}, // -X (oeste)
	{[3]float32{0, 1, 0}, 0, 2, [3]int{1, 0, 0}, [3]int{0, 0, 1}},  // +Y (topo)
	{[3]float32{0, -1, 0}, 0, 2, [3]int{1, 0, 0}, [3]int{0, 0, 1}}, // -Y (base)
	{[3]float32{0, 0, 1}, 0, 1, [3]int{1, 0, 0}, [3]int{0, 1, 0}},  // +Z (sul)
	{[3]float32{0, 0, -1}, 0, 1, [3]int{1, 0, 0}, [3]int{0, 1, 0}}, // -Z (norte)
}

// greedyMesh varre a grade de ocupação nas seis direções e emite quads máximos
// fundindo células expostas adjacentes de mesmo material.
//
// A máscara carrega APENAS o id de material: a variação de paleta é aplicada
// por quad, a partir do voxel de origem do quad, depois da fusão. Hashear a
// paleta na máscara impediria quads de atravessar voxels vizinhos de mesmo
// material.
func greedyMesh(g *occGrid, snap *mapdata.ChunkSnapshot, matStore *mapdata.MaterialStore, buf *MeshBuffer) {
	n := g.n
	cellSize := float32(g.stride) * util.SubVoxelScale
	base := util.GridToWorld(snap.Origin)

	mask := make([]uint8, n*n)
	visited := make([]bool, n*n)

	for _, dir := range faceDirections {
		perp := 3 - dir.u - dir.v

		for p := 0; p < n; p++ {
			clear(mask)
			clear(visited)

			// Passo 1: marca na máscara as células expostas nesta fatia
			for u := 0; u < n; u++ {
				for v := 0; v < n; v++ {
					var pos [3]int
					pos[dir.u] = u
					pos[dir.v] = v
					pos[perp] = p

					mat := g.at(pos[0], pos[1], pos[2])
					if mat == 0 {
						continue
					}

					adj := pos
					if dir.normal[perp] < 0 {
						adj[perp] = p - 1
					} else {
						adj[perp] = p + 1
					}

					if g.at(adj[0], adj[1], adj[2]) == 0 {
						mask[u*n+v] = mat
					}
				}
			}

			// Passo 2: expansão first-fit dos retângulos máximos
			for u := 0; u < n; u++ {
				for v := 0; v < n; {
					mat := mask[u*n+v]
					if mat == 0 || visited[u*n+v] {
						v++
						continue
					}

					width := 1
					for w := v + 1; w < n && mask[u*n+w] == mat && !visited[u*n+w]; w++ {
						width++
					}

					height := 1
					stop := false
					for h := u + 1; h < n && !stop; h++ {
						for w := v; w < v+width; w++ {
							if mask[h*n+w] != mat || visited[h*n+w] {
								stop = true
								break
							}
						}
						if !stop {
							height++
						}
					}

					for hu := u; hu < u+height; hu++ {
						for hv := v; hv < v+width; hv++ {
							visited[hu*n+hv] = true
						}
					}

					emitQuad(buf, dir, perp, [3]int{p, u, v}, width, height, cellSize, base,
						quadColor(g, snap, matStore, dir, perp, p, u, v, int32(mat)))
					v += width
				}
			}
		}
	}
}

// quadColor resolve a cor do quad a partir do voxel de origem da célula
// inicial, mantendo o hash de paleta estável entre rebuilds e LODs.
func quadColor(g *occGrid, snap *mapdata.ChunkSnapshot, matStore *mapdata.MaterialStore, dir dirSpec, perp, p, u, v int, mat int32) [4]uint8 {
	var cell [3]int
	cell[dir.u] = u
	cell[dir.v] = v
	cell[perp] = p

	voxel := util.GridCoord{
		X: snap.Origin.X + int32(cell[0]*g.stride/geometry.SubDiv),
		Y: snap.Origin.Y + int32(cell[1]*g.stride/geometry.SubDiv),
		Z: snap.Origin.Z + int32(cell[2]*g.stride/geometry.SubDiv),
	}
	c := matStore.ColorFor(mat, voxel)
	return [4]uint8{c.R, c.G, c.B, c.A}
}

// emitQuad converte o retângulo fundido em uma face no buffer, em coordenadas
// do mundo. start é (fatia, u, v); w cresce ao longo de dv, h ao longo de du.
func emitQuad(buf *MeshBuffer, dir dirSpec, perp int, start [3]int, w, h int, cellSize float32, base util.Vector3, color [4]uint8) {
	var cell [3]float32
	cell[perp] = float32(start[0])
	if dir.normal[perp] > 0 {
		cell[perp] += 1
	}
	cell[dir.u] = float32(start[1])
	cell[dir.v] = float32(start[2])

	origin := [3]float32{
		base.X + cell[0]*cellSize,
		base.Y + cell[1]*cellSize,
		base.Z + cell[2]*cellSize,
	}

	duLen := float32(h) * cellSize
	dvLen := float32(w) * cellSize

	verts := [4][3]float32{
		origin,
		{origin[0] + float32(dir.du[0])*duLen, origin[1] + float32(dir.du[1])*duLen, origin[2] + float32(dir.du[2])*duLen},
		{origin[0] + float32(dir.du[0])*duLen + float32(dir.dv[0])*dvLen, origin[1] + float32(dir.du[1])*duLen + float32(dir.dv[1])*dvLen, origin[2] + float32(dir.du[2])*duLen + float32(dir.dv[2])*dvLen},
		{origin[0] + float32(dir.dv[0])*dvLen, origin[1] + float32(dir.dv[1])*dvLen, origin[2] + float32(dir.dv[2])*dvLen},
	}

	// UVs em unidades de célula, para texturas em tile acompanharem o tamanho
	// do quad fundido
	uvs := [4][2]float32{
		{0, 0},
		{float32(h), 0},
		{float32(h), float32(w)},
		{0, float32(w)},
	}

	// Corrige o winding para a face ficar voltada para fora
	if (dir.normal[perp] < 0) != (perp == 1) {
		verts[1], verts[3] = verts[3], verts[1]
		uvs[1], uvs[3] = uvs[3], uvs[1]
	}

	buf.AddFace(verts[0], verts[1], verts[2], verts[3], uvs[0], uvs[1], uvs[2], uvs[3], dir.normal, color)
}
