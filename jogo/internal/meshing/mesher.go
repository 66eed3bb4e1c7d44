package meshing

import (
	"sync"

	"VoxelScape/shared/mapdata"
	"VoxelScape/shared/util"
)

// NumLODs é o número fixo de níveis de detalhe por chunk, decidido na criação.
const NumLODs = 4

// GeometryData contém os buffers de vértices para uma malha.
type GeometryData struct {
	Vertices []float32
	Normals  []float32
	Colors   []uint8
	UVs      []float32
}

// Clone cria uma cópia profunda dos dados para evitar corrupção de memória.
func (g GeometryData) Clone() GeometryData {
	clone := GeometryData{}
	if len(g.Vertices) > 0 {
		clone.Vertices = make([]float32, len(g.Vertices))
		copy(clone.Vertices, g.Vertices)
	}
	if len(g.Normals) > 0 {
		clone.Normals = make([]float32, len(g.Normals))
		copy(clone.Normals, g.Normals)
	}
	if len(g.Colors) > 0 {
		clone.Colors = make([]uint8, len(g.Colors))
		copy(clone.Colors, g.Colors)
	}
	if len(g.UVs) > 0 {
		clone.UVs = make([]float32, len(g.UVs))
		copy(clone.UVs, g.UVs)
	}
	return clone
}

// TriangleCount retorna o número de triângulos do buffer.
func (g GeometryData) TriangleCount() int {
	return len(g.Vertices) / 9
}

// Request representa um pedido de processamento de malha para um chunk.
type Request struct {
	Origin util.GridCoord
	Snap   *mapdata.ChunkSnapshot // Cópia imutável dos dados do chunk (nil = chunk vazio)
	MTime  int64                  // Versão dos dados no momento da requisição
}

// Result contém os dados de geometria gerados para um chunk, um buffer por LOD.
type Result struct {
	Origin util.GridCoord
	MTime  int64
	LODs   [NumLODs]GeometryData
}

// IsEmpty informa se nenhum LOD produziu geometria. Um chunk sem voxels gera
// um resultado vazio válido, nunca um erro.
func (r Result) IsEmpty() bool {
	for i := range r.LODs {
		if len(r.LODs[i].Vertices) > 0 {
			return false
		}
	}
	return true
}

// Mesher é a interface para geradores de malha.
type Mesher interface {
	Enqueue(req Request) bool
	Results() <-chan Result
	Stop()
}

// Pool global para reciclar MeshBuffers e evitar alocação excessiva (GC Pressure)
var meshBufferPool = sync.Pool{
	New: func() interface{} {
		return &MeshBuffer{
			Geometry: GeometryData{
				Vertices: make([]float32, 0, 4096),
				Normals:  make([]float32, 0, 4096),
				Colors:   make([]uint8, 0, 4096),
				UVs:      make([]float32, 0, 4096),
			},
		}
	},
}

// GetMeshBuffer aloca ou recicla um buffer vazio para meshing.
func GetMeshBuffer() *MeshBuffer {
	b := meshBufferPool.Get().(*MeshBuffer)
	b.Reset()
	return b
}

// PutMeshBuffer devolve a memória para o pool.
func PutMeshBuffer(b *MeshBuffer) {
	if b == nil {
		return
	}
	b.Reset()
	meshBufferPool.Put(b)
}

// MeshBuffer auxilia na construção de malhas dinâmicas.
type MeshBuffer struct {
	Geometry GeometryData
}

// Reset esvazia os buffers preservando a capacidade alocada.
func (b *MeshBuffer) Reset() {
	b.Geometry.Vertices = b.Geometry.Vertices[:0]
	b.Geometry.Normals = b.Geometry.Normals[:0]
	b.Geometry.Colors = b.Geometry.Colors[:0]
	b.Geometry.UVs = b.Geometry.UVs[:0]
}

// AddFace adiciona uma face retangular (quad) ao buffer como dois triângulos.
func (b *MeshBuffer) AddFace(v1, v2, v3, v4 [3]float32, uv1, uv2, uv3, uv4 [2]float32, n [3]float32, c [4]uint8) {
	// Triângulo 1 (v1, v2, v3)
	b.addVertex(v1, uv1, n, c)
	b.addVertex(v2, uv2, n, c)
	b.addVertex(v3, uv3, n, c)

	// Triângulo 2 (v1, v3, v4)
	b.addVertex(v1, uv1, n, c)
	b.addVertex(v3, uv3, n, c)
	b.addVertex(v4, uv4, n, c)
}

func (b *MeshBuffer) addVertex(v [3]float32, uv [2]float32, n [3]float32, c [4]uint8) {
	b.Geometry.Vertices = append(b.Geometry.Vertices, v[0], v[1], v[2])
	b.Geometry.Normals = append(b.Geometry.Normals, n[0], n[1], n[2])
	b.Geometry.Colors = append(b.Geometry.Colors, c[0], c[1], c[2], c[3])
	b.Geometry.UVs = append(b.Geometry.UVs, uv[0], uv[1])
}
