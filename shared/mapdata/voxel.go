package mapdata

import (
	"VoxelScape/shared/geometry"
	"VoxelScape/shared/spatial"
	"VoxelScape/shared/util"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Voxel é um registro de voxel colocado no mundo: posição inteira na grade,
// padrão de ocupação, rotação sobre o eixo vertical e material.
// Imutável depois de colocado, exceto através das operações de edição do store.
type Voxel struct {
	Pos      util.GridCoord
	Pattern  geometry.Pattern
	Rotation geometry.Rotation
	Material int32
}

// Chunk agrupa 16x16x16 voxels em uma unidade de meshing e rebuild.
type Chunk struct {
	Origin util.GridCoord // Múltiplo de ChunkSize em todos os eixos
	Voxels [util.ChunkSize][util.ChunkSize][util.ChunkSize]*Voxel

	// MTime é o contador de modificações; um resultado de meshing só é
	// aceito se a versão dele bater com a versão atual do chunk.
	MTime int64

	// IsDirty indica que o chunk mudou desde o último save no banco.
	IsDirty bool

	// Count é o número de voxels presentes (evita varrer o array para
	// detectar chunks vazios).
	Count int

	// Colliders são os handles registrados no índice espacial no último
	// rebuild. Removidos em bloco antes de repopular.
	Colliders []spatial.Handle

	// Center é o centro do chunk no mundo, usado na seleção de LOD.
	Center rl.Vector3
}

// NewChunk cria um chunk vazio na origem dada.
func NewChunk(origin util.GridCoord) *Chunk {
	half := float32(util.ChunkSize) * util.VoxelScale * 0.5
	base := util.GridToWorld(origin)
	return &Chunk{
		Origin: origin,
		Center: rl.Vector3{X: base.X + half, Y: base.Y + half, Z: base.Z + half},
	}
}

// VoxelAt retorna o voxel na coordenada local (sem checagem de limites).
func (c *Chunk) VoxelAt(local util.GridCoord) *Voxel {
	return c.Voxels[local.X][local.Y][local.Z]
}

// SnapVoxel é a versão imutável de um voxel dentro de um snapshot.
type SnapVoxel struct {
	Present  bool
	Pattern  geometry.Pattern
	Rotation geometry.Rotation
	Material int32
}

// snapN é o lado do snapshot: o chunk mais um halo de um voxel por lado,
// necessário para o culling de faces correto nas bordas do chunk.
const snapN = util.ChunkSize + 2

// ChunkSnapshot é a cópia imutável dos dados de um chunk (mais halo) entregue
// aos workers de meshing. Nenhum estado compartilhado é tocado em um worker.
type ChunkSnapshot struct {
	Origin util.GridCoord
	MTime  int64
	Count  int
	Voxels [snapN][snapN][snapN]SnapVoxel
}

// At retorna o voxel do snapshot em coordenadas locais do chunk.
// Aceita o intervalo [-1, ChunkSize] em cada eixo (halo incluído).
func (s *ChunkSnapshot) At(lx, ly, lz int) SnapVoxel {
	return s.Voxels[lx+1][ly+1][lz+1]
}
