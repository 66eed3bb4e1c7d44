package mapdata

import (
	"log"
	"sync"

	"VoxelScape/shared/geometry"
	"VoxelScape/shared/spatial"
	"VoxelScape/shared/util"

	"gorm.io/gorm"
)

// VoxelStore gerencia o conjunto de voxels do mundo, agrupados em chunks.
// É o dono do ciclo de vida dos chunks: criação no load/edição, marcação de
// sujeira e teardown no unload.
type VoxelStore struct {
	Mu sync.RWMutex

	// dbMu serializa escritas no banco SQLite (impede "database is locked")
	dbMu sync.Mutex

	// Chunks armazena os blocos 16x16x16 do mapa indexados pela origem.
	Chunks map[util.GridCoord]*Chunk

	// Dirty é a fila de chunks aguardando rebuild (malha + colisores).
	// Processada uma vez por frame na thread principal.
	Dirty *util.UniqueQueue[util.GridCoord, int64]

	// DB é a conexão com o banco SQLite (GORM)
	DB *gorm.DB

	nextHandle spatial.Handle
}

// NewVoxelStore cria um novo repositório de voxels.
func NewVoxelStore() *VoxelStore {
	return &VoxelStore{
		Chunks: make(map[util.GridCoord]*Chunk),
		Dirty:  util.NewUniqueQueue[util.GridCoord, int64](),
	}
}

// sanitizeRecord degrada registros corrompidos para o padrão Full, como o
// contrato do módulo de geometria: nunca um erro fatal, sempre um cubo sólido.
func sanitizeRecord(v Voxel) Voxel {
	if !v.Pattern.Valid() || !v.Rotation.Valid() {
		log.Printf("[Store] Registro corrompido em %v (padrão=%d rotação=%d); degradando para Full",
			v.Pos, v.Pattern, v.Rotation)
		v.Pattern = geometry.PatternFull
		v.Rotation = 0
	} else {
		v.Rotation = v.Rotation.Normalize()
	}
	if v.Material <= 0 || v.Material > 255 {
		v.Material = MaterialStone
	}
	return v
}

// GetVoxel retorna o voxel em uma coordenada global, ou nil.
func (s *VoxelStore) GetVoxel(pos util.GridCoord) *Voxel {
	s.Mu.RLock()
	defer s.Mu.RUnlock()

	chunk, ok := s.Chunks[pos.ChunkCoord()]
	if !ok {
		return nil
	}
	return chunk.VoxelAt(pos.LocalCoord())
}

// GetChunk retorna um chunk de forma segura (thread-safe).
func (s *VoxelStore) GetChunk(origin util.GridCoord) (*Chunk, bool) {
	s.Mu.RLock()
	defer s.Mu.RUnlock()
	c, ok := s.Chunks[origin]
	return c, ok
}

// SetVoxel coloca ou substitui um voxel, marcando os chunks afetados como
// sujos. Registros inválidos são recuperados localmente (nunca propagados).
func (s *VoxelStore) SetVoxel(v Voxel) {
	v = sanitizeRecord(v)

	s.Mu.Lock()
	origin := v.Pos.ChunkCoord()
	chunk, ok := s.Chunks[origin]
	if !ok {
		chunk = NewChunk(origin)
		s.Chunks[origin] = chunk
	}

	local := v.Pos.LocalCoord()
	if chunk.Voxels[local.X][local.Y][local.Z] == nil {
		chunk.Count++
	}
	stored := v
	chunk.Voxels[local.X][local.Y][local.Z] = &stored
	chunk.MTime++
	chunk.IsDirty = true
	s.Mu.Unlock()

	s.markDirtyAround(v.Pos)
}

// RemoveVoxel apaga o voxel em uma posição. Posição vazia é um no-op.
func (s *VoxelStore) RemoveVoxel(pos util.GridCoord) bool {
	s.Mu.Lock()
	origin := pos.ChunkCoord()
	chunk, ok := s.Chunks[origin]
	if !ok {
		s.Mu.Unlock()
		return false
	}
	local := pos.LocalCoord()
	if chunk.Voxels[local.X][local.Y][local.Z] == nil {
		s.Mu.Unlock()
		return false
	}
	chunk.Voxels[local.X][local.Y][local.Z] = nil
	chunk.Count--
	chunk.MTime++
	chunk.IsDirty = true
	s.Mu.Unlock()

	s.markDirtyAround(pos)
	return true
}

// LoadRecords ingere uma lista ordenada de registros já validados (o
// colaborador de definição de mapa). Cada registro ainda passa pela
// recuperação local de padrão/rotação corrompidos.
func (s *VoxelStore) LoadRecords(records []Voxel) {
	for _, v := range records {
		s.SetVoxel(v)
	}
	log.Printf("[Store] %d registros de voxel carregados (%d chunks)", len(records), len(s.Chunks))
}

// markDirtyAround marca o chunk dono da posição e qualquer chunk que
// compartilhe uma face de borda com ela. Rebuilds são sempre por chunk
// inteiro, nunca remendos incrementais.
func (s *VoxelStore) markDirtyAround(pos util.GridCoord) {
	owner := pos.ChunkCoord()
	s.MarkDirty(owner)

	local := pos.LocalCoord()
	if local.X == 0 {
		s.MarkDirty(owner.Add(util.GridCoord{X: -util.ChunkSize}))
	}
	if local.X == util.ChunkSize-1 {
		s.MarkDirty(owner.Add(util.GridCoord{X: util.ChunkSize}))
	}
	if local.Y == 0 {
		s.MarkDirty(owner.Add(util.GridCoord{Y: -util.ChunkSize}))
	}
	if local.Y == util.ChunkSize-1 {
		s.MarkDirty(owner.Add(util.GridCoord{Y: util.ChunkSize}))
	}
	if local.Z == 0 {
		s.MarkDirty(owner.Add(util.GridCoord{Z: -util.ChunkSize}))
	}
	if local.Z == util.ChunkSize-1 {
		s.MarkDirty(owner.Add(util.GridCoord{Z: util.ChunkSize}))
	}
}

// MarkDirty enfileira um chunk para rebuild. Chunks inexistentes são
// enfileirados mesmo assim: o rebuild de um chunk sem dados é um no-op válido.
func (s *VoxelStore) MarkDirty(origin util.GridCoord) {
	s.Mu.RLock()
	var mtime int64
	if c, ok := s.Chunks[origin]; ok {
		mtime = c.MTime
	}
	s.Mu.RUnlock()
	s.Dirty.Enqueue(origin, mtime)
}

// Snapshot produz a cópia imutável de um chunk (com halo de um voxel) para os
// workers de meshing. Retorna nil se o chunk não existir ou estiver vazio.
func (s *VoxelStore) Snapshot(origin util.GridCoord) *ChunkSnapshot {
	s.Mu.RLock()
	defer s.Mu.RUnlock()

	chunk, ok := s.Chunks[origin]
	if !ok || chunk.Count == 0 {
		return nil
	}

	snap := &ChunkSnapshot{
		Origin: origin,
		MTime:  chunk.MTime,
		Count:  chunk.Count,
	}

	for lz := -1; lz <= util.ChunkSize; lz++ {
		for ly := -1; ly <= util.ChunkSize; ly++ {
			for lx := -1; lx <= util.ChunkSize; lx++ {
				pos := origin.Add(util.GridCoord{X: int32(lx), Y: int32(ly), Z: int32(lz)})
				src := chunk
				if lx < 0 || lx >= util.ChunkSize || ly < 0 || ly >= util.ChunkSize ||
					lz < 0 || lz >= util.ChunkSize {
					src = s.Chunks[pos.ChunkCoord()]
				}
				if src == nil {
					continue
				}
				v := src.VoxelAt(pos.LocalCoord())
				if v == nil {
					continue
				}
				snap.Voxels[lx+1][ly+1][lz+1] = SnapVoxel{
					Present:  true,
					Pattern:  v.Pattern,
					Rotation: v.Rotation,
					Material: v.Material,
				}
			}
		}
	}
	return snap
}

// RebuildColliders repopula o índice espacial com os colisores do chunk.
// Cada sub-voxel ocupado entra com seus limites no mundo calculados uma única
// vez aqui, independente do culling visual: um sub-voxel interior invisível
// continua bloqueando movimento. Retorna o número de colisores inseridos.
func (s *VoxelStore) RebuildColliders(index *spatial.UniformGrid, origin util.GridCoord) int {
	s.Mu.Lock()
	defer s.Mu.Unlock()

	chunk, ok := s.Chunks[origin]
	if !ok {
		return 0
	}

	for _, h := range chunk.Colliders {
		index.Remove(h)
	}
	chunk.Colliders = chunk.Colliders[:0]

	for lx := 0; lx < util.ChunkSize; lx++ {
		for ly := 0; ly < util.ChunkSize; ly++ {
			for lz := 0; lz < util.ChunkSize; lz++ {
				v := chunk.Voxels[lx][ly][lz]
				if v == nil {
					continue
				}
				for sub := range geometry.OccupiedPositions(v.Pattern, v.Rotation) {
					s.nextHandle++
					h := s.nextHandle
					index.Insert(h, util.SubVoxelAABB(v.Pos, sub.X, sub.Y, sub.Z))
					chunk.Colliders = append(chunk.Colliders, h)
				}
			}
		}
	}
	return len(chunk.Colliders)
}

// Unload descarta todos os chunks e remove seus colisores do índice.
func (s *VoxelStore) Unload(index *spatial.UniformGrid) {
	s.Mu.Lock()
	defer s.Mu.Unlock()

	for _, chunk := range s.Chunks {
		for _, h := range chunk.Colliders {
			index.Remove(h)
		}
	}
	s.Chunks = make(map[util.GridCoord]*Chunk)
	s.Dirty.Clear()
}

// ChunkCount retorna o número de chunks residentes.
func (s *VoxelStore) ChunkCount() int {
	s.Mu.RLock()
	defer s.Mu.RUnlock()
	return len(s.Chunks)
}

// Close fecha a conexão com o banco de dados SQLite.
func (s *VoxelStore) Close() {
	if s.DB != nil {
		sqlDB, _ := s.DB.DB()
		if sqlDB != nil {
			log.Println("[Persistence] Fechando banco de dados SQLite...")
			sqlDB.Close()
		}
	}
}
