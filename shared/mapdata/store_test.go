package mapdata

import (
	"testing"

	"VoxelScape/shared/geometry"
	"VoxelScape/shared/spatial"
	"VoxelScape/shared/util"
)

func TestSetVoxelMarcaChunksDeBorda(t *testing.T) {
	s := NewVoxelStore()
	s.SetVoxel(Voxel{Pos: util.NewGridCoord(0, 0, 0), Pattern: geometry.PatternFull, Material: MaterialStone})

	// Posição no canto do chunk: o dono e os três vizinhos de face ficam sujos
	wantDirty := []util.GridCoord{
		{X: 0, Y: 0, Z: 0},
		{X: -16, Y: 0, Z: 0},
		{X: 0, Y: -16, Z: 0},
		{X: 0, Y: 0, Z: -16},
	}
	for _, origin := range wantDirty {
		if !s.Dirty.Contains(origin) {
			t.Errorf("chunk %v deveria estar na fila suja", origin)
		}
	}
	if s.Dirty.Len() != len(wantDirty) {
		t.Errorf("fila suja com %d chunks, esperado %d", s.Dirty.Len(), len(wantDirty))
	}
}

func TestSetVoxelInteriorSoMarcaDono(t *testing.T) {
	s := NewVoxelStore()
	s.SetVoxel(Voxel{Pos: util.NewGridCoord(8, 8, 8), Pattern: geometry.PatternFull, Material: MaterialStone})

	if s.Dirty.Len() != 1 {
		t.Errorf("edição interior sujou %d chunks, esperado só o dono", s.Dirty.Len())
	}
}

func TestRegistroCorrompidoDegrada(t *testing.T) {
	s := NewVoxelStore()
	s.SetVoxel(Voxel{
		Pos:      util.NewGridCoord(1, 1, 1),
		Pattern:  geometry.Pattern(99),
		Rotation: 45,
		Material: -2,
	})

	v := s.GetVoxel(util.NewGridCoord(1, 1, 1))
	if v == nil {
		t.Fatalf("voxel corrompido deveria ser recuperado, não descartado")
	}
	if v.Pattern != geometry.PatternFull || v.Rotation != 0 {
		t.Errorf("registro corrompido virou (%v, %d), esperado (Full, 0)", v.Pattern, v.Rotation)
	}
	if v.Material != MaterialStone {
		t.Errorf("material inválido virou %d, esperado pedra", v.Material)
	}
}

func TestRebuildCollidersContagem(t *testing.T) {
	s := NewVoxelStore()
	index := spatial.NewUniformGrid(util.VoxelScale)
	pos := util.NewGridCoord(3, 0, 3)
	origin := pos.ChunkCoord()

	s.SetVoxel(Voxel{Pos: pos, Pattern: geometry.PatternFull, Material: MaterialStone})
	if got := s.RebuildColliders(index, origin); got != 512 {
		t.Errorf("voxel Full gerou %d colisores, esperado 512", got)
	}
	if index.Len() != 512 {
		t.Errorf("índice com %d colisores, esperado 512", index.Len())
	}

	// Substituir por Platform reduz para 64 e limpa os antigos
	s.SetVoxel(Voxel{Pos: pos, Pattern: geometry.PatternPlatform, Material: MaterialStone})
	if got := s.RebuildColliders(index, origin); got != 64 {
		t.Errorf("voxel Platform gerou %d colisores, esperado 64", got)
	}
	if index.Len() != 64 {
		t.Errorf("índice com %d colisores após substituição, esperado 64", index.Len())
	}

	// Remoção zera
	s.RemoveVoxel(pos)
	if got := s.RebuildColliders(index, origin); got != 0 {
		t.Errorf("chunk vazio gerou %d colisores, esperado 0", got)
	}
	if index.Len() != 0 {
		t.Errorf("índice com %d colisores após remoção, esperado 0", index.Len())
	}
}

func TestRemoveVoxelInexistente(t *testing.T) {
	s := NewVoxelStore()
	if s.RemoveVoxel(util.NewGridCoord(5, 5, 5)) {
		t.Errorf("remover posição vazia deveria ser no-op retornando false")
	}
	if s.Dirty.Len() != 0 {
		t.Errorf("no-op não deveria sujar chunks")
	}
}

func TestMTimeAvancaPorEdicao(t *testing.T) {
	s := NewVoxelStore()
	pos := util.NewGridCoord(2, 2, 2)
	origin := pos.ChunkCoord()

	s.SetVoxel(Voxel{Pos: pos, Pattern: geometry.PatternFull, Material: MaterialStone})
	c, _ := s.GetChunk(origin)
	first := c.MTime

	s.SetVoxel(Voxel{Pos: pos, Pattern: geometry.PatternSlab, Material: MaterialStone})
	if c.MTime <= first {
		t.Errorf("MTime não avançou: %d -> %d", first, c.MTime)
	}

	s.RemoveVoxel(pos)
	if c.MTime <= first+1 {
		t.Errorf("MTime não avançou na remoção")
	}
}

func TestSnapshotComHalo(t *testing.T) {
	s := NewVoxelStore()
	s.SetVoxel(Voxel{Pos: util.NewGridCoord(15, 0, 0), Pattern: geometry.PatternFull, Material: MaterialGrass})
	s.SetVoxel(Voxel{Pos: util.NewGridCoord(16, 0, 0), Pattern: geometry.PatternWall, Rotation: 90, Material: MaterialWood})

	snap := s.Snapshot(util.NewGridCoord(0, 0, 0))
	if snap == nil {
		t.Fatalf("snapshot de chunk com dados retornou nil")
	}
	if snap.Count != 1 {
		t.Errorf("Count = %d, esperado 1 (halo não conta)", snap.Count)
	}

	inside := snap.At(15, 0, 0)
	if !inside.Present || inside.Material != MaterialGrass {
		t.Errorf("voxel interno ausente do snapshot: %+v", inside)
	}

	halo := snap.At(16, 0, 0)
	if !halo.Present || halo.Pattern != geometry.PatternWall || halo.Rotation != 90 {
		t.Errorf("voxel de halo incorreto: %+v", halo)
	}

	if snap.At(0, 0, 0).Present {
		t.Errorf("posição vazia aparece presente no snapshot")
	}
}

func TestSnapshotChunkVazio(t *testing.T) {
	s := NewVoxelStore()
	if snap := s.Snapshot(util.NewGridCoord(0, 0, 0)); snap != nil {
		t.Errorf("snapshot de chunk inexistente = %+v, esperado nil", snap)
	}

	pos := util.NewGridCoord(0, 0, 0)
	s.SetVoxel(Voxel{Pos: pos, Pattern: geometry.PatternFull, Material: MaterialStone})
	s.RemoveVoxel(pos)
	if snap := s.Snapshot(pos.ChunkCoord()); snap != nil {
		t.Errorf("snapshot de chunk esvaziado deveria ser nil")
	}
}

func TestUnloadLimpaIndice(t *testing.T) {
	s := NewVoxelStore()
	index := spatial.NewUniformGrid(util.VoxelScale)

	s.SetVoxel(Voxel{Pos: util.NewGridCoord(0, 0, 0), Pattern: geometry.PatternPillar, Material: MaterialStone})
	s.RebuildColliders(index, util.NewGridCoord(0, 0, 0))
	if index.Len() == 0 {
		t.Fatalf("setup falhou: nenhum colisor inserido")
	}

	s.Unload(index)
	if index.Len() != 0 {
		t.Errorf("Unload deixou %d colisores no índice", index.Len())
	}
	if s.ChunkCount() != 0 {
		t.Errorf("Unload deixou %d chunks residentes", s.ChunkCount())
	}
}

func TestPaletaDeterministica(t *testing.T) {
	m := NewMaterialStore()
	pos := util.NewGridCoord(10, 4, -3)

	a := m.ColorFor(MaterialGrass, pos)
	b := m.ColorFor(MaterialGrass, pos)
	if a != b {
		t.Errorf("mesma coordenada deu cores diferentes: %v vs %v", a, b)
	}

	// Material desconhecido cai na paleta de pedra
	unknown := m.ColorFor(999, pos)
	stone := m.ColorFor(MaterialStone, pos)
	if unknown != stone {
		t.Errorf("material desconhecido = %v, esperado fallback de pedra %v", unknown, stone)
	}
}

func TestPaletteIndexEstavel(t *testing.T) {
	seen := make(map[int]bool)
	for x := int32(0); x < 8; x++ {
		for z := int32(0); z < 8; z++ {
			idx := PaletteIndex(util.NewGridCoord(x, 0, z))
			if idx < 0 || idx >= PaletteSize {
				t.Fatalf("PaletteIndex fora de [0,%d): %d", PaletteSize, idx)
			}
			seen[idx] = true
		}
	}
	// O hash espalha: uma região 8x8 usa mais de uma variação
	if len(seen) < 2 {
		t.Errorf("hash de paleta degenerado: só %d variações em 64 voxels", len(seen))
	}
}
