package mapdata

import (
	"testing"

	"VoxelScape/shared/util"
)

func TestGenerateTerrainDeterministico(t *testing.T) {
	a := GenerateTerrain(42, 16, 16)
	b := GenerateTerrain(42, 16, 16)

	if len(a) == 0 {
		t.Fatalf("terreno vazio")
	}
	if len(a) != len(b) {
		t.Fatalf("mesma seed gerou %d e %d registros", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("registro %d difere entre gerações com a mesma seed", i)
		}
	}
}

func TestGenerateTerrainCobreOPlano(t *testing.T) {
	records := GenerateTerrain(7, 8, 8)

	// Toda coluna tem pelo menos um voxel de superfície
	covered := make(map[[2]int32]bool)
	for _, v := range records {
		covered[[2]int32{v.Pos.X, v.Pos.Z}] = true
		if v.Pos.X < 0 || v.Pos.X >= 8 || v.Pos.Z < 0 || v.Pos.Z >= 8 {
			t.Errorf("voxel fora da área pedida: %v", v.Pos)
		}
		if !v.Pattern.Valid() || !v.Rotation.Valid() {
			t.Errorf("terreno gerou registro inválido: %+v", v)
		}
	}
	if len(covered) != 64 {
		t.Errorf("%d colunas cobertas, esperado 64", len(covered))
	}
}

func TestGenerateTerrainCarregavel(t *testing.T) {
	s := NewVoxelStore()
	s.LoadRecords(GenerateTerrain(1337, 32, 32))

	if s.ChunkCount() == 0 {
		t.Fatalf("nenhum chunk criado")
	}

	// Amostra: a coluna central tem chão sólido em y=0
	if v := s.GetVoxel(util.NewGridCoord(16, 0, 16)); v == nil {
		t.Errorf("coluna central sem voxel na base")
	}
}
