package util

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestChunkCoordNegativos(t *testing.T) {
	tests := []struct {
		pos  GridCoord
		want GridCoord
	}{
		{GridCoord{0, 0, 0}, GridCoord{0, 0, 0}},
		{GridCoord{15, 15, 15}, GridCoord{0, 0, 0}},
		{GridCoord{16, 16, 16}, GridCoord{16, 16, 16}},
		{GridCoord{-1, -1, -1}, GridCoord{-16, -16, -16}},
		{GridCoord{-16, -17, -33}, GridCoord{-16, -32, -48}},
		{GridCoord{31, -5, 7}, GridCoord{16, -16, 0}},
	}

	for _, tt := range tests {
		if got := tt.pos.ChunkCoord(); !got.Equals(tt.want) {
			t.Errorf("ChunkCoord(%v) = %v, esperado %v", tt.pos, got, tt.want)
		}
	}
}

func TestLocalCoordSempreNoIntervalo(t *testing.T) {
	positions := []GridCoord{
		{0, 0, 0}, {15, 15, 15}, {-1, -1, -1}, {-16, -17, 33}, {100, -100, 7},
	}
	for _, pos := range positions {
		local := pos.LocalCoord()
		if local.X < 0 || local.X >= ChunkSize ||
			local.Y < 0 || local.Y >= ChunkSize ||
			local.Z < 0 || local.Z >= ChunkSize {
			t.Errorf("LocalCoord(%v) = %v fora de [0,%d)", pos, local, ChunkSize)
		}
		// Origem + local reconstrói a posição
		if got := pos.ChunkCoord().Add(local); !got.Equals(pos) {
			t.Errorf("ChunkCoord+LocalCoord de %v = %v", pos, got)
		}
	}
}

func TestWorldToGridArredondaParaBaixo(t *testing.T) {
	tests := []struct {
		world rl.Vector3
		want  GridCoord
	}{
		{rl.Vector3{X: 0.5, Y: 0.5, Z: 0.5}, GridCoord{0, 0, 0}},
		{rl.Vector3{X: -0.5, Y: -0.5, Z: -0.5}, GridCoord{-1, -1, -1}},
		{rl.Vector3{X: 15.99, Y: 0, Z: -16.01}, GridCoord{15, 0, -17}},
	}
	for _, tt := range tests {
		if got := WorldToGrid(tt.world); !got.Equals(tt.want) {
			t.Errorf("WorldToGrid(%v) = %v, esperado %v", tt.world, got, tt.want)
		}
	}
}

func TestAddDir(t *testing.T) {
	origin := GridCoord{5, 5, 5}
	tests := []struct {
		dir  Directions
		want GridCoord
	}{
		{DirEast, GridCoord{6, 5, 5}},
		{DirWest, GridCoord{4, 5, 5}},
		{DirUp, GridCoord{5, 6, 5}},
		{DirDown, GridCoord{5, 4, 5}},
		{DirNorth, GridCoord{5, 5, 4}},
		{DirSouth, GridCoord{5, 5, 6}},
	}
	for _, tt := range tests {
		if got := origin.AddDir(tt.dir); !got.Equals(tt.want) {
			t.Errorf("AddDir(%v) = %v, esperado %v", tt.dir, got, tt.want)
		}
	}
}

func TestSubVoxelAABB(t *testing.T) {
	box := SubVoxelAABB(GridCoord{1, 0, -1}, 0, 7, 4)

	wantMin := rl.Vector3{X: 1.0, Y: 7 * SubVoxelScale, Z: -1.0 + 4*SubVoxelScale}
	if box.Min.X != wantMin.X || box.Min.Y != wantMin.Y || box.Min.Z != wantMin.Z {
		t.Errorf("SubVoxelAABB.Min = %v, esperado %v", box.Min, wantMin)
	}

	size := box.Max.X - box.Min.X
	if size != SubVoxelScale {
		t.Errorf("lado do sub-voxel = %f, esperado %f", size, SubVoxelScale)
	}
}
