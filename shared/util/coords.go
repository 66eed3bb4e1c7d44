package util

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Vector3 é um alias para rl.Vector3 para conveniência
type Vector3 = rl.Vector3

// GridCoord representa uma coordenada inteira na grade de voxels.
// X = leste/oeste, Y = nível vertical, Z = norte/sul
type GridCoord struct {
	X, Y, Z int32
}

// NewGridCoord cria uma nova coordenada de grade.
func NewGridCoord(x, y, z int32) GridCoord {
	return GridCoord{X: x, Y: y, Z: z}
}

// Add soma duas coordenadas.
func (c GridCoord) Add(other GridCoord) GridCoord {
	return GridCoord{
		X: c.X + other.X,
		Y: c.Y + other.Y,
		Z: c.Z + other.Z,
	}
}

// Sub subtrai duas coordenadas.
func (c GridCoord) Sub(other GridCoord) GridCoord {
	return GridCoord{
		X: c.X - other.X,
		Y: c.Y - other.Y,
		Z: c.Z - other.Z,
	}
}

// Equals verifica igualdade entre coordenadas.
func (c GridCoord) Equals(other GridCoord) bool {
	return c.X == other.X && c.Y == other.Y && c.Z == other.Z
}

// String retorna a representação em string da coordenada.
func (c GridCoord) String() string {
	return fmt.Sprintf("(%d, %d, %d)", c.X, c.Y, c.Z)
}

// ChunkSize é o tamanho de um chunk em voxels (16x16x16).
const ChunkSize = 16

// SubDiv é a subdivisão interna de cada voxel (8x8x8 sub-voxels).
const SubDiv = 8

// floorDiv arredonda a divisão sempre para baixo (inclusive para negativos).
func floorDiv(a, b int32) int32 {
	return int32(math.Floor(float64(a) / float64(b)))
}

// ChunkCoord retorna a origem do chunk que contém esta coordenada.
func (c GridCoord) ChunkCoord() GridCoord {
	return GridCoord{
		X: floorDiv(c.X, ChunkSize) * ChunkSize,
		Y: floorDiv(c.Y, ChunkSize) * ChunkSize,
		Z: floorDiv(c.Z, ChunkSize) * ChunkSize,
	}
}

// LocalCoord retorna a coordenada local dentro do chunk (0-15 em cada eixo).
func (c GridCoord) LocalCoord() GridCoord {
	cc := c.ChunkCoord()
	return GridCoord{
		X: c.X - cc.X,
		Y: c.Y - cc.Y,
		Z: c.Z - cc.Z,
	}
}

// VoxelScale é o tamanho de um voxel no mundo 3D (1 unidade).
const VoxelScale float32 = 1.0

// SubVoxelScale é o tamanho de um sub-voxel no mundo 3D.
const SubVoxelScale float32 = VoxelScale / SubDiv

// GridToWorld converte uma coordenada de grade para o canto inferior do voxel no mundo.
func GridToWorld(coord GridCoord) rl.Vector3 {
	return rl.Vector3{
		X: float32(coord.X) * VoxelScale,
		Y: float32(coord.Y) * VoxelScale,
		Z: float32(coord.Z) * VoxelScale,
	}
}

// GridToWorldCenter converte para o centro do voxel no mundo 3D.
func GridToWorldCenter(coord GridCoord) rl.Vector3 {
	pos := GridToWorld(coord)
	pos.X += VoxelScale * 0.5
	pos.Y += VoxelScale * 0.5
	pos.Z += VoxelScale * 0.5
	return pos
}

// WorldToGrid converte uma posição do mundo 3D para a coordenada do voxel que a contém.
func WorldToGrid(pos rl.Vector3) GridCoord {
	return GridCoord{
		X: int32(math.Floor(float64(pos.X / VoxelScale))),
		Y: int32(math.Floor(float64(pos.Y / VoxelScale))),
		Z: int32(math.Floor(float64(pos.Z / VoxelScale))),
	}
}

// Directions representa as seis direções de face.
type Directions uint8

const (
	DirNone Directions = 0
	DirEast Directions = 1 << iota
	DirWest
	DirUp
	DirDown
	DirNorth
	DirSouth
)

// DirOffsets mapeia direções para offsets de coordenada.
var DirOffsets = map[Directions]GridCoord{
	DirEast:  {X: 1, Y: 0, Z: 0},
	DirWest:  {X: -1, Y: 0, Z: 0},
	DirUp:    {X: 0, Y: 1, Z: 0},
	DirDown:  {X: 0, Y: -1, Z: 0},
	DirNorth: {X: 0, Y: 0, Z: -1},
	DirSouth: {X: 0, Y: 0, Z: 1},
}

// FaceDirs lista as seis direções em ordem estável (útil para iteração).
var FaceDirs = []Directions{DirEast, DirWest, DirUp, DirDown, DirNorth, DirSouth}

// AddDir retorna uma nova coordenada deslocada na direção especificada.
func (c GridCoord) AddDir(dir Directions) GridCoord {
	return c.Add(DirOffsets[dir])
}
