package render

/*
#include <stdlib.h>
*/
import "C"

import (
	"log"
	"sync"
	"unsafe"

	"VoxelScape/jogo/internal/meshing"
	"VoxelScape/shared/util"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ChunkModel guarda os modelos GPU de um chunk, um por nível de detalhe.
type ChunkModel struct {
	Origin util.GridCoord
	Center rl.Vector3
	MTime  int64
	Active bool

	LODs      [meshing.NumLODs]rl.Model
	HasLOD    [meshing.NumLODs]bool
	TriCounts [meshing.NumLODs]int

	// CurrentLOD é o último nível desenhado; a histerese parte dele.
	CurrentLOD int
}

// Renderer gerencia os modelos GPU dos chunks e o desenho com seleção de LOD.
type Renderer struct {
	mu     sync.RWMutex
	Models map[util.GridCoord]*ChunkModel

	// Limiares de distância entre LODs e banda de histerese
	Thresholds []float32
	Band       float32

	// Contadores do último frame, para o overlay de debug
	DrawnModels    int
	DrawnTriangles int
}

// NewRenderer cria o renderizador com os limiares de LOD configurados.
func NewRenderer(thresholds []float32, band float32) *Renderer {
	return &Renderer{
		Models:     make(map[util.GridCoord]*ChunkModel),
		Thresholds: thresholds,
		Band:       band,
	}
}

// GetModelVersion retorna o MTime do modelo carregado para a coordenada, ou -1.
func (r *Renderer) GetModelVersion(coord util.GridCoord) int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if cm, ok := r.Models[coord]; ok {
		return cm.MTime
	}
	return -1
}

// UploadResult converte um resultado de meshing nos modelos GPU do chunk.
// Um resultado vazio descarrega o chunk (último voxel removido).
func (r *Renderer) UploadResult(res meshing.Result, center rl.Vector3) {
	if !rl.IsWindowReady() {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.Models[res.Origin]; ok {
		unloadChunkModel(old)
		delete(r.Models, res.Origin)
	}

	if res.IsEmpty() {
		return
	}

	cm := &ChunkModel{
		Origin: res.Origin,
		Center: center,
		MTime:  res.MTime,
		Active: true,
	}

	for lod := 0; lod < meshing.NumLODs; lod++ {
		geo := res.LODs[lod]
		if len(geo.Vertices) == 0 {
			continue
		}
		mesh := r.geometryToMesh(geo)
		rl.UploadMesh(&mesh, false)
		// A RAM do LOD 0 fica viva para o raycast de seleção; os LODs
		// grosseiros só existem na GPU.
		if lod > 0 {
			r.freeMeshRAM(&mesh)
		}
		cm.LODs[lod] = rl.LoadModelFromMesh(mesh)
		cm.HasLOD[lod] = true
		cm.TriCounts[lod] = geo.TriangleCount()
	}

	r.Models[res.Origin] = cm
}

func (r *Renderer) geometryToMesh(data meshing.GeometryData) rl.Mesh {
	var mesh rl.Mesh
	vCount := int32(len(data.Vertices) / 3)
	mesh.VertexCount = vCount
	mesh.TriangleCount = vCount / 3

	mesh.Vertices = nil
	mesh.Normals = nil
	mesh.Colors = nil
	mesh.Texcoords = nil

	if len(data.Vertices) > 0 {
		mesh.Vertices = (*float32)(r.copyToC(unsafe.Pointer(&data.Vertices[0]), len(data.Vertices)*4))
	}
	if len(data.Normals) > 0 {
		mesh.Normals = (*float32)(r.copyToC(unsafe.Pointer(&data.Normals[0]), len(data.Normals)*4))
	}
	if len(data.Colors) > 0 {
		mesh.Colors = (*uint8)(r.copyToC(unsafe.Pointer(&data.Colors[0]), len(data.Colors)))
	}
	if len(data.UVs) > 0 {
		mesh.Texcoords = (*float32)(r.copyToC(unsafe.Pointer(&data.UVs[0]), len(data.UVs)*4))
	}
	return mesh
}

func (r *Renderer) copyToC(data unsafe.Pointer, size int) unsafe.Pointer {
	if size <= 0 || data == nil {
		return nil
	}
	ptr := C.malloc(C.size_t(size))
	if ptr == nil {
		return nil
	}
	cSlice := unsafe.Slice((*byte)(ptr), size)
	goSlice := unsafe.Slice((*byte)(data), size)
	copy(cSlice, goSlice)
	return ptr
}

// freeMeshRAM libera a memória principal (C) associada a uma malha após o
// upload para a GPU.
func (r *Renderer) freeMeshRAM(mesh *rl.Mesh) {
	if mesh.Vertices != nil {
		C.free(unsafe.Pointer(mesh.Vertices))
		mesh.Vertices = nil
	}
	if mesh.Normals != nil {
		C.free(unsafe.Pointer(mesh.Normals))
		mesh.Normals = nil
	}
	if mesh.Colors != nil {
		C.free(unsafe.Pointer(mesh.Colors))
		mesh.Colors = nil
	}
	if mesh.Texcoords != nil {
		C.free(unsafe.Pointer(mesh.Texcoords))
		mesh.Texcoords = nil
	}
}

// Draw desenha todos os chunks carregados, escolhendo o LOD de cada um pela
// distância do centro do chunk à câmera.
func (r *Renderer) Draw(camera3d rl.Camera3D) {
	r.mu.Lock()
	defer r.mu.Unlock()

	camPos := camera3d.Position
	r.DrawnModels = 0
	r.DrawnTriangles = 0

	for _, cm := range r.Models {
		if !cm.Active {
			continue
		}

		dist := rl.Vector3Distance(camPos, cm.Center)
		lod := SelectLOD(dist, cm.CurrentLOD, r.Thresholds, r.Band)
		cm.CurrentLOD = lod

		// Se o LOD escolhido não tem geometria, cai para o mais fino disponível
		if !cm.HasLOD[lod] {
			for l := 0; l < meshing.NumLODs; l++ {
				if cm.HasLOD[l] {
					lod = l
					break
				}
			}
			if !cm.HasLOD[lod] {
				continue
			}
		}

		rl.DrawModel(cm.LODs[lod], rl.Vector3{}, 1.0, rl.White)
		r.DrawnModels++
		r.DrawnTriangles += cm.TriCounts[lod]
	}
}

// GetRayCollision encontra o voxel do terreno atingido pelo raio do mouse,
// testando contra as malhas de LOD 0 (as únicas com RAM viva).
func (r *Renderer) GetRayCollision(ray rl.Ray) (util.GridCoord, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var closestDist float32 = 1e9
	var hit bool
	var hitPos rl.Vector3

	for _, cm := range r.Models {
		if !cm.Active || !cm.HasLOD[0] {
			continue
		}
		model := cm.LODs[0]
		meshes := unsafe.Slice(model.Meshes, model.MeshCount)
		for i := int32(0); i < model.MeshCount; i++ {
			collision := rl.GetRayCollisionMesh(ray, meshes[i], model.Transform)
			if collision.Hit && collision.Distance < closestDist {
				closestDist = collision.Distance
				hitPos = collision.Point
				hit = true
			}
		}
	}

	if !hit {
		return util.GridCoord{}, false
	}

	// Empurra o ponto levemente para dentro da superfície antes de converter
	dir := rl.Vector3Normalize(ray.Direction)
	hitPos.X += dir.X * 0.01
	hitPos.Y += dir.Y * 0.01
	hitPos.Z += dir.Z * 0.01
	return util.WorldToGrid(hitPos), true
}

// DrawSelection desenha um cubo de destaque no voxel selecionado.
func (r *Renderer) DrawSelection(coord util.GridCoord) {
	pos := util.GridToWorldCenter(coord)
	rl.DrawCubeWires(pos, util.VoxelScale*1.01, util.VoxelScale*1.01, util.VoxelScale*1.01, rl.Yellow)
}

// Unload libera todos os modelos GPU.
func (r *Renderer) Unload() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, cm := range r.Models {
		unloadChunkModel(cm)
	}
	r.Models = make(map[util.GridCoord]*ChunkModel)
	log.Printf("[Renderer] Modelos GPU liberados")
}

func unloadChunkModel(cm *ChunkModel) {
	if !cm.Active {
		return
	}
	for lod := 0; lod < meshing.NumLODs; lod++ {
		if cm.HasLOD[lod] {
			rl.UnloadModel(cm.LODs[lod])
		}
	}
	cm.Active = false
}
