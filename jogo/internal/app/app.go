// Package app liga todas as partes do VoxelScape: mundo, meshing em
// background, física, simulação e desenho. O loop de frame inteiro roda na
// thread principal; só o meshing acontece em workers.
package app

import (
	"fmt"
	"log"
	"time"

	"VoxelScape/jogo/internal/camera"
	"VoxelScape/jogo/internal/meshing"
	"VoxelScape/jogo/internal/physics"
	"VoxelScape/jogo/internal/render"
	"VoxelScape/jogo/internal/sim"
	"VoxelScape/shared/config"
	"VoxelScape/shared/geometry"
	"VoxelScape/shared/mapdata"
	"VoxelScape/shared/spatial"
	"VoxelScape/shared/util"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

// dirtyBudgetPerFrame limita quantos chunks sujos são reconstruídos por frame
// para o custo ficar diluído em vez de travar um frame só.
const dirtyBudgetPerFrame = 8

// autosaveInterval é o período entre persistências automáticas.
const autosaveInterval = 30 * time.Second

// worldSize é o lado do terreno procedural gerado em mundos novos (em voxels).
const worldSize int32 = 64

type App struct {
	Cfg       *config.Config
	Store     *mapdata.VoxelStore
	Index     *spatial.UniformGrid
	Engine    *physics.Engine
	Materials *mapdata.MaterialStore
	Cache     *meshing.ResultStore
	Mesher    *meshing.ChunkMesher
	Renderer  *render.Renderer
	Camera    *camera.Controller
	Sim       *sim.Sim

	// Estado de edição
	selected      util.GridCoord
	hasSelected   bool
	placePattern  geometry.Pattern
	placeRotation geometry.Rotation
	placeMaterial int32

	lastSave time.Time
}

// New monta a aplicação e carrega (ou gera) o mundo. A janela ainda não
// existe aqui; tudo que depende de GPU espera o Run.
func New(cfg *config.Config) (*App, error) {
	a := &App{
		Cfg:           cfg,
		Store:         mapdata.NewVoxelStore(),
		Index:         spatial.NewUniformGrid(util.VoxelScale),
		Materials:     mapdata.NewMaterialStore(),
		Cache:         meshing.NewResultStore(),
		placePattern:  geometry.PatternFull,
		placeMaterial: mapdata.MaterialStone,
		lastSave:      time.Now(),
	}
	a.Engine = physics.NewEngine(a.Index, cfg.StepHeight)
	a.Mesher = meshing.NewChunkMesher(cfg.MesherThreads, a.Cache, a.Materials)
	a.Sim = sim.New(a.Engine, cfg.Gravity, cfg.WorldSeed)
	a.Camera = camera.New(cfg.CameraSensitivity, cfg.ZoomSpeed)

	if err := a.Store.OpenInitialize(cfg.WorldName); err != nil {
		return nil, fmt.Errorf("falha ao abrir o mundo %q: %w", cfg.WorldName, err)
	}

	if a.Store.HasData() {
		records, err := a.Store.LoadAllRecords()
		if err != nil {
			return nil, fmt.Errorf("falha ao carregar o mundo: %w", err)
		}
		a.Store.LoadRecords(records)
	} else {
		log.Printf("[App] Mundo novo, gerando terreno (seed=%d)", cfg.WorldSeed)
		a.Store.LoadRecords(mapdata.GenerateTerrain(cfg.WorldSeed, worldSize, worldSize))
		a.Store.SaveAll()
	}

	return a, nil
}

// Run abre a janela e executa o loop principal até o fechamento.
func (a *App) Run() {
	rl.InitWindow(a.Cfg.WindowWidth, a.Cfg.WindowHeight, a.Cfg.WindowTitle)
	defer rl.CloseWindow()
	if a.Cfg.Fullscreen {
		rl.ToggleFullscreen()
	}
	rl.SetTargetFPS(a.Cfg.TargetFPS)

	a.Renderer = render.NewRenderer(a.Cfg.LODDistances[:], a.Cfg.LODHysteresis)
	defer a.Renderer.Unload()

	// Primeiro rebuild completo: todos os chunks carregados estão na fila
	// suja; os colisores precisam existir antes do primeiro tick de física.
	a.drainDirtyQueue()

	center := float32(worldSize) * util.VoxelScale * 0.5
	spawn := mgl32.Vec3{center, 20, center}
	a.Sim.SpawnPlayer(spawn, a.Cfg.PlayerRadius, a.Cfg.PlayerHalfHeight, a.Cfg.MoveSpeed)
	a.Sim.SpawnNPCs(a.Cfg.NPCCount, spawn, a.Cfg.PlayerRadius, a.Cfg.PlayerHalfHeight)
	a.Camera.SnapTo(rl.Vector3{X: spawn.X(), Y: spawn.Y(), Z: spawn.Z()})

	for !rl.WindowShouldClose() {
		dt := rl.GetFrameTime()

		a.handleInput(dt)
		a.Camera.Update(dt)
		a.Sim.TickNPCs(dt)

		a.processDirty(dirtyBudgetPerFrame)
		a.processMesherResults()

		p := a.Sim.PlayerPosition()
		a.Camera.Follow(rl.Vector3{X: p.X(), Y: p.Y() + a.Cfg.PlayerHalfHeight*2, Z: p.Z()})

		if time.Since(a.lastSave) > autosaveInterval {
			a.Store.SaveAll()
			a.lastSave = time.Now()
		}

		a.draw()
	}

	a.shutdown()
}

func (a *App) shutdown() {
	log.Printf("[App] Encerrando...")
	a.Mesher.Stop()
	a.Store.SaveAll()
	a.Store.Close()
}

// handleInput processa movimento do jogador e edição de voxels.
func (a *App) handleInput(dt float32) {
	a.Camera.HandleInput()

	forward, right := a.Camera.MoveAxes()
	move := mgl32.Vec3{}
	if rl.IsKeyDown(rl.KeyW) {
		move = move.Add(forward)
	}
	if rl.IsKeyDown(rl.KeyS) {
		move = move.Sub(forward)
	}
	if rl.IsKeyDown(rl.KeyD) {
		move = move.Add(right)
	}
	if rl.IsKeyDown(rl.KeyA) {
		move = move.Sub(right)
	}
	a.Sim.TickPlayer(dt, move, rl.IsKeyPressed(rl.KeySpace))

	// Seleção de voxel com o mouse
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		ray := rl.GetMouseRay(rl.GetMousePosition(), a.Camera.RLCamera)
		if coord, ok := a.Renderer.GetRayCollision(ray); ok {
			a.selected = coord
			a.hasSelected = true
		} else {
			a.hasSelected = false
		}
	}

	// Escolha de padrão e rotação para construção
	switch {
	case rl.IsKeyPressed(rl.KeyOne):
		a.placePattern = geometry.PatternFull
	case rl.IsKeyPressed(rl.KeyTwo):
		a.placePattern = geometry.PatternPlatform
	case rl.IsKeyPressed(rl.KeyThree):
		a.placePattern = geometry.PatternStaircase
	case rl.IsKeyPressed(rl.KeyFour):
		a.placePattern = geometry.PatternPillar
	case rl.IsKeyPressed(rl.KeyFive):
		a.placePattern = geometry.PatternSlab
	case rl.IsKeyPressed(rl.KeySix):
		a.placePattern = geometry.PatternWall
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.placeRotation = (a.placeRotation + 90).Normalize()
	}
	if rl.IsKeyPressed(rl.KeyC) {
		a.placeMaterial++
		if a.placeMaterial > mapdata.MaterialSand {
			a.placeMaterial = mapdata.MaterialGrass
		}
	}

	if a.hasSelected {
		if rl.IsKeyPressed(rl.KeyB) {
			a.Store.SetVoxel(mapdata.Voxel{
				Pos:      a.selected.AddDir(util.DirUp),
				Pattern:  a.placePattern,
				Rotation: a.placeRotation,
				Material: a.placeMaterial,
			})
		}
		if rl.IsKeyPressed(rl.KeyX) {
			a.Store.RemoveVoxel(a.selected)
			a.hasSelected = false
		}
	}
}

// processDirty reconstrói até budget chunks sujos: colisores primeiro (efeito
// imediato na física), depois o snapshot vai para os workers de meshing.
func (a *App) processDirty(budget int) {
	for i := 0; i < budget; i++ {
		origin, _, ok := a.Store.Dirty.Dequeue()
		if !ok {
			return
		}
		a.rebuildChunk(origin)
	}
}

// drainDirtyQueue processa a fila suja inteira de uma vez (usado no load).
func (a *App) drainDirtyQueue() {
	start := time.Now()
	colliders := 0
	chunks := 0
	for {
		origin, _, ok := a.Store.Dirty.Dequeue()
		if !ok {
			break
		}
		colliders += a.rebuildChunk(origin)
		chunks++
	}
	log.Printf("[App] Rebuild inicial: %d chunks, %d colisores em %v", chunks, colliders, time.Since(start))
}

// rebuildChunk sincroniza colisores e agenda o meshing de um chunk.
// Retorna o número de colisores inseridos.
func (a *App) rebuildChunk(origin util.GridCoord) int {
	count := a.Store.RebuildColliders(a.Index, origin)

	snap := a.Store.Snapshot(origin)
	var mtime int64
	if c, ok := a.Store.GetChunk(origin); ok {
		mtime = c.MTime
	}
	if !a.Mesher.Enqueue(meshing.Request{Origin: origin, Snap: snap, MTime: mtime}) {
		// Fila cheia ou duplicado: se foi fila cheia, tenta de novo depois
		a.Store.Dirty.Enqueue(origin, mtime)
	}
	return count
}

// processMesherResults drena o canal de resultados sem bloquear e sobe para a
// GPU só os que ainda batem com a versão atual do chunk.
func (a *App) processMesherResults() {
	for {
		select {
		case res := <-a.Mesher.Results():
			if c, ok := a.Store.GetChunk(res.Origin); ok && c.MTime != res.MTime {
				// Resultado obsoleto: uma edição chegou depois do snapshot
				continue
			}
			center := util.GridToWorld(res.Origin)
			half := float32(util.ChunkSize) * util.VoxelScale * 0.5
			center.X += half
			center.Y += half
			center.Z += half
			a.Renderer.UploadResult(res, center)
		default:
			return
		}
	}
}

func (a *App) draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.SkyBlue)

	rl.BeginMode3D(a.Camera.RLCamera)
	a.Renderer.Draw(a.Camera.RLCamera)

	// Jogador e NPCs como cápsulas simples
	p := a.Sim.PlayerPosition()
	drawAgent(p, a.Cfg.PlayerRadius, a.Cfg.PlayerHalfHeight, rl.Red)
	for _, npc := range a.Sim.NPCPositions() {
		drawAgent(npc, a.Cfg.PlayerRadius, a.Cfg.PlayerHalfHeight, rl.Orange)
	}

	if a.hasSelected {
		a.Renderer.DrawSelection(a.selected)
	}
	rl.EndMode3D()

	if a.Cfg.ShowDebugInfo {
		a.drawDebugOverlay()
	}
	rl.EndDrawing()
}

func drawAgent(feet mgl32.Vec3, radius, halfHeight float32, color rl.Color) {
	base := rl.Vector3{X: feet.X(), Y: feet.Y(), Z: feet.Z()}
	top := rl.Vector3{X: feet.X(), Y: feet.Y() + halfHeight*2, Z: feet.Z()}
	rl.DrawCapsule(base, top, radius, 8, 4, color)
}

func (a *App) drawDebugOverlay() {
	rl.DrawFPS(10, 10)
	p := a.Sim.PlayerPosition()
	rl.DrawText(fmt.Sprintf("Pos: (%.1f, %.1f, %.1f)", p.X(), p.Y(), p.Z()), 10, 34, 18, rl.Black)
	rl.DrawText(fmt.Sprintf("Chunks: %d | Modelos: %d | Tris: %d",
		a.Store.ChunkCount(), a.Renderer.DrawnModels, a.Renderer.DrawnTriangles), 10, 54, 18, rl.Black)
	rl.DrawText(fmt.Sprintf("Fila suja: %d | Colliders: %d",
		a.Store.Dirty.Len(), a.Index.Len()), 10, 74, 18, rl.Black)
	rl.DrawText(fmt.Sprintf("Construir: %s rot=%d [1-6 padrão, R gira, B constrói, X remove]",
		a.placePattern.String(), a.placeRotation), 10, 94, 18, rl.Black)
}
