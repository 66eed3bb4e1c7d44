// Package physics resolve colisões entre agentes cilíndricos e os colliders
// de sub-voxel registrados no índice espacial. Toda a resolução acontece na
// thread de simulação; o índice nunca é modificado aqui.
package physics

import (
	"github.com/go-gl/mathgl/mgl32"

	rl "github.com/gen2brain/raylib-go/raylib"

	"VoxelScape/shared/spatial"
)

// Epsilon é a tolerância usada nas comparações de altura (piso e degrau).
const Epsilon float32 = 0.01

// DefaultProbeDepth é a profundidade padrão de busca de chão abaixo dos pés
// de um agente apoiado.
const DefaultProbeDepth float32 = 0.1

// Engine consulta o índice espacial para resolver movimento de cilindros
// verticais (eixo Y) contra as caixas de sub-voxel.
type Engine struct {
	Index      *spatial.UniformGrid
	StepHeight float32 // Altura máxima que um agente sobe sem pular
}

// NewEngine cria o resolvedor de colisão sobre um índice existente.
func NewEngine(index *spatial.UniformGrid, stepHeight float32) *Engine {
	return &Engine{Index: index, StepHeight: stepHeight}
}

// CollisionResult descreve o desfecho de um teste de colisão.
type CollisionResult struct {
	HasCollision bool
	CanStepUp    bool    // Todas as caixas em conflito cabem em um degrau
	StepUpHeight float32 // Quanto subir para vencer o degrau mais alto
}

// CheckCollision testa o cilindro (pés em pos, raio e altura dados) contra os
// colliders próximos. floorY é o nível de chão atual do agente: caixas com
// topo até floorY (mais tolerância) são piso caminhável, não colisão.
func (e *Engine) CheckCollision(pos mgl32.Vec3, radius, height, floorY float32) CollisionResult {
	res := CollisionResult{}

	handles := e.Index.QueryAABB(
		rl.Vector3{X: pos.X() - radius, Y: pos.Y(), Z: pos.Z() - radius},
		rl.Vector3{X: pos.X() + radius, Y: pos.Y() + height, Z: pos.Z() + radius},
	)

	stepOK := true
	maxTop := floorY
	for _, h := range handles {
		box, ok := e.Index.Bounds(h)
		if !ok {
			continue
		}

		// Piso caminhável: topo no nível do chão ou abaixo
		if box.Max.Y <= floorY+Epsilon {
			continue
		}

		// Sem sobreposição vertical com o corpo
		if box.Min.Y >= pos.Y()+height || box.Max.Y <= pos.Y() {
			continue
		}

		if !circleOverlapsRect(pos.X(), pos.Z(), radius, box.Min.X, box.Min.Z, box.Max.X, box.Max.Z) {
			continue
		}

		res.HasCollision = true
		if box.Max.Y-floorY > e.StepHeight+Epsilon {
			stepOK = false
		}
		if box.Max.Y > maxTop {
			maxTop = box.Max.Y
		}
	}

	if res.HasCollision && stepOK {
		res.CanStepUp = true
		res.StepUpHeight = maxTop - floorY
	}
	return res
}

// circleOverlapsRect testa círculo contra retângulo no plano XZ, pelo ponto
// do retângulo mais próximo do centro.
func circleOverlapsRect(cx, cz, r, minX, minZ, maxX, maxZ float32) bool {
	nx := clampF(cx, minX, maxX)
	nz := clampF(cz, minZ, maxZ)
	dx := cx - nx
	dz := cz - nz
	return dx*dx+dz*dz < r*r
}

func clampF(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// MoveHorizontal aplica um deslocamento no plano XZ com resolução separada
// por eixo: um movimento diagonal bloqueado em X ainda desliza em Z (e
// vice-versa). Degraus dentro de StepHeight são subidos automaticamente.
func (e *Engine) MoveHorizontal(pos mgl32.Vec3, delta mgl32.Vec3, radius, height float32) mgl32.Vec3 {
	floorY := pos.Y()

	for _, step := range [2]mgl32.Vec3{
		{delta.X(), 0, 0},
		{0, 0, delta.Z()},
	} {
		if step.X() == 0 && step.Z() == 0 {
			continue
		}

		next := pos.Add(step)
		res := e.CheckCollision(next, radius, height, floorY)
		switch {
		case !res.HasCollision:
			pos = next
		case res.CanStepUp:
			pos = mgl32.Vec3{next.X(), floorY + res.StepUpHeight, next.Z()}
			floorY = pos.Y()
		default:
			// Eixo bloqueado: descarta só esta componente (deslize)
		}
	}
	return pos
}

// GroundProbe procura o chão até depth abaixo dos pés do agente.
// Retorna a altura do topo do collider mais alto encontrado e se algum foi
// encontrado. Um corpo em queda passa a profundidade percorrida no frame para
// não atravessar o chão.
func (e *Engine) GroundProbe(pos mgl32.Vec3, radius, depth float32) (float32, bool) {
	handles := e.Index.QueryAABB(
		rl.Vector3{X: pos.X() - radius, Y: pos.Y() - depth, Z: pos.Z() - radius},
		rl.Vector3{X: pos.X() + radius, Y: pos.Y() + Epsilon, Z: pos.Z() + radius},
	)

	found := false
	var top float32
	for _, h := range handles {
		box, ok := e.Index.Bounds(h)
		if !ok {
			continue
		}
		if box.Max.Y > pos.Y()+Epsilon {
			continue
		}
		if !circleOverlapsRect(pos.X(), pos.Z(), radius, box.Min.X, box.Min.Z, box.Max.X, box.Max.Z) {
			continue
		}
		if !found || box.Max.Y > top {
			top = box.Max.Y
			found = true
		}
	}

	return top, found
}
