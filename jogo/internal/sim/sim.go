// Package sim move os agentes do mundo (jogador e NPCs) sobre o resolvedor de
// colisão. As entidades vivem em um ECS; a simulação inteira roda na thread
// principal, um tick por frame.
package sim

import (
	"log"
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"

	"VoxelScape/jogo/internal/physics"
)

// Position é a posição dos pés do agente no mundo.
type Position struct {
	Pos mgl32.Vec3
}

// Body é o cilindro de colisão e o estado vertical do agente.
type Body struct {
	Radius   float32
	Height   float32
	VelY     float32
	Grounded bool
}

// Player marca a entidade controlada pelo jogador.
type Player struct {
	Speed float32
}

// Wander dá a um NPC um passeio aleatório com troca periódica de direção.
type Wander struct {
	Dir   mgl32.Vec3
	Timer float32
	Speed float32
}

// JumpSpeed é a velocidade vertical inicial de um pulo.
const JumpSpeed float32 = 7.0

// Sim agrupa o mundo ECS e os sistemas de movimento.
type Sim struct {
	World   ecs.World
	Engine  *physics.Engine
	Gravity float32

	playerMap ecs.Map3[Position, Body, Player]
	npcMap    ecs.Map3[Position, Body, Wander]
	npcFilter *ecs.Filter3[Position, Body, Wander]

	player ecs.Entity
	rng    *rand.Rand
}

// New cria a simulação sobre um resolvedor de colisão existente.
func New(engine *physics.Engine, gravity float32, seed int64) *Sim {
	s := &Sim{
		World:   ecs.NewWorld(),
		Engine:  engine,
		Gravity: gravity,
		rng:     rand.New(rand.NewSource(seed)),
	}
	s.playerMap = ecs.NewMap3[Position, Body, Player](&s.World)
	s.npcMap = ecs.NewMap3[Position, Body, Wander](&s.World)
	s.npcFilter = ecs.NewFilter3[Position, Body, Wander](&s.World)
	return s
}

// SpawnPlayer cria a entidade do jogador na posição dada.
func (s *Sim) SpawnPlayer(pos mgl32.Vec3, radius, halfHeight, speed float32) {
	s.player = s.playerMap.NewEntity(
		&Position{Pos: pos},
		&Body{Radius: radius, Height: halfHeight * 2},
		&Player{Speed: speed},
	)
	log.Printf("[Sim] Jogador criado em (%.1f, %.1f, %.1f)", pos.X(), pos.Y(), pos.Z())
}

// SpawnNPCs cria n NPCs errantes espalhados em torno do centro.
func (s *Sim) SpawnNPCs(n int, center mgl32.Vec3, radius, halfHeight float32) {
	for i := 0; i < n; i++ {
		angle := s.rng.Float64() * 2 * math.Pi
		dist := 4.0 + s.rng.Float64()*12.0
		pos := mgl32.Vec3{
			center.X() + float32(math.Cos(angle)*dist),
			center.Y() + 8,
			center.Z() + float32(math.Sin(angle)*dist),
		}
		s.npcMap.NewEntity(
			&Position{Pos: pos},
			&Body{Radius: radius, Height: halfHeight * 2},
			&Wander{Speed: 1.5 + s.rng.Float32()},
		)
	}
	log.Printf("[Sim] %d NPCs criados", n)
}

// PlayerPosition retorna a posição atual dos pés do jogador.
func (s *Sim) PlayerPosition() mgl32.Vec3 {
	pos, _, _ := s.playerMap.Get(s.player)
	return pos.Pos
}

// PlayerGrounded informa se o jogador está apoiado no chão.
func (s *Sim) PlayerGrounded() bool {
	_, body, _ := s.playerMap.Get(s.player)
	return body.Grounded
}

// TickPlayer avança o jogador um frame. moveDir é a direção desejada no plano
// XZ (já relativa à câmera, não precisa estar normalizada).
func (s *Sim) TickPlayer(dt float32, moveDir mgl32.Vec3, jump bool) {
	pos, body, player := s.playerMap.Get(s.player)

	if jump && body.Grounded {
		body.VelY = JumpSpeed
		body.Grounded = false
	}

	if moveDir.Len() > 1e-6 {
		delta := moveDir.Normalize().Mul(player.Speed * dt)
		pos.Pos = s.Engine.MoveHorizontal(pos.Pos, delta, body.Radius, body.Height)
	}

	s.integrateVertical(&pos.Pos, body, dt)
}

// TickNPCs avança todos os NPCs errantes um frame.
func (s *Sim) TickNPCs(dt float32) {
	query := s.npcFilter.Query()
	for query.Next() {
		pos, body, wander := query.Get()

		wander.Timer -= dt
		if wander.Timer <= 0 {
			angle := s.rng.Float64() * 2 * math.Pi
			wander.Dir = mgl32.Vec3{float32(math.Cos(angle)), 0, float32(math.Sin(angle))}
			wander.Timer = 2.0 + s.rng.Float32()*4.0
		}

		if body.Grounded {
			delta := wander.Dir.Mul(wander.Speed * dt)
			pos.Pos = s.Engine.MoveHorizontal(pos.Pos, delta, body.Radius, body.Height)
		}

		s.integrateVertical(&pos.Pos, body, dt)
	}
}

// integrateVertical aplica gravidade e aterrissagem, compartilhado entre
// jogador e NPCs.
func (s *Sim) integrateVertical(pos *mgl32.Vec3, body *Body, dt float32) {
	if body.Grounded {
		// Ainda tem chão embaixo? Se não, começa a cair
		top, ok := s.Engine.GroundProbe(*pos, body.Radius, physics.DefaultProbeDepth)
		if ok && pos.Y()-top <= s.Engine.StepHeight {
			*pos = mgl32.Vec3{pos.X(), top, pos.Z()}
			body.VelY = 0
			return
		}
		body.Grounded = false
	}

	body.VelY += s.Gravity * dt
	newY := pos.Y() + body.VelY*dt

	if body.VelY <= 0 {
		// Busca apoio em toda a faixa percorrida neste frame
		depth := pos.Y() - newY + physics.Epsilon
		top, ok := s.Engine.GroundProbe(*pos, body.Radius, depth)
		if ok && top >= newY {
			*pos = mgl32.Vec3{pos.X(), top, pos.Z()}
			body.VelY = 0
			body.Grounded = true
			return
		}
	}

	*pos = mgl32.Vec3{pos.X(), newY, pos.Z()}
}

// NPCPositions coleta as posições dos NPCs para o desenho.
func (s *Sim) NPCPositions() []mgl32.Vec3 {
	var out []mgl32.Vec3
	query := s.npcFilter.Query()
	for query.Next() {
		pos, _, _ := query.Get()
		out = append(out, pos.Pos)
	}
	return out
}
