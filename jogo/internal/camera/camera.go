package camera

import (
	"math"

	"VoxelScape/shared/util"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

// Controller é uma câmera orbital em terceira pessoa: segue o jogador com
// suavização e orbita em torno dele com o mouse.
type Controller struct {
	RLCamera rl.Camera3D

	MinZoom     float32
	MaxZoom     float32
	RotateSpeed float32
	ZoomSpeed   float32

	// Fator de amortecimento do follow (menor = mais suave)
	SmoothFactor float32

	// Alvo sendo seguido e estado interpolado
	TargetLookAt  rl.Vector3
	CurrentLookAt rl.Vector3

	TargetZoom  float32
	CurrentZoom float32

	AngleY float32 // Azimute (radianos)
	AngleX float32 // Elevação (radianos, negativa = olhando de cima)
}

// New cria o controlador com os parâmetros de sensibilidade configurados.
func New(sensitivity, zoomSpeed float32) *Controller {
	c := &Controller{
		MinZoom:      3.0,
		MaxZoom:      60.0,
		RotateSpeed:  sensitivity,
		ZoomSpeed:    zoomSpeed,
		SmoothFactor: 0.15,

		TargetZoom: 12.0,
		AngleY:     45.0 * rl.Deg2rad,
		AngleX:     -30.0 * rl.Deg2rad,
	}
	c.CurrentZoom = c.TargetZoom

	c.RLCamera = rl.Camera3D{
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       45.0,
		Projection: rl.CameraPerspective,
	}
	c.recompute()
	return c
}

// SnapTo posiciona a câmera no alvo imediatamente, sem suavização.
func (c *Controller) SnapTo(pos rl.Vector3) {
	c.TargetLookAt = pos
	c.CurrentLookAt = pos
	c.recompute()
}

// Follow atualiza o ponto que a câmera persegue (tipicamente a cabeça do
// jogador). A posição real converge no Update.
func (c *Controller) Follow(pos rl.Vector3) {
	c.TargetLookAt = pos
}

// Update interpola o follow e o zoom, e recalcula a posição orbital.
func (c *Controller) Update(dt float32) {
	factor := c.SmoothFactor * 60.0 * dt
	if factor > 1.0 {
		factor = 1.0
	}

	c.CurrentLookAt.X = util.Lerp(c.CurrentLookAt.X, c.TargetLookAt.X, factor)
	c.CurrentLookAt.Y = util.Lerp(c.CurrentLookAt.Y, c.TargetLookAt.Y, factor)
	c.CurrentLookAt.Z = util.Lerp(c.CurrentLookAt.Z, c.TargetLookAt.Z, factor)
	c.CurrentZoom = util.Lerp(c.CurrentZoom, c.TargetZoom, factor)

	c.recompute()
}

// recompute converte os ângulos esféricos e o zoom na posição da câmera.
func (c *Controller) recompute() {
	cosX := float32(math.Cos(float64(c.AngleX)))
	sinX := float32(math.Sin(float64(c.AngleX)))
	cosY := float32(math.Cos(float64(c.AngleY)))
	sinY := float32(math.Sin(float64(c.AngleY)))

	dist := c.CurrentZoom
	c.RLCamera.Position = rl.Vector3{
		X: c.CurrentLookAt.X + dist*cosX*sinY,
		Y: c.CurrentLookAt.Y + dist*-sinX,
		Z: c.CurrentLookAt.Z + dist*cosX*cosY,
	}
	c.RLCamera.Target = c.CurrentLookAt
}

// HandleInput processa zoom (scroll) e órbita (botão direito do mouse).
func (c *Controller) HandleInput() {
	wheel := rl.GetMouseWheelMove()
	if wheel != 0 {
		c.TargetZoom -= wheel * c.ZoomSpeed
		if c.TargetZoom < c.MinZoom {
			c.TargetZoom = c.MinZoom
		}
		if c.TargetZoom > c.MaxZoom {
			c.TargetZoom = c.MaxZoom
		}
	}

	if rl.IsMouseButtonDown(rl.MouseRightButton) {
		delta := rl.GetMouseDelta()
		c.AngleY -= delta.X * c.RotateSpeed * 0.01
		c.AngleX -= delta.Y * c.RotateSpeed * 0.01

		// Elevação entre quase horizonte e quase topo
		maxElev := float32(-5.0 * rl.Deg2rad)
		minElev := float32(-85.0 * rl.Deg2rad)
		if c.AngleX > maxElev {
			c.AngleX = maxElev
		}
		if c.AngleX < minElev {
			c.AngleX = minElev
		}
	}
}

// MoveAxes retorna os vetores forward e right da câmera projetados no plano
// XZ, para o movimento do jogador ser relativo à vista.
func (c *Controller) MoveAxes() (mgl32.Vec3, mgl32.Vec3) {
	forward := mgl32.Vec3{
		c.RLCamera.Target.X - c.RLCamera.Position.X,
		0,
		c.RLCamera.Target.Z - c.RLCamera.Position.Z,
	}
	if forward.Len() < 1e-6 {
		forward = mgl32.Vec3{0, 0, -1}
	} else {
		forward = forward.Normalize()
	}
	right := forward.Cross(mgl32.Vec3{0, 1, 0}).Normalize()
	return forward, right
}
