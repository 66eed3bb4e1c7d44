package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config armazena as configurações do VoxelScape.
type Config struct {
	// Janela
	WindowWidth  int32  `json:"window_width"`
	WindowHeight int32  `json:"window_height"`
	WindowTitle  string `json:"window_title"`
	Fullscreen   bool   `json:"fullscreen"`
	TargetFPS    int32  `json:"target_fps"`

	// Mundo
	WorldName string `json:"world_name"`
	WorldSeed int64  `json:"world_seed"`

	// Meshing e LOD
	MesherThreads int        `json:"mesher_threads"`
	LODDistances  [3]float32 `json:"lod_distances"`  // Limiares de troca LOD0->1->2->3
	LODHysteresis float32    `json:"lod_hysteresis"` // Banda morta relativa (0.1 = 10%)

	// Física
	StepHeight       float32 `json:"step_height"`       // Altura máxima de degrau automático
	PlayerRadius     float32 `json:"player_radius"`     // Raio do cilindro do jogador
	PlayerHalfHeight float32 `json:"player_half_height"`
	Gravity          float32 `json:"gravity"`
	MoveSpeed        float32 `json:"move_speed"`

	// Simulação
	NPCCount int `json:"npc_count"`

	// Câmera
	CameraSpeed       float32 `json:"camera_speed"`
	CameraSensitivity float32 `json:"camera_sensitivity"`
	ZoomSpeed         float32 `json:"zoom_speed"`

	// Debug
	ShowDebugInfo bool `json:"show_debug_info"`
	ShowColliders bool `json:"show_colliders"`
	WireframeMode bool `json:"wireframe_mode"`
}

// DefaultConfig retorna a configuração padrão.
func DefaultConfig() *Config {
	return &Config{
		WindowWidth:  1280,
		WindowHeight: 720,
		WindowTitle:  "VoxelScape",
		Fullscreen:   false,
		TargetFPS:    60,

		WorldName: "mundo",
		WorldSeed: 1337,

		MesherThreads: 4,
		LODDistances:  [3]float32{40.0, 80.0, 160.0},
		LODHysteresis: 0.1,

		StepHeight:       0.3,
		PlayerRadius:     0.3,
		PlayerHalfHeight: 0.9,
		Gravity:          -22.0,
		MoveSpeed:        5.0,

		NPCCount: 6,

		CameraSpeed:       10.0,
		CameraSensitivity: 0.3,
		ZoomSpeed:         5.0,

		ShowDebugInfo: true,
		ShowColliders: false,
		WireframeMode: false,
	}
}

// configPath retorna o caminho do arquivo de configuração.
func configPath() string {
	execDir, err := os.Executable()
	if err != nil {
		return "config.json"
	}
	return filepath.Join(filepath.Dir(execDir), "config.json")
}

// Load carrega as configurações de um arquivo JSON.
// Se o arquivo não existir, retorna as configurações padrão.
func Load() *Config {
	cfg := DefaultConfig()

	data, err := os.ReadFile(configPath())
	if err != nil {
		return cfg
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return DefaultConfig()
	}

	return cfg
}

// Save salva as configurações em um arquivo JSON.
func (c *Config) Save() error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(configPath(), data, 0644)
}
