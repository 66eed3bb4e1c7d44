package mapdata

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"VoxelScape/shared/util"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ChunkModel representa o esquema do banco de dados para um chunk.
type ChunkModel struct {
	ID        string    `gorm:"primaryKey"` // Origem formatada "X_Y_Z"
	X, Y, Z   int32     `gorm:"index:idx_pos"`
	Data      []byte    // Registros de voxel serializados em GOB
	MTime     int64     // Versão do chunk no momento do save
	UpdatedAt time.Time // Para controle interno do GORM
}

// WorldMetadata armazena informações globais do mundo no banco.
type WorldMetadata struct {
	Key   string `gorm:"primaryKey"`
	Value string
}

const CurrentFormatVersion = 1

// OpenInitialize abre (ou cria) o banco de dados SQLite para o mundo e roda migrações.
func (s *VoxelStore) OpenInitialize(worldName string) error {
	if err := os.MkdirAll("saves", 0755); err != nil {
		return err
	}

	dbPath := filepath.Join("saves", fmt.Sprintf("%s.vxs", worldName))

	// Logger silencioso em produção
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return fmt.Errorf("falha ao conectar no SQLite: %w", err)
	}

	if err := db.AutoMigrate(&ChunkModel{}, &WorldMetadata{}); err != nil {
		return fmt.Errorf("falha na migração do banco: %w", err)
	}

	s.DB = db

	db.Save(&WorldMetadata{Key: "FormatVersion", Value: fmt.Sprint(CurrentFormatVersion)})
	db.Save(&WorldMetadata{Key: "WorldName", Value: worldName})

	log.Printf("[Persistence] Banco de dados SQLite aberto: %s", dbPath)
	return nil
}

// records coleta os registros de voxel de um chunk em uma lista ordenada.
func (c *Chunk) records() []Voxel {
	out := make([]Voxel, 0, c.Count)
	for lx := 0; lx < util.ChunkSize; lx++ {
		for ly := 0; ly < util.ChunkSize; ly++ {
			for lz := 0; lz < util.ChunkSize; lz++ {
				if v := c.Voxels[lx][ly][lz]; v != nil {
					out = append(out, *v)
				}
			}
		}
	}
	return out
}

// SaveChunk salva um único chunk no banco de dados SQLite.
func (s *VoxelStore) SaveChunk(chunk *Chunk) error {
	if s.DB == nil {
		return fmt.Errorf("banco de dados não inicializado")
	}

	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	if err := enc.Encode(chunk.records()); err != nil {
		log.Printf("[Persistence] ERRO Crítico GOB: %v", err)
		return err
	}

	id := fmt.Sprintf("%d_%d_%d", chunk.Origin.X, chunk.Origin.Y, chunk.Origin.Z)
	model := ChunkModel{
		ID:    id,
		X:     chunk.Origin.X,
		Y:     chunk.Origin.Y,
		Z:     chunk.Origin.Z,
		Data:  buf.Bytes(),
		MTime: chunk.MTime,
	}

	// Upsert (Cria ou Atualiza)
	err := s.DB.Save(&model).Error
	if err != nil {
		log.Printf("[Persistence] ERRO ao salvar chunk %s: %v", id, err)
	} else {
		chunk.IsDirty = false
	}
	return err
}

// SaveAll persiste todos os chunks sujos. O lock é liberado durante o IO para
// não travar o jogo.
func (s *VoxelStore) SaveAll() error {
	if s.DB == nil {
		return nil
	}

	s.Mu.RLock()
	var dirtyChunks []*Chunk
	for _, chunk := range s.Chunks {
		if chunk.IsDirty {
			dirtyChunks = append(dirtyChunks, chunk)
		}
	}
	s.Mu.RUnlock()

	if len(dirtyChunks) == 0 {
		return nil
	}

	log.Printf("[Persistence] Salvando %d chunks sujos no SQLite...", len(dirtyChunks))
	count := 0
	for _, chunk := range dirtyChunks {
		s.dbMu.Lock()
		err := s.SaveChunk(chunk)
		s.dbMu.Unlock()
		if err == nil {
			count++
		}
	}
	log.Printf("[Persistence] Salvamento concluído: %d chunks persistidos.", count)
	return nil
}

// HasData verifica se o banco já possui algum chunk salvo para o mundo atual.
func (s *VoxelStore) HasData() bool {
	if s.DB == nil {
		return false
	}
	var count int64
	s.DB.Model(&ChunkModel{}).Count(&count)
	return count > 0
}

// LoadAllRecords carrega todos os registros de voxel persistidos, na ordem dos
// chunks. O resultado é a lista validada que alimenta o core via LoadRecords.
func (s *VoxelStore) LoadAllRecords() ([]Voxel, error) {
	if s.DB == nil {
		return nil, fmt.Errorf("banco de dados não inicializado")
	}

	var models []ChunkModel
	if err := s.DB.Find(&models).Error; err != nil {
		return nil, err
	}

	var all []Voxel
	for _, model := range models {
		var records []Voxel
		dec := gob.NewDecoder(bytes.NewReader(model.Data))
		if err := dec.Decode(&records); err != nil {
			log.Printf("[Persistence] Chunk %s ilegível, ignorando: %v", model.ID, err)
			continue
		}
		all = append(all, records...)
	}

	log.Printf("[Persistence] %d registros carregados de %d chunks", len(all), len(models))
	return all, nil
}
