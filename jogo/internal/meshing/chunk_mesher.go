package meshing

import (
	"log"
	"sync"

	"VoxelScape/shared/mapdata"
	"VoxelScape/shared/util"
)

// ChunkMesher processa snapshots de chunk em goroutines de background e
// entrega a geometria pronta pelo canal de resultados. A thread principal
// nunca bloqueia esperando meshing.
type ChunkMesher struct {
	requests chan Request
	results  chan Result
	stop     chan struct{}
	wg       sync.WaitGroup

	// pending rastreia o MTime mais novo já enfileirado por chunk, para
	// descartar pedidos duplicados e trabalho obsoleto.
	pendingMu sync.Mutex
	pending   map[util.GridCoord]int64

	cache    *ResultStore
	matStore *mapdata.MaterialStore
}

// NewChunkMesher cria o pool e inicia os workers.
func NewChunkMesher(threads int, cache *ResultStore, matStore *mapdata.MaterialStore) *ChunkMesher {
	if threads < 1 {
		threads = 1
	}
	m := &ChunkMesher{
		requests: make(chan Request, 256),
		results:  make(chan Result, 256),
		stop:     make(chan struct{}),
		pending:  make(map[util.GridCoord]int64),
		cache:    cache,
		matStore: matStore,
	}

	for i := 0; i < threads; i++ {
		m.wg.Add(1)
		go m.worker(i)
	}

	log.Printf("[Mesher] Pool iniciado com %d workers", threads)
	return m
}

// Enqueue agenda o meshing de um chunk. Retorna false se o pedido foi
// descartado (duplicado, obsoleto ou fila cheia).
func (m *ChunkMesher) Enqueue(req Request) bool {
	// Cache hit: a versão pedida já foi processada antes
	if m.cache != nil {
		if res, ok := m.cache.Get(req.Origin, req.MTime); ok {
			select {
			case m.results <- res:
				return true
			default:
				return false
			}
		}
	}

	m.pendingMu.Lock()
	if prev, ok := m.pending[req.Origin]; ok && prev >= req.MTime {
		m.pendingMu.Unlock()
		return false
	}
	m.pending[req.Origin] = req.MTime
	m.pendingMu.Unlock()

	select {
	case m.requests <- req:
		return true
	default:
		// Fila cheia: desiste e deixa o chamador re-agendar no próximo frame
		m.pendingMu.Lock()
		if m.pending[req.Origin] == req.MTime {
			delete(m.pending, req.Origin)
		}
		m.pendingMu.Unlock()
		return false
	}
}

// Results retorna o canal de resultados prontos.
func (m *ChunkMesher) Results() <-chan Result {
	return m.results
}

// Stop encerra os workers e espera todos terminarem.
func (m *ChunkMesher) Stop() {
	close(m.stop)
	m.wg.Wait()
	log.Printf("[Mesher] Pool encerrado")
}

func (m *ChunkMesher) worker(id int) {
	defer m.wg.Done()

	for {
		select {
		case <-m.stop:
			return
		case req := <-m.requests:
			// Pedido obsoleto: uma versão mais nova já entrou na fila
			m.pendingMu.Lock()
			newest := m.pending[req.Origin]
			m.pendingMu.Unlock()
			if newest > req.MTime {
				continue
			}

			res := Generate(req, m.matStore)

			if m.cache != nil {
				m.cache.Store(res)
			}

			m.pendingMu.Lock()
			if m.pending[req.Origin] == req.MTime {
				delete(m.pending, req.Origin)
			}
			m.pendingMu.Unlock()

			select {
			case m.results <- res:
			case <-m.stop:
				return
			}
		}
	}
}

// Generate constrói a geometria de todos os LODs de um chunk de forma pura:
// só lê o snapshot e a paleta imutável, então é seguro em qualquer worker.
// Um chunk vazio produz um resultado vazio válido, nunca um erro.
func Generate(req Request, matStore *mapdata.MaterialStore) Result {
	res := Result{Origin: req.Origin, MTime: req.MTime}
	if req.Snap == nil || req.Snap.Count == 0 {
		return res
	}

	for lod := 0; lod < NumLODs; lod++ {
		grid := buildOccupancy(req.Snap, lod)

		buf := GetMeshBuffer()
		greedyMesh(grid, req.Snap, matStore, buf)
		res.LODs[lod] = buf.Geometry.Clone()
		PutMeshBuffer(buf)
	}
	return res
}
