package render

import "testing"

var thresholds = []float32{40, 80, 160}

func TestSelectLODPorDistancia(t *testing.T) {
	tests := []struct {
		dist float32
		want int
	}{
		{10, 0},
		{30, 0},
		{50, 1},
		{100, 2},
		{200, 3},
		{1000, 3},
	}
	for _, tt := range tests {
		// Partindo de qualquer nível, distâncias bem longe das bandas
		// convergem para o mesmo LOD
		for current := 0; current <= 3; current++ {
			if got := SelectLOD(tt.dist, current, thresholds, 0.1); got != tt.want {
				t.Errorf("SelectLOD(%.0f, atual=%d) = %d, esperado %d", tt.dist, current, got, tt.want)
			}
		}
	}
}

func TestHistereseSeguraTrocas(t *testing.T) {
	// Oscilar em torno do limiar de 40 dentro da banda de 10% não troca o LOD
	if got := SelectLOD(42, 0, thresholds, 0.1); got != 0 {
		t.Errorf("42 a partir do LOD 0 trocou para %d dentro da banda", got)
	}
	if got := SelectLOD(38, 1, thresholds, 0.1); got != 1 {
		t.Errorf("38 a partir do LOD 1 trocou para %d dentro da banda", got)
	}

	// Fora da banda a troca acontece
	if got := SelectLOD(45, 0, thresholds, 0.1); got != 1 {
		t.Errorf("45 a partir do LOD 0 = %d, esperado 1", got)
	}
	if got := SelectLOD(35, 1, thresholds, 0.1); got != 0 {
		t.Errorf("35 a partir do LOD 1 = %d, esperado 0", got)
	}
}

func TestSelectLODNuncaPula(t *testing.T) {
	// Atravessar duas bandas de uma vez ainda produz um nível válido
	got := SelectLOD(500, 0, thresholds, 0.1)
	if got != 3 {
		t.Errorf("SelectLOD(500) = %d, esperado 3", got)
	}
	got = SelectLOD(1, 3, thresholds, 0.1)
	if got != 0 {
		t.Errorf("SelectLOD(1) = %d, esperado 0", got)
	}
}

func TestSelectLODEstadoInvalido(t *testing.T) {
	// Estado corrente fora do intervalo é corrigido em vez de estourar
	if got := SelectLOD(10, -2, thresholds, 0.1); got != 0 {
		t.Errorf("estado -2 = %d, esperado 0", got)
	}
	if got := SelectLOD(10, 9, thresholds, 0.1); got != 0 {
		t.Errorf("estado 9 com distância 10 = %d, esperado 0", got)
	}
}
