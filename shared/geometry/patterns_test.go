package geometry

import "testing"

func TestCountPerPattern(t *testing.T) {
	tests := []struct {
		pattern Pattern
		want    int
	}{
		{PatternFull, 512},
		{PatternPlatform, 64},
		{PatternStaircase, 288},
		{PatternPillar, 128},
		{PatternSlab, 256},
		{PatternWall, 128},
	}

	for _, tt := range tests {
		got := Count(tt.pattern, 0)
		if got != tt.want {
			t.Errorf("Count(%s, 0) = %d, esperado %d", tt.pattern, got, tt.want)
		}
	}
}

func TestCountIndependeDeRotacao(t *testing.T) {
	patterns := []Pattern{PatternFull, PatternPlatform, PatternStaircase, PatternPillar, PatternSlab, PatternWall}
	rotations := []Rotation{0, 90, 180, 270}

	for _, p := range patterns {
		base := Count(p, 0)
		for _, r := range rotations {
			if got := Count(p, r); got != base {
				t.Errorf("Count(%s, %d) = %d, esperado %d (rotação não deve mudar a contagem)", p, r, got, base)
			}
		}
	}
}

func TestOccupiedForaDosLimites(t *testing.T) {
	coords := [][3]int{
		{-1, 0, 0}, {0, -1, 0}, {0, 0, -1},
		{8, 0, 0}, {0, 8, 0}, {0, 0, 8},
	}
	for _, c := range coords {
		if Occupied(PatternFull, 0, c[0], c[1], c[2]) {
			t.Errorf("Occupied(Full, 0, %v) = true, esperado false fora de [0,8)", c)
		}
	}
}

func TestStaircaseRotacionada(t *testing.T) {
	// A escada canônica ocupa y <= x. Cada rotação de 90 graus leva a uma
	// condição conhecida no espaço rotacionado.
	for sx := 0; sx < SubDiv; sx++ {
		for sy := 0; sy < SubDiv; sy++ {
			for sz := 0; sz < SubDiv; sz++ {
				cases := []struct {
					rot  Rotation
					want bool
				}{
					{0, sy <= sx},
					{90, sy <= sz},
					{180, sy <= SubDiv-1-sx},
					{270, sy <= SubDiv-1-sz},
				}
				for _, c := range cases {
					if got := Occupied(PatternStaircase, c.rot, sx, sy, sz); got != c.want {
						t.Fatalf("Occupied(Staircase, %d, %d,%d,%d) = %v, esperado %v",
							c.rot, sx, sy, sz, got, c.want)
					}
				}
			}
		}
	}
}

func TestWallRotacionada90(t *testing.T) {
	// A parede canônica ocupa z em [3,5); com 90 graus ela vira x em [3,5).
	for sx := 0; sx < SubDiv; sx++ {
		for sz := 0; sz < SubDiv; sz++ {
			want := sx == 3 || sx == 4
			if got := Occupied(PatternWall, 90, sx, 0, sz); got != want {
				t.Errorf("Occupied(Wall, 90, %d,0,%d) = %v, esperado %v", sx, sz, got, want)
			}
		}
	}
}

func TestRotacaoNegativaEMaiorQue360(t *testing.T) {
	// Rotações equivalentes módulo 360 produzem a mesma ocupação.
	for sx := 0; sx < SubDiv; sx++ {
		for sy := 0; sy < SubDiv; sy++ {
			for sz := 0; sz < SubDiv; sz++ {
				a := Occupied(PatternStaircase, 90, sx, sy, sz)
				b := Occupied(PatternStaircase, 450, sx, sy, sz)
				c := Occupied(PatternStaircase, -270, sx, sy, sz)
				if a != b || a != c {
					t.Fatalf("rotações 90/450/-270 divergem em (%d,%d,%d): %v %v %v", sx, sy, sz, a, b, c)
				}
			}
		}
	}
}

func TestPadraoInvalidoDegradaParaFull(t *testing.T) {
	// Padrão desconhecido ou rotação não-múltipla de 90 viram um cubo sólido.
	if !Occupied(Pattern(99), 0, 0, 0, 0) {
		t.Errorf("padrão inválido deveria ocupar como Full")
	}
	if !Occupied(PatternPlatform, 45, 0, 7, 0) {
		t.Errorf("rotação inválida deveria degradar para Full (sub-voxel do topo ocupado)")
	}
	if got := Count(Pattern(-3), 30); got != 512 {
		t.Errorf("Count de registro corrompido = %d, esperado 512 (Full)", got)
	}
}

func TestOccupiedPositionsConsistente(t *testing.T) {
	seq := OccupiedPositions(PatternPillar, 90)

	// A sequência é reiniciável: duas varreduras dão o mesmo resultado.
	first := 0
	for range seq {
		first++
	}
	second := 0
	for sc := range seq {
		second++
		if !Occupied(PatternPillar, 90, sc.X, sc.Y, sc.Z) {
			t.Fatalf("OccupiedPositions rendeu (%d,%d,%d) mas Occupied nega", sc.X, sc.Y, sc.Z)
		}
	}
	if first != second || first != 128 {
		t.Errorf("varreduras = %d e %d, esperado 128 em ambas", first, second)
	}
}

func TestDeterminismo(t *testing.T) {
	for i := 0; i < 3; i++ {
		if !Occupied(PatternSlab, 180, 4, 3, 4) {
			t.Fatalf("mesma entrada deu resultado diferente na iteração %d", i)
		}
		if Occupied(PatternSlab, 180, 4, 4, 4) {
			t.Fatalf("mesma entrada deu resultado diferente na iteração %d", i)
		}
	}
}
