package render

// SelectLOD escolhe o nível de detalhe de um chunk pela distância à câmera.
//
// thresholds são as distâncias de transição em ordem crescente (len(thresholds)
// transições separam len(thresholds)+1 níveis). band é a histerese relativa:
// o chunk só engrossa quando a distância passa do limiar com folga e só afina
// quando volta bem abaixo dele, então oscilar em torno de um limiar não troca
// de malha a cada frame.
func SelectLOD(dist float32, current int, thresholds []float32, band float32) int {
	lod := current
	if lod < 0 {
		lod = 0
	}
	if lod > len(thresholds) {
		lod = len(thresholds)
	}

	for lod < len(thresholds) && dist > thresholds[lod]*(1+band) {
		lod++
	}
	for lod > 0 && dist < thresholds[lod-1]*(1-band) {
		lod--
	}
	return lod
}
