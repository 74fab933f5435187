package filter

import (
	"math"
	"sync"
)

// Support is the squared Mahalanobis radius of the EWA footprint.
// Samples with dᵀΣ⁻¹d above Support get no weight.
const Support = 4.0

// tableSize is the number of entries in the weight lookup table.
const tableSize = 1024

var (
	weightOnce  sync.Once
	weightTable [tableSize + 1]float64
)

// GaussianWeight returns exp(-q/2) for a squared distance q in
// [0, Support], read from a lookup table. Values outside the support
// return 0.
func GaussianWeight(q float64) float64 {
	if q < 0 || q > Support || math.IsNaN(q) {
		return 0
	}
	weightOnce.Do(buildWeightTable)
	return weightTable[int(q*(tableSize/Support)+0.5)]
}

func buildWeightTable() {
	for i := range weightTable {
		q := float64(i) * Support / tableSize
		weightTable[i] = math.Exp(-0.5 * q)
	}
}
