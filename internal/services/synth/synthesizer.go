package synth

import (
	"math"
	"math/rand"

	"GeoPrice/internal/domain/models"
)

// Structure-value coefficients in $100,000 units.
const (
	areaCoef    = 0.0015 // $150 per sqft
	garageCoef  = 0.15   // $15k per garage slot
	bedroomCoef = 0.10   // $10k per bedroom
	ageCoef     = 0.02   // -$2k per year of age
)

// priceFloor is the minimum composite target, in $100,000 units.
const priceFloor = 0.5

// Synthetic area distribution and bounds.
const (
	areaMean = 1800
	areaStd  = 600
	areaMin  = 500
	areaMax  = 5000
)

// garageDist is the categorical distribution over garage capacity.
var garageDist = []struct {
	cars int
	p    float64
}{
	{0, 0.1},
	{1, 0.3},
	{2, 0.5},
	{3, 0.1},
}

// Synthesizer augments base observations with synthetic structural
// attributes and the composite price target. For a fixed seed and a fixed
// base dataset the output is bit-for-bit reproducible.
type Synthesizer struct {
	seed int64
}

func New(seed int64) *Synthesizer {
	return &Synthesizer{seed: seed}
}

// Augment produces one training row per observation, preserving input order.
func (s *Synthesizer) Augment(obs []models.Observation) []models.TrainingRow {
	rng := rand.New(rand.NewSource(s.seed))
	rows := make([]models.TrainingRow, 0, len(obs))
	for _, o := range obs {
		attrs := drawAttributes(rng, o.HouseAge)
		fv := models.FeatureVector{
			Latitude:   o.Latitude,
			Longitude:  o.Longitude,
			TotalArea:  float64(attrs.TotalArea),
			GarageCars: float64(attrs.GarageCars),
			Bedrooms:   float64(attrs.Bedrooms),
			HouseAge:   attrs.HouseAge,
		}
		rows = append(rows, models.TrainingRow{
			Features: fv,
			Target:   ComposeTarget(o.LocationValue, attrs),
		})
	}
	return rows
}

// ComposeTarget computes the composite price target: the location component
// plus the structure component, floored at 0.5 ($100,000 units).
func ComposeTarget(locationValue float64, a models.StructuralAttributes) float64 {
	structure := float64(a.TotalArea)*areaCoef +
		float64(a.GarageCars)*garageCoef +
		float64(a.Bedrooms)*bedroomCoef -
		a.HouseAge*ageCoef
	price := locationValue + structure
	if price < priceFloor {
		price = priceFloor
	}
	return price
}

func drawAttributes(rng *rand.Rand, houseAge float64) models.StructuralAttributes {
	area := int(math.Round(rng.NormFloat64()*areaStd + areaMean))
	if area < areaMin {
		area = areaMin
	}
	if area > areaMax {
		area = areaMax
	}

	return models.StructuralAttributes{
		TotalArea:  area,
		GarageCars: drawGarage(rng),
		Bedrooms:   1 + rng.Intn(5),
		HouseAge:   houseAge,
	}
}

func drawGarage(rng *rand.Rand) int {
	u := rng.Float64()
	cum := 0.0
	for _, g := range garageDist {
		cum += g.p
		if u < cum {
			return g.cars
		}
	}
	return garageDist[len(garageDist)-1].cars
}
