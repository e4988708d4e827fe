package process

import (
	"math"

	"github.com/katalvlaran/chiplet/wafer"
)

// Layer is one fabrication layer of a die stackup.
type Layer struct {
	record
	active            bool
	costPerMM2        float64
	transistorDensity float64
	defectDensity     float64
	criticalAreaRatio float64
	clusteringFactor  float64
	lithoPercent      float64
	maskCost          float64
	stitchingYield    float64
	routingCount      int
	routingPitch      float64
}

// NewLayer returns an empty, mutable layer.
func NewLayer(name string) *Layer {
	return &Layer{record: newRecord("layer", name)}
}

// SetActive marks the layer as carrying transistors.
func (l *Layer) SetActive(v bool) error {
	return l.assign("active", nil, func() { l.active = v })
}

// SetCostPerMM2 sets the raw wafer cost per mm² for this layer.
func (l *Layer) SetCostPerMM2(v float64) error {
	return l.assign("cost_per_mm2", nonNegative(v), func() { l.costPerMM2 = v })
}

// SetTransistorDensity sets the density in millions of transistors per mm².
func (l *Layer) SetTransistorDensity(v float64) error {
	return l.assign("transistor_density", nonNegative(v), func() { l.transistorDensity = v })
}

// SetDefectDensity sets defects per mm².
func (l *Layer) SetDefectDensity(v float64) error {
	return l.assign("defect_density", nonNegative(v), func() { l.defectDensity = v })
}

func (l *Layer) SetCriticalAreaRatio(v float64) error {
	return l.assign("critical_area_ratio", nonNegative(v), func() { l.criticalAreaRatio = v })
}

func (l *Layer) SetClusteringFactor(v float64) error {
	return l.assign("clustering_factor", nonNegative(v), func() { l.clusteringFactor = v })
}

// SetLithoPercent sets the fraction of cost attributable to lithography.
func (l *Layer) SetLithoPercent(v float64) error {
	return l.assign("litho_percent", unitInterval(v), func() { l.lithoPercent = v })
}

// SetMaskCost sets the NRE cost of this layer's masks.
func (l *Layer) SetMaskCost(v float64) error {
	return l.assign("mask_cost", nonNegative(v), func() { l.maskCost = v })
}

func (l *Layer) SetStitchingYield(v float64) error {
	return l.assign("stitching_yield", unitInterval(v), func() { l.stitchingYield = v })
}

// SetRoutingLayerCount sets the number of routing layers (optional, default 0).
func (l *Layer) SetRoutingLayerCount(v int) error {
	return l.assign("routing_layer_count", atLeast(v, 0), func() { l.routingCount = v })
}

// SetRoutingLayerPitch sets the routing track pitch in mm (optional, default 0).
func (l *Layer) SetRoutingLayerPitch(v float64) error {
	return l.assign("routing_layer_pitch", nonNegative(v), func() { l.routingPitch = v })
}

// Finalize seals the record; see package doc.
func (l *Layer) Finalize() error {
	return l.finalize([]string{"active", "cost_per_mm2", "transistor_density", "defect_density",
		"critical_area_ratio", "clustering_factor", "litho_percent", "mask_cost", "stitching_yield"})
}

func (l *Layer) Active() bool { return l.active }
func (l *Layer) CostPerMM2() float64 { return l.costPerMM2 }
func (l *Layer) TransistorDensity() float64 { return l.transistorDensity }
func (l *Layer) DefectDensity() float64 { return l.defectDensity }
func (l *Layer) CriticalAreaRatio() float64 { return l.criticalAreaRatio }
func (l *Layer) ClusteringFactor() float64 { return l.clusteringFactor }
func (l *Layer) LithoPercent() float64 { return l.lithoPercent }
func (l *Layer) MaskCost() float64 { return l.maskCost }
func (l *Layer) StitchingYield() float64 { return l.stitchingYield }
func (l *Layer) RoutingLayerCount() int { return l.routingCount }
func (l *Layer) RoutingLayerPitch() float64 { return l.routingPitch }

// GatesPerMM2 assumes four transistors per gate.
func (l *Layer) GatesPerMM2() float64 {
	return l.transistorDensity * 1e6 / 4
}

// RoutingTracks returns the escape tracks this layer offers around the
// perimeter of a die of the given area and aspect ratio. Layers without a
// routing pitch offer none.
func (l *Layer) RoutingTracks(area, aspectRatio float64) float64 {
	if l.routingPitch == 0 || l.routingCount == 0 || area <= 0 {
		return 0
	}
	w := math.Sqrt(area * aspectRatio)
	h := area / w
	return float64(l.routingCount) * 2 * (w + h) / l.routingPitch
}

// Yield returns this layer's yield over area mm².
func (l *Layer) Yield(area float64) float64 {
	return wafer.LayerYield(l.defectDensity, area, l.criticalAreaRatio, l.clusteringFactor, l.stitchingYield)
}

// EffectiveCostPerMM2 returns the layer cost per mm² of die once the wafer
// circle is shared among the dies that fit on it.
func (l *Layer) EffectiveCostPerMM2(area, aspectRatio float64, wp *WaferProcess) (float64, error) {
	x := math.Sqrt(area * aspectRatio)
	y := math.Sqrt(area / aspectRatio)
	dies, err := wafer.DiesPerWafer(wafer.Geometry{
		X:              x,
		Y:              y,
		UsableDiameter: wp.UsableDiameter(),
		Dicing:         wp.DicingDistance(),
		Fill:           wp.Fill(),
	})
	if err != nil {
		return 0, l.fieldErr("cost", err)
	}
	return wafer.CostPerArea(l.costPerMM2, wp.Diameter(), area, dies), nil
}

// Cost returns the manufacturing cost of this layer for one die:
//
//	c = area · EffectiveCostPerMM2
//	cost = c·(1−litho) + c·litho/reticleUtilization
//
// Zero area costs nothing; negative area is a calculation failure.
func (l *Layer) Cost(area, aspectRatio float64, wp *WaferProcess) (float64, error) {
	if area < 0 {
		return 0, l.fieldErr("cost", wafer.ErrNegativeArea)
	}
	if area == 0 {
		return 0, nil
	}
	perMM2, err := l.EffectiveCostPerMM2(area, aspectRatio, wp)
	if err != nil {
		return 0, err
	}
	cost := area * perMM2

	var util float64
	switch {
	case l.lithoPercent == 0:
		util = 1
	case l.lithoPercent > 0:
		util, err = wafer.ReticleUtilization(area, wp.ReticleX(), wp.ReticleY())
		if err != nil {
			return 0, l.fieldErr("cost", err)
		}
	default:
		return 0, l.fieldErr("litho_percent", ErrNegativeLitho)
	}

	return cost*(1-l.lithoPercent) + cost*l.lithoPercent/util, nil
}
