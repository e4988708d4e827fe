package process

import (
	"fmt"

	"github.com/katalvlaran/chiplet/wafer"
)

// DesignClass partitions die area by the kind of circuitry it holds.
type DesignClass int

const (
	Memory DesignClass = iota
	Logic
	Analog
)

// DesignClasses lists every class in a fixed order.
var DesignClasses = [...]DesignClass{Memory, Logic, Analog}

func (c DesignClass) String() string {
	switch c {
	case Memory:
		return "memory"
	case Logic:
		return "logic"
	case Analog:
		return "analog"
	}
	return fmt.Sprintf("DesignClass(%d)", int(c))
}

// WaferProcess describes a wafer: its geometry, fill discipline, process
// yield and per-mm² NRE design costs.
type WaferProcess struct {
	record
	diameter      float64
	edgeExclusion float64
	processYield  float64
	dicing        float64
	reticleX      float64
	reticleY      float64
	fillGrid      bool
	nreFrontEnd   [3]float64
	nreBackEnd    [3]float64
}

const (
	fieldWaferDiameter = "wafer_diameter"
	fieldEdgeExclusion = "edge_exclusion"
	fieldWaferYield    = "wafer_process_yield"
	fieldDicing        = "dicing_distance"
	fieldReticleX      = "reticle_x"
	fieldReticleY      = "reticle_y"
	fieldFillGrid      = "wafer_fill_grid"
)

func nreField(stage string, c DesignClass) string {
	return "nre_" + stage + "_end_cost_per_mm2_" + c.String()
}

// NewWaferProcess returns an empty, mutable wafer process.
func NewWaferProcess(name string) *WaferProcess {
	return &WaferProcess{record: newRecord("wafer_process", name)}
}

// SetDiameter sets the wafer diameter in mm.
func (w *WaferProcess) SetDiameter(v float64) error {
	return w.assign(fieldWaferDiameter, nonNegative(v), func() { w.diameter = v })
}

// halfDiameter bounds fields that cannot exceed the wafer radius.
func (w *WaferProcess) halfDiameter(v float64) error {
	return atMost(v, w.diameter/2, w.IsSet(fieldWaferDiameter))
}

// SetEdgeExclusion sets the unusable rim width in mm.
func (w *WaferProcess) SetEdgeExclusion(v float64) error {
	return w.assign(fieldEdgeExclusion, w.halfDiameter(v), func() { w.edgeExclusion = v })
}

// SetProcessYield sets the wafer-level process yield in [0,1].
func (w *WaferProcess) SetProcessYield(v float64) error {
	return w.assign(fieldWaferYield, unitInterval(v), func() { w.processYield = v })
}

// SetDicingDistance sets the scribe-line width in mm.
func (w *WaferProcess) SetDicingDistance(v float64) error {
	return w.assign(fieldDicing, w.halfDiameter(v), func() { w.dicing = v })
}

// SetReticle sets the reticle field size in mm.
func (w *WaferProcess) SetReticle(x, y float64) error {
	if err := w.assign(fieldReticleX, w.halfDiameter(x), func() { w.reticleX = x }); err != nil {
		return err
	}
	return w.assign(fieldReticleY, w.halfDiameter(y), func() { w.reticleY = y })
}

// SetFillGrid selects grid fill (true) or line fill (false).
func (w *WaferProcess) SetFillGrid(v bool) error {
	return w.assign(fieldFillGrid, nil, func() { w.fillGrid = v })
}

// SetNRECost sets the front-end and back-end design cost per mm² of one class.
func (w *WaferProcess) SetNRECost(c DesignClass, frontEnd, backEnd float64) error {
	if err := w.assign(nreField("front", c), nonNegative(frontEnd), func() { w.nreFrontEnd[c] = frontEnd }); err != nil {
		return err
	}
	return w.assign(nreField("back", c), nonNegative(backEnd), func() { w.nreBackEnd[c] = backEnd })
}

// Finalize seals the record; see package doc.
func (w *WaferProcess) Finalize() error {
	required := []string{fieldWaferDiameter, fieldEdgeExclusion, fieldWaferYield, fieldDicing,
		fieldReticleX, fieldReticleY, fieldFillGrid}
	for _, c := range DesignClasses {
		required = append(required, nreField("front", c), nreField("back", c))
	}
	return w.finalize(required)
}

func (w *WaferProcess) Diameter() float64 { return w.diameter }
func (w *WaferProcess) EdgeExclusion() float64 { return w.edgeExclusion }
func (w *WaferProcess) ProcessYield() float64 { return w.processYield }
func (w *WaferProcess) DicingDistance() float64 { return w.dicing }
func (w *WaferProcess) ReticleX() float64 { return w.reticleX }
func (w *WaferProcess) ReticleY() float64 { return w.reticleY }
func (w *WaferProcess) FillGrid() bool { return w.fillGrid }

// UsableDiameter is the diameter minus the edge exclusion on both sides.
func (w *WaferProcess) UsableDiameter() float64 {
	return w.diameter - 2*w.edgeExclusion
}

// Fill returns the die fill discipline.
func (w *WaferProcess) Fill() wafer.Discipline {
	if w.fillGrid {
		return wafer.Grid
	}
	return wafer.NoGrid
}

// NRECostPerMM2 returns front-end plus back-end design cost per mm² for class c.
func (w *WaferProcess) NRECostPerMM2(c DesignClass) float64 {
	return w.nreFrontEnd[c] + w.nreBackEnd[c]
}

// NREFrontEndCostPerMM2 returns the front-end design cost per mm² for class c.
func (w *WaferProcess) NREFrontEndCostPerMM2(c DesignClass) float64 { return w.nreFrontEnd[c] }

// NREBackEndCostPerMM2 returns the back-end design cost per mm² for class c.
func (w *WaferProcess) NREBackEndCostPerMM2(c DesignClass) float64 { return w.nreBackEnd[c] }
