package die_test

import (
	"slices"
	"testing"

	"github.com/katalvlaran/chiplet/die"
	"github.com/katalvlaran/chiplet/fabric"
	"github.com/katalvlaran/chiplet/matrix"
	"github.com/katalvlaran/chiplet/process"
	"github.com/stretchr/testify/require"
)

type layerParams struct {
	name    string
	active  bool
	dd, cf  float64
	routing int
	pitch   float64
}

func layer(t *testing.T, p layerParams) *process.Layer {
	t.Helper()
	l := process.NewLayer(p.name)
	require.NoError(t, l.SetActive(p.active))
	require.NoError(t, l.SetCostPerMM2(0.1))
	require.NoError(t, l.SetTransistorDensity(100))
	require.NoError(t, l.SetDefectDensity(p.dd))
	require.NoError(t, l.SetCriticalAreaRatio(0.6))
	require.NoError(t, l.SetClusteringFactor(p.cf))
	require.NoError(t, l.SetLithoPercent(0))
	require.NoError(t, l.SetMaskCost(1e6))
	require.NoError(t, l.SetStitchingYield(1))
	if p.routing > 0 {
		require.NoError(t, l.SetRoutingLayerCount(p.routing))
		require.NoError(t, l.SetRoutingLayerPitch(p.pitch))
	}
	require.NoError(t, l.Finalize())
	return l
}

func testProcess(t *testing.T, name string, self, assembly bool, coverage float64) *process.TestProcess {
	t.Helper()
	tp := process.NewTestProcess(name)
	require.NoError(t, tp.SetTimePerTestCycle(1e-9))
	require.NoError(t, tp.SetCostPerSecond(0.01))
	require.NoError(t, tp.SetSamplesPerInput(1))
	for s, on := range map[process.TestStage]bool{process.SelfTest: self, process.AssemblyTest: assembly} {
		require.NoError(t, tp.SetEnabled(s, on))
		if !on {
			continue
		}
		require.NoError(t, tp.SetDefectCoverage(s, coverage))
		require.NoError(t, tp.SetNumScanChains(s, 4))
		require.NoError(t, tp.SetNumIOPerScanChain(s, 2))
		require.NoError(t, tp.SetNumTestIOOffset(s, 8))
	}
	require.NoError(t, tp.Finalize())
	return tp
}

func ioType(t *testing.T, name string, reach float64) *process.IO {
	t.Helper()
	return ioWires(t, name, reach, 20)
}

func ioWires(t *testing.T, name string, reach float64, wires int) *process.IO {
	t.Helper()
	io := process.NewIO(name)
	require.NoError(t, io.SetRXArea(0.001))
	require.NoError(t, io.SetTXArea(0.001))
	require.NoError(t, io.SetShoreline(0.1))
	require.NoError(t, io.SetBandwidth(16))
	require.NoError(t, io.SetWireCount(wires))
	require.NoError(t, io.SetBidirectional(false))
	require.NoError(t, io.SetEnergyPerBit(0.5))
	require.NoError(t, io.SetReach(reach))
	require.NoError(t, io.Finalize())
	return io
}

// assemblyProcess returns a bonding process with a 0.04 mm pitch and 0.1 mm
// die separation. A positive tsvPitch adds TSVs of 1e-4 mm² each.
func assemblyProcess(t *testing.T, name string, tsvPitch float64) *process.AssemblyProcess {
	t.Helper()
	a := process.NewAssemblyProcess(name)
	require.NoError(t, a.SetMaterialsCostPerMM2(0.01))
	for _, s := range []process.AssemblyStage{process.PickAndPlace, process.Bonding} {
		require.NoError(t, a.SetMachineCost(s, 1e6))
		require.NoError(t, a.SetMachineLifetime(s, 5))
		require.NoError(t, a.SetMachineUptime(s, 0.9))
		require.NoError(t, a.SetTechnicianYearlyCost(s, 1e5))
		require.NoError(t, a.SetTime(s, 10))
		require.NoError(t, a.SetGroup(s, 2))
	}
	require.NoError(t, a.SetDieSeparation(0.1))
	require.NoError(t, a.SetEdgeExclusion(0.5))
	require.NoError(t, a.SetBondingPitch(0.04))
	require.NoError(t, a.SetMaxPadCurrentDensity(1e4))
	require.NoError(t, a.SetAlignmentYield(0.99))
	require.NoError(t, a.SetBondingYield(0.9999))
	require.NoError(t, a.SetDielectricBondDefectDensity(0.001))
	if tsvPitch > 0 {
		require.NoError(t, a.SetTSVPitch(tsvPitch))
		require.NoError(t, a.SetTSVArea(1e-4))
		require.NoError(t, a.SetTSVYield(0.9999))
	}
	require.NoError(t, a.Finalize())
	return a
}

// catalog holds:
//   - wafer "wp": 300 mm, 3 mm edge exclusion, yield 0.95, no-grid fill;
//   - layers "active" (dd 0.1, cf 2), "metal" (inactive, defect free, routed)
//     and "killer" (Poisson, yield 0 at any useful area);
//   - assembly "hybrid": pitch 0.04 mm, die separation 0.1 mm;
//   - tests "none", "full" (both stages, coverage 0.9) and "strict"
//     (self test only, coverage 1);
//   - IO types "ucie" (reach 2 mm) and "short" (reach 0.05 mm).
func catalog(t *testing.T) *process.Catalog {
	t.Helper()
	var b process.CatalogBuilder

	w := process.NewWaferProcess("wp")
	require.NoError(t, w.SetDiameter(300))
	require.NoError(t, w.SetEdgeExclusion(3))
	require.NoError(t, w.SetProcessYield(0.95))
	require.NoError(t, w.SetDicingDistance(0.1))
	require.NoError(t, w.SetReticle(26, 33))
	require.NoError(t, w.SetFillGrid(false))
	for _, c := range process.DesignClasses {
		require.NoError(t, w.SetNRECost(c, 1, 2))
	}
	require.NoError(t, w.Finalize())
	require.NoError(t, b.AddWaferProcess(w))

	require.NoError(t, b.AddLayer(layer(t, layerParams{name: "active", active: true, dd: 0.1, cf: 2})))
	require.NoError(t, b.AddLayer(layer(t, layerParams{name: "metal", cf: 2, routing: 2, pitch: 0.01})))
	require.NoError(t, b.AddLayer(layer(t, layerParams{name: "killer", active: true, dd: 1e6})))

	require.NoError(t, b.AddAssemblyProcess(assemblyProcess(t, "hybrid", 0)))

	require.NoError(t, b.AddTestProcess(testProcess(t, "none", false, false, 0)))
	require.NoError(t, b.AddTestProcess(testProcess(t, "full", true, true, 0.9)))
	require.NoError(t, b.AddTestProcess(testProcess(t, "strict", true, false, 1)))

	require.NoError(t, b.AddIO(ioType(t, "ucie", 2)))
	require.NoError(t, b.AddIO(ioType(t, "short", 0.05)))

	return b.Build()
}

// padCatalog extends catalog with assembly "tsv" (TSV pitch 0.05 mm) and the
// IO types "mid" (reach 0.5 mm), "near" (reach 0.3 mm, 16 wires) and "far"
// (reach 1 mm).
func padCatalog(t *testing.T) *process.Catalog {
	t.Helper()
	cat := catalog(t)
	var b process.CatalogBuilder

	wp, err := cat.WaferProcess("wp")
	require.NoError(t, err)
	require.NoError(t, b.AddWaferProcess(wp))
	for _, name := range cat.LayerNames() {
		l, err := cat.Layer(name)
		require.NoError(t, err)
		require.NoError(t, b.AddLayer(l))
	}
	hybrid, err := cat.AssemblyProcess("hybrid")
	require.NoError(t, err)
	require.NoError(t, b.AddAssemblyProcess(hybrid))
	require.NoError(t, b.AddAssemblyProcess(assemblyProcess(t, "tsv", 0.05)))
	for _, name := range []string{"none", "full"} {
		tp, err := cat.TestProcess(name)
		require.NoError(t, err)
		require.NoError(t, b.AddTestProcess(tp))
	}
	for _, name := range cat.IOTypes() {
		io, err := cat.IO(name)
		require.NoError(t, err)
		require.NoError(t, b.AddIO(io))
	}
	require.NoError(t, b.AddIO(ioType(t, "mid", 0.5)))
	require.NoError(t, b.AddIO(ioWires(t, "near", 0.3, 16)))
	require.NoError(t, b.AddIO(ioType(t, "far", 1)))

	return b.Build()
}

// leaf returns a single-layer logic die using the "none" test process.
func leaf(name string, area float64) die.Spec {
	return die.Spec{
		Name:            name,
		CoreArea:        area,
		AspectRatio:     1,
		FractionLogic:   1,
		GateFlopRatio:   2,
		ReticleShare:    1,
		Quantity:        1000,
		WaferProcess:    "wp",
		AssemblyProcess: "hybrid",
		TestProcess:     "none",
		Stackup:         []die.StackupEntry{{Count: 1, Layer: "active"}},
	}
}

// pointToPoint returns a fabric with n instances of ioType from block from to block to.
func pointToPoint(t *testing.T, ioType, from, to string, n float64) *fabric.Fabric {
	t.Helper()
	adj, err := matrix.FromRows([][]float64{{0, n}, {0, 0}})
	require.NoError(t, err)
	util, err := matrix.FromRows([][]float64{{0, 0.5}, {0, 0}})
	require.NoError(t, err)
	f, err := fabric.New([]string{from, to}, fabric.Link{Type: ioType, Adjacency: adj, Utilization: util})
	require.NoError(t, err)
	return f
}

// link is n instances of one IO type driven from one block to another.
type link struct {
	io       string
	from, to string
	n        float64
}

// fabricOf builds a fabric from links. Blocks and IO types keep their order
// of first appearance; every used cell has utilization 0.5.
func fabricOf(t *testing.T, links ...link) *fabric.Fabric {
	t.Helper()
	var blocks, types []string
	index := make(map[string]int)
	for _, l := range links {
		for _, name := range []string{l.from, l.to} {
			if _, ok := index[name]; !ok {
				index[name] = len(blocks)
				blocks = append(blocks, name)
			}
		}
		if !slices.Contains(types, l.io) {
			types = append(types, l.io)
		}
	}

	out := make([]fabric.Link, 0, len(types))
	for _, typ := range types {
		adj, err := matrix.NewSquare(len(blocks))
		require.NoError(t, err)
		util, err := matrix.NewSquare(len(blocks))
		require.NoError(t, err)
		for _, l := range links {
			if l.io != typ {
				continue
			}
			require.NoError(t, adj.Add(index[l.from], index[l.to], l.n))
			require.NoError(t, util.Set(index[l.from], index[l.to], 0.5))
		}
		out = append(out, fabric.Link{Type: typ, Adjacency: adj, Utilization: util})
	}
	f, err := fabric.New(blocks, out...)
	require.NoError(t, err)
	return f
}

func ptr(v float64) *float64 { return &v }
