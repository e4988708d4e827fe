package sweep_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/chiplet/loader"
)

const catalogYAML = `
wafer_processes:
  - name: wp
    wafer_diameter: 300
    edge_exclusion: 3
    wafer_process_yield: 0.95
    dicing_distance: 0.1
    reticle_x: 26
    reticle_y: 33
    wafer_fill_grid: false
    nre_cost_per_mm2:
      memory: {front_end: 1, back_end: 2}
      logic: {front_end: 1, back_end: 2}
      analog: {front_end: 1, back_end: 2}
layers:
  - name: active
    active: true
    cost_per_mm2: 0.1
    transistor_density: 100
    defect_density: 0.1
    critical_area_ratio: 0.6
    clustering_factor: 2
    litho_percent: 0
    mask_cost: 1000000
    stitching_yield: 1
  - name: killer
    active: true
    cost_per_mm2: 0.1
    transistor_density: 100
    defect_density: 1000000
    critical_area_ratio: 0.6
    clustering_factor: 0
    litho_percent: 0
    mask_cost: 1000000
    stitching_yield: 1
assembly_processes:
  - name: hybrid
    materials_cost_per_mm2: 0.01
    picknplace: &machine
      machine_cost: 1000000
      machine_lifetime: 5
      machine_uptime: 0.9
      technician_yearly_cost: 100000
      time: 10
      group: 2
    bonding: *machine
    die_separation: 0.1
    edge_exclusion: 0.5
    bonding_pitch: 0.04
    max_pad_current_density: 10000
    alignment_yield: 0.99
    bonding_yield: 0.9999
    dielectric_bond_defect_density: 0.001
test_processes:
  - name: none
    time_per_test_cycle: 1.0e-9
    cost_per_second: 0.01
    samples_per_input: 1
ios:
  - type: ucie
    rx_area: 0.001
    tx_area: 0.001
    shoreline: 0.1
    bandwidth: 16
    wire_count: 20
    bidirectional: false
    energy_per_bit: 0.5
    reach: 2
`

const designYAML = `
chip:
  name: soc
  core_area: 100
  fraction_memory: 0
  fraction_logic: 1
  fraction_analog: 0
  gate_flop_ratio: 2
  quantity: 1000
  power: 0
  core_voltage: 0
  wafer_process: wp
  assembly_process: hybrid
  test_process: none
  stackup: "1:active"
`

func parse(t *testing.T, path, content string) loader.Document {
	t.Helper()
	d, err := loader.ParseDocument(path, []byte(content))
	require.NoError(t, err)
	return d
}

// documents builds an in-memory input set around design.
func documents(t *testing.T, design string) *loader.Documents {
	t.Helper()
	return &loader.Documents{
		Catalogs: []loader.Document{parse(t, "lib/catalog.yaml", catalogYAML)},
		Netlist:  parse(t, "netlist.yaml", "nets: []\n"),
		Design:   parse(t, "design.yaml", design),
	}
}
