package loader_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/katalvlaran/chiplet/loader"
	"github.com/stretchr/testify/require"
)

const processesYAML = `
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
  - name: metal
    active: false
    cost_per_mm2: 0.1
    transistor_density: 100
    defect_density: 0
    critical_area_ratio: 0.6
    clustering_factor: 2
    litho_percent: 0
    mask_cost: 1000000
    stitching_yield: 1
    routing_layer_count: 2
    routing_layer_pitch: 0.01
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
  - name: full
    time_per_test_cycle: 1.0e-9
    cost_per_second: 0.01
    samples_per_input: 1
    self: &stage
      enabled: true
      defect_coverage: 0.9
      num_scan_chains: 4
      num_io_per_scan_chain: 2
      num_test_io_offset: 8
    assembly: *stage
`

const iosYAML = `
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

const emptyNetlistYAML = "nets: []\n"

const singleDesignYAML = `
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

const stackNetlistYAML = `
nets:
  - type: ucie
    block0: cpu
    block1: mem
    bandwidth: 64
    average_bandwidth_utilization: 0.5
  - type: ucie
    block0: cpu
    block1: io
    bandwidth: 32
    average_bandwidth_utilization: 0.5
`

const stackDesignYAML = `
chip:
  name: base
  core_area: 10
  fraction_memory: 0
  fraction_logic: 1
  fraction_analog: 0
  gate_flop_ratio: 2
  quantity: 1000
  power: 0
  core_voltage: 0
  wafer_process: wp
  assembly_process: hybrid
  test_process: full
  stackup:
    - {count: 1, layer: metal}
  chips:
    - name: cpu
      stack_side: face
      orientation: face-up
      core_area: 20
      fraction_memory: 0
      fraction_logic: 1
      fraction_analog: 0
      gate_flop_ratio: 2
      quantity: 1000
      power: 5
      core_voltage: 0.8
      wafer_process: wp
      assembly_process: hybrid
      test_process: full
      stackup: "1:active"
    - name: mem
      stack_side: face
      core_area: 30
      fraction_memory: 0
      fraction_logic: 1
      fraction_analog: 0
      gate_flop_ratio: 2
      quantity: 1000
      power: 5
      core_voltage: 0.8
      wafer_process: wp
      assembly_process: hybrid
      test_process: full
      stackup: "1:active"
    - name: mem2
      stack_side: face
      copy_from: mem
`

// writeFile writes content to name below dir and returns the full path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

// fixture writes a complete input set. One processes file serves the four
// non-IO catalog roles.
func fixture(t *testing.T, netlist, design string) loader.Files {
	t.Helper()
	dir := t.TempDir()
	procs := writeFile(t, dir, "processes.yaml", processesYAML)
	return loader.Files{
		IO:       writeFile(t, dir, "ios.yaml", iosYAML),
		Layer:    procs,
		Wafer:    procs,
		Assembly: procs,
		Test:     procs,
		Netlist:  writeFile(t, dir, "netlist.yaml", netlist),
		Design:   writeFile(t, dir, "design.yaml", design),
	}
}
