package loader

// Catalog section keys.
const (
	SectionWafers     = "wafer_processes"
	SectionIOs        = "ios"
	SectionLayers     = "layers"
	SectionAssemblies = "assembly_processes"
	SectionTests      = "test_processes"
)

// Sections lists the catalog section keys in merge order.
var Sections = [...]string{SectionWafers, SectionIOs, SectionLayers, SectionAssemblies, SectionTests}

// KeyField returns the attribute that names a record of the given section.
func KeyField(section string) string {
	if section == SectionIOs {
		return "type"
	}
	return "name"
}

var integerKeys = map[string]bool{
	"wire_count":            true,
	"routing_layer_count":   true,
	"group":                 true,
	"samples_per_input":     true,
	"test_reuse":            true,
	"num_scan_chains":       true,
	"num_io_per_scan_chain": true,
	"num_test_io_offset":    true,
	"quantity":              true,
	"bb_count":              true,
	"count":                 true,
}

// IsIntegerKey reports whether attribute key decodes into an integer.
func IsIntegerKey(key string) bool {
	return integerKeys[key]
}
