package loader

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/chiplet/fabric"
)

type netlistDoc struct {
	Nets []netDoc `yaml:"nets"`
}

type netDoc struct {
	Type               string   `yaml:"type"`
	Block0             string   `yaml:"block0"`
	Block1             string   `yaml:"block1"`
	Bandwidth          *float64 `yaml:"bandwidth"`
	AverageUtilization *float64 `yaml:"average_bandwidth_utilization"`
	Count              *int     `yaml:"bb_count"`
}

func (n *netDoc) missing() []string {
	var m []string
	if n.Type == "" {
		m = append(m, "type")
	}
	if n.Block0 == "" {
		m = append(m, "block0")
	}
	if n.Block1 == "" {
		m = append(m, "block1")
	}
	if n.Bandwidth == nil {
		m = append(m, "bandwidth")
	}
	if n.AverageUtilization == nil {
		m = append(m, "average_bandwidth_utilization")
	}
	return m
}

// fabric feeds every net through a fabric.Builder in document order.
func (d *netlistDoc) fabric(path string, ios fabric.IOLookup) (*fabric.Fabric, error) {
	b := fabric.NewBuilder(ios)
	for i := range d.Nets {
		n := &d.Nets[i]
		elem := fmt.Sprintf("nets[%d]", i)
		if m := n.missing(); len(m) > 0 {
			return nil, docErrorf(path, elem, fmt.Errorf("%w: %s", ErrRequired, strings.Join(m, ", ")))
		}
		err := b.AddNet(fabric.Net{
			Type:               n.Type,
			Block0:             n.Block0,
			Block1:             n.Block1,
			Bandwidth:          *n.Bandwidth,
			AverageUtilization: *n.AverageUtilization,
			Count:              n.Count,
		})
		if err != nil {
			return nil, docErrorf(path, elem, err)
		}
	}
	fab, err := b.Build()
	if err != nil {
		return nil, docErrorf(path, "nets", err)
	}
	return fab, nil
}
