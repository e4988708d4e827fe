package process

// IO describes one die-to-die interface technology. Its name is the IO type
// tag the interconnect fabric is keyed by.
type IO struct {
	record
	rxArea        float64
	txArea        float64
	shoreline     float64
	bandwidth     float64
	wireCount     int
	bidirectional bool
	energyPerBit  float64
	reach         float64
}

// NewIO returns an empty, mutable IO record of the given type.
func NewIO(ioType string) *IO {
	return &IO{record: newRecord("io", ioType)}
}

// Type returns the IO type tag.
func (io *IO) Type() string { return io.name }

func (io *IO) SetRXArea(v float64) error {
	return io.assign("rx_area", nonNegative(v), func() { io.rxArea = v })
}

func (io *IO) SetTXArea(v float64) error {
	return io.assign("tx_area", nonNegative(v), func() { io.txArea = v })
}

func (io *IO) SetShoreline(v float64) error {
	return io.assign("shoreline", nonNegative(v), func() { io.shoreline = v })
}

// SetBandwidth sets the per-instance bandwidth in Gb/s.
func (io *IO) SetBandwidth(v float64) error {
	return io.assign("bandwidth", nonNegative(v), func() { io.bandwidth = v })
}

// SetWireCount sets the number of signal wires per instance.
func (io *IO) SetWireCount(v int) error {
	return io.assign("wire_count", atLeast(v, 0), func() { io.wireCount = v })
}

func (io *IO) SetBidirectional(v bool) error {
	return io.assign("bidirectional", nil, func() { io.bidirectional = v })
}

// SetEnergyPerBit sets the transfer energy in pJ/bit.
func (io *IO) SetEnergyPerBit(v float64) error {
	return io.assign("energy_per_bit", nonNegative(v), func() { io.energyPerBit = v })
}

// SetReach sets the maximum supported wire length in mm.
func (io *IO) SetReach(v float64) error {
	return io.assign("reach", nonNegative(v), func() { io.reach = v })
}

// Finalize seals the record; see package doc.
func (io *IO) Finalize() error {
	return io.finalize([]string{"rx_area", "tx_area", "shoreline", "bandwidth", "wire_count",
		"bidirectional", "energy_per_bit", "reach"})
}

func (io *IO) RXArea() float64 { return io.rxArea }
func (io *IO) TXArea() float64 { return io.txArea }
func (io *IO) Shoreline() float64 { return io.shoreline }
func (io *IO) Bandwidth() float64 { return io.bandwidth }
func (io *IO) WireCount() int { return io.wireCount }
func (io *IO) Bidirectional() bool { return io.bidirectional }
func (io *IO) EnergyPerBit() float64 { return io.energyPerBit }
func (io *IO) Reach() float64 { return io.reach }

// DirectionFactor halves counts for bidirectional links, which the fabric
// records in both directions.
func (io *IO) DirectionFactor() float64 {
	if io.bidirectional {
		return 0.5
	}
	return 1
}
