package bitstream

import "fmt"

// FabricBitID identifies one bit of a FabricBitstream.
type FabricBitID int

type fabricBit struct {
	config ConfigBitID
	region int

	// Address annotations. Which of these are populated depends on the
	// configuration protocol of the target fabric: a frame-based fabric
	// uses addr, a memory-bank fabric uses bl and wl, and standalone or
	// scan-chain fabrics carry no address at all.
	addr string
	bl   string
	wl   string
}

// Fabric is the fabric-dependent bitstream: the configuration bits of a
// Manager annotated with the addressing required by the target device's
// configuration protocol and partitioned into configuration regions.
//
// Address strings are sequences of '0'/'1' characters, most-significant
// bit first. All addresses of one kind share a single fixed width which
// must be declared up front via the SetAddressWidth family; annotating a
// bit with an address of a different width is an error.
type Fabric struct {
	bits    []fabricBit
	regions [][]FabricBitID

	addrWidth int
	blWidth   int
	wlWidth   int
}

// NewFabric returns an empty fabric bitstream with a single region.
func NewFabric() *Fabric {
	return &Fabric{regions: make([][]FabricBitID, 1)}
}

// AddRegion appends a new, empty configuration region and returns its
// index.
func (f *Fabric) AddRegion() int {
	f.regions = append(f.regions, nil)
	return len(f.regions) - 1
}

// NumRegions returns the number of configuration regions.
func (f *Fabric) NumRegions() int {
	return len(f.regions)
}

// AddBit appends a fabric bit referencing the given configuration bit and
// assigns it to the given region. Bits keep their insertion order both in
// the flat bit sequence and inside their region.
func (f *Fabric) AddBit(region int, config ConfigBitID) (FabricBitID, error) {
	if region < 0 || region >= len(f.regions) {
		return 0, fmt.Errorf("bitstream: invalid region index %d", region)
	}
	f.bits = append(f.bits, fabricBit{config: config, region: region})
	id := FabricBitID(len(f.bits) - 1)
	f.regions[region] = append(f.regions[region], id)
	return id, nil
}

// NumBits returns the number of fabric bits.
func (f *Fabric) NumBits() int {
	return len(f.bits)
}

// ConfigBit returns the configuration bit referenced by the given fabric
// bit.
func (f *Fabric) ConfigBit(id FabricBitID) (ConfigBitID, error) {
	if !f.validBit(id) {
		return 0, fmt.Errorf("bitstream: invalid fabric bit id %d", id)
	}
	return f.bits[id].config, nil
}

// RegionBits returns the fabric bits of the given region in insertion
// order.
func (f *Fabric) RegionBits(region int) ([]FabricBitID, error) {
	if region < 0 || region >= len(f.regions) {
		return nil, fmt.Errorf("bitstream: invalid region index %d", region)
	}
	out := make([]FabricBitID, len(f.regions[region]))
	copy(out, f.regions[region])
	return out, nil
}

// ReverseRegionBits reverses the bit order of every configuration
// region in place. A configuration chain shifts head first: the last
// bit clocked in ends up deepest in the chain, so a chain bitstream is
// loaded in reverse of build order. The flat bit sequence and all
// address annotations are untouched.
func (f *Fabric) ReverseRegionBits() {
	for _, region := range f.regions {
		for i, j := 0, len(region)-1; i < j; i, j = i+1, j-1 {
			region[i], region[j] = region[j], region[i]
		}
	}
}

// SetAddressWidth declares the fixed width of frame addresses.
func (f *Fabric) SetAddressWidth(width int) error {
	if width <= 0 {
		return fmt.Errorf("bitstream: invalid address width %d", width)
	}
	f.addrWidth = width
	return nil
}

// SetBLAddressWidth declares the fixed width of bit-line addresses.
func (f *Fabric) SetBLAddressWidth(width int) error {
	if width <= 0 {
		return fmt.Errorf("bitstream: invalid BL address width %d", width)
	}
	f.blWidth = width
	return nil
}

// SetWLAddressWidth declares the fixed width of word-line addresses.
func (f *Fabric) SetWLAddressWidth(width int) error {
	if width <= 0 {
		return fmt.Errorf("bitstream: invalid WL address width %d", width)
	}
	f.wlWidth = width
	return nil
}

// AddressWidth returns the declared frame address width, 0 if unset.
func (f *Fabric) AddressWidth() int { return f.addrWidth }

// BLAddressWidth returns the declared bit-line address width, 0 if unset.
func (f *Fabric) BLAddressWidth() int { return f.blWidth }

// WLAddressWidth returns the declared word-line address width, 0 if unset.
func (f *Fabric) WLAddressWidth() int { return f.wlWidth }

// SetBitAddress annotates a fabric bit with its frame address. The
// address must match the declared address width.
func (f *Fabric) SetBitAddress(id FabricBitID, addr string) error {
	if !f.validBit(id) {
		return fmt.Errorf("bitstream: invalid fabric bit id %d", id)
	}
	if err := checkAddress(addr, f.addrWidth, "frame"); err != nil {
		return err
	}
	f.bits[id].addr = addr
	return nil
}

// SetBitBLAddress annotates a fabric bit with its bit-line address.
func (f *Fabric) SetBitBLAddress(id FabricBitID, bl string) error {
	if !f.validBit(id) {
		return fmt.Errorf("bitstream: invalid fabric bit id %d", id)
	}
	if err := checkAddress(bl, f.blWidth, "BL"); err != nil {
		return err
	}
	f.bits[id].bl = bl
	return nil
}

// SetBitWLAddress annotates a fabric bit with its word-line address.
func (f *Fabric) SetBitWLAddress(id FabricBitID, wl string) error {
	if !f.validBit(id) {
		return fmt.Errorf("bitstream: invalid fabric bit id %d", id)
	}
	if err := checkAddress(wl, f.wlWidth, "WL"); err != nil {
		return err
	}
	f.bits[id].wl = wl
	return nil
}

// BitAddress returns the frame address of the given fabric bit.
func (f *Fabric) BitAddress(id FabricBitID) (string, error) {
	if !f.validBit(id) {
		return "", fmt.Errorf("bitstream: invalid fabric bit id %d", id)
	}
	return f.bits[id].addr, nil
}

// BitBLAddress returns the bit-line address of the given fabric bit.
func (f *Fabric) BitBLAddress(id FabricBitID) (string, error) {
	if !f.validBit(id) {
		return "", fmt.Errorf("bitstream: invalid fabric bit id %d", id)
	}
	return f.bits[id].bl, nil
}

// BitWLAddress returns the word-line address of the given fabric bit.
func (f *Fabric) BitWLAddress(id FabricBitID) (string, error) {
	if !f.validBit(id) {
		return "", fmt.Errorf("bitstream: invalid fabric bit id %d", id)
	}
	return f.bits[id].wl, nil
}

func (f *Fabric) validBit(id FabricBitID) bool {
	return id >= 0 && int(id) < len(f.bits)
}

func checkAddress(addr string, width int, kind string) error {
	if width == 0 {
		return fmt.Errorf("bitstream: %s address width not declared", kind)
	}
	if len(addr) != width {
		return fmt.Errorf("bitstream: %s address %q does not match declared width %d", kind, addr, width)
	}
	return nil
}
