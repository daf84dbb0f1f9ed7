package bitstream

import "fmt"

// fillerBit is the value shifted into a configuration chain for padding
// positions beyond a region's natural length. The hardware still clocks
// every region at every step, so padded positions need a defined value.
const fillerBit = false

// regionBitstreams resolves each configuration region of the fabric to its
// ordered bit values, padded at the tail with filler bits so every region
// has the length of the longest one.
func regionBitstreams(mgr *Manager, fab *Fabric) ([][]bool, error) {
	regions := make([][]bool, fab.NumRegions())
	for r := range regions {
		ids, err := fab.RegionBits(r)
		if err != nil {
			return nil, err
		}
		values := make([]bool, 0, len(ids))
		for _, id := range ids {
			cfg, err := fab.ConfigBit(id)
			if err != nil {
				return nil, err
			}
			v, err := mgr.BitValue(cfg)
			if err != nil {
				return nil, err
			}
			values = append(values, v)
		}
		regions[r] = values
	}

	maxLen := 0
	for _, region := range regions {
		if len(region) > maxLen {
			maxLen = len(region)
		}
	}
	for r, region := range regions {
		for len(region) < maxLen {
			region = append(region, fillerBit)
		}
		regions[r] = region
	}
	return regions, nil
}

// memoryBankKey is the composite (BL, WL) address of a memory-bank cell.
type memoryBankKey struct {
	bl string
	wl string
}

// memoryBankGroups groups fabric bits by their (BL, WL) address pair.
// Keys keep first-encounter order and each data vector keeps the source
// order of its contributing bits; iteration never depends on map order.
type memoryBankGroups struct {
	keys []memoryBankKey
	din  map[memoryBankKey][]bool
}

func buildMemoryBankGroups(mgr *Manager, fab *Fabric) (*memoryBankGroups, error) {
	groups := &memoryBankGroups{din: make(map[memoryBankKey][]bool)}
	for id := FabricBitID(0); int(id) < fab.NumBits(); id++ {
		bl, err := fab.BitBLAddress(id)
		if err != nil {
			return nil, err
		}
		wl, err := fab.BitWLAddress(id)
		if err != nil {
			return nil, err
		}
		if bl == "" || wl == "" {
			return nil, fmt.Errorf("bitstream: fabric bit %d lacks BL/WL address", id)
		}
		cfg, err := fab.ConfigBit(id)
		if err != nil {
			return nil, err
		}
		v, err := mgr.BitValue(cfg)
		if err != nil {
			return nil, err
		}
		key := memoryBankKey{bl: bl, wl: wl}
		if _, ok := groups.din[key]; !ok {
			groups.keys = append(groups.keys, key)
		}
		groups.din[key] = append(groups.din[key], v)
	}
	return groups, nil
}

// frameGroups groups fabric bits by their frame address, with the same
// ordering guarantees as memoryBankGroups.
type frameGroups struct {
	keys []string
	din  map[string][]bool
}

func buildFrameGroups(mgr *Manager, fab *Fabric) (*frameGroups, error) {
	groups := &frameGroups{din: make(map[string][]bool)}
	for id := FabricBitID(0); int(id) < fab.NumBits(); id++ {
		addr, err := fab.BitAddress(id)
		if err != nil {
			return nil, err
		}
		if addr == "" {
			return nil, fmt.Errorf("bitstream: fabric bit %d lacks frame address", id)
		}
		cfg, err := fab.ConfigBit(id)
		if err != nil {
			return nil, err
		}
		v, err := mgr.BitValue(cfg)
		if err != nil {
			return nil, err
		}
		if _, ok := groups.din[addr]; !ok {
			groups.keys = append(groups.keys, addr)
		}
		groups.din[addr] = append(groups.din[addr], v)
	}
	return groups, nil
}

func bitDigit(v bool) byte {
	if v {
		return '1'
	}
	return '0'
}
