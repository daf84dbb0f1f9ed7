package bitstream

import "testing"

func TestRegionBitstreamsPadding(t *testing.T) {
	mgr := NewManager()
	fab := NewFabric()
	r1 := fab.AddRegion()
	r2 := fab.AddRegion()

	fill := func(region int, values []bool) {
		t.Helper()
		for _, v := range values {
			if _, err := fab.AddBit(region, mgr.AddBit(v)); err != nil {
				t.Fatalf("AddBit failed: %v", err)
			}
		}
	}
	fill(0, []bool{true, true, true, true})
	fill(r1, []bool{false, true})
	fill(r2, nil)

	regions, err := regionBitstreams(mgr, fab)
	if err != nil {
		t.Fatalf("regionBitstreams failed: %v", err)
	}
	if len(regions) != 3 {
		t.Fatalf("got %d regions, want 3", len(regions))
	}
	for r, region := range regions {
		if len(region) != 4 {
			t.Fatalf("region %d: got length %d, want 4", r, len(region))
		}
	}

	// Padded tail positions must carry the filler bit.
	if regions[1][2] != fillerBit || regions[1][3] != fillerBit {
		t.Fatalf("region 1 tail not padded with filler: %v", regions[1])
	}
	for i, v := range regions[2] {
		if v != fillerBit {
			t.Fatalf("region 2 position %d: got %v, want filler", i, v)
		}
	}

	// Natural prefixes survive padding untouched.
	if regions[1][0] || !regions[1][1] {
		t.Fatalf("region 1 prefix changed: %v", regions[1])
	}
}

func TestMemoryBankGroupsOrdering(t *testing.T) {
	mgr := NewManager()
	fab := NewFabric()
	if err := fab.SetBLAddressWidth(1); err != nil {
		t.Fatalf("SetBLAddressWidth failed: %v", err)
	}
	if err := fab.SetWLAddressWidth(1); err != nil {
		t.Fatalf("SetWLAddressWidth failed: %v", err)
	}

	addBit := func(v bool, bl, wl string) {
		t.Helper()
		id, err := fab.AddBit(0, mgr.AddBit(v))
		if err != nil {
			t.Fatalf("AddBit failed: %v", err)
		}
		if err := fab.SetBitBLAddress(id, bl); err != nil {
			t.Fatalf("SetBitBLAddress failed: %v", err)
		}
		if err := fab.SetBitWLAddress(id, wl); err != nil {
			t.Fatalf("SetBitWLAddress failed: %v", err)
		}
	}

	addBit(true, "1", "1")
	addBit(false, "0", "0")
	addBit(true, "1", "1")
	addBit(true, "0", "0")

	groups, err := buildMemoryBankGroups(mgr, fab)
	if err != nil {
		t.Fatalf("buildMemoryBankGroups failed: %v", err)
	}

	wantKeys := []memoryBankKey{{bl: "1", wl: "1"}, {bl: "0", wl: "0"}}
	if len(groups.keys) != len(wantKeys) {
		t.Fatalf("got %d keys, want %d", len(groups.keys), len(wantKeys))
	}
	for i, key := range wantKeys {
		if groups.keys[i] != key {
			t.Fatalf("key %d: got %v, want %v", i, groups.keys[i], key)
		}
	}

	// No bit dropped or duplicated across groups.
	total := 0
	for _, key := range groups.keys {
		total += len(groups.din[key])
	}
	if total != fab.NumBits() {
		t.Fatalf("grouped %d bits, source has %d", total, fab.NumBits())
	}

	if din := groups.din[memoryBankKey{bl: "1", wl: "1"}]; len(din) != 2 || !din[0] || !din[1] {
		t.Fatalf("group (1,1): got %v, want [true true]", din)
	}
	if din := groups.din[memoryBankKey{bl: "0", wl: "0"}]; len(din) != 2 || din[0] || !din[1] {
		t.Fatalf("group (0,0): got %v, want [false true]", din)
	}
}

func TestFrameGroupsOrdering(t *testing.T) {
	mgr := NewManager()
	fab := NewFabric()
	if err := fab.SetAddressWidth(2); err != nil {
		t.Fatalf("SetAddressWidth failed: %v", err)
	}

	addBit := func(v bool, addr string) {
		t.Helper()
		id, err := fab.AddBit(0, mgr.AddBit(v))
		if err != nil {
			t.Fatalf("AddBit failed: %v", err)
		}
		if err := fab.SetBitAddress(id, addr); err != nil {
			t.Fatalf("SetBitAddress failed: %v", err)
		}
	}

	addBit(false, "10")
	addBit(true, "01")
	addBit(true, "10")

	groups, err := buildFrameGroups(mgr, fab)
	if err != nil {
		t.Fatalf("buildFrameGroups failed: %v", err)
	}

	wantKeys := []string{"10", "01"}
	if len(groups.keys) != len(wantKeys) {
		t.Fatalf("got %d keys, want %d", len(groups.keys), len(wantKeys))
	}
	for i, key := range wantKeys {
		if groups.keys[i] != key {
			t.Fatalf("key %d: got %q, want %q", i, groups.keys[i], key)
		}
	}
	if din := groups.din["10"]; len(din) != 2 || din[0] || !din[1] {
		t.Fatalf("group 10: got %v, want [false true]", din)
	}
}

func TestBitDigit(t *testing.T) {
	if got := bitDigit(true); got != '1' {
		t.Fatalf("bitDigit(true) = %q, want '1'", got)
	}
	if got := bitDigit(false); got != '0' {
		t.Fatalf("bitDigit(false) = %q, want '0'", got)
	}
}
