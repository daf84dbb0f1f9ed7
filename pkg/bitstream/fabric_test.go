package bitstream

import "testing"

func TestFabricRegions(t *testing.T) {
	mgr := NewManager()
	fab := NewFabric()
	if fab.NumRegions() != 1 {
		t.Fatalf("got %d regions, want 1", fab.NumRegions())
	}

	r1 := fab.AddRegion()
	if r1 != 1 {
		t.Fatalf("AddRegion: got index %d, want 1", r1)
	}

	a, err := fab.AddBit(0, mgr.AddBit(true))
	if err != nil {
		t.Fatalf("AddBit failed: %v", err)
	}
	b, err := fab.AddBit(r1, mgr.AddBit(false))
	if err != nil {
		t.Fatalf("AddBit failed: %v", err)
	}
	c, err := fab.AddBit(0, mgr.AddBit(true))
	if err != nil {
		t.Fatalf("AddBit failed: %v", err)
	}

	bits0, err := fab.RegionBits(0)
	if err != nil {
		t.Fatalf("RegionBits failed: %v", err)
	}
	if len(bits0) != 2 || bits0[0] != a || bits0[1] != c {
		t.Fatalf("region 0: got %v, want [%d %d]", bits0, a, c)
	}

	bits1, err := fab.RegionBits(r1)
	if err != nil {
		t.Fatalf("RegionBits failed: %v", err)
	}
	if len(bits1) != 1 || bits1[0] != b {
		t.Fatalf("region 1: got %v, want [%d]", bits1, b)
	}

	if _, err := fab.AddBit(5, mgr.AddBit(true)); err == nil {
		t.Fatalf("expected error for invalid region index")
	}
	if _, err := fab.RegionBits(-1); err == nil {
		t.Fatalf("expected error for invalid region index")
	}
}

func TestFabricAddressWidthAsserted(t *testing.T) {
	mgr := NewManager()
	fab := NewFabric()

	id, err := fab.AddBit(0, mgr.AddBit(true))
	if err != nil {
		t.Fatalf("AddBit failed: %v", err)
	}

	// Width must be declared before any bit is annotated.
	if err := fab.SetBitAddress(id, "101"); err == nil {
		t.Fatalf("expected error for undeclared address width")
	}

	if err := fab.SetAddressWidth(3); err != nil {
		t.Fatalf("SetAddressWidth failed: %v", err)
	}
	if err := fab.SetBitAddress(id, "101"); err != nil {
		t.Fatalf("SetBitAddress failed: %v", err)
	}
	if err := fab.SetBitAddress(id, "0101"); err == nil {
		t.Fatalf("expected error for address width mismatch")
	}

	addr, err := fab.BitAddress(id)
	if err != nil {
		t.Fatalf("BitAddress failed: %v", err)
	}
	if addr != "101" {
		t.Fatalf("got address %q, want %q", addr, "101")
	}

	if err := fab.SetAddressWidth(0); err == nil {
		t.Fatalf("expected error for zero address width")
	}
}

func TestFabricBLWLAddresses(t *testing.T) {
	mgr := NewManager()
	fab := NewFabric()
	if err := fab.SetBLAddressWidth(2); err != nil {
		t.Fatalf("SetBLAddressWidth failed: %v", err)
	}
	if err := fab.SetWLAddressWidth(3); err != nil {
		t.Fatalf("SetWLAddressWidth failed: %v", err)
	}

	id, err := fab.AddBit(0, mgr.AddBit(false))
	if err != nil {
		t.Fatalf("AddBit failed: %v", err)
	}
	if err := fab.SetBitBLAddress(id, "01"); err != nil {
		t.Fatalf("SetBitBLAddress failed: %v", err)
	}
	if err := fab.SetBitWLAddress(id, "110"); err != nil {
		t.Fatalf("SetBitWLAddress failed: %v", err)
	}

	if err := fab.SetBitBLAddress(id, "110"); err == nil {
		t.Fatalf("expected error for BL width mismatch")
	}
	if err := fab.SetBitWLAddress(id, "01"); err == nil {
		t.Fatalf("expected error for WL width mismatch")
	}

	bl, err := fab.BitBLAddress(id)
	if err != nil {
		t.Fatalf("BitBLAddress failed: %v", err)
	}
	wl, err := fab.BitWLAddress(id)
	if err != nil {
		t.Fatalf("BitWLAddress failed: %v", err)
	}
	if bl != "01" || wl != "110" {
		t.Fatalf("got BL/WL %q/%q, want %q/%q", bl, wl, "01", "110")
	}
}

func TestFabricReverseRegionBits(t *testing.T) {
	tests := []struct {
		name    string
		regions [][]bool
		want    [][]bool
	}{
		{
			name:    "single region",
			regions: [][]bool{{true, true, false}},
			want:    [][]bool{{false, true, true}},
		},
		{
			name:    "uneven regions",
			regions: [][]bool{{true, false, false, true}, {false, true}},
			want:    [][]bool{{true, false, false, true}, {true, false}},
		},
		{
			name:    "empty region",
			regions: [][]bool{{true}, nil},
			want:    [][]bool{{true}, nil},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mgr := NewManager()
			fab := NewFabric()
			for r, values := range tt.regions {
				region := 0
				if r > 0 {
					region = fab.AddRegion()
				}
				for _, v := range values {
					if _, err := fab.AddBit(region, mgr.AddBit(v)); err != nil {
						t.Fatalf("AddBit failed: %v", err)
					}
				}
			}

			fab.ReverseRegionBits()

			for r, want := range tt.want {
				ids, err := fab.RegionBits(r)
				if err != nil {
					t.Fatalf("RegionBits failed: %v", err)
				}
				if len(ids) != len(want) {
					t.Fatalf("region %d: got %d bits, want %d", r, len(ids), len(want))
				}
				for i, id := range ids {
					cfg, err := fab.ConfigBit(id)
					if err != nil {
						t.Fatalf("ConfigBit failed: %v", err)
					}
					v, err := mgr.BitValue(cfg)
					if err != nil {
						t.Fatalf("BitValue failed: %v", err)
					}
					if v != want[i] {
						t.Fatalf("region %d bit %d: got %v, want %v", r, i, v, want[i])
					}
				}
			}

			// The flat bit sequence keeps its original order.
			flat := 0
			for _, values := range tt.regions {
				flat += len(values)
			}
			if fab.NumBits() != flat {
				t.Fatalf("got %d bits, want %d", fab.NumBits(), flat)
			}
		})
	}
}

func TestFabricConfigBitLink(t *testing.T) {
	mgr := NewManager()
	fab := NewFabric()

	cfg := mgr.AddBit(true)
	id, err := fab.AddBit(0, cfg)
	if err != nil {
		t.Fatalf("AddBit failed: %v", err)
	}

	got, err := fab.ConfigBit(id)
	if err != nil {
		t.Fatalf("ConfigBit failed: %v", err)
	}
	if got != cfg {
		t.Fatalf("got config bit %d, want %d", got, cfg)
	}

	if _, err := fab.ConfigBit(FabricBitID(7)); err == nil {
		t.Fatalf("expected error for invalid fabric bit id")
	}
}
