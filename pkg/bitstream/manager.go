package bitstream

import "fmt"

// ConfigBitID identifies one configuration bit inside a Manager.
type ConfigBitID int

// ConfigBlockID identifies one configuration block inside a Manager.
type ConfigBlockID int

// InvalidBlockID is returned by lookups that find no block.
const InvalidBlockID ConfigBlockID = -1

type configBlock struct {
	name     string
	parent   ConfigBlockID
	children []ConfigBlockID
	bits     []ConfigBitID
}

// Manager owns the full set of configuration bits for a fabric together
// with the hierarchy of named configuration blocks they belong to. Bits are
// stored in the order they are added; that order is the canonical source
// order for every downstream serialization.
type Manager struct {
	bits   []bool
	blocks []configBlock
}

// NewManager returns an empty bitstream manager.
func NewManager() *Manager {
	return &Manager{}
}

// AddBit appends a configuration bit and returns its id.
func (m *Manager) AddBit(value bool) ConfigBitID {
	m.bits = append(m.bits, value)
	return ConfigBitID(len(m.bits) - 1)
}

// NumBits returns the number of configuration bits added so far.
func (m *Manager) NumBits() int {
	return len(m.bits)
}

// BitValue returns the value of the given configuration bit.
func (m *Manager) BitValue(id ConfigBitID) (bool, error) {
	if !m.validBit(id) {
		return false, fmt.Errorf("bitstream: invalid config bit id %d", id)
	}
	return m.bits[id], nil
}

// AddBlock creates a new configuration block with the given name and
// returns its id. The block starts without a parent.
func (m *Manager) AddBlock(name string) ConfigBlockID {
	m.blocks = append(m.blocks, configBlock{name: name, parent: InvalidBlockID})
	return ConfigBlockID(len(m.blocks) - 1)
}

// AddChildBlock records child as a sub-block of parent.
func (m *Manager) AddChildBlock(parent, child ConfigBlockID) error {
	if !m.validBlock(parent) {
		return fmt.Errorf("bitstream: invalid parent block id %d", parent)
	}
	if !m.validBlock(child) {
		return fmt.Errorf("bitstream: invalid child block id %d", child)
	}
	m.blocks[child].parent = parent
	m.blocks[parent].children = append(m.blocks[parent].children, child)
	return nil
}

// AddBitToBlock links an existing configuration bit to a block.
func (m *Manager) AddBitToBlock(block ConfigBlockID, bit ConfigBitID) error {
	if !m.validBlock(block) {
		return fmt.Errorf("bitstream: invalid block id %d", block)
	}
	if !m.validBit(bit) {
		return fmt.Errorf("bitstream: invalid config bit id %d", bit)
	}
	m.blocks[block].bits = append(m.blocks[block].bits, bit)
	return nil
}

// BlockName returns the name of the given block.
func (m *Manager) BlockName(id ConfigBlockID) (string, error) {
	if !m.validBlock(id) {
		return "", fmt.Errorf("bitstream: invalid block id %d", id)
	}
	return m.blocks[id].name, nil
}

// BlockBits returns the configuration bits linked to the given block, in
// the order they were linked.
func (m *Manager) BlockBits(id ConfigBlockID) ([]ConfigBitID, error) {
	if !m.validBlock(id) {
		return nil, fmt.Errorf("bitstream: invalid block id %d", id)
	}
	out := make([]ConfigBitID, len(m.blocks[id].bits))
	copy(out, m.blocks[id].bits)
	return out, nil
}

// ChildBlocks returns the direct children of the given block.
func (m *Manager) ChildBlocks(id ConfigBlockID) ([]ConfigBlockID, error) {
	if !m.validBlock(id) {
		return nil, fmt.Errorf("bitstream: invalid block id %d", id)
	}
	out := make([]ConfigBlockID, len(m.blocks[id].children))
	copy(out, m.blocks[id].children)
	return out, nil
}

// FindBlock returns the id of the first block with the given name, or
// InvalidBlockID when no block matches.
func (m *Manager) FindBlock(name string) ConfigBlockID {
	for i := range m.blocks {
		if m.blocks[i].name == name {
			return ConfigBlockID(i)
		}
	}
	return InvalidBlockID
}

func (m *Manager) validBit(id ConfigBitID) bool {
	return id >= 0 && int(id) < len(m.bits)
}

func (m *Manager) validBlock(id ConfigBlockID) bool {
	return id >= 0 && int(id) < len(m.blocks)
}
