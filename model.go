package huffpack

// Model bundles a frequency table with the tree and codes built from it. A model
// is immutable once built, so the encoder, the decoder and the inspector can share it.
type Model struct {
	freq  *FrequencyTable
	tree  *Tree
	codes *CodeTable
}

// NewModel builds the tree and code table for ft.
func NewModel(ft *FrequencyTable) (*Model, error) {
	tree, err := BuildTree(ft)
	if err != nil {
		return nil, err
	}
	codes, err := GenerateCodes(tree)
	if err != nil {
		return nil, err
	}
	return &Model{freq: ft, tree: tree, codes: codes}, nil
}

// Frequencies returns the table the model was built from.
func (m *Model) Frequencies() *FrequencyTable { return m.freq }

// Tree returns the Huffman tree.
func (m *Model) Tree() *Tree { return m.tree }

// Codes returns the code table.
func (m *Model) Codes() *CodeTable { return m.codes }

// BitLength returns the size of the packed stream in bits.
func (m *Model) BitLength() uint64 {
	return m.codes.BitLength(m.freq)
}
