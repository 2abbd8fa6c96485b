package board

import (
	"fmt"
	"strconv"
)

// geneWidth is the minimum binary gene width. Columns 1..7 encode in exactly
// three bits; column 8 encodes as "1000" because its unsigned binary form
// needs a fourth bit.
const geneWidth = 3

// EncodeGene renders a queen column as a zero-padded unsigned binary string.
func EncodeGene(column int) (string, error) {
	if column < 1 || column > Size {
		return "", fmt.Errorf("queen column out of range: %d", column)
	}
	return fmt.Sprintf("%0*b", geneWidth, column), nil
}

// DecodeGene parses a binary gene string back to its queen column.
func DecodeGene(gene string) (int, error) {
	if len(gene) < geneWidth || len(gene) > geneWidth+1 {
		return 0, fmt.Errorf("malformed gene width: %q", gene)
	}
	v, err := strconv.ParseInt(gene, 2, 32)
	if err != nil {
		return 0, fmt.Errorf("malformed gene %q: %w", gene, err)
	}
	if v < 1 || v > Size {
		return 0, fmt.Errorf("decoded queen column out of range: %d", v)
	}
	return int(v), nil
}

// Encode converts a placement to its binary-string gene form.
func Encode(p Placement) ([]string, error) {
	genes := make([]string, len(p))
	for i, c := range p {
		gene, err := EncodeGene(c)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		genes[i] = gene
	}
	return genes, nil
}

// Decode converts binary-string genes back to a placement.
func Decode(genes []string) (Placement, error) {
	p := make(Placement, len(genes))
	for i, gene := range genes {
		c, err := DecodeGene(gene)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		p[i] = c
	}
	return p, nil
}

// MustDecodeGene is DecodeGene for genes that were produced by EncodeGene.
// A failure here means an operator corrupted an individual, which is a bug,
// not a runtime condition.
func MustDecodeGene(gene string) int {
	c, err := DecodeGene(gene)
	if err != nil {
		panic(fmt.Sprintf("board: corrupt binary gene: %v", err))
	}
	return c
}

// Alphabet returns the Size canonical gene values in column order, encoded
// per the binary codec. Operators treat genes as opaque distinct values, so
// this is the seed material for random binary individuals.
func Alphabet() []string {
	genes := make([]string, Size)
	for i := 0; i < Size; i++ {
		gene, err := EncodeGene(i + 1)
		if err != nil {
			panic(fmt.Sprintf("board: encode alphabet: %v", err))
		}
		genes[i] = gene
	}
	return genes
}
