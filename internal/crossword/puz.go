package crossword

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"sort"

	"wordgrid/internal/models"
)

// AcrossLite .puz v1.3 layout offsets.
const (
	puzMagic         = "ACROSS&DOWN\x00"
	puzVersion       = "1.3\x00"
	offFileChecksum  = 0x00
	offCIBChecksum   = 0x0E
	offCIB           = 0x2C
	cibLength        = 8
	maxHeaderField   = 50
	puzzleTypeNormal = 1
	solutionUnsolved = 0
)

// EncodePuz serializes the puzzle into the AcrossLite .puz binary format,
// with the CIB and overall file checksums filled in. Clues are emitted in
// grid-number order, across before down on shared numbers.
func EncodePuz(p *Puzzle, copyright string) ([]byte, error) {
	if len(p.Words) == 0 {
		return nil, fmt.Errorf("puzzle has no words")
	}
	size := p.Metadata.Size
	if size <= 0 || size > 0xFF {
		return nil, fmt.Errorf("invalid grid size %d", size)
	}

	// Solution uses '.' for black squares; the player grid uses '-' for
	// every fillable cell.
	var solution, player bytes.Buffer
	for _, row := range p.Grid {
		for _, cell := range row {
			if cell.Black {
				solution.WriteByte('.')
				player.WriteByte('.')
			} else {
				solution.WriteByte(cell.Letter[0])
				player.WriteByte('-')
			}
		}
	}

	words := append([]models.PlacedWord(nil), p.Words...)
	sort.Slice(words, func(i, j int) bool {
		if words[i].Number != words[j].Number {
			return words[i].Number < words[j].Number
		}
		return words[i].Direction == models.DirectionAcross
	})

	buf := &bytes.Buffer{}
	buf.Write(make([]byte, 2)) // file checksum, patched below
	buf.WriteString(puzMagic)
	buf.Write(make([]byte, 2))  // CIB checksum, patched below
	buf.Write(make([]byte, 8))  // masked checksums, unused
	buf.WriteString(puzVersion)
	buf.Write(make([]byte, 2))  // reserved
	buf.Write(make([]byte, 2))  // scrambled checksum
	buf.Write(make([]byte, 12)) // reserved

	// CIB block at 0x2C.
	buf.WriteByte(byte(size)) // width
	buf.WriteByte(byte(size)) // height
	writeUint16(buf, uint16(len(words)))
	writeUint16(buf, puzzleTypeNormal)
	writeUint16(buf, solutionUnsolved)

	buf.Write(solution.Bytes())
	buf.Write(player.Bytes())

	writeString(buf, p.Metadata.Title, maxHeaderField)
	writeString(buf, p.Metadata.Author, maxHeaderField)
	writeString(buf, copyright, maxHeaderField)
	for _, w := range words {
		writeString(buf, w.Clue, 0)
	}
	buf.WriteByte(0) // notes

	data := buf.Bytes()

	cib := checksum(data[offCIB:offCIB+cibLength], 0)
	binary.LittleEndian.PutUint16(data[offCIBChecksum:], cib)

	file := checksum(data[offCIB:], 0)
	binary.LittleEndian.PutUint16(data[offFileChecksum:], file)

	return data, nil
}

// writeString writes a latin-1 NUL-terminated string field. A non-zero max
// truncates the field (header strings are capped at 50 bytes); non-latin-1
// runes are replaced.
func writeString(buf *bytes.Buffer, s string, max int) {
	n := 0
	for _, r := range s {
		if max > 0 && n >= max {
			break
		}
		if r > 0xFF {
			buf.WriteByte('?')
		} else {
			buf.WriteByte(byte(r))
		}
		n++
	}
	buf.WriteByte(0)
}

func writeUint16(buf *bytes.Buffer, v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	buf.Write(b[:])
}

// checksum is the AcrossLite rotate-and-add region checksum.
func checksum(data []byte, sum uint16) uint16 {
	for _, b := range data {
		sum = (sum >> 1) | ((sum & 1) << 15)
		sum += uint16(b)
	}
	return sum
}
