package engine

import (
	"math/rand"
	"strings"
	"time"
)

// RandSource is the randomness a board draws terrain from. *rand.Rand satisfies it.
type RandSource interface {
	Intn(n int) int
}

// NewRandSource returns a deterministic source for the given seed, or a
// time-seeded one when seed is zero
func NewRandSource(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Board is an immutable terrain grid indexed as cells[x][y]
type Board struct {
	cells [][]TerrainCell
	sizeX int
	sizeY int
}

// NewBoard generates a standard 8x8 board
func NewBoard(rng RandSource) *Board {
	return GenerateBoard(BoardSize, BoardSize, rng)
}

// GenerateBoard fills the top half of the grid at random and mirrors it
// through the board center, so cell (x, y+sizeY/2) equals cell
// (sizeX-1-x, sizeY/2-1-y).
func GenerateBoard(sizeX, sizeY int, rng RandSource) *Board {
	if rng == nil {
		rng = NewRandSource(0)
	}

	cells := make([][]TerrainCell, sizeX)
	for x := range cells {
		cells[x] = make([]TerrainCell, sizeY)
	}

	half := sizeY / 2
	for x := 0; x < sizeX; x++ {
		for y := 0; y < half; y++ {
			cells[x][y] = TerrainTypes[rng.Intn(len(TerrainTypes))]
		}
	}

	for x := 0; x < sizeX; x++ {
		for y := 0; y < half; y++ {
			cells[x][y+half] = cells[sizeX-1-x][half-1-y]
		}
	}

	return &Board{cells: cells, sizeX: sizeX, sizeY: sizeY}
}

// BoardFromCells builds a board from an explicit grid, indexed [x][y].
// The grid is copied.
func BoardFromCells(cells [][]TerrainCell) *Board {
	b := &Board{sizeX: len(cells)}
	if b.sizeX > 0 {
		b.sizeY = len(cells[0])
	}
	b.cells = copyCells(cells)
	return b
}

// Size returns the board dimensions
func (b *Board) Size() (int, int) {
	return b.sizeX, b.sizeY
}

// Contains reports whether p lies on this board
func (b *Board) Contains(p Position) bool {
	return p.X >= 0 && p.X < b.sizeX && p.Y >= 0 && p.Y < b.sizeY
}

// At returns the terrain at p. Callers must check Contains first.
func (b *Board) At(p Position) TerrainCell {
	return b.cells[p.X][p.Y]
}

// Cells returns a copy of the grid, indexed [x][y]
func (b *Board) Cells() [][]TerrainCell {
	return copyCells(b.cells)
}

// IsSymmetric reports whether the grid is point-symmetric about its center
func (b *Board) IsSymmetric() bool {
	for x := 0; x < b.sizeX; x++ {
		for y := 0; y < b.sizeY; y++ {
			if b.cells[x][y] != b.cells[b.sizeX-1-x][b.sizeY-1-y] {
				return false
			}
		}
	}
	return true
}

// String renders the board row by row using terrain symbols
func (b *Board) String() string {
	var sb strings.Builder
	for y := 0; y < b.sizeY; y++ {
		for x := 0; x < b.sizeX; x++ {
			sb.WriteByte(b.cells[x][y].Symbol())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func copyCells(cells [][]TerrainCell) [][]TerrainCell {
	out := make([][]TerrainCell, len(cells))
	for x := range cells {
		out[x] = append([]TerrainCell(nil), cells[x]...)
	}
	return out
}
