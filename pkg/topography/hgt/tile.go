package hgt

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
)

// void marks a missing sample in SRTM data.
const void = -32768

// Tile is one square degree of elevation samples, stored north to south and west to
// east, with the edges shared by the neighbour tiles.
type Tile struct {
	Lat, Lon int
	size     int
	data     []int16
}

// ReadTile loads an SRTM .hgt file: size*size big-endian int16 samples.
func ReadTile(path string, lat, lon int) (*Tile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return ParseTile(b, lat, lon)
}

func ParseTile(b []byte, lat, lon int) (*Tile, error) {
	size := int(math.Sqrt(float64(len(b) / 2)))
	if size < 2 || size*size*2 != len(b) {
		return nil, fmt.Errorf("bad hgt tile size %d bytes", len(b))
	}

	t := &Tile{Lat: lat, Lon: lon, size: size, data: make([]int16, size*size)}

	for i := range t.data {
		v := int16(binary.BigEndian.Uint16(b[2*i:]))
		if v == void {
			v = 0
		}

		t.data[i] = v
	}

	return t, nil
}

func (t *Tile) Size() int {
	return t.size
}

// Elevation interpolates bilinearly at a point inside the tile.
func (t *Tile) Elevation(lat, lon float64) float64 {
	last := float64(t.size - 1)

	fy := clamp((float64(t.Lat+1)-lat)*last, 0, last)
	fx := clamp((lon-float64(t.Lon))*last, 0, last)

	row, col := min(int(fy), t.size-2), min(int(fx), t.size-2)
	dy, dx := fy-float64(row), fx-float64(col)

	z00 := float64(t.at(row, col))
	z01 := float64(t.at(row, col+1))
	z10 := float64(t.at(row+1, col))
	z11 := float64(t.at(row+1, col+1))

	return z00*(1-dx)*(1-dy) + z01*dx*(1-dy) + z10*(1-dx)*dy + z11*dx*dy
}

func (t *Tile) at(row, col int) int16 {
	return t.data[row*t.size+col]
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
