package phys

import "math"

// grid is a uniform spatial hash over the tray plane. Dice are binned by
// the XZ cells their bounding circle covers; only dice sharing a cell
// reach the narrow phase.
type grid struct {
	cell  float64
	cells map[[2]int][]*Body
}

func newGrid(cell float64) *grid {
	return &grid{cell: cell, cells: make(map[[2]int][]*Body)}
}

func (g *grid) radius(b *Body) float64 {
	return math.Max(b.HalfExtents.X(), math.Max(b.HalfExtents.Y(), b.HalfExtents.Z()))
}

// pairs returns the candidate die pairs for this substep, each at most
// once.
func (g *grid) pairs(dice []*Body) [][2]*Body {
	for k := range g.cells {
		delete(g.cells, k)
	}

	for _, b := range dice {
		r := g.radius(b)
		minX := int(math.Floor((b.Pos.X() - r) / g.cell))
		maxX := int(math.Floor((b.Pos.X() + r) / g.cell))
		minZ := int(math.Floor((b.Pos.Z() - r) / g.cell))
		maxZ := int(math.Floor((b.Pos.Z() + r) / g.cell))
		for x := minX; x <= maxX; x++ {
			for z := minZ; z <= maxZ; z++ {
				key := [2]int{x, z}
				g.cells[key] = append(g.cells[key], b)
			}
		}
	}

	seen := make(map[[2]int]bool)
	var out [][2]*Body
	for _, bucket := range g.cells {
		for i := 0; i < len(bucket); i++ {
			for j := i + 1; j < len(bucket); j++ {
				a, b := bucket[i], bucket[j]
				key := [2]int{a.ID, b.ID}
				if a.ID > b.ID {
					key = [2]int{b.ID, a.ID}
				}
				if seen[key] {
					continue
				}
				seen[key] = true
				out = append(out, [2]*Body{a, b})
			}
		}
	}
	return out
}
