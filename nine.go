package main

import (
	"image"

	"github.com/hajimehoshi/ebiten"
)

// Nine draws a nine-patch panel: corners keep their size, edges and centre stretch.
type Nine struct {
	images              *ebiten.Image
	alpha               float64
	R, G, B, Scale      float64
	positions           [4][2]int
	x, y, width, height int
	scaleCenterWidth    float64
	scaleCenterHeight   float64
	targetPositions     [4][2]float64
}

// NewNine cuts img at border pixels from each side.
func NewNine(img *ebiten.Image, border int, scale float64) *Nine {
	w, h := img.Size()
	return &Nine{
		images: img,
		alpha:  1,
		R:      1, G: 1, B: 1, Scale: scale,
		positions: [4][2]int{{0, 0}, {border, border}, {w - border, h - border}, {w, h}},
	}
}

func (n *Nine) SetColor(r, g, b, alpha float64) {
	n.R, n.G, n.B, n.alpha = r, g, b, alpha
}

// SetRect places the panel and recomputes the stretch of the middle row and column.
func (n *Nine) SetRect(x, y, width, height int) {
	n.x, n.y = x, y
	n.width, n.height = width, height
	n.targetPositions[0][0] = float64(n.x)
	n.targetPositions[0][1] = float64(n.y)

	n.targetPositions[1][0] = float64(n.x) + n.Scale*float64(n.positions[1][0])
	n.targetPositions[1][1] = float64(n.y) + n.Scale*float64(n.positions[1][1])

	n.targetPositions[2][0] = float64(n.x+n.width) - n.Scale*float64(n.positions[3][0]-n.positions[2][0])
	n.targetPositions[2][1] = float64(n.y+n.height) - n.Scale*float64(n.positions[3][1]-n.positions[2][1])

	innerWidth := n.targetPositions[2][0] - n.targetPositions[1][0]
	innerHigh := n.targetPositions[2][1] - n.targetPositions[1][1]

	n.scaleCenterWidth = innerWidth / float64(n.positions[2][0]-n.positions[1][0])
	n.scaleCenterHeight = innerHigh / float64(n.positions[2][1]-n.positions[1][1])
}

func (n *Nine) Draw(screen *ebiten.Image) {
	scalesX := [3]float64{n.Scale, n.scaleCenterWidth, n.Scale}
	scalesY := [3]float64{n.Scale, n.scaleCenterHeight, n.Scale}
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			src := image.Rect(n.positions[col][0], n.positions[row][1], n.positions[col+1][0], n.positions[row+1][1])
			if src.Empty() {
				continue
			}
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(scalesX[col], scalesY[row])
			op.GeoM.Translate(n.targetPositions[col][0], n.targetPositions[row][1])
			op.ColorM.Scale(n.R, n.G, n.B, n.alpha)
			screen.DrawImage(n.images.SubImage(src).(*ebiten.Image), op)
		}
	}
}
