package main

import (
	"bytes"
	"image/color"
	_ "image/png"
	"path/filepath"

	"github.com/golang/freetype/truetype"
	"github.com/hajimehoshi/ebiten"
	"github.com/hajimehoshi/ebiten/ebitenutil"
	log "github.com/sirupsen/logrus"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// Assets loads scene images lazily from one directory. A missing image is
// logged once and drawn as nothing.
type Assets struct {
	dir     string
	images  map[string]*ebiten.Image
	missing map[string]bool
}

func NewAssets(dir string) *Assets {
	return &Assets{
		dir:     dir,
		images:  make(map[string]*ebiten.Image),
		missing: make(map[string]bool),
	}
}

func (a *Assets) Image(name string) *ebiten.Image {
	if name == "" || a.missing[name] {
		return nil
	}
	if img, ok := a.images[name]; ok {
		return img
	}
	img, _, err := ebitenutil.NewImageFromFile(filepath.Join(a.dir, name), ebiten.FilterDefault)
	if err != nil {
		log.WithField("image", name).Warnf("cant load image %v", err)
		a.missing[name] = true
		return nil
	}
	a.images[name] = img
	return img
}

// LoadFont reads a TrueType face from path, falling back to a fixed bitmap
// face so the game stays playable without font files.
func LoadFont(path string, size float64) font.Face {
	dat, err := ebitenutil.OpenFile(path)
	if err != nil {
		log.WithField("font", path).Warnf("cant open font %v, using basic face", err)
		return basicfont.Face7x13
	}
	defer dat.Close()

	buf := new(bytes.Buffer)
	if _, err := buf.ReadFrom(dat); err != nil {
		log.WithField("font", path).Warnf("cant read font %v, using basic face", err)
		return basicfont.Face7x13
	}
	tt, err := truetype.Parse(buf.Bytes())
	if err != nil {
		log.WithField("font", path).Warnf("cant parse font %v, using basic face", err)
		return basicfont.Face7x13
	}

	const dpi = 72
	return truetype.NewFace(tt, &truetype.Options{
		Size:       size,
		DPI:        dpi,
		SubPixelsX: 100,
		Hinting:    font.HintingFull,
	})
}

// flatImage is a one colour square used for panels and fades.
func flatImage(side int, c color.Color) *ebiten.Image {
	img, err := ebiten.NewImage(side, side, ebiten.FilterDefault)
	if err != nil {
		log.Fatal(err)
	}
	img.Fill(c)
	return img
}
