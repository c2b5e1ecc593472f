// Caption forwards map selections into a Donburi world. A subscriber system
// keeps a caption naming the image on screen and how often it changed.
package main

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"

	"github.com/phanxgames/imagemap"
	"github.com/phanxgames/imagemap/ecs"
)

const (
	windowTitle = "imagemap - ECS Caption Example"
	screenW     = 800
	screenH     = 600
)

type game struct {
	world    donburi.World
	m        *imagemap.Map
	renderer *imagemap.EbitenRenderer
	caption  string
	changes  int
	w, h     int
}

func (g *game) onSelection(_ donburi.World, e imagemap.SelectionEvent) {
	g.changes++
	g.caption = fmt.Sprintf("%s region %d (%d changes)", e.ImageID, e.RegionIndex, g.changes)
}

func (g *game) Update() error {
	x, y := ebiten.CursorPosition()
	if g.m.Viewport().Contains(float64(x), float64(y)) {
		g.m.PointerMove(float64(x), float64(y))
	} else {
		g.m.PointerLeave()
	}
	tick := time.Second / time.Duration(ebiten.TPS())
	g.m.Advance(tick)
	g.renderer.Update(float32(tick.Seconds()))
	events.ProcessAllEvents(g.world)
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen)
	ebitenutil.DebugPrint(screen, g.caption)
}

func (g *game) Layout(w, h int) (int, int) {
	if w != g.w || h != g.h {
		g.w, g.h = w, h
		g.m.Resize(imagemap.Rect{Width: float64(w), Height: float64(h)})
	}
	return w, h
}

func main() {
	names := []string{"dunes", "harbor", "forest"}
	shades := []color.NRGBA{
		{R: 210, G: 170, B: 90, A: 255},
		{R: 60, G: 110, B: 170, A: 255},
		{R: 50, G: 130, B: 70, A: 255},
	}

	images := make([]*imagemap.AnnotatedImage, len(names))
	for i, name := range names {
		img := &imagemap.AnnotatedImage{ID: name}
		for _, c := range [][2]float64{{0.3, 0.4}, {0.7, 0.6}} {
			r, err := imagemap.NewRegion(imagemap.MustPoint(c[0], c[1]), 0)
			if err != nil {
				log.Fatal(err)
			}
			img.AddRegion(r)
		}
		images[i] = img
	}

	cfg := imagemap.DefaultConfig()
	renderer := imagemap.NewEbitenRenderer(len(images), cfg)
	m := imagemap.NewMap(images, imagemap.Rect{Width: screenW, Height: screenH}, cfg, renderer)

	g := &game{world: donburi.NewWorld(), m: m, renderer: renderer}
	ecs.SelectionEventType.Subscribe(g.world, g.onSelection)
	m.SetEventSink(ecs.NewDonburiSink(g.world))

	for i, c := range shades {
		renderer.SetSource(i, solid(640, 480, c))
		m.ImageLoaded(i, 640, 480)
	}

	ebiten.SetWindowTitle(windowTitle)
	ebiten.SetWindowSize(screenW, screenH)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}

func solid(w, h int, c color.NRGBA) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}
