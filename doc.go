// Package imagemap displays a set of annotated images as an interactive
// map for [Ebitengine]: every image carries normalized points of interest,
// the points are spread across the window, and moving the pointer shows the
// single image whose point is nearest.
//
// # Quick start
//
// The simplest way to get started is [Run], which opens a window and game
// loop for you:
//
//	images, err := imagemap.LoadManifest(os.DirFS(dir), imagemap.ManifestName)
//	// ... handle err ...
//	v := imagemap.NewViewer(images, os.DirFS(dir), imagemap.DefaultConfig())
//	imagemap.Run(v, imagemap.RunConfig{Title: "Map", Width: 1024, Height: 768})
//
// The engine below the viewer has no ebiten dependency in its API and can
// be driven directly. [NewMap] takes any [Renderer]:
//
//	m := imagemap.NewMap(images, viewport, cfg, renderer)
//	m.ImageLoaded(0, 1600, 1200) // once per image, or ImageFailed
//	m.PointerMove(x, y)          // draws the nearest image
//	m.Advance(dt)                // fades the hint circle
//
// # Layout
//
// Each region is placed where its image would put it when scaled to cover
// the viewport ([PlaceRegion]). [Relax] then pushes crowded points apart
// within their image's footprint clamped to the viewport, weighting each
// pair by the regions' radii. The result is indexed by a Delaunay-backed
// [SpatialIndex] answering nearest-point queries.
//
// # Interaction
//
// The [Controller] turns pointer positions into draw signals, skipping the
// costly image draw when the nearest point did not change, and fades a
// hint circle at the pointer in fixed decay ticks.
//
// # Loading
//
// [Loader] decodes images with bounded concurrency, delivering a small
// preview first and the full image later. A [LoadBarrier] holds the first
// layout until every image has loaded or failed.
//
// Selection changes can be forwarded to an ECS world with the [Donburi]
// adapter in imagemap/ecs.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package imagemap
