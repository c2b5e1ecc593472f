package imagemap

import (
	"time"
)

// debugStats holds timing and size metrics of one layout pass.
// Only logged when Config.Debug is true.
type debugStats struct {
	placeTime    time.Duration // placement and relaxation
	indexTime    time.Duration
	imageCount   int
	skipped      int // images with unknown size
	pointCount   int
	rounds       int
	triangulated bool
}

// debugLog reports a layout pass at debug level.
func (m *Map) debugLog(stats debugStats) {
	if !m.cfg.Debug {
		return
	}
	m.logger.Debug("layout",
		"images", stats.imageCount,
		"skipped", stats.skipped,
		"points", stats.pointCount,
		"rounds", stats.rounds,
		"place", stats.placeTime,
		"index", stats.indexTime,
		"total", stats.placeTime+stats.indexTime,
	)
	if stats.pointCount >= 3 && !stats.triangulated {
		m.logger.Warn("points are collinear or coincident; nearest-point queries use a linear scan",
			"points", stats.pointCount)
	}
}

// debugCheckSelection panics when a selection refers to a layout point that
// does not exist. Only called in debug mode.
func debugCheckSelection(sel Selection, points []LayoutPoint) {
	if sel.Index < 0 || sel.Index >= len(points) {
		panic("imagemap debug: selection index out of range")
	}
}

// countRegions returns the total number of regions across images.
func countRegions(images []*AnnotatedImage) int {
	n := 0
	for _, img := range images {
		if img != nil {
			n += len(img.Regions)
		}
	}
	return n
}
