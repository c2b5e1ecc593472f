package imagemap

import (
	"encoding/json"
	"fmt"
	"io/fs"
)

// ManifestName is the manifest file name inside an image directory.
const ManifestName = "images.json"

// manifestJSON is the on-disk form of a manifest:
//
//	{"images": [{"src": "a.jpg", "points": [{"x": 0.5, "y": 0.5, "radius": 0.1}]}]}
//
// A point may also nest its coordinates as {"center": {"x": .., "y": ..}}.
type manifestJSON struct {
	Images []imageJSON `json:"images"`
}

type imageJSON struct {
	Src    string       `json:"src"`
	Points []regionJSON `json:"points"`
}

type regionJSON struct {
	Center *pointJSON `json:"center,omitempty"`
	X      *float64   `json:"x,omitempty"`
	Y      *float64   `json:"y,omitempty"`
	Radius *float64   `json:"radius,omitempty"`
}

type pointJSON struct {
	X *float64 `json:"x"`
	Y *float64 `json:"y"`
}

// ParseManifest decodes a manifest. Images without points are kept with no
// regions; points without a radius get DefaultRegionRadius. Any invalid
// coordinate fails the whole manifest with ErrCodeInvalidManifest, naming
// the image and point.
func ParseManifest(data []byte) ([]*AnnotatedImage, error) {
	var m manifestJSON
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, wrapError(ErrCodeInvalidManifest, err, "decode json")
	}

	images := make([]*AnnotatedImage, 0, len(m.Images))
	for i, ij := range m.Images {
		if ij.Src == "" {
			return nil, newError(ErrCodeInvalidManifest, "image %d: missing src", i)
		}
		img := &AnnotatedImage{ID: ij.Src, Regions: make([]Region, 0, len(ij.Points))}
		for j, rj := range ij.Points {
			r, err := rj.region()
			if err != nil {
				return nil, wrapError(ErrCodeInvalidManifest, err, "image %d (%s) point %d", i, ij.Src, j)
			}
			img.Regions = append(img.Regions, r)
		}
		images = append(images, img)
	}
	return images, nil
}

func (rj regionJSON) region() (Region, error) {
	x, y := rj.X, rj.Y
	if rj.Center != nil {
		x, y = rj.Center.X, rj.Center.Y
	}
	if x == nil || y == nil {
		return Region{}, newError(ErrCodeInvalidPoint, "missing coordinate")
	}
	p, err := NewPoint(*x, *y)
	if err != nil {
		return Region{}, err
	}
	var radius float64
	if rj.Radius != nil {
		radius = *rj.Radius
	}
	return NewRegion(p, radius)
}

// LoadManifest reads and parses the manifest at name in fsys.
func LoadManifest(fsys fs.FS, name string) ([]*AnnotatedImage, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("imagemap: read manifest %s: %w", name, err)
	}
	return ParseManifest(data)
}

// MarshalManifest encodes images the way the region editor writes them:
// indented by two spaces, every region in its nested center form.
func MarshalManifest(images []*AnnotatedImage) ([]byte, error) {
	m := manifestJSON{Images: make([]imageJSON, 0, len(images))}
	for _, img := range images {
		if img == nil {
			continue
		}
		ij := imageJSON{Src: img.ID, Points: make([]regionJSON, 0, len(img.Regions))}
		for _, r := range img.Regions {
			x, y, radius := r.Center.X(), r.Center.Y(), r.Radius
			ij.Points = append(ij.Points, regionJSON{
				Center: &pointJSON{X: &x, Y: &y},
				Radius: &radius,
			})
		}
		m.Images = append(m.Images, ij)
	}
	return json.MarshalIndent(m, "", "  ")
}
