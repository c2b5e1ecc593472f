package imagemap

import "math"

// boundaryEpsilon is the smallest distance to a bounds edge used by the
// boundary term, so a point resting on an edge gets a large but finite push.
const boundaryEpsilon = 1e-3

// RelaxConfig holds the force constants of the relaxation.
type RelaxConfig struct {
	SpringConstant      float64 `toml:"spring_constant"`
	MaxForceComponent   float64 `toml:"max_force_component"`
	MaxMovementPerRound float64 `toml:"max_movement_per_round"`
	// BoundaryStrength scales the push away from a point's bounds edges.
	BoundaryStrength float64 `toml:"boundary_strength"`
	// MinSeparation replaces the separation vector of coincident points.
	MinSeparation float64 `toml:"min_separation"`
}

// DefaultRelaxConfig returns the constants tuned for tens of points on a
// phone- to desktop-sized viewport.
func DefaultRelaxConfig() RelaxConfig {
	return RelaxConfig{
		SpringConstant:      200,
		MaxForceComponent:   100,
		MaxMovementPerRound: 20,
		BoundaryStrength:    10,
		MinSeparation:       1,
	}
}

// Relax spreads points apart for the given number of rounds, in place.
//
// Every unordered pair repels with a force proportional to the square of
// the pair's combined weight over the mean weight, and inversely
// proportional to their squared distance. Each point is also pushed away
// from the edges of its own Bounds. Force components and per-round
// movement are clamped, and positions are clamped to Bounds after every
// round. There is no convergence check: exactly rounds rounds run.
// Weights are never modified.
func Relax(points []LayoutPoint, rounds int, cfg RelaxConfig) {
	if rounds <= 0 || len(points) == 0 {
		return
	}

	avg := averageWeight(points)
	forces := make([]Vec2, len(points))

	for round := 0; round < rounds; round++ {
		for i := range forces {
			forces[i] = Vec2{}
		}
		for i := range points {
			p := &points[i]
			for j := 0; j < i; j++ {
				fx, fy := pairForce(p, &points[j], avg, cfg)
				forces[i].X += fx
				forces[i].Y += fy
				forces[j].X -= fx
				forces[j].Y -= fy
			}
			bx, by := boundaryForce(p, cfg)
			forces[i].X += bx
			forces[i].Y += by
		}
		for i := range points {
			p := &points[i]
			mx := clampMagnitude(forces[i].X, cfg.MaxMovementPerRound)
			my := clampMagnitude(forces[i].Y, cfg.MaxMovementPerRound)
			p.Position.X, p.Position.Y = p.Bounds.Clamp(p.Position.X+mx, p.Position.Y+my)
		}
	}
}

// averageWeight returns the mean weight, or 1 when it is not positive so
// zero-weight inputs produce zero pair forces instead of NaN.
func averageWeight(points []LayoutPoint) float64 {
	var sum float64
	for i := range points {
		sum += points[i].Weight
	}
	avg := sum / float64(len(points))
	if !(avg > 0) || math.IsInf(avg, 0) {
		return 1
	}
	return avg
}

// pairForce returns the repulsion acting on p away from q.
func pairForce(p, q *LayoutPoint, avg float64, cfg RelaxConfig) (float64, float64) {
	dx := p.Position.X - q.Position.X
	dy := p.Position.Y - q.Position.Y
	d2 := dx*dx + dy*dy
	if d2 < 1e-12 {
		// Coincident points: push along a fixed diagonal so the later point
		// moves down-right and the earlier one up-left.
		sep := cfg.MinSeparation
		if !(sep > 0) {
			sep = 1
		}
		dx = sep / math.Sqrt2
		dy = sep / math.Sqrt2
		d2 = sep * sep
	}
	w := p.Weight + q.Weight
	scale := w * w / avg / d2
	fx := clampMagnitude(dx*cfg.SpringConstant*scale, cfg.MaxForceComponent)
	fy := clampMagnitude(dy*cfg.SpringConstant*scale, cfg.MaxForceComponent)
	return fx, fy
}

// boundaryForce pushes p inward from each edge of its bounds, growing as
// 1/distance. Axes with no room to move contribute nothing.
func boundaryForce(p *LayoutPoint, cfg RelaxConfig) (float64, float64) {
	k := cfg.BoundaryStrength * cfg.SpringConstant
	var fx, fy float64
	if p.Bounds.Width > 0 {
		fx = k * edgeRepulsion(p.Position.X-p.Bounds.X, p.Bounds.Right()-p.Position.X)
	}
	if p.Bounds.Height > 0 {
		fy = k * edgeRepulsion(p.Position.Y-p.Bounds.Y, p.Bounds.Bottom()-p.Position.Y)
	}
	return fx, fy
}

// edgeRepulsion is positive (toward max) when the point is nearer the min
// edge and negative when nearer the max edge.
func edgeRepulsion(toMin, toMax float64) float64 {
	return 1/math.Max(toMin, boundaryEpsilon) - 1/math.Max(toMax, boundaryEpsilon)
}

func clampMagnitude(v, limit float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return clamp(v, -limit, limit)
}
