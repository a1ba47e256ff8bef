package geometry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Polygon is a closed simple polygon given by its vertices.
type Polygon []r2.Vec

// PointInPolygon reports whether p lies inside the polygon (even-odd rule).
func PointInPolygon(poly Polygon, p r2.Vec) bool {
	inside := false
	n := len(poly)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := poly[i], poly[j]
		if (a.Y > p.Y) != (b.Y > p.Y) &&
			p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			inside = !inside
		}
	}
	return inside
}

// ClosestPointOnSegment returns the point of segment ab nearest to p.
func ClosestPointOnSegment(a, b, p r2.Vec) r2.Vec {
	e := r2.Sub(b, a)
	l2 := r2.Dot(e, e)
	if l2 == 0 {
		return a
	}
	t := r2.Dot(r2.Sub(p, a), e) / l2
	t = math.Max(0, math.Min(1, t))
	return r2.Add(a, r2.Scale(t, e))
}

// closestPointOnBoundary returns the point on the polygon's edges nearest p.
func closestPointOnBoundary(poly Polygon, p r2.Vec) r2.Vec {
	best := poly[0]
	bestD := math.Inf(1)
	for i := range poly {
		q := ClosestPointOnSegment(poly[i], poly[(i+1)%len(poly)], p)
		if d := r2.Norm2(r2.Sub(q, p)); d < bestD {
			best, bestD = q, d
		}
	}
	return best
}

// CircleTouchesPolygon reports whether a circle overlaps the polygon.
func CircleTouchesPolygon(poly Polygon, radius float64, center r2.Vec) bool {
	if len(poly) == 0 {
		return false
	}
	if PointInPolygon(poly, center) {
		return true
	}
	return Within(closestPointOnBoundary(poly, center), center, radius)
}

// raySegmentT intersects start+t*delta with segment ab, returning t in [0,1].
func raySegmentT(a, b, start, delta r2.Vec) (float64, bool) {
	e := r2.Sub(b, a)
	denom := r2.Cross(delta, e)
	if denom == 0 {
		return 0, false
	}
	w := r2.Sub(a, start)
	t := r2.Cross(w, e) / denom
	u := r2.Cross(w, delta) / denom
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return 0, false
	}
	return t, true
}

// edgeNormal returns the unit normal of edge ab that faces against delta.
func edgeNormal(a, b, delta r2.Vec) r2.Vec {
	n := WithLen(Perp(r2.Sub(b, a)), 1)
	if r2.Dot(n, delta) > 0 {
		n = r2.Scale(-1, n)
	}
	return n
}

// rayPolygonT returns the earliest t at which the ray crosses the polygon
// boundary, and the normal of the crossed edge. A start inside the polygon hits
// at t=0 with a normal opposing the motion.
func rayPolygonT(poly Polygon, start, delta r2.Vec) (float64, r2.Vec, bool) {
	if len(poly) < 2 {
		return 0, Zero, false
	}
	if PointInPolygon(poly, start) {
		return 0, WithLen(r2.Scale(-1, delta), 1), true
	}
	best := math.Inf(1)
	var normal r2.Vec
	for i := range poly {
		a, b := poly[i], poly[(i+1)%len(poly)]
		if t, ok := raySegmentT(a, b, start, delta); ok && t < best {
			best = t
			normal = edgeNormal(a, b, delta)
		}
	}
	if math.IsInf(best, 1) {
		return 0, Zero, false
	}
	return best, normal, true
}

// RayHitsPolygon tests a ray travelling delta from start against the polygon.
// On a hit it returns the intersection point and the normal of the edge hit.
func RayHitsPolygon(poly Polygon, start, delta r2.Vec) (point, normal r2.Vec, ok bool) {
	t, normal, ok := rayPolygonT(poly, start, delta)
	if !ok {
		return Zero, Zero, false
	}
	return r2.Add(start, r2.Scale(t, delta)), normal, true
}

// circlePolygonT returns the earliest t at which a circle of the given radius,
// moving from start, touches the polygon, plus the contact point.
func circlePolygonT(poly Polygon, radius float64, start, delta r2.Vec) (float64, r2.Vec, bool) {
	if len(poly) < 2 {
		return 0, Zero, false
	}
	if PointInPolygon(poly, start) {
		return 0, start, true
	}
	// A circle already in contact only hits if it is moving into the surface.
	if contact := closestPointOnBoundary(poly, start); Within(contact, start, radius) &&
		r2.Dot(delta, r2.Sub(start, contact)) < 0 {
		return 0, contact, true
	}
	best := math.Inf(1)
	var impact r2.Vec
	for i := range poly {
		a, b := poly[i], poly[(i+1)%len(poly)]
		// Edge faces: sweep the centre against the edge pushed out by radius.
		n := edgeNormal(a, b, delta)
		if r2.Dot(n, delta) != 0 {
			off := r2.Scale(radius, n)
			if t, ok := raySegmentT(r2.Add(a, off), r2.Add(b, off), start, delta); ok && t < best {
				best = t
				impact = r2.Sub(r2.Add(start, r2.Scale(t, delta)), off)
			}
		}
		// Corners. Leaving a corner the circle already touches is not a hit.
		if Within(a, start, radius) && r2.Dot(delta, r2.Sub(start, a)) >= 0 {
			continue
		}
		if t, ok := rayCircleT(a, radius, start, delta); ok && t < best {
			best = t
			impact = a
		}
	}
	if math.IsInf(best, 1) {
		return 0, Zero, false
	}
	return best, impact, true
}

// CircleHitsPolygon tests a circle travelling delta from start against the
// polygon. On a hit it returns the circle's centre at first contact and the
// point of contact.
func CircleHitsPolygon(poly Polygon, radius float64, start, delta r2.Vec) (pos, impact r2.Vec, ok bool) {
	t, impact, ok := circlePolygonT(poly, radius, start, delta)
	if !ok {
		return Zero, Zero, false
	}
	return r2.Add(start, r2.Scale(t, delta)), impact, true
}
