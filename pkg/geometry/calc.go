package geometry

import (
	"math"
)

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b Point2D) Point2D {
	return Point2D{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

// PointOnCircle returns the point at the given angle (radians, counter-
// clockwise from the positive X axis) on a circle.
func PointOnCircle(center Point2D, radius, angle float64) Point2D {
	return Point2D{
		X: center.X + radius*math.Cos(angle),
		Y: center.Y + radius*math.Sin(angle),
	}
}

// LineIntersection computes the intersection of the infinite lines through
// (a1,a2) and (b1,b2). Returns false for parallel or degenerate input.
func LineIntersection(a1, a2, b1, b2 Point2D) (Point2D, bool) {
	d1 := a2.Sub(a1)
	d2 := b2.Sub(b1)
	if d1.Magnitude() < Epsilon || d2.Magnitude() < Epsilon {
		return Point2D{}, false
	}

	det := d1.X*d2.Y - d1.Y*d2.X
	if math.Abs(det) < Epsilon {
		return Point2D{}, false
	}

	t := ((b1.X-a1.X)*d2.Y - (b1.Y-a1.Y)*d2.X) / det
	return Point2D{X: a1.X + t*d1.X, Y: a1.Y + t*d1.Y}, true
}

// SegmentIntersection computes the intersection of the closed segments
// a1-a2 and b1-b2. Returns false when they do not cross.
func SegmentIntersection(a1, a2, b1, b2 Point2D) (Point2D, bool) {
	d1 := a2.Sub(a1)
	d2 := b2.Sub(b1)
	if d1.Magnitude() < Epsilon || d2.Magnitude() < Epsilon {
		return Point2D{}, false
	}

	det := d1.X*d2.Y - d1.Y*d2.X
	if math.Abs(det) < Epsilon {
		return Point2D{}, false
	}

	t := ((b1.X-a1.X)*d2.Y - (b1.Y-a1.Y)*d2.X) / det
	u := ((b1.X-a1.X)*d1.Y - (b1.Y-a1.Y)*d1.X) / det
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return Point2D{}, false
	}
	return Point2D{X: a1.X + t*d1.X, Y: a1.Y + t*d1.Y}, true
}

// PerpendicularFoot returns the orthogonal projection of point onto the
// infinite line through lineStart and lineEnd. A degenerate (zero-length)
// line yields its start point.
func PerpendicularFoot(point, lineStart, lineEnd Point2D) Point2D {
	dir := lineEnd.Sub(lineStart)
	lenSq := dir.Dot(dir)
	if lenSq < Epsilon*Epsilon {
		return lineStart
	}
	t := point.Sub(lineStart).Dot(dir) / lenSq
	return lineStart.Add(dir.Scale(t))
}

// SegmentClosestPoint returns the point on the closed segment a-b closest
// to p.
func SegmentClosestPoint(p, a, b Point2D) Point2D {
	dir := b.Sub(a)
	lenSq := dir.Dot(dir)
	if lenSq < Epsilon*Epsilon {
		return a
	}
	t := p.Sub(a).Dot(dir) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return a.Add(dir.Scale(t))
}

// SegmentParam returns the projection parameter of p onto the infinite line
// through a-b (0 at a, 1 at b), and false for a degenerate segment.
func SegmentParam(p, a, b Point2D) (float64, bool) {
	dir := b.Sub(a)
	lenSq := dir.Dot(dir)
	if lenSq < Epsilon*Epsilon {
		return 0, false
	}
	return p.Sub(a).Dot(dir) / lenSq, true
}

// TangentPoints returns the two points where lines through the external
// point touch the circle. Returns false when the point lies inside or on
// the circle, or the circle is degenerate.
func TangentPoints(external, center Point2D, radius float64) (Point2D, Point2D, bool) {
	if radius < Epsilon {
		return Point2D{}, Point2D{}, false
	}
	d := external.Distance(center)
	if d <= radius+Epsilon {
		return Point2D{}, Point2D{}, false
	}

	// Angle from center to the external point, spread by the tangent angle.
	base := math.Atan2(external.Y-center.Y, external.X-center.X)
	spread := math.Acos(radius / d)
	return PointOnCircle(center, radius, base+spread),
		PointOnCircle(center, radius, base-spread), true
}

// CircleClosestPoint returns the point on the circle perimeter closest to p.
// For p at the center the point at angle zero is returned.
func CircleClosestPoint(p, center Point2D, radius float64) Point2D {
	dir := p.Sub(center)
	if dir.Magnitude() < Epsilon {
		return PointOnCircle(center, radius, 0)
	}
	return center.Add(dir.Normalized().Scale(radius))
}

// SegmentCircleIntersections returns the 0, 1 or 2 points where the closed
// segment a-b crosses the circle perimeter.
func SegmentCircleIntersections(a, b, center Point2D, radius float64) []Point2D {
	d := b.Sub(a)
	lenSq := d.Dot(d)
	if lenSq < Epsilon*Epsilon || radius < Epsilon {
		return nil
	}

	f := a.Sub(center)
	// Quadratic in the segment parameter t.
	qa := lenSq
	qb := 2 * f.Dot(d)
	qc := f.Dot(f) - radius*radius
	disc := qb*qb - 4*qa*qc
	if disc < 0 {
		return nil
	}

	sqrtDisc := math.Sqrt(disc)
	var points []Point2D
	for _, t := range []float64{(-qb - sqrtDisc) / (2 * qa), (-qb + sqrtDisc) / (2 * qa)} {
		if t < 0 || t > 1 {
			continue
		}
		p := a.Add(d.Scale(t))
		if len(points) == 1 && points[0].Distance(p) < Epsilon {
			continue // tangent: both roots coincide
		}
		points = append(points, p)
	}
	return points
}

// CircleCircleIntersections returns the 0, 1 or 2 points where two circle
// perimeters cross.
func CircleCircleIntersections(c1 Point2D, r1 float64, c2 Point2D, r2 float64) []Point2D {
	if r1 < Epsilon || r2 < Epsilon {
		return nil
	}
	d := c1.Distance(c2)
	if d < Epsilon || d > r1+r2 || d < math.Abs(r1-r2) {
		return nil
	}

	// Distance from c1 to the chord midpoint along the center line.
	a := (r1*r1 - r2*r2 + d*d) / (2 * d)
	hSq := r1*r1 - a*a
	if hSq < 0 {
		hSq = 0
	}
	h := math.Sqrt(hSq)

	dir := c2.Sub(c1).Scale(1 / d)
	mid := c1.Add(dir.Scale(a))
	if h < Epsilon {
		return []Point2D{mid}
	}
	perp := Point2D{X: -dir.Y, Y: dir.X}
	return []Point2D{mid.Add(perp.Scale(h)), mid.Sub(perp.Scale(h))}
}

// NormalizeAngle maps an angle into [0, 2π).
func NormalizeAngle(angle float64) float64 {
	a := math.Mod(angle, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// AngleOnArc reports whether angle lies within the counter-clockwise sweep
// from startAngle to endAngle.
func AngleOnArc(angle, startAngle, endAngle float64) bool {
	a := NormalizeAngle(angle)
	start := NormalizeAngle(startAngle)
	end := NormalizeAngle(endAngle)
	if math.Abs(start-end) < Epsilon {
		return true // full circle
	}
	if start <= end {
		return a >= start-Epsilon && a <= end+Epsilon
	}
	return a >= start-Epsilon || a <= end+Epsilon
}

// ArcMidAngle returns the angle halfway along the counter-clockwise sweep
// from startAngle to endAngle.
func ArcMidAngle(startAngle, endAngle float64) float64 {
	start := NormalizeAngle(startAngle)
	end := NormalizeAngle(endAngle)
	if end < start {
		end += 2 * math.Pi
	}
	return NormalizeAngle((start + end) / 2)
}
