package geometry

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// FitLine fits a straight line through a set of points by total least
// squares and returns the centroid together with the unit direction of the
// dominant axis. Needs at least 2 non-coincident points.
func FitLine(points []Point2D) (Point2D, Point2D, error) {
	n := len(points)
	if n < 2 {
		return Point2D{}, Point2D{}, fmt.Errorf("need at least 2 points, got %d", n)
	}

	center := Centroid(points)

	// Centered coordinate matrix; the dominant right singular vector is the
	// line direction.
	M := mat.NewDense(n, 2, nil)
	for i, p := range points {
		M.Set(i, 0, p.X-center.X)
		M.Set(i, 1, p.Y-center.Y)
	}

	var svd mat.SVD
	if ok := svd.Factorize(M, mat.SVDThinV); !ok {
		return Point2D{}, Point2D{}, fmt.Errorf("SVD factorization failed")
	}

	if svd.Values(nil)[0] < Epsilon {
		return Point2D{}, Point2D{}, fmt.Errorf("points are coincident")
	}

	var v mat.Dense
	svd.VTo(&v)
	dir := Point2D{X: v.At(0, 0), Y: v.At(1, 0)}
	return center, dir.Normalized(), nil
}
