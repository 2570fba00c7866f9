package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"

	"globemesh/core"
	"globemesh/tessellation"
)

func main() {
	var (
		tessellator = flag.String("tessellator", "all", "Tessellator to report on, or all")
		minLevel    = flag.Int("min", 0, "First level")
		maxLevel    = flag.Int("max", 5, "Last level")
		radiiFlag   = flag.String("radii", "1,1,0.9966471893352525", "Ellipsoid radii x,y,z")
	)
	flag.Parse()

	e, err := parseRadii(*radiiFlag)
	if err != nil {
		log.Fatalf("Invalid -radii: %v", err)
	}

	kinds := tessellation.Kinds()
	if *tessellator != "all" {
		kind, err := tessellation.ParseKind(*tessellator)
		if err != nil {
			log.Fatal(err)
		}
		kinds = []tessellation.Kind{kind}
	}

	fmt.Printf("=== Mesh statistics for %s ===\n\n", e)
	for _, kind := range kinds {
		fmt.Printf("%s:\n", kind)
		fmt.Printf("  %5s %10s %10s %10s %12s\n", "level", "vertices", "triangles", "capacity", "residual")
		for level := *minLevel; level <= *maxLevel; level++ {
			req := tessellation.Request{Kind: kind, Ellipsoid: e, Level: level, Attributes: core.Position}
			m, err := tessellation.Compute(req)
			if err != nil {
				fmt.Printf("  %5d %v\n", level, err)
				continue
			}
			fmt.Printf("  %5d %10d %10d %10d %12.3e\n",
				level, m.NumberOfVertices(), m.NumberOfTriangles(), req.VertexCapacity(), surfaceResidual(surfaceOf(req), m))
		}
		fmt.Println()
	}
}

// surfaceOf is the ellipsoid the mesh was projected onto
func surfaceOf(req tessellation.Request) core.Ellipsoid {
	if req.Kind == tessellation.SubdivisionSphere {
		return core.UnitSphere
	}
	return req.Ellipsoid
}

// surfaceResidual is the largest |(x/a)² + (y/b)² + (z/c)² - 1| over the mesh
func surfaceResidual(e core.Ellipsoid, m *core.Mesh) float64 {
	oorr := e.OneOverRadiiSquared()
	worst := 0.0
	for _, p := range m.Positions() {
		r := p[0]*p[0]*oorr[0] + p[1]*p[1]*oorr[1] + p[2]*p[2]*oorr[2] - 1
		worst = math.Max(worst, math.Abs(r))
	}
	return worst
}

func parseRadii(s string) (core.Ellipsoid, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return core.Ellipsoid{}, fmt.Errorf("want 3 comma-separated values, got %q", s)
	}
	var r [3]float64
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return core.Ellipsoid{}, err
		}
		r[i] = v
	}
	return core.NewEllipsoid(r[0], r[1], r[2])
}
