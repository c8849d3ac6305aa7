package geo_test

import (
	"fmt"

	"github.com/matzehuels/trailblazer/pkg/geo"
)

func ExampleGraph() {
	g := geo.New()
	g.AddIntersection("A", 0, 0)
	g.AddIntersection("B", 0, 1)
	g.AddIntersection("C", 1, 1)
	_, _ = g.AddRoad("AB", "A", "B")
	_, _ = g.AddRoad("BC", "B", "C")

	fmt.Println("Intersections:", g.IntersectionCount())
	fmt.Println("Roads:", g.RoadCount())
	fmt.Println("Degree of B:", g.Degree("B"))
	// Output:
	// Intersections: 3
	// Roads: 2
	// Degree of B: 2
}

func ExampleGraph_AddRoad_unknown() {
	g := geo.New()
	g.AddIntersection("A", 0, 0)

	_, err := g.AddRoad("AX", "A", "X")
	fmt.Println(err)
	fmt.Println("Roads:", g.RoadCount())
	// Output:
	// NOT_FOUND: road "AX": intersection "X": unknown intersection
	// Roads: 0
}

func ExampleHaversine() {
	miles := geo.Haversine(0, 0, 0, 1)
	fmt.Printf("%.2f miles\n", miles)
	// Output:
	// 68.94 miles
}
