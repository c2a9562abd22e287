package cluster

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClusterize_GroupsByThreshold(t *testing.T) {
	items := []int{0, 1, 2, 10, 11, 30}
	dist := func(a, b any) float64 {
		x, y := a.(int), b.(int)
		d := x - y
		if d < 0 {
			d = -d
		}
		return float64(d)
	}

	clusters := Clusterize(items, Options{Distance: dist, SplittingDistance: 3})
	assert.Len(t, clusters, 3, "expected {0,1,2}, {10,11}, {30} as three clusters")

	sizes := make(map[int]int)
	for _, c := range clusters {
		sizes[len(c.Items)]++
	}
	assert.Equal(t, 1, sizes[3], "one cluster of size 3")
	assert.Equal(t, 1, sizes[2], "one cluster of size 2")
	assert.Equal(t, 1, sizes[1], "one cluster of size 1")
}

func TestClusterize_Empty(t *testing.T) {
	clusters := Clusterize[int](nil, Options{Distance: func(a, b any) float64 { return 0 }, SplittingDistance: 1})
	assert.Nil(t, clusters)
}

func TestClusterize_Singleton(t *testing.T) {
	clusters := Clusterize([]string{"only"}, Options{
		Distance:          func(a, b any) float64 { return 0 },
		SplittingDistance: 1,
	})
	assert.Len(t, clusters, 1)
	assert.Equal(t, []string{"only"}, clusters[0].Items)
}

func TestSum(t *testing.T) {
	c := &Cluster[int]{Items: []int{1, 2, 3}}
	total := Sum(c, func(x int) float64 { return float64(x) * 2 })
	assert.Equal(t, 12.0, total)
}
