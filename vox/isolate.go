package vox

import "sort"

// Fragment is a cluster moved out of a source grid. Offset is the voxel-space
// min corner of the cluster inside the source grid.
type Fragment struct {
	Grid   *VoxelGrid
	Offset [3]int
}

var neighbors6 = [6][3]int{
	{1, 0, 0}, {-1, 0, 0},
	{0, 1, 0}, {0, -1, 0},
	{0, 0, 1}, {0, 0, -1},
}

// FindClusters labels the 6-connected components of active voxels. Clusters
// come out in discovery order (ascending linear index of their first voxel)
// and each lists its linear indices in breadth-first order.
func FindClusters(g *VoxelGrid) [][]int {
	if g == nil {
		return nil
	}
	visited := make([]bool, len(g.Voxels))
	queue := make([]int, 0, 256)
	var clusters [][]int

	for i := range g.Voxels {
		if visited[i] || !g.Voxels[i].Active {
			continue
		}
		cluster := make([]int, 0, 16)
		queue = append(queue[:0], i)
		visited[i] = true
		for head := 0; head < len(queue); head++ {
			idx := queue[head]
			cluster = append(cluster, idx)
			x, y, z := g.ToCoords(idx)
			for _, d := range neighbors6 {
				nx, ny, nz := x+d[0], y+d[1], z+d[2]
				if !g.InBounds(nx, ny, nz) {
					continue
				}
				n := g.ToIndex(nx, ny, nz)
				if visited[n] || !g.Voxels[n].Active {
					continue
				}
				visited[n] = true
				queue = append(queue, n)
			}
		}
		clusters = append(clusters, cluster)
	}
	return clusters
}

// largestCluster returns the index of the biggest cluster; ties keep the
// first one found.
func largestCluster(clusters [][]int) int {
	best, bestSize := -1, 0
	for i, c := range clusters {
		if len(c) > bestSize {
			best, bestSize = i, len(c)
		}
	}
	return best
}

// Isolate splits disconnected pieces off g. The largest cluster stays in g.
// Every other cluster with at least minClusterSize voxels is a candidate;
// candidates are taken largest first and at most maxFragments are extracted.
// Candidates past the cap stay in g untouched.
func Isolate(g *VoxelGrid, minClusterSize, maxFragments int) []Fragment {
	if g == nil || g.IsEmpty() {
		return nil
	}
	clusters := FindClusters(g)
	if len(clusters) < 2 {
		return nil
	}
	body := largestCluster(clusters)

	candidates := make([]int, 0, len(clusters)-1)
	for i, c := range clusters {
		if i == body || len(c) < minClusterSize {
			continue
		}
		candidates = append(candidates, i)
	}
	if len(candidates) == 0 {
		return nil
	}
	sort.SliceStable(candidates, func(a, b int) bool {
		return len(clusters[candidates[a]]) > len(clusters[candidates[b]])
	})

	var out []Fragment
	for _, ci := range candidates {
		if len(out) >= maxFragments {
			break
		}
		if f, ok := ExtractCluster(g, clusters[ci]); ok {
			out = append(out, f)
		}
	}
	return out
}

// ExtractCluster copies the cluster into a new grid sized to its bounding box
// and deactivates the copied cells in src. The fragment keeps src's palette
// and every voxel's color and normal.
func ExtractCluster(src *VoxelGrid, cluster []int) (Fragment, bool) {
	if src == nil || len(cluster) == 0 {
		return Fragment{}, false
	}
	lo := [3]int{src.lenX, src.lenY, src.lenZ}
	hi := [3]int{-1, -1, -1}
	for _, idx := range cluster {
		x, y, z := src.ToCoords(idx)
		lo = [3]int{min(lo[0], x), min(lo[1], y), min(lo[2], z)}
		hi = [3]int{max(hi[0], x), max(hi[1], y), max(hi[2], z)}
	}

	sx, sy, sz := hi[0]-lo[0]+1, hi[1]-lo[1]+1, hi[2]-lo[2]+1
	frag, err := NewVoxelGrid(sx, sy, sz, src.Palette)
	if err != nil {
		return Fragment{}, false
	}
	for _, idx := range cluster {
		x, y, z := src.ToCoords(idx)
		v := src.Voxels[idx]
		v.Active = true
		frag.Voxels[frag.ToIndex(x-lo[0], y-lo[1], z-lo[2])] = v
		src.Voxels[idx].Active = false
	}
	return Fragment{Grid: frag, Offset: lo}, true
}
