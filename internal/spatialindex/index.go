// Package spatialindex wraps an R-tree over IndexNode footprints. The tree
// is built once at startup and is read-only for the remainder of the
// process's life; the mutex here exists only to make that handoff safe
// under the race detector, not to support ongoing writes.
package spatialindex

import (
	"sync"

	"github.com/dhconnelly/rtreego"

	"github.com/wavemark/fathom/internal/mapkind"
	"github.com/wavemark/fathom/internal/region"
)

const (
	dimensions  = 2
	minChildren = 25
	maxChildren = 50
)

// spatialNode adapts a mapkind.IndexNode to rtreego.Spatial.
type spatialNode struct {
	node mapkind.IndexNode
}

func (s spatialNode) Bounds() rtreego.Rect {
	tl := s.node.Metadata.Region.TopLeft
	br := s.node.Metadata.Region.BottomRight
	point := rtreego.Point{tl.Lon, br.Lat}
	lengths := []float64{br.Lon - tl.Lon, tl.Lat - br.Lat}
	if lengths[0] <= 0 {
		lengths[0] = 1e-9
	}
	if lengths[1] <= 0 {
		lengths[1] = 1e-9
	}
	rect, _ := rtreego.NewRect(point, lengths)
	return rect
}

// Index is a spatial index over discovered map footprints. Insert is
// called repeatedly while the indexer walks the source tree; once the
// indexer finishes, every subsequent access is a read (Search).
type Index struct {
	mu    sync.RWMutex
	tree  *rtreego.Rtree
	count int
}

// New builds an empty index ready to receive nodes.
func New() *Index {
	return &Index{tree: rtreego.NewTree(dimensions, minChildren, maxChildren)}
}

// Insert adds a node to the tree. Called only during the indexer's
// build phase, before the server starts handling queries.
func (idx *Index) Insert(node mapkind.IndexNode) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.tree.Insert(spatialNode{node: node})
	idx.count++
}

// Search returns every node whose footprint intersects query.
func (idx *Index) Search(query region.Region) []mapkind.IndexNode {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	point := rtreego.Point{query.TopLeft.Lon, query.BottomRight.Lat}
	lengths := []float64{
		query.BottomRight.Lon - query.TopLeft.Lon,
		query.TopLeft.Lat - query.BottomRight.Lat,
	}
	if lengths[0] <= 0 {
		lengths[0] = 1e-9
	}
	if lengths[1] <= 0 {
		lengths[1] = 1e-9
	}
	rect, err := rtreego.NewRect(point, lengths)
	if err != nil {
		return nil
	}

	hits := idx.tree.SearchIntersect(rect)
	nodes := make([]mapkind.IndexNode, 0, len(hits))
	for _, h := range hits {
		nodes = append(nodes, h.(spatialNode).node)
	}
	return nodes
}

// Count returns the number of nodes currently in the index.
func (idx *Index) Count() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.count
}
