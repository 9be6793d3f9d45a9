// Package graph derives the uses/used-by reference graph over a loaded
// library. The graph is read-only documentation input: building it never
// mutates the library, and dangling references degrade to warnings.
package graph

import (
	"fmt"
	"sort"

	"github.com/kibrary/kibrary/internal/library"
	"github.com/kibrary/kibrary/internal/model"
)

// Graph holds the working set (library objects plus synthetic field and
// field-category objects) and the resolved edges between them. Edges are
// stored as id references and resolved through the arena on access, so there
// are no object-to-object ownership cycles.
type Graph struct {
	objects map[string]*model.Object
	uses    map[string][]string
	usedBy  map[string][]string

	// Warnings collects unresolved references and undecodable panel entries.
	Warnings []string
}

// Build constructs the graph for a library. It always completes; problems in
// individual objects turn into warnings and missing edges.
func Build(lib *library.Library) *Graph {
	g := &Graph{
		objects: map[string]*model.Object{},
		uses:    map[string][]string{},
		usedBy:  map[string][]string{},
	}

	// Pass 1: populate the arena, including synthetic objects.
	for _, obj := range lib.Objects() {
		g.objects[obj.ID] = obj
	}
	g.synthesizeFieldObjects()

	// Pass 2: resolve edges.
	for _, obj := range g.sortedObjects() {
		switch obj.Type {
		case model.TypeVisualization:
			g.linkVisualization(obj)
		case model.TypeDashboard:
			g.linkDashboard(obj)
		case model.TypeField:
			g.link(obj.ID, syntheticRef(obj, "category"))
		case model.TypeFieldCategory:
			g.link(obj.ID, syntheticRef(obj, "indexPattern"))
		}
	}

	g.sortEdges()
	return g
}

// Object returns the object with the given id, if present.
func (g *Graph) Object(id string) (*model.Object, bool) {
	obj, ok := g.objects[id]
	return obj, ok
}

// Objects returns the full working set ordered by the stable sort key.
func (g *Graph) Objects() []*model.Object {
	return g.sortedObjects()
}

// Uses returns the objects the given object depends on, in render order.
func (g *Graph) Uses(id string) []*model.Object {
	return g.resolve(g.uses[id])
}

// UsedBy returns the objects depending on the given object, in render order.
func (g *Graph) UsedBy(id string) []*model.Object {
	return g.resolve(g.usedBy[id])
}

// linkVisualization adds the visualization -> saved-search edge, if any.
func (g *Graph) linkVisualization(obj *model.Object) {
	attrs := obj.Attributes()
	searchID, ok := attrs["savedSearchId"].(string)
	if !ok || searchID == "" {
		return
	}
	g.link(obj.ID, string(model.TypeSearch)+":"+searchID)
}

// linkDashboard decodes the panel list and links every panel target.
func (g *Graph) linkDashboard(obj *model.Object) {
	panels, ok := obj.Attributes()["panelsJSON"].([]any)
	if !ok {
		return
	}
	for i, p := range panels {
		panel, ok := p.(map[string]any)
		if !ok {
			g.warnf("%s: panel %d is not an object", obj.ID, i)
			continue
		}
		ptype, _ := panel["type"].(string)
		pid, _ := panel["id"].(string)
		if ptype == "" || pid == "" {
			g.warnf("%s: panel %d has no type/id", obj.ID, i)
			continue
		}
		g.link(obj.ID, ptype+":"+pid)
	}
}

// link records a bidirectional edge from src to the target id. An unresolved
// target is reported and omitted.
func (g *Graph) link(src, target string) {
	if target == "" {
		return
	}
	if _, ok := g.objects[target]; !ok {
		g.warnf("%s: unresolved reference %s", src, target)
		return
	}
	g.uses[src] = append(g.uses[src], target)
	g.usedBy[target] = append(g.usedBy[target], src)
}

func (g *Graph) warnf(format string, args ...any) {
	g.Warnings = append(g.Warnings, fmt.Sprintf(format, args...))
}

func (g *Graph) resolve(ids []string) []*model.Object {
	out := make([]*model.Object, 0, len(ids))
	for _, id := range ids {
		if obj, ok := g.objects[id]; ok {
			out = append(out, obj)
		}
	}
	return out
}

func (g *Graph) sortedObjects() []*model.Object {
	out := make([]*model.Object, 0, len(g.objects))
	for _, obj := range g.objects {
		out = append(out, obj)
	}
	model.SortObjects(out)
	return out
}

// sortEdges orders every edge list by the target's (type, title) key so
// rendered documentation is deterministic.
func (g *Graph) sortEdges() {
	byKey := func(ids []string) {
		sort.SliceStable(ids, func(i, j int) bool {
			a, aok := g.objects[ids[i]]
			b, bok := g.objects[ids[j]]
			if !aok || !bok {
				return ids[i] < ids[j]
			}
			return a.SortKey() < b.SortKey()
		})
	}
	for _, ids := range g.uses {
		byKey(ids)
	}
	for _, ids := range g.usedBy {
		byKey(ids)
	}
}
