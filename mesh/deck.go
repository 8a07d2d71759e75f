package mesh

import (
	"encoding/json"
	"os"

	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/fun/dbf"

	"github.com/cpmech/dynela/config"
	"github.com/cpmech/dynela/dynerr"
	"github.com/cpmech/dynela/elem"
	"github.com/cpmech/dynela/mat"
	"github.com/cpmech/dynela/model"
	"github.com/cpmech/dynela/node"
	"github.com/cpmech/dynela/shp"
	"github.com/cpmech/dynela/tens"
)

// BCSpec prescribes a Dirichlet velocity at a named vertex, its time dependence built from a
// gosl/fun time function the way inp.FuncData/FuncsData.Get builds one for a boundary condition
// (e.g. "cte" for a constant velocity, "rmp" for a ramp), scaled by Dir.
type BCSpec struct {
	VertId   int        `json:"vert"`
	Mask     [3]bool    `json:"mask"`
	Dir      [3]float64 `json:"dir"`
	FuncType string     `json:"functype"`
	Prms     dbf.Params `json:"prms"`
}

// MaterialSpec names one material bound to every cell carrying its Tag, mirroring the
// teacher's inp/mat.go "named materials indexed by tag" convention. Hardening is linear only at
// the deck level; richer laws are wired up by a calling program, not by the JSON format.
type MaterialSpec struct {
	Tag    int        `json:"tag"`
	Name   string     `json:"name"`
	Params dbf.Params `json:"params"` // E, nu (or K, G), rho, cp, T0, tq (Taylor-Quinney)
	Y0     float64    `json:"y0"`
	H      float64    `json:"h"`
}

// Deck is the complete JSON input document, following inp.Data's "global data for simulations"
// shape (§6 "Inputs from collaborators"): a mesh, the materials indexed by tag, and the solver
// configuration.
type Deck struct {
	Desc      string              `json:"desc"`
	Family    string              `json:"family"` // "planar", "axisymmetric" or "threedimensional"
	Mesh      Mesh                `json:"mesh"`
	Materials []MaterialSpec      `json:"materials"`
	BCs       []BCSpec            `json:"bcs"`
	Solver    config.SolverConfig `json:"solver"`
}

// Load reads and parses a JSON deck file.
func Load(path string) (*Deck, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var d Deck
	if err := json.Unmarshal(buf, &d); err != nil {
		return nil, dynerr.New(dynerr.InvalidMesh, "cannot parse deck %q: %v", path, err)
	}
	return &d, nil
}

func familyOf(name string) elem.Family {
	switch name {
	case "axisymmetric":
		return elem.Axisymmetric
	case "threedimensional":
		return elem.ThreeDimensional
	default:
		return elem.Planar
	}
}

func topologyOf(cellType string) shp.Topology {
	return shp.Topology(cellType)
}

// Build materializes a model.Model from the deck: one node.Node per Vert, one elem.Element per
// Cell (looked up by its Type against the shape-table registry and bound to the material whose
// Tag matches the cell's), validated together by model.New.
func (d *Deck) Build() (*model.Model, error) {
	family := familyOf(d.Family)

	matsByTag := make(map[int]*mat.Material, len(d.Materials))
	for _, spec := range d.Materials {
		m, err := mat.New(spec.Name, spec.Params, mat.LinearHardening{Y0: spec.Y0, H: spec.H})
		if err != nil {
			return nil, err
		}
		matsByTag[spec.Tag] = m
	}

	nodesByVert := make(map[int]*node.Node, len(d.Mesh.Verts))
	nodes := make([]*node.Node, 0, len(d.Mesh.Verts))
	for _, v := range d.Mesh.Verts {
		n := node.New(v.Id, tens.Vec3{v.C[0], v.C[1], v.C[2]})
		nodesByVert[v.Id] = n
		nodes = append(nodes, n)
	}

	elements := make([]*elem.Element, 0, len(d.Mesh.Cells))
	for _, c := range d.Mesh.Cells {
		table := shp.Get(topologyOf(c.Type))
		if table == nil {
			return nil, dynerr.New(dynerr.InvalidMesh, "cell %d: unknown topology %q", c.Id, c.Type)
		}
		m, ok := matsByTag[c.Tag]
		if !ok {
			return nil, dynerr.New(dynerr.InvalidMaterial, "cell %d: no material with tag %d", c.Id, c.Tag)
		}
		cellNodes := make([]*node.Node, len(c.Verts))
		for i, vid := range c.Verts {
			n, ok := nodesByVert[vid]
			if !ok {
				return nil, dynerr.New(dynerr.InvalidMesh, "cell %d: references unknown vertex %d", c.Id, vid)
			}
			cellNodes[i] = n
		}
		e, err := elem.New(c.Id, family, table, cellNodes, m)
		if err != nil {
			return nil, err
		}
		elements = append(elements, e)
	}

	for _, bc := range d.BCs {
		n, ok := nodesByVert[bc.VertId]
		if !ok {
			return nil, dynerr.New(dynerr.InvalidMesh, "boundary condition references unknown vertex %d", bc.VertId)
		}
		fcn, err := fun.New(bc.FuncType, bc.Prms)
		if err != nil {
			return nil, dynerr.New(dynerr.BoundaryConflict, "vertex %d: %v", bc.VertId, err)
		}
		dir := bc.Dir
		n.Binding = node.Dirichlet{
			Masked: bc.Mask,
			ValueAt: func(t float64) tens.Vec3 {
				s := fcn.F(t, nil)
				return tens.Vec3{s * dir[0], s * dir[1], s * dir[2]}
			},
		}
	}

	return model.New(nodes, elements)
}
