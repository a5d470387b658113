package rbm

import (
	"fmt"

	"github.com/awalterschulze/gographviz"
)

// ToDot renders the bipartite graph of the machine in graphviz dot format,
// with the biases in the node labels and the weights on the edges. Meant
// for eyeballing small models.
func (m *RBM) ToDot() string {
	g := gographviz.NewGraph()
	if err := g.SetName("RBM"); err != nil {
		panic(err)
	}
	g.SetDir(false)

	for i := 0; i < m.Visible; i++ {
		g.AddNode("RBM", fmt.Sprintf("v%d", i), map[string]string{
			"shape": "circle",
			"label": fmt.Sprintf("\"v%d\\na=%.3f\"", i, m.a[i]),
		})
	}
	for j := 0; j < m.Hidden; j++ {
		g.AddNode("RBM", fmt.Sprintf("h%d", j), map[string]string{
			"shape": "doublecircle",
			"label": fmt.Sprintf("\"h%d\\nb=%.3f\"", j, m.b[j]),
		})
	}

	it := MakeIterator(m.w, m.Visible, m.Hidden)
	for i := 0; i < m.Visible; i++ {
		for j := 0; j < m.Hidden; j++ {
			g.AddEdge(fmt.Sprintf("v%d", i), fmt.Sprintf("h%d", j), false, map[string]string{
				"label": fmt.Sprintf("\"%.3f\"", it[i][j]),
			})
		}
	}
	ReturnIterator(m.Visible, m.Hidden, it)
	return g.String()
}
