package dag_test

import (
	"fmt"

	"github.com/katalvlaran/semcov/dag"
)

// ExampleCompile compiles a two-latent DAG and inspects its layering.
func ExampleCompile() {
	// Two latents (−2, −1) and three visible nodes (0, 1, 2):
	//
	//	−2 → 0,  −1 → 1,  0 → 2,  1 → 2
	s, err := dag.NewStructure([][]bool{
		{true, false, false},  // latent −2
		{false, true, false},  // latent −1
		{false, false, true},  // visible 0
		{false, false, true},  // visible 1
		{false, false, false}, // visible 2
	})
	if err != nil {
		fmt.Println("structure:", err)
		return
	}

	lo, err := dag.Compile(s)
	if err != nil {
		fmt.Println("compile:", err)
		return
	}

	fmt.Println("layers (incl. sentinel):", lo.NumLayers())
	fmt.Println("edges:", lo.EdgeCount())
	fmt.Println("parents of 2:", lo.ParentsOf(2))
	fmt.Println("layer of 2:", lo.LayerOf(2))
	// Output:
	// layers (incl. sentinel): 3
	// edges: 4
	// parents of 2: [0 1]
	// layer of 2: 2
}
