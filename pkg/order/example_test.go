package order_test

import (
	"fmt"

	"github.com/matzehuels/learnpath/pkg/graph"
	"github.com/matzehuels/learnpath/pkg/order"
)

func ExampleOrder() {
	g := graph.New()
	_ = g.AddNode(graph.Node{ID: "Y", Level: graph.LevelBasic, Hours: 5})
	_ = g.AddNode(graph.Node{ID: "X", Level: graph.LevelBasic, Hours: 2})
	_ = g.AddNode(graph.Node{ID: "Z", Level: graph.LevelIntermediate, Hours: 1})
	_ = g.AddEdge(graph.Edge{From: "Y", To: "Z"})

	ids, err := order.Order(g)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(ids)
	// Output: [X Y Z]
}
