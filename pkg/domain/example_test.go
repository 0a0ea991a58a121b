package domain_test

import (
	"fmt"

	"github.com/aretw0/reorder/pkg/domain"
)

func ExampleSnapshot_SpliceIndex() {
	// Three 40px rows; the last one is picked up, its center is at 100.
	snap := domain.NewSnapshot(100, 40, []domain.Sibling{
		{Pos: domain.SiblingPos(0, 40, 100)},
		{Pos: domain.SiblingPos(40, 40, 100)},
	})
	for _, dy := range []float64{0, -30, -70} {
		fmt.Println(dy, snap.SpliceIndex(dy))
	}
	// Output:
	// 0 2
	// -30 1
	// -70 0
}
