package topology

import (
	"errors"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestCycle(t *testing.T) {
	tests := []struct {
		name      string
		n         int
		wantEdges int
	}{
		{"empty", 0, 0},
		{"single node has no self-loop", 1, 0},
		{"two nodes", 2, 2},
		{"ring", 6, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Cycle(tt.n)
			if err != nil {
				t.Fatalf("Cycle(%d) error = %v", tt.n, err)
			}
			if g.NodeCount() != tt.n {
				t.Errorf("NodeCount() = %d, want %d", g.NodeCount(), tt.n)
			}
			if g.EdgeCount() != tt.wantEdges {
				t.Errorf("EdgeCount() = %d, want %d", g.EdgeCount(), tt.wantEdges)
			}
			if tt.n >= 2 {
				for i := range tt.n {
					if !g.HasEdge(NodeID(i), NodeID((i+1)%tt.n)) {
						t.Errorf("missing ring edge %d -> %d", i, (i+1)%tt.n)
					}
				}
			}
		})
	}
}

func TestCycleNegative(t *testing.T) {
	if _, err := Cycle(-1); !errors.Is(err, ErrInvalidNodeCount) {
		t.Errorf("Cycle(-1) error = %v, want ErrInvalidNodeCount", err)
	}
	if _, err := Generate(-3); !errors.Is(err, ErrInvalidNodeCount) {
		t.Errorf("Generate(-3) error = %v, want ErrInvalidNodeCount", err)
	}
}

func TestGenerateOutDegree(t *testing.T) {
	tests := []struct {
		n          int
		wantDegree int
	}{
		{2, 1},
		{3, 2},
		{5, 4},
		{9, 8},
		{10, 8},
		{50, 8},
	}

	for _, tt := range tests {
		g, err := Generate(tt.n, WithSeed(7))
		if err != nil {
			t.Fatalf("Generate(%d) error = %v", tt.n, err)
		}
		for _, id := range g.Nodes() {
			if got := g.OutDegree(id); got != tt.wantDegree {
				t.Errorf("Generate(%d): OutDegree(%s) = %d, want %d", tt.n, id, got, tt.wantDegree)
			}
		}
		if g.EdgeCount() != tt.n*tt.wantDegree {
			t.Errorf("Generate(%d): EdgeCount() = %d, want %d", tt.n, g.EdgeCount(), tt.n*tt.wantDegree)
		}
	}
}

func TestGenerateKeepsRing(t *testing.T) {
	g, err := Generate(20)
	if err != nil {
		t.Fatal(err)
	}
	for i := range 20 {
		if !g.HasEdge(NodeID(i), NodeID((i+1)%20)) {
			t.Errorf("missing ring edge %d -> %d", i, (i+1)%20)
		}
	}
	// The ring is added before any extra edge.
	for i, e := range g.Edges()[:20] {
		if e.From != NodeID(i) || e.To != NodeID((i+1)%20) {
			t.Errorf("edge %d = %v, want ring edge", i, e)
		}
	}
}

func TestGenerateSmall(t *testing.T) {
	for _, n := range []int{0, 1} {
		g, err := Generate(n)
		if err != nil {
			t.Fatalf("Generate(%d) error = %v", n, err)
		}
		if g.NodeCount() != n || g.EdgeCount() != 0 {
			t.Errorf("Generate(%d) = %d nodes, %d edges; want %d, 0", n, g.NodeCount(), g.EdgeCount(), n)
		}
	}
}

func TestGenerateSeedReproducible(t *testing.T) {
	a, _ := Generate(30, WithSeed(42))
	b, _ := Generate(30, WithSeed(42))
	if !slices.Equal(a.Edges(), b.Edges()) {
		t.Error("same seed produced different edge sets")
	}

	c, _ := Generate(30, WithSeed(43))
	if slices.Equal(a.Edges(), c.Edges()) {
		t.Error("different seeds produced identical edge sets")
	}
}

func TestGenerateWithRand(t *testing.T) {
	a, _ := Generate(15, WithRand(rand.New(rand.NewPCG(1, 2))))
	b, _ := Generate(15, WithRand(rand.New(rand.NewPCG(1, 2))))
	if !slices.Equal(a.Edges(), b.Edges()) {
		t.Error("identical injected sources produced different edge sets")
	}

	// nil is ignored rather than dereferenced
	if _, err := Generate(5, WithRand(nil)); err != nil {
		t.Errorf("Generate with nil rand = %v", err)
	}
}

func TestGenerateExtraOutbound(t *testing.T) {
	g, err := Generate(20, WithExtraOutbound(2), WithSeed(1))
	if err != nil {
		t.Fatal(err)
	}
	for _, id := range g.Nodes() {
		if g.OutDegree(id) != 3 {
			t.Errorf("OutDegree(%s) = %d, want 3", id, g.OutDegree(id))
		}
	}

	ring, _ := Generate(20, WithExtraOutbound(-5))
	if ring.EdgeCount() != 20 {
		t.Errorf("negative extra should leave only the ring, got %d edges", ring.EdgeCount())
	}

	capped, _ := Generate(30, WithExtraOutbound(20), WithSeed(2))
	for _, id := range capped.Nodes() {
		if got := capped.OutDegree(id); got != DefaultExtraOutbound+1 {
			t.Errorf("OutDegree(%s) = %d, want %d", id, got, DefaultExtraOutbound+1)
		}
	}
}

// TestGenerateInvariants checks the structural guarantees for arbitrary
// sizes and seeds.
func TestGenerateInvariants(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	properties.Property("node count matches request", prop.ForAll(
		func(n int, seed uint64) bool {
			g, err := Generate(n, WithSeed(seed))
			return err == nil && g.NodeCount() == n
		},
		gen.IntRange(2, 120),
		gen.UInt64(),
	))

	properties.Property("no self-loops or duplicate edges", prop.ForAll(
		func(n int, seed uint64) bool {
			g, err := Generate(n, WithSeed(seed))
			return err == nil && g.Validate() == nil
		},
		gen.IntRange(2, 120),
		gen.UInt64(),
	))

	properties.Property("strongly connected", prop.ForAll(
		func(n int, seed uint64) bool {
			g, err := Generate(n, WithSeed(seed))
			return err == nil && g.StronglyConnected()
		},
		gen.IntRange(2, 120),
		gen.UInt64(),
	))

	properties.Property("out-degree is 1 + min(7, n-2)", prop.ForAll(
		func(n int, seed uint64) bool {
			g, err := Generate(n, WithSeed(seed))
			if err != nil {
				return false
			}
			want := 1 + min(DefaultExtraOutbound, n-2)
			for _, id := range g.Nodes() {
				if d := g.OutDegree(id); d != want || d < 1 || d > 8 {
					return false
				}
			}
			return true
		},
		gen.IntRange(2, 120),
		gen.UInt64(),
	))

	properties.TestingRun(t)
}
