package baseline

import "testing"

func TestShortestPathDirectHop(t *testing.T) {
	adj := map[string][]string{"A": {"B"}, "B": {"C"}}
	path := shortestPath(adj, "A", "C")
	want := []string{"A", "B", "C"}
	if len(path) != len(want) {
		t.Fatalf("expected %v, got %v", want, path)
	}
	for i := range want {
		if path[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, path)
		}
	}
}

func TestShortestPathUnreachableReturnsNil(t *testing.T) {
	adj := map[string][]string{"A": {"B"}}
	if path := shortestPath(adj, "A", "Z"); path != nil {
		t.Fatalf("expected nil for unreachable dest, got %v", path)
	}
}

func TestNextHopReturnsEmptyAtPathEnd(t *testing.T) {
	path := []string{"A", "B", "C"}
	if got := nextHop(path, "C"); got != "" {
		t.Fatalf("expected empty at path end, got %q", got)
	}
	if got := nextHop(path, "A"); got != "B" {
		t.Fatalf("expected B, got %q", got)
	}
}
