package core

import "testing"

func TestMoveResultCombineIsOrderInsensitive(t *testing.T) {
	inputs := []MoveResult{MoveDidNotMove, MoveFailed, MoveDidMove}
	permutations := [][]int{
		{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0},
	}

	var want MoveResult
	for _, r := range inputs {
		want = want.Combine(r)
	}
	for _, perm := range permutations {
		var got MoveResult
		for _, i := range perm {
			got = got.Combine(inputs[i])
		}
		if got != want {
			t.Fatalf("permutation %v: got %v, want %v", perm, got, want)
		}
	}
}

func TestMoveResultCombineNeverClearsFlags(t *testing.T) {
	result := MoveDidNotMove.Combine(MoveFailed)
	result = result.Combine(MoveDidMove)
	result = result.Combine(MoveDidNotMove)

	if !result.Has(MoveFailed) {
		t.Fatal("expected failed flag to survive later combines")
	}
	if !result.Has(MoveDidMove) {
		t.Fatal("expected did-move flag to survive later combines")
	}
}

func TestMoveResultString(t *testing.T) {
	cases := []struct {
		result MoveResult
		want   string
	}{
		{MoveDidNotMove, "did_not_move"},
		{MoveFailed, "failed_move"},
		{MoveDidMove, "did_move"},
		{MoveFailed.Combine(MoveDidMove), "failed_move|did_move"},
	}
	for _, tc := range cases {
		if got := tc.result.String(); got != tc.want {
			t.Fatalf("String(%d): got %q, want %q", tc.result, got, tc.want)
		}
	}
}

func TestDeleteResultCombineAccumulates(t *testing.T) {
	result := DeleteDidNotDelete
	result = result.Combine(DeleteDidDelete)
	result = result.Combine(DeleteChangedAssets)
	result = result.Combine(DeleteDidNotDelete)

	if !result.Has(DeleteDidDelete) || !result.Has(DeleteChangedAssets) {
		t.Fatalf("expected accumulated flags, got %v", result)
	}
	if result.Has(DeleteFailed) {
		t.Fatalf("unexpected failed flag in %v", result)
	}
	if got, want := result.String(), "did_delete|deleted_assets_changed"; got != want {
		t.Fatalf("String: got %q, want %q", got, want)
	}
}

func TestDeleteResultZeroHasOnlyZero(t *testing.T) {
	if !DeleteDidNotDelete.Has(DeleteDidNotDelete) {
		t.Fatal("zero result should report the zero flag")
	}
	if DeleteDidDelete.Has(DeleteDidNotDelete) {
		t.Fatal("non-zero result should not report the zero flag")
	}
}

func TestIsSceneOrPrefab(t *testing.T) {
	cases := map[string]bool{
		"Assets/Scenes/Main.unity":    true,
		"Assets/Prefabs/Enemy.prefab": true,
		"Assets/Prefabs/ENEMY.PREFAB": true,
		"Assets/Textures/wood.png":    false,
		"Assets/Scenes/Main":          false,
		"":                            false,
	}
	for path, want := range cases {
		if got := isSceneOrPrefab(path); got != want {
			t.Fatalf("isSceneOrPrefab(%q): got %v, want %v", path, got, want)
		}
	}
}

func TestIntersectPathsKeepsCandidateOrderAndDropsDuplicates(t *testing.T) {
	candidates := []string{"c", "a", "c", "x", "b"}
	allowed := []string{"a", "b", "c"}

	got := intersectPaths(candidates, allowed)
	if !pathsEqual(got, []string{"c", "a", "b"}) {
		t.Fatalf("intersectPaths: got %v", got)
	}
}

func TestSubtractPathsPreservesInputOrder(t *testing.T) {
	got := subtractPaths([]string{"a", "b", "c", "d"}, []string{"b", "d"})
	if !pathsEqual(got, []string{"a", "c"}) {
		t.Fatalf("subtractPaths: got %v", got)
	}
}

func TestCopyPathsNeverReturnsNil(t *testing.T) {
	got := copyPaths(nil)
	if got == nil || len(got) != 0 {
		t.Fatalf("copyPaths(nil): got %v", got)
	}

	src := []string{"a"}
	clone := copyPaths(src)
	clone[0] = "mutated"
	if src[0] != "a" {
		t.Fatal("copyPaths should not alias the source slice")
	}
}
