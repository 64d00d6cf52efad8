package store

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"str8ts-cli/internal/board"
)

func testStore(t *testing.T) Store {
	t.Helper()
	return Store{Dir: t.TempDir()}
}

func sampleBoard(t *testing.T) *board.Board {
	t.Helper()
	b := board.New()
	if err := b.SetColor(board.Pos{Row: 0, Col: 3}, board.Black, board.ModeEditColors); err != nil {
		t.Fatalf("SetColor: %v", err)
	}
	if err := b.SetValue(board.Pos{Row: 0, Col: 0}, 7, board.ModeEditFixed); err != nil {
		t.Fatalf("SetValue clue: %v", err)
	}
	if err := b.SetValue(board.Pos{Row: 2, Col: 2}, 4, board.ModePlayValues); err != nil {
		t.Fatalf("SetValue: %v", err)
	}
	return b
}

func TestSaveLoadRoundtrip(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()
	b := sampleBoard(t)

	if err := st.Save(ctx, "puzzle", b); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := st.Load(ctx, "puzzle")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	for i := 0; i < board.NumCells; i++ {
		p := board.PosAt(i)
		want, have := b.At(p), got.At(p)
		if want.Color != have.Color || want.Value != have.Value || want.Fixed != have.Fixed {
			t.Fatalf("cell %v: saved %+v, loaded %+v", p, want, have)
		}
	}
}

func TestPencilMarksAreSessionOnly(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	b := board.New()
	if err := b.ToggleCandidate(board.Pos{Row: 1, Col: 1}, 5, board.ModePlayCandidates); err != nil {
		t.Fatalf("ToggleCandidate: %v", err)
	}
	if err := st.Save(ctx, "", b); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := st.Load(ctx, DefaultSaveName)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.At(board.Pos{Row: 1, Col: 1}).Candidates != 0 {
		t.Fatalf("pencil marks must not survive a save/load cycle")
	}
}

func TestLoadMissingSlot(t *testing.T) {
	st := testStore(t)
	_, err := st.Load(context.Background(), "nope")
	var nf NotFoundError
	if !errors.As(err, &nf) || nf.Name != "nope" {
		t.Fatalf("expected NotFoundError for the slot, got %v", err)
	}
}

func TestSaveOverwritesSlot(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	if err := st.Save(ctx, "slot", sampleBoard(t)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := st.Save(ctx, "slot", board.New()); err != nil {
		t.Fatalf("Save (overwrite): %v", err)
	}
	got, err := st.Load(ctx, "slot")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.At(board.Pos{Row: 0, Col: 0}).Value != 0 {
		t.Fatalf("second save must replace the slot")
	}
	metas, err := st.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(metas) != 1 {
		t.Fatalf("overwriting must not grow the list, got %d slots", len(metas))
	}
}

func TestListAndDelete(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	for _, name := range []string{"a", "b"} {
		if err := st.Save(ctx, name, board.New()); err != nil {
			t.Fatalf("Save %q: %v", name, err)
		}
	}
	metas, err := st.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(metas) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(metas))
	}

	if err := st.Delete(ctx, "a"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := st.Delete(ctx, "a"); err != nil {
		t.Fatalf("deleting a missing slot must not error: %v", err)
	}
	metas, err = st.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(metas) != 1 || metas[0].Name != "b" {
		t.Fatalf("expected only slot b, got %+v", metas)
	}
}

func TestDecodeCellsRejectsMalformedData(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"not json", `{`},
		{"wrong length", `[{"v":1}]`},
		{"value out of range", cellsJSONWith(t, 0, savedCell{V: 10})},
		{"black with value", cellsJSONWith(t, 0, savedCell{V: 3, B: true})},
	}
	for _, tc := range cases {
		_, err := decodeCells([]byte(tc.raw), "slot")
		if err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
		if !strings.Contains(err.Error(), `malformed save "slot"`) {
			t.Fatalf("%s: unexpected error %v", tc.name, err)
		}
	}
}

// cellsJSONWith renders a full 81-cell array with one cell replaced.
func cellsJSONWith(t *testing.T, i int, c savedCell) string {
	t.Helper()
	wire := make([]savedCell, board.NumCells)
	wire[i] = c
	raw, err := json.Marshal(wire)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(raw)
}

func legacyJSON(t *testing.T, mutate func(cells [][]any)) []byte {
	t.Helper()
	cells := make([][]any, board.NumCells)
	for i := range cells {
		cells[i] = []any{-1, true, false, make([]bool, 9)}
	}
	if mutate != nil {
		mutate(cells)
	}
	raw, err := json.Marshal(cells)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return raw
}

func TestLegacyImport(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	raw := legacyJSON(t, func(cells [][]any) {
		cells[0] = []any{7, true, true, make([]bool, 9)}   // white clue 7
		cells[1] = []any{3, true, false, make([]bool, 9)}  // played 3
		cells[10] = []any{-1, false, false, make([]bool, 9)} // black
	})
	if err := os.WriteFile(filepath.Join(st.Dir, legacySaveFileName), raw, 0o644); err != nil {
		t.Fatalf("write legacy file: %v", err)
	}

	b, err := st.Load(ctx, DefaultSaveName)
	if err != nil {
		t.Fatalf("Load after legacy import: %v", err)
	}
	if c := b.At(board.Pos{Row: 0, Col: 0}); c.Value != 7 || !c.Fixed {
		t.Fatalf("expected imported clue 7, got %+v", c)
	}
	if c := b.At(board.Pos{Row: 0, Col: 1}); c.Value != 3 || c.Fixed {
		t.Fatalf("expected imported played 3, got %+v", c)
	}
	if b.At(board.Pos{Row: 1, Col: 1}).Color != board.Black {
		t.Fatalf("expected imported black cell")
	}
}

func TestLegacyImportRunsOnce(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	raw := legacyJSON(t, func(cells [][]any) {
		cells[0] = []any{5, true, true, make([]bool, 9)}
	})
	path := filepath.Join(st.Dir, legacySaveFileName)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("write legacy file: %v", err)
	}

	if _, err := st.Load(ctx, DefaultSaveName); err != nil {
		t.Fatalf("Load: %v", err)
	}
	// Play over the imported board and save; the legacy file must not win
	// the next time the store opens.
	if err := st.Save(ctx, DefaultSaveName, board.New()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	b, err := st.Load(ctx, DefaultSaveName)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if b.At(board.Pos{Row: 0, Col: 0}).Value != 0 {
		t.Fatalf("legacy file re-imported over a newer save")
	}
}

func TestLegacyImportDropsBlackCellDigits(t *testing.T) {
	raw := legacyJSON(t, func(cells [][]any) {
		cells[4] = []any{6, false, true, make([]bool, 9)}
	})
	b, err := decodeLegacyCells(raw)
	if err != nil {
		t.Fatalf("decodeLegacyCells: %v", err)
	}
	c := b.At(board.Pos{Row: 0, Col: 4})
	if c.Color != board.Black || c.Value != 0 || c.Fixed {
		t.Fatalf("black cells import digit-free, got %+v", c)
	}
}

func TestDecodeLegacyCellsRejectsMalformedData(t *testing.T) {
	cases := []struct {
		name string
		raw  []byte
	}{
		{"not json", []byte(`{`)},
		{"wrong length", []byte(`[[1,true,false,[false,false,false,false,false,false,false,false,false]]]`)},
		{"short tuple", legacyJSON(t, func(cells [][]any) {
			cells[0] = []any{1, true, false}
		})},
		{"value out of range", legacyJSON(t, func(cells [][]any) {
			cells[0] = []any{0, true, false, make([]bool, 9)}
		})},
		{"short small values", legacyJSON(t, func(cells [][]any) {
			cells[0] = []any{1, true, false, make([]bool, 3)}
		})},
	}
	for _, tc := range cases {
		if _, err := decodeLegacyCells(tc.raw); err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}
}

func TestCorruptLegacyFileDoesNotBlockWrites(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()
	path := filepath.Join(st.Dir, legacySaveFileName)
	if err := os.WriteFile(path, []byte(`not json`), 0o644); err != nil {
		t.Fatalf("write legacy file: %v", err)
	}

	// Writes, listing and deletion go on working around the corrupt file.
	if err := st.Save(ctx, "fresh", board.New()); err != nil {
		t.Fatalf("Save with corrupt legacy file: %v", err)
	}
	metas, err := st.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(metas) != 1 || metas[0].Name != "fresh" {
		t.Fatalf("expected the fresh slot, got %+v", metas)
	}
	if _, err := st.Load(ctx, "fresh"); err != nil {
		t.Fatalf("Load of the fresh slot: %v", err)
	}
	if err := st.Delete(ctx, "fresh"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
}

func TestMalformedLegacyFileSurfacesOnLoad(t *testing.T) {
	st := testStore(t)
	path := filepath.Join(st.Dir, legacySaveFileName)
	if err := os.WriteFile(path, []byte(`not json`), 0o644); err != nil {
		t.Fatalf("write legacy file: %v", err)
	}
	_, err := st.Load(context.Background(), DefaultSaveName)
	if err == nil || !strings.Contains(err.Error(), "malformed legacy save") {
		t.Fatalf("expected malformed legacy save error, got %v", err)
	}
}
