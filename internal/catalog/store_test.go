package catalog

import (
	"testing"

	"seriesapp/internal/record"
)

func mustSeries(t *testing.T, line string) record.Series {
	t.Helper()
	s, ok := record.ParseSeries(line)
	if !ok {
		t.Fatalf("parse series %q", line)
	}
	return s
}

func seedStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore()
	for _, line := range []string{
		`"Dexter",Dexter,7926,175,Oct 2006`,
		`"Doctor Who",DoctorWho_2005,3332,210,Mar 2005`,
		`"Lost",Lost,4284,123,Sep 2004`,
		`"Ötzi Files",OetziFiles,,9001,Jan 2020`,
	} {
		if !store.AddSeries(line) {
			t.Fatalf("AddSeries(%q) = false", line)
		}
	}
	return store
}

func TestAddSeriesDeduplicatesByKey(t *testing.T) {
	store := NewStore()
	if !store.AddSeries(`"Dexter",Dexter,7926,175,Oct 2006`) {
		t.Fatal("expected first insert to succeed")
	}
	if store.AddSeries(`"Dexter (renamed)",dexter2,7926,175,Oct 2006`) {
		t.Fatal("expected duplicate key to be dropped")
	}
	if store.AddSeries(`not a series`) {
		t.Fatal("expected malformed line to be dropped")
	}
	if store.Len() != 1 {
		t.Fatalf("Len = %d, want 1", store.Len())
	}
	if got := store.Series()[0].Name; got != "Dexter" {
		t.Fatalf("retained %q, want first instance", got)
	}
}

func TestSearchIsCaseInsensitiveAndOrdered(t *testing.T) {
	store := seedStore(t)

	got := store.Search("DO")
	if len(got) != 1 || got[0].Name != "Doctor Who" {
		t.Fatalf("Search(DO) = %+v", got)
	}

	got = store.Search("e")
	names := make([]string, 0, len(got))
	for _, s := range got {
		names = append(names, s.Name)
	}
	want := []string{"Dexter", "Ötzi Files"}
	if len(names) != len(want) || names[0] != want[0] || names[1] != want[1] {
		t.Fatalf("Search(e) = %v, want %v", names, want)
	}

	if got := store.Search("ötzi"); len(got) != 1 {
		t.Fatalf("expected case-folded match for non-ASCII name, got %+v", got)
	}
	if got := store.Search(""); len(got) != store.Len() {
		t.Fatalf("empty query returned %d of %d", len(got), store.Len())
	}
}

func TestListForDisplayPrependsFavouritesNewestFirst(t *testing.T) {
	store := seedStore(t)
	lost := store.Series()[2]
	dexter := store.Series()[0]
	store.AddFavourite(lost)
	store.AddFavourite(dexter)

	rows := store.ListForDisplay("")
	if len(rows) != 2+store.Len() {
		t.Fatalf("rows = %d, want %d", len(rows), 2+store.Len())
	}
	if rows[0].Series.Key() != dexter.Key() || rows[1].Series.Key() != lost.Key() {
		t.Fatalf("favourites not in reverse-add order: %+v", rows[:2])
	}
	for i := 0; i < 2; i++ {
		if rows[i].Index != FavouriteRow || !rows[i].Favourite {
			t.Fatalf("row %d should map to favourite sentinel: %+v", i, rows[i])
		}
	}
	for i, row := range rows[2:] {
		if row.Index != i {
			t.Fatalf("catalog row %d maps to %d", i, row.Index)
		}
	}

	got, ok := store.RowAt(0)
	if !ok || got.Series.Key() != dexter.Key() || !got.Favourite {
		t.Fatalf("RowAt(0) = %+v, %v", got, ok)
	}
	got, ok = store.RowAt(1)
	if !ok || got.Series.Key() != lost.Key() {
		t.Fatalf("RowAt(1) = %+v, %v", got, ok)
	}
	got, ok = store.RowAt(2)
	if !ok || got.Favourite || got.Series.Name != "Dexter" {
		t.Fatalf("RowAt(2) = %+v, %v", got, ok)
	}
	if _, ok := store.RowAt(len(rows)); ok {
		t.Fatal("expected out of range row to fail")
	}
}

func TestListForDisplayWithQueryOmitsFavourites(t *testing.T) {
	store := seedStore(t)
	store.AddFavourite(store.Series()[0])

	rows := store.ListForDisplay("lost")
	if len(rows) != 1 || rows[0].Favourite {
		t.Fatalf("rows = %+v", rows)
	}
	if store.RowCount() != 1 {
		t.Fatalf("RowCount = %d", store.RowCount())
	}
}

func TestToggleFavourite(t *testing.T) {
	store := seedStore(t)
	lost := store.Series()[2]

	if !store.ToggleFavourite(lost) {
		t.Fatal("expected toggle to add")
	}
	if !store.IsFavourite(lost.Key()) {
		t.Fatal("expected favourite")
	}
	if store.ToggleFavourite(lost) {
		t.Fatal("expected toggle to remove")
	}
	if len(store.Favourites()) != 0 {
		t.Fatalf("favourites = %+v", store.Favourites())
	}
}

func TestFavouritesSurviveCatalogReplacement(t *testing.T) {
	store := seedStore(t)
	lost := store.Series()[2]
	store.AddFavourite(lost)

	store.ReplaceSeries([]record.Series{mustSeries(t, `"Other",Other,1,2,Jan 2001`)})

	if !store.IsFavourite(lost.Key()) {
		t.Fatal("favourite lost after catalog replacement")
	}
	got, ok := store.Lookup(lost.Key())
	if !ok || got.Name != "Lost" {
		t.Fatalf("Lookup = %+v, %v", got, ok)
	}
}

func TestReplaceSeriesDeduplicates(t *testing.T) {
	store := NewStore()
	a := mustSeries(t, `"A",a,1,2,Jan 2001`)
	b := mustSeries(t, `"B",b,1,2,Jan 2001`)
	c := mustSeries(t, `"C",c,3,4,Jan 2001`)
	if n := store.ReplaceSeries([]record.Series{a, b, c}); n != 2 {
		t.Fatalf("ReplaceSeries kept %d, want 2", n)
	}
}

func TestSetFavouritesDropsRepeats(t *testing.T) {
	store := NewStore()
	a := mustSeries(t, `"A",a,1,2,Jan 2001`)
	store.SetFavourites([]record.Series{a, a})
	if len(store.Favourites()) != 1 {
		t.Fatalf("favourites = %d, want 1", len(store.Favourites()))
	}
}

func TestEpisodesKeptNewestFirst(t *testing.T) {
	store := NewStore()
	owner := mustSeries(t, `"Dexter",Dexter,7926,175,Oct 2006`)
	var feed []record.Episode
	for _, line := range []string{
		`1,1,1,"01 Oct 06","Dexter",`,
		`2,1,2,"08 Oct 06","Crocodile",`,
	} {
		ep, ok := record.ParseEpisode(line, owner)
		if !ok {
			t.Fatalf("parse %q", line)
		}
		feed = append(feed, ep)
	}

	store.ReplaceEpisodes(owner.Key(), feed)
	eps := store.Episodes()
	if eps[0].Name != "Crocodile" || eps[1].Name != "Dexter" {
		t.Fatalf("display order = %+v", eps)
	}
	back := store.FeedOrder()
	if back[0].Raw != feed[0].Raw || back[1].Raw != feed[1].Raw {
		t.Fatalf("feed order not restored: %+v", back)
	}
	if key, ok := store.EpisodeOwner(); !ok || key != owner.Key() {
		t.Fatalf("EpisodeOwner = %q, %v", key, ok)
	}

	store.ClearEpisodes()
	if _, ok := store.EpisodeOwner(); ok || len(store.Episodes()) != 0 {
		t.Fatal("expected episodes cleared")
	}
}
