package cache

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"seriesapp/internal/record"
)

func openRepo(t *testing.T, opts ...Option) *Repository {
	t.Helper()
	repo, err := Open(filepath.Join(t.TempDir(), "data"), nil, opts...)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return repo
}

func parseSeries(t *testing.T, line string) record.Series {
	t.Helper()
	s, ok := record.ParseSeries(line)
	if !ok {
		t.Fatalf("parse series %q", line)
	}
	return s
}

func TestOpenCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	repo, err := Open(dir, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if info, err := os.Stat(repo.Dir()); err != nil || !info.IsDir() {
		t.Fatalf("expected directory at %s: %v", dir, err)
	}
}

func TestOpenRejectsEmptyDir(t *testing.T) {
	if _, err := Open("  ", nil); err == nil {
		t.Fatal("expected error for empty dir")
	}
}

func TestSeriesListMissingIsCacheMiss(t *testing.T) {
	repo := openRepo(t)
	_, _, err := repo.LoadSeriesList()
	if !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected ErrCacheMiss, got %v", err)
	}
}

func TestSeriesListWithoutRecordsIsCacheMiss(t *testing.T) {
	repo := openRepo(t)
	if err := os.WriteFile(repo.Path(SeriesListFile), []byte("title,directory\n\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := repo.LoadSeriesList(); !IsMiss(err) {
		t.Fatalf("expected cache miss, got %v", err)
	}
}

func TestSeriesListRoundTrip(t *testing.T) {
	repo := openRepo(t)
	list := []record.Series{
		parseSeries(t, `"Dexter",Dexter,7926,175,Oct 2006`),
		parseSeries(t, `"Lost",Lost,4284,123,Sep 2004`),
	}
	if err := repo.SaveSeriesList(list); err != nil {
		t.Fatalf("SaveSeriesList: %v", err)
	}

	got, age, err := repo.LoadSeriesList()
	if err != nil {
		t.Fatalf("LoadSeriesList: %v", err)
	}
	if len(got) != len(list) {
		t.Fatalf("got %d series, want %d", len(got), len(list))
	}
	for i := range list {
		if got[i] != list[i] {
			t.Fatalf("series %d mismatch: %+v vs %+v", i, got[i], list[i])
		}
	}
	if !age.Known || age.Days != 0 {
		t.Fatalf("age = %+v, want fresh", age)
	}
}

func TestFavouritesRoundTrip(t *testing.T) {
	repo := openRepo(t)
	fav := parseSeries(t, `"Law, Order",law_order,,123,"Sep 1990"`)
	if err := repo.SaveFavourites([]record.Series{fav}); err != nil {
		t.Fatalf("SaveFavourites: %v", err)
	}
	got, err := repo.LoadFavourites()
	if err != nil {
		t.Fatalf("LoadFavourites: %v", err)
	}
	if len(got) != 1 || got[0] != fav {
		t.Fatalf("favourites = %+v", got)
	}
}

func TestLoadFavouritesSkipsInvalidLines(t *testing.T) {
	repo := openRepo(t)
	content := "garbage\n\"Dexter\",Dexter,7926,175,Oct 2006\n\n"
	if err := os.WriteFile(repo.Path(FavouritesFile), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := repo.LoadFavourites()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Name != "Dexter" {
		t.Fatalf("favourites = %+v", got)
	}
}

func TestEpisodeFileName(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{`"Dexter",Dexter,7926,175,Oct 2006`, "epscache_175_7926_Dexter.txt"},
		{`"Old",old,42,,Jan 1970`, "epscache__42_old.txt"},
		{`"Odd",../up,1,2,Jan 2001`, "epscache_2_1_.._up.txt"},
	}
	for _, tt := range tests {
		if got := EpisodeFileName(parseSeries(t, tt.line)); got != tt.want {
			t.Fatalf("EpisodeFileName(%q) = %q, want %q", tt.line, got, tt.want)
		}
	}
}

func TestEpisodesRoundTripKeepsFeedOrder(t *testing.T) {
	repo := openRepo(t)
	owner := parseSeries(t, `"Dexter",Dexter,7926,175,Oct 2006`)
	var feed []record.Episode
	for _, line := range []string{
		`1,1,1,"01 Oct 06","Dexter",`,
		`2,1,2,"08 Oct 06","Crocodile",`,
		`S,1,0,"24 Dec 06","Special",`,
	} {
		ep, ok := record.ParseEpisode(line, owner)
		if !ok {
			t.Fatalf("parse %q", line)
		}
		feed = append(feed, ep)
	}

	if err := repo.SaveEpisodes(owner, feed); err != nil {
		t.Fatalf("SaveEpisodes: %v", err)
	}
	got, _, err := repo.LoadEpisodes(owner)
	if err != nil {
		t.Fatalf("LoadEpisodes: %v", err)
	}
	if len(got) != len(feed) {
		t.Fatalf("got %d episodes, want %d", len(got), len(feed))
	}
	for i := range feed {
		if got[i] != feed[i] {
			t.Fatalf("episode %d mismatch: %+v vs %+v", i, got[i], feed[i])
		}
	}
}

func TestLoadEpisodesMiss(t *testing.T) {
	repo := openRepo(t)
	owner := parseSeries(t, `"Dexter",Dexter,7926,175,Oct 2006`)
	if _, _, err := repo.LoadEpisodes(owner); !IsMiss(err) {
		t.Fatalf("expected cache miss, got %v", err)
	}
}

func TestAgeReflectsModificationDate(t *testing.T) {
	now := time.Date(2024, time.May, 20, 12, 0, 0, 0, time.Local)
	repo := openRepo(t, WithClock(func() time.Time { return now }))
	list := []record.Series{parseSeries(t, `"Dexter",Dexter,7926,175,Oct 2006`)}
	if err := repo.SaveSeriesList(list); err != nil {
		t.Fatal(err)
	}
	old := now.AddDate(0, 0, -3)
	if err := os.Chtimes(repo.Path(SeriesListFile), old, old); err != nil {
		t.Fatal(err)
	}

	_, age, err := repo.LoadSeriesList()
	if err != nil {
		t.Fatal(err)
	}
	if age.Days != 3 {
		t.Fatalf("age = %+v, want 3 days", age)
	}
	if got := age.Annotate("List loaded from seriesList.txt"); got != "List loaded from seriesList.txt (3 days old)" {
		t.Fatalf("Annotate = %q", got)
	}
}

func TestAgeString(t *testing.T) {
	tests := []struct {
		age  Age
		want string
	}{
		{Age{Days: 0, Known: true}, "(0 days old)"},
		{Age{Days: 1, Known: true}, "(1 day old)"},
		{Age{Days: 12, Known: true}, "(12 days old)"},
		{Age{Days: -1, Known: true}, ""},
		{Age{}, ""},
	}
	for _, tt := range tests {
		if got := tt.age.String(); got != tt.want {
			t.Fatalf("%+v.String() = %q, want %q", tt.age, got, tt.want)
		}
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	repo := openRepo(t)

	got, err := repo.LoadSettings()
	if !IsMiss(err) {
		t.Fatalf("expected miss for absent settings, got %v", err)
	}
	if got != DefaultSettings() {
		t.Fatalf("expected defaults, got %+v", got)
	}

	want := Settings{ProxyUseSystem: true, ProxyAddress: "proxy.local", ProxyPort: 3128}
	if err := repo.SaveSettings(want); err != nil {
		t.Fatalf("SaveSettings: %v", err)
	}
	got, err = repo.LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if got != want {
		t.Fatalf("settings = %+v, want %+v", got, want)
	}
}

func TestParseSettingsIgnoresUnknownAndInvalid(t *testing.T) {
	base := Settings{ProxyAddress: "keep", ProxyPort: 8080}
	got := ParseSettings([]string{
		"colour blue",
		"proxyPort notanumber",
		"proxyUseSystem maybe",
		"proxyAddress",
		"",
		"proxyUseSystem 1",
	}, base)
	want := Settings{ProxyUseSystem: true, ProxyAddress: "keep", ProxyPort: 8080}
	if got != want {
		t.Fatalf("ParseSettings = %+v, want %+v", got, want)
	}
}

func TestStatusListsEpisodeCaches(t *testing.T) {
	repo := openRepo(t)
	owner := parseSeries(t, `"Dexter",Dexter,7926,175,Oct 2006`)
	ep, _ := record.ParseEpisode(`1,1,1,"01 Oct 06","Dexter",`, owner)
	if err := repo.SaveEpisodes(owner, []record.Episode{ep}); err != nil {
		t.Fatal(err)
	}

	files, err := repo.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if len(files) != 4 {
		t.Fatalf("files = %+v", files)
	}
	if files[0].Name != SeriesListFile || files[0].Present {
		t.Fatalf("unexpected series list status: %+v", files[0])
	}
	last := files[3]
	if last.Name != EpisodeFileName(owner) || !last.Present || last.Lines != 1 {
		t.Fatalf("unexpected episode cache status: %+v", last)
	}
}

func TestLockIsExclusive(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	first, err := Open(dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Open(dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := first.Lock(); err != nil {
		t.Fatalf("first Lock: %v", err)
	}
	t.Cleanup(func() { _ = first.Unlock() })

	if err := second.Lock(); !errors.Is(err, ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
}
