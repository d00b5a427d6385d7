package model

// Genre mirrors the 'genres' reference table.
type Genre struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

// GenreCatalog is the fixed list seeded into an empty genres table.
var GenreCatalog = []string{
	"Alternative", "Blues", "Classical", "Country", "Electronic",
	"Folk", "Funk", "HipHop", "HeavyMetal", "Instrumental",
	"Jazz", "MusicalTheatre", "Pop", "Punk", "RB", "Reggae",
	"RocknRoll", "Soul", "Other",
}

var genreSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(GenreCatalog))
	for _, g := range GenreCatalog {
		m[g] = struct{}{}
	}
	return m
}()

// IsGenre reports whether name belongs to the catalog.
func IsGenre(name string) bool {
	_, ok := genreSet[name]
	return ok
}

// UniqueGenres drops repeated names while keeping first-seen order.
func UniqueGenres(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
