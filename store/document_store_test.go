package store

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// The document variant finishes filtering, ordering, paging and aggregation
// locally; those reductions are pure over the fetched slice and are tested
// here without a server.

func docFixture() []feedbackDoc {
	email := func(s string) *string { return &s }
	base := time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC)
	return []feedbackDoc{
		{ID: primitive.NewObjectID(), Name: "Ana", Email: email("ana@example.com"), Category: "Academic", Rating: 5, Message: "Great", Status: "pending", CreatedAt: base.Add(3 * time.Hour)},
		{ID: primitive.NewObjectID(), Name: "Ben", Category: "Facilities", Rating: 3, Message: "Broken chairs", Status: "pending", CreatedAt: base.Add(2 * time.Hour)},
		{ID: primitive.NewObjectID(), Name: "Carla", Email: email("carla@example.com"), Category: "Academic", Rating: 4, Message: "Good lecturers", Status: "reviewed", CreatedAt: base.Add(time.Hour)},
		{ID: primitive.NewObjectID(), Name: "Dan", Category: "Staff", Rating: 2, Message: "Mentions Ana too", Status: "resolved", CreatedAt: base},
	}
}

func TestMatchesSearch(t *testing.T) {
	docs := docFixture()

	cases := []struct {
		q    string
		want []string
	}{
		{"", []string{"Ana", "Ben", "Carla", "Dan"}},
		{"ana", []string{"Ana", "Dan"}}, // name and message
		{"ANA", []string{"Ana", "Dan"}}, // case-insensitive
		{"carla@", []string{"Carla"}},   // email
		{"broken", []string{"Ben"}},     // message
		{"zzz", nil},
	}
	for _, tc := range cases {
		var got []string
		for _, d := range docs {
			if matchesSearch(d, tc.q) {
				got = append(got, d.Name)
			}
		}
		if len(got) != len(tc.want) {
			t.Errorf("search %q matched %v, want %v", tc.q, got, tc.want)
			continue
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("search %q matched %v, want %v", tc.q, got, tc.want)
				break
			}
		}
	}
}

// Search folds ASCII letters only, so it agrees with the relational
// variant whose LOWER() leaves non-ASCII untouched under SQLite.
func TestMatchesSearchASCIIFolding(t *testing.T) {
	d := feedbackDoc{Name: "Köksal", Message: "Die Mensa ist ÜBERfüllt"}

	cases := []struct {
		q    string
		want bool
	}{
		{"mensa", true}, // ASCII letters fold
		{"MENSA", true},
		{"ÜBERf", true}, // non-ASCII matches byte-exact
		{"überfüllt", false},
		{"KÖKSAL", false},
	}
	for _, tc := range cases {
		if got := matchesSearch(d, tc.q); got != tc.want {
			t.Errorf("matchesSearch(%q) = %v, want %v", tc.q, got, tc.want)
		}
	}
}

func TestSearchSkipsNullEmail(t *testing.T) {
	d := feedbackDoc{Name: "Ben", Message: "hello"}
	if matchesSearch(d, "example.com") {
		t.Error("null email matched an email query")
	}
}

func TestSortDocsDesc(t *testing.T) {
	docs := docFixture()
	// Shuffle deterministically by reversing.
	for i, j := 0, len(docs)-1; i < j; i, j = i+1, j-1 {
		docs[i], docs[j] = docs[j], docs[i]
	}
	sortDocsDesc(docs)
	for i := 1; i < len(docs); i++ {
		if docs[i].CreatedAt.After(docs[i-1].CreatedAt) {
			t.Fatalf("docs[%d] is newer than docs[%d]", i, i-1)
		}
	}
	if docs[0].Name != "Ana" || docs[len(docs)-1].Name != "Dan" {
		t.Errorf("order = %s..%s, want Ana..Dan", docs[0].Name, docs[len(docs)-1].Name)
	}
}

func TestSortDocsDescTiebreak(t *testing.T) {
	at := time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC)
	a := feedbackDoc{ID: primitive.NewObjectID(), CreatedAt: at}
	b := feedbackDoc{ID: primitive.NewObjectID(), CreatedAt: at}
	docs := []feedbackDoc{a, b}
	sortDocsDesc(docs)
	if docs[0].ID.Hex() < docs[1].ID.Hex() {
		t.Error("equal timestamps not tie-broken by descending id")
	}
}

func TestPageWindow(t *testing.T) {
	docs := docFixture()

	cases := []struct {
		offset, limit int
		wantLen       int
	}{
		{0, 2, 2},
		{2, 2, 2},
		{3, 2, 1},
		{4, 2, 0}, // offset past the end
		{10, 5, 0},
		{0, 0, 4},   // no limit
		{0, 100, 4}, // oversized limit
		{-1, 2, 2},  // negative offset clamps to 0
	}
	for _, tc := range cases {
		got := pageWindow(docs, tc.offset, tc.limit)
		if len(got) != tc.wantLen {
			t.Errorf("pageWindow(offset=%d, limit=%d) len = %d, want %d",
				tc.offset, tc.limit, len(got), tc.wantLen)
		}
	}

	// Windows must tile the set without overlap.
	first := pageWindow(docs, 0, 2)
	second := pageWindow(docs, 2, 2)
	if first[1].ID == second[0].ID {
		t.Error("adjacent windows overlap")
	}
}

func TestGroupDocs(t *testing.T) {
	docs := docFixture()

	byStatus := groupDocs(docs, "status")
	if byStatus["pending"] != 2 || byStatus["reviewed"] != 1 || byStatus["resolved"] != 1 {
		t.Errorf("byStatus = %v", byStatus)
	}
	byCategory := groupDocs(docs, "category")
	if byCategory["Academic"] != 2 || byCategory["Facilities"] != 1 || byCategory["Staff"] != 1 {
		t.Errorf("byCategory = %v", byCategory)
	}
	byRating := groupDocs(docs, "rating")
	if byRating["5"] != 1 || byRating["3"] != 1 || byRating["4"] != 1 || byRating["2"] != 1 {
		t.Errorf("byRating = %v", byRating)
	}
}

func TestAverageRating(t *testing.T) {
	if _, ok := averageRating(nil); ok {
		t.Error("empty slice reported an average")
	}
	avg, ok := averageRating(docFixture())
	if !ok {
		t.Fatal("average not reported")
	}
	want := (5.0 + 3 + 4 + 2) / 4
	if avg != want {
		t.Errorf("average = %v, want %v", avg, want)
	}
}

func TestCountDocsByDay(t *testing.T) {
	day1 := time.Date(2025, 8, 18, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 8, 20, 9, 0, 0, 0, time.UTC)
	docs := []feedbackDoc{
		{CreatedAt: day1},
		{CreatedAt: day1.Add(5 * time.Hour)},
		{CreatedAt: day2},
		{CreatedAt: day2.Add(-10 * 24 * time.Hour)}, // outside the window
	}

	since := day2.AddDate(0, 0, -7)
	got := countDocsByDay(docs, since)
	if len(got) != 2 {
		t.Fatalf("trend = %v, want 2 days", got)
	}
	if got[0].Date != "2025-08-18" || got[0].Count != 2 {
		t.Errorf("day 0 = %+v", got[0])
	}
	if got[1].Date != "2025-08-20" || got[1].Count != 1 {
		t.Errorf("day 1 = %+v", got[1])
	}

	// The window boundary itself is included.
	boundary := countDocsByDay([]feedbackDoc{{CreatedAt: since}}, since)
	if len(boundary) != 1 {
		t.Error("record created exactly at the boundary excluded")
	}
}
