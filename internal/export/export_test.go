package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goodsign/monday"

	"github.com/sadopc/moodr/internal/journal"
	"github.com/sadopc/moodr/internal/mood"
	"github.com/sadopc/moodr/internal/store"
)

func sampleData() ([]store.Entry, map[mood.Mood]string) {
	entries := []store.Entry{
		{Date: "2024-03-05", Mood: mood.Blue, Diary: "<b>ok</b>"},
		{Date: "2024-03-04", Mood: mood.Red, Diary: "rough one"},
		{Date: "2024-03-01", Mood: mood.Grey, Diary: "just notes"},
	}
	labels := map[mood.Mood]string{
		mood.Blue: "wonderful",
	}
	return entries, labels
}

// ============================================================
// CSV
// ============================================================

func TestToCSV(t *testing.T) {
	entries, labels := sampleData()
	path := filepath.Join(t.TempDir(), "test.csv")

	err := ToCSV(entries, labels, path)
	if err != nil {
		t.Fatalf("ToCSV: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		t.Fatal(err)
	}

	// header + 3 data rows
	if len(records) != 4 {
		t.Fatalf("expected 4 rows (1 header + 3 data), got %d", len(records))
	}

	// Check header
	header := records[0]
	expectedHeader := []string{"Date", "Mood", "Label", "Diary", "Text"}
	for i, h := range expectedHeader {
		if header[i] != h {
			t.Fatalf("header[%d] = %q, want %q", i, header[i], h)
		}
	}

	// Check first data row
	row := records[1]
	if row[0] != "2024-03-05" {
		t.Fatalf("Date = %q, want 2024-03-05", row[0])
	}
	if row[1] != "blue" {
		t.Fatalf("Mood = %q, want blue", row[1])
	}
	if row[2] != "wonderful" {
		t.Fatalf("Label = %q, want override 'wonderful'", row[2])
	}
	if row[3] != "<b>ok</b>" {
		t.Fatalf("Diary = %q, want tagged text verbatim", row[3])
	}
	if row[4] != "ok" {
		t.Fatalf("Text = %q, want stripped text", row[4])
	}

	// Mood without an override keeps the built-in label.
	if records[2][2] != mood.Red.Label() {
		t.Fatalf("Label = %q, want built-in %q", records[2][2], mood.Red.Label())
	}
}

func TestToCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")

	err := ToCSV(nil, nil, path)
	if err != nil {
		t.Fatal(err)
	}

	f, _ := os.Open(path)
	defer f.Close()
	r := csv.NewReader(f)
	records, _ := r.ReadAll()
	if len(records) != 1 {
		t.Fatalf("expected 1 row (header only), got %d", len(records))
	}
}

func TestToCSVBadPath(t *testing.T) {
	err := ToCSV(nil, nil, "/nonexistent/dir/file.csv")
	if err == nil {
		t.Fatal("expected error for bad path")
	}
}

func TestToCSVSpecialCharacters(t *testing.T) {
	entries := []store.Entry{
		{Date: "2024-01-01", Mood: mood.Red, Diary: `diary with "quotes" and, commas` + "\nand a newline"},
	}
	path := filepath.Join(t.TempDir(), "special.csv")

	err := ToCSV(entries, nil, path)
	if err != nil {
		t.Fatal(err)
	}

	f, _ := os.Open(path)
	defer f.Close()
	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		t.Fatalf("CSV should be valid even with special chars: %v", err)
	}
	if records[1][3] != `diary with "quotes" and, commas`+"\nand a newline" {
		t.Fatalf("diary mangled: %q", records[1][3])
	}
}

// ============================================================
// JSON
// ============================================================

func TestToJSON(t *testing.T) {
	entries, labels := sampleData()
	path := filepath.Join(t.TempDir(), "test.json")

	err := ToJSON(entries, labels, path)
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var result jsonExport
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if result.Count != 3 {
		t.Fatalf("count = %d, want 3", result.Count)
	}
	if len(result.Entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(result.Entries))
	}
	if result.ExportedAt == "" {
		t.Fatal("exported_at should not be empty")
	}

	// Check first entry
	e := result.Entries[0]
	if e.Date != "2024-03-05" {
		t.Fatalf("Date = %q, want 2024-03-05", e.Date)
	}
	if e.Mood != "blue" || e.Emoji != "🔵" {
		t.Fatalf("Mood/Emoji = %q %q", e.Mood, e.Emoji)
	}
	if e.Label != "wonderful" {
		t.Fatalf("Label = %q, want override", e.Label)
	}
	if e.Diary != "<b>ok</b>" || e.Text != "ok" {
		t.Fatalf("Diary/Text = %q %q", e.Diary, e.Text)
	}
}

func TestToJSONEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")

	err := ToJSON(nil, nil, path)
	if err != nil {
		t.Fatal(err)
	}

	data, _ := os.ReadFile(path)
	var result jsonExport
	json.Unmarshal(data, &result)

	if result.Count != 0 {
		t.Fatalf("count = %d, want 0", result.Count)
	}
	if result.Entries != nil {
		t.Fatal("entries should be nil/null for empty export")
	}
}

func TestToJSONBadPath(t *testing.T) {
	err := ToJSON(nil, nil, "/nonexistent/dir/file.json")
	if err == nil {
		t.Fatal("expected error for bad path")
	}
}

func TestToJSONPrettyPrinted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pretty.json")
	ToJSON(nil, nil, path)

	data, _ := os.ReadFile(path)
	// Pretty-printed JSON should contain newlines and indentation
	if !strings.Contains(string(data), "\n") {
		t.Fatal("JSON should be pretty-printed with newlines")
	}
	if !strings.Contains(string(data), "  ") {
		t.Fatal("JSON should be indented with spaces")
	}
}

func TestToJSONValidTimestamp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ts.json")
	ToJSON(nil, nil, path)

	data, _ := os.ReadFile(path)
	var result jsonExport
	json.Unmarshal(data, &result)

	// exported_at should be valid RFC3339
	_, err := time.Parse(time.RFC3339, result.ExportedAt)
	if err != nil {
		t.Fatalf("exported_at is not valid RFC3339: %q", result.ExportedAt)
	}
}

// ============================================================
// Text
// ============================================================

func TestToText(t *testing.T) {
	entries, _ := sampleData()
	path := filepath.Join(t.TempDir(), "journal.txt")

	err := ToText(entries, monday.LocaleEnUS, path)
	if err != nil {
		t.Fatalf("ToText: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := journal.Export(entries) + "\n"
	if string(data) != want {
		t.Fatalf("file content = %q, want %q", data, want)
	}
}

func TestToTextEmptyWritesSentinel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	if err := ToText(nil, monday.LocaleEnUS, path); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != journal.NoEntriesMessage+"\n" {
		t.Fatalf("file content = %q, want sentinel", data)
	}
}

func TestToTextRoundTrips(t *testing.T) {
	entries, _ := sampleData()
	path := filepath.Join(t.TempDir(), "roundtrip.txt")
	if err := ToText(entries, monday.LocaleEnUS, path); err != nil {
		t.Fatal(err)
	}

	data, _ := os.ReadFile(path)
	imported, err := journal.Import(string(data))
	if err != nil {
		t.Fatal(err)
	}
	if len(imported) != len(entries) {
		t.Fatalf("expected %d entries back, got %d", len(entries), len(imported))
	}
}
