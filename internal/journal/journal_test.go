package journal

import (
	"strings"
	"testing"

	"github.com/goodsign/monday"

	"github.com/sadopc/moodr/internal/mood"
	"github.com/sadopc/moodr/internal/store"
)

// ============================================================
// Export
// ============================================================

func TestExportSingleEntry(t *testing.T) {
	entries := []store.Entry{
		{Date: "2024-03-05", Mood: mood.Blue, Diary: "<b>ok</b>"},
	}
	got := Export(entries)
	want := "🔵 MARCH 5 2024, TUESDAY\n<b>ok</b>"
	if got != want {
		t.Fatalf("Export = %q, want %q", got, want)
	}
}

func TestExportNewestFirst(t *testing.T) {
	entries := []store.Entry{
		{Date: "2024-01-05", Mood: mood.Red, Diary: "old"},
		{Date: "2024-03-05", Mood: mood.Blue, Diary: "new"},
	}
	got := Export(entries)
	first := strings.Index(got, "MARCH")
	second := strings.Index(got, "JANUARY")
	if first == -1 || second == -1 || first > second {
		t.Fatalf("blocks should be newest first:\n%s", got)
	}
}

func TestExportBlankLineBetweenBlocks(t *testing.T) {
	entries := []store.Entry{
		{Date: "2024-01-05", Mood: mood.Red, Diary: "one"},
		{Date: "2024-01-06", Mood: mood.Blue, Diary: "two"},
	}
	got := Export(entries)
	blocks := strings.Split(got, "\n\n")
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks separated by a blank line, got %d:\n%s", len(blocks), got)
	}
}

func TestExportFiltersInvalid(t *testing.T) {
	entries := []store.Entry{
		{Date: "2024-01-01", Mood: mood.Grey, Diary: ""},
		{Date: "2024-01-02", Mood: mood.Grey, Diary: "hi"},
	}
	got := Export(entries)
	if strings.Contains(got, "JANUARY 1 ") {
		t.Fatalf("grey entry with no diary should be excluded:\n%s", got)
	}
	if !strings.Contains(got, "JANUARY 2 2024") {
		t.Fatalf("grey entry with diary should be included:\n%s", got)
	}
}

func TestExportEmpty(t *testing.T) {
	if got := Export(nil); got != NoEntriesMessage {
		t.Fatalf("Export(nil) = %q, want sentinel", got)
	}
	onlyInvalid := []store.Entry{
		{Date: "2024-01-01", Mood: mood.Grey, Diary: "   "},
	}
	if got := Export(onlyInvalid); got != NoEntriesMessage {
		t.Fatalf("Export of only invalid entries = %q, want sentinel", got)
	}
}

func TestExportMoodOnlyEntry(t *testing.T) {
	entries := []store.Entry{
		{Date: "2024-03-05", Mood: mood.Red, Diary: ""},
	}
	got := Export(entries)
	want := "🔴 MARCH 5 2024, TUESDAY"
	if got != want {
		t.Fatalf("Export = %q, want %q", got, want)
	}
}

func TestExportCanonicalizesDiary(t *testing.T) {
	entries := []store.Entry{
		{Date: "2024-03-05", Mood: mood.Blue, Diary: "<b>a</b><b>b</b>"},
	}
	got := Export(entries)
	if !strings.HasSuffix(got, "\n<b>ab</b>") {
		t.Fatalf("diary should be canonicalized:\n%s", got)
	}
}

func TestExportLocalizedHeader(t *testing.T) {
	entries := []store.Entry{
		{Date: "2024-03-05", Mood: mood.Blue, Diary: "hallo"},
	}
	got := ExportWithLocale(entries, monday.LocaleDeDE)
	if !strings.Contains(got, "MÄRZ") {
		t.Fatalf("expected German month in header:\n%s", got)
	}
}

// ============================================================
// Import
// ============================================================

func TestImportEmptyInput(t *testing.T) {
	for _, in := range []string{"", "   ", "\n\n  \n"} {
		if _, err := Import(in); err != ErrEmptyInput {
			t.Errorf("Import(%q) error = %v, want ErrEmptyInput", in, err)
		}
	}
}

func TestImportUnresolvableMonth(t *testing.T) {
	_, err := Import("🔴 XXXX 1 2024, MONDAY\nbody")
	if err != ErrNoValidEntries {
		t.Fatalf("error = %v, want ErrNoValidEntries", err)
	}
}

func TestImportSingleBlock(t *testing.T) {
	entries, err := Import("🔵 MARCH 5 2024, TUESDAY\n<b>ok</b>")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	e := entries[0]
	if e.Date != "2024-03-05" || e.Mood != mood.Blue || e.Diary != "<b>ok</b>" {
		t.Fatalf("unexpected entry: %+v", e)
	}
}

func TestImportMultiLineDiary(t *testing.T) {
	text := "🟢 JANUARY 5 2024, FRIDAY\nline one\n\nline three"
	entries, err := Import(text)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Diary != "line one\n\nline three" {
		t.Fatalf("blank body lines should survive, got %q", entries[0].Diary)
	}
}

func TestImportMultipleBlocks(t *testing.T) {
	text := "🔴 JANUARY 5 2024, FRIDAY\nbad day\n\n🟢 JANUARY 6 2024, SATURDAY\nbetter"
	entries, err := Import(text)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Date != "2024-01-05" || entries[1].Date != "2024-01-06" {
		t.Fatalf("unexpected dates: %+v", entries)
	}
}

func TestImportDuplicateDatesKept(t *testing.T) {
	text := "🔴 JANUARY 5 2024, FRIDAY\nfirst\n\n🔵 JANUARY 5 2024, FRIDAY\nsecond"
	entries, err := Import(text)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("the codec does not dedupe dates, got %d entries", len(entries))
	}
	if entries[0].Diary != "first" || entries[1].Diary != "second" {
		t.Fatalf("file order should be preserved: %+v", entries)
	}
}

func TestImportSkipsBadBlocksKeepsGood(t *testing.T) {
	text := "🔴 FEBRUARY 30 2024, FRIDAY\nimpossible\n\n🟢 MARCH 1 2024, FRIDAY\nfine"
	entries, err := Import(text)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Date != "2024-03-01" {
		t.Fatalf("bad date block should be skipped silently: %+v", entries)
	}
}

func TestImportCaseInsensitiveHeader(t *testing.T) {
	entries, err := Import("🔵 march 5 2024, tuesday\nok")
	if err != nil {
		t.Fatal(err)
	}
	if entries[0].Date != "2024-03-05" {
		t.Fatalf("unexpected date: %+v", entries[0])
	}
}

func TestImportHeaderSpacingVariants(t *testing.T) {
	entries, err := Import("🔵  MARCH  5  2024 , TUESDAY  \nok")
	if err != nil {
		t.Fatal(err)
	}
	if entries[0].Date != "2024-03-05" {
		t.Fatalf("unexpected date: %+v", entries[0])
	}
}

func TestImportIgnoresWeekdayValue(t *testing.T) {
	// March 5 2024 is a Tuesday; an export from a hand-edited file may lie.
	entries, err := Import("🔵 MARCH 5 2024, FRIDAY\nok")
	if err != nil {
		t.Fatal(err)
	}
	if entries[0].Date != "2024-03-05" {
		t.Fatalf("unexpected date: %+v", entries[0])
	}
}

func TestImportUnknownEmojiIsBody(t *testing.T) {
	text := "🔴 JANUARY 5 2024, FRIDAY\n🟤 JANUARY 6 2024, SATURDAY\ntail"
	entries, err := Import(text)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("unknown emoji line is not a header, got %d entries", len(entries))
	}
	if entries[0].Diary != "🟤 JANUARY 6 2024, SATURDAY\ntail" {
		t.Fatalf("unexpected diary: %q", entries[0].Diary)
	}
}

func TestImportDropsLeadingJunk(t *testing.T) {
	text := "exported by some tool\n\n🔴 JANUARY 5 2024, FRIDAY\nbody"
	entries, err := Import(text)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Diary != "body" {
		t.Fatalf("leading headerless text should be dropped: %+v", entries)
	}
}

func TestImportSkipsEmptyGreyBlock(t *testing.T) {
	_, err := Import("⚪ JANUARY 5 2024, FRIDAY")
	if err != ErrNoValidEntries {
		t.Fatalf("grey block with no diary is not a valid entry, got %v", err)
	}
}

func TestImportCanonicalizesDiary(t *testing.T) {
	entries, err := Import("🔵 MARCH 5 2024, TUESDAY\n<b>a</b><b>b</b>")
	if err != nil {
		t.Fatal(err)
	}
	if entries[0].Diary != "<b>ab</b>" {
		t.Fatalf("diary should be canonicalized, got %q", entries[0].Diary)
	}
}

func TestImportLocalizedMonth(t *testing.T) {
	entries, err := Import("🟢 MÄRZ 8 2024, FREITAG\nFrühling")
	if err != nil {
		t.Fatal(err)
	}
	if entries[0].Date != "2024-03-08" || entries[0].Mood != mood.Green {
		t.Fatalf("unexpected entry: %+v", entries[0])
	}
}

func TestImportWindowsLineEndings(t *testing.T) {
	entries, err := Import("🔵 MARCH 5 2024, TUESDAY\r\nok\r\n")
	if err != nil {
		t.Fatal(err)
	}
	if entries[0].Diary != "ok" {
		t.Fatalf("unexpected diary: %q", entries[0].Diary)
	}
}

// ============================================================
// Round trip
// ============================================================

func TestRoundTrip(t *testing.T) {
	original := []store.Entry{
		{Date: "2024-03-05", Mood: mood.Blue, Diary: "<b>ok</b>"},
		{Date: "2024-01-05", Mood: mood.Grey, Diary: "plain note"},
		{Date: "2024-02-14", Mood: mood.Purple, Diary: "<i>two</i>\nlines"},
		{Date: "2023-12-31", Mood: mood.Red, Diary: ""},
	}
	imported, err := Import(Export(original))
	if err != nil {
		t.Fatal(err)
	}
	if len(imported) != len(original) {
		t.Fatalf("expected %d entries back, got %d", len(original), len(imported))
	}

	byDate := make(map[string]store.Entry, len(imported))
	for _, e := range imported {
		byDate[e.Date] = e
	}
	for _, want := range original {
		got, ok := byDate[want.Date]
		if !ok {
			t.Fatalf("entry %s lost in round trip", want.Date)
		}
		if got.Mood != want.Mood {
			t.Errorf("%s: mood = %v, want %v", want.Date, got.Mood, want.Mood)
		}
		if got.Diary != want.Diary {
			t.Errorf("%s: diary = %q, want %q", want.Date, got.Diary, want.Diary)
		}
	}
}

func TestRoundTripLocalized(t *testing.T) {
	original := []store.Entry{
		{Date: "2024-03-05", Mood: mood.Blue, Diary: "hallo"},
	}
	imported, err := Import(ExportWithLocale(original, monday.LocaleDeDE))
	if err != nil {
		t.Fatal(err)
	}
	if len(imported) != 1 || imported[0].Date != "2024-03-05" {
		t.Fatalf("localized export should import back: %+v", imported)
	}
}

// ============================================================
// Locale names
// ============================================================

func TestNormalizeLocale(t *testing.T) {
	if got := NormalizeLocale("de_DE"); got != monday.LocaleDeDE {
		t.Fatalf("NormalizeLocale(de_DE) = %v", got)
	}
	if got := NormalizeLocale("xx_XX"); got != monday.LocaleEnUS {
		t.Fatalf("unknown locale should fall back to en_US, got %v", got)
	}
	if got := NormalizeLocale(""); got != monday.LocaleEnUS {
		t.Fatalf("empty locale should fall back to en_US, got %v", got)
	}
}
