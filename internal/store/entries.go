package store

import (
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/sadopc/moodr/internal/mood"
	"github.com/sadopc/moodr/internal/tagtext"
	"github.com/sadopc/moodr/internal/timeutil"
)

// SaveEntry writes the journal record for a date, canonicalizing the diary
// text first. Saving an invalid state (grey mood and blank diary) deletes
// the record instead and returns nil, nil.
func (s *Store) SaveEntry(date string, m mood.Mood, diary string) (*Entry, error) {
	if _, err := timeutil.ParseISO(date); err != nil {
		return nil, fmt.Errorf("save entry: invalid date %q: %w", date, err)
	}
	diary = tagtext.Clean(diary)

	e := Entry{Date: date, Mood: m, Diary: diary}
	if !e.Valid() {
		if err := s.DeleteEntry(date); err != nil {
			return nil, err
		}
		return nil, nil
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`INSERT INTO entries (date, mood, diary, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(date) DO UPDATE SET mood = excluded.mood, diary = excluded.diary, updated_at = excluded.updated_at`,
		date, m.String(), diary, now,
	)
	if err != nil {
		return nil, fmt.Errorf("save entry: %w", err)
	}
	return s.GetEntry(date)
}

// GetEntry returns the record for a date, or nil, nil when the day has none.
func (s *Store) GetEntry(date string) (*Entry, error) {
	e := &Entry{}
	var moodName, createdAt, updatedAt string

	err := s.db.QueryRow(
		`SELECT date, mood, diary, created_at, updated_at FROM entries WHERE date = ?`, date,
	).Scan(&e.Date, &moodName, &e.Diary, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get entry %s: %w", date, err)
	}
	if m, ok := mood.FromName(moodName); ok {
		e.Mood = m
	}
	e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	e.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return e, nil
}

func (s *Store) ListEntries(f EntryFilter) ([]Entry, error) {
	query := `SELECT date, mood, diary, created_at, updated_at FROM entries WHERE 1=1`
	var args []any

	if f.From != "" {
		query += ` AND date >= ?`
		args = append(args, f.From)
	}
	if f.To != "" {
		query += ` AND date <= ?`
		args = append(args, f.To)
	}
	if f.Mood != nil {
		query += ` AND mood = ?`
		args = append(args, f.Mood.String())
	}
	query += ` ORDER BY date DESC`
	if f.Limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, f.Limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var moodName, createdAt, updatedAt string
		if err := rows.Scan(&e.Date, &moodName, &e.Diary, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		if m, ok := mood.FromName(moodName); ok {
			e.Mood = m
		}
		e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		e.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// MonthEntries returns the month's records keyed by day of month.
func (s *Store) MonthEntries(year int, month time.Month) (map[int]Entry, error) {
	from := timeutil.FormatISO(timeutil.Date(year, month, 1))
	to := timeutil.FormatISO(timeutil.Date(year, month, timeutil.DaysIn(year, month)))

	entries, err := s.ListEntries(EntryFilter{From: from, To: to})
	if err != nil {
		return nil, fmt.Errorf("month entries: %w", err)
	}

	byDay := make(map[int]Entry, len(entries))
	for _, e := range entries {
		byDay[e.Time().Day()] = e
	}
	return byDay, nil
}

func (s *Store) DeleteEntry(date string) error {
	if _, err := s.db.Exec(`DELETE FROM entries WHERE date = ?`, date); err != nil {
		return fmt.Errorf("delete entry %s: %w", date, err)
	}
	return nil
}

// DeleteAll wipes the journal and returns the number of removed records.
func (s *Store) DeleteAll() (int64, error) {
	res, err := s.db.Exec(`DELETE FROM entries`)
	if err != nil {
		return 0, fmt.Errorf("delete all entries: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// ReplaceEntries merges imported records into the journal: same-date records
// are overwritten in input order (so the last occurrence of a date wins) and
// invalid records are skipped. Returns the number of records stored.
func (s *Store) ReplaceEntries(entries []Entry) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("replace entries: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)
	count := 0
	for _, e := range entries {
		e.Diary = tagtext.Clean(e.Diary)
		if !e.Valid() {
			continue
		}
		if _, err := timeutil.ParseISO(e.Date); err != nil {
			continue
		}
		_, err := tx.Exec(
			`INSERT INTO entries (date, mood, diary, updated_at) VALUES (?, ?, ?, ?)
			 ON CONFLICT(date) DO UPDATE SET mood = excluded.mood, diary = excluded.diary, updated_at = excluded.updated_at`,
			e.Date, e.Mood.String(), e.Diary, now,
		)
		if err != nil {
			return 0, fmt.Errorf("replace entry %s: %w", e.Date, err)
		}
		count++
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("replace entries: %w", err)
	}
	return count, nil
}

// MoodCounts aggregates entry counts per mood over an inclusive date range.
// Empty bounds leave that side open. Results come back in mood order.
func (s *Store) MoodCounts(from, to string) ([]MoodCount, error) {
	query := `SELECT mood, COUNT(*) FROM entries WHERE 1=1`
	var args []any

	if from != "" {
		query += ` AND date >= ?`
		args = append(args, from)
	}
	if to != "" {
		query += ` AND date <= ?`
		args = append(args, to)
	}
	query += ` GROUP BY mood`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("mood counts: %w", err)
	}
	defer rows.Close()

	var counts []MoodCount
	for rows.Next() {
		var name string
		var mc MoodCount
		if err := rows.Scan(&name, &mc.Count); err != nil {
			return nil, err
		}
		if m, ok := mood.FromName(name); ok {
			mc.Mood = m
		}
		counts = append(counts, mc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	sort.Slice(counts, func(i, j int) bool { return counts[i].Mood < counts[j].Mood })
	return counts, nil
}

// EntryDates returns every journaled date in ascending order.
func (s *Store) EntryDates() ([]string, error) {
	rows, err := s.db.Query(`SELECT date FROM entries ORDER BY date ASC`)
	if err != nil {
		return nil, fmt.Errorf("entry dates: %w", err)
	}
	defer rows.Close()

	var dates []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}
