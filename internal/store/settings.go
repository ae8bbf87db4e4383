package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/sadopc/moodr/internal/mood"
)

func (s *Store) GetSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return "", fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, nil
}

func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

func (s *Store) GetAllSettings() ([]Setting, error) {
	rows, err := s.db.Query(`SELECT key, value FROM settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	var settings []Setting
	for rows.Next() {
		var s Setting
		if err := rows.Scan(&s.Key, &s.Value); err != nil {
			return nil, err
		}
		settings = append(settings, s)
	}
	return settings, rows.Err()
}

// moodOverrides reads the per-mood settings rows under the given key prefix
// and merges them over the supplied built-in defaults.
func (s *Store) moodOverrides(prefix string, defaults func(mood.Mood) string) (map[mood.Mood]string, error) {
	out := make(map[mood.Mood]string, 7)
	for _, m := range mood.All() {
		out[m] = defaults(m)
	}

	rows, err := s.db.Query(`SELECT key, value FROM settings WHERE key LIKE ?`, prefix+"%")
	if err != nil {
		return nil, fmt.Errorf("read %s settings: %w", prefix, err)
	}
	defer rows.Close()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		name := strings.TrimPrefix(key, prefix)
		if m, ok := mood.FromName(name); ok && value != "" {
			out[m] = value
		}
	}
	return out, rows.Err()
}

// MoodLabels returns the display word for every mood, with user overrides
// from settings applied over the built-in defaults.
func (s *Store) MoodLabels() (map[mood.Mood]string, error) {
	return s.moodOverrides("mood_label_", mood.Mood.Label)
}

func (s *Store) SetMoodLabel(m mood.Mood, label string) error {
	return s.SetSetting("mood_label_"+m.String(), label)
}

// MoodColors returns the hex color for every mood, with user overrides from
// settings applied over the built-in defaults.
func (s *Store) MoodColors() (map[mood.Mood]string, error) {
	return s.moodOverrides("mood_color_", mood.Mood.Color)
}

func (s *Store) SetMoodColor(m mood.Mood, color string) error {
	return s.SetSetting("mood_color_"+m.String(), color)
}

// WeekStart returns the configured first day of the calendar week. Anything
// other than "sunday" means Monday.
func (s *Store) WeekStart() time.Weekday {
	val, err := s.GetSetting("week_start")
	if err == nil && val == "sunday" {
		return time.Sunday
	}
	return time.Monday
}
