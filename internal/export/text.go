package export

import (
	"fmt"
	"os"

	"github.com/goodsign/monday"

	"github.com/sadopc/moodr/internal/journal"
	"github.com/sadopc/moodr/internal/store"
)

// ToText writes the plain-text journal document. With no valid entries the
// document is the sentinel message; callers that would rather skip the write
// entirely should check journal.Export before calling.
func ToText(entries []store.Entry, locale monday.Locale, path string) error {
	doc := journal.ExportWithLocale(entries, locale)
	if err := os.WriteFile(path, []byte(doc+"\n"), 0o644); err != nil {
		return fmt.Errorf("write text file: %w", err)
	}
	return nil
}
