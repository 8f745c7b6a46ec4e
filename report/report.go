// Package report renders a persona summary as text and writes it to disk.
package report

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"

	"reddit-persona/persona"
)

const unknownHour = "Unknown"

// Render formats a summary in the fixed report layout. The output depends
// only on s, so equal summaries render byte-identical reports.
func Render(s *persona.Summary) string {
	var sb strings.Builder

	sb.WriteString("=========================\n")
	sb.WriteString("🧑 Reddit User Persona\n")
	sb.WriteString("=========================\n")
	fmt.Fprintf(&sb, "👤 Username: u/%s\n\n", s.Username)

	communities := make([]string, len(s.TopCommunities))
	for i, c := range s.TopCommunities {
		communities[i] = fmt.Sprintf("%s (%d posts)", c.Name, c.Count)
	}
	sb.WriteString("📚 Top Subreddits (Interests):\n")
	sb.WriteString(strings.Join(communities, ", "))
	sb.WriteString("\n\n")

	sb.WriteString("📊 Activity Type:\n")
	fmt.Fprintf(&sb, "Posts: %d, Comments: %d\n\n", s.Posts, s.Comments)

	fmt.Fprintf(&sb, "🕓 Most Active Hour: %s\n\n", formatHour(s))
	fmt.Fprintf(&sb, "🎭 Overall Tone: %s\n\n", s.Tone)

	sb.WriteString("🗣️ Self-Descriptions Found:\n")
	for _, d := range s.SelfDescriptions {
		fmt.Fprintf(&sb, "\n- \"%s\"\n  → Source: %s", d.Snippet, d.URL)
	}

	return strings.TrimSpace(sb.String())
}

func formatHour(s *persona.Summary) string {
	if !s.HasActiveHour {
		return unknownHour
	}
	return fmt.Sprintf("%d:00", s.ActiveHour)
}

// FileName returns the report file name for a user.
func FileName(username string) string {
	return username + "_persona.txt"
}

// reportMode is used for new reports. The process umask is not applied.
const reportMode os.FileMode = 0644

// WriteFile writes text to dir/<username>_persona.txt, replacing any
// existing file. The content goes to a temporary file first and is renamed
// into place, so a failed write leaves no partial report. A replaced report
// keeps its permission bits; a new one gets reportMode.
func WriteFile(dir, username, text string) (string, error) {
	path := filepath.Join(dir, FileName(username))

	mode := reportMode
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(dir, ".persona-*.tmp")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.WriteString(text); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write report: %w", err)
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		return "", fmt.Errorf("chmod report: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close report: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return "", fmt.Errorf("rename report: %w", err)
	}

	slog.Info("report written", "path", path, "size", humanize.Bytes(uint64(len(text))))
	return path, nil
}
