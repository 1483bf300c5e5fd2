package open

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/Zuo-Peng/chatstats/internal/index"
)

// OpenTranscript opens the archived transcript's source file in $EDITOR,
// positioned at the line of message seq (line 1 when seq < 0).
func OpenTranscript(db *index.DB, key string, seq int) error {
	path, line, err := Locate(db, key, seq)
	if err != nil {
		return err
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "less"
	}
	cmd := editorCommand(editor, path, line)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Locate resolves a transcript key and message seq to a file and line.
func Locate(db *index.DB, key string, seq int) (string, int, error) {
	tr, err := db.GetTranscriptByKey(key)
	if err != nil {
		return "", 0, fmt.Errorf("get transcript: %w", err)
	}
	if tr == nil {
		return "", 0, fmt.Errorf("transcript not found: %s", key)
	}
	if _, err := os.Stat(tr.FilePath); err != nil {
		return "", 0, fmt.Errorf("file not found: %s", tr.FilePath)
	}

	line := 1
	if seq >= 0 {
		m, err := db.GetMessage(key, seq)
		if err != nil {
			return "", 0, fmt.Errorf("get message: %w", err)
		}
		if m != nil && m.LineNumber > 0 {
			line = m.LineNumber
		}
	}
	return tr.FilePath, line, nil
}

func editorCommand(editor, path string, line int) *exec.Cmd {
	fields := strings.Fields(editor)
	if len(fields) == 0 {
		fields = []string{"less"}
	}
	name, args := fields[0], fields[1:]
	switch {
	case strings.Contains(name, "vim"), strings.Contains(name, "less"),
		strings.Contains(name, "nano"), strings.Contains(name, "emacs"):
		args = append(args, "+"+strconv.Itoa(line), path)
	case strings.Contains(name, "code"):
		args = append(args, "--goto", path+":"+strconv.Itoa(line))
	default:
		args = append(args, path)
	}
	return exec.Command(name, args...)
}
