package index

import (
	"fmt"
	"os"
	"time"

	"github.com/Zuo-Peng/chatstats/internal/derive"
	"github.com/Zuo-Peng/chatstats/internal/scan"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const tsLayout = "2006-01-02T15:04:05Z"

type Stats struct {
	Scanned int
	Updated int
	Skipped int
	Pruned  int
	Errors  int
}

func (s Stats) String() string {
	return fmt.Sprintf("scanned=%d updated=%d skipped=%d pruned=%d errors=%d",
		s.Scanned, s.Updated, s.Skipped, s.Pruned, s.Errors)
}

// Loader turns a transcript file into a conversation.
type Loader func(path string) (*derive.Conversation, error)

// IndexAll archives every transcript under root whose file changed since
// the last run, then drops archived transcripts whose file is gone.
func IndexAll(db *DB, root string, load Loader, log logrus.FieldLogger) (Stats, error) {
	var stats Stats

	files, err := scan.ScanRoot(root)
	if err != nil {
		return stats, fmt.Errorf("scan: %w", err)
	}
	stats.Scanned = len(files)

	runID := uuid.NewString()
	for _, fi := range files {
		flog := log.WithField("file", fi.Path)

		needs, err := needsUpdate(db, fi.Key, fi.Mtime, fi.Size)
		if err != nil {
			stats.Errors++
			flog.WithError(err).Warn("check index state")
			continue
		}
		if !needs {
			stats.Skipped++
			continue
		}

		conv, err := load(fi.Path)
		if err != nil {
			stats.Errors++
			flog.WithError(err).Warn("parse transcript")
			continue
		}

		if err := IndexTranscript(db, fi, conv, runID); err != nil {
			stats.Errors++
			flog.WithError(err).Warn("index transcript")
			continue
		}
		flog.WithFields(logrus.Fields{
			"key":      fi.Key,
			"messages": len(conv.Messages),
		}).Debug("indexed")
		stats.Updated++
	}

	pruned, err := pruneTranscripts(db)
	if err != nil {
		return stats, fmt.Errorf("prune: %w", err)
	}
	stats.Pruned = pruned

	return stats, nil
}

func needsUpdate(db *DB, key string, mtime, size int64) (bool, error) {
	st, err := db.GetFileState(key)
	if err != nil {
		return false, err
	}
	if st == nil {
		return true, nil // new transcript
	}
	return st.Mtime != mtime || st.Size != size, nil
}

// IndexTranscript replaces the archived copy of one transcript.
func IndexTranscript(db *DB, fi scan.FileInfo, conv *derive.Conversation, runID string) error {
	// delete old data first
	if err := db.DeleteTranscript(fi.Key); err != nil {
		return err
	}

	tx, err := db.Raw().Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var firstAt, lastAt string
	if n := len(conv.Messages); n > 0 {
		firstAt = conv.Messages[0].Timestamp.Format(tsLayout)
		lastAt = conv.Messages[n-1].Timestamp.Format(tsLayout)
	}

	_, err = tx.Exec(
		`INSERT INTO transcripts (transcript_key, file_path, first_user, second_user, message_count, first_at, last_at, run_id, indexed_at, mtime, size)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		fi.Key,
		fi.Path,
		conv.FirstUser,
		conv.SecondUser,
		len(conv.Messages),
		firstAt,
		lastAt,
		runID,
		time.Now().UTC().Format(tsLayout),
		fi.Mtime,
		fi.Size,
	)
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(
		`INSERT INTO messages (transcript_key, seq, ts, sender, body, word_count, first_of_day, line_number)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, m := range conv.Messages {
		_, err := stmt.Exec(
			fi.Key,
			m.Seq,
			m.Timestamp.Format(tsLayout),
			m.Sender,
			m.Body,
			m.WordCount,
			m.IsFirstOfDay,
			m.Line,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func pruneTranscripts(db *DB) (int, error) {
	rows, err := db.ListTranscripts()
	if err != nil {
		return 0, err
	}

	pruned := 0
	for _, t := range rows {
		if _, err := os.Stat(t.FilePath); err == nil || !os.IsNotExist(err) {
			continue
		}
		if err := db.DeleteTranscript(t.Key); err != nil {
			return pruned, err
		}
		pruned++
	}
	return pruned, nil
}
