// Package queue holds the in-progress document attachments of one submission.
// Entries keep their slot association and upload status; the queue enforces
// the per-form size ceiling and the replace semantics of single-file slots.
//
// The queue is deliberately lenient about requirement changes: when the form's
// required slot set shrinks, entries for now-irrelevant slots stay queued so a
// partner never loses a picked file without removing it explicitly.
package queue

import (
	"time"

	"github.com/google/uuid"

	"leadgate/internal/domain"
)

// Queue is the ordered attachment list of one submission.
type Queue struct {
	entries []domain.Attachment
	maxSize int64
}

// New creates a queue with a per-file size ceiling, seeded with any already
// persisted attachments in their stored order.
func New(maxSize int64, existing []domain.Attachment) *Queue {
	q := &Queue{maxSize: maxSize}
	q.entries = append(q.entries, existing...)
	return q
}

// AddResult reports the outcome of one AddFiles call. Rejected files are
// skipped individually; the rest of the batch still goes through.
type AddResult struct {
	Added    []domain.Attachment
	Rejected []RejectedFile
}

// RejectedFile names a file that was filtered out and why.
type RejectedFile struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// AddFiles queues candidate files for a slot. Files over the ceiling are
// rejected by name. For a single-file slot any existing entries for that slot
// are replaced by the newest accepted file rather than appended to; this
// holds within one batch too, so Added only ever reports surviving entries.
func (q *Queue) AddFiles(submissionID uuid.UUID, slotKey, slotLabel string, files []domain.FileRef, allowMultiple bool) AddResult {
	var res AddResult
	now := time.Now().UTC()

	for _, f := range files {
		if f.Size > q.maxSize {
			res.Rejected = append(res.Rejected, RejectedFile{
				Name:   f.Name,
				Reason: "file exceeds the size limit for this form",
			})
			continue
		}
		if !allowMultiple {
			q.removeBySlot(slotKey)
			// Files accepted earlier in this batch are superseded the same
			// way persisted entries are.
			res.Added = res.Added[:0]
		}
		res.Added = append(res.Added, domain.Attachment{
			ID:           uuid.New(),
			SubmissionID: submissionID,
			SlotKey:      slotKey,
			SlotLabel:    slotLabel,
			FileName:     f.Name,
			FileSize:     f.Size,
			ContentType:  f.ContentType,
			StageBucket:  f.Bucket,
			StageKey:     f.Key,
			Status:       domain.UploadStatusPending,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		q.entries = append(q.entries, res.Added[len(res.Added)-1])
	}
	return res
}

// Remove deletes the first entry matching (slotKey, fileName). Removing an
// entry that is mid-upload is refused, and a refused call leaves the queue
// untouched.
func (q *Queue) Remove(slotKey, fileName string) error {
	idx := -1
	for i, e := range q.entries {
		if e.SlotKey == slotKey && e.FileName == fileName {
			if e.Status == domain.UploadStatusUploading {
				return domain.ErrAttachmentUploading
			}
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.ErrNotFound
	}
	q.entries = append(q.entries[:idx], q.entries[idx+1:]...)
	return nil
}

// MarkStatus transitions the entry with the given id. Used by the submission
// drain; partners never set statuses directly.
func (q *Queue) MarkStatus(id uuid.UUID, status domain.UploadStatus) {
	for i := range q.entries {
		if q.entries[i].ID == id {
			q.entries[i].Status = status
			q.entries[i].UpdatedAt = time.Now().UTC()
			return
		}
	}
}

// Entries returns a copy of the queue in order.
func (q *Queue) Entries() []domain.Attachment {
	out := make([]domain.Attachment, len(q.entries))
	copy(out, q.entries)
	return out
}

// Len returns the number of queued entries.
func (q *Queue) Len() int { return len(q.entries) }

// BySlot groups entries by slot key, preserving queue order within each slot.
func (q *Queue) BySlot() map[string][]domain.Attachment {
	out := make(map[string][]domain.Attachment)
	for _, e := range q.entries {
		out[e.SlotKey] = append(out[e.SlotKey], e)
	}
	return out
}

func (q *Queue) removeBySlot(slotKey string) {
	kept := q.entries[:0]
	for _, e := range q.entries {
		if e.SlotKey == slotKey && e.Status != domain.UploadStatusUploading {
			continue
		}
		kept = append(kept, e)
	}
	q.entries = kept
}
