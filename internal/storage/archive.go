// Package storage archives contact form submissions so that nothing is
// lost when mail delivery fails.
package storage

import (
	"context"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/bilgisen/lawgate/internal/models"
)

// ErrNotFound is returned when no submission has the requested id
var ErrNotFound = errors.New("submission not found")

// Archive stores submissions
type Archive interface {
	Save(ctx context.Context, sub *models.Submission) error
	Get(ctx context.Context, id string) (*models.Submission, error)
	// List returns one page of submissions, newest first, and the total count
	List(ctx context.Context, page, pageSize int) ([]*models.Submission, int, error)
	Delete(ctx context.Context, id string) error
}

// objectName is "<unix nanos>_<id>.json"; names sort by receive time
func objectName(sub *models.Submission) string {
	return fmt.Sprintf("%d_%s.json", sub.ReceivedAt.UnixNano(), sub.ID)
}

// datedName places the object under YYYY/MM/DD
func datedName(sub *models.Submission) string {
	return path.Join(sub.ReceivedAt.UTC().Format("2006/01/02"), objectName(sub))
}

func matchesID(name, id string) bool {
	return strings.HasSuffix(path.Base(name), "_"+id+".json")
}

// sortNewestFirst orders names by their base name, descending
func sortNewestFirst(names []string) {
	sort.Slice(names, func(i, j int) bool {
		return path.Base(names[i]) > path.Base(names[j])
	})
}

// pageBounds clamps a 1-based page to [start, end) indexes of total items
func pageBounds(page, pageSize, total int) (int, int) {
	if page < 1 {
		page = 1
	}
	start := (page - 1) * pageSize
	if start >= total {
		return total, total
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return start, end
}
