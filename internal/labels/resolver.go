// Package labels resolves task tags to board labels, creating missing labels.
package labels

import (
	"context"
	"strings"

	"github.com/metalagman/boardfill/internal/board"
	"github.com/rs/zerolog/log"
)

// Resolver maps tags to label ids on a board.
type Resolver struct {
	colors ColorTable
}

// NewResolver creates a resolver that colors new labels from colors.
func NewResolver(colors ColorTable) *Resolver {
	return &Resolver{colors: colors}
}

// Resolve returns the id of the label named tag, creating it when the board has
// none. Failures are logged and reported as ok == false; callers omit the label.
func (r *Resolver) Resolve(ctx context.Context, sess *board.Session, tag string) (string, bool) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return "", false
	}
	existing, err := sess.Service.ListLabels(ctx, sess.BoardID)
	if err != nil {
		log.Warn().Err(err).Str("tag", tag).Str("board_id", sess.BoardID).Msg("list labels failed")
		return "", false
	}
	for _, label := range existing {
		if label.Name != "" && strings.EqualFold(label.Name, tag) {
			log.Debug().Str("tag", tag).Str("label_id", label.ID).Msg("label exists")
			return label.ID, true
		}
	}

	color := r.colors.ColorFor(tag)
	created, err := sess.Service.CreateLabel(ctx, sess.BoardID, tag, color)
	if err != nil {
		log.Warn().Err(err).Str("tag", tag).Str("color", color.String()).Msg("create label failed")
		return "", false
	}
	log.Debug().Str("tag", tag).Str("label_id", created.ID).Str("color", color.String()).Msg("label created")
	return created.ID, true
}

// ResolveAll resolves each distinct tag once, in order. Tags that fail to
// resolve are absent from the result.
func (r *Resolver) ResolveAll(ctx context.Context, sess *board.Session, tags []string, onResolved func(tag, id string)) map[string]string {
	out := make(map[string]string, len(tags))
	attempted := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		if _, ok := attempted[tag]; ok {
			continue
		}
		attempted[tag] = struct{}{}
		id, ok := r.Resolve(ctx, sess, tag)
		if !ok {
			continue
		}
		out[tag] = id
		if onResolved != nil {
			onResolved(tag, id)
		}
	}
	return out
}
