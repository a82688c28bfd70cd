package client

import (
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"blogpress-backend/models"
	"blogpress-backend/services"
)

// Draft is what the editor holds for the post being written: the raw
// markdown and the markup the editor rendered from it.
type Draft struct {
	Title    string
	Markdown string
	HTML     string
}

// EditorSession tracks one post being edited and keeps the embedded-media
// bookkeeping for it: the set of media ids the markdown referenced the last
// time the session and the server agreed on its content. On save, ids that
// dropped out of that set are bulk-deleted so abandoned uploads do not
// accumulate.
//
// Cleanup is strictly a side effect of editing, never a precondition for
// it: a failed cleanup is logged and swallowed, and the post mutation goes
// ahead regardless. Two concurrent sessions on the same post are not
// coordinated; last write wins.
type EditorSession struct {
	api      API
	logger   zerolog.Logger
	postID   string
	markdown string
	known    map[string]struct{}
}

// NewSession starts a session for a post that does not exist yet.
func NewSession(api API) *EditorSession {
	return &EditorSession{
		api:    api,
		logger: log.With().Str("clientName", "editorSession").Logger(),
		known:  map[string]struct{}{},
	}
}

// OpenSession loads an existing post and seeds the known-referenced-id set
// from its current markdown.
func OpenSession(api API, id string) (*EditorSession, error) {
	session := NewSession(api)

	post, err := api.GetPost(id)
	if err != nil {
		return nil, err
	}

	session.postID = post.ID.String()
	session.markdown = post.Markdown
	session.known = idSet(ExtractMediaIDs(post.Markdown))
	return session, nil
}

// PostID returns the id of the post this session edits, or "" before the
// first save of a new post.
func (s *EditorSession) PostID() string {
	return s.postID
}

// KnownMediaIDs returns the session's current known-referenced-id set.
func (s *EditorSession) KnownMediaIDs() []string {
	ids := make([]string, 0, len(s.known))
	for id := range s.known {
		ids = append(ids, id)
	}
	return ids
}

// Save persists the draft. For an existing post it first bulk-deletes media
// ids the draft no longer references, then issues the update; for a new
// post it creates it and seeds the known-id baseline for later edits.
func (s *EditorSession) Save(draft Draft) (*models.Post, error) {
	input := services.InsertPost{
		Title:    strings.TrimSpace(draft.Title),
		Markdown: draft.Markdown,
		HTML:     draft.HTML,
		Excerpt:  GenerateExcerpt(draft.Markdown),
	}

	if s.postID == "" {
		post, err := s.api.CreatePost(input)
		if err != nil {
			return nil, err
		}
		s.postID = post.ID.String()
		s.markdown = draft.Markdown
		s.known = idSet(ExtractMediaIDs(draft.Markdown))
		return post, nil
	}

	s.cleanupRemoved(draft.Markdown)

	post, err := s.api.UpdatePost(s.postID, input)
	if err != nil {
		return nil, err
	}
	s.markdown = draft.Markdown
	return post, nil
}

// Delete removes the post, after a best-effort cleanup of every media id
// its markdown still references. The delete goes ahead even when cleanup
// fails; an orphaned row is acceptable, a surviving post is not.
func (s *EditorSession) Delete() error {
	ids := ExtractMediaIDs(s.markdown)
	if len(ids) > 0 {
		if _, err := s.api.CleanupMedia(ids); err != nil {
			s.logger.Error().Err(err).Int("count", len(ids)).Msg("Failed to cleanup media on delete")
		}
	}

	if err := s.api.DeletePost(s.postID); err != nil {
		return err
	}

	s.markdown = ""
	s.known = map[string]struct{}{}
	return nil
}

// cleanupRemoved diffs the draft's media references against the known set
// and bulk-deletes what dropped out. The known set always advances to the
// draft's set, whether or not the cleanup call succeeded.
func (s *EditorSession) cleanupRemoved(markdown string) {
	current := idSet(ExtractMediaIDs(markdown))

	var removed []string
	for id := range s.known {
		if _, ok := current[id]; !ok {
			removed = append(removed, id)
		}
	}

	if len(removed) > 0 {
		if _, err := s.api.CleanupMedia(removed); err != nil {
			s.logger.Error().Err(err).Int("count", len(removed)).Msg("Failed to cleanup removed media")
		} else {
			s.logger.Info().Int("count", len(removed)).Msg("Cleaned up removed media")
		}
	}

	s.known = current
}

func idSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
