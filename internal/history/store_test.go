// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/ebook-engine/pkg/types"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(types.HistoryConfig{Dir: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleSession() Session {
	return Session{
		Topic:       "Productivité",
		Title:       "Maîtriser la productivité",
		Type:        types.TypeGuide,
		TargetPages: 20,
		Chapters: []types.Chapter{
			{Title: "Commencer", Content: "Premier paragraphe.\n\nSecond paragraphe."},
			{Title: "Approfondir", Content: "Suite du guide.", Image: []byte("img")},
		},
	}
}

func TestSaveAssignsIDAndTimestamp(t *testing.T) {
	s := newTestStore(t)

	id, err := s.Save(context.Background(), sampleSession())
	require.NoError(t, err)
	require.NotEmpty(t, id)

	sess, err := s.Load(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, sess.ID)
	assert.False(t, sess.CreatedAt.IsZero())
	assert.WithinDuration(t, time.Now().UTC(), sess.CreatedAt, time.Minute)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)
	original := sampleSession()

	id, err := s.Save(context.Background(), original)
	require.NoError(t, err)

	loaded, err := s.Load(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, original.Topic, loaded.Topic)
	assert.Equal(t, original.Title, loaded.Title)
	assert.Equal(t, original.Type, loaded.Type)
	assert.Equal(t, original.TargetPages, loaded.TargetPages)
	require.Len(t, loaded.Chapters, 2)
	assert.Equal(t, original.Chapters[0].Content, loaded.Chapters[0].Content)
	assert.Equal(t, original.Chapters[1].Image, loaded.Chapters[1].Image)
}

func TestSaveReplacesExistingID(t *testing.T) {
	s := newTestStore(t)
	sess := sampleSession()

	id, err := s.Save(context.Background(), sess)
	require.NoError(t, err)

	sess.ID = id
	sess.Title = "Titre révisé"
	id2, err := s.Save(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, id, id2)

	loaded, err := s.Load(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Titre révisé", loaded.Title)

	summaries, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, summaries, 1)
}

func TestListNewestFirst(t *testing.T) {
	s := newTestStore(t)

	older := sampleSession()
	older.Title = "Ancien"
	older.CreatedAt = time.Now().UTC().Add(-time.Hour)
	_, err := s.Save(context.Background(), older)
	require.NoError(t, err)

	newer := sampleSession()
	newer.Title = "Récent"
	_, err = s.Save(context.Background(), newer)
	require.NoError(t, err)

	summaries, err := s.List(context.Background())
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, "Récent", summaries[0].Title)
	assert.Equal(t, "Ancien", summaries[1].Title)
	assert.Equal(t, 2, summaries[0].ChapterCount)
}

func TestListEmpty(t *testing.T) {
	s := newTestStore(t)
	summaries, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, summaries)
}

func TestLoadUnknownID(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Load(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)

	id, err := s.Save(context.Background(), sampleSession())
	require.NoError(t, err)

	require.NoError(t, s.Delete(context.Background(), id))
	_, err = s.Load(context.Background(), id)
	assert.ErrorIs(t, err, ErrNotFound)

	err = s.Delete(context.Background(), id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreReopens(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStore(types.HistoryConfig{Dir: dir})
	require.NoError(t, err)

	id, err := s.Save(context.Background(), sampleSession())
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s2, err := NewStore(types.HistoryConfig{Dir: dir})
	require.NoError(t, err)
	defer s2.Close()

	loaded, err := s2.Load(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Maîtriser la productivité", loaded.Title)
}
