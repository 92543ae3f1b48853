package session_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adcheck/internal/domain"
	"adcheck/internal/session"
)

func TestAdvance_ChecklistTrackFullPath(t *testing.T) {
	s := &domain.Session{Stage: domain.StageInitial, Track: domain.TrackChecklist}
	path := []domain.Stage{
		domain.StageUploading,
		domain.StageAnalyzingType,
		domain.StageConfirmType,
		domain.StageFetchingChecklist,
		domain.StageChecking,
		domain.StageComplete,
	}
	for _, next := range path {
		require.NoError(t, session.Advance(s, next))
		assert.Equal(t, next, s.Stage)
	}
}

func TestAdvance_SceneTrackFullPath(t *testing.T) {
	s := &domain.Session{Stage: domain.StageInitial, Track: domain.TrackScene}
	path := []domain.Stage{
		domain.StageUploading,
		domain.StageSelectingScene,
		domain.StageAnalyzing,
		domain.StageComplete,
	}
	for _, next := range path {
		require.NoError(t, session.Advance(s, next))
	}
}

func TestAdvance_RejectsSkippingStages(t *testing.T) {
	s := &domain.Session{Stage: domain.StageInitial, Track: domain.TrackChecklist}
	err := session.Advance(s, domain.StageChecking)
	assert.ErrorIs(t, err, domain.ErrInvalidStage)
	assert.Equal(t, domain.StageInitial, s.Stage, "stage must not move on a rejected transition")
}

func TestAdvance_RejectsBackwardMove(t *testing.T) {
	s := &domain.Session{Stage: domain.StageConfirmType, Track: domain.TrackChecklist}
	err := session.Advance(s, domain.StageUploading)
	assert.ErrorIs(t, err, domain.ErrInvalidStage)
}

func TestAdvance_RejectsCrossTrackStage(t *testing.T) {
	// Scene stages are unreachable on the checklist track.
	s := &domain.Session{Stage: domain.StageUploading, Track: domain.TrackChecklist}
	err := session.Advance(s, domain.StageSelectingScene)
	assert.ErrorIs(t, err, domain.ErrInvalidStage)
}

func TestAdvance_CompleteIsTerminal(t *testing.T) {
	for _, track := range []domain.Track{domain.TrackChecklist, domain.TrackScene} {
		s := &domain.Session{Stage: domain.StageComplete, Track: track}
		err := session.Advance(s, domain.StageUploading)
		assert.ErrorIs(t, err, domain.ErrInvalidStage)
	}
}

func TestReset_ClearsAllProvisionalState(t *testing.T) {
	detection := &domain.TypeDetection{DetectedType: domain.AdTypeSaleNew, Confidence: 0.9}
	s := &domain.Session{
		Stage:       domain.StageChecking,
		Track:       domain.TrackChecklist,
		FileName:    "ad.pdf",
		FileBytes:   []byte("%PDF"),
		ContentType: "application/pdf",
		FileType:    domain.FileTypePDF,
		Detection:   detection,
		AdType:      domain.AdTypeSaleNew,
		Checklist:   []domain.ChecklistItem{{ID: "a"}},
		Results:     []domain.CheckResult{{Status: domain.StatusOK}},
		Messages:    []domain.Message{{Role: domain.RoleUser, Text: "q"}},
	}

	session.Reset(s)

	assert.Equal(t, domain.StageInitial, s.Stage)
	assert.Empty(t, s.FileName)
	assert.Nil(t, s.FileBytes)
	assert.Empty(t, s.ContentType)
	assert.Empty(t, s.FileType)
	assert.Nil(t, s.Detection)
	assert.Empty(t, s.AdType)
	assert.Nil(t, s.Checklist)
	assert.Nil(t, s.Results)
	assert.Nil(t, s.SceneResult)
	assert.Nil(t, s.Progress)
	assert.Nil(t, s.Messages)
}

func TestReset_SessionCanRestart(t *testing.T) {
	s := &domain.Session{Stage: domain.StageAnalyzing, Track: domain.TrackScene}
	session.Reset(s)
	assert.NoError(t, session.Advance(s, domain.StageUploading))
}
