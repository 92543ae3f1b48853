package session

import (
	"fmt"
	"time"

	"adcheck/internal/domain"
)

// transitions enumerates the legal stage moves per track. One parameterized
// table instead of parallel machine copies; the machine only moves when
// driven by a user event or a completed call, never spontaneously.
var transitions = map[domain.Track]map[domain.Stage][]domain.Stage{
	domain.TrackChecklist: {
		domain.StageInitial:           {domain.StageUploading},
		domain.StageUploading:         {domain.StageAnalyzingType},
		domain.StageAnalyzingType:     {domain.StageConfirmType},
		domain.StageConfirmType:       {domain.StageFetchingChecklist},
		domain.StageFetchingChecklist: {domain.StageChecking},
		domain.StageChecking:          {domain.StageComplete},
	},
	domain.TrackScene: {
		domain.StageInitial:        {domain.StageUploading},
		domain.StageUploading:      {domain.StageSelectingScene},
		domain.StageSelectingScene: {domain.StageAnalyzing},
		domain.StageAnalyzing:      {domain.StageComplete},
	},
}

// Advance moves the session to the requested stage, rejecting moves the
// track does not allow.
func Advance(s *domain.Session, to domain.Stage) error {
	for _, allowed := range transitions[s.Track][s.Stage] {
		if allowed == to {
			s.Stage = to
			s.UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s on %s track", domain.ErrInvalidStage, s.Stage, to, s.Track)
}

// Reset returns the session to the initial stage, discarding every piece of
// provisional state from the failed attempt. No partial recovery: the user
// restarts the document from scratch.
func Reset(s *domain.Session) {
	s.Stage = domain.StageInitial
	s.FileName = ""
	s.FileBytes = nil
	s.ContentType = ""
	s.FileType = ""
	s.Detection = nil
	s.AdType = ""
	s.Checklist = nil
	s.Results = nil
	s.SceneResult = nil
	s.Progress = nil
	s.Messages = nil
	s.UpdatedAt = time.Now().UTC()
}
