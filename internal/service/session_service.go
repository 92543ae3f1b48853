package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"adcheck/internal/checker"
	"adcheck/internal/config"
	"adcheck/internal/domain"
	"adcheck/internal/port"
	"adcheck/internal/session"
)

// UploadInput is the DTO for session upload requests.
type UploadInput struct {
	File   multipart.File
	Header *multipart.FileHeader
	Track  domain.Track
}

// SessionService drives a document through the judgment workflow.
type SessionService interface {
	Upload(ctx context.Context, input UploadInput) (*domain.Session, error)
	Get(id uuid.UUID) (*domain.Session, error)
	Analyze(ctx context.Context, id uuid.UUID) (*domain.Session, error)
	Confirm(ctx context.Context, id uuid.UUID, override domain.AdType) (*domain.Session, error)
	RunChecklist(ctx context.Context, id uuid.UUID) (*domain.Session, error)
	CheckScene(ctx context.Context, id uuid.UUID, sceneID string) (*domain.Session, error)
	StartBatch(ctx context.Context, id uuid.UUID, sceneIDs []string) (*domain.Session, error)
	Progress(id uuid.UUID) (*domain.BatchProgress, error)
	Chat(ctx context.Context, id uuid.UUID, question string) (*domain.Message, error)
	Reset(id uuid.UUID) error
}

type sessionService struct {
	store      *session.Store
	checker    *checker.Checker
	batch      *checker.BatchRunner
	catalog    port.ChecklistCatalog
	sceneStore port.SceneStore
	history    port.HistoryRepository
	uploadCfg  *config.UploadConfig

	// Serializes session mutation between request handlers and the
	// background batch goroutine.
	mu sync.Mutex
}

// NewSessionService creates a SessionService.
func NewSessionService(
	store *session.Store,
	chk *checker.Checker,
	catalog port.ChecklistCatalog,
	sceneStore port.SceneStore,
	history port.HistoryRepository,
	uploadCfg *config.UploadConfig,
) SessionService {
	return &sessionService{
		store:      store,
		checker:    chk,
		batch:      checker.NewBatchRunner(chk),
		catalog:    catalog,
		sceneStore: sceneStore,
		history:    history,
		uploadCfg:  uploadCfg,
	}
}

// Upload validates the file and creates a session holding its bytes. All
// validation happens here, before any LLM call is attempted.
func (s *sessionService) Upload(ctx context.Context, input UploadInput) (*domain.Session, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(input.Header.Filename), "."))
	fileType, ok := domain.AllowedExtensions[ext]
	if !ok {
		return nil, domain.ErrUnsupportedFileType
	}

	maxBytes := s.uploadCfg.MaxFileSizeMB * 1024 * 1024
	if input.Header.Size > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	fileBytes, err := io.ReadAll(io.LimitReader(input.File, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}
	if int64(len(fileBytes)) > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	// Magic-byte sniff; the extension alone is not trusted.
	sniffLen := len(fileBytes)
	if sniffLen > 512 {
		sniffLen = 512
	}
	detected := http.DetectContentType(fileBytes[:sniffLen])
	detected = strings.Split(detected, ";")[0]
	if _, valid := domain.AllowedContentTypes[detected]; !valid {
		return nil, domain.ErrUnsupportedFileType
	}

	track := input.Track
	if track == "" {
		track = domain.TrackScene
		if fileType == domain.FileTypePDF {
			track = domain.TrackChecklist
		}
	}
	if track == domain.TrackChecklist && fileType != domain.FileTypePDF {
		return nil, domain.ErrUnsupportedFileType
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.store.Create(track)
	if err := session.Advance(sess, domain.StageUploading); err != nil {
		return nil, err
	}
	sess.FileName = input.Header.Filename
	sess.FileBytes = fileBytes
	sess.FileType = fileType
	sess.ContentType = domain.AllowedFileTypes[fileType]

	if track == domain.TrackScene {
		// Nothing asynchronous pending; move straight to scene selection.
		if err := session.Advance(sess, domain.StageSelectingScene); err != nil {
			return nil, err
		}
		s.addMessage(sess, domain.RoleAI,
			fmt.Sprintf("ファイル「%s」を受け付けました。判定するシーンを選択してください。", sess.FileName))
	}

	log.Printf("sessionService.Upload: session %s created (%s, %s, %d bytes)",
		sess.ID, track, sess.ContentType, len(fileBytes))
	return snapshot(sess), nil
}

func (s *sessionService) Get(id uuid.UUID) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}
	return snapshot(sess), nil
}

// Analyze fires the ad-type detection call against the whole document.
func (s *sessionService) Analyze(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	sess, file, err := s.beginStage(id, domain.StageAnalyzingType)
	if err != nil {
		return nil, err
	}

	detection, err := s.checker.DetectAdType(ctx, file)
	if err != nil {
		return nil, s.failStage(sess, "analyze", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := session.Advance(sess, domain.StageConfirmType); err != nil {
		return nil, err
	}
	sess.Detection = detection
	s.addMessage(sess, domain.RoleAI,
		fmt.Sprintf("広告種別を「%s」と判定しました（確信度 %.0f%%）。%s", detection.DetectedType, detection.Confidence*100, detection.Summary))
	return snapshot(sess), nil
}

// Confirm records the operator's explicit confirmation of the detected type.
// This gate has no timeout: it waits for a human, not for the machinery.
func (s *sessionService) Confirm(ctx context.Context, id uuid.UUID, override domain.AdType) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}
	if sess.Detection == nil {
		return nil, fmt.Errorf("%w: nothing to confirm", domain.ErrInvalidStage)
	}

	adType := sess.Detection.DetectedType
	if override != "" {
		if !override.Valid() {
			return nil, domain.ErrUnknownAdType
		}
		adType = override
	}

	if err := session.Advance(sess, domain.StageFetchingChecklist); err != nil {
		return nil, err
	}
	sess.AdType = adType
	return snapshot(sess), nil
}

// RunChecklist fetches the checklist for the confirmed type and reviews the
// whole of it in one LLM round-trip, trading per-item isolation for lower
// latency and cost.
func (s *sessionService) RunChecklist(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	s.mu.Lock()
	sess, err := s.store.Get(id)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if sess.Stage != domain.StageFetchingChecklist {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: checklist run requires confirmed type", domain.ErrInvalidStage)
	}
	adType := sess.AdType
	file := sessionFile(sess)
	s.mu.Unlock()

	items, err := s.catalog.ListChecklist(ctx, adType)
	if err != nil {
		return nil, s.failStage(sess, "fetch checklist", err)
	}
	if len(items) == 0 {
		return nil, s.failStage(sess, "fetch checklist", domain.ErrEmptyChecklist)
	}

	s.mu.Lock()
	if err := session.Advance(sess, domain.StageChecking); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	sess.Checklist = items
	s.mu.Unlock()

	results, err := s.checker.ReviewChecklist(ctx, file, items, adType)
	if err != nil {
		return nil, s.failStage(sess, "checklist review", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := session.Advance(sess, domain.StageComplete); err != nil {
		return nil, err
	}
	sess.Results = results
	s.addMessage(sess, domain.RoleAI,
		fmt.Sprintf("チェックリスト審査が完了しました（%d項目）。", len(results)))
	s.recordChecklistHistory(sess)
	return snapshot(sess), nil
}

// CheckScene evaluates the uploaded file against one scene.
func (s *sessionService) CheckScene(ctx context.Context, id uuid.UUID, sceneID string) (*domain.Session, error) {
	scene, err := s.findScene(ctx, sceneID)
	if err != nil {
		return nil, err
	}

	sess, file, err := s.beginStage(id, domain.StageAnalyzing)
	if err != nil {
		return nil, err
	}

	result, err := s.checker.CheckScene(ctx, file, scene)
	if err != nil {
		return nil, s.failStage(sess, "scene check", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := session.Advance(sess, domain.StageComplete); err != nil {
		return nil, err
	}
	sess.SceneResult = append(sess.SceneResult, *result)
	s.addMessage(sess, domain.RoleAI, sceneResultMessage(result))
	s.recordSceneHistory(sess)
	return snapshot(sess), nil
}

// StartBatch launches a sequential batch run over the selected scenes in the
// background and returns immediately; callers poll Progress.
func (s *sessionService) StartBatch(ctx context.Context, id uuid.UUID, sceneIDs []string) (*domain.Session, error) {
	scenes, err := s.selectScenes(ctx, sceneIDs)
	if err != nil {
		return nil, err
	}

	sess, file, err := s.beginStage(id, domain.StageAnalyzing)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	sess.Progress = &domain.BatchProgress{Total: len(scenes)}
	s.mu.Unlock()

	// Fresh context independent of the request so the batch survives the
	// HTTP round-trip. Ceiling of one minute per item.
	go func() {
		batchCtx, cancel := context.WithTimeout(context.Background(), time.Duration(len(scenes))*time.Minute)
		defer cancel()
		s.runBatch(batchCtx, sess, file, scenes)
	}()

	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot(sess), nil
}

func (s *sessionService) runBatch(ctx context.Context, sess *domain.Session, file checker.File, scenes []domain.Scene) {
	results, summary := s.batch.Run(ctx, file, scenes, func(p domain.BatchProgress) {
		s.mu.Lock()
		sess.Progress = &p
		s.mu.Unlock()
	})

	s.mu.Lock()
	defer s.mu.Unlock()

	sess.SceneResult = append(sess.SceneResult, results...)
	if err := session.Advance(sess, domain.StageComplete); err != nil {
		log.Printf("sessionService.runBatch: session %s: %v", sess.ID, err)
		return
	}
	s.addMessage(sess, domain.RoleAI,
		fmt.Sprintf("一括判定が完了しました。適切: %d件 / 要改善: %d件", summary.Appropriate, summary.NotAppropriate))
	s.recordSceneHistory(sess)
	log.Printf("sessionService.runBatch: session %s completed (%d items, %d appropriate)",
		sess.ID, summary.Total, summary.Appropriate)
}

// Progress returns a snapshot of the in-flight batch.
func (s *sessionService) Progress(id uuid.UUID) (*domain.BatchProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}
	if sess.Progress == nil {
		return nil, domain.ErrNotFound
	}
	snapshot := *sess.Progress
	return &snapshot, nil
}

// Chat answers a free-text question over the accumulated results. A failed
// chat call leaves the session untouched; the judgment already obtained is
// not discarded for an auxiliary exchange.
func (s *sessionService) Chat(ctx context.Context, id uuid.UUID, question string) (*domain.Message, error) {
	if strings.TrimSpace(question) == "" {
		return nil, domain.ErrMissingField
	}

	s.mu.Lock()
	sess, err := s.store.Get(id)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if sess.Stage != domain.StageComplete {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: chat requires a completed judgment", domain.ErrInvalidStage)
	}
	file := sessionFile(sess)
	results := sess.Results
	sceneResults := sess.SceneResult
	s.addMessage(sess, domain.RoleUser, question)
	s.mu.Unlock()

	answer, err := s.checker.Answer(ctx, file, results, sceneResults, question)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	msg := s.addMessage(sess, domain.RoleAI, answer)
	copied := *msg
	return &copied, nil
}

// Reset destroys the session.
func (s *sessionService) Reset(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.store.Get(id); err != nil {
		return err
	}
	s.store.Delete(id)
	return nil
}

// beginStage advances the session into an async stage and snapshots the file
// under lock.
func (s *sessionService) beginStage(id uuid.UUID, stage domain.Stage) (*domain.Session, checker.File, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.store.Get(id)
	if err != nil {
		return nil, checker.File{}, err
	}
	if err := session.Advance(sess, stage); err != nil {
		return nil, checker.File{}, err
	}
	return sess, sessionFile(sess), nil
}

// failStage resets the session to initial, discarding all provisional state
// for the attempt, and passes the error through.
func (s *sessionService) failStage(sess *domain.Session, op string, err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	log.Printf("sessionService: session %s %s failed, resetting: %v", sess.ID, op, err)
	session.Reset(sess)
	return err
}

func (s *sessionService) addMessage(sess *domain.Session, role domain.MessageRole, text string) *domain.Message {
	msg := domain.Message{
		ID:        uuid.New(),
		Role:      role,
		Text:      text,
		Timestamp: time.Now().UTC(),
	}
	sess.Messages = append(sess.Messages, msg)
	sess.UpdatedAt = msg.Timestamp
	return &sess.Messages[len(sess.Messages)-1]
}

// findScene resolves one scene by ID from the user-defined set.
func (s *sessionService) findScene(ctx context.Context, sceneID string) (*domain.Scene, error) {
	scenes, err := s.sceneStore.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range scenes {
		if scenes[i].ID == sceneID {
			return &scenes[i], nil
		}
	}
	return nil, fmt.Errorf("%w: scene %s", domain.ErrNotFound, sceneID)
}

// selectScenes resolves the batch selection, preserving the caller's order.
// An empty selection means the whole set.
func (s *sessionService) selectScenes(ctx context.Context, sceneIDs []string) ([]domain.Scene, error) {
	scenes, err := s.sceneStore.Load(ctx)
	if err != nil {
		return nil, err
	}
	if len(sceneIDs) == 0 {
		return scenes, nil
	}

	byID := make(map[string]domain.Scene, len(scenes))
	for _, sc := range scenes {
		byID[sc.ID] = sc
	}
	selected := make([]domain.Scene, 0, len(sceneIDs))
	for _, id := range sceneIDs {
		sc, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: scene %s", domain.ErrNotFound, id)
		}
		selected = append(selected, sc)
	}
	return selected, nil
}

func (s *sessionService) recordChecklistHistory(sess *domain.Session) {
	entry := &domain.HistoryEntry{
		ID:          uuid.New(),
		SessionID:   sess.ID,
		Track:       sess.Track,
		FileName:    sess.FileName,
		AdType:      sess.AdType,
		Total:       len(sess.Results),
		CompletedAt: time.Now().UTC(),
	}
	for _, r := range sess.Results {
		switch r.Status {
		case domain.StatusOK:
			entry.Passed++
		case domain.StatusNG:
			entry.Failed++
		case domain.StatusNeedsReview:
			entry.NeedsReview++
		}
	}
	s.appendHistory(entry)
}

func (s *sessionService) recordSceneHistory(sess *domain.Session) {
	entry := &domain.HistoryEntry{
		ID:          uuid.New(),
		SessionID:   sess.ID,
		Track:       sess.Track,
		FileName:    sess.FileName,
		Total:       len(sess.SceneResult),
		CompletedAt: time.Now().UTC(),
	}
	for _, r := range sess.SceneResult {
		if r.IsAppropriate {
			entry.Passed++
		} else {
			entry.Failed++
		}
	}
	s.appendHistory(entry)
}

// appendHistory is best-effort; a failed write never fails the session.
func (s *sessionService) appendHistory(entry *domain.HistoryEntry) {
	if s.history == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.history.Append(ctx, entry); err != nil {
		log.Printf("sessionService.appendHistory: %v", err)
	}
}

// snapshot returns a shallow copy safe to hand outside the lock. Mutators
// only append to or replace session slices and pointers, so a copied header
// keeps observing stable data.
func snapshot(sess *domain.Session) *domain.Session {
	copied := *sess
	return &copied
}

func sessionFile(sess *domain.Session) checker.File {
	return checker.File{
		Bytes:       sess.FileBytes,
		ContentType: sess.ContentType,
		Type:        sess.FileType,
	}
}

func sceneResultMessage(r *domain.SceneCheckResult) string {
	verdict := "適切"
	if !r.IsAppropriate {
		verdict = "要改善"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "判定完了しました。\n\n【結果】%s（確信度: %.0f%%）\n\n【理由】\n%s", verdict, r.Confidence*100, r.Reason)
	if len(r.Suggestions) > 0 {
		b.WriteString("\n\n【改善提案】\n")
		for _, sg := range r.Suggestions {
			fmt.Fprintf(&b, "・%s\n", sg)
		}
	}
	return b.String()
}
