package service_test

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"adcheck/internal/checker"
	"adcheck/internal/config"
	"adcheck/internal/domain"
	"adcheck/internal/service"
	"adcheck/internal/session"
	"adcheck/mocks"
)

type memFile struct {
	*bytes.Reader
}

func (memFile) Close() error { return nil }

func uploadInput(name string, content []byte, track domain.Track) service.UploadInput {
	return service.UploadInput{
		File:   memFile{bytes.NewReader(content)},
		Header: &multipart.FileHeader{Filename: name, Size: int64(len(content))},
		Track:  track,
	}
}

func pdfBytes() []byte {
	return []byte("%PDF-1.4 fake advertisement body")
}

func pngBytes() []byte {
	return append([]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}, make([]byte, 64)...)
}

type fixture struct {
	svc        service.SessionService
	gen        *mocks.MockGenerator
	catalog    *mocks.MockChecklistCatalog
	sceneStore *mocks.MockSceneStore
	history    *mocks.MockHistoryRepo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gen := new(mocks.MockGenerator)
	cat := new(mocks.MockChecklistCatalog)
	scenes := new(mocks.MockSceneStore)
	history := new(mocks.MockHistoryRepo)

	svc := service.NewSessionService(
		session.NewStore(),
		checker.NewChecker(gen),
		cat,
		scenes,
		history,
		&config.UploadConfig{MaxFileSizeMB: 20},
	)
	return &fixture{svc: svc, gen: gen, catalog: cat, sceneStore: scenes, history: history}
}

func TestUpload_RejectsUnknownExtension(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Upload(context.Background(), uploadInput("ad.docx", []byte("content"), ""))

	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
	f.gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestUpload_RejectsOversizeBeforeReading(t *testing.T) {
	f := newFixture(t)

	// Declared size of 30MB; the limit is 20MB. Rejection happens on the
	// declared size, before any bytes are read or any LLM call is made.
	input := service.UploadInput{
		File:   memFile{bytes.NewReader(pdfBytes())},
		Header: &multipart.FileHeader{Filename: "big.pdf", Size: 30 * 1024 * 1024},
	}
	_, err := f.svc.Upload(context.Background(), input)

	assert.ErrorIs(t, err, domain.ErrFileTooLarge)
	f.gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestUpload_RejectsMismatchedMagicBytes(t *testing.T) {
	f := newFixture(t)

	// .pdf extension over plain text content.
	_, err := f.svc.Upload(context.Background(), uploadInput("ad.pdf", []byte("just some text, not a pdf"), ""))

	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
}

func TestUpload_PDFDefaultsToChecklistTrack(t *testing.T) {
	f := newFixture(t)

	sess, err := f.svc.Upload(context.Background(), uploadInput("ad.pdf", pdfBytes(), ""))

	require.NoError(t, err)
	assert.Equal(t, domain.TrackChecklist, sess.Track)
	assert.Equal(t, domain.StageUploading, sess.Stage)
	assert.Equal(t, "ad.pdf", sess.FileName)
	assert.Equal(t, domain.FileTypePDF, sess.FileType)
}

func TestUpload_ImageDefaultsToSceneTrack(t *testing.T) {
	f := newFixture(t)

	sess, err := f.svc.Upload(context.Background(), uploadInput("room.png", pngBytes(), ""))

	require.NoError(t, err)
	assert.Equal(t, domain.TrackScene, sess.Track)
	// No asynchronous step pending on the scene track; the session lands on
	// scene selection immediately with a guidance message.
	assert.Equal(t, domain.StageSelectingScene, sess.Stage)
	require.Len(t, sess.Messages, 1)
	assert.Equal(t, domain.RoleAI, sess.Messages[0].Role)
}

func TestUpload_ChecklistTrackRequiresPDF(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Upload(context.Background(), uploadInput("room.png", pngBytes(), domain.TrackChecklist))

	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
}

func TestChecklistFlow_EndToEnd(t *testing.T) {
	f := newFixture(t)

	items := []domain.ChecklistItem{
		{ID: "c1", Category: "価格", CheckItem: "価格の総額表示", Regulation: "表示規約"},
		{ID: "c2", Category: "交通", CheckItem: "駅徒歩時間の表記", Regulation: "表示規約"},
	}
	f.gen.On("Generate", mock.Anything, mock.Anything).Return(
		`{"detectedType":"売買（新築）","confidence":0.93,"summary":"新築分譲マンションの広告です。"}`, nil).Once()
	f.gen.On("Generate", mock.Anything, mock.Anything).Return(`[
		{"checklistIndex":0,"status":"OK","detail":"総額表示あり","location":""},
		{"checklistIndex":1,"status":"NG","detail":"算出根拠の記載なし","location":"上部"}
	]`, nil).Once()
	f.catalog.On("ListChecklist", mock.Anything, domain.AdTypeSaleNew).Return(items, nil)
	f.history.On("Append", mock.Anything, mock.Anything).Return(nil)

	sess, err := f.svc.Upload(context.Background(), uploadInput("ad.pdf", pdfBytes(), ""))
	require.NoError(t, err)

	sess, err = f.svc.Analyze(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StageConfirmType, sess.Stage)
	require.NotNil(t, sess.Detection)
	assert.Equal(t, domain.AdTypeSaleNew, sess.Detection.DetectedType)

	sess, err = f.svc.Confirm(context.Background(), sess.ID, "")
	require.NoError(t, err)
	assert.Equal(t, domain.StageFetchingChecklist, sess.Stage)
	assert.Equal(t, domain.AdTypeSaleNew, sess.AdType)

	sess, err = f.svc.RunChecklist(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StageComplete, sess.Stage)
	require.Len(t, sess.Results, 2)
	assert.Equal(t, "c1", sess.Results[0].Item.ID)
	assert.Equal(t, domain.StatusNG, sess.Results[1].Status)

	f.history.AssertCalled(t, "Append", mock.Anything, mock.MatchedBy(func(e *domain.HistoryEntry) bool {
		return e.Total == 2 && e.Passed == 1 && e.Failed == 1 && e.AdType == domain.AdTypeSaleNew
	}))
}

func TestAnalyze_FailureResetsSession(t *testing.T) {
	f := newFixture(t)
	f.gen.On("Generate", mock.Anything, mock.Anything).Return("", errors.New("network down"))

	sess, err := f.svc.Upload(context.Background(), uploadInput("ad.pdf", pdfBytes(), ""))
	require.NoError(t, err)

	_, err = f.svc.Analyze(context.Background(), sess.ID)
	assert.ErrorIs(t, err, domain.ErrUpstreamFailure)

	// The session survives but every piece of provisional state is gone.
	got, err := f.svc.Get(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StageInitial, got.Stage)
	assert.Empty(t, got.FileName)
	assert.Nil(t, got.Detection)
}

func TestConfirm_UnknownOverride(t *testing.T) {
	f := newFixture(t)
	f.gen.On("Generate", mock.Anything, mock.Anything).Return(
		`{"detectedType":"その他","confidence":0.5,"summary":""}`, nil)

	sess, err := f.svc.Upload(context.Background(), uploadInput("ad.pdf", pdfBytes(), ""))
	require.NoError(t, err)
	sess, err = f.svc.Analyze(context.Background(), sess.ID)
	require.NoError(t, err)

	_, err = f.svc.Confirm(context.Background(), sess.ID, "駐車場")
	assert.ErrorIs(t, err, domain.ErrUnknownAdType)
}

func TestConfirm_OverrideReplacesDetectedType(t *testing.T) {
	f := newFixture(t)
	f.gen.On("Generate", mock.Anything, mock.Anything).Return(
		`{"detectedType":"売買（新築）","confidence":0.6,"summary":""}`, nil)

	sess, err := f.svc.Upload(context.Background(), uploadInput("ad.pdf", pdfBytes(), ""))
	require.NoError(t, err)
	sess, err = f.svc.Analyze(context.Background(), sess.ID)
	require.NoError(t, err)

	sess, err = f.svc.Confirm(context.Background(), sess.ID, domain.AdTypeSaleUsed)
	require.NoError(t, err)
	assert.Equal(t, domain.AdTypeSaleUsed, sess.AdType)
}

func TestConfirm_BeforeAnalyze(t *testing.T) {
	f := newFixture(t)

	sess, err := f.svc.Upload(context.Background(), uploadInput("ad.pdf", pdfBytes(), ""))
	require.NoError(t, err)

	_, err = f.svc.Confirm(context.Background(), sess.ID, "")
	assert.ErrorIs(t, err, domain.ErrInvalidStage)
}

func TestRunChecklist_EmptyCatalogResetsSession(t *testing.T) {
	f := newFixture(t)
	f.gen.On("Generate", mock.Anything, mock.Anything).Return(
		`{"detectedType":"その他","confidence":0.9,"summary":""}`, nil)
	f.catalog.On("ListChecklist", mock.Anything, domain.AdTypeOther).Return([]domain.ChecklistItem{}, nil)

	sess, err := f.svc.Upload(context.Background(), uploadInput("ad.pdf", pdfBytes(), ""))
	require.NoError(t, err)
	_, err = f.svc.Analyze(context.Background(), sess.ID)
	require.NoError(t, err)
	_, err = f.svc.Confirm(context.Background(), sess.ID, "")
	require.NoError(t, err)

	_, err = f.svc.RunChecklist(context.Background(), sess.ID)
	assert.ErrorIs(t, err, domain.ErrEmptyChecklist)

	got, err := f.svc.Get(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StageInitial, got.Stage)
}

func registeredScenes() []domain.Scene {
	return []domain.Scene{
		{ID: "balcony", Kind: domain.SceneKindSimple, Name: "バルコニー", Criteria: "手すりと広さが確認できるか"},
		{ID: "living", Kind: domain.SceneKindSimple, Name: "リビング", Criteria: "明るさが十分か"},
	}
}

func TestCheckScene_EndToEnd(t *testing.T) {
	f := newFixture(t)
	f.sceneStore.On("Load", mock.Anything).Return(registeredScenes(), nil)
	f.gen.On("Generate", mock.Anything, mock.Anything).Return(
		`{"isAppropriate":false,"confidence":0.81,"reason":"手すりが写っていません。","suggestions":["手すり全体を含めて撮影してください"]}`, nil)
	f.history.On("Append", mock.Anything, mock.Anything).Return(nil)

	sess, err := f.svc.Upload(context.Background(), uploadInput("balcony.png", pngBytes(), ""))
	require.NoError(t, err)

	sess, err = f.svc.CheckScene(context.Background(), sess.ID, "balcony")
	require.NoError(t, err)
	assert.Equal(t, domain.StageComplete, sess.Stage)
	require.Len(t, sess.SceneResult, 1)
	assert.False(t, sess.SceneResult[0].IsAppropriate)
	// The result message lands in the conversation log.
	last := sess.Messages[len(sess.Messages)-1]
	assert.Contains(t, last.Text, "要改善")
	assert.Contains(t, last.Text, "手すり全体を含めて撮影してください")
}

func TestCheckScene_UnknownSceneLeavesStageUntouched(t *testing.T) {
	f := newFixture(t)
	f.sceneStore.On("Load", mock.Anything).Return(registeredScenes(), nil)

	sess, err := f.svc.Upload(context.Background(), uploadInput("room.png", pngBytes(), ""))
	require.NoError(t, err)

	_, err = f.svc.CheckScene(context.Background(), sess.ID, "nonexistent")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := f.svc.Get(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StageSelectingScene, got.Stage)
}

func TestStartBatch_RunsToCompletion(t *testing.T) {
	f := newFixture(t)
	f.sceneStore.On("Load", mock.Anything).Return(registeredScenes(), nil)
	f.gen.On("Generate", mock.Anything, mock.Anything).Return(
		`{"isAppropriate":true,"confidence":0.9,"reason":"適切です。","suggestions":[]}`, nil)
	f.history.On("Append", mock.Anything, mock.Anything).Return(nil)

	sess, err := f.svc.Upload(context.Background(), uploadInput("room.png", pngBytes(), ""))
	require.NoError(t, err)

	sess, err = f.svc.StartBatch(context.Background(), sess.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.StageAnalyzing, sess.Stage)

	require.Eventually(t, func() bool {
		got, err := f.svc.Get(sess.ID)
		return err == nil && got.Stage == domain.StageComplete
	}, 5*time.Second, 10*time.Millisecond)

	got, err := f.svc.Get(sess.ID)
	require.NoError(t, err)
	assert.Len(t, got.SceneResult, 2)

	progress, err := f.svc.Progress(sess.ID)
	require.NoError(t, err)
	assert.True(t, progress.Done)
	assert.Equal(t, 2, progress.Completed)
}

func TestStartBatch_SubsetPreservesOrder(t *testing.T) {
	f := newFixture(t)
	f.sceneStore.On("Load", mock.Anything).Return(registeredScenes(), nil)
	f.gen.On("Generate", mock.Anything, mock.Anything).Return(
		`{"isAppropriate":true,"confidence":0.9,"reason":"ok","suggestions":[]}`, nil)
	f.history.On("Append", mock.Anything, mock.Anything).Return(nil)

	sess, err := f.svc.Upload(context.Background(), uploadInput("room.png", pngBytes(), ""))
	require.NoError(t, err)

	sess, err = f.svc.StartBatch(context.Background(), sess.ID, []string{"living"})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		got, err := f.svc.Get(sess.ID)
		return err == nil && got.Stage == domain.StageComplete
	}, 5*time.Second, 10*time.Millisecond)

	got, err := f.svc.Get(sess.ID)
	require.NoError(t, err)
	require.Len(t, got.SceneResult, 1)
	assert.Equal(t, "リビング", got.SceneResult[0].Scene.Name)
}

func TestStartBatch_UnknownSceneID(t *testing.T) {
	f := newFixture(t)
	f.sceneStore.On("Load", mock.Anything).Return(registeredScenes(), nil)

	sess, err := f.svc.Upload(context.Background(), uploadInput("room.png", pngBytes(), ""))
	require.NoError(t, err)

	_, err = f.svc.StartBatch(context.Background(), sess.ID, []string{"missing"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProgress_NoBatchStarted(t *testing.T) {
	f := newFixture(t)

	sess, err := f.svc.Upload(context.Background(), uploadInput("room.png", pngBytes(), ""))
	require.NoError(t, err)

	_, err = f.svc.Progress(sess.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestChat_RequiresCompletedJudgment(t *testing.T) {
	f := newFixture(t)

	sess, err := f.svc.Upload(context.Background(), uploadInput("ad.pdf", pdfBytes(), ""))
	require.NoError(t, err)

	_, err = f.svc.Chat(context.Background(), sess.ID, "結果を教えて")
	assert.ErrorIs(t, err, domain.ErrInvalidStage)
}

func TestChat_EmptyQuestion(t *testing.T) {
	f := newFixture(t)

	sess, err := f.svc.Upload(context.Background(), uploadInput("ad.pdf", pdfBytes(), ""))
	require.NoError(t, err)

	_, err = f.svc.Chat(context.Background(), sess.ID, "   ")
	assert.ErrorIs(t, err, domain.ErrMissingField)
}

func TestChat_AfterSceneCheck(t *testing.T) {
	f := newFixture(t)
	f.sceneStore.On("Load", mock.Anything).Return(registeredScenes(), nil)
	f.gen.On("Generate", mock.Anything, mock.Anything).Return(
		`{"isAppropriate":true,"confidence":0.9,"reason":"適切です。","suggestions":[]}`, nil).Once()
	f.gen.On("Generate", mock.Anything, mock.Anything).Return(
		"バルコニーの判定は適切でした。改善点はありません。", nil).Once()
	f.history.On("Append", mock.Anything, mock.Anything).Return(nil)

	sess, err := f.svc.Upload(context.Background(), uploadInput("balcony.png", pngBytes(), ""))
	require.NoError(t, err)
	sess, err = f.svc.CheckScene(context.Background(), sess.ID, "balcony")
	require.NoError(t, err)

	msg, err := f.svc.Chat(context.Background(), sess.ID, "判定結果を教えてください")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAI, msg.Role)
	assert.Contains(t, msg.Text, "適切でした")

	// Both the question and the answer are on the session log.
	got, err := f.svc.Get(sess.ID)
	require.NoError(t, err)
	n := len(got.Messages)
	assert.Equal(t, domain.RoleUser, got.Messages[n-2].Role)
	assert.Equal(t, domain.RoleAI, got.Messages[n-1].Role)
}

func TestChat_FailureLeavesSessionIntact(t *testing.T) {
	f := newFixture(t)
	f.sceneStore.On("Load", mock.Anything).Return(registeredScenes(), nil)
	f.gen.On("Generate", mock.Anything, mock.Anything).Return(
		`{"isAppropriate":true,"confidence":0.9,"reason":"ok","suggestions":[]}`, nil).Once()
	f.gen.On("Generate", mock.Anything, mock.Anything).Return("", errors.New("timeout")).Once()
	f.history.On("Append", mock.Anything, mock.Anything).Return(nil)

	sess, err := f.svc.Upload(context.Background(), uploadInput("balcony.png", pngBytes(), ""))
	require.NoError(t, err)
	sess, err = f.svc.CheckScene(context.Background(), sess.ID, "balcony")
	require.NoError(t, err)

	_, err = f.svc.Chat(context.Background(), sess.ID, "質問")
	assert.ErrorIs(t, err, domain.ErrUpstreamFailure)

	// The judgment already obtained is not discarded for a failed chat call.
	got, err := f.svc.Get(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StageComplete, got.Stage)
	assert.Len(t, got.SceneResult, 1)
}

func TestReset_DeletesSession(t *testing.T) {
	f := newFixture(t)

	sess, err := f.svc.Upload(context.Background(), uploadInput("ad.pdf", pdfBytes(), ""))
	require.NoError(t, err)

	require.NoError(t, f.svc.Reset(sess.ID))

	_, err = f.svc.Get(sess.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}
