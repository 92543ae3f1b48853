package checker_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"adcheck/internal/checker"
	"adcheck/internal/domain"
)

func TestBuildTypeDetectionPrompt_ListsEveryKnownType(t *testing.T) {
	prompt := checker.BuildTypeDetectionPrompt()
	for _, at := range domain.KnownAdTypes {
		assert.Contains(t, prompt, string(at))
	}
	assert.Contains(t, prompt, "detectedType")
	assert.Contains(t, prompt, "confidence")
}

func TestBuildTypeDetectionPrompt_Deterministic(t *testing.T) {
	assert.Equal(t, checker.BuildTypeDetectionPrompt(), checker.BuildTypeDetectionPrompt())
}

func TestBuildChecklistReviewPrompt_ZeroBasedIndices(t *testing.T) {
	items := []domain.ChecklistItem{
		{ID: "a", Category: "価格表示", CheckItem: "二重価格表示の禁止", Regulation: "表示規約19条"},
		{ID: "b", Category: "交通", CheckItem: "徒歩所要時間の算出根拠", Regulation: "表示規約10条"},
		{ID: "c", Category: "設備", CheckItem: "設備表記の正確性", Regulation: "表示規約15条"},
	}
	prompt := checker.BuildChecklistReviewPrompt(items, domain.AdTypeRentResidential)

	assert.Contains(t, prompt, "0. [価格表示] 二重価格表示の禁止")
	assert.Contains(t, prompt, "1. [交通] 徒歩所要時間の算出根拠")
	assert.Contains(t, prompt, "2. [設備] 設備表記の正確性")
	assert.Contains(t, prompt, string(domain.AdTypeRentResidential))
	assert.Contains(t, prompt, "checklistIndex")
	// Indices follow insertion order so a reshuffled list produces a
	// different enumeration.
	reversed := []domain.ChecklistItem{items[2], items[1], items[0]}
	assert.NotEqual(t, prompt, checker.BuildChecklistReviewPrompt(reversed, domain.AdTypeRentResidential))
}

func TestBuildSceneCheckPrompt_SimpleScene(t *testing.T) {
	scene := &domain.Scene{
		Kind:        domain.SceneKindSimple,
		Name:        "バルコニー",
		Description: "バルコニー・ベランダの写真",
		Criteria:    "手すりの状態、広さ感、眺望が適切に写っているか",
	}
	prompt := checker.BuildSceneCheckPrompt(scene, domain.FileTypeJPG)

	assert.Contains(t, prompt, "シーン: バルコニー")
	assert.Contains(t, prompt, "説明: バルコニー・ベランダの写真")
	assert.Contains(t, prompt, "isAppropriate")
	assert.Contains(t, prompt, "画像")
	assert.NotContains(t, prompt, "AI用タグ")
}

func TestBuildSceneCheckPrompt_TabularScene(t *testing.T) {
	scene := &domain.Scene{
		Kind:       domain.SceneKindTabular,
		SceneType:  "外観",
		SubScene:   "エントランス",
		Category:   "共用部",
		Criteria:   "エントランスの清掃状態が確認できること",
		Reason:     "内規",
		ObjectTags: []string{"entrance", "door"},
	}
	prompt := checker.BuildSceneCheckPrompt(scene, domain.FileTypePNG)

	assert.Contains(t, prompt, "外観 - エントランス")
	assert.Contains(t, prompt, "カテゴリ: 共用部")
	assert.Contains(t, prompt, "AI用タグ: entrance, door")
	assert.Contains(t, prompt, "5. AI用タグ（entrance, door）")
}

func TestBuildSceneCheckPrompt_PDFAdjustsJudgmentPoints(t *testing.T) {
	scene := &domain.Scene{Kind: domain.SceneKindSimple, Name: "間取り図", Criteria: "間取りが判読できること"}
	prompt := checker.BuildSceneCheckPrompt(scene, domain.FileTypePDF)

	assert.Contains(t, prompt, "PDF広告")
	assert.Contains(t, prompt, "法令遵守")
	assert.False(t, strings.Contains(prompt, "写り込み"))
}

func TestBuildChatPrompt_EmbedsResultsAndQuestion(t *testing.T) {
	lines := []string{"価格表示: OK (問題なし)", "バルコニー: 要改善 (手すりが写っていない)"}
	prompt := checker.BuildChatPrompt(lines, "NGだった項目を教えてください")

	assert.Contains(t, prompt, "- 価格表示: OK (問題なし)")
	assert.Contains(t, prompt, "- バルコニー: 要改善 (手すりが写っていない)")
	assert.Contains(t, prompt, "NGだった項目を教えてください")
}
