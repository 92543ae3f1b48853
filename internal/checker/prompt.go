package checker

import (
	"fmt"
	"strings"

	"adcheck/internal/domain"
)

// Prompt builders are pure and deterministic: identical context produces an
// identical string. Every JSON-producing prompt pins the exact output schema
// and instructs the model to emit nothing else, since Extract assumes the
// dominant JSON span in the reply parses as-is.

// BuildTypeDetectionPrompt asks the model to classify the attached
// advertisement into one of the known ad types.
func BuildTypeDetectionPrompt() string {
	var b strings.Builder
	b.WriteString("あなたは不動産広告の専門家です。添付されたPDFファイルを分析し、以下のJSON形式で結果を返してください。\n\n")
	b.WriteString("広告の種別を以下から判定してください：\n")
	for _, t := range domain.KnownAdTypes {
		fmt.Fprintf(&b, "- %s\n", t)
	}
	b.WriteString("\n回答は必ず以下のJSON形式のみで返してください（他のテキストは含めないでください）：\n")
	b.WriteString(`{
  "detectedType": "種別名",
  "confidence": 0.95,
  "summary": "この広告は〇〇の物件広告です。主な特徴として..."
}
`)
	return b.String()
}

// BuildChecklistReviewPrompt asks the model to review the attached ad
// against every checklist item in one call. Items are enumerated with
// zero-based indices; the response references items by that same index, so
// the caller must bind results using the identical insertion order.
func BuildChecklistReviewPrompt(items []domain.ChecklistItem, adType domain.AdType) string {
	var b strings.Builder
	fmt.Fprintf(&b, "あなたは不動産広告規制の専門家です。添付されたPDF（%sの広告）を以下のチェックリストに基づいて審査してください。\n\n", adType)
	b.WriteString("【チェックリスト】\n")
	for i, item := range items {
		fmt.Fprintf(&b, "%d. [%s] %s (根拠: %s)\n", i, item.Category, item.CheckItem, item.Regulation)
	}
	b.WriteString("\n各項目について以下のJSON配列形式で判定結果を返してください（他のテキストは含めないでください）。checklistIndex は上記の番号（0始まり）をそのまま使ってください：\n")
	b.WriteString(`[
  {
    "checklistIndex": 0,
    "status": "OK" | "NG" | "要確認",
    "detail": "判定理由の詳細説明",
    "location": "問題箇所（該当する場合）"
  }
]
`)
	b.WriteString("\n判定基準：\n")
	b.WriteString("- OK: 基準を満たしている\n")
	b.WriteString("- NG: 明らかに基準違反\n")
	b.WriteString("- 要確認: 情報不足または曖昧な場合\n")
	return b.String()
}

// BuildSceneCheckPrompt asks the model to judge whether the attached file
// satisfies one scene's criteria. Works off the shape-independent
// evaluation context plus whatever tabular metadata the scene carries.
func BuildSceneCheckPrompt(scene *domain.Scene, fileType domain.FileType) string {
	fileTypeText := "画像"
	if fileType == domain.FileTypePDF {
		fileTypeText = "PDF広告"
	}
	ec := scene.EvaluationContext()

	var b strings.Builder
	b.WriteString("あなたは不動産広告の審査の専門家です。\n")
	fmt.Fprintf(&b, "添付された%sが以下のチェック項目を満たしているかを判定してください。\n\n", fileTypeText)
	b.WriteString("【チェック項目情報】\n")
	fmt.Fprintf(&b, "- シーン: %s\n", ec.Label)
	fmt.Fprintf(&b, "- チェック項目: %s\n", orNone(ec.Criteria))
	if scene.Kind == domain.SceneKindTabular {
		fmt.Fprintf(&b, "- カテゴリ: %s\n", orNone(scene.Category))
		fmt.Fprintf(&b, "- 根拠: %s\n", orNone(scene.Reason))
		fmt.Fprintf(&b, "- AI用タグ: %s\n", orNone(strings.Join(scene.ObjectTags, ", ")))
		fmt.Fprintf(&b, "- 補足: %s\n", orNone(scene.Notes))
	} else if scene.Description != "" {
		fmt.Fprintf(&b, "- 説明: %s\n", scene.Description)
	}
	b.WriteString("\n以下のJSON形式のみで回答してください（他のテキストは含めないでください）：\n")
	b.WriteString(`{
  "isAppropriate": true または false,
  "confidence": 0.0〜1.0の数値,
  "reason": "判定理由の詳細説明",
  "suggestions": ["改善提案1", "改善提案2"]
}
`)
	b.WriteString("\n判定ポイント：\n")
	fmt.Fprintf(&b, "1. %sが指定されたシーン（%s）の内容を正しく表しているか\n", fileTypeText, ec.Label)
	fmt.Fprintf(&b, "2. チェック項目「%s」を満たしているか\n", ec.Criteria)
	if fileType == domain.FileTypePDF {
		fmt.Fprintf(&b, "3. 不動産広告として適切な品質か（表示の正確性、法令遵守など）\n")
		fmt.Fprintf(&b, "4. 不適切な表記や誤解を招く表現がないか\n")
	} else {
		fmt.Fprintf(&b, "3. 不動産広告として適切な品質か（明るさ、構図、清潔感など）\n")
		fmt.Fprintf(&b, "4. 不適切な写り込み（個人情報、生活感のある物など）がないか\n")
	}
	if len(scene.ObjectTags) > 0 {
		fmt.Fprintf(&b, "5. AI用タグ（%s）に関連するオブジェクトが適切に表現されているか\n", strings.Join(scene.ObjectTags, ", "))
	}
	return b.String()
}

// BuildChatPrompt embeds a flattened summary of prior results plus the
// verbatim user question. Free-form answer; no JSON contract.
func BuildChatPrompt(resultLines []string, question string) string {
	var b strings.Builder
	b.WriteString("あなたは不動産広告規制の専門家AIアシスタントです。\n")
	b.WriteString("以下の判定結果に基づいて、ユーザーの質問に回答してください。\n\n")
	b.WriteString("【判定結果サマリー】\n")
	for _, line := range resultLines {
		fmt.Fprintf(&b, "- %s\n", line)
	}
	b.WriteString("\n【ユーザーの質問】\n")
	b.WriteString(question)
	b.WriteString("\n\n分かりやすく簡潔に回答してください。専門用語を使う場合は解説を加えてください。\n")
	return b.String()
}

func orNone(s string) string {
	if s == "" {
		return "なし"
	}
	return s
}
