package domain

import "time"

// DefaultScenes is the built-in scene set used when nothing has been saved
// yet or the stored set cannot be read.
func DefaultScenes() []Scene {
	now := time.Now().UTC()
	return []Scene{
		{
			ID:          "1",
			Kind:        SceneKindSimple,
			Name:        "バルコニー",
			Description: "バルコニー・ベランダの写真",
			Criteria:    "バルコニーが明確に写っていること、洗濯物や私物が映り込んでいないこと",
			CreatedAt:   now,
		},
		{
			ID:          "2",
			Kind:        SceneKindSimple,
			Name:        "リビング",
			Description: "リビング・居間の写真",
			Criteria:    "部屋全体が見渡せること、明るく清潔感があること",
			CreatedAt:   now,
		},
		{
			ID:          "3",
			Kind:        SceneKindSimple,
			Name:        "外観",
			Description: "建物外観の写真",
			Criteria:    "建物全体が写っていること、天候が良いこと",
			CreatedAt:   now,
		},
		{
			ID:          "4",
			Kind:        SceneKindSimple,
			Name:        "キッチン",
			Description: "キッチン・台所の写真",
			Criteria:    "キッチン設備が確認できること、清潔感があること",
			CreatedAt:   now,
		},
	}
}
