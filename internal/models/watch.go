package models

import "time"

// WatchProgress хранит прогресс просмотра эпизода пользователем.
type WatchProgress struct {
	ID          int       `json:"id"`
	UserUID     string    `json:"user_uid"`
	EpisodeID   int       `json:"episode_id"`
	Progress    float64   `json:"progress"` // Доля просмотренного, 0..1
	Completed   bool      `json:"completed"`
	LastWatched time.Time `json:"last_watched"`
}

// DummyProgress используется для приёма запроса сохранения прогресса.
type DummyProgress struct {
	EpisodeID int     `json:"episode_id" validate:"required,gt=0"`
	Progress  float64 `json:"progress" validate:"gte=0"`
	Completed bool    `json:"completed"`
}

// WatchHistoryItem — запись истории просмотра с данными эпизода и тайтла.
type WatchHistoryItem struct {
	WatchProgress
	EpisodeTitle  string `json:"episode_title"`
	EpisodeNumber int    `json:"episode_number"`
	SeasonTitle   string `json:"season_title"`
	AnimeTitle    string `json:"anime_title"`
	AnimeImage    string `json:"anime_image"`
}
