package models

import "time"

// Anime представляет тайтл каталога.
type Anime struct {
	ID              int       `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Genre           string    `json:"genre"` // Жанры через запятую, как в исходном каталоге
	Year            int       `json:"year"`
	Episodes        int       `json:"episodes"`
	Status          string    `json:"status"`
	Rating          float64   `json:"rating"`
	ImageURL        string    `json:"image_url"`
	VideoURL        string    `json:"video_url"`
	RequiresPremium bool      `json:"requires_premium"`
	CreatedAt       time.Time `json:"created_at"`
}

// AnimeFilter описывает параметры поиска по каталогу.
type AnimeFilter struct {
	Search string
	Genre  string
	Status string
	Limit  int
	Offset int
}

// Season представляет сезон тайтла.
type Season struct {
	ID           int    `json:"id"`
	AnimeID      int    `json:"anime_id"`
	SeasonNumber int    `json:"season_number"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	EpisodeCount int    `json:"episode_count"`
}

// Episode представляет эпизод сезона. Поля SeasonTitle, AnimeTitle и
// AnimeImage заполняются join-ами для ответов API.
type Episode struct {
	ID              int       `json:"id"`
	AnimeID         int       `json:"anime_id"`
	SeasonID        int       `json:"season_id"`
	EpisodeNumber   int       `json:"episode_number"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Duration        int       `json:"duration"` // Минуты
	VideoURL        string    `json:"video_url"`
	ThumbnailURL    string    `json:"thumbnail_url"`
	RequiresPremium bool      `json:"requires_premium"`
	CreatedAt       time.Time `json:"created_at"`
	SeasonTitle     string    `json:"season_title,omitempty"`
	AnimeTitle      string    `json:"anime_title,omitempty"`
	AnimeImage      string    `json:"anime_image,omitempty"`
}
