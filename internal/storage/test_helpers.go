package storage

import (
	"context"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/magabrotheeeer/anime-stream/internal/models"
)

// TestDataFactory содержит методы для создания тестовых данных
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory создает новую фабрику тестовых данных
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// CreateUser создает тестового пользователя
func (f *TestDataFactory) CreateUser(t *testing.T, userUID, username, email, passwordHash, role string) {
	_, err := f.storage.DB.Exec(`INSERT INTO users (uid, username, email, password_hash, role)
		VALUES ($1, $2, $3, $4, $5)`,
		userUID, username, email, passwordHash, role)
	require.NoError(t, err)
}

// CreatePlan создает тестовый план доступа
func (f *TestDataFactory) CreatePlan(t *testing.T, name string, price float64, durationDays int, isActive bool) int {
	var id int
	err := f.storage.DB.QueryRow(`INSERT INTO plans (name, price, duration_days, features, is_active)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		name, price, durationDays, "HD, sin anuncios", isActive).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreateAnime создает тестовый тайтл
func (f *TestDataFactory) CreateAnime(t *testing.T, title string, requiresPremium bool) int {
	var id int
	err := f.storage.DB.QueryRow(`INSERT INTO anime (title, description, genre, year, episodes, status, requires_premium)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		title, "test description", "Accion", 2020, 12, "Completado", requiresPremium).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreateEpisode создает тестовый эпизод с сезоном
func (f *TestDataFactory) CreateEpisode(t *testing.T, animeID, episodeNumber int, requiresPremium bool) int {
	var seasonID int
	err := f.storage.DB.QueryRow(`INSERT INTO seasons (anime_id, season_number, title, episode_count)
		VALUES ($1, 1, 'Temporada 1', 12) RETURNING id`, animeID).Scan(&seasonID)
	require.NoError(t, err)

	var id int
	err = f.storage.DB.QueryRow(`INSERT INTO episodes (anime_id, season_id, episode_number, title, requires_premium)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		animeID, seasonID, episodeNumber, "Episodio", requiresPremium).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreateAccessWindow создает тестовое окно доступа через хранилище
func (f *TestDataFactory) CreateAccessWindow(t *testing.T, userUID string, planID int,
	startDate, endDate time.Time, amountPaid float64) int {
	id, err := f.storage.CreateWindow(context.Background(), models.AccessWindow{
		UserUID:       userUID,
		PlanID:        planID,
		StartDate:     startDate,
		EndDate:       endDate,
		Status:        models.WindowStatusActive,
		PaymentMethod: "mercadopago",
		AmountPaid:    amountPaid,
	})
	require.NoError(t, err)
	return id
}

// TestUserData содержит стандартные тестовые данные пользователя
type TestUserData struct {
	UID          string
	Username     string
	Email        string
	PasswordHash string
	Role         string
}

// GetTestUserData возвращает стандартные тестовые данные пользователя
func GetTestUserData() TestUserData {
	return TestUserData{
		UID:          uuid.New().String(),
		Username:     "testuser",
		Email:        "test@example.com",
		PasswordHash: "hashedpassword",
		Role:         "user",
	}
}

// TestVerification содержит общие функции для проверки результатов тестов
type TestVerification struct {
	storage *Storage
}

// NewTestVerification создает новый объект для проверки результатов
func NewTestVerification(storage *Storage) *TestVerification {
	return &TestVerification{storage: storage}
}

// VerifyUserAccessStatus проверяет денормализованную сводку доступа пользователя
func (v *TestVerification) VerifyUserAccessStatus(t *testing.T, userUID, expectedStatus string) {
	var status string
	err := v.storage.DB.QueryRow("SELECT premium_access_status FROM users WHERE uid = $1", userUID).
		Scan(&status)
	require.NoError(t, err)
	require.Equal(t, expectedStatus, status)
}

// VerifyWindowStatus проверяет статус окна доступа
func (v *TestVerification) VerifyWindowStatus(t *testing.T, windowID int, expectedStatus string) {
	var status string
	err := v.storage.DB.QueryRow("SELECT status FROM access_windows WHERE id = $1", windowID).
		Scan(&status)
	require.NoError(t, err)
	require.Equal(t, expectedStatus, status)
}

// setupTestDatabase создает тестовую БД с контейнером PostgreSQL
func setupTestDatabase(t *testing.T) (*Storage, func()) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForAll(
				wait.ForListeningPort(nat.Port("5432/tcp")),
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2),
			).WithDeadline(3*time.Minute),
		),
	)
	require.NoError(t, err, "failed to start container")

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "failed to get connection string")

	// Пробуем подключиться несколько раз с ретраями
	var storage *Storage
	for range 10 {
		storage, err = New(connStr)
		if err == nil {
			break
		}
		time.Sleep(1 * time.Second)
	}
	require.NoError(t, err, "failed to create storage after retries")

	// Создаем таблицы
	_, err = storage.DB.Exec(`
        CREATE EXTENSION IF NOT EXISTS "pgcrypto";

        CREATE TABLE users (
            uid UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            username TEXT UNIQUE NOT NULL,
            email TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            role TEXT NOT NULL DEFAULT 'user',
            premium_access_status TEXT NOT NULL DEFAULT 'free',
            premium_access_end_date TIMESTAMPTZ,
            created_at TIMESTAMPTZ NOT NULL DEFAULT now()
        );

        CREATE TABLE plans (
            id SERIAL PRIMARY KEY,
            name TEXT NOT NULL,
            price NUMERIC(12, 2) NOT NULL CHECK (price >= 0),
            duration_days INTEGER NOT NULL CHECK (duration_days >= 0),
            features TEXT,
            is_active BOOLEAN NOT NULL DEFAULT TRUE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT now()
        );

        CREATE TABLE access_windows (
            id SERIAL PRIMARY KEY,
            user_uid UUID NOT NULL REFERENCES users (uid),
            plan_id INTEGER NOT NULL REFERENCES plans (id),
            start_date TIMESTAMPTZ NOT NULL DEFAULT now(),
            end_date TIMESTAMPTZ NOT NULL,
            status TEXT NOT NULL DEFAULT 'active',
            payment_method TEXT,
            amount_paid NUMERIC(12, 2) NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
            CHECK (end_date > start_date)
        );

        CREATE TABLE anime (
            id SERIAL PRIMARY KEY,
            title TEXT NOT NULL,
            description TEXT,
            genre TEXT,
            year INTEGER,
            episodes INTEGER,
            status TEXT,
            rating NUMERIC(3, 1) NOT NULL DEFAULT 0,
            image_url TEXT,
            video_url TEXT,
            requires_premium BOOLEAN NOT NULL DEFAULT FALSE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT now()
        );

        CREATE TABLE seasons (
            id SERIAL PRIMARY KEY,
            anime_id INTEGER NOT NULL REFERENCES anime (id),
            season_number INTEGER NOT NULL,
            title TEXT NOT NULL,
            description TEXT,
            episode_count INTEGER NOT NULL DEFAULT 0,
            created_at TIMESTAMPTZ NOT NULL DEFAULT now()
        );

        CREATE TABLE episodes (
            id SERIAL PRIMARY KEY,
            anime_id INTEGER NOT NULL REFERENCES anime (id),
            season_id INTEGER NOT NULL REFERENCES seasons (id),
            episode_number INTEGER NOT NULL,
            title TEXT NOT NULL,
            description TEXT,
            duration INTEGER NOT NULL DEFAULT 24,
            video_url TEXT,
            thumbnail_url TEXT,
            requires_premium BOOLEAN NOT NULL DEFAULT FALSE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT now()
        );

        CREATE TABLE favorites (
            id SERIAL PRIMARY KEY,
            user_uid UUID NOT NULL REFERENCES users (uid),
            anime_id INTEGER NOT NULL REFERENCES anime (id),
            created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
            UNIQUE (user_uid, anime_id)
        );

        CREATE TABLE watch_history (
            id SERIAL PRIMARY KEY,
            user_uid UUID NOT NULL REFERENCES users (uid),
            episode_id INTEGER NOT NULL REFERENCES episodes (id),
            progress NUMERIC(5, 4) NOT NULL DEFAULT 0,
            completed BOOLEAN NOT NULL DEFAULT FALSE,
            last_watched TIMESTAMPTZ NOT NULL DEFAULT now(),
            UNIQUE (user_uid, episode_id)
        );

        CREATE TABLE analytics_events (
            id SERIAL PRIMARY KEY,
            user_uid UUID NOT NULL REFERENCES users (uid),
            event_type TEXT NOT NULL,
            payload JSONB,
            created_at TIMESTAMPTZ NOT NULL DEFAULT now()
        );

        CREATE INDEX idx_access_windows_user_status ON access_windows (user_uid, status);
        CREATE INDEX idx_analytics_events_type_created ON analytics_events (event_type, created_at);
    `)
	require.NoError(t, err, "failed to create tables")

	cleanup := func() {
		if storage != nil && storage.DB != nil {
			_ = storage.DB.Close()
		}
		if pgContainer != nil {
			_ = pgContainer.Terminate(ctx)
		}
	}

	return storage, cleanup
}
