// Package database provides the query layer for the dashboard's catalog.
//
// The catalog is seeded into an SQLite database held in memory, and the
// TUI and CLI read it back through the Store interface. Nothing is written
// to disk: the database lives exactly as long as the process.
package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/Mr-Dark-debug/codementor/internal/catalog"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaFS embed.FS

// MemoryDSN opens a private in-memory database.
const MemoryDSN = ":memory:"

// ErrNotFound is returned when a lookup by id matches nothing.
var ErrNotFound = errors.New("not found")

// Store defines read access to the catalog plus the one-time seed.
// The TUI depends on this interface so tests can substitute a fake.
type Store interface {
	// SeedCatalog inserts every catalog record in a single transaction.
	SeedCatalog(c *catalog.Catalog) error

	// GetHeaderStats returns the labels for the top bar.
	GetHeaderStats() (*catalog.HeaderStats, error)
	// ListTutorials returns tutorials in display order, lessons included.
	ListTutorials() ([]catalog.Tutorial, error)
	// ListExercises returns exercises matching the filter in display order.
	ListExercises(filter ExerciseFilter) ([]catalog.Exercise, error)
	// GetExercise returns a single exercise or ErrNotFound.
	GetExercise(id string) (*catalog.Exercise, error)
	// SearchExercises matches title, description and tags case-insensitively.
	SearchExercises(query string, limit int) ([]catalog.Exercise, error)
	// GetExerciseStats aggregates completion figures over all exercises.
	GetExerciseStats() (*catalog.ExerciseStats, error)
	// ListIssues returns the mock lint findings in display order.
	ListIssues() ([]catalog.Issue, error)
	// GetAnalysis returns the mock analysis figures.
	GetAnalysis() (*catalog.Analysis, error)

	// Close releases the database.
	Close() error
}

// ExerciseFilter defines query parameters for exercise listing.
type ExerciseFilter struct {
	Difficulty string `json:"difficulty,omitempty"` // "" or "all" for every level
	Limit      int    `json:"limit"`
}

// ============================================================
// DBService Implementation
// ============================================================

// DBService implements Store on SQLite.
type DBService struct {
	db   *sql.DB
	mu   sync.RWMutex
	path string

	stmtInsertMeta       *sql.Stmt
	stmtInsertTutorial   *sql.Stmt
	stmtInsertLesson     *sql.Stmt
	stmtInsertExercise   *sql.Stmt
	stmtInsertTag        *sql.Stmt
	stmtInsertIssue      *sql.Stmt
	stmtInsertQuality    *sql.Stmt
	stmtInsertComplexity *sql.Stmt
	stmtInsertMetric     *sql.Stmt
	stmtInsertInsight    *sql.Stmt
}

// NewDBService opens the database, applies the schema and prepares the
// seed statements. Pass MemoryDSN for the usual in-memory catalog.
func NewDBService(path string) (*DBService, error) {
	dsn := fmt.Sprintf("%s?_foreign_keys=ON", path)

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database at %s: %w", path, err)
	}

	// Every connection to :memory: is a separate database, so keep exactly one.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	svc := &DBService{
		db:   db,
		path: path,
	}

	if err := svc.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	if err := svc.prepareStatements(); err != nil {
		db.Close()
		return nil, fmt.Errorf("preparing statements: %w", err)
	}

	return svc, nil
}

// Open creates an in-memory store seeded with the given catalog.
func Open(c *catalog.Catalog) (*DBService, error) {
	svc, err := NewDBService(MemoryDSN)
	if err != nil {
		return nil, err
	}
	if err := svc.SeedCatalog(c); err != nil {
		svc.Close()
		return nil, err
	}
	return svc, nil
}

func (s *DBService) initSchema() error {
	schema, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return fmt.Errorf("reading embedded schema: %w", err)
	}

	if _, err := s.db.Exec(string(schema)); err != nil {
		return fmt.Errorf("executing schema: %w", err)
	}

	return nil
}

func (s *DBService) prepareStatements() error {
	stmts := []struct {
		name  string
		dst   **sql.Stmt
		query string
	}{
		{"InsertMeta", &s.stmtInsertMeta,
			`INSERT INTO meta (key, value) VALUES (?, ?)
			 ON CONFLICT(key) DO UPDATE SET value = excluded.value`},
		{"InsertTutorial", &s.stmtInsertTutorial,
			`INSERT INTO tutorials (tutorial_id, position, title, description, progress, difficulty, completed)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`},
		{"InsertLesson", &s.stmtInsertLesson,
			`INSERT INTO lessons (lesson_id, tutorial_id, position, title, description, completed, kind)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`},
		{"InsertExercise", &s.stmtInsertExercise,
			`INSERT INTO exercises (exercise_id, position, title, description, difficulty, time_estimate,
				points, completed, completion_rate, starter_code, test_cases)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`},
		{"InsertTag", &s.stmtInsertTag,
			`INSERT INTO exercise_tags (exercise_id, position, tag) VALUES (?, ?, ?)`},
		{"InsertIssue", &s.stmtInsertIssue,
			`INSERT INTO issues (issue_id, position, severity, line, col, message, description, suggestion, fixable)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`},
		{"InsertQuality", &s.stmtInsertQuality,
			`INSERT INTO quality_scores (position, name, score) VALUES (?, ?, ?)`},
		{"InsertComplexity", &s.stmtInsertComplexity,
			`INSERT INTO complexity_buckets (position, name, value, color) VALUES (?, ?, ?, ?)`},
		{"InsertMetric", &s.stmtInsertMetric,
			`INSERT INTO metrics (position, metric, value, change) VALUES (?, ?, ?, ?)`},
		{"InsertInsight", &s.stmtInsertInsight,
			`INSERT INTO insights (position, title, body, tone) VALUES (?, ?, ?, ?)`},
	}

	for _, st := range stmts {
		prepared, err := s.db.Prepare(st.query)
		if err != nil {
			return fmt.Errorf("preparing %s: %w", st.name, err)
		}
		*st.dst = prepared
	}
	return nil
}

// SeedCatalog inserts the whole catalog atomically. Seeding the same ids
// twice fails on the primary keys and leaves the store unchanged.
func (s *DBService) SeedCatalog(c *catalog.Catalog) error {
	if c == nil {
		return errors.New("seeding catalog: nil catalog")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning seed transaction: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	meta := map[string]string{
		"header.brand":    c.Header.Brand,
		"header.lessons":  c.Header.Lessons,
		"header.points":   c.Header.Points,
		"header.students": c.Header.Students,
		"header.welcome":  c.Header.Welcome,
		"header.tagline":  c.Header.Tagline,
		"analysis.grade":  c.Analysis.Grade,
	}
	metaStmt := tx.Stmt(s.stmtInsertMeta)
	for k, v := range meta {
		if _, err := metaStmt.Exec(k, v); err != nil {
			return fmt.Errorf("inserting meta %s: %w", k, err)
		}
	}

	tutStmt := tx.Stmt(s.stmtInsertTutorial)
	lessonStmt := tx.Stmt(s.stmtInsertLesson)
	for i, t := range c.Tutorials {
		if _, err := tutStmt.Exec(t.ID, i, t.Title, t.Description, t.Progress, t.Difficulty, t.Completed); err != nil {
			return fmt.Errorf("inserting tutorial %s: %w", t.ID, err)
		}
		for j, l := range t.Lessons {
			if _, err := lessonStmt.Exec(l.ID, t.ID, j, l.Title, l.Description, l.Completed, l.Kind); err != nil {
				return fmt.Errorf("inserting lesson %s: %w", l.ID, err)
			}
		}
	}

	exStmt := tx.Stmt(s.stmtInsertExercise)
	tagStmt := tx.Stmt(s.stmtInsertTag)
	for i, e := range c.Exercises {
		if _, err := exStmt.Exec(
			e.ID, i, e.Title, e.Description, e.Difficulty, e.TimeEstimate,
			e.Points, e.Completed, e.CompletionRate, e.StarterCode, e.TestCases,
		); err != nil {
			return fmt.Errorf("inserting exercise %s: %w", e.ID, err)
		}
		for j, tag := range e.Tags {
			if _, err := tagStmt.Exec(e.ID, j, tag); err != nil {
				return fmt.Errorf("inserting tag %q for exercise %s: %w", tag, e.ID, err)
			}
		}
	}

	issueStmt := tx.Stmt(s.stmtInsertIssue)
	for i, is := range c.Issues {
		if _, err := issueStmt.Exec(
			is.ID, i, is.Severity, is.Line, is.Column, is.Message,
			is.Description, is.Suggestion, is.Fixable,
		); err != nil {
			return fmt.Errorf("inserting issue %s: %w", is.ID, err)
		}
	}

	a := c.Analysis
	for i, q := range a.Quality {
		if _, err := tx.Stmt(s.stmtInsertQuality).Exec(i, q.Name, q.Score); err != nil {
			return fmt.Errorf("inserting quality score %s: %w", q.Name, err)
		}
	}
	for i, b := range a.Complexity {
		if _, err := tx.Stmt(s.stmtInsertComplexity).Exec(i, b.Name, b.Value, b.Color); err != nil {
			return fmt.Errorf("inserting complexity bucket %s: %w", b.Name, err)
		}
	}
	for i, m := range a.Metrics {
		if _, err := tx.Stmt(s.stmtInsertMetric).Exec(i, m.Metric, m.Value, m.Change); err != nil {
			return fmt.Errorf("inserting metric %s: %w", m.Metric, err)
		}
	}
	for i, in := range a.Insights {
		if _, err := tx.Stmt(s.stmtInsertInsight).Exec(i, in.Title, in.Body, in.Tone); err != nil {
			return fmt.Errorf("inserting insight %s: %w", in.Title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing seed transaction: %w", err)
	}
	return nil
}

// GetHeaderStats returns the top bar labels.
func (s *DBService) GetHeaderStats() (*catalog.HeaderStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	meta, err := s.loadMeta()
	if err != nil {
		return nil, err
	}
	return &catalog.HeaderStats{
		Brand:    meta["header.brand"],
		Lessons:  meta["header.lessons"],
		Points:   meta["header.points"],
		Students: meta["header.students"],
		Welcome:  meta["header.welcome"],
		Tagline:  meta["header.tagline"],
	}, nil
}

// ListTutorials returns tutorials with their lessons, both in display order.
func (s *DBService) ListTutorials() ([]catalog.Tutorial, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tutorials, err := s.queryTutorials()
	if err != nil {
		return nil, err
	}

	lessons, err := s.queryLessons()
	if err != nil {
		return nil, err
	}
	for i := range tutorials {
		tutorials[i].Lessons = lessons[tutorials[i].ID]
	}
	return tutorials, nil
}

// ListExercises returns exercises matching the filter, in display order.
func (s *DBService) ListExercises(filter ExerciseFilter) ([]catalog.Exercise, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT ` + exerciseColumns + ` FROM exercises WHERE 1=1`
	args := make([]interface{}, 0)

	if filter.Difficulty != "" && filter.Difficulty != catalog.FilterAll {
		query += ` AND difficulty = ?`
		args = append(args, filter.Difficulty)
	}

	query += ` ORDER BY position ASC`

	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	exercises, err := s.queryExercises(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying exercises: %w", err)
	}
	return exercises, s.attachTags(exercises)
}

// GetExercise returns the exercise with the given id.
func (s *DBService) GetExercise(id string) (*catalog.Exercise, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	exercises, err := s.queryExercises(
		`SELECT `+exerciseColumns+` FROM exercises WHERE exercise_id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("querying exercise %s: %w", id, err)
	}
	if len(exercises) == 0 {
		return nil, fmt.Errorf("exercise %s: %w", id, ErrNotFound)
	}
	if err := s.attachTags(exercises); err != nil {
		return nil, err
	}
	return &exercises[0], nil
}

// SearchExercises performs a case-insensitive substring search over
// title, description and tags.
func (s *DBService) SearchExercises(query string, limit int) ([]catalog.Exercise, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 20
	}
	pattern := "%" + escapeLike(strings.ToLower(strings.TrimSpace(query))) + "%"

	exercises, err := s.queryExercises(`
		SELECT `+exerciseColumns+`
		FROM exercises e
		WHERE lower(e.title) LIKE ? ESCAPE '\'
			OR lower(e.description) LIKE ? ESCAPE '\'
			OR EXISTS (
				SELECT 1 FROM exercise_tags t
				WHERE t.exercise_id = e.exercise_id AND lower(t.tag) LIKE ? ESCAPE '\'
			)
		ORDER BY e.position ASC
		LIMIT ?
	`, pattern, pattern, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("searching exercises for %q: %w", query, err)
	}
	return exercises, s.attachTags(exercises)
}

// GetExerciseStats aggregates over every exercise, ignoring filters.
func (s *DBService) GetExerciseStats() (*catalog.ExerciseStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &catalog.ExerciseStats{}
	var avg float64
	err := s.db.QueryRow(`
		SELECT
			COALESCE(SUM(CASE WHEN completed = 1 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN completed = 1 THEN points ELSE 0 END), 0),
			COALESCE(AVG(completion_rate), 0.0)
		FROM exercises
	`).Scan(&stats.Completed, &stats.PointsEarned, &avg)
	if err != nil {
		return nil, fmt.Errorf("querying exercise stats: %w", err)
	}
	stats.AvgSuccess = catalog.RoundHalfUp(avg)
	return stats, nil
}

// ListIssues returns the mock lint findings.
func (s *DBService) ListIssues() ([]catalog.Issue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT issue_id, severity, line, col, message, description, suggestion, fixable
		FROM issues
		ORDER BY position ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying issues: %w", err)
	}
	defer rows.Close()

	var issues []catalog.Issue
	for rows.Next() {
		var is catalog.Issue
		if err := rows.Scan(
			&is.ID, &is.Severity, &is.Line, &is.Column, &is.Message,
			&is.Description, &is.Suggestion, &is.Fixable,
		); err != nil {
			return nil, fmt.Errorf("scanning issue row: %w", err)
		}
		issues = append(issues, is)
	}
	return issues, rows.Err()
}

// GetAnalysis returns the mock analysis figures.
func (s *DBService) GetAnalysis() (*catalog.Analysis, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	meta, err := s.loadMeta()
	if err != nil {
		return nil, err
	}
	a := &catalog.Analysis{Grade: meta["analysis.grade"]}

	if err := s.scanAll(`SELECT name, score FROM quality_scores ORDER BY position`, func(rows *sql.Rows) error {
		var q catalog.QualityScore
		if err := rows.Scan(&q.Name, &q.Score); err != nil {
			return err
		}
		a.Quality = append(a.Quality, q)
		return nil
	}); err != nil {
		return nil, fmt.Errorf("querying quality scores: %w", err)
	}

	if err := s.scanAll(`SELECT name, value, color FROM complexity_buckets ORDER BY position`, func(rows *sql.Rows) error {
		var b catalog.ComplexityBucket
		if err := rows.Scan(&b.Name, &b.Value, &b.Color); err != nil {
			return err
		}
		a.Complexity = append(a.Complexity, b)
		return nil
	}); err != nil {
		return nil, fmt.Errorf("querying complexity buckets: %w", err)
	}

	if err := s.scanAll(`SELECT metric, value, change FROM metrics ORDER BY position`, func(rows *sql.Rows) error {
		var m catalog.Metric
		if err := rows.Scan(&m.Metric, &m.Value, &m.Change); err != nil {
			return err
		}
		a.Metrics = append(a.Metrics, m)
		return nil
	}); err != nil {
		return nil, fmt.Errorf("querying metrics: %w", err)
	}

	if err := s.scanAll(`SELECT title, body, tone FROM insights ORDER BY position`, func(rows *sql.Rows) error {
		var in catalog.Insight
		if err := rows.Scan(&in.Title, &in.Body, &in.Tone); err != nil {
			return err
		}
		a.Insights = append(a.Insights, in)
		return nil
	}); err != nil {
		return nil, fmt.Errorf("querying insights: %w", err)
	}

	return a, nil
}

// Close closes all prepared statements and the connection pool.
func (s *DBService) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stmts := []*sql.Stmt{
		s.stmtInsertMeta, s.stmtInsertTutorial, s.stmtInsertLesson,
		s.stmtInsertExercise, s.stmtInsertTag, s.stmtInsertIssue,
		s.stmtInsertQuality, s.stmtInsertComplexity, s.stmtInsertMetric,
		s.stmtInsertInsight,
	}
	for _, stmt := range stmts {
		if stmt != nil {
			stmt.Close()
		}
	}

	return s.db.Close()
}

// ============================================================
// Scan Helpers
// ============================================================
//
// With a single connection, a result set must be closed before the next
// query can run. Each helper drains and closes its rows before returning.

// likeEscaper makes LIKE wildcards in user input match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

const exerciseColumns = `exercise_id, title, description, difficulty, time_estimate,
	points, completed, completion_rate, starter_code, test_cases`

func (s *DBService) scanAll(query string, scan func(*sql.Rows) error, args ...interface{}) error {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}

func (s *DBService) loadMeta() (map[string]string, error) {
	meta := make(map[string]string)
	err := s.scanAll(`SELECT key, value FROM meta`, func(rows *sql.Rows) error {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return err
		}
		meta[k] = v
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("querying meta: %w", err)
	}
	return meta, nil
}

func (s *DBService) queryTutorials() ([]catalog.Tutorial, error) {
	var tutorials []catalog.Tutorial
	err := s.scanAll(`
		SELECT tutorial_id, title, description, progress, difficulty, completed
		FROM tutorials
		ORDER BY position ASC
	`, func(rows *sql.Rows) error {
		var t catalog.Tutorial
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Progress, &t.Difficulty, &t.Completed); err != nil {
			return err
		}
		tutorials = append(tutorials, t)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("querying tutorials: %w", err)
	}
	return tutorials, nil
}

func (s *DBService) queryLessons() (map[string][]catalog.Lesson, error) {
	lessons := make(map[string][]catalog.Lesson)
	err := s.scanAll(`
		SELECT tutorial_id, lesson_id, title, description, completed, kind
		FROM lessons
		ORDER BY tutorial_id, position ASC
	`, func(rows *sql.Rows) error {
		var tutorialID string
		var l catalog.Lesson
		if err := rows.Scan(&tutorialID, &l.ID, &l.Title, &l.Description, &l.Completed, &l.Kind); err != nil {
			return err
		}
		lessons[tutorialID] = append(lessons[tutorialID], l)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("querying lessons: %w", err)
	}
	return lessons, nil
}

func (s *DBService) queryExercises(query string, args ...interface{}) ([]catalog.Exercise, error) {
	var exercises []catalog.Exercise
	err := s.scanAll(query, func(rows *sql.Rows) error {
		var e catalog.Exercise
		if err := rows.Scan(
			&e.ID, &e.Title, &e.Description, &e.Difficulty, &e.TimeEstimate,
			&e.Points, &e.Completed, &e.CompletionRate, &e.StarterCode, &e.TestCases,
		); err != nil {
			return fmt.Errorf("scanning exercise row: %w", err)
		}
		exercises = append(exercises, e)
		return nil
	}, args...)
	return exercises, err
}

func (s *DBService) attachTags(exercises []catalog.Exercise) error {
	if len(exercises) == 0 {
		return nil
	}
	tags := make(map[string][]string)
	err := s.scanAll(`SELECT exercise_id, tag FROM exercise_tags ORDER BY exercise_id, position`, func(rows *sql.Rows) error {
		var id, tag string
		if err := rows.Scan(&id, &tag); err != nil {
			return err
		}
		tags[id] = append(tags[id], tag)
		return nil
	})
	if err != nil {
		return fmt.Errorf("querying exercise tags: %w", err)
	}
	for i := range exercises {
		exercises[i].Tags = tags[exercises[i].ID]
	}
	return nil
}
