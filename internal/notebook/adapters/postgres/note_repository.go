package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"notebook/internal/notebook/domain/entities"
	"notebook/internal/notebook/domain/tags"
	"notebook/internal/notebook/ports/repositories"
	"notebook/pkg/logger"
)

const noteColumns = `id, owner_id, title, content, COALESCE(images, '[]'), tags, created_at`

// NoteRepository реализует интерфейс repositories.NoteRepository.
type NoteRepository struct {
	pool PgxPoolInterface
}

// NewNoteRepository создает новый репозиторий заметок.
func NewNoteRepository(pool PgxPoolInterface) repositories.NoteRepository {
	return &NoteRepository{pool: pool}
}

// GetByID получает заметку по ID независимо от владельца.
func (r *NoteRepository) GetByID(ctx context.Context, id int64) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.GetByID"))
	log.Debug(ctx, "getting note", zap.Int64("noteID", id))

	note, err := scanNote(r.pool.QueryRow(ctx,
		`SELECT `+noteColumns+` FROM notes WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "note not found", zap.Int64("noteID", id))
			return nil, nil
		}
		log.Error(ctx, "failed to get note", zap.Error(err))
		return nil, fmt.Errorf("failed to get note: %w", err)
	}

	return note, nil
}

// Create сохраняет новую заметку в БД.
func (r *NoteRepository) Create(ctx context.Context, ownerID int64, fields entities.NoteFields) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Create"))
	log.Debug(ctx, "creating new note", zap.Int64("ownerID", ownerID))

	note, err := scanNote(r.pool.QueryRow(ctx,
		`INSERT INTO notes (owner_id, title, content, images, tags)
         VALUES ($1, $2, $3, $4, $5)
         RETURNING `+noteColumns,
		ownerID, fields.Title, fields.Content, tags.EncodeImages(fields.Images), tags.Encode(fields.Tags),
	))
	if err != nil {
		log.Error(ctx, "failed to create note", zap.Error(err))
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	log.Debug(ctx, "note created", zap.Int64("noteID", note.ID))
	return note, nil
}

// Update заменяет поля заметки, если она принадлежит ownerID.
func (r *NoteRepository) Update(ctx context.Context, id, ownerID int64, fields entities.NoteFields) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Update"))
	log.Debug(ctx, "updating note", zap.Int64("noteID", id))

	note, err := scanNote(r.pool.QueryRow(ctx,
		`UPDATE notes SET title = $3, content = $4, images = $5, tags = $6
         WHERE id = $1 AND owner_id = $2
         RETURNING `+noteColumns,
		id, ownerID, fields.Title, fields.Content, tags.EncodeImages(fields.Images), tags.Encode(fields.Tags),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "note not found or not owned by account")
			return nil, entities.ErrNotFoundOrForbidden
		}
		log.Error(ctx, "failed to update note", zap.Error(err))
		return nil, fmt.Errorf("failed to update note: %w", err)
	}

	return note, nil
}

// UpdateTags перезаписывает теги заметки, если она принадлежит ownerID.
func (r *NoteRepository) UpdateTags(ctx context.Context, id, ownerID int64, noteTags []string) error {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.UpdateTags"))
	log.Debug(ctx, "updating note tags", zap.Int64("noteID", id))

	result, err := r.pool.Exec(ctx,
		`UPDATE notes SET tags = $3 WHERE id = $1 AND owner_id = $2`,
		id, ownerID, tags.Encode(noteTags),
	)
	if err != nil {
		log.Error(ctx, "failed to update note tags", zap.Error(err))
		return fmt.Errorf("failed to update note tags: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "note not found or not owned by account")
		return entities.ErrNotFoundOrForbidden
	}

	return nil
}

// Delete удаляет заметку и возвращает ее последнее состояние.
func (r *NoteRepository) Delete(ctx context.Context, id, ownerID int64) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Delete"))
	log.Debug(ctx, "deleting note", zap.Int64("noteID", id))

	note, err := scanNote(r.pool.QueryRow(ctx,
		`DELETE FROM notes WHERE id = $1 AND owner_id = $2 RETURNING `+noteColumns,
		id, ownerID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "note not found or not owned by account")
			return nil, entities.ErrNotFoundOrForbidden
		}
		log.Error(ctx, "failed to delete note", zap.Error(err))
		return nil, fmt.Errorf("failed to delete note: %w", err)
	}

	return note, nil
}

// List получает страницу заметок владельца по фильтру и общее количество подходящих заметок.
func (r *NoteRepository) List(
	ctx context.Context, ownerID int64, filter repositories.NoteFilter, limit, offset int,
) ([]*entities.Note, int, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.List"))
	log.Debug(ctx, "listing notes", zap.Int64("ownerID", ownerID), zap.Int("limit", limit), zap.Int("offset", offset))

	where, args := filterClause(ownerID, filter)

	var totalCount int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM notes WHERE `+where, args...).Scan(&totalCount)
	if err != nil {
		log.Error(ctx, "failed to count notes", zap.Error(err))
		return nil, 0, fmt.Errorf("failed to count notes: %w", err)
	}

	notes := make([]*entities.Note, 0, limit)
	if totalCount == 0 || offset >= totalCount {
		return notes, totalCount, nil
	}

	n := len(args)
	args = append(args, limit, offset)
	rows, err := r.pool.Query(ctx,
		fmt.Sprintf(`SELECT %s FROM notes WHERE %s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`,
			noteColumns, where, n+1, n+2),
		args...,
	)
	if err != nil {
		log.Error(ctx, "failed to list notes", zap.Error(err))
		return nil, 0, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			log.Error(ctx, "failed to scan note", zap.Error(err))
			return nil, 0, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, note)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating rows", zap.Error(err))
		return nil, 0, fmt.Errorf("error iterating rows: %w", err)
	}

	return notes, totalCount, nil
}

// TagLists возвращает закодированные списки тегов всех заметок владельца.
func (r *NoteRepository) TagLists(ctx context.Context, ownerID int64) ([]string, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.TagLists"))

	rows, err := r.pool.Query(ctx, `SELECT tags FROM notes WHERE owner_id = $1`, ownerID)
	if err != nil {
		log.Error(ctx, "failed to query tags", zap.Error(err))
		return nil, fmt.Errorf("failed to query tags: %w", err)
	}
	defer rows.Close()

	lists := make([]string, 0)
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			log.Error(ctx, "failed to scan tags", zap.Error(err))
			return nil, fmt.Errorf("failed to scan tags: %w", err)
		}
		lists = append(lists, raw)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return lists, nil
}

// filterClause строит условие WHERE и его аргументы. Первый аргумент всегда владелец.
// Поиск - ILIKE по заголовку или тексту, тег - точное совпадение элемента JSON-массива.
func filterClause(ownerID int64, filter repositories.NoteFilter) (string, []any) {
	conditions := []string{"owner_id = $1"}
	args := []any{ownerID}

	if filter.Search != "" {
		args = append(args, "%"+escapeLike(filter.Search)+"%")
		n := len(args)
		conditions = append(conditions, fmt.Sprintf("(title ILIKE $%d OR content ILIKE $%d)", n, n))
	}

	if filter.Tag != "" {
		args = append(args, filter.Tag)
		conditions = append(conditions,
			fmt.Sprintf("notes_tags_jsonb(tags) @> jsonb_build_array($%d::text)", len(args)))
	}

	return strings.Join(conditions, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(value string) string {
	return likeEscaper.Replace(value)
}

func scanNote(row pgx.Row) (*entities.Note, error) {
	var (
		note      entities.Note
		rawImages string
		rawTags   string
	)
	if err := row.Scan(
		&note.ID,
		&note.OwnerID,
		&note.Title,
		&note.Content,
		&rawImages,
		&rawTags,
		&note.CreatedAt,
	); err != nil {
		return nil, err
	}

	note.Images = tags.DecodeImages(rawImages)
	note.Tags = tags.Decode(rawTags)
	return &note, nil
}
