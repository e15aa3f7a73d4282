package app

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"notebook/internal/notebook/domain/entities"
	"notebook/internal/notebook/domain/tags"
	"notebook/internal/notebook/ports/api"
	"notebook/internal/notebook/ports/repositories"
	"notebook/pkg/logger"
)

const (
	methodList      = "ListingUseCase.List"
	methodTagCounts = "ListingUseCase.TagCounts"
	methodOverview  = "ListingUseCase.Overview"

	msgListingNotes = "listing notes"
	msgNotesListed  = "notes listed"
	msgTagsCounted  = "tags counted"
	msgErrListing   = "failed to list notes"
	msgErrTagLists  = "failed to load tag lists"
	msgErrOverview  = "failed to build overview"
)

// maxPage - наибольшая страница, смещение которой помещается в int.
const maxPage = math.MaxInt / entities.PageSize

// ListingUseCaseImpl реализует интерфейс ListingUseCase.
type ListingUseCaseImpl struct {
	noteRepo repositories.NoteRepository
}

// NewListingUseCase создает новый экземпляр ListingUseCaseImpl.
func NewListingUseCase(noteRepo repositories.NoteRepository) api.ListingUseCase {
	return &ListingUseCaseImpl{noteRepo: noteRepo}
}

// List возвращает страницу заметок, подходящих под поиск и тег.
func (uc *ListingUseCaseImpl) List(ctx context.Context, accountID int64, query entities.ListQuery) (*entities.ListResult, error) {
	page := min(max(query.Page, 1), maxPage)
	filter := repositories.NoteFilter{
		Search: strings.TrimSpace(query.Search),
		Tag:    strings.TrimSpace(query.Tag),
	}

	log := logger.Log(ctx).With(zap.String("method", methodList), zap.Int64("accountID", accountID))
	log.Debug(ctx, msgListingNotes,
		zap.Int("page", page), zap.String("search", filter.Search), zap.String("tag", filter.Tag))

	offset := (page - 1) * entities.PageSize
	notes, total, err := uc.noteRepo.List(ctx, accountID, filter, entities.PageSize, offset)
	if err != nil {
		log.Error(ctx, msgErrListing, zap.Error(err))
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	if notes == nil {
		notes = []*entities.Note{}
	}

	log.Debug(ctx, msgNotesListed, zap.Int("count", len(notes)), zap.Int("total", total))
	return &entities.ListResult{
		Notes:      notes,
		Pagination: entities.NewPagination(page, total),
		Filters: entities.Filters{
			Search: optional(filter.Search),
			Tag:    optional(filter.Tag),
		},
	}, nil
}

// TagCounts считает теги по всем заметкам пользователя без учета фильтров.
// Порядок: по убыванию количества, при равенстве по тегу.
func (uc *ListingUseCaseImpl) TagCounts(ctx context.Context, accountID int64) ([]entities.TagCount, error) {
	log := logger.Log(ctx).With(zap.String("method", methodTagCounts), zap.Int64("accountID", accountID))

	lists, err := uc.noteRepo.TagLists(ctx, accountID)
	if err != nil {
		log.Error(ctx, msgErrTagLists, zap.Error(err))
		return nil, fmt.Errorf("failed to load tag lists: %w", err)
	}

	counts := make(map[string]int)
	for _, raw := range lists {
		for _, tag := range tags.Decode(raw) {
			counts[tag]++
		}
	}

	result := make([]entities.TagCount, 0, len(counts))
	for tag, count := range counts {
		result = append(result, entities.TagCount{Tag: tag, Count: count})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Tag < result[j].Tag
	})

	log.Debug(ctx, msgTagsCounted, zap.Int("tags", len(result)))
	return result, nil
}

// Overview загружает страницу заметок и частоты тегов параллельно.
func (uc *ListingUseCaseImpl) Overview(ctx context.Context, accountID int64, query entities.ListQuery) (*entities.Overview, error) {
	var (
		listing *entities.ListResult
		counts  []entities.TagCount
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		listing, err = uc.List(gctx, accountID, query)
		return err
	})
	g.Go(func() error {
		var err error
		counts, err = uc.TagCounts(gctx, accountID)
		return err
	})

	if err := g.Wait(); err != nil {
		logger.Log(ctx).Error(ctx, msgErrOverview, zap.String("method", methodOverview), zap.Error(err))
		return nil, err
	}

	return &entities.Overview{ListResult: listing, Tags: counts}, nil
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
