package entities_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"notebook/internal/notebook/domain/entities"
)

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		totalCount int
		want       entities.Pagination
	}{
		{
			name: "first of three", page: 1, totalCount: 12,
			want: entities.Pagination{CurrentPage: 1, TotalPages: 3, TotalCount: 12, HasNextPage: true},
		},
		{
			name: "last of three", page: 3, totalCount: 12,
			want: entities.Pagination{CurrentPage: 3, TotalPages: 3, TotalCount: 12, HasPrevPage: true},
		},
		{
			name: "exact multiple", page: 2, totalCount: 10,
			want: entities.Pagination{CurrentPage: 2, TotalPages: 2, TotalCount: 10, HasPrevPage: true},
		},
		{
			name: "empty", page: 1, totalCount: 0,
			want: entities.Pagination{CurrentPage: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, entities.NewPagination(tt.page, tt.totalCount))
		})
	}
}

func TestRemovedImages(t *testing.T) {
	before := []string{"a", "b", "c"}
	after := []string{"c", "d"}

	assert.Equal(t, []string{"a", "b"}, entities.RemovedImages(before, after))
	assert.Empty(t, entities.RemovedImages(nil, after))
}

func TestNewAccount(t *testing.T) {
	account := entities.NewAccount(&entities.Identity{ExternalID: "ext-1", Email: "a@b.c"})
	assert.Nil(t, account.Name)

	account = entities.NewAccount(&entities.Identity{ExternalID: "ext-1", Email: "a@b.c", Name: "Ann"})
	if assert.NotNil(t, account.Name) {
		assert.Equal(t, "Ann", *account.Name)
	}
}

func TestValidationError(t *testing.T) {
	err := entities.NewValidationError()
	assert.True(t, err.Empty())

	err.Add("title", "Title is required")
	err.Add("content", "Content is required")

	assert.False(t, err.Empty())
	assert.Equal(t, "validation failed: content: Content is required, title: Title is required", err.Error())
}

func TestRejectionError(t *testing.T) {
	var err error = &entities.RejectionError{Reason: "File must be an image"}

	assert.True(t, errors.Is(err, entities.ErrImageRejected))
	assert.Equal(t, "File must be an image", err.Error())
}
