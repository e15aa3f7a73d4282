package validation_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notebook/internal/notebook/domain/entities"
	"notebook/internal/notebook/domain/validation"
)

func TestValidateNote(t *testing.T) {
	manyTags := make([]string, 21)
	for i := range manyTags {
		manyTags[i] = fmt.Sprintf("t%d", i)
	}

	tests := []struct {
		name   string
		input  validation.NoteInput
		fields map[string][]string
	}{
		{
			name:  "valid",
			input: validation.NoteInput{Title: "Grocery List", Content: "milk", Tags: []string{"home"}},
		},
		{
			name:  "valid without tags",
			input: validation.NoteInput{Title: strings.Repeat("a", 200), Content: strings.Repeat("b", 10000)},
		},
		{
			name:  "missing title and content",
			input: validation.NoteInput{},
			fields: map[string][]string{
				"title":   {"Title is required"},
				"content": {"Content is required"},
			},
		},
		{
			name:  "too long",
			input: validation.NoteInput{Title: strings.Repeat("a", 201), Content: strings.Repeat("b", 10001)},
			fields: map[string][]string{
				"title":   {"Title must be less than 200 characters"},
				"content": {"Content must be less than 10000 characters"},
			},
		},
		{
			name:  "too many tags",
			input: validation.NoteInput{Title: "t", Content: "c", Tags: manyTags},
			fields: map[string][]string{
				"tags": {"Array must contain at most 20 element(s)"},
			},
		},
		{
			name:  "tag too long",
			input: validation.NoteInput{Title: "t", Content: "c", Tags: []string{"ok", strings.Repeat("x", 51)}},
			fields: map[string][]string{
				"tags": {"String must contain at most 50 character(s)"},
			},
		},
		{
			name:  "empty tag",
			input: validation.NoteInput{Title: "t", Content: "c", Tags: []string{""}},
			fields: map[string][]string{
				"tags": {"String must contain at least 1 character(s)"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.ValidateNote(tt.input)
			if tt.fields == nil {
				assert.NoError(t, err)
				return
			}

			var validationErr *entities.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.fields, validationErr.Fields)
		})
	}
}
