package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "alemsite/internal/errors"
	"alemsite/internal/model"
)

func TestOpinionService_Submit_Defaults(t *testing.T) {
	tests := []struct {
		name           string
		title          string
		rating         int
		expectedTitle  string
		expectedRating int
	}{
		{"defaults applied", "", 0, "Visitor", 5},
		{"rating above range", "Imam", 9, "Imam", 5},
		{"rating below range", "Imam", -1, "Imam", 5},
		{"values kept", "Student", 3, "Student", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opinions := new(MockOpinionRepository)
			opinions.On("Create", mock.Anything, mock.AnythingOfType("*model.Opinion")).Return(nil)

			svc := NewOpinionService(opinions)
			opinion, err := svc.Submit(context.Background(), SubmitOpinionInput{
				Name:   "Fatima",
				Email:  "fatima@example.com",
				Title:  tt.title,
				Text:   "Very helpful site",
				Rating: tt.rating,
			})

			assert.NoError(t, err)
			assert.Equal(t, tt.expectedTitle, opinion.Title)
			assert.Equal(t, tt.expectedRating, opinion.Rating)
			assert.False(t, opinion.IsApproved)
		})
	}
}

func TestOpinionService_ListApproved_StripsEmails(t *testing.T) {
	approved := true
	opinions := new(MockOpinionRepository)
	opinions.On("List", mock.Anything, &approved).Return([]model.Opinion{
		{Name: "Fatima", Email: "fatima@example.com", IsApproved: true},
		{Name: "Omar", Email: "omar@example.com", IsApproved: true},
	}, nil)

	svc := NewOpinionService(opinions)
	listed, err := svc.ListApproved(context.Background())

	assert.NoError(t, err)
	assert.Len(t, listed, 2)
	for _, opinion := range listed {
		assert.Empty(t, opinion.Email)
	}
	opinions.AssertExpectations(t)
}

func TestOpinionService_ListAll_KeepsEmails(t *testing.T) {
	opinions := new(MockOpinionRepository)
	opinions.On("List", mock.Anything, (*bool)(nil)).Return([]model.Opinion{
		{Name: "Fatima", Email: "fatima@example.com"},
	}, nil)

	svc := NewOpinionService(opinions)
	listed, err := svc.ListAll(context.Background(), nil)

	assert.NoError(t, err)
	assert.Equal(t, "fatima@example.com", listed[0].Email)
}

func TestOpinionService_SetApproval_NotFound(t *testing.T) {
	opinions := new(MockOpinionRepository)
	opinions.On("SetApproval", mock.Anything, mock.Anything, true).Return(nil, gorm.ErrRecordNotFound)

	svc := NewOpinionService(opinions)
	_, err := svc.SetApproval(context.Background(), uuid.New(), true)
	assert.ErrorIs(t, err, apperrors.ErrOpinionNotFound)
}

func TestOpinionService_Delete(t *testing.T) {
	id := uuid.New()
	opinions := new(MockOpinionRepository)
	opinions.On("Delete", mock.Anything, id).Return(nil).Once()

	svc := NewOpinionService(opinions)
	assert.NoError(t, svc.Delete(context.Background(), id))

	opinions.On("Delete", mock.Anything, id).Return(gorm.ErrRecordNotFound)
	assert.ErrorIs(t, svc.Delete(context.Background(), id), apperrors.ErrOpinionNotFound)
}
