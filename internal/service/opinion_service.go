package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "alemsite/internal/errors"
	"alemsite/internal/model"
	"alemsite/internal/repository"
)

// SubmitOpinionInput is a visitor's opinion submission.
type SubmitOpinionInput struct {
	Name     string
	Email    string
	Location string
	Title    string
	Text     string
	Rating   int
}

// OpinionService handles visitor opinions: public submission and browsing of
// approved entries, plus dashboard moderation.
type OpinionService interface {
	Submit(ctx context.Context, in SubmitOpinionInput) (*model.Opinion, error)
	// ListApproved returns approved opinions with submitter emails stripped.
	ListApproved(ctx context.Context) ([]model.Opinion, error)
	ListAll(ctx context.Context, approved *bool) ([]model.Opinion, error)
	SetApproval(ctx context.Context, id uuid.UUID, approved bool) (*model.Opinion, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type opinionService struct {
	opinionRepo repository.OpinionRepository
}

// NewOpinionService creates a new opinion service.
func NewOpinionService(opinionRepo repository.OpinionRepository) OpinionService {
	return &opinionService{opinionRepo: opinionRepo}
}

// Submit stores a new opinion awaiting approval.
func (s *opinionService) Submit(ctx context.Context, in SubmitOpinionInput) (*model.Opinion, error) {
	title := in.Title
	if title == "" {
		title = "Visitor"
	}
	rating := in.Rating
	if rating < 1 || rating > 5 {
		rating = 5
	}

	opinion := &model.Opinion{
		Name:     in.Name,
		Email:    in.Email,
		Location: in.Location,
		Title:    title,
		Text:     in.Text,
		Rating:   rating,
	}
	if err := s.opinionRepo.Create(ctx, opinion); err != nil {
		return nil, fmt.Errorf("create opinion: %w", err)
	}
	return opinion, nil
}

func (s *opinionService) ListApproved(ctx context.Context) ([]model.Opinion, error) {
	approved := true
	opinions, err := s.opinionRepo.List(ctx, &approved)
	if err != nil {
		return nil, fmt.Errorf("list opinions: %w", err)
	}
	// Submitter emails stay private on the public listing.
	for i := range opinions {
		opinions[i].Email = ""
	}
	return opinions, nil
}

func (s *opinionService) ListAll(ctx context.Context, approved *bool) ([]model.Opinion, error) {
	opinions, err := s.opinionRepo.List(ctx, approved)
	if err != nil {
		return nil, fmt.Errorf("list opinions: %w", err)
	}
	return opinions, nil
}

func (s *opinionService) SetApproval(ctx context.Context, id uuid.UUID, approved bool) (*model.Opinion, error) {
	opinion, err := s.opinionRepo.SetApproval(ctx, id, approved)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrOpinionNotFound
		}
		return nil, fmt.Errorf("update opinion: %w", err)
	}
	return opinion, nil
}

func (s *opinionService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.opinionRepo.Delete(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrOpinionNotFound
		}
		return fmt.Errorf("delete opinion: %w", err)
	}
	return nil
}
