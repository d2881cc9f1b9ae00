package policy

import (
	"context"
	"fmt"
	"time"

	"github.com/LuWes17/infomatik-api/internal/domain"
	"github.com/LuWes17/infomatik-api/internal/pkg/id"
)

type Service interface {
	List(ctx context.Context, policyType string) ([]domain.Policy, error)
	Get(ctx context.Context, policyID string) (*domain.Policy, error)
	Create(ctx context.Context, req domain.CreatePolicyRequest) (*domain.Policy, error)
	Update(ctx context.Context, policyID string, req domain.UpdatePolicyRequest) (*domain.Policy, error)
	Delete(ctx context.Context, policyID string) error
}

type policyStore interface {
	Put(ctx context.Context, p *domain.Policy) error
	Get(ctx context.Context, policyID string) (*domain.Policy, error)
	List(ctx context.Context, policyType string) ([]domain.Policy, error)
	Update(ctx context.Context, policyID string, updates map[string]interface{}) error
	Delete(ctx context.Context, policyID string) error
}

type service struct {
	policies policyStore
}

func NewService(policies policyStore) Service {
	return &service{policies: policies}
}

func (s *service) List(ctx context.Context, policyType string) ([]domain.Policy, error) {
	if policyType != "" && policyType != domain.PolicyOrdinance && policyType != domain.PolicyResolution {
		return nil, fmt.Errorf("unknown policy type %q: %w", policyType, domain.ErrBadRequest)
	}
	return s.policies.List(ctx, policyType)
}

func (s *service) Get(ctx context.Context, policyID string) (*domain.Policy, error) {
	return s.policies.Get(ctx, policyID)
}

func (s *service) Create(ctx context.Context, req domain.CreatePolicyRequest) (*domain.Policy, error) {
	enacted, err := time.Parse("2006-01-02", req.EnactedAt)
	if err != nil {
		return nil, fmt.Errorf("enactedAt must be YYYY-MM-DD: %w", domain.ErrBadRequest)
	}
	now := time.Now().UTC()
	p := &domain.Policy{
		PolicyID:  id.New(),
		Type:      req.Type,
		Number:    req.Number,
		Title:     req.Title,
		Summary:   req.Summary,
		FullText:  req.FullText,
		EnactedAt: enacted,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.policies.Put(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) Update(ctx context.Context, policyID string, req domain.UpdatePolicyRequest) (*domain.Policy, error) {
	updates := map[string]interface{}{}
	if req.Number != nil {
		updates["number"] = *req.Number
	}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Summary != nil {
		updates["summary"] = *req.Summary
	}
	if req.FullText != nil {
		updates["full_text"] = *req.FullText
	}
	if len(updates) > 0 {
		if err := s.policies.Update(ctx, policyID, updates); err != nil {
			return nil, err
		}
	}
	return s.policies.Get(ctx, policyID)
}

func (s *service) Delete(ctx context.Context, policyID string) error {
	return s.policies.Delete(ctx, policyID)
}
