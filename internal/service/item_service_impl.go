package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pollfund/backend/internal/model"
	"github.com/pollfund/backend/internal/registry"
	"github.com/pollfund/backend/internal/repository"
	"github.com/pollfund/backend/internal/treasury"
)

// itemService は ItemService の実装
type itemService struct {
	items    repository.ItemRepository
	projects repository.ProjectRepository
	reg      *registry.Registry
	bank     treasury.Treasury
	events   *eventRecorder
	locks    itemLocker
	createMu sync.Mutex
	now      func() time.Time
}

// NewItemService は ItemService を生成する
func NewItemService(items repository.ItemRepository, projects repository.ProjectRepository, reg *registry.Registry, bank treasury.Treasury, events repository.EventRepository) ItemService {
	return &itemService{
		items:    items,
		projects: projects,
		reg:      reg,
		bank:     bank,
		events:   newEventRecorder(events),
		now:      time.Now,
	}
}

// Create validates everything before allocating an id, so failed creates
// never burn identifiers and the id sequence stays dense.
func (s *itemService) Create(ctx context.Context, kind model.ItemKind, title, description, creator string, projectID uint64, duration time.Duration) (*model.Item, error) {
	if duration <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive", ErrInvalidArgument)
	}
	if kind != model.KindPoll && kind != model.KindSurvey {
		return nil, fmt.Errorf("%w: unknown item kind %q", ErrInvalidArgument, kind)
	}

	s.createMu.Lock()
	defer s.createMu.Unlock()

	var project *model.Project
	if projectID != 0 {
		p, err := s.projects.GetByID(ctx, projectID)
		if err != nil {
			return nil, err
		}
		if !p.Active {
			return nil, fmt.Errorf("%w: project %d is inactive", ErrInvalidState, projectID)
		}
		project = p
	}

	now := s.now()
	item := &model.Item{
		ID:          s.reg.NextItemID(),
		Kind:        kind,
		Title:       title,
		Description: description,
		Creator:     creator,
		ProjectID:   projectID,
		CreatedAt:   now,
		EndTime:     now.Add(duration),
		Status:      model.StatusActive,
	}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, err
	}

	if project != nil {
		if kind == model.KindSurvey {
			project.SurveyIDs = append(project.SurveyIDs, item.ID)
		} else {
			project.PollIDs = append(project.PollIDs, item.ID)
		}
		if err := s.projects.Update(ctx, project); err != nil {
			return nil, err
		}
	}

	eventType := model.EventPollCreated
	if kind == model.KindSurvey {
		eventType = model.EventSurveyCreated
	}
	s.events.record(ctx, &model.Event{
		Type:      eventType,
		ItemID:    item.ID,
		ProjectID: projectID,
		Actor:     creator,
		Name:      title,
	})
	return item, nil
}

func (s *itemService) Get(ctx context.Context, id uint64) (*model.Item, error) {
	if id == 0 {
		return nil, repository.ErrNotFound
	}
	return s.items.GetByID(ctx, id)
}

// Fund deposits amount into the item's pool. Active items only.
func (s *itemService) Fund(ctx context.Context, id uint64, funder string, amount int64) error {
	unlock := s.locks.lock(id)
	defer unlock()

	item, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if item.Status != model.StatusActive {
		return fmt.Errorf("%w: item is %s", ErrInvalidState, item.Status)
	}
	if amount <= 0 {
		return fmt.Errorf("%w: funding amount must be positive", ErrInvalidArgument)
	}

	if err := s.bank.Deposit(ctx, funder, amount); err != nil {
		return fmt.Errorf("%w: %v", ErrTransferFailed, err)
	}
	item.FundingPool += amount
	if err := s.items.Update(ctx, item); err != nil {
		return err
	}

	s.events.record(ctx, &model.Event{
		Type:   model.EventItemFunded,
		ItemID: item.ID,
		Actor:  funder,
		Amount: amount,
	})
	return nil
}

// Respond records a unique response from caller. One response per
// address per item, regardless of the parent project's state.
func (s *itemService) Respond(ctx context.Context, id uint64, caller string) error {
	unlock := s.locks.lock(id)
	defer unlock()

	item, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if item.Status != model.StatusActive {
		return fmt.Errorf("%w: item is %s", ErrInvalidState, item.Status)
	}
	if !s.now().Before(item.EndTime) {
		return fmt.Errorf("%w: response window closed", ErrInvalidState)
	}
	if !item.AddResponder(caller) {
		return fmt.Errorf("%w: already responded", ErrInvalidState)
	}
	if err := s.items.Update(ctx, item); err != nil {
		return err
	}

	s.events.record(ctx, &model.Event{
		Type:   model.EventItemResponded,
		ItemID: item.ID,
		Actor:  caller,
	})
	return nil
}

// End closes an Active item. The creator may end at any time; anyone may
// end once the deadline has passed (self-closing, no trusted closer).
func (s *itemService) End(ctx context.Context, id uint64, caller string) error {
	unlock := s.locks.lock(id)
	defer unlock()

	item, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if item.Status != model.StatusActive {
		return fmt.Errorf("%w: item is %s", ErrInvalidState, item.Status)
	}
	if caller != item.Creator && s.now().Before(item.EndTime) {
		return fmt.Errorf("%w: only the creator may end before the deadline", ErrForbidden)
	}

	item.Status = model.StatusEnded
	if err := s.items.Update(ctx, item); err != nil {
		return err
	}

	s.events.record(ctx, &model.Event{
		Type:   model.EventItemEnded,
		ItemID: item.ID,
	})
	return nil
}

// Cancel terminates an Active item and refunds the full pool to the
// creator in a single payout. Bookkeeping is committed before the
// transfer; a rejected transfer rolls the whole operation back.
func (s *itemService) Cancel(ctx context.Context, id uint64, caller string) error {
	unlock := s.locks.lock(id)
	defer unlock()

	item, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if item.Status != model.StatusActive {
		return fmt.Errorf("%w: item is %s", ErrInvalidState, item.Status)
	}
	if caller != item.Creator {
		return fmt.Errorf("%w: only the creator may cancel", ErrForbidden)
	}

	snapshot := item.Clone()
	refund := item.FundingPool
	item.Status = model.StatusCancelled
	item.FundingPool = 0
	if err := s.items.Update(ctx, item); err != nil {
		return err
	}

	if refund > 0 {
		if err := s.bank.Payout(ctx, item.Creator, refund); err != nil {
			if rbErr := s.items.Update(ctx, snapshot); rbErr != nil {
				return fmt.Errorf("rollback after failed refund: %w", rbErr)
			}
			return fmt.Errorf("%w: %v", ErrTransferFailed, err)
		}
	}

	s.events.record(ctx, &model.Event{
		Type:   model.EventItemCancelled,
		ItemID: item.ID,
		Amount: refund,
	})
	return nil
}

// ClaimReward pays caller its equal share of the remaining pool:
// share = pool / totalResponses, floored. The pool shrinks per claim
// while totalResponses stays fixed, so later claimants receive smaller
// amounts (sequential drift). Each responder may claim at most once.
func (s *itemService) ClaimReward(ctx context.Context, id uint64, caller string) (int64, error) {
	unlock := s.locks.lock(id)
	defer unlock()

	item, err := s.Get(ctx, id)
	if err != nil {
		return 0, err
	}
	if item.Status != model.StatusEnded {
		return 0, fmt.Errorf("%w: item is %s", ErrInvalidState, item.Status)
	}
	if !item.HasResponded(caller) {
		return 0, fmt.Errorf("%w: caller did not respond", ErrForbidden)
	}
	if item.HasClaimed(caller) {
		return 0, fmt.Errorf("%w: reward already claimed", ErrInvalidState)
	}

	share := item.PotentialReward()
	if share == 0 {
		return 0, ErrRewardTooSmall
	}

	snapshot := item.Clone()
	item.FundingPool -= share
	item.MarkClaimed(caller)
	if err := s.items.Update(ctx, item); err != nil {
		return 0, err
	}

	if err := s.bank.Payout(ctx, caller, share); err != nil {
		if rbErr := s.items.Update(ctx, snapshot); rbErr != nil {
			return 0, fmt.Errorf("rollback after failed claim payout: %w", rbErr)
		}
		return 0, fmt.Errorf("%w: %v", ErrTransferFailed, err)
	}

	s.events.record(ctx, &model.Event{
		Type:   model.EventRewardClaimed,
		ItemID: item.ID,
		Actor:  caller,
		Amount: share,
	})
	return share, nil
}

func (s *itemService) HasResponded(ctx context.Context, id uint64, addr string) (bool, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return false, err
	}
	return item.HasResponded(addr), nil
}

func (s *itemService) Responders(ctx context.Context, id uint64) ([]string, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return item.Responders, nil
}

// PotentialReward is the read-only projection of the claim formula.
// Returns 0 without error when the pool is empty or nobody responded.
func (s *itemService) PotentialReward(ctx context.Context, id uint64) (int64, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return 0, err
	}
	return item.PotentialReward(), nil
}

func (s *itemService) ListByCreator(ctx context.Context, creator string) ([]*model.Item, error) {
	return s.items.ListByCreator(ctx, creator)
}
