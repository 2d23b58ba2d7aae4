package services

import (
	"context"
	"io"
	"strconv"
	"strings"
	"time"

	"stockroom/internal/core/domain"
	"stockroom/internal/core/ports"

	"go.uber.org/zap"
)

type inventoryService struct {
	repo     ports.InventoryRepository
	uploader ports.AssetUploader
	events   ports.EventPublisher
	metrics  ports.MetricsRecorder
	logger   *zap.SugaredLogger
}

func NewInventoryService(
	repo ports.InventoryRepository,
	uploader ports.AssetUploader, // can be nil when the asset host is disabled
	events ports.EventPublisher, // can be nil
	metrics ports.MetricsRecorder, // can be nil
	logger *zap.SugaredLogger,
) ports.InventoryService {
	return &inventoryService{
		repo:     repo,
		uploader: uploader,
		events:   events,
		metrics:  metrics,
		logger:   logger,
	}
}

func (s *inventoryService) List(ctx context.Context) (map[domain.ItemID]*domain.Item, error) {
	return s.repo.List(ctx)
}

func (s *inventoryService) Add(ctx context.Context, fields ports.NewItem, image io.Reader, imageName string, owner domain.UserID) (domain.ItemID, error) {
	item := &domain.Item{
		Name:      strings.TrimSpace(fields.Name),
		Quantity:  coerceInt(fields.Quantity),
		Price:     coerceFloat(fields.Price),
		Category:  strings.TrimSpace(fields.Category),
		OwnerUID:  owner,
		CreatedAt: time.Now().UTC(),
	}

	if image != nil {
		if s.uploader == nil {
			s.logger.Debugw("asset host disabled, skipping image upload", "name", item.Name)
		} else if url, err := s.uploader.Upload(ctx, imageName, image); err != nil {
			// Best effort: a broken asset host never blocks item creation.
			s.logger.Warnw("image upload failed", "name", item.Name, "error", err)
			if s.metrics != nil {
				s.metrics.RecordUploadFailure()
			}
		} else {
			item.ImageURL = &url
		}
	}

	id, err := s.repo.Push(ctx, item)
	if err != nil {
		return "", err
	}

	s.publish(domain.ChangeEvent{Type: domain.EventItemAdded, ItemID: id, NewQuantity: &item.Quantity})
	s.record("add")
	s.logger.Infow("item added", "id", id, "name", item.Name, "owner", owner)
	return id, nil
}

func (s *inventoryService) Delete(ctx context.Context, id domain.ItemID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.publish(domain.ChangeEvent{Type: domain.EventItemDeleted, ItemID: id})
	s.record("delete")
	s.logger.Infow("item deleted", "id", id)
	return nil
}

func (s *inventoryService) AdjustQuantity(ctx context.Context, id domain.ItemID, action domain.QuantityAction) (int, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}

	switch {
	case action == domain.ActionIncrease:
		item.Quantity++
	case action == domain.ActionDecrease && item.Quantity > 0:
		item.Quantity--
	default:
		// Decreasing at zero is an invalid action, not a no-op.
		return 0, domain.ErrInvalidAction
	}

	// Get-then-update is not atomic; concurrent adjustments can race. The
	// external store's contract is the only consistency guarantee here.
	if err := s.repo.Update(ctx, item); err != nil {
		return 0, err
	}

	s.publish(domain.ChangeEvent{Type: domain.EventQuantityAdjusted, ItemID: id, NewQuantity: &item.Quantity})
	s.record("adjust_quantity")
	return item.Quantity, nil
}

// Aggregates folds over the full collection in a single pass.
func (s *inventoryService) Aggregates(ctx context.Context) (*domain.AggregateView, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	view := &domain.AggregateView{
		CategoryCounts: make(map[string]int),
		CategoryValues: make(map[string]float64),
	}
	for _, item := range items {
		category := item.Category
		if category == "" {
			category = "Uncategorized"
		}
		value := float64(item.Quantity) * item.Price

		view.TotalValue += value
		view.TotalItems += item.Quantity
		view.CategoryCounts[category] += item.Quantity
		view.CategoryValues[category] += value
	}
	return view, nil
}

func (s *inventoryService) publish(event domain.ChangeEvent) {
	if s.events != nil {
		s.events.PublishChange(event)
	}
}

func (s *inventoryService) record(op string) {
	if s.metrics != nil {
		s.metrics.RecordMutation(op)
	}
}

// coerceInt applies the lenient-input policy for quantities: parse failures
// and negative values normalize to 0, never an error.
func coerceInt(value string) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// coerceFloat applies the lenient-input policy for prices.
func coerceFloat(value string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || f < 0 {
		return 0.0
	}
	return f
}
