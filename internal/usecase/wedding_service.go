package usecase

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/wedlux/planner-service/internal/entity"
	"github.com/wedlux/planner-service/internal/repository"
)

type WeddingService struct {
	weddingRepo repository.IWeddingRepository
}

func NewWeddingService(weddingRepo repository.IWeddingRepository) *WeddingService {
	return &WeddingService{
		weddingRepo: weddingRepo,
	}
}

// ListWeddings - свадьбы организатора по возрастанию даты
func (s *WeddingService) ListWeddings(ctx context.Context, userID string) ([]entity.WeddingSummary, error) {
	weddings, err := s.weddingRepo.ListByOrganizer(ctx, userID)
	if err != nil {
		return nil, err
	}

	summaries := make([]entity.WeddingSummary, 0, len(weddings))
	for i := range weddings {
		summaries = append(summaries, weddings[i].Summary())
	}

	return summaries, nil
}

// CreateWedding - создает свадьбу, вызывающий становится организатором
func (s *WeddingService) CreateWedding(ctx context.Context, userID string, req *entity.CreateWeddingRequest) (*entity.WeddingSummary, error) {
	if req.WeddingTitle == "" {
		return nil, entity.ErrTitleRequired
	}

	wedding := &entity.Wedding{
		ID:          uuid.NewString(),
		OrganizerID: userID,
	}
	wedding.WeddingTitle = req.WeddingTitle

	if req.Partner1Name != "" {
		p := req.Partner1Name
		wedding.Partner1Name = &p
	}
	if req.Partner2Name != "" {
		p := req.Partner2Name
		wedding.Partner2Name = &p
	}
	if req.Location != "" {
		l := req.Location
		wedding.Location = &l
	}
	if req.WeddingDate != "" {
		parsed, err := time.Parse("2006-01-02", req.WeddingDate)
		if err != nil {
			log.Printf("⚠️ Невалидная дата свадьбы %q, игнорируем", req.WeddingDate)
		} else {
			wedding.WeddingDate = &parsed
		}
	}

	created, err := s.weddingRepo.Create(ctx, wedding)
	if err != nil {
		return nil, err
	}

	summary := created.Summary()
	return &summary, nil
}
