package entity

import "time"

// Wedding - корень тенанта: все задачи принадлежат ровно одной свадьбе
type Wedding struct {
	ID           string     `json:"id"`
	OrganizerID  string     `json:"organizer_id"`
	WeddingTitle string     `json:"wedding_title"`
	Partner1Name *string    `json:"partner1_name"`
	Partner2Name *string    `json:"partner2_name"`
	WeddingDate  *time.Time `json:"wedding_date"`
	Location     *string    `json:"location"`
	CreatedAt    time.Time  `json:"created_at"`
}

// WeddingSummary - свадьба в ответе /api/tasks
type WeddingSummary struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	OrganizerID string  `json:"organizerId"`
	Partner1    *string `json:"partner1"`
	Partner2    *string `json:"partner2"`
	Location    *string `json:"location"`
	WeddingDate *string `json:"weddingDate"`
	Couple      string  `json:"couple"`
}

// Summary - собирает карточку свадьбы; couple = "P1 & P2", если оба партнёра
// заполнены, иначе заголовок
func (w *Wedding) Summary() WeddingSummary {
	couple := w.WeddingTitle
	if w.Partner1Name != nil && *w.Partner1Name != "" && w.Partner2Name != nil && *w.Partner2Name != "" {
		couple = *w.Partner1Name + " & " + *w.Partner2Name
	}

	var weddingDate *string
	if w.WeddingDate != nil {
		d := w.WeddingDate.Format("2006-01-02")
		weddingDate = &d
	}

	return WeddingSummary{
		ID:          w.ID,
		Title:       w.WeddingTitle,
		OrganizerID: w.OrganizerID,
		Partner1:    w.Partner1Name,
		Partner2:    w.Partner2Name,
		Location:    w.Location,
		WeddingDate: weddingDate,
		Couple:      couple,
	}
}

// валидация
type CreateWeddingRequest struct {
	WeddingTitle string `json:"weddingTitle" validate:"required, min=1, max=255"`
	Partner1Name string `json:"partner1Name"`
	Partner2Name string `json:"partner2Name"`
	WeddingDate  string `json:"weddingDate"`
	Location     string `json:"location"`
}
