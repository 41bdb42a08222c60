package get_schedule

import (
	"github.com/m04kA/SMC-LoungeService/internal/domain"
	getSchedule "github.com/m04kA/SMC-LoungeService/internal/usecase/get_schedule"
)

// SlotResponse один слот дня
type SlotResponse struct {
	StartTime string `json:"startTime"` // "2025-10-13 21:30:00"
	EndTime   string `json:"endTime"`
	Label     string `json:"label"` // "21:30~22:00"
}

// LoungeResponse лаунж в сетке
type LoungeResponse struct {
	ID     int64 `json:"id"`
	Number int   `json:"number"`
}

// CellResponse занятая ячейка сетки
type CellResponse struct {
	LoungeID      int64  `json:"loungeId"`
	SlotStart     string `json:"slotStart"`
	ReservationID int64  `json:"reservationId"`
	OwnerID       int64  `json:"ownerId"`
	DisplayText   string `json:"displayText"`
}

// ScheduleResponse сетка дня. Свободные ячейки не перечисляются:
// ячейка без записи в cells свободна.
type ScheduleResponse struct {
	Date    string           `json:"date"`
	Slots   []SlotResponse   `json:"slots"`
	Lounges []LoungeResponse `json:"lounges"`
	Cells   []CellResponse   `json:"cells"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getSchedule.Response) *ScheduleResponse {
	out := &ScheduleResponse{
		Date:    resp.Date.Format(domain.DateFormat),
		Slots:   make([]SlotResponse, 0, len(resp.Slots)),
		Lounges: make([]LoungeResponse, 0, len(resp.Lounges)),
		Cells:   make([]CellResponse, 0, len(resp.Cells)),
	}

	for _, slot := range resp.Slots {
		out.Slots = append(out.Slots, SlotResponse{
			StartTime: slot.Start.Format(domain.DateTimeFormat),
			EndTime:   slot.End.Format(domain.DateTimeFormat),
			Label:     slot.Label,
		})
	}
	for _, lounge := range resp.Lounges {
		out.Lounges = append(out.Lounges, LoungeResponse{ID: lounge.ID, Number: lounge.Number})
	}
	for _, cell := range resp.Cells {
		if cell.ReservationID == 0 {
			continue
		}
		out.Cells = append(out.Cells, CellResponse{
			LoungeID:      cell.LoungeID,
			SlotStart:     cell.SlotStart.Format(domain.DateTimeFormat),
			ReservationID: cell.ReservationID,
			OwnerID:       cell.OwnerID,
			DisplayText:   cell.DisplayText,
		})
	}
	return out
}
