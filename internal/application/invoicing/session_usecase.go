package invoicing

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/invoicepro/internal/application/dto"
	"github.com/jhoicas/invoicepro/internal/domain/document"
	"github.com/jhoicas/invoicepro/internal/domain/entity"
	"github.com/jhoicas/invoicepro/pkg/money"
)

// SessionConfig parámetros de las facturas nuevas y de la vista previa.
type SessionConfig struct {
	DueDays int
	Brand   string
	Money   *money.Formatter
	Now     func() time.Time
}

// SessionUseCase opera sobre la factura de una sesión. Cada método toma la sesión en
// exclusiva, aplica la mutación completa y devuelve el estado resultante.
type SessionUseCase struct {
	repo SessionRepository
	cfg  SessionConfig
}

// NewSessionUseCase construye el caso de uso.
func NewSessionUseCase(repo SessionRepository, cfg SessionConfig) *SessionUseCase {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Money == nil {
		cfg.Money = money.Default()
	}
	if cfg.Brand == "" {
		cfg.Brand = document.DefaultBrand
	}
	return &SessionUseCase{repo: repo, cfg: cfg}
}

// Create abre una sesión con una factura nueva.
func (uc *SessionUseCase) Create() (*dto.InvoiceResponse, error) {
	now := uc.cfg.Now()
	s := &entity.Session{
		ID:        uuid.NewString(),
		Invoice:   entity.NewInvoice(entity.InvoiceOptions{Now: now, DueDays: uc.cfg.DueDays}),
		CreatedAt: now,
		LastSeen:  now,
	}
	if err := uc.repo.Create(s); err != nil {
		return nil, fmt.Errorf("crear sesión: %w", err)
	}
	return toInvoiceResponse(s), nil
}

// Get devuelve el estado actual de la factura.
func (uc *SessionUseCase) Get(sessionID string) (*dto.InvoiceResponse, error) {
	return uc.mutate(sessionID, func(*entity.Invoice) error { return nil })
}

// Delete descarta la sesión y su factura.
func (uc *SessionUseCase) Delete(sessionID string) error {
	return uc.repo.Delete(sessionID)
}

// Active número de sesiones abiertas.
func (uc *SessionUseCase) Active() int {
	return uc.repo.Count()
}

// SetField reemplaza un campo de cabecera.
func (uc *SessionUseCase) SetField(sessionID string, in dto.SetFieldRequest) (*dto.InvoiceResponse, error) {
	return uc.mutate(sessionID, func(inv *entity.Invoice) error {
		return inv.SetField(entity.HeaderField(in.Field), in.Value)
	})
}

// SetItemField reemplaza un campo de una línea; un itemID inexistente no hace nada.
func (uc *SessionUseCase) SetItemField(sessionID, itemID string, in dto.SetFieldRequest) (*dto.InvoiceResponse, error) {
	return uc.mutate(sessionID, func(inv *entity.Invoice) error {
		return inv.SetItemField(itemID, entity.ItemField(in.Field), in.Value)
	})
}

// AddItem agrega una línea en blanco al final.
func (uc *SessionUseCase) AddItem(sessionID string) (*dto.InvoiceResponse, error) {
	return uc.mutate(sessionID, func(inv *entity.Invoice) error {
		inv.AddItem()
		return nil
	})
}

// RemoveItem elimina una línea salvo que sea la última.
func (uc *SessionUseCase) RemoveItem(sessionID, itemID string) (*dto.InvoiceResponse, error) {
	return uc.mutate(sessionID, func(inv *entity.Invoice) error {
		inv.RemoveItem(itemID)
		return nil
	})
}

// Totals subtotal, impuestos y total de la factura.
func (uc *SessionUseCase) Totals(sessionID string) (*dto.TotalsResponse, error) {
	out, err := uc.Get(sessionID)
	if err != nil {
		return nil, err
	}
	return &out.Totals, nil
}

// Preview arma la vista previa con importes formateados con símbolo.
func (uc *SessionUseCase) Preview(sessionID string) (*dto.PreviewResponse, error) {
	var out *dto.PreviewResponse
	err := uc.repo.With(sessionID, func(s *entity.Session) error {
		s.LastSeen = uc.cfg.Now()
		out = uc.toPreview(s.Invoice)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Snapshot copia de la factura tomada en exclusiva.
func (uc *SessionUseCase) Snapshot(sessionID string) (entity.Invoice, error) {
	var snap entity.Invoice
	err := uc.repo.With(sessionID, func(s *entity.Session) error {
		s.LastSeen = uc.cfg.Now()
		snap = s.Invoice.Snapshot()
		return nil
	})
	return snap, err
}

func (uc *SessionUseCase) mutate(sessionID string, fn func(inv *entity.Invoice) error) (*dto.InvoiceResponse, error) {
	var out *dto.InvoiceResponse
	err := uc.repo.With(sessionID, func(s *entity.Session) error {
		if err := fn(s.Invoice); err != nil {
			return err
		}
		s.LastSeen = uc.cfg.Now()
		out = toInvoiceResponse(s)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func toPartyDTO(p entity.Party) dto.PartyDTO {
	return dto.PartyDTO{Name: p.Name, Address: p.Address, GSTIN: p.GSTIN, Email: p.Email, Phone: p.Phone}
}

func toInvoiceResponse(s *entity.Session) *dto.InvoiceResponse {
	inv := s.Invoice
	items := make([]dto.LineItemDTO, 0, len(inv.Items))
	for _, it := range inv.Items {
		items = append(items, dto.LineItemDTO{
			ID:          it.ID,
			Description: it.Description,
			HSNCode:     it.HSNCode,
			Quantity:    it.Quantity,
			Rate:        it.Rate,
			TaxRate:     it.TaxRate,
			TaxType:     string(it.TaxType),
			Amount:      it.Amount(),
		})
	}
	return &dto.InvoiceResponse{
		SessionID:     s.ID,
		InvoiceNumber: inv.Number,
		InvoiceDate:   inv.InvoiceDate,
		DueDate:       inv.DueDate,
		From:          toPartyDTO(inv.From),
		To:            toPartyDTO(inv.To),
		Items:         items,
		Notes:         inv.Notes,
		Totals: dto.TotalsResponse{
			Subtotal:   inv.Subtotal(),
			TaxTotal:   inv.TaxTotal(),
			GrandTotal: inv.GrandTotal(),
		},
	}
}

func previewDate(s string) string {
	if s == "" {
		return ""
	}
	if d, err := document.FormatDate(s); err == nil {
		return d
	}
	return s
}

func toPreviewParty(p entity.Party) dto.PreviewPartyDTO {
	return dto.PreviewPartyDTO{
		Name:         p.Name,
		AddressLines: document.SplitLines(p.Address),
		GSTIN:        p.GSTIN,
		Email:        p.Email,
		Phone:        p.Phone,
	}
}

func (uc *SessionUseCase) toPreview(inv *entity.Invoice) *dto.PreviewResponse {
	fm := uc.cfg.Money
	lines := make([]dto.PreviewLineDTO, 0, len(inv.Items))
	for _, it := range inv.Items {
		lines = append(lines, dto.PreviewLineDTO{
			Description: it.Description,
			HSNCode:     it.HSNCode,
			Quantity:    it.Quantity,
			Rate:        fm.Format(it.Rate),
			Tax:         it.TaxRate.String() + "%",
			Amount:      fm.Format(it.Amount()),
		})
	}
	out := &dto.PreviewResponse{
		Brand:         uc.cfg.Brand,
		InvoiceNumber: inv.Number,
		InvoiceDate:   previewDate(inv.InvoiceDate),
		DueDate:       previewDate(inv.DueDate),
		From:          toPreviewParty(inv.From),
		To:            toPreviewParty(inv.To),
		Lines:         lines,
		Subtotal:      fm.Format(inv.Subtotal()),
		TaxTotal:      fm.Format(inv.TaxTotal()),
		GrandTotal:    fm.Format(inv.GrandTotal()),
		Filename:      document.Filename(inv.Number),
	}
	if inv.Notes != "" {
		out.NotesLines = document.SplitLines(inv.Notes)
	}
	return out
}
