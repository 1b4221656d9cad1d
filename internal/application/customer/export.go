package customer

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/customer-portal/internal/domain/entity"
)

// ExportMeta datos de cabecera del documento exportado.
type ExportMeta struct {
	GeneratedAt time.Time
	GeneratedBy string // usuario del token; vacío si no se conoce
}

// ListPDFGenerator dibuja el listado de clientes. Implementado por infrastructure/pdf.
type ListPDFGenerator interface {
	GenerateCustomerListPDF(ctx context.Context, customers []entity.Customer, meta ExportMeta) ([]byte, error)
}

// ExportUseCase exporta a PDF la colección tal como la devuelve el servidor.
type ExportUseCase struct {
	list      *ListController
	generator ListPDFGenerator
	now       func() time.Time
}

// NewExportUseCase construye el caso de uso sobre un listado ya cableado al guard.
func NewExportUseCase(list *ListController, generator ListPDFGenerator) *ExportUseCase {
	return &ExportUseCase{list: list, generator: generator, now: time.Now}
}

// Download carga la colección y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil) si todo sale bien.
//   - el error de Load si la carga falla; nunca se exporta una colección vieja.
func (uc *ExportUseCase) Download(ctx context.Context, generatedBy string) (pdfBytes []byte, filename string, err error) {
	if err := uc.list.Load(ctx); err != nil {
		return nil, "", err
	}
	meta := ExportMeta{GeneratedAt: uc.now(), GeneratedBy: generatedBy}

	pdfBytes, err = uc.generator.GenerateCustomerListPDF(ctx, uc.list.Snapshot().Records, meta)
	if err != nil {
		return nil, "", fmt.Errorf("export: generación fallida: %w", err)
	}
	filename = fmt.Sprintf("customers_%s.pdf", meta.GeneratedAt.Format("20060102"))
	return pdfBytes, filename, nil
}
