package customer_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/customer-portal/internal/application/customer"
	"github.com/jhoicas/customer-portal/internal/domain"
	"github.com/jhoicas/customer-portal/internal/domain/entity"
)

type fakeGenerator struct {
	got  []entity.Customer
	meta customer.ExportMeta
	err  error
}

func (g *fakeGenerator) GenerateCustomerListPDF(_ context.Context, list []entity.Customer, meta customer.ExportMeta) ([]byte, error) {
	g.got, g.meta = list, meta
	if g.err != nil {
		return nil, g.err
	}
	return []byte("%PDF-fake"), nil
}

func TestDownload_GeneraConLaColeccionDelServidor(t *testing.T) {
	f := newFixture("abc", &fakeRepo{lists: []listResult{{list: []entity.Customer{budi, ani}}}})
	gen := &fakeGenerator{}

	b, name, err := customer.NewExportUseCase(f.list, gen).Download(context.Background(), "admin")

	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-fake"), b)
	assert.Regexp(t, `^customers_\d{8}\.pdf$`, name)
	assert.Equal(t, []entity.Customer{budi, ani}, gen.got)
	assert.Equal(t, "admin", gen.meta.GeneratedBy)
}

func TestDownload_FalloDeCargaNoGenera(t *testing.T) {
	f := newFixture("abc", &fakeRepo{lists: []listResult{
		{err: &domain.APIError{Kind: domain.KindTransportFailure, Message: "server unreachable"}},
	}})
	gen := &fakeGenerator{}

	_, _, err := customer.NewExportUseCase(f.list, gen).Download(context.Background(), "")

	assert.ErrorIs(t, err, domain.ErrTransportFailure)
	assert.Nil(t, gen.got)
}

func TestDownload_ErrorDelGenerador(t *testing.T) {
	f := newFixture("abc", &fakeRepo{lists: []listResult{{list: []entity.Customer{ani}}}})
	boom := errors.New("boom")

	_, _, err := customer.NewExportUseCase(f.list, &fakeGenerator{err: boom}).Download(context.Background(), "")

	assert.ErrorIs(t, err, boom)
}
