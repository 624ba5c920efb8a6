package repositories

import (
	"context"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
)

func TestTenantListNames(t *testing.T) {
	mock, err := pgxmock.NewPool()
	assert.NoError(t, err)
	defer mock.Close()

	repo := NewTenantRepository(mock)

	mock.ExpectQuery(`SELECT DISTINCT tenant FROM containers ORDER BY tenant`).
		WillReturnRows(pgxmock.NewRows([]string{"tenant"}).
			AddRow("Acme").
			AddRow("Beta Corp"))

	names, err := repo.ListNames(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, []string{"Acme", "Beta Corp"}, names)
}
