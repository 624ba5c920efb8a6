package repositories

import (
	"context"
	"testing"
	"time"

	"vertifarm/internal/common"
	"vertifarm/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

var containerTestColumns = []string{
	"id", "name", "type", "tenant", "purpose", "status", "location_id", "seed_types", "notes",
	"has_alert", "shadow_service_enabled", "ecosystem_connected", "created", "modified",
	"city", "country", "address",
}

func stringPtr(s string) *string { return &s }

// anyArgs returns n wildcard matchers; pgxmock requires the expected argument
// count to match even when the individual values are irrelevant to the test.
func anyArgs(n int) []interface{} {
	args := make([]interface{}, n)
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	return args
}

type ContainerRepoTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	repo    ContainerRepository
	context context.Context
}

func (suite *ContainerRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewContainerRepository(mock)
	suite.context = context.Background()
}

func (suite *ContainerRepoTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestContainerRepoTestSuite(t *testing.T) {
	suite.Run(t, new(ContainerRepoTestSuite))
}

func (suite *ContainerRepoTestSuite) TestList_NoFilters() {
	now := time.Now().UTC()
	locID := uuid.New()

	suite.mock.ExpectQuery(`SELECT COUNT\(\*\) FROM containers c`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(2))

	rows := pgxmock.NewRows(containerTestColumns).
		AddRow("c1", "Farm-A", "physical", "Acme", "production", "active", &locID,
			[]byte(`[{"id":"s1","name":"Basil"}]`), nil, false, false, false, now, now,
			stringPtr("Austin"), stringPtr("US"), nil).
		AddRow("c2", "Farm-B", "virtual", "Beta Corp", "research", "created", nil,
			[]byte(`[]`), nil, true, false, false, now, now.Add(-time.Hour),
			nil, nil, nil)
	suite.mock.ExpectQuery(`ORDER BY c\.modified DESC LIMIT \$1 OFFSET \$2`).
		WithArgs(10, 0).
		WillReturnRows(rows)

	containers, total, err := suite.repo.List(suite.context, &models.ContainerFilter{Skip: 0, Limit: 10})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 2, total)
	assert.Len(suite.T(), containers, 2)

	assert.Equal(suite.T(), "Farm-A", containers[0].Name)
	assert.NotNil(suite.T(), containers[0].Location)
	assert.Equal(suite.T(), "Austin", containers[0].Location.City)
	assert.Len(suite.T(), containers[0].SeedTypes, 1)

	assert.Nil(suite.T(), containers[1].Location)
	assert.Empty(suite.T(), containers[1].SeedTypes)
	assert.True(suite.T(), containers[1].HasAlert)
}

func (suite *ContainerRepoTestSuite) TestList_SearchAndFilters() {
	hasAlerts := true
	filter := &models.ContainerFilter{
		Skip:       10,
		Limit:      5,
		Search:     "farm",
		TypeFilter: "physical",
		HasAlerts:  &hasAlerts,
	}

	suite.mock.ExpectQuery(`SELECT COUNT\(\*\) FROM containers c`).
		WithArgs("%farm%", "physical", true).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(0))
	suite.mock.ExpectQuery(`c\.name ILIKE \$1`).
		WithArgs("%farm%", "physical", true, 5, 10).
		WillReturnRows(pgxmock.NewRows(containerTestColumns))

	containers, total, err := suite.repo.List(suite.context, filter)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 0, total)
	assert.Empty(suite.T(), containers)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *ContainerRepoTestSuite) TestGetByID_NotFound() {
	suite.mock.ExpectQuery(`WHERE c\.id = \$1`).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	container, err := suite.repo.GetByID(suite.context, "missing")
	assert.Nil(suite.T(), container)
	assert.ErrorIs(suite.T(), err, common.ErrContainerNotFound)
}

func (suite *ContainerRepoTestSuite) TestGetByName_NoMatch() {
	suite.mock.ExpectQuery(`WHERE c\.name = \$1`).
		WithArgs("Farm-Z").
		WillReturnError(pgx.ErrNoRows)

	container, err := suite.repo.GetByName(suite.context, "Farm-Z")
	assert.NoError(suite.T(), err)
	assert.Nil(suite.T(), container)
}

func (suite *ContainerRepoTestSuite) TestCreate_PhysicalWithLocation() {
	req := &models.ContainerCreate{
		Name:    "Farm-A",
		Type:    "physical",
		Tenant:  "Acme",
		Purpose: "production",
		Location: &models.LocationPayload{
			City:    "Austin",
			Country: "US",
		},
		SeedTypes: []models.SeedType{{ID: "s1", Name: "Basil"}},
	}

	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(`INSERT INTO locations`).
		WithArgs(pgxmock.AnyArg(), "Austin", "US", (*string)(nil)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectExec(`INSERT INTO containers`).
		WithArgs(anyArgs(14)...).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectCommit()

	container, err := suite.repo.Create(suite.context, req)
	assert.NoError(suite.T(), err)
	assert.NotEmpty(suite.T(), container.ID)
	assert.Equal(suite.T(), models.ContainerStatusCreated, container.Status)
	assert.NotNil(suite.T(), container.LocationID)
	assert.NotNil(suite.T(), container.Location)
	assert.Equal(suite.T(), "Austin", container.Location.City)
	assert.False(suite.T(), container.EcosystemConnected)
	assert.Equal(suite.T(), container.Created, container.Modified)
}

func (suite *ContainerRepoTestSuite) TestCreate_VirtualIgnoresLocation() {
	req := &models.ContainerCreate{
		Name:    "Sim-1",
		Type:    "virtual",
		Tenant:  "Acme",
		Purpose: "development",
		Location: &models.LocationPayload{
			City:    "Austin",
			Country: "US",
		},
		Settings: models.ContainerSettings{
			Ecosystem: map[string]any{"provider": "farmos"},
		},
	}

	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(`INSERT INTO containers`).
		WithArgs(anyArgs(14)...).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectCommit()

	container, err := suite.repo.Create(suite.context, req)
	assert.NoError(suite.T(), err)
	assert.Nil(suite.T(), container.LocationID)
	assert.Nil(suite.T(), container.Location)
	assert.True(suite.T(), container.EcosystemConnected)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *ContainerRepoTestSuite) TestCreate_UniqueViolationMapsToDuplicateName() {
	req := &models.ContainerCreate{
		Name:    "Farm-A",
		Type:    "virtual",
		Tenant:  "Acme",
		Purpose: "production",
	}

	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(`INSERT INTO containers`).
		WithArgs(anyArgs(14)...).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "containers_name_key"})
	suite.mock.ExpectRollback()

	container, err := suite.repo.Create(suite.context, req)
	assert.Nil(suite.T(), container)
	assert.ErrorIs(suite.T(), err, common.ErrDuplicateName)
}

func (suite *ContainerRepoTestSuite) existingRow(id string, locID *uuid.UUID, containerType string) *pgxmock.Rows {
	created := time.Now().UTC().Add(-24 * time.Hour)
	var city, country *string
	if locID != nil {
		city = stringPtr("Austin")
		country = stringPtr("US")
	}
	return pgxmock.NewRows(containerTestColumns).
		AddRow(id, "Farm-A", containerType, "Acme", "production", "active", locID,
			[]byte(`[{"id":"s1","name":"Basil"}]`), nil, false, true, true, created, created,
			city, country, nil)
}

func (suite *ContainerRepoTestSuite) TestUpdate_NotesOnlyPreservesOtherFields() {
	locID := uuid.New()
	before := time.Now().UTC().Add(-time.Hour)

	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`WHERE c\.id = \$1`).
		WithArgs("c1").
		WillReturnRows(suite.existingRow("c1", &locID, "physical"))
	suite.mock.ExpectExec(`UPDATE containers`).
		WithArgs("Acme", "production", "active", &locID, pgxmock.AnyArg(),
			stringPtr("checked pumps"), true, true, pgxmock.AnyArg(), "c1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.mock.ExpectCommit()

	patch := &models.ContainerUpdate{Notes: models.Some("checked pumps")}
	container, err := suite.repo.Update(suite.context, "c1", patch)
	assert.NoError(suite.T(), err)

	assert.Equal(suite.T(), "Acme", container.Tenant)
	assert.Equal(suite.T(), "production", container.Purpose)
	assert.Equal(suite.T(), "active", container.Status)
	assert.Len(suite.T(), container.SeedTypes, 1)
	assert.NotNil(suite.T(), container.Location)
	assert.True(suite.T(), container.ShadowServiceEnabled)
	assert.True(suite.T(), container.EcosystemConnected)
	assert.Equal(suite.T(), "checked pumps", *container.Notes)
	assert.True(suite.T(), container.Modified.After(before))
}

func (suite *ContainerRepoTestSuite) TestUpdate_CreatesLocationWhenMissing() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`WHERE c\.id = \$1`).
		WithArgs("c1").
		WillReturnRows(suite.existingRow("c1", nil, "physical"))
	suite.mock.ExpectExec(`INSERT INTO locations`).
		WithArgs(pgxmock.AnyArg(), "Berlin", "DE", stringPtr("Koppenstr. 1")).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectExec(`UPDATE containers`).
		WithArgs(anyArgs(10)...).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.mock.ExpectCommit()

	patch := &models.ContainerUpdate{
		Location: models.Some(models.LocationPayload{
			City:    "Berlin",
			Country: "DE",
			Address: stringPtr("Koppenstr. 1"),
		}),
	}
	container, err := suite.repo.Update(suite.context, "c1", patch)
	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), container.LocationID)
	assert.Equal(suite.T(), "Berlin", container.Location.City)
}

func (suite *ContainerRepoTestSuite) TestUpdate_VirtualDropsLocationPayload() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`WHERE c\.id = \$1`).
		WithArgs("c2").
		WillReturnRows(suite.existingRow("c2", nil, "virtual"))
	suite.mock.ExpectExec(`UPDATE containers`).
		WithArgs(anyArgs(10)...).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.mock.ExpectCommit()

	patch := &models.ContainerUpdate{
		Location: models.Some(models.LocationPayload{City: "Berlin", Country: "DE"}),
	}
	container, err := suite.repo.Update(suite.context, "c2", patch)
	assert.NoError(suite.T(), err)
	assert.Nil(suite.T(), container.LocationID)
	assert.Nil(suite.T(), container.Location)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *ContainerRepoTestSuite) TestUpdate_SettingsWithoutEcosystemKeepsFlag() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`WHERE c\.id = \$1`).
		WithArgs("c1").
		WillReturnRows(suite.existingRow("c1", nil, "virtual"))
	suite.mock.ExpectExec(`UPDATE containers`).
		WithArgs(anyArgs(10)...).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.mock.ExpectCommit()

	patch := &models.ContainerUpdate{
		Settings: models.Some(models.SettingsPatch{
			ShadowServiceEnabled: models.Some(false),
		}),
	}
	container, err := suite.repo.Update(suite.context, "c1", patch)
	assert.NoError(suite.T(), err)
	assert.False(suite.T(), container.ShadowServiceEnabled)
	// ecosystem key absent: the stored flag survives
	assert.True(suite.T(), container.EcosystemConnected)
}

func (suite *ContainerRepoTestSuite) TestUpdate_EcosystemNullDisconnects() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`WHERE c\.id = \$1`).
		WithArgs("c1").
		WillReturnRows(suite.existingRow("c1", nil, "virtual"))
	suite.mock.ExpectExec(`UPDATE containers`).
		WithArgs(anyArgs(10)...).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.mock.ExpectCommit()

	patch := &models.ContainerUpdate{
		Settings: models.Some(models.SettingsPatch{
			Ecosystem: models.Null[map[string]any](),
		}),
	}
	container, err := suite.repo.Update(suite.context, "c1", patch)
	assert.NoError(suite.T(), err)
	assert.False(suite.T(), container.EcosystemConnected)
}

func (suite *ContainerRepoTestSuite) TestUpdate_NotFound() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`WHERE c\.id = \$1`).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)
	suite.mock.ExpectRollback()

	container, err := suite.repo.Update(suite.context, "missing", &models.ContainerUpdate{})
	assert.Nil(suite.T(), container)
	assert.ErrorIs(suite.T(), err, common.ErrContainerNotFound)
}

func (suite *ContainerRepoTestSuite) TestDelete() {
	suite.mock.ExpectExec(`DELETE FROM containers WHERE id = \$1`).
		WithArgs("c1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	deleted, err := suite.repo.Delete(suite.context, "c1")
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), deleted)

	suite.mock.ExpectExec(`DELETE FROM containers WHERE id = \$1`).
		WithArgs("missing").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	deleted, err = suite.repo.Delete(suite.context, "missing")
	assert.NoError(suite.T(), err)
	assert.False(suite.T(), deleted)
}

func (suite *ContainerRepoTestSuite) TestCountByType() {
	suite.mock.ExpectQuery(`SELECT type, COUNT\(\*\) FROM containers`).
		WillReturnRows(pgxmock.NewRows([]string{"type", "count"}).
			AddRow("physical", 3).
			AddRow("virtual", 1))

	counts, err := suite.repo.CountByType(suite.context, "")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 3, counts["physical"])
	assert.Equal(suite.T(), 1, counts["virtual"])
}
