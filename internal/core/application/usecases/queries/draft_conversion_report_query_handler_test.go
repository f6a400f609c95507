package queries_test

import (
	"context"
	"testing"
	"time"

	"storefront/internal/adapters/out/postgres/draftrepo"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/draft"
	"storefront/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestNewDraftConversionReportQuery(t *testing.T) {
	from := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)

	t.Run("valid", func(t *testing.T) {
		query, err := queries.NewDraftConversionReportQuery(from, to)
		require.NoError(t, err)
		require.NoError(t, query.Validate())
	})

	t.Run("inverted range", func(t *testing.T) {
		_, err := queries.NewDraftConversionReportQuery(to, from)
		require.ErrorIs(t, err, queries.ErrDateRangeIsInvalid)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var query queries.DraftConversionReportQuery
		require.ErrorIs(t, query.Validate(), queries.ErrDraftConversionReportQueryIsNotConstructed)
	})
}

// DraftConversionReportQueryHandlerTestSuite exercises the funnel report
// against a PostgreSQL container.
type DraftConversionReportQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.DraftConversionReportQueryHandler
}

func (suite *DraftConversionReportQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&draftrepo.DraftDTO{}))
	suite.handler = queries.NewDraftConversionReportQueryHandler(db)
}

func (suite *DraftConversionReportQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE checkout_drafts").Error)
}

func (suite *DraftConversionReportQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *DraftConversionReportQueryHandlerTestSuite) seedDraft(
	sessionID string, createdAt time.Time, converted bool,
) {
	d, err := draft.NewDraft(sessionID, draft.Fields{Phone: "01712345678"}, "[]", createdAt)
	suite.Require().NoError(err)
	if converted {
		suite.Require().NoError(d.Convert(kernel.NewUUID(), createdAt))
	}

	repo := draftrepo.NewGormDraftRepository(suite.db)
	suite.Require().NoError(repo.Upsert(context.Background(), d))
}

func (suite *DraftConversionReportQueryHandlerTestSuite) TestHandle_BucketsPerDay() {
	ctx := context.Background()
	dayOne := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)
	dayTwo := time.Date(2025, time.March, 11, 9, 0, 0, 0, time.UTC)

	suite.seedDraft("sess-1", dayOne, true)
	suite.seedDraft("sess-2", dayOne.Add(2*time.Hour), false)
	suite.seedDraft("sess-3", dayTwo, false)
	suite.seedDraft("sess-4", dayTwo.Add(time.Hour), true)
	suite.seedDraft("sess-outside", dayTwo.AddDate(0, 1, 0), true)

	query, err := queries.NewDraftConversionReportQuery(
		time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC),
	)
	suite.Require().NoError(err)

	report, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Require().Len(report, 2)

	suite.Equal(2, report[0].Drafts)
	suite.Equal(1, report[0].Converted)
	suite.InDelta(50.0, report[0].ConversionRate, 0.001)

	suite.Equal(2, report[1].Drafts)
	suite.Equal(1, report[1].Converted)
}

func (suite *DraftConversionReportQueryHandlerTestSuite) TestHandle_EmptyRange() {
	ctx := context.Background()

	query, err := queries.NewDraftConversionReportQuery(
		time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC),
	)
	suite.Require().NoError(err)

	report, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Empty(report)
}

func TestDraftConversionReportQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(DraftConversionReportQueryHandlerTestSuite))
}
