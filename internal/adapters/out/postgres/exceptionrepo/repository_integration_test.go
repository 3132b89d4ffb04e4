package exceptionrepo_test

import (
	"context"
	"testing"
	"time"

	"preclear/internal/adapters/out/postgres/exceptionrepo"
	"preclear/internal/adapters/out/postgres/shiprepo"
	"preclear/internal/core/domain/model/exception"
	"preclear/internal/core/domain/model/kernel"
	"preclear/internal/core/domain/model/shipment"
	"preclear/internal/pkg/errs"
	"preclear/internal/pkg/testutil/pgcontainer"

	"github.com/stretchr/testify/suite"
)

var testNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

type noopTracker struct{}

func (noopTracker) TrackAggregate(kernel.ID, any) {}

type ExceptionRepositoryIntegrationTestSuite struct {
	suite.Suite
	pg         *pgcontainer.Database
	repository *exceptionrepo.GormExceptionRepository
	shipmentID kernel.ID
}

func (suite *ExceptionRepositoryIntegrationTestSuite) SetupSuite() {
	pg, err := pgcontainer.Start(context.Background())
	suite.Require().NoError(err)
	suite.pg = pg
	suite.repository = exceptionrepo.NewGormExceptionRepository(pg.DB, noopTracker{})
}

func (suite *ExceptionRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Reset())

	s, err := shipment.NewShipment("SHP-1700000000000", 1, "Textiles", shipment.Details{}, testNow)
	suite.Require().NoError(err)
	suite.Require().NoError(shiprepo.NewGormShipmentRepository(suite.pg.DB, noopTracker{}).Add(context.Background(), s))
	suite.shipmentID = s.ID()
}

func (suite *ExceptionRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.pg.Terminate(context.Background()))
}

func (suite *ExceptionRepositoryIntegrationTestSuite) raise(code string, severity exception.Severity, at time.Time) *exception.Exception {
	createdBy := kernel.ID(5)
	e, err := exception.NewException(suite.shipmentID, code, "needs attention", severity, &createdBy, at)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(context.Background(), e))
	return e
}

func (suite *ExceptionRepositoryIntegrationTestSuite) TestAddAndResolve() {
	ctx := context.Background()
	e := suite.raise("DOC_MISSING", exception.SeverityError, testNow)
	suite.Positive(e.ID().Int64())

	locked, err := suite.repository.GetForUpdate(ctx, e.ID())
	suite.Require().NoError(err)
	suite.False(locked.Resolved())
	suite.Equal(exception.SeverityError, locked.Severity())

	resolver := kernel.ID(8)
	suite.True(locked.Resolve(&resolver, testNow.Add(time.Hour)))
	suite.Require().NoError(suite.repository.Update(ctx, locked))

	got, err := suite.repository.GetForUpdate(ctx, e.ID())
	suite.Require().NoError(err)
	suite.True(got.Resolved())
	suite.Equal(&resolver, got.ResolvedBy())
	suite.True(testNow.Add(time.Hour).Equal(*got.ResolvedAt()))
	suite.Equal("DOC_MISSING", got.Code())
}

func (suite *ExceptionRepositoryIntegrationTestSuite) TestAdd_UnknownShipmentViolatesForeignKey() {
	e, err := exception.NewException(987654, "X", "msg", exception.SeverityInfo, nil, testNow)
	suite.Require().NoError(err)

	suite.Error(suite.repository.Add(context.Background(), e))
}

func (suite *ExceptionRepositoryIntegrationTestSuite) TestGetForUpdate_NotFound() {
	_, err := suite.repository.GetForUpdate(context.Background(), 404)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ExceptionRepositoryIntegrationTestSuite) TestListUnresolved_NewestFirst() {
	ctx := context.Background()
	older := suite.raise("A", exception.SeverityWarning, testNow)
	newer := suite.raise("B", exception.SeverityError, testNow.Add(time.Minute))
	resolved := suite.raise("C", exception.SeverityError, testNow.Add(2*time.Minute))
	resolved.Resolve(nil, testNow.Add(3*time.Minute))
	suite.Require().NoError(suite.repository.Update(ctx, resolved))

	open, err := suite.repository.ListUnresolved(ctx, suite.shipmentID)
	suite.Require().NoError(err)
	suite.Require().Len(open, 2)
	suite.Equal(newer.ID(), open[0].ID())
	suite.Equal(older.ID(), open[1].ID())
}

func TestExceptionRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ExceptionRepositoryIntegrationTestSuite))
}
