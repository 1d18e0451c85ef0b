package orderrepo_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	postgres_adapter "orderservice/internal/adapters/out/postgres"
	"orderservice/internal/adapters/out/postgres/cartrepo"
	"orderservice/internal/adapters/out/postgres/dberrors"
	"orderservice/internal/adapters/out/postgres/orderrepo"
	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/core/domain/model/order"
	"orderservice/internal/core/ports"
	"orderservice/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// OrderRepositoryIntegrationTestSuite runs the repository against a real PostgreSQL.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
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

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(postgres_adapter.Migrate(db))
	suite.repository = orderrepo.NewGormOrderRepository(db, nil)
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", strings.Join(postgres_adapter.Tables, ", "))).Error
	suite.Require().NoError(err)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAddGetUpdate() {
	ctx := suite.T().Context()
	o := buildOrder(suite.T(), suite.db, orderFixture{items: 2})

	suite.Require().NoError(suite.repository.Add(ctx, o))

	loaded, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.True(o.TotalAmount().Equal(loaded.TotalAmount()))
	suite.Len(loaded.Items(), 2)

	_, err = loaded.MarkAsPaid()
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, loaded))

	_, err = o.Cancel()
	suite.Require().NoError(err)
	err = suite.repository.Update(ctx, o)
	suite.Require().ErrorIs(err, errs.ErrConcurrencyConflict)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestDuplicateRequestKey() {
	ctx := suite.T().Context()
	merchantID := kernel.NewUUID()

	suite.Require().NoError(suite.repository.Add(ctx,
		buildOrder(suite.T(), suite.db, orderFixture{merchantID: merchantID, requestKey: "abc"})))

	err := suite.repository.Add(ctx,
		buildOrder(suite.T(), suite.db, orderFixture{merchantID: merchantID, requestKey: "abc"}))
	suite.Require().ErrorIs(err, order.ErrDuplicateOrder)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllPagination() {
	ctx := suite.T().Context()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	created := make([]*order.Order, 0, 25)
	for i := range 25 {
		o := buildOrder(suite.T(), suite.db, orderFixture{createdAt: base.Add(time.Duration(i) * time.Second)})
		suite.Require().NoError(suite.repository.Add(ctx, o))
		created = append(created, o)
	}

	page, err := suite.repository.GetAll(ctx, ports.OrderFilter{}, ports.PageRequest{Page: 2, PageSize: 10})
	suite.Require().NoError(err)
	suite.Equal(int64(25), page.TotalCount)
	suite.Require().Len(page.Items, 10)
	for i, item := range page.Items {
		suite.True(created[14-i].IsEqual(item.Order))
		suite.NotNil(item.Cart)
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestPriceScaleRoundTrip() {
	ctx := suite.T().Context()
	o := buildOrder(suite.T(), suite.db, orderFixture{})
	price := decimal.RequireFromString("0.0001")

	_, err := o.AddItem(kernel.NewUUID(), 7, price, "USD")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, o))

	loaded, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Require().Len(loaded.Items(), 1)
	suite.True(price.Equal(loaded.Items()[0].UnitPrice().Amount()))
	suite.True(decimal.RequireFromString("0.0007").Equal(loaded.TotalAmount().Amount()))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestOversizedColumnValueIsRejected() {
	dto := cartrepo.CartDTO{
		ID:        uuid.New(),
		CreatedAt: time.Now().UTC(),
		Items: []cartrepo.CartItemDTO{{
			ID:       uuid.New(),
			Name:     strings.Repeat("x", 256),
			Quantity: 1,
			Price:    decimal.NewFromInt(1),
		}},
	}

	err := dberrors.Translate(suite.db.WithContext(suite.T().Context()).Create(&dto).Error)

	suite.Require().ErrorIs(err, dberrors.ErrDataRejected)
	suite.Equal(errs.KindValidation, errs.KindOf(err))
	suite.False(errs.Retryable(err))
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
