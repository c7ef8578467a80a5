package postgres_test

import (
	"context"
	"time"

	"logistics/internal/adapters/out/postgres/migrations"
	"logistics/internal/core/domain/model/identity"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/payment"
	"logistics/internal/core/domain/model/rider"
	"logistics/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

func (suite *UnitOfWorkIntegrationTestSuite) TestMigrations_Version() {
	sqlDB, err := suite.pg.DB.DB()
	suite.Require().NoError(err)

	version, dirty, err := migrations.Version(sqlDB)

	suite.Require().NoError(err)
	suite.False(dirty)
	suite.Equal(uint(1), version)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestOrderRepository_StaleVersionConflicts() {
	ctx := context.Background()
	o := suite.newOrder(900)
	repo := suite.factory.Create().OrderRepository()

	first, err := repo.Get(ctx, o.ID())
	suite.Require().NoError(err)
	second, err := repo.Get(ctx, o.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(first.Cancel(nil, "customer changed mind", time.Now()))
	suite.Require().NoError(repo.Update(ctx, first))
	suite.Equal(2, first.Version())

	suite.Require().NoError(second.Cancel(nil, "duplicate", time.Now()))
	err = repo.Update(ctx, second)
	suite.Require().ErrorIs(err, errs.ErrConflict)

	var logs int64
	suite.Require().NoError(suite.pg.DB.Table("order_status_logs").Where("status = ?", "CANCELLED").Count(&logs).Error)
	suite.Equal(int64(1), logs)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestOrderRepository_RoundTrip() {
	ctx := context.Background()
	pickup, err := kernel.NewCoordinates(6.6018, 3.3515)
	suite.Require().NoError(err)
	customer, err := order.NewCustomer("Ada Obi", "+2348012345678", "ada@example.com")
	suite.Require().NoError(err)
	from, err := order.NewAddress("12 Allen Ave, Ikeja", &pickup)
	suite.Require().NoError(err)
	to, err := order.NewAddress("3 Admiralty Way, Lekki", nil)
	suite.Require().NoError(err)
	weight := 2.5
	pkg, err := order.NewPackage("documents", &weight)
	suite.Require().NoError(err)
	now := time.Now()
	o, err := order.NewOrder(kernel.NewUUID(), order.GenerateNumber(now), customer, from, to,
		pkg, decimal.RequireFromString("1250.50"), nil, now)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.factory.Create().OrderRepository().Add(ctx, o))

	stored, err := suite.factory.Create().OrderRepository().GetByNumber(ctx, o.Number())

	suite.Require().NoError(err)
	suite.True(o.IsEqual(stored))
	suite.Equal("1250.5", stored.DeliveryFee().String())
	suite.Equal("ada@example.com", stored.Customer().Email())
	suite.Require().NotNil(stored.Pickup().Coordinates())
	suite.InDelta(6.6018, stored.Pickup().Coordinates().Latitude(), 1e-9)
	suite.Nil(stored.Delivery().Coordinates())
	suite.Equal(order.PaymentPending, stored.PaymentStatus())
	suite.Equal(1, stored.Version())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestEarningRepository_DuplicateOrderConflicts() {
	ctx := context.Background()
	p := suite.newRider("kemi")
	o := suite.newOrder(1000)
	repo := suite.factory.Create().EarningRepository()

	e, err := rider.NewEarning(p.UserID(), o.ID(), decimal.NewFromInt(700), decimal.NewFromInt(1000), time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(repo.Add(ctx, e))
	suite.NotZero(e.ID())

	again, err := rider.NewEarning(p.UserID(), o.ID(), decimal.NewFromInt(700), decimal.NewFromInt(1000), time.Now())
	suite.Require().NoError(err)
	suite.Require().ErrorIs(repo.Add(ctx, again), errs.ErrConflict)

	exists, err := repo.ExistsForOrder(ctx, o.ID())
	suite.Require().NoError(err)
	suite.True(exists)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUserRepository_EmailIsCaseInsensitive() {
	ctx := context.Background()
	repo := suite.factory.Create().UserRepository()
	u, err := identity.NewUser(kernel.NewUUID(), "Ngozi.Eze@Riders.example", "+2348033333333", "Ngozi", "Eze", identity.Rider, time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(repo.Add(ctx, u))

	exists, err := repo.ExistsByEmail(ctx, "  NGOZI.EZE@riders.example ")
	suite.Require().NoError(err)
	suite.True(exists)

	dup, err := identity.NewUser(kernel.NewUUID(), "ngozi.eze@riders.example", "+2348044444444", "N", "E", identity.Rider, time.Now())
	suite.Require().NoError(err)
	suite.Require().ErrorIs(repo.Add(ctx, dup), errs.ErrConflict)

	_, err = repo.Get(ctx, kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionRepository_RoundTrip() {
	ctx := context.Background()
	o := suite.newOrder(1200)
	repo := suite.factory.Create().TransactionRepository()
	tx, err := payment.NewTransaction(kernel.NewUUID(), o.ID(), payment.GenerateReference(time.Now()), o.DeliveryFee(), time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(repo.Add(ctx, tx))

	_, err = tx.Reconcile(payment.Outcome{
		Succeeded: true, GatewayReference: "gw_77", Channel: "card",
		Metadata: []byte(`{"status":"success","amount":120000}`),
	}, time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(repo.Update(ctx, tx))

	stored, err := repo.GetByReference(ctx, tx.Reference())
	suite.Require().NoError(err)
	suite.Equal(payment.Success, stored.Status())
	suite.Equal("gw_77", stored.GatewayRef())
	suite.NotNil(stored.PaidAt())
	suite.JSONEq(`{"status":"success","amount":120000}`, string(stored.Metadata()))

	_, err = repo.GetByReference(ctx, "TXN-MISSING")
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionRepository_ListPendingBeforeSkipsLockedRows() {
	ctx := context.Background()
	o := suite.newOrder(1200)
	old := time.Now().Add(-2 * time.Hour)
	refs := make([]string, 0, 3)
	for i := range 3 {
		tx, err := payment.NewTransaction(kernel.NewUUID(), o.ID(),
			payment.GenerateReference(old.Add(time.Duration(i)*time.Second)), o.DeliveryFee(), old.Add(time.Duration(i)*time.Second))
		suite.Require().NoError(err)
		suite.Require().NoError(suite.factory.Create().TransactionRepository().Add(ctx, tx))
		refs = append(refs, tx.Reference())
	}
	fresh, err := payment.NewTransaction(kernel.NewUUID(), o.ID(), payment.GenerateReference(time.Now()), o.DeliveryFee(), time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.factory.Create().TransactionRepository().Add(ctx, fresh))

	holder := suite.factory.Create()
	suite.Require().NoError(holder.Begin(ctx))
	defer func() { _ = holder.Rollback(ctx) }()
	_, err = holder.TransactionRepository().GetByReferenceForUpdate(ctx, refs[0])
	suite.Require().NoError(err)

	worker := suite.factory.Create()
	suite.Require().NoError(worker.Begin(ctx))
	defer func() { _ = worker.Rollback(ctx) }()
	pending, err := worker.TransactionRepository().ListPendingBefore(ctx, time.Now().Add(-time.Hour), 10)

	suite.Require().NoError(err)
	suite.Require().Len(pending, 2)
	suite.Equal(refs[1], pending[0].Reference())
	suite.Equal(refs[2], pending[1].Reference())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestLocationRepository_AddAndProfileLocation() {
	ctx := context.Background()
	p := suite.newRider("segun")
	at, err := kernel.NewCoordinates(6.4281, 3.4219)
	suite.Require().NoError(err)
	ping, err := rider.NewLocationPing(p.UserID(), at, time.Now())
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.LocationRepository().Add(ctx, ping))
	locked, err := uow.RiderRepository().GetForUpdate(ctx, p.UserID())
	suite.Require().NoError(err)
	suite.Require().NoError(locked.UpdateLocation(at, time.Now()))
	suite.Require().NoError(uow.RiderRepository().Update(ctx, locked))
	suite.Require().NoError(uow.Commit(ctx))

	stored, err := suite.factory.Create().RiderRepository().Get(ctx, p.UserID())
	suite.Require().NoError(err)
	suite.Require().NotNil(stored.Location())
	suite.InDelta(3.4219, stored.Location().Longitude(), 1e-9)
	suite.True(stored.IsLocationFresh(time.Now()))

	var pings int64
	suite.Require().NoError(suite.pg.DB.Table("rider_locations").Count(&pings).Error)
	suite.Equal(int64(1), pings)
}
