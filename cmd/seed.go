package cmd

import (
	"context"
	"fmt"
	"time"

	httpin "logistics/internal/adapters/in/http"
	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/identity"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/rider"

	"github.com/jaswdr/faker"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

const devTokenTTL = 24 * time.Hour

// Seed area around Lagos Island.
const (
	seedLatitude  = 6.45
	seedLongitude = 3.39
)

func newSeedCommand() *cobra.Command {
	var riders, orders int
	seed := &cobra.Command{
		Use:   "seed",
		Short: "Fill the database with demo riders and orders and print dev tokens",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, db, err := bootstrap()
			if err != nil {
				return err
			}
			defer closeDB(db, logger)

			app, err := NewCompositionRoot(cmd.Context(), cfg, db, logger)
			if err != nil {
				return err
			}
			defer app.Close() //nolint:errcheck

			s := seeder{app: app, fake: faker.New(), now: time.Now}
			return s.run(cmd, riders, orders)
		},
	}
	seed.Flags().IntVar(&riders, "riders", 10, "number of riders to register")
	seed.Flags().IntVar(&orders, "orders", 25, "number of orders to create")
	return seed
}

type seeder struct {
	app  *CompositionRoot
	fake faker.Faker
	now  func() time.Time
}

func (s seeder) run(cmd *cobra.Command, riders, orders int) error {
	ctx := cmd.Context()
	manager, err := s.createManager(ctx)
	if err != nil {
		return fmt.Errorf("create manager: %w", err)
	}

	bar := progressbar.Default(int64(riders+orders), "seeding")
	register := s.app.CreateRegisterRiderCommandHandler()
	activate := s.app.CreateSetRiderProfileStatusCommandHandler()
	var firstRider *kernel.UUID
	for i := 0; i < riders; i++ {
		id, err := s.registerRider(ctx, register, activate, manager)
		if err != nil {
			return fmt.Errorf("register rider: %w", err)
		}
		if firstRider == nil {
			firstRider = &id
		}
		_ = bar.Add(1)
	}

	create := s.app.CreateCreateOrderCommandHandler()
	for i := 0; i < orders; i++ {
		orderCmd, err := commands.NewCreateOrderCommand(manager, commands.CreateOrderInput{
			CustomerName:       s.fake.Person().Name(),
			CustomerPhone:      s.fake.Phone().E164Number(),
			CustomerEmail:      s.fake.Internet().Email(),
			Pickup:             s.address(),
			Delivery:           s.address(),
			PackageDescription: s.fake.Lorem().Sentence(4),
		})
		if err != nil {
			return err
		}
		if _, err := create.Handle(ctx, orderCmd); err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		_ = bar.Add(1)
	}

	secret := []byte(s.app.cfg.JWTSecret)
	managerToken, err := httpin.IssueToken(secret, manager, devTokenTTL, s.now())
	if err != nil {
		return err
	}
	cmd.Printf("\nmanager token: %s\n", managerToken)
	if firstRider != nil {
		actor, err := identity.NewActor(*firstRider, identity.Rider)
		if err != nil {
			return err
		}
		riderToken, err := httpin.IssueToken(secret, actor, devTokenTTL, s.now())
		if err != nil {
			return err
		}
		cmd.Printf("rider token:   %s\n", riderToken)
	}
	return nil
}

func (s seeder) createManager(ctx context.Context) (identity.Actor, error) {
	user, err := identity.NewUser(kernel.NewUUID(), s.fake.Internet().Email(), s.fake.Phone().E164Number(),
		s.fake.Person().FirstName(), s.fake.Person().LastName(), identity.Manager, s.now())
	if err != nil {
		return identity.Actor{}, err
	}

	uow := s.app.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return identity.Actor{}, err
	}
	defer uow.Rollback(ctx) //nolint:errcheck
	if err := uow.UserRepository().Add(ctx, user); err != nil {
		return identity.Actor{}, err
	}
	if err := uow.Commit(ctx); err != nil {
		return identity.Actor{}, err
	}
	return identity.NewActor(user.ID(), identity.Manager)
}

func (s seeder) registerRider(
	ctx context.Context,
	register commands.RegisterRiderCommandHandler,
	activate commands.SetRiderProfileStatusCommandHandler,
	manager identity.Actor,
) (kernel.UUID, error) {
	vehicles := []rider.VehicleType{rider.Motorcycle, rider.Bicycle, rider.Car, rider.Van}
	car := s.fake.Car()
	cmd, err := commands.NewRegisterRiderCommand(commands.RegisterRiderInput{
		Email:     s.fake.Internet().Email(),
		Phone:     s.fake.Phone().E164Number(),
		FirstName: s.fake.Person().FirstName(),
		LastName:  s.fake.Person().LastName(),
		Vehicle: rider.Vehicle{
			Type:        vehicles[s.fake.IntBetween(0, len(vehicles)-1)],
			Model:       car.Model(),
			PlateNumber: car.Plate(),
		},
	})
	if err != nil {
		return kernel.UUID{}, err
	}
	id, err := register.Handle(ctx, cmd)
	if err != nil {
		return kernel.UUID{}, err
	}

	statusCmd, err := commands.NewSetRiderProfileStatusCommand(manager, id, rider.Active)
	if err != nil {
		return kernel.UUID{}, err
	}
	return id, activate.Handle(ctx, statusCmd)
}

func (s seeder) address() commands.AddressInput {
	lat := seedLatitude + float64(s.fake.IntBetween(-400, 400))/10000
	lng := seedLongitude + float64(s.fake.IntBetween(-600, 600))/10000
	return commands.AddressInput{
		Line:      s.fake.Address().StreetAddress() + ", Lagos",
		Latitude:  &lat,
		Longitude: &lng,
	}
}
