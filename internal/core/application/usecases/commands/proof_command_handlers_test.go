package commands_test

import (
	"strings"
	"testing"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRequestProofUploadCommandHandler_Handle(t *testing.T) {
	t.Run("assigned rider gets a PUT url", func(t *testing.T) {
		ctx := t.Context()
		riderID := kernel.NewUUID()
		o := assignedOrder(t, 1200, riderID)
		cmd, err := commands.NewRequestProofUploadCommand(riderActor(t, riderID), o.ID(), "image/JPEG")
		require.NoError(t, err)

		uow := newMockUoW()
		uow.orders.On("Get", ctx, o.ID()).Return(o, nil).Once()
		storage := new(MockProofStorage)
		storage.On("PresignUpload", ctx, mock.MatchedBy(func(key string) bool {
			return strings.HasPrefix(key, "delivery_proofs/"+o.ID().String()+"/") && strings.HasSuffix(key, ".jpg")
		}), "image/jpeg").Return(ports.PresignedURL{URL: "https://s3.example/put", Method: "PUT"}, nil).Once()

		url, err := commands.NewRequestProofUploadCommandHandler(singleUoW(uow), storage).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, "PUT", url.Method)
		uow.assertAll(t)
		storage.AssertExpectations(t)
	})

	t.Run("other rider is denied", func(t *testing.T) {
		ctx := t.Context()
		o := assignedOrder(t, 1200, kernel.NewUUID())
		cmd, err := commands.NewRequestProofUploadCommand(riderActor(t, kernel.NewUUID()), o.ID(), "image/png")
		require.NoError(t, err)

		uow := newMockUoW()
		uow.orders.On("Get", ctx, o.ID()).Return(o, nil).Once()
		storage := new(MockProofStorage)

		_, err = commands.NewRequestProofUploadCommandHandler(singleUoW(uow), storage).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrPermissionDenied)
		storage.AssertNotCalled(t, "PresignUpload", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unsupported content type", func(t *testing.T) {
		_, err := commands.NewRequestProofUploadCommand(managerActor(t), kernel.NewUUID(), "text/html")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestConfirmProofUploadCommandHandler_Handle(t *testing.T) {
	t.Run("records an uploaded key", func(t *testing.T) {
		ctx := t.Context()
		o := createdOrder(t, 1200)
		key := commands.ProofKeyFor(o.ID()) + "photo.jpg"
		cmd, err := commands.NewConfirmProofUploadCommand(managerActor(t), o.ID(), key)
		require.NoError(t, err)

		storage := new(MockProofStorage)
		storage.On("Exists", ctx, key).Return(true, nil).Once()
		uow := newMockUoW()
		uow.expectTx(ctx, true)
		uow.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
		uow.orders.On("Update", ctx, o).Return(nil).Once()

		require.NoError(t, commands.NewConfirmProofUploadCommandHandler(singleUoW(uow), storage).Handle(ctx, cmd))

		assert.Equal(t, key, o.ProofKey())
		uow.assertAll(t)
	})

	t.Run("missing object opens no transaction", func(t *testing.T) {
		ctx := t.Context()
		orderID := kernel.NewUUID()
		key := commands.ProofKeyFor(orderID) + "photo.jpg"
		cmd, err := commands.NewConfirmProofUploadCommand(managerActor(t), orderID, key)
		require.NoError(t, err)

		storage := new(MockProofStorage)
		storage.On("Exists", ctx, key).Return(false, nil).Once()
		factory := new(MockUoWFactory)

		err = commands.NewConfirmProofUploadCommandHandler(factory, storage).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		factory.AssertNotCalled(t, "Create")
	})

	t.Run("key of another order", func(t *testing.T) {
		_, err := commands.NewConfirmProofUploadCommand(managerActor(t), kernel.NewUUID(),
			commands.ProofKeyFor(kernel.NewUUID())+"photo.jpg")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
