package commands

import (
	"errors"
	"fmt"
	"strings"

	"logistics/internal/core/domain/model/identity"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

// ProofKeyPrefix is the object storage folder for delivery proofs.
const ProofKeyPrefix = "delivery_proofs"

var (
	ErrRequestProofUploadCommandIsNotConstructed = errors.New(
		"RequestProofUploadCommand must be created via NewRequestProofUploadCommand constructor",
	)
	ErrConfirmProofUploadCommandIsNotConstructed = errors.New(
		"ConfirmProofUploadCommand must be created via NewConfirmProofUploadCommand constructor",
	)
)

func getProofExtensions() map[string]string {
	return map[string]string{
		"image/jpeg":      "jpg",
		"image/png":       "png",
		"image/webp":      "webp",
		"application/pdf": "pdf",
	}
}

// ProofKeyFor returns the key prefix every proof of the order must live under.
func ProofKeyFor(orderID kernel.UUID) string {
	return ProofKeyPrefix + "/" + orderID.String() + "/"
}

type RequestProofUploadCommand struct {
	actor       identity.Actor
	orderID     kernel.UUID
	contentType string
	extension   string
	guard       guard.ConstructorGuard
}

func NewRequestProofUploadCommand(actor identity.Actor, orderID kernel.UUID, contentType string) (RequestProofUploadCommand, error) {
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	ext, ok := getProofExtensions()[contentType]
	var typeErr error
	if !ok {
		typeErr = errs.NewValueIsInvalidErrorWithCause("content type",
			fmt.Errorf("%q is not an accepted proof format", contentType))
	}
	if err := errors.Join(actor.Validate(), orderID.Validate(), typeErr); err != nil {
		return RequestProofUploadCommand{}, err
	}
	return RequestProofUploadCommand{
		actor:       actor,
		orderID:     orderID,
		contentType: contentType,
		extension:   ext,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c RequestProofUploadCommand) Validate() error {
	return c.guard.Validate(ErrRequestProofUploadCommandIsNotConstructed)
}

func (c RequestProofUploadCommand) Actor() identity.Actor { return c.actor }
func (c RequestProofUploadCommand) OrderID() kernel.UUID { return c.orderID }
func (c RequestProofUploadCommand) ContentType() string { return c.contentType }
func (c RequestProofUploadCommand) Extension() string { return c.extension }

type ConfirmProofUploadCommand struct {
	actor   identity.Actor
	orderID kernel.UUID
	key     string
	guard   guard.ConstructorGuard
}

func NewConfirmProofUploadCommand(actor identity.Actor, orderID kernel.UUID, key string) (ConfirmProofUploadCommand, error) {
	key = strings.TrimSpace(key)
	var keyErr error
	switch {
	case key == "":
		keyErr = errs.NewValueIsRequiredError("proof key")
	case !strings.HasPrefix(key, ProofKeyFor(orderID)) || strings.Contains(key, ".."):
		keyErr = errs.NewValueIsInvalidErrorWithCause("proof key",
			fmt.Errorf("%q is not under %s", key, ProofKeyFor(orderID)))
	}
	if err := errors.Join(actor.Validate(), orderID.Validate(), keyErr); err != nil {
		return ConfirmProofUploadCommand{}, err
	}
	return ConfirmProofUploadCommand{actor: actor, orderID: orderID, key: key, guard: guard.NewConstructorGuard()}, nil
}

func (c ConfirmProofUploadCommand) Validate() error {
	return c.guard.Validate(ErrConfirmProofUploadCommandIsNotConstructed)
}

func (c ConfirmProofUploadCommand) Actor() identity.Actor { return c.actor }
func (c ConfirmProofUploadCommand) OrderID() kernel.UUID { return c.orderID }
func (c ConfirmProofUploadCommand) Key() string { return c.key }
