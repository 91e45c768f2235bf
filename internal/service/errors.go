package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/famledger/internal/middleware"
	"github.com/mmynk/famledger/internal/storage"
)

var errUnauthenticated = errors.New("authentication required")

// requireUser returns the caller's ID or CodeUnauthenticated.
func requireUser(ctx context.Context) (string, error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return "", connect.NewError(connect.CodeUnauthenticated, errUnauthenticated)
	}
	return userID, nil
}

func invalidArgument(format string, args ...any) error {
	return connect.NewError(connect.CodeInvalidArgument, fmt.Errorf(format, args...))
}

// storeError maps a storage failure to an RPC error. Missing rows become
// CodeNotFound; anything else is logged and reported as CodeInternal.
func storeError(op string, err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return connect.NewError(connect.CodeNotFound, err)
	}
	slog.Error("Storage failure", "op", op, "error", err)
	return connect.NewError(connect.CodeInternal, fmt.Errorf("%s: %w", op, err))
}
