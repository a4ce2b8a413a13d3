package server

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	apiv1 "cellstore/api/gen/cellstore/v1"
	"cellstore/api/gen/cellstore/v1/cellstorev1connect"
	"cellstore/internal/logging"
	"cellstore/internal/store"
)

// StorageServer implements the StorageService. It is a thin adapter: the
// engine's sentinel results map to transport codes, everything else passes
// through as an internal error.
type StorageServer struct {
	engine *store.Engine
	logger *slog.Logger
}

var _ cellstorev1connect.StorageServiceHandler = (*StorageServer)(nil)

// NewStorageServer creates a new StorageServer.
func NewStorageServer(engine *store.Engine, logger *slog.Logger) *StorageServer {
	return &StorageServer{
		engine: engine,
		logger: logging.Default(logger).With("component", "storage-server"),
	}
}

// Get returns the value at (row, col).
func (s *StorageServer) Get(
	ctx context.Context,
	req *connect.Request[apiv1.GetRequest],
) (*connect.Response[apiv1.GetResponse], error) {
	val, err := s.engine.Get(req.Msg.Row, req.Msg.Col)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return nil, connect.NewError(connect.CodeNotFound, err)
	case err != nil:
		return nil, s.internal("get", err)
	}
	return connect.NewResponse(&apiv1.GetResponse{Val: val}), nil
}

// Put inserts or overwrites the cell at (row, col).
func (s *StorageServer) Put(
	ctx context.Context,
	req *connect.Request[apiv1.PutRequest],
) (*connect.Response[apiv1.PutResponse], error) {
	if err := s.engine.Put(req.Msg.Row, req.Msg.Col, req.Msg.Val); err != nil {
		return nil, s.internal("put", err)
	}
	return connect.NewResponse(&apiv1.PutResponse{}), nil
}

// CPut overwrites the cell only if its current value equals val1.
func (s *StorageServer) CPut(
	ctx context.Context,
	req *connect.Request[apiv1.CPutRequest],
) (*connect.Response[apiv1.CPutResponse], error) {
	err := s.engine.CPut(req.Msg.Row, req.Msg.Col, req.Msg.Val1, req.Msg.Val2)
	switch {
	case errors.Is(err, store.ErrMismatch):
		return nil, connect.NewError(connect.CodeFailedPrecondition, err)
	case err != nil:
		return nil, s.internal("cput", err)
	}
	return connect.NewResponse(&apiv1.CPutResponse{}), nil
}

// Delete removes the cell at (row, col).
func (s *StorageServer) Delete(
	ctx context.Context,
	req *connect.Request[apiv1.DeleteRequest],
) (*connect.Response[apiv1.DeleteResponse], error) {
	err := s.engine.Delete(req.Msg.Row, req.Msg.Col)
	switch {
	case errors.Is(err, store.ErrMismatch):
		// A delete can only mismatch on an absent key.
		return nil, connect.NewError(connect.CodeNotFound, err)
	case err != nil:
		return nil, s.internal("delete", err)
	}
	return connect.NewResponse(&apiv1.DeleteResponse{}), nil
}

// internal logs an unexpected engine failure and wraps it for the wire.
// NotFound and mismatch never reach here; those are results, not errors.
func (s *StorageServer) internal(op string, err error) *connect.Error {
	s.logger.Error("engine operation failed", "op", op, "error", err)
	return connect.NewError(connect.CodeInternal, err)
}
