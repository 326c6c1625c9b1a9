package websocket

import (
	"context"
	"errors"
	"fmt"

	"github.com/bytedance/sonic"

	"github.com/rocketscienceinc/dots-and-boxes-backend/internal/apperror"
	"github.com/rocketscienceinc/dots-and-boxes-backend/internal/entity"
)

const (
	errMsgNoTable      = "no table selected, send table:new or table:join first"
	errMsgTableID      = "table_id is required"
	errMsgEdgeID       = "edge_id is required"
	errMsgInternal     = "internal error"
	errMsgMalformedReq = "malformed payload"
)

// errors whose text is shown to the player as is.
var userErrors = []error{
	apperror.ErrGameOver,
	apperror.ErrUnknownEdge,
	apperror.ErrEdgeAlreadyCompleted,
	apperror.ErrNotCurrentPlayer,
	apperror.ErrRosterFull,
	apperror.ErrRosterTooSmall,
	apperror.ErrInvalidBoardSize,
	apperror.ErrTableNotFound,
}

func errorMessage(err error) string {
	for _, target := range userErrors {
		if errors.Is(err, target) {
			return target.Error()
		}
	}

	return errMsgInternal
}

func decodePayload(msg *Message) (RequestPayload, error) {
	var payload RequestPayload

	if len(msg.Payload) == 0 {
		return payload, nil
	}

	if err := sonic.Unmarshal(msg.Payload, &payload); err != nil {
		return payload, fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	return payload, nil
}

func (that *Server) handleTableNew(ctx context.Context, conn *connection, msg *Message) error {
	log := that.logger.With("method", "handleTableNew")

	if previous := that.detach(conn); previous != "" {
		that.dropTable(ctx, previous)
	}

	table, err := that.tables.CreateTable(ctx)
	if err != nil {
		log.Error("failed to create table", "error", err)
		return that.sendErrorResponse(conn, msg.Action, nil, errorMessage(err))
	}

	that.attach(conn, table.ID)
	log.Info("table created", "table", table.ID)

	if err = that.sendMessage(conn, msg.Action, ResponsePayload{Table: table}); err != nil {
		return err
	}

	// the start notice was emitted before the connection was attached
	that.Notify(ctx, table.ID, entity.Notification{
		Kind:    entity.NotificationGameStarted,
		Message: entity.MessageGameStarted,
	})

	return nil
}

func (that *Server) handleTableJoin(ctx context.Context, conn *connection, msg *Message) error {
	log := that.logger.With("method", "handleTableJoin")

	payload, err := decodePayload(msg)
	if err != nil {
		return errors.Join(err, that.sendErrorResponse(conn, msg.Action, nil, errMsgMalformedReq))
	}

	if payload.TableID == "" {
		return that.sendErrorResponse(conn, msg.Action, nil, errMsgTableID)
	}

	table, err := that.tables.GetTable(ctx, payload.TableID)
	if err != nil {
		log.Warn("failed to join table", "table", payload.TableID, "error", err)
		return that.sendErrorResponse(conn, msg.Action, nil, errorMessage(err))
	}

	that.attach(conn, table.ID)
	log.Info("table joined", "table", table.ID)

	return that.sendMessage(conn, msg.Action, ResponsePayload{Table: table})
}

func (that *Server) handleSettingsSize(ctx context.Context, conn *connection, msg *Message) error {
	payload, err := decodePayload(msg)
	if err != nil {
		return errors.Join(err, that.sendErrorResponse(conn, msg.Action, nil, errMsgMalformedReq))
	}

	return that.withTable(conn, msg, func(tableID string) (*entity.Table, error) {
		return that.tables.SelectGridSize(ctx, tableID, payload.Size)
	})
}

func (that *Server) handlePlayerAdd(ctx context.Context, conn *connection, msg *Message) error {
	return that.withTable(conn, msg, func(tableID string) (*entity.Table, error) {
		return that.tables.AddPlayer(ctx, tableID)
	})
}

func (that *Server) handlePlayerRemove(ctx context.Context, conn *connection, msg *Message) error {
	return that.withTable(conn, msg, func(tableID string) (*entity.Table, error) {
		return that.tables.RemovePlayer(ctx, tableID)
	})
}

func (that *Server) handleSettingsApply(ctx context.Context, conn *connection, msg *Message) error {
	return that.withTable(conn, msg, func(tableID string) (*entity.Table, error) {
		return that.tables.ApplySettings(ctx, tableID)
	})
}

func (that *Server) handleGameNew(ctx context.Context, conn *connection, msg *Message) error {
	return that.withTable(conn, msg, func(tableID string) (*entity.Table, error) {
		return that.tables.NewGame(ctx, tableID)
	})
}

func (that *Server) handleEdgeSelect(ctx context.Context, conn *connection, msg *Message) error {
	log := that.logger.With("method", "handleEdgeSelect")

	payload, err := decodePayload(msg)
	if err != nil {
		return errors.Join(err, that.sendErrorResponse(conn, msg.Action, nil, errMsgMalformedReq))
	}

	tableID := that.tableOf(conn)
	if tableID == "" {
		return that.sendErrorResponse(conn, msg.Action, nil, errMsgNoTable)
	}

	if payload.EdgeID == "" {
		return that.sendErrorResponse(conn, msg.Action, nil, errMsgEdgeID)
	}

	table, move, err := that.tables.SelectEdge(ctx, tableID, payload.EdgeID, payload.PlayerID)
	if err != nil {
		log.Debug("move rejected", "table", tableID, "edge", payload.EdgeID, "error", err)
		return that.sendErrorResponse(conn, msg.Action, table, errorMessage(err))
	}

	return that.sendMessage(conn, msg.Action, ResponsePayload{Table: table, Move: move})
}

// withTable runs fn against the connection's table and replies with the resulting snapshot.
func (that *Server) withTable(conn *connection, msg *Message, fn func(tableID string) (*entity.Table, error)) error {
	tableID := that.tableOf(conn)
	if tableID == "" {
		return that.sendErrorResponse(conn, msg.Action, nil, errMsgNoTable)
	}

	table, err := fn(tableID)
	if err != nil {
		that.logger.Debug("action rejected", "action", msg.Action, "table", tableID, "error", err)
		return that.sendErrorResponse(conn, msg.Action, table, errorMessage(err))
	}

	return that.sendMessage(conn, msg.Action, ResponsePayload{Table: table})
}
