package handler // handler defines http handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/household-market/internal/repository"
)

// User-facing messages.  Validation and auth messages are Swahili, as served
// to the original deployment's clients.
const (
	msgDatabase    = "Tatizo la database"
	msgServer      = "Tatizo la server"
	msgNotFound    = "Haikupatikana"
	msgInvalidID   = "Kitambulisho si sahihi"
	msgInvalidBody = "Ombi si sahihi"
)

// dbTimeout bounds every repository call made on behalf of a request.
const dbTimeout = 5 * time.Second

// Store is the persistence contract shared by every resource.
type Store[T any] interface {
	Create(ctx context.Context, item T) (uint64, error)
	List(ctx context.Context) ([]T, error)
	GetByID(ctx context.Context, id uint64) (T, error)
	Delete(ctx context.Context, id uint64) error
}

// MutableStore adds full-record replacement.  Update returns the number of
// rows that matched the id.
type MutableStore[T any] interface {
	Store[T]
	Update(ctx context.Context, item T) (int64, error)
}

func dbContext(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), dbTimeout)
}

func message(c echo.Context, status int, msg string) error {
	return c.JSON(status, echo.Map{"message": msg})
}

// parseID reads the :id path parameter.
func parseID(c echo.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	return id, err == nil && id > 0
}

// dbFailure logs err with its operation and answers a generic 500.  The
// cause is never sent to the client.
func dbFailure(c echo.Context, log logrus.FieldLogger, op string, err error) error {
	log.WithError(err).WithFields(logrus.Fields{"op": op, "path": c.Path()}).Error("database operation failed")
	return message(c, http.StatusInternalServerError, msgDatabase)
}

// createOne binds a T from the body, inserts it and answers 201 {"id": N}.
// prepare may adjust the bound value before the insert.  The returned id is
// zero unless the row was written.
func createOne[T any](c echo.Context, log logrus.FieldLogger, op string, store Store[T], prepare func(*T)) (T, uint64, error) {
	var item T
	if err := c.Bind(&item); err != nil {
		return item, 0, message(c, http.StatusBadRequest, msgInvalidBody)
	}
	if prepare != nil {
		prepare(&item)
	}
	ctx, cancel := dbContext(c)
	defer cancel()
	id, err := store.Create(ctx, item)
	if err != nil {
		return item, 0, dbFailure(c, log, op, err)
	}
	return item, id, c.JSON(http.StatusCreated, echo.Map{"id": id})
}

func listAll[T any](c echo.Context, log logrus.FieldLogger, op string, store Store[T]) error {
	ctx, cancel := dbContext(c)
	defer cancel()
	items, err := store.List(ctx)
	if err != nil {
		return dbFailure(c, log, op, err)
	}
	return c.JSON(http.StatusOK, items)
}

func getOne[T any](c echo.Context, log logrus.FieldLogger, op string, store Store[T]) error {
	id, ok := parseID(c)
	if !ok {
		return message(c, http.StatusBadRequest, msgInvalidID)
	}
	ctx, cancel := dbContext(c)
	defer cancel()
	item, err := store.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return message(c, http.StatusNotFound, msgNotFound)
	}
	if err != nil {
		return dbFailure(c, log, op, err)
	}
	return c.JSON(http.StatusOK, item)
}

// updateOne binds a full replacement record and writes it by :id.  setID
// copies the path id into the record.  The answer does not depend on
// whether a row matched; matched is zero unless one did.
func updateOne[T any](c echo.Context, log logrus.FieldLogger, op, entity string, store MutableStore[T], setID func(*T, uint64)) (item T, matched int64, err error) {
	id, ok := parseID(c)
	if !ok {
		return item, 0, message(c, http.StatusBadRequest, msgInvalidID)
	}
	if err := c.Bind(&item); err != nil {
		return item, 0, message(c, http.StatusBadRequest, msgInvalidBody)
	}
	setID(&item, id)
	ctx, cancel := dbContext(c)
	defer cancel()
	matched, err = store.Update(ctx, item)
	if err != nil {
		return item, 0, dbFailure(c, log, op, err)
	}
	return item, matched, message(c, http.StatusOK, entity+" updated successfully.")
}

// deleteOne removes the :id row.  Deleting a missing row still succeeds.
func deleteOne[T any](c echo.Context, log logrus.FieldLogger, op, entity string, store Store[T]) (bool, error) {
	id, ok := parseID(c)
	if !ok {
		return false, message(c, http.StatusBadRequest, msgInvalidID)
	}
	ctx, cancel := dbContext(c)
	defer cancel()
	if err := store.Delete(ctx, id); err != nil {
		return false, dbFailure(c, log, op, err)
	}
	return true, message(c, http.StatusOK, entity+" deleted successfully.")
}
