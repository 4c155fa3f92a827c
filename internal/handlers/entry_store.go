package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"fitness-tracker/internal/interfaces"
	"fitness-tracker/internal/schemas"
	"fitness-tracker/internal/utils"
)

// entryStore holds the SQL shape of one user-owned entry table.
type entryStore[T any] struct {
	table   string
	columns string
	scan    func(row pgx.Row) (*T, error)
	owner   func(entry *T) uuid.UUID
}

var weightStore = entryStore[schemas.WeightEntry]{
	table:   "weight_entries",
	columns: "id, user_id, weight, unit, date, notes, created_at, updated_at",
	scan: func(row pgx.Row) (*schemas.WeightEntry, error) {
		entry := &schemas.WeightEntry{}
		err := row.Scan(&entry.ID, &entry.UserID, &entry.Weight, &entry.Unit, &entry.Date, &entry.Notes,
			&entry.CreatedAt, &entry.UpdatedAt)
		return entry, err
	},
	owner: func(entry *schemas.WeightEntry) uuid.UUID { return entry.UserID },
}

var activityStore = entryStore[schemas.ActivityEntry]{
	table:   "activity_entries",
	columns: "id, user_id, type, duration, unit, calories_burned, date, notes, created_at, updated_at",
	scan: func(row pgx.Row) (*schemas.ActivityEntry, error) {
		entry := &schemas.ActivityEntry{}
		err := row.Scan(&entry.ID, &entry.UserID, &entry.Type, &entry.Duration, &entry.Unit, &entry.CaloriesBurned,
			&entry.Date, &entry.Notes, &entry.CreatedAt, &entry.UpdatedAt)
		return entry, err
	},
	owner: func(entry *schemas.ActivityEntry) uuid.UUID { return entry.UserID },
}

var photoStore = entryStore[schemas.ProgressPhoto]{
	table:   "progress_photos",
	columns: "id, user_id, date, caption, image, content_type, created_at",
	scan: func(row pgx.Row) (*schemas.ProgressPhoto, error) {
		photo := &schemas.ProgressPhoto{}
		err := row.Scan(&photo.ID, &photo.UserID, &photo.Date, &photo.Caption, &photo.Image, &photo.ContentType,
			&photo.CreatedAt)
		return photo, err
	},
	owner: func(photo *schemas.ProgressPhoto) uuid.UUID { return photo.UserID },
}

const newestFirst = " ORDER BY date DESC, created_at DESC"

func (s entryStore[T]) findById(ctx context.Context, querier interfaces.Querier, id uuid.UUID, forUpdate bool) (*T, error) {
	queryString := "SELECT " + s.columns + " FROM " + s.table + " WHERE id = $1"
	if forUpdate {
		queryString += " FOR UPDATE"
	}
	return s.scan(querier.QueryRow(ctx, queryString, id))
}

func (s entryStore[T]) collect(rows pgx.Rows) ([]*T, error) {
	defer rows.Close()

	entries := make([]*T, 0)
	for rows.Next() {
		entry, err := s.scan(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// count returns the number of entries matching the filter.
func (s entryStore[T]) count(ctx context.Context, querier interfaces.Querier, userId uuid.UUID, filter utils.EntryFilter) (int, error) {
	where, args := filter.WhereClause(userId)
	var total int
	err := querier.QueryRow(ctx, "SELECT COUNT(*) FROM "+s.table+" WHERE "+where, args...).Scan(&total)
	return total, err
}

// page returns one page of matching entries, newest first.
func (s entryStore[T]) page(ctx context.Context, querier interfaces.Querier, userId uuid.UUID, filter utils.EntryFilter, params utils.PageParams) ([]*T, error) {
	where, args := filter.WhereClause(userId)
	queryString := "SELECT " + s.columns + " FROM " + s.table + " WHERE " + where + newestFirst +
		" LIMIT $" + strconv.Itoa(len(args)+1) + " OFFSET $" + strconv.Itoa(len(args)+2)

	rows, err := querier.Query(ctx, queryString, append(args, params.Limit, params.Offset())...)
	if err != nil {
		return nil, err
	}
	return s.collect(rows)
}

// all returns every matching entry, newest first.
func (s entryStore[T]) all(ctx context.Context, querier interfaces.Querier, userId uuid.UUID, filter utils.EntryFilter) ([]*T, error) {
	where, args := filter.WhereClause(userId)
	rows, err := querier.Query(ctx, "SELECT "+s.columns+" FROM "+s.table+" WHERE "+where+newestFirst, args...)
	if err != nil {
		return nil, err
	}
	return s.collect(rows)
}

func (s entryStore[T]) deleteById(ctx context.Context, querier interfaces.Querier, id uuid.UUID) error {
	_, err := querier.Exec(ctx, "DELETE FROM "+s.table+" WHERE id = $1", id)
	return err
}

// loadOwnedEntry resolves the entry named in the path and checks that the authenticated user owns it.
// Unknown and malformed ids yield 404, foreign entries 403. On failure the response is written and nil returned.
func loadOwnedEntry[T any](ctx *gin.Context, querier interfaces.Querier, store entryStore[T], forUpdate bool) *T {
	entryId, err := uuid.Parse(ctx.Param(utils.EntryIdKey))
	if err != nil {
		utils.WriteAndLogError(ctx, schemas.NotFound, http.StatusNotFound, err)
		return nil
	}

	entry, err := store.findById(ctx, querier, entryId, forUpdate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.WriteAndLogError(ctx, schemas.NotFound, http.StatusNotFound, err)
			return nil
		}
		utils.WriteAndLogError(ctx, schemas.DatabaseError, http.StatusInternalServerError, err)
		return nil
	}

	user := utils.GetAuthenticatedUser(ctx)
	if store.owner(entry) != user.ID {
		utils.WriteAndLogError(ctx, schemas.Forbidden, http.StatusForbidden, errors.New("entry owned by another user"))
		return nil
	}

	return entry
}

// parseListQuery reads filter and pagination, answering 400 with every violation on malformed values.
func parseListQuery(ctx *gin.Context, units []string, allowType, paginate bool) (utils.EntryFilter, utils.PageParams, bool) {
	filter, violations := utils.ParseEntryFilter(ctx, units, allowType)

	var params utils.PageParams
	if paginate {
		var pageViolations []schemas.FieldError
		params, pageViolations = utils.ParsePageParams(ctx)
		violations = append(violations, pageViolations...)
	}

	if len(violations) > 0 {
		utils.WriteAndLogError(ctx, schemas.ValidationFailed.WithDetails(violations), http.StatusBadRequest, errors.New("query invalid"))
		return filter, params, false
	}
	return filter, params, true
}
