package docstore

import (
	"context"
	"errors"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wanderbase/wanderbase/internal/app/common"
)

func newMockContainer(t *testing.T) (*PGContainer, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewPGContainer(CollectionRoutes, mock, zap.NewNop()), mock
}

func TestCreateItem(t *testing.T) {
	c, mock := newMockContainer(t)

	mock.ExpectExec(`INSERT INTO doc_routes (id, partition_key, body) VALUES ($1, $2, $3)`).
		WithArgs("id-1", "id-1", []byte(`{"id":"id-1"}`)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := c.CreateItem(context.Background(), "id-1", "id-1", []byte(`{"id":"id-1"}`))
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReadItem_NotFoundSentinel(t *testing.T) {
	c, mock := newMockContainer(t)

	mock.ExpectQuery(`SELECT body FROM doc_routes WHERE id = $1 AND partition_key = $2`).
		WithArgs("missing", "missing").
		WillReturnRows(pgxmock.NewRows([]string{"body"}))

	body, err := c.ReadItem(context.Background(), "missing", "missing")
	assert.Nil(t, body)
	assert.ErrorIs(t, err, ErrItemNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReadItem_ReturnsBody(t *testing.T) {
	c, mock := newMockContainer(t)

	mock.ExpectQuery(`SELECT body FROM doc_routes WHERE id = $1 AND partition_key = $2`).
		WithArgs("id-1", "id-1").
		WillReturnRows(pgxmock.NewRows([]string{"body"}).AddRow([]byte(`{"id":"id-1","status":"new"}`)))

	body, err := c.ReadItem(context.Background(), "id-1", "id-1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"id-1","status":"new"}`, string(body))
}

func TestReplaceItem_MissingRowIsNotFound(t *testing.T) {
	c, mock := newMockContainer(t)

	mock.ExpectExec(`UPDATE doc_routes SET body = $3 WHERE id = $1 AND partition_key = $2`).
		WithArgs("missing", "missing", []byte(`{}`)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := c.ReplaceItem(context.Background(), "missing", "missing", []byte(`{}`))
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestDeleteItem_MissingRowIsNotFound(t *testing.T) {
	c, mock := newMockContainer(t)

	mock.ExpectExec(`DELETE FROM doc_routes WHERE id = $1 AND partition_key = $2`).
		WithArgs("missing", "missing").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := c.DeleteItem(context.Background(), "missing", "missing")
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestStorageErrorCarriesCollectionAndOp(t *testing.T) {
	c, mock := newMockContainer(t)

	mock.ExpectExec(`DELETE FROM doc_routes WHERE id = $1 AND partition_key = $2`).
		WithArgs("id-1", "id-1").
		WillReturnError(errors.New("connection refused"))

	err := c.DeleteItem(context.Background(), "id-1", "id-1")
	var storageErr *common.StorageError
	require.ErrorAs(t, err, &storageErr)
	assert.Equal(t, CollectionRoutes, storageErr.Collection)
	assert.Equal(t, "DeleteItem", storageErr.Op)
}

func TestQueryItems(t *testing.T) {
	c, mock := newMockContainer(t)

	mock.ExpectQuery(`SELECT body FROM doc_routes WHERE body->>$1 = $2 ORDER BY created_at DESC`).
		WithArgs("status", "confirmed").
		WillReturnRows(pgxmock.NewRows([]string{"body"}).
			AddRow([]byte(`{"id":"b"}`)).
			AddRow([]byte(`{"id":"a"}`)))

	bodies, err := c.QueryItems(context.Background(), Query{
		Filters: map[string]any{"status": "confirmed"},
		OrderBy: []Order{{Field: "createdAt", Desc: true}},
	})
	require.NoError(t, err)
	require.Len(t, bodies, 2)
	assert.JSONEq(t, `{"id":"b"}`, string(bodies[0]))
	assert.JSONEq(t, `{"id":"a"}`, string(bodies[1]))
}
