package pagination

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCursorRoundTrip(t *testing.T) {
	token, err := EncodeCursor(Cursor{ID: "42", CreatedAt: "2024-03-15T10:00:00Z"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	cursor, err := DecodeCursor(token)
	require.NoError(t, err)
	require.Equal(t, "42", cursor.ID)
	require.Equal(t, "2024-03-15T10:00:00Z", cursor.CreatedAt)
}

func TestDecodeCursorRejectsGarbage(t *testing.T) {
	_, err := DecodeCursor("not base64 !!!")
	require.Error(t, err)

	_, err = DecodeCursor("bm90IGpzb24=")
	require.Error(t, err)
}

type row struct {
	id string
}

func TestBuildCursorPageInfo(t *testing.T) {
	rows := []*row{{id: "1"}, {id: "2"}, {id: "3"}}
	extract := func(r *row) string { return r.id }

	info := BuildCursorPageInfo(rows, 2, extract)
	require.True(t, info.HasMore)
	require.Equal(t, "2", info.NextPageToken)

	info = BuildCursorPageInfo(rows, 3, extract)
	require.False(t, info.HasMore)
	require.Equal(t, "3", info.NextPageToken)

	info = BuildCursorPageInfo(nil, 10, extract)
	require.False(t, info.HasMore)
	require.Empty(t, info.NextPageToken)
}
