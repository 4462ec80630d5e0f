package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConversationRepoGetConversation(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewConversationRepo(db)

		now := time.Now()
		mock.ExpectQuery(`SELECT .* FROM "conversations" WHERE .*id.*`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "type", "peer_key", "max_msg_seq", "last_message_at", "created_at", "updated_at"}).
				AddRow(3, 1, "1_2", 7, now, now, now))

		conv, err := repo.GetConversation(context.Background(), 3)
		require.NoError(t, err)
		require.NotNil(t, conv)
		assert.Equal(t, uint64(7), conv.MaxMsgSeq)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row maps to nil", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewConversationRepo(db)

		mock.ExpectQuery(`SELECT .* FROM "conversations" WHERE .*id.*`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		conv, err := repo.GetConversation(context.Background(), 99)
		require.NoError(t, err)
		assert.Nil(t, conv)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestConversationRepoGetConversationByPeerKey(t *testing.T) {
	t.Run("missing row maps to nil", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewConversationRepo(db)

		mock.ExpectQuery(`SELECT .* FROM "conversations" WHERE peer_key`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		conv, err := repo.GetConversationByPeerKey(context.Background(), "1_2")
		require.NoError(t, err)
		assert.Nil(t, conv)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewConversationRepo(db)

		now := time.Now()
		mock.ExpectQuery(`SELECT .* FROM "conversations" WHERE peer_key`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "type", "peer_key", "max_msg_seq", "last_message_at", "created_at", "updated_at"}).
				AddRow(5, 1, "1_2", 0, now, now, now))

		conv, err := repo.GetConversationByPeerKey(context.Background(), "1_2")
		require.NoError(t, err)
		require.NotNil(t, conv)
		assert.Equal(t, uint64(5), conv.ID)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}
