package chat

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// PostgresSessionStore is the production SessionStore backed by the
// chat_sessions table.
type PostgresSessionStore struct {
	db *sql.DB
}

func NewPostgresSessionStore(db *sql.DB) *PostgresSessionStore {
	return &PostgresSessionStore{db: db}
}

var _ SessionStore = (*PostgresSessionStore)(nil)

const sessionColumns = `farmer_phone, conversation_state, COALESCE(farmer_name, ''),
	COALESCE(temp_full_address, ''), COALESCE(current_listing_id::text, ''), last_message_at, created_at`

func (s *PostgresSessionStore) Get(ctx context.Context, farmerPhone string) (*Session, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+sessionColumns+` FROM chat_sessions WHERE farmer_phone = $1`, farmerPhone)
	return scanSession(row)
}

func (s *PostgresSessionStore) Create(ctx context.Context, session *Session) (*Session, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO chat_sessions (farmer_phone, conversation_state, last_message_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (farmer_phone) DO UPDATE SET
			conversation_state = EXCLUDED.conversation_state,
			last_message_at = EXCLUDED.last_message_at
		RETURNING `+sessionColumns,
		session.FarmerPhone, string(session.State), session.LastMessageAt)
	return scanSession(row)
}

func (s *PostgresSessionStore) Update(ctx context.Context, farmerPhone string, update SessionUpdate) (*Session, error) {
	query, args := buildSessionUpdate(farmerPhone, update, "")
	row := s.db.QueryRowContext(ctx, query, args...)
	session, err := scanSession(row)
	if errors.Is(err, ErrSessionNotFound) {
		return nil, ErrSessionNotFound
	}
	return session, err
}

func (s *PostgresSessionStore) UpdateIfState(ctx context.Context, farmerPhone string, expected State, update SessionUpdate) (*Session, error) {
	query, args := buildSessionUpdate(farmerPhone, update, expected)
	row := s.db.QueryRowContext(ctx, query, args...)
	session, err := scanSession(row)
	if errors.Is(err, ErrSessionNotFound) {
		// Distinguish a missing row from a lost race.
		if _, getErr := s.Get(ctx, farmerPhone); getErr == nil {
			return nil, ErrStateConflict
		}
		return nil, ErrSessionNotFound
	}
	return session, err
}

// buildSessionUpdate assembles a single UPDATE covering only the fields the
// caller set. When expected is non-empty the WHERE clause also pins the
// current state, making the update a compare-and-swap.
func buildSessionUpdate(farmerPhone string, update SessionUpdate, expected State) (string, []any) {
	sets := make([]string, 0, 6)
	args := make([]any, 0, 8)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if update.State != nil {
		sets = append(sets, "conversation_state = "+arg(string(*update.State)))
	}
	if update.FarmerName != nil {
		sets = append(sets, "farmer_name = "+arg(*update.FarmerName))
	}
	if update.TempFullAddress != nil {
		sets = append(sets, "temp_full_address = "+arg(*update.TempFullAddress))
	}
	if update.ClearTempAddress {
		sets = append(sets, "temp_full_address = NULL")
	}
	if update.CurrentListingID != nil {
		sets = append(sets, "current_listing_id = "+arg(*update.CurrentListingID)+"::uuid")
	}
	if update.ClearListing {
		sets = append(sets, "current_listing_id = NULL")
	}
	if !update.LastMessageAt.IsZero() {
		sets = append(sets, "last_message_at = "+arg(update.LastMessageAt))
	} else {
		sets = append(sets, "last_message_at = "+arg(time.Now().UTC()))
	}

	where := "farmer_phone = " + arg(farmerPhone)
	if expected != "" {
		where += " AND conversation_state = " + arg(string(expected))
	}

	query := "UPDATE chat_sessions SET " + strings.Join(sets, ", ") +
		" WHERE " + where + " RETURNING " + sessionColumns
	return query, args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*Session, error) {
	var session Session
	var state string
	err := row.Scan(&session.FarmerPhone, &state, &session.FarmerName,
		&session.TempFullAddress, &session.CurrentListingID,
		&session.LastMessageAt, &session.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("chat: scan session: %w", err)
	}
	session.State = State(state)
	return &session, nil
}
