package economy

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Saucepai/BotinBlackDashboard/internal/audit"
)

// WarrantNotifier receives the public broadcast when a fine increase
// crosses the warrant threshold. The bot wires this to the warrant
// channel; headless processes may leave it nil.
type WarrantNotifier interface {
	WarrantIssued(ctx context.Context, notice WarrantNotice)
}

// Service owns every account, fine, inventory and property mutation.
// Each mutation runs in one serializable transaction with row locks, so
// two concurrent spends against the same account cannot both read the
// same before-balance.
type Service struct {
	db     *pgxpool.Pool
	log    *slog.Logger
	audit  *audit.Logger
	notify WarrantNotifier
}

func NewService(db *pgxpool.Pool, logger *slog.Logger, auditor *audit.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{db: db, log: logger, audit: auditor}
}

// SetWarrantNotifier installs the broadcast sink. Safe to leave unset.
func (s *Service) SetWarrantNotifier(n WarrantNotifier) {
	s.notify = n
}

const accountColumns = `"UserID", "Username",
	"Cash", "Bank", "Stash", "Fines", "Coupons",
	"Warrant", "Rate", "Tax",
	"Horses", "Treasure", "Food", "Potion", "Hunting", "Consumable",
	"Bow", "Pistol", "Revolver", "Rifle", "Repeater", "Shotgun",
	"License", "Other", "Properties",
	"Outlaw", "Ranch", "SmallBusiness", "BigBusiness", "Utility",
	"Homestead", "HomesteadCount"`

type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func scanAccount(row pgx.Row) (*Account, error) {
	var a Account
	err := row.Scan(
		&a.UserID, &a.Username,
		&a.Cash, &a.Bank, &a.Stash, &a.Fines, &a.Coupons,
		&a.Warrant, &a.Rate, &a.Tax,
		&a.Horses, &a.Treasure, &a.Food, &a.Potion, &a.Hunting, &a.Consumable,
		&a.Bow, &a.Pistol, &a.Revolver, &a.Rifle, &a.Repeater, &a.Shotgun,
		&a.License, &a.Other, &a.Properties,
		&a.Outlaw, &a.Ranch, &a.SmallBusiness, &a.BigBusiness, &a.Utility,
		&a.Homestead, &a.HomesteadCount,
	)
	if err == pgx.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func getAccount(ctx context.Context, q rowQuerier, userID string, lock bool) (*Account, error) {
	query := `SELECT ` + accountColumns + ` FROM users WHERE "UserID" = $1`
	if lock {
		query += " FOR UPDATE"
	}
	return scanAccount(q.QueryRow(ctx, query, userID))
}

// GetAccount loads one player's full row.
func (s *Service) GetAccount(ctx context.Context, userID string) (*Account, error) {
	return getAccount(ctx, s.db, userID, false)
}

// withTx runs fn inside a serializable transaction, retrying on
// serialization conflicts with backoff, as the datastore may abort one of
// two overlapping mutations.
func (s *Service) withTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	const maxAttempts = 8
	retryDelay := 75 * time.Millisecond
	for attempt := 0; attempt < maxAttempts; attempt++ {
		tx, err := s.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
		if err != nil {
			return err
		}
		err = func() error {
			defer tx.Rollback(ctx)
			if err := fn(tx); err != nil {
				return err
			}
			return tx.Commit(ctx)
		}()
		if err == nil {
			return nil
		}
		if !isSerializationError(err) {
			return err
		}
		if attempt == maxAttempts-1 {
			return ErrTxConflict
		}
		if err := sleepWithContext(ctx, retryDelay); err != nil {
			return err
		}
		if retryDelay < 1200*time.Millisecond {
			retryDelay *= 2
		}
	}
	return ErrTxConflict
}

func isSerializationError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "40001"
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// AdjustBalance applies a signed delta to Cash, Bank or Stash. The
// result may not go below zero; on violation nothing is written and no
// audit entry is appended.
func (s *Service) AdjustBalance(ctx context.Context, actor Actor, command, userID, field string, delta int64) (BalanceChange, error) {
	if !ValidBalanceField(field) {
		return BalanceChange{}, fmt.Errorf("%w: %s", ErrInvalidField, field)
	}
	var out BalanceChange
	var username string
	err := s.withTx(ctx, func(tx pgx.Tx) error {
		a, err := getAccount(ctx, tx, userID, true)
		if err != nil {
			return err
		}
		username = a.Username
		before := a.Cash
		switch field {
		case "Bank":
			before = a.Bank
		case "Stash":
			before = a.Stash
		}
		after := before + delta
		if after < 0 {
			return fmt.Errorf("%w: %s cannot go below zero", ErrInsufficientFunds, field)
		}
		out = BalanceChange{Field: field, Before: before, After: after}
		_, err = tx.Exec(ctx, fmt.Sprintf(`UPDATE users SET %q = $1 WHERE "UserID" = $2`, field), after, userID)
		return err
	})
	if err != nil {
		return BalanceChange{}, err
	}
	s.audit.Append(audit.Entry{
		Command:       command,
		UserID:        userID,
		Username:      username,
		GuildID:       actor.GuildID,
		Amount:        delta,
		BalanceBefore: audit.Int64(out.Before),
		BalanceAfter:  audit.Int64(out.After),
		Source:        actor.Source,
		Metadata:      actorMetadata(actor, map[string]any{"field": field}),
	})
	return out, nil
}

// SpendCombined debits price across cash first, then bank, in one write.
func (s *Service) SpendCombined(ctx context.Context, actor Actor, command, userID string, price int64) (SpendResult, error) {
	var out SpendResult
	var username string
	err := s.withTx(ctx, func(tx pgx.Tx) error {
		a, err := getAccount(ctx, tx, userID, true)
		if err != nil {
			return err
		}
		username = a.Username
		res, err := spendCombinedTx(ctx, tx, a, price)
		if err != nil {
			return err
		}
		out = res
		return nil
	})
	if err != nil {
		return SpendResult{}, err
	}
	s.audit.Append(audit.Entry{
		Command:       command,
		UserID:        userID,
		Username:      username,
		GuildID:       actor.GuildID,
		Amount:        price,
		BalanceBefore: audit.Int64(out.TotalBefore()),
		BalanceAfter:  audit.Int64(out.TotalAfter()),
		Source:        actor.Source,
		Metadata:      actorMetadata(actor, nil),
	})
	return out, nil
}

// spendCombinedTx applies the multi-bucket debit to an already-locked
// account row.
func spendCombinedTx(ctx context.Context, tx pgx.Tx, a *Account, price int64) (SpendResult, error) {
	spendCash, spendBank, ok := splitSpend(a.Cash, a.Bank, price)
	if !ok {
		return SpendResult{}, fmt.Errorf("%w: need $%d, have $%d", ErrInsufficientFunds, price, a.Cash+a.Bank)
	}
	out := SpendResult{
		CashBefore: a.Cash,
		BankBefore: a.Bank,
		CashAfter:  a.Cash - spendCash,
		BankAfter:  a.Bank - spendBank,
	}
	_, err := tx.Exec(ctx,
		`UPDATE users SET "Cash" = $1, "Bank" = $2 WHERE "UserID" = $3`,
		out.CashAfter, out.BankAfter, a.UserID)
	if err != nil {
		return SpendResult{}, err
	}
	a.Cash = out.CashAfter
	a.Bank = out.BankAfter
	return out, nil
}

// AddFine increases a player's fines. Crossing the warrant threshold
// upward sets the warrant flag and emits the public broadcast; piling
// fines onto an already-active warrant stays quiet.
func (s *Service) AddFine(ctx context.Context, actor Actor, userID string, amount int64) (FineResult, error) {
	if amount < 0 {
		return FineResult{}, fmt.Errorf("fine amount must not be negative")
	}
	var out FineResult
	var username string
	err := s.withTx(ctx, func(tx pgx.Tx) error {
		a, err := getAccount(ctx, tx, userID, true)
		if err != nil {
			return err
		}
		username = a.Username
		out.FinesBefore = a.Fines
		out.FinesAfter = a.Fines + amount
		out.WarrantIssued = warrantCrossed(out.FinesBefore, out.FinesAfter)
		warrant := a.Warrant || out.FinesAfter >= WarrantThreshold
		_, err = tx.Exec(ctx,
			`UPDATE users SET "Fines" = $1, "Warrant" = $2 WHERE "UserID" = $3`,
			out.FinesAfter, warrant, userID)
		return err
	})
	if err != nil {
		return FineResult{}, err
	}
	s.audit.Append(audit.Entry{
		Command:       "admin-add-fines",
		UserID:        userID,
		Username:      username,
		GuildID:       actor.GuildID,
		Amount:        amount,
		BalanceBefore: audit.Int64(out.FinesBefore),
		BalanceAfter:  audit.Int64(out.FinesAfter),
		Source:        actor.Source,
		Metadata:      actorMetadata(actor, map[string]any{"warrantIssued": out.WarrantIssued}),
	})
	if out.WarrantIssued && s.notify != nil {
		s.notify.WarrantIssued(ctx, WarrantNotice{
			UserID:     userID,
			Username:   username,
			TotalFines: out.FinesAfter,
		})
	}
	return out, nil
}

// RemoveFine decreases a player's fines, clamping at zero; reaching zero
// clears the warrant. Removing more than is owed fails outright.
func (s *Service) RemoveFine(ctx context.Context, actor Actor, userID string, amount int64) (FineRemoval, error) {
	if amount < 0 {
		return FineRemoval{}, fmt.Errorf("fine amount must not be negative")
	}
	var out FineRemoval
	var username string
	err := s.withTx(ctx, func(tx pgx.Tx) error {
		a, err := getAccount(ctx, tx, userID, true)
		if err != nil {
			return err
		}
		username = a.Username
		after, cleared, ok := settleFines(a.Fines, amount)
		if !ok {
			return fmt.Errorf("%w: only $%d owed", ErrInsufficientFines, a.Fines)
		}
		out.FinesBefore = a.Fines
		out.FinesAfter = after
		out.WarrantCleared = cleared
		warrant := a.Warrant && !cleared
		_, err = tx.Exec(ctx,
			`UPDATE users SET "Fines" = $1, "Warrant" = $2 WHERE "UserID" = $3`,
			out.FinesAfter, warrant, userID)
		return err
	})
	if err != nil {
		return FineRemoval{}, err
	}
	s.audit.Append(audit.Entry{
		Command:       "admin-remove-fines",
		UserID:        userID,
		Username:      username,
		GuildID:       actor.GuildID,
		Amount:        amount,
		BalanceBefore: audit.Int64(out.FinesBefore),
		BalanceAfter:  audit.Int64(out.FinesAfter),
		Source:        actor.Source,
		Metadata:      actorMetadata(actor, map[string]any{"warrantCleared": out.WarrantCleared}),
	})
	return out, nil
}

// ClearWarrant unconditionally lifts a warrant, resetting Rate to zero
// and Tax to now. Returns false without error when no warrant was active.
func (s *Service) ClearWarrant(ctx context.Context, actor Actor, userID string) (bool, error) {
	var cleared bool
	var username string
	err := s.withTx(ctx, func(tx pgx.Tx) error {
		a, err := getAccount(ctx, tx, userID, true)
		if err != nil {
			return err
		}
		username = a.Username
		if !a.Warrant {
			cleared = false
			return nil
		}
		cleared = true
		_, err = tx.Exec(ctx,
			`UPDATE users SET "Warrant" = false, "Rate" = 0, "Tax" = $1 WHERE "UserID" = $2`,
			time.Now().UTC(), userID)
		return err
	})
	if err != nil {
		return false, err
	}
	if cleared {
		s.audit.Append(audit.Entry{
			Command:  "admin-remove-warrant",
			UserID:   userID,
			Username: username,
			GuildID:  actor.GuildID,
			Source:   actor.Source,
			Metadata: actorMetadata(actor, nil),
		})
	}
	return cleared, nil
}

// UpdateInventory adds or removes copies of an item in one inventory
// column. Removal stops at whatever is available; removed reports the
// actual count taken.
func (s *Service) UpdateInventory(ctx context.Context, actor Actor, userID, column, item, action string, qty int) (updated string, removed int, err error) {
	if !ValidInventoryColumn(column) {
		return "", 0, fmt.Errorf("%w: %s", ErrInvalidColumn, column)
	}
	if qty < 1 {
		return "", 0, fmt.Errorf("quantity must be a positive integer")
	}
	if action != "add" && action != "remove" {
		return "", 0, fmt.Errorf("action must be add or remove")
	}
	err = s.withTx(ctx, func(tx pgx.Tx) error {
		a, err := getAccount(ctx, tx, userID, true)
		if err != nil {
			return err
		}
		raw := a.InventoryColumn(column)
		if action == "add" {
			updated = AddItems(raw, item, qty)
			removed = 0
		} else {
			updated, removed = RemoveItems(raw, item, qty)
		}
		_, err = tx.Exec(ctx, fmt.Sprintf(`UPDATE users SET %q = $1 WHERE "UserID" = $2`, column), updated, userID)
		return err
	})
	if err != nil {
		return "", 0, err
	}
	s.audit.Append(audit.Entry{
		Command: "inventory-update",
		UserID:  userID,
		GuildID: actor.GuildID,
		Amount:  int64(qty),
		Source:  actor.Source,
		Metadata: actorMetadata(actor, map[string]any{
			"column": column,
			"item":   item,
			"action": action,
		}),
	})
	return updated, removed, nil
}

// BuyItem purchases qty copies of a catalog item: enforces the category
// ownership limit, debits combined cash+bank, and appends the copies to
// the category column, all in one transaction.
func (s *Service) BuyItem(ctx context.Context, actor Actor, userID string, item StoreItem, column string, qty int) (SpendResult, error) {
	if !ValidInventoryColumn(column) {
		return SpendResult{}, fmt.Errorf("%w: %s", ErrInvalidColumn, column)
	}
	if qty < 1 {
		return SpendResult{}, fmt.Errorf("quantity must be a positive integer")
	}
	var out SpendResult
	var username string
	err := s.withTx(ctx, func(tx pgx.Tx) error {
		a, err := getAccount(ctx, tx, userID, true)
		if err != nil {
			return err
		}
		username = a.Username
		if limit, ok := ItemLimit(item.Type); ok {
			owned := CountOf(a.InventoryColumn(column), item.Name)
			if owned+qty > limit {
				return fmt.Errorf("%w: %s limit is %d", ErrLimitExceeded, strings.ToLower(item.Type), limit)
			}
		}
		out, err = spendCombinedTx(ctx, tx, a, item.Price*int64(qty))
		if err != nil {
			return err
		}
		updated := AddItems(a.InventoryColumn(column), item.Name, qty)
		_, err = tx.Exec(ctx, fmt.Sprintf(`UPDATE users SET %q = $1 WHERE "UserID" = $2`, column), updated, userID)
		return err
	})
	if err != nil {
		return SpendResult{}, err
	}
	s.audit.Append(audit.Entry{
		Command:       "item-buy",
		UserID:        userID,
		Username:      username,
		GuildID:       actor.GuildID,
		Amount:        item.Price * int64(qty),
		BalanceBefore: audit.Int64(out.TotalBefore()),
		BalanceAfter:  audit.Int64(out.TotalAfter()),
		Source:        actor.Source,
		Metadata:      actorMetadata(actor, map[string]any{"item": item.Name, "quantity": qty}),
	})
	return out, nil
}

// SellItem sells qty owned copies back at list price, crediting Cash.
// Unlike admin removal, a player sale fails when the stock is short.
func (s *Service) SellItem(ctx context.Context, actor Actor, userID string, item StoreItem, column string, qty int) (BalanceChange, error) {
	if !ValidInventoryColumn(column) {
		return BalanceChange{}, fmt.Errorf("%w: %s", ErrInvalidColumn, column)
	}
	if qty < 1 {
		return BalanceChange{}, fmt.Errorf("quantity must be a positive integer")
	}
	var out BalanceChange
	var username string
	err := s.withTx(ctx, func(tx pgx.Tx) error {
		a, err := getAccount(ctx, tx, userID, true)
		if err != nil {
			return err
		}
		username = a.Username
		raw := a.InventoryColumn(column)
		if CountOf(raw, item.Name) < qty {
			return fmt.Errorf("%w: own %d of %s", ErrInsufficientItems, CountOf(raw, item.Name), item.Name)
		}
		updated, _ := RemoveItems(raw, item.Name, qty)
		out = BalanceChange{Field: "Cash", Before: a.Cash, After: a.Cash + item.Price*int64(qty)}
		_, err = tx.Exec(ctx,
			fmt.Sprintf(`UPDATE users SET %q = $1, "Cash" = $2 WHERE "UserID" = $3`, column),
			updated, out.After, userID)
		return err
	})
	if err != nil {
		return BalanceChange{}, err
	}
	s.audit.Append(audit.Entry{
		Command:       "item-sell",
		UserID:        userID,
		Username:      username,
		GuildID:       actor.GuildID,
		Amount:        item.Price * int64(qty),
		BalanceBefore: audit.Int64(out.Before),
		BalanceAfter:  audit.Int64(out.After),
		Source:        actor.Source,
		Metadata:      actorMetadata(actor, map[string]any{"item": item.Name, "quantity": qty}),
	})
	return out, nil
}

// SearchItems returns general-store items whose name contains query,
// case-insensitively.
func (s *Service) SearchItems(ctx context.Context, query string) ([]StoreItem, error) {
	rows, err := s.db.Query(ctx, `
		SELECT "Name", "Price", "Type", "Details"
		FROM items
		WHERE "Name" ILIKE '%' || $1 || '%'
		ORDER BY "Name"
	`, strings.TrimSpace(query))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanItems(rows)
}

// ListNazarItems returns Madam Nazar's current catalog.
func (s *Service) ListNazarItems(ctx context.Context) ([]StoreItem, error) {
	rows, err := s.db.Query(ctx, `
		SELECT "Name", "Price", "Type", "Details"
		FROM nazar_items
		ORDER BY "Name"
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanItems(rows)
}

func scanItems(rows pgx.Rows) ([]StoreItem, error) {
	var out []StoreItem
	for rows.Next() {
		var it StoreItem
		if err := rows.Scan(&it.Name, &it.Price, &it.Type, &it.Details); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func actorMetadata(actor Actor, extra map[string]any) map[string]any {
	md := make(map[string]any, len(extra)+2)
	if actor.ID != "" {
		md["adminId"] = actor.ID
	}
	if actor.Username != "" {
		md["adminUsername"] = actor.Username
	}
	for k, v := range extra {
		md[k] = v
	}
	if len(md) == 0 {
		return nil
	}
	return md
}
