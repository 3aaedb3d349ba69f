package economy

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Saucepai/BotinBlackDashboard/internal/audit"
)

// Property transfers update the property row and the owner's Properties
// mirror in the same transaction, so the two sides cannot drift apart on
// a mid-operation failure.

const propertyColumns = `"Key", "Name", "Price", "Details", "Type", "Location",
	COALESCE("UserID", ''), COALESCE("Owner", '')`

func scanProperty(row pgx.Row) (*Property, error) {
	var p Property
	err := row.Scan(&p.Key, &p.Name, &p.Price, &p.Details, &p.Type, &p.Location, &p.UserID, &p.Owner)
	if err == pgx.ErrNoRows {
		return nil, ErrPropertyNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func getProperty(ctx context.Context, q rowQuerier, name string, lock bool) (*Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE LOWER("Name") = LOWER($1)`
	if lock {
		query += " FOR UPDATE"
	}
	return scanProperty(q.QueryRow(ctx, query, name))
}

// GetProperty looks a property up by name, case-insensitively.
func (s *Service) GetProperty(ctx context.Context, name string) (*Property, error) {
	return getProperty(ctx, s.db, name, false)
}

// ListProperties returns the whole marketplace, owned and unowned.
func (s *Service) ListProperties(ctx context.Context) ([]Property, error) {
	rows, err := s.db.Query(ctx, `SELECT `+propertyColumns+` FROM properties ORDER BY "Name"`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Property
	for rows.Next() {
		var p Property
		if err := rows.Scan(&p.Key, &p.Name, &p.Price, &p.Details, &p.Type, &p.Location, &p.UserID, &p.Owner); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// CreatePropertyInput describes an admin-created listing.
type CreatePropertyInput struct {
	Name     string
	Price    int64
	Details  string
	Type     string
	Location string
}

// CreateProperty adds a new unowned listing with a fresh opaque key.
// Names are unique case-insensitively.
func (s *Service) CreateProperty(ctx context.Context, actor Actor, in CreatePropertyInput) (*Property, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("property name is required")
	}
	if in.Price < 0 {
		return nil, fmt.Errorf("price must not be negative")
	}
	p := &Property{
		Key:      uuid.NewString(),
		Name:     in.Name,
		Price:    in.Price,
		Details:  in.Details,
		Type:     in.Type,
		Location: in.Location,
	}
	err := s.withTx(ctx, func(tx pgx.Tx) error {
		var exists bool
		if err := tx.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM properties WHERE LOWER("Name") = LOWER($1))`,
			in.Name).Scan(&exists); err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("property %q already exists", in.Name)
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO properties ("Key", "Name", "Price", "Details", "Type", "Location", "UserID", "Owner")
			VALUES ($1, $2, $3, $4, $5, $6, NULL, NULL)
		`, p.Key, p.Name, p.Price, p.Details, p.Type, p.Location)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.audit.Append(audit.Entry{
		Command:  "admin-create-property",
		UserID:   actor.ID,
		Username: actor.Username,
		GuildID:  actor.GuildID,
		Amount:   in.Price,
		Source:   actor.Source,
		Metadata: map[string]any{"property": in.Name, "key": p.Key},
	})
	return p, nil
}

// PropertyPurchase reports a completed buy.
type PropertyPurchase struct {
	Property Property
	Spend    SpendResult
}

// BuyProperty moves an unowned property to the buyer, debiting combined
// cash+bank for the listed price. Singleton property types (everything
// but Homestead) may be held once per player.
func (s *Service) BuyProperty(ctx context.Context, actor Actor, userID, name string) (PropertyPurchase, error) {
	var out PropertyPurchase
	err := s.withTx(ctx, func(tx pgx.Tx) error {
		p, err := getProperty(ctx, tx, name, true)
		if err != nil {
			return err
		}
		if p.Owned() {
			return ErrAlreadyOwned
		}
		a, err := getAccount(ctx, tx, userID, true)
		if err != nil {
			return err
		}
		col, hasCol := propertyTypeColumn(p.Type)
		if hasCol && col != "Homestead" && singletonOwned(a, col) {
			return fmt.Errorf("%w: already own a %s", ErrLimitExceeded, p.Type)
		}

		spend, err := spendCombinedTx(ctx, tx, a, p.Price)
		if err != nil {
			return err
		}

		owned := ParseList(a.Properties)
		owned = append(owned, p.Name)
		if hasCol && col == "Homestead" {
			_, err = tx.Exec(ctx, `
				UPDATE users SET "Properties" = $1, "Homestead" = true, "HomesteadCount" = "HomesteadCount" + 1
				WHERE "UserID" = $2
			`, SerializeList(owned), userID)
		} else if hasCol {
			_, err = tx.Exec(ctx,
				fmt.Sprintf(`UPDATE users SET "Properties" = $1, %q = true WHERE "UserID" = $2`, col),
				SerializeList(owned), userID)
		} else {
			_, err = tx.Exec(ctx,
				`UPDATE users SET "Properties" = $1 WHERE "UserID" = $2`,
				SerializeList(owned), userID)
		}
		if err != nil {
			return err
		}

		if _, err := tx.Exec(ctx,
			`UPDATE properties SET "UserID" = $1, "Owner" = $2 WHERE "Key" = $3`,
			userID, a.Username, p.Key); err != nil {
			return err
		}
		p.UserID = userID
		p.Owner = a.Username
		out = PropertyPurchase{Property: *p, Spend: spend}
		return nil
	})
	if err != nil {
		return PropertyPurchase{}, err
	}
	s.audit.Append(audit.Entry{
		Command:       "property-store-buy",
		UserID:        userID,
		Username:      out.Property.Owner,
		GuildID:       actor.GuildID,
		Amount:        out.Property.Price,
		BalanceBefore: audit.Int64(out.Spend.TotalBefore()),
		BalanceAfter:  audit.Int64(out.Spend.TotalAfter()),
		Source:        actor.Source,
		Metadata:      map[string]any{"property": out.Property.Name},
	})
	return out, nil
}

// PropertySale reports a completed sell-back.
type PropertySale struct {
	Property Property
	Cash     BalanceChange
}

// SellProperty returns an owned property to the market, crediting the
// seller's cash with exactly the listed price.
func (s *Service) SellProperty(ctx context.Context, actor Actor, userID, name string) (PropertySale, error) {
	var out PropertySale
	err := s.withTx(ctx, func(tx pgx.Tx) error {
		p, err := getProperty(ctx, tx, name, true)
		if err != nil {
			return err
		}
		if p.UserID != userID {
			return ErrNotOwner
		}
		a, err := getAccount(ctx, tx, userID, true)
		if err != nil {
			return err
		}

		cash := BalanceChange{Field: "Cash", Before: a.Cash, After: a.Cash + p.Price}
		owned := removeName(ParseList(a.Properties), p.Name)

		col, hasCol := propertyTypeColumn(p.Type)
		if hasCol && col == "Homestead" {
			count := a.HomesteadCount - 1
			if count < 0 {
				count = 0
			}
			_, err = tx.Exec(ctx, `
				UPDATE users SET "Cash" = $1, "Properties" = $2, "HomesteadCount" = $3, "Homestead" = $4
				WHERE "UserID" = $5
			`, cash.After, SerializeList(owned), count, count > 0, userID)
		} else if hasCol {
			_, err = tx.Exec(ctx,
				fmt.Sprintf(`UPDATE users SET "Cash" = $1, "Properties" = $2, %q = false WHERE "UserID" = $3`, col),
				cash.After, SerializeList(owned), userID)
		} else {
			_, err = tx.Exec(ctx,
				`UPDATE users SET "Cash" = $1, "Properties" = $2 WHERE "UserID" = $3`,
				cash.After, SerializeList(owned), userID)
		}
		if err != nil {
			return err
		}

		if _, err := tx.Exec(ctx,
			`UPDATE properties SET "UserID" = NULL, "Owner" = NULL WHERE "Key" = $1`,
			p.Key); err != nil {
			return err
		}
		p.UserID = ""
		p.Owner = ""
		out = PropertySale{Property: *p, Cash: cash}
		return nil
	})
	if err != nil {
		return PropertySale{}, err
	}
	s.audit.Append(audit.Entry{
		Command:       "property-store-sell",
		UserID:        userID,
		GuildID:       actor.GuildID,
		Amount:        out.Property.Price,
		BalanceBefore: audit.Int64(out.Cash.Before),
		BalanceAfter:  audit.Int64(out.Cash.After),
		Source:        actor.Source,
		Metadata:      map[string]any{"property": out.Property.Name},
	})
	return out, nil
}

// GiveProperty hands an unowned property to a player without payment.
// The recorded Owner tag is the granting admin's, matching the ledger
// convention for granted deeds.
func (s *Service) GiveProperty(ctx context.Context, actor Actor, userID, name, adminTag string) (*Property, error) {
	if adminTag == "" {
		adminTag = "Admin"
	}
	var given *Property
	err := s.withTx(ctx, func(tx pgx.Tx) error {
		p, err := getProperty(ctx, tx, name, true)
		if err != nil {
			return err
		}
		if p.Owned() {
			return ErrAlreadyOwned
		}
		a, err := getAccount(ctx, tx, userID, true)
		if err != nil {
			return err
		}
		owned := ParseList(a.Properties)
		if !containsName(owned, p.Name) {
			owned = append(owned, p.Name)
		}
		if _, err := tx.Exec(ctx,
			`UPDATE users SET "Properties" = $1 WHERE "UserID" = $2`,
			SerializeList(owned), userID); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx,
			`UPDATE properties SET "UserID" = $1, "Owner" = $2 WHERE "Key" = $3`,
			userID, adminTag, p.Key); err != nil {
			return err
		}
		p.UserID = userID
		p.Owner = adminTag
		given = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.audit.Append(audit.Entry{
		Command:  "admin-give-property",
		UserID:   userID,
		GuildID:  actor.GuildID,
		Amount:   given.Price,
		Source:   actor.Source,
		Metadata: actorMetadata(actor, map[string]any{"property": given.Name}),
	})
	return given, nil
}

// RemoveProperty strips a property from its current owner without
// compensation, returning it to the market.
func (s *Service) RemoveProperty(ctx context.Context, actor Actor, userID, name string) (*Property, error) {
	var removedProp *Property
	err := s.withTx(ctx, func(tx pgx.Tx) error {
		p, err := getProperty(ctx, tx, name, true)
		if err != nil {
			return err
		}
		if p.UserID != userID {
			return ErrNotOwner
		}
		a, err := getAccount(ctx, tx, userID, true)
		if err != nil {
			return err
		}
		owned := removeName(ParseList(a.Properties), p.Name)
		if _, err := tx.Exec(ctx,
			`UPDATE users SET "Properties" = $1 WHERE "UserID" = $2`,
			SerializeList(owned), userID); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx,
			`UPDATE properties SET "UserID" = NULL, "Owner" = NULL WHERE "Key" = $1`,
			p.Key); err != nil {
			return err
		}
		p.UserID = ""
		p.Owner = ""
		removedProp = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.audit.Append(audit.Entry{
		Command:  "admin-take-property",
		UserID:   userID,
		GuildID:  actor.GuildID,
		Amount:   removedProp.Price,
		Source:   actor.Source,
		Metadata: actorMetadata(actor, map[string]any{"property": removedProp.Name}),
	})
	return removedProp, nil
}

// DeleteProperty permanently removes an unowned listing. An owned
// property must be taken back first.
func (s *Service) DeleteProperty(ctx context.Context, actor Actor, name string) error {
	var deleted string
	err := s.withTx(ctx, func(tx pgx.Tx) error {
		p, err := getProperty(ctx, tx, name, true)
		if err != nil {
			return err
		}
		if p.Owned() {
			return ErrStillOwned
		}
		deleted = p.Name
		_, err = tx.Exec(ctx, `DELETE FROM properties WHERE "Key" = $1`, p.Key)
		return err
	})
	if err != nil {
		return err
	}
	s.audit.Append(audit.Entry{
		Command:  "admin-delete-property",
		UserID:   actor.ID,
		Username: actor.Username,
		GuildID:  actor.GuildID,
		Source:   actor.Source,
		Metadata: map[string]any{"property": deleted},
	})
	return nil
}

func singletonOwned(a *Account, column string) bool {
	switch column {
	case "Outlaw":
		return a.Outlaw
	case "Ranch":
		return a.Ranch
	case "SmallBusiness":
		return a.SmallBusiness
	case "BigBusiness":
		return a.BigBusiness
	case "Utility":
		return a.Utility
	}
	return false
}

func removeName(items []string, name string) []string {
	out := items[:0]
	for _, it := range items {
		if it != name {
			out = append(out, it)
		}
	}
	return out
}

func containsName(items []string, name string) bool {
	for _, it := range items {
		if it == name {
			return true
		}
	}
	return false
}
