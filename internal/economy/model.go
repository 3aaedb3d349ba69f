package economy

import (
	"errors"
	"strings"
)

// WarrantThreshold is the fine total at which a warrant is issued.
const WarrantThreshold = int64(100)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrPropertyNotFound  = errors.New("property not found")
	ErrItemNotFound      = errors.New("item not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInsufficientFines = errors.New("insufficient fines")
	ErrInsufficientItems = errors.New("insufficient items")
	ErrAlreadyOwned      = errors.New("property is already owned")
	ErrNotOwner          = errors.New("property is not owned by this user")
	ErrStillOwned        = errors.New("property is still owned")
	ErrLimitExceeded     = errors.New("ownership limit reached")
	ErrInvalidField      = errors.New("invalid balance field")
	ErrInvalidColumn     = errors.New("invalid inventory column")
	ErrTxConflict        = errors.New("transaction conflict, try again")
)

var balanceFields = map[string]bool{
	"Cash":  true,
	"Bank":  true,
	"Stash": true,
}

// ValidBalanceField reports whether field names one of the adjustable
// balance columns. Fines and Coupons move through their own operations.
func ValidBalanceField(field string) bool {
	return balanceFields[field]
}

var inventoryColumns = map[string]bool{
	"Food":       true,
	"Potion":     true,
	"Hunting":    true,
	"Consumable": true,
	"Bow":        true,
	"Pistol":     true,
	"Revolver":   true,
	"Rifle":      true,
	"Repeater":   true,
	"Shotgun":    true,
	"Horses":     true,
	"Treasure":   true,
	"License":    true,
	"Other":      true,
}

// ValidInventoryColumn reports whether column is a mutable inventory column.
func ValidInventoryColumn(column string) bool {
	return inventoryColumns[column]
}

// CategoryColumn maps a catalog item's Type tag ("pistol", "Food") onto
// the matching inventory column, when one exists.
func CategoryColumn(itemType string) (string, bool) {
	t := strings.TrimSpace(itemType)
	if t == "" {
		return "", false
	}
	col := strings.ToUpper(t[:1]) + strings.ToLower(t[1:])
	return col, inventoryColumns[col]
}

// itemLimits caps how many of a category a player may own. Categories
// absent from the map are unlimited.
var itemLimits = map[string]int{
	"pistol":   1,
	"license":  1,
	"bow":      1,
	"rifle":    1,
	"repeater": 1,
	"shotgun":  1,
	"other":    1,
	"wagon":    1,
	"revolver": 2,
}

// ItemLimit returns the ownership cap for a category, if one exists.
func ItemLimit(category string) (int, bool) {
	limit, ok := itemLimits[strings.ToLower(strings.TrimSpace(category))]
	return limit, ok
}

// propertyTypeColumns maps a property's Type tag to the singleton
// ownership column on the user row. Homestead is counted, not singleton.
var propertyTypeColumns = map[string]string{
	"Outlaw":        "Outlaw",
	"Ranch":         "Ranch",
	"SmallBusiness": "SmallBusiness",
	"BigBusiness":   "BigBusiness",
	"Utility":       "Utility",
	"Homestead":     "Homestead",
}

func propertyTypeColumn(propType string) (string, bool) {
	col, ok := propertyTypeColumns[propType]
	return col, ok
}

// warrantCrossed reports whether a fine increase crossed the warrant
// threshold upward. An already-active warrant never re-triggers the
// public broadcast: only the crossing itself counts.
func warrantCrossed(before, after int64) bool {
	return before < WarrantThreshold && after >= WarrantThreshold
}

// settleFines subtracts a payment from owed fines. ok is false when the
// payment exceeds what is owed; nothing changes in that case. Reaching
// exactly zero lifts the warrant.
func settleFines(owed, amount int64) (after int64, cleared, ok bool) {
	if amount > owed {
		return owed, false, false
	}
	after = owed - amount
	return after, after == 0, true
}

// splitSpend divides a price across cash first, then bank. ok is false
// when the combined funds cannot cover the price; nothing is spent.
func splitSpend(cash, bank, price int64) (spendCash, spendBank int64, ok bool) {
	if price < 0 || cash+bank < price {
		return 0, 0, false
	}
	spendCash = price
	if spendCash > cash {
		spendCash = cash
	}
	return spendCash, price - spendCash, true
}

// NormalizeName collapses whitespace for case-insensitive name matching.
func NormalizeName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}
